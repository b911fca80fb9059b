package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/handcart/backend/internal/models"
	"github.com/handcart/backend/internal/queue"
	"gorm.io/gorm"
)

// JobTypePendingReviewDigest reminds admins about applications waiting too long
const JobTypePendingReviewDigest queue.JobType = "pending_review_digest"

// PendingReviewDigestPayload is the payload for a pending review digest job
type PendingReviewDigestPayload struct {
	OlderThanHours int `json:"older_than_hours"`
}

// PendingReviewReminderJob periodically sweeps for seller applications stuck
// in pending_verification. It only counts and notifies; it never changes a
// seller status.
type PendingReviewReminderJob struct {
	db        *gorm.DB
	queue     *queue.Queue
	scheduler *gocron.Scheduler
	maxAge    time.Duration
}

// NewPendingReviewReminderJob creates a new pending review reminder job
func NewPendingReviewReminderJob(db *gorm.DB, q *queue.Queue, maxAge time.Duration) *PendingReviewReminderJob {
	return &PendingReviewReminderJob{
		db:        db,
		queue:     q,
		scheduler: gocron.NewScheduler(time.UTC),
		maxAge:    maxAge,
	}
}

// Schedule starts the daily sweep
func (j *PendingReviewReminderJob) Schedule() error {
	if _, err := j.scheduler.Every(24).Hours().Do(j.enqueueDigest); err != nil {
		return fmt.Errorf("failed to schedule pending review sweep: %w", err)
	}
	j.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler
func (j *PendingReviewReminderJob) Stop() {
	j.scheduler.Stop()
}

func (j *PendingReviewReminderJob) enqueueDigest() {
	payload := PendingReviewDigestPayload{
		OlderThanHours: int(j.maxAge.Hours()),
	}
	if _, err := j.queue.Enqueue(JobTypePendingReviewDigest, payload); err != nil {
		log.Printf("Failed to enqueue pending review digest: %v", err)
	}
}

// RegisterPendingReviewDigestHandlers registers the digest job handlers
func RegisterPendingReviewDigestHandlers(q *queue.Queue, db *gorm.DB) {
	handler := NewPendingReviewReminderJob(db, q, 0)
	q.RegisterHandler(JobTypePendingReviewDigest, handler.ProcessDigest)
}

// ProcessDigest counts applications pending longer than the configured window
// and notifies the admin channel
func (j *PendingReviewReminderJob) ProcessDigest(ctx context.Context, job queue.Job) error {
	var payload PendingReviewDigestPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		return fmt.Errorf("failed to unmarshal digest payload: %w", err)
	}

	cutoff := time.Now().Add(-time.Duration(payload.OlderThanHours) * time.Hour)

	var count int64
	err := j.db.Model(&models.User{}).
		Where("seller_status = ? AND seller_application_date < ?", models.SellerStatusPending, cutoff).
		Count(&count).Error
	if err != nil {
		return fmt.Errorf("failed to count stale applications: %w", err)
	}

	if count == 0 {
		return nil
	}

	log.Printf("Admin digest: %d seller applications have been pending review for over %dh", count, payload.OlderThanHours)
	return nil
}
