package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JobType defines the type of job
type JobType string

// JobStatus defines the status of a job
type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
)

// Redis keys
const (
	pendingList = "handcart:jobs:pending"
	delayedSet  = "handcart:jobs:delayed"
)

// Job represents a background job. The row in Postgres is the source of
// truth; Redis only carries job IDs for dispatch.
type Job struct {
	ID         uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	Type       JobType         `json:"type"`
	Payload    json.RawMessage `json:"payload"`
	Status     JobStatus       `json:"status"`
	RetryCount int             `json:"retry_count" gorm:"default:0"`
	MaxRetries int             `json:"max_retries" gorm:"default:3"`
	NextRetry  *time.Time      `json:"next_retry,omitempty"`
	Error      string          `json:"error,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// JobHandler processes a job
type JobHandler func(ctx context.Context, job Job) error

// Queue is a Redis-dispatched, Postgres-persisted job queue
type Queue struct {
	db       *gorm.DB
	client   *redis.Client
	ctx      context.Context
	handlers map[JobType]JobHandler
	mu       sync.RWMutex
	quit     chan struct{}
	wg       sync.WaitGroup
}

// New creates a new queue
func New(db *gorm.DB, client *redis.Client) *Queue {
	return &Queue{
		db:       db,
		client:   client,
		ctx:      context.Background(),
		handlers: make(map[JobType]JobHandler),
		quit:     make(chan struct{}),
	}
}

// RegisterHandler registers a handler for a job type
func (q *Queue) RegisterHandler(jobType JobType, handler JobHandler) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.handlers[jobType] = handler
}

// Enqueue persists a job and pushes it for dispatch
func (q *Queue) Enqueue(jobType JobType, payload interface{}) (uuid.UUID, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal job payload: %w", err)
	}

	job := Job{
		ID:         uuid.New(),
		Type:       jobType,
		Payload:    payloadBytes,
		Status:     JobStatusPending,
		MaxRetries: 3,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	if err := q.db.Create(&job).Error; err != nil {
		return uuid.Nil, fmt.Errorf("failed to save job: %w", err)
	}

	if err := q.client.LPush(q.ctx, pendingList, job.ID.String()).Err(); err != nil {
		return uuid.Nil, fmt.Errorf("failed to push job to queue: %w", err)
	}

	return job.ID, nil
}

// Start launches the worker goroutines and the delayed-job mover
func (q *Queue) Start(workers int) {
	for i := 0; i < workers; i++ {
		q.wg.Add(1)
		go q.runWorker()
	}

	q.wg.Add(1)
	go q.moveDelayedJobs()
}

// Stop signals all workers to exit and waits for them
func (q *Queue) Stop() {
	close(q.quit)
	q.wg.Wait()
}

func (q *Queue) runWorker() {
	defer q.wg.Done()

	for {
		select {
		case <-q.quit:
			return
		default:
		}

		result, err := q.client.BRPop(q.ctx, 2*time.Second, pendingList).Result()
		if err != nil {
			if !errors.Is(err, redis.Nil) {
				log.Printf("Error popping job from queue: %v", err)
				time.Sleep(time.Second)
			}
			continue
		}
		if len(result) < 2 {
			continue
		}

		q.process(result[1])
	}
}

func (q *Queue) process(jobID string) {
	id, err := uuid.Parse(jobID)
	if err != nil {
		log.Printf("Invalid job ID %q: %v", jobID, err)
		return
	}

	var job Job
	if err := q.db.First(&job, "id = ?", id).Error; err != nil {
		log.Printf("Failed to load job %s: %v", jobID, err)
		return
	}

	q.mu.RLock()
	handler, ok := q.handlers[job.Type]
	q.mu.RUnlock()
	if !ok {
		log.Printf("No handler registered for job type %s", job.Type)
		return
	}

	if err := q.db.Model(&job).Updates(map[string]interface{}{
		"status":     JobStatusProcessing,
		"updated_at": time.Now(),
	}).Error; err != nil {
		log.Printf("Failed to update job status: %v", err)
		return
	}

	if err := handler(q.ctx, job); err != nil {
		q.fail(&job, err)
		return
	}

	if err := q.db.Model(&job).Updates(map[string]interface{}{
		"status":     JobStatusCompleted,
		"updated_at": time.Now(),
	}).Error; err != nil {
		log.Printf("Failed to mark job %s completed: %v", job.ID, err)
	}
}

// fail retries the job with backoff until max retries is reached
func (q *Queue) fail(job *Job, jobErr error) {
	retryCount := job.RetryCount + 1

	if retryCount < job.MaxRetries {
		nextRetry := time.Now().Add(calculateBackoff(retryCount))
		if err := q.db.Model(job).Updates(map[string]interface{}{
			"status":      JobStatusPending,
			"retry_count": retryCount,
			"next_retry":  nextRetry,
			"error":       jobErr.Error(),
			"updated_at":  time.Now(),
		}).Error; err != nil {
			log.Printf("Failed to update job %s for retry: %v", job.ID, err)
			return
		}

		if err := q.client.ZAdd(q.ctx, delayedSet, &redis.Z{
			Score:  float64(nextRetry.Unix()),
			Member: job.ID.String(),
		}).Err(); err != nil {
			log.Printf("Failed to schedule job %s retry: %v", job.ID, err)
		}
		return
	}

	if err := q.db.Model(job).Updates(map[string]interface{}{
		"status":      JobStatusFailed,
		"retry_count": retryCount,
		"error":       jobErr.Error(),
		"updated_at":  time.Now(),
	}).Error; err != nil {
		log.Printf("Failed to mark job %s failed: %v", job.ID, err)
	}
	log.Printf("Job %s failed permanently: %v", job.ID, jobErr)
}

// moveDelayedJobs moves due retries back onto the pending list
func (q *Queue) moveDelayedJobs() {
	defer q.wg.Done()

	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-q.quit:
			return
		case <-ticker.C:
		}

		now := float64(time.Now().Unix())
		jobIDs, err := q.client.ZRangeByScore(q.ctx, delayedSet, &redis.ZRangeBy{
			Min: "0",
			Max: fmt.Sprintf("%f", now),
		}).Result()
		if err != nil {
			log.Printf("Error reading delayed jobs: %v", err)
			continue
		}

		for _, jobID := range jobIDs {
			if err := q.client.LPush(q.ctx, pendingList, jobID).Err(); err != nil {
				log.Printf("Failed to requeue job %s: %v", jobID, err)
				continue
			}
			if err := q.client.ZRem(q.ctx, delayedSet, jobID).Err(); err != nil {
				log.Printf("Failed to remove job %s from delayed set: %v", jobID, err)
			}
		}
	}
}

// calculateBackoff returns an exponential delay for the given retry attempt
func calculateBackoff(retryCount int) time.Duration {
	backoff := 30 * time.Second
	for i := 1; i < retryCount; i++ {
		backoff *= 2
	}
	if backoff > 30*time.Minute {
		backoff = 30 * time.Minute
	}
	return backoff
}
