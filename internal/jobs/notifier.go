package jobs

import (
	"log"

	"github.com/google/uuid"
	"github.com/handcart/backend/internal/models"
	"github.com/handcart/backend/internal/queue"
)

// QueueNotifier implements seller.Notifier by enqueuing notification jobs.
// Enqueue failures are logged and swallowed: a review decision must never be
// rolled back because a notification could not be queued.
type QueueNotifier struct {
	queue *queue.Queue
}

// NewQueueNotifier creates a new queue-backed notifier
func NewQueueNotifier(q *queue.Queue) *QueueNotifier {
	return &QueueNotifier{queue: q}
}

// SellerStatusChanged enqueues a notification for a seller status change
func (n *QueueNotifier) SellerStatusChanged(userID uuid.UUID, status models.SellerStatus, reason string) {
	payload := SellerStatusNotificationPayload{
		UserID: userID,
		Status: status,
		Reason: reason,
	}
	if _, err := n.queue.Enqueue(JobTypeSellerStatusNotification, payload); err != nil {
		log.Printf("Failed to enqueue seller status notification for %s: %v", userID, err)
	}
}
