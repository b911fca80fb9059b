package seller

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/handcart/backend/internal/models"
	"gorm.io/gorm"
)

// Event is a requested change to an account's seller status
type Event string

const (
	EventApply     Event = "apply"
	EventApprove   Event = "approve"
	EventReject    Event = "reject"
	EventSuspend   Event = "suspend"
	EventUnsuspend Event = "unsuspend"
)

// transitionRule names the statuses an event may fire from and the status it
// leads to
type transitionRule struct {
	from []models.SellerStatus
	to   models.SellerStatus
}

func (r transitionRule) allowsFrom(status models.SellerStatus) bool {
	for _, s := range r.from {
		if s == status {
			return true
		}
	}
	return false
}

// transitions is the complete set of legal seller status transitions. Any
// (status, event) pair not covered here is rejected, including an admin
// re-submitting a pending application back to pending.
var transitions = map[Event]transitionRule{
	EventApply: {
		from: []models.SellerStatus{models.SellerStatusNone, models.SellerStatusRejected},
		to:   models.SellerStatusPending,
	},
	EventApprove: {
		from: []models.SellerStatus{models.SellerStatusPending},
		to:   models.SellerStatusVerified,
	},
	EventReject: {
		from: []models.SellerStatus{models.SellerStatusPending},
		to:   models.SellerStatusRejected,
	},
	EventSuspend: {
		from: []models.SellerStatus{models.SellerStatusVerified},
		to:   models.SellerStatusSuspended,
	},
	EventUnsuspend: {
		from: []models.SellerStatus{models.SellerStatusSuspended},
		to:   models.SellerStatusVerified,
	},
}

// Effects computes the extra column updates that accompany a transition. It
// runs inside the transition's database transaction against the freshly
// loaded account, so guards evaluated here see current data. Returning an
// error aborts the transition without mutating the account.
type Effects func(tx *gorm.DB, user *models.User) (map[string]interface{}, error)

// StateMachine owns every write to users.seller_status. No handler or
// service mutates the status column directly.
type StateMachine struct {
	db *gorm.DB
}

// NewStateMachine creates a new seller state machine
func NewStateMachine(db *gorm.DB) *StateMachine {
	return &StateMachine{db: db}
}

// Allowed reports whether event is legal from the given status
func (m *StateMachine) Allowed(from models.SellerStatus, event Event) bool {
	rule, ok := transitions[event]
	return ok && rule.allowsFrom(from)
}

// Transition applies event to the account identified by userID. The status
// update is conditioned on the seller status read inside this transaction:
// the UPDATE only matches a row still in that status, so a concurrent
// transition makes RowsAffected zero and the loser gets an
// IllegalTransitionError instead of clobbering the newer state. A
// SellerStatusHistory record is written in the same transaction.
func (m *StateMachine) Transition(userID uuid.UUID, event Event, changedBy uuid.UUID, reason *string, effects Effects) (*models.User, error) {
	var result models.User

	err := m.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return fmt.Errorf("error loading account: %w", err)
		}

		rule, ok := transitions[event]
		if !ok || !rule.allowsFrom(user.SellerStatus) {
			return &IllegalTransitionError{From: user.SellerStatus, Event: event}
		}

		updates := map[string]interface{}{
			"seller_status": rule.to,
		}
		if effects != nil {
			extra, err := effects(tx, &user)
			if err != nil {
				return err
			}
			for column, value := range extra {
				updates[column] = value
			}
		}

		res := tx.Model(&models.User{}).
			Where("id = ? AND seller_status = ?", user.ID, user.SellerStatus).
			Updates(updates)
		if res.Error != nil {
			return fmt.Errorf("error updating seller status: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			// Lost a race: the status moved after our read.
			var current models.User
			if err := tx.First(&current, "id = ?", userID).Error; err != nil {
				return ErrUserNotFound
			}
			return &IllegalTransitionError{From: current.SellerStatus, Event: event}
		}

		history := models.SellerStatusHistory{
			UserID:         user.ID,
			PreviousStatus: user.SellerStatus,
			NewStatus:      rule.to,
			Reason:         reason,
			ChangedBy:      changedBy,
		}
		if err := tx.Create(&history).Error; err != nil {
			return fmt.Errorf("error recording status history: %w", err)
		}

		if err := tx.First(&result, "id = ?", user.ID).Error; err != nil {
			return fmt.Errorf("error reloading account: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}
