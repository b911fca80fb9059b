package seller

import (
	"errors"
	"fmt"

	"github.com/handcart/backend/internal/models"
)

// ErrUserNotFound is returned when the account an operation targets does not exist
var ErrUserNotFound = errors.New("user not found")

// ValidationError reports missing or malformed caller input
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// EligibilityError is returned when an account does not meet the profile and
// document requirements to apply as a seller. MissingFields carries the
// human-readable labels of each unmet requirement.
type EligibilityError struct {
	MissingFields []string
}

func (e *EligibilityError) Error() string {
	return "seller eligibility requirements not met"
}

// IllegalTransitionError is returned when an event is not legal from the
// account's current seller status. The request is rejected without mutating
// the account.
type IllegalTransitionError struct {
	From  models.SellerStatus
	Event Event
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("cannot %s while seller status is %s", e.Event, e.From)
}
