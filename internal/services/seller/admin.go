package seller

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/handcart/backend/internal/models"
	"gorm.io/gorm"
)

// Notifier dispatches seller lifecycle notifications out of band. Review
// decisions never depend on delivery; a nil Notifier disables notifications.
type Notifier interface {
	SellerStatusChanged(userID uuid.UUID, status models.SellerStatus, reason string)
}

// AdminService handles administrative review of seller applications
type AdminService struct {
	db       *gorm.DB
	machine  *StateMachine
	notifier Notifier
}

// NewAdminService creates a new admin review service
func NewAdminService(db *gorm.DB, notifier Notifier) *AdminService {
	return &AdminService{
		db:       db,
		machine:  NewStateMachine(db),
		notifier: notifier,
	}
}

// reviewableStatuses is the default listing filter: applications an admin
// cares about, which excludes accounts that never applied
var reviewableStatuses = []models.SellerStatus{
	models.SellerStatusPending,
	models.SellerStatusVerified,
	models.SellerStatusRejected,
}

// ApplicationFilter narrows the admin listing
type ApplicationFilter struct {
	Statuses []models.SellerStatus
	Page     int
	PageSize int
}

// ApplicationView is the display shape of a seller application; credentials
// and internal flags are excluded
type ApplicationView struct {
	ID                    uuid.UUID                     `json:"id"`
	Email                 string                        `json:"email"`
	Username              string                        `json:"username"`
	FirstName             string                        `json:"first_name"`
	LastName              string                        `json:"last_name"`
	Phone                 *string                       `json:"phone"`
	Address               models.Address                `json:"address"`
	SellerStatus          models.SellerStatus           `json:"seller_status"`
	BusinessType          *models.BusinessType          `json:"business_type"`
	StoreName             *string                       `json:"store_name"`
	StoreSlug             *string                       `json:"store_slug"`
	SellerApplicationDate *time.Time                    `json:"seller_application_date"`
	VerifiedAt            *time.Time                    `json:"verified_at"`
	RejectionReason       *string                       `json:"rejection_reason"`
	VerificationDocuments []models.VerificationDocument `json:"verification_documents"`
	CreatedAt             time.Time                     `json:"created_at"`
}

// ApplicationDetail is a single application with its full audit history
type ApplicationDetail struct {
	ApplicationView
	History []models.SellerStatusHistory `json:"history"`
}

// Pagination describes a page of listing results
type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

// ListApplications returns seller applications whose status is in the
// requested subset, newest application first. Listing reads are not
// serialized against concurrent transitions; they are display-only.
func (s *AdminService) ListApplications(filter ApplicationFilter) ([]ApplicationView, *Pagination, error) {
	statuses := filter.Statuses
	if len(statuses) == 0 {
		statuses = reviewableStatuses
	}
	for _, status := range statuses {
		if !status.Valid() {
			return nil, nil, &ValidationError{Message: fmt.Sprintf("unknown seller status %q", status)}
		}
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	var total int64
	if err := s.db.Model(&models.User{}).Where("seller_status IN ?", statuses).Count(&total).Error; err != nil {
		return nil, nil, fmt.Errorf("error counting applications: %w", err)
	}

	var users []models.User
	err := s.db.Where("seller_status IN ?", statuses).
		Order("seller_application_date desc").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&users).Error
	if err != nil {
		return nil, nil, fmt.Errorf("error listing applications: %w", err)
	}

	views := make([]ApplicationView, 0, len(users))
	for i := range users {
		var docs []models.VerificationDocument
		if err := s.db.Where("user_id = ?", users[i].ID).Order("created_at asc").Find(&docs).Error; err != nil {
			return nil, nil, fmt.Errorf("error loading documents: %w", err)
		}
		views = append(views, newApplicationView(&users[i], docs))
	}

	pagination := &Pagination{
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: int((total + int64(pageSize) - 1) / int64(pageSize)),
	}
	return views, pagination, nil
}

// GetApplication returns one application with its documents and status history
func (s *AdminService) GetApplication(userID uuid.UUID) (*ApplicationDetail, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("error loading account: %w", err)
	}

	var docs []models.VerificationDocument
	if err := s.db.Where("user_id = ?", userID).Order("created_at asc").Find(&docs).Error; err != nil {
		return nil, fmt.Errorf("error loading documents: %w", err)
	}

	var history []models.SellerStatusHistory
	if err := s.db.Where("user_id = ?", userID).Order("created_at desc").Find(&history).Error; err != nil {
		return nil, fmt.Errorf("error loading status history: %w", err)
	}

	return &ApplicationDetail{
		ApplicationView: newApplicationView(&user, docs),
		History:         history,
	}, nil
}

// StatusCounts holds per-status application counts for the admin dashboard
type StatusCounts struct {
	Pending   int64 `json:"pending_verification"`
	Verified  int64 `json:"verified"`
	Rejected  int64 `json:"rejected"`
	Suspended int64 `json:"suspended"`
}

// Stats counts applications per status
func (s *AdminService) Stats() (*StatusCounts, error) {
	counts := &StatusCounts{}
	for status, target := range map[models.SellerStatus]*int64{
		models.SellerStatusPending:   &counts.Pending,
		models.SellerStatusVerified:  &counts.Verified,
		models.SellerStatusRejected:  &counts.Rejected,
		models.SellerStatusSuspended: &counts.Suspended,
	} {
		if err := s.db.Model(&models.User{}).Where("seller_status = ?", status).Count(target).Error; err != nil {
			return nil, fmt.Errorf("error counting %s applications: %w", status, err)
		}
	}
	return counts, nil
}

// ReviewAction is an admin's resolution of a pending application
type ReviewAction string

const (
	ReviewActionApprove ReviewAction = "approve"
	ReviewActionReject  ReviewAction = "reject"
)

// Review resolves a pending application. Approval stamps verified_at, clears
// any previous rejection reason and assigns the storefront slug. Rejection
// requires a non-empty reason, stored verbatim on the account.
func (s *AdminService) Review(userID uuid.UUID, action ReviewAction, rejectionReason string, adminID uuid.UUID) (*models.User, error) {
	var user *models.User
	var err error

	switch action {
	case ReviewActionApprove:
		user, err = s.machine.Transition(userID, EventApprove, adminID, nil, func(tx *gorm.DB, u *models.User) (map[string]interface{}, error) {
			storeSlug, slugErr := s.uniqueStoreSlug(tx, u)
			if slugErr != nil {
				return nil, slugErr
			}
			return map[string]interface{}{
				"verified_at":      time.Now(),
				"rejection_reason": nil,
				"store_slug":       storeSlug,
			}, nil
		})
	case ReviewActionReject:
		reason := rejectionReason
		if reason == "" {
			return nil, &ValidationError{Message: "rejection reason is required"}
		}
		user, err = s.machine.Transition(userID, EventReject, adminID, &reason, func(tx *gorm.DB, u *models.User) (map[string]interface{}, error) {
			return map[string]interface{}{"rejection_reason": reason}, nil
		})
	default:
		return nil, &ValidationError{Message: "action must be approve or reject"}
	}
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.SellerStatusChanged(user.ID, user.SellerStatus, rejectionReason)
	}
	return user, nil
}

// SetSuspension suspends a verified seller or lifts an existing suspension.
// Any other starting status is an illegal transition.
func (s *AdminService) SetSuspension(userID uuid.UUID, suspend bool, adminID uuid.UUID) (*models.User, error) {
	event := EventUnsuspend
	if suspend {
		event = EventSuspend
	}

	user, err := s.machine.Transition(userID, event, adminID, nil, nil)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.SellerStatusChanged(user.ID, user.SellerStatus, "")
	}
	return user, nil
}

// uniqueStoreSlug derives a storefront slug from the store name, falling
// back to the username, and suffixes a counter on collision
func (s *AdminService) uniqueStoreSlug(tx *gorm.DB, user *models.User) (string, error) {
	name := user.Username
	if user.StoreName != nil && *user.StoreName != "" {
		name = *user.StoreName
	}

	base := slug.Make(name)
	candidate := base
	for i := 2; ; i++ {
		var count int64
		err := tx.Model(&models.User{}).
			Where("store_slug = ? AND id <> ?", candidate, user.ID).
			Count(&count).Error
		if err != nil {
			return "", fmt.Errorf("error checking store slug: %w", err)
		}
		if count == 0 {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

func newApplicationView(user *models.User, docs []models.VerificationDocument) ApplicationView {
	return ApplicationView{
		ID:                    user.ID,
		Email:                 user.Email,
		Username:              user.Username,
		FirstName:             user.FirstName,
		LastName:              user.LastName,
		Phone:                 user.Phone,
		Address:               user.Address,
		SellerStatus:          user.SellerStatus,
		BusinessType:          user.BusinessType,
		StoreName:             user.StoreName,
		StoreSlug:             user.StoreSlug,
		SellerApplicationDate: user.SellerApplicationDate,
		VerifiedAt:            user.VerifiedAt,
		RejectionReason:       user.RejectionReason,
		VerificationDocuments: docs,
		CreatedAt:             user.CreatedAt,
	}
}
