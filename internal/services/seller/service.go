package seller

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/handcart/backend/internal/models"
	"gorm.io/gorm"
)

// Service handles applicant-facing seller onboarding operations
type Service struct {
	db      *gorm.DB
	machine *StateMachine
}

// NewService creates a new seller service
func NewService(db *gorm.DB) *Service {
	return &Service{
		db:      db,
		machine: NewStateMachine(db),
	}
}

// ApplyInput is the applicant's submission when requesting seller status
type ApplyInput struct {
	BusinessType models.BusinessType
	StoreName    string
}

// Apply moves an eligible account into pending_verification. Eligibility is
// re-evaluated inside the transition transaction, so the guard and the status
// update see the same data. A rejected account may re-apply; its previous
// rejection reason is cleared (the audit trail keeps a copy).
func (s *Service) Apply(userID uuid.UUID, input ApplyInput) (*models.User, error) {
	if !input.BusinessType.Valid() {
		return nil, &ValidationError{Message: "business type must be individual or company"}
	}

	return s.machine.Transition(userID, EventApply, userID, nil, func(tx *gorm.DB, user *models.User) (map[string]interface{}, error) {
		var docs []models.VerificationDocument
		if err := tx.Where("user_id = ?", user.ID).Find(&docs).Error; err != nil {
			return nil, fmt.Errorf("error loading verification documents: %w", err)
		}

		eligibility := EvaluateEligibility(user, docs)
		if !eligibility.IsEligible {
			return nil, &EligibilityError{MissingFields: eligibility.MissingFields}
		}

		updates := map[string]interface{}{
			"business_type":           input.BusinessType,
			"seller_application_date": time.Now(),
			"rejection_reason":        nil,
		}
		if name := strings.TrimSpace(input.StoreName); name != "" {
			updates["store_name"] = name
		}
		return updates, nil
	})
}

// UploadDocument stores a verification document for the account. If a
// document of the same type already exists it is replaced in place and its
// review status reset to pending_review; the list never grows a duplicate
// type. Uploading never changes the account's seller status.
func (s *Service) UploadDocument(userID uuid.UUID, docType models.DocumentType, url string) (*models.VerificationDocument, []models.VerificationDocument, error) {
	if !docType.Valid() {
		return nil, nil, &ValidationError{Message: "invalid document type"}
	}
	if strings.TrimSpace(url) == "" {
		return nil, nil, &ValidationError{Message: "document URL is required"}
	}

	if err := s.ensureUserExists(userID); err != nil {
		return nil, nil, err
	}

	var doc models.VerificationDocument
	err := s.db.Transaction(func(tx *gorm.DB) error {
		now := time.Now()

		err := tx.Where("user_id = ? AND type = ?", userID, docType).First(&doc).Error
		switch {
		case err == nil:
			doc.URL = url
			doc.UploadedAt = now
			doc.VerificationStatus = models.DocumentStatusPendingReview
			if err := tx.Save(&doc).Error; err != nil {
				return fmt.Errorf("error replacing document: %w", err)
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			doc = models.VerificationDocument{
				UserID:             userID,
				Type:               docType,
				URL:                url,
				UploadedAt:         now,
				VerificationStatus: models.DocumentStatusPendingReview,
			}
			if err := tx.Create(&doc).Error; err != nil {
				return fmt.Errorf("error creating document: %w", err)
			}
		default:
			return fmt.Errorf("error finding document: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	var docs []models.VerificationDocument
	if err := s.db.Where("user_id = ?", userID).Order("created_at asc").Find(&docs).Error; err != nil {
		return nil, nil, fmt.Errorf("error loading verification documents: %w", err)
	}

	return &doc, docs, nil
}

// ContactInfo is the redacted view of an account returned with eligibility
// checks; no credentials or admin flags are included
type ContactInfo struct {
	Email   string         `json:"email"`
	Phone   *string        `json:"phone"`
	Address models.Address `json:"address"`
}

// EligibilityView is the applicant-facing eligibility report
type EligibilityView struct {
	EligibilityResult
	CurrentStatus models.SellerStatus `json:"current_status"`
	User          ContactInfo         `json:"user"`
}

// CheckEligibility evaluates the account against the seller requirements.
// Read-only; callable in any status, including before any application exists.
func (s *Service) CheckEligibility(userID uuid.UUID) (*EligibilityView, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("error loading account: %w", err)
	}

	var docs []models.VerificationDocument
	if err := s.db.Where("user_id = ?", userID).Find(&docs).Error; err != nil {
		return nil, fmt.Errorf("error loading verification documents: %w", err)
	}

	return &EligibilityView{
		EligibilityResult: EvaluateEligibility(&user, docs),
		CurrentStatus:     user.SellerStatus,
		User: ContactInfo{
			Email:   user.Email,
			Phone:   user.Phone,
			Address: user.Address,
		},
	}, nil
}

// ProfileInput carries the profile fields required for selling
type ProfileInput struct {
	Phone   string
	Address models.Address
}

// UpdateProfile persists the contact fields seller eligibility depends on.
// Usable in any seller status, before or after applying.
func (s *Service) UpdateProfile(userID uuid.UUID, input ProfileInput) (*models.User, error) {
	if strings.TrimSpace(input.Phone) == "" {
		return nil, &ValidationError{Message: "phone number is required"}
	}
	if strings.TrimSpace(input.Address.Street) == "" ||
		strings.TrimSpace(input.Address.City) == "" ||
		strings.TrimSpace(input.Address.State) == "" {
		return nil, &ValidationError{Message: "address street, city and state are required"}
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("error loading account: %w", err)
	}

	phone := strings.TrimSpace(input.Phone)
	user.Phone = &phone
	user.Address = input.Address
	if err := s.db.Save(&user).Error; err != nil {
		return nil, fmt.Errorf("error updating profile: %w", err)
	}

	return &user, nil
}

func (s *Service) ensureUserExists(userID uuid.UUID) error {
	var count int64
	if err := s.db.Model(&models.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
		return fmt.Errorf("error checking account: %w", err)
	}
	if count == 0 {
		return ErrUserNotFound
	}
	return nil
}
