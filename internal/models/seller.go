package models

import (
	"time"

	"github.com/google/uuid"
)

// SellerStatus represents where an account is in the seller onboarding lifecycle
type SellerStatus string

const (
	SellerStatusNone      SellerStatus = "not_seller"
	SellerStatusPending   SellerStatus = "pending_verification"
	SellerStatusVerified  SellerStatus = "verified"
	SellerStatusRejected  SellerStatus = "rejected"
	SellerStatusSuspended SellerStatus = "suspended"
)

// Valid reports whether s is a known seller status
func (s SellerStatus) Valid() bool {
	switch s {
	case SellerStatusNone, SellerStatusPending, SellerStatusVerified, SellerStatusRejected, SellerStatusSuspended:
		return true
	}
	return false
}

// BusinessType represents the kind of entity applying to sell
type BusinessType string

const (
	BusinessTypeIndividual BusinessType = "individual"
	BusinessTypeCompany    BusinessType = "company"
)

// Valid reports whether t is a known business type
func (t BusinessType) Valid() bool {
	return t == BusinessTypeIndividual || t == BusinessTypeCompany
}

// DocumentType represents the type of verification document uploaded by an applicant
type DocumentType string

const (
	DocumentTypeIdentityProof   DocumentType = "identity_proof"
	DocumentTypeBusinessLicense DocumentType = "business_license"
	DocumentTypeGovernmentID    DocumentType = "government_id"
	DocumentTypeAddressProof    DocumentType = "address_proof"
	DocumentTypeBankStatement   DocumentType = "bank_statement"
)

// Valid reports whether t is a known document type
func (t DocumentType) Valid() bool {
	switch t {
	case DocumentTypeIdentityProof, DocumentTypeBusinessLicense, DocumentTypeGovernmentID,
		DocumentTypeAddressProof, DocumentTypeBankStatement:
		return true
	}
	return false
}

// Qualifying reports whether t counts as proof of identity or business
// legitimacy for the eligibility check
func (t DocumentType) Qualifying() bool {
	return t == DocumentTypeIdentityProof || t == DocumentTypeBusinessLicense
}

// DocumentStatus represents the review status of a verification document
type DocumentStatus string

const (
	DocumentStatusPendingReview DocumentStatus = "pending_review"
	DocumentStatusApproved      DocumentStatus = "approved"
	DocumentStatusRejected      DocumentStatus = "rejected"
)

// VerificationDocument is a document attached to a seller application. An
// account holds at most one document per type; uploading the same type again
// replaces the entry in place.
type VerificationDocument struct {
	Base
	UserID             uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_verification_documents_user_type" json:"user_id"`
	User               User           `gorm:"foreignKey:UserID" json:"-"`
	Type               DocumentType   `gorm:"type:varchar(50);not null;uniqueIndex:idx_verification_documents_user_type" json:"type"`
	URL                string         `gorm:"type:text;not null" json:"url"`
	UploadedAt         time.Time      `json:"uploaded_at"`
	VerificationStatus DocumentStatus `gorm:"type:varchar(20);not null;default:'pending_review'" json:"verification_status"`
}

// SellerStatusHistory records every seller status transition for audit
type SellerStatusHistory struct {
	Base
	UserID         uuid.UUID    `gorm:"type:uuid;not null;index" json:"user_id"`
	User           User         `gorm:"foreignKey:UserID" json:"-"`
	PreviousStatus SellerStatus `gorm:"type:varchar(30);not null" json:"previous_status"`
	NewStatus      SellerStatus `gorm:"type:varchar(30);not null" json:"new_status"`
	Reason         *string      `gorm:"type:text" json:"reason"`
	ChangedBy      uuid.UUID    `gorm:"type:uuid" json:"changed_by"`
}
