package models

import (
	"time"
)

// Address holds a user's contact address. Street, city and state are the
// fields seller eligibility cares about; zip code and country are display-only.
type Address struct {
	Street  string `gorm:"type:varchar(255)" json:"street"`
	City    string `gorm:"type:varchar(100)" json:"city"`
	State   string `gorm:"type:varchar(100)" json:"state"`
	ZipCode string `gorm:"type:varchar(20)" json:"zip_code"`
	Country string `gorm:"type:varchar(100)" json:"country"`
}

// User represents a user account in the marketplace. Every account starts as
// a buyer; the seller_* fields track its progress through seller onboarding.
type User struct {
	Base
	Email        string  `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Username     string  `gorm:"type:varchar(50);uniqueIndex" json:"username"`
	FirstName    string  `gorm:"type:varchar(100)" json:"first_name"`
	LastName     string  `gorm:"type:varchar(100)" json:"last_name"`
	PasswordHash string  `gorm:"type:varchar(255)" json:"-"`
	IsActive     bool    `gorm:"default:true" json:"is_active"`
	IsAdmin      bool    `gorm:"default:false" json:"is_admin"`
	Phone        *string `gorm:"type:varchar(20)" json:"phone"`
	Address      Address `gorm:"embedded;embeddedPrefix:address_" json:"address"`

	// Seller onboarding. seller_status is only ever written by the seller
	// state machine.
	SellerStatus          SellerStatus  `gorm:"type:varchar(30);not null;default:'not_seller'" json:"seller_status"`
	BusinessType          *BusinessType `gorm:"type:varchar(20)" json:"business_type"`
	StoreName             *string       `gorm:"type:varchar(255)" json:"store_name"`
	StoreSlug             *string       `gorm:"type:varchar(255);uniqueIndex" json:"store_slug"`
	SellerApplicationDate *time.Time    `json:"seller_application_date"`
	VerifiedAt            *time.Time    `json:"verified_at"`
	RejectionReason       *string       `gorm:"type:text" json:"rejection_reason"`
}
