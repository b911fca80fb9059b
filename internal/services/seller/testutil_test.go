package seller

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/handcart/backend/internal/models"
)

// setupTestDB creates an isolated in-memory database per test
func setupTestDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.User{}, &models.VerificationDocument{}, &models.SellerStatusHistory{})
	require.NoError(t, err)

	return db
}

// createTestUser inserts an account with a complete seller profile
func createTestUser(t *testing.T, db *gorm.DB, status models.SellerStatus) *models.User {
	phone := "+15550100"
	suffix := uuid.NewString()[:8]
	user := &models.User{
		Email:        fmt.Sprintf("user-%s@example.com", suffix),
		Username:     fmt.Sprintf("user-%s", suffix),
		FirstName:    "Ama",
		LastName:     "Mensah",
		Phone:        &phone,
		SellerStatus: status,
		Address: models.Address{
			Street: "1 Main St",
			City:   "Springfield",
			State:  "IL",
		},
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// addDocument attaches a verification document to the account
func addDocument(t *testing.T, db *gorm.DB, userID uuid.UUID, docType models.DocumentType) *models.VerificationDocument {
	doc := &models.VerificationDocument{
		UserID:             userID,
		Type:               docType,
		URL:                fmt.Sprintf("https://cdn.example.com/docs/%s.pdf", docType),
		UploadedAt:         time.Now(),
		VerificationStatus: models.DocumentStatusPendingReview,
	}
	require.NoError(t, db.Create(doc).Error)
	return doc
}

func historyCount(t *testing.T, db *gorm.DB, userID uuid.UUID) int64 {
	var count int64
	require.NoError(t, db.Model(&models.SellerStatusHistory{}).Where("user_id = ?", userID).Count(&count).Error)
	return count
}

func reloadUser(t *testing.T, db *gorm.DB, userID uuid.UUID) *models.User {
	var user models.User
	require.NoError(t, db.First(&user, "id = ?", userID).Error)
	return &user
}
