package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/handcart/backend/internal/models"
)

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

func createTestUser(t *testing.T, db *gorm.DB, status models.SellerStatus) *models.User {
	phone := "+15550100"
	suffix := uuid.NewString()[:8]
	user := &models.User{
		Email:        fmt.Sprintf("user-%s@example.com", suffix),
		Username:     fmt.Sprintf("user-%s", suffix),
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

func addDocument(t *testing.T, db *gorm.DB, userID uuid.UUID, docType models.DocumentType) {
	doc := &models.VerificationDocument{
		UserID:             userID,
		Type:               docType,
		URL:                fmt.Sprintf("https://cdn.example.com/docs/%s.pdf", docType),
		UploadedAt:         time.Now(),
		VerificationStatus: models.DocumentStatusPendingReview,
	}
	require.NoError(t, db.Create(doc).Error)
}

// testAuth injects the claims the auth middleware would resolve from a token
func testAuth(userID uuid.UUID, isAdmin bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID.String())
		c.Set("is_admin", isAdmin)
		c.Next()
	}
}

func performRequest(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
