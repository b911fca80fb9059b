package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/handcart/backend/internal/models"
	"github.com/handcart/backend/internal/services/seller"
	"github.com/handcart/backend/internal/utils"
	"gorm.io/gorm"
)

// SellerHandler handles applicant-facing seller onboarding requests
type SellerHandler struct {
	service *seller.Service
}

// NewSellerHandler creates a new seller handler
func NewSellerHandler(db *gorm.DB) *SellerHandler {
	return &SellerHandler{
		service: seller.NewService(db),
	}
}

// currentUserID reads the authenticated account ID resolved by the auth middleware
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	userIDStr := c.GetString("user_id")
	if userIDStr == "" {
		utils.RespondError(c, http.StatusUnauthorized, "Unauthorized")
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid user ID")
		return uuid.Nil, false
	}
	return userID, true
}

// respondSellerError maps seller service errors to distinct HTTP responses so
// callers can tell validation, eligibility, conflicts and not-found apart
// from server failures
func respondSellerError(c *gin.Context, err error) {
	var validationErr *seller.ValidationError
	var eligibilityErr *seller.EligibilityError
	var transitionErr *seller.IllegalTransitionError

	switch {
	case errors.Is(err, seller.ErrUserNotFound):
		utils.RespondError(c, http.StatusNotFound, "Account not found")
	case errors.As(err, &validationErr):
		utils.RespondError(c, http.StatusBadRequest, validationErr.Message)
	case errors.As(err, &eligibilityErr):
		utils.RespondMissingFields(c, http.StatusBadRequest, "Seller eligibility requirements not met", eligibilityErr.MissingFields)
	case errors.As(err, &transitionErr):
		utils.RespondError(c, http.StatusConflict, transitionErr.Error())
	default:
		utils.RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}

// Apply submits a seller application for the authenticated account
func (h *SellerHandler) Apply(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req struct {
		BusinessType string `json:"business_type" binding:"required"`
		StoreName    string `json:"store_name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "business_type is required")
		return
	}

	user, err := h.service.Apply(userID, seller.ApplyInput{
		BusinessType: models.BusinessType(req.BusinessType),
		StoreName:    req.StoreName,
	})
	if err != nil {
		respondSellerError(c, err)
		return
	}

	utils.RespondSuccess(c, http.StatusOK, gin.H{
		"seller_status":           user.SellerStatus,
		"business_type":           user.BusinessType,
		"seller_application_date": user.SellerApplicationDate,
	}, "Seller application submitted")
}

// UploadDocument registers a verification document for the authenticated
// account. The file itself is already stored by the upload service; only its
// URL is recorded here.
func (h *SellerHandler) UploadDocument(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req struct {
		DocumentType string `json:"document_type" binding:"required"`
		DocumentURL  string `json:"document_url" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "document_type and document_url are required")
		return
	}

	doc, docs, err := h.service.UploadDocument(userID, models.DocumentType(req.DocumentType), req.DocumentURL)
	if err != nil {
		respondSellerError(c, err)
		return
	}

	utils.RespondSuccess(c, http.StatusOK, gin.H{
		"document_type":       doc.Type,
		"document_url":        doc.URL,
		"verification_status": doc.VerificationStatus,
		"documents":           docs,
	}, "Verification document uploaded")
}

// CheckEligibility reports whether the account currently meets the seller requirements
func (h *SellerHandler) CheckEligibility(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	view, err := h.service.CheckEligibility(userID)
	if err != nil {
		respondSellerError(c, err)
		return
	}

	utils.RespondSuccess(c, http.StatusOK, gin.H{
		"is_eligible":    view.IsEligible,
		"requirements":   view.Requirements,
		"missing_fields": view.MissingFields,
		"current_status": view.CurrentStatus,
		"user":           view.User,
	}, "Eligibility evaluated")
}

// UpdateProfile saves the contact fields required for selling
func (h *SellerHandler) UpdateProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req struct {
		Phone   string         `json:"phone" binding:"required"`
		Address models.Address `json:"address" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "phone and address are required")
		return
	}

	user, err := h.service.UpdateProfile(userID, seller.ProfileInput{
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		respondSellerError(c, err)
		return
	}

	utils.RespondSuccess(c, http.StatusOK, gin.H{
		"phone":         user.Phone,
		"address":       user.Address,
		"seller_status": user.SellerStatus,
	}, "Profile updated")
}
