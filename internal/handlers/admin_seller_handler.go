package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/handcart/backend/internal/models"
	"github.com/handcart/backend/internal/services/seller"
	"github.com/handcart/backend/internal/utils"
	"gorm.io/gorm"
)

// AdminSellerHandler handles administrative review of seller applications
type AdminSellerHandler struct {
	service *seller.AdminService
}

// NewAdminSellerHandler creates a new admin seller handler
func NewAdminSellerHandler(db *gorm.DB, notifier seller.Notifier) *AdminSellerHandler {
	return &AdminSellerHandler{
		service: seller.NewAdminService(db, notifier),
	}
}

// ListApplications returns seller applications, optionally filtered by a
// comma-separated status subset
func (h *AdminSellerHandler) ListApplications(c *gin.Context) {
	var statuses []models.SellerStatus
	if raw := c.Query("status"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			statuses = append(statuses, models.SellerStatus(strings.TrimSpace(s)))
		}
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	views, pagination, err := h.service.ListApplications(seller.ApplicationFilter{
		Statuses: statuses,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		respondSellerError(c, err)
		return
	}

	utils.RespondSuccess(c, http.StatusOK, gin.H{
		"applications": views,
		"pagination":   pagination,
	}, "Applications listed")
}

// GetApplication returns one application with documents and status history
func (h *AdminSellerHandler) GetApplication(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid account ID")
		return
	}

	detail, err := h.service.GetApplication(userID)
	if err != nil {
		respondSellerError(c, err)
		return
	}

	utils.RespondSuccess(c, http.StatusOK, detail, "Application loaded")
}

// Stats returns application counts per seller status
func (h *AdminSellerHandler) Stats(c *gin.Context) {
	counts, err := h.service.Stats()
	if err != nil {
		respondSellerError(c, err)
		return
	}

	utils.RespondSuccess(c, http.StatusOK, counts, "Application statistics")
}

// Review approves or rejects a pending application
func (h *AdminSellerHandler) Review(c *gin.Context) {
	adminID, ok := currentUserID(c)
	if !ok {
		return
	}

	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid account ID")
		return
	}

	var req struct {
		Action          string `json:"action" binding:"required"`
		RejectionReason string `json:"rejection_reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "action is required")
		return
	}

	user, err := h.service.Review(userID, seller.ReviewAction(req.Action), req.RejectionReason, adminID)
	if err != nil {
		respondSellerError(c, err)
		return
	}

	utils.RespondSuccess(c, http.StatusOK, gin.H{
		"id":               user.ID,
		"seller_status":    user.SellerStatus,
		"verified_at":      user.VerifiedAt,
		"rejection_reason": user.RejectionReason,
		"store_slug":       user.StoreSlug,
	}, "Application reviewed")
}

// SetSuspension suspends or unsuspends a verified seller
func (h *AdminSellerHandler) SetSuspension(c *gin.Context) {
	adminID, ok := currentUserID(c)
	if !ok {
		return
	}

	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid account ID")
		return
	}

	var req struct {
		Suspend *bool `json:"suspend" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "suspend is required")
		return
	}

	user, err := h.service.SetSuspension(userID, *req.Suspend, adminID)
	if err != nil {
		respondSellerError(c, err)
		return
	}

	utils.RespondSuccess(c, http.StatusOK, gin.H{
		"id":            user.ID,
		"seller_status": user.SellerStatus,
	}, "Suspension updated")
}
