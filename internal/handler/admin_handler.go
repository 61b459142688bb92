package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/adoptme/service-adoption/internal/application"
	"github.com/adoptme/service-adoption/internal/platform/auth"
	"github.com/adoptme/service-adoption/internal/platform/middleware"
	"github.com/adoptme/service-adoption/internal/platform/response"
)

// AdminHandler handles admin-only triage and dashboard endpoints.
type AdminHandler struct {
	admin     *application.AdminService
	contact   *application.ContactService
	shelters  *application.ShelterService
	donations *application.DonationService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(
	admin *application.AdminService,
	contact *application.ContactService,
	shelters *application.ShelterService,
	donations *application.DonationService,
) *AdminHandler {
	return &AdminHandler{admin: admin, contact: contact, shelters: shelters, donations: donations}
}

// RegisterRoutes registers admin routes.
func (h *AdminHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)
	adminRole := middleware.RequireRole(auth.RoleAdmin)

	admin := r.Group("/api/v1/admin")
	admin.Use(authMW, adminRole)
	{
		admin.GET("/contact/messages", h.ListContactMessages)
		admin.PUT("/contact/messages/:id/status", h.UpdateContactMessageStatus)
		admin.POST("/shelters/:id/verify", h.VerifyShelter)
		admin.POST("/donations/:id/refund", h.RefundDonation)
		admin.GET("/stats", h.Stats)
	}
}

// ListContactMessages handles GET /api/v1/admin/contact/messages.
func (h *AdminHandler) ListContactMessages(c *gin.Context) {
	page, limit := parsePagination(c)

	result, err := h.contact.ListMessages(c.Request.Context(), c.Query("status"), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, result.Items, result.Total, result.Page, result.Limit)
}

// UpdateContactMessageStatus handles PUT /api/v1/admin/contact/messages/:id/status.
func (h *AdminHandler) UpdateContactMessageStatus(c *gin.Context) {
	messageID, ok := parseIDParam(c, "message")
	if !ok {
		return
	}

	var req application.UpdateMessageStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	result, err := h.contact.UpdateMessageStatus(c.Request.Context(), messageID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// VerifyShelter handles POST /api/v1/admin/shelters/:id/verify.
func (h *AdminHandler) VerifyShelter(c *gin.Context) {
	shelterID, ok := parseIDParam(c, "shelter")
	if !ok {
		return
	}

	var req application.VerifyShelterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	result, err := h.shelters.VerifyShelter(c.Request.Context(), shelterID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// RefundDonation handles POST /api/v1/admin/donations/:id/refund.
func (h *AdminHandler) RefundDonation(c *gin.Context) {
	donationID, ok := parseIDParam(c, "donation")
	if !ok {
		return
	}

	result, err := h.donations.RefundDonation(c.Request.Context(), donationID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Stats handles GET /api/v1/admin/stats.
func (h *AdminHandler) Stats(c *gin.Context) {
	result, err := h.admin.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
