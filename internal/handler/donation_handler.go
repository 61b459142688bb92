package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/adoptme/service-adoption/internal/application"
	"github.com/adoptme/service-adoption/internal/platform/auth"
	"github.com/adoptme/service-adoption/internal/platform/middleware"
	"github.com/adoptme/service-adoption/internal/platform/response"
)

// DonationHandler handles donations and payments.
type DonationHandler struct {
	service *application.DonationService
}

// NewDonationHandler creates a new DonationHandler.
func NewDonationHandler(service *application.DonationService) *DonationHandler {
	return &DonationHandler{service: service}
}

// RegisterRoutes registers donation routes. Guests may donate and pay.
func (h *DonationHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)
	optionalAuth := middleware.OptionalAuthMiddleware(jwtManager)

	donations := r.Group("/api/v1/donations")
	{
		donations.POST("", optionalAuth, h.CreateDonation)
		donations.GET("", optionalAuth, h.ListDonations)
		donations.GET("/mine", authMW, h.ListMyDonations)
		donations.GET("/stats", h.DonationStats)
		donations.POST("/:id/payment", optionalAuth, h.ProcessPayment)
		donations.POST("/:id/cancel", optionalAuth, h.CancelDonation)
	}
}

// CreateDonation handles POST /api/v1/donations.
func (h *DonationHandler) CreateDonation(c *gin.Context) {
	var req application.CreateDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	result, err := h.service.CreateDonation(c.Request.Context(), optionalUserID(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// ProcessPayment handles POST /api/v1/donations/:id/payment.
func (h *DonationHandler) ProcessPayment(c *gin.Context) {
	donationID, ok := parseIDParam(c, "donation")
	if !ok {
		return
	}

	var req application.ProcessPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	result, err := h.service.ProcessPayment(c.Request.Context(), donationID, optionalUserID(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ListDonations handles GET /api/v1/donations.
func (h *DonationHandler) ListDonations(c *gin.Context) {
	var q application.ListDonationsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindError(c, err)
		return
	}
	page, limit := parsePagination(c)

	result, err := h.service.ListPublic(c.Request.Context(), optionalUserID(c), q, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, result.Items, result.Total, result.Page, result.Limit)
}

// ListMyDonations handles GET /api/v1/donations/mine.
func (h *DonationHandler) ListMyDonations(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	page, limit := parsePagination(c)

	result, err := h.service.ListMine(c.Request.Context(), userID, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, result.Items, result.Total, result.Page, result.Limit)
}

// DonationStats handles GET /api/v1/donations/stats.
func (h *DonationHandler) DonationStats(c *gin.Context) {
	result, err := h.service.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// CancelDonation handles POST /api/v1/donations/:id/cancel.
func (h *DonationHandler) CancelDonation(c *gin.Context) {
	donationID, ok := parseIDParam(c, "donation")
	if !ok {
		return
	}

	result, err := h.service.CancelDonation(c.Request.Context(), donationID, optionalUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
