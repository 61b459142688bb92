package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/adoptme/service-adoption/internal/application"
	"github.com/adoptme/service-adoption/internal/platform/auth"
	"github.com/adoptme/service-adoption/internal/platform/middleware"
	"github.com/adoptme/service-adoption/internal/platform/response"
)

// AdoptionHandler handles adoption applications and decisions.
type AdoptionHandler struct {
	service *application.AdoptionService
}

// NewAdoptionHandler creates a new AdoptionHandler.
func NewAdoptionHandler(service *application.AdoptionService) *AdoptionHandler {
	return &AdoptionHandler{service: service}
}

// RegisterRoutes registers adoption routes.
func (h *AdoptionHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)

	r.POST("/api/v1/pets/:id/adoption-requests", authMW, h.RequestAdoption)

	requests := r.Group("/api/v1/adoption-requests")
	requests.Use(authMW)
	{
		requests.GET("", h.ListRequests)
		requests.POST("/:id/approve", h.Approve)
		requests.POST("/:id/reject", h.Reject)
		requests.POST("/:id/withdraw", h.Withdraw)
	}
}

// RequestAdoption handles POST /api/v1/pets/:id/adoption-requests.
func (h *AdoptionHandler) RequestAdoption(c *gin.Context) {
	petID, ok := parseIDParam(c, "pet")
	if !ok {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req application.CreateAdoptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	result, err := h.service.RequestAdoption(c.Request.Context(), userID, petID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// ListRequests handles GET /api/v1/adoption-requests.
func (h *AdoptionHandler) ListRequests(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	role, _ := middleware.GetUserRole(c)
	page, limit := parsePagination(c)

	result, err := h.service.ListRequests(c.Request.Context(), userID, role == auth.RoleAdmin, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, result.Items, result.Total, result.Page, result.Limit)
}

// Approve handles POST /api/v1/adoption-requests/:id/approve.
func (h *AdoptionHandler) Approve(c *gin.Context) {
	h.decide(c, h.service.Approve)
}

// Reject handles POST /api/v1/adoption-requests/:id/reject.
func (h *AdoptionHandler) Reject(c *gin.Context) {
	h.decide(c, h.service.Reject)
}

// Withdraw handles POST /api/v1/adoption-requests/:id/withdraw.
func (h *AdoptionHandler) Withdraw(c *gin.Context) {
	requestID, ok := parseIDParam(c, "adoption request")
	if !ok {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	result, err := h.service.Withdraw(c.Request.Context(), userID, requestID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

type decisionFunc func(ctx context.Context, ownerID, requestID uuid.UUID, req application.DecideAdoptionRequest) (*application.AdoptionRequestDTO, error)

func (h *AdoptionHandler) decide(c *gin.Context, fn decisionFunc) {
	requestID, ok := parseIDParam(c, "adoption request")
	if !ok {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	// The note is optional, so an empty body is fine.
	var req application.DecideAdoptionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BindError(c, err)
			return
		}
	}

	result, err := fn(c.Request.Context(), userID, requestID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
