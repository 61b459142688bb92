package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/adoptme/service-adoption/internal/application"
	"github.com/adoptme/service-adoption/internal/platform/auth"
	"github.com/adoptme/service-adoption/internal/platform/middleware"
	"github.com/adoptme/service-adoption/internal/platform/response"
)

// ShelterHandler handles the shelter directory.
type ShelterHandler struct {
	service *application.ShelterService
}

// NewShelterHandler creates a new ShelterHandler.
func NewShelterHandler(service *application.ShelterService) *ShelterHandler {
	return &ShelterHandler{service: service}
}

// RegisterRoutes registers shelter routes.
func (h *ShelterHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)

	shelters := r.Group("/api/v1/shelters")
	{
		shelters.GET("", h.ListShelters)
		shelters.POST("", authMW, h.CreateShelter)
		shelters.GET("/:id", h.GetShelter)
		shelters.GET("/:id/pets", h.ListShelterPets)
	}
}

// ListShelters handles GET /api/v1/shelters.
func (h *ShelterHandler) ListShelters(c *gin.Context) {
	var q application.ListSheltersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindError(c, err)
		return
	}
	page, limit := parsePagination(c)

	result, err := h.service.ListShelters(c.Request.Context(), q, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, result.Items, result.Total, result.Page, result.Limit)
}

// GetShelter handles GET /api/v1/shelters/:id.
func (h *ShelterHandler) GetShelter(c *gin.Context) {
	shelterID, ok := parseIDParam(c, "shelter")
	if !ok {
		return
	}

	result, err := h.service.GetShelter(c.Request.Context(), shelterID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ListShelterPets handles GET /api/v1/shelters/:id/pets.
func (h *ShelterHandler) ListShelterPets(c *gin.Context) {
	shelterID, ok := parseIDParam(c, "shelter")
	if !ok {
		return
	}
	page, limit := parsePagination(c)

	result, err := h.service.ListShelterPets(c.Request.Context(), shelterID, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, result.Items, result.Total, result.Page, result.Limit)
}

// CreateShelter handles POST /api/v1/shelters.
func (h *ShelterHandler) CreateShelter(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req application.CreateShelterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	result, err := h.service.CreateShelter(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}
