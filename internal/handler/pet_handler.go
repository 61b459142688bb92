package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adoptme/service-adoption/internal/application"
	"github.com/adoptme/service-adoption/internal/platform/auth"
	"github.com/adoptme/service-adoption/internal/platform/middleware"
	"github.com/adoptme/service-adoption/internal/platform/response"
)

// PetHandler handles HTTP requests for pet listings and missing reports.
type PetHandler struct {
	service *application.PetService
}

// NewPetHandler creates a new PetHandler.
func NewPetHandler(service *application.PetService) *PetHandler {
	return &PetHandler{service: service}
}

// RegisterRoutes registers pet routes on the given router group.
func (h *PetHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)
	optionalAuth := middleware.OptionalAuthMiddleware(jwtManager)

	pets := r.Group("/api/v1/pets")
	{
		pets.GET("", h.ListPets)
		pets.GET("/stats", h.PetStats)
		pets.GET("/mine", authMW, h.ListMyPets)
		pets.GET("/missing", h.ListMissingPets)
		pets.POST("/missing", authMW, h.ReportMissingPet)
		pets.POST("", authMW, h.CreatePet)
		pets.GET("/:id", optionalAuth, h.GetPet)
		pets.PUT("/:id", authMW, h.UpdatePet)
		pets.PUT("/:id/status", authMW, h.ChangeStatus)
		pets.DELETE("/:id", authMW, h.DeletePet)
		pets.POST("/:id/missing", authMW, h.MarkMissing)
		pets.POST("/:id/found", authMW, h.MarkFound)
	}
}

// ListPets handles GET /api/v1/pets.
func (h *PetHandler) ListPets(c *gin.Context) {
	var q application.ListPetsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindError(c, err)
		return
	}
	page, limit := parsePagination(c)

	result, err := h.service.ListAvailable(c.Request.Context(), q, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, result.Items, result.Total, result.Page, result.Limit)
}

// ListMissingPets handles GET /api/v1/pets/missing.
func (h *PetHandler) ListMissingPets(c *gin.Context) {
	var q application.ListPetsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindError(c, err)
		return
	}
	page, limit := parsePagination(c)

	result, err := h.service.ListMissing(c.Request.Context(), q, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, result.Items, result.Total, result.Page, result.Limit)
}

// ListMyPets handles GET /api/v1/pets/mine.
func (h *PetHandler) ListMyPets(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	page, limit := parsePagination(c)

	result, err := h.service.ListByOwner(c.Request.Context(), userID, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, result.Items, result.Total, result.Page, result.Limit)
}

// PetStats handles GET /api/v1/pets/stats.
func (h *PetHandler) PetStats(c *gin.Context) {
	result, err := h.service.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// CreatePet handles POST /api/v1/pets.
func (h *PetHandler) CreatePet(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req application.PetProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	result, err := h.service.CreatePet(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// ReportMissingPet handles POST /api/v1/pets/missing.
func (h *PetHandler) ReportMissingPet(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req application.ReportMissingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	result, err := h.service.ReportMissing(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// MarkMissing handles POST /api/v1/pets/:id/missing.
func (h *PetHandler) MarkMissing(c *gin.Context) {
	petID, ok := parseIDParam(c, "pet")
	if !ok {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req application.MarkMissingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	result, err := h.service.MarkMissing(c.Request.Context(), userID, petID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetPet handles GET /api/v1/pets/:id.
func (h *PetHandler) GetPet(c *gin.Context) {
	petID, ok := parseIDParam(c, "pet")
	if !ok {
		return
	}

	result, err := h.service.GetPet(c.Request.Context(), petID, optionalUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// UpdatePet handles PUT /api/v1/pets/:id.
func (h *PetHandler) UpdatePet(c *gin.Context) {
	petID, ok := parseIDParam(c, "pet")
	if !ok {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req application.PetProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	result, err := h.service.UpdatePet(c.Request.Context(), userID, petID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ChangeStatus handles PUT /api/v1/pets/:id/status.
func (h *PetHandler) ChangeStatus(c *gin.Context) {
	petID, ok := parseIDParam(c, "pet")
	if !ok {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req application.ChangePetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	result, err := h.service.ChangeStatus(c.Request.Context(), userID, petID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// DeletePet handles DELETE /api/v1/pets/:id.
func (h *PetHandler) DeletePet(c *gin.Context) {
	petID, ok := parseIDParam(c, "pet")
	if !ok {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.service.DeletePet(c.Request.Context(), userID, petID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// MarkFound handles POST /api/v1/pets/:id/found.
func (h *PetHandler) MarkFound(c *gin.Context) {
	petID, ok := parseIDParam(c, "pet")
	if !ok {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	result, err := h.service.MarkFound(c.Request.Context(), userID, petID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
