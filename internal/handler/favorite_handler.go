package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/adoptme/service-adoption/internal/application"
	"github.com/adoptme/service-adoption/internal/platform/auth"
	"github.com/adoptme/service-adoption/internal/platform/middleware"
	"github.com/adoptme/service-adoption/internal/platform/response"
)

// FavoriteHandler handles the favorite toggle and listing.
type FavoriteHandler struct {
	service *application.FavoriteService
}

// NewFavoriteHandler creates a new FavoriteHandler.
func NewFavoriteHandler(service *application.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{service: service}
}

// RegisterRoutes registers favorite routes.
func (h *FavoriteHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)

	r.POST("/api/v1/pets/:id/favorite", authMW, h.Toggle)
	r.GET("/api/v1/favorites", authMW, h.List)
}

// Toggle handles POST /api/v1/pets/:id/favorite.
func (h *FavoriteHandler) Toggle(c *gin.Context) {
	petID, ok := parseIDParam(c, "pet")
	if !ok {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	result, err := h.service.Toggle(c.Request.Context(), userID, petID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// List handles GET /api/v1/favorites.
func (h *FavoriteHandler) List(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	result, err := h.service.List(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
