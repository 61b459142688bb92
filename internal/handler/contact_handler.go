package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/adoptme/service-adoption/internal/application"
	"github.com/adoptme/service-adoption/internal/platform/response"
)

// ContactHandler handles the public contact endpoints.
type ContactHandler struct {
	service *application.ContactService
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(service *application.ContactService) *ContactHandler {
	return &ContactHandler{service: service}
}

// RegisterRoutes registers contact routes. Both are public.
func (h *ContactHandler) RegisterRoutes(r *gin.RouterGroup) {
	contact := r.Group("/api/v1/contact")
	{
		contact.POST("/message", h.SendMessage)
		contact.GET("/info", h.GetInfo)
	}
}

// SendMessage handles POST /api/v1/contact/message.
func (h *ContactHandler) SendMessage(c *gin.Context) {
	var req application.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	result, err := h.service.SendMessage(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// GetInfo handles GET /api/v1/contact/info.
func (h *ContactHandler) GetInfo(c *gin.Context) {
	result, err := h.service.GetInfo(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
