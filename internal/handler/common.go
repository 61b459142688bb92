package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/adoptme/service-adoption/internal/platform/middleware"
	"github.com/adoptme/service-adoption/internal/platform/response"
)

func parsePagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	return page, limit
}

// parseIDParam reads the :id path parameter, writing 400 when it is not a UUID.
func parseIDParam(c *gin.Context, entity string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid "+entity+" ID")
		return uuid.Nil, false
	}
	return id, true
}

// requireUserID returns the caller's id, writing 401 when absent.
func requireUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return uuid.Nil, false
	}
	return userID, true
}

// optionalUserID returns the caller's id if OptionalAuthMiddleware found one.
func optionalUserID(c *gin.Context) *uuid.UUID {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return nil
	}
	return &userID
}
