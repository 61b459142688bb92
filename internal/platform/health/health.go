package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger is anything that can report its own reachability.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Handler serves the liveness and readiness endpoints.
type Handler struct {
	db      Pinger
	service string
	started time.Time
}

// NewHandler creates a health handler. db may be nil when the service runs
// without a database.
func NewHandler(db Pinger, service string) *Handler {
	return &Handler{db: db, service: service, started: time.Now().UTC()}
}

// RegisterRoutes registers /health and /ready, plus /api/v1/health for API clients.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)
	r.GET("/ready", h.Ready)
	r.GET("/api/v1/health", h.Health)
}

// Health reports that the process is up.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": h.service,
		"uptime":  time.Since(h.started).Round(time.Second).String(),
	})
}

// Ready reports whether dependencies are reachable.
func (h *Handler) Ready(c *gin.Context) {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.PingContext(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unavailable",
				"service": h.service,
				"error":   err.Error(),
			})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready", "service": h.service})
}
