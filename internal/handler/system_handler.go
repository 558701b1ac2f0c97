package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type SystemHandler struct {
	environment string
	startedAt   time.Time
	now         func() time.Time
}

func NewSystemHandler(environment string) *SystemHandler {
	return &SystemHandler{
		environment: environment,
		startedAt:   time.Now(),
		now:         time.Now,
	}
}

// GET /health
func (h *SystemHandler) Health(c *gin.Context) {
	now := h.now()
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"status":      "ok",
		"environment": h.environment,
		"uptime":      int64(now.Sub(h.startedAt).Seconds()),
		"timestamp":   now.UTC().Format(time.RFC3339),
	})
}

// GET /api
func (h *SystemHandler) Index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Orchid Haven API",
		"endpoints": gin.H{
			"auth": []string{
				"POST /api/auth/login",
				"GET /api/auth/me",
			},
			"properties": []string{
				"GET /api/properties",
				"GET /api/properties/all",
				"GET /api/properties/:id",
				"POST /api/properties",
				"PUT /api/properties/:id",
				"DELETE /api/properties/:id",
			},
			"jobs": []string{
				"GET /api/jobs",
				"GET /api/jobs/:id",
				"POST /api/jobs",
				"PUT /api/jobs/:id",
				"DELETE /api/jobs/:id",
			},
			"executiveTeam": []string{
				"GET /api/executive-team",
				"GET /api/executive-team/:id",
				"POST /api/executive-team",
				"PUT /api/executive-team/:id",
				"DELETE /api/executive-team/:id",
			},
			"images": []string{
				"POST /api/upload",
				"GET /api/images",
				"DELETE /api/images/:filename",
			},
			"admin": []string{
				"GET /api/activity",
				"GET /api/events",
			},
		},
	})
}
