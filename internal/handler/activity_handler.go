package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/orchid-haven/orchid-backend/internal/events"
)

const (
	defaultActivityLimit = 50
	maxActivityLimit     = 500
)

// EventHistory is satisfied by audit.Journal.
type EventHistory interface {
	Recent(limit int) ([]events.Event, error)
}

type ActivityHandler struct {
	errorResponder
	history EventHistory
}

func NewActivityHandler(history EventHistory, isProduction bool) *ActivityHandler {
	return &ActivityHandler{
		errorResponder: errorResponder{isProduction: isProduction},
		history:        history,
	}
}

// GET /api/activity?limit=N
// Newest first.
func (h *ActivityHandler) List(c *gin.Context) {
	limit := defaultActivityLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "limit must be a positive integer",
			})
			return
		}
		limit = min(n, maxActivityLimit)
	}

	entries, err := h.history.Recent(limit)
	if err != nil {
		h.respondError(c, err, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    entries,
		"count":   len(entries),
	})
}
