package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/orchid-haven/orchid-backend/internal/dto"
	"github.com/orchid-haven/orchid-backend/internal/service"
)

const executiveNotFound = "Executive not found"

type ExecutiveHandler struct {
	errorResponder
	executives *service.ExecutiveService
}

func NewExecutiveHandler(executives *service.ExecutiveService, isProduction bool) *ExecutiveHandler {
	return &ExecutiveHandler{
		errorResponder: errorResponder{isProduction: isProduction},
		executives:     executives,
	}
}

// GET /api/executive-team
func (h *ExecutiveHandler) List(c *gin.Context) {
	team := h.executives.List()
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    team,
		"count":   len(team),
	})
}

// GET /api/executive-team/:id
func (h *ExecutiveHandler) Get(c *gin.Context) {
	id, ok := parseID(c, executiveNotFound)
	if !ok {
		return
	}

	member, err := h.executives.Get(id)
	if err != nil {
		h.respondError(c, err, executiveNotFound)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    member,
	})
}

// POST /api/executive-team
func (h *ExecutiveHandler) Create(c *gin.Context) {
	var req dto.CreateExecutiveRequest
	if !bindJSON(c, &req) {
		return
	}

	member, err := h.executives.Create(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err, executiveNotFound)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Executive created successfully",
		"data":    member,
	})
}

// PUT /api/executive-team/:id
func (h *ExecutiveHandler) Update(c *gin.Context) {
	id, ok := parseID(c, executiveNotFound)
	if !ok {
		return
	}

	var req dto.UpdateExecutiveRequest
	if !bindJSON(c, &req) {
		return
	}

	member, err := h.executives.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.respondError(c, err, executiveNotFound)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Executive updated successfully",
		"data":    member,
	})
}

// DELETE /api/executive-team/:id
func (h *ExecutiveHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, executiveNotFound)
	if !ok {
		return
	}

	if _, err := h.executives.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err, executiveNotFound)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Executive deleted successfully",
	})
}
