package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/orchid-haven/orchid-backend/internal/dto"
	"github.com/orchid-haven/orchid-backend/internal/service"
)

const propertyNotFound = "Property not found"

type PropertyHandler struct {
	errorResponder
	properties *service.PropertyService
}

func NewPropertyHandler(properties *service.PropertyService, isProduction bool) *PropertyHandler {
	return &PropertyHandler{
		errorResponder: errorResponder{isProduction: isProduction},
		properties:     properties,
	}
}

// GET /api/properties
func (h *PropertyHandler) List(c *gin.Context) {
	properties := h.properties.ListActive()
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    properties,
		"count":   len(properties),
	})
}

// GET /api/properties/all (admin)
func (h *PropertyHandler) ListAll(c *gin.Context) {
	properties := h.properties.ListAll()
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    properties,
		"count":   len(properties),
	})
}

// GET /api/properties/:id
func (h *PropertyHandler) Get(c *gin.Context) {
	id, ok := parseID(c, propertyNotFound)
	if !ok {
		return
	}

	property, err := h.properties.GetActive(id)
	if err != nil {
		h.respondError(c, err, propertyNotFound)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    property,
	})
}

// POST /api/properties
func (h *PropertyHandler) Create(c *gin.Context) {
	var req dto.CreatePropertyRequest
	if !bindJSON(c, &req) {
		return
	}

	property, err := h.properties.Create(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err, propertyNotFound)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Property created successfully",
		"data":    property,
	})
}

// PUT /api/properties/:id
func (h *PropertyHandler) Update(c *gin.Context) {
	id, ok := parseID(c, propertyNotFound)
	if !ok {
		return
	}

	var req dto.UpdatePropertyRequest
	if !bindJSON(c, &req) {
		return
	}

	property, err := h.properties.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.respondError(c, err, propertyNotFound)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Property updated successfully",
		"data":    property,
	})
}

// DELETE /api/properties/:id
// The listing is deactivated, not removed.
func (h *PropertyHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, propertyNotFound)
	if !ok {
		return
	}

	property, err := h.properties.Delete(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err, propertyNotFound)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Property deleted successfully",
		"data":    property,
	})
}
