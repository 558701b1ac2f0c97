package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/orchid-haven/orchid-backend/internal/service"
	"github.com/orchid-haven/orchid-backend/internal/storage"
	"github.com/orchid-haven/orchid-backend/internal/validation"
	"github.com/orchid-haven/orchid-backend/pkg/logger"
	"go.uber.org/zap"
)

// errorResponder turns service and storage errors into JSON responses.
// Unexpected errors answer 500 and hide their text in production.
type errorResponder struct {
	isProduction bool
}

func (r errorResponder) respondError(c *gin.Context, err error, notFoundMessage string) {
	var validationErrs validation.Errors

	switch {
	case errors.As(err, &validationErrs):
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Validation failed",
			"errors":  validationErrs,
		})

	case errors.Is(err, service.ErrNotFound), errors.Is(err, storage.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": notFoundMessage,
		})

	case errors.Is(err, storage.ErrInvalidFileType):
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Only image files are allowed",
		})

	case errors.Is(err, storage.ErrFileTooLarge):
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "File too large. Maximum size is 10MB",
		})

	case errors.Is(err, storage.ErrNoFile):
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "No file uploaded",
		})

	case errors.Is(err, storage.ErrTooManyFiles):
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Too many files. Maximum is 5 files",
		})

	case errors.Is(err, storage.ErrInvalidFilename):
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid filename",
		})

	default:
		logger.Log.Error("Request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)

		message := err.Error()
		if r.isProduction {
			message = "Internal server error"
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": message,
		})
	}
}

// bindJSON decodes the body into req. It answers 400 and returns false when
// the body is not valid JSON for req; field rules are checked by the services.
// A value of the wrong JSON type is reported against its field.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		logger.Log.Warn("Request body parsing failed",
			zap.String("path", c.Request.URL.Path),
			zap.String("ip", c.ClientIP()),
			zap.Error(err),
		)

		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			if fieldErrs := validation.FromTypeError(typeErr); len(fieldErrs) > 0 {
				c.JSON(http.StatusBadRequest, gin.H{
					"success": false,
					"message": "Validation failed",
					"errors":  fieldErrs,
				})
				return false
			}
		}

		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request body",
		})
		return false
	}
	return true
}

// parseID reads the :id path parameter. Anything that is not a positive
// integer cannot name a record, so it is reported as not found.
func parseID(c *gin.Context, notFoundMessage string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": notFoundMessage,
		})
		return 0, false
	}
	return id, true
}

// baseURL is the scheme and host uploaded files are served from.
func baseURL(c *gin.Context, publicBaseURL string) string {
	if publicBaseURL != "" {
		return strings.TrimRight(publicBaseURL, "/")
	}

	scheme := "http"
	if c.Request.TLS != nil || strings.EqualFold(c.GetHeader("X-Forwarded-Proto"), "https") {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host
}
