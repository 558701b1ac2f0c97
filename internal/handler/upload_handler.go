package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/orchid-haven/orchid-backend/internal/service"
	"github.com/orchid-haven/orchid-backend/internal/storage"
	"github.com/orchid-haven/orchid-backend/pkg/logger"
	"go.uber.org/zap"
)

const (
	uploadField   = "image"
	imageNotFound = "Image not found"

	// maxUploadBody leaves room for the multipart framing around MaxFiles files.
	maxUploadBody = storage.MaxFiles*storage.MaxFileSize + 1<<20
)

type UploadHandler struct {
	errorResponder
	images        *service.ImageService
	publicBaseURL string
}

func NewUploadHandler(images *service.ImageService, publicBaseURL string, isProduction bool) *UploadHandler {
	return &UploadHandler{
		errorResponder: errorResponder{isProduction: isProduction},
		images:         images,
		publicBaseURL:  publicBaseURL,
	}
}

// POST /api/upload
// Accepts one image in the "image" field of a multipart form.
func (h *UploadHandler) Upload(c *gin.Context) {
	// 1. Parse the form with a hard cap on the body
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBody)
	form, err := c.MultipartForm()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.respondError(c, storage.ErrFileTooLarge, imageNotFound)
			return
		}
		logger.Log.Warn("Upload form parsing failed",
			zap.String("ip", c.ClientIP()),
			zap.Error(err),
		)
		h.respondError(c, fmt.Errorf("%w: %v", storage.ErrNoFile, err), imageNotFound)
		return
	}
	defer form.RemoveAll()

	// 2. Count every file part, not only the expected field
	total := 0
	for _, files := range form.File {
		total += len(files)
	}
	if total > storage.MaxFiles {
		h.respondError(c, storage.ErrTooManyFiles, imageNotFound)
		return
	}

	files := form.File[uploadField]
	switch {
	case len(files) == 0:
		h.respondError(c, storage.ErrNoFile, imageNotFound)
		return
	case len(files) > 1:
		h.respondError(c, storage.ErrTooManyFiles, imageNotFound)
		return
	}
	header := files[0]

	f, err := header.Open()
	if err != nil {
		h.respondError(c, err, imageNotFound)
		return
	}
	defer f.Close()

	// 3. Store
	uploaded, err := h.images.Upload(
		c.Request.Context(),
		baseURL(c, h.publicBaseURL),
		header.Filename,
		header.Header.Get("Content-Type"),
		header.Size,
		f,
	)
	if err != nil {
		logger.Log.Warn("Upload rejected",
			zap.String("original_name", header.Filename),
			zap.String("content_type", header.Header.Get("Content-Type")),
			zap.Int64("size", header.Size),
			zap.Error(err),
		)
		h.respondError(c, err, imageNotFound)
		return
	}

	logger.Log.Info("Image uploaded",
		zap.String("filename", uploaded.Filename),
		zap.Int64("size", uploaded.Size),
	)

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "File uploaded successfully",
		"filename": uploaded.Filename,
		"url":      uploaded.URL,
		"data":     uploaded,
	})
}

// GET /api/images
func (h *UploadHandler) List(c *gin.Context) {
	images, err := h.images.List(baseURL(c, h.publicBaseURL))
	if err != nil {
		h.respondError(c, err, imageNotFound)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    images,
		"count":   len(images),
	})
}

// DELETE /api/images/:filename
func (h *UploadHandler) Delete(c *gin.Context) {
	if err := h.images.Delete(c.Request.Context(), c.Param("filename")); err != nil {
		h.respondError(c, err, imageNotFound)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Image deleted successfully",
	})
}
