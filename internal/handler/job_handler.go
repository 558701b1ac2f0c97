package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/orchid-haven/orchid-backend/internal/dto"
	"github.com/orchid-haven/orchid-backend/internal/service"
)

const jobNotFound = "Job not found"

type JobHandler struct {
	errorResponder
	jobs *service.JobService
}

func NewJobHandler(jobs *service.JobService, isProduction bool) *JobHandler {
	return &JobHandler{
		errorResponder: errorResponder{isProduction: isProduction},
		jobs:           jobs,
	}
}

// GET /api/jobs
func (h *JobHandler) List(c *gin.Context) {
	jobs := h.jobs.List()
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    jobs,
		"count":   len(jobs),
	})
}

// GET /api/jobs/:id
func (h *JobHandler) Get(c *gin.Context) {
	id, ok := parseID(c, jobNotFound)
	if !ok {
		return
	}

	job, err := h.jobs.Get(id)
	if err != nil {
		h.respondError(c, err, jobNotFound)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    job,
	})
}

// POST /api/jobs
func (h *JobHandler) Create(c *gin.Context) {
	var req dto.CreateJobRequest
	if !bindJSON(c, &req) {
		return
	}

	job, err := h.jobs.Create(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err, jobNotFound)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Job created successfully",
		"data":    job,
	})
}

// PUT /api/jobs/:id
func (h *JobHandler) Update(c *gin.Context) {
	id, ok := parseID(c, jobNotFound)
	if !ok {
		return
	}

	var req dto.UpdateJobRequest
	if !bindJSON(c, &req) {
		return
	}

	job, err := h.jobs.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.respondError(c, err, jobNotFound)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Job updated successfully",
		"data":    job,
	})
}

// DELETE /api/jobs/:id
func (h *JobHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, jobNotFound)
	if !ok {
		return
	}

	if _, err := h.jobs.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err, jobNotFound)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Job deleted successfully",
	})
}
