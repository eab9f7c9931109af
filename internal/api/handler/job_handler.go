package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/handyconnect/handyconnect-be/internal/api/dto"
	"github.com/handyconnect/handyconnect-be/internal/api/service"
)

// JobHandler handles job-related HTTP requests
type JobHandler struct {
	logger *slog.Logger
	jobs   *service.JobService
}

// NewJobHandler creates a new JobHandler instance
func NewJobHandler(deps *Dependencies) *JobHandler {
	return &JobHandler{
		logger: deps.Logger,
		jobs:   deps.Jobs,
	}
}

// CreateJob handles POST /api/v1/jobs
// Books a job with a provider on behalf of the calling customer
func (h *JobHandler) CreateJob(c *gin.Context) {
	var req dto.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body",
		})
		return
	}

	customerID := c.GetString(ContextUserID)
	job, err := h.jobs.CreateJob(c.Request.Context(), customerID, req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, job)
}

// ListJobs handles GET /api/v1/jobs
// Lists the calling user's jobs, newest first
func (h *JobHandler) ListJobs(c *gin.Context) {
	userID := c.GetString(ContextUserID)
	role := c.GetString(ContextUserRole)

	jobs, err := h.jobs.ListJobsForUser(c.Request.Context(), userID, role)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ListJobsResponse{Jobs: jobs})
}

// GetJob handles GET /api/v1/jobs/:job_id
// Returns a single job; only its customer or provider may read it
func (h *JobHandler) GetJob(c *gin.Context) {
	jobID := c.Param("job_id")
	if jobID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "job_id is required",
		})
		return
	}

	job, err := h.jobs.GetJob(c.Request.Context(), jobID, c.GetString(ContextUserID))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, job)
}

// UpdateJobStatus handles PATCH /api/v1/jobs/:job_id/status
// Moves a job along its lifecycle; only the assigned provider may call it
func (h *JobHandler) UpdateJobStatus(c *gin.Context) {
	jobID := c.Param("job_id")
	if jobID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "job_id is required",
		})
		return
	}

	var req dto.UpdateJobStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body",
		})
		return
	}

	job, err := h.jobs.UpdateJobStatus(c.Request.Context(), jobID, c.GetString(ContextUserID), req.Status)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, job)
}
