package handlers

import (
	"net/http"

	"jobscape_backend/internal/middleware"
	"jobscape_backend/internal/models"
	"jobscape_backend/internal/services"
	"jobscape_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	*BaseHandler
	jobService      services.JobService
	quotaService    services.QuotaService
	employerService services.EmployerService
}

func NewJobHandler(
	base *BaseHandler,
	jobService services.JobService,
	quotaService services.QuotaService,
	employerService services.EmployerService,
) *JobHandler {
	return &JobHandler{
		BaseHandler:     base,
		jobService:      jobService,
		quotaService:    quotaService,
		employerService: employerService,
	}
}

func (h *JobHandler) RegisterRoutes(r *gin.RouterGroup) {
	jobs := r.Group("/jobs")
	jobs.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleEmployer))
	{
		jobs.POST("", h.CreateJob)
		jobs.GET("", h.ListJobs)
		jobs.GET("/quota", h.GetQuota)
		jobs.GET("/:jobId", h.GetJob)
		jobs.POST("/:jobId/close", h.CloseJob)
		jobs.POST("/:jobId/reopen", h.ReopenJob)
		jobs.DELETE("/:jobId", h.DeleteJob)
	}
}

func (h *JobHandler) currentEmployer(c *gin.Context) (*models.Employer, bool) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return nil, false
	}

	employer, err := h.employerService.GetProfileByUserID(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return nil, false
	}
	return employer, true
}

func (h *JobHandler) CreateJob(c *gin.Context) {
	employer, ok := h.currentEmployer(c)
	if !ok {
		return
	}

	var req dto.CreateJobRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	job, err := h.jobService.CreateJob(employer.ID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, job)
}

func (h *JobHandler) ListJobs(c *gin.Context) {
	employer, ok := h.currentEmployer(c)
	if !ok {
		return
	}

	page, pageSize := ParsePagination(c)
	jobs, total, err := h.jobService.ListJobs(employer.ID, pageSize, (page-1)*pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"jobs":      jobs,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

func (h *JobHandler) GetQuota(c *gin.Context) {
	employer, ok := h.currentEmployer(c)
	if !ok {
		return
	}

	status, err := h.quotaService.Status(employer.ID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}

func (h *JobHandler) GetJob(c *gin.Context) {
	employer, ok := h.currentEmployer(c)
	if !ok {
		return
	}

	job, err := h.jobService.GetJob(c.Param("jobId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	if job.EmployerID != employer.ID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		return
	}

	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) CloseJob(c *gin.Context) {
	employer, ok := h.currentEmployer(c)
	if !ok {
		return
	}

	// The closure reason is optional; an empty body means manual_other.
	var req dto.CloseJobRequest
	if c.Request.ContentLength > 0 && !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.jobService.CloseJob(employer.ID, c.Param("jobId"), req.Reason); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Job closed"})
}

func (h *JobHandler) ReopenJob(c *gin.Context) {
	employer, ok := h.currentEmployer(c)
	if !ok {
		return
	}

	var req dto.ReopenJobRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.jobService.ReopenJob(employer.ID, c.Param("jobId"), req.ApplicationDeadline); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Job reopened"})
}

func (h *JobHandler) DeleteJob(c *gin.Context) {
	employer, ok := h.currentEmployer(c)
	if !ok {
		return
	}

	if err := h.jobService.DeleteJob(employer.ID, c.Param("jobId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Job deleted"})
}
