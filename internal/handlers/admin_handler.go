package handlers

import (
	"net/http"

	"jobscape_backend/internal/middleware"
	"jobscape_backend/internal/models"
	"jobscape_backend/internal/services"
	"jobscape_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	*BaseHandler
	adminService        services.AdminService
	verificationService services.VerificationService
}

func NewAdminHandler(base *BaseHandler, adminService services.AdminService, verificationService services.VerificationService) *AdminHandler {
	return &AdminHandler{
		BaseHandler:         base,
		adminService:        adminService,
		verificationService: verificationService,
	}
}

func (h *AdminHandler) RegisterRoutes(r *gin.RouterGroup) {
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleAdmin))
	{
		admin.GET("/verifications/pending", h.PendingVerifications)
		admin.GET("/verifications/stats", h.Stats)
		admin.GET("/employers", h.ListEmployers)
		admin.GET("/employers/:employerId/verification", h.VerificationDetail)
		admin.POST("/employers/:employerId/approve", h.Approve)
		admin.POST("/employers/:employerId/reject", h.Reject)
		admin.POST("/employers/:employerId/suspend", h.Suspend)
	}
}

func (h *AdminHandler) PendingVerifications(c *gin.Context) {
	page, pageSize := ParsePagination(c)
	items, total, err := h.adminService.PendingVerifications(pageSize, (page-1)*pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"pending":   items,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.adminService.Stats()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *AdminHandler) ListEmployers(c *gin.Context) {
	page, pageSize := ParsePagination(c)
	tier := c.Query("tier")
	employers, total, err := h.adminService.ListEmployers(tier, pageSize, (page-1)*pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"employers": employers,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

func (h *AdminHandler) VerificationDetail(c *gin.Context) {
	detail, err := h.adminService.VerificationDetail(c.Param("employerId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *AdminHandler) Approve(c *gin.Context) {
	h.decide(c, h.verificationService.Approve, "Employer approved")
}

func (h *AdminHandler) Reject(c *gin.Context) {
	h.decide(c, h.verificationService.Reject, "Employer rejected")
}

func (h *AdminHandler) Suspend(c *gin.Context) {
	h.decide(c, h.verificationService.Suspend, "Employer suspended")
}

func (h *AdminHandler) decide(c *gin.Context, verdict func(employerID, adminID, notes string) error, message string) {
	adminID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	// Notes are optional, so an empty body is fine.
	var req dto.AdminDecisionRequest
	if c.Request.ContentLength > 0 && !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := verdict(c.Param("employerId"), adminID, req.Notes); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": message})
}
