package handlers

import (
	"net/http"

	"jobscape_backend/internal/middleware"
	"jobscape_backend/internal/models"
	"jobscape_backend/internal/services"
	"jobscape_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type SubscriptionHandler struct {
	*BaseHandler
	subscriptionService services.SubscriptionService
	quotaService        services.QuotaService
	employerService     services.EmployerService
}

func NewSubscriptionHandler(
	base *BaseHandler,
	subscriptionService services.SubscriptionService,
	quotaService services.QuotaService,
	employerService services.EmployerService,
) *SubscriptionHandler {
	return &SubscriptionHandler{
		BaseHandler:         base,
		subscriptionService: subscriptionService,
		quotaService:        quotaService,
		employerService:     employerService,
	}
}

func (h *SubscriptionHandler) RegisterRoutes(r *gin.RouterGroup) {
	// Public pricing information
	r.GET("/subscriptions/pricing", h.GetPricing)
	r.GET("/subscriptions/quota-matrix", h.GetQuotaMatrix)

	subscriptions := r.Group("/subscriptions")
	subscriptions.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleEmployer))
	{
		subscriptions.GET("/my", h.GetMySubscription)
		subscriptions.POST("/upgrade", h.Upgrade)
		subscriptions.POST("/cancel", h.Cancel)
	}
}

func (h *SubscriptionHandler) currentEmployer(c *gin.Context) (*models.Employer, bool) {
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

func (h *SubscriptionHandler) GetPricing(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"pricing": h.subscriptionService.Pricing()})
}

func (h *SubscriptionHandler) GetQuotaMatrix(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"quota_matrix": h.quotaService.Matrix()})
}

func (h *SubscriptionHandler) GetMySubscription(c *gin.Context) {
	employer, ok := h.currentEmployer(c)
	if !ok {
		return
	}

	info, err := h.subscriptionService.Info(employer.ID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, info)
}

func (h *SubscriptionHandler) Upgrade(c *gin.Context) {
	employer, ok := h.currentEmployer(c)
	if !ok {
		return
	}

	var req dto.UpgradeSubscriptionRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	info, err := h.subscriptionService.Upgrade(employer.ID, req.Tier)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, info)
}

func (h *SubscriptionHandler) Cancel(c *gin.Context) {
	employer, ok := h.currentEmployer(c)
	if !ok {
		return
	}

	if err := h.subscriptionService.Cancel(employer.ID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Subscription cancelled"})
}
