package handlers

import (
	"net/http"

	"jobscape_backend/internal/middleware"
	"jobscape_backend/internal/models"
	"jobscape_backend/internal/services"
	"jobscape_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type EmployerHandler struct {
	*BaseHandler
	employerService services.EmployerService
}

func NewEmployerHandler(base *BaseHandler, employerService services.EmployerService) *EmployerHandler {
	return &EmployerHandler{BaseHandler: base, employerService: employerService}
}

func (h *EmployerHandler) RegisterRoutes(r *gin.RouterGroup) {
	employers := r.Group("/employers")
	employers.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleEmployer))
	{
		employers.POST("/profile", h.CreateProfile)
		employers.GET("/profile", h.GetMyProfile)
		employers.PUT("/profile", h.UpdateProfile)
	}
}

func (h *EmployerHandler) CreateProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateEmployerRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	employer, err := h.employerService.CreateProfile(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, employer)
}

func (h *EmployerHandler) GetMyProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	employer, err := h.employerService.GetProfileByUserID(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, employer)
}

func (h *EmployerHandler) UpdateProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	employer, err := h.employerService.GetProfileByUserID(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	var req dto.UpdateEmployerRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	updated, err := h.employerService.UpdateProfile(employer.ID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}
