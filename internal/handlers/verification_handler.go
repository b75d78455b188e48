package handlers

import (
	"net/http"

	"jobscape_backend/internal/middleware"
	"jobscape_backend/internal/models"
	"jobscape_backend/internal/services"
	"jobscape_backend/internal/services/dto"
	"jobscape_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type VerificationHandler struct {
	*BaseHandler
	verificationService services.VerificationService
	documentService     services.DocumentService
	employerService     services.EmployerService
}

func NewVerificationHandler(
	base *BaseHandler,
	verificationService services.VerificationService,
	documentService services.DocumentService,
	employerService services.EmployerService,
) *VerificationHandler {
	return &VerificationHandler{
		BaseHandler:         base,
		verificationService: verificationService,
		documentService:     documentService,
		employerService:     employerService,
	}
}

func (h *VerificationHandler) RegisterRoutes(r *gin.RouterGroup) {
	verification := r.Group("/verification")
	verification.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleEmployer))
	{
		verification.POST("/send-code", h.SendCode)
		verification.POST("/confirm-code", h.ConfirmCode)
		verification.POST("/documents", h.SubmitDocuments)
		verification.POST("/startup-data", h.SubmitStartupData)
		verification.GET("/status", h.GetStatus)
	}
}

func (h *VerificationHandler) currentEmployer(c *gin.Context) (*models.Employer, bool) {
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

func (h *VerificationHandler) SendCode(c *gin.Context) {
	employer, ok := h.currentEmployer(c)
	if !ok {
		return
	}

	var req dto.SendCodeRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.verificationService.SendCode(c.Request.Context(), employer.ID, req.WorkEmail); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Verification code sent"})
}

func (h *VerificationHandler) ConfirmCode(c *gin.Context) {
	employer, ok := h.currentEmployer(c)
	if !ok {
		return
	}

	var req dto.ConfirmCodeRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.verificationService.ConfirmCode(c.Request.Context(), employer.ID, req.Code); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Work email verified"})
}

// SubmitDocuments accepts a multipart form: repeated "files" parts with
// parallel "types" and "identifiers" values. All files are stored before the
// tier transition is attempted, so a failed transition leaves retrievable
// uploads but no tier change.
func (h *VerificationHandler) SubmitDocuments(c *gin.Context) {
	employer, ok := h.currentEmployer(c)
	if !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid multipart form: "+err.Error()))
		return
	}

	files := form.File["files"]
	types := form.Value["types"]
	identifiers := form.Value["identifiers"]

	if len(files) == 0 {
		apperrors.HandleError(c, apperrors.NewBadRequestError("At least one document file is required"))
		return
	}
	if len(types) != len(files) || len(identifiers) != len(files) {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Each file needs a matching type and identifier"))
		return
	}

	docs := make([]models.VerificationDocument, 0, len(files))
	for i, file := range files {
		if !models.ValidDocumentType(types[i]) {
			apperrors.HandleError(c, apperrors.NewBadRequestError("Unknown document type: "+types[i]))
			return
		}

		doc, err := h.documentService.StoreDocument(
			c.Request.Context(), employer.ID, models.DocumentType(types[i]), identifiers[i], file)
		if err != nil {
			h.HandleServiceError(c, err)
			return
		}
		docs = append(docs, *doc)
	}

	if err := h.verificationService.SubmitDocuments(c.Request.Context(), employer.ID, docs); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Documents submitted for review",
		"documents": docs,
	})
}

func (h *VerificationHandler) SubmitStartupData(c *gin.Context) {
	employer, ok := h.currentEmployer(c)
	if !ok {
		return
	}

	var req dto.StartupDataRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	score, err := h.verificationService.SubmitStartupData(c.Request.Context(), employer.ID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Startup data recorded",
		"trust_score": score,
	})
}

func (h *VerificationHandler) GetStatus(c *gin.Context) {
	employer, ok := h.currentEmployer(c)
	if !ok {
		return
	}

	status, err := h.verificationService.GetStatus(employer.ID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}
