package handlers

import (
	"jobscape_backend/internal/services"
	"jobscape_backend/internal/validator"
)

// AppHandlers holds every HTTP handler of the application.
type AppHandlers struct {
	AuthHandler         *AuthHandler
	EmployerHandler     *EmployerHandler
	VerificationHandler *VerificationHandler
	JobHandler          *JobHandler
	SubscriptionHandler *SubscriptionHandler
	AdminHandler        *AdminHandler
}

func NewAppHandlers(sc *services.ServiceContainer, v *validator.Validator) *AppHandlers {
	base := NewBaseHandler(v)

	return &AppHandlers{
		AuthHandler:         NewAuthHandler(base, sc.AuthService),
		EmployerHandler:     NewEmployerHandler(base, sc.EmployerService),
		VerificationHandler: NewVerificationHandler(base, sc.VerificationService, sc.DocumentService, sc.EmployerService),
		JobHandler:          NewJobHandler(base, sc.JobService, sc.QuotaService, sc.EmployerService),
		SubscriptionHandler: NewSubscriptionHandler(base, sc.SubscriptionService, sc.QuotaService, sc.EmployerService),
		AdminHandler:        NewAdminHandler(base, sc.AdminService, sc.VerificationService),
	}
}
