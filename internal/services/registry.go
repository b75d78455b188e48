package services

import (
	"jobscape_backend/internal/email"
	"jobscape_backend/internal/ratelimit"
	"jobscape_backend/internal/repositories"
	"jobscape_backend/internal/storage"
)

// ServiceContainer holds every application service.
type ServiceContainer struct {
	AuthService         AuthService
	EmployerService     EmployerService
	VerificationService VerificationService
	DocumentService     DocumentService
	QuotaService        QuotaService
	JobService          JobService
	SubscriptionService SubscriptionService
	AdminService        AdminService
}

// NewServiceContainer wires all services onto the shared repositories and
// infrastructure collaborators.
func NewServiceContainer(
	userRepo repositories.UserRepository,
	employerRepo repositories.EmployerRepository,
	jobRepo repositories.JobRepository,
	notifier email.Notifier,
	limiter ratelimit.ResendLimiter,
	store storage.Storage,
) *ServiceContainer {
	quota := NewQuotaService(employerRepo)

	return &ServiceContainer{
		AuthService:         NewAuthService(userRepo, employerRepo),
		EmployerService:     NewEmployerService(employerRepo, userRepo),
		VerificationService: NewVerificationService(employerRepo, userRepo, notifier, limiter),
		DocumentService:     NewDocumentService(store),
		QuotaService:        quota,
		JobService:          NewJobService(jobRepo, employerRepo, quota),
		SubscriptionService: NewSubscriptionService(employerRepo),
		AdminService:        NewAdminService(employerRepo),
	}
}
