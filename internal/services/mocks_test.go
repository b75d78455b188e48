package services

import (
	"context"
	"time"

	"jobscape_backend/internal/models"
	"jobscape_backend/internal/repositories"

	"github.com/stretchr/testify/mock"
)

// --- EmployerRepository mock ---

type MockEmployerRepository struct {
	mock.Mock
}

func (m *MockEmployerRepository) Create(employer *models.Employer) error {
	return m.Called(employer).Error(0)
}

func (m *MockEmployerRepository) FindByID(id string) (*models.Employer, error) {
	args := m.Called(id)
	if e, ok := args.Get(0).(*models.Employer); ok {
		return e, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockEmployerRepository) FindByUserID(userID string) (*models.Employer, error) {
	args := m.Called(userID)
	if e, ok := args.Get(0).(*models.Employer); ok {
		return e, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockEmployerRepository) UpdateProfile(employer *models.Employer) error {
	return m.Called(employer).Error(0)
}

func (m *MockEmployerRepository) ResetWorkEmail(employerID, workEmail string) error {
	return m.Called(employerID, workEmail).Error(0)
}

func (m *MockEmployerRepository) SavePendingCode(employerID, codeHash string, sentAt time.Time, resendWindow time.Duration) (bool, error) {
	args := m.Called(employerID, codeHash, sentAt, resendWindow)
	return args.Bool(0), args.Error(1)
}

func (m *MockEmployerRepository) ConfirmWorkEmail(employerID string, tier models.VerificationTier, trustScore int, entry models.AuditEntry) error {
	return m.Called(employerID, tier, trustScore, entry).Error(0)
}

func (m *MockEmployerRepository) SubmitDocuments(employerID string, docs []models.VerificationDocument, tier models.VerificationTier, trustScore int, entry models.AuditEntry) error {
	return m.Called(employerID, docs, tier, trustScore, entry).Error(0)
}

func (m *MockEmployerRepository) ApplyAdminDecision(employerID string, tier models.VerificationTier, trustScore int, verifiedBy string, verifiedAt *time.Time, entry models.AuditEntry) error {
	return m.Called(employerID, tier, trustScore, verifiedBy, verifiedAt, entry).Error(0)
}

func (m *MockEmployerRepository) SaveAlternativeData(employerID string, data map[string]interface{}, trustScore int) error {
	return m.Called(employerID, data, trustScore).Error(0)
}

func (m *MockEmployerRepository) IncrementJobCounters(employerID string, limit int) (bool, error) {
	args := m.Called(employerID, limit)
	return args.Bool(0), args.Error(1)
}

func (m *MockEmployerRepository) DecrementActiveJobCount(employerID string) error {
	return m.Called(employerID).Error(0)
}

func (m *MockEmployerRepository) UpdateSubscription(employerID string, tier models.SubscriptionTier, status models.SubscriptionStatus, expiresAt *time.Time) error {
	return m.Called(employerID, tier, status, expiresAt).Error(0)
}

func (m *MockEmployerRepository) FindByTier(tier models.VerificationTier, limit, offset int) ([]models.Employer, int64, error) {
	args := m.Called(tier, limit, offset)
	return args.Get(0).([]models.Employer), args.Get(1).(int64), args.Error(2)
}

func (m *MockEmployerRepository) FindAll(limit, offset int) ([]models.Employer, int64, error) {
	args := m.Called(limit, offset)
	return args.Get(0).([]models.Employer), args.Get(1).(int64), args.Error(2)
}

func (m *MockEmployerRepository) TierStats() (map[models.VerificationTier]int64, error) {
	args := m.Called()
	return args.Get(0).(map[models.VerificationTier]int64), args.Error(1)
}

// --- JobRepository mock ---

type MockJobRepository struct {
	mock.Mock
}

func (m *MockJobRepository) Create(job *models.Job) error {
	return m.Called(job).Error(0)
}

func (m *MockJobRepository) FindByID(id string) (*models.Job, error) {
	args := m.Called(id)
	if j, ok := args.Get(0).(*models.Job); ok {
		return j, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockJobRepository) FindByIDForEmployer(id, employerID string) (*models.Job, error) {
	args := m.Called(id, employerID)
	if j, ok := args.Get(0).(*models.Job); ok {
		return j, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockJobRepository) FindByEmployer(employerID string, limit, offset int) ([]models.Job, int64, error) {
	args := m.Called(employerID, limit, offset)
	return args.Get(0).([]models.Job), args.Get(1).(int64), args.Error(2)
}

func (m *MockJobRepository) CloseJob(id, reason string, closedAt time.Time) (bool, error) {
	args := m.Called(id, reason, closedAt)
	return args.Bool(0), args.Error(1)
}

func (m *MockJobRepository) Reopen(id string, deadline time.Time) (bool, error) {
	args := m.Called(id, deadline)
	return args.Bool(0), args.Error(1)
}

func (m *MockJobRepository) Delete(id string) error {
	return m.Called(id).Error(0)
}

func (m *MockJobRepository) FindExpiredIDs(now time.Time) ([]repositories.ExpiredJob, error) {
	args := m.Called(now)
	return args.Get(0).([]repositories.ExpiredJob), args.Error(1)
}

// --- UserRepository mock ---

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(id string) (*models.User, error) {
	args := m.Called(id)
	if u, ok := args.Get(0).(*models.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) FindByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if u, ok := args.Get(0).(*models.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) Create(user *models.User) error {
	return m.Called(user).Error(0)
}

func (m *MockUserRepository) UpdateStatus(userID string, status models.UserStatus) error {
	return m.Called(userID, status).Error(0)
}

// --- Notifier mock ---

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) SendVerificationCode(to, companyName, code string) error {
	return m.Called(to, companyName, code).Error(0)
}

func (m *MockNotifier) SendDecision(to, companyName, decision, notes string) error {
	return m.Called(to, companyName, decision, notes).Error(0)
}

// --- ResendLimiter mock ---

type MockLimiter struct {
	mock.Mock
}

func (m *MockLimiter) Reserve(ctx context.Context, key string, window time.Duration) (time.Duration, error) {
	args := m.Called(ctx, key, window)
	return args.Get(0).(time.Duration), args.Error(1)
}

func (m *MockLimiter) Release(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}
