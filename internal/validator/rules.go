package validator

import (
	"log"

	"jobscape_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules installs the domain enum rules. Registration failures
// are fatal, the application cannot start with missing rules.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-user-role", validateUserRole)
	mustRegister("is-subscription-tier", validateSubscriptionTier)
	mustRegister("is-company-type", validateCompanyType)
}

// Empty values pass every rule below, 'required' owns presence checks.

func validateUserRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.UserRole(value) {
	case models.UserRoleSeeker, models.UserRoleEmployer, models.UserRoleAdmin:
		return true
	default:
		return false
	}
}

func validateSubscriptionTier(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.ValidSubscriptionTier(value)
}

func validateCompanyType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.CompanyType(value) {
	case models.CompanyRegistered, models.CompanyStartup, models.CompanyOther:
		return true
	default:
		return false
	}
}
