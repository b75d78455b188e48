package apperrors

import (
	"fmt"
	"net/http"
)

/*
Factories and predeclared variables for the verification, quota and
subscription domains.
*/

// ErrNotFound converts a repository miss (gorm.ErrRecordNotFound) into an AppError.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists converts a uniqueness violation into an AppError.
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// ErrConflict is the generic 409 factory.
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// --- Verification state machine ---

// ErrInvalidTransition is returned when a tier change not present in the
// transition table is attempted.
func ErrInvalidTransition(from, to string) *AppError {
	return New(
		CodeInvalidTransition,
		"verification",
		fmt.Sprintf("Illegal verification tier transition: %s -> %s", from, to),
		http.StatusConflict,
	)
}

// ErrAlreadyVerified - the work email was already confirmed.
var ErrAlreadyVerified = New(
	CodeConflict,
	"verification",
	"Work email is already verified",
	http.StatusConflict,
)

// ErrNoPendingCode - confirm was called without an outstanding code.
var ErrNoPendingCode = New(
	CodeNotFound,
	"verification",
	"No pending verification code. Request a new one first",
	http.StatusNotFound,
)

// ErrCodeExpired - the outstanding code is past its 15 minute window.
var ErrCodeExpired = New(
	CodeExpired,
	"verification",
	"Verification code has expired. Request a new one",
	http.StatusGone,
)

// ErrCodeMismatch - the submitted code does not match the pending one.
var ErrCodeMismatch = New(
	CodeValidationFailed,
	"verification",
	"Invalid verification code",
	http.StatusBadRequest,
)

// ErrResendTooSoon builds the rate-limit error for code resends. Details carry
// the number of seconds the caller has to wait.
func ErrResendTooSoon(retryAfterSeconds int) *AppError {
	return New(
		CodeRateLimited,
		"verification",
		"Verification code was sent recently. Please wait before requesting another",
		http.StatusTooManyRequests,
	).WithDetails(map[string]int{"retry_after_seconds": retryAfterSeconds})
}

// ErrInvalidTier - a tier filter value outside the closed tier set.
var ErrInvalidTier = New(
	CodeValidationFailed,
	"verification",
	"Invalid verification tier",
	http.StatusBadRequest,
)

// ErrIncompleteDocuments - document submission without one complete set.
var ErrIncompleteDocuments = New(
	CodeValidationFailed,
	"verification",
	"At least one complete document set (identifier + file) is required",
	http.StatusBadRequest,
)

// --- Quota enforcement ---

// ErrQuotaExceeded builds the posting-limit error with the live counters attached.
func ErrQuotaExceeded(active, limit int) *AppError {
	return New(
		CodeLimitExceeded,
		"quota",
		fmt.Sprintf("Job posting limit reached (%d/%d). Upgrade subscription or verification tier", active, limit),
		http.StatusForbidden,
	).WithDetails(map[string]int{"active": active, "limit": limit})
}

// ErrSubscriptionInactive - posting with a non-ACTIVE subscription.
var ErrSubscriptionInactive = New(
	CodeForbidden,
	"quota",
	"Subscription is not active",
	http.StatusForbidden,
)

// ErrVerificationRequired - posting while UNVERIFIED.
var ErrVerificationRequired = New(
	CodeForbidden,
	"quota",
	"Please verify your work email first",
	http.StatusForbidden,
)

// ErrAccountSuspended - posting while SUSPENDED.
var ErrAccountSuspended = New(
	CodeForbidden,
	"quota",
	"Account is suspended",
	http.StatusForbidden,
)

// ErrVerificationRejected - posting after a REJECTED decision.
var ErrVerificationRejected = New(
	CodeForbidden,
	"quota",
	"Verification was rejected. Please contact support",
	http.StatusForbidden,
)

// --- Auth ---

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email already in use",
	http.StatusConflict,
)

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

// --- Subscription ---

var ErrSubscriptionCancelled = New(
	CodeConflict,
	"subscription",
	"Subscription is already cancelled",
	http.StatusConflict,
)

var ErrInvalidSubscriptionTier = New(
	CodeValidationFailed,
	"subscription",
	"Invalid subscription tier",
	http.StatusBadRequest,
)
