package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/vacay-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/vacay-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/vacay-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/vacay-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/vacay-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	if handleLeaveError(w, err) {
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid email or password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrInvalidAccessCode), errors.Is(err, company.ErrInvalidAccessCode):
		BadRequest(w, "Invalid access code", nil)
	case errors.Is(err, auth.ErrEmailExists), errors.Is(err, user.ErrUserEmailExists):
		Conflict(w, "Email already registered")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserInactive):
		Forbidden(w, "Account is deactivated")
	case errors.Is(err, user.ErrInvalidRole):
		BadRequest(w, "Invalid role", nil)
	case errors.Is(err, user.ErrAdminAccessRequired):
		Forbidden(w, "Admin access required")
	case errors.Is(err, user.ErrManagerAccessRequired):
		Forbidden(w, "Manager access required")
	case errors.Is(err, user.ErrCannotModifySelf):
		BadRequest(w, "Cannot change your own role or status", nil)
	case errors.Is(err, user.ErrCompanyIDRequired):
		Forbidden(w, "No company associated with this user")

	// Company domain errors
	case errors.Is(err, company.ErrCompanyNotFound):
		NotFound(w, "Company not found")
	case errors.Is(err, company.ErrAccessCodeExists):
		Conflict(w, "Access code collision, please retry")

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}

func handleLeaveError(w http.ResponseWriter, err error) bool {
	var (
		rangeErr      *leave.InvalidRangeError
		balanceErr    *leave.InsufficientBalanceError
		roleErr       *leave.RoleNotEligibleError
		permErr       *leave.InsufficientPermissionError
		notFoundErr   *leave.NotFoundError
		transitionErr *leave.InvalidTransitionError
	)

	switch {
	case errors.As(err, &rangeErr):
		ErrorWithDetails(w, http.StatusBadRequest, "INVALID_RANGE", "End date must not be before start date", map[string]string{
			"start_date": rangeErr.Start.String(),
			"end_date":   rangeErr.End.String(),
		})
	case errors.As(err, &balanceErr):
		ErrorWithDetails(w, http.StatusBadRequest, "INSUFFICIENT_BALANCE", "Insufficient vacation days", map[string]any{
			"available":        balanceErr.Available,
			"requested":        balanceErr.Requested,
			"exclude_weekends": balanceErr.ExcludeWeekends,
		})
	case errors.As(err, &roleErr):
		ErrorWithDetails(w, http.StatusForbidden, "ROLE_NOT_ELIGIBLE", "Administrators do not hold vacation days", map[string]string{
			"role": string(roleErr.Role),
		})
	case errors.As(err, &permErr):
		Forbidden(w, permErr.Error())
	case errors.As(err, &notFoundErr):
		NotFound(w, notFoundErr.Error())
	case errors.As(err, &transitionErr):
		ErrorWithDetails(w, http.StatusConflict, "INVALID_TRANSITION", "Vacation request already processed", map[string]string{
			"current_status": string(transitionErr.From),
			"target_status":  string(transitionErr.To),
		})
	case errors.Is(err, leave.ErrInvalidDecision):
		BadRequest(w, "Status must be approved or denied", nil)
	default:
		return false
	}
	return true
}
