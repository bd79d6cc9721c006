package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/SAIMANIDEEP29/donor-network/internal/domain"
	"github.com/SAIMANIDEEP29/donor-network/internal/service/admin"
	"github.com/SAIMANIDEEP29/donor-network/internal/service/auth"
	"github.com/SAIMANIDEEP29/donor-network/internal/service/bloodbank"
	"github.com/SAIMANIDEEP29/donor-network/internal/service/profile"
	"github.com/SAIMANIDEEP29/donor-network/internal/service/request"
)

type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
	TraceID string         `json:"trace_id,omitempty"`
}

// ErrorHandler is the app-level error handler. Handlers return service errors
// as-is; the mapping from sentinel to status code lives here.
func ErrorHandler(c *fiber.Ctx, err error) error {
	status, resp := classify(err)
	resp.TraceID = uuid.New().String()[:8]
	return c.Status(status).JSON(resp)
}

func classify(err error) (int, ErrorResponse) {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code, ErrorResponse{
			Code:    codeForStatus(fiberErr.Code),
			Message: fiberErr.Message,
		}
	}

	if cooldown, ok := domain.IsCooldown(err); ok {
		return fiber.StatusUnprocessableEntity, ErrorResponse{
			Code:    "COOLDOWN_ACTIVE",
			Message: err.Error(),
			Details: map[string]any{"days_remaining": cooldown.DaysRemaining},
		}
	}

	switch {
	case errors.Is(err, domain.ErrNotWilling):
		return fiber.StatusUnprocessableEntity, ErrorResponse{Code: "NOT_WILLING", Message: err.Error()}
	case errors.Is(err, domain.ErrNotAvailable):
		return fiber.StatusUnprocessableEntity, ErrorResponse{Code: "NOT_AVAILABLE", Message: err.Error()}
	case errors.Is(err, domain.ErrIncompatibleGroup):
		return fiber.StatusUnprocessableEntity, ErrorResponse{Code: "INCOMPATIBLE_GROUP", Message: err.Error()}
	case errors.Is(err, domain.ErrSelfAcceptance):
		return fiber.StatusUnprocessableEntity, ErrorResponse{Code: "SELF_ACCEPTANCE_FORBIDDEN", Message: err.Error()}
	case errors.Is(err, domain.ErrAlreadyAccepted):
		return fiber.StatusConflict, ErrorResponse{Code: "ALREADY_ACCEPTED", Message: err.Error()}
	case errors.Is(err, domain.ErrInvalidStateTransition):
		return fiber.StatusConflict, ErrorResponse{Code: "INVALID_STATE_TRANSITION", Message: err.Error()}
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, ErrorResponse{Code: "CONFLICT", Message: err.Error()}

	case errors.Is(err, request.ErrRequestNotFound),
		errors.Is(err, request.ErrAcceptanceNotFound),
		errors.Is(err, request.ErrProfileNotFound),
		errors.Is(err, profile.ErrProfileNotFound),
		errors.Is(err, bloodbank.ErrBloodBankNotFound),
		errors.Is(err, admin.ErrUserNotFound),
		errors.Is(err, auth.ErrUserNotFound):
		return fiber.StatusNotFound, ErrorResponse{Code: "NOT_FOUND", Message: err.Error()}

	case errors.Is(err, request.ErrNotRequestOwner):
		return fiber.StatusForbidden, ErrorResponse{Code: "FORBIDDEN", Message: err.Error()}

	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenExpired),
		errors.Is(err, auth.ErrEmailNotVerified):
		return fiber.StatusUnauthorized, ErrorResponse{Code: "UNAUTHORIZED", Message: err.Error()}

	case errors.Is(err, auth.ErrEmailExists):
		return fiber.StatusConflict, ErrorResponse{Code: "EMAIL_EXISTS", Message: err.Error()}

	case errors.Is(err, request.ErrInvalidBloodGroup),
		errors.Is(err, request.ErrInvalidUrgency),
		errors.Is(err, request.ErrInvalidAcceptanceStatus),
		errors.Is(err, profile.ErrInvalidBloodGroup),
		errors.Is(err, bloodbank.ErrInvalidBloodGroup),
		errors.Is(err, bloodbank.ErrNegativeUnits),
		errors.Is(err, bloodbank.ErrInvalidFileType),
		errors.Is(err, admin.ErrInvalidRole),
		errors.Is(err, auth.ErrInvalidBloodGroup),
		errors.Is(err, auth.ErrBloodBankNameRequired):
		return fiber.StatusBadRequest, ErrorResponse{Code: "BAD_REQUEST", Message: err.Error()}
	}

	return fiber.StatusInternalServerError, ErrorResponse{
		Code:    "INTERNAL_ERROR",
		Message: "Internal server error",
	}
}

func codeForStatus(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return "BAD_REQUEST"
	case fiber.StatusUnauthorized:
		return "UNAUTHORIZED"
	case fiber.StatusForbidden:
		return "FORBIDDEN"
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusConflict:
		return "CONFLICT"
	case fiber.StatusUnprocessableEntity:
		return "VALIDATION_ERROR"
	default:
		return "INTERNAL_ERROR"
	}
}

func BadRequest(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusBadRequest, message)
}

func Unauthorized(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusUnauthorized, message)
}

func Forbidden(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusForbidden, message)
}

func NotFound(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusNotFound, message)
}
