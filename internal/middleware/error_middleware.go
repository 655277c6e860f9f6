package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alijimale/institute-backend/internal/app/models/dto"
	"github.com/alijimale/institute-backend/internal/pkg/apperrors"
	"github.com/alijimale/institute-backend/internal/pkg/logger"
)

// HandleAPIError translates service errors into the uniform failure
// envelope. Sentinels pick the status code and a canned message; a
// CustomError supplies a more specific one. Unmatched errors become a
// 500 carrying the raw error text.
func HandleAPIError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := err.Error()

	switch {
	case errors.Is(err, apperrors.ErrValidationFailed), errors.Is(err, apperrors.ErrInvalidID):
		status = http.StatusBadRequest
		message = "Validation failed"

	case errors.Is(err, apperrors.ErrInvalidCredentials):
		status = http.StatusUnauthorized
		message = "Invalid email or password"

	case errors.Is(err, apperrors.ErrRoleMismatch):
		status = http.StatusUnauthorized
		message = "Account exists with a different role"

	case errors.Is(err, apperrors.ErrUnauthorized):
		status = http.StatusUnauthorized
		message = "Unauthorized"

	case errors.Is(err, apperrors.ErrForbidden):
		status = http.StatusForbidden
		message = "Permission denied"

	case errors.Is(err, apperrors.ErrNotFound),
		errors.Is(err, apperrors.ErrAttendanceNotFound),
		errors.Is(err, apperrors.ErrExamNotFound),
		errors.Is(err, apperrors.ErrStudentNotFound),
		errors.Is(err, apperrors.ErrClassNotFound),
		errors.Is(err, apperrors.ErrTeacherNotFound),
		errors.Is(err, apperrors.ErrBlobNotFound):
		status = http.StatusNotFound
		message = err.Error()

	case errors.Is(err, apperrors.ErrConflict),
		errors.Is(err, apperrors.ErrEmailAlreadyExists),
		errors.Is(err, apperrors.ErrStudentCodeExists):
		status = http.StatusConflict
		message = err.Error()

	case errors.Is(err, apperrors.ErrAssistantUnavailable):
		status = http.StatusServiceUnavailable
		message = "Assistant is currently unavailable"
	}

	// A CustomError carries a more specific message than the canned one.
	var custom *apperrors.CustomError
	if errors.As(err, &custom) && custom.Message != "" {
		message = custom.Message
	}

	if status == http.StatusInternalServerError {
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled service error")
	}

	c.JSON(status, dto.Fail(message))
}
