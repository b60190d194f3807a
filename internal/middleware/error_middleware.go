package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/mentorium/internal/app/models/dto"
	"github.com/yigit/mentorium/internal/pkg/apperrors"
	"github.com/yigit/mentorium/internal/pkg/auth"
	"github.com/yigit/mentorium/internal/pkg/logger"
)

// HandleAPIError maps an error returned by a service to its HTTP status and error envelope.
// Conflicts report 400 except duplicate resources, which report 409.
func HandleAPIError(c *gin.Context, err error) {
	status, detail := classifyError(err)

	var custom *apperrors.CustomError
	if errors.As(err, &custom) {
		if custom.Message != "" {
			detail.Message = custom.Message
		}
		if custom.Details != nil {
			detail.WithDetails(custom.Details)
		}
	}

	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("Request failed")
	}

	c.AbortWithStatusJSON(status, dto.NewErrorResponse(detail))
}

func classifyError(err error) (int, *dto.ErrorDetail) {
	switch {
	case apperrors.Is(err, apperrors.ErrValidationFailed,
		apperrors.ErrInvalidClassID,
		apperrors.ErrInvalidAssignmentID,
		apperrors.ErrInvalidAmount,
		apperrors.ErrMissingPaymentID,
		apperrors.ErrInvalidClassStatus,
		apperrors.ErrInvalidSearchPattern,
		apperrors.ErrApplicationFieldsEmpty,
		apperrors.ErrInvalidDeadline,
		apperrors.ErrInvalidRating):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeValidationFailed, err.Error())

	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, err.Error())

	case apperrors.Is(err, apperrors.ErrAlreadyEnrolled,
		apperrors.ErrApplicationNotPending,
		apperrors.ErrApplicationNotAllowed,
		apperrors.ErrPaymentIncomplete):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeConflict, err.Error())

	case apperrors.Is(err, apperrors.ErrUserNotFound,
		apperrors.ErrClassNotFound,
		apperrors.ErrAssignmentNotFound,
		apperrors.ErrUserAlreadyAdmin):
		return http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, err.Error())

	case errors.Is(err, auth.ErrExpiredToken):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Unauthorized").
			WithDetails("Token has expired")
	case apperrors.Is(err, auth.ErrInvalidToken, auth.ErrMissingEmail):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Unauthorized").
			WithDetails("Invalid token")
	case errors.Is(err, auth.ErrInvalidFormat):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeMalformedHeader, "Unauthorized").
			WithDetails("Authorization header must be 'Bearer <token>'")
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Unauthorized")

	case apperrors.Is(err, apperrors.ErrPermissionDenied, apperrors.ErrStudentMismatch, apperrors.ErrNotClassOwner):
		return http.StatusForbidden, dto.NewErrorDetail(dto.ErrorCodeForbidden, err.Error())

	case errors.Is(err, apperrors.ErrExternalService):
		return http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeExternalServiceError, "Payment provider error").
			WithDetails(err.Error())

	default:
		return http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
	}
}
