package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/uniadvisor/internal/app/models/dto"
	"github.com/yigit/uniadvisor/internal/pkg/apperrors"
	"github.com/yigit/uniadvisor/internal/pkg/logger"
)

// HandleAPIError maps service errors to the standard error envelope.
// Unknown errors become a generic 500 and are logged in full.
func HandleAPIError(c *gin.Context, err error) {
	status, detail := errorToResponse(err)

	if status >= http.StatusInternalServerError {
		logger.Error().
			Err(err).
			Str("path", c.Request.URL.Path).
			Str("request_id", GetRequestID(c)).
			Msg("Request failed")
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(detail))
}

func errorToResponse(err error) (int, *dto.ErrorDetail) {
	switch {
	case errors.Is(err, apperrors.ErrValidationFailed):
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, apperrors.MessageOf(err, "Validation failed"))
		if details := apperrors.DetailsOf(err); details != nil {
			detail.WithDetails(details)
		}
		return http.StatusBadRequest, detail
	case errors.Is(err, apperrors.ErrBadRequest), errors.Is(err, apperrors.ErrUnknownUniversity):
		return http.StatusBadRequest,
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, apperrors.MessageOf(err, "Bad request"))
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return http.StatusUnauthorized,
			dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Invalid credentials")
	case errors.Is(err, apperrors.ErrTokenExpired):
		return http.StatusUnauthorized,
			dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token expired")
	case errors.Is(err, apperrors.ErrTokenInvalid), errors.Is(err, apperrors.ErrInvalidFormat):
		return http.StatusUnauthorized,
			dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid token")
	case errors.Is(err, apperrors.ErrTokenMissing):
		return http.StatusUnauthorized,
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
	case errors.Is(err, apperrors.ErrResourceNotFound), errors.Is(err, apperrors.ErrCatalogNotLoaded):
		return http.StatusNotFound,
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, apperrors.MessageOf(err, "Resource not found"))
	case errors.Is(err, apperrors.ErrRateLimited):
		return http.StatusTooManyRequests,
			dto.NewErrorDetail(dto.ErrorCodeRateLimited, "Too many requests")
	case errors.Is(err, apperrors.ErrServiceUnavailable):
		return http.StatusServiceUnavailable,
			dto.NewErrorDetail(dto.ErrorCodeServiceUnavailable, apperrors.MessageOf(err, "Service unavailable"))
	default:
		return http.StatusInternalServerError,
			dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
	}
}
