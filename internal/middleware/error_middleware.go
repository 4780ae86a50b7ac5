package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/campusreuse/restore/internal/app/models/dto"
	"github.com/campusreuse/restore/internal/pkg/apperrors"
	"github.com/campusreuse/restore/internal/pkg/logger"
)

// HandleAPIError translates service and storage errors into the standard
// error envelope. Controllers call it for every non-binding failure so the
// status mapping lives in exactly one place.
func HandleAPIError(c *gin.Context, err error) {
	message := err.Error()
	var custom *apperrors.CustomError
	if errors.As(err, &custom) && custom.Message != "" {
		message = custom.Message
	}

	switch {
	case errors.Is(err, apperrors.ErrResourceNotFound),
		errors.Is(err, apperrors.ErrDonorNotFound),
		errors.Is(err, apperrors.ErrCategoryNotFound),
		errors.Is(err, apperrors.ErrProductNotFound),
		errors.Is(err, apperrors.ErrFridgeNotFound),
		errors.Is(err, apperrors.ErrCheckoutNotFound),
		errors.Is(err, apperrors.ErrCheckoutItemNotFound),
		errors.Is(err, apperrors.ErrNoActiveCheckout):
		c.JSON(404, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, message)))

	case errors.Is(err, apperrors.ErrConflict),
		errors.Is(err, apperrors.ErrDonorEmailExists),
		errors.Is(err, apperrors.ErrCategoryNameExists),
		errors.Is(err, apperrors.ErrFridgeNumberExists):
		c.JSON(409, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, message)))

	case errors.Is(err, apperrors.ErrStateViolation),
		errors.Is(err, apperrors.ErrFridgeNotAvailable),
		errors.Is(err, apperrors.ErrFridgeHasHistory):
		c.JSON(400, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeStateViolation, message)))

	case errors.Is(err, apperrors.ErrValidationFailed),
		errors.Is(err, apperrors.ErrBadRequest):
		c.JSON(400, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeValidationFailed, message)))

	case errors.Is(err, apperrors.ErrUpstream):
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Upstream failure")
		c.JSON(500, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeExternalServiceError, message)))

	default:
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled error")
		c.JSON(500, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")))
	}
}
