package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/omniafit/omnia-backend/internal/app/models/dto"
	"github.com/omniafit/omnia-backend/internal/pkg/apperrors"
)

// HandleAPIError translates service errors into the HTTP error envelope.
// Every sentinel maps to a stable reason code; anything unclassified falls
// through to a 500 without leaking the underlying diagnostic.
func HandleAPIError(c *gin.Context, err error) {
	var custom *apperrors.CustomError
	var details interface{}
	message := ""
	if errors.As(err, &custom) {
		message = custom.Message
		if custom.Details != nil {
			details = custom.Details
		}
	}

	status, code := classifyError(err)
	if message == "" {
		message = defaultMessage(code)
	}

	detail := dto.NewErrorDetail(code, message)
	if details != nil {
		detail = detail.WithDetails(details)
	}
	c.JSON(status, dto.NewErrorResponse(detail))
}

func classifyError(err error) (int, dto.ReasonCode) {
	switch {
	case errors.Is(err, apperrors.ErrInvalidArgument):
		return http.StatusBadRequest, dto.ReasonInvalidArgument
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound, dto.ReasonNotFound
	case errors.Is(err, apperrors.ErrDuplicateSlot):
		return http.StatusConflict, dto.ReasonDuplicateSlot
	case errors.Is(err, apperrors.ErrSlotTakenSecondSlot):
		return http.StatusConflict, dto.ReasonSlotTakenSecondSlot
	case errors.Is(err, apperrors.ErrSlotTaken):
		return http.StatusConflict, dto.ReasonSlotTaken
	case errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict, dto.ReasonConflict
	case errors.Is(err, apperrors.ErrStorageUnavailable):
		return http.StatusServiceUnavailable, dto.ReasonStorageUnavailable
	case errors.Is(err, apperrors.ErrBadCredentials):
		return http.StatusUnauthorized, dto.ReasonBadCredentials
	case errors.Is(err, apperrors.ErrUnauthenticated),
		errors.Is(err, apperrors.ErrTokenExpired),
		errors.Is(err, apperrors.ErrTokenInvalid):
		return http.StatusUnauthorized, dto.ReasonUnauthenticated
	default:
		return http.StatusInternalServerError, dto.ReasonServerError
	}
}

func defaultMessage(code dto.ReasonCode) string {
	switch code {
	case dto.ReasonInvalidArgument:
		return "Invalid request data"
	case dto.ReasonNotFound:
		return "Resource not found"
	case dto.ReasonDuplicateSlot:
		return "This class already occupies the minute"
	case dto.ReasonSlotTaken:
		return "Another class occupies this minute"
	case dto.ReasonSlotTakenSecondSlot:
		return "Minute occupied; second-slot packing not requested"
	case dto.ReasonConflict:
		return "Storage constraint violated"
	case dto.ReasonStorageUnavailable:
		return "Storage unavailable"
	case dto.ReasonBadCredentials:
		return "Invalid credentials"
	case dto.ReasonUnauthenticated:
		return "Authentication required"
	default:
		return "Internal server error"
	}
}
