package httputil

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/jwalitptl/hms-api/pkg/errors"
)

// Response wraps all API responses
type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Field   string      `json:"field,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// RespondWithSuccess sends a success response
func RespondWithSuccess(c *gin.Context, status int, data interface{}) {
	c.JSON(status, Response{
		Status: "success",
		Data:   data,
	})
}

// RespondWithError translates an application error to its HTTP status.
// Internal and profile-integrity faults are reported generically; the
// underlying error stays server-side for the error middleware to log.
func RespondWithError(c *gin.Context, err error) {
	_ = c.Error(err)

	status := statusFor(apperrors.KindOf(err))

	var (
		message = "internal server error"
		field   string
	)
	if appErr, ok := err.(*apperrors.AppError); ok && status < http.StatusInternalServerError {
		message = appErr.Message
		field = appErr.Field
	}

	c.JSON(status, Response{
		Status:  "error",
		Message: message,
		Field:   field,
	})
}

func statusFor(kind apperrors.Kind) int {
	switch kind {
	case apperrors.KindValidation:
		return http.StatusBadRequest
	case apperrors.KindAuthentication:
		return http.StatusUnauthorized
	case apperrors.KindPermission:
		return http.StatusForbidden
	case apperrors.KindNotFound:
		return http.StatusNotFound
	case apperrors.KindConflict:
		return http.StatusConflict
	default:
		// KindProfileIntegrity and KindInternal are server faults.
		return http.StatusInternalServerError
	}
}
