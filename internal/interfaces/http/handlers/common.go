// Package handlers implements the gin handlers behind the public HTTP API.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/InfringeCheck/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/InfringeCheck/pkg/errors"
)

// ErrorResponse is the standard error response body.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

const (
	maskedMessage        = "Internal server error"
	maskedUnavailableMsg = "Service temporarily unavailable"
)

// writeAppError maps an error to the status registered for its code.  Client
// errors carry their message; server errors keep their status but the body
// is masked and the cause is logged.
func writeAppError(c *gin.Context, logger logging.Logger, err error) {
	code := errors.GetCode(err)
	status := errors.HTTPStatusForCode(code)

	ae, ok := errors.FromError(err)
	if !ok || errors.IsServerError(code) {
		logging.FromContext(c.Request.Context(), logger).Error("request failed",
			logging.String("method", c.Request.Method),
			logging.String("path", c.Request.URL.Path),
			logging.Int("status", status),
			logging.String("code", code.String()),
			logging.Err(err))
		c.AbortWithStatusJSON(status, maskedBody(status))
		return
	}

	c.AbortWithStatusJSON(status, ErrorResponse{
		Code:    ae.Code.String(),
		Message: ae.Message,
		Details: ae.Detail,
	})
}

func maskedBody(status int) ErrorResponse {
	if status == http.StatusServiceUnavailable {
		return ErrorResponse{Code: errors.ErrCodeServiceUnavailable.String(), Message: maskedUnavailableMsg}
	}
	return ErrorResponse{Code: errors.ErrCodeInternal.String(), Message: maskedMessage}
}

//Personal.AI order the ending
