// Package api defines the HTTP response shapes shared by all transport
// handlers and the mapping from application errors to status codes.
package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"games_backend/internal/platform/apperror"
)

// ErrorResponse is the body of every failed request. Detail is only
// populated while gin runs in debug mode and is never part of the contract.
type ErrorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

// MessageResponse is the body of simple acknowledgements.
type MessageResponse struct {
	Message string `json:"message"`
}

// Health reports service liveness.
func Health(c *gin.Context) {
	c.JSON(200, MessageResponse{Message: "ok"})
}

// WriteError maps an error to its HTTP response and logs it. Errors without
// an apperror kind are treated as unexpected backend faults.
func WriteError(c *gin.Context, err error) {
	appErr, ok := apperror.From(err)
	if !ok {
		appErr = apperror.NewInternal("internal server error", err)
	}

	if appErr.StatusCode() >= 500 {
		slog.Error("request failed", "error", appErr.Message, "detail", appErr.Unwrap(), "path", c.FullPath())
	} else {
		slog.Warn("request rejected", "error", appErr.Message, "detail", appErr.Unwrap(), "path", c.FullPath())
	}

	resp := ErrorResponse{Error: appErr.Message}
	if gin.IsDebugging() && appErr.Unwrap() != nil {
		resp.Detail = appErr.Unwrap().Error()
	}
	c.AbortWithStatusJSON(appErr.StatusCode(), resp)
}
