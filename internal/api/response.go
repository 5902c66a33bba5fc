// Package api defines the uniform response envelope every endpoint replies with.
package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Envelope is the wire shape of every API response. Success is true exactly
// when Error is empty; clients rely on the two being mutually exclusive.
type Envelope struct {
	Success   bool   `json:"success"`
	Status    int    `json:"status"`
	Timestamp string `json:"timestamp"`
	Data      any    `json:"data,omitempty"`
	Message   string `json:"message,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Options carries the optional parts of a response. Zero values are omitted
// from the emitted envelope.
type Options struct {
	Data    any
	Message string
	Error   string
	Status  int
}

// Respond is the single shaper all endpoints route through. Status defaults
// to 200 when unset.
func Respond(c *gin.Context, opts Options) {
	status := opts.Status
	if status == 0 {
		status = http.StatusOK
	}

	c.JSON(status, Envelope{
		Success:   opts.Error == "",
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Data:      opts.Data,
		Message:   opts.Message,
		Error:     opts.Error,
	})
}

// Success sends a 2xx envelope.
func Success(c *gin.Context, opts Options) {
	opts.Error = ""
	Respond(c, opts)
}

// Error sends a failure envelope, defaulting to 500 "Internal Server Error".
func Error(c *gin.Context, opts Options) {
	if opts.Error == "" {
		opts.Error = "Internal Server Error"
	}
	if opts.Status == 0 {
		opts.Status = http.StatusInternalServerError
	}
	opts.Data = nil
	Respond(c, opts)
}

// ValidationError sends a 400 envelope.
func ValidationError(c *gin.Context, errMsg, message string) {
	if errMsg == "" {
		errMsg = "Validation Failed"
	}
	Error(c, Options{Error: errMsg, Message: message, Status: http.StatusBadRequest})
}

// AuthError sends a 401 envelope.
func AuthError(c *gin.Context, errMsg, message string) {
	if errMsg == "" {
		errMsg = "Authentication Failed"
	}
	Error(c, Options{Error: errMsg, Message: message, Status: http.StatusUnauthorized})
}

// NotFound sends a 404 envelope.
func NotFound(c *gin.Context, errMsg, message string) {
	if errMsg == "" {
		errMsg = "Resource Not Found"
	}
	Error(c, Options{Error: errMsg, Message: message, Status: http.StatusNotFound})
}
