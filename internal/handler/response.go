package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const (
	CodeInvalidRequest    = "INVALID_REQUEST"
	CodeInvalidQRCode     = "INVALID_QR_CODE"
	CodeScanNotFound      = "SCAN_NOT_FOUND"
	CodePickupNotFound    = "PICKUP_NOT_FOUND"
	CodePickupNotReady    = "PICKUP_NOT_READY"
	CodeInvalidTransition = "INVALID_TRANSITION"
	CodeInternalError     = "INTERNAL_ERROR"
)

type errorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Envelope wraps every /api response.
type Envelope struct {
	Success   bool          `json:"success"`
	Data      any           `json:"data,omitempty"`
	Error     *errorPayload `json:"error,omitempty"`
	Timestamp string        `json:"timestamp"`
}

func NewErrorResponse(code, message string) Envelope {
	return Envelope{
		Success:   false,
		Error:     &errorPayload{Code: code, Message: message},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

func NewDataResponse(data any) Envelope {
	return Envelope{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

func ok(c echo.Context, data any) error {
	return c.JSON(http.StatusOK, NewDataResponse(data))
}

func fail(c echo.Context, status int, code, message string) error {
	return c.JSON(status, NewErrorResponse(code, message))
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	v := formatTime(*t)
	return &v
}
