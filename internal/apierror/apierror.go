// Package apierror defines the wire error envelope shared by every non-2xx
// response: {code, message, details?, traceId, timestamp}.
package apierror

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

type Code string

const (
	CodeInvalidRequest      Code = "INVALID_REQUEST"
	CodeValidationError     Code = "VALIDATION_ERROR"
	CodeAffordabilityFailed Code = "AFFORDABILITY_CHECK_FAILED"
	CodeApplicationNotFound Code = "APPLICATION_NOT_FOUND"
	CodeUnauthorized        Code = "UNAUTHORIZED"
	CodeRateLimited         Code = "RATE_LIMITED"
	CodeInternalError       Code = "INTERNAL_ERROR"
)

const timestampLayout = "2006-01-02T15:04:05.000Z"

// Error is a request-terminal API failure. TraceID and Timestamp are minted
// when the error is written, not when it is constructed, so every response
// carries fresh correlation data.
type Error struct {
	Code    Code
	Message string
	Details map[string][]string
	Status  int
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type envelope struct {
	Code      Code                `json:"code"`
	Message   string              `json:"message"`
	Details   map[string][]string `json:"details,omitempty"`
	TraceID   string              `json:"traceId"`
	Timestamp string              `json:"timestamp"`
}

// Write serializes the envelope with a fresh trace id and timestamp.
func Write(w http.ResponseWriter, apiErr *Error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.Status)
	_ = json.NewEncoder(w).Encode(envelope{
		Code:      apiErr.Code,
		Message:   apiErr.Message,
		Details:   apiErr.Details,
		TraceID:   uuid.NewString(),
		Timestamp: time.Now().UTC().Format(timestampLayout),
	})
}

// InvalidRequest covers request-shape failures outside field-level
// validation, such as the token grant contract.
func InvalidRequest(message string) *Error {
	return &Error{Code: CodeInvalidRequest, Message: message, Status: http.StatusBadRequest}
}

// Validation covers missing mandatory fields and unknown products; details
// map dotted field paths to messages.
func Validation(message string, details map[string][]string) *Error {
	return &Error{Code: CodeValidationError, Message: message, Details: details, Status: http.StatusBadRequest}
}

// BoundaryViolation covers per-product amount bounds. Same code as
// Validation but at the stricter 422 severity.
func BoundaryViolation(message string, details map[string][]string) *Error {
	return &Error{Code: CodeValidationError, Message: message, Details: details, Status: http.StatusUnprocessableEntity}
}

func AffordabilityFailed() *Error {
	return &Error{
		Code:    CodeAffordabilityFailed,
		Message: "Requested amount exceeds affordability threshold based on declared income",
		Status:  http.StatusUnprocessableEntity,
	}
}

func NotFound(id string) *Error {
	return &Error{
		Code:    CodeApplicationNotFound,
		Message: fmt.Sprintf("No application found with id %s", id),
		Status:  http.StatusNotFound,
	}
}

func Unauthorized() *Error {
	return &Error{Code: CodeUnauthorized, Message: "Missing or invalid Bearer token", Status: http.StatusUnauthorized}
}

func RateLimited() *Error {
	return &Error{Code: CodeRateLimited, Message: "Too many requests", Status: http.StatusTooManyRequests}
}

// Internal is unreachable with the default in-memory store; it exists for
// the optional postgres/redis backends.
func Internal(message string) *Error {
	return &Error{Code: CodeInternalError, Message: message, Status: http.StatusInternalServerError}
}
