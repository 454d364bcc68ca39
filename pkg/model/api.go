package model

import "time"

// Response is the JSON envelope of every HTTP reply.
type Response struct {
	Status    string    `json:"status"`
	RequestID string    `json:"request_id"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
	Error     *APIError `json:"error"`
}

// ErrorCode classifies API errors.
type ErrorCode string

const (
	ErrCodeValidation ErrorCode = "VALIDATION_ERROR"
	ErrCodeNotFound   ErrorCode = "NOT_FOUND"
	ErrCodeAborted    ErrorCode = "ABORTED"
	ErrCodeInternal   ErrorCode = "INTERNAL_ERROR"
)

// APIError is the error payload of a failed request.
type APIError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

func (e *APIError) Error() string {
	return string(e.Code) + ": " + e.Message
}

// SimulateRequest is the body of POST /api/v1/simulate.
type SimulateRequest struct {
	Policy    string    `json:"policy"`
	Quantum   int       `json:"quantum"`
	Processes []Process `json:"processes"`
}

// PolicyInfo describes one registered policy.
type PolicyInfo struct {
	Name        string `json:"name"`
	UsesQuantum bool   `json:"uses_quantum"`
}
