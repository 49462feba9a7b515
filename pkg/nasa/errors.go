package nasa

import (
	"fmt"
)

// Class represents a classification of upstream failures.
type Class string

const (
	// ClassClient represents 4xx upstream responses.
	ClassClient Class = "client"

	// ClassServer represents 5xx upstream responses.
	ClassServer Class = "server"

	// ClassNetwork represents transport-level failures (DNS, timeout, ...).
	ClassNetwork Class = "network"
)

// UpstreamError represents a failed upstream call with classification
// context for metrics and logging. The proxy layer never exposes it to
// callers directly; they only ever see the uniform error envelope.
type UpstreamError struct {
	Endpoint   string
	StatusCode int
	Class      Class
	Message    string
	Err        error
}

// Error implements the error interface.
func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("upstream %s error (%s, status %d): %s: %v",
			e.Class, e.Endpoint, e.StatusCode, e.Message, e.Err)
	}
	return fmt.Sprintf("upstream %s error (%s, status %d): %s",
		e.Class, e.Endpoint, e.StatusCode, e.Message)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// classifyStatus categorizes an HTTP status code.
func classifyStatus(status int) Class {
	switch {
	case status >= 400 && status < 500:
		return ClassClient
	case status >= 500:
		return ClassServer
	default:
		return ""
	}
}
