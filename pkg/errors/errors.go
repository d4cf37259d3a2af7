package errors

import (
	"errors"
	"fmt"
)

// Domain error types for business logic

var (
	// ErrNotFound indicates a resource was not found
	ErrNotFound = errors.New("resource not found")

	// ErrAlreadyExists indicates a resource already exists
	ErrAlreadyExists = errors.New("resource already exists")

	// ErrInvalidInput indicates invalid input parameters
	ErrInvalidInput = errors.New("invalid input")

	// ErrInternal indicates an internal server error
	ErrInternal = errors.New("internal error")

	// ErrTimeout indicates an operation timeout
	ErrTimeout = errors.New("operation timeout")

	// ErrUnavailable indicates a service is unavailable
	ErrUnavailable = errors.New("service unavailable")
)

// Classification-specific errors

var (
	// ErrEmptyBatch indicates an aggregation was requested over zero records
	ErrEmptyBatch = errors.New("empty classification batch")

	// ErrUnknownProvider indicates an unrecognized classifier provider name
	ErrUnknownProvider = errors.New("unknown classifier provider")

	// ErrMalformedResponse indicates a model response that could not be parsed
	ErrMalformedResponse = errors.New("malformed model response")
)

// Ingestion-specific errors

var (
	// ErrMissingCredentials indicates Reddit API credentials are not configured
	ErrMissingCredentials = errors.New("missing reddit credentials")

	// ErrSubmissionNotFound indicates the requested submission does not exist
	ErrSubmissionNotFound = errors.New("submission not found")

	// ErrRateLimited indicates the platform API rejected a request with 429
	ErrRateLimited = errors.New("rate limited by platform")

	// ErrTokenExchange indicates the OAuth token request failed
	ErrTokenExchange = errors.New("token exchange failed")
)

// Helper functions

// Is checks if err is or wraps target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target type
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap wraps an error with context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

func New(message string) error {
	return errors.New(message)
}

func Newf(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}
