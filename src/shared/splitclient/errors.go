package splitclient

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

type ErrorKind string

const (
	NetworkFailure    ErrorKind = "network_failure"
	RemoteFailure     ErrorKind = "remote_failure"
	MalformedResponse ErrorKind = "malformed_response"
	UnexpectedFailure ErrorKind = "unexpected_failure"
)

const (
	networkErrorMessage      = "API Error: Network Error"
	malformedResponseMessage = "API Error: malformed response"
	unexpectedErrorMessage   = "An unexpected error occurred"
)

var _ error = &APIError{}

// APIError is the only error type that leaves SplitAudio. Message is meant
// to be shown to the user as is.
type APIError struct {
	Kind       ErrorKind
	Message    string
	StatusCode int
	Cause      error
}

func (a *APIError) Error() string {
	if a.Cause == nil {
		return a.Message
	}

	return fmt.Sprintf("%s: %s", a.Message, a.Cause.Error())
}

func (a *APIError) Unwrap() error {
	return a.Cause
}

// UserMessage extracts the message to display for any error that came out of
// a split, falling back to a generic one for errors that aren't an APIError
func UserMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}

	return "Failed to process audio file"
}

func networkFailure(cause error) *APIError {
	return &APIError{
		Kind:    NetworkFailure,
		Message: networkErrorMessage,
		Cause:   cause,
	}
}

func remoteFailure(statusCode int, serverMessage string) *APIError {
	message := serverMessage
	if message == "" {
		message = fmt.Sprintf("API Error: %d", statusCode)
	}

	return &APIError{
		Kind:       RemoteFailure,
		Message:    message,
		StatusCode: statusCode,
	}
}

func malformedResponse(statusCode int, cause error) *APIError {
	return &APIError{
		Kind:       MalformedResponse,
		Message:    malformedResponseMessage,
		StatusCode: statusCode,
		Cause:      cause,
	}
}

func unexpectedFailure(cause error) *APIError {
	return &APIError{
		Kind:    UnexpectedFailure,
		Message: unexpectedErrorMessage,
		Cause:   cause,
	}
}
