package api

import "errors"

// NetworkError indicates a transport-level failure: the request never reached
// the backend, or no well-formed response came back.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return "connection error: " + e.Err.Error()
}

func (e *NetworkError) Unwrap() error { return e.Err }

// APIError carries the backend-provided reason from a well-formed response
// whose payload has an "error" field.
type APIError struct {
	Message string
}

func (e *APIError) Error() string { return e.Message }

// IsNetworkError reports whether err is (or wraps) a transport failure.
func IsNetworkError(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// IsAPIError reports whether err carries a backend error message, and returns
// that message when it does.
func IsAPIError(err error) (string, bool) {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.Message, true
	}
	return "", false
}
