package gateway

import "fmt"

// NetworkError marks a transport failure or a non-success HTTP status with
// no structured server message. Callers surface it as a generic retry-later
// condition.
type NetworkError struct {
	Op     string
	Status int
	Err    error
}

func (e *NetworkError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: unexpected status %d", e.Op, e.Status)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// APIError marks a structured error envelope from the server. Message is
// server-provided and shown to the user verbatim.
type APIError struct {
	Op      string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}
