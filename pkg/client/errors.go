package client

import "fmt"

// FieldError is one field-scoped validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// EntityError is a 422 response: the request was well formed but one
// or more fields failed validation.
type EntityError struct {
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors"`
}

func (e *EntityError) Error() string {
	return fmt.Sprintf("validation failed: %s (%d field errors)", e.Message, len(e.Errors))
}

// AuthError is a 401 response: the presented credential was missing,
// expired or revoked.
type AuthError struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("unauthorized: %s", e.Message)
}

// HTTPError covers every other non-2xx response.
type HTTPError struct {
	Status  int    `json:"-"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("request failed with status %d: %s", e.Status, e.Message)
}
