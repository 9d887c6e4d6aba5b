// Package apierror defines the JSON error envelope shared by every 4xx/5xx
// response. Raw store or library error text never reaches a client; handlers
// wrap a safe message here instead.
package apierror

// APIError carries a single human-readable detail line.
type APIError struct {
	Detail string `json:"detail"`
}

func New(detail string) *APIError {
	return &APIError{Detail: detail}
}

// ValidationError adds a per-field breakdown to the envelope.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

// NewValidation wraps the field messages produced by request validation.
func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "validation failed", Fields: fields}
}
