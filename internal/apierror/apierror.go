// Package apierror defines the error envelope the Maquillarte API returns.
// Every 4xx/5xx response goes through these shapes so clients never see
// internals (GORM errors, stack traces); handler.writeServiceError does the
// mapping from service errors.
package apierror

// APIError is the single-message envelope: {"detail": "..."}.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError carries the per-field messages of a failed request binding.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Fields: fields}
}
