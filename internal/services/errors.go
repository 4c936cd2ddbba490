package services

// Service-level errors, mapped onto HTTP statuses by the handlers.

type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string { return "Validation error" }

type AuthError struct{ Message string }

func (e *AuthError) Error() string { return e.Message }

type NotFoundError struct{ Message string }

func (e *NotFoundError) Error() string { return e.Message }

type ConflictError struct{ Message string }

func (e *ConflictError) Error() string { return e.Message }

// UpstreamError means the model endpoint answered with a failure status.
type UpstreamError struct {
	Status  int
	Message string
}

func (e *UpstreamError) Error() string { return e.Message }

// ConfigError means the upstream call could not even be attempted, e.g. no
// API key configured.
type ConfigError struct{ Message string }

func (e *ConfigError) Error() string { return e.Message }
