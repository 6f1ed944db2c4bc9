package policy

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownField is returned when a policy names a field the request type does not declare
	ErrUnknownField = errors.New("field is not declared on the request type")
	// ErrInvalidTTL is returned for negative ttl values and values beyond MaxTTLSeconds
	ErrInvalidTTL = errors.New("ttl must be between 0 and 9223372036 seconds")
	// ErrEmptyMethod is returned when a policy is declared without a method key
	ErrEmptyMethod = errors.New("method key cannot be empty")
	// ErrEmptyService is returned when a registry is used without a service identifier
	ErrEmptyService = errors.New("service identifier cannot be empty")
	// ErrMissingSchema is returned when fields are named but no request schema is given
	ErrMissingSchema = errors.New("request schema is required to validate fields")
)

// ConfigurationError reports a cache policy that cannot be built.
// It is raised at service definition time and is never retried.
type ConfigurationError struct {
	Service string
	Method  string
	Field   string
	Err     error
}

func (e *ConfigurationError) Error() string {
	msg := fmt.Sprintf("cache policy %s.%s", e.Service, e.Method)
	if e.Field != "" {
		msg += fmt.Sprintf(" field %q", e.Field)
	}
	return fmt.Sprintf("%s: %v", msg, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// IsConfigurationError reports whether err is or wraps a ConfigurationError
func IsConfigurationError(err error) bool {
	var cfgErr *ConfigurationError
	return errors.As(err, &cfgErr)
}
