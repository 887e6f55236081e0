package provider

import (
	"errors"
	"fmt"
)

// ConfigurationError reports a required input that could not be defaulted,
// such as a missing RPC client constructor.
type ConfigurationError struct {
	Missing string
	Err     error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("ipfs provider misconfigured: %s: %v", e.Missing, e.Err)
	}
	return fmt.Sprintf("ipfs provider misconfigured: missing %s", e.Missing)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// IsConfigurationError reports whether err is, or wraps, a *ConfigurationError.
func IsConfigurationError(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}
