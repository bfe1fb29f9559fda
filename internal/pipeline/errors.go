package pipeline

import "fmt"

// ConfigError indicates that a Reader or call option set cannot be honored:
// an unsupported language combination, mutually exclusive character filters,
// or a model asset that could not be verified. It is always raised before any
// image work begins, so a caller that sees one knows no partial processing
// happened.
type ConfigError struct {
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("pipeline config: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("pipeline config: %s", e.Reason)
}

func (e *ConfigError) Unwrap() error { return e.Err }

func configErrf(format string, args ...any) *ConfigError {
	return &ConfigError{Reason: fmt.Sprintf(format, args...)}
}
