package configuration

import (
	"errors"
	"fmt"
	"slices"

	"pratdiff/internal/diff"
)

// Validate checks the loaded configuration, configPath is only used in the error message
func Validate(configPath string) error {
	return validateConfig(&CurrentConfig, configPath)
}

func validateConfig(c *Configuration, path string) error {
	var errs []error

	if c.Context < 0 {
		errs = append(errs, fmt.Errorf("context must not be negative, got %d", c.Context))
	}
	if c.MaxLines < 0 {
		errs = append(errs, fmt.Errorf("maxLines must not be negative, got %d", c.MaxLines))
	}
	if !slices.Contains(ColorChoices, c.Color) {
		errs = append(errs, fmt.Errorf("color must be one of %v, got %q", ColorChoices, c.Color))
	}
	if _, err := diff.ParseAlgorithm(c.Algorithm); err != nil {
		errs = append(errs, err)
	}
	if c.Profiling.Enabled && (c.Profiling.Port <= 0 || c.Profiling.Port > 65535) {
		errs = append(errs, fmt.Errorf("profiling port out of range: %d", c.Profiling.Port))
	}

	if len(errs) == 0 {
		return nil
	}
	if path == "" {
		path = "<defaults>"
	}
	return fmt.Errorf("invalid configuration (%s): %w", path, errors.Join(errs...))
}
