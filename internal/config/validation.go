package config

import (
	"fmt"
	"net"
)

// Validate validates configuration values.
// Returns sentinel errors that can be checked with errors.Is().
func (c *Config) Validate() error {
	if c == nil {
		return ErrConfigNil
	}

	if c.ModelName == "" {
		return fmt.Errorf("%w: model_name cannot be empty", ErrInvalidModelName)
	}

	// Temperature range: 0.0 (deterministic) to 2.0 (maximum creativity).
	// Reference: Gemini API documentation.
	if c.Temperature < 0.0 || c.Temperature > 2.0 {
		return fmt.Errorf("%w: must be between 0.0 and 2.0, got %.2f", ErrInvalidTemperature, c.Temperature)
	}

	if c.MaxOutputTokens < 1 || c.MaxOutputTokens > 8192 {
		return fmt.Errorf("%w: must be between 1 and 8192, got %d", ErrInvalidMaxTokens, c.MaxOutputTokens)
	}

	if c.DataDir == "" {
		return fmt.Errorf("%w: data_dir cannot be empty", ErrInvalidDataDir)
	}

	if err := validateThreshold("min_confidence", c.MinConfidence); err != nil {
		return err
	}
	if err := validateThreshold("medium_confidence", c.MediumConfidence); err != nil {
		return err
	}
	if err := validateThreshold("high_confidence", c.HighConfidence); err != nil {
		return err
	}
	if c.MinConfidence > c.MediumConfidence || c.MediumConfidence > c.HighConfidence {
		return fmt.Errorf("%w: thresholds must be ordered min <= medium <= high", ErrInvalidThreshold)
	}

	if c.MemoryWindow < 1 || c.MemoryWindow > 100 {
		return fmt.Errorf("%w: must be between 1 and 100, got %d", ErrInvalidMemoryWindow, c.MemoryWindow)
	}

	if len(c.SessionSecret) < 16 {
		return fmt.Errorf("%w: session_secret must be at least 16 bytes (got %d)",
			ErrInvalidSessionSecret, len(c.SessionSecret))
	}

	if c.Addr != "" {
		if _, _, err := net.SplitHostPort(c.Addr); err != nil {
			return fmt.Errorf("invalid addr %q: %w", c.Addr, err)
		}
	}

	return nil
}

func validateThreshold(name string, v float64) error {
	if v < 0.0 || v > 1.0 {
		return fmt.Errorf("%w: %s must be between 0.0 and 1.0, got %.2f", ErrInvalidThreshold, name, v)
	}
	return nil
}
