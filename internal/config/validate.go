package config

import (
	"fmt"

	"gitlab.com/d21d3q/godsmr/pkg/godsmr"
)

// Validate checks configuration correctness. It performs declarative
// validation only and MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg.Port.Device == "" {
		return fmt.Errorf("port: device is required")
	}
	if cfg.Port.BaudRate < 0 {
		return fmt.Errorf("port: baud_rate must not be negative")
	}
	switch cfg.Port.DataBits {
	case 0, 5, 6, 7, 8:
	default:
		return fmt.Errorf("port: data_bits must be 5..8, got %d", cfg.Port.DataBits)
	}
	switch cfg.Port.StopBits {
	case 0, 1, 2:
	default:
		return fmt.Errorf("port: stop_bits must be 1 or 2, got %d", cfg.Port.StopBits)
	}
	switch cfg.Port.Parity {
	case "", "N", "E", "O":
	default:
		return fmt.Errorf("port: parity must be N, E or O, got %q", cfg.Port.Parity)
	}
	if cfg.Port.TimeoutMs < 0 {
		return fmt.Errorf("port: timeout_ms must not be negative")
	}
	if cfg.Decode.Vocabulary != "" {
		if _, err := godsmr.ParseVocabulary(cfg.Decode.Vocabulary); err != nil {
			return fmt.Errorf("decode: %w", err)
		}
	}
	return nil
}
