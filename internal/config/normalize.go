package config

import "gitlab.com/d21d3q/godsmr/pkg/godsmr"

// Normalize applies post-validation defaults. It is allowed to mutate
// configuration and MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	// The fifth revision pushes unsolicited telegrams at 115200 8N1.
	if cfg.Port.BaudRate == 0 {
		cfg.Port.BaudRate = 115200
	}
	if cfg.Port.DataBits == 0 {
		cfg.Port.DataBits = 8
	}
	if cfg.Port.StopBits == 0 {
		cfg.Port.StopBits = 1
	}
	if cfg.Port.Parity == "" {
		cfg.Port.Parity = "N"
	}
	if cfg.Port.TimeoutMs == 0 {
		cfg.Port.TimeoutMs = 5000
	}
	if cfg.Decode.Vocabulary == "" {
		cfg.Decode.Vocabulary = string(godsmr.VocabularyDSMR5)
	}
}
