package config

import (
	"os"
	"path/filepath"
	"testing"
)

func valid() *Config {
	return &Config{
		Port: PortConfig{Device: "/dev/ttyUSB0"},
	}
}

func TestValidateMinimal(t *testing.T) {
	if err := Validate(valid()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateMissingDevice(t *testing.T) {
	cfg := valid()
	cfg.Port.Device = ""
	if err := Validate(cfg); err == nil {
		t.Fatal("expected error for missing device")
	}
}

func TestValidateBadParity(t *testing.T) {
	cfg := valid()
	cfg.Port.Parity = "X"
	if err := Validate(cfg); err == nil {
		t.Fatal("expected error for parity X")
	}
}

func TestValidateBadVocabulary(t *testing.T) {
	cfg := valid()
	cfg.Decode.Vocabulary = "dsmr6"
	if err := Validate(cfg); err == nil {
		t.Fatal("expected error for unknown vocabulary")
	}
}

func TestNormalizeDefaults(t *testing.T) {
	cfg := valid()
	Normalize(cfg)
	if cfg.Port.BaudRate != 115200 || cfg.Port.DataBits != 8 || cfg.Port.StopBits != 1 || cfg.Port.Parity != "N" {
		t.Fatalf("port defaults not applied: %+v", cfg.Port)
	}
	if cfg.Decode.Vocabulary != "dsmr5" {
		t.Fatalf("vocabulary default not applied: %q", cfg.Decode.Vocabulary)
	}
}

func TestNormalizeKeepsExplicitValues(t *testing.T) {
	cfg := valid()
	cfg.Port.BaudRate = 9600
	cfg.Decode.Vocabulary = "emucs"
	Normalize(cfg)
	if cfg.Port.BaudRate != 9600 || cfg.Decode.Vocabulary != "emucs" {
		t.Fatalf("explicit values overwritten: %+v", cfg)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("port:\n  device: /dev/ttyUSB0\n  baud_rate: 9600\ndecode:\n  vocabulary: emucs\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port.Device != "/dev/ttyUSB0" || cfg.Port.BaudRate != 9600 || cfg.Decode.Vocabulary != "emucs" {
		t.Fatalf("decoded config mismatch: %+v", cfg)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
