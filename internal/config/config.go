package config

// Config is the top level configuration of the P1 port reader.
type Config struct {
	Port   PortConfig   `yaml:"port"`
	Decode DecodeConfig `yaml:"decode"`
}

// PortConfig describes the serial P1 port.
type PortConfig struct {
	Device    string `yaml:"device"`
	BaudRate  int    `yaml:"baud_rate"`
	DataBits  int    `yaml:"data_bits"`
	StopBits  int    `yaml:"stop_bits"`
	Parity    string `yaml:"parity"`
	TimeoutMs int    `yaml:"timeout_ms"`
}

// DecodeConfig selects how extracted telegrams are decoded.
type DecodeConfig struct {
	Vocabulary string `yaml:"vocabulary"`
}
