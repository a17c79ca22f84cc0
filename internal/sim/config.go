package sim

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration that unmarshals from YAML strings like "500ms"
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	td, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(td)
	return nil
}

// Config controls a simulated device. All fields are optional; the zero
// config behaves like real firmware with default build options.
type Config struct {
	// Hostname is the advertised instance name (default: random
	// esp32-udp-logger-XXXX, matching the firmware's MAC-derived name)
	Hostname string `yaml:"hostname"`

	// Port is the command (RX) port the simulator listens on
	Port int `yaml:"port"`

	// LogPort is the destination port for broadcast log datagrams
	LogPort int `yaml:"log_port"`

	// Interval is the delay between synthetic log lines
	Interval Duration `yaml:"interval"`

	// Lines is the log line script, cycled forever
	Lines []string `yaml:"lines"`

	// PrefixHostname prepends "[hostname] " to every emitted line,
	// mirroring the firmware's device-prefix build option
	PrefixHostname bool `yaml:"prefix_hostname"`

	// MDNS controls whether the simulator advertises _esp32udplog._udp
	MDNS bool `yaml:"mdns"`
}

// DefaultConfig returns the firmware-matching defaults
func DefaultConfig() *Config {
	return &Config{
		Hostname: fmt.Sprintf("esp32-udp-logger-%02X%02X", rand.Intn(256), rand.Intn(256)),
		Port:     9998,
		LogPort:  9999,
		Interval: Duration(1 * time.Second),
		Lines: []string{
			"I (1024) wifi: connected, channel 6",
			"I (1156) app: sensor sample ok",
			"W (2380) app: retrying upload",
			"I (2511) app: upload complete",
		},
		PrefixHostname: true,
		MDNS:           true,
	}
}

// LoadConfig reads a YAML config file, applying defaults for absent fields
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return cfg, nil
}
