package engine

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so YAML configs can use "16ms" style strings
// as well as raw nanosecond integers.
type Duration time.Duration

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Seconds returns the duration as floating-point seconds.
func (d Duration) Seconds() float64 { return time.Duration(d).Seconds() }

func (d Duration) String() string { return time.Duration(d).String() }

// UnmarshalYAML accepts either a duration string or an integer nanosecond
// count.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("engine: invalid duration %q: %w", s, err)
		}
		*d = Duration(parsed)
		return nil
	}
	var n int64
	if err := value.Decode(&n); err != nil {
		return fmt.Errorf("engine: invalid duration node: %w", err)
	}
	*d = Duration(n)
	return nil
}

// MarshalYAML writes the duration back out as a string.
func (d Duration) MarshalYAML() (any, error) { return d.String(), nil }

// Config holds engine settings, loadable from a YAML file.
type Config struct {
	// World settings
	MaxEntities int `json:"max_entities" yaml:"max_entities"`

	// Loop settings
	FixedTimestep Duration `json:"fixed_timestep" yaml:"fixed_timestep"`
	// MaxFrameDelta clamps the elapsed time fed into the accumulator, so a
	// stalled process does not replay a huge burst of fixed steps at once.
	MaxFrameDelta Duration `json:"max_frame_delta" yaml:"max_frame_delta"`

	// Observability
	LogLevel  string          `json:"log_level,omitempty" yaml:"log_level,omitempty"`
	Inspector InspectorConfig `json:"inspector,omitempty" yaml:"inspector,omitempty"`
}

// InspectorConfig configures the websocket debug inspector.
type InspectorConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Addr    string `json:"addr,omitempty" yaml:"addr,omitempty"`
}

// DefaultConfig returns the settings used when no file is supplied.
func DefaultConfig() Config {
	return Config{
		MaxEntities:   5000,
		FixedTimestep: Duration(16 * time.Millisecond),
		MaxFrameDelta: Duration(250 * time.Millisecond),
		LogLevel:      "info",
		Inspector: InspectorConfig{
			Enabled: false,
			Addr:    "127.0.0.1:7909",
		},
	}
}

// LoadConfig reads a YAML config file, layered over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("engine: read config: %w", err)
	}
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("engine: parse config: %w", err)
	}
	if err = cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the loop cannot run with.
func (c Config) Validate() error {
	if c.MaxEntities <= 0 {
		return fmt.Errorf("engine: max_entities must be positive, got %d", c.MaxEntities)
	}
	if c.FixedTimestep <= 0 {
		return fmt.Errorf("engine: fixed_timestep must be positive, got %s", c.FixedTimestep)
	}
	if c.MaxFrameDelta < c.FixedTimestep {
		return fmt.Errorf("engine: max_frame_delta %s is below fixed_timestep %s",
			c.MaxFrameDelta, c.FixedTimestep)
	}
	if c.Inspector.Enabled && c.Inspector.Addr == "" {
		return fmt.Errorf("engine: inspector enabled without an address")
	}
	return nil
}
