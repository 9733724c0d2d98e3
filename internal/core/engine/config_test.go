package engine

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestLoadConfig(t *testing.T) {
	t.Run("OverridesDefaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "zephyr.yaml")
		data := []byte(`
max_entities: 128
fixed_timestep: 8ms
log_level: debug
inspector:
  enabled: true
  addr: "127.0.0.1:9000"
`)
		require.NoError(t, os.WriteFile(path, data, 0o600))

		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		require.Equal(t, 128, cfg.MaxEntities)
		require.Equal(t, Duration(8*time.Millisecond), cfg.FixedTimestep)
		require.Equal(t, "debug", cfg.LogLevel)
		require.True(t, cfg.Inspector.Enabled)
		require.Equal(t, "127.0.0.1:9000", cfg.Inspector.Addr)
		// untouched keys keep their defaults
		require.Equal(t, DefaultConfig().MaxFrameDelta, cfg.MaxFrameDelta)
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
	})

	t.Run("RejectsInvalid", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("max_entities: -1\n"), 0o600))
		_, err := LoadConfig(path)
		require.Error(t, err)
	})
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"ZeroTimestep", func(c *Config) { c.FixedTimestep = 0 }},
		{"ZeroEntities", func(c *Config) { c.MaxEntities = 0 }},
		{"FrameDeltaBelowStep", func(c *Config) { c.MaxFrameDelta = c.FixedTimestep / 2 }},
		{"InspectorWithoutAddr", func(c *Config) {
			c.Inspector.Enabled = true
			c.Inspector.Addr = ""
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			require.Error(t, cfg.Validate())
		})
	}
}
