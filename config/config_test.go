package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlagSet(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("spacebattle", pflag.ContinueOnError)
	Flags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestLoad_DefaultValues(t *testing.T) {
	t.Cleanup(viper.Reset)

	require.NoError(t, Load(newFlagSet(t), t.TempDir()))
	cfg := Current()

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "battle", cfg.Scenario)
	assert.Equal(t, 60, cfg.TickRate)
	assert.False(t, cfg.Headless)
	assert.Equal(t, time.Duration(0), cfg.Duration)
	assert.Equal(t, 0, cfg.Workers)
	assert.False(t, cfg.Watch)
	assert.Equal(t, time.Second, cfg.StatsInterval)
	assert.False(t, cfg.Graylog.Enabled)
	assert.Equal(t, "localhost:12201", cfg.Graylog.Address)
	assert.False(t, cfg.Influx.Enabled)
	assert.Equal(t, "http://localhost:8086", cfg.Influx.URL)
	assert.Equal(t, "spacebattle", cfg.Influx.Bucket)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_WithConfigFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	file := `
scenario: skirmish
tick_rate: 30
headless: true
log:
  level: debug
influx:
  enabled: true
  token: secret
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "spacebattle.yaml"), []byte(file), 0644))

	require.NoError(t, Load(newFlagSet(t), dir))
	cfg := Current()

	assert.Equal(t, "skirmish", cfg.Scenario)
	assert.Equal(t, 30, cfg.TickRate)
	assert.True(t, cfg.Headless)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.Influx.Enabled)
	assert.Equal(t, "secret", cfg.Influx.Token)
	assert.InDelta(t, 1.0/30, cfg.TickDelta(), 1e-12)
}

func TestLoad_Precedence(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "spacebattle.yaml"), []byte("scenario: skirmish\nworkers: 2\n"), 0644))
	t.Setenv("SPACEBATTLE_WORKERS", "4")
	t.Setenv("SPACEBATTLE_GRAYLOG_ADDRESS", "graylog:12201")

	require.NoError(t, Load(newFlagSet(t, "--scenario", "boids", "--duration", "30s"), dir))
	cfg := Current()

	assert.Equal(t, "boids", cfg.Scenario, "flag beats file")
	assert.Equal(t, 4, cfg.Workers, "env beats file")
	assert.Equal(t, "graylog:12201", cfg.Graylog.Address)
	assert.Equal(t, 30*time.Second, cfg.Duration)
}

func TestLoad_MalformedFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "spacebattle.yaml"), []byte("scenario: [unterminated"), 0644))

	assert.Error(t, Load(newFlagSet(t), dir))
}

func TestValidate(t *testing.T) {
	base := Config{TickRate: 60, StatsInterval: time.Second}
	require.NoError(t, base.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero_tick_rate", func(c *Config) { c.TickRate = 0 }},
		{"negative_duration", func(c *Config) { c.Duration = -time.Second }},
		{"zero_stats_interval", func(c *Config) { c.StatsInterval = 0 }},
		{"negative_workers", func(c *Config) { c.Workers = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
