package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	fileName  = "spacebattle"
	envPrefix = "SPACEBATTLE"
)

// Config is the resolved runtime configuration.
type Config struct {
	LogLevel      string
	Scenario      string
	TickRate      int
	Headless      bool
	Duration      time.Duration
	Workers       int
	Watch         bool
	StatsInterval time.Duration

	Graylog GraylogConfig
	Influx  InfluxConfig
}

type GraylogConfig struct {
	Enabled bool
	Address string
}

type InfluxConfig struct {
	Enabled bool
	URL     string
	Token   string
	Org     string
	Bucket  string
}

func setDefaults() {
	viper.SetDefault("log.level", "info")
	viper.SetDefault("scenario", "battle")
	viper.SetDefault("tick_rate", 60)
	viper.SetDefault("headless", false)
	viper.SetDefault("duration", "0s")
	viper.SetDefault("workers", 0)
	viper.SetDefault("watch", false)
	viper.SetDefault("stats_interval", "1s")

	viper.SetDefault("graylog.enabled", false)
	viper.SetDefault("graylog.address", "localhost:12201")

	viper.SetDefault("influx.enabled", false)
	viper.SetDefault("influx.url", "http://localhost:8086")
	viper.SetDefault("influx.token", "")
	viper.SetDefault("influx.org", "spacebattle")
	viper.SetDefault("influx.bucket", "spacebattle")
}

// Flags registers the command-line overrides. Flag names match config keys.
func Flags(fs *pflag.FlagSet) {
	fs.String("log.level", "info", "log level: trace, debug, info, warn, error")
	fs.String("scenario", "battle", "scenario name or path to a scenario YAML file")
	fs.Int("tick_rate", 60, "simulation ticks per second")
	fs.Bool("headless", false, "run without a window")
	fs.Duration("duration", 0, "stop after this much simulated time; 0 runs until interrupted")
	fs.Int("workers", 0, "worker goroutines for parallel passes; 0 uses GOMAXPROCS")
	fs.Bool("watch", false, "hot reload tuning and objective scripts from prefabs/")
	fs.Duration("stats_interval", time.Second, "how often population stats are reported")
}

// Load resolves configuration from defaults, an optional spacebattle.yaml
// in configDir, SPACEBATTLE_* environment variables and the flags that were
// set on fs, in increasing order of precedence.
func Load(fs *pflag.FlagSet, configDir string) error {
	setDefaults()

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if fs != nil {
		if err := viper.BindPFlags(fs); err != nil {
			return fmt.Errorf("config: bind flags: %w", err)
		}
	}

	viper.SetConfigName(fileName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configDir)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("config: read %s: %w", fileName, err)
		}
	}

	return nil
}

// Current snapshots the loaded configuration.
func Current() Config {
	return Config{
		LogLevel:      viper.GetString("log.level"),
		Scenario:      viper.GetString("scenario"),
		TickRate:      viper.GetInt("tick_rate"),
		Headless:      viper.GetBool("headless"),
		Duration:      viper.GetDuration("duration"),
		Workers:       viper.GetInt("workers"),
		Watch:         viper.GetBool("watch"),
		StatsInterval: viper.GetDuration("stats_interval"),
		Graylog: GraylogConfig{
			Enabled: viper.GetBool("graylog.enabled"),
			Address: viper.GetString("graylog.address"),
		},
		Influx: InfluxConfig{
			Enabled: viper.GetBool("influx.enabled"),
			URL:     viper.GetString("influx.url"),
			Token:   viper.GetString("influx.token"),
			Org:     viper.GetString("influx.org"),
			Bucket:  viper.GetString("influx.bucket"),
		},
	}
}

// Validate checks values viper cannot type-check.
func (c Config) Validate() error {
	if c.TickRate <= 0 {
		return fmt.Errorf("config: tick_rate must be positive, got %d", c.TickRate)
	}
	if c.Duration < 0 {
		return fmt.Errorf("config: duration must not be negative, got %s", c.Duration)
	}
	if c.StatsInterval <= 0 {
		return fmt.Errorf("config: stats_interval must be positive, got %s", c.StatsInterval)
	}
	if c.Workers < 0 {
		return fmt.Errorf("config: workers must not be negative, got %d", c.Workers)
	}
	return nil
}

// TickDelta is the fixed simulation step for the configured tick rate.
func (c Config) TickDelta() float64 {
	return 1 / float64(c.TickRate)
}
