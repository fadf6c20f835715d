package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/Graylog2/go-gelf/gelf"
	"github.com/rs/zerolog"
)

type Options struct {
	Level string
	// Console receives human readable output. Defaults to os.Stdout.
	Console io.Writer
	NoColor bool
	// GraylogAddress enables GELF over UDP when not empty.
	GraylogAddress string
}

// ParseLevel maps a config level name to a zerolog level. Unknown names fall
// back to info.
func ParseLevel(s string) zerolog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TRACE":
		return zerolog.TraceLevel
	case "DEBUG":
		return zerolog.DebugLevel
	case "INFO":
		return zerolog.InfoLevel
	case "WARN":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// New builds the process logger. The returned close function releases the
// Graylog connection, if any.
func New(opts Options) (zerolog.Logger, func() error, error) {
	zerolog.TimestampFunc = func() time.Time {
		return time.Now().UTC()
	}

	console := opts.Console
	if console == nil {
		console = os.Stdout
	}
	writers := []io.Writer{
		zerolog.ConsoleWriter{
			Out:        console,
			TimeFormat: time.RFC3339,
			NoColor:    opts.NoColor,
		},
	}

	closeFn := func() error { return nil }
	if opts.GraylogAddress != "" {
		gw, err := gelf.NewWriter(opts.GraylogAddress)
		if err != nil {
			return zerolog.Nop(), closeFn, fmt.Errorf("logging: graylog %s: %w", opts.GraylogAddress, err)
		}
		writers = append(writers, gw)
		closeFn = gw.Close
	}

	logger := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(ParseLevel(opts.Level)).
		With().Timestamp().Str("app", "spacebattle").Logger()

	logger.Info().Str("loglevel", logger.GetLevel().String()).Msg("Logging set up")
	return logger, closeFn, nil
}

// Sampled wraps logger for messages that may fire every tick: at most 5 per
// 10 seconds, then 1 in 100.
func Sampled(logger zerolog.Logger) zerolog.Logger {
	return logger.With().Bool("sampled", true).Logger().Sample(&zerolog.BurstSampler{
		Burst:       5,
		Period:      10 * time.Second,
		NextSampler: &zerolog.BasicSampler{N: 100},
	})
}
