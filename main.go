package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/spacebattle/battle"
	"github.com/milk9111/spacebattle/config"
	"github.com/milk9111/spacebattle/logging"
	"github.com/milk9111/spacebattle/prefabs"
	"github.com/milk9111/spacebattle/telemetry"
	"github.com/spf13/pflag"
)

func main() {
	fs := pflag.NewFlagSet("spacebattle", pflag.ExitOnError)
	config.Flags(fs)
	configDir := fs.String("config", ".", "directory containing spacebattle.yaml")
	baseMonitor := fs.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	_ = fs.Parse(os.Args[1:])

	if err := config.Load(fs, *configDir); err != nil {
		logger, _, _ := logging.New(logging.Options{})
		logger.Fatal().Err(err).Msg("Failed to load config")
	}
	cfg := config.Current()

	logOpts := logging.Options{Level: cfg.LogLevel}
	if cfg.Graylog.Enabled {
		logOpts.GraylogAddress = cfg.Graylog.Address
	}
	logger, closeLog, err := logging.New(logOpts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "spacebattle: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("Invalid config")
	}

	spec, err := prefabs.LoadScenario(cfg.Scenario)
	if err != nil {
		logger.Fatal().Err(err).Str("scenario", cfg.Scenario).Msg("Failed to load scenario")
	}
	tuning, err := prefabs.LoadTuning(spec.Tuning)
	if err != nil {
		logger.Fatal().Err(err).Str("tuning", spec.Tuning).Msg("Failed to load tuning")
	}

	metrics, err := telemetry.NewMetrics(telemetry.Meter())
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create metrics")
	}

	sim, err := battle.New(spec, tuning, logger, battle.Options{
		Workers: cfg.Workers,
		Sink:    metrics,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create simulation")
	}

	r := &runner{
		sim:     sim,
		cfg:     cfg,
		tuning:  spec.Tuning,
		logger:  logger,
		sampled: logging.Sampled(logger),
		metrics: metrics,
	}
	defer r.close()

	if cfg.Influx.Enabled {
		r.influx = telemetry.NewInfluxSink(cfg.Influx.URL, cfg.Influx.Token, cfg.Influx.Org, cfg.Influx.Bucket, logger)
	}
	if cfg.Watch {
		w, err := prefabs.NewWatcher("prefabs", "prefabs/scripts")
		if err != nil {
			logger.Warn().Err(err).Msg("Hot reload disabled")
		} else {
			r.watcher = w
			logger.Info().Msg("Watching prefabs/ for changes")
		}
	}

	if cfg.Headless {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		runHeadless(ctx, r)
		return
	}

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("spacebattle: " + spec.Name)
	ebiten.SetTPS(cfg.TickRate)

	if err := ebiten.RunGame(NewGame(r)); err != nil && err != errQuit {
		logger.Error().Err(err).Msg("Viewer stopped")
	}
}

func runHeadless(ctx context.Context, r *runner) {
	r.logger.Info().
		Int("tick_rate", r.cfg.TickRate).
		Dur("duration", r.cfg.Duration).
		Msg("Running headless")

	for !r.done() {
		select {
		case <-ctx.Done():
			r.logger.Info().Float64("t", r.sim.Now()).Msg("Interrupted")
			return
		default:
		}
		r.step()
	}

	r.report()
	r.logger.Info().Float64("t", r.sim.Now()).Msg("Finished")
}
