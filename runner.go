package main

import (
	"path/filepath"
	"time"

	"github.com/milk9111/spacebattle/battle"
	"github.com/milk9111/spacebattle/config"
	"github.com/milk9111/spacebattle/prefabs"
	"github.com/milk9111/spacebattle/telemetry"
	"github.com/rs/zerolog"
)

// runner owns the simulation clock and everything that happens between
// ticks: hot reloads and periodic stats. Both the headless loop and the
// viewer drive it from a single goroutine.
type runner struct {
	sim     *battle.Simulation
	cfg     config.Config
	tuning  string
	logger  zerolog.Logger
	sampled zerolog.Logger

	metrics *telemetry.Metrics
	influx  *telemetry.InfluxSink
	watcher *prefabs.Watcher

	lastStats float64
}

// step applies pending file changes, then advances the simulation one tick.
func (r *runner) step() {
	r.applyReloads()
	r.sim.Step(r.cfg.TickDelta())

	now := r.sim.Now()
	if now-r.lastStats >= r.cfg.StatsInterval.Seconds() {
		r.lastStats = now
		r.report()
	}
}

func (r *runner) applyReloads() {
	if r.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-r.watcher.Events:
			if !ok {
				r.watcher = nil
				return
			}
			r.reload(path)
		case err, ok := <-r.watcher.Errors:
			if !ok {
				r.watcher = nil
				return
			}
			r.logger.Warn().Err(err).Msg("prefab watcher error")
		default:
			return
		}
	}
}

func (r *runner) reload(path string) {
	switch {
	case prefabs.IsTuningFile(path, r.tuning):
		spec, err := prefabs.LoadTuning(r.tuning)
		if err != nil {
			r.logger.Error().Err(err).Str("path", path).Msg("tuning reload rejected")
			return
		}
		if err := r.sim.SetTuning(spec); err != nil {
			r.logger.Error().Err(err).Str("path", path).Msg("tuning reload rejected")
		}
	case prefabs.IsScriptFile(path):
		// scripts/ is flat; the watcher may report absolute paths.
		r.sim.ReloadScript(filepath.Base(path))
	default:
		r.logger.Debug().Str("path", path).Msg("ignoring prefab change")
	}
}

func (r *runner) report() {
	pop := r.sim.Population()
	totals := r.sim.Totals()

	if r.metrics != nil {
		r.metrics.ObservePopulation(pop)
	}
	if r.influx != nil {
		r.influx.Write(r.sim.Name(), time.Now(), r.sim.Now(), pop, totals)
	}

	ev := r.sampled.Info().
		Float64("t", r.sim.Now()).
		Int64("spawned", totals.Spawned).
		Int64("fired", totals.Fired).
		Int64("hits", totals.Hits).
		Int64("expired", totals.Expired)
	for key, n := range pop {
		ev = ev.Int(key.Kind.String()+"."+key.Team.String(), n)
	}
	ev.Msg("stats")
}

// done reports whether the configured simulated duration has elapsed.
func (r *runner) done() bool {
	return r.cfg.Duration > 0 && r.sim.Now() >= r.cfg.Duration.Seconds()
}

func (r *runner) close() {
	if r.watcher != nil {
		_ = r.watcher.Close()
	}
	if r.influx != nil {
		r.influx.Close()
	}
}
