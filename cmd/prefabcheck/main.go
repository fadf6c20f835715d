package main

import (
	"fmt"
	"os"

	"github.com/milk9111/spacebattle/battle"
	"github.com/milk9111/spacebattle/logging"
	"github.com/milk9111/spacebattle/prefabs"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
)

// prefabcheck validates every scenario against its schema and tuning, builds
// it, and optionally steps it for a few simulated seconds.
func main() {
	seconds := pflag.Float64("run", 0, "simulated seconds to step each scenario after building it")
	level := pflag.String("log.level", "warn", "log level")
	pflag.Parse()

	logger, closeLog, err := logging.New(logging.Options{Level: *level, Console: os.Stderr})
	if err != nil {
		fmt.Fprintf(os.Stderr, "prefabcheck: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	names := pflag.Args()
	if len(names) == 0 {
		names = prefabs.Scenarios()
	}

	failed := 0
	for _, name := range names {
		if err := check(name, *seconds, logger); err != nil {
			failed++
			fmt.Printf("FAIL %-12s %v\n", name, err)
			continue
		}
		fmt.Printf("ok   %s\n", name)
	}

	if failed > 0 {
		os.Exit(1)
	}
}

func check(name string, seconds float64, logger zerolog.Logger) error {
	spec, err := prefabs.LoadScenario(name)
	if err != nil {
		return err
	}
	tuning, err := prefabs.LoadTuning(spec.Tuning)
	if err != nil {
		return err
	}
	sim, err := battle.New(spec, tuning, logger, battle.Options{})
	if err != nil {
		return err
	}

	const dt = 1.0 / 60
	for sim.Now() < seconds {
		sim.Step(dt)
	}
	if seconds > 0 {
		t := sim.Totals()
		fmt.Printf("     %-12s t=%.1f entities=%d spawned=%d fired=%d hits=%d expired=%d\n",
			name, sim.Now(), sim.World().Len(), t.Spawned, t.Fired, t.Hits, t.Expired)
	}
	return nil
}
