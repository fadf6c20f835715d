package telemetry

import (
	"context"
	"fmt"
	"sync"

	"github.com/milk9111/spacebattle/battle"
	"github.com/milk9111/spacebattle/ecs/system"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/milk9111/spacebattle/telemetry"

// Meter returns the meter from the global OTel provider, a no-op unless one
// was installed.
func Meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

// Metrics forwards simulation counters to OTel instruments. Add is called
// from the simulation goroutine; the population gauge is read by the
// exporter's goroutine.
type Metrics struct {
	spawned metric.Int64Counter
	fired   metric.Int64Counter
	hits    metric.Int64Counter
	expired metric.Int64Counter

	population metric.Int64ObservableGauge

	mu      sync.RWMutex
	current map[battle.PopulationKey]int
}

func NewMetrics(m metric.Meter) (*Metrics, error) {
	mt := &Metrics{current: map[battle.PopulationKey]int{}}

	var err error
	counters := []struct {
		dst  *metric.Int64Counter
		name string
		desc string
	}{
		{&mt.spawned, "spacebattle.ships.spawned", "Ships launched by spawners"},
		{&mt.fired, "spacebattle.lasers.fired", "Lasers fired"},
		{&mt.hits, "spacebattle.lasers.hits", "Ships destroyed by lasers"},
		{&mt.expired, "spacebattle.entities.expired", "Entities removed by lifetime expiry"},
	}
	for _, c := range counters {
		*c.dst, err = m.Int64Counter(c.name, metric.WithDescription(c.desc))
		if err != nil {
			return nil, fmt.Errorf("creating %s counter: %w", c.name, err)
		}
	}

	mt.population, err = m.Int64ObservableGauge(
		"spacebattle.population",
		metric.WithDescription("Live entities by kind and team"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating population gauge: %w", err)
	}

	_, err = m.RegisterCallback(
		func(ctx context.Context, o metric.Observer) error {
			mt.mu.RLock()
			defer mt.mu.RUnlock()
			for key, n := range mt.current {
				o.ObserveInt64(mt.population, int64(n), metric.WithAttributes(
					attribute.String("kind", key.Kind.String()),
					attribute.String("team", key.Team.String()),
				))
			}
			return nil
		},
		mt.population,
	)
	if err != nil {
		return nil, fmt.Errorf("registering population callback: %w", err)
	}

	return mt, nil
}

// Add implements system.CounterSink.
func (m *Metrics) Add(c system.Counters) {
	ctx := context.Background()
	if c.Spawned > 0 {
		m.spawned.Add(ctx, c.Spawned)
	}
	if c.Fired > 0 {
		m.fired.Add(ctx, c.Fired)
	}
	if c.Hits > 0 {
		m.hits.Add(ctx, c.Hits)
	}
	if c.Expired > 0 {
		m.expired.Add(ctx, c.Expired)
	}
}

// ObservePopulation stores the counts reported by the next gauge collection.
func (m *Metrics) ObservePopulation(pop map[battle.PopulationKey]int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.current)
	for k, v := range pop {
		m.current[k] = v
	}
}

// Population returns a copy of the last observed counts.
func (m *Metrics) Population() map[battle.PopulationKey]int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[battle.PopulationKey]int, len(m.current))
	for k, v := range m.current {
		out[k] = v
	}
	return out
}
