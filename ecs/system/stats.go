package system

import "github.com/milk9111/spacebattle/ecs"

// Counters tallies simulation events.
type Counters struct {
	Spawned int64
	Fired   int64
	Hits    int64
	Expired int64
}

func (c *Counters) add(o Counters) {
	c.Spawned += o.Spawned
	c.Fired += o.Fired
	c.Hits += o.Hits
	c.Expired += o.Expired
}

// CounterSink receives the per-tick event counts.
type CounterSink interface {
	Add(Counters)
}

// StatsSystem drains the event queue. It must run last in the schedule.
type StatsSystem struct {
	sink   CounterSink
	totals Counters
}

func NewStatsSystem(sink CounterSink) *StatsSystem {
	return &StatsSystem{sink: sink}
}

func (s *StatsSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	var tick Counters
	for _, ev := range w.Events().Drain() {
		switch ev.Type {
		case EventShipSpawned:
			tick.Spawned++
		case EventLaserFired:
			tick.Fired++
		case EventLaserHit:
			tick.Hits++
		case EventEntityExpired:
			tick.Expired++
		}
	}
	if tick == (Counters{}) {
		return
	}
	s.totals.add(tick)
	if s.sink != nil {
		s.sink.Add(tick)
	}
}

// Totals returns the counts accumulated since creation.
func (s *StatsSystem) Totals() Counters {
	return s.totals
}
