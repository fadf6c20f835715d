package system

import (
	"math/rand/v2"

	"github.com/milk9111/spacebattle/ecs"
	"github.com/milk9111/spacebattle/ecs/component"
	"github.com/milk9111/spacebattle/ecs/entity"
	"github.com/rs/zerolog"
)

// SpawnerSystem launches ships from spawners whose delay has passed. A
// spawner on a carrier that is still flying in waits for it to arrive.
type SpawnerSystem struct {
	tuning *entity.Tuning
	rng    *rand.Rand
	logger zerolog.Logger
}

func NewSpawnerSystem(tuning *entity.Tuning, rng *rand.Rand, logger zerolog.Logger) *SpawnerSystem {
	return &SpawnerSystem{tuning: tuning, rng: rng, logger: logger.With().Str("system", "spawner").Logger()}
}

func (s *SpawnerSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	now := w.Time().Elapsed
	ecs.ForEach(w, component.SpawnerComponent.Kind(), func(e ecs.Entity, sp *component.Spawner) {
		if !SpawnerReady(sp, now) || !landed(w, e) {
			return
		}
		pose, ok := GlobalPose(w, e)
		if !ok {
			return
		}

		sp.Spawned++
		sp.LastSpawn = now
		sp.HasSpawn = true

		team := sp.Team
		opts := entity.ShipOptions{Armed: sp.Armed, Avoid: sp.Avoid}
		w.Commands().Defer(func(w *ecs.World) {
			if _, err := entity.NewShip(w, pose, team, s.tuning, s.rng, opts); err != nil {
				s.logger.Error().Err(err).Stringer("spawner", e).Msg("spawn ship")
				return
			}
			w.Events().Push(ecs.Event{Type: EventShipSpawned, Data: team})
		})

		if sp.Exhausted() {
			w.Events().Push(ecs.Event{Type: EventSpawnerExhausted, Data: e})
			s.logger.Debug().Stringer("spawner", e).Int("spawned", sp.Spawned).Msg("exhausted")
		}
	})
}

// SpawnerReady reports whether sp may emit at now: its quota is not used up
// and strictly more than Delay seconds have passed since the last spawn, or
// since time zero if it never spawned.
func SpawnerReady(sp *component.Spawner, now float64) bool {
	if sp.Exhausted() {
		return false
	}
	last := 0.0
	if sp.HasSpawn {
		last = sp.LastSpawn
	}
	return now > last+sp.Delay
}
