package system

import (
	"github.com/milk9111/spacebattle/ecs"
	"github.com/milk9111/spacebattle/ecs/component"
	"github.com/milk9111/spacebattle/ecs/entity"
	"github.com/rs/zerolog"
)

// GunSystem fires one laser per ready gun from its owner's pose. A non-zero
// MuzzleOffset pushes the laser along the owner's forward axis.
type GunSystem struct {
	tuning *entity.Tuning
	logger zerolog.Logger
}

func NewGunSystem(tuning *entity.Tuning, logger zerolog.Logger) *GunSystem {
	return &GunSystem{tuning: tuning, logger: logger.With().Str("system", "gun").Logger()}
}

func (s *GunSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	now := w.Time().Elapsed
	rows := ecs.Query3(w, component.GunComponent.Kind(), component.TransformComponent.Kind(), component.TeamComponent.Kind())

	ecs.ParallelFor(len(rows), w.Workers(), func(start, end int) {
		for _, r := range rows[start:end] {
			if !GunReady(r.A, now) {
				continue
			}
			r.A.LastFired = now

			muzzle := *r.B
			muzzle.Position = muzzle.Position.Add(muzzle.Forward().Mul(s.tuning.MuzzleOffset))
			team := *r.C
			w.Commands().Defer(func(w *ecs.World) {
				if _, err := entity.NewLaser(w, muzzle, team, s.tuning); err != nil {
					s.logger.Error().Err(err).Msg("fire laser")
					return
				}
				w.Events().Push(ecs.Event{Type: EventLaserFired, Data: team})
			})
		}
	})
}

// GunReady reports whether a gun may fire at now. A zero cooldown fires on
// every tick in which time has advanced.
func GunReady(g *component.Gun, now float64) bool {
	if g.Cooldown <= 0 {
		return now > g.LastFired
	}
	return now >= g.LastFired+g.Cooldown
}
