package system

import (
	"github.com/milk9111/spacebattle/common"
	"github.com/milk9111/spacebattle/ecs"
	"github.com/milk9111/spacebattle/ecs/component"
	"github.com/rs/zerolog"
)

// FlyInSystem interpolates entities from their fly-in start to their anchor.
type FlyInSystem struct {
	logger zerolog.Logger
}

func NewFlyInSystem(logger zerolog.Logger) *FlyInSystem {
	return &FlyInSystem{logger: logger.With().Str("system", "fly_in").Logger()}
}

func (s *FlyInSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	now := w.Time().Elapsed
	ecs.ForEach2(w, component.FlyInComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, fly *component.FlyIn, tr *component.Transform) {
		p := FlyInProgress(fly, now)
		tr.Position = common.LerpVec3(fly.From, fly.To, p)
		if p >= 1 && !fly.Arrived {
			fly.Arrived = true
			w.Events().Push(ecs.Event{Type: EventCapitalShipArrived, Data: e})
			s.logger.Info().Stringer("entity", e).Float64("t", now).Msg("arrived")
		}
	})
}

// FlyInProgress is the clamped [0, 1] interpolation factor at time now.
func FlyInProgress(fly *component.FlyIn, now float64) float64 {
	span := fly.EndAt - fly.StartAt
	if span <= 0 {
		if now >= fly.EndAt {
			return 1
		}
		return 0
	}
	p := (now - fly.StartAt) / span
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	default:
		return p
	}
}
