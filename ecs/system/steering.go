package system

import (
	"github.com/milk9111/spacebattle/common"
	"github.com/milk9111/spacebattle/ecs"
	"github.com/milk9111/spacebattle/ecs/component"
	"github.com/milk9111/spacebattle/ecs/entity"
	"github.com/milk9111/spacebattle/spatial"
)

// SteeringSystem moves every ship forward, turns it toward its team's
// nearest objective and, for avoiders, away from a too-close neighbour.
// Seek and avoid compound: avoid applies to the orientation seek produced.
type SteeringSystem struct {
	tuning     *entity.Tuning
	index      *spatial.Index
	objectives *spatial.Objectives
}

// NewSteeringSystem wires the read-only inputs of the pass. A nil index
// disables avoidance.
func NewSteeringSystem(tuning *entity.Tuning, index *spatial.Index, objectives *spatial.Objectives) *SteeringSystem {
	return &SteeringSystem{tuning: tuning, index: index, objectives: objectives}
}

func (s *SteeringSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	dt := w.Time().Delta
	rows := ecs.Query3(w, component.ShipComponent.Kind(), component.TransformComponent.Kind(), component.TeamComponent.Kind())
	avoider := component.AvoiderComponent.Kind()

	ecs.ParallelFor(len(rows), w.Workers(), func(start, end int) {
		for _, r := range rows[start:end] {
			s.translate(r.A, r.B, dt)
			s.seek(r.A, r.B, *r.C, dt)
			if s.index != nil && ecs.Has(w, r.Entity, avoider) {
				s.avoid(r.Entity, r.B, dt)
			}
		}
	})
}

func (s *SteeringSystem) translate(ship *component.Ship, tr *component.Transform, dt float64) {
	tr.Position = tr.Position.Add(tr.Forward().Mul(ship.Speed * dt))
}

func (s *SteeringSystem) seek(ship *component.Ship, tr *component.Transform, team component.Team, dt float64) {
	if s.objectives == nil {
		return
	}
	target, ok := s.objectives.Nearest(team, tr.Position)
	if !ok {
		return
	}
	desired, ok := common.LookAt(tr.Position, target)
	if !ok {
		return
	}
	tr.Rotation = common.RotateTowards(tr.Rotation, desired, ship.TurnRate*dt)
}

func (s *SteeringSystem) avoid(e ecs.Entity, tr *component.Transform, dt float64) {
	near, ok := s.index.Nearest(tr.Position, uint64(e))
	if !ok {
		return
	}
	away := tr.Position.Sub(near.Pos)
	d := away.Len()
	if d <= s.tuning.AvoidMin || d >= s.tuning.AvoidMax {
		return
	}
	rot, ok := common.RotateVectorTowards(tr.Forward(), away.Mul(1/d), s.tuning.AvoidRate*dt)
	if !ok {
		return
	}
	tr.Rotation = rot.Mul(tr.Rotation).Normalize()
}
