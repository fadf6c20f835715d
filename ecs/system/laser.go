package system

import (
	"github.com/milk9111/spacebattle/ecs"
	"github.com/milk9111/spacebattle/ecs/component"
	"github.com/milk9111/spacebattle/ecs/entity"
	"github.com/milk9111/spacebattle/spatial"
)

// LaserSystem moves lasers and resolves hits. Each laser sweeps a ray over
// the distance it travelled this tick plus its ray length, so fast lasers
// cannot tunnel through a collider between ticks. The struck entity and,
// unless pierce is on, the laser are despawned at the pass boundary; a
// target already removed by another laser is left alone.
type LaserSystem struct {
	tuning *entity.Tuning
	grid   *spatial.Grid
}

func NewLaserSystem(tuning *entity.Tuning) *LaserSystem {
	return &LaserSystem{tuning: tuning, grid: spatial.NewGrid(4)}
}

func (s *LaserSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	dt := w.Time().Delta
	s.rebuildGrid(w)

	rows := ecs.Query2(w, component.LaserComponent.Kind(), component.TransformComponent.Kind())
	friendlyFire := s.tuning.FriendlyFire
	pierce := s.tuning.Pierce

	ecs.ParallelFor(len(rows), w.Workers(), func(start, end int) {
		for _, r := range rows[start:end] {
			laser, tr := r.A, r.B
			dir := tr.Forward()
			step := laser.Speed * dt
			origin := tr.Position
			tr.Position = origin.Add(dir.Mul(step))

			self := uint64(r.Entity)
			hit, ok := s.grid.Raycast(origin, dir, step+laser.RayLength, func(sp spatial.Sphere) bool {
				if sp.ID == self {
					return true
				}
				if sp.Team != laser.Team {
					return false
				}
				// An own-team collider the ray starts inside is the one that fired it.
				return !friendlyFire || sp.Center.Sub(origin).LenSqr() <= sp.Radius*sp.Radius
			})
			if !ok {
				continue
			}

			event := LaserHit{
				Laser:      r.Entity,
				Target:     ecs.Entity(hit.ID),
				Team:       laser.Team,
				TargetTeam: hit.Team,
			}
			w.Commands().Defer(func(w *ecs.World) {
				if ecs.DestroyEntity(w, event.Target) {
					w.Events().Push(ecs.Event{Type: EventLaserHit, Data: event})
				}
				if !pierce {
					ecs.DestroyEntity(w, event.Laser)
				}
			})
		}
	})
}

func (s *LaserSystem) rebuildGrid(w *ecs.World) {
	s.grid.Reset()
	ecs.ForEach3(w, component.ColliderComponent.Kind(), component.TransformComponent.Kind(), component.TeamComponent.Kind(), func(e ecs.Entity, c *component.Collider, _ *component.Transform, team *component.Team) {
		pose, ok := GlobalPose(w, e)
		if !ok {
			return
		}
		s.grid.Insert(spatial.Sphere{ID: uint64(e), Center: pose.Position, Radius: c.Radius, Team: *team})
	})
}
