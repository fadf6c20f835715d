package battle

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/spacebattle/ecs"
	"github.com/milk9111/spacebattle/ecs/component"
	"github.com/milk9111/spacebattle/ecs/system"
)

type Kind uint8

const (
	KindShip Kind = iota
	KindLaser
	KindCapitalShip
	KindObjective
)

func (k Kind) String() string {
	switch k {
	case KindShip:
		return "ship"
	case KindLaser:
		return "laser"
	case KindCapitalShip:
		return "capital_ship"
	case KindObjective:
		return "objective"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Body is the render-facing view of one entity: its world pose and team.
type Body struct {
	Entity   ecs.Entity
	Kind     Kind
	Team     component.Team
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

// Snapshot appends the world pose of every ship, laser, capital ship and
// objective to buf and returns it. Pass the previous result back in to reuse
// its storage.
func (s *Simulation) Snapshot(buf []Body) []Body {
	buf = buf[:0]
	w := s.world

	ecs.ForEach3(w, component.ShipComponent.Kind(), component.TransformComponent.Kind(), component.TeamComponent.Kind(), func(e ecs.Entity, _ *component.Ship, tr *component.Transform, team *component.Team) {
		buf = append(buf, Body{Entity: e, Kind: KindShip, Team: *team, Position: tr.Position, Rotation: tr.Rotation})
	})
	ecs.ForEach2(w, component.LaserComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, l *component.Laser, tr *component.Transform) {
		buf = append(buf, Body{Entity: e, Kind: KindLaser, Team: l.Team, Position: tr.Position, Rotation: tr.Rotation})
	})
	ecs.ForEach(w, component.CapitalShipComponent.Kind(), func(e ecs.Entity, c *component.CapitalShip) {
		if pose, ok := system.GlobalPose(w, e); ok {
			buf = append(buf, Body{Entity: e, Kind: KindCapitalShip, Team: c.Team, Position: pose.Position, Rotation: pose.Rotation})
		}
	})
	ecs.ForEach(w, component.ObjectiveComponent.Kind(), func(e ecs.Entity, o *component.Objective) {
		if pose, ok := system.GlobalPose(w, e); ok {
			buf = append(buf, Body{Entity: e, Kind: KindObjective, Team: o.Team, Position: pose.Position, Rotation: pose.Rotation})
		}
	})

	return buf
}

// PopulationKey groups live entities for Population.
type PopulationKey struct {
	Kind Kind
	Team component.Team
}

// Population counts live ships, lasers and capital ships by team.
func (s *Simulation) Population() map[PopulationKey]int {
	out := make(map[PopulationKey]int)
	w := s.world
	ecs.ForEach2(w, component.ShipComponent.Kind(), component.TeamComponent.Kind(), func(_ ecs.Entity, _ *component.Ship, team *component.Team) {
		out[PopulationKey{Kind: KindShip, Team: *team}]++
	})
	ecs.ForEach(w, component.LaserComponent.Kind(), func(_ ecs.Entity, l *component.Laser) {
		out[PopulationKey{Kind: KindLaser, Team: l.Team}]++
	})
	ecs.ForEach(w, component.CapitalShipComponent.Kind(), func(_ ecs.Entity, c *component.CapitalShip) {
		out[PopulationKey{Kind: KindCapitalShip, Team: c.Team}]++
	})
	return out
}
