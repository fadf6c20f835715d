package system

import (
	"github.com/milk9111/spacebattle/ecs"
	"github.com/milk9111/spacebattle/ecs/component"
)

// Event types pushed onto the world event queue. Payloads are listed next to
// each type.
const (
	EventShipSpawned        = "ship_spawned"         // component.Team
	EventLaserFired         = "laser_fired"          // component.Team
	EventLaserHit           = "laser_hit"            // LaserHit
	EventEntityExpired      = "entity_expired"       // ecs.Entity
	EventCapitalShipArrived = "capital_ship_arrived" // ecs.Entity
	EventSpawnerExhausted   = "spawner_exhausted"    // ecs.Entity
)

type LaserHit struct {
	Laser      ecs.Entity
	Target     ecs.Entity
	Team       component.Team
	TargetTeam component.Team
}
