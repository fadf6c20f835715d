package component

import "github.com/go-gl/mathgl/mgl64"

type CapitalShip struct {
	Team Team
}

var CapitalShipComponent = NewComponent[CapitalShip]()

// FlyIn animates an entity's local position from From at StartAt to To at
// EndAt (simulation seconds), linearly, clamped at both ends.
type FlyIn struct {
	From    mgl64.Vec3
	To      mgl64.Vec3
	StartAt float64
	EndAt   float64
	Arrived bool
}

var FlyInComponent = NewComponent[FlyIn]()
