package component

// Laser is a projectile. It keeps the firing team for friendly-fire checks but
// no reference to the ship that fired it.
type Laser struct {
	Speed     float64
	RayLength float64
	Team      Team
}

var LaserComponent = NewComponent[Laser]()
