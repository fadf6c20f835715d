package component

// Ship marks a steerable agent. Speed is in units per second; TurnRate is the
// maximum seek rotation in radians per second.
type Ship struct {
	Speed    float64
	TurnRate float64
}

var ShipComponent = NewComponent[Ship]()

// Avoider opts a ship into the spatial index and nearest-neighbour avoidance.
type Avoider struct{}

var AvoiderComponent = NewComponent[Avoider]()

// Collider is the sphere lasers test against.
type Collider struct {
	Radius float64
}

var ColliderComponent = NewComponent[Collider]()
