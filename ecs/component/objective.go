package component

import "github.com/go-gl/mathgl/mgl64"

// Objective is a point agents of Team steer toward. Its position is the
// entity's global transform.
type Objective struct {
	Team Team
}

var ObjectiveComponent = NewComponent[Objective]()

// ObjectiveScript drives an objective's local position from a tengo script
// evaluated every tick with the anchor and elapsed time as inputs.
type ObjectiveScript struct {
	Path   string
	Anchor mgl64.Vec3
}

var ObjectiveScriptComponent = NewComponent[ObjectiveScript]()
