package component

// DespawnAfter removes its entity, recursively, once simulation time is
// strictly past At.
type DespawnAfter struct {
	At float64
}

var DespawnAfterComponent = NewComponent[DespawnAfter]()

func NewDespawnAfter(now, duration float64) *DespawnAfter {
	return &DespawnAfter{At: now + duration}
}
