package component

// Spawner emits a ship of Team at its global pose every Delay seconds until
// Spawned reaches Max. A zero Max means unlimited. Armed and Avoid are
// passed on to every ship it creates.
type Spawner struct {
	Max       int
	Delay     float64
	Team      Team
	Armed     bool
	Avoid     bool
	LastSpawn float64
	HasSpawn  bool
	Spawned   int
}

var SpawnerComponent = NewComponent[Spawner]()

// Exhausted reports whether the quota has been used up. Exhaustion is
// permanent: Spawned never decreases.
func (s *Spawner) Exhausted() bool {
	return s.Max > 0 && s.Spawned >= s.Max
}
