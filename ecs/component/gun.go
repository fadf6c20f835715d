package component

// Gun fires a laser from its owner's pose whenever Cooldown seconds have
// passed since LastFired. LastFired is simulation time in seconds.
type Gun struct {
	LastFired float64
	Cooldown  float64
}

var GunComponent = NewComponent[Gun]()

// GunPhase selects how LastFired is seeded when a gun is created.
type GunPhase string

const (
	// GunPhaseNow seeds LastFired with the creation time.
	GunPhaseNow GunPhase = "now"
	// GunPhaseRandom seeds LastFired with creation time plus U(-5, 0) seconds
	// so freshly spawned squadrons do not fire in lock-step.
	GunPhaseRandom GunPhase = "random"
)
