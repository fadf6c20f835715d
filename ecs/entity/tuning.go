package entity

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/spacebattle/ecs/component"
	"github.com/milk9111/spacebattle/prefabs"
)

// Tuning is the runtime form of prefabs.TuningSpec. Angular rates are in
// radians per second.
type Tuning struct {
	ShipSpeed       float64
	TurnRate        float64
	AvoidRate       float64
	AvoidMin        float64
	AvoidMax        float64
	LaserSpeed      float64
	LaserLifetime   float64
	RayLength       float64
	GunCooldown     float64
	GunPhase        component.GunPhase
	RebuildInterval float64
	ColliderRadius  float64
	MuzzleOffset    float64
	FriendlyFire    bool
	Pierce          bool
}

func NewTuning(spec prefabs.TuningSpec) Tuning {
	return Tuning{
		ShipSpeed:       spec.ShipSpeed,
		TurnRate:        mgl64.DegToRad(spec.TurnRate),
		AvoidRate:       mgl64.DegToRad(spec.AvoidRate),
		AvoidMin:        spec.AvoidBand[0],
		AvoidMax:        spec.AvoidBand[1],
		LaserSpeed:      spec.LaserSpeed,
		LaserLifetime:   spec.LaserLifetime,
		RayLength:       spec.RayLength,
		GunCooldown:     spec.GunCooldown,
		GunPhase:        spec.GunPhase,
		RebuildInterval: spec.SpatialRebuildInterval,
		ColliderRadius:  spec.ColliderRadius,
		MuzzleOffset:    spec.MuzzleOffset,
		FriendlyFire:    spec.FriendlyFire,
		Pierce:          spec.Pierce,
	}
}

func DefaultTuning() Tuning {
	return NewTuning(prefabs.DefaultTuningSpec())
}
