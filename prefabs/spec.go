package prefabs

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/spacebattle/common"
	"github.com/milk9111/spacebattle/ecs/component"
	"gopkg.in/yaml.v3"
)

const (
	TuningFile         = "tuning.yaml"
	scenarioSchemaName = "scenario"
	tuningSchemaName   = "tuning"
)

// LoadSpec reads filename, validates it against the named embedded schema
// when schema is not empty, and decodes it into T.
func LoadSpec[T any](filename, schema string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}
	if schema != "" {
		if err := Validate(schema, data); err != nil {
			return zero, fmt.Errorf("prefabs: %s: %w", filename, err)
		}
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// Vec3Spec is written as a [x, y, z] sequence.
type Vec3Spec [3]float64

func (v Vec3Spec) Vec() mgl64.Vec3 {
	return mgl64.Vec3(v)
}

// PoseSpec places an entity. LookAt wins over Yaw when both are set.
type PoseSpec struct {
	Position Vec3Spec  `yaml:"position"`
	LookAt   *Vec3Spec `yaml:"look_at"`
	Yaw      float64   `yaml:"yaw"`
}

func (p PoseSpec) Transform() component.Transform {
	pos := p.Position.Vec()
	if p.LookAt != nil {
		if rot, ok := common.LookAt(pos, p.LookAt.Vec()); ok {
			return *component.NewTransform(pos, rot)
		}
	}
	return *component.NewTransform(pos, mgl64.QuatRotate(mgl64.DegToRad(p.Yaw), common.WorldUp))
}

type ShipLoadoutSpec struct {
	Armed bool `yaml:"armed"`
	Avoid bool `yaml:"avoid"`
}

type SpawnerParamsSpec struct {
	Max             int     `yaml:"max"`
	Delay           float64 `yaml:"delay"`
	ShipLoadoutSpec `yaml:",inline"`
}

type CapitalShipSpec struct {
	Name         string            `yaml:"name"`
	Team         component.Team    `yaml:"team"`
	Pose         PoseSpec          `yaml:",inline"`
	FlyIn        bool              `yaml:"fly_in"`
	ObjectiveFor []component.Team  `yaml:"objective_for"`
	Spawner      SpawnerParamsSpec `yaml:"spawner"`
}

type SpawnerSpec struct {
	Team              component.Team `yaml:"team"`
	Pose              PoseSpec       `yaml:",inline"`
	SpawnerParamsSpec `yaml:",inline"`
}

// PopulationSpec seeds Count ships uniformly inside the Min/Max box. Ships
// face Facing when set, otherwise a random direction.
type PopulationSpec struct {
	Team            component.Team `yaml:"team"`
	Count           int            `yaml:"count"`
	Min             Vec3Spec       `yaml:"min"`
	Max             Vec3Spec       `yaml:"max"`
	Facing          *Vec3Spec      `yaml:"facing"`
	ShipLoadoutSpec `yaml:",inline"`
}

type ObjectiveSpec struct {
	Team     component.Team `yaml:"team"`
	Position Vec3Spec       `yaml:"position"`
	Script   string         `yaml:"script"`
}

type ScenarioSpec struct {
	Name         string            `yaml:"name"`
	Seed         uint64            `yaml:"seed"`
	Tuning       string            `yaml:"tuning"`
	CapitalShips []CapitalShipSpec `yaml:"capital_ships"`
	Spawners     []SpawnerSpec     `yaml:"spawners"`
	Populations  []PopulationSpec  `yaml:"populations"`
	Objectives   []ObjectiveSpec   `yaml:"objectives"`
}

// LoadScenario loads and validates a scenario by file name; the .yaml
// extension may be omitted.
func LoadScenario(name string) (ScenarioSpec, error) {
	return LoadSpec[ScenarioSpec](yamlName(name), scenarioSchemaName)
}

// TuningSpec holds the per-run tunables. Angular rates are in degrees per
// second, everything else in simulation units and seconds.
type TuningSpec struct {
	ShipSpeed              float64            `yaml:"ship_speed"`
	TurnRate               float64            `yaml:"turn_rate"`
	AvoidRate              float64            `yaml:"avoid_rate"`
	AvoidBand              [2]float64         `yaml:"avoid_band"`
	LaserSpeed             float64            `yaml:"laser_speed"`
	LaserLifetime          float64            `yaml:"laser_lifetime"`
	RayLength              float64            `yaml:"ray_length"`
	GunCooldown            float64            `yaml:"gun_cooldown"`
	GunPhase               component.GunPhase `yaml:"gun_phase"`
	SpatialRebuildInterval float64            `yaml:"spatial_rebuild_interval"`
	ColliderRadius         float64            `yaml:"collider_radius"`
	MuzzleOffset           float64            `yaml:"muzzle_offset"`
	FriendlyFire           bool               `yaml:"friendly_fire"`
	Pierce                 bool               `yaml:"pierce"`
}

func DefaultTuningSpec() TuningSpec {
	return TuningSpec{
		ShipSpeed:              15,
		TurnRate:               20,
		AvoidRate:              100,
		AvoidBand:              [2]float64{0.1, 2.0},
		LaserSpeed:             35,
		LaserLifetime:          2,
		RayLength:              0.5,
		GunCooldown:            5,
		GunPhase:               component.GunPhaseRandom,
		SpatialRebuildInterval: 0.2,
		ColliderRadius:         0.5,
	}
}

// Validate checks constraints the schema cannot express.
func (t TuningSpec) Validate() error {
	if t.AvoidBand[0] >= t.AvoidBand[1] {
		return fmt.Errorf("%w: avoid_band lower bound %v must be below upper bound %v", ErrInvalidSpec, t.AvoidBand[0], t.AvoidBand[1])
	}
	for name, v := range map[string]float64{
		"ship_speed":               t.ShipSpeed,
		"turn_rate":                t.TurnRate,
		"avoid_rate":               t.AvoidRate,
		"laser_speed":              t.LaserSpeed,
		"laser_lifetime":           t.LaserLifetime,
		"ray_length":               t.RayLength,
		"gun_cooldown":             t.GunCooldown,
		"spatial_rebuild_interval": t.SpatialRebuildInterval,
		"collider_radius":          t.ColliderRadius,
	} {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s must be a finite non-negative number, got %v", ErrInvalidSpec, name, v)
		}
	}
	switch t.GunPhase {
	case component.GunPhaseNow, component.GunPhaseRandom:
	default:
		return fmt.Errorf("%w: unknown gun_phase %q", ErrInvalidSpec, t.GunPhase)
	}
	return nil
}

// LoadTuning overlays the named tuning file on the defaults. An empty name
// selects tuning.yaml.
func LoadTuning(name string) (TuningSpec, error) {
	if name == "" {
		name = TuningFile
	}
	name = yamlName(name)
	data, err := Load(name)
	if err != nil {
		return TuningSpec{}, fmt.Errorf("prefabs: load %s: %w", name, err)
	}
	return ParseTuning(name, data)
}

// ParseTuning validates and decodes raw tuning YAML over the defaults.
func ParseTuning(name string, data []byte) (TuningSpec, error) {
	if err := Validate(tuningSchemaName, data); err != nil {
		return TuningSpec{}, fmt.Errorf("prefabs: %s: %w", name, err)
	}
	spec := DefaultTuningSpec()
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return TuningSpec{}, fmt.Errorf("prefabs: unmarshal %s: %w", name, err)
	}
	if err := spec.Validate(); err != nil {
		return TuningSpec{}, fmt.Errorf("prefabs: %s: %w", name, err)
	}
	return spec, nil
}

func yamlName(name string) string {
	if strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") {
		return name
	}
	return name + ".yaml"
}
