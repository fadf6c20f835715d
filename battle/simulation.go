package battle

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/spacebattle/common"
	"github.com/milk9111/spacebattle/ecs"
	"github.com/milk9111/spacebattle/ecs/component"
	"github.com/milk9111/spacebattle/ecs/entity"
	"github.com/milk9111/spacebattle/ecs/system"
	"github.com/milk9111/spacebattle/prefabs"
	"github.com/milk9111/spacebattle/spatial"
	"github.com/rs/zerolog"
)

// ErrNoSpatialIndex is returned by New when a scenario asks for avoiding
// ships but the simulation was built without a spatial index.
var ErrNoSpatialIndex = errors.New("battle: avoidance requires a spatial index")

type Options struct {
	// Workers bounds parallel passes; zero means GOMAXPROCS.
	Workers int
	// Sink receives per-tick event counts. May be nil.
	Sink system.CounterSink
	// NoSpatialIndex builds the simulation without a neighbour index.
	NoSpatialIndex bool
}

// Simulation owns the world and the fixed pass order of one battle. It is not
// safe for concurrent use; the owner drives it from a single goroutine.
type Simulation struct {
	name   string
	logger zerolog.Logger

	world  *ecs.World
	sched  *ecs.Scheduler
	tuning *entity.Tuning
	rng    *rand.Rand
	now    float64

	index      *spatial.Index
	indexSys   *system.SpatialIndexSystem
	scripts    *system.ObjectiveScriptSystem
	stats      *system.StatsSystem
	objectives *spatial.Objectives
}

// New builds the world described by spec. Setup failures, including a
// missing objective script, are returned and leave nothing running.
func New(spec prefabs.ScenarioSpec, tuning prefabs.TuningSpec, logger zerolog.Logger, opts Options) (*Simulation, error) {
	if err := tuning.Validate(); err != nil {
		return nil, fmt.Errorf("battle: %s: %w", spec.Name, err)
	}
	if opts.NoSpatialIndex && wantsAvoidance(spec) {
		return nil, fmt.Errorf("%w: scenario %q", ErrNoSpatialIndex, spec.Name)
	}
	for _, o := range spec.Objectives {
		if o.Script == "" {
			continue
		}
		if _, err := prefabs.LoadScript(o.Script); err != nil {
			return nil, fmt.Errorf("battle: %s: objective script: %w", spec.Name, err)
		}
	}

	t := entity.NewTuning(tuning)
	s := &Simulation{
		name:       spec.Name,
		logger:     logger.With().Str("scenario", spec.Name).Logger(),
		world:      ecs.NewWorld(),
		tuning:     &t,
		rng:        rand.New(rand.NewPCG(spec.Seed, spec.Seed^0x9e3779b97f4a7c15)),
		objectives: spatial.NewObjectives(),
	}
	s.world.SetWorkers(opts.Workers)

	if !opts.NoSpatialIndex {
		s.index = spatial.NewIndex()
		s.indexSys = system.NewSpatialIndexSystem(s.index, s.tuning)
	}
	s.scripts = system.NewObjectiveScriptSystem(s.logger)
	s.stats = system.NewStatsSystem(opts.Sink)

	s.sched = ecs.NewScheduler()
	if s.indexSys != nil {
		s.sched.Add(s.indexSys)
	}
	s.sched.Add(s.scripts)
	s.sched.Add(system.NewFlyInSystem(s.logger))
	s.sched.Add(system.NewObjectiveRegistrySystem(s.objectives))
	s.sched.Add(system.NewSteeringSystem(s.tuning, s.index, s.objectives))
	s.sched.Add(system.NewGunSystem(s.tuning, s.logger))
	s.sched.Add(system.NewLaserSystem(s.tuning))
	s.sched.Add(system.NewSpawnerSystem(s.tuning, s.rng, s.logger))
	s.sched.Add(system.NewLifetimeSystem())
	s.sched.Add(s.stats)

	if err := s.populate(spec); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int("entities", s.world.Len()).
		Int("ships", ecs.Count(s.world, component.ShipComponent.Kind())).
		Int("spawners", ecs.Count(s.world, component.SpawnerComponent.Kind())).
		Bool("spatial_index", s.index != nil).
		Msg("scenario loaded")

	return s, nil
}

func wantsAvoidance(spec prefabs.ScenarioSpec) bool {
	for _, c := range spec.CapitalShips {
		if c.Spawner.Avoid {
			return true
		}
	}
	for _, sp := range spec.Spawners {
		if sp.Avoid {
			return true
		}
	}
	for _, p := range spec.Populations {
		if p.Avoid && p.Count > 0 {
			return true
		}
	}
	return false
}

func (s *Simulation) populate(spec prefabs.ScenarioSpec) error {
	w := s.world

	for _, c := range spec.CapitalShips {
		if _, err := entity.NewCapitalShip(w, c.Pose.Transform(), c.Team, entity.CapitalShipOptions{
			FlyIn:        c.FlyIn,
			ObjectiveFor: c.ObjectiveFor,
			SpawnerMax:   c.Spawner.Max,
			SpawnerDelay: c.Spawner.Delay,
			Ships:        entity.ShipOptions{Armed: c.Spawner.Armed, Avoid: c.Spawner.Avoid},
		}); err != nil {
			return fmt.Errorf("battle: %s: capital ship %q: %w", spec.Name, c.Name, err)
		}
	}

	for i, sp := range spec.Spawners {
		if _, err := entity.NewSpawner(w, sp.Pose.Transform(), component.Spawner{
			Max:   sp.Max,
			Delay: sp.Delay,
			Team:  sp.Team,
			Armed: sp.Armed,
			Avoid: sp.Avoid,
		}, 0); err != nil {
			return fmt.Errorf("battle: %s: spawner %d: %w", spec.Name, i, err)
		}
	}

	for i, p := range spec.Populations {
		opts := entity.ShipOptions{Armed: p.Armed, Avoid: p.Avoid}
		for n := 0; n < p.Count; n++ {
			pose := s.seedPose(p)
			if _, err := entity.NewShip(w, pose, p.Team, s.tuning, s.rng, opts); err != nil {
				return fmt.Errorf("battle: %s: population %d: %w", spec.Name, i, err)
			}
		}
	}

	for i, o := range spec.Objectives {
		if _, err := entity.NewObjective(w, o.Position.Vec(), o.Team, 0, o.Script); err != nil {
			return fmt.Errorf("battle: %s: objective %d: %w", spec.Name, i, err)
		}
	}

	return nil
}

// seedPose picks a uniform position in the population box facing either the
// configured direction or a uniformly random one.
func (s *Simulation) seedPose(p prefabs.PopulationSpec) component.Transform {
	var pos mgl64.Vec3
	for i := range pos {
		lo, hi := p.Min[i], p.Max[i]
		pos[i] = lo + s.rng.Float64()*(hi-lo)
	}

	dir := s.randomDirection()
	if p.Facing != nil {
		dir = p.Facing.Vec()
	}
	rot, ok := common.LookRotation(dir, common.WorldUp)
	if !ok {
		rot = mgl64.QuatIdent()
	}
	return *component.NewTransform(pos, rot)
}

func (s *Simulation) randomDirection() mgl64.Vec3 {
	z := 2*s.rng.Float64() - 1
	phi := 2 * math.Pi * s.rng.Float64()
	r := math.Sqrt(1 - z*z)
	return mgl64.Vec3{r * math.Cos(phi), r * math.Sin(phi), z}
}

// Step advances simulation time by dt and runs every pass once. Negative dt
// is treated as zero so time never runs backwards.
func (s *Simulation) Step(dt float64) {
	if dt < 0 || math.IsNaN(dt) {
		dt = 0
	}
	s.now += dt
	s.world.SetTime(ecs.Time{Elapsed: s.now, Delta: dt})
	s.sched.Update(s.world)
}

func (s *Simulation) Now() float64 {
	return s.now
}

func (s *Simulation) Name() string {
	return s.name
}

// World exposes the ECS world for read-only inspection between steps.
func (s *Simulation) World() *ecs.World {
	return s.world
}

// OnRemove registers fn to be called with every despawned entity, children
// included.
func (s *Simulation) OnRemove(fn func(ecs.Entity)) {
	s.world.OnDestroy(fn)
}

// Totals returns the event counts accumulated since New.
func (s *Simulation) Totals() system.Counters {
	return s.stats.Totals()
}

// ReloadScript recompiles an objective script on the next step.
func (s *Simulation) ReloadScript(path string) {
	s.scripts.Reload(path)
	s.logger.Info().Str("script", path).Msg("objective script reloaded")
}

// SetTuning replaces the tunables. Existing ships take the new speed, turn
// rate and collider radius and existing guns the new cooldown; lasers in
// flight keep their speed.
func (s *Simulation) SetTuning(spec prefabs.TuningSpec) error {
	if err := spec.Validate(); err != nil {
		return fmt.Errorf("battle: set tuning: %w", err)
	}
	*s.tuning = entity.NewTuning(spec)

	t := s.tuning
	ecs.ForEach(s.world, component.ShipComponent.Kind(), func(_ ecs.Entity, ship *component.Ship) {
		ship.Speed = t.ShipSpeed
		ship.TurnRate = t.TurnRate
	})
	ecs.ForEach(s.world, component.ColliderComponent.Kind(), func(_ ecs.Entity, c *component.Collider) {
		c.Radius = t.ColliderRadius
	})
	ecs.ForEach(s.world, component.GunComponent.Kind(), func(_ ecs.Entity, g *component.Gun) {
		g.Cooldown = t.GunCooldown
	})
	if s.indexSys != nil {
		s.indexSys.Invalidate()
	}

	s.logger.Info().
		Float64("ship_speed", spec.ShipSpeed).
		Float64("turn_rate", spec.TurnRate).
		Float64("gun_cooldown", spec.GunCooldown).
		Msg("tuning applied")
	return nil
}

// Tuning returns a copy of the runtime tunables.
func (s *Simulation) Tuning() entity.Tuning {
	return *s.tuning
}
