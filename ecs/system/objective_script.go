package system

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/spacebattle/ecs"
	"github.com/milk9111/spacebattle/ecs/component"
	"github.com/milk9111/spacebattle/prefabs"
	"github.com/rs/zerolog"
)

// ObjectiveScriptSystem moves scripted objectives. A script sees t (elapsed
// seconds) and anchor_x/y/z and must define x, y and z.
type ObjectiveScriptSystem struct {
	logger  zerolog.Logger
	scripts map[string]*tengo.Compiled
	failed  map[string]bool
}

func NewObjectiveScriptSystem(logger zerolog.Logger) *ObjectiveScriptSystem {
	return &ObjectiveScriptSystem{
		logger:  logger.With().Str("system", "objective_script").Logger(),
		scripts: map[string]*tengo.Compiled{},
		failed:  map[string]bool{},
	}
}

// Reload drops the cached compilation of path so the next update reads it
// again. Any spelling accepted by prefabs.LoadScript names the same script.
func (s *ObjectiveScriptSystem) Reload(path string) {
	key := prefabs.ScriptKey(path)
	delete(s.scripts, key)
	delete(s.failed, key)
}

func (s *ObjectiveScriptSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	now := w.Time().Elapsed
	ecs.ForEach2(w, component.ObjectiveScriptComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, sc *component.ObjectiveScript, tr *component.Transform) {
		key := prefabs.ScriptKey(sc.Path)
		if s.failed[key] {
			return
		}
		pos, err := s.run(key, sc, now)
		if err != nil {
			s.failed[key] = true
			s.logger.Error().Err(err).Str("script", sc.Path).Stringer("entity", e).Msg("objective script disabled")
			return
		}
		tr.Position = pos
	})
}

func (s *ObjectiveScriptSystem) run(key string, sc *component.ObjectiveScript, now float64) (mgl64.Vec3, error) {
	compiled, err := s.compile(key)
	if err != nil {
		return mgl64.Vec3{}, err
	}

	inputs := map[string]float64{
		"t":        now,
		"anchor_x": sc.Anchor.X(),
		"anchor_y": sc.Anchor.Y(),
		"anchor_z": sc.Anchor.Z(),
	}
	for name, v := range inputs {
		if err := compiled.Set(name, v); err != nil {
			return mgl64.Vec3{}, fmt.Errorf("set %s: %w", name, err)
		}
	}
	if err := compiled.Run(); err != nil {
		return mgl64.Vec3{}, err
	}

	var out mgl64.Vec3
	for i, name := range []string{"x", "y", "z"} {
		if !compiled.IsDefined(name) {
			return mgl64.Vec3{}, fmt.Errorf("script does not define %s", name)
		}
		out[i] = compiled.Get(name).Float()
	}
	return out, nil
}

func (s *ObjectiveScriptSystem) compile(path string) (*tengo.Compiled, error) {
	if c, ok := s.scripts[path]; ok {
		return c, nil
	}

	src, err := prefabs.LoadScript(path)
	if err != nil {
		return nil, err
	}

	script := tengo.NewScript(src)
	for _, name := range []string{"t", "anchor_x", "anchor_y", "anchor_z"} {
		_ = script.Add(name, 0.0)
	}
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, err
	}
	s.scripts[path] = compiled
	s.logger.Debug().Str("script", path).Msg("objective script compiled")
	return compiled, nil
}
