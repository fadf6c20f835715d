package system

import (
	"github.com/milk9111/spacebattle/ecs"
	"github.com/milk9111/spacebattle/ecs/component"
	"github.com/milk9111/spacebattle/ecs/entity"
	"github.com/milk9111/spacebattle/spatial"
)

// SpatialIndexSystem rebuilds the ship index every RebuildInterval seconds
// of simulation time, or every tick when the interval is zero. Ships are
// never parented, so their local position is their world position.
type SpatialIndexSystem struct {
	index     *spatial.Index
	tuning    *entity.Tuning
	lastBuild float64
	built     bool
	scratch   []spatial.Entry
}

func NewSpatialIndexSystem(index *spatial.Index, tuning *entity.Tuning) *SpatialIndexSystem {
	return &SpatialIndexSystem{index: index, tuning: tuning}
}

// Invalidate forces a rebuild on the next update.
func (s *SpatialIndexSystem) Invalidate() {
	s.built = false
}

func (s *SpatialIndexSystem) Update(w *ecs.World) {
	if s == nil || w == nil || s.index == nil {
		return
	}

	now := w.Time().Elapsed
	if s.built && s.tuning.RebuildInterval > 0 && now-s.lastBuild < s.tuning.RebuildInterval {
		return
	}

	s.scratch = s.scratch[:0]
	ecs.ForEach2(w, component.ShipComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.Ship, tr *component.Transform) {
		s.scratch = append(s.scratch, spatial.Entry{ID: uint64(e), Pos: tr.Position})
	})
	s.index.Rebuild(s.scratch)
	s.lastBuild = now
	s.built = true
}
