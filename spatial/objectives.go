package spatial

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/spacebattle/ecs/component"
)

// Objectives maps each team to the world positions its agents may seek.
type Objectives struct {
	byTeam map[component.Team][]mgl64.Vec3
}

func NewObjectives() *Objectives {
	return &Objectives{byTeam: make(map[component.Team][]mgl64.Vec3)}
}

func (o *Objectives) Reset() {
	for t, v := range o.byTeam {
		o.byTeam[t] = v[:0]
	}
}

func (o *Objectives) Add(team component.Team, pos mgl64.Vec3) {
	o.byTeam[team] = append(o.byTeam[team], pos)
}

func (o *Objectives) Len(team component.Team) int {
	return len(o.byTeam[team])
}

// Nearest returns the objective of team closest to pos. The first of several
// equidistant objectives wins.
func (o *Objectives) Nearest(team component.Team, pos mgl64.Vec3) (mgl64.Vec3, bool) {
	pts := o.byTeam[team]
	if len(pts) == 0 {
		return mgl64.Vec3{}, false
	}
	best := pts[0]
	bestD := distSq(pos, best)
	for _, p := range pts[1:] {
		if d := distSq(pos, p); d < bestD {
			best, bestD = p, d
		}
	}
	return best, true
}

func distSq(a, b mgl64.Vec3) float64 {
	d := a.Sub(b)
	return d.Dot(d)
}
