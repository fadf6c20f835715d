package main

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/spacebattle/battle"
)

const (
	baseWidth  = 1280
	baseHeight = 720

	defaultZoom = 4.0
	minZoom     = 0.25
	maxZoom     = 64.0
	panSpeed    = 400.0
)

var errQuit = errors.New("quit")

var background = color.RGBA{R: 8, G: 8, B: 16, A: 255}

// Game is a top-down (X right, Z down) view of the simulation. It only reads
// snapshots; all simulation state lives in the runner.
type Game struct {
	r      *runner
	frames int
	paused bool

	zoom   float64
	camera mgl64.Vec2
	bodies []battle.Body
}

func NewGame(r *runner) *Game {
	return &Game{r: r, zoom: defaultZoom}
}

func (g *Game) Update() error {
	g.frames++

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || g.r.done() {
		return errQuit
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	g.updateCamera()

	if !g.paused || inpututil.IsKeyJustPressed(ebiten.KeyPeriod) {
		g.r.step()
	}
	g.bodies = g.r.sim.Snapshot(g.bodies)
	return nil
}

func (g *Game) updateCamera() {
	if _, dy := ebiten.Wheel(); dy != 0 {
		g.zoom = mgl64.Clamp(g.zoom*math.Pow(1.1, dy), minZoom, maxZoom)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyHome) {
		g.zoom = defaultZoom
		g.camera = mgl64.Vec2{}
	}

	step := panSpeed / g.zoom / float64(ebiten.TPS())
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
		g.camera[0] -= step
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
		g.camera[0] += step
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW) {
		g.camera[1] -= step
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS) {
		g.camera[1] += step
	}
}

// project maps a world position to screen coordinates.
func (g *Game) project(p mgl64.Vec3) (float32, float32) {
	x := (p.X()-g.camera.X())*g.zoom + baseWidth/2
	y := (p.Z()-g.camera.Y())*g.zoom + baseHeight/2
	return float32(x), float32(y)
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)

	for _, b := range g.bodies {
		x, y := g.project(b.Position)
		clr := b.Team.Color()
		switch b.Kind {
		case battle.KindShip:
			vector.FillRect(screen, x-1.5, y-1.5, 3, 3, clr, false)
		case battle.KindLaser:
			tail := b.Position.Sub(b.Rotation.Rotate(mgl64.Vec3{0, 0, -1}).Mul(1))
			tx, ty := g.project(tail)
			vector.StrokeLine(screen, tx, ty, x, y, 1, clr, false)
		case battle.KindCapitalShip:
			size := float32(8 * g.zoom)
			vector.StrokeRect(screen, x-size/2, y-size*3, size, size*6, 2, clr, false)
		case battle.KindObjective:
			vector.StrokeRect(screen, x-4, y-4, 8, 8, 1, color.RGBA{R: 255, G: 255, B: 255, A: 160}, false)
		}
	}

	totals := g.r.sim.Totals()
	status := ""
	if g.paused {
		status = "  [paused]"
	}
	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"%s  t=%.1fs  FPS: %.0f  TPS: %.0f%s\nbodies: %d  spawned: %d  fired: %d  hits: %d  expired: %d",
		g.r.sim.Name(), g.r.sim.Now(), ebiten.ActualFPS(), ebiten.ActualTPS(), status,
		len(g.bodies), totals.Spawned, totals.Fired, totals.Hits, totals.Expired,
	))
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
