// Package game implements ebiten.Game on top of a Scene.
package game

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/mover/internal/application/scene"
)

// Game implements ebiten.Game and manages Scene transitions.
type Game struct {
	current scene.Scene
	screenW int
	screenH int
	dt      float64
}

// New creates a Game showing initial and calls its OnEnter.
// framerate sets the logic tick; values <= 0 mean 60.
func New(initial scene.Scene, screenW, screenH, framerate int) *Game {
	if framerate <= 0 {
		framerate = 60
	}
	g := &Game{
		current: initial,
		screenW: screenW,
		screenH: screenH,
		dt:      1.0 / float64(framerate),
	}
	g.current.OnEnter()
	return g
}

// Update ticks the current scene and switches to the scene it returns.
// scene.ErrQuit ends the run loop cleanly.
func (g *Game) Update() error {
	next, err := g.current.Update(g.dt)
	if errors.Is(err, scene.ErrQuit) {
		g.current.OnExit()
		return ebiten.Termination
	}
	if err != nil {
		return err
	}

	if next != nil {
		g.current.OnExit()
		g.current = next
		g.current.OnEnter()
	}
	return nil
}

// Draw renders the current scene.
func (g *Game) Draw(screen *ebiten.Image) {
	g.current.Draw(screen)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.screenW, g.screenH
}

// Current returns the scene being shown
func (g *Game) Current() scene.Scene {
	return g.current
}

// DT returns the logic tick in seconds
func (g *Game) DT() float64 {
	return g.dt
}

// SetDT overrides the logic tick, for tests and replays.
func (g *Game) SetDT(dt float64) {
	g.dt = dt
}
