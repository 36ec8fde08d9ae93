// Package scene defines the Scene interface the game loop drives.
package scene

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
)

// ErrQuit is returned from Update to end the game without an error
var ErrQuit = errors.New("quit requested")

// Scene is one screen of the playground.
//
// The game loop delegates Update and Draw to the current scene and
// switches scenes when Update returns a new one.
type Scene interface {
	// Update advances the scene by dt seconds.
	// It returns the next scene to switch to, or nil to stay.
	Update(dt float64) (next Scene, err error)

	// Draw renders the scene to the screen.
	Draw(screen *ebiten.Image)

	// OnEnter is called each time the scene becomes current.
	OnEnter()

	// OnExit is called when the scene is replaced or the game ends.
	OnExit()
}
