package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Input is the normalized input snapshot for one logic tick
type Input struct {
	Horizontal   float64 // -1..1
	Vertical     float64 // -1..1, up is positive
	JumpPressed  bool
	JumpHeld     bool
	JumpReleased bool
	DashPressed  bool
	HookPressed  bool
	ParryPressed bool
}

// KeyBindings maps keyboard keys to controller actions
type KeyBindings struct {
	Left, Right, Up, Down []ebiten.Key
	Jump, Dash, Hook      []ebiten.Key
	Parry                 []ebiten.Key
}

// DefaultKeyBindings returns WASD/arrow movement with Space, Shift, J and K
func DefaultKeyBindings() KeyBindings {
	return KeyBindings{
		Left:  []ebiten.Key{ebiten.KeyA, ebiten.KeyArrowLeft},
		Right: []ebiten.Key{ebiten.KeyD, ebiten.KeyArrowRight},
		Up:    []ebiten.Key{ebiten.KeyW, ebiten.KeyArrowUp},
		Down:  []ebiten.Key{ebiten.KeyS, ebiten.KeyArrowDown},
		Jump:  []ebiten.Key{ebiten.KeySpace},
		Dash:  []ebiten.Key{ebiten.KeyShiftLeft, ebiten.KeyShiftRight},
		Hook:  []ebiten.Key{ebiten.KeyJ},
		Parry: []ebiten.Key{ebiten.KeyK},
	}
}

// InputSystem reads the keyboard into Input snapshots
type InputSystem struct {
	keys KeyBindings
}

// NewInputSystem creates a new input system
func NewInputSystem(keys KeyBindings) *InputSystem {
	return &InputSystem{keys: keys}
}

// GetInput reads the current input state
func (s *InputSystem) GetInput() Input {
	return Input{
		Horizontal:   Axis(anyPressed(s.keys.Left), anyPressed(s.keys.Right)),
		Vertical:     Axis(anyPressed(s.keys.Down), anyPressed(s.keys.Up)),
		JumpPressed:  anyJustPressed(s.keys.Jump),
		JumpHeld:     anyPressed(s.keys.Jump),
		JumpReleased: anyJustReleased(s.keys.Jump),
		DashPressed:  anyJustPressed(s.keys.Dash),
		HookPressed:  anyJustPressed(s.keys.Hook),
		ParryPressed: anyJustPressed(s.keys.Parry),
	}
}

// Axis folds a pair of opposing buttons into -1, 0 or 1
func Axis(negative, positive bool) float64 {
	v := 0.0
	if negative {
		v--
	}
	if positive {
		v++
	}
	return v
}

func anyPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

func anyJustPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}

func anyJustReleased(keys []ebiten.Key) bool {
	for _, k := range keys {
		if inpututil.IsKeyJustReleased(k) {
			return true
		}
	}
	return false
}
