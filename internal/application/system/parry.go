package system

import (
	"fmt"

	"github.com/younwookim/mover/internal/domain/entity"
	"github.com/younwookim/mover/internal/infrastructure/config"
)

// ParryWindow opens a short timed window in which touching the parry layer bounces the player
type ParryWindow struct {
	collider Collider
	mask     entity.LayerMask
	size     entity.Vec2
	window   float64
	cooldown float64
}

// NewParryWindow creates a parry window. An empty parry mask is an error.
func NewParryWindow(collider Collider, cfg *config.MovementConfig) (*ParryWindow, error) {
	if collider == nil {
		return nil, ErrNilCollider
	}
	p := &ParryWindow{collider: collider}
	if err := p.Configure(cfg); err != nil {
		return nil, err
	}
	return p, nil
}

// Configure applies new tuning
func (p *ParryWindow) Configure(cfg *config.MovementConfig) error {
	mask := cfg.Layers.Parry.Mask()
	if mask.Empty() {
		return fmt.Errorf("parry: %w: parry", config.ErrEmptyLayerMask)
	}
	p.mask = mask
	p.size = cfg.Body.Size
	p.window = cfg.Parry.Window
	p.cooldown = cfg.Parry.Cooldown
	return nil
}

// TryOpen opens the window when pressed and off cooldown.
// The cooldown starts with the window, not after it.
func (p *ParryWindow) TryOpen(pressed bool, timers *TimerBank) bool {
	if !pressed || timers.Armed(TimerParryCooldown) {
		return false
	}
	timers.Arm(TimerParryWindow, p.window)
	timers.Arm(TimerParryCooldown, p.cooldown)
	return true
}

// Open reports whether the window is currently open
func (p *ParryWindow) Open(timers *TimerBank) bool {
	return timers.Armed(TimerParryWindow)
}

// Check reports whether the open window overlaps the parry layer at pos
func (p *ParryWindow) Check(pos entity.Vec2, timers *TimerBank) bool {
	return p.Open(timers) && p.collider.OverlapBox(pos, p.size, p.mask)
}
