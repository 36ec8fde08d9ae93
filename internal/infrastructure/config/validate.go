package config

import (
	"errors"
	"fmt"

	"github.com/younwookim/mover/internal/domain/entity"
)

var (
	// ErrInvalidConfig wraps every out-of-range tuning value
	ErrInvalidConfig = errors.New("invalid movement config")
	// ErrMissingProbe means a ground or wall probe was left unset
	ErrMissingProbe = errors.New("probe not configured")
	// ErrEmptyLayerMask means a required layer mask selects nothing
	ErrEmptyLayerMask = errors.New("layer mask is empty")
)

// Validate reports every misconfiguration found, joined into one error.
func (c *MovementConfig) Validate() error {
	var errs []error

	invalid := func(field string, value any) {
		errs = append(errs, fmt.Errorf("%w: %s = %v", ErrInvalidConfig, field, value))
	}
	nonNegative := func(field string, v float64) {
		if v < 0 {
			invalid(field, v)
		}
	}
	positive := func(field string, v float64) {
		if v <= 0 {
			invalid(field, v)
		}
	}

	nonNegative("run.moveSpeed", c.Run.MoveSpeed)
	nonNegative("run.facingDeadZone", c.Run.FacingDeadZone)

	positive("jump.force", c.Jump.Force)
	if c.Jump.MaxJumps < 1 {
		invalid("jump.maxJumps", c.Jump.MaxJumps)
	}
	nonNegative("jump.coyoteTime", c.Jump.CoyoteTime)
	nonNegative("jump.bufferTime", c.Jump.BufferTime)
	if c.Jump.ShortHopFactor < 0 || c.Jump.ShortHopFactor > 1 {
		invalid("jump.shortHopFactor", c.Jump.ShortHopFactor)
	}

	if c.Gravity.Gravity > 0 {
		invalid("gravity.gravity", c.Gravity.Gravity)
	}
	nonNegative("gravity.fallMultiplier", c.Gravity.FallMultiplier)
	nonNegative("gravity.lowJumpMultiplier", c.Gravity.LowJumpMultiplier)
	nonNegative("gravity.ascentMultiplier", c.Gravity.AscentMultiplier)
	positive("gravity.maxFallSpeed", c.Gravity.MaxFallSpeed)

	if c.Wall.SlideSpeed > 0 {
		invalid("wall.slideSpeed", c.Wall.SlideSpeed)
	}
	nonNegative("wall.detachCooldown", c.Wall.DetachCooldown)
	nonNegative("wall.inputLock", c.Wall.InputLock)

	positive("dash.speed", c.Dash.Speed)
	positive("dash.duration", c.Dash.Duration)
	nonNegative("dash.cooldown", c.Dash.Cooldown)

	positive("grapple.rayDistance", c.Grapple.RayDistance)
	positive("grapple.rayDuration", c.Grapple.RayDuration)
	nonNegative("grapple.delay", c.Grapple.Delay)
	positive("grapple.lerpDuration", c.Grapple.LerpDuration)
	nonNegative("grapple.cooldown", c.Grapple.Cooldown)

	positive("parry.window", c.Parry.Window)
	nonNegative("parry.cooldown", c.Parry.Cooldown)

	nonNegative("upgrades.wallJump.inputLock", c.Upgrades.WallJump.InputLock)

	if c.Probes.Ground == nil {
		errs = append(errs, fmt.Errorf("%w: ground", ErrMissingProbe))
	} else if c.Probes.Ground.Size.X <= 0 || c.Probes.Ground.Size.Y <= 0 {
		invalid("probes.ground.size", c.Probes.Ground.Size)
	}
	if c.Probes.Wall == nil {
		errs = append(errs, fmt.Errorf("%w: wall", ErrMissingProbe))
	} else {
		positive("probes.wall.distance", c.Probes.Wall.Distance)
		nonNegative("probes.wall.width", c.Probes.Wall.Width)
		nonNegative("probes.wall.height", c.Probes.Wall.Height)
	}

	if c.Body.Size.X <= 0 || c.Body.Size.Y <= 0 {
		invalid("body.size", c.Body.Size)
	}

	for _, l := range []struct {
		name  string
		names LayerNames
	}{
		{"ground", c.Layers.Ground},
		{"grapple", c.Layers.Grapple},
		{"parry", c.Layers.Parry},
	} {
		mask, err := entity.ParseLayerMask(l.names)
		switch {
		case err != nil:
			errs = append(errs, fmt.Errorf("layers.%s: %w", l.name, err))
		case mask.Empty():
			errs = append(errs, fmt.Errorf("%w: layers.%s", ErrEmptyLayerMask, l.name))
		}
	}

	return errors.Join(errs...)
}
