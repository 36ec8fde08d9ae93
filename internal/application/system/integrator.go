package system

import "github.com/younwookim/mover/internal/domain/entity"

// TickPhysics applies dash velocity, grapple pull, horizontal movement and
// gravity shaping for one fixed step. Only one of them applies per step.
func (c *Controller) TickPhysics(fixedDt float64) {
	v := c.body.Velocity()

	switch {
	case c.state.Dashing:
		v = entity.Vec2{X: float64(c.state.DashDirection) * c.config.Dash.Speed}

	case c.grapple.Active():
		v = entity.Vec2{}
		if c.grapple.Advance(fixedDt, c.body) {
			v = c.completeGrapple()
		}

	default:
		v.X = c.integrateHorizontal(v.X)
		v.Y = c.shapeGravity(v.Y, fixedDt)
		if c.state.WallClinging && v.Y < c.config.Wall.SlideSpeed {
			v.Y = c.config.Wall.SlideSpeed
		}
	}

	c.state.Velocity = v
	c.body.SetVelocity(v)
	c.syncFlags()
}

// InputLocked reports whether held horizontal input is currently ignored
func (c *Controller) InputLocked() bool {
	return c.timers.Armed(TimerWallJumpLock) || c.timers.Armed(TimerBounceLock)
}

// integrateHorizontal sets vx straight from input unless a launch lock is armed
func (c *Controller) integrateHorizontal(vx float64) float64 {
	if c.InputLocked() {
		return vx
	}
	return c.input.Horizontal * c.config.Run.MoveSpeed
}

// shapeGravity adds the extra fall / low-jump / ascent gravity and caps the fall speed
func (c *Controller) shapeGravity(vy, dt float64) float64 {
	g := c.config.Gravity

	switch {
	case vy < 0:
		vy += g.Gravity * (g.FallMultiplier - 1) * dt
	case vy > 0 && !c.input.JumpHeld:
		vy += g.Gravity * (g.LowJumpMultiplier - 1) * dt
	case vy > 0:
		vy += g.Gravity * (g.AscentMultiplier - 1) * dt
	}

	if vy < -g.MaxFallSpeed {
		vy = -g.MaxFallSpeed
	}
	return vy
}

// completeGrapple finishes a pull: end boost plus refills
func (c *Controller) completeGrapple() entity.Vec2 {
	c.timers.Clear(TimerRay)
	c.refill()
	if c.OnGrappleComplete != nil {
		c.OnGrappleComplete()
	}
	return entity.Vec2{Y: c.config.Grapple.EndBoost}
}
