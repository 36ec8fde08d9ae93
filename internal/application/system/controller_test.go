package system

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/mover/internal/domain/entity"
	"github.com/younwookim/mover/internal/infrastructure/config"
)

func TestNewController_Errors(t *testing.T) {
	body := entity.NewBody(entity.Vec2{}, entity.Vec2{X: 0.8, Y: 1})

	t.Run("nil body", func(t *testing.T) {
		_, err := NewController(config.DefaultMovementConfig(), nil, floorCollider(), nil)
		assert.ErrorIs(t, err, ErrNilBody)
	})

	t.Run("nil collider", func(t *testing.T) {
		_, err := NewController(config.DefaultMovementConfig(), body, nil, nil)
		assert.ErrorIs(t, err, ErrNilCollider)
	})

	t.Run("missing probe", func(t *testing.T) {
		cfg := config.DefaultMovementConfig()
		cfg.Probes.Wall = nil
		_, err := NewController(cfg, body, floorCollider(), nil)
		assert.ErrorIs(t, err, config.ErrMissingProbe)
	})

	t.Run("empty grapple mask", func(t *testing.T) {
		cfg := config.DefaultMovementConfig()
		cfg.Layers.Grapple = config.LayerNames{}
		_, err := NewController(cfg, body, floorCollider(), nil)
		assert.ErrorIs(t, err, config.ErrEmptyLayerMask)
	})

	t.Run("out of range value", func(t *testing.T) {
		cfg := config.DefaultMovementConfig()
		cfg.Jump.MaxJumps = 0
		_, err := NewController(cfg, body, floorCollider(), nil)
		assert.ErrorIs(t, err, config.ErrInvalidConfig)
	})

	t.Run("nil gate starts locked", func(t *testing.T) {
		c, err := NewController(config.DefaultMovementConfig(), body, floorCollider(), nil)
		require.NoError(t, err)
		assert.False(t, c.Abilities().Unlocked(AbilityDoubleJump))
		assert.Equal(t, 1, c.FacingDirection())
		assert.Equal(t, 2, c.State().JumpsRemaining)
		assert.True(t, c.State().CanDash)
	})
}

func TestController_GroundedJump(t *testing.T) {
	c, body := createTestController(t, floorCollider(), entity.Vec2{Y: groundY})

	var kinds []JumpKind
	c.OnJump = func(k JumpKind) { kinds = append(kinds, k) }

	c.TickLogic(Input{JumpPressed: true, JumpHeld: true}, testDT)

	assert.Equal(t, 15.0, body.Vel.Y, "vy is exactly the jump force on the press tick")
	assert.Equal(t, 1, c.State().JumpsRemaining)
	assert.Equal(t, []JumpKind{JumpGrounded}, kinds)
	assert.False(t, c.Timers().Armed(TimerCoyote), "coyote is consumed")
	assert.False(t, c.Timers().Armed(TimerJumpBuffer), "buffer is consumed")
}

func TestController_WallJump(t *testing.T) {
	col := (&fakeCollider{}).add(2, -10, 3, 10, entity.LayerGround)
	c, body := createTestController(t, col, entity.Vec2{X: 1.6, Y: 3})

	var wallJumps []int
	c.OnWallJump = func(dir int) { wallJumps = append(wallJumps, dir) }

	// Pressing into the right-hand wall
	c.TickLogic(Input{Horizontal: 1, JumpPressed: true, JumpHeld: true}, testDT)

	assert.Equal(t, 11.0, body.Vel.Y)
	assert.Equal(t, -9.0, body.Vel.X)
	assert.Equal(t, []int{-1}, wallJumps)

	timers := c.Timers()
	assert.True(t, timers.Armed(TimerWallJumpLock))
	assert.True(t, timers.Armed(TimerWallDetach))

	st := c.State()
	assert.False(t, st.WallClinging)
	assert.True(t, st.JustWallJumped)

	// The physics step must not overwrite the launch with held input
	c.TickPhysics(testDT)
	assert.Equal(t, -9.0, body.Vel.X)

	// Still pressed into the wall: no re-cling while the lock is armed
	for i := 0; i < 15; i++ {
		c.TickLogic(Input{Horizontal: 1, JumpHeld: true}, testDT)
		require.True(t, c.Timers().Armed(TimerWallJumpLock))
		assert.False(t, c.State().WallClinging, "tick %d", i)
	}

	// Once the lock expires the cling is allowed again
	for i := 0; i < 10; i++ {
		c.TickLogic(Input{Horizontal: 1}, testDT)
	}
	assert.False(t, c.Timers().Armed(TimerWallJumpLock))
	assert.True(t, c.State().WallClinging)
}

func TestController_BufferedJumpFiresOnce(t *testing.T) {
	c, body := createTestController(t, floorCollider(), entity.Vec2{Y: 3})

	var kinds []JumpKind
	c.OnJump = func(k JumpKind) { kinds = append(kinds, k) }

	// Airborne press with no air jump unlocked: only the buffer arms
	c.TickLogic(Input{JumpPressed: true, JumpHeld: true}, testDT)
	require.Empty(t, kinds)
	require.True(t, c.Timers().Armed(TimerJumpBuffer))

	// Touch down 0.05s later
	body.SetPosition(entity.Vec2{Y: groundY})
	body.SetVelocity(entity.Vec2{Y: -3})
	c.TickLogic(Input{JumpHeld: true}, 0.05)

	assert.Equal(t, []JumpKind{JumpBuffered}, kinds)
	assert.Equal(t, 15.0, body.Vel.Y)
	assert.False(t, c.Timers().Armed(TimerJumpBuffer))

	// Still on the ground with coyote re-armed: the buffer must not fire again
	body.SetVelocity(entity.Vec2{})
	for i := 0; i < 5; i++ {
		c.TickLogic(Input{JumpHeld: true}, testDT)
	}
	assert.Len(t, kinds, 1)
	assert.Equal(t, 0.0, body.Vel.Y)
}

func TestController_PressOnLandingTickFiresOnce(t *testing.T) {
	c, body := createTestController(t, floorCollider(), entity.Vec2{Y: 3})

	count := 0
	c.OnJump = func(JumpKind) { count++ }

	c.TickLogic(Input{JumpPressed: true}, testDT)
	body.SetPosition(entity.Vec2{Y: groundY})
	c.TickLogic(Input{JumpPressed: true}, testDT)

	assert.Equal(t, 1, count)
	assert.Equal(t, 1, c.State().JumpsRemaining)
}

func TestController_GrapplePull(t *testing.T) {
	col := floorCollider().add(5, 2.5, 6, 3.5, entity.LayerGrapple)
	c, body := createTestController(t, col, entity.Vec2{X: 0, Y: 3})

	var hits []entity.Hit
	completed := 0
	c.OnGrappleHit = func(h entity.Hit) { hits = append(hits, h) }
	c.OnGrappleComplete = func() { completed++ }

	body.SetVelocity(entity.Vec2{X: 4, Y: -2})
	c.TickLogic(Input{HookPressed: true}, testDT)

	require.Len(t, hits, 1)
	assert.Equal(t, entity.Vec2{X: 5.5, Y: 3}, hits[0].Target)
	assert.Equal(t, entity.Vec2{}, body.Vel)
	assert.Equal(t, 0.0, body.GravityFactor)
	assert.True(t, c.State().GrapplePending)
	assert.True(t, c.Timers().Armed(TimerGrappleCooldown))

	last, ok := c.LastRayHit()
	require.True(t, ok)
	assert.Equal(t, hits[0], last)

	// A second press during the session is ignored
	c.TickLogic(Input{HookPressed: true}, testDT)
	c.TickPhysics(testDT)
	assert.Len(t, hits, 1)

	// Pending lasts for the configured delay
	ticks := 1
	for !c.State().GrapplePulling && ticks < 50 {
		assert.Equal(t, entity.Vec2{X: 0, Y: 3}, body.Pos, "body holds still while pending")
		c.TickLogic(Input{Horizontal: -1}, testDT)
		c.TickPhysics(testDT)
		ticks++
	}
	assert.InDelta(t, 0.2, float64(ticks)*testDT, testDT+1e-9)

	// The pull moves along X only and never applies input
	prevX := body.Pos.X
	for i := 0; i < 100 && c.Grapple().Phase != GrappleIdle; i++ {
		c.TickLogic(Input{Horizontal: -1}, testDT)
		c.TickPhysics(testDT)
		if c.Grapple().Phase == GrapplePulling {
			assert.Equal(t, entity.Vec2{}, body.Vel)
		}
		assert.Equal(t, 3.0, body.Pos.Y)
		assert.GreaterOrEqual(t, body.Pos.X, prevX)
		prevX = body.Pos.X
	}

	assert.Equal(t, 1, completed)
	assert.Equal(t, entity.Vec2{X: 5.5, Y: 3}, body.Pos, "snaps exactly onto the target")
	assert.Equal(t, 8.0, body.Vel.Y)
	assert.Equal(t, 3.0, body.GravityFactor, "gravity scale restored")
	assert.Equal(t, 2, c.State().JumpsRemaining)
	assert.True(t, c.State().CanDash)
	assert.False(t, c.State().RayActive)
}

func TestController_GrappleVerticalCast(t *testing.T) {
	col := (&fakeCollider{}).add(-0.5, 6, 0.5, 7, entity.LayerGrapple)
	c, body := createTestController(t, col, entity.Vec2{X: 0.2, Y: 3})

	c.TickLogic(Input{HookPressed: true, Vertical: 1}, testDT)
	require.True(t, c.State().GrapplePending)
	assert.Equal(t, entity.Vec2{Y: 1}, c.Grapple().Direction)

	for i := 0; i < 200 && c.Grapple().Phase != GrappleIdle; i++ {
		c.TickLogic(Input{}, testDT)
		c.TickPhysics(testDT)
		assert.Equal(t, 0.2, body.Pos.X)
	}
	assert.Equal(t, entity.Vec2{X: 0.2, Y: 6.5}, body.Pos)
}

func TestController_GrappleMiss(t *testing.T) {
	c, body := createTestController(t, floorCollider(), entity.Vec2{Y: 3})

	c.TickLogic(Input{HookPressed: true}, testDT)
	assert.Equal(t, GrappleCasting, c.Grapple().Phase)
	assert.True(t, c.State().RayActive)
	assert.Equal(t, 0.0, body.GravityFactor)
	_, ok := c.LastRayHit()
	assert.False(t, ok)

	ticks := 0
	for c.State().RayActive && ticks < 200 {
		c.TickLogic(Input{}, testDT)
		c.TickPhysics(testDT)
		assert.Equal(t, entity.Vec2{}, body.Vel, "no gravity shaping while the ray is out")
		ticks++
	}
	assert.InDelta(t, 1.0, float64(ticks)*testDT, testDT+1e-9)
	assert.Equal(t, 3.0, body.GravityFactor)
	assert.Equal(t, entity.Vec2{Y: 3}, body.Pos, "a miss never pulls")
}

func TestController_GrappleCooldown(t *testing.T) {
	col := floorCollider().add(5, 2.5, 6, 3.5, entity.LayerGrapple)
	c, body := createTestController(t, col, entity.Vec2{X: 0, Y: 3})

	// Miss upward, then cancel through damage
	c.TickLogic(Input{HookPressed: true, Vertical: 1}, testDT)
	c.OnExternalDamage()
	c.TickLogic(Input{}, testDT)
	require.False(t, c.State().RayActive)

	// Still on cooldown
	c.TickLogic(Input{HookPressed: true}, testDT)
	assert.False(t, c.State().RayActive)

	for i := 0; i < 20; i++ {
		c.TickLogic(Input{}, testDT)
	}
	body.SetPosition(entity.Vec2{X: 0, Y: 3})
	c.TickLogic(Input{HookPressed: true}, testDT)
	assert.True(t, c.State().GrapplePending)
}

func TestController_DashTimeline(t *testing.T) {
	const dt = 0.01
	c, body := createTestController(t, floorCollider(), entity.Vec2{Y: 5})

	var dashes []int
	c.OnDash = func(dir int) { dashes = append(dashes, dir) }

	c.TickLogic(Input{DashPressed: true, Horizontal: -1}, dt)
	c.TickPhysics(dt)
	require.True(t, c.State().Dashing)
	assert.Equal(t, []int{-1}, dashes)
	assert.Equal(t, entity.Vec2{X: -20}, body.Vel)

	stateAt := map[int]MotionState{}
	for k := 1; k <= 121; k++ {
		c.TickLogic(Input{Horizontal: 1}, dt)
		c.TickPhysics(dt)
		stateAt[k] = c.State()
	}

	assert.True(t, stateAt[19].Dashing, "t=0.19")
	assert.Equal(t, -1, stateAt[19].DashDirection)
	assert.False(t, stateAt[21].Dashing, "t=0.21")
	assert.False(t, stateAt[21].CanDash, "t=0.21")
	assert.True(t, stateAt[121].CanDash, "t=1.21")
}

func TestController_DashHoldsVelocityAndSkipsJumps(t *testing.T) {
	c, body := createTestController(t, floorCollider(), entity.Vec2{Y: groundY})

	jumps := 0
	c.OnJump = func(JumpKind) { jumps++ }

	c.TickLogic(Input{DashPressed: true}, testDT)
	c.TickLogic(Input{JumpPressed: true}, testDT)
	c.TickPhysics(testDT)

	assert.Zero(t, jumps)
	assert.Equal(t, entity.Vec2{X: 20}, body.Vel, "gravity shaping is skipped while dashing")
}

func TestController_LandingGrantsDash(t *testing.T) {
	c, body := createTestController(t, floorCollider(), entity.Vec2{Y: 0.6})

	landings := 0
	c.OnLand = func() { landings++ }

	c.TickLogic(Input{DashPressed: true}, testDT)
	require.False(t, c.State().CanDash)
	for i := 0; i < 12; i++ {
		c.TickLogic(Input{}, testDT)
	}
	require.False(t, c.State().Dashing)
	require.True(t, c.Timers().Armed(TimerDashCooldown))

	body.SetPosition(entity.Vec2{Y: groundY})
	c.TickLogic(Input{}, testDT)

	assert.Equal(t, 1, landings)
	assert.True(t, c.State().CanDash)
	assert.False(t, c.Timers().Armed(TimerDashCooldown))
}

func TestController_ClingEntry(t *testing.T) {
	tests := []struct {
		name    string
		pos     entity.Vec2
		input   float64
		wallDir int
	}{
		{"right wall", entity.Vec2{X: 1.6, Y: 3}, 1, 1},
		{"left wall", entity.Vec2{X: -1.6, Y: 3}, -1, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col := (&fakeCollider{}).
				add(2, -10, 3, 10, entity.LayerGround).
				add(-3, -10, -2, 10, entity.LayerGround)
			c, _ := createTestController(t, col, tt.pos, AbilityDoubleJump)

			// Spend a jump mid-air without leaning on the wall
			c.TickLogic(Input{JumpPressed: true}, testDT)
			require.Equal(t, 1, c.State().JumpsRemaining)

			c.TickLogic(Input{Horizontal: tt.input}, testDT)
			st := c.State()
			assert.True(t, st.WallClinging)
			assert.Equal(t, tt.wallDir, st.WallDirection)
			assert.Equal(t, 2, st.JumpsRemaining)
			assert.Equal(t, -tt.wallDir, st.Facing)
			assert.Equal(t, -tt.wallDir, c.FacingDirection())
		})
	}
}

func TestController_ClingRequiresInputTowardWall(t *testing.T) {
	col := (&fakeCollider{}).add(2, -10, 3, 10, entity.LayerGround)
	c, _ := createTestController(t, col, entity.Vec2{X: 1.6, Y: 3})

	c.TickLogic(Input{}, testDT)
	assert.False(t, c.State().WallClinging)
	assert.True(t, c.State().TouchingWall)

	c.TickLogic(Input{Horizontal: -1}, testDT)
	assert.False(t, c.State().WallClinging)

	c.TickLogic(Input{Horizontal: 1}, testDT)
	assert.True(t, c.State().WallClinging)
}

func TestController_WallSlideClamp(t *testing.T) {
	col := (&fakeCollider{}).add(2, -10, 3, 10, entity.LayerGround)
	c, body := createTestController(t, col, entity.Vec2{X: 1.6, Y: 3})

	body.SetVelocity(entity.Vec2{Y: -10})
	c.TickLogic(Input{Horizontal: 1}, testDT)
	require.True(t, c.State().WallClinging)
	assert.Equal(t, -2.0, body.Vel.Y)

	c.TickPhysics(testDT)
	assert.Equal(t, -2.0, body.Vel.Y, "fall shaping never pushes past the slide speed")

	// Rising while clinging is left alone
	body.SetVelocity(entity.Vec2{Y: 4})
	c.TickLogic(Input{Horizontal: 1, JumpHeld: true}, testDT)
	assert.Equal(t, 4.0, body.Vel.Y)
}

func TestController_ShortHop(t *testing.T) {
	c, body := createTestController(t, floorCollider(), entity.Vec2{Y: groundY})

	c.TickLogic(Input{JumpPressed: true, JumpHeld: true}, testDT)
	require.Equal(t, 15.0, body.Vel.Y)

	c.TickLogic(Input{JumpReleased: true}, testDT)
	assert.Equal(t, 7.5, body.Vel.Y)

	// Releasing while falling changes nothing
	body.SetVelocity(entity.Vec2{Y: -3})
	c.TickLogic(Input{JumpReleased: true}, testDT)
	assert.Equal(t, -3.0, body.Vel.Y)
}

func TestController_AirJumpGating(t *testing.T) {
	t.Run("locked", func(t *testing.T) {
		c, body := createTestController(t, floorCollider(), entity.Vec2{Y: 5})
		c.TickLogic(Input{JumpPressed: true}, testDT)
		assert.Equal(t, 0.0, body.Vel.Y)
		assert.Equal(t, 2, c.State().JumpsRemaining)
	})

	t.Run("unlocked", func(t *testing.T) {
		c, body := createTestController(t, floorCollider(), entity.Vec2{Y: 5}, AbilityDoubleJump)

		var kinds []JumpKind
		c.OnJump = func(k JumpKind) { kinds = append(kinds, k) }

		c.TickLogic(Input{JumpPressed: true}, testDT)
		assert.Equal(t, 15.0, body.Vel.Y)
		c.TickLogic(Input{JumpPressed: true}, testDT)
		assert.Equal(t, 0, c.State().JumpsRemaining)

		body.SetVelocity(entity.Vec2{})
		c.TickLogic(Input{JumpPressed: true}, testDT)
		assert.Equal(t, 0.0, body.Vel.Y, "no jumps left")
		assert.Equal(t, 0, c.State().JumpsRemaining)
		assert.Equal(t, []JumpKind{JumpAir, JumpAir}, kinds)
	})

	t.Run("unlocked at runtime", func(t *testing.T) {
		c, body := createTestController(t, floorCollider(), entity.Vec2{Y: 5})
		c.OnAbilityUnlocked(AbilityDoubleJump)
		c.TickLogic(Input{JumpPressed: true}, testDT)
		assert.Equal(t, 15.0, body.Vel.Y)
	})
}

func TestController_CoyoteTime(t *testing.T) {
	c, body := createTestController(t, floorCollider(), entity.Vec2{Y: groundY})

	var kinds []JumpKind
	c.OnJump = func(k JumpKind) { kinds = append(kinds, k) }

	c.TickLogic(Input{}, testDT)

	// Walk off a ledge
	body.SetPosition(entity.Vec2{Y: 2})
	c.TickLogic(Input{}, 0.1)
	require.False(t, c.State().Grounded)
	c.TickLogic(Input{JumpPressed: true}, testDT)
	assert.Equal(t, []JumpKind{JumpGrounded}, kinds)

	// After coyote runs out there is no grounded jump left
	c2, body2 := createTestController(t, floorCollider(), entity.Vec2{Y: groundY})
	c2.TickLogic(Input{}, testDT)
	body2.SetPosition(entity.Vec2{Y: 2})
	c2.TickLogic(Input{}, 0.25)
	c2.TickLogic(Input{JumpPressed: true}, testDT)
	assert.Equal(t, 0.0, body2.Vel.Y)
}

func TestController_GravityShaping(t *testing.T) {
	tests := []struct {
		name  string
		vy    float64
		held  bool
		delta float64
	}{
		{"falling", -1, false, -9.81 * 1.5 * testDT},
		{"rising without jump held", 5, false, -9.81 * 1 * testDT},
		{"rising with jump held", 5, true, -9.81 * 0.5 * testDT},
		{"at rest", 0, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, body := createTestController(t, &fakeCollider{}, entity.Vec2{Y: 5})
			c.TickLogic(Input{JumpHeld: tt.held}, testDT)
			body.SetVelocity(entity.Vec2{Y: tt.vy})
			c.TickPhysics(testDT)
			assert.InDelta(t, tt.vy+tt.delta, body.Vel.Y, 1e-9)
		})
	}

	t.Run("terminal velocity", func(t *testing.T) {
		c, body := createTestController(t, &fakeCollider{}, entity.Vec2{Y: 5})
		c.TickLogic(Input{}, testDT)
		body.SetVelocity(entity.Vec2{Y: -19.9})
		c.TickPhysics(testDT)
		assert.Equal(t, -20.0, body.Vel.Y)
	})
}

func TestController_HorizontalMovement(t *testing.T) {
	c, body := createTestController(t, floorCollider(), entity.Vec2{Y: groundY})

	c.TickLogic(Input{Horizontal: 0.5}, testDT)
	c.TickPhysics(testDT)
	assert.Equal(t, 3.5, body.Vel.X)

	c.TickLogic(Input{}, testDT)
	c.TickPhysics(testDT)
	assert.Equal(t, 0.0, body.Vel.X, "no smoothing on release")

	c.TickLogic(Input{Horizontal: -1}, testDT)
	assert.Equal(t, -1, c.FacingDirection())
	c.TickLogic(Input{Horizontal: 0.05}, testDT)
	assert.Equal(t, -1, c.FacingDirection(), "inside the dead zone facing is kept")
}

func TestController_BounceLock(t *testing.T) {
	c, body := createTestController(t, floorCollider(), entity.Vec2{Y: 3})

	c.OnBouncePad(0.3)
	body.SetVelocity(entity.Vec2{X: 5, Y: 10})
	c.TickLogic(Input{Horizontal: -1}, testDT)
	assert.True(t, c.InputLocked())
	c.TickPhysics(testDT)
	assert.Equal(t, 5.0, body.Vel.X)

	for i := 0; i < 20; i++ {
		c.TickLogic(Input{Horizontal: -1}, testDT)
	}
	assert.False(t, c.InputLocked())
	c.TickPhysics(testDT)
	assert.Equal(t, -7.0, body.Vel.X)
}

func TestController_Damage(t *testing.T) {
	t.Run("cancels a pending grapple", func(t *testing.T) {
		col := floorCollider().add(5, 2.5, 6, 3.5, entity.LayerGrapple)
		c, body := createTestController(t, col, entity.Vec2{X: 0, Y: 3})

		requests := 0
		c.OnRespawnRequest = func() { requests++ }

		c.TickLogic(Input{HookPressed: true}, testDT)
		require.True(t, c.State().GrapplePending)

		c.OnExternalDamage()
		assert.Zero(t, requests, "damage is applied on the next logic tick")
		c.TickLogic(Input{}, testDT)

		assert.Equal(t, 1, requests)
		assert.False(t, c.State().RayActive)
		assert.Equal(t, 3.0, body.GravityFactor)
	})

	t.Run("cancels a dash", func(t *testing.T) {
		c, _ := createTestController(t, floorCollider(), entity.Vec2{Y: 3})
		c.TickLogic(Input{DashPressed: true}, testDT)
		require.True(t, c.State().Dashing)

		c.OnExternalDamage()
		c.TickLogic(Input{}, testDT)
		assert.False(t, c.State().Dashing)
	})
}

func TestController_Respawn(t *testing.T) {
	c, body := createTestController(t, floorCollider(), entity.Vec2{Y: 5}, AbilityDoubleJump)

	c.TickLogic(Input{JumpPressed: true, DashPressed: true, Horizontal: -1}, testDT)
	require.True(t, c.State().Dashing)

	spawn := entity.Vec2{X: 2.5, Y: 1.5}
	c.Respawn(spawn)
	c.TickLogic(Input{}, testDT)

	st := c.State()
	assert.Equal(t, spawn, body.Pos)
	assert.Equal(t, entity.Vec2{}, body.Vel)
	assert.False(t, st.Dashing)
	assert.True(t, st.CanDash)
	assert.Equal(t, 2, st.JumpsRemaining)
	assert.Equal(t, 1, st.Facing)
	assert.False(t, c.Timers().Armed(TimerDashCooldown))
	assert.True(t, c.Abilities().Unlocked(AbilityDoubleJump), "unlocks survive a respawn")
}

func TestController_Parry(t *testing.T) {
	col := floorCollider().add(-1, 2, 1, 4, entity.LayerParry)
	c, body := createTestController(t, col, entity.Vec2{Y: 3})

	parries := 0
	c.OnParry = func() { parries++ }

	// Inside the parry volume without pressing: nothing happens
	c.TickLogic(Input{}, testDT)
	assert.Zero(t, parries)

	c.TickLogic(Input{ParryPressed: true}, testDT)
	assert.Equal(t, 1, parries)
	assert.Equal(t, 12.0, body.Vel.Y)
	assert.True(t, c.State().ParryActive)
	assert.True(t, c.State().CanDash)

	// Overlap is checked every tick while the window is open
	c.TickLogic(Input{}, testDT)
	assert.Equal(t, 2, parries)

	for i := 0; i < 30; i++ {
		c.TickLogic(Input{}, testDT)
	}
	assert.False(t, c.State().ParryActive)
	n := parries

	// Cooldown started with the window
	c.TickLogic(Input{ParryPressed: true}, testDT)
	assert.Equal(t, n, parries)
	assert.False(t, c.State().ParryActive)
}

func TestController_WallJumpUpgradeNotRetroactive(t *testing.T) {
	col := (&fakeCollider{}).add(2, -10, 3, 10, entity.LayerGround)
	c, body := createTestController(t, col, entity.Vec2{X: 1.6, Y: 3})

	c.TickLogic(Input{Horizontal: 1, JumpPressed: true}, testDT)
	require.Equal(t, entity.Vec2{X: -9, Y: 11}, body.Vel)

	c.OnAbilityUnlocked(AbilityWallJump)
	assert.Equal(t, entity.Vec2{X: -9, Y: 11}, body.Vel, "launch in flight keeps its values")
	assert.InDelta(t, 0.35, c.Timers().Remaining(TimerWallJumpLock), 1e-9)
	assert.Equal(t, 13.0, c.Config().Wall.JumpVertical)

	for i := 0; i < 30; i++ {
		c.TickLogic(Input{}, testDT)
	}
	body.SetVelocity(entity.Vec2{})
	c.TickLogic(Input{Horizontal: 1, JumpPressed: true}, testDT)
	assert.Equal(t, entity.Vec2{X: -11, Y: 13}, body.Vel)
	assert.InDelta(t, 0.14, c.Timers().Remaining(TimerWallJumpLock), 1e-9)
}

func TestController_StrictAbilityGating(t *testing.T) {
	cfg := config.DefaultMovementConfig()
	cfg.StrictAbilityGating = true
	col := floorCollider().
		add(2, -10, 3, 10, entity.LayerGround).
		add(-6, 2.5, -5, 3.5, entity.LayerGrapple)

	c, _ := createTestControllerWithConfig(t, cfg, col, entity.Vec2{X: 1.6, Y: 3})

	c.TickLogic(Input{DashPressed: true}, testDT)
	assert.False(t, c.State().Dashing)
	c.TickLogic(Input{Horizontal: 1}, testDT)
	assert.False(t, c.State().WallClinging)
	c.TickLogic(Input{HookPressed: true, Horizontal: -1}, testDT)
	assert.False(t, c.State().RayActive)

	c.OnAbilityUnlocked(AbilityWallJump)
	c.TickLogic(Input{Horizontal: 1}, testDT)
	assert.True(t, c.State().WallClinging)

	c.OnAbilityUnlocked(AbilityDash)
	c.TickLogic(Input{DashPressed: true}, testDT)
	assert.True(t, c.State().Dashing)
	assert.False(t, c.State().WallClinging)
}

func TestController_ReplaceConfig(t *testing.T) {
	c, body := createTestController(t, floorCollider(), entity.Vec2{Y: groundY})
	c.TickLogic(Input{}, testDT)
	require.Equal(t, 2, c.State().JumpsRemaining)

	bad := config.DefaultMovementConfig()
	bad.Dash.Duration = 0
	assert.ErrorIs(t, c.ReplaceConfig(bad), config.ErrInvalidConfig)
	assert.Equal(t, 20.0, c.Config().Dash.Speed, "a rejected config changes nothing")

	next := config.DefaultMovementConfig()
	next.Jump.MaxJumps = 1
	next.Jump.Force = 10
	require.NoError(t, c.ReplaceConfig(next))
	assert.Equal(t, 1, c.State().JumpsRemaining, "jumps are clamped to the new maximum")

	next.Jump.Force = 99
	c.TickLogic(Input{JumpPressed: true}, testDT)
	assert.Equal(t, 10.0, body.Vel.Y, "the controller keeps its own copy")
}

func TestController_RandomInputInvariants(t *testing.T) {
	col := floorCollider().
		add(6, 0, 7, 20, entity.LayerGround).
		add(-7, 0, -6, 20, entity.LayerGround).
		add(-0.5, 8, 0.5, 9, entity.LayerGrapple).
		add(3, 4, 4, 5, entity.LayerGrapple).
		add(-4, 1, -3, 3, entity.LayerParry)

	for seed := int64(1); seed <= 5; seed++ {
		rng := rand.New(rand.NewSource(seed))
		c, body := createTestController(t, col, entity.Vec2{Y: groundY},
			AbilityDoubleJump, AbilityWallJump, AbilityDash, AbilityHook)
		maxJumps := c.Config().Jump.MaxJumps

		held := false
		for i := 0; i < 2000; i++ {
			jump := rng.Intn(6) == 0
			in := Input{
				Horizontal:   float64(rng.Intn(3) - 1),
				Vertical:     float64(rng.Intn(3) - 1),
				JumpPressed:  jump && !held,
				JumpReleased: !jump && held,
				JumpHeld:     jump,
				DashPressed:  rng.Intn(40) == 0,
				HookPressed:  rng.Intn(60) == 0,
				ParryPressed: rng.Intn(50) == 0,
			}
			held = jump
			if rng.Intn(300) == 0 {
				c.OnExternalDamage()
			}

			c.TickLogic(in, testDT)
			st := c.State()
			require.GreaterOrEqual(t, st.JumpsRemaining, 0, "seed %d tick %d", seed, i)
			require.LessOrEqual(t, st.JumpsRemaining, maxJumps, "seed %d tick %d", seed, i)
			require.False(t, st.Dashing && st.WallClinging, "seed %d tick %d", seed, i)
			require.False(t, st.Dashing && st.RayActive, "seed %d tick %d", seed, i)

			c.TickPhysics(testDT)
			st = c.State()
			if st.GrapplePulling {
				require.Equal(t, entity.Vec2{}, body.Vel, "seed %d tick %d", seed, i)
			}
			require.False(t, st.Dashing && st.WallClinging, "seed %d tick %d", seed, i)

			stepWorld(body, c.Config().Gravity.Gravity, testDT)
			// Keep the body inside the arena
			if body.Pos.X > 5.6 {
				body.Pos.X = 5.6
			} else if body.Pos.X < -5.6 {
				body.Pos.X = -5.6
			}
			if body.Pos.Y > 18 {
				body.Pos.Y = 18
			}
		}
	}
}

func TestController_ResetAbilities(t *testing.T) {
	c, _ := createTestController(t, floorCollider(), entity.Vec2{Y: groundY})
	c.OnAbilityUnlocked(AbilityWallJump)
	c.OnAbilityUnlocked(AbilityDoubleJump)
	require.Equal(t, 13.0, c.Config().Wall.JumpVertical)

	c.ResetAbilities()

	assert.False(t, c.Abilities().Unlocked(AbilityWallJump))
	assert.False(t, c.Abilities().Unlocked(AbilityDoubleJump))
	assert.Equal(t, 11.0, c.Config().Wall.JumpVertical, "upgrade is undone")
	assert.Equal(t, 0.35, c.Config().Wall.InputLock)
}
