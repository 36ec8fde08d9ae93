package system

import (
	"fmt"

	"github.com/younwookim/mover/internal/domain/entity"
	"github.com/younwookim/mover/internal/infrastructure/config"
)

// JumpKind tells which rule produced a jump
type JumpKind int

const (
	JumpGrounded JumpKind = iota // from the ground or inside coyote time
	JumpAir
	JumpBuffered
)

// MotionState is the controller's per-tick view of the character
type MotionState struct {
	Velocity        entity.Vec2
	Grounded        bool
	WasGrounded     bool
	TouchingWall    bool
	WallDirection   int
	Facing          int
	JumpsRemaining  int
	CanDash         bool
	Dashing         bool
	DashDirection   int
	WallClinging    bool
	WasWallClinging bool
	JustWallJumped  bool
	RayActive       bool
	GrapplePending  bool
	GrapplePulling  bool
	ParryActive     bool
}

// Controller is the movement state machine.
// The driver calls TickLogic once per frame and TickPhysics once per fixed step.
type Controller struct {
	base   *config.MovementConfig
	config *config.MovementConfig

	body    Body
	sensor  *ContactSensor
	grapple *GrappleResolver
	parry   *ParryWindow
	gate    *AbilityGate

	timers  TimerBank
	state   MotionState
	input   Input
	intents []Intent

	// Event callbacks
	OnJump            func(kind JumpKind)
	OnWallJump        func(direction int)
	OnDash            func(direction int)
	OnLand            func()
	OnGrappleHit      func(hit entity.Hit)
	OnGrappleComplete func()
	OnParry           func()
	OnRespawnRequest  func()
}

// NewController creates a controller steering body through collider geometry.
// A nil gate starts with nothing unlocked.
func NewController(cfg *config.MovementConfig, body Body, collider Collider, gate *AbilityGate) (*Controller, error) {
	if body == nil {
		return nil, ErrNilBody
	}
	if collider == nil {
		return nil, ErrNilCollider
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("controller: %w", err)
	}
	if gate == nil {
		gate = NewAbilityGate()
	}

	c := &Controller{
		base: cfg.Clone(),
		body: body,
		gate: gate,
	}
	c.config = gate.Shape(c.base)

	var err error
	if c.sensor, err = NewContactSensor(collider, c.config); err != nil {
		return nil, err
	}
	if c.grapple, err = NewGrappleResolver(collider, c.config); err != nil {
		return nil, err
	}
	if c.parry, err = NewParryWindow(collider, c.config); err != nil {
		return nil, err
	}

	c.state.Facing = 1
	c.state.JumpsRemaining = c.config.Jump.MaxJumps
	c.state.CanDash = true
	c.state.Velocity = body.Velocity()
	return c, nil
}

// State returns a snapshot of the motion state
func (c *Controller) State() MotionState {
	return c.state
}

// Timers returns a snapshot of the timer bank
func (c *Controller) Timers() TimerBank {
	return c.timers
}

// Config returns the effective config, upgrades applied
func (c *Controller) Config() *config.MovementConfig {
	return c.config
}

// Abilities returns the ability gate the controller reads
func (c *Controller) Abilities() *AbilityGate {
	return c.gate
}

// Grapple returns the current grapple session
func (c *Controller) Grapple() GrappleSession {
	return c.grapple.Session()
}

// FacingDirection returns -1 or +1
func (c *Controller) FacingDirection() int {
	return c.state.Facing
}

// LastRayHit returns the last grapple target the hook ray reached
func (c *Controller) LastRayHit() (entity.Hit, bool) {
	return c.grapple.LastHit()
}

// OnAbilityUnlocked unlocks a and re-derives the effective config.
// Values already in flight, such as a wall jump launch, are left alone.
func (c *Controller) OnAbilityUnlocked(a Ability) {
	if c.gate.Unlock(a) {
		c.reshape()
	}
}

// ResetAbilities clears every unlock
func (c *Controller) ResetAbilities() {
	c.gate.Reset()
	c.reshape()
}

// ReplaceConfig swaps the base tuning. Armed timers are not rewritten.
func (c *Controller) ReplaceConfig(cfg *config.MovementConfig) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("controller: %w", err)
	}
	c.base = cfg.Clone()
	c.reshape()
	return nil
}

func (c *Controller) reshape() {
	c.config = c.gate.Shape(c.base)
	// The masks were validated with the base config, so these cannot fail.
	_ = c.sensor.Configure(c.config)
	_ = c.grapple.Configure(c.config)
	_ = c.parry.Configure(c.config)
	if c.state.JumpsRemaining > c.config.Jump.MaxJumps {
		c.state.JumpsRemaining = c.config.Jump.MaxJumps
	}
}

// OnExternalDamage queues a damage transition for the next logic tick
func (c *Controller) OnExternalDamage() {
	c.Submit(DamageIntent{})
}

// OnBouncePad queues a horizontal input lock for the next logic tick
func (c *Controller) OnBouncePad(lockDuration float64) {
	c.Submit(BounceLockIntent{Duration: lockDuration})
}

// Respawn queues a move to position with transient state cleared
func (c *Controller) Respawn(position entity.Vec2) {
	c.Submit(RespawnIntent{Position: position})
}

// Submit queues an intent for the next logic tick
func (c *Controller) Submit(intent Intent) {
	c.intents = append(c.intents, intent)
}

func (c *Controller) applyIntents() {
	for _, intent := range c.intents {
		switch it := intent.(type) {
		case DamageIntent:
			c.cancelMotion()
			if c.OnRespawnRequest != nil {
				c.OnRespawnRequest()
			}
		case BounceLockIntent:
			c.timers.Arm(TimerBounceLock, it.Duration)
		case RespawnIntent:
			c.cancelMotion()
			c.timers.Reset()
			c.state = MotionState{
				Facing:         1,
				JumpsRemaining: c.config.Jump.MaxJumps,
				CanDash:        true,
			}
			c.body.SetPosition(it.Position)
			c.body.SetVelocity(entity.Vec2{})
		}
	}
	c.intents = c.intents[:0]
}

// cancelMotion ends a dash, a grapple and a cling
func (c *Controller) cancelMotion() {
	c.state.Dashing = false
	c.timers.Clear(TimerDash)
	c.grapple.Cancel(c.body)
	c.timers.Clear(TimerRay)
	c.state.WallClinging = false
}

// TickLogic runs the state machine for one frame
func (c *Controller) TickLogic(in Input, dt float64) {
	c.applyIntents()

	c.state.Velocity = c.body.Velocity()
	c.timers.Tick(dt)
	if c.state.JustWallJumped && !c.timers.Armed(TimerWallJumpLock) {
		c.state.JustWallJumped = false
	}

	c.latchInput(in)
	c.updateContacts()
	c.grapple.Update(dt, !c.timers.Armed(TimerRay), c.body)

	c.handleDash(in)
	if !c.state.Dashing && !c.grapple.Active() {
		c.handleWallCling(in)
		c.handleJump(in)
		c.handleJumpBuffer()
	}
	c.handleHook(in)
	c.handleParry(in)

	if !c.state.CanDash && !c.timers.Armed(TimerDashCooldown) {
		c.state.CanDash = true
	}

	c.syncFlags()
	c.body.SetVelocity(c.state.Velocity)
}

// latchInput updates facing and the jump buffer
func (c *Controller) latchInput(in Input) {
	c.input = in

	if !c.grapple.Active() {
		dz := c.config.Run.FacingDeadZone
		if in.Horizontal > dz {
			c.state.Facing = 1
		} else if in.Horizontal < -dz {
			c.state.Facing = -1
		}
	}

	if in.JumpPressed {
		c.timers.Arm(TimerJumpBuffer, c.config.Jump.BufferTime)
	}
}

// updateContacts refreshes the sensor and does ground bookkeeping
func (c *Controller) updateContacts() {
	contact := c.sensor.Refresh(c.body.Position())

	c.state.WasGrounded = c.state.Grounded
	c.state.Grounded = contact.Grounded
	c.state.TouchingWall = contact.TouchingWall
	c.state.WallDirection = contact.WallDirection

	if !c.state.Grounded {
		return
	}
	c.state.JumpsRemaining = c.config.Jump.MaxJumps
	c.timers.Arm(TimerCoyote, c.config.Jump.CoyoteTime)

	if !c.state.WasGrounded {
		c.state.CanDash = true
		c.timers.Clear(TimerDashCooldown)
		if c.OnLand != nil {
			c.OnLand()
		}
	}
}

func (c *Controller) allowed(a Ability) bool {
	return !c.config.StrictAbilityGating || c.gate.Unlocked(a)
}

// handleDash starts and ends dashes
func (c *Controller) handleDash(in Input) {
	if in.DashPressed && c.state.CanDash && !c.state.Dashing && !c.grapple.Active() && c.allowed(AbilityDash) {
		c.state.Dashing = true
		c.state.DashDirection = c.state.Facing
		c.state.CanDash = false
		c.state.WallClinging = false
		c.timers.Arm(TimerDash, c.config.Dash.Duration)
		c.timers.Arm(TimerDashCooldown, c.config.Dash.Cooldown)
		c.state.Velocity = entity.Vec2{X: float64(c.state.DashDirection) * c.config.Dash.Speed}
		if c.OnDash != nil {
			c.OnDash(c.state.DashDirection)
		}
	}

	if c.state.Dashing && !c.timers.Armed(TimerDash) {
		c.state.Dashing = false
	}
}

// handleWallCling enters, keeps or drops the wall cling
func (c *Controller) handleWallCling(in Input) {
	was := c.state.WallClinging
	c.state.WasWallClinging = was

	if !c.allowed(AbilityWallJump) || c.timers.Armed(TimerWallDetach) || c.state.JustWallJumped {
		c.state.WallClinging = false
		return
	}

	effective := in.Horizontal
	if c.timers.Armed(TimerWallJumpLock) {
		effective = 0
	}
	towardWall := c.state.WallDirection != 0 && effective*float64(c.state.WallDirection) > 0

	if !c.state.TouchingWall || c.state.Grounded || !towardWall {
		c.state.WallClinging = false
		return
	}

	c.state.WallClinging = true
	c.state.Facing = -c.state.WallDirection
	if !was {
		c.state.JumpsRemaining = c.config.Jump.MaxJumps
	}
	if c.state.Velocity.Y < c.config.Wall.SlideSpeed {
		c.state.Velocity.Y = c.config.Wall.SlideSpeed
	}
}

// handleJump resolves wall, coyote and air jumps plus the short-hop cut
func (c *Controller) handleJump(in Input) {
	if in.JumpPressed && c.state.WallClinging {
		dir := c.state.WallDirection
		c.state.Velocity = entity.Vec2{
			X: float64(-dir) * c.config.Wall.JumpHorizontal,
			Y: c.config.Wall.JumpVertical,
		}
		c.timers.Arm(TimerWallJumpLock, c.config.Wall.InputLock)
		c.timers.Arm(TimerWallDetach, c.config.Wall.DetachCooldown)
		c.timers.Clear(TimerJumpBuffer)
		c.state.WallClinging = false
		c.state.JustWallJumped = true
		if c.OnWallJump != nil {
			c.OnWallJump(-dir)
		}
		return
	}

	if in.JumpPressed && c.state.JumpsRemaining > 0 {
		switch {
		case c.timers.Armed(TimerCoyote):
			c.timers.Clear(TimerCoyote)
			c.jump(JumpGrounded)
		case c.gate.Unlocked(AbilityDoubleJump) && !c.state.Grounded:
			c.jump(JumpAir)
		}
	}

	if in.JumpReleased && c.state.Velocity.Y > 0 {
		c.state.Velocity.Y *= c.config.Jump.ShortHopFactor
	}
}

func (c *Controller) jump(kind JumpKind) {
	c.state.Velocity.Y = c.config.Jump.Force
	c.state.JumpsRemaining--
	c.timers.Clear(TimerJumpBuffer)
	if c.OnJump != nil {
		c.OnJump(kind)
	}
}

// handleJumpBuffer fires a remembered press once coyote time is valid
func (c *Controller) handleJumpBuffer() {
	if !c.timers.Armed(TimerJumpBuffer) || !c.timers.Armed(TimerCoyote) {
		return
	}
	c.state.Velocity.Y = c.config.Jump.Force
	c.timers.Clear(TimerJumpBuffer)
	if c.OnJump != nil {
		c.OnJump(JumpBuffered)
	}
}

// handleHook starts a grapple session. Presses during a session are ignored.
func (c *Controller) handleHook(in Input) {
	if !in.HookPressed || c.grapple.Active() || c.state.Dashing {
		return
	}
	if c.timers.Armed(TimerGrappleCooldown) || !c.allowed(AbilityHook) {
		return
	}

	dir := entity.Vec2{X: float64(c.state.Facing)}
	dz := c.config.Grapple.AimDeadZone
	if in.Vertical > dz {
		dir = entity.Vec2{Y: 1}
	} else if in.Vertical < -dz {
		dir = entity.Vec2{Y: -1}
	}

	c.timers.Arm(TimerGrappleCooldown, c.config.Grapple.Cooldown)
	c.timers.Arm(TimerRay, c.config.Grapple.RayDuration)
	c.state.WallClinging = false
	c.state.Velocity = entity.Vec2{}

	if hit, ok := c.grapple.Begin(c.body, dir); ok && c.OnGrappleHit != nil {
		c.OnGrappleHit(hit)
	}
}

// handleParry opens the window and applies the bounce while it overlaps the parry layer
func (c *Controller) handleParry(in Input) {
	c.parry.TryOpen(in.ParryPressed, &c.timers)
	if !c.parry.Check(c.body.Position(), &c.timers) {
		return
	}
	c.state.Velocity.Y = c.config.Parry.EndBoost
	c.refill()
	if c.OnParry != nil {
		c.OnParry()
	}
}

// refill restores jumps and dash after a grapple or parry
func (c *Controller) refill() {
	c.state.JumpsRemaining = c.config.Jump.MaxJumps
	c.state.CanDash = true
	c.timers.Clear(TimerDashCooldown)
}

func (c *Controller) syncFlags() {
	c.state.RayActive = c.grapple.Active()
	c.state.GrapplePending = c.grapple.Pending()
	c.state.GrapplePulling = c.grapple.Pulling()
	c.state.ParryActive = c.parry.Open(&c.timers)
}
