// Package sim runs the movement controller against a physics backend at a fixed step.
package sim

import (
	"errors"
	"fmt"
	"log"

	"github.com/younwookim/mover/internal/application/system"
	"github.com/younwookim/mover/internal/domain/entity"
	"github.com/younwookim/mover/internal/ecs"
	"github.com/younwookim/mover/internal/infrastructure/chipmunk"
	"github.com/younwookim/mover/internal/infrastructure/config"
	"github.com/younwookim/mover/internal/infrastructure/resolvworld"
	"github.com/younwookim/mover/internal/infrastructure/tileworld"
)

// Physics backends
const (
	BackendTile     = "tile"
	BackendChipmunk = "chipmunk"
)

const (
	// DefaultPhysicsDT is the fixed physics step, 50 Hz
	DefaultPhysicsDT = 1.0 / 50.0
	// DefaultMaxSteps caps physics steps per logic tick after a long frame
	DefaultMaxSteps = 5
	// volumePPU is the resolv pixels per world unit for trigger volumes
	volumePPU = 16
)

// ErrUnknownBackend is returned for a backend name New does not know
var ErrUnknownBackend = errors.New("unknown physics backend")

// ErrNoStage is returned when New is called without a stage
var ErrNoStage = errors.New("stage is nil")

// Backend is the physics engine a simulation steps
type Backend interface {
	system.Collider
	Step(dt float64)
	SetGravity(g float64)
}

// Options configures a simulation
type Options struct {
	Movement  *config.MovementConfig
	Stage     *entity.Stage
	Triggers  []config.TriggerConfig
	Backend   string // BackendTile when empty
	PhysicsDT float64
	MaxSteps  int
	Abilities []system.Ability
}

// Simulation owns one controller, its body, the physics backend and the trigger world
type Simulation struct {
	Controller *system.Controller
	Triggers   *ecs.World
	Stage      *entity.Stage

	backend     Backend
	backendName string
	body        system.ImpulseBody
	size        entity.Vec2
	gravity     float64

	physicsDT   float64
	maxSteps    int
	accumulator float64
	ticks       int
	steps       int

	inHazard       bool
	respawnPending bool
	won            bool

	OnWin     func()
	OnRespawn func()
}

// New builds a simulation with the player at the stage spawn
func New(opts Options) (*Simulation, error) {
	if opts.Stage == nil {
		return nil, ErrNoStage
	}
	cfg := opts.Movement
	if cfg == nil {
		cfg = config.DefaultMovementConfig()
	}
	if opts.PhysicsDT <= 0 {
		opts.PhysicsDT = DefaultPhysicsDT
	}
	if opts.MaxSteps <= 0 {
		opts.MaxSteps = DefaultMaxSteps
	}
	if opts.Backend == "" {
		opts.Backend = BackendTile
	}

	s := &Simulation{
		Stage:       opts.Stage,
		backendName: opts.Backend,
		size:        cfg.Body.Size,
		gravity:     cfg.Gravity.Gravity,
		physicsDT:   opts.PhysicsDT,
		maxSteps:    opts.MaxSteps,
	}

	space := resolvworld.New(opts.Stage.Bounds(), volumePPU)
	s.Triggers = ecs.NewWorld(space, opts.Stage, s.gravity)
	if err := s.Triggers.SpawnAll(opts.Triggers); err != nil {
		return nil, err
	}

	switch opts.Backend {
	case BackendTile:
		world := tileworld.New(opts.Stage, s.gravity)
		body := entity.NewBody(opts.Stage.Spawn, s.size)
		world.AddBody(body)
		world.AddSolid(space)
		world.OnStuck = func(b *entity.Body) {
			log.Printf("body stuck at %.2f,%.2f, moved to spawn", b.Pos.X, b.Pos.Y)
		}
		s.backend, s.body = world, body
	case BackendChipmunk:
		world := chipmunk.New(opts.Stage, s.gravity)
		s.body = world.AddBody(opts.Stage.Spawn, s.size, 1)
		s.backend = world
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
	}
	s.body.SetGravityScale(cfg.Body.GravityScale)

	collider := system.Colliders{s.backend, space}
	c, err := system.NewController(cfg, s.body, collider, system.NewAbilityGate(opts.Abilities...))
	if err != nil {
		return nil, err
	}
	c.OnRespawnRequest = func() { s.respawnPending = true }
	s.Controller = c

	s.Triggers.AttachPlayer(s.body, s.size, c)
	s.Triggers.OnWin = func() {
		s.won = true
		if s.OnWin != nil {
			s.OnWin()
		}
	}
	return s, nil
}

// Tick runs one logic tick and as many fixed physics steps as dt has accumulated
func (s *Simulation) Tick(in system.Input, dt float64) {
	s.Triggers.Update(dt)
	s.checkHazardTiles()
	s.Controller.TickLogic(in, dt)
	if s.respawnPending {
		s.respawn()
	}

	s.accumulator += dt
	steps := 0
	for s.accumulator >= s.physicsDT && steps < s.maxSteps {
		s.Controller.TickPhysics(s.physicsDT)
		s.backend.Step(s.physicsDT)
		s.accumulator -= s.physicsDT
		steps++
	}
	if steps == s.maxSteps {
		s.accumulator = 0
	}

	s.steps += steps
	s.ticks++
}

// checkHazardTiles reports damage when the body first overlaps a hazard tile
func (s *Simulation) checkHazardTiles() {
	hazard := s.backend.OverlapBox(s.body.Position(), s.size, entity.MaskOf(entity.LayerHazard))
	if hazard && !s.inHazard {
		s.Controller.OnExternalDamage()
	}
	s.inHazard = hazard
}

// respawn moves the body home now and lets the controller reset its state next tick
func (s *Simulation) respawn() {
	s.respawnPending = false
	s.body.SetPosition(s.Stage.Spawn)
	s.body.SetVelocity(entity.Vec2{})
	s.Controller.Respawn(s.Stage.Spawn)
	s.Triggers.Reset()
	s.inHazard = false
	s.won = false
	if s.OnRespawn != nil {
		s.OnRespawn()
	}
}

// ReplaceConfig swaps the movement tuning, keeping armed timers and velocity
func (s *Simulation) ReplaceConfig(cfg *config.MovementConfig) error {
	if err := s.Controller.ReplaceConfig(cfg); err != nil {
		return err
	}
	// A grapple in flight restores its own saved scale when it ends
	if s.Controller.Grapple().Phase == system.GrappleIdle {
		s.body.SetGravityScale(cfg.Body.GravityScale)
	}
	s.gravity = cfg.Gravity.Gravity
	s.backend.SetGravity(s.gravity)
	s.Triggers.Gravity = s.gravity
	return nil
}

// Body returns the player body
func (s *Simulation) Body() system.ImpulseBody {
	return s.body
}

// BodySize returns the player box size
func (s *Simulation) BodySize() entity.Vec2 {
	return s.size
}

// Backend returns the physics backend
func (s *Simulation) Backend() Backend {
	return s.backend
}

// BackendName returns the backend the simulation was built with
func (s *Simulation) BackendName() string {
	return s.backendName
}

// Won reports whether the win zone was reached since the last respawn
func (s *Simulation) Won() bool {
	return s.won
}

// Ticks returns the number of logic ticks run
func (s *Simulation) Ticks() int {
	return s.ticks
}

// Steps returns the number of physics steps run
func (s *Simulation) Steps() int {
	return s.steps
}
