package system

import (
	"fmt"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/younwookim/mover/internal/domain/entity"
	"github.com/younwookim/mover/internal/infrastructure/config"
)

// GrapplePhase is the scheduled state of a grapple session
type GrapplePhase int

const (
	GrappleIdle GrapplePhase = iota
	// GrappleCasting means the ray is out and found nothing; it lasts until the ray timer runs out.
	GrappleCasting
	GrapplePending
	GrapplePulling
)

func (p GrapplePhase) String() string {
	switch p {
	case GrappleIdle:
		return "Idle"
	case GrappleCasting:
		return "Casting"
	case GrapplePending:
		return "Pending"
	case GrapplePulling:
		return "Pulling"
	default:
		return "Unknown"
	}
}

// GrappleSession is the resumable record of one hook activation
type GrappleSession struct {
	Phase     GrapplePhase
	Direction entity.Vec2
	Hit       entity.Hit
	HasHit    bool
	Start     entity.Vec2
	Target    entity.Vec2
	Delay     float64 // seconds left before pulling starts
	Progress  float64 // 0..1 along the pull
	Elapsed   float64 // seconds spent pulling

	tween *gween.Tween
}

// pullEpsilon absorbs float drift when summing fixed steps up to the lerp duration
const pullEpsilon = 1e-9

// GrappleResolver casts the hook ray and drives the delayed pull
type GrappleResolver struct {
	collider Collider
	mask     entity.LayerMask
	delay    float64
	lerp     float64
	distance float64

	session      GrappleSession
	savedGravity float64
	lastHit      entity.Hit
	hasLastHit   bool
}

// NewGrappleResolver creates a resolver. An empty grapple mask is an error.
func NewGrappleResolver(collider Collider, cfg *config.MovementConfig) (*GrappleResolver, error) {
	if collider == nil {
		return nil, ErrNilCollider
	}
	g := &GrappleResolver{collider: collider}
	if err := g.Configure(cfg); err != nil {
		return nil, err
	}
	return g, nil
}

// Configure applies new tuning. A session in flight keeps its own timing.
func (g *GrappleResolver) Configure(cfg *config.MovementConfig) error {
	mask := cfg.Layers.Grapple.Mask()
	if mask.Empty() {
		return fmt.Errorf("grapple: %w: grapple", config.ErrEmptyLayerMask)
	}
	g.mask = mask
	g.delay = cfg.Grapple.Delay
	g.lerp = cfg.Grapple.LerpDuration
	g.distance = cfg.Grapple.RayDistance
	return nil
}

// Session returns a copy of the current session
func (g *GrappleResolver) Session() GrappleSession {
	return g.session
}

// Active reports whether a ray is out, pending or pulling
func (g *GrappleResolver) Active() bool {
	return g.session.Phase != GrappleIdle
}

func (g *GrappleResolver) Pending() bool {
	return g.session.Phase == GrapplePending
}

func (g *GrappleResolver) Pulling() bool {
	return g.session.Phase == GrapplePulling
}

// LastHit returns the most recent grapple target hit
func (g *GrappleResolver) LastHit() (entity.Hit, bool) {
	return g.lastHit, g.hasLastHit
}

// Begin freezes the body and casts the hook ray along dir.
// It reports the hit when the ray reached a grapple target.
func (g *GrappleResolver) Begin(body Body, dir entity.Vec2) (entity.Hit, bool) {
	g.savedGravity = body.GravityScale()
	body.SetGravityScale(0)
	body.SetVelocity(entity.Vec2{})

	pos := body.Position()
	g.session = GrappleSession{
		Phase:     GrappleCasting,
		Direction: dir,
		Start:     pos,
	}

	hit, ok := g.collider.Raycast(pos, dir, g.distance, g.mask)
	if !ok || !g.mask.Has(hit.Layer) {
		return entity.Hit{}, false
	}

	g.session.Phase = GrapplePending
	g.session.Hit = hit
	g.session.HasHit = true
	g.session.Delay = g.delay
	g.lastHit, g.hasLastHit = hit, true
	return hit, true
}

// Update advances the scheduled phases once per logic tick.
// rayExpired is true once the ray timer has run out.
func (g *GrappleResolver) Update(dt float64, rayExpired bool, body Body) {
	switch g.session.Phase {
	case GrappleCasting:
		if rayExpired {
			g.Cancel(body)
		}
	case GrapplePending:
		g.session.Delay -= dt
		if g.session.Delay <= 0 {
			g.startPull(body)
		}
	}
}

func (g *GrappleResolver) startPull(body Body) {
	s := &g.session
	s.Phase = GrapplePulling
	s.Delay = 0
	s.Start = body.Position()
	if s.Direction.Y != 0 {
		s.Target = entity.Vec2{X: s.Start.X, Y: s.Hit.Target.Y}
	} else {
		s.Target = entity.Vec2{X: s.Hit.Target.X, Y: s.Start.Y}
	}
	s.Progress = 0
	s.Elapsed = 0
	s.tween = gween.New(0, 1, float32(g.lerp), ease.Linear)
}

// Advance moves the body along the pull for one physics step.
// It reports true on the step the pull completes; the body is then exactly on target
// and its gravity scale restored.
func (g *GrappleResolver) Advance(dt float64, body Body) bool {
	s := &g.session
	if s.Phase != GrapplePulling {
		return false
	}

	// The clock stays in float64; gween only shapes the curve
	s.Elapsed += dt
	if s.Elapsed >= g.lerp-pullEpsilon {
		body.SetPosition(s.Target)
		body.SetGravityScale(g.savedGravity)
		g.session = GrappleSession{}
		return true
	}

	progress, _ := s.tween.Set(float32(s.Elapsed))
	s.Progress = float64(progress)
	body.SetPosition(s.Start.Lerp(s.Target, s.Progress))
	return false
}

// Cancel drops any session and restores the body's gravity
func (g *GrappleResolver) Cancel(body Body) {
	if g.session.Phase == GrappleIdle {
		return
	}
	body.SetGravityScale(g.savedGravity)
	g.session = GrappleSession{}
}
