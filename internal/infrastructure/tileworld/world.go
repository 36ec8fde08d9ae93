package tileworld

import (
	"math"

	"github.com/younwookim/mover/internal/domain/entity"
)

const (
	defaultSubstep      = 1.0 / 16
	defaultMaxPushOut   = 0.5
	defaultCornerMargin = 0.25
	snapIterations      = 10
)

// Solid is extra blocking geometry moved by someone else, such as a falling platform
type Solid interface {
	SolidIn(r entity.Rect) bool
}

// Option configures a World
type Option func(*World)

// WithSubstep sets the largest distance a body moves between collision checks
func WithSubstep(s float64) Option {
	return func(w *World) {
		if s > 0 {
			w.substep = s
		}
	}
}

// WithCornerCorrection sets how far a body bumping a ceiling corner may be nudged sideways.
// Zero disables it.
func WithCornerCorrection(margin float64) Option {
	return func(w *World) {
		w.cornerMargin = margin
	}
}

// World moves bodies through a tile stage with substep collision
type World struct {
	stage        *entity.Stage
	gravity      float64
	substep      float64
	maxPushOut   float64
	cornerMargin float64

	bodies []*entity.Body
	solids []Solid

	// OnStuck is called when a body could not be pushed out of geometry and was reset to spawn
	OnStuck func(b *entity.Body)
}

// New creates a world over stage with a downward gravity (negative, y-up)
func New(stage *entity.Stage, gravity float64, opts ...Option) *World {
	w := &World{
		stage:        stage,
		gravity:      gravity,
		substep:      defaultSubstep,
		maxPushOut:   defaultMaxPushOut,
		cornerMargin: defaultCornerMargin,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Stage returns the tile stage
func (w *World) Stage() *entity.Stage {
	return w.stage
}

// SetGravity changes the world gravity
func (w *World) SetGravity(g float64) {
	w.gravity = g
}

// AddBody registers a body to be moved by Step
func (w *World) AddBody(b *entity.Body) {
	w.bodies = append(w.bodies, b)
}

// RemoveBody unregisters b
func (w *World) RemoveBody(b *entity.Body) {
	for i, o := range w.bodies {
		if o == b {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			return
		}
	}
}

// AddSolid adds blocking geometry outside the tile grid
func (w *World) AddSolid(s Solid) {
	w.solids = append(w.solids, s)
}

// Step applies gravity and moves every body by its velocity for dt seconds
func (w *World) Step(dt float64) {
	for _, b := range w.bodies {
		w.stepBody(b, dt)
	}
}

func (w *World) stepBody(b *entity.Body, dt float64) {
	b.Vel.Y += w.gravity * b.GravityFactor * dt

	b.ClearContacts()

	// First, resolve any existing overlaps (push-out)
	w.resolveOverlap(b)

	w.moveX(b, b.Vel.X*dt)
	w.moveY(b, b.Vel.Y*dt)

	w.resolveOverlap(b)
}

// blocked reports whether r overlaps solid tiles or extra solids
func (w *World) blocked(r entity.Rect) bool {
	if w.stage.IsSolidRect(r) {
		return true
	}
	for _, s := range w.solids {
		if s.SolidIn(r) {
			return true
		}
	}
	return false
}

func (w *World) blockedAt(b *entity.Body, pos entity.Vec2) bool {
	return w.blocked(entity.RectFromCenter(pos, b.Size))
}

// moveX moves the body horizontally in substeps, stopping flush against walls
func (w *World) moveX(b *entity.Body, dx float64) {
	if dx == 0 {
		return
	}

	n := int(math.Ceil(math.Abs(dx) / w.substep))
	step := dx / float64(n)
	for i := 0; i < n; i++ {
		next := entity.Vec2{X: b.Pos.X + step, Y: b.Pos.Y}
		if w.blockedAt(b, next) {
			b.Pos = w.snap(b, b.Pos, next)
			b.Vel.X = 0
			if step > 0 {
				b.OnWallRight = true
			} else {
				b.OnWallLeft = true
			}
			return
		}
		b.Pos = next
	}
}

// moveY moves the body vertically in substeps, stopping flush on floors and ceilings
func (w *World) moveY(b *entity.Body, dy float64) {
	if dy == 0 {
		return
	}

	n := int(math.Ceil(math.Abs(dy) / w.substep))
	step := dy / float64(n)
	for i := 0; i < n; i++ {
		next := entity.Vec2{X: b.Pos.X, Y: b.Pos.Y + step}
		if w.blockedAt(b, next) {
			b.Pos = w.snap(b, b.Pos, next)
			b.Vel.Y = 0
			if step < 0 {
				b.OnGround = true
			} else {
				b.OnCeiling = true
				w.tryCornerCorrection(b, step)
			}
			return
		}
		b.Pos = next
	}
}

// snap bisects between a free and a blocked position and returns the
// furthest free one, leaving the body flush against what blocked it
func (w *World) snap(b *entity.Body, free, blocked entity.Vec2) entity.Vec2 {
	for i := 0; i < snapIterations; i++ {
		mid := free.Lerp(blocked, 0.5)
		if w.blockedAt(b, mid) {
			blocked = mid
		} else {
			free = mid
		}
	}
	return free
}

// tryCornerCorrection nudges a body that clipped a ceiling corner around it
func (w *World) tryCornerCorrection(b *entity.Body, dy float64) {
	if w.cornerMargin <= 0 {
		return
	}

	for _, dir := range []float64{-1, 1} {
		for off := w.substep; off <= w.cornerMargin+1e-9; off += w.substep {
			x := b.Pos.X + dir*off
			if w.blockedAt(b, entity.Vec2{X: x, Y: b.Pos.Y}) {
				break
			}
			if !w.blockedAt(b, entity.Vec2{X: x, Y: b.Pos.Y + dy}) {
				b.Pos.X = x
				b.OnCeiling = false
				return
			}
		}
	}
}

// resolveOverlap pushes the body out of any solid it is overlapping.
// It returns false if the body was stuck and reset to spawn.
func (w *World) resolveOverlap(b *entity.Body) bool {
	if !w.blockedAt(b, b.Pos) {
		return true
	}

	type pushOption struct {
		d        entity.Vec2
		distance float64
	}
	var best *pushOption

	dirs := []entity.Vec2{{X: -1}, {X: 1}, {Y: 1}, {Y: -1}}
	for _, dir := range dirs {
		for off := w.substep; off <= w.maxPushOut+1e-9; off += w.substep {
			d := dir.Scale(off)
			if !w.blockedAt(b, b.Pos.Add(d)) {
				if best == nil || off < best.distance {
					best = &pushOption{d: d, distance: off}
				}
				break
			}
		}
	}

	if best == nil {
		// Can't resolve - reset to spawn
		b.Pos = w.stage.Spawn
		b.Vel = entity.Vec2{}
		if w.OnStuck != nil {
			w.OnStuck(b)
		}
		return false
	}

	target := b.Pos.Add(best.d)
	b.Pos = w.snap(b, target, b.Pos)

	switch {
	case best.d.X > 0:
		b.OnWallLeft = true
		b.Vel.X = 0
	case best.d.X < 0:
		b.OnWallRight = true
		b.Vel.X = 0
	case best.d.Y > 0:
		b.OnGround = true
		if b.Vel.Y < 0 {
			b.Vel.Y = 0
		}
	case best.d.Y < 0:
		b.OnCeiling = true
		if b.Vel.Y > 0 {
			b.Vel.Y = 0
		}
	}
	return true
}
