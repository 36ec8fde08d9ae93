package system

import (
	"errors"

	"github.com/younwookim/mover/internal/domain/entity"
)

var (
	// ErrNilBody is returned when a controller is built without a body
	ErrNilBody = errors.New("body is nil")
	// ErrNilCollider is returned when a component is built without a collider
	ErrNilCollider = errors.New("collider is nil")
)

// Collider answers the geometry queries the controller relies on.
type Collider interface {
	// OverlapBox reports whether a box centered at center overlaps any collider in mask.
	OverlapBox(center, size entity.Vec2, mask entity.LayerMask) bool
	// BoxCast sweeps a box from origin along dir (unit vector) up to distance.
	BoxCast(origin, size, dir entity.Vec2, distance float64, mask entity.LayerMask) (entity.Hit, bool)
	// Raycast casts a ray from origin along dir (unit vector) up to distance.
	Raycast(origin, dir entity.Vec2, distance float64, mask entity.LayerMask) (entity.Hit, bool)
}

// Body is the physics body the controller steers
type Body interface {
	Position() entity.Vec2
	SetPosition(p entity.Vec2)
	Velocity() entity.Vec2
	SetVelocity(v entity.Vec2)
	GravityScale() float64
	SetGravityScale(s float64)
}

// ImpulseBody is a Body that collaborators such as bounce pads can push
type ImpulseBody interface {
	Body
	ApplyImpulse(j entity.Vec2)
}

// Colliders merges several colliders into one.
// Overlaps succeed if any member overlaps; casts return the nearest hit.
type Colliders []Collider

func (cs Colliders) OverlapBox(center, size entity.Vec2, mask entity.LayerMask) bool {
	for _, c := range cs {
		if c.OverlapBox(center, size, mask) {
			return true
		}
	}
	return false
}

func (cs Colliders) BoxCast(origin, size, dir entity.Vec2, distance float64, mask entity.LayerMask) (entity.Hit, bool) {
	return cs.nearest(func(c Collider) (entity.Hit, bool) {
		return c.BoxCast(origin, size, dir, distance, mask)
	})
}

func (cs Colliders) Raycast(origin, dir entity.Vec2, distance float64, mask entity.LayerMask) (entity.Hit, bool) {
	return cs.nearest(func(c Collider) (entity.Hit, bool) {
		return c.Raycast(origin, dir, distance, mask)
	})
}

func (cs Colliders) nearest(cast func(Collider) (entity.Hit, bool)) (entity.Hit, bool) {
	var best entity.Hit
	found := false
	for _, c := range cs {
		hit, ok := cast(c)
		if ok && (!found || hit.Distance < best.Distance) {
			best, found = hit, true
		}
	}
	return best, found
}
