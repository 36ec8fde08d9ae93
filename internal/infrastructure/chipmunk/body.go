package chipmunk

import (
	"github.com/jakecoffman/cp"

	"github.com/younwookim/mover/internal/domain/entity"
)

// Body adapts a chipmunk body to the controller's body contract
type Body struct {
	body         *cp.Body
	shape        *cp.Shape
	size         entity.Vec2
	gravityScale float64
}

// updateVelocity integrates gravity scaled per body
func (b *Body) updateVelocity(body *cp.Body, gravity cp.Vector, damping, dt float64) {
	cp.BodyUpdateVelocity(body, gravity.Mult(b.gravityScale), damping, dt)
}

func (b *Body) Position() entity.Vec2 {
	return fromVector(b.body.Position())
}

func (b *Body) SetPosition(p entity.Vec2) {
	b.body.SetPosition(toVector(p))
}

func (b *Body) Velocity() entity.Vec2 {
	return fromVector(b.body.Velocity())
}

func (b *Body) SetVelocity(v entity.Vec2) {
	b.body.SetVelocity(v.X, v.Y)
}

func (b *Body) GravityScale() float64 {
	return b.gravityScale
}

func (b *Body) SetGravityScale(s float64) {
	b.gravityScale = s
}

// ApplyImpulse pushes the body through its center
func (b *Body) ApplyImpulse(j entity.Vec2) {
	b.body.ApplyImpulseAtWorldPoint(toVector(j), b.body.Position())
}

// Size returns the box size
func (b *Body) Size() entity.Vec2 {
	return b.size
}

// Bounds returns the box in world units
func (b *Body) Bounds() entity.Rect {
	return entity.RectFromCenter(b.Position(), b.size)
}
