package system

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/younwookim/mover/internal/domain/entity"
	"github.com/younwookim/mover/internal/infrastructure/config"
)

const testDT = 1.0 / 50.0

// fakeBox is one collider in fakeCollider
type fakeBox struct {
	rect  entity.Rect
	layer entity.Layer
}

// fakeCollider answers queries against a flat list of boxes
type fakeCollider struct {
	boxes []fakeBox
}

func (f *fakeCollider) add(minX, minY, maxX, maxY float64, layer entity.Layer) *fakeCollider {
	f.boxes = append(f.boxes, fakeBox{
		rect:  entity.Rect{Min: entity.Vec2{X: minX, Y: minY}, Max: entity.Vec2{X: maxX, Y: maxY}},
		layer: layer,
	})
	return f
}

func (f *fakeCollider) OverlapBox(center, size entity.Vec2, mask entity.LayerMask) bool {
	probe := entity.RectFromCenter(center, size)
	for _, b := range f.boxes {
		if mask.Has(b.layer) && probe.Overlaps(b.rect) {
			return true
		}
	}
	return false
}

func (f *fakeCollider) BoxCast(origin, size, dir entity.Vec2, distance float64, mask entity.LayerMask) (entity.Hit, bool) {
	return f.cast(origin, size.Scale(0.5), dir, distance, mask)
}

func (f *fakeCollider) Raycast(origin, dir entity.Vec2, distance float64, mask entity.LayerMask) (entity.Hit, bool) {
	return f.cast(origin, entity.Vec2{}, dir, distance, mask)
}

func (f *fakeCollider) cast(origin, half, dir entity.Vec2, distance float64, mask entity.LayerMask) (entity.Hit, bool) {
	var best entity.Hit
	found := false
	for i, b := range f.boxes {
		if !mask.Has(b.layer) {
			continue
		}
		d, ok := b.rect.Expand(half).Raycast(origin, dir, distance)
		if !ok || (found && d >= best.Distance) {
			continue
		}
		best = entity.Hit{
			Point:    origin.Add(dir.Scale(d)),
			Target:   b.rect.Center(),
			Distance: d,
			Layer:    b.layer,
			ID:       i,
		}
		found = true
	}
	return best, found
}

// floorCollider has solid ground below y=0
func floorCollider() *fakeCollider {
	return (&fakeCollider{}).add(-100, -10, 100, 0, entity.LayerGround)
}

// groundY is the body center height when resting on floorCollider
const groundY = 0.5

func createTestController(t *testing.T, col Collider, pos entity.Vec2, abilities ...Ability) (*Controller, *entity.Body) {
	t.Helper()
	return createTestControllerWithConfig(t, config.DefaultMovementConfig(), col, pos, abilities...)
}

func createTestControllerWithConfig(t *testing.T, cfg *config.MovementConfig, col Collider, pos entity.Vec2, abilities ...Ability) (*Controller, *entity.Body) {
	t.Helper()
	body := entity.NewBody(pos, cfg.Body.Size)
	body.GravityFactor = cfg.Body.GravityScale
	c, err := NewController(cfg, body, col, NewAbilityGate(abilities...))
	require.NoError(t, err)
	return c, body
}

// stepWorld is a tiny integrator: gravity, motion, and a floor at y=0
func stepWorld(body *entity.Body, gravity, dt float64) {
	body.Vel.Y += gravity * body.GravityFactor * dt
	body.Pos = body.Pos.Add(body.Vel.Scale(dt))
	if body.Pos.Y < groundY {
		body.Pos.Y = groundY
		if body.Vel.Y < 0 {
			body.Vel.Y = 0
		}
	}
}

// tick runs one logic tick followed by one physics step of stepWorld
func tick(c *Controller, body *entity.Body, in Input, dt float64) {
	c.TickLogic(in, dt)
	c.TickPhysics(dt)
	stepWorld(body, c.Config().Gravity.Gravity, dt)
}
