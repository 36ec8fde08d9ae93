package chipmunk

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/younwookim/mover/internal/domain/entity"
)

// categorySolid marks shapes bodies collide with, on top of their layer bit
const categorySolid uint = 1 << 16

const collisionSlop = 0.01

// World is a chipmunk space built from a tile stage
type World struct {
	space  *cp.Space
	stage  *entity.Stage
	bodies []*Body
}

// New builds static shapes for every non-empty tile run plus a solid frame around the stage
func New(stage *entity.Stage, gravity float64) *World {
	space := cp.NewSpace()
	space.SetGravity(cp.Vector{X: 0, Y: gravity})
	space.SetCollisionSlop(collisionSlop)

	w := &World{space: space, stage: stage}
	w.buildTiles()
	w.buildFrame()
	return w
}

// SetGravity changes the world gravity
func (w *World) SetGravity(g float64) {
	w.space.SetGravity(cp.Vector{X: 0, Y: g})
}

// Step advances the simulation by dt
func (w *World) Step(dt float64) {
	w.space.Step(dt)
}

// buildTiles merges horizontal runs of identical tiles into single boxes
func (w *World) buildTiles() {
	s := w.stage
	ts := s.TileSize
	for ty := 0; ty < s.Height; ty++ {
		tx := 0
		for tx < s.Width {
			tile := s.GetTile(tx, ty)
			if tile.Layer == 0 {
				tx++
				continue
			}
			start := tx
			for tx < s.Width && s.GetTile(tx, ty) == tile {
				tx++
			}
			w.addStatic(cp.BB{
				L: float64(start) * ts,
				B: float64(ty) * ts,
				R: float64(tx) * ts,
				T: float64(ty+1) * ts,
			}, tile.Layer, tile.Solid)
		}
	}
}

// buildFrame walls the stage in, matching out-of-bounds tiles being ground
func (w *World) buildFrame() {
	b := w.stage.Bounds()
	const t = 1.0
	for _, bb := range []cp.BB{
		{L: b.Min.X - t, B: b.Min.Y - t, R: b.Max.X + t, T: b.Min.Y},
		{L: b.Min.X - t, B: b.Max.Y, R: b.Max.X + t, T: b.Max.Y + t},
		{L: b.Min.X - t, B: b.Min.Y, R: b.Min.X, T: b.Max.Y},
		{L: b.Max.X, B: b.Min.Y, R: b.Max.X + t, T: b.Max.Y},
	} {
		w.addStatic(bb, entity.LayerGround, true)
	}
}

func (w *World) addStatic(bb cp.BB, layer entity.Layer, solid bool) *cp.Shape {
	shape := cp.NewBox2(w.space.StaticBody, bb, 0)
	shape.SetFriction(0)
	shape.SetFilter(shapeFilter(layer, solid))
	shape.UserData = layer
	w.space.AddShape(shape)
	return shape
}

// AddBody creates a dynamic box that never rotates and only collides with solid shapes
func (w *World) AddBody(pos, size entity.Vec2, mass float64) *Body {
	if mass <= 0 {
		mass = 1
	}
	body := cp.NewBody(mass, math.Inf(1))
	body.SetPosition(toVector(pos))

	shape := cp.NewBox(body, size.X, size.Y, 0)
	shape.SetFriction(0)
	shape.SetElasticity(0)
	shape.SetFilter(cp.ShapeFilter{
		Group:      cp.NO_GROUP,
		Categories: uint(entity.LayerPlayer),
		Mask:       categorySolid,
	})
	shape.UserData = entity.LayerPlayer

	w.space.AddBody(body)
	w.space.AddShape(shape)

	b := &Body{body: body, shape: shape, size: size, gravityScale: 1}
	body.SetVelocityUpdateFunc(b.updateVelocity)
	w.bodies = append(w.bodies, b)
	return b
}

// RemoveBody takes b out of the space
func (w *World) RemoveBody(b *Body) {
	w.space.RemoveShape(b.shape)
	w.space.RemoveBody(b.body)
	for i, o := range w.bodies {
		if o == b {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			return
		}
	}
}

func shapeFilter(layer entity.Layer, solid bool) cp.ShapeFilter {
	categories := uint(layer)
	if solid {
		categories |= categorySolid
	}
	return cp.ShapeFilter{
		Group:      cp.NO_GROUP,
		Categories: categories,
		Mask:       cp.ALL_CATEGORIES,
	}
}

func queryFilter(mask entity.LayerMask) cp.ShapeFilter {
	return cp.ShapeFilter{
		Group:      cp.NO_GROUP,
		Categories: cp.ALL_CATEGORIES,
		Mask:       uint(mask),
	}
}

func toVector(v entity.Vec2) cp.Vector {
	return cp.Vector{X: v.X, Y: v.Y}
}

func fromVector(v cp.Vector) entity.Vec2 {
	return entity.Vec2{X: v.X, Y: v.Y}
}

func bbRect(bb cp.BB) entity.Rect {
	return entity.Rect{Min: entity.Vec2{X: bb.L, Y: bb.B}, Max: entity.Vec2{X: bb.R, Y: bb.T}}
}
