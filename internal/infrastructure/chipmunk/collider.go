package chipmunk

import (
	"github.com/jakecoffman/cp"

	"github.com/younwookim/mover/internal/domain/entity"
)

// boxCastRays is how many parallel segments approximate a box cast
const boxCastRays = 3

// tileNudge moves a hit point past the shape edge into the tile it hit
const tileNudge = 1e-6

// OverlapBox reports whether the box overlaps a shape in mask.
// Shapes that only touch the box are not counted.
func (w *World) OverlapBox(center, size entity.Vec2, mask entity.LayerMask) bool {
	probe := entity.RectFromCenter(center, size)
	bb := cp.BB{L: probe.Min.X, B: probe.Min.Y, R: probe.Max.X, T: probe.Max.Y}

	found := false
	w.space.BBQuery(bb, queryFilter(mask), func(shape *cp.Shape, _ interface{}) {
		if !found && bbRect(shape.BB()).Overlaps(probe) {
			found = true
		}
	}, nil)
	return found
}

// Raycast returns the first shape in mask along the segment
func (w *World) Raycast(origin, dir entity.Vec2, distance float64, mask entity.LayerMask) (entity.Hit, bool) {
	return w.segment(origin, dir, distance, mask)
}

// BoxCast approximates a swept box with parallel segments from its leading edge
func (w *World) BoxCast(origin, size, dir entity.Vec2, distance float64, mask entity.LayerMask) (entity.Hit, bool) {
	half := size.Scale(0.5)
	// Leading edge center and the perpendicular span to cover
	lead := origin.Add(entity.Vec2{X: dir.X * half.X, Y: dir.Y * half.Y})
	perp := entity.Vec2{X: -dir.Y, Y: dir.X}
	span := perp.X*half.X + perp.Y*half.Y
	if span < 0 {
		span = -span
	}

	var best entity.Hit
	found := false
	for i := 0; i < boxCastRays; i++ {
		t := float64(i)/float64(boxCastRays-1)*2 - 1
		start := lead.Add(perp.Scale(t * span))
		hit, ok := w.segment(start, dir, distance, mask)
		if ok && (!found || hit.Distance < best.Distance) {
			best, found = hit, true
		}
	}
	return best, found
}

func (w *World) segment(origin, dir entity.Vec2, distance float64, mask entity.LayerMask) (entity.Hit, bool) {
	end := origin.Add(dir.Scale(distance))
	info := w.space.SegmentQueryFirst(toVector(origin), toVector(end), 0, queryFilter(mask))
	if info.Shape == nil {
		return entity.Hit{}, false
	}

	layer, _ := info.Shape.UserData.(entity.Layer)
	point := fromVector(info.Point)
	target := bbRect(info.Shape.BB()).Center()
	if info.Shape.Body() == w.space.StaticBody {
		// Tile runs share one shape; aim at the tile the segment entered
		target = w.stage.TileRect(w.stage.TileCoord(point.Add(dir.Scale(tileNudge)))).Center()
	}
	return entity.Hit{
		Point:    point,
		Target:   target,
		Distance: info.Alpha * distance,
		Layer:    layer,
		ID:       int(info.Shape.HashId()),
	}, true
}
