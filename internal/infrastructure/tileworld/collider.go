package tileworld

import (
	"github.com/younwookim/mover/internal/domain/entity"
)

// OverlapBox reports whether the box overlaps any tile whose layer is in mask.
// Tiles outside the stage count as ground.
func (w *World) OverlapBox(center, size entity.Vec2, mask entity.LayerMask) bool {
	probe := entity.RectFromCenter(center, size)
	s := w.stage

	minTX, minTY, maxTX, maxTY := s.TileRange(probe)
	for ty := minTY; ty <= maxTY; ty++ {
		for tx := minTX; tx <= maxTX; tx++ {
			if mask.Has(s.GetTile(tx, ty).Layer) && probe.Overlaps(s.TileRect(tx, ty)) {
				return true
			}
		}
	}
	return false
}

// BoxCast sweeps a box from origin along dir and returns the nearest tile hit
func (w *World) BoxCast(origin, size, dir entity.Vec2, distance float64, mask entity.LayerMask) (entity.Hit, bool) {
	return w.cast(origin, size, dir, distance, mask)
}

// Raycast casts a ray from origin along dir and returns the nearest tile hit
func (w *World) Raycast(origin, dir entity.Vec2, distance float64, mask entity.LayerMask) (entity.Hit, bool) {
	return w.cast(origin, entity.Vec2{}, dir, distance, mask)
}

func (w *World) cast(origin, size, dir entity.Vec2, distance float64, mask entity.LayerMask) (entity.Hit, bool) {
	s := w.stage
	half := size.Scale(0.5)

	start := entity.RectFromCenter(origin, size)
	swept := start.Union(start.Translate(dir.Scale(distance))).Expand(entity.Vec2{X: tileEpsilon, Y: tileEpsilon})

	var best entity.Hit
	found := false

	minTX, minTY, maxTX, maxTY := s.TileRange(swept)
	for ty := minTY; ty <= maxTY; ty++ {
		for tx := minTX; tx <= maxTX; tx++ {
			tile := s.GetTile(tx, ty)
			if !mask.Has(tile.Layer) {
				continue
			}
			rect := s.TileRect(tx, ty)
			d, ok := rect.Expand(half).Raycast(origin, dir, distance)
			if !ok || (found && d >= best.Distance) {
				continue
			}
			best = entity.Hit{
				Point:    origin.Add(dir.Scale(d)),
				Target:   rect.Center(),
				Distance: d,
				Layer:    tile.Layer,
				ID:       w.tileID(tx, ty),
			}
			found = true
		}
	}
	return best, found
}

// tileID numbers in-bounds tiles row-major from the bottom; out of bounds is -1
func (w *World) tileID(tx, ty int) int {
	s := w.stage
	if tx < 0 || tx >= s.Width || ty < 0 || ty >= s.Height {
		return -1
	}
	return ty*s.Width + tx
}

const tileEpsilon = 1e-6
