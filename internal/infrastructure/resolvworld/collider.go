package resolvworld

import (
	"github.com/younwookim/mover/internal/domain/entity"
)

// OverlapBox reports whether the box overlaps an enabled volume in mask
func (s *Space) OverlapBox(center, size entity.Vec2, mask entity.LayerMask) bool {
	return len(s.Query(entity.RectFromCenter(center, size), mask)) > 0
}

// BoxCast sweeps a box along dir and returns the nearest volume hit
func (s *Space) BoxCast(origin, size, dir entity.Vec2, distance float64, mask entity.LayerMask) (entity.Hit, bool) {
	return s.cast(origin, size, dir, distance, mask)
}

// Raycast casts a ray along dir and returns the nearest volume hit
func (s *Space) Raycast(origin, dir entity.Vec2, distance float64, mask entity.LayerMask) (entity.Hit, bool) {
	return s.cast(origin, entity.Vec2{}, dir, distance, mask)
}

func (s *Space) cast(origin, size, dir entity.Vec2, distance float64, mask entity.LayerMask) (entity.Hit, bool) {
	half := size.Scale(0.5)
	start := entity.RectFromCenter(origin, size)
	swept := start.Union(start.Translate(dir.Scale(distance)))

	var best entity.Hit
	found := false
	for _, v := range s.candidates(swept, mask) {
		d, ok := v.rect.Expand(half).Raycast(origin, dir, distance)
		if !ok || (found && d >= best.Distance) {
			continue
		}
		best = entity.Hit{
			Point:    origin.Add(dir.Scale(d)),
			Target:   v.rect.Center(),
			Distance: d,
			Layer:    v.Layer,
			ID:       v.ID,
		}
		found = true
	}
	return best, found
}

// SolidIn reports whether r overlaps an enabled solid volume
func (s *Space) SolidIn(r entity.Rect) bool {
	for _, v := range s.candidates(r, entity.LayerMask(^uint32(0))) {
		if v.Solid && v.rect.Overlaps(r) {
			return true
		}
	}
	return false
}
