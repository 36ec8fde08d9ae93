package resolvworld

import (
	"math"

	"github.com/solarlune/resolv"

	"github.com/younwookim/mover/internal/domain/entity"
)

const tagSolid = "solid"

// Volume is a box living in the space: a trigger, a platform or a hazard
type Volume struct {
	ID    int
	Layer entity.Layer
	Solid bool
	// Data is free for the owner, usually the entity the volume belongs to
	Data any

	rect    entity.Rect
	enabled bool
	obj     *resolv.Object
}

// Rect returns the volume's box in world units
func (v *Volume) Rect() entity.Rect {
	return v.rect
}

// Enabled reports whether the volume takes part in queries
func (v *Volume) Enabled() bool {
	return v.enabled
}

// Space indexes volumes in a resolv space.
// World units are y-up; the resolv space is y-down pixels.
type Space struct {
	space  *resolv.Space
	ppu    float64
	cell   float64
	height float64

	volumes []*Volume
	nextID  int
}

// New creates a space covering bounds, with one resolv cell per world unit
func New(bounds entity.Rect, ppu float64) *Space {
	if ppu <= 0 {
		ppu = 16
	}
	size := bounds.Size()
	cell := int(math.Max(1, math.Round(ppu)))
	return &Space{
		space:  resolv.NewSpace(int(math.Ceil(size.X*ppu)), int(math.Ceil(size.Y*ppu)), cell, cell),
		ppu:    ppu,
		cell:   float64(cell),
		height: bounds.Max.Y,
	}
}

// Add inserts an enabled volume
func (s *Space) Add(rect entity.Rect, layer entity.Layer, solid bool) *Volume {
	tags := []string{layer.String()}
	if solid {
		tags = append(tags, tagSolid)
	}

	x, y, w, h := s.toPixels(rect)
	obj := resolv.NewObject(x, y, w, h, tags...)
	obj.SetShape(resolv.NewRectangle(0, 0, w, h))

	s.nextID++
	v := &Volume{
		ID:    s.nextID,
		Layer: layer,
		Solid: solid,
		rect:  rect,
		obj:   obj,
	}
	obj.Data = v
	s.volumes = append(s.volumes, v)
	s.Enable(v)
	return v
}

// Remove deletes v from the space for good
func (s *Space) Remove(v *Volume) {
	s.Disable(v)
	for i, o := range s.volumes {
		if o == v {
			s.volumes = append(s.volumes[:i], s.volumes[i+1:]...)
			return
		}
	}
}

// Enable puts a disabled volume back into the space
func (s *Space) Enable(v *Volume) {
	if v.enabled {
		return
	}
	v.enabled = true
	s.space.Add(v.obj)
}

// Disable takes v out of every query until it is enabled again
func (s *Space) Disable(v *Volume) {
	if !v.enabled {
		return
	}
	v.enabled = false
	s.space.Remove(v.obj)
}

// Move places v at rect
func (s *Space) Move(v *Volume, rect entity.Rect) {
	v.rect = rect
	v.obj.X, v.obj.Y, _, _ = s.toPixels(rect)
	v.obj.Update()
}

// Volumes returns every volume, enabled or not
func (s *Space) Volumes() []*Volume {
	return s.volumes
}

// Query returns the enabled volumes in mask whose boxes overlap r
func (s *Space) Query(r entity.Rect, mask entity.LayerMask) []*Volume {
	var out []*Volume
	for _, v := range s.candidates(r, mask) {
		if v.rect.Overlaps(r) {
			out = append(out, v)
		}
	}
	return out
}

// candidates runs the broadphase. The probe is grown by one cell on each
// side so volumes straddling a cell boundary are not missed.
func (s *Space) candidates(r entity.Rect, mask entity.LayerMask) []*Volume {
	var tags []string
	for l := entity.LayerGround; l <= entity.LayerPlayer; l <<= 1 {
		if mask.Has(l) {
			tags = append(tags, l.String())
		}
	}
	if len(tags) == 0 {
		return nil
	}

	x, y, w, h := s.toPixels(r)
	probe := resolv.NewObject(x-s.cell, y-s.cell, w+2*s.cell, h+2*s.cell)
	s.space.Add(probe)
	defer s.space.Remove(probe)

	check := probe.Check(0, 0, tags...)
	if check == nil {
		return nil
	}

	var out []*Volume
	for _, obj := range check.Objects {
		v, ok := obj.Data.(*Volume)
		if ok && v.enabled && mask.Has(v.Layer) {
			out = append(out, v)
		}
	}
	return out
}

// toPixels converts a world rect into resolv's top-left pixel rect
func (s *Space) toPixels(r entity.Rect) (x, y, w, h float64) {
	size := r.Size()
	return r.Min.X * s.ppu, (s.height - r.Max.Y) * s.ppu, size.X * s.ppu, size.Y * s.ppu
}
