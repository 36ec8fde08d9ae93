package entity

import (
	"errors"
	"fmt"
	"strings"
)

// Layer is a single collision category.
type Layer uint32

const (
	LayerGround Layer = 1 << iota
	LayerGrapple
	LayerParry
	LayerHazard
	LayerBounce
	LayerTrigger
	LayerPlayer
)

// ErrUnknownLayer is returned when a layer name cannot be resolved
var ErrUnknownLayer = errors.New("unknown layer")

var layerNames = map[Layer]string{
	LayerGround:  "ground",
	LayerGrapple: "grapple",
	LayerParry:   "parry",
	LayerHazard:  "hazard",
	LayerBounce:  "bounce",
	LayerTrigger: "trigger",
	LayerPlayer:  "player",
}

// String returns the config name of the layer
func (l Layer) String() string {
	if name, ok := layerNames[l]; ok {
		return name
	}
	return fmt.Sprintf("layer(%d)", uint32(l))
}

// ParseLayer resolves a layer by its config name
func ParseLayer(name string) (Layer, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for l, n := range layerNames {
		if n == name {
			return l, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownLayer, name)
}

// LayerMask is a set of layers a query is allowed to hit.
type LayerMask uint32

// MaskOf combines layers into a mask
func MaskOf(layers ...Layer) LayerMask {
	var m LayerMask
	for _, l := range layers {
		m |= LayerMask(l)
	}
	return m
}

// Has reports whether l is part of the mask
func (m LayerMask) Has(l Layer) bool {
	return m&LayerMask(l) != 0
}

// Empty reports whether the mask selects nothing
func (m LayerMask) Empty() bool {
	return m == 0
}

// ParseLayerMask resolves a list of layer names into a mask
func ParseLayerMask(names []string) (LayerMask, error) {
	var m LayerMask
	for _, name := range names {
		l, err := ParseLayer(name)
		if err != nil {
			return 0, err
		}
		m |= LayerMask(l)
	}
	return m, nil
}

// Hit describes the first collider reached by a cast.
type Hit struct {
	Point    Vec2    // where the cast touched the collider
	Target   Vec2    // center of the collider
	Distance float64 // distance travelled along the cast direction
	Layer    Layer
	ID       int
}
