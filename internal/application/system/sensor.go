package system

import (
	"fmt"

	"github.com/younwookim/mover/internal/domain/entity"
	"github.com/younwookim/mover/internal/infrastructure/config"
)

var (
	rightDir = entity.Vec2{X: 1}
	leftDir  = entity.Vec2{X: -1}
)

// Contact is the result of one sensor refresh
type Contact struct {
	Grounded      bool
	TouchingWall  bool
	WallDirection int // +1 right, -1 left, 0 none
}

// ContactSensor probes the ground below and the walls beside the body
type ContactSensor struct {
	collider Collider
	ground   config.GroundProbeConfig
	wall     config.WallProbeConfig
	mask     entity.LayerMask

	last     Contact
	previous Contact
}

// NewContactSensor creates a sensor. Missing probes or an empty ground mask are errors.
func NewContactSensor(collider Collider, cfg *config.MovementConfig) (*ContactSensor, error) {
	if collider == nil {
		return nil, ErrNilCollider
	}
	s := &ContactSensor{collider: collider}
	if err := s.Configure(cfg); err != nil {
		return nil, err
	}
	return s, nil
}

// Configure swaps the probe geometry and mask
func (s *ContactSensor) Configure(cfg *config.MovementConfig) error {
	if cfg.Probes.Ground == nil {
		return fmt.Errorf("contact sensor: %w: ground", config.ErrMissingProbe)
	}
	if cfg.Probes.Wall == nil {
		return fmt.Errorf("contact sensor: %w: wall", config.ErrMissingProbe)
	}
	mask := cfg.Layers.Ground.Mask()
	if mask.Empty() {
		return fmt.Errorf("contact sensor: %w: ground", config.ErrEmptyLayerMask)
	}
	s.ground = *cfg.Probes.Ground
	s.wall = *cfg.Probes.Wall
	s.mask = mask
	return nil
}

// Refresh probes around pos and remembers the previous result
func (s *ContactSensor) Refresh(pos entity.Vec2) Contact {
	var c Contact

	c.Grounded = s.collider.OverlapBox(pos.Add(s.ground.Offset), s.ground.Size, s.mask)

	origin := pos.Add(s.wall.Offset)
	box := entity.Vec2{X: s.wall.Width, Y: s.wall.Height}
	if _, ok := s.collider.BoxCast(origin, box, rightDir, s.wall.Distance, s.mask); ok {
		c.TouchingWall, c.WallDirection = true, 1
	} else if _, ok := s.collider.BoxCast(origin, box, leftDir, s.wall.Distance, s.mask); ok {
		c.TouchingWall, c.WallDirection = true, -1
	}

	s.previous = s.last
	s.last = c
	return c
}

// Last returns the most recent refresh result
func (s *ContactSensor) Last() Contact {
	return s.last
}

// Previous returns the refresh result before Last
func (s *ContactSensor) Previous() Contact {
	return s.previous
}
