package entity

// Body is a kinematic box moved by the tile world.
// Pos is the center of the box.
type Body struct {
	Pos           Vec2
	Vel           Vec2
	Size          Vec2
	Mass          float64
	GravityFactor float64

	OnGround    bool
	OnCeiling   bool
	OnWallLeft  bool
	OnWallRight bool
}

// NewBody creates a body of unit mass and full gravity
func NewBody(pos, size Vec2) *Body {
	return &Body{
		Pos:           pos,
		Size:          size,
		Mass:          1,
		GravityFactor: 1,
	}
}

func (b *Body) Position() Vec2 { return b.Pos }

func (b *Body) SetPosition(p Vec2) { b.Pos = p }

func (b *Body) Velocity() Vec2 { return b.Vel }

func (b *Body) SetVelocity(v Vec2) { b.Vel = v }

func (b *Body) GravityScale() float64 { return b.GravityFactor }

func (b *Body) SetGravityScale(s float64) { b.GravityFactor = s }

// ApplyImpulse changes velocity by j / mass
func (b *Body) ApplyImpulse(j Vec2) {
	m := b.Mass
	if m <= 0 {
		m = 1
	}
	b.Vel = b.Vel.Add(j.Scale(1 / m))
}

// Bounds returns the body box in world coordinates
func (b *Body) Bounds() Rect {
	return RectFromCenter(b.Pos, b.Size)
}

// ClearContacts resets the collision flags before a move
func (b *Body) ClearContacts() {
	b.OnGround = false
	b.OnCeiling = false
	b.OnWallLeft = false
	b.OnWallRight = false
}
