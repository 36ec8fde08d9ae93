package config

import "github.com/younwookim/mover/internal/domain/entity"

// MovementConfig is the root config for movement.yaml / movement.json.
// A session treats it as immutable; changes arrive as a whole new value.
type MovementConfig struct {
	Run      RunConfig     `json:"run" yaml:"run"`
	Jump     JumpConfig    `json:"jump" yaml:"jump"`
	Gravity  GravityConfig `json:"gravity" yaml:"gravity"`
	Wall     WallConfig    `json:"wall" yaml:"wall"`
	Dash     DashConfig    `json:"dash" yaml:"dash"`
	Grapple  GrappleConfig `json:"grapple" yaml:"grapple"`
	Parry    ParryConfig   `json:"parry" yaml:"parry"`
	Probes   ProbeConfig   `json:"probes" yaml:"probes"`
	Body     BodyConfig    `json:"body" yaml:"body"`
	Layers   LayerConfig   `json:"layers" yaml:"layers"`
	Upgrades UpgradeConfig `json:"upgrades" yaml:"upgrades"`

	// StrictAbilityGating makes dash, hook and wall cling require their unlocks.
	// Double jump is always gated.
	StrictAbilityGating bool `json:"strictAbilityGating" yaml:"strictAbilityGating"`
}

type RunConfig struct {
	MoveSpeed      float64 `json:"moveSpeed" yaml:"moveSpeed"`
	FacingDeadZone float64 `json:"facingDeadZone" yaml:"facingDeadZone"`
}

type JumpConfig struct {
	Force          float64 `json:"force" yaml:"force"`
	MaxJumps       int     `json:"maxJumps" yaml:"maxJumps"`
	CoyoteTime     float64 `json:"coyoteTime" yaml:"coyoteTime"`
	BufferTime     float64 `json:"bufferTime" yaml:"bufferTime"`
	ShortHopFactor float64 `json:"shortHopFactor" yaml:"shortHopFactor"`
}

type GravityConfig struct {
	Gravity           float64 `json:"gravity" yaml:"gravity"` // world y gravity, negative
	FallMultiplier    float64 `json:"fallMultiplier" yaml:"fallMultiplier"`
	LowJumpMultiplier float64 `json:"lowJumpMultiplier" yaml:"lowJumpMultiplier"`
	AscentMultiplier  float64 `json:"ascentMultiplier" yaml:"ascentMultiplier"`
	MaxFallSpeed      float64 `json:"maxFallSpeed" yaml:"maxFallSpeed"` // magnitude
}

type WallConfig struct {
	SlideSpeed     float64 `json:"slideSpeed" yaml:"slideSpeed"` // signed, <= 0
	JumpHorizontal float64 `json:"jumpHorizontal" yaml:"jumpHorizontal"`
	JumpVertical   float64 `json:"jumpVertical" yaml:"jumpVertical"`
	DetachCooldown float64 `json:"detachCooldown" yaml:"detachCooldown"`
	InputLock      float64 `json:"inputLock" yaml:"inputLock"`
}

type DashConfig struct {
	Speed    float64 `json:"speed" yaml:"speed"`
	Duration float64 `json:"duration" yaml:"duration"`
	Cooldown float64 `json:"cooldown" yaml:"cooldown"`
}

type GrappleConfig struct {
	RayDistance  float64 `json:"rayDistance" yaml:"rayDistance"`
	RayDuration  float64 `json:"rayDuration" yaml:"rayDuration"`
	Delay        float64 `json:"delay" yaml:"delay"`
	LerpDuration float64 `json:"lerpDuration" yaml:"lerpDuration"`
	EndBoost     float64 `json:"endBoost" yaml:"endBoost"`
	Cooldown     float64 `json:"cooldown" yaml:"cooldown"`
	AimDeadZone  float64 `json:"aimDeadZone" yaml:"aimDeadZone"`
}

type ParryConfig struct {
	Window   float64 `json:"window" yaml:"window"`
	Cooldown float64 `json:"cooldown" yaml:"cooldown"`
	EndBoost float64 `json:"endBoost" yaml:"endBoost"`
}

// ProbeConfig places the contact sensors relative to the body center.
// Both probes are required.
type ProbeConfig struct {
	Ground *GroundProbeConfig `json:"ground" yaml:"ground"`
	Wall   *WallProbeConfig   `json:"wall" yaml:"wall"`
}

type GroundProbeConfig struct {
	Offset entity.Vec2 `json:"offset" yaml:"offset"`
	Size   entity.Vec2 `json:"size" yaml:"size"`
}

type WallProbeConfig struct {
	Offset   entity.Vec2 `json:"offset" yaml:"offset"`
	Width    float64     `json:"width" yaml:"width"`
	Height   float64     `json:"height" yaml:"height"`
	Distance float64     `json:"distance" yaml:"distance"`
}

type BodyConfig struct {
	Size         entity.Vec2 `json:"size" yaml:"size"`
	GravityScale float64     `json:"gravityScale" yaml:"gravityScale"`
}

type LayerConfig struct {
	Ground  LayerNames `json:"ground" yaml:"ground"`
	Grapple LayerNames `json:"grapple" yaml:"grapple"`
	Parry   LayerNames `json:"parry" yaml:"parry"`
}

// LayerNames is a list of layer names as written in config files
type LayerNames []string

// Mask resolves the names, skipping unknown ones. Validate reports those.
func (n LayerNames) Mask() entity.LayerMask {
	var m entity.LayerMask
	for _, name := range n {
		if l, err := entity.ParseLayer(name); err == nil {
			m |= entity.LayerMask(l)
		}
	}
	return m
}

type UpgradeConfig struct {
	WallJump WallJumpUpgradeConfig `json:"wallJump" yaml:"wallJump"`
}

// WallJumpUpgradeConfig replaces the wall jump tuning once wall jump is unlocked
type WallJumpUpgradeConfig struct {
	InputLock  float64 `json:"inputLock" yaml:"inputLock"`
	Horizontal float64 `json:"horizontal" yaml:"horizontal"`
	Vertical   float64 `json:"vertical" yaml:"vertical"`
}

// DisplayConfig is the root config for display.json
type DisplayConfig struct {
	ScreenWidth   int     `json:"screenWidth" yaml:"screenWidth"`
	ScreenHeight  int     `json:"screenHeight" yaml:"screenHeight"`
	Scale         int     `json:"scale" yaml:"scale"`
	Framerate     int     `json:"framerate" yaml:"framerate"`
	PhysicsRate   int     `json:"physicsRate" yaml:"physicsRate"`
	PixelsPerUnit float64 `json:"pixelsPerUnit" yaml:"pixelsPerUnit"`
}

// Clone returns a deep copy of the config
func (c *MovementConfig) Clone() *MovementConfig {
	out := *c
	if c.Probes.Ground != nil {
		g := *c.Probes.Ground
		out.Probes.Ground = &g
	}
	if c.Probes.Wall != nil {
		w := *c.Probes.Wall
		out.Probes.Wall = &w
	}
	out.Layers.Ground = append(LayerNames(nil), c.Layers.Ground...)
	out.Layers.Grapple = append(LayerNames(nil), c.Layers.Grapple...)
	out.Layers.Parry = append(LayerNames(nil), c.Layers.Parry...)
	return &out
}
