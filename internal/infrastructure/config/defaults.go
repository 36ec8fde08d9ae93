package config

import "github.com/younwookim/mover/internal/domain/entity"

// DefaultMovementConfig returns the reference tuning.
// Loaders decode files on top of it, so omitted fields keep these values.
func DefaultMovementConfig() *MovementConfig {
	return &MovementConfig{
		Run: RunConfig{
			MoveSpeed:      7,
			FacingDeadZone: 0.1,
		},
		Jump: JumpConfig{
			Force:          15,
			MaxJumps:       2,
			CoyoteTime:     0.2,
			BufferTime:     0.2,
			ShortHopFactor: 0.5,
		},
		Gravity: GravityConfig{
			Gravity:           -9.81,
			FallMultiplier:    2.5,
			LowJumpMultiplier: 2,
			AscentMultiplier:  1.5,
			MaxFallSpeed:      20,
		},
		Wall: WallConfig{
			SlideSpeed:     -2,
			JumpHorizontal: 9,
			JumpVertical:   11,
			DetachCooldown: 0.12,
			InputLock:      0.35,
		},
		Dash: DashConfig{
			Speed:    20,
			Duration: 0.2,
			Cooldown: 1,
		},
		Grapple: GrappleConfig{
			RayDistance:  10,
			RayDuration:  1,
			Delay:        0.2,
			LerpDuration: 0.3,
			EndBoost:     8,
			Cooldown:     0.3,
			AimDeadZone:  0.1,
		},
		Parry: ParryConfig{
			Window:   0.5,
			Cooldown: 1,
			EndBoost: 12,
		},
		Probes: ProbeConfig{
			Ground: &GroundProbeConfig{
				Offset: entity.Vec2{X: 0, Y: -0.5},
				Size:   entity.Vec2{X: 0.5, Y: 0.1},
			},
			Wall: &WallProbeConfig{
				Width:    0.1,
				Height:   0.5,
				Distance: 0.6,
			},
		},
		Body: BodyConfig{
			Size:         entity.Vec2{X: 0.8, Y: 1},
			GravityScale: 3,
		},
		Layers: LayerConfig{
			Ground:  LayerNames{"ground"},
			Grapple: LayerNames{"grapple"},
			Parry:   LayerNames{"parry"},
		},
		Upgrades: UpgradeConfig{
			WallJump: WallJumpUpgradeConfig{
				InputLock:  0.14,
				Horizontal: 11,
				Vertical:   13,
			},
		},
	}
}

// DefaultDisplayConfig is used when display.json is absent
func DefaultDisplayConfig() *DisplayConfig {
	return &DisplayConfig{
		ScreenWidth:   640,
		ScreenHeight:  360,
		Scale:         2,
		Framerate:     60,
		PhysicsRate:   50,
		PixelsPerUnit: 16,
	}
}
