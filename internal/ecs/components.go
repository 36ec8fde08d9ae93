package ecs

import (
	"github.com/tanema/gween"
	"github.com/yohamta/donburi"

	"github.com/younwookim/mover/internal/application/system"
	"github.com/younwookim/mover/internal/domain/entity"
	"github.com/younwookim/mover/internal/infrastructure/resolvworld"
)

// VolumeData links an entity to its box in the volume space
type VolumeData struct {
	*resolvworld.Volume
}

// Contact tracks the player touching a volume.
// Entered is true only on the tick the touch started.
type Contact struct {
	Touching bool
	Entered  bool
}

// BouncePad launches the player on entry.
// A non-zero SideForce makes it a side pad; its sign picks the direction.
type BouncePad struct {
	Force        float64
	SideForce    float64
	LockDuration float64
}

// PlatformKind selects what a touched platform does after fading
type PlatformKind int

const (
	PlatformFalls PlatformKind = iota
	PlatformCrumbles
)

// PlatformPhase is the scheduled state of a platform
type PlatformPhase int

const (
	PlatformIdle PlatformPhase = iota
	PlatformFading
	PlatformFalling
	PlatformGone
)

func (p PlatformPhase) String() string {
	switch p {
	case PlatformIdle:
		return "Idle"
	case PlatformFading:
		return "Fading"
	case PlatformFalling:
		return "Falling"
	case PlatformGone:
		return "Gone"
	default:
		return "Unknown"
	}
}

// Platform is a falling or crumbling platform
type Platform struct {
	Kind        PlatformKind
	Phase       PlatformPhase
	Origin      entity.Rect
	FadeTime    float64
	RespawnTime float64

	Alpha     float64 // 1 solid, 0 faded out
	Remaining float64 // seconds left in Falling or Gone
	VelocityY float64
	Hit       bool // the kill strip already damaged the player this fall

	fade *gween.Tween
}

// Mover ping-pongs between two centers, pausing at each end
type Mover struct {
	From, To entity.Vec2
	Speed    float64 // legs per second
	Pause    float64

	Forward  bool
	Progress float64
	Paused   float64

	leg *gween.Tween
}

// WinZone fires once per run
type WinZone struct {
	Activated bool
}

// Unlock grants an ability the first time it is entered
type Unlock struct {
	Ability system.Ability
	Taken   bool
}

var (
	Volume        = donburi.NewComponentType[VolumeData]()
	ContactData   = donburi.NewComponentType[Contact]()
	BouncePadData = donburi.NewComponentType[BouncePad]()
	PlatformData  = donburi.NewComponentType[Platform]()
	MoverData     = donburi.NewComponentType[Mover]()
	WinZoneData   = donburi.NewComponentType[WinZone]()
	UnlockData    = donburi.NewComponentType[Unlock]()

	// Hazard marks volumes that damage the player on entry
	Hazard = donburi.NewTag().SetName("Hazard")
)
