package system

import "github.com/younwookim/mover/internal/domain/entity"

// Intent is a forced transition submitted by a collaborator.
// Intents are queued and applied at the start of the next logic tick.
type Intent interface {
	isIntent()
}

// DamageIntent cancels dash and grapple and requests a respawn
type DamageIntent struct{}

func (DamageIntent) isIntent() {}

// BounceLockIntent locks horizontal input after a side bounce pad launch
type BounceLockIntent struct {
	Duration float64
}

func (BounceLockIntent) isIntent() {}

// RespawnIntent moves the body to Position and clears transient motion state
type RespawnIntent struct {
	Position entity.Vec2
}

func (RespawnIntent) isIntent() {}
