package ecs

import (
	"errors"
	"fmt"

	"github.com/yohamta/donburi"

	"github.com/younwookim/mover/internal/application/system"
	"github.com/younwookim/mover/internal/domain/entity"
	"github.com/younwookim/mover/internal/infrastructure/config"
	"github.com/younwookim/mover/internal/infrastructure/resolvworld"
)

// contactMargin grows the player box so standing on a volume counts as touching it
const contactMargin = 0.05

// ErrUnknownTrigger is returned when a trigger type cannot be resolved
var ErrUnknownTrigger = errors.New("unknown trigger type")

// ErrInvalidTrigger is returned for a trigger with missing or bad fields
var ErrInvalidTrigger = errors.New("invalid trigger")

// Target is the controller surface the triggers act on
type Target interface {
	OnExternalDamage()
	OnBouncePad(lockDuration float64)
	OnAbilityUnlocked(a system.Ability)
}

// World holds the trigger entities and the player they watch
type World struct {
	Entities donburi.World
	Space    *resolvworld.Space
	Stage    *entity.Stage // ground that stops falling platforms, may be nil
	Gravity  float64

	player     system.ImpulseBody
	playerSize entity.Vec2
	target     Target

	OnWin    func()
	OnUnlock func(a system.Ability)
}

// NewWorld creates an empty trigger world on top of space
func NewWorld(space *resolvworld.Space, stage *entity.Stage, gravity float64) *World {
	return &World{
		Entities: donburi.NewWorld(),
		Space:    space,
		Stage:    stage,
		Gravity:  gravity,
	}
}

// AttachPlayer sets the body the triggers watch and the target they report to
func (w *World) AttachPlayer(body system.ImpulseBody, size entity.Vec2, target Target) {
	w.player = body
	w.playerSize = size
	w.target = target
}

// PlayerBounds returns the player box grown by the contact margin
func (w *World) PlayerBounds() (entity.Rect, bool) {
	if w.player == nil {
		return entity.Rect{}, false
	}
	r := entity.RectFromCenter(w.player.Position(), w.playerSize)
	return r.Expand(entity.Vec2{X: contactMargin, Y: contactMargin}), true
}

// SpawnAll creates an entity per trigger config
func (w *World) SpawnAll(cfgs []config.TriggerConfig) error {
	for i, cfg := range cfgs {
		if _, err := w.Spawn(cfg); err != nil {
			return fmt.Errorf("trigger %d: %w", i, err)
		}
	}
	return nil
}

// Spawn creates one trigger entity from its config
func (w *World) Spawn(cfg config.TriggerConfig) (*donburi.Entry, error) {
	rect := entity.Rect{
		Min: entity.Vec2{X: cfg.Rect.X, Y: cfg.Rect.Y},
		Max: entity.Vec2{X: cfg.Rect.X + cfg.Rect.W, Y: cfg.Rect.Y + cfg.Rect.H},
	}
	if cfg.Rect.W <= 0 || cfg.Rect.H <= 0 {
		return nil, fmt.Errorf("%w: %s has an empty rect", ErrInvalidTrigger, cfg.Type)
	}

	switch cfg.Type {
	case "bounce":
		return w.AddBouncePad(rect, BouncePad{Force: cfg.Force}), nil
	case "side_bounce":
		return w.AddBouncePad(rect, BouncePad{
			Force:        cfg.Force,
			SideForce:    cfg.SideForce,
			LockDuration: cfg.LockDuration,
		}), nil
	case "falling":
		return w.AddPlatform(rect, PlatformFalls, cfg.FadeTime, cfg.RespawnTime), nil
	case "crumble":
		return w.AddPlatform(rect, PlatformCrumbles, cfg.FadeTime, cfg.RespawnTime), nil
	case "damage":
		return w.AddDamageZone(rect), nil
	case "damage_mover":
		if cfg.To == nil {
			return nil, fmt.Errorf("%w: damage_mover needs a target point", ErrInvalidTrigger)
		}
		return w.AddDamageMover(rect, entity.Vec2{X: cfg.To.X, Y: cfg.To.Y}, cfg.Speed, cfg.Pause), nil
	case "win":
		return w.AddWinZone(rect), nil
	case "unlock":
		a, err := system.ParseAbility(cfg.Ability)
		if err != nil {
			return nil, err
		}
		return w.AddUnlock(rect, a), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTrigger, cfg.Type)
	}
}

func (w *World) create(rect entity.Rect, layer entity.Layer, solid bool, cs ...donburi.IComponentType) *donburi.Entry {
	cs = append([]donburi.IComponentType{Volume, ContactData}, cs...)
	e := w.Entities.Entry(w.Entities.Create(cs...))

	v := w.Space.Add(rect, layer, solid)
	v.Data = e
	Volume.SetValue(e, VolumeData{Volume: v})
	return e
}

// AddBouncePad creates a pad that launches the player on entry
func (w *World) AddBouncePad(rect entity.Rect, pad BouncePad) *donburi.Entry {
	e := w.create(rect, entity.LayerBounce, false, BouncePadData)
	BouncePadData.SetValue(e, pad)
	return e
}

// AddPlatform creates a solid platform that fades once touched
func (w *World) AddPlatform(rect entity.Rect, kind PlatformKind, fadeTime, respawnTime float64) *donburi.Entry {
	e := w.create(rect, entity.LayerGround, true, PlatformData)
	PlatformData.SetValue(e, Platform{
		Kind:        kind,
		Origin:      rect,
		FadeTime:    fadeTime,
		RespawnTime: respawnTime,
		Alpha:       1,
	})
	return e
}

// AddDamageZone creates a static hazard
func (w *World) AddDamageZone(rect entity.Rect) *donburi.Entry {
	return w.create(rect, entity.LayerHazard, false, Hazard)
}

// AddDamageMover creates a hazard moving between rect's center and to
func (w *World) AddDamageMover(rect entity.Rect, to entity.Vec2, speed, pause float64) *donburi.Entry {
	e := w.create(rect, entity.LayerHazard, false, Hazard, MoverData)
	m := Mover{
		From:    rect.Center(),
		To:      to,
		Speed:   speed,
		Pause:   pause,
		Forward: true,
	}
	m.leg = newLeg(&m)
	MoverData.SetValue(e, m)
	return e
}

// AddWinZone creates the goal volume
func (w *World) AddWinZone(rect entity.Rect) *donburi.Entry {
	e := w.create(rect, entity.LayerTrigger, false, WinZoneData)
	WinZoneData.SetValue(e, WinZone{})
	return e
}

// AddUnlock creates a pickup granting a
func (w *World) AddUnlock(rect entity.Rect, a system.Ability) *donburi.Entry {
	e := w.create(rect, entity.LayerTrigger, false, UnlockData)
	UnlockData.SetValue(e, Unlock{Ability: a})
	return e
}

// Update runs every trigger system for one logic tick
func (w *World) Update(dt float64) {
	UpdateContacts(w)
	UpdateBouncePads(w)
	UpdatePlatforms(w, dt)
	UpdateMovers(w, dt)
	UpdateHazards(w)
	UpdateWinZones(w)
	UpdateUnlocks(w)
}

// Reset puts every trigger back to its initial state.
// Unlocks stay taken, the way abilities outlive a respawn.
func (w *World) Reset() {
	ContactData.Each(w.Entities, func(e *donburi.Entry) {
		*ContactData.Get(e) = Contact{}
	})
	PlatformData.Each(w.Entities, func(e *donburi.Entry) {
		restorePlatform(w, e)
	})
	MoverData.Each(w.Entities, func(e *donburi.Entry) {
		m := MoverData.Get(e)
		m.Forward = true
		m.Progress = 0
		m.Paused = 0
		m.leg = newLeg(m)
		moveTo(w, e, m.From)
	})
	WinZoneData.Each(w.Entities, func(e *donburi.Entry) {
		WinZoneData.Get(e).Activated = false
	})
}

// Each calls fn for every trigger entity with its volume
func (w *World) Each(fn func(e *donburi.Entry, v *resolvworld.Volume)) {
	Volume.Each(w.Entities, func(e *donburi.Entry) {
		fn(e, Volume.Get(e).Volume)
	})
}
