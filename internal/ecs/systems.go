package ecs

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"

	"github.com/younwookim/mover/internal/domain/entity"
)

// touchMask selects every layer a trigger volume can live on
var touchMask = entity.MaskOf(entity.LayerGround, entity.LayerBounce, entity.LayerHazard, entity.LayerTrigger)

// killStripHeight is how far below a falling platform its kill strip reaches
const killStripHeight = 0.1

// UpdateContacts refreshes Touching/Entered from the player box
func UpdateContacts(w *World) {
	touched := make(map[int]bool)
	if bounds, ok := w.PlayerBounds(); ok {
		for _, v := range w.Space.Query(bounds, touchMask) {
			touched[v.ID] = true
		}
	}

	ContactData.Each(w.Entities, func(e *donburi.Entry) {
		c := ContactData.Get(e)
		now := touched[Volume.Get(e).ID]
		c.Entered = now && !c.Touching
		c.Touching = now
	})
}

// UpdateBouncePads launches the player off pads entered this tick
func UpdateBouncePads(w *World) {
	if w.player == nil {
		return
	}
	BouncePadData.Each(w.Entities, func(e *donburi.Entry) {
		if !ContactData.Get(e).Entered {
			return
		}
		pad := BouncePadData.Get(e)

		if pad.SideForce != 0 && w.target != nil {
			w.target.OnBouncePad(pad.LockDuration)
		}
		w.player.SetVelocity(entity.Vec2{})
		w.player.ApplyImpulse(entity.Vec2{X: pad.SideForce, Y: pad.Force})
	})
}

// UpdatePlatforms advances falling and crumbling platforms
func UpdatePlatforms(w *World, dt float64) {
	PlatformData.Each(w.Entities, func(e *donburi.Entry) {
		p := PlatformData.Get(e)
		v := Volume.Get(e).Volume

		switch p.Phase {
		case PlatformIdle:
			if ContactData.Get(e).Entered {
				p.Phase = PlatformFading
				p.fade = gween.New(1, 0, float32(p.FadeTime), ease.Linear)
			}

		case PlatformFading:
			alpha, done := p.fade.Update(float32(dt))
			p.Alpha = float64(alpha)
			if !done {
				return
			}
			p.Remaining = p.RespawnTime
			if p.Kind == PlatformCrumbles {
				p.Phase = PlatformGone
				w.Space.Disable(v)
				return
			}
			p.Phase = PlatformFalling
			p.VelocityY = 0

		case PlatformFalling:
			p.VelocityY += w.Gravity * dt
			r := v.Rect().Translate(entity.Vec2{Y: p.VelocityY * dt})
			w.Space.Move(v, r)

			if !p.Hit && w.target != nil {
				if bounds, ok := w.PlayerBounds(); ok && killStrip(r).Overlaps(bounds) {
					p.Hit = true
					w.target.OnExternalDamage()
				}
			}

			p.Remaining -= dt
			if p.Remaining <= 0 || (w.Stage != nil && w.Stage.IsSolidRect(r)) {
				restorePlatform(w, e)
			}

		case PlatformGone:
			p.Remaining -= dt
			if p.Remaining <= 0 {
				restorePlatform(w, e)
			}
		}
	})
}

func killStrip(r entity.Rect) entity.Rect {
	return entity.Rect{
		Min: entity.Vec2{X: r.Min.X, Y: r.Min.Y - killStripHeight},
		Max: entity.Vec2{X: r.Max.X, Y: r.Min.Y + killStripHeight},
	}
}

func restorePlatform(w *World, e *donburi.Entry) {
	p := PlatformData.Get(e)
	v := Volume.Get(e).Volume

	w.Space.Move(v, p.Origin)
	w.Space.Enable(v)
	p.Phase = PlatformIdle
	p.Alpha = 1
	p.Remaining = 0
	p.VelocityY = 0
	p.Hit = false
	p.fade = nil
}

// UpdateMovers moves hazards along their legs, pausing at each end
func UpdateMovers(w *World, dt float64) {
	MoverData.Each(w.Entities, func(e *donburi.Entry) {
		m := MoverData.Get(e)
		if m.leg == nil {
			return
		}
		if m.Paused > 0 {
			m.Paused -= dt
			return
		}

		p, done := m.leg.Update(float32(dt))
		m.Progress = float64(p)
		moveTo(w, e, m.From.Lerp(m.To, m.Progress))

		if done {
			m.Forward = !m.Forward
			m.Paused = m.Pause
			m.leg = newLeg(m)
		}
	})
}

// newLeg returns the tween for the mover's next leg, or nil when it cannot move
func newLeg(m *Mover) *gween.Tween {
	if m.Speed <= 0 {
		return nil
	}
	if m.Forward {
		return gween.New(0, 1, float32(1/m.Speed), ease.Linear)
	}
	return gween.New(1, 0, float32(1/m.Speed), ease.Linear)
}

func moveTo(w *World, e *donburi.Entry, center entity.Vec2) {
	v := Volume.Get(e).Volume
	w.Space.Move(v, entity.RectFromCenter(center, v.Rect().Size()))
}

// UpdateHazards reports damage for hazards entered this tick
func UpdateHazards(w *World) {
	if w.target == nil {
		return
	}
	Hazard.Each(w.Entities, func(e *donburi.Entry) {
		if ContactData.Get(e).Entered {
			w.target.OnExternalDamage()
		}
	})
}

// UpdateWinZones fires OnWin on the first entry
func UpdateWinZones(w *World) {
	WinZoneData.Each(w.Entities, func(e *donburi.Entry) {
		z := WinZoneData.Get(e)
		if z.Activated || !ContactData.Get(e).Entered {
			return
		}
		z.Activated = true
		if w.OnWin != nil {
			w.OnWin()
		}
	})
}

// UpdateUnlocks grants abilities from pickups entered this tick
func UpdateUnlocks(w *World) {
	UnlockData.Each(w.Entities, func(e *donburi.Entry) {
		u := UnlockData.Get(e)
		if u.Taken || !ContactData.Get(e).Entered {
			return
		}
		u.Taken = true
		if w.target != nil {
			w.target.OnAbilityUnlocked(u.Ability)
		}
		if w.OnUnlock != nil {
			w.OnUnlock(u.Ability)
		}
	})
}
