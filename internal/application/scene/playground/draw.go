package playground

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi"

	"github.com/younwookim/mover/internal/application/state"
	"github.com/younwookim/mover/internal/application/system"
	"github.com/younwookim/mover/internal/domain/entity"
	"github.com/younwookim/mover/internal/ecs"
	"github.com/younwookim/mover/internal/infrastructure/resolvworld"
)

// Colors for rendering
var (
	colorBG       = color.RGBA{26, 26, 46, 255}
	colorWall     = color.RGBA{80, 80, 100, 255}
	colorSpike    = color.RGBA{200, 50, 50, 255}
	colorGrapple  = color.RGBA{90, 160, 220, 255}
	colorParry    = color.RGBA{220, 220, 120, 255}
	colorBounce   = color.RGBA{120, 220, 140, 255}
	colorPlatform = color.RGBA{150, 120, 90, 255}
	colorHazard   = color.RGBA{230, 70, 70, 200}
	colorWin      = color.RGBA{255, 215, 0, 160}
	colorUnlock   = color.RGBA{200, 120, 255, 200}
	colorPlayer   = color.RGBA{100, 200, 100, 255}
	colorDash     = color.RGBA{100, 220, 255, 255}
	colorCling    = color.RGBA{255, 160, 60, 255}
	colorParrying = color.RGBA{255, 255, 255, 255}
	colorRope     = color.RGBA{230, 230, 230, 255}
	colorRay      = color.RGBA{230, 230, 230, 90}
)

// stageView maps world units (y up) to stage pixels (y down)
type stageView struct {
	stage    *entity.Stage
	ppu      float64
	widthPx  float64
	heightPx float64
}

func newStageView(stage *entity.Stage, ppu float64) *stageView {
	if ppu <= 0 {
		ppu = 16
	}
	size := stage.Bounds().Size()
	return &stageView{
		stage:    stage,
		ppu:      ppu,
		widthPx:  size.X * ppu,
		heightPx: size.Y * ppu,
	}
}

// pixel converts a world point to stage pixels
func (v *stageView) pixel(p entity.Vec2) (float64, float64) {
	return p.X * v.ppu, v.heightPx - p.Y*v.ppu
}

// camera is the top-left stage pixel shown on screen
type camera struct {
	X, Y float64
}

// follow centers on p, clamped so the view stays inside the stage
func (v *stageView) follow(p entity.Vec2, screenW, screenH int) camera {
	px, py := v.pixel(p)
	return camera{
		X: clampCamera(px-float64(screenW)/2, v.widthPx-float64(screenW)),
		Y: clampCamera(py-float64(screenH)/2, v.heightPx-float64(screenH)),
	}
}

func clampCamera(c, limit float64) float64 {
	if c > limit {
		c = limit
	}
	if c < 0 {
		c = 0
	}
	return c
}

// screenRect returns the screen box of a world rect
func (v *stageView) screenRect(r entity.Rect, cam camera) (x, y, w, h float32) {
	size := r.Size()
	return float32(r.Min.X*v.ppu - cam.X),
		float32(v.heightPx - r.Max.Y*v.ppu - cam.Y),
		float32(size.X * v.ppu),
		float32(size.Y * v.ppu)
}

// screenPoint returns the screen position of a world point
func (v *stageView) screenPoint(p entity.Vec2, cam camera) (float32, float32) {
	px, py := v.pixel(p)
	return float32(px - cam.X), float32(py - cam.Y)
}

func (v *stageView) fillRect(screen *ebiten.Image, r entity.Rect, cam camera, c color.Color) {
	x, y, w, h := v.screenRect(r, cam)
	vector.FillRect(screen, x, y, w, h, c, false)
}

// Draw renders the stage, triggers, player and HUD
func (p *Playing) Draw(screen *ebiten.Image) {
	screen.Fill(colorBG)

	cam := p.stage.follow(p.sim.Body().Position(), p.screenW, p.screenH)

	p.drawTiles(screen, cam)
	p.drawTriggers(screen, cam)
	p.drawGrapple(screen, cam)
	p.drawPlayer(screen, cam)
	p.drawHUD(screen)

	switch p.state {
	case state.StatePaused:
		p.drawOverlay(screen, color.RGBA{0, 0, 0, 128}, "PAUSED\n\nPress ESC to resume")
	case state.StateWon:
		p.drawOverlay(screen, color.RGBA{0, 60, 0, 160},
			fmt.Sprintf("STAGE CLEAR\n\n%d ticks\n\nPress ENTER to restart", p.sim.Ticks()))
	}
}

func (p *Playing) drawTiles(screen *ebiten.Image, cam camera) {
	st := p.stage.stage
	for ty := 0; ty < st.Height; ty++ {
		for tx := 0; tx < st.Width; tx++ {
			c, ok := tileColor(st.GetTile(tx, ty).Type)
			if !ok {
				continue
			}
			p.stage.fillRect(screen, st.TileRect(tx, ty), cam, c)
		}
	}
}

func tileColor(t entity.TileType) (color.Color, bool) {
	switch t {
	case entity.TileWall:
		return colorWall, true
	case entity.TileSpike:
		return colorSpike, true
	case entity.TileGrapple:
		return colorGrapple, true
	case entity.TileParry:
		return colorParry, true
	case entity.TileBounce:
		return colorBounce, true
	}
	return nil, false
}

func (p *Playing) drawTriggers(screen *ebiten.Image, cam camera) {
	p.sim.Triggers.Each(func(e *donburi.Entry, v *resolvworld.Volume) {
		if !v.Enabled() {
			return
		}
		p.stage.fillRect(screen, v.Rect(), cam, triggerColor(e))
	})
}

func triggerColor(e *donburi.Entry) color.Color {
	switch {
	case e.HasComponent(ecs.PlatformData):
		return fade(colorPlatform, ecs.PlatformData.Get(e).Alpha)
	case e.HasComponent(ecs.BouncePadData):
		return colorBounce
	case e.HasComponent(ecs.Hazard):
		return colorHazard
	case e.HasComponent(ecs.WinZoneData):
		return colorWin
	case e.HasComponent(ecs.UnlockData):
		if ecs.UnlockData.Get(e).Taken {
			return fade(colorUnlock, 0.25)
		}
		return colorUnlock
	}
	return colorWall
}

// fade scales a color by alpha (premultiplied)
func fade(c color.RGBA, alpha float64) color.RGBA {
	return color.RGBA{
		uint8(float64(c.R) * alpha),
		uint8(float64(c.G) * alpha),
		uint8(float64(c.B) * alpha),
		uint8(float64(c.A) * alpha),
	}
}

func (p *Playing) drawGrapple(screen *ebiten.Image, cam camera) {
	c := p.sim.Controller
	session := c.Grapple()
	if session.Phase == system.GrappleIdle {
		return
	}

	x0, y0 := p.stage.screenPoint(p.sim.Body().Position(), cam)
	if session.HasHit {
		x1, y1 := p.stage.screenPoint(session.Target, cam)
		vector.StrokeLine(screen, x0, y0, x1, y1, 1, colorRope, false)
		return
	}
	// No anchor yet: show the ray's reach
	end := p.sim.Body().Position().Add(session.Direction.Scale(c.Config().Grapple.RayDistance))
	x1, y1 := p.stage.screenPoint(end, cam)
	vector.StrokeLine(screen, x0, y0, x1, y1, 1, colorRay, false)
}

func (p *Playing) drawPlayer(screen *ebiten.Image, cam camera) {
	ms := p.sim.Controller.State()
	r := entity.RectFromCenter(p.sim.Body().Position(), p.sim.BodySize())

	c := colorPlayer
	switch {
	case ms.ParryActive:
		c = colorParrying
	case ms.Dashing:
		c = colorDash
	case ms.WallClinging:
		c = colorCling
	}
	p.stage.fillRect(screen, r, cam, c)

	// Facing marker
	eye := r.Center().Add(entity.Vec2{X: float64(ms.Facing) * r.Size().X * 0.3, Y: r.Size().Y * 0.25})
	p.stage.fillRect(screen, entity.RectFromCenter(eye, entity.Vec2{X: 0.15, Y: 0.15}), cam, colorBG)
}

func (p *Playing) drawHUD(screen *ebiten.Image) {
	ms := p.sim.Controller.State()
	pos := p.sim.Body().Position()

	var abilities []string
	gate := p.sim.Controller.Abilities()
	for _, a := range []system.Ability{system.AbilityDash, system.AbilityWallJump, system.AbilityDoubleJump, system.AbilityHook} {
		if gate.Unlocked(a) {
			abilities = append(abilities, a.String())
		}
	}

	lines := []string{
		"A/D: Move | Space: Jump | Shift: Dash | J: Hook | K: Parry | R: Restart | ESC: Pause",
		fmt.Sprintf("pos %.2f,%.2f  vel %.2f,%.2f", pos.X, pos.Y, ms.Velocity.X, ms.Velocity.Y),
		fmt.Sprintf("grounded %v  wall %d  jumps %d  dash %v", ms.Grounded, ms.WallDirection, ms.JumpsRemaining, ms.CanDash),
		fmt.Sprintf("grapple %s  backend %s  tps %.0f", p.sim.Controller.Grapple().Phase, p.sim.BackendName(), ebiten.ActualTPS()),
		"abilities: " + strings.Join(abilities, ", "),
	}
	if p.statusTimer > 0 {
		lines = append(lines, p.status)
	}
	if p.recorder != nil {
		lines = append(lines, fmt.Sprintf("REC %d", p.recorder.FrameCount()))
	}
	ebitenutil.DebugPrint(screen, strings.Join(lines, "\n"))
}

func (p *Playing) drawOverlay(screen *ebiten.Image, c color.Color, text string) {
	vector.FillRect(screen, 0, 0, float32(p.screenW), float32(p.screenH), c, false)
	ebitenutil.DebugPrintAt(screen, text, p.screenW/2-60, p.screenH/2-30)
}
