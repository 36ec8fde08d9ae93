// Package playground is the interactive scene: live input drives a simulation
// while movement tuning is hot reloaded from disk.
package playground

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/younwookim/mover/internal/application/replay"
	"github.com/younwookim/mover/internal/application/scene"
	"github.com/younwookim/mover/internal/application/sim"
	"github.com/younwookim/mover/internal/application/state"
	"github.com/younwookim/mover/internal/application/system"
	"github.com/younwookim/mover/internal/infrastructure/config"
)

// statusDuration is how long a status line stays on screen
const statusDuration = 2.0

// Options configures a playground
type Options struct {
	Config    *config.GameConfig
	StageCfg  *config.StageConfig
	Backend   string
	Abilities []system.Ability

	// RecordFile enables input recording; "-" picks a timestamped name on save
	RecordFile string
	// Loader and Watcher enable hot reload of the movement config
	Loader  *config.Loader
	Watcher *config.Watcher
}

// Playing is the playground scene
type Playing struct {
	opts    Options
	stage   *stageView
	sim     *sim.Simulation
	input   *system.InputSystem
	state   state.SessionState
	screenW int
	screenH int
	ppu     float64

	recorder *replay.Recorder

	status      string
	statusTimer float64
}

// New builds the scene and its simulation
func New(opts Options) (*Playing, error) {
	if opts.Config == nil || opts.Config.Movement == nil {
		return nil, fmt.Errorf("playground: movement config is required")
	}
	if opts.Config.Display == nil {
		opts.Config.Display = config.DefaultDisplayConfig()
	}
	if opts.StageCfg == nil {
		return nil, sim.ErrNoStage
	}

	p := &Playing{
		opts:    opts,
		input:   system.NewInputSystem(system.DefaultKeyBindings()),
		screenW: opts.Config.Display.ScreenWidth,
		screenH: opts.Config.Display.ScreenHeight,
		ppu:     opts.Config.Display.PixelsPerUnit,
	}
	if err := p.restart(); err != nil {
		return nil, err
	}
	return p, nil
}

// restart rebuilds the simulation from the stage config
func (p *Playing) restart() error {
	stage, err := system.LoadStage(p.opts.StageCfg)
	if err != nil {
		return err
	}

	physicsDT := 0.0
	if rate := p.opts.Config.Display.PhysicsRate; rate > 0 {
		physicsDT = 1 / float64(rate)
	}
	s, err := sim.New(sim.Options{
		Movement:  p.opts.Config.Movement,
		Stage:     stage,
		Triggers:  p.opts.StageCfg.Triggers,
		Backend:   p.opts.Backend,
		PhysicsDT: physicsDT,
		Abilities: p.opts.Abilities,
	})
	if err != nil {
		return err
	}
	s.Triggers.OnUnlock = func(a system.Ability) {
		p.setStatus(fmt.Sprintf("Unlocked %s", a))
	}

	p.sim = s
	p.stage = newStageView(stage, p.ppu)
	p.state = state.StatePlaying

	if p.opts.RecordFile != "" {
		p.recorder = replay.NewRecorder(p.opts.StageCfg.ID, p.frameDT())
		p.recorder.SetBackend(s.BackendName())
		p.recorder.SetAbilities(p.opts.Abilities)
		log.Printf("Recording enabled: %s (stage: %s, backend: %s)", p.opts.RecordFile, p.opts.StageCfg.ID, s.BackendName())
	}
	return nil
}

// frameDT is the logic tick the game loop runs at
func (p *Playing) frameDT() float64 {
	if rate := p.opts.Config.Display.Framerate; rate > 0 {
		return 1 / float64(rate)
	}
	return replay.DefaultDT
}

// Update polls hot reload and keyboard commands, then steps the session
func (p *Playing) Update(dt float64) (scene.Scene, error) {
	p.pollWatcher()

	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return nil, scene.ErrQuit
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		p.TogglePause()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		p.saveRecording()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) ||
		(p.state == state.StateWon && inpututil.IsKeyJustPressed(ebiten.KeyEnter)) {
		if err := p.restart(); err != nil {
			return nil, err
		}
	}

	p.Step(p.input.GetInput(), dt)
	return nil, nil
}

// Step advances the session by one logic tick with the given input.
// Nothing happens unless the session is playing.
func (p *Playing) Step(in system.Input, dt float64) {
	if p.statusTimer > 0 {
		p.statusTimer -= dt
	}
	if !p.state.Ticking() {
		return
	}

	if p.recorder != nil {
		p.recorder.RecordFrame(in)
	}
	p.sim.Tick(in, dt)

	if p.sim.Won() {
		p.state = state.StateWon
		log.Printf("Stage %s cleared after %d ticks", p.opts.StageCfg.ID, p.sim.Ticks())
		if p.recorder != nil {
			p.saveRecording()
		}
	}
}

// TogglePause flips between playing and paused
func (p *Playing) TogglePause() {
	switch p.state {
	case state.StatePlaying:
		p.state = state.StatePaused
	case state.StatePaused:
		p.state = state.StatePlaying
	}
}

// State returns the session state
func (p *Playing) State() state.SessionState {
	return p.state
}

// Simulation returns the running simulation
func (p *Playing) Simulation() *sim.Simulation {
	return p.sim
}

// Recorder returns the input recorder, nil when recording is off
func (p *Playing) Recorder() *replay.Recorder {
	return p.recorder
}

// pollWatcher drains pending file events without blocking
func (p *Playing) pollWatcher() {
	if p.opts.Watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-p.opts.Watcher.Events:
			if !ok {
				p.opts.Watcher = nil
				return
			}
			if config.IsMovementFile(name) {
				p.Reload()
			}
		case err, ok := <-p.opts.Watcher.Errors:
			if ok {
				log.Printf("Config watcher error: %v", err)
			}
		default:
			return
		}
	}
}

// Reload reads the movement config again and swaps it into the running
// simulation. A bad file is logged and the old tuning stays.
func (p *Playing) Reload() bool {
	if p.opts.Loader == nil {
		return false
	}
	cfg, err := p.opts.Loader.LoadMovement()
	if err != nil {
		log.Printf("Config reload failed: %v", err)
		p.setStatus("Reload failed")
		return false
	}
	if err := p.sim.ReplaceConfig(cfg); err != nil {
		log.Printf("Config reload rejected: %v", err)
		p.setStatus("Reload rejected")
		return false
	}
	p.opts.Config.Movement = cfg
	log.Printf("Movement config reloaded from %s", p.opts.Loader.BasePath())
	p.setStatus("Config reloaded")
	return true
}

func (p *Playing) setStatus(s string) {
	p.status = s
	p.statusTimer = statusDuration
}

// saveRecording writes the recording, keeping it open for more frames
func (p *Playing) saveRecording() {
	if p.recorder == nil {
		return
	}

	filename := p.opts.RecordFile
	if filename == "" || filename == "-" {
		filename = replay.GenerateFilename()
	}

	if err := p.recorder.Save(filename); err != nil {
		log.Printf("Failed to save recording: %v", err)
		return
	}
	log.Printf("Recording saved: %s (%d frames)", filename, p.recorder.FrameCount())
	p.setStatus("Recording saved")
}

// OnEnter is called when entering this scene
func (p *Playing) OnEnter() {}

// OnExit saves any pending recording
func (p *Playing) OnExit() {
	if p.recorder != nil && p.recorder.FrameCount() > 0 {
		p.saveRecording()
	}
}

// Layout returns the logical screen size
func (p *Playing) Layout(outsideWidth, outsideHeight int) (int, int) {
	return p.screenW, p.screenH
}
