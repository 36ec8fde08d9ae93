package main

import (
	"fmt"
	"io"

	"github.com/younwookim/mover/internal/application/replay"
	"github.com/younwookim/mover/internal/application/sim"
	"github.com/younwookim/mover/internal/application/system"
	"github.com/younwookim/mover/internal/domain/entity"
	"github.com/younwookim/mover/internal/infrastructure/config"
)

// options override what the recording says
type options struct {
	Backend string
	Stage   string
	Every   int // trace every Nth tick, 0 disables the trace
}

// summary is the outcome of one replay
type summary struct {
	Frames   int
	Steps    int
	Respawns int
	Won      bool
	Backend  string
	Final    entity.Vec2
}

// run plays data back against a fresh simulation and writes the trace to w
func run(w io.Writer, loader *config.Loader, data *replay.ReplayData, opts options) (summary, error) {
	s, err := newSimulation(loader, data, opts)
	if err != nil {
		return summary{}, err
	}

	sum := summary{Backend: s.BackendName()}
	s.OnRespawn = func() { sum.Respawns++ }
	s.OnWin = func() { sum.Won = true }

	r := replay.NewReplayer(*data)
	dt := r.DT()
	if dt <= 0 {
		dt = replay.DefaultDT
	}

	if opts.Every > 0 {
		fmt.Fprintln(w, "frame\tx\ty\tvx\tvy\tground\twall\tjumps\tgrapple")
	}
	for {
		in, ok := r.GetInput()
		if !ok {
			break
		}
		s.Tick(in, dt)
		sum.Frames++

		if opts.Every > 0 && (sum.Frames-1)%opts.Every == 0 {
			writeTrace(w, sum.Frames-1, s)
		}
	}

	sum.Steps = s.Steps()
	sum.Final = s.Body().Position()
	return sum, nil
}

func newSimulation(loader *config.Loader, data *replay.ReplayData, opts options) (*sim.Simulation, error) {
	movement, err := loader.LoadMovement()
	if err != nil {
		return nil, err
	}
	display, err := loader.LoadDisplay()
	if err != nil {
		return nil, err
	}

	stageName := data.Stage
	if opts.Stage != "" {
		stageName = opts.Stage
	}
	stageCfg, err := loader.LoadStage(stageName)
	if err != nil {
		return nil, err
	}
	stage, err := system.LoadStage(stageCfg)
	if err != nil {
		return nil, err
	}

	abilities, err := replay.NewReplayer(*data).Abilities()
	if err != nil {
		return nil, err
	}

	backend := data.Backend
	if opts.Backend != "" {
		backend = opts.Backend
	}

	physicsDT := 0.0
	if display.PhysicsRate > 0 {
		physicsDT = 1 / float64(display.PhysicsRate)
	}
	return sim.New(sim.Options{
		Movement:  movement,
		Stage:     stage,
		Triggers:  stageCfg.Triggers,
		Backend:   backend,
		PhysicsDT: physicsDT,
		Abilities: abilities,
	})
}

func writeTrace(w io.Writer, frame int, s *sim.Simulation) {
	ms := s.Controller.State()
	pos := s.Body().Position()
	fmt.Fprintf(w, "%d\t%.4f\t%.4f\t%.4f\t%.4f\t%v\t%d\t%d\t%s\n",
		frame, pos.X, pos.Y, ms.Velocity.X, ms.Velocity.Y,
		ms.Grounded, ms.WallDirection, ms.JumpsRemaining, s.Controller.Grapple().Phase)
}
