// Command replay runs a recorded input file through the simulation without
// a window and prints a per-tick trace.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/younwookim/mover/configs"
	"github.com/younwookim/mover/internal/application/replay"
	"github.com/younwookim/mover/internal/infrastructure/config"
)

func main() {
	backendFlag := flag.String("backend", "", "Override the recorded physics backend")
	stageFlag := flag.String("stage", "", "Override the recorded stage")
	configFlag := flag.String("config", "", "Config directory (default: embedded configs)")
	everyFlag := flag.Int("every", 1, "Print every Nth tick, 0 for the summary only")
	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatalf("usage: replay [flags] <replay.json>")
	}

	data, err := replay.LoadReplay(flag.Arg(0))
	if err != nil {
		log.Fatalf("Failed to load replay: %v", err)
	}

	loader := config.NewFSLoader(configs.FS, "configs")
	if *configFlag != "" {
		loader = config.NewLoader(*configFlag)
	}

	sum, err := run(os.Stdout, loader, data, options{
		Backend: *backendFlag,
		Stage:   *stageFlag,
		Every:   *everyFlag,
	})
	if err != nil {
		log.Fatalf("Replay failed: %v", err)
	}
	log.Printf("Replayed %d frames on %s (%d physics steps, %d respawns, won: %v)",
		sum.Frames, sum.Backend, sum.Steps, sum.Respawns, sum.Won)
}
