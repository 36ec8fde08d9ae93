// Command playground runs the movement controller in a window.
//
// Movement tuning is read from -config when given and reloaded whenever
// movement.yaml changes there; otherwise the embedded defaults are used.
package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/mover/configs"
	"github.com/younwookim/mover/internal/application/game"
	"github.com/younwookim/mover/internal/application/scene/playground"
	"github.com/younwookim/mover/internal/application/system"
	"github.com/younwookim/mover/internal/infrastructure/config"
)

func main() {
	recordFlag := flag.String("record", "", "Record input to file (e.g., -record replay.json, - for a timestamped name)")
	stageFlag := flag.String("stage", "demo", "Stage to load")
	backendFlag := flag.String("backend", "tile", "Physics backend: tile or chipmunk")
	configFlag := flag.String("config", "", "Config directory to load and watch (default: embedded configs)")
	abilitiesFlag := flag.String("abilities", "", "Abilities unlocked at start (e.g., dash,hook)")
	flag.Parse()

	abilities, err := system.ParseAbilities(*abilitiesFlag)
	if err != nil {
		log.Fatalf("Invalid -abilities: %v", err)
	}

	loader := config.NewFSLoader(configs.FS, "configs")
	var watcher *config.Watcher
	if *configFlag != "" {
		loader = config.NewLoader(*configFlag)
		watcher, err = config.NewWatcher(*configFlag)
		if err != nil {
			log.Fatalf("Failed to watch %s: %v", *configFlag, err)
		}
		defer watcher.Close()
		log.Printf("Watching %s for movement changes", *configFlag)
	}

	cfg, err := loader.LoadAll()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	stageCfg, err := loader.LoadStage(*stageFlag)
	if err != nil {
		log.Fatalf("Failed to load stage: %v", err)
	}

	scene, err := playground.New(playground.Options{
		Config:     cfg,
		StageCfg:   stageCfg,
		Backend:    *backendFlag,
		Abilities:  abilities,
		RecordFile: *recordFlag,
		Loader:     loader,
		Watcher:    watcher,
	})
	if err != nil {
		log.Fatalf("Failed to start playground: %v", err)
	}

	display := cfg.Display
	g := game.New(scene, display.ScreenWidth, display.ScreenHeight, display.Framerate)

	ebiten.SetWindowSize(display.ScreenWidth*display.Scale, display.ScreenHeight*display.Scale)
	ebiten.SetWindowTitle("Movement Playground - " + stageCfg.Name)
	ebiten.SetTPS(display.Framerate)

	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
