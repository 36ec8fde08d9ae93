package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"

	"gopkg.in/yaml.v3"
)

// MovementFiles lists the movement config names tried in order
var MovementFiles = []string{"movement.yaml", "movement.yml", "movement.json"}

// GameConfig holds all loaded configurations
type GameConfig struct {
	Movement *MovementConfig
	Display  *DisplayConfig
}

// Loader loads game configuration from YAML/JSON files using fs.FS interface
type Loader struct {
	fsys     fs.FS
	basePath string
}

// NewLoader creates a new config loader from filesystem path
func NewLoader(basePath string) *Loader {
	return &Loader{
		fsys:     os.DirFS(basePath),
		basePath: basePath,
	}
}

// NewFSLoader creates a new config loader from fs.FS
func NewFSLoader(fsys fs.FS, basePath string) *Loader {
	return &Loader{
		fsys:     fsys,
		basePath: basePath,
	}
}

// BasePath returns the directory the loader was created for
func (l *Loader) BasePath() string {
	return l.basePath
}

// LoadMovement loads the first movement file found on top of the defaults
// and validates the result.
func (l *Loader) LoadMovement() (*MovementConfig, error) {
	for _, name := range MovementFiles {
		data, err := fs.ReadFile(l.fsys, name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
		return ParseMovement(name, data)
	}
	return nil, fmt.Errorf("failed to read movement config: %w", fs.ErrNotExist)
}

// ParseMovement decodes movement config data; the format follows the file extension.
func ParseMovement(name string, data []byte) (*MovementConfig, error) {
	cfg := DefaultMovementConfig()
	if err := decode(name, data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", name, err)
	}
	return cfg, nil
}

// LoadDisplay loads display.json, falling back to defaults when it is absent
func (l *Loader) LoadDisplay() (*DisplayConfig, error) {
	data, err := fs.ReadFile(l.fsys, "display.json")
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultDisplayConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read display.json: %w", err)
	}

	cfg := DefaultDisplayConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse display.json: %w", err)
	}

	return cfg, nil
}

// LoadStage loads a stage JSON file
func (l *Loader) LoadStage(name string) (*StageConfig, error) {
	p := "stages/" + name + ".json"
	data, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		return nil, fmt.Errorf("failed to read stage %s: %w", name, err)
	}

	var cfg StageConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse stage %s: %w", name, err)
	}

	return &cfg, nil
}

// LoadAll loads all base configurations (movement, display)
func (l *Loader) LoadAll() (*GameConfig, error) {
	movement, err := l.LoadMovement()
	if err != nil {
		return nil, err
	}

	display, err := l.LoadDisplay()
	if err != nil {
		return nil, err
	}

	return &GameConfig{
		Movement: movement,
		Display:  display,
	}, nil
}

func decode(name string, data []byte, out any) error {
	switch path.Ext(name) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, out)
	case ".json":
		return json.Unmarshal(data, out)
	}
	return fmt.Errorf("unsupported config format %q", path.Ext(name))
}
