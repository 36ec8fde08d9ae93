package config

// StageConfig is the root config for stage JSON files
type StageConfig struct {
	ID          string                       `json:"id"`
	Name        string                       `json:"name"`
	Size        StageSizeConfig              `json:"size"`
	Background  BackgroundConfig             `json:"background"`
	PlayerSpawn PositionConfig               `json:"playerSpawn"`
	Layers      LayersConfig                 `json:"layers"`
	TileMapping map[string]TileMappingConfig `json:"tileMapping"`
	Triggers    []TriggerConfig              `json:"triggers"`
}

// StageSizeConfig gives the tile edge length in world units
type StageSizeConfig struct {
	TileSize float64 `json:"tileSize"`
}

type BackgroundConfig struct {
	Color string `json:"color"`
}

// PositionConfig is a world position (y-up)
type PositionConfig struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// LayersConfig holds the tile rows, first row at the top of the stage
type LayersConfig struct {
	Collision []string `json:"collision"`
}

type TileMappingConfig struct {
	Type   string `json:"type"`
	Solid  bool   `json:"solid"`
	Layer  string `json:"layer,omitempty"`
	Damage int    `json:"damage,omitempty"`
}

// TriggerConfig describes a collaborator volume placed in the stage.
// Only the fields relevant to Type are read.
type TriggerConfig struct {
	Type         string          `json:"type"`
	Rect         RectConfig      `json:"rect"`
	Force        float64         `json:"force,omitempty"`
	SideForce    float64         `json:"sideForce,omitempty"`
	LockDuration float64         `json:"lockDuration,omitempty"`
	FadeTime     float64         `json:"fadeTime,omitempty"`
	RespawnTime  float64         `json:"respawnTime,omitempty"`
	To           *PositionConfig `json:"to,omitempty"`
	Speed        float64         `json:"speed,omitempty"`
	Pause        float64         `json:"pause,omitempty"`
	Ability      string          `json:"ability,omitempty"`
}

// RectConfig is a world box given by its bottom-left corner and size
type RectConfig struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}
