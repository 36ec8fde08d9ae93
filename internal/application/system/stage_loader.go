package system

import (
	"fmt"

	"github.com/younwookim/mover/internal/domain/entity"
	"github.com/younwookim/mover/internal/infrastructure/config"
)

var tileTypes = map[string]struct {
	tileType entity.TileType
	layer    entity.Layer
}{
	"wall":    {entity.TileWall, entity.LayerGround},
	"spike":   {entity.TileSpike, entity.LayerHazard},
	"grapple": {entity.TileGrapple, entity.LayerGrapple},
	"parry":   {entity.TileParry, entity.LayerParry},
	"bounce":  {entity.TileBounce, entity.LayerBounce},
}

// LoadStage converts a StageConfig into a Stage entity
func LoadStage(cfg *config.StageConfig) (*entity.Stage, error) {
	tileHeight := len(cfg.Layers.Collision)
	tileWidth := 0
	for _, row := range cfg.Layers.Collision {
		if len(row) > tileWidth {
			tileWidth = len(row)
		}
	}

	tileSize := cfg.Size.TileSize
	if tileSize <= 0 {
		tileSize = 1
	}

	tiles := make([][]entity.Tile, tileHeight)
	for y, row := range cfg.Layers.Collision {
		tiles[y] = make([]entity.Tile, tileWidth)
		for x, char := range row {
			if x >= tileWidth {
				break
			}
			mapping, ok := cfg.TileMapping[string(char)]
			if !ok {
				continue
			}

			kind, ok := tileTypes[mapping.Type]
			if !ok {
				continue
			}

			layer := kind.layer
			if mapping.Layer != "" {
				l, err := entity.ParseLayer(mapping.Layer)
				if err != nil {
					return nil, fmt.Errorf("stage %s: tile %q: %w", cfg.ID, string(char), err)
				}
				layer = l
			}

			tiles[y][x] = entity.Tile{
				Type:   kind.tileType,
				Solid:  mapping.Solid,
				Layer:  layer,
				Damage: mapping.Damage,
			}
		}
	}

	return &entity.Stage{
		Width:    tileWidth,
		Height:   tileHeight,
		TileSize: tileSize,
		Tiles:    tiles,
		Spawn:    entity.Vec2{X: cfg.PlayerSpawn.X, Y: cfg.PlayerSpawn.Y},
	}, nil
}
