package entity

import "math"

// tileEpsilon keeps flush edges from registering as overlap
const tileEpsilon = 1e-9

// TileType represents the type of a tile
type TileType int

const (
	TileEmpty TileType = iota
	TileWall
	TileSpike
	TileGrapple
	TileParry
	TileBounce
)

// Tile represents a single tile in the stage
type Tile struct {
	Type   TileType
	Solid  bool
	Layer  Layer
	Damage int
}

// Stage represents the current stage's tile data.
// Tiles[0] is the top row; tile coordinates count rows from the bottom.
type Stage struct {
	Width    int
	Height   int
	TileSize float64
	Tiles    [][]Tile
	Spawn    Vec2
}

// GetTile returns the tile at column tx, row ty (ty=0 is the bottom row)
func (s *Stage) GetTile(tx, ty int) Tile {
	if tx < 0 || tx >= s.Width || ty < 0 || ty >= s.Height {
		return Tile{Type: TileWall, Solid: true, Layer: LayerGround}
	}
	return s.Tiles[s.Height-1-ty][tx]
}

// TileAt returns the tile containing the world point p
func (s *Stage) TileAt(p Vec2) Tile {
	return s.GetTile(s.TileCoord(p))
}

// TileCoord returns the tile coordinates containing the world point p
func (s *Stage) TileCoord(p Vec2) (tx, ty int) {
	return int(math.Floor(p.X / s.TileSize)), int(math.Floor(p.Y / s.TileSize))
}

// TileRect returns the world box covered by tile (tx, ty)
func (s *Stage) TileRect(tx, ty int) Rect {
	ts := s.TileSize
	return Rect{
		Min: Vec2{float64(tx) * ts, float64(ty) * ts},
		Max: Vec2{float64(tx+1) * ts, float64(ty+1) * ts},
	}
}

// TileRange returns the inclusive tile range whose interiors r touches
func (s *Stage) TileRange(r Rect) (minTX, minTY, maxTX, maxTY int) {
	ts := s.TileSize
	minTX = int(math.Floor((r.Min.X + tileEpsilon) / ts))
	minTY = int(math.Floor((r.Min.Y + tileEpsilon) / ts))
	maxTX = int(math.Floor((r.Max.X - tileEpsilon) / ts))
	maxTY = int(math.Floor((r.Max.Y - tileEpsilon) / ts))
	return minTX, minTY, maxTX, maxTY
}

// IsSolidRect checks if any tile in the rect is solid
func (s *Stage) IsSolidRect(r Rect) bool {
	minTX, minTY, maxTX, maxTY := s.TileRange(r)
	for ty := minTY; ty <= maxTY; ty++ {
		for tx := minTX; tx <= maxTX; tx++ {
			if s.GetTile(tx, ty).Solid {
				return true
			}
		}
	}
	return false
}

// Bounds returns the world box covered by the stage
func (s *Stage) Bounds() Rect {
	return Rect{Max: Vec2{float64(s.Width) * s.TileSize, float64(s.Height) * s.TileSize}}
}
