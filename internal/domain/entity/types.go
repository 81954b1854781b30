package entity

import "github.com/jakecoffman/cp"

// EntityID is a unique identifier for an entity
type EntityID uint32

// Layer is a collision layer bit
type Layer uint

const (
	LayerPlatform Layer = 1 << iota
	LayerPlayer
	LayerEnemy
	LayerDecoration
	LayerTrap
)

// String returns the string representation of the layer
func (l Layer) String() string {
	switch l {
	case LayerPlatform:
		return "Platform"
	case LayerPlayer:
		return "Player"
	case LayerEnemy:
		return "Enemy"
	case LayerDecoration:
		return "Decoration"
	case LayerTrap:
		return "Trap"
	default:
		return "Unknown"
	}
}

// Rect is an axis-aligned box in world units, X/Y at the top-left corner
type Rect struct {
	X, Y, W, H float64
}

// RectAround returns the box of size centered on center
func RectAround(center, size cp.Vector) Rect {
	return Rect{X: center.X - size.X/2, Y: center.Y - size.Y/2, W: size.X, H: size.Y}
}

// Center returns the center of the box
func (r Rect) Center() cp.Vector {
	return cp.Vector{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Overlaps reports whether the boxes intersect.
// Touching edges count, since resting contact leaves zero penetration.
func (r Rect) Overlaps(o Rect) bool {
	return r.X <= o.X+o.W && r.X+r.W >= o.X && r.Y <= o.Y+o.H && r.Y+r.H >= o.Y
}

// Expand grows the box by m on every side
func (r Rect) Expand(m float64) Rect {
	return Rect{X: r.X - m, Y: r.Y - m, W: r.W + 2*m, H: r.H + 2*m}
}

// TileType represents the type of a tile
type TileType int

const (
	TileEmpty TileType = iota
	TilePlatform
	TileSpike
)

// Tile represents a single tile in the stage
type Tile struct {
	Type  TileType
	Solid bool
}

// SpawnPoint is a named entry point; TargetScene names the level it leads to
type SpawnPoint struct {
	Name        string
	Pos         cp.Vector
	TargetScene string
}

// Stage represents the current level's tile data.
// One tile is one world unit.
type Stage struct {
	Name        string
	Width       int
	Height      int
	Tiles       [][]Tile
	Spawn       cp.Vector
	SpawnPoints []SpawnPoint
}

// GetTile returns the tile at the given tile coordinates
func (s *Stage) GetTile(tx, ty int) Tile {
	if tx < 0 || tx >= s.Width || ty < 0 || ty >= s.Height {
		return Tile{Type: TilePlatform, Solid: true}
	}
	return s.Tiles[ty][tx]
}

// SolidRuns merges each row's consecutive solid tiles into boxes
func (s *Stage) SolidRuns() []Rect {
	var runs []Rect
	for ty := 0; ty < s.Height; ty++ {
		start := -1
		for tx := 0; tx <= s.Width; tx++ {
			solid := tx < s.Width && s.Tiles[ty][tx].Solid
			if solid && start < 0 {
				start = tx
			}
			if !solid && start >= 0 {
				runs = append(runs, Rect{X: float64(start), Y: float64(ty), W: float64(tx - start), H: 1})
				start = -1
			}
		}
	}
	return runs
}

// SpikeAreas returns one box per spike tile
func (s *Stage) SpikeAreas() []Rect {
	var areas []Rect
	for ty := 0; ty < s.Height; ty++ {
		for tx := 0; tx < s.Width; tx++ {
			if s.Tiles[ty][tx].Type == TileSpike {
				areas = append(areas, Rect{X: float64(tx), Y: float64(ty), W: 1, H: 1})
			}
		}
	}
	return areas
}

