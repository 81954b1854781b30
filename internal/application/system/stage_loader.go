package system

import (
	"fmt"

	"github.com/jakecoffman/cp"

	"github.com/younwookim/behave/internal/domain/entity"
	"github.com/younwookim/behave/internal/infrastructure/config"
)

// LoadStage converts a StageConfig into a Stage entity
func LoadStage(cfg *config.StageConfig) *entity.Stage {
	rows := make([][]rune, len(cfg.Tiles))
	width := 0
	for y, row := range cfg.Tiles {
		rows[y] = []rune(row)
		if len(rows[y]) > width {
			width = len(rows[y])
		}
	}
	height := len(rows)

	tiles := make([][]entity.Tile, height)
	for y, row := range rows {
		tiles[y] = make([]entity.Tile, width)
		for x, char := range row {
			mapping, ok := cfg.TileMapping[string(char)]
			if !ok {
				continue
			}

			var tileType entity.TileType
			switch mapping.Type {
			case "platform":
				tileType = entity.TilePlatform
			case "spike":
				tileType = entity.TileSpike
			default:
				tileType = entity.TileEmpty
			}

			tiles[y][x] = entity.Tile{
				Type:  tileType,
				Solid: mapping.Solid,
			}
		}
	}

	spawnPoints := make([]entity.SpawnPoint, 0, len(cfg.SpawnPoints))
	for _, sp := range cfg.SpawnPoints {
		spawnPoints = append(spawnPoints, entity.SpawnPoint{
			Name:        sp.Name,
			Pos:         cp.Vector{X: sp.X, Y: sp.Y},
			TargetScene: sp.TargetScene,
		})
	}

	name := cfg.Name
	if name == "" {
		name = cfg.ID
	}

	return &entity.Stage{
		Name:        name,
		Width:       width,
		Height:      height,
		Tiles:       tiles,
		Spawn:       cp.Vector{X: cfg.PlayerSpawn.X, Y: cfg.PlayerSpawn.Y},
		SpawnPoints: spawnPoints,
	}
}

// Populate spawns everything a stage places: enemies, traps, hazards
// (including spike tiles), obstacles and switches. Switches come last so
// their bindings resolve.
func (s *BehaviorSystem) Populate(cfg *config.StageConfig, stage *entity.Stage) error {
	for _, spawn := range cfg.Enemies {
		if _, err := s.SpawnEnemy(spawn); err != nil {
			return fmt.Errorf("failed to populate stage %s: %w", stage.Name, err)
		}
	}

	for _, trap := range cfg.MovingTraps {
		s.AddMovingTrap(trap)
	}

	for _, area := range stage.SpikeAreas() {
		s.AddDeadly(area)
	}
	for _, r := range cfg.Deadly {
		s.AddDeadly(rect(r))
	}

	for _, o := range cfg.Obstacles {
		s.AddObstacle(o)
	}

	for _, sw := range cfg.Switches {
		if _, err := s.AddSwitch(sw); err != nil {
			return fmt.Errorf("failed to populate stage %s: %w", stage.Name, err)
		}
	}
	return nil
}
