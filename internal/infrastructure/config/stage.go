package config

// StageConfig is the root config for stage YAML files
type StageConfig struct {
	ID          string                       `yaml:"id"`
	Name        string                       `yaml:"name"`
	Tiles       []string                     `yaml:"tiles"`
	TileMapping map[string]TileMappingConfig `yaml:"tileMapping"`
	PlayerSpawn Vec2                         `yaml:"playerSpawn"`
	SpawnPoints []SpawnPointConfig           `yaml:"spawnPoints"`
	Enemies     []EnemySpawnConfig           `yaml:"enemies"`
	MovingTraps []MovingTrapConfig           `yaml:"movingTraps"`
	Deadly      []RectConfig                 `yaml:"deadly"`
	Obstacles   []ObstacleConfig             `yaml:"obstacles"`
	Switches    []SwitchConfig               `yaml:"switches"`
}

type TileMappingConfig struct {
	Type  string `yaml:"type"`
	Solid bool   `yaml:"solid"`
}

type SpawnPointConfig struct {
	Name        string  `yaml:"name"`
	X           float64 `yaml:"x"`
	Y           float64 `yaml:"y"`
	TargetScene string  `yaml:"targetScene"`
}

type EnemySpawnConfig struct {
	Type string  `yaml:"type"`
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
	// Facing is -1 or +1; zero keeps the default (+1)
	Facing int `yaml:"facing"`
}

// RectConfig is a box with X/Y at its top-left corner
type RectConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

type MovingTrapConfig struct {
	ID      string     `yaml:"id"`
	Rect    RectConfig `yaml:"rect"`
	Speed   float64    `yaml:"speed"`
	Limit   float64    `yaml:"limit"`
	Axis    string     `yaml:"axis"`
	Dormant bool       `yaml:"dormant"`
	Drag    bool       `yaml:"drag"`
}

type ObstacleConfig struct {
	ID   string     `yaml:"id"`
	Rect RectConfig `yaml:"rect"`
}

type SwitchConfig struct {
	Rect     RectConfig `yaml:"rect"`
	Obstacle string     `yaml:"obstacle"`
	Trap     string     `yaml:"trap"`
}
