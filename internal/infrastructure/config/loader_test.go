package config

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_LoadPhysics(t *testing.T) {
	loader := NewLoader("../../../cmd/game/configs")

	cfg, err := loader.LoadPhysics()
	require.NoError(t, err)

	assert.Equal(t, 320, cfg.Display.ScreenWidth)
	assert.Equal(t, 240, cfg.Display.ScreenHeight)
	assert.Equal(t, 60, cfg.Display.Framerate)
	assert.Equal(t, 30.0, cfg.World.Gravity)
	assert.Equal(t, 16, cfg.World.PixelsPerUnit)
	assert.Equal(t, 0.3, cfg.Behavior.ProbeRadius)
	assert.Equal(t, 1.1, cfg.Behavior.ProbeDistance)
	assert.Equal(t, 0.1, cfg.Behavior.ChaseDeadband)
}

func TestLoader_LoadEntities(t *testing.T) {
	loader := NewLoader("../../../cmd/game/configs")

	cfg, err := loader.LoadEntities()
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Player.MaxHealth)
	assert.Equal(t, 0.75, cfg.Player.Size.X)

	bolt, ok := cfg.Projectiles["bolt"]
	require.True(t, ok)
	assert.Equal(t, 8.0, bolt.Speed)

	turret, ok := cfg.Enemies["turret"]
	require.True(t, ok)
	assert.Equal(t, KindGunner, turret.Kind)
	assert.Equal(t, "bolt", turret.Gunner.Projectile)
	assert.Equal(t, 1.5, turret.Gunner.ShootInterval)

	crawler, ok := cfg.Enemies["crawler"]
	require.True(t, ok)
	assert.Equal(t, KindPatrol, crawler.Kind)
	assert.Equal(t, 1.0, crawler.Patrol.BehaveInterval.Least)
	assert.Equal(t, 3.0, crawler.Patrol.BehaveInterval.Most)
	assert.Equal(t, Vec2{X: 2, Y: -6}, crawler.DeathForce)
}

func TestLoader_LoadStage(t *testing.T) {
	loader := NewLoader("../../../cmd/game/configs")

	cfg, err := loader.LoadStage("demo")
	require.NoError(t, err)

	assert.Equal(t, "demo", cfg.ID)
	assert.Len(t, cfg.Tiles, 15)
	for i, row := range cfg.Tiles {
		assert.Len(t, row, 40, "row %d", i)
	}
	assert.Equal(t, Vec2{X: 2.5, Y: 12}, cfg.PlayerSpawn)

	platform, ok := cfg.TileMapping["#"]
	require.True(t, ok)
	assert.True(t, platform.Solid)
	assert.Equal(t, "platform", platform.Type)

	require.Len(t, cfg.Switches, 1)
	assert.Equal(t, "gate", cfg.Switches[0].Obstacle)
	assert.Equal(t, "lift", cfg.Switches[0].Trap)
	require.Len(t, cfg.MovingTraps, 2)
	assert.True(t, cfg.MovingTraps[1].Dormant)
}

func TestLoader_LoadAll(t *testing.T) {
	loader := NewLoader("../../../cmd/game/configs")

	cfg, err := loader.LoadAll()
	require.NoError(t, err)

	assert.NotNil(t, cfg.Physics)
	assert.NotNil(t, cfg.Entities)
}

func TestLoader_PhysicsDefaults(t *testing.T) {
	fsys := fstest.MapFS{
		"physics.yaml": {Data: []byte("world:\n  gravity: 10\n")},
	}

	cfg, err := NewFSLoader(fsys, ".").LoadPhysics()
	require.NoError(t, err)

	assert.Equal(t, 10.0, cfg.World.Gravity)
	assert.Equal(t, DefaultProbeRadius, cfg.Behavior.ProbeRadius)
	assert.Equal(t, DefaultProbeDistance, cfg.Behavior.ProbeDistance)
	assert.Equal(t, DefaultChaseDeadband, cfg.Behavior.ChaseDeadband)
	assert.Equal(t, DefaultWindup, cfg.Behavior.Windup)
	assert.Equal(t, DefaultFramerate, cfg.Display.Framerate)
	assert.Equal(t, DefaultPixelsPerUnit, cfg.World.PixelsPerUnit)
}

func TestLoader_Errors(t *testing.T) {
	fsys := fstest.MapFS{
		"physics.yaml":     {Data: []byte("display: [unclosed\n")},
		"entities.yaml":    {Data: []byte("enemies:\n  blob:\n    kind: flying\n")},
		"stages/bad.yaml":  {Data: []byte("tiles: {not: a list}\n")},
		"stages/good.yaml": {Data: []byte("id: good\n")},
	}
	loader := NewFSLoader(fsys, ".")

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := loader.LoadPhysics()
		assert.ErrorContains(t, err, "failed to parse physics.yaml")
	})

	t.Run("unknown enemy kind", func(t *testing.T) {
		_, err := loader.LoadEntities()
		assert.ErrorContains(t, err, "unknown kind")
	})

	t.Run("missing stage", func(t *testing.T) {
		_, err := loader.LoadStage("nowhere")
		assert.ErrorContains(t, err, "failed to load stage nowhere")
	})

	t.Run("bad stage shape", func(t *testing.T) {
		_, err := loader.LoadStage("bad")
		assert.Error(t, err)
	})

	t.Run("good stage", func(t *testing.T) {
		cfg, err := loader.LoadStage("good")
		require.NoError(t, err)
		assert.Equal(t, "good", cfg.ID)
	})
}

func TestStageName(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"configs/stages/demo.yaml", "demo"},
		{"/abs/stages/cave.yml", "cave"},
		{"configs/entities.yaml", ""},
		{"configs/stages/notes.txt", ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, StageName(tt.path))
		})
	}
}
