package entity

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
)

func createTestStage() *Stage {
	e := Tile{Type: TileEmpty}
	p := Tile{Type: TilePlatform, Solid: true}
	s := Tile{Type: TileSpike}

	return &Stage{
		Name:   "test",
		Width:  4,
		Height: 3,
		Tiles: [][]Tile{
			{p, e, e, p},
			{e, e, e, e},
			{p, p, s, p},
		},
		Spawn: cp.Vector{X: 1.5, Y: 1.5},
		SpawnPoints: []SpawnPoint{
			{Name: "door", Pos: cp.Vector{X: 3, Y: 1}, TargetScene: "cave"},
		},
	}
}

func TestStage_GetTile(t *testing.T) {
	stage := createTestStage()

	tests := []struct {
		name      string
		tx, ty    int
		wantType  TileType
		wantSolid bool
	}{
		{"top-left platform", 0, 0, TilePlatform, true},
		{"top-center empty", 1, 0, TileEmpty, false},
		{"bottom spike", 2, 2, TileSpike, false},
		{"out of bounds left", -1, 1, TilePlatform, true},
		{"out of bounds below", 1, 3, TilePlatform, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tile := stage.GetTile(tt.tx, tt.ty)
			assert.Equal(t, tt.wantType, tile.Type)
			assert.Equal(t, tt.wantSolid, tile.Solid)
		})
	}
}

func TestStage_SolidRuns(t *testing.T) {
	runs := createTestStage().SolidRuns()

	assert.Equal(t, []Rect{
		{X: 0, Y: 0, W: 1, H: 1},
		{X: 3, Y: 0, W: 1, H: 1},
		{X: 0, Y: 2, W: 2, H: 1},
		{X: 3, Y: 2, W: 1, H: 1},
	}, runs)
}

func TestStage_SpikeAreas(t *testing.T) {
	assert.Equal(t, []Rect{{X: 2, Y: 2, W: 1, H: 1}}, createTestStage().SpikeAreas())
}

func TestRect_Overlaps(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 1, H: 1}

	tests := []struct {
		name     string
		b        Rect
		expected bool
	}{
		{"inside", Rect{X: 0.25, Y: 0.25, W: 0.5, H: 0.5}, true},
		{"partial", Rect{X: 0.5, Y: 0.5, W: 1, H: 1}, true},
		{"touching edge", Rect{X: 1, Y: 0, W: 1, H: 1}, true},
		{"apart", Rect{X: 1.1, Y: 0, W: 1, H: 1}, false},
		{"below", Rect{X: 0, Y: 2, W: 1, H: 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, a.Overlaps(tt.b))
			assert.Equal(t, tt.expected, tt.b.Overlaps(a))
		})
	}
}

func TestRectAround(t *testing.T) {
	r := RectAround(cp.Vector{X: 2, Y: 3}, cp.Vector{X: 1, Y: 2})
	assert.Equal(t, Rect{X: 1.5, Y: 2, W: 1, H: 2}, r)
	assert.Equal(t, cp.Vector{X: 2, Y: 3}, r.Center())
	assert.Equal(t, Rect{X: 1, Y: 1.5, W: 2, H: 3}, r.Expand(0.5))
}

func TestLayer_String(t *testing.T) {
	assert.Equal(t, "Platform", LayerPlatform.String())
	assert.Equal(t, "Decoration", LayerDecoration.String())
	assert.Equal(t, "Unknown", Layer(0).String())
}
