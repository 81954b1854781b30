package behavior

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/younwookim/behave/internal/infrastructure/config"
)

func TestState_String(t *testing.T) {
	tests := []struct {
		state    State
		expected string
	}{
		{Idle, "Idle"},
		{Shooting, "Shooting"},
		{Patrol, "Patrol"},
		{Chase, "Chase"},
		{State(99), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.state.String())
		})
	}
}

func TestState_Valid(t *testing.T) {
	tests := []struct {
		name     string
		state    State
		distance float64
		expected bool
	}{
		{"idle far", Idle, 8, true},
		{"idle near", Idle, 2, false},
		{"idle at boundary", Idle, 5, false},
		{"shooting near left", Shooting, -3, true},
		{"shooting at boundary", Shooting, 5, true},
		{"shooting far", Shooting, -6, false},
		{"patrol far", Patrol, -9, true},
		{"patrol near", Patrol, 1, false},
		{"chase near", Chase, 0, true},
		{"chase far", Chase, 5.01, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := Context{Distance: tt.distance, DetectDistance: 5}
			assert.Equal(t, tt.expected, tt.state.Valid(ctx))
		})
	}
}

func TestNext_SwapsToAlternate(t *testing.T) {
	near := Context{Distance: 1, DetectDistance: 5}
	far := Context{Distance: 10, DetectDistance: 5}

	assert.Equal(t, Shooting, Next(Idle, near))
	assert.Equal(t, Idle, Next(Idle, far))
	assert.Equal(t, Idle, Next(Shooting, far))
	assert.Equal(t, Chase, Next(Patrol, near))
	assert.Equal(t, Patrol, Next(Chase, far))
}

func TestStepGunner(t *testing.T) {
	t.Run("idle while player is far", func(t *testing.T) {
		s, act := StepGunner(Idle, Context{Distance: 10, DetectDistance: 5, Actionable: true})
		assert.Equal(t, Idle, s)
		assert.False(t, act.Shoot)
	})

	t.Run("switches to shooting and fires on the same tick", func(t *testing.T) {
		s, act := StepGunner(Idle, Context{Distance: -4, DetectDistance: 5, Actionable: true})
		assert.Equal(t, Shooting, s)
		assert.True(t, act.Shoot)
	})

	t.Run("dead gunner still transitions but does not shoot", func(t *testing.T) {
		s, act := StepGunner(Idle, Context{Distance: 1, DetectDistance: 5})
		assert.Equal(t, Shooting, s)
		assert.False(t, act.Shoot)
	})
}

func TestChaseRequest(t *testing.T) {
	tests := []struct {
		name     string
		distance float64
		expected float64
	}{
		{"inside deadband right", 0.05, 0},
		{"inside deadband left", -0.099, 0},
		{"at deadband", 0.1, 0.1},
		{"right", 3, 3},
		{"left", -2.5, -2.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ChaseRequest(tt.distance, config.DefaultChaseDeadband))
		})
	}
}

func TestEdgeGuard(t *testing.T) {
	tests := []struct {
		name      string
		dir       int
		reachEdge int
		expected  float64
	}{
		{"grounded walk right", 1, 0, 2},
		{"grounded walk left", -1, 0, -2},
		{"edge ahead on the right", 1, 1, 0},
		{"edge ahead on the left", -1, -1, 0},
		{"walking away from right edge", -1, 1, -2},
		{"standing", 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, EdgeGuard(tt.dir, tt.reachEdge, 2))
		})
	}
}

func TestReachEdge(t *testing.T) {
	assert.Equal(t, 0, ReachEdge(true, 1))
	assert.Equal(t, 0, ReachEdge(true, -1))
	assert.Equal(t, 1, ReachEdge(false, 1))
	assert.Equal(t, -1, ReachEdge(false, -1))
}

func TestSign(t *testing.T) {
	assert.Equal(t, 1, Sign(0.3))
	assert.Equal(t, -1, Sign(-7))
	assert.Equal(t, 0, Sign(0))
}
