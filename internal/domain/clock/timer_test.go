package clock

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTimer_FiresOnce(t *testing.T) {
	var tm Timer
	tm.Start(0.25)

	assert.False(t, tm.Tick(0.1))
	assert.False(t, tm.Tick(0.1))
	assert.True(t, tm.Tick(0.1), "expires once remaining reaches zero")
	assert.False(t, tm.Tick(0.1), "does not fire twice")
	assert.False(t, tm.Active())
}

func TestTimer_RestartSupersedesPrevious(t *testing.T) {
	var tm Timer
	first := tm.Start(0.2)
	assert.False(t, tm.Tick(0.15))

	second := tm.Start(0.2)
	assert.NotEqual(t, first, second)
	assert.False(t, tm.Live(first))
	assert.True(t, tm.Live(second))

	// The first activation would have expired here.
	assert.False(t, tm.Tick(0.1))
	assert.True(t, tm.Tick(0.1))
}

func TestTimer_Cancel(t *testing.T) {
	t.Run("cancel armed timer", func(t *testing.T) {
		var tm Timer
		gen := tm.Start(0.1)
		tm.Cancel()

		assert.False(t, tm.Active())
		assert.False(t, tm.Live(gen))
		assert.Equal(t, gen+1, tm.Generation())
		assert.False(t, tm.Tick(1))
	})

	t.Run("cancel idle timer keeps generation", func(t *testing.T) {
		var tm Timer
		tm.Cancel()
		assert.Equal(t, uint32(0), tm.Generation())
	})
}

func TestTimer_ZeroDuration(t *testing.T) {
	var tm Timer
	tm.Start(0)
	assert.True(t, tm.Tick(0), "zero duration expires on the next tick")
}

func TestTimer_Remaining(t *testing.T) {
	var tm Timer
	assert.Equal(t, 0.0, tm.Remaining())
	tm.Start(1)
	tm.Tick(0.25)
	assert.InDelta(t, 0.75, tm.Remaining(), 1e-9)
}
