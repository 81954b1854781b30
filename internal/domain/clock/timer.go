// Package clock provides countdown timers driven by the caller's tick.
package clock

// Timer is a countdown decremented by Tick.
//
// Every Start or Cancel bumps the generation, so a caller holding the
// generation of an earlier activation can tell it has been superseded.
type Timer struct {
	remaining float64
	active    bool
	gen       uint32
}

// Start arms the timer for d seconds and returns the new generation.
// Restarting an armed timer discards the previous activation.
func (t *Timer) Start(d float64) uint32 {
	t.gen++
	t.remaining = d
	t.active = true
	return t.gen
}

// Cancel disarms the timer without firing it.
func (t *Timer) Cancel() {
	if !t.active {
		return
	}
	t.gen++
	t.active = false
	t.remaining = 0
}

// Tick advances the timer by dt and reports whether it expired on this tick.
// An expired timer fires exactly once.
func (t *Timer) Tick(dt float64) bool {
	if !t.active {
		return false
	}
	t.remaining -= dt
	if t.remaining > 0 {
		return false
	}
	t.active = false
	t.remaining = 0
	return true
}

// Active returns true while the timer is armed
func (t *Timer) Active() bool {
	return t.active
}

// Remaining returns the seconds left, 0 when idle
func (t *Timer) Remaining() float64 {
	return t.remaining
}

// Generation returns the current activation generation
func (t *Timer) Generation() uint32 {
	return t.gen
}

// Live reports whether gen still names the armed activation.
func (t *Timer) Live(gen uint32) bool {
	return t.active && t.gen == gen
}
