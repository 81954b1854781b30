// Package behavior holds the enemy decision logic as pure step functions.
//
// A step takes the current state and a Context snapshot of the world and
// returns the next state together with the Action the owner should carry
// out this tick. Nothing here touches bodies, timers of other entities or
// the player directly.
package behavior

import "math"

// State is the top-level behavior variant of an enemy
type State uint8

const (
	Idle State = iota
	Shooting
	Patrol
	Chase
)

// String returns the string representation of the state
func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Shooting:
		return "Shooting"
	case Patrol:
		return "Patrol"
	case Chase:
		return "Chase"
	default:
		return "Unknown"
	}
}

// Alternate returns the state this one swaps with
func (s State) Alternate() State {
	switch s {
	case Idle:
		return Shooting
	case Shooting:
		return Idle
	case Patrol:
		return Chase
	case Chase:
		return Patrol
	default:
		return s
	}
}

// Valid reports whether the state may continue under ctx.
// Idle and Patrol hold while the player is out of detection range,
// Shooting and Chase while it is within.
func (s State) Valid(ctx Context) bool {
	inRange := math.Abs(ctx.Distance) <= ctx.DetectDistance
	switch s {
	case Idle, Patrol:
		return !inRange
	case Shooting, Chase:
		return inRange
	default:
		return false
	}
}

// Next returns s if it is still valid, otherwise its alternate.
func Next(s State, ctx Context) State {
	if s.Valid(ctx) {
		return s
	}
	return s.Alternate()
}

// Context is the per-tick snapshot a step decides on
type Context struct {
	// Distance is the signed horizontal offset player.x - self.x
	Distance       float64
	DetectDistance float64
	// ReachEdge is -1 or +1 when the ground probe found no floor on that
	// side, 0 when grounded
	ReachEdge int
	Deadband  float64
	DT        float64
	// Actionable is false while the owner may not act (recoil, death)
	Actionable bool
	// DwellMin and DwellMax bound the patrol micro-behavior duration
	DwellMin float64
	DwellMax float64
}

// Action is what a step asks its owner to do this tick
type Action struct {
	Shoot bool
	// Walks is set when Walk carries a movement request
	Walks bool
	Walk  float64
}

// StepGunner advances a gunner's Idle/Shooting machine.
func StepGunner(s State, ctx Context) (State, Action) {
	next := Next(s, ctx)
	if next == Shooting && ctx.Actionable {
		return next, Action{Shoot: true}
	}
	return next, Action{}
}

// ChaseRequest returns the walk request toward the player.
func ChaseRequest(distance, deadband float64) float64 {
	if math.Abs(distance) < deadband {
		return 0
	}
	return distance
}

// Sign returns -1, 0 or 1
func Sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// ReachEdge converts a ground probe result into the edge side.
func ReachEdge(grounded bool, facing int) int {
	if grounded {
		return 0
	}
	return facing
}

// EdgeGuard returns the horizontal speed for dir, zeroed when dir points
// at the edge the probe reported.
func EdgeGuard(dir, reachEdge int, speed float64) float64 {
	if dir == reachEdge {
		return 0
	}
	return float64(dir) * speed
}
