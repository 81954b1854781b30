package behavior

import "github.com/younwookim/behave/internal/domain/clock"

// Move is a patrol micro-behavior
type Move uint8

const (
	Stand Move = iota
	WalkLeft
	WalkRight

	moveCount = 3
)

// String returns the string representation of the move
func (m Move) String() string {
	switch m {
	case Stand:
		return "Stand"
	case WalkLeft:
		return "WalkLeft"
	case WalkRight:
		return "WalkRight"
	default:
		return "Unknown"
	}
}

// Valid reports whether the move may continue given the edge side
func (m Move) Valid(reachEdge int) bool {
	switch m {
	case Stand:
		return reachEdge == 0
	case WalkLeft:
		return reachEdge != -1
	case WalkRight:
		return reachEdge != 1
	default:
		return false
	}
}

// Direction returns the walk request for the move
func (m Move) Direction() float64 {
	switch m {
	case WalkLeft:
		return -1
	case WalkRight:
		return 1
	default:
		return 0
	}
}

// Roller supplies randomness to the patrol re-roll. *rand.Rand satisfies it.
type Roller interface {
	Intn(n int) int
	Float64() float64
}

// Mind is the patrol enemy's machine: the top-level state plus the
// micro-behavior and its dwell countdown.
type Mind struct {
	State State
	Move  Move
	Dwell clock.Timer
	// Held is the dwell generation that chose Move
	Held uint32
}

// NewMind returns a mind in Patrol that re-rolls on its first step
func NewMind() Mind {
	return Mind{State: Patrol, Move: Stand}
}

// StepPatrol advances a patrol enemy's Patrol/Chase machine.
//
// The dwell countdown advances every tick, acting or not. Entering Patrol
// resets the micro-behavior so the first acting tick re-rolls. A move is
// kept only while the dwell activation that chose it is live.
func StepPatrol(m Mind, ctx Context, roll Roller) (Mind, Action) {
	m.Dwell.Tick(ctx.DT)

	next := Next(m.State, ctx)
	if next != m.State && next == Patrol {
		m.Move = Stand
		m.Dwell.Cancel()
	}
	m.State = next

	if !ctx.Actionable {
		return m, Action{}
	}

	if m.State == Chase {
		return m, Action{Walks: true, Walk: ChaseRequest(ctx.Distance, ctx.Deadband)}
	}

	if !m.Move.Valid(ctx.ReachEdge) || !m.Dwell.Live(m.Held) {
		m.Move = Reroll(m.Move, roll)
		m.Held = m.Dwell.Start(DwellTime(ctx.DwellMin, ctx.DwellMax, roll))
	}
	return m, Action{Walks: true, Walk: m.Move.Direction()}
}

// Reroll picks a move uniformly among the ones different from prev.
func Reroll(prev Move, roll Roller) Move {
	m := Move(roll.Intn(moveCount - 1))
	if m >= prev {
		m++
	}
	return m
}

// DwellTime draws a duration in [least, most).
func DwellTime(least, most float64, roll Roller) float64 {
	if most <= least {
		return least
	}
	return least + roll.Float64()*(most-least)
}
