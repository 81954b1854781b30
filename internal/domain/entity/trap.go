package entity

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Triggerable is anything a switch can set off
type Triggerable interface {
	Trigger()
}

// Destroyable is anything a switch can remove
type Destroyable interface {
	Destroy()
}

// Axis is the direction a moving trap travels along
type Axis int

const (
	AxisHorizontal Axis = iota
	AxisVertical
)

// Unit returns the unit vector of the axis
func (a Axis) Unit() cp.Vector {
	if a == AxisVertical {
		return cp.Vector{Y: 1}
	}
	return cp.Vector{X: 1}
}

// MovingTrap ping-pongs around its base position.
//
// The offset accumulates at Speed and, once its magnitude reaches Limit,
// the base absorbs the offset and the direction flips. Two reversals
// bring the base back where it started.
type MovingTrap struct {
	ID   EntityID
	Body Kinematics

	Base   cp.Vector
	Offset float64
	Speed  float64
	Limit  float64
	Axis   Axis

	// Dormant traps hold still until triggered
	Dormant bool
	// Drag carries a touching player along with the trap
	Drag bool
}

// NewMovingTrap creates a moving trap centered on base
func NewMovingTrap(id EntityID, base, size cp.Vector, speed, limit float64, axis Axis) *MovingTrap {
	m := &MovingTrap{
		ID: id,
		Body: Kinematics{
			Pos:   base,
			Size:  size,
			Mass:  1,
			Layer: LayerPlatform,
		},
		Base:  base,
		Speed: speed,
		Limit: limit,
		Axis:  axis,
	}
	return m
}

// Trigger wakes a dormant trap. It does nothing to a running one.
func (m *MovingTrap) Trigger() {
	m.Dormant = false
}

// Update advances the offset by dt.
func (m *MovingTrap) Update(dt float64) {
	if m.Dormant {
		m.Body.Vel = cp.Vector{}
		return
	}

	next := m.Offset + dt*m.Speed
	if math.Abs(next) >= m.Limit {
		m.Speed = -m.Speed
		m.Base = m.Base.Add(m.Axis.Unit().Mult(m.Offset))
		m.Offset = 0
	} else {
		m.Offset = next
	}

	m.Body.Pos = m.Position()
	m.Body.Vel = m.Axis.Unit().Mult(m.Speed)
}

// Position returns base + offset along the axis
func (m *MovingTrap) Position() cp.Vector {
	return m.Base.Add(m.Axis.Unit().Mult(m.Offset))
}

// Deadly kills whatever touches it
type Deadly struct {
	ID   EntityID
	Area Rect
}

// Obstacle is a solid block a switch can remove
type Obstacle struct {
	ID        EntityID
	Name      string
	Area      Rect
	Destroyed bool

	// OnDestroy lets the owner drop the collision shape
	OnDestroy func(*Obstacle)
}

// Destroy removes the obstacle once
func (o *Obstacle) Destroy() {
	if o.Destroyed {
		return
	}
	o.Destroyed = true
	if o.OnDestroy != nil {
		o.OnDestroy(o)
	}
}

// Switch opens an obstacle and triggers a trap when struck
type Switch struct {
	ID    EntityID
	Area  Rect
	On    bool
	Layer Layer

	Obstacle Destroyable
	Trap     Triggerable
}

// NewSwitch creates an off switch bound to its targets; either may be nil
func NewSwitch(id EntityID, area Rect, obstacle Destroyable, trap Triggerable) *Switch {
	return &Switch{
		ID:       id,
		Area:     area,
		Layer:    LayerTrap,
		Obstacle: obstacle,
		Trap:     trap,
	}
}

// TurnOn fires the switch and reports whether it changed anything.
func (s *Switch) TurnOn() bool {
	if s.On {
		return false
	}
	s.On = true
	if s.Obstacle != nil {
		s.Obstacle.Destroy()
	}
	if s.Trap != nil {
		s.Trap.Trigger()
	}
	s.Layer = LayerDecoration
	return true
}
