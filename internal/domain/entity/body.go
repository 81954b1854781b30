package entity

import (
	"github.com/jakecoffman/cp"

	"github.com/younwookim/behave/internal/domain/clock"
)

// Kinematics is the physical state of an actor shared with the physics space.
// Pos is the center of the box.
type Kinematics struct {
	Pos  cp.Vector
	Vel  cp.Vector
	Size cp.Vector
	Mass float64

	Layer   Layer
	Dynamic bool // gravity and collision response apply
	Removed bool
}

// Bounds returns the world box
func (k *Kinematics) Bounds() Rect {
	return RectAround(k.Pos, k.Size)
}

// ApplyImpulse changes velocity by j/mass
func (k *Kinematics) ApplyImpulse(j cp.Vector) {
	m := k.Mass
	if m <= 0 {
		m = 1
	}
	k.Vel = k.Vel.Add(j.Mult(1 / m))
}

// Player is the handle behaviors use to read and affect the player.
type Player interface {
	Position() cp.Vector
	Bounds() Rect
	Health() int
	// Hurt applies damage, subject to the player's own invulnerability
	Hurt(damage int)
	// Kill drops health to zero regardless of invulnerability
	Kill()
	// Nudge shifts the player horizontally, used by drag platforms
	Nudge(dx float64)
}

// Avatar is the demo player controller's state.
type Avatar struct {
	Body      Kinematics
	MaxHealth int
	Facing    int
	Grounded  bool

	IframeTime float64

	health  int
	iframes clock.Timer
}

// NewAvatar creates a player at pos with full health
func NewAvatar(pos, size cp.Vector, maxHealth int, iframeTime float64) *Avatar {
	return &Avatar{
		Body: Kinematics{
			Pos:     pos,
			Size:    size,
			Mass:    1,
			Layer:   LayerPlayer,
			Dynamic: true,
		},
		MaxHealth:  maxHealth,
		Facing:     1,
		IframeTime: iframeTime,
		health:     maxHealth,
	}
}

// Position returns the center position
func (a *Avatar) Position() cp.Vector {
	return a.Body.Pos
}

// Bounds returns the world box
func (a *Avatar) Bounds() Rect {
	return a.Body.Bounds()
}

// Health returns the current health
func (a *Avatar) Health() int {
	return a.health
}

// IsAlive returns true while health remains
func (a *Avatar) IsAlive() bool {
	return a.health > 0
}

// IsInvincible returns true during post-hit invulnerability
func (a *Avatar) IsInvincible() bool {
	return a.iframes.Active()
}

// Hurt applies damage unless invulnerable
func (a *Avatar) Hurt(damage int) {
	if !a.IsAlive() || a.iframes.Active() || damage <= 0 {
		return
	}
	a.health -= damage
	if a.health < 0 {
		a.health = 0
	}
	a.iframes.Start(a.IframeTime)
}

// Kill sets health to zero
func (a *Avatar) Kill() {
	a.health = 0
	a.iframes.Cancel()
}

// Nudge moves the avatar horizontally by dx
func (a *Avatar) Nudge(dx float64) {
	a.Body.Pos.X += dx
}

// Update advances the avatar's timers
func (a *Avatar) Update(dt float64) {
	a.iframes.Tick(dt)
}

// Respawn restores health at pos
func (a *Avatar) Respawn(pos cp.Vector) {
	a.Body.Pos = pos
	a.Body.Vel = cp.Vector{}
	a.health = a.MaxHealth
	a.iframes.Cancel()
}
