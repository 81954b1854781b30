package entity

import (
	"github.com/jakecoffman/cp"

	"github.com/younwookim/behave/internal/domain/clock"
)

// Projectile represents a gunner's shot
type Projectile struct {
	Body      Kinematics
	Direction cp.Vector
	Speed     float64
	Damage    int
	Active    bool

	life clock.Timer
}

// NewProjectile creates a projectile at origin heading along dir.
// A zero dir falls back to +X.
func NewProjectile(origin, dir, size cp.Vector, speed float64, damage int, lifetime float64) *Projectile {
	if dir.LengthSq() == 0 {
		dir = cp.Vector{X: 1}
	}
	p := &Projectile{
		Body: Kinematics{
			Pos:   origin,
			Size:  size,
			Mass:  1,
			Layer: LayerTrap,
		},
		Direction: dir.Normalize(),
		Speed:     speed,
		Damage:    damage,
		Active:    true,
	}
	p.Body.Vel = p.Direction.Mult(speed)
	p.life.Start(lifetime)
	return p
}

// Step returns the displacement for this tick without applying it
func (p *Projectile) Step(dt float64) cp.Vector {
	return p.Body.Vel.Mult(dt)
}

// Update moves the projectile and expires it when its lifetime runs out
func (p *Projectile) Update(dt float64) {
	if !p.Active {
		return
	}
	p.Body.Pos = p.Body.Pos.Add(p.Step(dt))
	if p.life.Tick(dt) {
		p.Deactivate()
	}
}

// Deactivate removes the projectile
func (p *Projectile) Deactivate() {
	p.Active = false
	p.life.Cancel()
	p.Body.Removed = true
}
