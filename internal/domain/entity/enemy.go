package entity

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/younwookim/behave/internal/domain/behavior"
	"github.com/younwookim/behave/internal/domain/clock"
)

// Animation triggers
const (
	TriggerAttack = "attack"
	TriggerDead   = "isDead"
)

// Animation carries hints for the renderer
type Animation struct {
	Trigger string
	Speed   float64
}

// Enemy is the state shared by every enemy kind
type Enemy struct {
	ID   EntityID
	Kind string
	Body Kinematics

	MaxHealth      int
	Health         int
	DetectDistance float64
	DamageToPlayer int
	HurtRecoil     cp.Vector
	HurtRecoilTime float64
	DeathForce     cp.Vector
	DestroyDelay   float64

	// Facing is +1 (right) or -1 (left)
	Facing int
	Alpha  float64
	Anim   Animation

	recoil clock.Timer
	fade   clock.Timer
	dead   bool

	// onDeath lets a kind drop its own pending work
	onDeath func()
}

func newEnemy(id EntityID, kind string, pos, size cp.Vector, health int) Enemy {
	return Enemy{
		ID:   id,
		Kind: kind,
		Body: Kinematics{
			Pos:   pos,
			Size:  size,
			Mass:  1,
			Layer: LayerEnemy,
		},
		MaxHealth: health,
		Health:    health,
		Facing:    1,
		Alpha:     1,
	}
}

// IsAlive returns true until the enemy has died
func (e *Enemy) IsAlive() bool {
	return !e.dead
}

// IsRemoved returns true once the death fade has finished
func (e *Enemy) IsRemoved() bool {
	return e.Body.Removed
}

// Recoiling returns true while a hurt recoil is pending
func (e *Enemy) Recoiling() bool {
	return e.recoil.Active()
}

// Damage applies damage and returns true if it killed the enemy.
// Health is floored at zero and a dead enemy ignores further damage.
func (e *Enemy) Damage(d int) bool {
	if e.dead {
		return false
	}
	if d < 0 {
		d = 0
	}

	e.Health -= d
	if e.Health <= 0 {
		e.Health = 0
		e.die()
		return true
	}

	e.Body.Vel = cp.Vector{X: e.HurtRecoil.X * float64(e.Facing), Y: e.HurtRecoil.Y}
	e.recoil.Start(e.HurtRecoilTime)
	return false
}

// Kill drops the enemy regardless of its remaining health.
func (e *Enemy) Kill() bool {
	if e.dead {
		return false
	}
	e.Health = 0
	e.die()
	return true
}

func (e *Enemy) die() {
	e.dead = true
	e.recoil.Cancel()
	if e.onDeath != nil {
		e.onDeath()
	}

	e.Anim.Trigger = TriggerDead
	e.Anim.Speed = 0
	e.Body.Vel = cp.Vector{}
	e.Body.Layer = LayerDecoration
	e.Body.Dynamic = true
	e.Body.ApplyImpulse(cp.Vector{X: float64(e.Facing) * e.DeathForce.X, Y: e.DeathForce.Y})
	e.fade.Start(e.DestroyDelay)
}

// tickTimers advances recoil and the death fade
func (e *Enemy) tickTimers(dt float64) {
	if e.recoil.Tick(dt) {
		e.Body.Vel = cp.Vector{}
	}

	if !e.dead || e.Body.Removed {
		return
	}
	if e.fade.Tick(dt) {
		e.Alpha = 0
		e.Body.Removed = true
		return
	}
	if e.DestroyDelay > 0 {
		e.Alpha = math.Max(0, e.fade.Remaining()/e.DestroyDelay)
	}
}

// face turns toward dir while alive
func (e *Enemy) face(dir int) {
	if e.dead || dir == 0 {
		return
	}
	e.Facing = dir
}

// Senses is what an enemy perceives this tick
type Senses struct {
	Player cp.Vector
	// Grounded is the edge probe result ahead of the enemy
	Grounded bool
	Deadband float64
}

// Shot is a projectile request from a gunner
type Shot struct {
	Origin     cp.Vector
	Direction  cp.Vector
	Projectile string
}

// Gunner stands still and fires at the player once in range
type Gunner struct {
	Enemy
	State behavior.State

	ShootInterval float64
	Windup        float64
	Projectile    string

	shootable bool
	aim       cp.Vector
	windup    clock.Timer
	reload    clock.Timer
}

// NewGunner creates a gunner ready to shoot
func NewGunner(id EntityID, kind string, pos, size cp.Vector, health int) *Gunner {
	g := &Gunner{
		Enemy:     newEnemy(id, kind, pos, size, health),
		State:     behavior.Idle,
		shootable: true,
	}
	g.onDeath = func() {
		g.windup.Cancel()
		g.reload.Cancel()
	}
	return g
}

// Shootable returns true when no shot is winding up or reloading
func (g *Gunner) Shootable() bool {
	return g.shootable
}

// Update runs one tick and returns a shot when a windup completes.
func (g *Gunner) Update(s Senses, dt float64) (Shot, bool) {
	g.tickTimers(dt)

	if g.reload.Tick(dt) {
		g.shootable = true
	}
	var shot Shot
	fired := false
	if g.windup.Tick(dt) {
		shot = Shot{Origin: g.Body.Pos, Direction: g.aim, Projectile: g.Projectile}
		fired = true
		g.reload.Start(g.ShootInterval)
	}

	distance := s.Player.X - g.Body.Pos.X
	g.face(behavior.Sign(distance))

	var act behavior.Action
	g.State, act = behavior.StepGunner(g.State, behavior.Context{
		Distance:       distance,
		DetectDistance: g.DetectDistance,
		Actionable:     g.IsAlive(),
	})
	if act.Shoot && g.shootable {
		g.Anim.Trigger = TriggerAttack
		g.shootable = false
		g.aim = s.Player.Sub(g.Body.Pos)
		g.windup.Start(g.Windup)
	}

	return shot, fired
}

// Patrol wanders its platform and chases the player in range
type Patrol struct {
	Enemy
	Mind behavior.Mind

	WalkSpeed        float64
	EdgeSafeDistance float64
	IntervalMin      float64
	IntervalMax      float64

	// ReachEdge is the side the edge probe found open, 0 when grounded
	ReachEdge int
}

// NewPatrol creates a patrol enemy
func NewPatrol(id EntityID, kind string, pos, size cp.Vector, health int) *Patrol {
	p := &Patrol{
		Enemy: newEnemy(id, kind, pos, size, health),
		Mind:  behavior.NewMind(),
	}
	p.Body.Dynamic = true
	return p
}

// Actionable returns false while recoiling or dead
func (p *Patrol) Actionable() bool {
	return p.IsAlive() && !p.recoil.Active()
}

// ProbeOrigin returns where the edge probe starts
func (p *Patrol) ProbeOrigin() cp.Vector {
	return p.Body.Pos.Add(cp.Vector{X: p.EdgeSafeDistance * float64(p.Facing)})
}

// Update runs one tick of the patrol enemy.
func (p *Patrol) Update(s Senses, roll behavior.Roller, dt float64) {
	p.tickTimers(dt)

	distance := s.Player.X - p.Body.Pos.X
	p.ReachEdge = behavior.ReachEdge(s.Grounded, p.Facing)

	var act behavior.Action
	p.Mind, act = behavior.StepPatrol(p.Mind, behavior.Context{
		Distance:       distance,
		DetectDistance: p.DetectDistance,
		ReachEdge:      p.ReachEdge,
		Deadband:       s.Deadband,
		DT:             dt,
		Actionable:     p.Actionable(),
		DwellMin:       p.IntervalMin,
		DwellMax:       p.IntervalMax,
	}, roll)

	if act.Walks {
		p.walk(act.Walk)
	}
}

func (p *Patrol) walk(move float64) {
	dir := behavior.Sign(move)
	speed := behavior.EdgeGuard(dir, p.ReachEdge, p.WalkSpeed)
	p.face(dir)
	p.Body.Vel.X = speed
	p.Anim.Speed = math.Abs(speed)
}
