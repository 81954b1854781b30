package system

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/jakecoffman/cp"
	"github.com/sirupsen/logrus"

	"github.com/younwookim/behave/internal/domain/entity"
	"github.com/younwookim/behave/internal/infrastructure/config"
	"github.com/younwookim/behave/internal/infrastructure/logger"
)

var (
	ErrUnknownEnemy      = errors.New("unknown enemy type")
	ErrUnknownProjectile = errors.New("unknown projectile")
	ErrUnboundSwitch     = errors.New("switch target not found")
)

// playerID is the contact id of the player; spawned entities start at 1
const playerID entity.EntityID = 0

var down = cp.Vector{X: 0, Y: 1}

// Probe answers the shape queries behaviors need from the physics space
type Probe interface {
	CircleCast(origin cp.Vector, radius float64, dir cp.Vector, distance float64, mask entity.Layer) bool
}

type contactKey struct {
	a, b entity.EntityID
}

// BehaviorSystem ticks every enemy, trap and projectile of a stage
type BehaviorSystem struct {
	config *config.GameConfig
	probe  Probe
	rng    *rand.Rand

	gunners     []*entity.Gunner
	patrols     []*entity.Patrol
	projectiles []*entity.Projectile
	movingTraps []*entity.MovingTrap
	deadly      []*entity.Deadly
	obstacles   []*entity.Obstacle
	switches    []*entity.Switch

	trapsByName     map[string]*entity.MovingTrap
	obstaclesByName map[string]*entity.Obstacle

	contacts map[contactKey]bool
	nextID   entity.EntityID

	// Event callbacks
	OnSpawn           func(k *entity.Kinematics)
	OnObstacleRemoved func(o *entity.Obstacle)
	OnEnemyDeath      func(e *entity.Enemy)
}

// NewBehaviorSystem creates a behavior system
func NewBehaviorSystem(cfg *config.GameConfig, probe Probe, rng *rand.Rand) *BehaviorSystem {
	return &BehaviorSystem{
		config:          cfg,
		probe:           probe,
		rng:             rng,
		gunners:         make([]*entity.Gunner, 0, 16),
		patrols:         make([]*entity.Patrol, 0, 16),
		projectiles:     make([]*entity.Projectile, 0, 32),
		trapsByName:     make(map[string]*entity.MovingTrap),
		obstaclesByName: make(map[string]*entity.Obstacle),
		contacts:        make(map[contactKey]bool),
	}
}

func (s *BehaviorSystem) newID() entity.EntityID {
	s.nextID++
	return s.nextID
}

func (s *BehaviorSystem) spawned(k *entity.Kinematics) {
	if s.OnSpawn != nil {
		s.OnSpawn(k)
	}
}

// SpawnEnemy spawns an enemy from its template
func (s *BehaviorSystem) SpawnEnemy(spawn config.EnemySpawnConfig) (entity.EntityID, error) {
	enemyCfg, ok := s.config.Entities.Enemies[spawn.Type]
	if !ok {
		return 0, fmt.Errorf("failed to spawn %q: %w", spawn.Type, ErrUnknownEnemy)
	}

	id := s.newID()
	pos := cp.Vector{X: spawn.X, Y: spawn.Y}
	size := vec(enemyCfg.Size)

	var base *entity.Enemy
	switch enemyCfg.Kind {
	case config.KindGunner:
		if _, ok := s.config.Entities.Projectiles[enemyCfg.Gunner.Projectile]; !ok {
			return 0, fmt.Errorf("failed to spawn %q: %w %q", spawn.Type, ErrUnknownProjectile, enemyCfg.Gunner.Projectile)
		}
		g := entity.NewGunner(id, spawn.Type, pos, size, enemyCfg.Health)
		g.ShootInterval = enemyCfg.Gunner.ShootInterval
		g.Windup = enemyCfg.Gunner.Windup
		if g.Windup <= 0 {
			g.Windup = s.config.Physics.Behavior.Windup
		}
		g.Projectile = enemyCfg.Gunner.Projectile
		s.gunners = append(s.gunners, g)
		base = &g.Enemy
	case config.KindPatrol:
		p := entity.NewPatrol(id, spawn.Type, pos, size, enemyCfg.Health)
		p.WalkSpeed = enemyCfg.Patrol.WalkSpeed
		p.EdgeSafeDistance = enemyCfg.Patrol.EdgeSafeDistance
		p.IntervalMin = enemyCfg.Patrol.BehaveInterval.Least
		p.IntervalMax = enemyCfg.Patrol.BehaveInterval.Most
		s.patrols = append(s.patrols, p)
		base = &p.Enemy
	default:
		return 0, fmt.Errorf("failed to spawn %q: %w", spawn.Type, ErrUnknownEnemy)
	}

	if enemyCfg.Mass > 0 {
		base.Body.Mass = enemyCfg.Mass
	}
	base.DetectDistance = enemyCfg.DetectDistance
	base.DamageToPlayer = enemyCfg.DamageToPlayer
	base.HurtRecoil = vec(enemyCfg.HurtRecoil)
	base.HurtRecoilTime = enemyCfg.HurtRecoilTime
	base.DeathForce = vec(enemyCfg.DeathForce)
	base.DestroyDelay = enemyCfg.DestroyDelay
	if spawn.Facing < 0 {
		base.Facing = -1
	}

	s.spawned(&base.Body)
	return id, nil
}

// AddMovingTrap adds a moving trap; a named trap can be bound to a switch
func (s *BehaviorSystem) AddMovingTrap(cfg config.MovingTrapConfig) *entity.MovingTrap {
	area := rect(cfg.Rect)
	axis := entity.AxisHorizontal
	if cfg.Axis == "vertical" {
		axis = entity.AxisVertical
	}

	m := entity.NewMovingTrap(s.newID(), area.Center(), cp.Vector{X: area.W, Y: area.H}, cfg.Speed, cfg.Limit, axis)
	m.Dormant = cfg.Dormant
	m.Drag = cfg.Drag
	s.movingTraps = append(s.movingTraps, m)
	if cfg.ID != "" {
		s.trapsByName[cfg.ID] = m
	}

	s.spawned(&m.Body)
	return m
}

// AddDeadly adds an instant-kill area
func (s *BehaviorSystem) AddDeadly(area entity.Rect) *entity.Deadly {
	d := &entity.Deadly{ID: s.newID(), Area: area}
	s.deadly = append(s.deadly, d)
	return d
}

// AddObstacle adds a removable block
func (s *BehaviorSystem) AddObstacle(cfg config.ObstacleConfig) *entity.Obstacle {
	o := &entity.Obstacle{
		ID:   s.newID(),
		Name: cfg.ID,
		Area: rect(cfg.Rect),
		OnDestroy: func(o *entity.Obstacle) {
			logger.Log.WithFields(logrus.Fields{"obstacle": o.Name}).Info("obstacle removed")
			if s.OnObstacleRemoved != nil {
				s.OnObstacleRemoved(o)
			}
		},
	}
	s.obstacles = append(s.obstacles, o)
	if cfg.ID != "" {
		s.obstaclesByName[cfg.ID] = o
	}
	return o
}

// AddSwitch adds a switch bound by name to an obstacle and a trap.
// Either name may be empty; a name that does not resolve is an error.
func (s *BehaviorSystem) AddSwitch(cfg config.SwitchConfig) (*entity.Switch, error) {
	sw := entity.NewSwitch(s.newID(), rect(cfg.Rect), nil, nil)

	if cfg.Obstacle != "" {
		o, ok := s.obstaclesByName[cfg.Obstacle]
		if !ok {
			return nil, fmt.Errorf("failed to bind obstacle %q: %w", cfg.Obstacle, ErrUnboundSwitch)
		}
		sw.Obstacle = o
	}
	if cfg.Trap != "" {
		m, ok := s.trapsByName[cfg.Trap]
		if !ok {
			return nil, fmt.Errorf("failed to bind trap %q: %w", cfg.Trap, ErrUnboundSwitch)
		}
		sw.Trap = m
	}

	s.switches = append(s.switches, sw)
	return sw, nil
}

// Update runs one tick of every behavior against the player
func (s *BehaviorSystem) Update(player entity.Player, dt float64) {
	s.updateTraps(player, dt)
	s.updateEnemies(player, dt)
	s.updateProjectiles(player, dt)
	s.checkContacts(player)
	s.prune()
}

func (s *BehaviorSystem) updateTraps(player entity.Player, dt float64) {
	tol := s.config.Physics.Behavior.ContactTolerance
	pb := player.Bounds().Expand(tol)

	for _, m := range s.movingTraps {
		m.Update(dt)
		if m.Drag && m.Axis == entity.AxisHorizontal && !m.Dormant && pb.Overlaps(m.Body.Bounds()) {
			player.Nudge(m.Speed * dt)
		}
	}
}

func (s *BehaviorSystem) updateEnemies(player entity.Player, dt float64) {
	behaviorCfg := s.config.Physics.Behavior
	target := player.Position()

	for _, p := range s.patrols {
		grounded := s.probe.CircleCast(p.ProbeOrigin(), behaviorCfg.ProbeRadius, down, behaviorCfg.ProbeDistance, entity.LayerPlatform)
		p.Update(entity.Senses{
			Player:   target,
			Grounded: grounded,
			Deadband: behaviorCfg.ChaseDeadband,
		}, s.rng, dt)
	}

	for _, g := range s.gunners {
		shot, fired := g.Update(entity.Senses{Player: target}, dt)
		if fired {
			s.spawnProjectile(shot)
		}
	}
}

func (s *BehaviorSystem) spawnProjectile(shot entity.Shot) {
	projCfg, ok := s.config.Entities.Projectiles[shot.Projectile]
	if !ok {
		logger.Log.WithFields(logrus.Fields{"projectile": shot.Projectile}).Warn("shot with unknown projectile")
		return
	}

	proj := entity.NewProjectile(shot.Origin, shot.Direction, vec(projCfg.Size), projCfg.Speed, projCfg.Damage, projCfg.Lifetime)
	s.projectiles = append(s.projectiles, proj)
	logger.Log.WithFields(logrus.Fields{
		"projectile": shot.Projectile,
		"x":          shot.Origin.X,
		"y":          shot.Origin.Y,
	}).Debug("projectile spawned")
}

func (s *BehaviorSystem) updateProjectiles(player entity.Player, dt float64) {
	for _, proj := range s.projectiles {
		if !proj.Active {
			continue
		}

		step := proj.Step(dt)
		if dist := step.Length(); dist > 0 &&
			s.probe.CircleCast(proj.Body.Pos, proj.Body.Size.X/2, step, dist, entity.LayerPlatform) {
			proj.Deactivate()
			continue
		}

		proj.Update(dt)
		if proj.Active && proj.Body.Bounds().Overlaps(player.Bounds()) {
			player.Hurt(proj.Damage)
			proj.Deactivate()
		}
	}
}

// checkContacts fires contact-enter effects: enemy bodies hurt the player,
// deadly areas kill the player and enemies.
func (s *BehaviorSystem) checkContacts(player entity.Player) {
	tol := s.config.Physics.Behavior.ContactTolerance
	pb := player.Bounds().Expand(tol)
	current := make(map[contactKey]bool, len(s.contacts))

	enter := func(k contactKey) bool {
		current[k] = true
		return !s.contacts[k]
	}

	s.eachEnemy(func(e *entity.Enemy) {
		if !e.IsAlive() {
			return
		}
		if pb.Overlaps(e.Body.Bounds()) && enter(contactKey{e.ID, playerID}) {
			player.Hurt(e.DamageToPlayer)
		}
	})

	for _, d := range s.deadly {
		area := d.Area.Expand(tol)
		if area.Overlaps(player.Bounds()) && enter(contactKey{d.ID, playerID}) && player.Health() > 0 {
			player.Kill()
			logger.Log.WithFields(logrus.Fields{"deadly": d.ID}).Info("player killed by hazard")
		}
		s.eachEnemy(func(e *entity.Enemy) {
			if !e.IsAlive() || !area.Overlaps(e.Body.Bounds()) {
				return
			}
			if enter(contactKey{d.ID, e.ID}) && e.Kill() {
				s.enemyDied(e)
			}
		})
	}

	s.contacts = current
}

// Strike applies a player attack to enemies and switches in area and
// returns how many things it hit.
func (s *BehaviorSystem) Strike(area entity.Rect, damage int) int {
	hits := 0
	s.eachEnemy(func(e *entity.Enemy) {
		if !e.IsAlive() || !area.Overlaps(e.Body.Bounds()) {
			return
		}
		hits++
		if e.Damage(damage) {
			s.enemyDied(e)
		}
	})

	for _, sw := range s.switches {
		if sw.Layer == entity.LayerDecoration || !area.Overlaps(sw.Area) {
			continue
		}
		if sw.TurnOn() {
			hits++
			logger.Log.WithFields(logrus.Fields{"switch": sw.ID}).Info("switch turned on")
		}
	}
	return hits
}

func (s *BehaviorSystem) enemyDied(e *entity.Enemy) {
	logger.Log.WithFields(logrus.Fields{
		"enemy": e.ID,
		"kind":  e.Kind,
	}).Info("enemy died")
	if s.OnEnemyDeath != nil {
		s.OnEnemyDeath(e)
	}
}

func (s *BehaviorSystem) eachEnemy(fn func(e *entity.Enemy)) {
	for _, g := range s.gunners {
		fn(&g.Enemy)
	}
	for _, p := range s.patrols {
		fn(&p.Enemy)
	}
}

// prune drops removed enemies and spent projectiles
func (s *BehaviorSystem) prune() {
	gunners := s.gunners[:0]
	for _, g := range s.gunners {
		if !g.IsRemoved() {
			gunners = append(gunners, g)
		}
	}
	s.gunners = gunners

	patrols := s.patrols[:0]
	for _, p := range s.patrols {
		if !p.IsRemoved() {
			patrols = append(patrols, p)
		}
	}
	s.patrols = patrols

	projectiles := s.projectiles[:0]
	for _, proj := range s.projectiles {
		if proj.Active {
			projectiles = append(projectiles, proj)
		}
	}
	s.projectiles = projectiles
}

// Gunners returns the live gunners
func (s *BehaviorSystem) Gunners() []*entity.Gunner {
	return s.gunners
}

// Patrols returns the live patrol enemies
func (s *BehaviorSystem) Patrols() []*entity.Patrol {
	return s.patrols
}

// Enemies returns the shared state of every enemy
func (s *BehaviorSystem) Enemies() []*entity.Enemy {
	enemies := make([]*entity.Enemy, 0, len(s.gunners)+len(s.patrols))
	s.eachEnemy(func(e *entity.Enemy) {
		enemies = append(enemies, e)
	})
	return enemies
}

// GetProjectiles returns all active projectiles
func (s *BehaviorSystem) GetProjectiles() []*entity.Projectile {
	return s.projectiles
}

// MovingTraps returns the moving traps
func (s *BehaviorSystem) MovingTraps() []*entity.MovingTrap {
	return s.movingTraps
}

// DeadlyAreas returns the instant-kill areas
func (s *BehaviorSystem) DeadlyAreas() []*entity.Deadly {
	return s.deadly
}

// Obstacles returns every obstacle, destroyed or not
func (s *BehaviorSystem) Obstacles() []*entity.Obstacle {
	return s.obstacles
}

// Switches returns the switches
func (s *BehaviorSystem) Switches() []*entity.Switch {
	return s.switches
}

func vec(v config.Vec2) cp.Vector {
	return cp.Vector{X: v.X, Y: v.Y}
}

func rect(r config.RectConfig) entity.Rect {
	return entity.Rect{X: r.X, Y: r.Y, W: r.W, H: r.H}
}
