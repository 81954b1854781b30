package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/younwookim/behave/internal/domain/entity"
	"github.com/younwookim/behave/internal/infrastructure/config"
)

// groundProbe is how far below the feet the ground check reaches
const groundProbe = 0.1

// InputSystem handles player input
type InputSystem struct {
	config *config.PhysicsConfig
	player config.PlayerConfig
	probe  Probe
}

// NewInputSystem creates a new input system
func NewInputSystem(cfg *config.PhysicsConfig, player config.PlayerConfig, probe Probe) *InputSystem {
	return &InputSystem{
		config: cfg,
		player: player,
		probe:  probe,
	}
}

// InputState holds the current input state
type InputState struct {
	Left        bool
	Right       bool
	Jump        bool
	JumpPressed bool
	Attack      bool
}

// GetInput reads the current input state
func (s *InputSystem) GetInput() InputState {
	return InputState{
		Left:        ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		Right:       ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		Jump:        ebiten.IsKeyPressed(ebiten.KeyW),
		JumpPressed: inpututil.IsKeyJustPressed(ebiten.KeyW) || inpututil.IsKeyJustPressed(ebiten.KeySpace),
		Attack:      inpututil.IsKeyJustPressed(ebiten.KeyJ),
	}
}

// UpdatePlayer applies input to the avatar. When the input attacks it
// returns the strike area in front of the avatar.
func (s *InputSystem) UpdatePlayer(a *entity.Avatar, input InputState, dt float64) (entity.Rect, bool) {
	a.Update(dt)
	a.Grounded = s.grounded(a)

	if !a.IsAlive() {
		a.Body.Vel.X = 0
		return entity.Rect{}, false
	}

	s.handleMovement(a, input)
	s.handleJump(a, input)

	if !input.Attack {
		return entity.Rect{}, false
	}
	return s.attackArea(a), true
}

func (s *InputSystem) grounded(a *entity.Avatar) bool {
	radius := s.config.Behavior.ProbeRadius
	reach := a.Body.Size.Y/2 - radius + groundProbe + s.config.Behavior.ContactTolerance
	return s.probe.CircleCast(a.Body.Pos, radius, down, reach, entity.LayerPlatform)
}

// handleMovement handles horizontal movement
func (s *InputSystem) handleMovement(a *entity.Avatar, input InputState) {
	targetVX := 0.0
	maxSpeed := s.config.Movement.MaxSpeed

	if input.Left {
		targetVX = -maxSpeed
		a.Facing = -1
	}
	if input.Right {
		targetVX = maxSpeed
		a.Facing = 1
	}
	a.Body.Vel.X = targetVX
}

// handleJump handles jumping
func (s *InputSystem) handleJump(a *entity.Avatar, input InputState) {
	if input.JumpPressed && a.Grounded {
		a.Body.Vel.Y = -s.config.Movement.JumpSpeed
		a.Grounded = false
	}
}

// attackArea is a reach-wide box beside the avatar on its facing side
func (s *InputSystem) attackArea(a *entity.Avatar) entity.Rect {
	b := a.Bounds()
	reach := s.player.AttackReach
	x := b.X + b.W
	if a.Facing < 0 {
		x = b.X - reach
	}
	return entity.Rect{X: x, Y: b.Y, W: reach, H: b.H}
}
