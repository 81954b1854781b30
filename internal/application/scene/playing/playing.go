// Package playing provides the main gameplay scene.
package playing

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/jakecoffman/cp"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/font/basicfont"

	"github.com/younwookim/behave/internal/application/replay"
	"github.com/younwookim/behave/internal/application/scene"
	"github.com/younwookim/behave/internal/application/state"
	"github.com/younwookim/behave/internal/application/system"
	"github.com/younwookim/behave/internal/domain/entity"
	"github.com/younwookim/behave/internal/infrastructure/config"
	"github.com/younwookim/behave/internal/infrastructure/logger"
	"github.com/younwookim/behave/internal/infrastructure/physics"
)

// Colors for rendering
var (
	colorPlatform  = color.RGBA{80, 80, 100, 255}
	colorSpike     = color.RGBA{200, 50, 50, 255}
	colorPlayer    = color.RGBA{100, 200, 100, 255}
	colorBG        = color.RGBA{26, 26, 46, 255}
	colorGunner    = color.RGBA{200, 100, 100, 255}
	colorPatrol    = color.RGBA{220, 150, 80, 255}
	colorBolt      = color.RGBA{255, 100, 100, 255}
	colorTrap      = color.RGBA{120, 160, 200, 255}
	colorDormant   = color.RGBA{80, 100, 130, 255}
	colorObstacle  = color.RGBA{150, 120, 70, 255}
	colorSwitchOff = color.RGBA{220, 200, 60, 255}
	colorSwitchOn  = color.RGBA{60, 200, 60, 255}
	colorExit      = color.RGBA{255, 215, 0, 255}
	colorHealthBG  = color.RGBA{60, 60, 60, 255}
	colorHealthFG  = color.RGBA{100, 200, 100, 255}
)

// StageSource loads stage configs by name
type StageSource interface {
	LoadStage(name string) (*config.StageConfig, error)
}

// Options configure a Playing scene
type Options struct {
	// Seed drives every random roll; zero picks one from the clock
	Seed int64
	// RecordPath enables input recording when set
	RecordPath string
	// Replayer feeds recorded input instead of the keyboard
	Replayer *replay.Replayer
	// Stages loads target stages and reloads the current one
	Stages StageSource
	// Reloads delivers paths of changed config files
	Reloads <-chan string
}

// Playing is the main gameplay scene
type Playing struct {
	config         *config.GameConfig
	stageCfg       *config.StageConfig
	stage          *entity.Stage
	state          state.GameState
	player         *entity.Avatar
	world          *physics.World
	inputSystem    *system.InputSystem
	behaviorSystem *system.BehaviorSystem
	screenW        int
	screenH        int
	ppu            float64

	// exit is the spawn point that cleared the stage
	exit entity.SpawnPoint

	// Deterministic RNG
	rng  *rand.Rand
	seed int64

	opts       Options
	recorder   *Recorder
	replayDone bool
}

// New creates a new Playing scene for stageCfg.
func New(cfg *config.GameConfig, stageCfg *config.StageConfig, opts Options) (*Playing, error) {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	p := &Playing{
		config:  cfg,
		screenW: cfg.Physics.Display.ScreenWidth,
		screenH: cfg.Physics.Display.ScreenHeight,
		ppu:     float64(cfg.Physics.World.PixelsPerUnit),
		seed:    seed,
		opts:    opts,
	}
	if err := p.load(stageCfg); err != nil {
		return nil, err
	}

	if opts.RecordPath != "" {
		p.recorder = NewRecorder(seed, stageCfg.ID)
		logger.Log.WithFields(logrus.Fields{
			"path": opts.RecordPath,
			"seed": seed,
		}).Info("recording enabled")
	}

	return p, nil
}

// load builds the stage, its physics world and its behaviors from scratch.
// The scene is left untouched when it fails.
func (p *Playing) load(stageCfg *config.StageConfig) error {
	stage := system.LoadStage(stageCfg)
	rng := rand.New(rand.NewSource(p.seed))

	world := physics.NewWorld(p.config.Physics.World.Gravity)
	world.AddPlatforms(stage.SolidRuns())

	behaviors := system.NewBehaviorSystem(p.config, world, rng)
	behaviors.OnSpawn = world.Track
	behaviors.OnObstacleRemoved = func(o *entity.Obstacle) {
		world.RemoveObstacle(o.ID)
	}
	if err := behaviors.Populate(stageCfg, stage); err != nil {
		return err
	}
	for _, o := range behaviors.Obstacles() {
		world.AddObstacle(o.ID, o.Area)
	}

	playerCfg := p.config.Entities.Player
	size := cp.Vector{X: playerCfg.Size.X, Y: playerCfg.Size.Y}
	player := entity.NewAvatar(stage.Spawn, size, playerCfg.MaxHealth, playerCfg.Iframes)
	world.Track(&player.Body)

	p.stageCfg = stageCfg
	p.stage = stage
	p.rng = rng
	p.world = world
	p.behaviorSystem = behaviors
	p.inputSystem = system.NewInputSystem(p.config.Physics, playerCfg, world)
	p.player = player
	p.state = state.StatePlaying
	p.exit = entity.SpawnPoint{}
	return nil
}

// Update proceeds the game state (implements scene.Scene)
func (p *Playing) Update(dt float64) (scene.Scene, error) {
	p.drainReloads()

	switch p.state {
	case state.StatePlaying:
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			p.state = state.StatePaused
			return nil, nil
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
			p.saveRecording()
		}
		p.Tick(p.readInput(), dt)
	case state.StatePaused:
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			p.state = state.StatePlaying
		}
	case state.StateGameOver:
		if inpututil.IsKeyJustPressed(ebiten.KeyZ) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
			p.restart()
		}
	case state.StateStageClear:
		return p.nextStage(), nil
	}

	return nil, nil // nil = stay on this scene
}

// Tick runs one frame of gameplay with the given input
func (p *Playing) Tick(input system.InputState, dt float64) {
	if p.recorder != nil {
		p.recorder.RecordFrame(input)
	}

	if area, ok := p.inputSystem.UpdatePlayer(p.player, input, dt); ok {
		p.behaviorSystem.Strike(area, p.config.Entities.Player.AttackDamage)
	}
	p.behaviorSystem.Update(p.player, dt)
	p.world.Step(dt)

	if !p.player.IsAlive() {
		p.state = state.StateGameOver
		logger.Log.WithFields(logrus.Fields{"stage": p.stageCfg.ID}).Info("player died")
		p.saveRecording()
		return
	}

	if sp, ok := p.reachedExit(); ok {
		p.exit = sp
		p.state = state.StateStageClear
		logger.Log.WithFields(logrus.Fields{
			"stage":  p.stageCfg.ID,
			"target": sp.TargetScene,
		}).Info("stage cleared")
	}
}

func (p *Playing) readInput() system.InputState {
	if p.opts.Replayer == nil {
		return p.inputSystem.GetInput()
	}

	if p.opts.Replayer.Done() {
		if !p.replayDone {
			p.replayDone = true
			logger.Log.WithFields(logrus.Fields{"frames": p.opts.Replayer.TotalFrames()}).Info("replay finished")
		}
		return system.InputState{}
	}

	in, _ := p.opts.Replayer.GetInput()
	return system.InputState{
		Left:        in.Left,
		Right:       in.Right,
		Jump:        in.Jump,
		JumpPressed: in.JumpPressed,
		Attack:      in.Attack,
	}
}

// reachedExit returns the first spawn point with a target scene that the
// player is touching
func (p *Playing) reachedExit() (entity.SpawnPoint, bool) {
	bounds := p.player.Bounds()
	for _, sp := range p.stage.SpawnPoints {
		if sp.TargetScene == "" {
			continue
		}
		if bounds.Overlaps(entity.Rect{X: sp.Pos.X, Y: sp.Pos.Y}) {
			return sp, true
		}
	}
	return entity.SpawnPoint{}, false
}

// nextStage builds the scene for the exit's target stage. Without a stage
// source, or when the target fails to load, the current stage restarts.
func (p *Playing) nextStage() scene.Scene {
	if p.opts.Stages == nil {
		p.restart()
		return nil
	}

	stageCfg, err := p.opts.Stages.LoadStage(p.exit.TargetScene)
	if err != nil {
		logger.Log.WithError(err).WithField("target", p.exit.TargetScene).Error("failed to load next stage")
		p.restart()
		return nil
	}

	opts := p.opts
	opts.Seed = p.seed
	opts.RecordPath = ""
	next, err := New(p.config, stageCfg, opts)
	if err != nil {
		logger.Log.WithError(err).WithField("target", p.exit.TargetScene).Error("failed to build next stage")
		p.restart()
		return nil
	}
	return next
}

// drainReloads rebuilds the stage when its file changed on disk
func (p *Playing) drainReloads() {
	if p.opts.Reloads == nil || p.opts.Stages == nil {
		return
	}

	for {
		select {
		case path, ok := <-p.opts.Reloads:
			if !ok {
				p.opts.Reloads = nil
				return
			}
			if config.StageName(path) == p.stageCfg.ID {
				p.reload()
			}
		default:
			return
		}
	}
}

func (p *Playing) reload() {
	id := p.stageCfg.ID
	stageCfg, err := p.opts.Stages.LoadStage(id)
	if err == nil {
		err = p.load(stageCfg)
	}
	if err != nil {
		logger.Log.WithError(err).WithField("stage", id).Warn("stage reload failed, keeping current")
		return
	}
	logger.Log.WithFields(logrus.Fields{"stage": id}).Info("stage reloaded")
}

// saveRecording saves the current recording to file
func (p *Playing) saveRecording() {
	if p.recorder == nil {
		return
	}

	filename := p.opts.RecordPath
	if filename == "" {
		filename = GenerateFilename()
	}

	err := p.recorder.Save(filename)
	switch {
	case errors.Is(err, errNoFrames):
		return
	case err != nil:
		logger.Log.WithError(err).Error("failed to save recording")
	default:
		logger.Log.WithFields(logrus.Fields{
			"path":   filename,
			"frames": p.recorder.FrameCount(),
		}).Info("recording saved")
	}
}

func (p *Playing) restart() {
	// A replay must see the seed it was recorded with
	if p.opts.Replayer == nil {
		p.seed = time.Now().UnixNano()
	}

	if err := p.load(p.stageCfg); err != nil {
		logger.Log.WithError(err).Error("failed to restart stage")
		return
	}

	if p.opts.RecordPath != "" {
		p.recorder = NewRecorder(p.seed, p.stageCfg.ID)
		logger.Log.WithFields(logrus.Fields{"seed": p.seed}).Info("recording restarted")
	}
}

// Player returns the player avatar
func (p *Playing) Player() *entity.Avatar {
	return p.player
}

// State returns the scene state
func (p *Playing) State() state.GameState {
	return p.state
}

// Behaviors returns the stage's behavior system
func (p *Playing) Behaviors() *system.BehaviorSystem {
	return p.behaviorSystem
}

// Seed returns the RNG seed of the current run
func (p *Playing) Seed() int64 {
	return p.seed
}

// Draw renders the game screen
func (p *Playing) Draw(screen *ebiten.Image) {
	screen.Fill(colorBG)

	camX, camY := p.camera()

	p.drawTiles(screen, camX, camY)
	p.drawObstacles(screen, camX, camY)
	p.drawTraps(screen, camX, camY)
	p.drawExits(screen, camX, camY)
	p.drawEnemies(screen, camX, camY)
	p.drawProjectiles(screen, camX, camY)
	p.drawPlayer(screen, camX, camY)

	p.drawUI(screen)

	switch p.state {
	case state.StatePaused:
		p.drawOverlay(screen, color.RGBA{0, 0, 0, 128}, "PAUSED\n\nPress ESC to resume")
	case state.StateGameOver:
		p.drawOverlay(screen, color.RGBA{100, 0, 0, 180}, "GAME OVER\n\nPress Z to restart")
	case state.StateStageClear:
		p.drawOverlay(screen, color.RGBA{0, 60, 0, 160}, "STAGE CLEAR")
	}
}

// camera returns the top-left of the view in pixels, clamped to the stage
func (p *Playing) camera() (float64, float64) {
	camX := p.player.Body.Pos.X*p.ppu - float64(p.screenW)/2
	camY := p.player.Body.Pos.Y*p.ppu - float64(p.screenH)/2

	maxCamX := float64(p.stage.Width)*p.ppu - float64(p.screenW)
	maxCamY := float64(p.stage.Height)*p.ppu - float64(p.screenH)
	camX = math.Max(0, math.Min(camX, maxCamX))
	camY = math.Max(0, math.Min(camY, maxCamY))
	return camX, camY
}

func (p *Playing) fillRect(screen *ebiten.Image, r entity.Rect, camX, camY float64, c color.Color) {
	ebitenutil.DrawRect(screen, r.X*p.ppu-camX, r.Y*p.ppu-camY, r.W*p.ppu, r.H*p.ppu, c)
}

func (p *Playing) drawTiles(screen *ebiten.Image, camX, camY float64) {
	startX := int(camX / p.ppu)
	startY := int(camY / p.ppu)
	endX := int((camX+float64(p.screenW))/p.ppu) + 1
	endY := int((camY+float64(p.screenH))/p.ppu) + 1

	for ty := startY; ty <= endY && ty < p.stage.Height; ty++ {
		for tx := startX; tx <= endX && tx < p.stage.Width; tx++ {
			tile := p.stage.GetTile(tx, ty)

			var c color.Color
			switch tile.Type {
			case entity.TilePlatform:
				c = colorPlatform
			case entity.TileSpike:
				c = colorSpike
			default:
				continue
			}

			p.fillRect(screen, entity.Rect{X: float64(tx), Y: float64(ty), W: 1, H: 1}, camX, camY, c)
		}
	}
}

func (p *Playing) drawObstacles(screen *ebiten.Image, camX, camY float64) {
	for _, o := range p.behaviorSystem.Obstacles() {
		if o.Destroyed {
			continue
		}
		p.fillRect(screen, o.Area, camX, camY, colorObstacle)
	}

	for _, sw := range p.behaviorSystem.Switches() {
		c := colorSwitchOff
		if sw.On {
			c = colorSwitchOn
		}
		p.fillRect(screen, sw.Area, camX, camY, c)
	}
}

func (p *Playing) drawTraps(screen *ebiten.Image, camX, camY float64) {
	for _, m := range p.behaviorSystem.MovingTraps() {
		c := colorTrap
		if m.Dormant {
			c = colorDormant
		}
		p.fillRect(screen, m.Body.Bounds(), camX, camY, c)
	}
}

func (p *Playing) drawExits(screen *ebiten.Image, camX, camY float64) {
	for _, sp := range p.stage.SpawnPoints {
		if sp.TargetScene == "" {
			continue
		}
		p.fillRect(screen, entity.RectAround(sp.Pos, cp.Vector{X: 0.5, Y: 1}), camX, camY, colorExit)
	}
}

func (p *Playing) drawEnemies(screen *ebiten.Image, camX, camY float64) {
	for _, g := range p.behaviorSystem.Gunners() {
		p.fillRect(screen, g.Body.Bounds(), camX, camY, fade(colorGunner, g.Alpha))
	}
	for _, pt := range p.behaviorSystem.Patrols() {
		p.fillRect(screen, pt.Body.Bounds(), camX, camY, fade(colorPatrol, pt.Alpha))
	}
}

func (p *Playing) drawProjectiles(screen *ebiten.Image, camX, camY float64) {
	for _, proj := range p.behaviorSystem.GetProjectiles() {
		p.fillRect(screen, proj.Body.Bounds(), camX, camY, colorBolt)
	}
}

func (p *Playing) drawPlayer(screen *ebiten.Image, camX, camY float64) {
	c := colorPlayer
	// Flash when invincible
	if p.player.IsInvincible() && p.state.Running() && time.Now().UnixMilli()/100%2 == 0 {
		c = color.RGBA{255, 255, 255, 200}
	}
	p.fillRect(screen, p.player.Bounds(), camX, camY, c)
}

func (p *Playing) drawUI(screen *ebiten.Image) {
	face := basicfont.Face7x13

	// Health bar
	barX := 10.0
	barY := float64(p.screenH - 20)
	barW := 100.0
	barH := 10.0
	ebitenutil.DrawRect(screen, barX, barY, barW, barH, colorHealthBG)
	ratio := float64(p.player.Health()) / float64(max(p.player.MaxHealth, 1))
	ebitenutil.DrawRect(screen, barX, barY, barW*ratio, barH, colorHealthFG)

	status := fmt.Sprintf("%s  enemies %d", p.stage.Name, len(p.behaviorSystem.Enemies()))
	text.Draw(screen, status, face, int(barX+barW+10), int(barY+barH), color.White)

	hint := "A/D: Move | W: Jump | J: Attack | ESC: Pause"
	if r := p.opts.Replayer; r != nil {
		hint = fmt.Sprintf("REPLAY %d/%d (seed %d)", r.CurrentFrame(), r.TotalFrames(), p.seed)
	}
	text.Draw(screen, hint, face, 6, 14, color.White)
}

func (p *Playing) drawOverlay(screen *ebiten.Image, overlay color.Color, msg string) {
	ebitenutil.DrawRect(screen, 0, 0, float64(p.screenW), float64(p.screenH), overlay)
	text.Draw(screen, msg, basicfont.Face7x13, p.screenW/2-60, p.screenH/2-20, color.White)
}

// fade scales a color by alpha (premultiplied)
func fade(c color.RGBA, alpha float64) color.RGBA {
	alpha = math.Max(0, math.Min(alpha, 1))
	return color.RGBA{
		uint8(float64(c.R) * alpha),
		uint8(float64(c.G) * alpha),
		uint8(float64(c.B) * alpha),
		uint8(float64(c.A) * alpha),
	}
}

// OnEnter is called when entering this scene
func (p *Playing) OnEnter() {
	logger.Log.WithFields(logrus.Fields{
		"stage": p.stageCfg.ID,
		"seed":  p.seed,
	}).Info("stage started")
}

// OnExit is called when leaving this scene
func (p *Playing) OnExit() {
	p.saveRecording()
}
