// Package scene defines the Scene interface for game screens.
//
// The game loop owns the clock: it calls Update once per tick with a fixed
// dt, and a scene hands control to another by returning it.
package scene

import "github.com/hajimehoshi/ebiten/v2"

// Scene is one screen of the game, such as a stage being played.
type Scene interface {
	// Update advances the scene by dt seconds.
	// Returns the next scene if a transition is needed, nil to stay on current scene.
	// Returns an error to terminate the game.
	Update(dt float64) (next Scene, err error)

	// Draw renders the scene to the screen.
	Draw(screen *ebiten.Image)

	// OnEnter is called when the game switches to this scene.
	OnEnter()

	// OnExit is called when the game leaves this scene, before the next
	// scene's OnEnter.
	OnExit()
}
