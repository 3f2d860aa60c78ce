// Package game provides the main game loop manager that handles Scene transitions.
package game

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/spinrun/internal/application/scene"
)

// Game implements ebiten.Game and manages Scene transitions. Each frame it
// measures wall time and hands the current scene the number of fixed
// ticks that are due.
type Game struct {
	current scene.Scene
	screenW int
	screenH int
	clock   *Clock
	now     func() time.Time
	last    time.Time
}

// New creates a new Game with the given initial scene.
// The initial scene's OnEnter is called immediately.
func New(initialScene scene.Scene, screenW, screenH int, clock *Clock) *Game {
	g := &Game{
		current: initialScene,
		screenW: screenW,
		screenH: screenH,
		clock:   clock,
		now:     time.Now,
	}
	g.last = g.now()
	g.current.OnEnter()
	return g
}

// Update updates the current scene and handles scene transitions.
// Implements ebiten.Game interface.
func (g *Game) Update() error {
	now := g.now()
	ticks := g.clock.Advance(now.Sub(g.last))
	g.last = now

	next, err := g.current.Update(ticks)
	if err != nil {
		return err
	}

	// Handle scene transition
	if next != nil {
		g.current.OnExit()
		g.current = next
		g.current.OnEnter()
	}

	return nil
}

// Draw renders the current scene.
// Implements ebiten.Game interface.
func (g *Game) Draw(screen *ebiten.Image) {
	g.current.Draw(screen)
}

// Layout returns the game's logical screen dimensions.
// Implements ebiten.Game interface.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.screenW, g.screenH
}

// SetTimeSource replaces the wall clock. Useful for testing.
func (g *Game) SetTimeSource(now func() time.Time) {
	g.now = now
	g.last = now()
}
