package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputState is one player slot's input for a single tick.
type InputState struct {
	Left         bool
	Right        bool
	Up           bool
	Down         bool
	JumpHeld     bool
	JumpPressed  bool
	ShootPressed bool
	SkillPressed bool
}

// Direction returns -1, 0 or 1 for the horizontal input. Opposite keys
// cancel out.
func (in InputState) Direction() float64 {
	switch {
	case in.Left && !in.Right:
		return -1
	case in.Right && !in.Left:
		return 1
	}
	return 0
}

// Held drops the edge-triggered fields. A frame that runs several ticks
// delivers presses on the first tick only.
func (in InputState) Held() InputState {
	in.JumpPressed = false
	in.ShootPressed = false
	in.SkillPressed = false
	return in
}

// Bindings maps one slot's actions to keys.
type Bindings struct {
	Left, Right, Up, Down ebiten.Key
	Jump, Shoot, Skill    ebiten.Key
}

// DefaultBindings returns the keyboard layout for a slot. Slot 0 uses the
// arrow keys, slot 1 uses WASD.
func DefaultBindings(slot int) Bindings {
	if slot == 1 {
		return Bindings{
			Left: ebiten.KeyA, Right: ebiten.KeyD, Up: ebiten.KeyW, Down: ebiten.KeyS,
			Jump: ebiten.KeyF, Shoot: ebiten.KeyG, Skill: ebiten.KeyH,
		}
	}
	return Bindings{
		Left: ebiten.KeyArrowLeft, Right: ebiten.KeyArrowRight, Up: ebiten.KeyArrowUp, Down: ebiten.KeyArrowDown,
		Jump: ebiten.KeyZ, Shoot: ebiten.KeyX, Skill: ebiten.KeyC,
	}
}

// InputSystem reads keyboard state for the player slots
type InputSystem struct {
	bindings []Bindings
}

// NewInputSystem creates an input system for the given number of slots
func NewInputSystem(slots int) *InputSystem {
	b := make([]Bindings, slots)
	for i := range b {
		b[i] = DefaultBindings(i)
	}
	return &InputSystem{bindings: b}
}

// GetInput reads the current input state of every slot
func (s *InputSystem) GetInput() []InputState {
	out := make([]InputState, len(s.bindings))
	for i, b := range s.bindings {
		out[i] = InputState{
			Left:         ebiten.IsKeyPressed(b.Left),
			Right:        ebiten.IsKeyPressed(b.Right),
			Up:           ebiten.IsKeyPressed(b.Up),
			Down:         ebiten.IsKeyPressed(b.Down),
			JumpHeld:     ebiten.IsKeyPressed(b.Jump),
			JumpPressed:  inpututil.IsKeyJustPressed(b.Jump),
			ShootPressed: inpututil.IsKeyJustPressed(b.Shoot),
			SkillPressed: inpututil.IsKeyJustPressed(b.Skill),
		}
	}
	return out
}
