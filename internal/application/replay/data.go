// Package replay records per-tick player input and plays it back through a
// headless simulation.
package replay

import "github.com/younwookim/spinrun/internal/application/system"

// Version is written into every recording.
const Version = "2"

// FrameInput records one player slot's input on one tick
type FrameInput struct {
	L  bool `json:"l,omitempty"`  // Left
	R  bool `json:"r,omitempty"`  // Right
	U  bool `json:"u,omitempty"`  // Up
	D  bool `json:"d,omitempty"`  // Down
	J  bool `json:"j,omitempty"`  // JumpHeld
	JP bool `json:"jp,omitempty"` // JumpPressed
	SP bool `json:"sp,omitempty"` // ShootPressed
	KP bool `json:"kp,omitempty"` // SkillPressed
}

// Frame is one tick of input, one entry per player slot
type Frame struct {
	F int          `json:"f"`
	P []FrameInput `json:"p,omitempty"`
}

// Outcome is the state a recording ended in. Replaying the frames must
// reproduce it exactly.
type Outcome struct {
	Ticks    int    `json:"ticks"`
	State    string `json:"state"`
	Checksum string `json:"checksum"`
}

// ReplayData contains all data needed to replay a game session
type ReplayData struct {
	Version    string   `json:"version"`
	Seed       int64    `json:"seed"`
	Level      string   `json:"level"`
	Characters []string `json:"characters,omitempty"`
	StartTime  string   `json:"startTime"`
	Frames     []Frame  `json:"frames"`
	Outcome    *Outcome `json:"outcome,omitempty"`
}

func encodeInput(in system.InputState) FrameInput {
	return FrameInput{
		L:  in.Left,
		R:  in.Right,
		U:  in.Up,
		D:  in.Down,
		J:  in.JumpHeld,
		JP: in.JumpPressed,
		SP: in.ShootPressed,
		KP: in.SkillPressed,
	}
}

func (fi FrameInput) decode() system.InputState {
	return system.InputState{
		Left:         fi.L,
		Right:        fi.R,
		Up:           fi.U,
		Down:         fi.D,
		JumpHeld:     fi.J,
		JumpPressed:  fi.JP,
		ShootPressed: fi.SP,
		SkillPressed: fi.KP,
	}
}
