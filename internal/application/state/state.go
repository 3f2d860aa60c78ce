// Package state holds the run state shared by the simulation and the
// playing scene.
package state

// GameState represents where a run currently is
type GameState int

const (
	StatePlaying GameState = iota
	StatePaused
	StateGameOver
	StateStageClear
)

// String returns the string representation of the game state
func (s GameState) String() string {
	switch s {
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	case StateGameOver:
		return "GameOver"
	case StateStageClear:
		return "StageClear"
	default:
		return "Unknown"
	}
}

// Ended reports whether the run is finished and Step no longer advances it.
func (s GameState) Ended() bool {
	return s == StateGameOver || s == StateStageClear
}

// Parse converts the output of String back to a GameState.
func Parse(name string) (GameState, bool) {
	for s := StatePlaying; s <= StateStageClear; s++ {
		if s.String() == name {
			return s, true
		}
	}
	return 0, false
}
