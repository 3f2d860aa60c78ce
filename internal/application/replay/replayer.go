package replay

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/younwookim/spinrun/internal/application/system"
)

// Replayer handles input playback from recorded data
type Replayer struct {
	data  ReplayData
	frame int
}

// NewReplayer creates a new replayer from replay data
func NewReplayer(data ReplayData) *Replayer {
	return &Replayer{
		data:  data,
		frame: 0,
	}
}

// LoadReplay loads replay data from a file
func LoadReplay(filename string) (*ReplayData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var data ReplayData
	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode replay: %w", err)
	}

	return &data, nil
}

// Next returns the inputs of the current frame and advances
func (r *Replayer) Next() ([]system.InputState, bool) {
	if r.frame >= len(r.data.Frames) {
		return nil, false
	}

	frame := r.data.Frames[r.frame]
	r.frame++

	inputs := make([]system.InputState, len(frame.P))
	for i, fi := range frame.P {
		inputs[i] = fi.decode()
	}
	return inputs, true
}

// CurrentFrame returns the current frame number
func (r *Replayer) CurrentFrame() int {
	return r.frame
}

// TotalFrames returns the total number of frames
func (r *Replayer) TotalFrames() int {
	return len(r.data.Frames)
}

// Seed returns the seed used for the replay
func (r *Replayer) Seed() int64 {
	return r.data.Seed
}

// Reset resets the replayer to the beginning
func (r *Replayer) Reset() {
	r.frame = 0
}

// Play feeds every remaining frame into sim and returns where it ended.
// Playback stops early once the run is over.
func (r *Replayer) Play(sim *system.Simulation) Outcome {
	for {
		inputs, ok := r.Next()
		if !ok || sim.GameOver() || sim.Complete() {
			break
		}
		sim.Step(inputs)
	}
	return OutcomeOf(sim)
}

// OutcomeOf summarizes a simulation's current state.
func OutcomeOf(sim *system.Simulation) Outcome {
	return Outcome{
		Ticks:    sim.Tick,
		State:    sim.State.String(),
		Checksum: Checksum(sim),
	}
}

// Checksum hashes the poses and the players' counters.
func Checksum(sim *system.Simulation) string {
	h := sha256.New()
	for _, p := range sim.Poses() {
		fmt.Fprintf(h, "%d %s %g %g %g %g %t %s\n", p.ID, p.Kind, p.X, p.Y, p.W, p.H, p.FacingRight, p.State)
	}
	for _, p := range sim.Players {
		fmt.Fprintf(h, "slot %d lives %d currency %d shield %t\n", p.Slot, p.Lives, p.Currency, p.Shield)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// CreateTestReplayData creates replay data for testing: frames ticks of
// slot 0 running right and jumping every 40 ticks.
func CreateTestReplayData(level string, frames int) ReplayData {
	data := ReplayData{
		Version:   Version,
		Seed:      12345,
		Level:     level,
		StartTime: time.Now().Format(time.RFC3339),
		Frames:    make([]Frame, frames),
	}

	for i := 0; i < frames; i++ {
		data.Frames[i] = Frame{
			F: i,
			P: []FrameInput{{R: true, J: i%40 < 10, JP: i%40 == 0}},
		}
	}

	return data
}
