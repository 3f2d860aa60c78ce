package replay

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/younwookim/spinrun/internal/application/system"
)

// ErrNoFrames is returned when saving an empty recording.
var ErrNoFrames = errors.New("replay: no frames to save")

// Recorder handles input recording for replay
type Recorder struct {
	data      ReplayData
	recording bool
}

// NewRecorder creates a recorder for a run of level with the given seed.
func NewRecorder(seed int64, level string, characters []string) *Recorder {
	return &Recorder{
		data: ReplayData{
			Version:    Version,
			Seed:       seed,
			Level:      level,
			Characters: characters,
			StartTime:  time.Now().Format(time.RFC3339),
			Frames:     make([]Frame, 0, 3600), // ~1 minute at 60 ticks per second
		},
		recording: true,
	}
}

// Record appends one tick of input.
func (r *Recorder) Record(inputs []system.InputState) {
	if !r.recording {
		return
	}
	frame := Frame{F: len(r.data.Frames), P: make([]FrameInput, len(inputs))}
	for i, in := range inputs {
		frame.P[i] = encodeInput(in)
	}
	r.data.Frames = append(r.data.Frames, frame)
}

// Finish stops recording and stores the simulation's final state.
func (r *Recorder) Finish(sim *system.Simulation) {
	r.recording = false
	out := OutcomeOf(sim)
	r.data.Outcome = &out
}

// Save writes the replay data to a file
func (r *Recorder) Save(filename string) error {
	if len(r.data.Frames) == 0 {
		return ErrNoFrames
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() { _ = file.Close() }()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(r.data); err != nil {
		return fmt.Errorf("failed to encode replay: %w", err)
	}

	return nil
}

// Stop stops recording
func (r *Recorder) Stop() {
	r.recording = false
}

// IsRecording returns whether recording is active
func (r *Recorder) IsRecording() bool {
	return r.recording
}

// FrameCount returns the number of recorded frames
func (r *Recorder) FrameCount() int {
	return len(r.data.Frames)
}

// Data returns the recorded replay data.
func (r *Recorder) Data() ReplayData {
	return r.data
}

// GenerateFilename creates a filename based on current time
func GenerateFilename() string {
	return fmt.Sprintf("replay_%s.json", time.Now().Format("20060102_150405"))
}
