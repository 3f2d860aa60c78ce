package replay

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/spinrun/internal/application/system"
	"github.com/younwookim/spinrun/internal/infrastructure/config"
)

func createTestSimulation(t *testing.T, level string, seed int64) *system.Simulation {
	t.Helper()
	tuning, err := config.DefaultTuning()
	require.NoError(t, err)
	lvl, err := config.NewEmbeddedLoader().LoadLevel(level)
	require.NoError(t, err)
	sim, err := system.New(tuning, lvl, system.WithSeed(seed))
	require.NoError(t, err)
	return sim
}

func TestRecorder_SaveAndLoad(t *testing.T) {
	r := NewRecorder(7, "demo", []string{"runner", "flyer"})
	r.Record([]system.InputState{{Right: true, JumpPressed: true, JumpHeld: true}, {Left: true}})
	r.Record([]system.InputState{{Right: true, JumpHeld: true}, {SkillPressed: true}})
	assert.Equal(t, 2, r.FrameCount())

	path := filepath.Join(t.TempDir(), "run.json")
	require.NoError(t, r.Save(path))

	data, err := LoadReplay(path)
	require.NoError(t, err)
	assert.Equal(t, Version, data.Version)
	assert.Equal(t, int64(7), data.Seed)
	assert.Equal(t, "demo", data.Level)
	assert.Equal(t, []string{"runner", "flyer"}, data.Characters)
	assert.Nil(t, data.Outcome)

	rp := NewReplayer(*data)
	first, ok := rp.Next()
	require.True(t, ok)
	assert.Equal(t, []system.InputState{{Right: true, JumpPressed: true, JumpHeld: true}, {Left: true}}, first)

	second, ok := rp.Next()
	require.True(t, ok)
	assert.True(t, second[1].SkillPressed)

	_, ok = rp.Next()
	assert.False(t, ok)
	assert.Equal(t, 2, rp.CurrentFrame())

	rp.Reset()
	assert.Zero(t, rp.CurrentFrame())
}

func TestRecorder_SaveEmpty(t *testing.T) {
	r := NewRecorder(1, "demo", nil)
	err := r.Save(filepath.Join(t.TempDir(), "empty.json"))
	assert.ErrorIs(t, err, ErrNoFrames)
}

func TestRecorder_StopIgnoresFrames(t *testing.T) {
	r := NewRecorder(1, "demo", nil)
	r.Record([]system.InputState{{}})
	r.Stop()
	r.Record([]system.InputState{{}})

	assert.False(t, r.IsRecording())
	assert.Equal(t, 1, r.FrameCount())
}

func TestLoadReplay_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadReplay(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{frames"), 0o644))
	_, err = LoadReplay(bad)
	assert.Error(t, err)
}

func TestReplay_ReproducesRecordedOutcome(t *testing.T) {
	for _, level := range []string{"demo", "boss"} {
		t.Run(level, func(t *testing.T) {
			script := NewReplayer(CreateTestReplayData(level, 600))

			live := createTestSimulation(t, level, 3)
			rec := NewRecorder(3, level, nil)
			for {
				inputs, ok := script.Next()
				if !ok || live.GameOver() || live.Complete() {
					break
				}
				rec.Record(inputs)
				live.Step(inputs)
			}
			rec.Finish(live)
			require.NotNil(t, rec.Data().Outcome)

			replayed := createTestSimulation(t, level, 3)
			got := NewReplayer(rec.Data()).Play(replayed)

			assert.Equal(t, *rec.Data().Outcome, got)
			assert.Equal(t, rec.FrameCount(), got.Ticks)
		})
	}
}

func TestChecksum_ChangesWithState(t *testing.T) {
	sim := createTestSimulation(t, "demo", 1)
	before := Checksum(sim)
	assert.Equal(t, before, Checksum(sim))

	sim.Step([]system.InputState{{Right: true}})
	assert.NotEqual(t, before, Checksum(sim))
}
