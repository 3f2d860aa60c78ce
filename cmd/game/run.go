package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/younwookim/spinrun/internal/application/replay"
	"github.com/younwookim/spinrun/internal/application/state"
	"github.com/younwookim/spinrun/internal/application/system"
)

var errReplayMismatch = errors.New("replay outcome mismatch")

var (
	flagTicks     int
	flagReplay    string
	flagInput     string
	flagRunRecord string
)

var runCmd = &cobra.Command{
	Use:   "run <level>",
	Short: "Run a level headless",
	Long: `Runs the given level without a window and prints a summary.

With --replay, the recorded inputs drive the run and the final state is
checked against the outcome stored in the recording.

Input scripts (without --replay):
  idle  - No input
  run   - Player 1 runs right and jumps every 40 ticks

Examples:
  game run demo --ticks 600
  game run demo --input run --record demo.json
  game run demo --replay demo.json`,
	Args: cobra.ExactArgs(1),
	RunE: runHeadless,
}

func init() {
	runCmd.Flags().IntVar(&flagTicks, "ticks", 600, "Ticks to run without --replay")
	runCmd.Flags().StringVar(&flagReplay, "replay", "", "Replay file to play back and verify")
	runCmd.Flags().StringVar(&flagInput, "input", "idle", "Input script: idle, run")
	runCmd.Flags().StringVar(&flagRunRecord, "record", "", "Record the run to this replay file")
}

// tally sums the per-tick events of a run.
type tally struct {
	enemies     int
	currency    int
	deaths      int
	checkpoints int
	bossPhases  int
}

func (t *tally) add(sim *system.Simulation) {
	ev := sim.Events
	t.enemies += ev.EnemyDefeated
	t.currency += ev.CurrencyCollected
	if ev.PlayerDied {
		t.deaths++
	}
	if ev.CheckpointActivated {
		t.checkpoints++
	}
	if ev.BossPhaseChanged {
		t.bossPhases++
	}
}

func runHeadless(cmd *cobra.Command, args []string) error {
	logger, err := newLogger(cmd, "run")
	if err != nil {
		return err
	}
	loader := newLoader()
	tuning, err := loader.LoadTuning()
	if err != nil {
		return err
	}
	level, err := loader.LoadLevel(args[0])
	if err != nil {
		return err
	}

	opts := []system.Option{system.WithLogger(logger)}

	var data *replay.ReplayData
	if flagReplay != "" {
		data, err = replay.LoadReplay(flagReplay)
		if err != nil {
			return err
		}
		if data.Level != args[0] {
			return fmt.Errorf("replay %s was recorded on level %q, not %q", flagReplay, data.Level, args[0])
		}
		opts = append(opts, system.WithSeed(data.Seed), system.WithCharacters(data.Characters...))
	} else if seed := seedOverride(); seed != nil {
		opts = append(opts, system.WithSeed(*seed))
	}

	sim, err := system.New(tuning, level, opts...)
	if err != nil {
		return err
	}

	var script *replay.Replayer
	switch {
	case data != nil:
		script = replay.NewReplayer(*data)
	case flagInput == "run":
		script = replay.NewReplayer(replay.CreateTestReplayData(args[0], flagTicks))
	case flagInput != "idle":
		return fmt.Errorf("unknown input script %q", flagInput)
	}

	var rec *replay.Recorder
	if flagRunRecord != "" {
		rec = replay.NewRecorder(sim.Seed(), args[0], nil)
	}

	var t tally
	for data != nil || sim.Tick < flagTicks {
		if sim.State.Ended() {
			break
		}
		var inputs []system.InputState
		if script != nil {
			next, ok := script.Next()
			if !ok {
				break
			}
			inputs = next
		}
		if rec != nil {
			rec.Record(inputs)
		}
		sim.Step(inputs)
		t.add(sim)
	}

	logger.Debug("run finished", "summary", sim.String())
	out := replay.OutcomeOf(sim)
	printSummary(cmd.OutOrStdout(), sim, out, t)

	if rec != nil {
		rec.Finish(sim)
		if err := rec.Save(flagRunRecord); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "recorded %d frames to %s\n", rec.FrameCount(), flagRunRecord)
	}

	if data != nil && data.Outcome != nil {
		want := *data.Outcome
		if _, ok := state.Parse(want.State); !ok {
			return fmt.Errorf("replay %s: unknown recorded state %q", flagReplay, want.State)
		}
		if want != out {
			return fmt.Errorf("%w: recorded %s at tick %d, got %s at tick %d",
				errReplayMismatch, want.State, want.Ticks, out.State, out.Ticks)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "replay verified")
	}
	return nil
}

func printSummary(w io.Writer, sim *system.Simulation, out replay.Outcome, t tally) {
	fmt.Fprintf(w, "level:    %s (%s)\n", sim.Level().ID, sim.Level().Name)
	fmt.Fprintf(w, "state:    %s\n", out.State)
	fmt.Fprintf(w, "ticks:    %d\n", out.Ticks)
	for _, p := range sim.Players {
		fmt.Fprintf(w, "player %d: %s lives=%d currency=%d shield=%t at (%.1f, %.1f)\n",
			p.Slot+1, p.Character, p.Lives, p.Currency, p.Shield, p.X, p.Y)
	}
	if sim.Boss != nil {
		fmt.Fprintf(w, "boss:     hp=%d/%d phase=%s\n", sim.Boss.HP, sim.Boss.MaxHP, sim.Boss.Phase)
	}
	fmt.Fprintf(w, "events:   enemies=%d currency=%d deaths=%d checkpoints=%d bossPhases=%d\n",
		t.enemies, t.currency, t.deaths, t.checkpoints, t.bossPhases)
	fmt.Fprintf(w, "checksum: %s\n", out.Checksum)
}
