// game runs tile platformer levels.
//
// Usage:
//
//	game play <level>        - Play a level in a window
//	game run <level>         - Run a level headless and print a summary
//	game validate [level...] - Load and build levels, report problems
//	game levels              - List available levels
//
// Global flags:
//
//	--config <dir>       - Config directory holding tuning.yaml and levels/ (default: embedded)
//	--log-level <level>  - debug, info, warn or error (default: info)
//	--seed <value>       - RNG seed (0 = tuning seed)
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/younwookim/spinrun/internal/infrastructure/config"
	"github.com/younwookim/spinrun/internal/infrastructure/logging"
)

var (
	// Global flags
	flagConfigDir string
	flagLogLevel  string
	flagSeed      int64
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "game",
	Short: "Tile platformer simulation and debug harness",
	Long: `Runs tile platformer levels, either in a window or headless.

Levels and tuning come from the embedded defaults unless --config points
at a directory with tuning.yaml and levels/<name>.yaml or .tmx.

Examples:
  game levels
  game play demo
  game play boss --characters runner,flyer --record boss.json
  game run demo --ticks 600 --input run
  game run boss --replay boss.json
  game validate --config ./levels-dev`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config", "", "Config directory (empty = embedded defaults)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = tuning seed)")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(levelsCmd)
}

func newLoader() *config.Loader {
	if flagConfigDir == "" {
		return config.NewEmbeddedLoader()
	}
	return config.NewLoader(flagConfigDir)
}

func newLogger(cmd *cobra.Command, prefix string) (*log.Logger, error) {
	return logging.NewWithWriter(cmd.ErrOrStderr(), flagLogLevel, prefix)
}

// seedOverride returns the --seed value, or nil to keep the tuning seed.
func seedOverride() *int64 {
	if flagSeed == 0 {
		return nil
	}
	seed := flagSeed
	return &seed
}
