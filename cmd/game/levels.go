package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List available levels",
	Long:  `Shows the levels found in the config directory and the embedded defaults.`,
	RunE:  runLevels,
}

func runLevels(cmd *cobra.Command, args []string) error {
	loader := newLoader()
	names, err := loader.LevelNames()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(names) == 0 {
		fmt.Fprintln(out, "No levels available.")
		return nil
	}

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, n := range names {
		maxIDLen = max(maxIDLen, len(n))
	}

	fmt.Fprintf(out, "  %-*s  %s\n", maxIDLen, "ID", "Name")
	fmt.Fprintf(out, "  %-*s  %s\n", maxIDLen, "--", "----")
	for _, n := range names {
		title := "(invalid)"
		if level, err := loader.LoadLevel(n); err == nil {
			title = level.Name
		}
		fmt.Fprintf(out, "  %-*s  %s\n", maxIDLen, n, title)
	}
	return nil
}
