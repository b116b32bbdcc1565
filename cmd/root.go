package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/simz/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "simz",
	Short: "Guided simulation labs in the terminal",
	Long: "Simz — interactive predict/play/review labs for circuits, spatial audio,\n" +
		"network interconnects and semiconductor yield, with a mastery quiz at the end.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, "")
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides SIMZ_DB env var)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(labsCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest
// priority), then SIMZ_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
