package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play [lab]",
	Short: "Start the lab picker, or jump straight into a lab",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lab := ""
		if len(args) > 0 {
			lab = args[0]
		}
		return runApp(cmd, lab)
	},
}

func init() {
	// Context for provider initialization.
	playCmd.SetContext(context.Background())
}
