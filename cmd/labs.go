package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/simz/internal/sim"
)

var labsCmd = &cobra.Command{
	Use:   "labs",
	Short: "List the available labs",
	Run: func(cmd *cobra.Command, args []string) {
		for _, d := range sim.All() {
			def := d.Definition()
			fmt.Printf("%-14s %s\n", def.ID, def.Title)
			fmt.Printf("%-14s %s\n", "", def.Tagline)

			var knobs []string
			for _, p := range def.Params {
				knobs = append(knobs, p.Label)
			}
			fmt.Printf("%-14s knobs: %s — pass at %d/10\n\n", "", strings.Join(knobs, ", "), def.PassThreshold)
		}
	},
}
