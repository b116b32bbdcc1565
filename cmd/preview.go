package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/simz/internal/content"
	"github.com/abhisek/simz/internal/session"
	"github.com/abhisek/simz/internal/sim"
	"github.com/abhisek/simz/internal/ui/components"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Run a lab's model headlessly (no database, no TUI)",
	Long: `Compute a lab's metrics for a given parameter set and print them.

This is a stateless developer tool — no database, no phase gating, no
events. Useful for checking model behavior and content pack validity.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().String("lab", "", "Lab ID (required; see 'simz labs')")
	previewCmd.Flags().Int64("seed", 1, "Layout seed for grid labs")
	previewCmd.Flags().StringArray("set", nil, "Parameter override, name=value (repeatable)")
	_ = previewCmd.MarkFlagRequired("lab")
}

func runPreview(cmd *cobra.Command, args []string) error {
	labID, _ := cmd.Flags().GetString("lab")
	seed, _ := cmd.Flags().GetInt64("seed")
	sets, _ := cmd.Flags().GetStringArray("set")

	d, ok := sim.ByID(labID)
	if !ok {
		return fmt.Errorf("unknown lab %q", labID)
	}

	// Load the pack even though preview doesn't quiz: it surfaces
	// content errors without launching the TUI.
	pack, err := content.Load(labID)
	if err != nil {
		return fmt.Errorf("content pack: %w", err)
	}

	run := session.New(d, pack, session.Config{Seed: seed, MinTrials: -1})

	for _, kv := range sets {
		name, raw, found := strings.Cut(kv, "=")
		if !found {
			return fmt.Errorf("invalid --set %q: want name=value", kv)
		}
		spec, ok := run.Params().Spec(name)
		if !ok {
			return fmt.Errorf("unknown parameter %q for lab %s", name, labID)
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("invalid value for %s: %w", name, err)
		}
		run.SetParam(spec.Name, v)
	}

	def := run.Def
	fmt.Printf("%s (seed %d)\n\n", def.Title, run.Seed())

	fmt.Println("parameters:")
	for _, spec := range run.Params().Specs() {
		v := run.Params().Get(spec.Name)
		if len(spec.Enum) > 0 {
			fmt.Printf("  %-22s %s\n", spec.Label, spec.EnumName(v))
			continue
		}
		fmt.Printf("  %-22s %g %s\n", spec.Label, v, spec.Unit)
	}

	fmt.Println("\nmetrics:")
	for _, m := range run.Metrics().Items {
		fmt.Printf("  %-22s %g %s\n", m.Label, m.Value, m.Unit)
	}

	if conns := run.Metrics().Connections; len(conns) > 0 {
		parts := make([]string, 0, len(conns))
		for _, c := range conns {
			parts = append(parts, fmt.Sprintf("%d-%d", c[0], c[1]))
		}
		fmt.Printf("\nlinks: %s\n", strings.Join(parts, " "))
	}

	if grid := run.Grid(); len(grid) > 0 {
		g := components.Grid{Cells: grid, Columns: 20}
		fmt.Printf("\nsample map (%.0f%% live):\n%s\n", g.LiveFraction()*100, g.View())
	}

	return nil
}
