package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/simz/internal/store"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Show recent lab events from the local database",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		rows, err := st.Recent(cmd.Context(), limit)
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		if len(rows) == 0 {
			fmt.Println("no events yet — run 'simz play' first")
			return nil
		}

		for _, r := range rows {
			fmt.Printf("%6d  %s  %-13s %-17s %s\n",
				r.Sequence,
				r.Timestamp.Format("2006-01-02 15:04:05"),
				r.Lab,
				r.Kind,
				r.Payload)
		}
		return nil
	},
}

func init() {
	eventsCmd.Flags().Int("limit", 25, "Maximum number of events to show")
}
