package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/neunenak/typst/pkg/history"
)

// historyCommand creates the history command, which lists recent
// compilations.
func (c *CLI) historyCommand() *cobra.Command {
	var (
		limit  int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent compilations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := c.newStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			recs, err := store.Recent(ctx, limit)
			if err != nil {
				return fmt.Errorf("list history: %w", err)
			}

			if asJSON {
				enc := json.NewEncoder(stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(recs)
			}
			if len(recs) == 0 {
				printInfo("No compilations recorded")
				return nil
			}
			fmt.Fprintln(stdout, historyTable(recs, time.Now()))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", history.DefaultLimit, "number of records to show")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print records as JSON")

	return cmd
}

// historyTable renders recs as a table relative to now.
func historyTable(recs []history.Record, now time.Time) string {
	rows := make([][]string, len(recs))
	for i, r := range recs {
		path := r.Path
		if path == "" {
			path = StyleDim.Render("(stdin)")
		}
		rows[i] = []string{
			ago(now.Sub(r.CreatedAt)),
			path,
			r.Lang,
			r.Final,
			strconv.Itoa(len(r.Diagnostics)),
			shortHash(r.DocHash),
		}
	}
	return renderTable([]string{"When", "Document", "Lang", "Final", "Diags", "Hash"}, rows)
}

// ago formats d coarsely, e.g. "3m ago".
func ago(d time.Duration) string {
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d/time.Minute))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d/time.Hour))
	default:
		return fmt.Sprintf("%dd ago", int(d/(24*time.Hour)))
	}
}

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}
