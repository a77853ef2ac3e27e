package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"mediadiary/internal/diary"
	"mediadiary/internal/entry"
	"mediadiary/internal/view"
)

func newStatsCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarise the collection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withDiary(cmd, func(_ context.Context, d *diary.Diary) error {
				stats := d.Stats()
				if asJSON {
					return writeJSON(cmd.OutOrStdout(), stats)
				}
				printStats(cmd, stats)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	return cmd
}

func printStats(cmd *cobra.Command, stats view.Stats) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Total:       %d\n", stats.Total)
	fmt.Fprintf(out, "Pending:     %d\n", stats.Pending)
	fmt.Fprintf(out, "In progress: %d\n", stats.InProgress)
	fmt.Fprintf(out, "Completed:   %d\n", stats.Completed)
	if stats.RatedCount > 0 {
		fmt.Fprintf(out, "Average:     %.1f/10 (%d rated)\n", stats.AverageRating, stats.RatedCount)
	} else {
		fmt.Fprintln(out, "Average:     -")
	}
	fmt.Fprintln(out)

	rows := make([][]string, 0, len(entry.AllMediaTypes()))
	for _, t := range entry.AllMediaTypes() {
		rows = append(rows, []string{
			t.Label(),
			strconv.Itoa(stats.ActiveByType[t]),
			strconv.Itoa(stats.ByType[t] - stats.ActiveByType[t]),
			strconv.Itoa(stats.ByType[t]),
		})
	}
	footer := []string{
		"All",
		strconv.Itoa(stats.Total - stats.Pending),
		strconv.Itoa(stats.Pending),
		strconv.Itoa(stats.Total),
	}
	fmt.Fprintln(out, renderTable(
		[]column{leftColumn("Type"), numberColumn("Active"), numberColumn("Pending"), numberColumn("Total")},
		rows,
		footer,
	))
}
