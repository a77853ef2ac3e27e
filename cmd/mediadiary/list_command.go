package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"mediadiary/internal/diary"
	"mediadiary/internal/entry"
	"mediadiary/internal/view"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var (
		kind, status, mediaType, sortKey, search string
		asJSON                                   bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List entries for the overview or pending view",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			viewKind := view.Kind(cfg.View.DefaultView)
			if strings.TrimSpace(kind) != "" {
				parsed, ok := view.ParseKind(kind)
				if !ok {
					return fmt.Errorf("unknown view %q (use overview or pending)", kind)
				}
				viewKind = parsed
			}
			state := cfg.DefaultViewState(viewKind)
			if cmd.Flags().Changed("status") {
				state.Status = view.StatusFilter(status)
			}
			if cmd.Flags().Changed("type") {
				state.Type = mediaType
			}
			if cmd.Flags().Changed("sort") {
				state.Sort = view.SortKey(sortKey)
			}
			state.Search = search

			return ctx.withDiary(cmd, func(_ context.Context, d *diary.Diary) error {
				result, err := d.Project(state)
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd.OutOrStdout(), result)
				}
				printListing(cmd, result, time.Now())
				return nil
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&kind, "view", "", "View to show: overview or pending")
	flags.StringVarP(&status, "status", "s", "", "Status filter: all, in-progress or completed")
	flags.StringVarP(&mediaType, "type", "t", "", "Type filter (all or a media type)")
	flags.StringVar(&sortKey, "sort", "", "Sort key, e.g. title-asc or rating-desc")
	flags.StringVarP(&search, "search", "q", "", "Search title, author and tags")
	flags.BoolVar(&asJSON, "json", false, "Output JSON")
	return cmd
}

func printListing(cmd *cobra.Command, result view.Result, now time.Time) {
	out := cmd.OutOrStdout()
	if len(result.Entries) == 0 {
		fmt.Fprintln(out, "No entries match the current filters.")
		return
	}
	colorize := shouldColorize(out)

	var columns []column
	rows := make([][]string, 0, len(result.Entries))
	if result.State.Kind == view.KindPending {
		columns = []column{leftColumn("ID"), titleColumn("Title"), leftColumn("Type"), numberColumn("Hype"), leftColumn("Added")}
		for _, e := range result.Entries {
			rows = append(rows, []string{
				shortID(e.ID),
				e.Title,
				e.Type.Label(),
				formatHype(e.HypeRating),
				formatAdded(e.CreatedAt, now),
			})
		}
	} else {
		columns = []column{
			leftColumn("ID"), titleColumn("Title"), leftColumn("Type"), leftColumn("Status"),
			leftColumn("Started"), leftColumn("Finished"), numberColumn("Rating"), leftColumn("Added"),
		}
		for _, e := range result.Entries {
			rows = append(rows, []string{
				shortID(e.ID),
				e.Title,
				e.Type.Label(),
				renderStatus(e.Status, colorize),
				orDash(e.StartDate.String()),
				orDash(e.FinishDate.String()),
				formatRating(e.Rating),
				formatAdded(e.CreatedAt, now),
			})
		}
	}
	fmt.Fprintln(out, renderTable(columns, rows, nil))
	fmt.Fprintf(out, "%d of %d entries\n", len(result.Entries), result.Stats.Total)
}

type showPayload struct {
	entry.Entry
	ResolvedCover string `json:"resolvedCoverUrl"`
}

func newShowCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show every field of an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withDiary(cmd, func(_ context.Context, d *diary.Diary) error {
				e, err := d.Resolve(args[0])
				if err != nil {
					return err
				}
				cover := d.CoverURL(e)
				if asJSON {
					return writeJSON(cmd.OutOrStdout(), showPayload{Entry: e, ResolvedCover: cover})
				}
				printEntry(cmd, e, cover, time.Now())
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	return cmd
}

func printEntry(cmd *cobra.Command, e entry.Entry, cover string, now time.Time) {
	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)
	line := func(label, value string) {
		fmt.Fprintf(out, "%-10s %s\n", label+":", value)
	}
	line("ID", e.ID)
	line("Title", e.Title)
	line("Type", e.Type.Label())
	if e.Author != "" {
		line("Author", e.Author)
	}
	line("Status", renderStatus(e.Status, colorize))
	if e.Status.IsPending() {
		line("Hype", formatHype(e.HypeRating))
	} else {
		line("Started", orDash(e.StartDate.String()))
		line("Finished", orDash(e.FinishDate.String()))
		line("Rating", formatRating(e.Rating))
	}
	if len(e.Tags) > 0 {
		line("Tags", strings.Join(e.Tags, ", "))
	}
	line("Cover", cover)
	line("Added", fmt.Sprintf("%s (%s)", e.CreatedAt.Local().Format("2006-01-02 15:04"), formatAdded(e.CreatedAt, now)))
	if e.Notes != "" {
		fmt.Fprintln(out)
		fmt.Fprintln(out, e.Notes)
	}
}
