package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"mediadiary/internal/collection"
	"mediadiary/internal/diary"
	"mediadiary/internal/entry"
)

type entryFlags struct {
	mediaType string
	author    string
	notes     string
	tags      string
	cover     string
}

func (f *entryFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.mediaType, "type", "t", "", "Media type (videogame, film, series, book, paper)")
	cmd.Flags().StringVar(&f.author, "author", "", "Author (books)")
	cmd.Flags().StringVar(&f.notes, "notes", "", "Free-form notes")
	cmd.Flags().StringVar(&f.tags, "tags", "", "Comma separated tags")
	cmd.Flags().StringVar(&f.cover, "cover", "", "Cover image URL")
}

func (f *entryFlags) candidate(title string) entry.Candidate {
	return entry.Candidate{
		Title:    title,
		Type:     f.mediaType,
		Author:   f.author,
		Notes:    f.notes,
		Tags:     f.tags,
		CoverURL: f.cover,
	}
}

func newAddCommand(ctx *commandContext) *cobra.Command {
	var flags entryFlags
	var start, finish, rating, status string

	cmd := &cobra.Command{
		Use:   "add TITLE",
		Short: "Add an entry you are consuming or have finished",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := flags.candidate(args[0])
			c.StartDate = start
			c.FinishDate = finish
			c.Rating = rating
			c.Intent = status
			return ctx.withDiary(cmd, func(runCtx context.Context, d *diary.Diary) error {
				e, err := d.AddActive(runCtx, c)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s %q (%s)\n", shortID(e.ID), e.Title, e.Status.Label())
				printSimilar(cmd, d.Similar(e))
				return nil
			})
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&finish, "finish", "", "Finish date (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&rating, "rating", "r", "", "Rating 1-10 or N/A")
	cmd.Flags().StringVar(&status, "status", "", "Requested status: completed or unknown-dates")
	return cmd
}

func newAddPendingCommand(ctx *commandContext) *cobra.Command {
	var flags entryFlags
	var hype string

	cmd := &cobra.Command{
		Use:     "add-pending TITLE",
		Aliases: []string{"want"},
		Short:   "Add an entry to the pending list",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := flags.candidate(args[0])
			c.HypeRating = hype
			return ctx.withDiary(cmd, func(runCtx context.Context, d *diary.Diary) error {
				e, err := d.AddPending(runCtx, c)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s %q to pending\n", shortID(e.ID), e.Title)
				printSimilar(cmd, d.Similar(e))
				return nil
			})
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&hype, "hype", "", "Hype rating 1-10")
	return cmd
}

func newStartCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "start ID",
		Short: "Start a pending entry today",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withDiary(cmd, func(_ context.Context, d *diary.Diary) error {
				e, err := d.Start(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Started %q on %s\n", e.Title, e.StartDate)
				return nil
			})
		},
	}
}

func newFinishCommand(ctx *commandContext) *cobra.Command {
	var rating string

	cmd := &cobra.Command{
		Use:   "finish ID",
		Short: "Mark an in-progress entry as finished",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := entry.ParseRating(rating)
			if err != nil {
				return &entry.ValidationError{Errors: []string{entry.MsgRatingRange}}
			}
			return ctx.withDiary(cmd, func(_ context.Context, d *diary.Diary) error {
				e, err := d.Finish(args[0], r)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if e.FinishDate.IsZero() {
					fmt.Fprintf(out, "Finished %q (rating %s)\n", e.Title, formatRating(e.Rating))
				} else {
					fmt.Fprintf(out, "Finished %q on %s (rating %s)\n", e.Title, e.FinishDate, formatRating(e.Rating))
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&rating, "rating", "r", "", "Rating 1-10 or N/A")
	return cmd
}

func newEditCommand(ctx *commandContext) *cobra.Command {
	var (
		title, mediaType, author, start, finish string
		rating, hype, notes, tags, cover        string
		clearStart, clearFinish, clearRating    bool
	)

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change fields of an entry; the status follows the new dates and rating",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			changed := cmd.Flags().Changed
			var patch collection.Patch
			set := func(flag string, value string, target **string) {
				if changed(flag) {
					*target = collection.String(value)
				}
			}
			set("title", title, &patch.Title)
			set("type", mediaType, &patch.Type)
			set("author", author, &patch.Author)
			set("start", start, &patch.StartDate)
			set("finish", finish, &patch.FinishDate)
			set("rating", rating, &patch.Rating)
			set("hype", hype, &patch.HypeRating)
			set("notes", notes, &patch.Notes)
			set("tags", tags, &patch.Tags)
			set("cover", cover, &patch.CoverURL)

			if clearStart {
				if changed("start") {
					return errors.New("--start and --clear-start are mutually exclusive")
				}
				patch.StartDate = collection.String("")
			}
			if clearFinish {
				if changed("finish") {
					return errors.New("--finish and --clear-finish are mutually exclusive")
				}
				patch.FinishDate = collection.String("")
			}
			if clearRating {
				if changed("rating") {
					return errors.New("--rating and --clear-rating are mutually exclusive")
				}
				patch.Rating = collection.String("")
			}
			if patch.IsEmpty() {
				return errors.New("nothing to change; pass at least one field flag")
			}

			return ctx.withDiary(cmd, func(_ context.Context, d *diary.Diary) error {
				before, err := d.Resolve(args[0])
				if err != nil {
					return err
				}
				e, err := d.Edit(before.ID, patch)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Updated %s %q\n", shortID(e.ID), e.Title)
				if e.Status != before.Status {
					fmt.Fprintf(out, "Status: %s -> %s\n", before.Status.Label(), e.Status.Label())
				}
				return nil
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&title, "title", "", "New title")
	flags.StringVarP(&mediaType, "type", "t", "", "New media type")
	flags.StringVar(&author, "author", "", "New author")
	flags.StringVar(&start, "start", "", "New start date (YYYY-MM-DD)")
	flags.StringVar(&finish, "finish", "", "New finish date (YYYY-MM-DD)")
	flags.StringVarP(&rating, "rating", "r", "", "New rating 1-10 or N/A")
	flags.StringVar(&hype, "hype", "", "New hype rating 1-10")
	flags.StringVar(&notes, "notes", "", "New notes")
	flags.StringVar(&tags, "tags", "", "Replacement comma separated tags")
	flags.StringVar(&cover, "cover", "", "New cover URL")
	flags.BoolVar(&clearStart, "clear-start", false, "Remove the start date")
	flags.BoolVar(&clearFinish, "clear-finish", false, "Remove the finish date")
	flags.BoolVar(&clearRating, "clear-rating", false, "Remove the rating")
	return cmd
}

func newRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"delete"},
		Short:   "Delete an entry",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref := strings.TrimSpace(args[0])
			return ctx.withDiary(cmd, func(_ context.Context, d *diary.Diary) error {
				e, err := d.Delete(ref)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s %q\n", shortID(e.ID), e.Title)
				return nil
			})
		},
	}
}

func printSimilar(cmd *cobra.Command, matches []diary.Match) {
	for _, m := range matches {
		fmt.Fprintf(cmd.OutOrStdout(), "Note: similar entry already exists: %s %q (%s)\n",
			shortID(m.Entry.ID), m.Entry.Title, m.Entry.Status.Label())
	}
}
