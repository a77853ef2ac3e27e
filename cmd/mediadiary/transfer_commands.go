package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"mediadiary/internal/config"
	"mediadiary/internal/diary"
)

func defaultExportName(now time.Time) string {
	return fmt.Sprintf("mediadiary-export-%s.csv", now.Format("2006-01-02"))
}

func newExportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "export [PATH]",
		Short: "Write every entry to a CSV file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := defaultExportName(time.Now())
			if len(args) == 1 && strings.TrimSpace(args[0]) != "" {
				target = args[0]
			}
			path, err := config.ExpandPath(target)
			if err != nil {
				return fmt.Errorf("resolve export path: %w", err)
			}
			return ctx.withDiary(cmd, func(runCtx context.Context, d *diary.Diary) error {
				res, err := d.Export(runCtx, path)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Exported %d entries to %s\n", res.Entries, res.Path)
				if res.BackupPath != "" {
					fmt.Fprintf(out, "Previous file saved as %s\n", res.BackupPath)
				}
				return nil
			})
		},
	}
}

func newImportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "import PATH",
		Short: "Merge entries from a CSV file, replacing entries with the same id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ExpandPath(args[0])
			if err != nil {
				return fmt.Errorf("resolve import path: %w", err)
			}
			return ctx.withDiary(cmd, func(runCtx context.Context, d *diary.Diary) error {
				res, err := d.Import(runCtx, path)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Imported %d new, %d updated, %d skipped\n", res.Added, res.Updated, len(res.Skipped))
				for _, rowErr := range res.Skipped {
					fmt.Fprintf(out, "  %v\n", rowErr)
				}
				return nil
			})
		},
	}
}
