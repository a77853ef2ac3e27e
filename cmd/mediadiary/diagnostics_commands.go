package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mediadiary/internal/logs"
	"mediadiary/internal/preflight"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check data paths, the database, and the session lock",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			results := preflight.RunAll(cmd.Context(), cfg, logger)
			failed := preflight.Failed(results)

			if asJSON {
				if err := writeJSON(cmd.OutOrStdout(), results); err != nil {
					return err
				}
			} else {
				stdout := cmd.OutOrStdout()
				colorize := shouldColorize(stdout)
				for _, r := range results {
					kind := statusOK
					if !r.Passed {
						kind = statusError
					}
					fmt.Fprintln(stdout, renderStatusLine(r.Name, kind, r.Detail, colorize))
				}
			}

			if len(failed) > 0 {
				return fmt.Errorf("%d of %d checks failed", len(failed), len(results))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output results as JSON")
	return cmd
}

func newLogsCommand(ctx *commandContext) *cobra.Command {
	var lines int
	var follow bool
	var grep string

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show the mediadiary log file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if lines < 0 {
				return fmt.Errorf("--lines must be zero or positive")
			}
			stdout := cmd.OutOrStdout()
			path := cfg.LogFile()
			if !cfg.Logging.File {
				fmt.Fprintf(cmd.ErrOrStderr(), "Note: file logging is disabled (set logging.file = true); reading %s\n", path)
			}

			filter := logs.Filter(grep)
			tail, offset, err := logs.Last(path, lines, filter)
			if err != nil {
				return err
			}
			for _, line := range tail {
				fmt.Fprintln(stdout, line)
			}
			if !follow {
				return nil
			}

			return logs.Follow(cmd.Context(), path, offset, logs.DefaultPollInterval, filter, func(line string) error {
				_, err := fmt.Fprintln(stdout, line)
				return err
			})
		},
	}
	cmd.Flags().IntVarP(&lines, "lines", "n", 20, "Number of trailing lines to show")
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Keep printing new lines until interrupted")
	cmd.Flags().StringVar(&grep, "grep", "", "Only show lines containing this text (case-insensitive)")
	return cmd
}
