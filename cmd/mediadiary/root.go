package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var verbose bool

	ctx := newCommandContext(&configFlag, &verbose)

	rootCmd := &cobra.Command{
		Use:           "mediadiary",
		Short:         "Track the books, films, series, games and papers you consume",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(newAddCommand(ctx))
	rootCmd.AddCommand(newAddPendingCommand(ctx))
	rootCmd.AddCommand(newStartCommand(ctx))
	rootCmd.AddCommand(newFinishCommand(ctx))
	rootCmd.AddCommand(newEditCommand(ctx))
	rootCmd.AddCommand(newRemoveCommand(ctx))
	rootCmd.AddCommand(newListCommand(ctx))
	rootCmd.AddCommand(newShowCommand(ctx))
	rootCmd.AddCommand(newStatsCommand(ctx))
	rootCmd.AddCommand(newExportCommand(ctx))
	rootCmd.AddCommand(newImportCommand(ctx))
	rootCmd.AddCommand(newDoctorCommand(ctx))
	rootCmd.AddCommand(newLogsCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
