package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"mediadiary/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigInitCommand())
	configCmd.AddCommand(newConfigValidateCommand(ctx))
	configCmd.AddCommand(newConfigShowCommand(ctx))

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := initTarget(targetPath)
			if err != nil {
				return err
			}
			if err := config.CreateSample(target, overwrite); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintln(out, "Edit data_dir to keep the diary somewhere other than ~/.local/share/mediadiary.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing configuration if present")
	return cmd
}

func initTarget(flagValue string) (string, error) {
	if target := strings.TrimSpace(flagValue); target != "" {
		expanded, err := config.ExpandPath(target)
		if err != nil {
			return "", fmt.Errorf("resolve config path: %w", err)
		}
		return expanded, nil
	}
	target, err := config.DefaultConfigPath()
	if err != nil {
		return "", fmt.Errorf("determine default config path: %w", err)
	}
	return target, nil
}

func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:         "validate",
		Short:       "Validate configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, src, err := config.Load(ctx.configPath())
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return fmt.Errorf("ensure directories: %w", err)
			}
			out := cmd.OutOrStdout()
			describeConfig(out, cfg, src)
			fmt.Fprintln(out, "Configuration valid")
			return nil
		},
	}
}

func newConfigShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as TOML",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			return cfg.Encode(cmd.OutOrStdout())
		},
	}
}

func describeConfig(out io.Writer, cfg *config.Config, src config.Source) {
	fmt.Fprintf(out, "Config path: %s\n", src.Path)
	if !src.Exists {
		fmt.Fprintln(out, "Config file did not exist; defaults were used")
	}
	fmt.Fprintf(out, "Data directory: %s\n", cfg.Paths.DataDir)
	fmt.Fprintf(out, "Database: %s\n", cfg.Storage.DatabaseFile)
	if cfg.Storage.MirrorCSV {
		fmt.Fprintf(out, "CSV mirror: %s\n", cfg.Storage.CSVFile)
	} else {
		fmt.Fprintln(out, "CSV mirror: disabled")
	}
	if cfg.Logging.File {
		fmt.Fprintf(out, "Log file: %s\n", cfg.LogFile())
	}
}
