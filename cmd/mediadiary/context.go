package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"mediadiary/internal/collection"
	"mediadiary/internal/config"
	"mediadiary/internal/diary"
	"mediadiary/internal/logging"
)

type commandContext struct {
	configFlag *string
	verbose    *bool

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag *string, verbose *bool) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		verbose:    verbose,
	}
}

func (c *commandContext) configPath() string {
	if c.configFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.configFlag)
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, _, err := config.Load(c.configPath())
		if err != nil {
			c.configErr = err
			return
		}
		if c.verbose != nil && *c.verbose {
			cfg.Logging.Level = "debug"
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.NewFromConfig(cfg)
	})
	return c.logger, c.loggerErr
}

// withDiary opens a diary session for the duration of fn. Persistence
// failures are reported as warnings; the command result stands because the
// in-memory change was applied.
func (c *commandContext) withDiary(cmd *cobra.Command, fn func(context.Context, *diary.Diary) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	d, err := diary.Open(ctx, cfg, logger)
	if err != nil {
		if errors.Is(err, diary.ErrSessionActive) {
			return fmt.Errorf("%w; wait for the other command to finish", err)
		}
		return fmt.Errorf("open diary: %w", err)
	}

	runErr := fn(ctx, d)
	closeErr := d.Close(ctx)

	var persistErr *collection.PersistenceError
	if errors.As(closeErr, &persistErr) {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", persistErr)
		closeErr = nil
	}
	if runErr != nil {
		return runErr
	}
	return closeErr
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
