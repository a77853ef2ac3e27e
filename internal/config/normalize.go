package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeStorage(); err != nil {
		return err
	}
	c.normalizeView()
	c.normalizeCovers()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		if env, ok := os.LookupEnv(dataDirEnv); ok && strings.TrimSpace(env) != "" {
			c.Paths.DataDir = strings.TrimSpace(env)
		} else {
			c.Paths.DataDir = defaultDataDir
		}
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}

	var err error
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeStorage() error {
	if strings.TrimSpace(c.Storage.DatabaseFile) == "" {
		c.Storage.DatabaseFile = filepath.Join(c.Paths.DataDir, defaultDatabaseFileName)
	}
	if strings.TrimSpace(c.Storage.CSVFile) == "" {
		c.Storage.CSVFile = filepath.Join(c.Paths.DataDir, defaultCSVFileName)
	}

	var err error
	if c.Storage.DatabaseFile, err = expandPath(c.Storage.DatabaseFile); err != nil {
		return fmt.Errorf("storage.database_file: %w", err)
	}
	if c.Storage.CSVFile, err = expandPath(c.Storage.CSVFile); err != nil {
		return fmt.Errorf("storage.csv_file: %w", err)
	}
	if c.Storage.BusyRetries <= 0 {
		c.Storage.BusyRetries = defaultBusyRetries
	}
	return nil
}

func (c *Config) normalizeView() {
	c.View.DefaultView = lowerOr(c.View.DefaultView, defaultView)
	c.View.OverviewSort = lowerOr(c.View.OverviewSort, defaultSort)
	c.View.PendingSort = lowerOr(c.View.PendingSort, defaultSort)
}

func (c *Config) normalizeCovers() {
	c.Covers.PlaceholderBaseURL = strings.TrimRight(strings.TrimSpace(c.Covers.PlaceholderBaseURL), "/")
	if c.Covers.PlaceholderBaseURL == "" {
		c.Covers.PlaceholderBaseURL = defaultPlaceholderBaseURL
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = lowerOr(c.Logging.Format, defaultLogFormat)
	c.Logging.Level = lowerOr(c.Logging.Level, defaultLogLevel)
}

func lowerOr(value, fallback string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return fallback
	}
	return value
}
