package config

import (
	"errors"
	"fmt"
	"net/url"
	"slices"

	"mediadiary/internal/view"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateView(); err != nil {
		return err
	}
	if err := c.validateCovers(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if c.Storage.DatabaseFile == c.Storage.CSVFile {
		return errors.New("storage.database_file and storage.csv_file must differ")
	}
	return nil
}

func (c *Config) validateView() error {
	if _, ok := view.ParseKind(c.View.DefaultView); !ok {
		return fmt.Errorf("view.default_view: unsupported value %q (use overview or pending)", c.View.DefaultView)
	}
	if !slices.Contains(view.SortKeysFor(view.KindOverview), view.SortKey(c.View.OverviewSort)) {
		return fmt.Errorf("view.overview_sort: unsupported value %q", c.View.OverviewSort)
	}
	if !slices.Contains(view.SortKeysFor(view.KindPending), view.SortKey(c.View.PendingSort)) {
		return fmt.Errorf("view.pending_sort: unsupported value %q", c.View.PendingSort)
	}
	return nil
}

func (c *Config) validateCovers() error {
	u, err := url.Parse(c.Covers.PlaceholderBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("covers.placeholder_base_url: %q is not an http(s) URL", c.Covers.PlaceholderBaseURL)
	}
	if c.Covers.Width <= 0 || c.Covers.Height <= 0 {
		return errors.New("covers.width and covers.height must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}

// DefaultViewState returns the initial view state for kind using the
// configured sort key.
func (c *Config) DefaultViewState(kind view.Kind) view.State {
	st := view.DefaultState(kind)
	if kind == view.KindPending {
		st.Sort = view.SortKey(c.View.PendingSort)
	} else {
		st.Sort = view.SortKey(c.View.OverviewSort)
	}
	return st
}
