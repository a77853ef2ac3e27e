package config

const (
	defaultConfigPath         = "~/.config/mediadiary/config.toml"
	defaultDataDir            = "~/.local/share/mediadiary"
	defaultLogDir             = "~/.local/state/mediadiary/logs"
	defaultDatabaseFileName   = "diary.db"
	defaultCSVFileName        = "entries.csv"
	defaultBusyRetries        = 5
	defaultView               = "overview"
	defaultSort               = "created-desc"
	defaultPlaceholderBaseURL = "https://placehold.co"
	defaultCoverWidth         = 300
	defaultCoverHeight        = 450
	defaultLogFormat          = "console"
	defaultLogLevel           = "warn"

	dataDirEnv = "MEDIADIARY_DATA_DIR"
)

// Default returns a Config populated with repository defaults. Storage file
// paths stay empty and are derived from the data directory during Load.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir: defaultLogDir,
		},
		Storage: Storage{
			MirrorCSV:      true,
			BackupOnExport: true,
			BusyRetries:    defaultBusyRetries,
		},
		View: View{
			DefaultView:  defaultView,
			OverviewSort: defaultSort,
			PendingSort:  defaultSort,
		},
		Covers: Covers{
			PlaceholderBaseURL: defaultPlaceholderBaseURL,
			Width:              defaultCoverWidth,
			Height:             defaultCoverHeight,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
