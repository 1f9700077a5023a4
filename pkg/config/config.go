// Package config provides configuration management for exiodb.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Database: host, port, user, password, database, ssl_mode
//   - Source: doi_url, archive_url, system, max_version_checks, retries
//   - Server: port
//   - Log: level, format, destination
//
// Runtime-only fields (CLI flags only):
//   - Populate.Years, Force, KeepStaging (per-command)
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use EXIODB_ prefix with underscores for nesting:
//
//	EXIODB_DATABASE_HOST=localhost
//	EXIODB_DATABASE_PORT=5432
//	EXIODB_SOURCE_SYSTEM=ixi
//	EXIODB_LOG_LEVEL=info
package config

// Config represents the complete exiodb configuration.
type Config struct {
	// Database contains PostgreSQL connection settings.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	// Source describes where EXIOBASE archives come from.
	Source SourceConfig `mapstructure:"source" yaml:"source"`

	// Populate contains settings specific to the populate command.
	Populate PopulateConfig `mapstructure:"populate" yaml:"populate"`

	// Server contains settings of the query service.
	Server ServerConfig `mapstructure:"server" yaml:"server"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	// Host is the PostgreSQL server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the PostgreSQL server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the PostgreSQL database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the PostgreSQL database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the PostgreSQL database name to connect to.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`
}

// SourceConfig describes the upstream EXIOBASE provider.
type SourceConfig struct {
	// DOIURL is the concept DOI that always redirects to the latest
	// EXIOBASE record.
	DOIURL string `mapstructure:"doi_url" yaml:"doi_url"`

	// ArchiveURL is a template of the archive location. Placeholders:
	// {version} (record id), {year}, {system}.
	ArchiveURL string `mapstructure:"archive_url" yaml:"archive_url"`

	// System is the EXIOBASE table system, "ixi" (industry by industry)
	// or "pxp" (product by product).
	System string `mapstructure:"system" yaml:"system"`

	// MaxVersionChecks bounds how many times the DOI is resolved while
	// waiting for the upstream redirect to become stable.
	MaxVersionChecks int `mapstructure:"max_version_checks" yaml:"max_version_checks"`

	// Retries is the number of HTTP retries for resolving and downloading.
	Retries int `mapstructure:"retries" yaml:"retries"`
}

// PopulateConfig contains settings specific to the populate command.
type PopulateConfig struct {
	// Years to process, in the given order. Empty means the current year
	// and the year before it.
	Years []int `mapstructure:"years" yaml:"years"`

	// Force runs the pipeline even if the upstream version did not change.
	Force bool `mapstructure:"force" yaml:"force"`

	// KeepStaging leaves downloaded archives and extracted files in place
	// after a successful load.
	KeepStaging bool `mapstructure:"keep_staging" yaml:"keep_staging"`
}

// ServerConfig contains settings of the HTTP query service.
type ServerConfig struct {
	// Port the query service listens on.
	Port int `mapstructure:"port" yaml:"port"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "postgres",
			Password: "postgres",
			Database: "exiobase",
			SSLMode:  "disable",
		},
		Source: SourceConfig{
			DOIURL:           "https://doi.org/10.5281/zenodo.3583070",
			ArchiveURL:       "https://zenodo.org/records/{version}/files/IOT_{year}_{system}.zip?download=1",
			System:           "ixi",
			MaxVersionChecks: 5,
			Retries:          3,
		},
		Server: ServerConfig{
			Port: 8080,
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
	}

	return res
}
