package config

import (
	"slices"
	"strings"

	"github.com/gnames/exiodb/pkg/exio"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptDatabaseHost sets the PostgreSQL server hostname or IP address.
func OptDatabaseHost(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Host", s) {
			c.Database.Host = s
		}
	}
}

// OptDatabasePort sets the PostgreSQL server port number.
func OptDatabasePort(i int) Option {
	return func(c *Config) {
		if isValidInt("Database Port", i) {
			c.Database.Port = i
		}
	}
}

// OptDatabaseUser sets the PostgreSQL database username.
func OptDatabaseUser(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database User", s) {
			c.Database.User = s
		}
	}
}

// OptDatabasePassword sets the PostgreSQL database password.
func OptDatabasePassword(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Password", s) {
			c.Database.Password = s
		}
	}
}

// OptDatabaseDatabase sets the PostgreSQL database name to connect to.
func OptDatabaseDatabase(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Name", s) {
			c.Database.Database = s
		}
	}
}

// OptDatabaseSSLMode sets the SSL connection mode.
// Valid values: "disable", "require", "verify-ca", "verify-full".
func OptDatabaseSSLMode(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Database.SSLMode", s) {
			c.Database.SSLMode = s
		}
	}
}

// OptSourceDOIURL sets the concept DOI used to find the latest version.
func OptSourceDOIURL(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidURL("Source DOI URL", s) {
			c.Source.DOIURL = s
		}
	}
}

// OptSourceArchiveURL sets the archive URL template. The template must
// contain the {year} placeholder.
func OptSourceArchiveURL(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if !isValidURL("Source Archive URL", s) {
			return
		}
		if !strings.Contains(s, "{year}") {
			warnf("<em>Source Archive URL</em> must contain {year}, ignoring")
			return
		}
		c.Source.ArchiveURL = s
	}
}

// OptSourceSystem sets the EXIOBASE table system.
// Valid values: "ixi", "pxp".
func OptSourceSystem(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Source.System", s) {
			c.Source.System = s
		}
	}
}

// OptSourceMaxVersionChecks bounds the number of DOI resolutions made
// while the upstream version settles. A new version needs two agreeing
// resolutions, so values below 2 are ignored.
func OptSourceMaxVersionChecks(i int) Option {
	return func(c *Config) {
		if i < MinVersionChecks {
			warnf("<em>Max Version Checks</em> has to be at least %d, ignoring %d",
				MinVersionChecks, i)
			return
		}
		c.Source.MaxVersionChecks = i
	}
}

// OptSourceRetries sets the number of HTTP retries. Zero disables retries.
func OptSourceRetries(i int) Option {
	return func(c *Config) {
		if i < 0 {
			warnf("<em>Source Retries</em> cannot be negative, ignoring %d", i)
			return
		}
		c.Source.Retries = i
	}
}

// OptPopulateYears sets the years to process.
// Runtime-only field - not in ToOptions().
func OptPopulateYears(ii []int) Option {
	return func(c *Config) {
		var years []int
		for _, y := range ii {
			if exio.CheckYear(y) != nil {
				warnf("<em>Year</em> %d is out of range, ignoring", y)
				continue
			}
			if !slices.Contains(years, y) {
				years = append(years, y)
			}
		}
		if len(years) > 0 {
			c.Populate.Years = years
		}
	}
}

// OptPopulateForce runs the pipeline even if the version did not change.
// Runtime-only field - not in ToOptions().
func OptPopulateForce(b bool) Option {
	return func(c *Config) {
		c.Populate.Force = b
	}
}

// OptPopulateKeepStaging keeps staged files after a successful load.
// Runtime-only field - not in ToOptions().
func OptPopulateKeepStaging(b bool) Option {
	return func(c *Config) {
		c.Populate.KeepStaging = b
	}
}

// OptServerPort sets the port of the query service.
func OptServerPort(i int) Option {
	return func(c *Config) {
		if isValidInt("Server Port", i) {
			c.Server.Port = i
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text", "tint".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptHomeDir sets the home directory for config, cache, and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}
