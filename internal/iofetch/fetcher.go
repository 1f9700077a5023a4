// Package iofetch retrieves EXIOBASE archives from Zenodo into the staging
// directory, unpacks them and removes them after a successful load.
package iofetch

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/gnames/exiodb/pkg/config"
	"github.com/hashicorp/go-retryablehttp"
)

// Fetcher implements lifecycle.Fetcher and lifecycle.Cleaner.
type Fetcher struct {
	source     config.SourceConfig
	stagingDir string
	stateFile  string
	client     *retryablehttp.Client

	// version is the record id found by the last CheckVersion.
	version string
}

// New creates a Fetcher for the source and directories of cfg.
func New(cfg *config.Config) *Fetcher {
	client := retryablehttp.NewClient()
	client.RetryMax = cfg.Source.Retries
	client.Logger = slog.Default()

	res := Fetcher{
		source:     cfg.Source,
		stagingDir: config.StagingDir(cfg.HomeDir),
		stateFile:  config.VersionFilePath(cfg.HomeDir),
		client:     client,
	}
	return &res
}

// StagingDir returns the directory where archives are downloaded.
func (f *Fetcher) StagingDir() string {
	return f.stagingDir
}

// archiveURL fills {version}, {year} and {system} placeholders.
func (f *Fetcher) archiveURL(version string, year int) string {
	r := strings.NewReplacer(
		"{version}", version,
		"{year}", strconv.Itoa(year),
		"{system}", f.source.System,
	)
	return r.Replace(f.source.ArchiveURL)
}
