package lifecycle

import (
	"context"

	"github.com/gnames/exiodb/pkg/exio"
)

// VersionInfo describes the result of an upstream version check.
type VersionInfo struct {
	// Previous is the version token persisted by the last run, empty on
	// the first run.
	Previous string
	// Current is the version token resolved from the concept DOI.
	Current string
	// Changed is true when Current differs from Previous.
	Changed bool
}

// Fetcher retrieves EXIOBASE archives into the staging area.
type Fetcher interface {
	// CheckVersion resolves the current upstream release and compares it
	// with the persisted one.
	CheckVersion(ctx context.Context) (*VersionInfo, error)

	// SaveVersion persists a version token. It is used to restore the
	// previous token when a run loads nothing, so the next run retries.
	SaveVersion(version string) error

	// Fetch downloads the archive of a year and returns its local path.
	// An existing archive is overwritten.
	Fetch(ctx context.Context, year int) (string, error)

	// Unpack extracts a staged archive and returns the extracted directory.
	Unpack(archivePath string) (string, error)
}

// Cleaner removes staged files of a year after a successful load.
type Cleaner interface {
	Cleanup(year int) error
}

// MatrixReader reads a staged satellite matrix of a year.
type MatrixReader interface {
	Read(year int, f exio.Family) (*exio.WideMatrix, error)
}
