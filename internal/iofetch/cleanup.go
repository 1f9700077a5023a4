package iofetch

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gnames/exiodb/pkg/config"
)

// Cleanup removes the extracted directory and the archive of a year.
// Missing files are not an error.
func (f *Fetcher) Cleanup(year int) error {
	paths := []string{
		filepath.Join(f.stagingDir, config.ArchiveBase(year, f.source.System)),
		filepath.Join(f.stagingDir, config.ArchiveName(year, f.source.System)),
	}

	for _, v := range paths {
		if err := os.RemoveAll(v); err != nil {
			return StagingCleanupError(v, err)
		}
	}

	slog.Info("Removed staged files", "year", year)
	return nil
}
