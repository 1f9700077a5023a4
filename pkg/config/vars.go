package config

import (
	"fmt"
	"path/filepath"
)

// MinVersionChecks is the smallest number of DOI resolutions that can
// confirm a new version.
const MinVersionChecks = 2

var (
	// AppName is used in generating file system paths.
	AppName = "exiodb"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/exiodb by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// CacheDir returns the directory path for cache files.
// Returns ~/.cache/exiodb by default.
func CacheDir(homeDir string) string {
	return filepath.Join(homeDir, ".cache", AppName)
}

// StagingDir returns the directory where EXIOBASE archives are downloaded
// and extracted. Returns ~/.cache/exiodb/exiostorage by default.
func StagingDir(homeDir string) string {
	return filepath.Join(CacheDir(homeDir), "exiostorage")
}

// DataDir returns the directory for persistent application state.
// Returns ~/.local/share/exiodb by default.
func DataDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/exiodb/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(DataDir(homeDir), "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/exiodb/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// VersionFilePath returns the file that keeps the last processed
// EXIOBASE version.
func VersionFilePath(homeDir string) string {
	return filepath.Join(DataDir(homeDir), "version.yaml")
}

// ArchiveName returns the file name of a year-specific archive,
// for example IOT_2019_ixi.zip.
func ArchiveName(year int, system string) string {
	return fmt.Sprintf("IOT_%d_%s.zip", year, system)
}

// ArchiveBase returns the archive name without extension. Extracted files
// of a year live in a directory with this name.
func ArchiveBase(year int, system string) string {
	return fmt.Sprintf("IOT_%d_%s", year, system)
}
