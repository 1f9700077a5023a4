// Package iofs manages exiodb directories and local files.
package iofs

import (
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/gnames/exiodb/pkg/config"
	"github.com/gnames/exiodb/pkg/exio"
	"github.com/gnames/exiodb/pkg/lifecycle"
)

// ConfigYAML is the default config file written on first run.
//
//go:embed config.yaml
var ConfigYAML string

// EnsureDirs creates config, cache, staging, data and log directories.
func EnsureDirs(homeDir string) error {
	dirs := []string{
		config.ConfigDir(homeDir),
		config.CacheDir(homeDir),
		config.StagingDir(homeDir),
		config.DataDir(homeDir),
		config.LogDir(homeDir),
	}
	for _, v := range dirs {
		if err := touchDir(v); err != nil {
			return err
		}
	}
	return nil
}

func touchDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil && info.IsDir() {
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return CreateDirError(dir, err)
	}

	return nil
}

// EnsureConfigFile writes the default config.yaml unless it exists.
func EnsureConfigFile(homeDir string) error {
	configPath := config.ConfigFilePath(homeDir)

	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	if err := os.WriteFile(configPath, []byte(ConfigYAML), 0644); err != nil {
		return CopyFileError(configPath, err)
	}

	return nil
}

// ReadYearValues reads a CSV file of "value,year" lines. A first line
// that does not parse as numbers is treated as a header.
func ReadYearValues(path string) ([]lifecycle.YearValue, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ReadFileError(path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = 2
	r.TrimLeadingSpace = true

	var res []lifecycle.YearValue
	for line := 1; ; line++ {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, ReadFileError(path, err)
		}

		yv, err := parseYearValue(row)
		if err != nil {
			if line == 1 {
				continue
			}
			return nil, ReadFileError(path, fmt.Errorf("line %d: %w", line, err))
		}
		if err = exio.CheckYear(yv.Year); err != nil {
			return nil, ReadFileError(path, fmt.Errorf("line %d: %w", line, err))
		}
		res = append(res, yv)
	}
	return res, nil
}

func parseYearValue(row []string) (lifecycle.YearValue, error) {
	var res lifecycle.YearValue
	v, err := strconv.ParseFloat(strings.TrimSpace(row[0]), 64)
	if err != nil {
		return res, err
	}
	year, err := strconv.Atoi(strings.TrimSpace(row[1]))
	if err != nil {
		return res, err
	}
	res.Value, res.Year = v, year
	return res, nil
}
