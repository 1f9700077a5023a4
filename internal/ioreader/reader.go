// Package ioreader reads staged EXIOBASE satellite matrices into
// exio.WideMatrix values.
package ioreader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/gnames/exiodb/pkg/config"
	"github.com/gnames/exiodb/pkg/exio"
)

// Reader locates satellite files of a year in the staging directory.
type Reader struct {
	stagingDir string
	system     string
}

// New creates a Reader for the staging directory and EXIOBASE system
// of cfg.
func New(cfg *config.Config) *Reader {
	res := Reader{
		stagingDir: config.StagingDir(cfg.HomeDir),
		system:     cfg.Source.System,
	}
	return &res
}

// Path returns the location of a family matrix of the year.
func (r *Reader) Path(year int, f exio.Family) string {
	return filepath.Join(
		r.stagingDir,
		config.ArchiveBase(year, r.system),
		"satellite",
		f.FileName(),
	)
}

// Read parses the staged matrix of a year and family.
func (r *Reader) Read(year int, f exio.Family) (*exio.WideMatrix, error) {
	path := r.Path(year, f)
	file, err := os.Open(path)
	if err != nil {
		return nil, OpenMatrixError(path, err)
	}
	defer file.Close()

	return Parse(path, file, year, f)
}

// Parse reads a tab-separated matrix with two header levels. Line 1 holds
// regions, line 2 holds sectors, an optional line 3 holds the index name
// followed by empty cells. Every following line is a stressor label and
// its numeric cells. The source is used in error messages.
func Parse(
	source string,
	rd io.Reader,
	year int,
	f exio.Family,
) (*exio.WideMatrix, error) {
	r := csv.NewReader(rd)
	r.Comma = '\t'
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	regionRow, err := readRow(r, source)
	if err != nil {
		return nil, err
	}
	if regionRow == nil {
		return nil, malformed(source, "empty file")
	}
	sectorRow, err := readRow(r, source)
	if err != nil {
		return nil, err
	}
	if sectorRow == nil {
		return nil, malformed(source, "only one header line")
	}

	width := len(regionRow)
	if len(sectorRow) != width {
		return nil, malformed(source, fmt.Sprintf(
			"header levels have different width: %d and %d",
			width, len(sectorRow),
		))
	}
	if width < 2 {
		return nil, malformed(source, "no region/sector columns")
	}
	if allNumeric(sectorRow[1:]) {
		return nil, malformed(source, "second header line is numeric, single header level")
	}

	cols := make([]exio.Column, width-1)
	for i := 1; i < width; i++ {
		region := strings.TrimSpace(regionRow[i])
		sector := strings.TrimSpace(sectorRow[i])
		if region == "" || sector == "" {
			return nil, malformed(source, fmt.Sprintf("empty header cell in column %d", i+1))
		}
		cols[i-1] = exio.Column{Region: region, Sector: sector}
	}

	var stressors []string
	values := make([]float64, 0, (width-1)*1024)
	first := true
	line := 2
	for {
		row, err := readRow(r, source)
		if err != nil {
			return nil, err
		}
		if row == nil {
			break
		}
		line++

		if first {
			first = false
			if allEmpty(row[1:]) {
				// index name row
				continue
			}
			if noneNumeric(row[1:]) {
				return nil, malformed(source, "third header level is not supported")
			}
		}

		if len(row) != width {
			return nil, malformed(source, fmt.Sprintf(
				"row %d has %d cells, expected %d", line, len(row), width,
			))
		}
		label := strings.TrimSpace(row[0])
		if label == "" {
			return nil, malformed(source, fmt.Sprintf("row %d has no stressor label", line))
		}

		for i, cell := range row[1:] {
			v, err := parseCell(cell)
			if err != nil {
				return nil, malformed(source, fmt.Sprintf(
					"row %d, column %d: %s", line, i+2, err,
				))
			}
			values = append(values, v)
		}
		stressors = append(stressors, label)
	}

	return exio.NewWideMatrix(source, year, f, stressors, cols, values)
}

// SameVocabulary checks that two matrices of a year expose identical
// region and sector labels.
func SameVocabulary(a, b *exio.WideMatrix) error {
	if !slices.Equal(a.Regions(), b.Regions()) {
		return malformed(
			b.Family.FileName(),
			fmt.Sprintf("regions differ from %s", a.Family.FileName()),
		)
	}
	if !slices.Equal(a.Sectors(), b.Sectors()) {
		return malformed(
			b.Family.FileName(),
			fmt.Sprintf("sectors differ from %s", a.Family.FileName()),
		)
	}
	return nil
}

// readRow returns nil at the end of input.
func readRow(r *csv.Reader, source string) ([]string, error) {
	row, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, malformed(source, err.Error())
	}
	return row, nil
}

func parseCell(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("empty cell")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number %q", s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("not a finite number %q", s)
	}
	return v, nil
}

func allNumeric(cells []string) bool {
	for _, v := range cells {
		if _, err := parseCell(v); err != nil {
			return false
		}
	}
	return len(cells) > 0
}

func noneNumeric(cells []string) bool {
	for _, v := range cells {
		if _, err := parseCell(v); err == nil {
			return false
		}
	}
	return true
}

func allEmpty(cells []string) bool {
	for _, v := range cells {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func malformed(source, reason string) error {
	return exio.MalformedSourceError(source, reason)
}
