package exio

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Column identifies one (region, sector) column of a wide matrix.
type Column struct {
	Region string
	Sector string
}

// WideMatrix is an EXIOBASE satellite matrix as published: rows are
// stressors, columns are (region, sector) pairs.
type WideMatrix struct {
	Year      int
	Family    Family
	Stressors []string
	Columns   []Column
	// Values has len(Stressors) rows and len(Columns) columns.
	Values *mat.Dense
}

// NewWideMatrix creates a WideMatrix from row-major values. The source is
// used in error messages only.
func NewWideMatrix(
	source string,
	year int,
	f Family,
	stressors []string,
	cols []Column,
	values []float64,
) (*WideMatrix, error) {
	if len(stressors) == 0 {
		return nil, MalformedSourceError(source, "no stressor rows")
	}
	if len(cols) == 0 {
		return nil, MalformedSourceError(source, "no region/sector columns")
	}
	if len(values) != len(stressors)*len(cols) {
		reason := fmt.Sprintf(
			"expected %d cells, got %d",
			len(stressors)*len(cols), len(values),
		)
		return nil, MalformedSourceError(source, reason)
	}

	res := WideMatrix{
		Year:      year,
		Family:    f,
		Stressors: stressors,
		Columns:   cols,
		Values:    mat.NewDense(len(stressors), len(cols), values),
	}
	return &res, nil
}

// Regions returns distinct region labels in first-seen order.
func (m *WideMatrix) Regions() []string {
	return distinct(m.Columns, func(c Column) string { return c.Region })
}

// Sectors returns distinct sector labels in first-seen order.
func (m *WideMatrix) Sectors() []string {
	return distinct(m.Columns, func(c Column) string { return c.Sector })
}

func distinct(cols []Column, key func(Column) string) []string {
	seen := make(map[string]struct{})
	var res []string
	for _, c := range cols {
		k := key(c)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		res = append(res, k)
	}
	return res
}
