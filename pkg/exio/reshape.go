package exio

import (
	"fmt"
)

// Reshape flattens a wide matrix into long records partitioned by region.
//
// Labels are normalized and negative values are floored to zero. Columns
// are located through an explicit region to sector index, so every region
// must carry exactly the matrix sector vocabulary. Any deviation (duplicate
// columns or stressors, missing sectors) is a ShapeMismatch error and no
// records are produced.
func Reshape(m *WideMatrix) (*RegionPartition, error) {
	if m == nil || m.Values == nil {
		return nil, ShapeMismatchError(0, "", "empty matrix")
	}
	rows, cols := m.Values.Dims()
	if rows != len(m.Stressors) || cols != len(m.Columns) {
		reason := fmt.Sprintf(
			"labels %dx%d do not match values %dx%d",
			len(m.Stressors), len(m.Columns), rows, cols,
		)
		return nil, ShapeMismatchError(m.Year, m.Family, reason)
	}

	stressors, err := normStressors(m)
	if err != nil {
		return nil, err
	}

	regions, sectors, index, err := columnIndex(m)
	if err != nil {
		return nil, err
	}

	res := RegionPartition{
		Year:      m.Year,
		Family:    m.Family,
		Regions:   regions,
		Sectors:   sectors,
		Stressors: stressors,
		records:   make(map[string][]LongRecord, len(regions)),
	}

	// columnIndex guarantees every region has a column for every sector.
	want := len(stressors) * len(sectors)
	for _, region := range regions {
		secIdx := index[region]
		recs := make([]LongRecord, 0, want)
		for i, stressor := range stressors {
			for _, sector := range sectors {
				col := secIdx[sector]
				recs = append(recs, LongRecord{
					Stressor: stressor,
					Sector:   sector,
					Region:   region,
					Value:    floor(m.Values.At(i, col)),
					Year:     m.Year,
				})
			}
		}
		res.records[region] = recs
	}

	return &res, nil
}

func normStressors(m *WideMatrix) ([]string, error) {
	res := make([]string, len(m.Stressors))
	seen := make(map[string]struct{}, len(m.Stressors))
	for i, s := range m.Stressors {
		n := Normalize(s)
		if n == "" {
			reason := fmt.Sprintf("empty stressor label in row %d", i+1)
			return nil, ShapeMismatchError(m.Year, m.Family, reason)
		}
		if _, ok := seen[n]; ok {
			reason := fmt.Sprintf("duplicate stressor %q", n)
			return nil, ShapeMismatchError(m.Year, m.Family, reason)
		}
		seen[n] = struct{}{}
		res[i] = n
	}
	return res, nil
}

// columnIndex maps every region to its sectors and their column positions.
// It rejects a grid where some region lacks a sector or repeats one, so
// each region index holds exactly the returned sectors.
func columnIndex(
	m *WideMatrix,
) ([]string, []string, map[string]map[string]int, error) {
	var regions, sectors []string
	index := make(map[string]map[string]int)
	sectorSeen := make(map[string]struct{})

	for i, c := range m.Columns {
		region, sector := Normalize(c.Region), Normalize(c.Sector)
		if region == "" || sector == "" {
			reason := fmt.Sprintf("empty region or sector label in column %d", i+1)
			return nil, nil, nil, ShapeMismatchError(m.Year, m.Family, reason)
		}

		secIdx, ok := index[region]
		if !ok {
			secIdx = make(map[string]int)
			index[region] = secIdx
			regions = append(regions, region)
		}
		if _, dup := secIdx[sector]; dup {
			reason := fmt.Sprintf("duplicate column (%s, %s)", region, sector)
			return nil, nil, nil, ShapeMismatchError(m.Year, m.Family, reason)
		}
		secIdx[sector] = i

		if _, ok := sectorSeen[sector]; !ok {
			sectorSeen[sector] = struct{}{}
			sectors = append(sectors, sector)
		}
	}

	for _, region := range regions {
		if n := len(index[region]); n != len(sectors) {
			reason := fmt.Sprintf(
				"region %q has %d of %d sectors", region, n, len(sectors),
			)
			return nil, nil, nil, ShapeMismatchError(m.Year, m.Family, reason)
		}
	}
	return regions, sectors, index, nil
}

// floor replaces negative values (and negative zero) with zero.
func floor(v float64) float64 {
	if v <= 0 {
		return 0
	}
	return v
}
