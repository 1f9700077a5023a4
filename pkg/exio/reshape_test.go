package exio_test

import (
	"fmt"
	"testing"

	"github.com/gnames/exiodb/pkg/errcode"
	"github.com/gnames/exiodb/pkg/exio"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sample builds a matrix with the given regions and sectors, cell values
// encode their row and column: value = row*100 + col.
func sample(t *testing.T, regions, sectors, stressors []string) *exio.WideMatrix {
	t.Helper()
	var cols []exio.Column
	for _, r := range regions {
		for _, s := range sectors {
			cols = append(cols, exio.Column{Region: r, Sector: s})
		}
	}
	values := make([]float64, 0, len(stressors)*len(cols))
	for i := range stressors {
		for j := range cols {
			values = append(values, float64(i*100+j))
		}
	}
	m, err := exio.NewWideMatrix("test", 2020, exio.Production, stressors, cols, values)
	require.NoError(t, err)
	return m
}

func TestReshapeRoundTrip(t *testing.T) {
	regions := []string{"FR", "DE", "WA"}
	sectors := []string{"Paddy rice", "Wheat"}
	stressors := []string{"CO2 - combustion - air", "CH4 - agriculture - air"}
	m := sample(t, regions, sectors, stressors)

	p, err := exio.Reshape(m)
	require.NoError(t, err)

	assert.Equal(t, []string{"fr", "de", "wa"}, p.Regions)
	assert.Equal(t, []string{"paddy_rice", "wheat"}, p.Sectors)
	assert.Equal(t, 2020, p.Year)
	assert.Equal(t, exio.Production, p.Family)
	assert.Equal(t, len(stressors)*len(m.Columns), p.Len())

	// every (stressor, region, sector) cell can be recovered from records
	for ri, r := range p.Regions {
		recs := p.Records(r)
		require.Len(t, recs, len(stressors)*len(sectors))
		for i, rec := range recs {
			si := i / len(sectors)
			ki := i % len(sectors)
			col := ri*len(sectors) + ki
			assert.Equal(t, p.Stressors[si], rec.Stressor)
			assert.Equal(t, p.Sectors[ki], rec.Sector)
			assert.Equal(t, r, rec.Region)
			assert.Equal(t, m.Values.At(si, col), rec.Value)
			assert.Equal(t, 2020, rec.Year)
		}
	}
}

func TestReshapeColumnOrder(t *testing.T) {
	// sectors of the second region appear in a different order
	cols := []exio.Column{
		{Region: "AT", Sector: "Wheat"},
		{Region: "AT", Sector: "Rice"},
		{Region: "BE", Sector: "Rice"},
		{Region: "BE", Sector: "Wheat"},
	}
	values := []float64{1, 2, 3, 4}
	m, err := exio.NewWideMatrix("test", 2021, exio.Consumption, []string{"co2"}, cols, values)
	require.NoError(t, err)

	p, err := exio.Reshape(m)
	require.NoError(t, err)

	be := p.Records("be")
	require.Len(t, be, 2)
	assert.Equal(t, "wheat", be[0].Sector)
	assert.Equal(t, 4.0, be[0].Value)
	assert.Equal(t, "rice", be[1].Sector)
	assert.Equal(t, 3.0, be[1].Value)
}

func TestReshapeNonNegative(t *testing.T) {
	cols := []exio.Column{
		{Region: "FR", Sector: "A"},
		{Region: "FR", Sector: "B"},
		{Region: "DE", Sector: "A"},
		{Region: "DE", Sector: "B"},
	}
	values := []float64{-1.5, 0, 2.5, -1e-9}
	m, err := exio.NewWideMatrix("test", 2020, exio.Production, []string{"x"}, cols, values)
	require.NoError(t, err)

	p, err := exio.Reshape(m)
	require.NoError(t, err)

	for _, r := range p.Regions {
		for _, rec := range p.Records(r) {
			assert.GreaterOrEqual(t, rec.Value, 0.0)
		}
	}
	assert.Equal(t, 0.0, p.Records("fr")[0].Value)
	assert.Equal(t, 2.5, p.Records("de")[0].Value)
}

func TestReshapePartition(t *testing.T) {
	regions := make([]string, 0, 49)
	for i := range 49 {
		regions = append(regions, fmt.Sprintf("r%02d", i))
	}
	m := sample(t, regions, []string{"a", "b", "c"}, []string{"s1", "s2"})

	p, err := exio.Reshape(m)
	require.NoError(t, err)
	assert.Len(t, p.Regions, 49)

	type cell struct{ stressor, sector, region string }
	seen := make(map[cell]int)
	var total int
	for _, r := range p.Regions {
		for _, rec := range p.Records(r) {
			assert.Equal(t, r, rec.Region)
			seen[cell{rec.Stressor, rec.Sector, rec.Region}]++
			total++
		}
	}
	assert.Equal(t, 2*3*49, total)
	for k, v := range seen {
		assert.Equal(t, 1, v, "cell %v", k)
	}
}

func TestReshapeShapeMismatch(t *testing.T) {
	tests := []struct {
		msg       string
		stressors []string
		cols      []exio.Column
	}{
		{
			msg:       "missing sector in a region",
			stressors: []string{"co2"},
			cols: []exio.Column{
				{Region: "FR", Sector: "A"},
				{Region: "FR", Sector: "B"},
				{Region: "DE", Sector: "A"},
				{Region: "DE", Sector: "C"},
			},
		},
		{
			msg:       "region with fewer sectors",
			stressors: []string{"co2"},
			cols: []exio.Column{
				{Region: "FR", Sector: "A"},
				{Region: "FR", Sector: "B"},
				{Region: "DE", Sector: "A"},
				{Region: "NL", Sector: "B"},
			},
		},
		{
			msg:       "duplicate column",
			stressors: []string{"co2"},
			cols: []exio.Column{
				{Region: "FR", Sector: "A"},
				{Region: "FR", Sector: "a"},
			},
		},
		{
			msg:       "duplicate stressor after normalization",
			stressors: []string{"CO2 air", "co2_air"},
			cols: []exio.Column{
				{Region: "FR", Sector: "A"},
			},
		},
	}

	for _, v := range tests {
		values := make([]float64, len(v.stressors)*len(v.cols))
		m, err := exio.NewWideMatrix("test", 2020, exio.Production, v.stressors, v.cols, values)
		require.NoError(t, err, v.msg)

		p, err := exio.Reshape(m)
		assert.Nil(t, p, v.msg)
		require.Error(t, err, v.msg)
		gnErr, ok := err.(*gn.Error)
		require.True(t, ok, v.msg)
		assert.Equal(t, errcode.ShapeMismatchError, gnErr.Code, v.msg)
	}
}

func TestNewWideMatrixMalformed(t *testing.T) {
	cols := []exio.Column{{Region: "FR", Sector: "A"}}

	_, err := exio.NewWideMatrix("D_pba.txt", 2020, exio.Production, nil, cols, nil)
	require.Error(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.MalformedSourceError, gnErr.Code)

	_, err = exio.NewWideMatrix("D_pba.txt", 2020, exio.Production, []string{"x"}, cols, []float64{1, 2})
	require.Error(t, err)
	gnErr, ok = err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.MalformedSourceError, gnErr.Code)
	assert.Equal(t, "D_pba.txt", gnErr.Vars[0])
}

func TestMatrixVocabulary(t *testing.T) {
	m := sample(t, []string{"FR", "DE"}, []string{"A", "B"}, []string{"x"})
	assert.Equal(t, []string{"FR", "DE"}, m.Regions())
	assert.Equal(t, []string{"A", "B"}, m.Sectors())
}
