package ioload_test

import (
	"context"
	"testing"

	"github.com/gnames/exiodb/internal/ioload"
	"github.com/gnames/exiodb/pkg/errcode"
	"github.com/gnames/exiodb/pkg/exio"
	"github.com/gnames/exiodb/pkg/lifecycle"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func partition(t *testing.T, year int, regions ...string) *exio.RegionPartition {
	t.Helper()
	sectors := []string{"wheat", "rice"}
	stressors := []string{"co2", "ch4"}

	var cols []exio.Column
	for _, r := range regions {
		for _, s := range sectors {
			cols = append(cols, exio.Column{Region: r, Sector: s})
		}
	}
	values := make([]float64, len(stressors)*len(cols))
	for i := range values {
		values[i] = float64(year) + float64(i)
	}
	m, err := exio.NewWideMatrix("test", year, exio.Production, stressors, cols, values)
	require.NoError(t, err)
	p, err := exio.Reshape(m)
	require.NoError(t, err)
	return p
}

func TestLoad(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	l := ioload.New(store)

	p := partition(t, 2020, "fr", "de")
	res, err := l.Load(ctx, p)
	require.NoError(t, err)

	assert.True(t, res.OK())
	assert.Equal(t, []string{"fr", "de"}, res.Succeeded)
	assert.Equal(t, int64(8), res.Rows)
	assert.ElementsMatch(t, []string{"fr_dpba", "de_dpba"}, store.names())
	assert.Len(t, store.tables["fr_dpba"], 4)

	row := store.tables["de_dpba"][0]
	assert.Equal(t, "co2", row[0])
	assert.Equal(t, "wheat", row[1])
	assert.Equal(t, "de", row[2])
	assert.Equal(t, int16(2020), row[4])
}

func TestLoadIsolation(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	l := ioload.New(store)

	p := partition(t, 2020, "fr", "de", "nl")
	_, err := l.Load(ctx, p)
	require.NoError(t, err)

	// second year fails for one region only
	store.failCopy = "de_dpba"
	p2 := partition(t, 2021, "fr", "de", "nl")
	res, err := l.Insert(ctx, p2)
	require.NoError(t, err)

	assert.False(t, res.OK())
	assert.Equal(t, []string{"fr", "nl"}, res.Succeeded)
	require.Contains(t, res.Failed, "de")

	gnErr, ok := res.Failed["de"].(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.LoadError, gnErr.Code)

	// failed region keeps its previous content
	assert.Len(t, store.tables["de_dpba"], 4)
	for _, row := range store.tables["de_dpba"] {
		assert.Equal(t, int16(2020), row[4])
	}
	assert.Len(t, store.tables["fr_dpba"], 8)
	assert.Len(t, store.tables["nl_dpba"], 8)
}

func TestInsertIdempotent(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	l := ioload.New(store)

	p := partition(t, 2020, "fr")
	_, err := l.Load(ctx, p)
	require.NoError(t, err)

	for range 3 {
		res, err := l.Insert(ctx, p)
		require.NoError(t, err)
		assert.True(t, res.OK())
	}
	assert.Len(t, store.tables["fr_dpba"], 4)
}

func TestReplaceSemantics(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	l := ioload.New(store)

	// first run: two years accumulate
	require.NoError(t, l.Prepare(ctx, exio.Production, []string{"fr"}))
	for _, year := range []int{2019, 2020} {
		res, err := l.Insert(ctx, partition(t, year, "fr"))
		require.NoError(t, err)
		assert.True(t, res.OK())
	}
	assert.Len(t, store.tables["fr_dpba"], 8)

	// second run replaces the previous contents
	res, err := l.Load(ctx, partition(t, 2021, "fr"))
	require.NoError(t, err)
	assert.True(t, res.OK())
	assert.Len(t, store.tables["fr_dpba"], 4)
	for _, row := range store.tables["fr_dpba"] {
		assert.Equal(t, int16(2021), row[4])
	}
}

func TestPrepareFailureKeepsTables(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	l := ioload.New(store)

	_, err := l.Load(ctx, partition(t, 2020, "fr", "de"))
	require.NoError(t, err)

	store.failExec = `"de_dpba"`
	err = l.Prepare(ctx, exio.Production, []string{"fr", "de"})
	require.Error(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.LoadError, gnErr.Code)

	assert.Len(t, store.tables["fr_dpba"], 4)
	assert.Len(t, store.tables["de_dpba"], 4)
}

func TestPrepareUnsafeRegion(t *testing.T) {
	l := ioload.New(newMemStore())
	err := l.Prepare(context.Background(), exio.Production, []string{"fr; drop"})
	require.Error(t, err)
}

func TestInsertCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	l := ioload.New(newMemStore())
	res, err := l.Insert(ctx, partition(t, 2020, "fr"))
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, res.Succeeded)
}

func TestNotConnected(t *testing.T) {
	l := ioload.New(nil)
	_, err := l.Load(context.Background(), partition(t, 2020, "fr"))
	require.Error(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.DBNotConnectedError, gnErr.Code)
}

func TestUpdateValues(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	store.tables["gdp"] = [][]any{
		{1.0, int16(2019)},
		{2.0, int16(2020)},
		{3.0, int16(2021)},
	}
	l := ioload.New(store)

	n, err := l.UpdateValues(ctx, "gdp", []lifecycle.YearValue{
		{Value: 20, Year: 2020},
		{Value: 21, Year: 2021},
		{Value: 99, Year: 1999},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.Equal(t, 1.0, store.tables["gdp"][0][0])
	assert.Equal(t, 20.0, store.tables["gdp"][1][0])
	assert.Equal(t, 21.0, store.tables["gdp"][2][0])

	_, err = l.UpdateValues(ctx, "gdp; drop table x", nil)
	require.Error(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.ValidationError, gnErr.Code)

	_, err = l.UpdateValues(ctx, "missing", nil)
	require.Error(t, err)
	gnErr, ok = err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.LoadUpdateValuesError, gnErr.Code)
}

// TestYearOutOfRange verifies that a year which would wrap in the smallint
// year column is rejected before any row is touched.
func TestYearOutOfRange(t *testing.T) {
	ctx := context.Background()
	wrapped := 2020 + 65536

	t.Run("update values", func(t *testing.T) {
		store := newMemStore()
		store.tables["gdp"] = [][]any{{1.0, int16(2020)}}
		l := ioload.New(store)

		_, err := l.UpdateValues(ctx, "gdp", []lifecycle.YearValue{
			{Value: 20, Year: 2021},
			{Value: 99, Year: wrapped},
		})
		require.Error(t, err)
		gnErr, ok := err.(*gn.Error)
		require.True(t, ok)
		assert.Equal(t, errcode.ValidationError, gnErr.Code)
		assert.Equal(t, 1.0, store.tables["gdp"][0][0])
	})

	t.Run("insert", func(t *testing.T) {
		store := newMemStore()
		l := ioload.New(store)
		_, err := l.Load(ctx, partition(t, 2020, "fr"))
		require.NoError(t, err)

		_, err = l.Insert(ctx, partition(t, wrapped, "fr"))
		require.Error(t, err)
		gnErr, ok := err.(*gn.Error)
		require.True(t, ok)
		assert.Equal(t, errcode.ValidationError, gnErr.Code)
		require.Len(t, store.tables["fr_dpba"], 4)
		for _, row := range store.tables["fr_dpba"] {
			assert.Equal(t, int16(2020), row[4])
		}
	})
}
