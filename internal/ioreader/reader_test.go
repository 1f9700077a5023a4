package ioreader_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gnames/exiodb/internal/ioreader"
	"github.com/gnames/exiodb/pkg/config"
	"github.com/gnames/exiodb/pkg/errcode"
	"github.com/gnames/exiodb/pkg/exio"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const matrix = "region\tAT\tAT\tBE\tBE\n" +
	"sector\tPaddy rice\tWheat\tPaddy rice\tWheat\n" +
	"stressor\t\t\t\t\n" +
	"CO2 - combustion - air\t1.5\t2\t-3\t4e2\n" +
	"CH4 - agriculture - air\t0\t0.25\t7\t8\n"

func TestParse(t *testing.T) {
	m, err := ioreader.Parse("D_cba.txt", strings.NewReader(matrix), 2020, exio.Consumption)
	require.NoError(t, err)

	assert.Equal(t, 2020, m.Year)
	assert.Equal(t, exio.Consumption, m.Family)
	assert.Equal(t, []string{"CO2 - combustion - air", "CH4 - agriculture - air"}, m.Stressors)
	assert.Equal(t, []string{"AT", "BE"}, m.Regions())
	assert.Equal(t, []string{"Paddy rice", "Wheat"}, m.Sectors())

	r, c := m.Values.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 4, c)
	assert.Equal(t, -3.0, m.Values.At(0, 2))
	assert.Equal(t, 400.0, m.Values.At(0, 3))
	assert.Equal(t, 0.25, m.Values.At(1, 1))
}

func TestParseWithoutIndexRow(t *testing.T) {
	src := "region\tAT\tBE\n" +
		"sector\tWheat\tWheat\n" +
		"co2\t1\t2\n"
	m, err := ioreader.Parse("D_pba.txt", strings.NewReader(src), 2021, exio.Production)
	require.NoError(t, err)
	assert.Equal(t, []string{"co2"}, m.Stressors)
	assert.Equal(t, 2.0, m.Values.At(0, 1))
}

func TestParseMalformed(t *testing.T) {
	tests := []struct {
		msg string
		src string
	}{
		{"empty", ""},
		{"one header line", "region\tAT\tBE\n"},
		{"single header level", "region\tAT\tBE\nco2\t1\t2\n"},
		{"different header width", "region\tAT\tBE\nsector\tA\n"},
		{"no columns", "region\nsector\n"},
		{"empty header cell", "region\tAT\t\nsector\tA\tB\nco2\t1\t2\n"},
		{
			"third header level",
			"region\tAT\tBE\nsector\tA\tA\nunit\tkg\tkg\nco2\t1\t2\n",
		},
		{"wrong row width", "region\tAT\tBE\nsector\tA\tA\nco2\t1\n"},
		{"non-numeric cell", "region\tAT\tBE\nsector\tA\tA\nco2\t1\tabc\n"},
		{"empty cell", "region\tAT\tBE\nsector\tA\tA\nco2\t1\t \n"},
		{"nan cell", "region\tAT\tBE\nsector\tA\tA\nco2\t1\tNaN\n"},
		{"no stressors", "region\tAT\tBE\nsector\tA\tA\nstressor\t\t\n"},
		{"no label", "region\tAT\tBE\nsector\tA\tA\nco2\t1\t2\n\t1\t2\n"},
	}

	for _, v := range tests {
		_, err := ioreader.Parse("D_cba.txt", strings.NewReader(v.src), 2020, exio.Consumption)
		require.Error(t, err, v.msg)
		gnErr, ok := err.(*gn.Error)
		require.True(t, ok, v.msg)
		assert.Equal(t, errcode.MalformedSourceError, gnErr.Code, v.msg)
	}
}

func TestSameVocabulary(t *testing.T) {
	a, err := ioreader.Parse("D_cba.txt", strings.NewReader(matrix), 2020, exio.Consumption)
	require.NoError(t, err)
	b, err := ioreader.Parse("D_pba.txt", strings.NewReader(matrix), 2020, exio.Production)
	require.NoError(t, err)
	assert.NoError(t, ioreader.SameVocabulary(a, b))

	src := "region\tAT\tAT\tNL\tNL\n" +
		"sector\tPaddy rice\tWheat\tPaddy rice\tWheat\n" +
		"co2\t1\t2\t3\t4\n"
	c, err := ioreader.Parse("D_pba.txt", strings.NewReader(src), 2020, exio.Production)
	require.NoError(t, err)
	err = ioreader.SameVocabulary(a, c)
	require.Error(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.MalformedSourceError, gnErr.Code)
}

func TestRead(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping file system test in short mode")
	}

	home := t.TempDir()
	cfg := config.New()
	cfg.Update([]config.Option{config.OptHomeDir(home)})

	r := ioreader.New(cfg)
	path := r.Path(2019, exio.Production)
	assert.Equal(t,
		filepath.Join(config.StagingDir(home), "IOT_2019_ixi", "satellite", "D_pba.txt"),
		path,
	)

	_, err := r.Read(2019, exio.Production)
	require.Error(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.ReadFileError, gnErr.Code)

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(matrix), 0644))

	m, err := r.Read(2019, exio.Production)
	require.NoError(t, err)
	assert.Equal(t, 2019, m.Year)
	assert.Len(t, m.Columns, 4)
}
