package iopopulate_test

import (
	"context"
	"errors"
	"fmt"

	"github.com/gnames/exiodb/pkg/config"
	"github.com/gnames/exiodb/pkg/exio"
	"github.com/gnames/exiodb/pkg/lifecycle"
)

type fakeFetcher struct {
	version   lifecycle.VersionInfo
	failFetch map[int]error
	saved     []string
}

func (f *fakeFetcher) CheckVersion(context.Context) (*lifecycle.VersionInfo, error) {
	v := f.version
	return &v, nil
}

func (f *fakeFetcher) SaveVersion(version string) error {
	f.saved = append(f.saved, version)
	return nil
}

func (f *fakeFetcher) Fetch(_ context.Context, year int) (string, error) {
	if err := f.failFetch[year]; err != nil {
		return "", err
	}
	return fmt.Sprintf("/staging/IOT_%d_ixi.zip", year), nil
}

func (f *fakeFetcher) Unpack(archive string) (string, error) {
	return archive[:len(archive)-4], nil
}

type fakeCleaner struct {
	cleaned []int
	err     error
}

func (c *fakeCleaner) Cleanup(year int) error {
	if c.err != nil {
		return c.err
	}
	c.cleaned = append(c.cleaned, year)
	return nil
}

// fakeReader returns a 2x(2 regions x 2 sectors) matrix for any year.
type fakeReader struct {
	failRead map[int]error
}

func (r *fakeReader) Read(year int, f exio.Family) (*exio.WideMatrix, error) {
	if err := r.failRead[year]; err != nil {
		return nil, err
	}
	cols := []exio.Column{
		{Region: "FR", Sector: "Wheat"},
		{Region: "FR", Sector: "Rice"},
		{Region: "DE", Sector: "Wheat"},
		{Region: "DE", Sector: "Rice"},
	}
	values := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	return exio.NewWideMatrix("fake", year, f, []string{"CO2", "CH4"}, cols, values)
}

type fakeLoader struct {
	prepared   []exio.Family
	inserted   []string
	failRegion map[int]string
}

func (l *fakeLoader) Prepare(_ context.Context, f exio.Family, _ []string) error {
	l.prepared = append(l.prepared, f)
	return nil
}

func (l *fakeLoader) Insert(
	ctx context.Context,
	p *exio.RegionPartition,
) (*lifecycle.LoadReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res := &lifecycle.LoadReport{
		Year:   p.Year,
		Family: p.Family,
		Failed: make(map[string]error),
	}
	for _, region := range p.Regions {
		if l.failRegion[p.Year] == region {
			res.Failed[region] = errors.New("copy failed")
			continue
		}
		res.Succeeded = append(res.Succeeded, region)
		res.Rows += int64(len(p.Records(region)))
	}
	l.inserted = append(l.inserted, fmt.Sprintf("%s/%d", p.Family.Suffix(), p.Year))
	return res, nil
}

func (l *fakeLoader) Load(ctx context.Context, p *exio.RegionPartition) (*lifecycle.LoadReport, error) {
	if err := l.Prepare(ctx, p.Family, p.Regions); err != nil {
		return nil, err
	}
	return l.Insert(ctx, p)
}

func (l *fakeLoader) UpdateValues(context.Context, string, []lifecycle.YearValue) (int64, error) {
	return 0, nil
}

type fakeSchema struct {
	created int
	regions []string
	sectors []string
}

func (s *fakeSchema) Create(context.Context, *config.Config) error {
	s.created++
	return nil
}

func (s *fakeSchema) SyncVocabulary(_ context.Context, regions, sectors []string) error {
	s.regions, s.sectors = regions, sectors
	return nil
}

type fakeOptimizer struct {
	calls int
	err   error
}

func (o *fakeOptimizer) Optimize(context.Context) error {
	o.calls++
	return o.err
}
