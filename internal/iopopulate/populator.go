// Package iopopulate implements Populator interface for importing
// EXIOBASE satellite accounts into PostgreSQL.
// This is an impure I/O package that drives fetching, reading,
// reshaping and loading of every configured year.
package iopopulate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/exiodb/internal/iofetch"
	"github.com/gnames/exiodb/internal/ioload"
	"github.com/gnames/exiodb/internal/iooptimize"
	"github.com/gnames/exiodb/internal/ioreader"
	"github.com/gnames/exiodb/internal/ioschema"
	"github.com/gnames/exiodb/pkg/config"
	"github.com/gnames/exiodb/pkg/db"
	"github.com/gnames/exiodb/pkg/exio"
	"github.com/gnames/exiodb/pkg/lifecycle"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// populator implements the Populator interface.
type populator struct {
	cfg      *config.Config
	operator db.Operator

	fetcher lifecycle.Fetcher
	cleaner lifecycle.Cleaner
	reader  lifecycle.MatrixReader
	loader  lifecycle.Loader
	schema  lifecycle.SchemaManager
	// optimizer is optional, statistics are refreshed if it is set.
	optimizer lifecycle.Optimizer

	now func() time.Time
}

// Option replaces a collaborator of the populator.
type Option func(*populator)

// OptFetcher sets the archive fetcher.
func OptFetcher(f lifecycle.Fetcher) Option {
	return func(p *populator) { p.fetcher = f }
}

// OptCleaner sets the staging cleaner.
func OptCleaner(c lifecycle.Cleaner) Option {
	return func(p *populator) { p.cleaner = c }
}

// OptReader sets the matrix reader.
func OptReader(r lifecycle.MatrixReader) Option {
	return func(p *populator) { p.reader = r }
}

// OptLoader sets the loader.
func OptLoader(l lifecycle.Loader) Option {
	return func(p *populator) { p.loader = l }
}

// OptSchema sets the reference tables manager.
func OptSchema(s lifecycle.SchemaManager) Option {
	return func(p *populator) { p.schema = s }
}

// OptOptimizer sets the optimizer that runs after loading.
func OptOptimizer(o lifecycle.Optimizer) Option {
	return func(p *populator) { p.optimizer = o }
}

// OptNow sets the clock used to pick default years.
func OptNow(fn func() time.Time) Option {
	return func(p *populator) { p.now = fn }
}

// New creates a new Populator. The operator must be connected before
// Populate is called, unless a loader and a schema manager are given.
func New(
	cfg *config.Config,
	op db.Operator,
	opts ...Option,
) lifecycle.Populator {
	fetcher := iofetch.New(cfg)
	res := &populator{
		cfg:      cfg,
		operator: op,
		fetcher:  fetcher,
		cleaner:  fetcher,
		reader:   ioreader.New(cfg),
		now:      time.Now,
	}
	if op != nil {
		res.schema = ioschema.NewManager(op)
	}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// Populate checks the upstream version and, if it changed or the run is
// forced, loads every configured year. Failures of a year do not stop
// the others. The run fails if no year loaded anything, or if staged
// files of a loaded year cannot be removed.
func (p *populator) Populate(
	ctx context.Context,
) (*lifecycle.RunReport, error) {
	if err := p.init(); err != nil {
		return nil, err
	}

	startTime := time.Now()
	res := &lifecycle.RunReport{RunID: uuid.NewString()}

	logger := slog.Default()
	slog.SetDefault(logger.With("run_id", res.RunID))
	defer slog.SetDefault(logger)

	slog.Info("Starting database population")

	version, err := p.fetcher.CheckVersion(ctx)
	if err != nil {
		return res, err
	}
	res.Version = version
	slog.Info("Checked EXIOBASE version",
		"previous", version.Previous,
		"current", version.Current,
		"changed", version.Changed,
	)

	if !version.Changed && !p.cfg.Populate.Force {
		gn.Info("EXIOBASE version <em>%s</em> did not change, nothing to do", version.Current)
		res.Skipped = true
		return res, nil
	}

	if err = p.schema.Create(ctx, p.cfg); err != nil {
		return res, err
	}

	years := p.years()
	prepared := make(map[exio.Family]bool)
	var succeeded, failed int
	var rows int64

	for i, year := range years {
		if err := ctx.Err(); err != nil {
			return res, CancelledError(err)
		}

		fmt.Println(strings.Repeat("─", 60))
		gn.Info("Year <em>%d</em> [%d/%d]", year, i+1, len(years))
		fmt.Println(strings.Repeat("─", 60))
		yearStart := time.Now()

		yr := p.processYear(ctx, year, prepared)
		res.Years = append(res.Years, yr)

		if errors.Is(yr.Err, context.Canceled) ||
			errors.Is(yr.Err, context.DeadlineExceeded) {
			return res, CancelledError(yr.Err)
		}

		if !loadedAny(yr) {
			failed++
			slog.Error("Year failed", "year", year, "error", yr.Err)
			continue
		}
		succeeded++
		for _, v := range yr.Loads {
			rows += v.Rows
		}

		if !yr.OK() {
			slog.Warn("Year loaded partially, staged files kept",
				"year", year, "error", yr.Err)
			continue
		}

		if !p.cfg.Populate.KeepStaging {
			if err = p.cleaner.Cleanup(year); err != nil {
				return res, err
			}
			yr.Cleaned = true
		}

		gn.Info("Completed in %s", gnfmt.TimeString(time.Since(yearStart).Seconds()))
	}

	if succeeded > 0 && p.optimizer != nil {
		gn.Info("Updating database statistics...")
		if err = p.optimizer.Optimize(ctx); err != nil {
			slog.Warn("Statistics were not updated", "error", err)
			gn.Warn("Statistics were not updated: %s", err)
		}
	}

	totalDuration := time.Since(startTime)
	slog.Info("Population complete",
		"success", succeeded,
		"errors", failed,
		"rows", rows,
		"duration", gnfmt.TimeString(totalDuration.Seconds()),
	)
	gn.Info(`Population complete
Years succeeded: %d, failed %d, rows loaded: %s.
		Elapsed time: <em>%s</em>
`,
		succeeded,
		failed,
		humanize.Comma(rows),
		gnfmt.TimeString(totalDuration.Seconds()),
	)

	if succeeded == 0 {
		// let the next run retry this version
		if err = p.fetcher.SaveVersion(version.Previous); err != nil {
			slog.Error("Cannot restore version", "error", err)
		}
		return res, AllYearsFailedError(years)
	}
	return res, nil
}

func (p *populator) init() error {
	var pool *pgxpool.Pool
	if p.operator != nil {
		pool = p.operator.Pool()
	}
	if pool == nil && (p.loader == nil || p.schema == nil) {
		return NotConnectedError()
	}
	if p.loader == nil {
		p.loader = ioload.New(pool)
	}
	if p.optimizer == nil && pool != nil {
		p.optimizer = iooptimize.New(pool)
	}
	return nil
}

// years returns configured years or the previous and the current year.
func (p *populator) years() []int {
	if len(p.cfg.Populate.Years) > 0 {
		return p.cfg.Populate.Years
	}
	year := p.now().Year()
	return []int{year - 1, year}
}

// processYear runs fetch, read, reshape and load for one year. Errors
// before loading fail the year, region load errors are kept in load
// reports.
func (p *populator) processYear(
	ctx context.Context,
	year int,
	prepared map[exio.Family]bool,
) *lifecycle.YearReport {
	res := &lifecycle.YearReport{Year: year}

	gn.Info("(1/4) Downloading archive...")
	archive, err := p.fetcher.Fetch(ctx, year)
	if err != nil {
		res.Err = err
		return res
	}
	if _, err = p.fetcher.Unpack(archive); err != nil {
		res.Err = err
		return res
	}

	gn.Info("(2/4) Reading matrices...")
	parts, err := p.readYear(year)
	if err != nil {
		res.Err = err
		return res
	}
	gn.Message(
		"<em>%d regions, %d sectors, %d stressors</em>",
		len(parts[0].Regions), len(parts[0].Sectors), len(parts[0].Stressors),
	)

	gn.Info("(3/4) Loading region tables...")
	for _, part := range parts {
		if !prepared[part.Family] {
			if err = p.loader.Prepare(ctx, part.Family, part.Regions); err != nil {
				res.Err = err
				return res
			}
			prepared[part.Family] = true
		}

		lr, err := p.loader.Insert(ctx, part)
		if lr != nil {
			res.Loads = append(res.Loads, lr)
		}
		if err != nil {
			res.Err = err
			return res
		}
		gn.Message("<em>Loaded %s rows into %d %s tables</em>",
			humanize.Comma(lr.Rows), len(lr.Succeeded), part.Family)
		for region, err := range lr.Failed {
			gn.Warn("Region <em>%s</em> (%s) failed: %s", region, part.Family, err)
		}
	}

	gn.Info("(4/4) Updating reference tables...")
	err = p.schema.SyncVocabulary(ctx, parts[0].Regions, parts[0].Sectors)
	if err != nil {
		res.Err = err
	}
	return res
}

// readYear reads and reshapes both families of a year.
func (p *populator) readYear(year int) ([]*exio.RegionPartition, error) {
	var mats []*exio.WideMatrix
	for _, f := range exio.Families() {
		m, err := p.reader.Read(year, f)
		if err != nil {
			return nil, err
		}
		mats = append(mats, m)
	}
	for _, m := range mats[1:] {
		if err := ioreader.SameVocabulary(mats[0], m); err != nil {
			return nil, err
		}
	}

	res := make([]*exio.RegionPartition, 0, len(mats))
	for _, m := range mats {
		part, err := exio.Reshape(m)
		if err != nil {
			return nil, err
		}
		slog.Info("Reshaped matrix",
			"year", year,
			"family", m.Family.String(),
			"records", part.Len(),
		)
		res = append(res, part)
	}
	return res, nil
}

// loadedAny is true if at least one region of the year was committed.
func loadedAny(yr *lifecycle.YearReport) bool {
	for _, v := range yr.Loads {
		if len(v.Succeeded) > 0 {
			return true
		}
	}
	return false
}
