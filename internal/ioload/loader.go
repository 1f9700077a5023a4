// Package ioload writes region partitions into per-region PostgreSQL
// tables using pgx transactions and COPY.
package ioload

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cheggaaa/pb/v3"
	"github.com/gnames/exiodb/pkg/exio"
	"github.com/gnames/exiodb/pkg/lifecycle"
	"github.com/gnames/exiodb/pkg/schema"
	"github.com/jackc/pgx/v5"
)

// Store opens transactions. *pgxpool.Pool satisfies it.
type Store interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Loader implements lifecycle.Loader.
type Loader struct {
	store Store
}

// New creates a Loader on top of a transaction store.
func New(store Store) *Loader {
	return &Loader{store: store}
}

// Prepare drops and recreates the tables of all regions in one
// transaction. On failure the transaction is rolled back and existing
// tables stay as they were.
func (l *Loader) Prepare(
	ctx context.Context,
	f exio.Family,
	regions []string,
) error {
	if l.store == nil {
		return NotConnectedError()
	}

	tables := make([]string, 0, len(regions))
	for _, region := range regions {
		table, err := exio.TableName(region, f)
		if err != nil {
			return PrepareError(f, err)
		}
		tables = append(tables, table)
	}

	tx, err := l.store.Begin(ctx)
	if err != nil {
		return PrepareError(f, err)
	}
	defer tx.Rollback(ctx)

	for _, table := range tables {
		ident := pgx.Identifier{table}.Sanitize()
		if _, err = tx.Exec(ctx, "DROP TABLE IF EXISTS "+ident); err != nil {
			return PrepareError(f, err)
		}
		if _, err = tx.Exec(ctx, schema.IndicatorDDL(ident, false)); err != nil {
			return PrepareError(f, err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return PrepareError(f, err)
	}

	slog.Info("Recreated region tables",
		"family", f.String(),
		"tables", len(tables),
	)
	return nil
}

// Insert replaces the rows of the partition year in every region table.
// Each region is committed in its own transaction, a failing region is
// recorded in the report and the rest are still loaded. Cancelling ctx
// stops the loop, regions already committed stay committed.
func (l *Loader) Insert(
	ctx context.Context,
	p *exio.RegionPartition,
) (*lifecycle.LoadReport, error) {
	if l.store == nil {
		return nil, NotConnectedError()
	}
	if err := exio.CheckYear(p.Year); err != nil {
		return nil, err
	}

	res := lifecycle.LoadReport{
		Year:   p.Year,
		Family: p.Family,
		Failed: make(map[string]error),
	}

	bar := pb.Full.Start(len(p.Regions))
	bar.Set("prefix", fmt.Sprintf("Loading %s %d: ", p.Family, p.Year))
	bar.Set(pb.CleanOnFinish, true)
	defer bar.Finish()

	for _, region := range p.Regions {
		if err := ctx.Err(); err != nil {
			return &res, err
		}

		n, err := l.insertRegion(ctx, p.Family, p.Year, region, p.Records(region))
		bar.Add(1)
		if err != nil {
			slog.Error("Region load failed",
				"region", region,
				"family", p.Family.String(),
				"year", p.Year,
				"error", err,
			)
			res.Failed[region] = err
			continue
		}
		res.Succeeded = append(res.Succeeded, region)
		res.Rows += n
	}

	slog.Info("Loaded partition",
		"family", p.Family.String(),
		"year", p.Year,
		"regions", len(res.Succeeded),
		"failed", len(res.Failed),
		"rows", res.Rows,
	)
	return &res, nil
}

// Load recreates the tables of the partition regions and inserts the
// partition.
func (l *Loader) Load(
	ctx context.Context,
	p *exio.RegionPartition,
) (*lifecycle.LoadReport, error) {
	if err := l.Prepare(ctx, p.Family, p.Regions); err != nil {
		return nil, err
	}
	return l.Insert(ctx, p)
}

func (l *Loader) insertRegion(
	ctx context.Context,
	f exio.Family,
	year int,
	region string,
	recs []exio.LongRecord,
) (int64, error) {
	table, err := exio.TableName(region, f)
	if err != nil {
		return 0, RegionLoadError(region, year, err)
	}
	ident := pgx.Identifier{table}.Sanitize()

	tx, err := l.store.Begin(ctx)
	if err != nil {
		return 0, RegionLoadError(table, year, err)
	}
	defer tx.Rollback(ctx)

	if _, err = tx.Exec(ctx, schema.IndicatorDDL(ident, true)); err != nil {
		return 0, RegionLoadError(table, year, err)
	}

	q := fmt.Sprintf("DELETE FROM %s WHERE year = $1", ident)
	if _, err = tx.Exec(ctx, q, int16(year)); err != nil {
		return 0, RegionLoadError(table, year, err)
	}

	rows := make([][]any, len(recs))
	for i, v := range recs {
		rows[i] = []any{v.Stressor, v.Sector, v.Region, v.Value, int16(v.Year)}
	}

	n, err := tx.CopyFrom(
		ctx,
		pgx.Identifier{table},
		schema.IndicatorColumns(),
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return 0, RegionLoadError(table, year, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return 0, RegionLoadError(table, year, err)
	}
	return n, nil
}
