package ioload

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gnames/exiodb/pkg/exio"
	"github.com/gnames/exiodb/pkg/lifecycle"
	"github.com/jackc/pgx/v5"
)

const stagingTable = "exiodb_value_updates"

// UpdateValues sets the value of every row of table whose year matches
// one of the given pairs. The pairs are copied into a temporary table
// that is dropped on commit. Meant for tables that keep one row per year.
func (l *Loader) UpdateValues(
	ctx context.Context,
	table string,
	rows []lifecycle.YearValue,
) (int64, error) {
	if l.store == nil {
		return 0, NotConnectedError()
	}

	table, err := exio.SafeIdent(table)
	if err != nil {
		return 0, err
	}
	for _, v := range rows {
		if err = exio.CheckYear(v.Year); err != nil {
			return 0, err
		}
	}
	ident := pgx.Identifier{table}.Sanitize()
	tmp := pgx.Identifier{stagingTable}.Sanitize()

	tx, err := l.store.Begin(ctx)
	if err != nil {
		return 0, UpdateValuesError(table, err)
	}
	defer tx.Rollback(ctx)

	q := fmt.Sprintf(
		"CREATE TEMP TABLE %s (value double precision, year smallint) ON COMMIT DROP",
		tmp,
	)
	if _, err = tx.Exec(ctx, q); err != nil {
		return 0, UpdateValuesError(table, err)
	}

	data := make([][]any, len(rows))
	for i, v := range rows {
		data[i] = []any{v.Value, int16(v.Year)}
	}
	_, err = tx.CopyFrom(
		ctx,
		pgx.Identifier{stagingTable},
		[]string{"value", "year"},
		pgx.CopyFromRows(data),
	)
	if err != nil {
		return 0, UpdateValuesError(table, err)
	}

	q = fmt.Sprintf(
		"UPDATE %s AS t SET value = s.value FROM %s AS s WHERE s.year = t.year",
		ident, tmp,
	)
	tag, err := tx.Exec(ctx, q)
	if err != nil {
		return 0, UpdateValuesError(table, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return 0, UpdateValuesError(table, err)
	}

	n := tag.RowsAffected()
	slog.Info("Updated values", "table", table, "pairs", len(rows), "rows", n)
	return n, nil
}
