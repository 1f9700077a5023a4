// Package iooptimize implements the Optimizer interface. It reclaims
// space left by dropped and rewritten indicator tables and refreshes
// query planner statistics after population.
package iooptimize

import (
	"context"
	"log/slog"
	"time"

	"github.com/gnames/exiodb/pkg/lifecycle"
	"github.com/gnames/gnfmt"
	"github.com/jackc/pgx/v5/pgconn"
)

// Execer runs a statement outside of a transaction. *pgxpool.Pool
// satisfies it.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type optimizer struct {
	db Execer
}

// New creates an Optimizer on top of db.
func New(db Execer) lifecycle.Optimizer {
	return &optimizer{db: db}
}

// Optimize runs VACUUM ANALYZE on the whole database. The statement
// cannot run inside a transaction block.
func (o *optimizer) Optimize(ctx context.Context) error {
	if o.db == nil {
		return NotConnectedError()
	}

	slog.Info("Running VACUUM ANALYZE on database")
	timeStart := time.Now()

	if _, err := o.db.Exec(ctx, "VACUUM ANALYZE"); err != nil {
		return VacuumError(err)
	}

	slog.Info("VACUUM ANALYZE completed",
		"duration", gnfmt.TimeString(time.Since(timeStart).Seconds()))
	return nil
}
