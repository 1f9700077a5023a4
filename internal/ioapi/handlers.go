package ioapi

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gnames/exiodb/pkg/exio"
	"github.com/gnames/exiodb/pkg/schema"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// undefinedTable is the PostgreSQL error code of a missing relation.
const undefinedTable = "42P01"

// Filter holds the query parameters of an indicator lookup. Zero
// values mean the filter is absent.
type Filter struct {
	Year     int
	Stressor string
	Sector   string
}

// Empty is true when no filter is given.
func (f Filter) Empty() bool {
	return f.Year == 0 && f.Stressor == "" && f.Sector == ""
}

// ParseFilter reads year, stressor and sector from query parameters.
// Labels are normalized the same way loaded data is.
func ParseFilter(r *http.Request) (Filter, error) {
	var res Filter
	q := r.URL.Query()
	if y := strings.TrimSpace(q.Get("year")); y != "" {
		year, err := strconv.Atoi(y)
		if err != nil || exio.CheckYear(year) != nil {
			return res, ValidationError("year", y)
		}
		res.Year = year
	}
	res.Stressor = exio.Normalize(q.Get("stressor"))
	res.Sector = exio.Normalize(q.Get("sector"))
	return res, nil
}

// IndicatorQuery builds the lookup of a validated table. Table names go
// into the text quoted, filter values are bound as arguments.
func IndicatorQuery(
	table string,
	f exio.Family,
	flt Filter,
	bv BindVar,
) (string, []any) {
	var conds []string
	var args []any
	add := func(col string, val any) {
		args = append(args, val)
		conds = append(conds, col+" = "+bv(len(args)))
	}
	if flt.Year != 0 {
		add("year", flt.Year)
	}
	if flt.Stressor != "" {
		add("stressor", flt.Stressor)
	}
	if flt.Sector != "" {
		add("sector", flt.Sector)
	}

	q := fmt.Sprintf(
		"SELECT stressor, sector, region, value, year FROM %s WHERE %s",
		pgx.Identifier{table}.Sanitize(),
		strings.Join(conds, " AND "),
	)
	if f == exio.Consumption {
		q += fmt.Sprintf(" LIMIT %d", ConsumptionLimit)
	}
	return q, args
}

func (s *Server) sectors(w http.ResponseWriter, r *http.Request) {
	res, err := queryRows(r.Context(), s.db,
		"SELECT sector FROM sectors ORDER BY sector",
		nil,
		func(rows *sql.Rows) (schema.Sector, error) {
			var v schema.Sector
			err := rows.Scan(&v.Sector)
			return v, err
		},
	)
	if err != nil {
		s.internalError(w, r, QueryError("sectors", err))
		return
	}
	writeOK(w, res)
}

func (s *Server) regions(w http.ResponseWriter, r *http.Request) {
	res, err := queryRows(r.Context(), s.db,
		"SELECT region FROM regions ORDER BY region",
		nil,
		func(rows *sql.Rows) (schema.Region, error) {
			var v schema.Region
			err := rows.Scan(&v.Region)
			return v, err
		},
	)
	if err != nil {
		s.internalError(w, r, QueryError("regions", err))
		return
	}
	writeOK(w, res)
}

func (s *Server) indicators(w http.ResponseWriter, r *http.Request) {
	lens, ok := exio.ParseLens(chi.URLParam(r, "lens"))
	if !ok {
		s.notFound(w, r)
		return
	}

	region := strings.ToLower(strings.TrimSpace(chi.URLParam(r, "region")))
	table, err := exio.TableName(region, lens)
	if err != nil {
		slog.Info("Rejected region", "region", region, "error", err)
		writeError(w, http.StatusBadRequest, MsgBadRegion)
		return
	}

	flt, err := ParseFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, MsgBadYear)
		return
	}
	if flt.Empty() {
		writeError(w, http.StatusBadRequest, MsgNoFilter)
		return
	}

	q, args := IndicatorQuery(table, lens, flt, s.bindVar)
	res, err := queryRows(r.Context(), s.db, q, args,
		func(rows *sql.Rows) (schema.Indicator, error) {
			var v schema.Indicator
			err := rows.Scan(&v.Stressor, &v.Sector, &v.Region, &v.Value, &v.Year)
			return v, err
		},
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == undefinedTable {
			writeError(w, http.StatusBadRequest, MsgBadRegion)
			return
		}
		s.internalError(w, r, QueryError(table, err))
		return
	}
	if len(res) == 0 {
		writeError(w, http.StatusBadRequest, MsgEmpty)
		return
	}
	writeOK(w, res)
}

func (s *Server) notFound(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusNotFound, MsgNotFound)
}

func (s *Server) methodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, MsgNotAllowed)
}

// internalError logs the cause and hides it from the caller.
func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error) {
	slog.Error("Query failed",
		"path", r.URL.Path,
		"request_id", middleware.GetReqID(r.Context()),
		"error", err,
	)
	writeError(w, http.StatusInternalServerError, MsgInternal)
}

func queryRows[T any](
	ctx context.Context,
	db *sql.DB,
	query string,
	args []any,
	scan func(*sql.Rows) (T, error),
) ([]T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := make([]T, 0)
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, v)
	}
	return res, rows.Err()
}
