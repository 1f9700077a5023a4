package ioload_test

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// memStore keeps tables in memory. A transaction works on a copy of the
// tables and publishes it on commit.
type memStore struct {
	tables map[string][][]any
	// failCopy makes CopyFrom into the named table fail.
	failCopy string
	// failExec makes any statement containing the string fail.
	failExec string
}

func newMemStore() *memStore {
	return &memStore{tables: make(map[string][][]any)}
}

func (s *memStore) Begin(context.Context) (pgx.Tx, error) {
	work := make(map[string][][]any, len(s.tables))
	for k, v := range s.tables {
		rows := make([][]any, len(v))
		for i, row := range v {
			rows[i] = append([]any(nil), row...)
		}
		work[k] = rows
	}
	return &memTx{store: s, work: work}, nil
}

func (s *memStore) names() []string {
	var res []string
	for k := range s.tables {
		res = append(res, k)
	}
	return res
}

type memTx struct {
	pgx.Tx
	store *memStore
	work  map[string][][]any
	temp  [][]any
	done  bool
}

var identRe = regexp.MustCompile(`"([^"]+)"`)

func firstIdent(sql string) string {
	m := identRe.FindStringSubmatch(sql)
	if m == nil {
		return ""
	}
	return m[1]
}

func (t *memTx) Exec(
	_ context.Context,
	sql string,
	args ...any,
) (pgconn.CommandTag, error) {
	if t.store.failExec != "" && strings.Contains(sql, t.store.failExec) {
		return pgconn.CommandTag{}, errors.New("exec failed")
	}
	name := firstIdent(sql)

	switch {
	case strings.HasPrefix(sql, "DROP TABLE IF EXISTS"):
		delete(t.work, name)
	case strings.HasPrefix(sql, "CREATE TABLE IF NOT EXISTS"):
		if _, ok := t.work[name]; !ok {
			t.work[name] = nil
		}
	case strings.HasPrefix(sql, "CREATE TEMP TABLE"):
		t.temp = nil
	case strings.HasPrefix(sql, "CREATE TABLE"):
		if _, ok := t.work[name]; ok {
			return pgconn.CommandTag{}, fmt.Errorf("table %s exists", name)
		}
		t.work[name] = nil
	case strings.HasPrefix(sql, "DELETE FROM"):
		year := args[0].(int16)
		var keep [][]any
		for _, row := range t.work[name] {
			if row[4].(int16) != year {
				keep = append(keep, row)
			}
		}
		t.work[name] = keep
		return pgconn.NewCommandTag("DELETE 0"), nil
	case strings.HasPrefix(sql, "UPDATE"):
		rows, ok := t.work[name]
		if !ok {
			return pgconn.CommandTag{}, fmt.Errorf("no table %s", name)
		}
		var n int
		for _, row := range rows {
			for _, tmp := range t.temp {
				if tmp[1].(int16) == row[len(row)-1].(int16) {
					row[len(row)-2] = tmp[0]
					n++
					break
				}
			}
		}
		return pgconn.NewCommandTag(fmt.Sprintf("UPDATE %d", n)), nil
	default:
		return pgconn.CommandTag{}, fmt.Errorf("unexpected sql %q", sql)
	}
	return pgconn.CommandTag{}, nil
}

func (t *memTx) CopyFrom(
	_ context.Context,
	table pgx.Identifier,
	_ []string,
	src pgx.CopyFromSource,
) (int64, error) {
	name := table[0]
	if name == t.store.failCopy {
		return 0, errors.New("copy failed")
	}

	var rows [][]any
	for src.Next() {
		vals, err := src.Values()
		if err != nil {
			return 0, err
		}
		rows = append(rows, vals)
	}

	if strings.HasPrefix(name, "exiodb_") {
		t.temp = append(t.temp, rows...)
		return int64(len(rows)), nil
	}
	if _, ok := t.work[name]; !ok {
		return 0, fmt.Errorf("no table %s", name)
	}
	t.work[name] = append(t.work[name], rows...)
	return int64(len(rows)), nil
}

func (t *memTx) Commit(context.Context) error {
	if t.done {
		return pgx.ErrTxClosed
	}
	t.done = true
	t.store.tables = t.work
	return nil
}

func (t *memTx) Rollback(context.Context) error {
	if t.done {
		return pgx.ErrTxClosed
	}
	t.done = true
	return nil
}
