package iodb

import (
	"fmt"

	"github.com/gnames/exiodb/pkg/errcode"
	"github.com/gnames/gn"
)

// ConnectionError creates an error for failed database
// connection attempts.
func ConnectionError(
	host string,
	port int,
	database, user string,
	err error,
) error {
	msg := `Cannot connect to PostgreSQL database

<em>Possible causes:</em>
  - PostgreSQL is not running
  - Database configuration is incorrect
  - Network connectivity issues

<em>How to fix:</em>
  1. Check if PostgreSQL is running:
     <em>pg_isready -h %s -p %d</em>
  2. Verify database exists:
     <em>psql -h %s -U %s -l</em>
  3. Create it if needed:
     <em>createdb %s</em>
  4. Check ~/.config/exiodb/config.yaml or EXIODB_DATABASE_* variables`

	vars := []any{host, port, host, user, database}

	return &gn.Error{
		Code: errcode.DBConnectionError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("failed to connect to %s:%d/%s: %w",
			host, port, database, err),
	}
}

// TableCheckError creates an error for failures while
// checking the presence of tables.
func TableCheckError(err error) error {
	msg := "Cannot check database tables"

	return &gn.Error{
		Code: errcode.DBTableCheckError,
		Msg:  msg,
		Err:  fmt.Errorf("failed to check tables: %w", err),
	}
}

// TableExistsCheckError creates an error for a failed check
// of a specific table.
func TableExistsCheckError(table string, err error) error {
	msg := "Cannot check if table <em>%s</em> exists"
	vars := []any{table}

	return &gn.Error{
		Code: errcode.DBTableCheckError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to check table %s: %w", table, err),
	}
}

// NotConnectedError creates an error for operations
// attempted before Connect.
func NotConnectedError() error {
	msg := "Database operation attempted without connection"

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Err:  fmt.Errorf("not connected to database"),
	}
}

// QueryTablesError creates an error for a failed listing
// of tables.
func QueryTablesError(err error) error {
	msg := "Cannot list database tables"

	return &gn.Error{
		Code: errcode.DBQueryTablesError,
		Msg:  msg,
		Err:  fmt.Errorf("failed to query tables: %w", err),
	}
}

// ScanTableError creates an error for a failed read of
// table names.
func ScanTableError(err error) error {
	msg := "Cannot read database table names"

	return &gn.Error{
		Code: errcode.DBScanTableError,
		Msg:  msg,
		Err:  fmt.Errorf("failed to scan table names: %w", err),
	}
}

// DropTableError creates an error for a table that cannot
// be dropped.
func DropTableError(table string, err error) error {
	msg := "Cannot drop table <em>%s</em>"
	vars := []any{table}

	return &gn.Error{
		Code: errcode.DBDropTableError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to drop table %s: %w", table, err),
	}
}
