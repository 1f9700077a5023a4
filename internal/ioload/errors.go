package ioload

import (
	"fmt"

	"github.com/gnames/exiodb/pkg/errcode"
	"github.com/gnames/exiodb/pkg/exio"
	"github.com/gnames/gn"
)

// NotConnectedError creates an error for a load attempted without
// a database connection.
func NotConnectedError() error {
	msg := "Load attempted without database connection"

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Err:  fmt.Errorf("not connected to database"),
	}
}

// PrepareError creates an error for a failed drop and create phase.
// Existing tables are left untouched.
func PrepareError(f exio.Family, err error) error {
	msg := `Cannot recreate <em>%s</em> tables

Previous tables were kept unchanged.`

	vars := []any{f}

	return &gn.Error{
		Code: errcode.LoadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("prepare %s tables: %w", f, err),
	}
}

// RegionLoadError creates an error for a region whose insert transaction
// was rolled back.
func RegionLoadError(table string, year int, err error) error {
	msg := "Cannot load <em>%s</em> for year %d"
	vars := []any{table, year}

	return &gn.Error{
		Code: errcode.LoadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("load %s year %d: %w", table, year, err),
	}
}

// UpdateValuesError creates an error for a failed bulk value update.
func UpdateValuesError(table string, err error) error {
	msg := "Cannot update values of <em>%s</em>"
	vars := []any{table}

	return &gn.Error{
		Code: errcode.LoadUpdateValuesError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("update values of %s: %w", table, err),
	}
}
