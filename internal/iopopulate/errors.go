package iopopulate

import (
	"fmt"

	"github.com/gnames/exiodb/pkg/errcode"
	"github.com/gnames/gn"
)

// NotConnectedError creates an error for when populate
// operation is attempted without database connection.
func NotConnectedError() error {
	msg := "Populate operation attempted without database connection"

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("not connected to database"),
	}
}

// AllYearsFailedError creates an error for a run where no
// year loaded any data.
func AllYearsFailedError(years []int) error {
	msg := `No data was loaded for years %v

<em>How to fix:</em>
  1. Check the log file for errors of each year
  2. Verify the archives exist upstream for these years
  3. Run again with <em>--force</em>`

	vars := []any{years}

	return &gn.Error{
		Code: errcode.PopulateAllYearsFailedError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("all years failed: %v", years),
	}
}

// CancelledError creates an error for cancelled population.
func CancelledError(err error) error {
	msg := "Population operation was cancelled"

	return &gn.Error{
		Code: errcode.PopulateCancelledError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("population cancelled: %w", err),
	}
}
