package iooptimize

import (
	"fmt"

	"github.com/gnames/exiodb/pkg/errcode"
	"github.com/gnames/gn"
)

// NotConnectedError is returned when optimization runs without
// a database connection.
func NotConnectedError() error {
	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  "Optimize operation attempted without database connection",
		Err:  fmt.Errorf("not connected to database"),
	}
}

// VacuumError is returned when VACUUM ANALYZE fails.
func VacuumError(err error) error {
	msg := `Cannot update database statistics

<em>How to fix:</em>
  1. Check that the database user owns the loaded tables
  2. Run <em>VACUUM ANALYZE</em> manually with psql`

	return &gn.Error{
		Code: errcode.OptimizeVacuumError,
		Msg:  msg,
		Err:  fmt.Errorf("vacuum analyze: %w", err),
	}
}
