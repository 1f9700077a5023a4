package exio

import (
	"fmt"

	"github.com/gnames/exiodb/pkg/errcode"
	"github.com/gnames/gn"
)

// MalformedSourceError creates an error for a source matrix that does not
// have the expected two-level header or dense grid shape.
func MalformedSourceError(source, reason string) error {
	msg := `Malformed EXIOBASE source <em>%s</em>

<em>Reason:</em> %s

<em>Possible causes:</em>
  - Upstream changed the file layout
  - Download was truncated
  - Wrong EXIOBASE system selected`

	vars := []any{source, reason}

	return &gn.Error{
		Code: errcode.MalformedSourceError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("malformed source %s: %s", source, reason),
	}
}

// ShapeMismatchError creates an error for a matrix whose regions do not
// share an identical, complete stressor by sector grid.
func ShapeMismatchError(year int, f Family, reason string) error {
	msg := `Matrix shape mismatch for <em>%s %d</em>

<em>Reason:</em> %s

Records were not produced to avoid misaligned values.`

	vars := []any{f, year, reason}

	return &gn.Error{
		Code: errcode.ShapeMismatchError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("shape mismatch in %s %d: %s", f, year, reason),
	}
}

// UnsafeIdentError creates an error for a table or column name that
// cannot be safely placed into SQL text.
func UnsafeIdentError(ident string) error {
	msg := "Identifier <em>%q</em> is not allowed"
	vars := []any{ident}

	return &gn.Error{
		Code: errcode.ValidationError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("unsafe SQL identifier %q", ident),
	}
}

// YearRangeError creates an error for a year that EXIOBASE cannot have.
func YearRangeError(year int) error {
	msg := "Year <em>%d</em> is out of range %d-%d"
	vars := []any{year, MinYear, MaxYear}

	return &gn.Error{
		Code: errcode.ValidationError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("year %d is out of range %d-%d", year, MinYear, MaxYear),
	}
}
