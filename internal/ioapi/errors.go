package ioapi

import (
	"fmt"

	"github.com/gnames/exiodb/pkg/errcode"
	"github.com/gnames/gn"
)

// QueryError wraps a failed lookup of a table.
func QueryError(table string, err error) error {
	msg := "Query of <em>%s</em> failed"
	vars := []any{table}

	return &gn.Error{
		Code: errcode.QueryError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("query %s: %w", table, err),
	}
}

// ValidationError reports an invalid request parameter.
func ValidationError(param, value string) error {
	msg := "Invalid value <em>%s</em> of parameter <em>%s</em>"
	vars := []any{value, param}

	return &gn.Error{
		Code: errcode.ValidationError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("invalid %s: %q", param, value),
	}
}

// ServeError reports that the query service could not run.
func ServeError(port int, err error) error {
	msg := `Cannot serve on port <em>%d</em>

<em>How to fix:</em>
  1. Check that no other process uses the port
  2. Choose another port with <em>--port</em>`
	vars := []any{port}

	return &gn.Error{
		Code: errcode.APIServeError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("serve on port %d: %w", port, err),
	}
}
