package ioreader

import (
	"fmt"

	"github.com/gnames/exiodb/pkg/errcode"
	"github.com/gnames/gn"
)

// OpenMatrixError creates an error for a staged matrix file that cannot
// be opened.
func OpenMatrixError(path string, err error) error {
	msg := `Cannot open matrix file <em>%s</em>

<em>Possible causes:</em>
  - Archive was not unpacked
  - Staging directory was cleaned during the run`

	vars := []any{path}

	return &gn.Error{
		Code: errcode.ReadFileError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot open %s: %w", path, err),
	}
}
