package iofs

import (
	"fmt"
	"runtime"

	"github.com/gnames/exiodb/pkg/errcode"
	"github.com/gnames/gn"
)

// CreateDirError creates an error for a directory that cannot be created.
func CreateDirError(dir string, err error) error {
	return newError(errcode.CreateDirError,
		"Cannot create directory <em>%s</em>", dir,
		"cannot create directory", err)
}

// CopyFileError creates an error for the default config that cannot be
// written.
func CopyFileError(file string, err error) error {
	return newError(errcode.CopyFileError,
		"Cannot write default config to <em>%s</em>", file,
		"cannot copy file", err)
}

// ReadFileError creates an error for a local input file that cannot be
// read or parsed.
func ReadFileError(path string, err error) error {
	return newError(errcode.ReadFileError,
		"Cannot read <em>%s</em>", path,
		"cannot read "+path, err)
}

// newError records the function that called the constructor.
func newError(
	code gn.ErrorCode,
	msg, path, summary string,
	err error,
) error {
	pc, _, _, _ := runtime.Caller(2)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: code,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("from %s: %s: %w", fn.Name(), summary, err),
	}
}
