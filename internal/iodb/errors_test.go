package iodb

import (
	"errors"
	"testing"

	"github.com/gnames/exiodb/pkg/errcode"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConnectionError verifies error structure.
func TestConnectionError(t *testing.T) {
	originalErr := errors.New("connection refused")

	err := ConnectionError("localhost", 5432, "exiobase", "postgres",
		originalErr)

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok, "Error should be of type *gn.Error")

	assert.Equal(t, errcode.DBConnectionError, gnErr.Code)
	assert.NotEmpty(t, gnErr.Msg)
	assert.Len(t, gnErr.Vars, 5)
	assert.ErrorIs(t, gnErr.Err, originalErr)
}

// TestErrorCodes verifies codes of the remaining constructors.
func TestErrorCodes(t *testing.T) {
	cause := errors.New("boom")

	tests := []struct {
		msg  string
		err  error
		code gn.ErrorCode
	}{
		{"table check", TableCheckError(cause), errcode.DBTableCheckError},
		{"table exists", TableExistsCheckError("fr_dpba", cause), errcode.DBTableCheckError},
		{"not connected", NotConnectedError(), errcode.DBNotConnectedError},
		{"query tables", QueryTablesError(cause), errcode.DBQueryTablesError},
		{"scan table", ScanTableError(cause), errcode.DBScanTableError},
		{"drop table", DropTableError("fr_dpba", cause), errcode.DBDropTableError},
	}

	for _, v := range tests {
		gnErr, ok := v.err.(*gn.Error)
		require.True(t, ok, v.msg)
		assert.Equal(t, v.code, gnErr.Code, v.msg)
		if v.code != errcode.DBNotConnectedError {
			assert.ErrorIs(t, gnErr.Err, cause, v.msg)
		}
	}
}
