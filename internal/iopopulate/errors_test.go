package iopopulate

import (
	"context"
	"testing"

	"github.com/gnames/exiodb/pkg/errcode"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNotConnectedError verifies error structure.
func TestNotConnectedError(t *testing.T) {
	err := NotConnectedError()

	require.NotNil(t, err)

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok, "Error should be of type *gn.Error")

	assert.Equal(t, errcode.DBNotConnectedError, gnErr.Code)
	assert.NotEmpty(t, gnErr.Msg)
	assert.Contains(t, gnErr.Err.Error(), "not connected")
}

func TestAllYearsFailedError(t *testing.T) {
	err := AllYearsFailedError([]int{2019, 2020})

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)

	assert.Equal(t, errcode.PopulateAllYearsFailedError, gnErr.Code)
	assert.Len(t, gnErr.Vars, 1)
	assert.Contains(t, gnErr.Err.Error(), "[2019 2020]")
}

func TestCancelledError(t *testing.T) {
	err := CancelledError(context.Canceled)

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)

	assert.Equal(t, errcode.PopulateCancelledError, gnErr.Code)
	assert.ErrorIs(t, gnErr.Err, context.Canceled)
}
