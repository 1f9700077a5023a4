package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetCreateCmd verifies the create command structure.
func TestGetCreateCmd(t *testing.T) {
	cmd := getCreateCmd()
	require.NotNil(t, cmd)

	assert.Equal(t, "create", cmd.Use)
	assert.Contains(t, cmd.Short, "schema")
	assert.Contains(t, cmd.Long, "GORM AutoMigrate")
	assert.NotNil(t, cmd.RunE)

	forceFlag := cmd.Flags().Lookup("force")
	require.NotNil(t, forceFlag, "--force flag should exist")
	assert.Equal(t, "f", forceFlag.Shorthand)
	assert.Equal(t, "false", forceFlag.DefValue)
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		res   bool
	}{
		{"yes\n", true},
		{"Y\n", true},
		{"  yes  \n", true},
		{"no\n", false},
		{"\n", false},
		{"yes", true},
		{"", false},
	}

	for _, v := range tests {
		out := new(bytes.Buffer)
		res, err := confirm(strings.NewReader(v.input), out)
		require.NoError(t, err)
		assert.Equal(t, v.res, res, v.input)
		assert.Contains(t, out.String(), "continue?")
	}
}
