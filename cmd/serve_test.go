package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetServeCmd(t *testing.T) {
	cmd := getServeCmd()
	require.NotNil(t, cmd)
	assert.Equal(t, "serve", cmd.Use)
	assert.Contains(t, cmd.Long, "/{lens}/{region}")

	flag := cmd.Flags().Lookup("port")
	require.NotNil(t, flag)
	assert.Equal(t, "p", flag.Shorthand)
}

func TestGetUpdateCmd(t *testing.T) {
	cmd := getUpdateCmd()
	require.NotNil(t, cmd)
	assert.Equal(t, "update", cmd.Use)

	for _, name := range []string{"table", "input"} {
		flag := cmd.Flags().Lookup(name)
		require.NotNil(t, flag, name)
		assert.Equal(t, []string{"true"},
			flag.Annotations["cobra_annotation_bash_completion_one_required_flag"], name)
	}
}

func TestRunUpdateUnsafeTable(t *testing.T) {
	err := runUpdate("fr_dpba; drop table regions", "values.csv")
	assert.Error(t, err)
}
