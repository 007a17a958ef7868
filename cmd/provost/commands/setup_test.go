package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup(t *testing.T) {
	cmd := Setup()

	require.NotNil(t, cmd)
	assert.Equal(t, "setup", cmd.Use)
	assert.NotNil(t, cmd.RunE, "setup command should have RunE function")
}

func TestSetup_Flags(t *testing.T) {
	cmd := Setup()

	config := cmd.Flags().Lookup("config")
	require.NotNil(t, config)
	assert.Equal(t, "c", config.Shorthand)

	plain := cmd.Flags().Lookup("plain")
	require.NotNil(t, plain)
	assert.Equal(t, "false", plain.DefValue)
}

func TestWordPress(t *testing.T) {
	cmd := WordPress()

	require.NotNil(t, cmd)
	assert.Equal(t, "wordpress", cmd.Use)
	assert.NotNil(t, cmd.RunE)
	require.NotNil(t, cmd.Flags().Lookup("config"))
}

func TestNotify_Args(t *testing.T) {
	cmd := Notify()

	require.NotNil(t, cmd)
	assert.NotNil(t, cmd.Args, "notify requires exactly one argument")

	severity := cmd.Flags().Lookup("severity")
	require.NotNil(t, severity)
	assert.Equal(t, "info", severity.DefValue)
}

func TestVersion_Output(t *testing.T) {
	cmd := Version()
	require.NotNil(t, cmd)
	assert.Equal(t, "version", cmd.Use)
	assert.NotNil(t, cmd.Run)
}

func TestCompletion_ValidArgs(t *testing.T) {
	cmd := Completion()
	require.NotNil(t, cmd)
	assert.ElementsMatch(t, []string{"bash", "zsh", "fish", "powershell"}, cmd.ValidArgs)
}
