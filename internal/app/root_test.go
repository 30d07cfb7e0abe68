package app

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayscope/pkg/contracts"
)

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	// A nil slice would make cobra fall back to os.Args, which carry the
	// test binary's flags here.
	if args == nil {
		args = []string{}
	}
	RootCmd.SetArgs(args)
	RootCmd.SetOut(&out)
	RootCmd.SetErr(&out)
	t.Cleanup(func() {
		RootCmd.SetOut(nil)
		RootCmd.SetErr(nil)
	})

	err := RootCmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := executeCommand(t, "version")
	require.NoError(t, err)

	assert.Contains(t, out, contracts.GetVersionString())
	assert.Contains(t, out, "api: "+contracts.APIVersion)
}

func TestRootWithoutArgsShowsHelp(t *testing.T) {
	out, err := executeCommand(t)
	require.NoError(t, err)

	assert.Contains(t, out, "explore")
	assert.Contains(t, out, "serve")
	assert.Contains(t, out, "report")
	assert.Contains(t, out, "cumulative")
}

func TestRootRegistersCommands(t *testing.T) {
	names := make(map[string]bool)
	for _, cmd := range RootCmd.Commands() {
		names[cmd.Name()] = true
	}

	for _, want := range []string{"explore", "serve", "report", "version"} {
		assert.True(t, names[want], want)
	}
}
