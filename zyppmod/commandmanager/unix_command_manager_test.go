package commandmanager

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCapturesStdout(t *testing.T) {
	manager := &UnixCommandManager{}

	result, err := manager.Run(context.Background(), CommandConfig{
		Command:       "echo",
		Args:          []string{"hello"},
		CaptureStdout: true,
	})

	require.NoError(t, err)
	assert.Equal(t, 0, result.ExitCode)
	assert.Equal(t, []string{"hello"}, result.StdoutLines)
}

func TestRunDiscardsStdoutWhenNotRequested(t *testing.T) {
	manager := &UnixCommandManager{}

	result, err := manager.Run(context.Background(), CommandConfig{
		Command: "echo",
		Args:    []string{"hello"},
	})

	require.NoError(t, err)
	assert.Nil(t, result.StdoutLines)
}

func TestRunReportsNonZeroExitWithoutError(t *testing.T) {
	manager := &UnixCommandManager{}

	result, err := manager.Run(context.Background(), CommandConfig{
		Command: "false",
	})

	require.NoError(t, err)
	assert.NotEqual(t, 0, result.ExitCode)
}

func TestRunMissingBinary(t *testing.T) {
	manager := &UnixCommandManager{}

	_, err := manager.Run(context.Background(), CommandConfig{
		Command: "zyppmod-no-such-binary",
	})

	assert.Error(t, err)
}

func TestSplitLines(t *testing.T) {
	assert.Nil(t, splitLines(""))
	assert.Nil(t, splitLines("\n"))
	assert.Equal(t, []string{"a"}, splitLines("a\n"))
	assert.Equal(t, []string{"a", "b"}, splitLines("a\nb"))
}
