package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllOperationsRegistered(t *testing.T) {
	want := []string{
		"get-package-data",
		"list-installed",
		"list-updates",
		"list-updates-local",
		"repo-install",
		"remove",
		"file-install",
	}

	var got []string
	for _, cmd := range rootCmd.Commands() {
		got = append(got, cmd.Name())
	}
	for _, name := range want {
		assert.Contains(t, got, name)
	}
}

func TestExitErrorCarriesCode(t *testing.T) {
	err := &exitError{code: 104}
	require.EqualError(t, err, "exit code 104")
}
