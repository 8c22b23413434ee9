package packagemanager

import (
	"context"
	"strings"

	"github.com/stretchr/testify/mock"

	"github.com/zypperops/zyppmod/zyppmod/commandmanager"
)

type MockCommandManager struct {
	mock.Mock
}

func (m *MockCommandManager) Run(ctx context.Context, config commandmanager.CommandConfig) (commandmanager.CommandResult, error) {
	args := m.Called(ctx, config)
	return args.Get(0).(commandmanager.CommandResult), args.Error(1)
}

// fakeCommandManager records every invocation and answers from a table of
// scripted results keyed by the joined argv. Unknown commands succeed
// with exit 0 and no output.
type fakeCommandManager struct {
	calls     []commandmanager.CommandConfig
	responses map[string]commandmanager.CommandResult
}

func (f *fakeCommandManager) Run(ctx context.Context, config commandmanager.CommandConfig) (commandmanager.CommandResult, error) {
	f.calls = append(f.calls, config)
	if res, ok := f.responses[joinArgv(config)]; ok {
		return res, nil
	}
	return commandmanager.CommandResult{Command: config.Command}, nil
}

func (f *fakeCommandManager) commandLines() []string {
	var lines []string
	for _, call := range f.calls {
		lines = append(lines, joinArgv(call))
	}
	return lines
}

func joinArgv(config commandmanager.CommandConfig) string {
	return config.Command + " " + strings.Join(config.Args, " ")
}

// fakeProber answers from fixed maps: archs holds the installed
// architectures per package name, present the positive existence refs.
type fakeProber struct {
	archs   map[string][]string
	present map[string]bool
}

func (f *fakeProber) InstalledArchitectures(ctx context.Context, name string) ([]string, bool, error) {
	archs, ok := f.archs[name]
	return archs, ok, nil
}

func (f *fakeProber) Exists(ctx context.Context, ref string) (bool, error) {
	return f.present[ref], nil
}
