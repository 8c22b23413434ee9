package commandmanager

import (
	"context"
	"time"
)

// CommandConfig describes a single external command invocation. Streams
// that are not captured are discarded, never inherited from the adapter.
type CommandConfig struct {
	Command       string
	Args          []string
	CaptureStdout bool
	CaptureStderr bool
}

// CommandResult encapsulates the results from a command execution.
type CommandResult struct {
	Command     string
	StdoutLines []string
	STDERR      string
	ExitCode    int
	Duration    time.Duration
	Timestamp   time.Time
}

// CommandManager provides methods to execute commands on the system.
type CommandManager interface {
	// Run executes a command, blocking until it exits. A non-zero exit
	// status is reported through CommandResult.ExitCode with a nil error;
	// the error return is reserved for failures to run the command at all.
	Run(ctx context.Context, config CommandConfig) (CommandResult, error)
}
