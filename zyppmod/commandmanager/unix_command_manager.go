package commandmanager

import (
	"context"
	"io"
	"os/exec"
	"strings"
	"syscall"
	"time"
)

// UnixCommandManager runs commands on the local system. The adapter's own
// stdout carries the key=value protocol stream, so spawned commands write
// to dedicated pipes or to the bit bucket, never to the inherited streams.
type UnixCommandManager struct{}

func (u *UnixCommandManager) Run(ctx context.Context, config CommandConfig) (CommandResult, error) {
	start := time.Now()

	cmd := exec.CommandContext(ctx, config.Command, config.Args...)

	var stdout, stderr strings.Builder
	if config.CaptureStdout {
		cmd.Stdout = &stdout
	} else {
		cmd.Stdout = io.Discard
	}
	if config.CaptureStderr {
		cmd.Stderr = &stderr
	} else {
		cmd.Stderr = io.Discard
	}

	err := cmd.Run()

	result := CommandResult{
		Command:   config.Command,
		STDERR:    stderr.String(),
		ExitCode:  getExitCode(err),
		Duration:  time.Since(start),
		Timestamp: start,
	}
	if config.CaptureStdout {
		result.StdoutLines = splitLines(stdout.String())
	}

	if _, ok := err.(*exec.ExitError); ok {
		err = nil
	}
	return result, err
}

func splitLines(s string) []string {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func getExitCode(err error) int {
	if err != nil {
		if exitError, ok := err.(*exec.ExitError); ok {
			status := exitError.Sys().(syscall.WaitStatus)
			return status.ExitStatus()
		}
	}
	return 0
}
