package packagemanager

import (
	"context"
	"fmt"
	"strings"

	"github.com/zypperops/zyppmod/zyppmod/commandmanager"
)

// Zypper issues zypper commands through the command manager. Argument
// construction lives in the small builder functions below so a command
// line can be tested without spawning anything.
type Zypper struct {
	cm         commandmanager.CommandManager
	bin        string
	globalArgs []string
}

func NewZypper(cm commandmanager.CommandManager, bin string, globalArgs []string) *Zypper {
	return &Zypper{cm: cm, bin: bin, globalArgs: globalArgs}
}

func installArgs(oldPackage bool, specifiers []string) []string {
	args := []string{"--non-interactive", "install", "--auto-agree-with-licenses"}
	if oldPackage {
		args = append(args, "--oldpackage")
	}
	return append(args, specifiers...)
}

func updateArgs(specifiers []string) []string {
	return append([]string{"--non-interactive", "update"}, specifiers...)
}

func removeArgs(names []string) []string {
	return append([]string{"--non-interactive", "remove"}, names...)
}

func refreshArgs() []string {
	return []string{"--non-interactive", "refresh"}
}

func listUpdatesArgs() []string {
	return []string{"--non-interactive", "--quiet", "list-updates"}
}

func (z *Zypper) run(ctx context.Context, args []string, captureStdout bool) (commandmanager.CommandResult, error) {
	full := append(append([]string{}, z.globalArgs...), args...)
	return z.cm.Run(ctx, commandmanager.CommandConfig{
		Command:       z.bin,
		Args:          full,
		CaptureStdout: captureStdout,
		CaptureStderr: true,
	})
}

// Install runs one combined install carrying all specifiers.
func (z *Zypper) Install(ctx context.Context, oldPackage bool, specifiers []string) (commandmanager.CommandResult, error) {
	return z.run(ctx, installArgs(oldPackage, specifiers), false)
}

// Update runs one combined update carrying all specifiers.
func (z *Zypper) Update(ctx context.Context, specifiers []string) (commandmanager.CommandResult, error) {
	return z.run(ctx, updateArgs(specifiers), false)
}

func (z *Zypper) Remove(ctx context.Context, names []string) (commandmanager.CommandResult, error) {
	return z.run(ctx, removeArgs(names), false)
}

func (z *Zypper) Refresh(ctx context.Context) (commandmanager.CommandResult, error) {
	return z.run(ctx, refreshArgs(), false)
}

// AvailableUpdate is one row of zypper's update listing.
type AvailableUpdate struct {
	Repository   string
	Name         string
	Current      string
	Available    string
	Architecture string
}

// ListUpdates parses zypper's pipe-delimited update table. Only rows whose
// status marker reads "v" (new version available) are returned.
func (z *Zypper) ListUpdates(ctx context.Context) ([]AvailableUpdate, error) {
	result, err := z.run(ctx, listUpdatesArgs(), true)
	if err != nil {
		return nil, err
	}
	if result.ExitCode != 0 {
		return nil, fmt.Errorf("zypper list-updates exited %d: %s", result.ExitCode, strings.TrimSpace(result.STDERR))
	}
	return parseUpdateTable(result.StdoutLines), nil
}

// parseUpdateTable reads lines shaped like
//
//	v | repo-oss | foo | 1.0-1 | 1.1-1 | x86_64
//
// skipping headers, separators and rows not marked "v".
func parseUpdateTable(lines []string) []AvailableUpdate {
	var updates []AvailableUpdate
	for _, line := range lines {
		cols := strings.Split(line, "|")
		if len(cols) < 6 {
			continue
		}
		for i := range cols {
			cols[i] = strings.TrimSpace(cols[i])
		}
		if cols[0] != "v" {
			continue
		}
		updates = append(updates, AvailableUpdate{
			Repository:   cols[1],
			Name:         cols[2],
			Current:      cols[3],
			Available:    cols[4],
			Architecture: cols[5],
		})
	}
	return updates
}
