package packagemanager

import (
	"context"
	"fmt"
	"strings"

	"github.com/zypperops/zyppmod/zyppmod/commandmanager"
)

// RPMDatabase queries the installed-package database through rpm.
type RPMDatabase struct {
	cm     commandmanager.CommandManager
	rpmBin string
}

func NewRPMDatabase(cm commandmanager.CommandManager, rpmBin string) *RPMDatabase {
	return &RPMDatabase{cm: cm, rpmBin: rpmBin}
}

// InstalledPackage is one row of the RPM database.
type InstalledPackage struct {
	Name         string
	Version      string
	Architecture string
}

// InstalledArchitectures reports which architectures of name are
// currently installed, deduplicated in order of first appearance.
func (r *RPMDatabase) InstalledArchitectures(ctx context.Context, name string) ([]string, bool, error) {
	result, err := r.cm.Run(ctx, commandmanager.CommandConfig{
		Command:       r.rpmBin,
		Args:          []string{"-q", "--queryformat", "%{ARCH}\n", name},
		CaptureStdout: true,
	})
	if err != nil {
		return nil, false, err
	}
	if result.ExitCode != 0 || len(result.StdoutLines) == 0 {
		return nil, false, nil
	}

	seen := make(map[string]bool)
	var archs []string
	for _, line := range result.StdoutLines {
		arch := strings.TrimSpace(line)
		// gpg-pubkey and friends carry no architecture
		if arch == "" || arch == "(none)" || seen[arch] {
			continue
		}
		seen[arch] = true
		archs = append(archs, arch)
	}
	return archs, true, nil
}

func (r *RPMDatabase) Exists(ctx context.Context, ref string) (bool, error) {
	result, err := r.cm.Run(ctx, commandmanager.CommandConfig{
		Command: r.rpmBin,
		Args:    []string{"-q", ref},
	})
	if err != nil {
		return false, err
	}
	return result.ExitCode == 0, nil
}

// ListInstalled enumerates every installed package.
func (r *RPMDatabase) ListInstalled(ctx context.Context) ([]InstalledPackage, error) {
	result, err := r.cm.Run(ctx, commandmanager.CommandConfig{
		Command:       r.rpmBin,
		Args:          []string{"-qa", "--queryformat", "%{NAME} %{VERSION}-%{RELEASE} %{ARCH}\n"},
		CaptureStdout: true,
		CaptureStderr: true,
	})
	if err != nil {
		return nil, err
	}
	if result.ExitCode != 0 {
		return nil, fmt.Errorf("rpm -qa exited %d: %s", result.ExitCode, result.STDERR)
	}

	var pkgs []InstalledPackage
	for _, line := range result.StdoutLines {
		fields := strings.Fields(line)
		if len(fields) != 3 {
			continue
		}
		pkgs = append(pkgs, InstalledPackage{
			Name:         fields[0],
			Version:      fields[1],
			Architecture: fields[2],
		})
	}
	return pkgs, nil
}

// FilePackageData reads name, version and architecture out of an rpm file
// on disk.
func (r *RPMDatabase) FilePackageData(ctx context.Context, path string) (InstalledPackage, error) {
	result, err := r.cm.Run(ctx, commandmanager.CommandConfig{
		Command:       r.rpmBin,
		Args:          []string{"-qp", "--queryformat", "%{NAME} %{VERSION}-%{RELEASE} %{ARCH}", path},
		CaptureStdout: true,
		CaptureStderr: true,
	})
	if err != nil {
		return InstalledPackage{}, err
	}
	if result.ExitCode != 0 || len(result.StdoutLines) == 0 {
		return InstalledPackage{}, fmt.Errorf("cannot read package data from %s: %s", path, strings.TrimSpace(result.STDERR))
	}

	fields := strings.Fields(result.StdoutLines[0])
	if len(fields) != 3 {
		return InstalledPackage{}, fmt.Errorf("unexpected rpm output for %s: %q", path, result.StdoutLines[0])
	}
	return InstalledPackage{
		Name:         fields[0],
		Version:      fields[1],
		Architecture: fields[2],
	}, nil
}
