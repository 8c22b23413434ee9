package packagemanager

import (
	"context"
	"errors"
	"fmt"
	"strings"

	goversion "github.com/hashicorp/go-version"

	"github.com/zypperops/zyppmod/zyppmod/commandmanager"
)

// oldPackageMinVersion is the first zypper release whose install command
// understands --oldpackage.
const oldPackageMinVersion = "1.8.0"

// ErrCapabilityDetection marks the one unrecoverable failure class: the
// zypper version could not be determined, so no install flags can be
// chosen safely.
var ErrCapabilityDetection = errors.New("capability detection failed")

// Capabilities lazily detects which optional zypper flags are available.
// Construct one value per run and hand it to every consumer; the version
// query runs at most once per process.
type Capabilities struct {
	cm        commandmanager.CommandManager
	zypperBin string

	detected   bool
	oldPackage bool
}

func NewCapabilities(cm commandmanager.CommandManager, zypperBin string) *Capabilities {
	return &Capabilities{cm: cm, zypperBin: zypperBin}
}

// SupportsOldPackage reports whether installs may carry --oldpackage.
// An unreadable version string is a fatal configuration error: guessing
// the flag could corrupt install outcomes, so there is no silent default.
func (c *Capabilities) SupportsOldPackage(ctx context.Context) (bool, error) {
	if c.detected {
		return c.oldPackage, nil
	}

	result, err := c.cm.Run(ctx, commandmanager.CommandConfig{
		Command:       c.zypperBin,
		Args:          []string{"--version"},
		CaptureStdout: true,
	})
	if err != nil {
		return false, fmt.Errorf("querying %s version: %w", c.zypperBin, err)
	}

	current, err := parseZypperVersion(result.StdoutLines)
	if err != nil {
		return false, err
	}

	minimum := goversion.Must(goversion.NewVersion(oldPackageMinVersion))
	c.oldPackage = current.GreaterThanOrEqual(minimum)
	c.detected = true
	return c.oldPackage, nil
}

// parseZypperVersion extracts the numeric token from output such as
// "zypper 1.14.11".
func parseZypperVersion(lines []string) (*goversion.Version, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("zypper version query produced no output")
	}
	for _, field := range strings.Fields(lines[0]) {
		if v, err := goversion.NewVersion(field); err == nil {
			return v, nil
		}
	}
	return nil, fmt.Errorf("cannot determine zypper version from %q", lines[0])
}
