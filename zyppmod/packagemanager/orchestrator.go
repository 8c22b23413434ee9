package packagemanager

import (
	"context"
	"fmt"
	"strings"

	multierror "github.com/hashicorp/go-multierror"

	"github.com/zypperops/zyppmod/logger"
	"github.com/zypperops/zyppmod/zyppmod/commandmanager"
	"github.com/zypperops/zyppmod/zyppmod/protocol"
)

// Orchestrator executes a Plan. The configuration agent re-checks final
// package state on its own pass, so command failures are surfaced as
// diagnostics and execution moves on; one cohort's failure never aborts
// the next. Only capability detection is allowed to stop the run.
type Orchestrator struct {
	Zypper *Zypper
	Caps   *Capabilities
	Prober InstalledProber
	Log    logger.Logger
	Out    *protocol.Writer
}

func (o *Orchestrator) Execute(ctx context.Context, plan Plan) error {
	oldPackage, err := o.Caps.SupportsOldPackage(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCapabilityDetection, err)
	}

	var errs *multierror.Error

	if len(plan.SimpleBatch) > 0 {
		if err := o.installBatch(ctx, oldPackage, plan.SimpleBatch); err != nil {
			errs = multierror.Append(errs, err)
		}
	}

	for _, cohort := range plan.PinnedCohorts {
		if err := o.runCascade(ctx, oldPackage, cohort); err != nil {
			errs = multierror.Append(errs, err)
		}
	}

	return errs.ErrorOrNil()
}

func (o *Orchestrator) installBatch(ctx context.Context, oldPackage bool, specifiers []string) error {
	result, err := o.Zypper.Install(ctx, oldPackage, specifiers)
	if err != nil {
		return err
	}
	if result.ExitCode != 0 {
		o.report("install", specifiers, result)
	}
	return nil
}

// runCascade moves a pinned cohort to its requested versions: update the
// whole cohort, verify each reference against the RPM database, and fall
// back to a plain install only if something is still missing. The install
// also covers downgrades, so no separate downgrade step is issued.
func (o *Orchestrator) runCascade(ctx context.Context, oldPackage bool, cohort PinnedCohort) error {
	result, err := o.Zypper.Update(ctx, cohort.Specifiers)
	if err != nil {
		return err
	}
	if result.ExitCode != 0 {
		o.report("update", cohort.Specifiers, result)
	}

	satisfied := true
	for _, spec := range cohort.Specifiers {
		present, err := o.Prober.Exists(ctx, stripVersion(spec))
		if err != nil {
			return err
		}
		if !present {
			satisfied = false
			break
		}
	}
	if satisfied {
		return nil
	}

	result, err = o.Zypper.Install(ctx, oldPackage, cohort.Specifiers)
	if err != nil {
		return err
	}
	if result.ExitCode != 0 {
		o.report("install", cohort.Specifiers, result)
	}
	return nil
}

func (o *Orchestrator) report(action string, specifiers []string, result commandmanager.CommandResult) {
	o.Log.Warn("zypper %s exited %d for %s", action, result.ExitCode, strings.Join(specifiers, " "))
	if o.Out != nil && result.STDERR != "" {
		o.Out.Error(fmt.Sprintf("zypper %s failed: %s", action, result.STDERR))
	}
}
