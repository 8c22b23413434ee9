// Package adapter implements the protocol operations the configuration
// agent dispatches to this module. Each operation reads Key=Value records
// from in, writes Key=Value records to out and returns the process exit
// code. Exit codes reflect protocol-level problems only; package-manager
// failures become ErrorMessage diagnostics and are left for the agent's
// own verification pass.
package adapter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/zypperops/zyppmod/logger"
	"github.com/zypperops/zyppmod/zyppmod/commandmanager"
	"github.com/zypperops/zyppmod/zyppmod/config"
	"github.com/zypperops/zyppmod/zyppmod/packagemanager"
	"github.com/zypperops/zyppmod/zyppmod/protocol"
)

// refDelimiters are characters a package reference may never contain; the
// surrounding agent protocol uses them as separators.
const refDelimiters = ","

type Adapter struct {
	Zypper *packagemanager.Zypper
	RPM    *packagemanager.RPMDatabase
	Caps   *packagemanager.Capabilities
	Log    logger.Logger
}

func New(cm commandmanager.CommandManager, cfg config.Config, log logger.Logger) *Adapter {
	return &Adapter{
		Zypper: packagemanager.NewZypper(cm, cfg.ZypperBin, cfg.ZypperArgs),
		RPM:    packagemanager.NewRPMDatabase(cm, cfg.RPMBin),
		Caps:   packagemanager.NewCapabilities(cm, cfg.ZypperBin),
		Log:    log,
	}
}

// GetPackageData classifies each File= reference as a repository package
// or an rpm file on disk. A reference containing a disallowed delimiter
// aborts before any external command is issued.
func (a *Adapter) GetPackageData(ctx context.Context, in io.Reader, out io.Writer) int {
	r := protocol.NewReader(in)
	w := protocol.NewWriter(out)

	for {
		field, err := r.Next()
		if err == io.EOF {
			return 0
		}
		if err != nil {
			w.Error(err.Error())
			return 1
		}
		if field.Key != protocol.KeyFile {
			continue
		}
		if code := a.packageData(ctx, w, field.Value); code != 0 {
			return code
		}
	}
}

func (a *Adapter) packageData(ctx context.Context, w *protocol.Writer, ref string) int {
	if strings.ContainsAny(ref, refDelimiters) {
		w.Error(fmt.Sprintf("package reference %q contains a disallowed delimiter", ref))
		return 1
	}

	if !strings.Contains(ref, "/") && !strings.HasSuffix(ref, ".rpm") {
		w.KeyValue(protocol.KeyPackageType, "repo")
		w.KeyValue(protocol.KeyName, ref)
		return 0
	}

	w.KeyValue(protocol.KeyPackageType, "file")
	pkg, err := a.RPM.FilePackageData(ctx, ref)
	if err != nil {
		a.Log.Warn("cannot inspect %s: %v", ref, err)
		w.KeyValue(protocol.KeyName, ref)
		return 0
	}
	w.KeyValue(protocol.KeyName, pkg.Name)
	w.KeyValue(protocol.KeyVersion, pkg.Version)
	w.KeyValue(protocol.KeyArchitecture, pkg.Architecture)
	return 0
}

// ListInstalled emits one Name/Version/Architecture triple per installed
// package.
func (a *Adapter) ListInstalled(ctx context.Context, out io.Writer) int {
	w := protocol.NewWriter(out)

	pkgs, err := a.RPM.ListInstalled(ctx)
	if err != nil {
		w.Error(err.Error())
		return 0
	}
	for _, pkg := range pkgs {
		w.KeyValue(protocol.KeyName, pkg.Name)
		w.KeyValue(protocol.KeyVersion, pkg.Version)
		w.KeyValue(protocol.KeyArchitecture, pkg.Architecture)
	}
	return 0
}

// ListUpdates emits the packages a newer version is available for. With
// refresh set the repository metadata is refreshed first; the local
// variant works off the cached metadata.
func (a *Adapter) ListUpdates(ctx context.Context, out io.Writer, refresh bool) int {
	w := protocol.NewWriter(out)

	if refresh {
		result, err := a.Zypper.Refresh(ctx)
		if err != nil {
			w.Error(err.Error())
			return 0
		}
		if result.ExitCode != 0 {
			// stale metadata still answers the query
			w.Error(fmt.Sprintf("zypper refresh failed: %s", result.STDERR))
		}
	}

	updates, err := a.Zypper.ListUpdates(ctx)
	if err != nil {
		w.Error(err.Error())
		return 0
	}
	for _, u := range updates {
		w.KeyValue(protocol.KeyName, u.Name)
		w.KeyValue(protocol.KeyVersion, u.Available)
		w.KeyValue(protocol.KeyArchitecture, u.Architecture)
	}
	return 0
}

// RepoInstall runs the full request cascade: collect cohorts, build the
// plan, execute it. It always exits 0 — partial failures are reported as
// diagnostics, final state is the agent's job to verify — except when
// capability detection fails, which makes any install unsafe.
func (a *Adapter) RepoInstall(ctx context.Context, in io.Reader, out io.Writer) int {
	w := protocol.NewWriter(out)

	requests, err := readRequests(in)
	if err != nil {
		w.Error(err.Error())
		return 0
	}
	if len(requests) == 0 {
		return 0
	}

	planner := &packagemanager.Planner{Prober: a.RPM}
	plan, err := planner.BuildPlan(ctx, packagemanager.CollectCohorts(requests))
	if err != nil {
		w.Error(err.Error())
		return 0
	}

	orchestrator := &packagemanager.Orchestrator{
		Zypper: a.Zypper,
		Caps:   a.Caps,
		Prober: a.RPM,
		Log:    a.Log,
		Out:    w,
	}
	if err := orchestrator.Execute(ctx, plan); err != nil {
		w.Error(err.Error())
		if errors.Is(err, packagemanager.ErrCapabilityDetection) {
			return 1
		}
	}
	return 0
}

// Remove issues one combined removal for all requested names. Empty input
// is a success; otherwise the underlying exit code is propagated.
func (a *Adapter) Remove(ctx context.Context, in io.Reader, out io.Writer) int {
	w := protocol.NewWriter(out)

	requests, err := readRequests(in)
	if err != nil {
		w.Error(err.Error())
		return 1
	}
	if len(requests) == 0 {
		return 0
	}

	names := make([]string, 0, len(requests))
	for _, req := range requests {
		names = append(names, packagemanager.Specifier(req.Name, req.Architecture, ""))
	}

	result, err := a.Zypper.Remove(ctx, names)
	if err != nil {
		w.Error(err.Error())
		return 1
	}
	if result.ExitCode != 0 {
		w.Error(fmt.Sprintf("zypper remove failed: %s", result.STDERR))
	}
	return result.ExitCode
}

// FileInstall installs rpm files given as File= paths in one combined
// command.
func (a *Adapter) FileInstall(ctx context.Context, in io.Reader, out io.Writer) int {
	r := protocol.NewReader(in)
	w := protocol.NewWriter(out)

	var paths []string
	for {
		field, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			w.Error(err.Error())
			return 1
		}
		if field.Key == protocol.KeyFile {
			paths = append(paths, field.Value)
		}
	}
	if len(paths) == 0 {
		return 0
	}

	result, err := a.Zypper.Install(ctx, false, paths)
	if err != nil {
		w.Error(err.Error())
		return 0
	}
	if result.ExitCode != 0 {
		w.Error(fmt.Sprintf("zypper install failed: %s", result.STDERR))
	}
	return 0
}

// readRequests parses a stream of Name/Version/Architecture fields into
// requests, in arrival order. A Name field always starts a new request.
func readRequests(in io.Reader) ([]packagemanager.PackageRequest, error) {
	r := protocol.NewReader(in)

	var requests []packagemanager.PackageRequest
	for {
		field, err := r.Next()
		if err == io.EOF {
			return requests, nil
		}
		if err != nil {
			return nil, err
		}
		switch field.Key {
		case protocol.KeyName:
			requests = append(requests, packagemanager.PackageRequest{Name: field.Value})
		case protocol.KeyVersion:
			if len(requests) > 0 {
				requests[len(requests)-1].Version = field.Value
			}
		case protocol.KeyArchitecture:
			if len(requests) > 0 {
				requests[len(requests)-1].Architecture = field.Value
			}
		}
	}
}
