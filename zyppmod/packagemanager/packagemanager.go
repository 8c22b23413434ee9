// Package packagemanager plans and executes zypper install requests and
// answers queries against the RPM database.
package packagemanager

import (
	"context"
	"strings"
)

// PackageRequest is one requested package as it arrived on the wire.
// Arrival order is significant.
type PackageRequest struct {
	Name         string
	Version      string
	Architecture string
}

// Cohort is a maximal run of consecutively arriving requests sharing one
// package name.
type Cohort struct {
	Name     string
	Requests []PackageRequest
}

// PinnedCohort carries the specifiers of a cohort holding a version pin
// on an already installed package, which needs the update/verify/install
// cascade instead of the combined best-effort install.
type PinnedCohort struct {
	Name       string
	Specifiers []string
}

// Plan is the routing decision for one repo-install invocation. It is
// built once and consumed once.
type Plan struct {
	SimpleBatch   []string
	PinnedCohorts []PinnedCohort
}

// InstalledProber answers what the RPM database currently holds.
type InstalledProber interface {
	// InstalledArchitectures reports the architectures name is installed
	// for. A failed or empty query means not installed; that is a normal
	// outcome, not an error.
	InstalledArchitectures(ctx context.Context, name string) ([]string, bool, error)

	// Exists reports whether ref (name, name.arch, ...) resolves to an
	// installed package.
	Exists(ctx context.Context, ref string) (bool, error)
}

// CollectCohorts groups requests into cohorts of adjacent equal names.
// Grouping is adjacency-based on purpose: two requests for the same name
// separated by a request for a different name form two distinct cohorts.
func CollectCohorts(requests []PackageRequest) []Cohort {
	var cohorts []Cohort
	for _, req := range requests {
		if n := len(cohorts); n > 0 && cohorts[n-1].Name == req.Name {
			cohorts[n-1].Requests = append(cohorts[n-1].Requests, req)
			continue
		}
		cohorts = append(cohorts, Cohort{Name: req.Name, Requests: []PackageRequest{req}})
	}
	return cohorts
}

// Specifier renders the package reference zypper understands:
// name[.architecture][=version].
func Specifier(name, arch, version string) string {
	var b strings.Builder
	b.WriteString(name)
	if arch != "" {
		b.WriteString(".")
		b.WriteString(arch)
	}
	if version != "" {
		b.WriteString("=")
		b.WriteString(version)
	}
	return b.String()
}

// stripVersion drops the "=version" pin, leaving the form the RPM
// database can be queried for.
func stripVersion(spec string) string {
	if i := strings.Index(spec, "="); i >= 0 {
		return spec[:i]
	}
	return spec
}
