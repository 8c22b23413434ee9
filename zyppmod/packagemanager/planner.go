package packagemanager

import "context"

// Planner routes install requests either into one combined best-effort
// install or into per-cohort pinned cascades.
type Planner struct {
	Prober InstalledProber
}

// BuildPlan walks the cohorts in close order and materializes specifier
// strings for every request. Simple specifiers land in one global batch
// in request order regardless of cohort boundaries; pinned specifiers
// stay with their cohort. A cohort appears in the plan only if it
// produced at least one pinned specifier.
func (p *Planner) BuildPlan(ctx context.Context, cohorts []Cohort) (Plan, error) {
	var plan Plan
	for _, cohort := range cohorts {
		var pinned []string
		for _, req := range cohort.Requests {
			specs, pin, err := p.planRequest(ctx, req)
			if err != nil {
				return Plan{}, err
			}
			if pin {
				pinned = append(pinned, specs...)
			} else {
				plan.SimpleBatch = append(plan.SimpleBatch, specs...)
			}
		}
		if len(pinned) > 0 {
			plan.PinnedCohorts = append(plan.PinnedCohorts, PinnedCohort{
				Name:       cohort.Name,
				Specifiers: pinned,
			})
		}
	}
	return plan, nil
}

func (p *Planner) planRequest(ctx context.Context, req PackageRequest) ([]string, bool, error) {
	installed, exists, err := p.Prober.InstalledArchitectures(ctx, req.Name)
	if err != nil {
		return nil, false, err
	}

	// An explicit architecture wins. Otherwise an upgrade has to touch
	// every installed architecture variant; for a new package zypper
	// picks the platform default.
	archs := []string{""}
	switch {
	case req.Architecture != "":
		archs = []string{req.Architecture}
	case exists && len(installed) > 0:
		archs = installed
	}

	specs := make([]string, 0, len(archs))
	for _, arch := range archs {
		specs = append(specs, Specifier(req.Name, arch, req.Version))
	}

	// A version pin on an already installed package may have to move the
	// package backwards, which a single best-effort install command
	// cannot be trusted with.
	pinned := exists && req.Version != ""
	return specs, pinned, nil
}
