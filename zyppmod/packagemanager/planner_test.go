package packagemanager

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildPlan(t *testing.T, prober InstalledProber, requests []PackageRequest) Plan {
	t.Helper()
	planner := &Planner{Prober: prober}
	plan, err := planner.BuildPlan(context.Background(), CollectCohorts(requests))
	require.NoError(t, err)
	return plan
}

func TestPlannerNewPackageGoesToSimpleBatch(t *testing.T) {
	plan := buildPlan(t, &fakeProber{}, []PackageRequest{{Name: "foo"}})

	assert.Equal(t, []string{"foo"}, plan.SimpleBatch)
	assert.Empty(t, plan.PinnedCohorts)
}

func TestPlannerPinnedExistingPackage(t *testing.T) {
	prober := &fakeProber{archs: map[string][]string{"foo": {"x86_64"}}}

	plan := buildPlan(t, prober, []PackageRequest{{Name: "foo", Version: "2.0"}})

	assert.Empty(t, plan.SimpleBatch)
	require.Len(t, plan.PinnedCohorts, 1)
	assert.Equal(t, "foo", plan.PinnedCohorts[0].Name)
	assert.Equal(t, []string{"foo.x86_64=2.0"}, plan.PinnedCohorts[0].Specifiers)
}

func TestPlannerExistingPackageWithoutVersionStaysSimple(t *testing.T) {
	prober := &fakeProber{archs: map[string][]string{"foo": {"x86_64"}}}

	plan := buildPlan(t, prober, []PackageRequest{{Name: "foo"}})

	assert.Equal(t, []string{"foo.x86_64"}, plan.SimpleBatch)
	assert.Empty(t, plan.PinnedCohorts)
}

func TestPlannerExplicitArchitectureWins(t *testing.T) {
	prober := &fakeProber{archs: map[string][]string{"foo": {"x86_64", "i386"}}}

	plan := buildPlan(t, prober, []PackageRequest{
		{Name: "foo", Version: "2.0", Architecture: "s390x"},
	})

	require.Len(t, plan.PinnedCohorts, 1)
	assert.Equal(t, []string{"foo.s390x=2.0"}, plan.PinnedCohorts[0].Specifiers)
}

func TestPlannerFansOutOverInstalledArchitectures(t *testing.T) {
	prober := &fakeProber{archs: map[string][]string{"foo": {"x86_64", "i386"}}}

	plan := buildPlan(t, prober, []PackageRequest{{Name: "foo", Version: "2.0"}})

	require.Len(t, plan.PinnedCohorts, 1)
	assert.Equal(t, []string{"foo.x86_64=2.0", "foo.i386=2.0"}, plan.PinnedCohorts[0].Specifiers)
}

func TestPlannerVersionedNewPackageStaysSimple(t *testing.T) {
	// version pin without a pre-existing install needs no cascade
	plan := buildPlan(t, &fakeProber{}, []PackageRequest{
		{Name: "bar", Version: "1.0", Architecture: "i386"},
	})

	assert.Equal(t, []string{"bar.i386=1.0"}, plan.SimpleBatch)
	assert.Empty(t, plan.PinnedCohorts)
}

func TestPlannerSimpleBatchPreservesRequestOrderAcrossCohorts(t *testing.T) {
	prober := &fakeProber{archs: map[string][]string{"pinned": {"x86_64"}}}

	plan := buildPlan(t, prober, []PackageRequest{
		{Name: "first"},
		{Name: "pinned", Version: "3.1"},
		{Name: "second"},
	})

	assert.Equal(t, []string{"first", "second"}, plan.SimpleBatch)
	require.Len(t, plan.PinnedCohorts, 1)
	assert.Equal(t, "pinned", plan.PinnedCohorts[0].Name)
}

func TestPlannerMixedCohort(t *testing.T) {
	// one cohort, one pinned and one simple request for the same name
	prober := &fakeProber{archs: map[string][]string{"foo": {"x86_64"}}}

	plan := buildPlan(t, prober, []PackageRequest{
		{Name: "foo", Version: "2.0"},
		{Name: "foo"},
	})

	assert.Equal(t, []string{"foo.x86_64"}, plan.SimpleBatch)
	require.Len(t, plan.PinnedCohorts, 1)
	assert.Equal(t, []string{"foo.x86_64=2.0"}, plan.PinnedCohorts[0].Specifiers)
}
