package core

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mist/internal/types"
)

func newTestPlanner(catalog *Catalog) Planner {
	return NewPlanner(catalog, testPlatform)
}

func batchIndex(batches [][]string) map[string]int {
	out := map[string]int{}
	for i, batch := range batches {
		for _, name := range batch {
			out[name] = i
		}
	}
	return out
}

func TestPlannerLinearChain(t *testing.T) {
	catalog := newTestCatalog(t, nil, []types.PackageRecord{
		auxPkg("A", "1.0", "B"),
		auxPkg("B", "1.0", "C"),
		auxPkg("C", "1.0"),
	})

	batches, err := newTestPlanner(catalog).Order(t.Context(), []string{"A", "B", "C"})
	require.NoError(t, err)
	want := [][]string{{"C"}, {"B"}, {"A"}}
	if diff := cmp.Diff(want, batches); diff != "" {
		t.Fatalf("unexpected batches (-want +got):\n%s", diff)
	}
}

func TestPlannerDeduplicatesInput(t *testing.T) {
	catalog := newTestCatalog(t, nil, []types.PackageRecord{
		auxPkg("A", "1.0", "C"),
		auxPkg("B", "1.0", "C"),
		auxPkg("C", "1.0"),
	})

	batches, err := newTestPlanner(catalog).Order(t.Context(), []string{"A", "C", "B", "C"})
	require.NoError(t, err)
	want := [][]string{{"C"}, {"A", "B"}}
	if diff := cmp.Diff(want, batches); diff != "" {
		t.Fatalf("unexpected batches (-want +got):\n%s", diff)
	}
}

func TestPlannerIndependentPackagesShareBatch(t *testing.T) {
	catalog := newTestCatalog(t, nil, []types.PackageRecord{auxPkg("A", "1.0"), auxPkg("B", "1.0")})

	batches, err := newTestPlanner(catalog).Order(t.Context(), []string{"A", "B"})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"A", "B"}}, batches)
}

func TestPlannerDependenciesPrecedeDependents(t *testing.T) {
	catalog := newTestCatalog(t,
		[]types.PackageRecord{sysPkg("libc6", "2.35")},
		[]types.PackageRecord{
			auxPkg("app", "1.0", "lib-a", "lib-b|libc6", "tool"),
			auxPkg("lib-a", "1.0", "lib-core"),
			auxPkg("lib-b", "1.0", "lib-core"),
			auxPkg("lib-core", "1.0", "libc6"),
			auxPkg("tool", "1.0", "lib-b"),
		},
	)
	names := []string{"app", "tool", "lib-a", "lib-b", "lib-core"}

	batches, err := newTestPlanner(catalog).Order(t.Context(), names)
	require.NoError(t, err)
	index := batchIndex(batches)
	require.Len(t, index, len(names))
	edges := map[string][]string{
		"app":   {"lib-a", "lib-b", "tool"},
		"lib-a": {"lib-core"},
		"lib-b": {"lib-core"},
		"tool":  {"lib-b"},
	}
	for pkg, targets := range edges {
		for _, dep := range targets {
			assert.Greater(t, index[pkg], index[dep], "%s must follow %s", pkg, dep)
		}
	}
	for _, batch := range batches {
		assert.NotEmpty(t, batch)
	}
}

func TestPlannerFollowsProvides(t *testing.T) {
	impl := auxPkg("mail-impl", "1.0")
	impl.Provides = deps("mail-agent")
	catalog := newTestCatalog(t, nil, []types.PackageRecord{
		auxPkg("client", "1.0", "mail-agent"),
		impl,
	})

	batches, err := newTestPlanner(catalog).Order(t.Context(), []string{"client", "mail-impl"})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"mail-impl"}, {"client"}}, batches)
}

func TestPlannerIgnoresSelfProvide(t *testing.T) {
	pkg := auxPkg("A", "1.0", "virtual-a")
	pkg.Provides = deps("virtual-a")
	catalog := newTestCatalog(t, nil, []types.PackageRecord{pkg})

	batches, err := newTestPlanner(catalog).Order(t.Context(), []string{"A"})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"A"}}, batches)
}

func TestPlannerCycle(t *testing.T) {
	catalog := newTestCatalog(t, nil, []types.PackageRecord{
		auxPkg("A", "1.0", "B"),
		auxPkg("B", "1.0", "A"),
	})

	_, err := newTestPlanner(catalog).Order(t.Context(), []string{"A", "B"})
	var cyclic *CyclicDependencyError
	require.True(t, errors.As(err, &cyclic))
	assert.Equal(t, []string{"A", "B", "A"}, cyclic.Cycle)
	assert.Contains(t, err.Error(), "A -> B -> A")
}

func TestPlannerLongerCycleNamesPath(t *testing.T) {
	catalog := newTestCatalog(t, nil, []types.PackageRecord{
		auxPkg("root", "1.0", "x"),
		auxPkg("x", "1.0", "y"),
		auxPkg("y", "1.0", "z"),
		auxPkg("z", "1.0", "x"),
	})

	_, err := newTestPlanner(catalog).Order(t.Context(), []string{"root", "x", "y", "z"})
	var cyclic *CyclicDependencyError
	require.True(t, errors.As(err, &cyclic))
	assert.Equal(t, []string{"x", "y", "z", "x"}, cyclic.Cycle)
}

func TestPlannerEmptyInput(t *testing.T) {
	catalog := newTestCatalog(t, nil, nil)
	batches, err := newTestPlanner(catalog).Order(t.Context(), nil)
	require.NoError(t, err)
	assert.Empty(t, batches)
}
