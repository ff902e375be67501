package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"mist/internal/types"
)

func splitPackageCatalog(t *testing.T) *Catalog {
	t.Helper()
	libfoo := auxPkg("libfoo", "1.0-1")
	libfoo.Base = "foo"
	fooDev := auxPkg("foo-dev", "1.0-1")
	fooDev.Base = "foo"
	return newTestCatalog(t, nil, []types.PackageRecord{
		libfoo,
		fooDev,
		auxPkg("bar", "2.0"),
	})
}

func TestCollapseToBases(t *testing.T) {
	catalog := splitPackageCatalog(t)
	batches := [][]string{{"libfoo", "bar"}, {"foo-dev"}, {"unknown"}}

	got := CollapseToBases(batches, catalog)
	want := [][]string{{"foo", "bar"}, {"unknown"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected bases (-want +got):\n%s", diff)
	}
}

func TestCollapseToBasesWithinBatch(t *testing.T) {
	catalog := splitPackageCatalog(t)
	got := CollapseToBases([][]string{{"libfoo", "foo-dev"}}, catalog)
	assert.Equal(t, [][]string{{"foo"}}, got)
}

func TestCollapseToBasesFollowsRecordBase(t *testing.T) {
	foo := auxPkg("foo", "1.0-1")
	foo.Base = "foo-bin"
	fooDoc := auxPkg("foo-doc", "1.0-1")
	fooDoc.Base = "foo"
	catalog := newTestCatalog(t, nil, []types.PackageRecord{foo, fooDoc})

	assert.Equal(t, [][]string{{"foo-bin"}}, CollapseToBases([][]string{{"foo"}}, catalog))
	assert.Equal(t, [][]string{{"foo"}, {"foo-bin"}}, CollapseToBases([][]string{{"foo-doc"}, {"foo"}}, catalog))

	units := BuildUnits([][]string{{"foo"}}, catalog)
	assert.Equal(t, [][]types.BuildUnit{{{Base: "foo-bin", Version: "1.0-1", Packages: []string{"foo"}}}}, units)
}

func TestCollapseToBasesIdempotent(t *testing.T) {
	catalog := splitPackageCatalog(t)
	inputs := [][][]string{
		{{"libfoo", "bar"}, {"foo-dev"}},
		{{"foo-dev"}, {"libfoo"}, {"bar", "libfoo"}},
		{{"unknown", "bar"}, {}},
		{},
	}
	for _, input := range inputs {
		once := CollapseToBases(input, catalog)
		twice := CollapseToBases(once, catalog)
		if diff := cmp.Diff(once, twice); diff != "" {
			t.Fatalf("collapse not idempotent for %v (-once +twice):\n%s", input, diff)
		}
	}
}

func TestBuildUnits(t *testing.T) {
	catalog := splitPackageCatalog(t)
	got := BuildUnits([][]string{{"libfoo", "bar", "foo-dev"}, {"foo-dev"}}, catalog)
	want := [][]types.BuildUnit{{
		{Base: "foo", Version: "1.0-1", Packages: []string{"libfoo", "foo-dev"}},
		{Base: "bar", Version: "2.0", Packages: []string{"bar"}},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected build units (-want +got):\n%s", diff)
	}
}
