package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mist/internal/types"
)

func TestCatalogFileAdapterLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	content := `
platform:
  distro: jammy
  arch: amd64
system:
  - name: libc6
    version: "2.35-0ubuntu3"
    installed: true
    candidate: true
auxiliary:
  - name: libfoo
    base: foo
    version: "1.0-1"
    depends:
      - expressions: ["libc6"]
      - distro: jammy
        expressions: ["libc6>=2.35"]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	adapter := NewCatalogFileAdapter(path)
	snapshot, err := adapter.Load()
	require.NoError(t, err)
	require.Len(t, snapshot.System, 1)
	require.Len(t, snapshot.Auxiliary, 1)
	assert.Equal(t, types.OriginSystem, snapshot.System[0].Origin)
	assert.True(t, snapshot.System[0].Installed)

	aux := snapshot.Auxiliary[0]
	assert.Equal(t, types.OriginAuxiliary, aux.Origin)
	assert.Equal(t, "foo", aux.PackageBase())
	want := types.DependencyTable{
		{Expressions: []string{"libc6"}},
		{Distro: "jammy", Expressions: []string{"libc6>=2.35"}},
	}
	if diff := cmp.Diff(want, aux.Depends); diff != "" {
		t.Fatalf("unexpected depends (-want +got):\n%s", diff)
	}

	platform, ok, err := adapter.Platform()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, types.DistroArch{Distro: "jammy", Arch: "amd64"}, platform)

	// cached after first read
	require.NoError(t, os.Remove(path))
	_, err = adapter.Load()
	require.NoError(t, err)
}

func TestCatalogFileAdapterErrors(t *testing.T) {
	_, err := NewCatalogFileAdapter(filepath.Join(t.TempDir(), "missing.yaml")).Load()
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("system: [unterminated"), 0o644))
	_, err = NewCatalogFileAdapter(path).Load()
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}

func TestCatalogFileWriterRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "catalog.yaml")
	file := types.CatalogFile{
		System:    []types.PackageRecord{{Name: "curl", Version: "7.81"}},
		Auxiliary: []types.PackageRecord{{Name: "htop-git", Version: "3.3", Depends: types.DependencyTable{{Expressions: []string{"libc6"}}}}},
	}
	require.NoError(t, NewCatalogFileWriterAdapter().Write(path, file))

	snapshot, err := NewCatalogFileAdapter(path).Load()
	require.NoError(t, err)
	assert.Equal(t, "htop-git", snapshot.Auxiliary[0].Name)
	assert.Equal(t, []string{"libc6"}, snapshot.Auxiliary[0].Depends[0].Expressions)

	require.Error(t, NewCatalogFileWriterAdapter().Write(" ", file))
}
