package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mist/internal/core"
)

const cliCatalog = `
platform:
  distro: jammy
  arch: amd64
system:
  - name: libc6
    version: "2.35-0ubuntu3"
    installed: true
    candidate: true
  - name: cmake
    version: "3.22.1-1ubuntu1"
    candidate: true
auxiliary:
  - name: libbar
    base: bar
    version: "1.0-1"
    depends:
      - expressions: ["libc6"]
    makedepends:
      - expressions: ["cmake"]
  - name: app
    version: "2.0-1"
    description: Example application
    depends:
      - expressions: ["libbar (>= 1.0)"]
`

func writeCLICatalog(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(cliCatalog), 0o644))
	return path
}

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(t.Context())
	return out.String(), err
}

// ---------- Command tree tests ----------

func TestRootCommandHasSubcommands(t *testing.T) {
	root := newRootCommand()
	names := make([]string, 0, len(root.Commands()))
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	expected := []string{"plan", "resolve", "upgrade", "info", "list", "search", "validate", "inspect", "catalog"}
	for _, name := range expected {
		assert.Contains(t, names, name, "missing subcommand: %s", name)
	}
}

func TestRootCommandVersion(t *testing.T) {
	root := newRootCommand()
	assert.Equal(t, "dev", root.Version)
}

func TestPlanCommandFlags(t *testing.T) {
	cmd := newPlanCommand()
	flags := []string{
		"catalog", "aux-archive", "dpkg-status", "system-packages",
		"distro", "arch", "recursion-limit", "prefer", "source-rule", "output",
	}
	for _, name := range flags {
		flag := cmd.Flags().Lookup(name)
		assert.NotNil(t, flag, "missing flag: %s", name)
	}
	assert.Contains(t, cmd.Aliases, "install")
	assert.Equal(t, fmt.Sprint(core.DefaultRecursionLimit), cmd.Flags().Lookup("recursion-limit").DefValue)
}

func TestUpgradeCommandFlags(t *testing.T) {
	cmd := newUpgradeCommand()
	for _, name := range []string{"system-only", "auxiliary-only", "apt-only", "mpr-only", "recursion-limit", "output"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "missing flag: %s", name)
	}
	require.NoError(t, cmd.Flags().Parse([]string{"--mpr-only"}))
	auxOnly, err := cmd.Flags().GetBool("auxiliary-only")
	require.NoError(t, err)
	assert.True(t, auxOnly)
}

// ---------- Command execution tests ----------

func TestPlanCommandWritesPlan(t *testing.T) {
	catalog := writeCLICatalog(t)
	outputDir := t.TempDir()

	out, err := runRoot(t, "plan", "--catalog", catalog, "--output", outputDir, "app")
	require.NoError(t, err)
	assert.Contains(t, out, "platform: jammy/amd64")
	assert.Contains(t, out, "cmake=3.22.1-1ubuntu1 (auto, required by libbar)")
	assert.Contains(t, out, "1. bar 1.0-1 [libbar]")
	assert.Contains(t, out, "2. app 2.0-1 [app]")
	assert.FileExists(t, filepath.Join(outputDir, "install-plan.yaml"))

	out, err = runRoot(t, "inspect", outputDir)
	require.NoError(t, err)
	assert.Contains(t, out, "requested: app")
	assert.Contains(t, out, "build units: 2 in 2 batches (2 packages)")
}

func TestResolveCommandPrintsBatches(t *testing.T) {
	out, err := runRoot(t, "resolve", "--catalog", writeCLICatalog(t), "app")
	require.NoError(t, err)
	assert.Contains(t, out, "app: app libbar")
	assert.Contains(t, out, "batch 1: libbar")
	assert.Contains(t, out, "base batch 1: bar")
}

func TestInfoCommand(t *testing.T) {
	out, err := runRoot(t, "info", "--catalog", writeCLICatalog(t), "app")
	require.NoError(t, err)
	assert.Contains(t, out, "auxiliary: app=2.0-1 (base app)")
	assert.Contains(t, out, "Example application")
	assert.Contains(t, out, "depends (jammy/amd64): libbar (>= 1.0)")
}

func TestValidateCommand(t *testing.T) {
	out, err := runRoot(t, "validate", "--catalog", writeCLICatalog(t))
	require.NoError(t, err)
	assert.Contains(t, out, "validated jammy/amd64: 2 system, 2 auxiliary packages")
}

func TestCatalogExportCommand(t *testing.T) {
	output := filepath.Join(t.TempDir(), "merged.yaml")
	out, err := runRoot(t, "catalog", "export", "--catalog", writeCLICatalog(t), "--out", output)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote catalog")
	assert.FileExists(t, output)
}

func TestListCommand(t *testing.T) {
	catalog := writeCLICatalog(t)

	out, err := runRoot(t, "list", "--catalog", catalog, "--name-only")
	require.NoError(t, err)
	assert.Equal(t, "app\ncmake\nlibbar\nlibc6\n", out)

	out, err = runRoot(t, "list", "--catalog", catalog, "--installed", "--source", "apt")
	require.NoError(t, err)
	assert.Contains(t, out, "libc6/2.35-0ubuntu3 (system)")
	assert.Contains(t, out, "[installed]")
	assert.NotContains(t, out, "cmake")
}

func TestSearchCommand(t *testing.T) {
	catalog := writeCLICatalog(t)

	out, err := runRoot(t, "search", "--catalog", catalog, "example")
	require.NoError(t, err)
	assert.Contains(t, out, "app/2.0-1 (auxiliary)")
	assert.Contains(t, out, "Example application")
	assert.NotContains(t, out, "libbar")

	out, err = runRoot(t, "search", "--catalog", catalog, "--source", "system", "lib")
	require.NoError(t, err)
	assert.Contains(t, out, "libc6/2.35-0ubuntu3 (system)")
	assert.NotContains(t, out, "libbar")

	out, err = runRoot(t, "search", "--catalog", catalog, "ghost")
	require.NoError(t, err)
	assert.Equal(t, "no results\n", out)
}

func TestUpgradeCommandRejectsBothModes(t *testing.T) {
	_, err := runRoot(t, "upgrade", "--catalog", writeCLICatalog(t), "--apt-only", "--mpr-only")
	require.Error(t, err)
}

func TestPlanCommandUnknownPackage(t *testing.T) {
	_, err := runRoot(t, "plan", "--catalog", writeCLICatalog(t), "ghost")
	require.Error(t, err)
	assert.Equal(t, 5, exitCodeForError(err))
	assert.Equal(t, "unable to find packages: ghost", errorMessage(err))
}

// ---------- Helper function tests ----------

func TestResolveString(t *testing.T) {
	tests := []struct {
		name     string
		cmd      *cobra.Command
		value    string
		expected string
	}{
		{
			name:     "nil cmd with value returns value",
			cmd:      nil,
			value:    "explicit",
			expected: "explicit",
		},
		{
			name:     "nil cmd empty value returns empty",
			cmd:      nil,
			value:    "",
			expected: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveString(tt.cmd, tt.value, "test_key", "test-flag")
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestResolveStrings(t *testing.T) {
	got := resolveStrings(nil, []string{"a", "b"}, "test_key", "test-flag")
	assert.Equal(t, []string{"a", "b"}, got)
	assert.Empty(t, resolveStrings(nil, nil, "test_key", "test-flag"))
}

func TestResolveInt(t *testing.T) {
	got := resolveInt(nil, 42, "test_key", "test-flag")
	assert.Equal(t, 42, got)

	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().Int("limit", 0, "test flag")
	require.NoError(t, cmd.Flags().Set("limit", "7"))
	assert.Equal(t, 7, resolveInt(cmd, 7, "test_key", "limit"))
}

func TestFlagChanged(t *testing.T) {
	assert.False(t, flagChanged(nil, "anything"), "nil cmd should return false")
	assert.False(t, flagChanged(nil, ""), "nil cmd with empty name")

	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("myflag", "", "test flag")
	assert.False(t, flagChanged(cmd, "myflag"), "unchanged flag")
	assert.False(t, flagChanged(cmd, "nonexistent"), "nonexistent flag")

	require.NoError(t, cmd.Flags().Set("myflag", "val"))
	assert.True(t, flagChanged(cmd, "myflag"))
}

func TestExpandPath(t *testing.T) {
	got, err := expandPath("  ")
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = expandPath("/tmp/catalog.yaml")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/catalog.yaml", got)

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	got, err = expandPath("~/catalog.yaml")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "catalog.yaml"), got)

	paths, err := expandPaths([]string{"a.yaml", "", "b.yaml"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.yaml", "b.yaml"}, paths)
}

// ---------- Exit code tests ----------

func TestExitCodeForError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{
			name: "invalid argument",
			err: errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("bad input"),
			expected: 2,
		},
		{
			name:     "unsatisfiable dependency",
			err:      &core.UnsatisfiableDependencyError{Package: "app", Expression: "libfoo>=2"},
			expected: 3,
		},
		{
			name:     "recursion exceeded",
			err:      fmt.Errorf("resolve: %w", &core.RecursionExceededError{Limit: 50, Package: "a"}),
			expected: 4,
		},
		{
			name:     "cyclic dependency",
			err:      &core.CyclicDependencyError{Cycle: []string{"a", "b", "a"}},
			expected: 4,
		},
		{
			name: "failed precondition",
			err: errbuilder.New().
				WithCode(errbuilder.CodeFailedPrecondition).
				WithMsg("unable to detect distribution"),
			expected: 4,
		},
		{
			name: "not found",
			err: errbuilder.New().
				WithCode(errbuilder.CodeNotFound).
				WithMsg("unable to find packages: ghost"),
			expected: 5,
		},
		{
			name: "internal error",
			err: errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("boom"),
			expected: 5,
		},
		{
			name:     "unknown error",
			err:      assert.AnError,
			expected: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := exitCodeForError(tt.err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name: "errbuilder with msg",
			err: errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("something broke"),
			expected: "something broke",
		},
		{
			name:     "plain error",
			err:      assert.AnError,
			expected: assert.AnError.Error(),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := errorMessage(tt.err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
