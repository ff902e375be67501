package adapters

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"mist/internal/ports"
	"mist/internal/types"
)

// CatalogFileAdapter reads a YAML catalog snapshot. The file is read once
// and cached.
type CatalogFileAdapter struct {
	Path   string
	cached types.CatalogFile
	loaded bool
}

func NewCatalogFileAdapter(path string) *CatalogFileAdapter {
	return &CatalogFileAdapter{Path: path}
}

func (a *CatalogFileAdapter) Load() (types.CatalogSnapshot, error) {
	file, err := a.load()
	if err != nil {
		return types.CatalogSnapshot{}, err
	}
	return types.CatalogSnapshot{System: file.System, Auxiliary: file.Auxiliary}, nil
}

// Platform returns the platform pinned in the catalog file, if any.
func (a *CatalogFileAdapter) Platform() (types.DistroArch, bool, error) {
	file, err := a.load()
	if err != nil {
		return types.DistroArch{}, false, err
	}
	if file.Platform == nil {
		return types.DistroArch{}, false, nil
	}
	return *file.Platform, true, nil
}

func (a *CatalogFileAdapter) load() (types.CatalogFile, error) {
	if a.loaded {
		return a.cached, nil
	}
	data, err := os.ReadFile(a.Path)
	if err != nil {
		return types.CatalogFile{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("catalog file not found").
			WithCause(err)
	}
	var file types.CatalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return types.CatalogFile{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid catalog format").
			WithCause(err)
	}
	for i := range file.System {
		file.System[i].Origin = types.OriginSystem
	}
	for i := range file.Auxiliary {
		file.Auxiliary[i].Origin = types.OriginAuxiliary
	}
	a.cached = file
	a.loaded = true
	return file, nil
}

// CatalogFileWriterAdapter writes merged catalog snapshots as YAML.
type CatalogFileWriterAdapter struct{}

func NewCatalogFileWriterAdapter() CatalogFileWriterAdapter {
	return CatalogFileWriterAdapter{}
}

func (a CatalogFileWriterAdapter) Write(path string, file types.CatalogFile) error {
	if strings.TrimSpace(path) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("catalog output path is required")
	}
	data, err := yaml.Marshal(file)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to marshal catalog").
			WithCause(err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create catalog directory").
			WithCause(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write catalog").
			WithCause(err)
	}
	return nil
}

var (
	_ ports.CatalogSourcePort = (*CatalogFileAdapter)(nil)
	_ ports.CatalogWriterPort = CatalogFileWriterAdapter{}
)
