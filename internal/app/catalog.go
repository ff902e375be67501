package app

import (
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"mist/internal/adapters"
	"mist/internal/core"
	"mist/internal/ports"
	"mist/internal/shared"
	"mist/internal/types"
)

// loadedCatalog is the catalog snapshot of one run together with the
// platform it was evaluated for.
type loadedCatalog struct {
	catalog  *core.Catalog
	snapshot types.CatalogSnapshot
	platform types.DistroArch
	port     ports.PlatformPort
	versions ports.VersionComparatorPort
}

func (s Service) loadCatalog(req CatalogRequest) (loadedCatalog, error) {
	var sources []ports.CatalogSourcePort
	versions := core.NewDebVersionComparator()
	distro := strings.TrimSpace(req.Distro)
	arch := strings.TrimSpace(req.Arch)
	for _, path := range shared.TrimAll(req.CatalogFiles) {
		file := adapters.NewCatalogFileAdapter(path)
		pinned, ok, err := file.Platform()
		if err != nil {
			return loadedCatalog{}, err
		}
		if ok {
			if distro == "" {
				distro = pinned.Distro
			}
			if arch == "" {
				arch = pinned.Arch
			}
		}
		sources = append(sources, file)
	}
	if archive := strings.TrimSpace(req.AuxArchive); archive != "" {
		sources = append(sources, adapters.NewAuxArchiveAdapter(archive))
	}
	status := strings.TrimSpace(req.DpkgStatus)
	packages := shared.TrimAll(req.SystemPackages)
	if status != "" || len(packages) > 0 {
		sources = append(sources, adapters.NewDebControlAdapter(status, packages, versions))
	}
	if len(sources) == 0 {
		return loadedCatalog{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("at least one catalog source is required")
	}

	snapshot := types.CatalogSnapshot{}
	for _, source := range sources {
		loaded, err := source.Load()
		if err != nil {
			return loadedCatalog{}, err
		}
		snapshot = snapshot.Merge(loaded)
	}

	if s.Platform == nil {
		return loadedCatalog{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("platform detection is not configured")
	}
	port := s.Platform(distro, arch)
	platform, err := port.Current()
	if err != nil {
		return loadedCatalog{}, err
	}
	catalog, err := core.NewCatalog(snapshot, platform, versions)
	if err != nil {
		return loadedCatalog{}, err
	}
	return loadedCatalog{
		catalog:  catalog,
		snapshot: snapshot,
		platform: platform,
		port:     adapters.StaticPlatformAdapter{Platform: platform},
		versions: versions,
	}, nil
}
