package app

import (
	"mist/internal/adapters"
	"mist/internal/ports"
)

type Service struct {
	Platform      func(distro string, arch string) ports.PlatformPort
	PlanWriter    func(dir string) ports.PlanWriterPort
	PlanReader    ports.PlanReaderPort
	CatalogWriter ports.CatalogWriterPort
}

func NewService() Service {
	return Service{
		Platform: func(distro string, arch string) ports.PlatformPort {
			return adapters.NewOSReleaseAdapter(distro, arch)
		},
		PlanWriter: func(dir string) ports.PlanWriterPort {
			return adapters.NewPlanFileAdapter(dir)
		},
		PlanReader:    adapters.NewPlanFileAdapter(""),
		CatalogWriter: adapters.NewCatalogFileWriterAdapter(),
	}
}
