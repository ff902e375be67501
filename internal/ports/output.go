package ports

import "mist/internal/types"

type PlanWriterPort interface {
	WritePlan(plan types.InstallPlanFile) (string, error)
}

type PlanReaderPort interface {
	ReadPlan(path string) (types.InstallPlanFile, error)
}

type CatalogWriterPort interface {
	Write(path string, file types.CatalogFile) error
}
