package app

import "mist/internal/types"

// CatalogRequest names the catalog sources of one run. At least one source
// is required.
type CatalogRequest struct {
	CatalogFiles   []string
	AuxArchive     string
	DpkgStatus     string
	SystemPackages []string
	Distro         string
	Arch           string
}

type PlanRequest struct {
	Catalog        CatalogRequest
	Packages       []string
	RecursionLimit int
	Prefer         string
	SourceRules    []string
	OutputDir      string
}

type PlanResult struct {
	Platform           types.DistroArch
	SystemRequested    []string
	AuxiliaryRequested []string
	Resolution         types.ResolutionResult
	PackageBatches     [][]string
	BaseBatches        [][]string
	BuildUnits         [][]types.BuildUnit
	Conflicts          []types.ConflictWarning
	PlanPath           string
}

// UpgradeRequest selects which installed packages are considered. At most
// one of SystemOnly and AuxiliaryOnly may be set.
type UpgradeRequest struct {
	Catalog        CatalogRequest
	RecursionLimit int
	OutputDir      string
	SystemOnly     bool
	AuxiliaryOnly  bool
}

type UpgradeCandidate struct {
	Name      string
	Origin    types.Origin
	Installed string
	Available string
}

type UpgradeResult struct {
	Upgrades []UpgradeCandidate
	Plan     PlanResult
}

// QueryRequest filters the merged catalog. An empty Source keeps both
// origins.
type QueryRequest struct {
	Catalog       CatalogRequest
	Terms         []string
	Source        string
	InstalledOnly bool
}

// PackageSummary is one catalog entry of a list or search result. System
// entries report the candidate version.
type PackageSummary struct {
	Name        string
	Origin      types.Origin
	Version     string
	Base        string
	Description string
	Installed   bool
}

type QueryResult struct {
	Packages []PackageSummary
}

type InfoRequest struct {
	Catalog CatalogRequest
	Package string
}

type InfoResult struct {
	Platform  types.DistroArch
	System    []types.PackageRecord
	Auxiliary *types.PackageRecord
	Relations []InfoRelation
}

// InfoRelation holds the expressions selected for the platform from one
// relation table of the auxiliary record.
type InfoRelation struct {
	Kind        types.RelationKind
	Expressions []string
}

type ValidateRequest struct {
	Catalog CatalogRequest
}

type ValidateResult struct {
	Platform          types.DistroArch
	SystemPackages    int
	AuxiliaryPackages int
}

type InspectRequest struct {
	Path string
}

type InspectResult struct {
	Plan          types.InstallPlanFile
	BuildCount    int
	PackageCount  int
	AutoInstalled int
}

type CatalogExportRequest struct {
	Catalog CatalogRequest
	Output  string
}

type CatalogExportResult struct {
	Output            string
	SystemPackages    int
	AuxiliaryPackages int
}
