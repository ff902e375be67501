package types

// DistroArch is the platform the dependency tables are evaluated for.
type DistroArch struct {
	Distro string `yaml:"distro" json:"distro"`
	Arch   string `yaml:"arch" json:"arch"`
}

// TableKey addresses one entry of a DependencyTable. Empty fields mean the
// entry is not qualified by that component.
type TableKey struct {
	Distro string
	Arch   string
}

// SpecificityKeys returns the lookup order for this platform, most specific
// first.
func (p DistroArch) SpecificityKeys() []TableKey {
	return []TableKey{
		{Distro: p.Distro, Arch: p.Arch},
		{Distro: p.Distro},
		{Arch: p.Arch},
		{},
	}
}

type DependencyTableEntry struct {
	Distro      string   `yaml:"distro,omitempty" json:"distro,omitempty"`
	Arch        string   `yaml:"arch,omitempty" json:"arch,omitempty"`
	Expressions []string `yaml:"expressions" json:"expressions"`
}

func (e DependencyTableEntry) Key() TableKey {
	return TableKey{Distro: e.Distro, Arch: e.Arch}
}

type DependencyTable []DependencyTableEntry

// Lookup returns the expressions stored under key.
func (t DependencyTable) Lookup(key TableKey) ([]string, bool) {
	for _, entry := range t {
		if entry.Key() == key {
			return entry.Expressions, true
		}
	}
	return nil, false
}

type PackageRecord struct {
	Name               string          `yaml:"name"`
	Base               string          `yaml:"base,omitempty"`
	Version            string          `yaml:"version"`
	Origin             Origin          `yaml:"-"`
	Description        string          `yaml:"description,omitempty"`
	Maintainer         string          `yaml:"maintainer,omitempty"`
	Depends            DependencyTable `yaml:"depends,omitempty"`
	MakeDepends        DependencyTable `yaml:"makedepends,omitempty"`
	CheckDepends       DependencyTable `yaml:"checkdepends,omitempty"`
	Conflicts          DependencyTable `yaml:"conflicts,omitempty"`
	Provides           DependencyTable `yaml:"provides,omitempty"`
	Installed          bool            `yaml:"installed,omitempty"`
	Candidate          bool            `yaml:"candidate,omitempty"`
	AuxiliaryInstalled bool            `yaml:"auxiliary_installed,omitempty"`
}

// Table returns the relation table of the given kind.
func (r PackageRecord) Table(kind RelationKind) DependencyTable {
	switch kind {
	case RelationDepends:
		return r.Depends
	case RelationMakeDepends:
		return r.MakeDepends
	case RelationCheckDepends:
		return r.CheckDepends
	case RelationConflicts:
		return r.Conflicts
	case RelationProvides:
		return r.Provides
	default:
		return nil
	}
}

// PackageBase falls back to the package name for records without a base.
func (r PackageRecord) PackageBase() string {
	if r.Base == "" {
		return r.Name
	}
	return r.Base
}

func (r PackageRecord) Ref() VersionRef {
	return VersionRef{Name: r.Name, Version: r.Version}
}

// CatalogEntry is everything known about one name.
type CatalogEntry struct {
	System    []PackageRecord
	Auxiliary *PackageRecord
}

func (e CatalogEntry) Found() bool {
	return len(e.System) > 0 || e.Auxiliary != nil
}

// VersionRef identifies one version of a system package.
type VersionRef struct {
	Name    string `yaml:"name" json:"name"`
	Version string `yaml:"version" json:"version"`
}

func (r VersionRef) String() string {
	return r.Name + "=" + r.Version
}
