package core

import (
	"sort"

	"mist/internal/ports"
	"mist/internal/shared"
	"mist/internal/types"
)

// provider records that a system package version provides a name,
// optionally at a specific version.
type provider struct {
	ref     types.VersionRef
	version string
}

// Catalog is the immutable, in-memory view of both catalogs for one run.
type Catalog struct {
	system    map[string][]types.PackageRecord
	auxiliary map[string]types.PackageRecord
	providers map[string][]provider
	versions  ports.VersionComparatorPort
}

// NewCatalog indexes snapshot. System records are ordered by ascending
// version; a repeated (name, version) keeps its first record. A repeated
// auxiliary name keeps its last record.
func NewCatalog(snapshot types.CatalogSnapshot, platform types.DistroArch, versions ports.VersionComparatorPort) (*Catalog, error) {
	c := &Catalog{
		system:    map[string][]types.PackageRecord{},
		auxiliary: map[string]types.PackageRecord{},
		providers: map[string][]provider{},
		versions:  versions,
	}
	seen := map[types.VersionRef]struct{}{}
	for _, record := range snapshot.System {
		if record.Name == "" || record.Version == "" {
			continue
		}
		if _, ok := seen[record.Ref()]; ok {
			continue
		}
		seen[record.Ref()] = struct{}{}
		record.Origin = types.OriginSystem
		c.system[record.Name] = append(c.system[record.Name], record)
	}
	for name, records := range c.system {
		sorted, err := sortRecords(records, versions)
		if err != nil {
			return nil, err
		}
		c.system[name] = sorted
	}
	for _, record := range snapshot.Auxiliary {
		if record.Name == "" {
			continue
		}
		record.Origin = types.OriginAuxiliary
		c.auxiliary[record.Name] = record
	}
	if err := c.buildProvideIndex(platform); err != nil {
		return nil, err
	}
	return c, nil
}

// buildProvideIndex creates a reverse map from provided names to the system
// package versions that declare them.
func (c *Catalog) buildProvideIndex(platform types.DistroArch) error {
	for _, name := range shared.SortedKeys(c.system) {
		for _, record := range c.system[name] {
			provides, err := SelectedProvides(record, platform)
			if err != nil {
				return err
			}
			for _, provide := range provides {
				c.providers[provide.Name] = append(c.providers[provide.Name], provider{
					ref:     record.Ref(),
					version: provide.Version,
				})
			}
		}
	}
	return nil
}

func (c *Catalog) Lookup(name string) types.CatalogEntry {
	entry := types.CatalogEntry{}
	if records, ok := c.system[name]; ok {
		entry.System = append([]types.PackageRecord(nil), records...)
	}
	if record, ok := c.auxiliary[name]; ok {
		entry.Auxiliary = &record
	}
	return entry
}

// SystemVersionsSatisfying returns the versions of name that satisfy
// constraint in ascending order, followed by system packages providing
// name. A versioned provide is matched on its provided version; an
// unversioned provide only matches an unconstrained alternative.
func (c *Catalog) SystemVersionsSatisfying(name string, constraint types.Constraint) ([]types.VersionRef, error) {
	var out []types.VersionRef
	seen := map[types.VersionRef]struct{}{}
	for _, record := range c.system[name] {
		ok, err := Satisfies(c.versions, record.Version, constraint)
		if err != nil {
			return nil, err
		}
		if ok {
			seen[record.Ref()] = struct{}{}
			out = append(out, record.Ref())
		}
	}
	for _, p := range c.providers[name] {
		if _, ok := seen[p.ref]; ok {
			continue
		}
		matched := constraint.Op == types.ConstraintOpNone
		if !matched && p.version != "" {
			ok, err := Satisfies(c.versions, p.version, constraint)
			if err != nil {
				return nil, err
			}
			matched = ok
		}
		if matched {
			seen[p.ref] = struct{}{}
			out = append(out, p.ref)
		}
	}
	return out, nil
}

func (c *Catalog) SystemRecord(ref types.VersionRef) (types.PackageRecord, bool) {
	for _, record := range c.system[ref.Name] {
		if record.Version == ref.Version {
			return record, true
		}
	}
	return types.PackageRecord{}, false
}

// IsCandidateInstalled reports whether ref is installed and is the version
// the system engine would pick.
func (c *Catalog) IsCandidateInstalled(ref types.VersionRef) bool {
	record, ok := c.SystemRecord(ref)
	return ok && record.Installed && record.Candidate
}

// InstalledSystem returns the installed version of name, if any.
func (c *Catalog) InstalledSystem(name string) (types.PackageRecord, bool) {
	for _, record := range c.system[name] {
		if record.Installed {
			return record, true
		}
	}
	return types.PackageRecord{}, false
}

// AuxiliaryNames returns every auxiliary package name in sorted order.
func (c *Catalog) AuxiliaryNames() []string {
	return shared.SortedKeys(c.auxiliary)
}

// SystemNames returns every system package name in sorted order.
func (c *Catalog) SystemNames() []string {
	return shared.SortedKeys(c.system)
}

func sortRecords(records []types.PackageRecord, versions ports.VersionComparatorPort) ([]types.PackageRecord, error) {
	var sortErr error
	sorted := append([]types.PackageRecord(nil), records...)
	sort.SliceStable(sorted, func(i, j int) bool {
		cmp, err := versions.Compare(sorted[i].Version, sorted[j].Version)
		if err != nil && sortErr == nil {
			sortErr = err
		}
		return cmp < 0
	})
	if sortErr != nil {
		return nil, sortErr
	}
	return sorted, nil
}

var (
	_ ports.CatalogPort     = (*Catalog)(nil)
	_ ports.SystemStatePort = (*Catalog)(nil)
)
