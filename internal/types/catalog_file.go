package types

// CatalogFile is the on-disk YAML catalog snapshot.
type CatalogFile struct {
	Platform  *DistroArch     `yaml:"platform,omitempty"`
	System    []PackageRecord `yaml:"system"`
	Auxiliary []PackageRecord `yaml:"auxiliary"`
}

// CatalogSnapshot is the merged, in-memory input of one run.
type CatalogSnapshot struct {
	System    []PackageRecord
	Auxiliary []PackageRecord
}

// Merge appends other into s. Auxiliary records later in the list replace
// earlier ones with the same name when the catalog is built.
func (s CatalogSnapshot) Merge(other CatalogSnapshot) CatalogSnapshot {
	return CatalogSnapshot{
		System:    append(append([]PackageRecord(nil), s.System...), other.System...),
		Auxiliary: append(append([]PackageRecord(nil), s.Auxiliary...), other.Auxiliary...),
	}
}
