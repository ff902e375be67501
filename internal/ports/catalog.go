package ports

import "mist/internal/types"

// CatalogPort is the read-only view of both package catalogs for one run.
type CatalogPort interface {
	Lookup(name string) types.CatalogEntry
	// SystemVersionsSatisfying returns direct versions of name in ascending
	// order followed by providers of name.
	SystemVersionsSatisfying(name string, constraint types.Constraint) ([]types.VersionRef, error)
	SystemRecord(ref types.VersionRef) (types.PackageRecord, bool)
}

// CatalogSourcePort loads one catalog source into a snapshot.
type CatalogSourcePort interface {
	Load() (types.CatalogSnapshot, error)
}
