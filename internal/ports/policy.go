package ports

import "mist/internal/types"

// SourcePolicyPort picks the catalog a requested name is installed from
// when both catalogs carry it.
type SourcePolicyPort interface {
	SelectOrigin(name string) (types.Origin, error)
}
