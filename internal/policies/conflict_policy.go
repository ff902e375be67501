package policies

import (
	"mist/internal/core"
	"mist/internal/ports"
	"mist/internal/types"
)

// PresentPackage is a package that will be on the system once the plan is
// applied.
type PresentPackage struct {
	Version string
	Origin  types.Origin
}

// ConflictCandidate is a planned auxiliary package with its selected
// Conflicts expressions.
type ConflictCandidate struct {
	Package   string
	Conflicts []types.Expression
}

// CheckConflicts reports every conflicts expression of candidates matched
// by a present package other than the candidate itself. Conflicts are
// reported, not enforced.
func CheckConflicts(candidates []ConflictCandidate, present map[string]PresentPackage, versions ports.VersionComparatorPort) ([]types.ConflictWarning, error) {
	var warnings []types.ConflictWarning
	for _, candidate := range candidates {
		for _, expr := range candidate.Conflicts {
			warning, found, err := matchConflict(candidate.Package, expr, present, versions)
			if err != nil {
				return nil, err
			}
			if found {
				warnings = append(warnings, warning)
			}
		}
	}
	return warnings, nil
}

func matchConflict(pkg string, expr types.Expression, present map[string]PresentPackage, versions ports.VersionComparatorPort) (types.ConflictWarning, bool, error) {
	for _, alt := range expr.Alternatives {
		if alt.Name == pkg {
			continue
		}
		other, ok := present[alt.Name]
		if !ok {
			continue
		}
		matched, err := core.Satisfies(versions, other.Version, alt)
		if err != nil {
			return types.ConflictWarning{}, false, err
		}
		if matched {
			return types.ConflictWarning{
				Package:       pkg,
				Expression:    expr.Raw,
				ConflictsWith: types.VersionRef{Name: alt.Name, Version: other.Version}.String(),
				Origin:        other.Origin,
			}, true, nil
		}
	}
	return types.ConflictWarning{}, false, nil
}
