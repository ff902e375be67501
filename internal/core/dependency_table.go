package core

import "mist/internal/types"

// buildRelations are the relation tables that must be satisfied before an
// auxiliary package can be built and installed, in evaluation order.
var buildRelations = []types.RelationKind{
	types.RelationDepends,
	types.RelationMakeDepends,
	types.RelationCheckDepends,
}

// SelectExpressions returns the expressions of the most specific table entry
// present for platform. Entries are never merged; an entry with no
// expressions is treated as absent.
func SelectExpressions(table types.DependencyTable, platform types.DistroArch) []string {
	for _, key := range platform.SpecificityKeys() {
		if exprs, ok := table.Lookup(key); ok && len(exprs) > 0 {
			return exprs
		}
	}
	return nil
}

// SelectRelations concatenates the selected entries of each requested
// relation table in the given order.
func SelectRelations(record types.PackageRecord, platform types.DistroArch, kinds ...types.RelationKind) []string {
	var out []string
	for _, kind := range kinds {
		out = append(out, SelectExpressions(record.Table(kind), platform)...)
	}
	return out
}

// BuildDependencies parses the selected Depends, MakeDepends and
// CheckDepends expressions of record.
func BuildDependencies(record types.PackageRecord, platform types.DistroArch) ([]types.Expression, error) {
	return ParseExpressions(SelectRelations(record, platform, buildRelations...))
}

// SelectedConflicts parses the selected Conflicts expressions of record.
func SelectedConflicts(record types.PackageRecord, platform types.DistroArch) ([]types.Expression, error) {
	return ParseExpressions(SelectRelations(record, platform, types.RelationConflicts))
}

// SelectedProvides parses the selected Provides entries of record.
func SelectedProvides(record types.PackageRecord, platform types.DistroArch) ([]types.Constraint, error) {
	raws := SelectExpressions(record.Provides, platform)
	out := make([]types.Constraint, 0, len(raws))
	for _, raw := range raws {
		provide, err := ParseProvide(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, provide)
	}
	return out, nil
}
