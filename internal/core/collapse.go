package core

import (
	"mist/internal/ports"
	"mist/internal/types"
)

// CollapseToBases maps each package name to its package base and keeps only
// the earliest occurrence of every base. Names without an auxiliary record
// map to themselves. Empty batches are dropped.
func CollapseToBases(batches [][]string, catalog ports.CatalogPort) [][]string {
	seen := map[string]struct{}{}
	out := [][]string{}
	for _, batch := range batches {
		var collapsed []string
		for _, name := range batch {
			base := baseFor(name, catalog)
			if _, ok := seen[base]; ok {
				continue
			}
			seen[base] = struct{}{}
			collapsed = append(collapsed, base)
		}
		if len(collapsed) > 0 {
			out = append(out, collapsed)
		}
	}
	return out
}

// BuildUnits collapses ordered package batches like CollapseToBases and
// keeps, per base, the ordered package names built from it.
func BuildUnits(batches [][]string, catalog ports.CatalogPort) [][]types.BuildUnit {
	type unitRef struct {
		batch int
		index int
	}
	refs := map[string]unitRef{}
	out := [][]types.BuildUnit{}
	for _, batch := range batches {
		var units []types.BuildUnit
		for _, name := range batch {
			base := baseFor(name, catalog)
			if ref, ok := refs[base]; ok {
				if ref.batch == len(out) {
					units[ref.index].Packages = appendMissing(units[ref.index].Packages, name)
				} else {
					out[ref.batch][ref.index].Packages = appendMissing(out[ref.batch][ref.index].Packages, name)
				}
				continue
			}
			version := ""
			if record := catalog.Lookup(name).Auxiliary; record != nil {
				version = record.Version
			}
			refs[base] = unitRef{batch: len(out), index: len(units)}
			units = append(units, types.BuildUnit{Base: base, Version: version, Packages: []string{name}})
		}
		if len(units) > 0 {
			out = append(out, units)
		}
	}
	return out
}

// baseFor follows the auxiliary record of name even when name is also the
// base of some other package.
func baseFor(name string, catalog ports.CatalogPort) string {
	if record := catalog.Lookup(name).Auxiliary; record != nil {
		return record.PackageBase()
	}
	return name
}

func appendMissing(values []string, value string) []string {
	for _, existing := range values {
		if existing == value {
			return values
		}
	}
	return append(values, value)
}
