package app

import (
	"context"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"mist/internal/core"
	"mist/internal/policies"
	"mist/internal/shared"
	"mist/internal/types"
)

// List returns the catalog entries named by req.Terms, or every entry when
// no terms are given.
func (s Service) List(ctx context.Context, req QueryRequest) (QueryResult, error) {
	names := shared.UniqueStrings(shared.TrimAll(req.Terms))
	wanted := map[string]struct{}{}
	for _, name := range names {
		wanted[name] = struct{}{}
	}
	return s.query(ctx, req, func(summary PackageSummary) bool {
		if len(wanted) == 0 {
			return true
		}
		_, ok := wanted[summary.Name]
		return ok
	})
}

// Search returns the catalog entries whose name or description contains
// any of req.Terms. Description matching ignores case.
func (s Service) Search(ctx context.Context, req QueryRequest) (QueryResult, error) {
	terms := shared.UniqueStrings(shared.TrimAll(req.Terms))
	if len(terms) == 0 {
		return QueryResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("at least one search term is required")
	}
	return s.query(ctx, req, func(summary PackageSummary) bool {
		description := strings.ToLower(summary.Description)
		for _, term := range terms {
			if strings.Contains(summary.Name, term) || strings.Contains(description, strings.ToLower(term)) {
				return true
			}
		}
		return false
	})
}

func (s Service) query(ctx context.Context, req QueryRequest, match func(PackageSummary) bool) (QueryResult, error) {
	var source types.Origin
	if strings.TrimSpace(req.Source) != "" {
		origin, err := policies.ParseOrigin(req.Source)
		if err != nil {
			return QueryResult{}, err
		}
		source = origin
	}
	loaded, err := s.loadCatalog(req.Catalog)
	if err != nil {
		return QueryResult{}, err
	}
	result := QueryResult{}
	for _, summary := range summarize(loaded.catalog) {
		if source != "" && summary.Origin != source {
			continue
		}
		if req.InstalledOnly && !summary.Installed {
			continue
		}
		if match(summary) {
			result.Packages = append(result.Packages, summary)
		}
	}
	log.Ctx(ctx).Debug().Int("matches", len(result.Packages)).Msg("catalog query completed")
	return result, nil
}

// summarize lists every name of both catalogs in lexical order, the system
// entry before the auxiliary one.
func summarize(catalog *core.Catalog) []PackageSummary {
	names := shared.UniqueStrings(append(catalog.SystemNames(), catalog.AuxiliaryNames()...))
	sort.Strings(names)
	var out []PackageSummary
	for _, name := range names {
		entry := catalog.Lookup(name)
		installed, isInstalled := catalog.InstalledSystem(name)
		if ref, ok := systemCandidate(catalog, name); ok {
			record, _ := catalog.SystemRecord(ref)
			out = append(out, PackageSummary{
				Name:        name,
				Origin:      types.OriginSystem,
				Version:     ref.Version,
				Description: record.Description,
				Installed:   isInstalled,
			})
		}
		if aux := entry.Auxiliary; aux != nil {
			out = append(out, PackageSummary{
				Name:        name,
				Origin:      types.OriginAuxiliary,
				Version:     aux.Version,
				Base:        aux.PackageBase(),
				Description: aux.Description,
				Installed:   isInstalled && installed.AuxiliaryInstalled,
			})
		}
	}
	return out
}
