package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"mist/internal/core"
	"mist/internal/types"
)

var infoRelations = []types.RelationKind{
	types.RelationDepends,
	types.RelationMakeDepends,
	types.RelationCheckDepends,
	types.RelationConflicts,
	types.RelationProvides,
}

func (s Service) Info(ctx context.Context, req InfoRequest) (InfoResult, error) {
	name := strings.TrimSpace(req.Package)
	if name == "" {
		return InfoResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("package name is required")
	}
	loaded, err := s.loadCatalog(req.Catalog)
	if err != nil {
		return InfoResult{}, err
	}
	entry := loaded.catalog.Lookup(name)
	if !entry.Found() {
		return InfoResult{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("unable to find packages: %s", name))
	}
	result := InfoResult{
		Platform:  loaded.platform,
		System:    entry.System,
		Auxiliary: entry.Auxiliary,
	}
	if entry.Auxiliary != nil {
		for _, kind := range infoRelations {
			exprs := core.SelectExpressions(entry.Auxiliary.Table(kind), loaded.platform)
			if len(exprs) == 0 {
				continue
			}
			result.Relations = append(result.Relations, InfoRelation{Kind: kind, Expressions: exprs})
		}
	}
	return result, nil
}
