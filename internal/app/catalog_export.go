package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"mist/internal/types"
)

// ExportCatalog writes the merged catalog sources as one YAML catalog file
// pinned to the active platform.
func (s Service) ExportCatalog(ctx context.Context, req CatalogExportRequest) (CatalogExportResult, error) {
	output := strings.TrimSpace(req.Output)
	if output == "" {
		return CatalogExportResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("output path is required")
	}
	if s.CatalogWriter == nil {
		return CatalogExportResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("catalog writer is not configured")
	}
	loaded, err := s.loadCatalog(req.Catalog)
	if err != nil {
		return CatalogExportResult{}, err
	}
	platform := loaded.platform
	file := types.CatalogFile{Platform: &platform}
	for _, name := range loaded.catalog.SystemNames() {
		file.System = append(file.System, loaded.catalog.Lookup(name).System...)
	}
	for _, name := range loaded.catalog.AuxiliaryNames() {
		file.Auxiliary = append(file.Auxiliary, *loaded.catalog.Lookup(name).Auxiliary)
	}
	if err := s.CatalogWriter.Write(output, file); err != nil {
		return CatalogExportResult{}, err
	}
	log.Ctx(ctx).Info().Str("path", output).Msg("catalog written")
	return CatalogExportResult{
		Output:            output,
		SystemPackages:    len(file.System),
		AuxiliaryPackages: len(file.Auxiliary),
	}, nil
}
