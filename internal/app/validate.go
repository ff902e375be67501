package app

import (
	"context"
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"mist/internal/core"
)

// Validate loads the catalog and parses every relation selected for the
// platform, so malformed expressions surface before a plan is attempted.
func (s Service) Validate(ctx context.Context, req ValidateRequest) (ValidateResult, error) {
	loaded, err := s.loadCatalog(req.Catalog)
	if err != nil {
		return ValidateResult{}, err
	}
	auxNames := loaded.catalog.AuxiliaryNames()
	for _, name := range auxNames {
		record := *loaded.catalog.Lookup(name).Auxiliary
		if _, err := loaded.versions.Compare(record.Version, record.Version); err != nil {
			return ValidateResult{}, invalidRecord(name, err)
		}
		if _, err := core.BuildDependencies(record, loaded.platform); err != nil {
			return ValidateResult{}, invalidRecord(name, err)
		}
		if _, err := core.SelectedConflicts(record, loaded.platform); err != nil {
			return ValidateResult{}, invalidRecord(name, err)
		}
		if _, err := core.SelectedProvides(record, loaded.platform); err != nil {
			return ValidateResult{}, invalidRecord(name, err)
		}
	}
	result := ValidateResult{
		Platform:          loaded.platform,
		SystemPackages:    len(loaded.catalog.SystemNames()),
		AuxiliaryPackages: len(auxNames),
	}
	log.Ctx(ctx).Debug().
		Int("system", result.SystemPackages).
		Int("auxiliary", result.AuxiliaryPackages).
		Msg("catalog validated")
	return result, nil
}

func invalidRecord(name string, err error) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("invalid auxiliary package %s: %v", name, err)).
		WithCause(err)
}
