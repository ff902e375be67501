package app

import (
	"context"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"mist/internal/types"
)

// Upgrade plans upgrades of installed packages. System packages with a
// newer candidate are marked explicitly; packages carrying the auxiliary
// marker are rebuilt when the auxiliary catalog has a newer version.
func (s Service) Upgrade(ctx context.Context, req UpgradeRequest) (UpgradeResult, error) {
	if req.SystemOnly && req.AuxiliaryOnly {
		return UpgradeResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("system-only and auxiliary-only upgrades are mutually exclusive")
	}
	loaded, err := s.loadCatalog(req.Catalog)
	if err != nil {
		return UpgradeResult{}, err
	}
	candidates, err := upgradeCandidates(loaded, !req.AuxiliaryOnly, !req.SystemOnly)
	if err != nil {
		return UpgradeResult{}, err
	}
	result := UpgradeResult{Upgrades: candidates}
	if len(candidates) == 0 {
		log.Ctx(ctx).Info().Msg("no packages to upgrade")
		result.Plan = PlanResult{Platform: loaded.platform}
		return result, nil
	}
	var systemNames, auxNames []string
	for _, candidate := range candidates {
		if candidate.Origin == types.OriginSystem {
			systemNames = append(systemNames, candidate.Name)
		} else {
			auxNames = append(auxNames, candidate.Name)
		}
	}
	plan, err := s.planSelection(ctx, loaded, systemNames, auxNames, req.RecursionLimit, req.OutputDir)
	if err != nil {
		return UpgradeResult{}, err
	}
	result.Plan = plan
	return result, nil
}

func upgradeCandidates(loaded loadedCatalog, system bool, auxiliary bool) ([]UpgradeCandidate, error) {
	var out []UpgradeCandidate
	for _, name := range loaded.catalog.SystemNames() {
		installed, ok := loaded.catalog.InstalledSystem(name)
		if !ok {
			continue
		}
		var (
			candidate UpgradeCandidate
			found     bool
			err       error
		)
		switch {
		case installed.AuxiliaryInstalled && auxiliary:
			candidate, found, err = auxiliaryUpgrade(loaded, installed)
		case !installed.AuxiliaryInstalled && system:
			candidate, found, err = systemUpgrade(loaded, installed)
		}
		if err != nil {
			return nil, err
		}
		if found {
			out = append(out, candidate)
		}
	}
	return out, nil
}

func auxiliaryUpgrade(loaded loadedCatalog, installed types.PackageRecord) (UpgradeCandidate, bool, error) {
	aux := loaded.catalog.Lookup(installed.Name).Auxiliary
	if aux == nil {
		return UpgradeCandidate{}, false, nil
	}
	cmp, err := loaded.versions.Compare(aux.Version, installed.Version)
	if err != nil {
		return UpgradeCandidate{}, false, err
	}
	if cmp <= 0 {
		return UpgradeCandidate{}, false, nil
	}
	return UpgradeCandidate{
		Name:      installed.Name,
		Origin:    types.OriginAuxiliary,
		Installed: installed.Version,
		Available: aux.Version,
	}, true, nil
}

// systemUpgrade reports an installed system package whose candidate is a
// newer version.
func systemUpgrade(loaded loadedCatalog, installed types.PackageRecord) (UpgradeCandidate, bool, error) {
	if installed.Candidate {
		return UpgradeCandidate{}, false, nil
	}
	ref, ok := systemCandidate(loaded.catalog, installed.Name)
	if !ok {
		return UpgradeCandidate{}, false, nil
	}
	cmp, err := loaded.versions.Compare(ref.Version, installed.Version)
	if err != nil {
		return UpgradeCandidate{}, false, err
	}
	if cmp <= 0 {
		return UpgradeCandidate{}, false, nil
	}
	return UpgradeCandidate{
		Name:      installed.Name,
		Origin:    types.OriginSystem,
		Installed: installed.Version,
		Available: ref.Version,
	}, true, nil
}
