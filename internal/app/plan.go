package app

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"mist/internal/core"
	"mist/internal/policies"
	"mist/internal/ports"
	"mist/internal/shared"
	"mist/internal/types"
)

func (s Service) Plan(ctx context.Context, req PlanRequest) (PlanResult, error) {
	names := shared.UniqueStrings(shared.TrimAll(req.Packages))
	if len(names) == 0 {
		return PlanResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("at least one package is required")
	}
	preferred := types.OriginSystem
	if strings.TrimSpace(req.Prefer) != "" {
		origin, err := policies.ParseOrigin(req.Prefer)
		if err != nil {
			return PlanResult{}, err
		}
		preferred = origin
	}
	rules, err := policies.ParseSourceRules(req.SourceRules)
	if err != nil {
		return PlanResult{}, err
	}

	loaded, err := s.loadCatalog(req.Catalog)
	if err != nil {
		return PlanResult{}, err
	}
	if err := requireKnown(loaded.catalog, names); err != nil {
		return PlanResult{}, err
	}

	var policy ports.SourcePolicyPort = policies.NewSourcePolicy(rules, preferred)
	var systemNames, auxNames []string
	for _, name := range names {
		entry := loaded.catalog.Lookup(name)
		origin := types.OriginAuxiliary
		switch {
		case entry.Auxiliary == nil:
			origin = types.OriginSystem
		case len(entry.System) > 0:
			origin, err = policy.SelectOrigin(name)
			if err != nil {
				return PlanResult{}, err
			}
		}
		if origin == types.OriginSystem {
			systemNames = append(systemNames, name)
		} else {
			auxNames = append(auxNames, name)
		}
	}
	return s.planSelection(ctx, loaded, systemNames, auxNames, req.RecursionLimit, req.OutputDir)
}

// requireKnown fails with every requested name missing from both catalogs.
func requireKnown(catalog *core.Catalog, names []string) error {
	var missing []string
	for _, name := range names {
		if !catalog.Lookup(name).Found() {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return errbuilder.New().
		WithCode(errbuilder.CodeNotFound).
		WithMsg(fmt.Sprintf("unable to find packages: %s", strings.Join(missing, ", ")))
}

func (s Service) planSelection(ctx context.Context, loaded loadedCatalog, systemNames []string, auxNames []string, recursionLimit int, outputDir string) (PlanResult, error) {
	catalog := loaded.catalog
	plan := core.NewInstallPlan()
	for _, name := range systemNames {
		ref, ok := systemCandidate(catalog, name)
		if !ok {
			return PlanResult{}, errbuilder.New().
				WithCode(errbuilder.CodeNotFound).
				WithMsg(fmt.Sprintf("no installable version of %s", name))
		}
		if catalog.IsCandidateInstalled(ref) {
			log.Ctx(ctx).Info().Str("package", ref.String()).Msg("already installed")
			continue
		}
		plan.MarkInstall(ref, false, "", "")
	}

	resolver := core.NewResolver(catalog, catalog, loaded.port, loaded.versions)
	resolution, err := resolver.ResolveWithPlan(ctx, auxNames, recursionLimit, plan)
	if err != nil {
		return PlanResult{}, err
	}
	planner := core.NewPlanner(catalog, loaded.port)
	batches, err := planner.Order(ctx, resolution.Flatten())
	if err != nil {
		return PlanResult{}, err
	}

	result := PlanResult{
		Platform:           loaded.platform,
		SystemRequested:    systemNames,
		AuxiliaryRequested: auxNames,
		Resolution:         resolution,
		PackageBatches:     batches,
		BaseBatches:        core.CollapseToBases(batches, catalog),
		BuildUnits:         core.BuildUnits(batches, catalog),
	}
	conflicts, err := checkConflicts(catalog, loaded, resolution.Marks, batches)
	if err != nil {
		return PlanResult{}, err
	}
	for _, conflict := range conflicts {
		log.Ctx(ctx).Warn().
			Str("package", conflict.Package).
			Str("conflicts_with", conflict.ConflictsWith).
			Msg("planned package declares a conflict")
	}
	result.Conflicts = conflicts

	if strings.TrimSpace(outputDir) != "" {
		path, err := s.PlanWriter(outputDir).WritePlan(types.InstallPlanFile{
			Platform:  loaded.platform,
			Requested: append(append([]string(nil), systemNames...), auxNames...),
			System:    resolution.Marks,
			Batches:   result.BuildUnits,
			Conflicts: conflicts,
		})
		if err != nil {
			return PlanResult{}, err
		}
		result.PlanPath = path
	}
	log.Ctx(ctx).Debug().
		Int("system", len(resolution.Marks)).
		Int("batches", len(result.BuildUnits)).
		Msg("install plan ready")
	return result, nil
}

// systemCandidate picks the version the system engine would install.
func systemCandidate(catalog *core.Catalog, name string) (types.VersionRef, bool) {
	records := catalog.Lookup(name).System
	if len(records) == 0 {
		return types.VersionRef{}, false
	}
	for _, record := range records {
		if record.Candidate {
			return record.Ref(), true
		}
	}
	return records[len(records)-1].Ref(), true
}

func checkConflicts(catalog *core.Catalog, loaded loadedCatalog, marks []types.InstallMark, batches [][]string) ([]types.ConflictWarning, error) {
	present := map[string]policies.PresentPackage{}
	for _, name := range catalog.SystemNames() {
		if record, ok := catalog.InstalledSystem(name); ok {
			present[name] = policies.PresentPackage{Version: record.Version, Origin: types.OriginSystem}
		}
	}
	for _, mark := range marks {
		present[mark.Package.Name] = policies.PresentPackage{Version: mark.Package.Version, Origin: types.OriginSystem}
	}
	var planned []string
	for _, batch := range batches {
		planned = append(planned, batch...)
	}
	sort.Strings(planned)
	var candidates []policies.ConflictCandidate
	for _, name := range planned {
		record := catalog.Lookup(name).Auxiliary
		if record == nil {
			continue
		}
		present[name] = policies.PresentPackage{Version: record.Version, Origin: types.OriginAuxiliary}
		conflicts, err := core.SelectedConflicts(*record, loaded.platform)
		if err != nil {
			return nil, err
		}
		if len(conflicts) > 0 {
			candidates = append(candidates, policies.ConflictCandidate{Package: name, Conflicts: conflicts})
		}
	}
	return policies.CheckConflicts(candidates, present, loaded.versions)
}
