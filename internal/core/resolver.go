package core

import (
	"context"
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"mist/internal/ports"
	"mist/internal/types"
)

// DefaultRecursionLimit matches the system engine's default loop limit.
const DefaultRecursionLimit = 50

// Resolver computes the auxiliary packages needed to install a set of
// roots, satisfying each dependency from the system catalog first.
type Resolver struct {
	Catalog  ports.CatalogPort
	State    ports.SystemStatePort
	Platform ports.PlatformPort
	Versions ports.VersionComparatorPort
}

func NewResolver(catalog ports.CatalogPort, state ports.SystemStatePort, platform ports.PlatformPort, versions ports.VersionComparatorPort) Resolver {
	return Resolver{
		Catalog:  catalog,
		State:    state,
		Platform: platform,
		Versions: versions,
	}
}

// Resolve resolves roots against a fresh install plan.
func (r Resolver) Resolve(ctx context.Context, roots []string, recursionLimit int) (types.ResolutionResult, error) {
	return r.ResolveWithPlan(ctx, roots, recursionLimit, NewInstallPlan())
}

// ResolveWithPlan resolves roots, recording system selections in plan.
// Marks already present in plan count as satisfied. A recursionLimit of
// zero or less selects DefaultRecursionLimit.
func (r Resolver) ResolveWithPlan(ctx context.Context, roots []string, recursionLimit int, plan *InstallPlan) (types.ResolutionResult, error) {
	if r.Catalog == nil || r.State == nil || r.Platform == nil || r.Versions == nil {
		return types.ResolutionResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("resolver requires catalog, system state, platform and version ports")
	}
	if plan == nil {
		plan = NewInstallPlan()
	}
	if recursionLimit <= 0 {
		recursionLimit = DefaultRecursionLimit
	}
	platform, err := r.Platform.Current()
	if err != nil {
		return types.ResolutionResult{}, err
	}
	run := &resolveRun{
		Resolver: r,
		ctx:      ctx,
		platform: platform,
		limit:    recursionLimit,
		plan:     plan,
		done:     map[string]resolvedPackage{},
	}

	result := types.ResolutionResult{}
	for _, root := range roots {
		resolved, err := run.resolvePackage(root, 1)
		if err != nil {
			return types.ResolutionResult{}, err
		}
		result.Roots = append(result.Roots, types.RootResolution{Root: root, Packages: resolved.packages})
	}
	result.Marks = plan.Marks()

	log.Ctx(ctx).Debug().
		Int("roots", len(result.Roots)).
		Int("system_marks", len(result.Marks)).
		Msg("resolver completed")
	return result, nil
}

// resolveRun carries the state of one Resolve call.
type resolveRun struct {
	Resolver
	ctx      context.Context
	platform types.DistroArch
	limit    int
	plan     *InstallPlan
	done     map[string]resolvedPackage
}

// resolvedPackage is the memoized closure of one auxiliary package. height
// counts the auxiliary levels below and including the package, and deepest
// names the package at the bottom of the longest chain.
type resolvedPackage struct {
	packages []string
	height   int
	deepest  string
}

func (r *resolveRun) resolvePackage(name string, depth int) (resolvedPackage, error) {
	if depth > r.limit {
		return resolvedPackage{}, &RecursionExceededError{Limit: r.limit, Package: name}
	}
	if err := r.ctx.Err(); err != nil {
		return resolvedPackage{}, err
	}
	if memo, ok := r.done[name]; ok {
		// A memoized closure reached at a deeper level still has to fit
		// under the limit.
		if depth+memo.height-1 > r.limit {
			return resolvedPackage{}, &RecursionExceededError{Limit: r.limit, Package: memo.deepest}
		}
		return memo, nil
	}
	entry := r.Catalog.Lookup(name)
	if entry.Auxiliary == nil {
		return resolvedPackage{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("auxiliary package not found: %s", name))
	}
	exprs, err := BuildDependencies(*entry.Auxiliary, r.platform)
	if err != nil {
		return resolvedPackage{}, err
	}

	resolved := resolvedPackage{packages: []string{name}, height: 1, deepest: name}
	seen := map[string]struct{}{name: {}}
	for _, expr := range exprs {
		child, err := r.satisfy(name, expr, depth)
		if err != nil {
			return resolvedPackage{}, err
		}
		if child.height+1 > resolved.height {
			resolved.height = child.height + 1
			resolved.deepest = child.deepest
		}
		for _, pkg := range child.packages {
			if _, ok := seen[pkg]; ok {
				continue
			}
			seen[pkg] = struct{}{}
			resolved.packages = append(resolved.packages, pkg)
		}
	}
	r.done[name] = resolved
	return resolved, nil
}

// satisfy evaluates the alternatives of expr left to right and returns the
// auxiliary closure pulled in by the first satisfiable one. A name known to
// the system catalog is never taken from the auxiliary catalog, even when
// none of its system versions qualifies.
func (r *resolveRun) satisfy(parent string, expr types.Expression, depth int) (resolvedPackage, error) {
	logger := log.Ctx(r.ctx)
	for _, alt := range expr.Alternatives {
		refs, err := r.Catalog.SystemVersionsSatisfying(alt.Name, alt)
		if err != nil {
			return resolvedPackage{}, err
		}
		if len(refs) > 0 {
			for _, ref := range refs {
				if r.State.IsCandidateInstalled(ref) || r.plan.IsMarked(ref) {
					logger.Debug().
						Str("package", parent).
						Str("dependency", alt.String()).
						Str("satisfied_by", ref.String()).
						Msg("dependency already satisfied by system")
					return resolvedPackage{}, nil
				}
			}
			r.plan.MarkInstall(refs[0], true, parent, expr.Raw)
			logger.Debug().
				Str("package", parent).
				Str("dependency", alt.String()).
				Str("marked", refs[0].String()).
				Msg("system package marked for install")
			return resolvedPackage{}, nil
		}

		entry := r.Catalog.Lookup(alt.Name)
		if len(entry.System) > 0 || entry.Auxiliary == nil {
			continue
		}
		ok, err := Satisfies(r.Versions, entry.Auxiliary.Version, alt)
		if err != nil {
			return resolvedPackage{}, err
		}
		if !ok {
			continue
		}
		logger.Debug().
			Str("package", parent).
			Str("dependency", alt.String()).
			Msg("dependency satisfied from auxiliary catalog")
		return r.resolvePackage(alt.Name, depth+1)
	}
	return resolvedPackage{}, &UnsatisfiableDependencyError{Package: parent, Expression: expr.Raw}
}
