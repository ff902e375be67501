package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"mist/internal/app"
	"mist/internal/types"
)

func printPlan(out io.Writer, result app.PlanResult) {
	_, _ = fmt.Fprintf(out, "platform: %s/%s\n", result.Platform.Distro, result.Platform.Arch)
	printMarks(out, result.Resolution.Marks)
	if len(result.BuildUnits) == 0 {
		_, _ = fmt.Fprintln(out, "auxiliary packages: none")
	} else {
		_, _ = fmt.Fprintln(out, "build order:")
		for idx, batch := range result.BuildUnits {
			for _, unit := range batch {
				_, _ = fmt.Fprintf(out, "  %d. %s %s [%s]\n", idx+1, unit.Base, unit.Version, strings.Join(unit.Packages, ", "))
			}
		}
	}
	printConflicts(out, result.Conflicts)
	if result.PlanPath != "" {
		_, _ = fmt.Fprintln(out, color.GreenString("wrote plan: %s", result.PlanPath))
	}
}

func printResolution(out io.Writer, result app.PlanResult) {
	for _, root := range result.Resolution.Roots {
		_, _ = fmt.Fprintf(out, "%s: %s\n", root.Root, strings.Join(root.Packages, " "))
	}
	printMarks(out, result.Resolution.Marks)
	for idx, batch := range result.PackageBatches {
		_, _ = fmt.Fprintf(out, "batch %d: %s\n", idx+1, strings.Join(batch, " "))
	}
	for idx, batch := range result.BaseBatches {
		_, _ = fmt.Fprintf(out, "base batch %d: %s\n", idx+1, strings.Join(batch, " "))
	}
	printConflicts(out, result.Conflicts)
}

func printMarks(out io.Writer, marks []types.InstallMark) {
	if len(marks) == 0 {
		return
	}
	_, _ = fmt.Fprintln(out, "system packages:")
	for _, mark := range marks {
		if mark.AutoInstalled {
			_, _ = fmt.Fprintf(out, "  %s (auto, required by %s)\n", mark.Package, mark.RequiredBy)
			continue
		}
		_, _ = fmt.Fprintf(out, "  %s\n", mark.Package)
	}
}

func printConflicts(out io.Writer, conflicts []types.ConflictWarning) {
	for _, conflict := range conflicts {
		_, _ = fmt.Fprintln(out, color.YellowString("warning: %s conflicts with %s (%s)",
			conflict.Package, conflict.ConflictsWith, conflict.Expression))
	}
}

func printUpgrades(out io.Writer, result app.UpgradeResult) {
	if len(result.Upgrades) == 0 {
		_, _ = fmt.Fprintln(out, color.GreenString("all packages are up to date"))
		return
	}
	_, _ = fmt.Fprintln(out, "upgrades:")
	for _, upgrade := range result.Upgrades {
		_, _ = fmt.Fprintf(out, "  %s %s -> %s (%s)\n", upgrade.Name, upgrade.Installed, upgrade.Available, upgrade.Origin)
	}
	printPlan(out, result.Plan)
}

func printInfo(out io.Writer, result app.InfoResult) {
	for _, record := range result.System {
		status := ""
		if record.Installed {
			status = " (installed)"
		}
		_, _ = fmt.Fprintf(out, "system: %s%s\n", record.Ref(), status)
	}
	if result.Auxiliary == nil {
		return
	}
	aux := result.Auxiliary
	_, _ = fmt.Fprintf(out, "auxiliary: %s=%s (base %s)\n", aux.Name, aux.Version, aux.PackageBase())
	if aux.Description != "" {
		_, _ = fmt.Fprintf(out, "  %s\n", aux.Description)
	}
	if aux.Maintainer != "" {
		_, _ = fmt.Fprintf(out, "  maintainer: %s\n", aux.Maintainer)
	}
	for _, relation := range result.Relations {
		_, _ = fmt.Fprintf(out, "  %s (%s/%s): %s\n", relation.Kind, result.Platform.Distro, result.Platform.Arch,
			strings.Join(relation.Expressions, ", "))
	}
}

func printInspect(out io.Writer, result app.InspectResult) {
	plan := result.Plan
	_, _ = fmt.Fprintf(out, "platform: %s/%s\n", plan.Platform.Distro, plan.Platform.Arch)
	_, _ = fmt.Fprintf(out, "requested: %s\n", strings.Join(plan.Requested, ", "))
	_, _ = fmt.Fprintf(out, "system packages: %d (%d auto-installed)\n", len(plan.System), result.AutoInstalled)
	_, _ = fmt.Fprintf(out, "build units: %d in %d batches (%d packages)\n", result.BuildCount, len(plan.Batches), result.PackageCount)
	printConflicts(out, plan.Conflicts)
}

func printQuery(out io.Writer, result app.QueryResult, nameOnly bool) {
	if len(result.Packages) == 0 {
		_, _ = fmt.Fprintln(out, "no results")
		return
	}
	if nameOnly {
		seen := map[string]struct{}{}
		for _, pkg := range result.Packages {
			if _, ok := seen[pkg.Name]; ok {
				continue
			}
			seen[pkg.Name] = struct{}{}
			_, _ = fmt.Fprintln(out, pkg.Name)
		}
		return
	}
	for _, pkg := range result.Packages {
		status := ""
		if pkg.Installed {
			status = color.GreenString(" [installed]")
		}
		_, _ = fmt.Fprintf(out, "%s/%s (%s)%s\n", pkg.Name, pkg.Version, pkg.Origin, status)
		if pkg.Base != "" && pkg.Base != pkg.Name {
			_, _ = fmt.Fprintf(out, "  base: %s\n", pkg.Base)
		}
		if pkg.Description != "" {
			_, _ = fmt.Fprintf(out, "  %s\n", pkg.Description)
		}
	}
}
