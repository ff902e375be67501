package core

import (
	"context"
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"mist/internal/ports"
	"mist/internal/shared"
	"mist/internal/types"
)

// Planner orders auxiliary packages into installation batches.
type Planner struct {
	Catalog  ports.CatalogPort
	Platform ports.PlatformPort
}

func NewPlanner(catalog ports.CatalogPort, platform ports.PlatformPort) Planner {
	return Planner{Catalog: catalog, Platform: platform}
}

// planGraph holds the dependency edges between tracked packages. Edges
// point from a package to the tracked packages providing one of its
// dependencies.
type planGraph struct {
	names []string
	edges map[string][]string
}

// Order returns batches such that every package is placed after each
// tracked package it depends on. Duplicate input names are ignored.
func (p Planner) Order(ctx context.Context, auxNames []string) ([][]string, error) {
	if p.Catalog == nil || p.Platform == nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("planner requires catalog and platform ports")
	}
	names := shared.UniqueStrings(auxNames)
	if len(names) == 0 {
		return [][]string{}, nil
	}
	platform, err := p.Platform.Current()
	if err != nil {
		return nil, err
	}
	graph, err := p.buildGraph(names, platform)
	if err != nil {
		return nil, err
	}
	if cycle := graph.findCycle(); len(cycle) > 0 {
		return nil, &CyclicDependencyError{Cycle: cycle}
	}

	batches := relaxBatches(ctx, graph)
	log.Ctx(ctx).Debug().
		Int("packages", len(names)).
		Int("batches", len(batches)).
		Msg("install order computed")
	return batches, nil
}

func (p Planner) buildGraph(names []string, platform types.DistroArch) (planGraph, error) {
	dependsOn := map[string][]string{}
	providedBy := map[string][]string{}
	for _, name := range names {
		record := p.Catalog.Lookup(name).Auxiliary
		if record == nil {
			return planGraph{}, errbuilder.New().
				WithCode(errbuilder.CodeNotFound).
				WithMsg(fmt.Sprintf("auxiliary package not found: %s", name))
		}
		exprs, err := BuildDependencies(*record, platform)
		if err != nil {
			return planGraph{}, err
		}
		for _, expr := range exprs {
			dependsOn[name] = append(dependsOn[name], expr.Names()...)
		}
		provides, err := SelectedProvides(*record, platform)
		if err != nil {
			return planGraph{}, err
		}
		provided := []string{name}
		for _, provide := range provides {
			provided = append(provided, provide.Name)
		}
		for _, providedName := range shared.UniqueStrings(provided) {
			providedBy[providedName] = append(providedBy[providedName], name)
		}
	}

	graph := planGraph{names: names, edges: map[string][]string{}}
	for _, name := range names {
		var targets []string
		for _, dep := range dependsOn[name] {
			for _, provider := range providedBy[dep] {
				if provider != name {
					targets = append(targets, provider)
				}
			}
		}
		graph.edges[name] = shared.UniqueStrings(targets)
	}
	return graph, nil
}

// findCycle runs Tarjan's strongly connected components algorithm and
// returns a concrete cycle through the first component with more than one
// member, or nil when the graph is acyclic.
func (g planGraph) findCycle() []string {
	index := 0
	indices := map[string]int{}
	lowlink := map[string]int{}
	onStack := map[string]bool{}
	var stack []string
	var component []string

	var strongConnect func(v string)
	strongConnect = func(v string) {
		indices[v] = index
		lowlink[v] = index
		index++
		stack = append(stack, v)
		onStack[v] = true
		for _, w := range g.edges[v] {
			if _, visited := indices[w]; !visited {
				strongConnect(w)
				lowlink[v] = min(lowlink[v], lowlink[w])
			} else if onStack[w] {
				lowlink[v] = min(lowlink[v], indices[w])
			}
		}
		if lowlink[v] != indices[v] {
			return
		}
		var members []string
		for {
			w := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			onStack[w] = false
			members = append(members, w)
			if w == v {
				break
			}
		}
		if len(members) > 1 && component == nil {
			component = members
		}
	}

	for _, name := range g.names {
		if _, visited := indices[name]; !visited {
			strongConnect(name)
		}
		if component != nil {
			break
		}
	}
	if component == nil {
		return nil
	}
	return g.cycleWithin(component)
}

// cycleWithin walks edges restricted to members from the member that comes
// first in input order until it returns to it.
func (g planGraph) cycleWithin(members []string) []string {
	inComponent := map[string]bool{}
	for _, member := range members {
		inComponent[member] = true
	}
	start := ""
	for _, name := range g.names {
		if inComponent[name] {
			start = name
			break
		}
	}
	parent := map[string]string{start: ""}
	queue := []string{start}
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		for _, w := range g.edges[v] {
			if !inComponent[w] {
				continue
			}
			if w == start {
				path := []string{start}
				for at := v; at != start; at = parent[at] {
					path = append(path, at)
				}
				cycle := []string{start}
				for i := len(path) - 1; i >= 1; i-- {
					cycle = append(cycle, path[i])
				}
				return append(cycle, start)
			}
			if _, seen := parent[w]; seen {
				continue
			}
			parent[w] = v
			queue = append(queue, w)
		}
	}
	return append(append([]string(nil), members...), members[0])
}

// relaxBatches starts with every package in one batch and repeatedly moves
// the first package found depending on a package in the same or a later
// batch to the batch after that package, until nothing moves. The graph
// must be acyclic.
func relaxBatches(ctx context.Context, g planGraph) [][]string {
	batches := [][]string{append([]string(nil), g.names...)}
	position := map[string]int{}
	for _, name := range g.names {
		position[name] = 0
	}
	for {
		moved := false
	search:
		for i := range batches {
			for idx, name := range batches[i] {
				target := -1
				for _, dep := range g.edges[name] {
					if position[dep] >= i && position[dep] > target {
						target = position[dep]
					}
				}
				if target < 0 {
					continue
				}
				batches[i] = append(batches[i][:idx:idx], batches[i][idx+1:]...)
				if target+1 == len(batches) {
					batches = append(batches, nil)
				}
				batches[target+1] = append(batches[target+1], name)
				position[name] = target + 1
				log.Ctx(ctx).Debug().
					Str("package", name).
					Int("from", i).
					Int("to", target+1).
					Msg("package moved to later batch")
				moved = true
				break search
			}
		}
		if !moved {
			break
		}
	}

	out := make([][]string, 0, len(batches))
	for _, batch := range batches {
		if len(batch) > 0 {
			out = append(out, batch)
		}
	}
	return out
}
