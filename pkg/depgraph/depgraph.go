// Package depgraph resolves package dependency closures and orders
// them for building with Kahn's algorithm, the same approach the
// original used, but with a deterministic, lexicographically sorted
// seed order so that two runs over the same recipe set always produce
// the same build plan.
package depgraph

import (
	"sort"

	"github.com/fcanata061/lfsd/pkg/lfsderrors"
	"github.com/fcanata061/lfsd/pkg/types"
)

// Closure returns every recipe reachable from targets via Depends,
// including the targets themselves. A dependency name absent from
// store is still included in the result, as a nil entry, so it is
// emitted in the build plan as a source node with no recipe — the
// caller building the plan then fails for it with a "no recipe" error
// rather than the missing dependency silently vanishing from the plan.
func Closure(targets []string, store map[string]*types.Recipe) map[string]*types.Recipe {
	result := make(map[string]*types.Recipe)
	var visit func(name string)
	visit = func(name string) {
		if _, ok := result[name]; ok {
			return
		}
		r, ok := store[name]
		if !ok {
			result[name] = nil
			return
		}
		result[name] = r
		for _, dep := range r.Depends {
			visit(dep)
		}
	}
	for _, t := range targets {
		visit(t)
	}
	return result
}

// TopoSort orders packages so every dependency precedes its dependents,
// using Kahn's algorithm. Ties are broken lexicographically by package
// name so the result is deterministic. It fails with ErrResolutionCycle
// if the dependency graph contains a cycle.
func TopoSort(closure map[string]*types.Recipe) ([]string, error) {
	inDegree := make(map[string]int, len(closure))
	dependents := make(map[string][]string, len(closure))

	for name := range closure {
		inDegree[name] = 0
	}
	for name, r := range closure {
		if r == nil {
			continue
		}
		for _, dep := range r.Depends {
			if _, ok := closure[dep]; !ok {
				continue
			}
			inDegree[name]++
			dependents[dep] = append(dependents[dep], name)
		}
	}

	var ready []string
	for name, deg := range inDegree {
		if deg == 0 {
			ready = append(ready, name)
		}
	}
	sort.Strings(ready)

	var order []string
	for len(ready) > 0 {
		sort.Strings(ready)
		next := ready[0]
		ready = ready[1:]
		order = append(order, next)

		children := dependents[next]
		sort.Strings(children)
		for _, child := range children {
			inDegree[child]--
			if inDegree[child] == 0 {
				ready = append(ready, child)
			}
		}
	}

	if len(order) != len(closure) {
		return nil, lfsderrors.New(lfsderrors.ErrResolutionCycle, "dependency cycle detected")
	}

	return order, nil
}
