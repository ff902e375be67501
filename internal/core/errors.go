package core

import (
	"fmt"
	"strings"
)

// UnsatisfiableDependencyError reports a dependency expression for which no
// alternative could be satisfied from either catalog.
type UnsatisfiableDependencyError struct {
	Package    string
	Expression string
}

func (e *UnsatisfiableDependencyError) Error() string {
	return fmt.Sprintf("unsatisfiable dependency %q required by %s", e.Expression, e.Package)
}

// RecursionExceededError reports a dependency chain deeper than the
// configured limit. Cycles between auxiliary packages end up here as well.
type RecursionExceededError struct {
	Limit   int
	Package string
}

func (e *RecursionExceededError) Error() string {
	return fmt.Sprintf(
		"recursion limit of %d exceeded while resolving %s (raise recursion_limit if the dependency chain is legitimately deeper)",
		e.Limit,
		e.Package,
	)
}

// CyclicDependencyError reports auxiliary packages that depend on each other.
// Cycle starts and ends with the same package.
type CyclicDependencyError struct {
	Cycle []string
}

func (e *CyclicDependencyError) Error() string {
	return fmt.Sprintf("cyclic dependency between auxiliary packages: %s", strings.Join(e.Cycle, " -> "))
}
