package types

import "fmt"

// Constraint is a single alternative of a dependency expression: a package
// name with an optional version bound.
type Constraint struct {
	Name    string
	Op      ConstraintOp
	Version string
}

func (c Constraint) String() string {
	if c.Op == ConstraintOpNone {
		return c.Name
	}
	return fmt.Sprintf("%s%s%s", c.Name, c.Op, c.Version)
}

// Expression is an ordered list of alternatives. It is satisfied when any
// one alternative is.
type Expression struct {
	Raw          string
	Alternatives []Constraint
	PreDepends   bool
}

func (e Expression) Names() []string {
	out := make([]string, 0, len(e.Alternatives))
	for _, alt := range e.Alternatives {
		out = append(out, alt.Name)
	}
	return out
}
