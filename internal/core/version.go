package core

import (
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
	debversion "github.com/knqyf263/go-deb-version"

	"mist/internal/ports"
	"mist/internal/types"
)

// DebVersionComparator compares versions with Debian semantics and memoizes
// parsed versions. It is not safe for concurrent use.
type DebVersionComparator struct {
	cache map[string]debversion.Version
}

func NewDebVersionComparator() *DebVersionComparator {
	return &DebVersionComparator{cache: map[string]debversion.Version{}}
}

// Compare returns -1, 0, or 1 comparing a with b.
func (c *DebVersionComparator) Compare(a string, b string) (int, error) {
	v1, err := c.parse(a)
	if err != nil {
		return 0, err
	}
	v2, err := c.parse(b)
	if err != nil {
		return 0, err
	}
	// debversion reports the raw component difference, not its sign.
	switch cmp := v1.Compare(v2); {
	case cmp < 0:
		return -1, nil
	case cmp > 0:
		return 1, nil
	default:
		return 0, nil
	}
}

func (c *DebVersionComparator) parse(value string) (debversion.Version, error) {
	if parsed, ok := c.cache[value]; ok {
		return parsed, nil
	}
	parsed, err := debversion.NewVersion(value)
	if err != nil {
		return debversion.Version{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid version %q", value)).
			WithCause(err)
	}
	c.cache[value] = parsed
	return parsed, nil
}

// Satisfies reports whether version meets constraint. An unconstrained
// alternative accepts every version.
func Satisfies(versions ports.VersionComparatorPort, version string, constraint types.Constraint) (bool, error) {
	if constraint.Op == types.ConstraintOpNone {
		return true, nil
	}
	cmp, err := versions.Compare(version, constraint.Version)
	if err != nil {
		return false, err
	}
	switch constraint.Op {
	case types.ConstraintOpLt:
		return cmp < 0, nil
	case types.ConstraintOpLte:
		return cmp <= 0, nil
	case types.ConstraintOpEq:
		return cmp == 0, nil
	case types.ConstraintOpGte:
		return cmp >= 0, nil
	case types.ConstraintOpGt:
		return cmp > 0, nil
	default:
		return false, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unsupported constraint operator %q", constraint.Op))
	}
}

var _ ports.VersionComparatorPort = (*DebVersionComparator)(nil)
