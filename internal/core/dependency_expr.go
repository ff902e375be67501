package core

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"mist/internal/types"
)

// preDependsPrefix marks an expression that must be configured before the
// package that declares it. Resolution treats it like any other dependency.
const preDependsPrefix = "p!"

// ParseExpression parses a dependency expression such as
// "libfoo>=1.0|libbar" or "libfoo (>= 1.0) | libbar [amd64]" into its
// ordered alternatives.
func ParseExpression(raw string) (types.Expression, error) {
	trimmed := strings.TrimSpace(raw)
	expr := types.Expression{Raw: trimmed}
	if rest, ok := strings.CutPrefix(trimmed, preDependsPrefix); ok {
		expr.PreDepends = true
		trimmed = strings.TrimSpace(rest)
	}
	if trimmed == "" {
		return types.Expression{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("empty dependency expression: %q", raw))
	}
	for _, part := range strings.Split(trimmed, "|") {
		alt, err := parseAlternative(part)
		if err != nil {
			return types.Expression{}, err
		}
		expr.Alternatives = append(expr.Alternatives, alt)
	}
	return expr, nil
}

// ParseExpressions parses every expression of a selected relation list.
func ParseExpressions(raws []string) ([]types.Expression, error) {
	out := make([]types.Expression, 0, len(raws))
	for _, raw := range raws {
		expr, err := ParseExpression(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, expr)
	}
	return out, nil
}

// ParseProvide parses a provides entry. Only "=" is meaningful for a
// versioned provide; other operators are rejected.
func ParseProvide(raw string) (types.Constraint, error) {
	alt, err := parseAlternative(raw)
	if err != nil {
		return types.Constraint{}, err
	}
	if alt.Op != types.ConstraintOpNone && alt.Op != types.ConstraintOpEq {
		return types.Constraint{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("provides entry must be unversioned or use '=': %s", raw))
	}
	return alt, nil
}

func parseAlternative(part string) (types.Constraint, error) {
	raw := strings.TrimSpace(part)
	if idx := strings.Index(raw, "["); idx >= 0 {
		raw = strings.TrimSpace(raw[:idx])
	}
	if strings.Contains(raw, "(") {
		return parseDebianRelation(raw)
	}
	return ParseConstraint(raw)
}
