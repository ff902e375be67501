package core

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"mist/internal/types"
)

// opTokens is the ordered list of relation operators tried during parsing.
// Two-character tokens must precede "=".
var opTokens = []types.ConstraintOp{
	types.ConstraintOpGte,
	types.ConstraintOpLte,
	types.ConstraintOpGt,
	types.ConstraintOpLt,
	types.ConstraintOpEq,
}

// ParseConstraint splits a raw "name>=version" alternative into a
// Constraint. A bare name yields ConstraintOpNone.
func ParseConstraint(raw string) (types.Constraint, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return types.Constraint{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("empty dependency alternative")
	}
	for _, op := range opTokens {
		name, version, ok := strings.Cut(raw, string(op))
		if !ok {
			continue
		}
		name = normalizePackageName(name)
		version = strings.TrimSpace(version)
		if name == "" || version == "" || strings.ContainsAny(version, "<>=") {
			return types.Constraint{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("invalid dependency alternative: %s", raw))
		}
		return types.Constraint{Name: name, Op: op, Version: version}, nil
	}
	if strings.ContainsAny(raw, "<>") {
		return types.Constraint{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unsupported relation operator in %s", raw))
	}
	name := normalizePackageName(raw)
	if name == "" || strings.ContainsAny(name, " \t") {
		return types.Constraint{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid package name: %s", raw))
	}
	return types.Constraint{Name: name, Op: types.ConstraintOpNone}, nil
}

// parseDebianRelation parses the control-file spelling "libfoo (>= 1.2)".
func parseDebianRelation(raw string) (types.Constraint, error) {
	before, after, _ := strings.Cut(raw, "(")
	name := normalizePackageName(before)
	relation, ok := strings.CutSuffix(strings.TrimSpace(after), ")")
	fields := strings.Fields(relation)
	if !ok || name == "" || len(fields) == 0 || len(fields) > 2 {
		return types.Constraint{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid dependency alternative: %s", raw))
	}
	opToken, version := fields[0], ""
	if len(fields) == 2 {
		version = fields[1]
	} else {
		// "(>=1.2)" without a separating space
		for _, op := range opTokens {
			if rest, found := strings.CutPrefix(opToken, string(op)); found {
				opToken, version = string(op), rest
				break
			}
		}
	}
	op, known := relationOp(opToken)
	if !known || version == "" {
		return types.Constraint{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unsupported relation operator in %s", raw))
	}
	return types.Constraint{Name: name, Op: op, Version: version}, nil
}

// relationOp maps a relation token such as ">=" or "<<" to a ConstraintOp.
func relationOp(token string) (types.ConstraintOp, bool) {
	for _, op := range opTokens {
		if token == string(op) {
			return op, true
		}
	}
	return types.ConstraintOpNone, false
}

// normalizePackageName strips architecture qualifiers (":amd64", ":any")
// and surrounding whitespace.
func normalizePackageName(value string) string {
	name := strings.TrimSpace(value)
	if idx := strings.Index(name, ":"); idx >= 0 {
		name = strings.TrimSpace(name[:idx])
	}
	return name
}
