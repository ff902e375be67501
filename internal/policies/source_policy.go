package policies

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"mist/internal/ports"
	"mist/internal/types"
)

// SourceRule sends names matching Pattern to Origin. Patterns are an exact
// name, a prefix ending in "*", or "*".
type SourceRule struct {
	Origin  types.Origin
	Pattern string
}

// SourcePolicy decides which catalog a requested name is installed from
// when both catalogs carry it. The earliest matching rule wins; without a
// match the preferred origin is used.
type SourcePolicy struct {
	Rules     []SourceRule
	Preferred types.Origin
	exact     map[string]int
	prefixes  []prefixPattern
	wildcard  int
}

type prefixPattern struct {
	prefix    string
	ruleIndex int
}

type patternKind int

const (
	patternExact patternKind = iota
	patternPrefix
	patternWildcard
	patternInvalid
)

func NewSourcePolicy(rules []SourceRule, preferred types.Origin) SourcePolicy {
	if preferred == "" {
		preferred = types.OriginSystem
	}
	policy := SourcePolicy{Rules: rules, Preferred: preferred, wildcard: -1}
	policy.compile()
	return policy
}

// ParseSourceRules parses "origin:pattern" entries such as "system:curl",
// "auxiliary:python3-*" or "auxiliary:*".
func ParseSourceRules(raw []string) ([]SourceRule, error) {
	var rules []SourceRule
	for _, entry := range raw {
		trimmed := strings.TrimSpace(entry)
		if trimmed == "" {
			continue
		}
		originToken, pattern, ok := strings.Cut(trimmed, ":")
		if !ok {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("source rule must be origin:pattern: %s", entry))
		}
		origin, err := ParseOrigin(originToken)
		if err != nil {
			return nil, err
		}
		if _, kind := parseNamePattern(pattern); kind == patternInvalid {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("source rule has empty pattern: %s", entry))
		}
		rules = append(rules, SourceRule{Origin: origin, Pattern: strings.TrimSpace(pattern)})
	}
	return rules, nil
}

// ParseOrigin accepts the catalog names used on the command line.
func ParseOrigin(value string) (types.Origin, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "system", "apt":
		return types.OriginSystem, nil
	case "auxiliary", "aux", "mpr":
		return types.OriginAuxiliary, nil
	default:
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unknown package source: %s", value))
	}
}

func (p SourcePolicy) SelectOrigin(name string) (types.Origin, error) {
	best := -1
	if idx, found := p.exact[name]; found {
		best = minIndex(best, idx)
	}
	for _, entry := range p.prefixes {
		if strings.HasPrefix(name, entry.prefix) {
			best = minIndex(best, entry.ruleIndex)
		}
	}
	if p.wildcard >= 0 {
		best = minIndex(best, p.wildcard)
	}
	if best >= 0 && best < len(p.Rules) {
		return p.Rules[best].Origin, nil
	}
	switch p.Preferred {
	case types.OriginSystem, types.OriginAuxiliary:
		return p.Preferred, nil
	default:
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unknown preferred source: %s", p.Preferred))
	}
}

func (p *SourcePolicy) compile() {
	p.exact = map[string]int{}
	p.prefixes = nil
	p.wildcard = -1
	for idx, rule := range p.Rules {
		name, kind := parseNamePattern(rule.Pattern)
		switch kind {
		case patternWildcard:
			if p.wildcard < 0 {
				p.wildcard = idx
			}
		case patternExact:
			if _, ok := p.exact[name]; !ok {
				p.exact[name] = idx
			}
		case patternPrefix:
			p.prefixes = append(p.prefixes, prefixPattern{prefix: name, ruleIndex: idx})
		}
	}
}

func parseNamePattern(value string) (string, patternKind) {
	pattern := strings.TrimSpace(value)
	if pattern == "" {
		return "", patternInvalid
	}
	if pattern == "*" {
		return "", patternWildcard
	}
	if strings.HasSuffix(pattern, "*") {
		return strings.TrimSuffix(pattern, "*"), patternPrefix
	}
	return pattern, patternExact
}

func minIndex(current int, candidate int) int {
	if candidate < 0 {
		return current
	}
	if current < 0 || candidate < current {
		return candidate
	}
	return current
}

var _ ports.SourcePolicyPort = SourcePolicy{}
