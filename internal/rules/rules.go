// Package rules implements frame filtering rules for trace rendering.
//
// A rule pairs a pattern with an action (keep or drop) and is evaluated
// against a stack frame's location identifier and symbolic name. Rules are
// evaluated in configuration order and the last matching rule wins; a frame
// matching no rule is kept. Patterns compile once at construction time into
// one of three matcher kinds: literal prefix, glob, or regular expression.
package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gobwas/glob"

	"github.com/hueify/hueify/internal/errors"
)

// Action is the filtering decision for a frame.
type Action int

const (
	// Keep renders the frame in full.
	Keep Action = iota
	// Drop elides the frame into an elision span.
	Drop
)

// String returns the string representation of the action.
func (a Action) String() string {
	switch a {
	case Keep:
		return "keep"
	case Drop:
		return "drop"
	default:
		return "unknown"
	}
}

// ParseAction converts a string action from a rule spec.
func ParseAction(s string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "keep":
		return Keep, nil
	case "drop":
		return Drop, nil
	default:
		return Keep, errors.NewConfigError(fmt.Sprintf("action %q", s), errors.ErrUnknownAction)
	}
}

// MatchKind selects how a rule's pattern is matched against a frame.
type MatchKind int

const (
	// MatchPrefix matches when the frame field starts with the pattern.
	MatchPrefix MatchKind = iota
	// MatchGlob matches the pattern as a glob (gobwas/glob syntax).
	MatchGlob
	// MatchRegex matches the pattern as a Go regular expression.
	MatchRegex
)

// String returns the string representation of the matcher kind.
func (k MatchKind) String() string {
	switch k {
	case MatchPrefix:
		return "prefix"
	case MatchGlob:
		return "glob"
	case MatchRegex:
		return "regex"
	default:
		return "unknown"
	}
}

// ParseMatchKind converts a string matcher kind from a rule spec.
// An empty string selects the default prefix matcher.
func ParseMatchKind(s string) (MatchKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "prefix":
		return MatchPrefix, nil
	case "glob":
		return MatchGlob, nil
	case "regex", "regexp":
		return MatchRegex, nil
	default:
		return MatchPrefix, errors.NewConfigError(fmt.Sprintf("matcher %q", s), errors.ErrUnknownMatcher)
	}
}

// Rule is one uncompiled filter rule. Its precedence is its position in the
// slice handed to NewSet.
type Rule struct {
	Pattern string
	Kind    MatchKind
	Action  Action
}

// compiledRule holds the matcher resolved once at construction.
type compiledRule struct {
	action Action
	match  func(string) bool
}

// Set is an ordered, immutable collection of compiled filter rules.
// A Set is safe for concurrent use once constructed.
type Set struct {
	rules []compiledRule
}

// NewSet compiles the given rules in order. An invalid pattern fails here
// with a ConfigError carrying the rule index; it never surfaces lazily
// during rendering.
func NewSet(specs []Rule) (*Set, error) {
	compiled := make([]compiledRule, 0, len(specs))
	for i, spec := range specs {
		match, err := compileMatcher(spec)
		if err != nil {
			var cfgErr *errors.ConfigError
			if errors.As(err, &cfgErr) {
				cfgErr.WithRule(i)
				return nil, cfgErr
			}
			return nil, err
		}
		compiled = append(compiled, compiledRule{action: spec.Action, match: match})
	}
	return &Set{rules: compiled}, nil
}

// compileMatcher resolves a rule spec into a matcher function.
func compileMatcher(spec Rule) (func(string) bool, error) {
	switch spec.Kind {
	case MatchPrefix:
		pattern := spec.Pattern
		return func(s string) bool {
			return strings.HasPrefix(s, pattern)
		}, nil

	case MatchGlob:
		g, err := glob.Compile(spec.Pattern)
		if err != nil {
			return nil, errors.NewConfigError("glob does not compile", errors.ErrInvalidPattern).
				WithPattern(spec.Pattern)
		}
		return g.Match, nil

	case MatchRegex:
		re, err := regexp.Compile(spec.Pattern)
		if err != nil {
			return nil, errors.NewConfigError("regexp does not compile", errors.ErrInvalidPattern).
				WithPattern(spec.Pattern)
		}
		return re.MatchString, nil

	default:
		return nil, errors.NewConfigError(fmt.Sprintf("matcher kind %d", spec.Kind), errors.ErrUnknownMatcher)
	}
}

// Evaluate decides whether a frame is kept or dropped. Every rule is
// consulted in order and the action of the last rule matching either the
// frame's location or its symbol wins. A frame matching no rule is kept.
//
// A nil Set keeps every frame.
func (s *Set) Evaluate(location, symbol string) Action {
	if s == nil {
		return Keep
	}

	action := Keep
	for _, rule := range s.rules {
		if rule.match(location) || rule.match(symbol) {
			action = rule.action
		}
	}
	return action
}

// Len returns the number of compiled rules.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.rules)
}
