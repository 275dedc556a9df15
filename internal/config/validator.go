package config

import (
	"fmt"
	"strings"

	"github.com/hueify/hueify/internal/render"
	"github.com/hueify/hueify/internal/rules"
)

// ValidationError represents a single configuration validation failure
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors collects all validation failures so the user sees every
// problem in one pass rather than fixing them one at a time.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("invalid configuration:\n  - %s", strings.Join(msgs, "\n  - "))
}

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks the configuration for errors and returns all of them.
// Pattern compilation is not attempted here; the engine compiles patterns
// and reports the rule index of any failure.
func (c *Config) Validate() []ValidationError {
	var errs []ValidationError

	for i, rule := range c.Rules {
		field := fmt.Sprintf("rules[%d]", i)
		if rule.Pattern == "" {
			errs = append(errs, ValidationError{
				Field:   field + ".pattern",
				Value:   rule.Pattern,
				Message: "pattern must not be empty",
			})
		}
		if _, err := rules.ParseAction(rule.Action); err != nil {
			errs = append(errs, ValidationError{
				Field:   field + ".action",
				Value:   rule.Action,
				Message: "action must be one of: keep, drop",
			})
		}
		if _, err := rules.ParseMatchKind(rule.Match); err != nil {
			errs = append(errs, ValidationError{
				Field:   field + ".match",
				Value:   rule.Match,
				Message: "match must be one of: prefix, glob, regex",
			})
		}
	}

	for level, tag := range c.Colors.Levels {
		if _, err := render.ParseTag(tag); err != nil {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("colors.levels[%s]", level),
				Value:   tag,
				Message: "unknown color tag",
			})
		}
	}

	if c.Trace.MaxChainDepth < 1 {
		errs = append(errs, ValidationError{
			Field:   "trace.max_chain_depth",
			Value:   c.Trace.MaxChainDepth,
			Message: "must be at least 1",
		})
	}

	if !validLogLevels[c.Logging.Level] {
		errs = append(errs, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: "level must be one of: debug, info, warn, error",
		})
	}

	return errs
}
