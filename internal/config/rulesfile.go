package config

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	hueifyerrors "github.com/hueify/hueify/internal/errors"
)

// rulesDocument is the schema of a standalone rules file
type rulesDocument struct {
	Rules []RuleSpec `yaml:"rules"`
}

// LoadRulesFile reads an ordered rule list from a standalone YAML file.
// The file holds a single top-level "rules" key; unknown keys are rejected
// so a typo like "pattren" fails loudly instead of silently matching
// nothing. Rules from a file replace, not extend, the config file's rules.
func LoadRulesFile(path string) ([]RuleSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, hueifyerrors.Wrapf(err, "reading rules file %s", path)
	}
	return ParseRules(data)
}

// ParseRules decodes a rules document from raw YAML
func ParseRules(data []byte) ([]RuleSpec, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc rulesDocument
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, hueifyerrors.NewConfigError("parsing rules file", err)
	}

	var errs ValidationErrors
	for i, rule := range doc.Rules {
		if rule.Pattern == "" {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("rules[%d].pattern", i),
				Value:   rule.Pattern,
				Message: "pattern must not be empty",
			})
		}
	}
	if len(errs) > 0 {
		return nil, errs
	}

	return doc.Rules, nil
}
