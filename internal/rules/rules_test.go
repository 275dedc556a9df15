package rules

import (
	"testing"

	"github.com/hueify/hueify/internal/errors"
)

func TestParseAction(t *testing.T) {
	tests := []struct {
		input   string
		want    Action
		wantErr bool
	}{
		{"keep", Keep, false},
		{"drop", Drop, false},
		{"KEEP", Keep, false},
		{"  drop ", Drop, false},
		{"show", Keep, true},
		{"", Keep, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAction(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseAction(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, errors.ErrUnknownAction) {
					t.Errorf("error should wrap ErrUnknownAction, got %v", err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParseAction(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseMatchKind(t *testing.T) {
	tests := []struct {
		input   string
		want    MatchKind
		wantErr bool
	}{
		{"", MatchPrefix, false},
		{"prefix", MatchPrefix, false},
		{"glob", MatchGlob, false},
		{"regex", MatchRegex, false},
		{"regexp", MatchRegex, false},
		{"fuzzy", MatchPrefix, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMatchKind(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMatchKind(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("ParseMatchKind(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewSet_InvalidPattern(t *testing.T) {
	tests := []struct {
		name  string
		rules []Rule
	}{
		{
			name:  "bad regex",
			rules: []Rule{{Pattern: "pkg.(", Kind: MatchRegex, Action: Drop}},
		},
		{
			name:  "bad glob",
			rules: []Rule{{Pattern: "pkg.[", Kind: MatchGlob, Action: Drop}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSet(tt.rules)
			if err == nil {
				t.Fatal("NewSet() should fail for invalid pattern")
			}
			if !errors.Is(err, errors.ErrInvalidPattern) {
				t.Errorf("error should wrap ErrInvalidPattern, got %v", err)
			}

			var cfgErr *errors.ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatal("error should be a ConfigError")
			}
			if cfgErr.Rule != 0 {
				t.Errorf("ConfigError.Rule = %d, want 0", cfgErr.Rule)
			}
		})
	}
}

func TestNewSet_ErrorCarriesRuleIndex(t *testing.T) {
	_, err := NewSet([]Rule{
		{Pattern: "ok.", Kind: MatchPrefix, Action: Drop},
		{Pattern: "also-ok", Kind: MatchGlob, Action: Keep},
		{Pattern: "broken(", Kind: MatchRegex, Action: Drop},
	})
	if err == nil {
		t.Fatal("NewSet() should fail")
	}

	var cfgErr *errors.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatal("error should be a ConfigError")
	}
	if cfgErr.Rule != 2 {
		t.Errorf("ConfigError.Rule = %d, want 2", cfgErr.Rule)
	}
	if cfgErr.Pattern != "broken(" {
		t.Errorf("ConfigError.Pattern = %q, want %q", cfgErr.Pattern, "broken(")
	}
}

// Last matching rule wins: a later keep overrides an earlier drop for frames
// both rules match, and frames only the earlier rule matches stay dropped.
func TestEvaluate_LastMatchWins(t *testing.T) {
	set, err := NewSet([]Rule{
		{Pattern: "pkg.", Kind: MatchPrefix, Action: Drop},
		{Pattern: "pkg.sub", Kind: MatchPrefix, Action: Keep},
	})
	if err != nil {
		t.Fatalf("NewSet() error = %v", err)
	}

	if got := set.Evaluate("pkg.sub.mod", "handler"); got != Keep {
		t.Errorf("Evaluate(pkg.sub.mod) = %v, want Keep", got)
	}
	if got := set.Evaluate("pkg.other", "handler"); got != Drop {
		t.Errorf("Evaluate(pkg.other) = %v, want Drop", got)
	}
}

func TestEvaluate_DefaultKeep(t *testing.T) {
	set, err := NewSet([]Rule{
		{Pattern: "vendor/", Kind: MatchPrefix, Action: Drop},
	})
	if err != nil {
		t.Fatalf("NewSet() error = %v", err)
	}

	if got := set.Evaluate("app/main.py", "main"); got != Keep {
		t.Errorf("Evaluate() = %v, want Keep for unmatched frame", got)
	}
}

func TestEvaluate_MatchesSymbol(t *testing.T) {
	set, err := NewSet([]Rule{
		{Pattern: "_private_*", Kind: MatchGlob, Action: Drop},
	})
	if err != nil {
		t.Fatalf("NewSet() error = %v", err)
	}

	if got := set.Evaluate("app/handlers.py", "_private_dispatch"); got != Drop {
		t.Errorf("Evaluate() = %v, want Drop when symbol matches", got)
	}
	if got := set.Evaluate("app/handlers.py", "dispatch"); got != Keep {
		t.Errorf("Evaluate() = %v, want Keep when neither field matches", got)
	}
}

func TestEvaluate_MatcherKinds(t *testing.T) {
	tests := []struct {
		name     string
		rule     Rule
		location string
		want     Action
	}{
		{
			name:     "prefix hit",
			rule:     Rule{Pattern: "/usr/lib/", Kind: MatchPrefix, Action: Drop},
			location: "/usr/lib/python3.12/logging/__init__.py",
			want:     Drop,
		},
		{
			name:     "prefix miss is not substring match",
			rule:     Rule{Pattern: "logging", Kind: MatchPrefix, Action: Drop},
			location: "/usr/lib/logging.py",
			want:     Keep,
		},
		{
			name:     "glob hit",
			rule:     Rule{Pattern: "*/site-packages/*", Kind: MatchGlob, Action: Drop},
			location: "/venv/site-packages/requests/api.py",
			want:     Drop,
		},
		{
			name:     "regex hit",
			rule:     Rule{Pattern: `site-packages/(requests|urllib3)/`, Kind: MatchRegex, Action: Drop},
			location: "/venv/site-packages/urllib3/conn.py",
			want:     Drop,
		},
		{
			name:     "regex miss",
			rule:     Rule{Pattern: `site-packages/(requests|urllib3)/`, Kind: MatchRegex, Action: Drop},
			location: "/venv/site-packages/flask/app.py",
			want:     Keep,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := NewSet([]Rule{tt.rule})
			if err != nil {
				t.Fatalf("NewSet() error = %v", err)
			}
			if got := set.Evaluate(tt.location, ""); got != tt.want {
				t.Errorf("Evaluate(%q) = %v, want %v", tt.location, got, tt.want)
			}
		})
	}
}

func TestEvaluate_EmptyAndNilSet(t *testing.T) {
	empty, err := NewSet(nil)
	if err != nil {
		t.Fatalf("NewSet(nil) error = %v", err)
	}
	if got := empty.Evaluate("anything", "anything"); got != Keep {
		t.Errorf("empty set Evaluate() = %v, want Keep", got)
	}
	if empty.Len() != 0 {
		t.Errorf("empty set Len() = %d, want 0", empty.Len())
	}

	var nilSet *Set
	if got := nilSet.Evaluate("anything", "anything"); got != Keep {
		t.Errorf("nil set Evaluate() = %v, want Keep", got)
	}
	if nilSet.Len() != 0 {
		t.Errorf("nil set Len() = %d, want 0", nilSet.Len())
	}
}
