package engine

import (
	"reflect"
	"testing"
	"time"

	"github.com/hueify/hueify/internal/config"
	"github.com/hueify/hueify/internal/render"
	"github.com/hueify/hueify/internal/trace"
)

func testConfig(ruleSpecs ...config.RuleSpec) *config.Config {
	cfg := config.Default()
	cfg.Rules = ruleSpecs
	return cfg
}

func testRecord() *trace.Record {
	return &trace.Record{
		Type:    "ValueError",
		Message: "bad input",
		Frames: []trace.Frame{
			{Location: "myapp/handlers.py", Function: "handle", Line: 10},
			{Location: "vendor/lib.py", Function: "call", Line: 20},
			{Location: "myapp/db.py", Function: "query", Line: 30},
		},
	}
}

func renderText(lines []render.Line) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = line.String()
	}
	return out
}

func TestNew_InvalidPattern(t *testing.T) {
	cfg := testConfig(config.RuleSpec{Pattern: "([", Action: "drop", Match: "regex"})

	if _, err := New(cfg, nil); err == nil {
		t.Fatal("expected error for invalid regex pattern, got nil")
	}
}

func TestRender_AppliesRules(t *testing.T) {
	cfg := testConfig(config.RuleSpec{Pattern: "vendor/", Action: "drop"})
	e, err := New(cfg, nil)
	if err != nil {
		t.Fatalf("failed to build engine: %v", err)
	}

	lines := renderText(e.Render(testRecord(), render.Metadata{}))

	joined := ""
	for _, l := range lines {
		joined += l + "\n"
	}
	if !contains(lines, `  File "myapp/handlers.py", line 10, in handle`) {
		t.Errorf("expected kept frame in output:\n%s", joined)
	}
	if contains(lines, `  File "vendor/lib.py", line 20, in call`) {
		t.Errorf("expected vendor frame dropped:\n%s", joined)
	}
	if !contains(lines, "  1 frame hidden") {
		t.Errorf("expected elision marker:\n%s", joined)
	}
}

func TestRender_LastMatchWins(t *testing.T) {
	cfg := testConfig(
		config.RuleSpec{Pattern: "myapp/", Action: "drop"},
		config.RuleSpec{Pattern: "myapp/handlers.py", Action: "keep"},
	)
	e, err := New(cfg, nil)
	if err != nil {
		t.Fatalf("failed to build engine: %v", err)
	}

	lines := renderText(e.Render(testRecord(), render.Metadata{}))

	if !contains(lines, `  File "myapp/handlers.py", line 10, in handle`) {
		t.Errorf("expected later keep rule to override earlier drop: %v", lines)
	}
	if contains(lines, `  File "myapp/db.py", line 30, in query`) {
		t.Errorf("expected db frame still dropped: %v", lines)
	}
}

func TestRender_NilRecordRendersHeaderOnly(t *testing.T) {
	e, err := New(config.Default(), nil)
	if err != nil {
		t.Fatalf("failed to build engine: %v", err)
	}

	meta := render.Metadata{
		Time:    time.Date(2026, 8, 29, 10, 30, 0, 0, time.UTC),
		Level:   "error",
		Message: "request failed",
	}
	lines := renderText(e.Render(nil, meta))

	if len(lines) != 1 {
		t.Fatalf("expected only the header line, got %d lines: %v", len(lines), lines)
	}
	if lines[0] != "2026-08-29 10:30:00 ERROR request failed" {
		t.Errorf("unexpected header: %q", lines[0])
	}
}

func TestRender_Idempotent(t *testing.T) {
	cfg := testConfig(config.RuleSpec{Pattern: "vendor/", Action: "drop"})
	e, err := New(cfg, nil)
	if err != nil {
		t.Fatalf("failed to build engine: %v", err)
	}

	rec := testRecord()
	meta := render.Metadata{Level: "error", Message: "boom", Time: time.Unix(1700000000, 0).UTC()}

	first := e.Render(rec, meta)
	second := e.Render(rec, meta)
	if !reflect.DeepEqual(first, second) {
		t.Error("expected identical output for identical input")
	}
}

func TestReload_SwapsRules(t *testing.T) {
	e, err := New(config.Default(), nil)
	if err != nil {
		t.Fatalf("failed to build engine: %v", err)
	}

	before := renderText(e.Render(testRecord(), render.Metadata{}))
	if !contains(before, `  File "vendor/lib.py", line 20, in call`) {
		t.Fatalf("expected vendor frame before reload: %v", before)
	}

	if err := e.Reload(testConfig(config.RuleSpec{Pattern: "vendor/", Action: "drop"})); err != nil {
		t.Fatalf("reload failed: %v", err)
	}

	after := renderText(e.Render(testRecord(), render.Metadata{}))
	if contains(after, `  File "vendor/lib.py", line 20, in call`) {
		t.Errorf("expected vendor frame dropped after reload: %v", after)
	}
}

func TestReload_InvalidConfigKeepsState(t *testing.T) {
	e, err := New(testConfig(config.RuleSpec{Pattern: "vendor/", Action: "drop"}), nil)
	if err != nil {
		t.Fatalf("failed to build engine: %v", err)
	}

	bad := testConfig(config.RuleSpec{Pattern: "((", Action: "drop", Match: "regex"})
	if err := e.Reload(bad); err == nil {
		t.Fatal("expected reload error for invalid pattern")
	}

	lines := renderText(e.Render(testRecord(), render.Metadata{}))
	if contains(lines, `  File "vendor/lib.py", line 20, in call`) {
		t.Errorf("expected previous rules still active after failed reload: %v", lines)
	}
}

func TestRender_DepthBound(t *testing.T) {
	cfg := config.Default()
	cfg.Trace.MaxChainDepth = 2
	e, err := New(cfg, nil)
	if err != nil {
		t.Fatalf("failed to build engine: %v", err)
	}

	// Three-deep cause chain against a depth bound of two.
	root := &trace.Record{Type: "A", Message: "a"}
	root.Cause = &trace.Record{Type: "B", Message: "b"}
	root.Cause.Cause = &trace.Record{Type: "C", Message: "c"}

	lines := renderText(e.Render(root, render.Metadata{}))

	if !contains(lines, "trace truncated") {
		t.Errorf("expected truncation marker: %v", lines)
	}
	if contains(lines, "C: c") {
		t.Errorf("expected third record beyond depth bound to be absent: %v", lines)
	}
}

func contains(lines []string, want string) bool {
	for _, l := range lines {
		if l == want {
			return true
		}
	}
	return false
}
