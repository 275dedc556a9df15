package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/hueify/hueify/internal/testutil"
)

// executeCommand runs a cobra command with args and returns captured output
func executeCommand(root *cobra.Command, args ...string) (output string, err error) {
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err = root.Execute()
	return buf.String(), err
}

// resetRenderFlags restores render flag defaults between tests
func resetRenderFlags() {
	renderRulesFile = ""
	renderNoColor = false
	renderForce = false
	renderFollow = false
	renderMaxDepth = 0
}

func TestRootCommand(t *testing.T) {
	if rootCmd == nil {
		t.Fatal("rootCmd is nil")
	}

	if rootCmd.Use != "hueify" {
		t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, "hueify")
	}

	expectedCmds := []string{"render", "rules"}
	cmdMap := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		cmdMap[cmd.Name()] = true
	}

	for _, expected := range expectedCmds {
		if !cmdMap[expected] {
			t.Errorf("expected subcommand %q not found", expected)
		}
	}
}

func TestRenderCommand(t *testing.T) {
	defer resetRenderFlags()

	dir := t.TempDir()
	tracePath := testutil.WriteFile(t, dir, "crash.json", `{
		"level": "error",
		"message": "request failed",
		"trace": {
			"type": "ValueError",
			"message": "bad input",
			"frames": [
				{"location": "myapp/handlers.py", "function": "handle", "line": 10},
				{"location": "vendor/lib.py", "function": "call", "line": 20}
			]
		}
	}`)
	rulesPath := testutil.WriteFile(t, dir, "rules.yaml", `rules:
  - pattern: "vendor/"
    action: drop
`)

	output, err := executeCommand(rootCmd,
		"render", tracePath, "--rules", rulesPath, "--no-color")
	if err != nil {
		t.Fatalf("render command failed: %v\nOutput: %s", err, output)
	}

	if !strings.Contains(output, "Traceback (most recent call last):") {
		t.Errorf("expected traceback header in output:\n%s", output)
	}
	if !strings.Contains(output, `File "myapp/handlers.py", line 10, in handle`) {
		t.Errorf("expected kept frame in output:\n%s", output)
	}
	if strings.Contains(output, "vendor/lib.py") {
		t.Errorf("expected vendor frame dropped:\n%s", output)
	}
	if !strings.Contains(output, "1 frame hidden") {
		t.Errorf("expected elision marker in output:\n%s", output)
	}
	if !strings.Contains(output, "ValueError: bad input") {
		t.Errorf("expected exception line in output:\n%s", output)
	}
	if strings.Contains(output, "\033[") {
		t.Errorf("expected no ANSI escapes with --no-color:\n%s", output)
	}
}

func TestRenderCommand_MissingFile(t *testing.T) {
	defer resetRenderFlags()

	if _, err := executeCommand(rootCmd, "render", "/no/such/trace.json"); err == nil {
		t.Error("expected error for missing trace file")
	}
}

func TestRenderCommand_InvalidRulesFile(t *testing.T) {
	defer resetRenderFlags()

	dir := t.TempDir()
	tracePath := testutil.WriteFile(t, dir, "crash.json", `{"trace": {"type": "E"}}`)
	rulesPath := testutil.WriteFile(t, dir, "rules.yaml", `rules:
  - pattern: "(("
    action: drop
    match: regex
`)

	if _, err := executeCommand(rootCmd, "render", tracePath, "--rules", rulesPath); err == nil {
		t.Error("expected error for invalid regex in rules file")
	}
}

func TestRulesCheckCommand(t *testing.T) {
	dir := t.TempDir()
	rulesPath := testutil.WriteFile(t, dir, "rules.yaml", `rules:
  - pattern: "vendor/"
    action: drop
  - pattern: "myapp.*"
    action: keep
    match: glob
`)

	output, err := executeCommand(rootCmd, "rules", "check", rulesPath)
	if err != nil {
		t.Fatalf("rules check failed: %v\nOutput: %s", err, output)
	}

	if !strings.Contains(output, "2 rules ok") {
		t.Errorf("expected success summary, got:\n%s", output)
	}
	if !strings.Contains(output, "vendor/") {
		t.Errorf("expected rule listing, got:\n%s", output)
	}
}

func TestRulesCheckCommand_BadPattern(t *testing.T) {
	dir := t.TempDir()
	rulesPath := testutil.WriteFile(t, dir, "rules.yaml", `rules:
  - pattern: "(("
    action: drop
    match: regex
`)

	if _, err := executeCommand(rootCmd, "rules", "check", rulesPath); err == nil {
		t.Error("expected error for invalid pattern")
	}
}

func TestRulesCheckCommand_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	rulesPath := testutil.WriteFile(t, dir, "rules.yaml", "")

	output, err := executeCommand(rootCmd, "rules", "check", rulesPath)
	if err != nil {
		t.Fatalf("rules check failed: %v", err)
	}
	if !strings.Contains(output, "No rules defined.") {
		t.Errorf("expected empty-rules message, got:\n%s", output)
	}
}
