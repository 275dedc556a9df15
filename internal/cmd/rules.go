package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hueify/hueify/internal/config"
	"github.com/hueify/hueify/internal/rules"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Inspect and validate filter rules",
}

var rulesCheckCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Validate a rules file",
	Long: `Validate a standalone rules file: parse it, compile every pattern, and
report the result. With no file argument, checks the rules from the
loaded configuration.

Exit status is non-zero when any rule fails to compile.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRulesCheck,
}

func init() {
	rootCmd.AddCommand(rulesCmd)
	rulesCmd.AddCommand(rulesCheckCmd)
}

func runRulesCheck(cmd *cobra.Command, args []string) error {
	var specs []config.RuleSpec

	if len(args) == 1 {
		loaded, err := config.LoadRulesFile(args[0])
		if err != nil {
			return err
		}
		specs = loaded
	} else {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		specs = cfg.Rules
	}

	if len(specs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No rules defined.")
		return nil
	}

	compiled, err := compileSpecs(specs)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for i, spec := range specs {
		kind := spec.Match
		if kind == "" {
			kind = "prefix"
		}
		fmt.Fprintf(out, "%3d  %-4s  %-6s  %s\n", i, spec.Action, kind, spec.Pattern)
	}
	fmt.Fprintf(out, "\n%d rules ok. Later rules take precedence; unmatched frames are kept.\n", compiled.Len())
	return nil
}

// compileSpecs compiles rule specs the same way the engine does, so check
// failures match render-time failures exactly.
func compileSpecs(specs []config.RuleSpec) (*rules.Set, error) {
	converted := make([]rules.Rule, 0, len(specs))
	for _, spec := range specs {
		action, err := rules.ParseAction(spec.Action)
		if err != nil {
			return nil, err
		}
		kind, err := rules.ParseMatchKind(spec.Match)
		if err != nil {
			return nil, err
		}
		converted = append(converted, rules.Rule{Pattern: spec.Pattern, Kind: kind, Action: action})
	}
	return rules.NewSet(converted)
}
