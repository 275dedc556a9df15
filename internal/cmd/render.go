package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hueify/hueify/internal/capture"
	"github.com/hueify/hueify/internal/colorterm"
	"github.com/hueify/hueify/internal/config"
	"github.com/hueify/hueify/internal/engine"
	"github.com/hueify/hueify/internal/logging"
)

var renderCmd = &cobra.Command{
	Use:   "render [file]",
	Short: "Render a captured trace",
	Long: `Render a JSON-captured log record and its exception chain to the
terminal, applying the configured frame filters and colors.

Reads from the given file, or from stdin when no file is provided.

Examples:
  # Render a captured trace from a file
  hueify render crash.json

  # Render from stdin
  myapp 2>&1 | hueify render

  # Follow a stream of newline-delimited records
  tail -f app.ndjson | hueify render --follow

  # Use a standalone rules file instead of the configured rules
  hueify render crash.json --rules noise.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

var (
	renderRulesFile string
	renderNoColor   bool
	renderForce     bool
	renderFollow    bool
	renderMaxDepth  int
)

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringVarP(&renderRulesFile, "rules", "r", "", "rules file overriding the configured rules")
	renderCmd.Flags().BoolVar(&renderNoColor, "no-color", false, "disable color output")
	renderCmd.Flags().BoolVar(&renderForce, "color", false, "force color output even when stdout is not a terminal")
	renderCmd.Flags().BoolVarP(&renderFollow, "follow", "f", false, "read newline-delimited records continuously")
	renderCmd.Flags().IntVar(&renderMaxDepth, "max-depth", 0, "override the cause chain depth bound")
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if renderRulesFile != "" {
		rules, err := config.LoadRulesFile(renderRulesFile)
		if err != nil {
			return err
		}
		cfg.Rules = rules
	}
	if renderMaxDepth > 0 {
		cfg.Trace.MaxChainDepth = renderMaxDepth
	}

	logger, err := buildLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Close() }()

	eng, err := engine.New(cfg, logger)
	if err != nil {
		return err
	}

	input := cmd.InOrStdin()
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open trace file: %w", err)
		}
		defer f.Close()
		input = f
	}

	resolver := outputResolver(cmd.OutOrStdout())

	if renderFollow {
		return renderStream(cmd, input, resolver, eng, logger)
	}
	return renderOne(input, resolver, eng)
}

// outputResolver picks the color mode from flags, falling back to terminal
// detection.
func outputResolver(w io.Writer) *colorterm.Resolver {
	switch {
	case renderNoColor:
		return colorterm.NewWithColor(w, false)
	case renderForce:
		return colorterm.NewWithColor(w, true)
	default:
		return colorterm.New(w)
	}
}

// renderOne decodes and renders a single envelope
func renderOne(input io.Reader, resolver *colorterm.Resolver, eng *engine.Engine) error {
	meta, root, err := capture.Decode(input)
	if err != nil {
		return err
	}
	return resolver.Write(eng.Render(root, meta))
}

// renderStream renders newline-delimited envelopes as they arrive. When a
// config file is in use, it is watched so rule edits apply to subsequent
// records without restarting.
func renderStream(cmd *cobra.Command, input io.Reader, resolver *colorterm.Resolver, eng *engine.Engine, logger *logging.Logger) error {
	if path := configFileInUse(); path != "" && renderRulesFile == "" {
		watcher, err := config.NewWatcher(path, logger)
		if err != nil {
			return err
		}
		watcher.SetChangeCallback(func(next *config.Config) {
			_ = eng.Reload(next)
		})
		watcher.Start()
		defer watcher.Stop()
	}

	scanner := bufio.NewScanner(input)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		meta, root, err := capture.Decode(strings.NewReader(line))
		if err != nil {
			// A malformed record in a stream is logged and passed through
			// raw rather than aborting the whole stream.
			logger.Warn("skipping malformed record", "error", err)
			fmt.Fprintln(cmd.OutOrStdout(), line)
			continue
		}

		if err := resolver.Write(eng.Render(root, meta)); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// configFileInUse returns the config file viper actually loaded, if any
func configFileInUse() string {
	return viper.ConfigFileUsed()
}
