package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hueify/hueify/internal/config"
	"github.com/hueify/hueify/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "hueify",
	Short: "Colorize and filter exception stack traces",
	Long: `Hueify renders log records and exception stack traces to the terminal
with color and selective frame filtering. Configurable rules drop noisy
frames (framework internals, vendored code) while keeping the trace
comprehensible: hidden frames are summarized in place, and a trace is
never filtered down to nothing.`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/hueify/config.yaml)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("HUEIFY")
	// Replace dots with underscores for nested keys in env vars
	// e.g., HUEIFY_TRACE_MAX_CHAIN_DEPTH for trace.max_chain_depth
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}

// buildLogger constructs the diagnostic logger from config. Disabled
// logging yields a no-op logger so call sites never nil-check.
func buildLogger(cfg *config.Config) (*logging.Logger, error) {
	if !cfg.Logging.Enabled {
		return logging.NopLogger(), nil
	}
	return logging.New(cfg.Logging.File, cfg.Logging.Level)
}
