// Package main implements the sketchc CLI.
package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"sketchc/internal/version"
)

var (
	cfgFile   string
	configErr error
)

// errReported means the failure was already rendered as diagnostics.
var errReported = errors.New("diagnostics reported")

var rootCmd = &cobra.Command{
	Use:   "sketchc",
	Short: "Sketch build and diagnostics tool",
	Long: `sketchc builds sketch folders (.pde and .java tabs) through an external
preprocessor and the Java compiler, and reports the first problem against
the tab and line the user wrote.

  sketchc build ./Particles          Build a sketch
  sketchc explain --log javac.log    Explain a saved compiler log
  sketchc braces ./Particles         Check brace balance of every tab`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if configErr != nil {
			return configErr
		}
		applyColorMode(cmd)
		return setupTracing(cmd)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.sketchc.toml)")
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Bool("quiet", false, "suppress non-essential output")
	pf.Bool("timings", false, "show timing information")
	pf.String("format", "pretty", "diagnostic output format (pretty|short|json|sarif|msgpack)")
	pf.String("rules", "", "classifier rule table (TOML) replacing the built-in one")
	pf.String("trace", "", "trace output file (- for stderr)")
	pf.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	pf.String("trace-mode", "stream", "trace storage mode (stream|ring|both)")
	pf.String("trace-format", "auto", "trace format (auto|text|ndjson)")
	pf.Int("trace-ring-size", 4096, "trace ring buffer size")
	pf.Duration("trace-heartbeat", 0, "emit trace heartbeats at this interval (0 disables)")

	for _, key := range []string{"color", "format", "rules"} {
		if err := viper.BindPFlag(key, pf.Lookup(key)); err != nil {
			panic(err)
		}
	}

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(explainCmd)
	rootCmd.AddCommand(bracesCmd)
	rootCmd.AddCommand(versionCmd)
}

// initConfig reads the config file and SKETCHC_* environment variables.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
		viper.SetConfigName(".sketchc")
	}
	viper.SetConfigType("toml")
	viper.SetEnvPrefix("SKETCHC")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			configErr = fmt.Errorf("failed to read config: %w", err)
		}
	}
}

func main() {
	rootCmd.Version = version.Version

	err := rootCmd.Execute()
	finishTracing(rootCmd, err)
	if err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func colorEnabled() bool {
	switch strings.ToLower(viper.GetString("color")) {
	case "on", "always", "true":
		return true
	case "off", "never", "false":
		return false
	}
	return os.Getenv("NO_COLOR") == "" && isTerminal(os.Stdout)
}

func applyColorMode(*cobra.Command) {
	color.NoColor = !colorEnabled()
}

func quiet(cmd *cobra.Command) bool {
	q, err := cmd.Root().PersistentFlags().GetBool("quiet")
	return err == nil && q
}
