package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"sketchc/internal/classify"
	"sketchc/internal/javac"
	"sketchc/internal/library"
)

// settings are the tool locations and defaults read through viper, so each
// can come from a flag, SKETCHC_<KEY> or the config file.
type settings struct {
	Preprocessor  string
	Compiler      string
	Source        string
	Target        string
	Libraries     string
	CoreLibrary   string
	HostClassPath string
	BuildDir      string
	Rules         string
	Locale        string
	PrintCommands bool
}

func init() {
	viper.SetDefault("preprocessor", "sketch-preproc")
	viper.SetDefault("compiler", javac.DefaultCommand)
	viper.SetDefault("locale", "en")
}

// bindBuildFlags registers the tool flags on cmd and binds them to viper.
func bindBuildFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("preprocessor", "", "preprocessor command")
	f.String("compiler", "", "ecj-compatible Java compiler command (default ecj)")
	f.String("source", "", "Java source level (default 1.8)")
	f.String("target", "", "Java target level (default: source level)")
	f.String("libraries", "", "folder holding contributed libraries")
	f.String("core-library", "", "class path of the core library")
	f.String("host-classpath", "", "class path appended after all libraries")
	f.String("build-dir", "", "folder for generated sources and classes")
	f.String("locale", "", "language of user-facing messages")
	f.Bool("print-commands", false, "print external commands before running them")
}

// loadSettings reads the bound keys. Called from RunE so cmd's flags are the
// ones viper sees.
func loadSettings(cmd *cobra.Command) (settings, error) {
	for _, key := range []string{
		"preprocessor", "compiler", "source", "target", "libraries", "core-library",
		"host-classpath", "build-dir", "locale", "print-commands",
	} {
		if fl := cmd.Flags().Lookup(key); fl != nil {
			if err := viper.BindPFlag(key, fl); err != nil {
				return settings{}, err
			}
		}
	}
	return settings{
		Preprocessor:  viper.GetString("preprocessor"),
		Compiler:      viper.GetString("compiler"),
		Source:        viper.GetString("source"),
		Target:        viper.GetString("target"),
		Libraries:     viper.GetString("libraries"),
		CoreLibrary:   viper.GetString("core-library"),
		HostClassPath: viper.GetString("host-classpath"),
		BuildDir:      viper.GetString("build-dir"),
		Rules:         viper.GetString("rules"),
		Locale:        viper.GetString("locale"),
		PrintCommands: viper.GetBool("print-commands"),
	}, nil
}

func (s settings) classifier() (*classify.Classifier, error) {
	if s.Rules == "" {
		return classify.Default(), nil
	}
	tables, err := classify.LoadTables(s.Rules)
	if err != nil {
		return nil, err
	}
	return classify.New(tables), nil
}

func (s settings) coreLibrary() *library.Library {
	if s.CoreLibrary == "" {
		return nil
	}
	jars := filepath.SplitList(s.CoreLibrary)
	return &library.Library{Name: "core", Dir: filepath.Dir(jars[0]), Jars: jars}
}

func (s settings) buildDir(sketch string) string {
	if s.BuildDir != "" {
		return s.BuildDir
	}
	return filepath.Join(os.TempDir(), "sketchc", sketch)
}
