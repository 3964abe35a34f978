package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"sketchc/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show sketchc build metadata (--format pretty|json)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		out := cmd.OutOrStdout()
		switch format := strings.ToLower(viper.GetString("format")); format {
		case "", "pretty":
			fmt.Fprintln(out, version.Banner())
			return nil
		case "json":
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(version.Current())
		default:
			return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
		}
	},
}
