// Package commands wires the Anvil CLI surface: flag parsing, environment
// configuration, and console output around the composition and rendering
// engines.
package commands

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	anvil "github.com/amruth-sn/anvil"
	"github.com/amruth-sn/anvil/internal/output"
)

// RootCmd creates and returns the root command for the Anvil CLI.
func RootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "anvil",
		Short: "Project scaffolding from composable templates",
		Long: `Anvil composes a base project template with pluggable service modules
(auth, database, payments, ...) into a single coherent project tree.

Templates and services declare themselves in anvil.yaml manifests; Anvil
validates the selection, merges overlapping files deterministically, and
renders everything against one unified context.`,
		Version: anvil.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			output.SetVerbose(verbose)
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output for debugging")
	cmd.PersistentFlags().String("templates-root", "", "Base templates directory (default \"templates\")")
	cmd.PersistentFlags().String("shared-root", "", "Shared services directory (default \"templates/shared\")")

	viper.SetEnvPrefix("ANVIL")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	viper.SetDefault("templates_root", "templates")
	viper.SetDefault("shared_root", "templates/shared")
	_ = viper.BindPFlag("templates_root", cmd.PersistentFlags().Lookup("templates-root"))
	_ = viper.BindPFlag("shared_root", cmd.PersistentFlags().Lookup("shared-root"))

	return cmd
}

func templatesRoot() string { return viper.GetString("templates_root") }
func sharedRoot() string    { return viper.GetString("shared_root") }
