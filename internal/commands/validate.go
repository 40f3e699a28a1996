package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/amruth-sn/anvil/internal/config"
	"github.com/amruth-sn/anvil/internal/output"
)

// ValidateCmd creates the 'validate' command: check a manifest file
// without composing anything.
func ValidateCmd() *cobra.Command {
	var asService bool

	cmd := &cobra.Command{
		Use:   "validate [manifest-path]",
		Short: "Validate a template or service manifest",
		Long: `Parses and validates an anvil.yaml manifest, reporting every problem
with its field path and line number.

Examples:
  anvil validate templates/saas-starter/anvil.yaml
  anvil validate templates/shared/auth/clerk/anvil.yaml --service`,
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			path := args[0]

			var err error
			if asService {
				_, err = config.ParseServiceManifest(path)
			} else {
				_, err = config.ParseTemplateManifest(path)
			}
			if err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}

			output.Success(fmt.Sprintf("%s is valid", path))
		},
	}

	cmd.Flags().BoolVar(&asService, "service", false, "Validate as a service provider manifest")

	return cmd
}
