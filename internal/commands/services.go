package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/amruth-sn/anvil/internal/composition"
	"github.com/amruth-sn/anvil/internal/config"
	"github.com/amruth-sn/anvil/internal/output"
)

// ServicesCmd creates the 'services' command: list available service
// providers per category.
func ServicesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "services [category]",
		Short: "List available service providers",
		Long: `Lists the providers discovered under the shared services directory.
With no argument, every category is listed.

Example:
  anvil services auth`,
		Args: cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			engine := composition.New(templatesRoot(), sharedRoot())

			if len(args) == 1 {
				category, err := config.ParseCategory(args[0])
				if err != nil {
					output.Error(err.Error())
					os.Exit(1)
				}
				providers, err := engine.DiscoverProviders(category)
				if err != nil {
					output.Error(err.Error())
					os.Exit(1)
				}
				output.Info(fmt.Sprintf("%s: %s", category, strings.Join(providers, ", ")))
				return
			}

			all, err := engine.DiscoverAll()
			if err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}
			for _, category := range config.Categories() {
				output.Info(fmt.Sprintf("%s: %s", category, strings.Join(all[category], ", ")))
			}
		},
	}

	return cmd
}
