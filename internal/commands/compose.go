package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/amruth-sn/anvil/internal/composition"
	"github.com/amruth-sn/anvil/internal/config"
	"github.com/amruth-sn/anvil/internal/generator"
	"github.com/amruth-sn/anvil/internal/output"
	"github.com/amruth-sn/anvil/internal/render"
)

// ComposeCmd creates the 'compose' command: compose a template with
// selected services and write the rendered project.
func ComposeCmd() *cobra.Command {
	var (
		serviceFlags []string
		varFlags     []string
		featureFlags []string
		combination  string
		outputDir    string
		dryRun       bool
		force        bool
	)

	cmd := &cobra.Command{
		Use:   "compose [template-name]",
		Short: "Compose a template with selected services",
		Long: `Composes a base template with service selections and renders the
result into the output directory.

Examples:
  anvil compose saas-starter --service auth=clerk --service database=neon \
    --var project_name=myapp --output myapp
  anvil compose saas-starter --combination indie-stack --output myapp --dry-run`,
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			templateName := args[0]

			engine := composition.New(templatesRoot(), sharedRoot())
			engine.SetWarnFunc(func(format string, a ...any) {
				output.Verbose(fmt.Sprintf(format, a...))
			})

			selections, err := buildSelections(templateName, serviceFlags, combination)
			if err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}

			output.Verbose(fmt.Sprintf("Composing template %q with %d service(s)", templateName, len(selections)))
			composed, err := engine.ComposeTemplate(templateName, selections)
			if err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}

			ctx := render.NewContext()
			for _, pair := range varFlags {
				name, value, ok := strings.Cut(pair, "=")
				if !ok {
					output.Error(fmt.Sprintf("invalid --var %q, expected name=value", pair))
					os.Exit(1)
				}
				ctx.AddVariable(name, coerceValue(value))
			}
			for _, feature := range featureFlags {
				ctx.AddFeature(feature)
			}
			if err := ctx.Validate(composed.Manifest); err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}

			processed, err := render.NewEngine().ProcessComposedTemplate(composed, ctx)
			if err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}

			ops := generator.Plan(processed, outputDir)
			execOpts := generator.ExecuteOptions{DryRun: dryRun, Force: force}
			if err := generator.Execute(context.Background(), ops, execOpts); err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}

			if dryRun {
				output.Info(fmt.Sprintf("Dry run: %d file(s) would be written to %s", len(ops), outputDir))
				return
			}
			output.Success(fmt.Sprintf("Composed template %q into %s (%d files)", templateName, outputDir, len(ops)))
		},
	}

	cmd.Flags().StringArrayVar(&serviceFlags, "service", nil, "Service selection as category=provider (repeatable)")
	cmd.Flags().StringArrayVar(&varFlags, "var", nil, "Template variable as name=value (repeatable)")
	cmd.Flags().StringArrayVar(&featureFlags, "feature", nil, "Enable a template feature (repeatable)")
	cmd.Flags().StringVar(&combination, "combination", "", "Use a named service combination from the template")
	cmd.Flags().StringVarP(&outputDir, "output", "o", ".", "Output directory")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be written without writing")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing files")

	return cmd
}

// buildSelections turns --service flags, or a named combination, into
// service selections. A combination and explicit selections are mutually
// exclusive.
func buildSelections(templateName string, serviceFlags []string, combination string) ([]composition.ServiceSelection, error) {
	if combination != "" {
		if len(serviceFlags) > 0 {
			return nil, fmt.Errorf("--combination and --service are mutually exclusive")
		}
		manifestPath := filepath.Join(templatesRoot(), templateName, config.ManifestFilename)
		manifest, err := config.ParseTemplateManifest(manifestPath)
		if err != nil {
			return nil, err
		}
		return composition.SelectionsForCombination(manifest, combination)
	}

	var selections []composition.ServiceSelection
	for _, pair := range serviceFlags {
		categoryStr, provider, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --service %q, expected category=provider", pair)
		}
		category, err := config.ParseCategory(categoryStr)
		if err != nil {
			return nil, err
		}
		if provider == composition.NoneProvider {
			continue
		}
		selections = append(selections, composition.ServiceSelection{
			Category: category,
			Provider: provider,
		})
	}
	return selections, nil
}

// coerceValue maps flag strings onto variable types: bool and integer
// literals convert, everything else stays a string.
func coerceValue(s string) any {
	if s == "true" {
		return true
	}
	if s == "false" {
		return false
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	return s
}
