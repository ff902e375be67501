package cli

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"mist/internal/app"
	"mist/internal/core"
)

type planOptions struct {
	Catalog        catalogOptions
	RecursionLimit int
	Prefer         string
	SourceRules    []string
	OutputDir      string
}

func newPlanCommand() *cobra.Command {
	opts := planOptions{}
	cmd := &cobra.Command{
		Use:     "plan <package>...",
		Aliases: []string{"install"},
		Short:   "Plan the installation of system and auxiliary packages",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(cmd.Context(), cmd, opts, args)
		},
	}
	addCatalogFlags(cmd, &opts.Catalog)
	addSelectionFlags(cmd, &opts)
	cmd.Flags().StringVar(&opts.OutputDir, "output", "", "Directory to write install-plan.yaml into")
	_ = viper.BindPFlag("output", cmd.Flags().Lookup("output"))
	return cmd
}

func addSelectionFlags(cmd *cobra.Command, opts *planOptions) {
	cmd.Flags().IntVar(&opts.RecursionLimit, "recursion-limit", core.DefaultRecursionLimit, "Maximum auxiliary dependency depth")
	cmd.Flags().StringVar(&opts.Prefer, "prefer", "system", "Source for packages found in both catalogs (system|auxiliary)")
	cmd.Flags().StringSliceVar(&opts.SourceRules, "source-rule", nil, "Source rule origin:pattern (repeatable)")
	_ = viper.BindPFlag("recursion_limit", cmd.Flags().Lookup("recursion-limit"))
	_ = viper.BindPFlag("prefer", cmd.Flags().Lookup("prefer"))
	_ = viper.BindPFlag("source_rules", cmd.Flags().Lookup("source-rule"))
}

func (o planOptions) request(cmd *cobra.Command, packages []string, outputDir string) (app.PlanRequest, error) {
	catalog, err := o.Catalog.request(cmd)
	if err != nil {
		return app.PlanRequest{}, err
	}
	output, err := expandPath(outputDir)
	if err != nil {
		return app.PlanRequest{}, err
	}
	return app.PlanRequest{
		Catalog:        catalog,
		Packages:       packages,
		RecursionLimit: resolveInt(cmd, o.RecursionLimit, "recursion_limit", "recursion-limit"),
		Prefer:         resolveString(cmd, o.Prefer, "prefer", "prefer"),
		SourceRules:    resolveStrings(cmd, o.SourceRules, "source_rules", "source-rule"),
		OutputDir:      output,
	}, nil
}

func runPlan(ctx context.Context, cmd *cobra.Command, opts planOptions, packages []string) error {
	req, err := opts.request(cmd, packages, resolveString(cmd, opts.OutputDir, "output", "output"))
	if err != nil {
		return err
	}
	result, err := newAppService().Plan(ctx, req)
	if err != nil {
		return err
	}
	printPlan(cmd.OutOrStdout(), result)
	return nil
}
