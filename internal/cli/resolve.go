package cli

import (
	"context"

	"github.com/spf13/cobra"
)

func newResolveCommand() *cobra.Command {
	opts := planOptions{}
	cmd := &cobra.Command{
		Use:   "resolve <package>...",
		Short: "Resolve packages and print the ordered auxiliary batches",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd.Context(), cmd, opts, args)
		},
	}
	addCatalogFlags(cmd, &opts.Catalog)
	addSelectionFlags(cmd, &opts)
	return cmd
}

func runResolve(ctx context.Context, cmd *cobra.Command, opts planOptions, packages []string) error {
	req, err := opts.request(cmd, packages, "")
	if err != nil {
		return err
	}
	result, err := newAppService().Plan(ctx, req)
	if err != nil {
		return err
	}
	printResolution(cmd.OutOrStdout(), result)
	return nil
}
