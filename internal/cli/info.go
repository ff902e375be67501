package cli

import (
	"context"

	"github.com/spf13/cobra"

	"mist/internal/app"
)

func newInfoCommand() *cobra.Command {
	opts := catalogOptions{}
	cmd := &cobra.Command{
		Use:   "info <package>",
		Short: "Show catalog records and selected relations of a package",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(cmd.Context(), cmd, opts, args[0])
		},
	}
	addCatalogFlags(cmd, &opts)
	return cmd
}

func runInfo(ctx context.Context, cmd *cobra.Command, opts catalogOptions, name string) error {
	catalog, err := opts.request(cmd)
	if err != nil {
		return err
	}
	result, err := newAppService().Info(ctx, app.InfoRequest{Catalog: catalog, Package: name})
	if err != nil {
		return err
	}
	printInfo(cmd.OutOrStdout(), result)
	return nil
}
