package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"mist/internal/app"
)

type catalogExportOptions struct {
	Catalog catalogOptions
	Output  string
}

func newCatalogCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Catalog maintenance commands",
	}
	cmd.AddCommand(newCatalogExportCommand())
	return cmd
}

func newCatalogExportCommand() *cobra.Command {
	opts := catalogExportOptions{}
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Merge all catalog sources into one YAML catalog file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCatalogExport(cmd.Context(), cmd, opts)
		},
	}
	addCatalogFlags(cmd, &opts.Catalog)
	cmd.Flags().StringVar(&opts.Output, "out", "catalog.yaml", "Output catalog file")
	return cmd
}

func runCatalogExport(ctx context.Context, cmd *cobra.Command, opts catalogExportOptions) error {
	catalog, err := opts.Catalog.request(cmd)
	if err != nil {
		return err
	}
	output, err := expandPath(opts.Output)
	if err != nil {
		return err
	}
	result, err := newAppService().ExportCatalog(ctx, app.CatalogExportRequest{Catalog: catalog, Output: output})
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("wrote catalog: %s", result.Output))
	fmt.Fprintf(cmd.OutOrStdout(), "%d system, %d auxiliary packages\n", result.SystemPackages, result.AuxiliaryPackages)
	return nil
}
