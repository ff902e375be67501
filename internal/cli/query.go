package cli

import (
	"context"

	"github.com/spf13/cobra"

	"mist/internal/app"
)

type queryOptions struct {
	Catalog       catalogOptions
	Source        string
	InstalledOnly bool
	NameOnly      bool
}

func addQueryFlags(cmd *cobra.Command, opts *queryOptions) {
	addCatalogFlags(cmd, &opts.Catalog)
	cmd.Flags().StringVar(&opts.Source, "source", "", "Only show packages from one source (system|auxiliary)")
	cmd.Flags().BoolVar(&opts.InstalledOnly, "installed", false, "Only show installed packages")
	cmd.Flags().BoolVar(&opts.NameOnly, "name-only", false, "Print package names without details")
}

func newListCommand() *cobra.Command {
	opts := queryOptions{}
	cmd := &cobra.Command{
		Use:   "list [package]...",
		Short: "List packages known to the system and auxiliary catalogs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd.Context(), cmd, opts, args, newAppService().List)
		},
	}
	addQueryFlags(cmd, &opts)
	return cmd
}

func newSearchCommand() *cobra.Command {
	opts := queryOptions{}
	cmd := &cobra.Command{
		Use:   "search <term>...",
		Short: "Search package names and descriptions in both catalogs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd.Context(), cmd, opts, args, newAppService().Search)
		},
	}
	addQueryFlags(cmd, &opts)
	return cmd
}

func runQuery(ctx context.Context, cmd *cobra.Command, opts queryOptions, terms []string, query func(context.Context, app.QueryRequest) (app.QueryResult, error)) error {
	catalog, err := opts.Catalog.request(cmd)
	if err != nil {
		return err
	}
	result, err := query(ctx, app.QueryRequest{
		Catalog:       catalog,
		Terms:         terms,
		Source:        opts.Source,
		InstalledOnly: opts.InstalledOnly,
	})
	if err != nil {
		return err
	}
	printQuery(cmd.OutOrStdout(), result, opts.NameOnly)
	return nil
}
