package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"mist/internal/app"
)

func newValidateCommand() *cobra.Command {
	opts := catalogOptions{}
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Load the catalog and check every relation selected for the platform",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidate(cmd.Context(), cmd, opts)
		},
	}
	addCatalogFlags(cmd, &opts)
	return cmd
}

func runValidate(ctx context.Context, cmd *cobra.Command, opts catalogOptions) error {
	catalog, err := opts.request(cmd)
	if err != nil {
		return err
	}
	result, err := newAppService().Validate(ctx, app.ValidateRequest{Catalog: catalog})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "validated %s/%s: %d system, %d auxiliary packages\n",
		result.Platform.Distro, result.Platform.Arch, result.SystemPackages, result.AuxiliaryPackages)
	return nil
}

func resolveString(cmd *cobra.Command, value string, key string, flagName string) string {
	if cmd == nil {
		if value != "" {
			return value
		}
		return viper.GetString(key)
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetString(key)
}

func resolveStrings(cmd *cobra.Command, values []string, key string, flagName string) []string {
	if cmd == nil {
		if len(values) > 0 {
			return values
		}
		return viper.GetStringSlice(key)
	}
	if flagChanged(cmd, flagName) {
		return values
	}
	return viper.GetStringSlice(key)
}

func resolveInt(cmd *cobra.Command, value int, key string, flagName string) int {
	if cmd == nil {
		return value
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetInt(key)
}

func flagChanged(cmd *cobra.Command, name string) bool {
	if cmd == nil || strings.TrimSpace(name) == "" {
		return false
	}
	if flag := cmd.Flags().Lookup(name); flag != nil {
		return flag.Changed
	}
	if flag := cmd.PersistentFlags().Lookup(name); flag != nil {
		return flag.Changed
	}
	return false
}
