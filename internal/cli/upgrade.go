package cli

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"mist/internal/app"
	"mist/internal/core"
)

type upgradeOptions struct {
	Catalog        catalogOptions
	RecursionLimit int
	OutputDir      string
	SystemOnly     bool
	AuxiliaryOnly  bool
}

// upgradeFlagAliases accepts the apt/mpr spellings of the source flags.
var upgradeFlagAliases = map[string]string{
	"apt-only": "system-only",
	"mpr-only": "auxiliary-only",
}

func newUpgradeCommand() *cobra.Command {
	opts := upgradeOptions{}
	cmd := &cobra.Command{
		Use:   "upgrade",
		Short: "Plan upgrades of installed system and auxiliary packages",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runUpgrade(cmd.Context(), cmd, opts)
		},
	}
	addCatalogFlags(cmd, &opts.Catalog)
	cmd.Flags().IntVar(&opts.RecursionLimit, "recursion-limit", core.DefaultRecursionLimit, "Maximum auxiliary dependency depth")
	cmd.Flags().StringVar(&opts.OutputDir, "output", "", "Directory to write install-plan.yaml into")
	cmd.Flags().BoolVar(&opts.SystemOnly, "system-only", false, "Only upgrade system packages")
	cmd.Flags().BoolVar(&opts.AuxiliaryOnly, "auxiliary-only", false, "Only upgrade auxiliary packages")
	cmd.MarkFlagsMutuallyExclusive("system-only", "auxiliary-only")
	cmd.Flags().SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		if alias, ok := upgradeFlagAliases[name]; ok {
			name = alias
		}
		return pflag.NormalizedName(name)
	})
	_ = viper.BindPFlag("recursion_limit", cmd.Flags().Lookup("recursion-limit"))
	_ = viper.BindPFlag("output", cmd.Flags().Lookup("output"))
	return cmd
}

func runUpgrade(ctx context.Context, cmd *cobra.Command, opts upgradeOptions) error {
	catalog, err := opts.Catalog.request(cmd)
	if err != nil {
		return err
	}
	output, err := expandPath(resolveString(cmd, opts.OutputDir, "output", "output"))
	if err != nil {
		return err
	}
	result, err := newAppService().Upgrade(ctx, app.UpgradeRequest{
		Catalog:        catalog,
		RecursionLimit: resolveInt(cmd, opts.RecursionLimit, "recursion_limit", "recursion-limit"),
		OutputDir:      output,
		SystemOnly:     opts.SystemOnly,
		AuxiliaryOnly:  opts.AuxiliaryOnly,
	})
	if err != nil {
		return err
	}
	printUpgrades(cmd.OutOrStdout(), result)
	return nil
}
