package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"mist/internal/app"
)

// catalogOptions are the catalog source flags shared by every command that
// loads a catalog.
type catalogOptions struct {
	Catalogs       []string
	AuxArchive     string
	DpkgStatus     string
	SystemPackages []string
	Distro         string
	Arch           string
}

func addCatalogFlags(cmd *cobra.Command, opts *catalogOptions) {
	cmd.Flags().StringSliceVar(&opts.Catalogs, "catalog", nil, "YAML catalog file(s)")
	cmd.Flags().StringVar(&opts.AuxArchive, "aux-archive", "", "Gzipped JSON auxiliary package archive")
	cmd.Flags().StringVar(&opts.DpkgStatus, "dpkg-status", "", "dpkg status file")
	cmd.Flags().StringSliceVar(&opts.SystemPackages, "system-packages", nil, "Debian Packages index file(s)")
	cmd.Flags().StringVar(&opts.Distro, "distro", "", "Distribution codename (detected when empty)")
	cmd.Flags().StringVar(&opts.Arch, "arch", "", "Debian architecture (detected when empty)")

	_ = viper.BindPFlag("catalog", cmd.Flags().Lookup("catalog"))
	_ = viper.BindPFlag("aux_archive", cmd.Flags().Lookup("aux-archive"))
	_ = viper.BindPFlag("dpkg_status", cmd.Flags().Lookup("dpkg-status"))
	_ = viper.BindPFlag("system_packages", cmd.Flags().Lookup("system-packages"))
	_ = viper.BindPFlag("distro", cmd.Flags().Lookup("distro"))
	_ = viper.BindPFlag("arch", cmd.Flags().Lookup("arch"))
}

func (o catalogOptions) request(cmd *cobra.Command) (app.CatalogRequest, error) {
	catalogs, err := expandPaths(resolveStrings(cmd, o.Catalogs, "catalog", "catalog"))
	if err != nil {
		return app.CatalogRequest{}, err
	}
	archive, err := expandPath(resolveString(cmd, o.AuxArchive, "aux_archive", "aux-archive"))
	if err != nil {
		return app.CatalogRequest{}, err
	}
	status, err := expandPath(resolveString(cmd, o.DpkgStatus, "dpkg_status", "dpkg-status"))
	if err != nil {
		return app.CatalogRequest{}, err
	}
	packages, err := expandPaths(resolveStrings(cmd, o.SystemPackages, "system_packages", "system-packages"))
	if err != nil {
		return app.CatalogRequest{}, err
	}
	return app.CatalogRequest{
		CatalogFiles:   catalogs,
		AuxArchive:     archive,
		DpkgStatus:     status,
		SystemPackages: packages,
		Distro:         resolveString(cmd, o.Distro, "distro", "distro"),
		Arch:           resolveString(cmd, o.Arch, "arch", "arch"),
	}, nil
}

func newAppService() app.Service {
	return app.NewService()
}
