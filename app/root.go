// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
)

var (
	configPath string // Path to the configuration directory

	rootCmd = &cobra.Command{
		Use:   "go-oidc-frontend",
		Short: "GoOIDC-Frontend is an OpenID Connect provider front-end",
		Long: `GoOIDC-Frontend serves the browser and API facing endpoints of an
OAuth 2.0 / OpenID Connect authorization server. Protocol processing is
delegated to an external authorization engine, end-users are looked up in a
static list, a database or an LDAP server.`,
		Args:         cobra.OnlyValidArgs,
		SilenceUsage: true,
	}
)

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the configuration directory (default ./etc/)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
