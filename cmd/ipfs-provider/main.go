// Command ipfs-provider finds a working IPFS node the way an application
// embedding the discovery package would, and reports which provider won.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	return newRootCmd(viper.New()).ExecuteContext(context.Background())
}

func newRootCmd(v *viper.Viper) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ipfs-provider",
		Short: "Locate a working IPFS node",
		Long: `ipfs-provider tries IPFS providers in order and uses the first one
that passes the connectivity test.

Commands:
  ipfs-provider resolve      Run discovery and print the result
  ipfs-provider cat <ref>    Run discovery and print a file from IPFS
  ipfs-provider providers    List the built-in providers`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	f := rootCmd.PersistentFlags()
	f.String("config", "", "config file (default ./ipfs-provider.yaml)")
	f.Bool("debug", false, "enable debug logging")
	f.StringSlice("provider", nil, "providers to try, in order")
	f.String("api", "", "explicit RPC API address (multiaddr or http(s) URL)")
	f.String("default-api", "", "last-resort RPC API address")
	f.String("origin", "", "origin URL the caller is served from")
	f.StringSlice("permission", nil, "commands to request from an injected handle")
	f.String("repo", "", "repository whose api file local-repo reads")
	f.String("embedded-repo", "", "embedded node repository (default: temporary)")
	f.Bool("offline", false, "run the embedded node without networking")
	f.StringSlice("profile", nil, "config profiles for a new embedded repository")
	f.Duration("timeout", 0, "overall discovery timeout")
	f.Duration("connectivity-timeout", 0, "timeout per connectivity test")
	f.Bool("id-test", false, "test RPC clients with the id command instead of reading the empty directory")

	_ = v.BindPFlag("debug", f.Lookup("debug"))
	_ = v.BindPFlag("providers", f.Lookup("provider"))
	_ = v.BindPFlag("api_address", f.Lookup("api"))
	_ = v.BindPFlag("default_api_address", f.Lookup("default-api"))
	_ = v.BindPFlag("origin", f.Lookup("origin"))
	_ = v.BindPFlag("permissions", f.Lookup("permission"))
	_ = v.BindPFlag("repo_path", f.Lookup("repo"))
	_ = v.BindPFlag("embedded.repo_path", f.Lookup("embedded-repo"))
	_ = v.BindPFlag("embedded.offline", f.Lookup("offline"))
	_ = v.BindPFlag("embedded.profiles", f.Lookup("profile"))
	_ = v.BindPFlag("timeouts.resolve", f.Lookup("timeout"))
	_ = v.BindPFlag("timeouts.connectivity_test", f.Lookup("connectivity-timeout"))

	rootCmd.AddCommand(newResolveCmd(v))
	rootCmd.AddCommand(newCatCmd(v))
	rootCmd.AddCommand(newProvidersCmd())

	return rootCmd
}
