package main

import (
	"fmt"

	"github.com/singnet/ipfs-provider-go/pkg/config"
	"github.com/singnet/ipfs-provider-go/pkg/provider"
	"github.com/spf13/cobra"
)

func newProvidersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "providers",
		Short: "List the built-in providers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			defaults := map[string]bool{}
			for _, name := range config.DefaultProviders {
				defaults[name] = true
			}
			out := cmd.OutOrStdout()
			for _, name := range provider.Names() {
				if defaults[name] {
					fmt.Fprintf(out, "%s (default)\n", name)
					continue
				}
				fmt.Fprintln(out, name)
			}
			return nil
		},
	}
}
