package main

import (
	"github.com/singnet/ipfs-provider-go/pkg/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newCatCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "cat <cid|ipfs://cid|/ipfs/path>",
		Short: "Print a file through the discovered IPFS node",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, _, err := resolve(cmd, v)
			if err != nil {
				return err
			}
			defer release(res)

			content, err := storage.ReadFile(cmd.Context(), res.IPFS, args[0])
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(content)
			return err
		},
	}
}
