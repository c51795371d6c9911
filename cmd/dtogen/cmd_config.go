package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/strogmv/dtogen/internal/config"
)

func newConfigCmd(a *app) *cobra.Command {
	var envHelp bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the resolved configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if envHelp {
				fmt.Fprintln(cmd.OutOrStdout(), config.EnvHelp())
				return nil
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(a.cfg)
		},
	}

	cmd.Flags().BoolVar(&envHelp, "env", false, "describe the environment variables instead")

	return cmd
}
