package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/strogmv/dtogen/compiler"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print the dtogen version",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipSetup: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "dtogen %s\n", compiler.Version)
			return nil
		},
	}
}
