package main

import (
	"fmt"

	"github.com/spf13/cobra"

	httptransport "github.com/strogmv/dtogen/internal/transport/http"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the read-only preview API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = a.cfg.HTTPAddr
			}
			srv := httptransport.NewServer(a.pipeline, a.metrics)
			fmt.Fprintf(cmd.OutOrStdout(), "Serving preview API at http://%s\n", addr)
			return srv.ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "address to listen on (default from DTOGEN_HTTP_ADDR)")

	return cmd
}
