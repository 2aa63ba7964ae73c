package main

import (
	"log/slog"

	"github.com/nstrayer/aisle-list/internal/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP proxy for the mobile app",
		Long: `Runs an HTTP server exposing the scan and verify operations so the
mobile app can use them without embedding an API key.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr == "" {
				addr = viper.GetString("server.addr")
			}
			if addr == "" {
				addr = ":8787"
			}

			verifier, err := newAIVerifier()
			if err != nil {
				return err
			}
			defer verifier.Close()

			srv := server.New(addr, verifier, verifier, slog.Default())
			return srv.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address (default :8787)")
	return cmd
}
