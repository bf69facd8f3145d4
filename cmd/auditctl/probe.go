package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lzjever/ledger-audit/internal/api"
)

func probeCmd[T any](use, short, path string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			client := NewClient(apiURL)
			var resp T
			if err := client.Get(path, &resp); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			printResult(resp)
		},
	}
}

func init() {
	rootCmd.AddCommand(
		probeCmd[api.HealthResponse]("health", "Check service liveness", "/health"),
		probeCmd[api.VersionResponse]("version", "Show service version", "/version"),
		probeCmd[api.ReadyResponse]("ready", "Check service readiness", "/ready"),
	)
}
