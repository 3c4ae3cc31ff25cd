// Package main provides the entry point for the pmo CLI application.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	rootCmd := &cobra.Command{
		Use:     "pmo",
		Short:   "Entity registry, relationship graph and permission engine",
		Version: version,
	}

	rootCmd.AddCommand(
		newTypesCmd(),
		newInstancesCmd(),
		newLinkCmd(),
		newUnlinkCmd(),
		newGrantCmd(),
		newRevokeCmd(),
		newCheckCmd(),
		newAllowedCmd(),
		newDeleteCmd(),
	)

	return rootCmd.ExecuteContext(ctx)
}
