package main

import (
	"github.com/spf13/cobra"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

// newRootCmd builds the command tree. Running the binary without a
// subcommand starts the HTTP server.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "childcare",
		Short:        "Childcare-hours benefit calculator",
		Long:         "Computes the eligibility window and the remaining balance of the childcare-hours benefit.",
		SilenceUsage: true,
		RunE:         runServe,
	}
	root.AddCommand(newServeCmd(), newCalcCmd(), newVersionCmd())
	return root
}
