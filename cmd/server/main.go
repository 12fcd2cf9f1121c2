package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "qrcode-server",
		Short:        "QR code generator with a Redis-backed result cache",
		SilenceUsage: true,
	}
	serve := newServeCmd()
	root.AddCommand(serve, newRenderCmd())
	// Running without a subcommand serves HTTP.
	root.RunE = serve.RunE
	return root
}
