package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "secretsanta",
	Short: "Secret santa draw with couple exclusions",
	Long: `secretsanta assigns every participant exactly one other participant to
give a gift to. Declared couples never draw each other and nobody draws
themselves.

  secretsanta serve                 run the HTTP/websocket API
  secretsanta draw --name A ...     one-off draw printed to the terminal`,
	SilenceUsage: true,
}

func main() {
	rootCmd.AddCommand(serveCmd, drawCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
