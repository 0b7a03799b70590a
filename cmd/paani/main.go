package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "paani",
	Short: "Paani Media portfolio site and content API",
	Long: `paani serves the agency's public site and the JSON content API the admin
editor writes to. Configuration comes from the environment (and .env).`,
	SilenceUsage: true,
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd.AddCommand(serveCmd, seedCmd, exportCmd, askCmd)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
