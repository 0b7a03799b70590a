package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vbonduro/paani/internal/config"
	"github.com/vbonduro/paani/internal/contentstore"
	"github.com/vbonduro/paani/internal/logging"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Write an empty portfolio document if none exists",
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		cfg := config.Load()

		logger, cleanup := logging.New(cfg.LogLevel, cfg.LogFile, cfg.LogMaxSizeMB)
		defer cleanup()

		b, err := openBackends(cfg, logger)
		if err != nil {
			return err
		}
		defer func() {
			if err := b.Close(); err != nil {
				logger.Error("failed to close store", "error", err)
			}
		}()

		written, err := contentstore.Seed(cmd.Context(), b.content, force)
		if err != nil {
			return err
		}
		if written {
			fmt.Fprintln(cmd.OutOrStdout(), "seeded empty portfolio")
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "portfolio already present; use --force to overwrite")
		}
		return nil
	},
}

func init() {
	seedCmd.Flags().Bool("force", false, "overwrite an existing document")
}
