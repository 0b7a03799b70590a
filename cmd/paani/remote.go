package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vbonduro/paani/internal/client"
	"github.com/vbonduro/paani/internal/pricing"
)

var serverURL string

// exportCmd prints the live document, e.g. to back it up before editing.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print the portfolio document from a running server",
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := client.New(serverURL).GetPortfolio(cmd.Context())
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	},
}

// askCmd sends a question to the FAQ endpoint with the price list as context.
var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask the FAQ assistant a question about pricing",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		catalogue, err := pricing.Load()
		if err != nil {
			return err
		}
		knowledge, err := yaml.Marshal(catalogue)
		if err != nil {
			return fmt.Errorf("failed to encode pricing: %w", err)
		}
		answer, err := client.New(serverURL).Chat(cmd.Context(), args[0], string(knowledge))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), answer)
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{exportCmd, askCmd} {
		c.Flags().StringVar(&serverURL, "server", "http://localhost:8080", "base URL of a running paani server")
	}
}
