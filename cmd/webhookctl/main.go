package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	apiURL string
	output string
)

var rootCmd = &cobra.Command{
	Use:   "webhookctl",
	Short: "Command line client for the webhook event recorder",
	Long:  `webhookctl lists recorded webhook events, replays payloads and probes service health.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&apiURL, "api-url", "a", "http://localhost:8080", "webhook API URL")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "table", "Output format (table, json, yaml)")
}
