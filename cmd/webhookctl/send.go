package main

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	sendEvent    string
	sendFile     string
	sendDelivery string
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send a webhook payload to the receiver",
	Long:  `send posts a JSON payload (from --file, or stdin when --file is "-") as a GitHub delivery.`,
	Run: func(cmd *cobra.Command, args []string) {
		body, err := readPayload(sendFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if sendDelivery == "" {
			sendDelivery = uuid.New().String()
		}

		client := NewClient(apiURL)
		var resp map[string]string
		headers := map[string]string{
			"X-GitHub-Event":    sendEvent,
			"X-GitHub-Delivery": sendDelivery,
		}
		if err := client.PostRaw("/webhook/receiver", body, headers, &resp); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Delivery %s: %s\n", sendDelivery, resp["message"])
	},
}

func readPayload(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func init() {
	sendCmd.Flags().StringVarP(&sendEvent, "event", "e", "push", "Event type sent as X-GitHub-Event")
	sendCmd.Flags().StringVarP(&sendFile, "file", "f", "-", "Payload file")
	sendCmd.Flags().StringVar(&sendDelivery, "delivery", "", "Delivery id sent as X-GitHub-Delivery (default: random)")
	rootCmd.AddCommand(sendCmd)
}
