package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Recorded event commands",
}

var describeEvents bool

var eventsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the most recent events",
	Run: func(cmd *cobra.Command, args []string) {
		client := NewClient(apiURL)

		var events []EventRow
		if err := client.Get("/webhook/events", &events); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if describeEvents {
			for _, e := range events {
				fmt.Println(describe(e))
			}
			return
		}
		printResult(events)
	},
}

func init() {
	eventsListCmd.Flags().BoolVar(&describeEvents, "describe", false, "Print one sentence per event")
	eventsCmd.AddCommand(eventsListCmd)
	rootCmd.AddCommand(eventsCmd)
}
