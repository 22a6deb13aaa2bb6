package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/lzjever/webhook-events/internal/grpchealth"
)

var (
	grpcAddr      string
	healthService string
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check service health over gRPC",
	Run: func(cmd *cobra.Command, args []string) {
		client, err := grpchealth.NewClient(grpcAddr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer client.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		status, err := client.Check(ctx, healthService)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(status)
		if status != "SERVING" {
			os.Exit(2)
		}
	},
}

func init() {
	healthCmd.Flags().StringVar(&grpcAddr, "grpc-addr", "localhost:9091", "gRPC health address")
	healthCmd.Flags().StringVar(&healthService, "service", grpchealth.ServiceName, "Service name to check")
	rootCmd.AddCommand(healthCmd)
}
