// Package main provides the entry point for the careers-page builder HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "careers_builder",
	Short: "Careers Page Builder HTTP API Server",
	Long:  "Careers Page Builder lets companies assemble, brand and publish their own careers page, with team collaboration and bulk job import, via REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
