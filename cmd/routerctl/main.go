// Command routerctl is the CLI client for a running routerd's
// administrative HTTP API, mirroring cmd/logflow's cobra command tree.
package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	serverAddr string
	httpClient = &http.Client{Timeout: 10 * time.Second}
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "routerctl",
	Short: "Control a running flowgate router over its administrative API",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverAddr, "addr", "http://localhost:8080", "routerd administrative API address")

	rootCmd.AddCommand(routeCmd)
	rootCmd.AddCommand(eventCmd)
	rootCmd.AddCommand(sessionCmd)
}
