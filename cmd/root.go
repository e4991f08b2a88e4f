// Package cmd implements CLI commands using cobra framework.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configFile string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ledwall",
	Short: "ledwall - Networked frame receiver for tiled LED displays",
	Long: `Ledwall feeds externally rendered RGB frames into a tiled LED display
(a grid of square HUB75 panels forming one logical surface) over the network.

Two ingestion paths are supported:
  - udp: frames arrive as chunked datagrams and are reassembled, tolerating
    loss, reordering and duplication without retransmission
  - tcp: frames arrive as a raw unframed byte stream, one connection at a time`,
	Version: "0.1.0",
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "/etc/ledwall/config.yml",
		"config file path")
}

// exitWithError prints error message and exits with code 1
func exitWithError(msg string, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", msg)
	}
	os.Exit(1)
}
