package cmd

import (
	"github.com/spf13/cobra"

	"firestige.xyz/ledwall/internal/config"
	"firestige.xyz/ledwall/internal/daemon"
	"firestige.xyz/ledwall/internal/log"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the frame receiver daemon",
	Long: `
Run the ledwall frame receiver until interrupted.

The receiver binds the configured socket, reassembles or reads incoming
frames, and presents each completed frame on the display canvas. SIGINT or
SIGTERM shuts it down gracefully, clearing the display on exit.

Examples:
  ledwall serve                       # run with the default config path
  ledwall serve -c config.yml         # run with a specific config file
`,
	Run: func(cmd *cobra.Command, args []string) {
		runServe()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe() {
	cfg, err := config.Load(configFile)
	if err != nil {
		exitWithError("failed to load config", err)
	}
	if err := log.Init(cfg.Log); err != nil {
		exitWithError("failed to initialize logging", err)
	}
	d, err := daemon.New(cfg)
	if err != nil {
		exitWithError("failed to initialize receiver", err)
	}
	if err := d.Run(); err != nil {
		exitWithError("receiver failed", err)
	}
}
