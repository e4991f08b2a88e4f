package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"firestige.xyz/ledwall/internal/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a configuration file",
	Long: `Validate a configuration file without starting the receiver and print
the effective configuration (defaults applied) as YAML.

Examples:
  ledwall validate -c config.yml`,
	Run: func(cmd *cobra.Command, args []string) {
		runValidate()
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate() {
	cfg, err := config.Load(configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "INVALID: %v\n", err)
		os.Exit(1)
	}

	out, err := yaml.Marshal(map[string]*config.GlobalConfig{"ledwall": cfg})
	if err != nil {
		exitWithError("failed to render effective config", err)
	}

	fmt.Printf("VALID: %s — %dx%d surface, %s ingest\n",
		configFile,
		cfg.Display.Width(),
		cfg.Display.Height(),
		cfg.Ingest.Mode,
	)
	fmt.Print(string(out))
}
