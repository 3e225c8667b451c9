package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kestrel-ai/kestrel/internal/config"
)

// validateCmd checks a configuration file and reports every violation.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a configuration file",
	Long: `Validate loads the configuration file, checks every document against
its schema and resolves all pipeline references. All violations found
in the file are reported together.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath()

		cfg, err := config.Load(path)
		if err != nil {
			return err
		}

		providers := len(cfg.LLMs) + len(cfg.Embedders) + len(cfg.Engines) + len(cfg.DocumentStores)
		fmt.Fprintf(cmd.OutOrStdout(), "%s: OK (%d providers, %d pipes)\n", path, providers, len(cfg.Pipes))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
