package cli

import (
	"github.com/spf13/cobra"

	"github.com/kestrel-ai/kestrel/internal/config"
)

// showCmd prints the resolved configuration: validated, with defaults
// filled in and environment overrides applied.
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the resolved configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath())
		if err != nil {
			return err
		}

		out, err := cfg.MarshalDocuments()
		if err != nil {
			return err
		}

		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
