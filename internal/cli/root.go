// Package cli implements the kestrel command line interface for
// inspecting and linting pipeline configuration files.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "kestrel",
	Short: "Kestrel pipeline configuration tools",
	Long: `Kestrel loads, validates and inspects the multi-document YAML
configuration that wires models, embedders, engines, document stores
and pipelines together.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml, or $KESTREL_CONFIG)")

	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	viper.BindEnv("config", "KESTREL_CONFIG")
	viper.SetDefault("config", "config.yaml")
}

// configPath resolves the config file location: --config flag, then the
// KESTREL_CONFIG environment variable, then ./config.yaml.
func configPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return viper.GetString("config")
}
