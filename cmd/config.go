package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/FluidXR/questdoctor/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and initialize the configuration file",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("marshal config: %w", err)
		}
		fmt.Printf("# %s\n%s", config.ConfigPath(), data)
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Save(config.DefaultConfig()); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", config.ConfigPath())
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
