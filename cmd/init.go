package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/certivault/pdp-engine/config"
)

var initForce bool

// initCmd writes a config file populated with defaults.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(cfgFile); err == nil && !initForce {
			return fmt.Errorf("config file %s already exists, use --force to overwrite", cfgFile)
		}

		if err := config.SaveConfig(config.DefaultConfig(), cfgFile); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", cfgFile)
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing config file")
	rootCmd.AddCommand(initCmd)
}
