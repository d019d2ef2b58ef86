package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/certivault/pdp-engine/retrieval"
)

// putCmd adds a file to the content store and prints its content ID.
var putCmd = &cobra.Command{
	Use:   "put <file>",
	Short: "Add a file to the content store",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}

		local, err := retrieval.NewLocalStore(cfg.Retrieval.Dir)
		if err != nil {
			return err
		}

		contentID, err := local.Put(data)
		if err != nil {
			return err
		}
		fmt.Println(contentID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(putCmd)
}
