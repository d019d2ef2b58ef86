package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/certivault/pdp-engine/pdp"
	"github.com/certivault/pdp-engine/pkg/logtrace"
)

// statusCmd prints host health and, given a document ID, the document's
// aggregate verification status.
var statusCmd = &cobra.Command{
	Use:   "status [document-id]",
	Short: "Show engine health and document status",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx := logtrace.CtxWithCorrelationID(context.Background(), "")

		resp, err := pdp.GetStatus(ctx, nil)
		if err != nil {
			return err
		}
		fmt.Printf("cpu:    %s%% used, %s%% free\n", resp.CPU.Usage, resp.CPU.Remaining)
		fmt.Printf("memory: %d MiB used of %d MiB\n", resp.Memory.Used>>20, resp.Memory.Total>>20)

		if len(args) == 0 {
			return nil
		}

		eng, err := buildEngine(cfg)
		if err != nil {
			return err
		}
		defer eng.Close()

		status, found, err := eng.records.DocumentStatus(ctx, args[0])
		if err != nil {
			return err
		}
		if !found {
			fmt.Printf("%s: no verification rounds yet\n", args[0])
			return nil
		}
		fmt.Printf("%s: %s\n", args[0], status)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
