package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/certivault/pdp-engine/pkg/logtrace"
)

// historyCmd prints a document's verification log, newest first.
var historyCmd = &cobra.Command{
	Use:   "history <document-id>",
	Short: "Show the verification history of a document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		eng, err := buildEngine(cfg)
		if err != nil {
			return err
		}
		defer eng.Close()

		ctx := logtrace.CtxWithCorrelationID(context.Background(), "")
		records, err := eng.service.VerificationHistory(ctx, args[0])
		if err != nil {
			return err
		}

		if len(records) == 0 {
			fmt.Println("no records")
			return nil
		}
		for _, rec := range records {
			outcome := "failed"
			if rec.VerificationResult {
				outcome = "ok"
			}
			fmt.Printf("%s  %-10s  %-6s  %s", rec.CreatedAt.Format("2006-01-02T15:04:05Z07:00"), rec.ProofType, outcome, rec.ProofHash)
			if rec.Metadata.Reason != "" {
				fmt.Printf("  (%s)", rec.Metadata.Reason)
			}
			fmt.Println()
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
}
