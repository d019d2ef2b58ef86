package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/certivault/pdp-engine/pkg/logtrace"
)

// verifyCmd re-checks possession of a document against an earlier proof.
var verifyCmd = &cobra.Command{
	Use:   "verify <document-id> <content-id> <proof-hash>",
	Short: "Verify a previously generated possession proof",
	Args:  cobra.ExactArgs(3),
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
		result, err := eng.service.VerifyProof(ctx, args[0], args[1], args[2])
		if err != nil {
			return err
		}

		if result.Valid {
			fmt.Println("valid")
			return nil
		}
		fmt.Println("invalid")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
