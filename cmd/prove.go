package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/certivault/pdp-engine/pkg/logtrace"
)

var proveChallenges int

// proveCmd runs one proof generation round for a document.
var proveCmd = &cobra.Command{
	Use:   "prove <document-id> <content-id>",
	Short: "Generate a possession proof for a document",
	Args:  cobra.ExactArgs(2),
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

		count := eng.challenge
		if proveChallenges > 0 {
			count = proveChallenges
		}

		ctx := logtrace.CtxWithCorrelationID(context.Background(), "")
		summary, err := eng.service.GenerateProof(ctx, args[0], args[1], count)
		if err != nil {
			return err
		}

		fmt.Printf("proof_hash:  %s\n", summary.ProofHash)
		fmt.Printf("merkle_root: %s\n", summary.MerkleRoot)
		fmt.Printf("challenges:  %d\n", summary.ChallengeCount)
		fmt.Printf("blocks:      %d\n", summary.BlockCount)
		return nil
	},
}

func init() {
	proveCmd.Flags().IntVar(&proveChallenges, "challenges", 0, "challenges per proof (0 uses the configured count)")
	rootCmd.AddCommand(proveCmd)
}
