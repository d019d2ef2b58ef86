package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/certivault/pdp-engine/pkg/logtrace"
	"github.com/certivault/pdp-engine/scheduler"
)

var watchDocuments []string

// watchCmd runs periodic verification rounds over a set of documents until
// interrupted.
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Continuously verify a set of documents",
	Long: `Watch runs verification rounds on a fixed interval. Each watched
document is given as --document <document-id>=<content-id>. The first round
for a document generates a proof; later rounds verify against it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(watchDocuments) == 0 {
			return fmt.Errorf("at least one --document is required")
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		eng, err := buildEngine(cfg)
		if err != nil {
			return err
		}
		defer eng.Close()

		sched := scheduler.New(eng.service, scheduler.Config{
			Interval:            time.Duration(cfg.Scheduler.IntervalSeconds) * time.Second,
			Cooldown:            time.Duration(cfg.Scheduler.CooldownSeconds) * time.Second,
			MaxConcurrent:       cfg.Scheduler.MaxConcurrent,
			RetrievalsPerSecond: cfg.Scheduler.RetrievalsPerSecond,
		})

		for _, pair := range watchDocuments {
			documentID, contentID, ok := strings.Cut(pair, "=")
			if !ok || documentID == "" || contentID == "" {
				return fmt.Errorf("invalid --document %q, expected <document-id>=<content-id>", pair)
			}
			sched.Watch(scheduler.Document{DocumentID: documentID, ContentID: contentID})
		}

		ctx, cancel := context.WithCancel(logtrace.CtxWithCorrelationID(context.Background(), "pdp-watch"))
		defer cancel()

		done := make(chan error, 1)
		go func() {
			done <- sched.Run(ctx)
		}()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-sigCh:
			logtrace.Info(ctx, "Received signal, shutting down", logtrace.Fields{
				"signal": sig.String(),
			})
			cancel()
			<-done
			return nil
		case err := <-done:
			return err
		}
	},
}

func init() {
	watchCmd.Flags().StringArrayVar(&watchDocuments, "document", nil, "document to watch as <document-id>=<content-id> (repeatable)")
	rootCmd.AddCommand(watchCmd)
}
