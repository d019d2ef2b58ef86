// Package scheduler drives periodic re-verification rounds over a set of
// watched documents. All retry, rate-limiting and at-most-one-round-per-
// document discipline lives here; the engine itself stays stateless and
// never retries.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/ratelimit"
	"golang.org/x/sync/errgroup"

	"github.com/certivault/pdp-engine/pdp"
	"github.com/certivault/pdp-engine/pkg/logtrace"
	"github.com/certivault/pdp-engine/pkg/task"
)

const (
	opVerifyRound = "verify-round"

	historyRetryInitialInterval = 200 * time.Millisecond
	historyRetryMaxElapsed      = 15 * time.Second
)

// Engine is the slice of the PDP service the scheduler drives.
type Engine interface {
	GenerateProof(ctx context.Context, documentID, contentID string, challengeCount int) (*pdp.ProofSummary, error)
	VerifyProof(ctx context.Context, documentID, contentID, proofHash string) (*pdp.VerifyResult, error)
	VerificationHistory(ctx context.Context, documentID string) ([]pdp.VerificationRecord, error)
}

// Document is one entry in the watch set.
type Document struct {
	DocumentID string
	ContentID  string
}

// Config tunes the scheduler's pacing.
type Config struct {
	// Interval between re-verification sweeps.
	Interval time.Duration
	// Cooldown suppresses re-processing a document that completed a round
	// recently, so shrinking the watch set or shortening Interval cannot
	// hammer the storage layer.
	Cooldown time.Duration
	// MaxConcurrent bounds in-flight rounds per sweep.
	MaxConcurrent int
	// RetrievalsPerSecond caps how fast rounds may hit the retrieval layer.
	// Zero means unlimited.
	RetrievalsPerSecond int
	// HistoryRetryBudget bounds retries of history reads before a round is
	// skipped. Zero applies the default budget.
	HistoryRetryBudget time.Duration
}

// Scheduler owns the watch set and the orchestration discipline around the
// engine: advisory per-document locks, QPS limits, cooldowns, and retries
// for history reads.
type Scheduler struct {
	engine  Engine
	tracker *task.InMemoryTracker
	limiter ratelimit.Limiter
	recent  *gocache.Cache
	cfg     Config

	mu      sync.RWMutex
	watched map[string]Document
}

// New builds a scheduler around the given engine.
func New(engine Engine, cfg Config) *Scheduler {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Minute
	}
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = 4
	}
	if cfg.HistoryRetryBudget <= 0 {
		cfg.HistoryRetryBudget = historyRetryMaxElapsed
	}
	limiter := ratelimit.NewUnlimited()
	if cfg.RetrievalsPerSecond > 0 {
		limiter = ratelimit.New(cfg.RetrievalsPerSecond)
	}
	return &Scheduler{
		engine:  engine,
		tracker: task.New(),
		limiter: limiter,
		recent:  gocache.New(cfg.Cooldown, 2*cfg.Cooldown),
		cfg:     cfg,
		watched: make(map[string]Document),
	}
}

// Tracker exposes the in-flight round tracker for status reporting.
func (s *Scheduler) Tracker() task.Tracker { return s.tracker }

// Watch adds or replaces a document in the watch set.
func (s *Scheduler) Watch(doc Document) {
	if doc.DocumentID == "" || doc.ContentID == "" {
		return
	}
	s.mu.Lock()
	s.watched[doc.DocumentID] = doc
	s.mu.Unlock()
}

// Unwatch removes a document from the watch set. In-flight rounds finish.
func (s *Scheduler) Unwatch(documentID string) {
	s.mu.Lock()
	delete(s.watched, documentID)
	s.mu.Unlock()
}

func (s *Scheduler) snapshot() []Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	docs := make([]Document, 0, len(s.watched))
	for _, doc := range s.watched {
		docs = append(docs, doc)
	}
	return docs
}

// Run sweeps the watch set every Interval until ctx is canceled.
func (s *Scheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	logtrace.Info(ctx, "scheduler started", logtrace.Fields{
		"interval":       s.cfg.Interval.String(),
		"max_concurrent": s.cfg.MaxConcurrent,
	})
	for {
		select {
		case <-ctx.Done():
			logtrace.Info(ctx, "scheduler stopped", nil)
			return nil
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}

// RunOnce performs a single sweep over the watch set.
func (s *Scheduler) RunOnce(ctx context.Context) {
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(s.cfg.MaxConcurrent)

	for _, doc := range s.snapshot() {
		doc := doc
		if s.cfg.Cooldown > 0 {
			if _, onCooldown := s.recent.Get(doc.DocumentID); onCooldown {
				continue
			}
		}
		group.Go(func() error {
			s.processDocument(ctx, doc)
			return nil
		})
	}
	_ = group.Wait()
}

// processDocument runs one round for a document: the first round generates
// a proof, subsequent rounds verify against the latest generated proof.
// A round already in flight for the document is skipped, not queued.
func (s *Scheduler) processDocument(ctx context.Context, doc Document) {
	handle, err := task.StartUnique(s.tracker, ctx, opVerifyRound, doc.DocumentID, 10*time.Minute)
	if err != nil {
		logtrace.Debug(ctx, "round already in flight, skipping", logtrace.Fields{logtrace.FieldDocumentID: doc.DocumentID})
		return
	}
	defer handle.End(ctx)

	s.limiter.Take()

	proofHash, err := s.latestProofHash(ctx, doc.DocumentID)
	if err != nil {
		logtrace.Warn(ctx, "could not load verification history", logtrace.Fields{
			logtrace.FieldDocumentID: doc.DocumentID,
			logtrace.FieldError:      err.Error(),
		})
		return
	}

	if proofHash == "" {
		if _, err := s.engine.GenerateProof(ctx, doc.DocumentID, doc.ContentID, 0); err != nil {
			logtrace.Warn(ctx, "scheduled proof generation failed", logtrace.Fields{
				logtrace.FieldDocumentID: doc.DocumentID,
				logtrace.FieldError:      err.Error(),
			})
		}
	} else {
		if _, err := s.engine.VerifyProof(ctx, doc.DocumentID, doc.ContentID, proofHash); err != nil {
			logtrace.Warn(ctx, "scheduled verification failed", logtrace.Fields{
				logtrace.FieldDocumentID: doc.DocumentID,
				logtrace.FieldProofHash:  proofHash,
				logtrace.FieldError:      err.Error(),
			})
		}
	}

	if s.cfg.Cooldown > 0 {
		s.recent.SetDefault(doc.DocumentID, time.Now())
	}
}

// latestProofHash returns the proof hash of the newest successful
// generation record, or "" when the document has none yet. History reads
// retry with exponential backoff; the engine's own operations never do.
func (s *Scheduler) latestProofHash(ctx context.Context, documentID string) (string, error) {
	var records []pdp.VerificationRecord

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = historyRetryInitialInterval
	b.MaxElapsedTime = s.cfg.HistoryRetryBudget

	err := backoff.Retry(func() error {
		var herr error
		records, herr = s.engine.VerificationHistory(ctx, documentID)
		return herr
	}, backoff.WithContext(b, ctx))
	if err != nil {
		return "", err
	}

	for _, rec := range records {
		if rec.ProofType == pdp.ProofTypePDP && rec.VerificationResult && rec.ProofHash != "" {
			return rec.ProofHash, nil
		}
	}
	return "", nil
}
