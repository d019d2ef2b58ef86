package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/certivault/pdp-engine/pdp"
)

type stubEngine struct {
	mu sync.Mutex

	history map[string][]pdp.VerificationRecord

	generated []string
	verified  []string

	historyErr error
	block      chan struct{}
}

func newStubEngine() *stubEngine {
	return &stubEngine{history: make(map[string][]pdp.VerificationRecord)}
}

func (e *stubEngine) GenerateProof(_ context.Context, documentID, _ string, _ int) (*pdp.ProofSummary, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.generated = append(e.generated, documentID)
	return &pdp.ProofSummary{ProofHash: "hash-" + documentID}, nil
}

func (e *stubEngine) VerifyProof(_ context.Context, documentID, _, proofHash string) (*pdp.VerifyResult, error) {
	if e.block != nil {
		<-e.block
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.verified = append(e.verified, documentID+":"+proofHash)
	return &pdp.VerifyResult{Valid: true, Timestamp: time.Now()}, nil
}

func (e *stubEngine) VerificationHistory(_ context.Context, documentID string) ([]pdp.VerificationRecord, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.historyErr != nil {
		return nil, e.historyErr
	}
	return e.history[documentID], nil
}

func TestRunOnceGeneratesFirstProof(t *testing.T) {
	engine := newStubEngine()
	s := New(engine, Config{Interval: time.Hour, MaxConcurrent: 2})
	s.Watch(Document{DocumentID: "doc-1", ContentID: "content-1"})

	s.RunOnce(context.Background())

	assert.Equal(t, []string{"doc-1"}, engine.generated)
	assert.Empty(t, engine.verified)
}

func TestRunOnceVerifiesAgainstLatestGeneration(t *testing.T) {
	engine := newStubEngine()
	engine.history["doc-1"] = []pdp.VerificationRecord{
		// Newest-first: a failed verify round, then the generation to use.
		{ProofType: pdp.ProofTypePDPVerify, ProofHash: "hash-new", VerificationResult: false},
		{ProofType: pdp.ProofTypePDP, ProofHash: "hash-gen", VerificationResult: true},
		{ProofType: pdp.ProofTypePDP, ProofHash: "hash-old", VerificationResult: true},
	}

	s := New(engine, Config{Interval: time.Hour, MaxConcurrent: 2})
	s.Watch(Document{DocumentID: "doc-1", ContentID: "content-1"})

	s.RunOnce(context.Background())

	assert.Empty(t, engine.generated)
	assert.Equal(t, []string{"doc-1:hash-gen"}, engine.verified)
}

func TestRunOnceSkipsFailedGenerations(t *testing.T) {
	engine := newStubEngine()
	engine.history["doc-1"] = []pdp.VerificationRecord{
		{ProofType: pdp.ProofTypePDP, ProofHash: "", VerificationResult: false},
	}

	s := New(engine, Config{Interval: time.Hour, MaxConcurrent: 2})
	s.Watch(Document{DocumentID: "doc-1", ContentID: "content-1"})

	s.RunOnce(context.Background())

	assert.Equal(t, []string{"doc-1"}, engine.generated, "a failed generation does not count as a proof to verify")
}

func TestCooldownSuppressesRepeatRounds(t *testing.T) {
	engine := newStubEngine()
	s := New(engine, Config{Interval: time.Hour, MaxConcurrent: 2, Cooldown: time.Hour})
	s.Watch(Document{DocumentID: "doc-1", ContentID: "content-1"})

	s.RunOnce(context.Background())
	s.RunOnce(context.Background())

	assert.Len(t, engine.generated, 1, "second sweep inside the cooldown must skip the document")
}

func TestUnwatchRemovesDocument(t *testing.T) {
	engine := newStubEngine()
	s := New(engine, Config{Interval: time.Hour, MaxConcurrent: 2})
	s.Watch(Document{DocumentID: "doc-1", ContentID: "content-1"})
	s.Unwatch("doc-1")

	s.RunOnce(context.Background())

	assert.Empty(t, engine.generated)
	assert.Empty(t, engine.verified)
}

func TestInFlightRoundIsNotDuplicated(t *testing.T) {
	engine := newStubEngine()
	engine.history["doc-1"] = []pdp.VerificationRecord{
		{ProofType: pdp.ProofTypePDP, ProofHash: "hash-gen", VerificationResult: true},
	}
	engine.block = make(chan struct{})

	s := New(engine, Config{Interval: time.Hour, MaxConcurrent: 4})
	s.Watch(Document{DocumentID: "doc-1", ContentID: "content-1"})

	done := make(chan struct{})
	go func() {
		s.RunOnce(context.Background())
		close(done)
	}()

	// Wait until the first round holds the advisory guard.
	require.Eventually(t, func() bool {
		return len(s.Tracker().Snapshot()) == 1
	}, 2*time.Second, 5*time.Millisecond)

	// A concurrent sweep must skip the held document entirely.
	s.RunOnce(context.Background())

	close(engine.block)
	<-done

	engine.mu.Lock()
	defer engine.mu.Unlock()
	assert.Len(t, engine.verified, 1, "only one round may touch a document at a time")
}

func TestHistoryErrorSkipsRound(t *testing.T) {
	engine := newStubEngine()
	engine.historyErr = assert.AnError

	s := New(engine, Config{Interval: time.Hour, MaxConcurrent: 1, HistoryRetryBudget: 50 * time.Millisecond})
	s.Watch(Document{DocumentID: "doc-1", ContentID: "content-1"})

	s.RunOnce(context.Background())

	assert.Empty(t, engine.generated, "a document with unreadable history is skipped, not guessed at")
}
