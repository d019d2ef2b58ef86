// Package pdp implements the proof-of-data-possession verification engine:
// random block sampling, keyed challenge responses, Merkle-root derivation
// and the generate/verify protocol over an injected retrieval collaborator
// and an append-only verification-record store.
//
// The engine holds no mutable state of its own; every generate/verify call
// is an independent unit of work and many documents may be processed
// concurrently. Callers that need at-most-one round per document add that
// discipline externally (see pkg/task).
package pdp

import (
	"context"
	"time"

	"github.com/certivault/pdp-engine/pkg/errors"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks

// ProofType labels a verification record with the operation that produced it.
type ProofType string

const (
	ProofTypePDP       ProofType = "PDP"
	ProofTypePDPVerify ProofType = "PDP_VERIFY"
)

// DocumentStatus is the aggregate verification status projection of a
// document, overwritten by the outcome of its latest record.
type DocumentStatus string

const (
	DocumentStatusVerified DocumentStatus = "verified"
	DocumentStatusFailed   DocumentStatus = "failed"
)

// RetrievedFile is the retrieval collaborator's answer for a content
// identifier: the fully-materialized bytes plus the storage layer's own
// integrity verdict.
type RetrievedFile struct {
	Bytes    []byte
	Verified bool
}

// Retriever is the injected file-retrieval collaborator. Retrieve must be
// idempotent with no side effects beyond possible caching, and must return
// the complete payload; the engine never mixes partial reads into a proof.
// Caching implementations must honor FreshRetrievalRequested and go back
// to the underlying store when it is set.
type Retriever interface {
	Retrieve(ctx context.Context, contentID string) (RetrievedFile, error)
}

type freshRetrievalKey struct{}

// WithFreshRetrieval marks ctx so that caching retrieval layers drop any
// cached copy and read from the underlying store. Verification rounds set
// it on every retrieval: a verify must observe current storage state, and
// a cached pre-tamper payload would report possession the store no longer
// has.
func WithFreshRetrieval(ctx context.Context) context.Context {
	return context.WithValue(ctx, freshRetrievalKey{}, true)
}

// FreshRetrievalRequested reports whether ctx requires bypassing caches.
func FreshRetrievalRequested(ctx context.Context) bool {
	fresh, _ := ctx.Value(freshRetrievalKey{}).(bool)
	return fresh
}

// RecordMetadata is the structured, JSON-serialized context attached to a
// verification record. ProofPayload carries the zstd-compressed canonical
// proof for successful generations.
type RecordMetadata struct {
	MerkleRoot     string `json:"merkle_root,omitempty"`
	ChallengeCount int    `json:"challenge_count,omitempty"`
	BlockCount     int    `json:"block_count,omitempty"`
	FileSize       int    `json:"file_size,omitempty"`
	Reason         string `json:"reason,omitempty"`
	ProofPayload   []byte `json:"proof_payload,omitempty"`
}

// VerificationRecord is one append-only entry in a document's verification
// history. Records are created once per generate/verify call and never
// mutated afterwards.
type VerificationRecord struct {
	RecordID           string
	DocumentID         string
	ProofType          ProofType
	ProofHash          string
	VerificationResult bool
	Metadata           RecordMetadata
	CreatedAt          time.Time
}

// RecordStore is the injected persistence collaborator. AppendRecord is
// append-only; UpdateDocumentStatus is last-write-wins.
type RecordStore interface {
	AppendRecord(ctx context.Context, rec VerificationRecord) error
	UpdateDocumentStatus(ctx context.Context, documentID string, status DocumentStatus) error
	GenerationRecordByProofHash(ctx context.Context, proofHash string) (VerificationRecord, bool, error)
	History(ctx context.Context, documentID string) ([]VerificationRecord, error)
}

// Service is the PDP engine. It owns no locks and no per-document state;
// the only shared mutable state is behind the RecordStore.
type Service struct {
	retriever Retriever
	records   RecordStore
}

// NewService wires the engine to its collaborators.
func NewService(retriever Retriever, records RecordStore) (*Service, error) {
	if retriever == nil {
		return nil, errors.New("retriever is nil")
	}
	if records == nil {
		return nil, errors.New("record store is nil")
	}
	return &Service{retriever: retriever, records: records}, nil
}

// VerificationHistory returns the document's verification records ordered
// newest-first.
func (s *Service) VerificationHistory(ctx context.Context, documentID string) ([]VerificationRecord, error) {
	records, err := s.records.History(ctx, documentID)
	if err != nil {
		return nil, &PersistenceError{DocumentID: documentID, Op: "history", Cause: err}
	}
	return records, nil
}
