package pdp

import (
	"context"
	"encoding/hex"
	"time"

	"github.com/google/uuid"

	"github.com/certivault/pdp-engine/pkg/logtrace"
	"github.com/certivault/pdp-engine/pkg/utils"
)

// VerifyResult is the outcome of one verification round.
type VerifyResult struct {
	Valid     bool
	Timestamp time.Time
}

// VerifyProof re-checks possession of a document's content against a
// previously generated proof.
//
// Individual challenges are never persisted, so verification does NOT
// replay the original sampled-block responses. It re-derives integrity from
// a fresh retrieval: recompute the Merkle root over the fresh bytes and
// compare it against the root recorded at generation time (looked up by
// proofHash), combined with the storage layer's integrity flag. This is
// weaker than true challenge replay.
//
// The outcome is always appended as a PDP_VERIFY record, and the document's
// aggregate status is overwritten to verified/failed accordingly. That
// status update is the one mutable side effect beyond the append-only log.
func (s *Service) VerifyProof(ctx context.Context, documentID, contentID, proofHash string) (*VerifyResult, error) {
	fields := logtrace.Fields{
		logtrace.FieldMethod:     "VerifyProof",
		logtrace.FieldDocumentID: documentID,
		logtrace.FieldContentID:  contentID,
		logtrace.FieldProofHash:  proofHash,
	}
	logtrace.Info(ctx, "proof verification started", fields)

	// Verification must see current storage state, never a cached copy.
	file, err := s.retriever.Retrieve(WithFreshRetrieval(ctx), contentID)
	if err != nil {
		ierr := &StorageIntegrityError{DocumentID: documentID, ContentID: contentID, Cause: err}
		s.recordFailure(ctx, documentID, ProofTypePDPVerify, ierr.Error())
		s.updateStatus(ctx, documentID, DocumentStatusFailed)
		return nil, ierr
	}
	if !file.Verified {
		ierr := &StorageIntegrityError{DocumentID: documentID, ContentID: contentID}
		s.recordFailure(ctx, documentID, ProofTypePDPVerify, "retrieval layer reported failed integrity")
		s.updateStatus(ctx, documentID, DocumentStatusFailed)
		return nil, ierr
	}

	freshRoot := CalculateMerkleRoot(file.Bytes)
	fields[logtrace.FieldMerkleRoot] = hex.EncodeToString(freshRoot)

	generated, found, err := s.records.GenerationRecordByProofHash(ctx, proofHash)
	if err != nil {
		return nil, &PersistenceError{DocumentID: documentID, Op: "lookup proof record", Cause: err}
	}

	valid := false
	reason := ""
	switch {
	case !found:
		reason = "no generation record for proof hash"
	case !wellFormedRoot(generated.Metadata.MerkleRoot):
		reason = "generation record carries a malformed merkle root"
	case generated.Metadata.MerkleRoot != hex.EncodeToString(freshRoot):
		reason = "merkle root diverged from generation time"
	default:
		valid = true
	}

	now := time.Now().UTC()
	rec := VerificationRecord{
		RecordID:           uuid.NewString(),
		DocumentID:         documentID,
		ProofType:          ProofTypePDPVerify,
		ProofHash:          proofHash,
		VerificationResult: valid,
		Metadata: RecordMetadata{
			MerkleRoot: hex.EncodeToString(freshRoot),
			BlockCount: blockCount(len(file.Bytes)),
			FileSize:   len(file.Bytes),
			Reason:     reason,
		},
		CreatedAt: now,
	}
	if err := s.records.AppendRecord(ctx, rec); err != nil {
		return nil, &PersistenceError{DocumentID: documentID, Op: "append record", Cause: err}
	}

	status := DocumentStatusVerified
	if !valid {
		status = DocumentStatusFailed
	}
	if err := s.records.UpdateDocumentStatus(ctx, documentID, status); err != nil {
		return nil, &PersistenceError{DocumentID: documentID, Op: "update status", Cause: err}
	}

	fields[logtrace.FieldStatus] = string(status)
	if reason != "" {
		fields["reason"] = reason
	}
	logtrace.Info(ctx, "proof verification finished", fields)

	return &VerifyResult{Valid: valid, Timestamp: now}, nil
}

// wellFormedRoot reports whether a recorded root is a hex digest of the
// expected size. A truncated or corrupted record must fail the round, not
// slip past the comparison.
func wellFormedRoot(rootHex string) bool {
	raw, err := hex.DecodeString(rootHex)
	return err == nil && len(raw) == utils.DigestSize
}

// updateStatus is best-effort on failure paths where a typed error is
// already being returned; a status write failure is logged, not masked.
func (s *Service) updateStatus(ctx context.Context, documentID string, status DocumentStatus) {
	if err := s.records.UpdateDocumentStatus(ctx, documentID, status); err != nil {
		logtrace.Error(ctx, "failed to update document status", logtrace.Fields{
			logtrace.FieldDocumentID: documentID,
			logtrace.FieldStatus:     string(status),
			logtrace.FieldError:      err.Error(),
		})
	}
}
