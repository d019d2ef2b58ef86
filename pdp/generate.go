package pdp

import (
	"context"
	"encoding/hex"
	"time"

	"github.com/google/uuid"

	"github.com/certivault/pdp-engine/pkg/logtrace"
)

// ProofSummary is what GenerateProof hands back to callers: enough to
// reference and later verify the proof without exposing the challenge set.
type ProofSummary struct {
	ProofHash      string
	MerkleRoot     string
	ChallengeCount int
	BlockCount     int
	Timestamp      time.Time
}

// GenerateProof runs one full possession-proof round for a document.
// 1- Retrieve the file bytes and the storage layer's integrity flag
// 2- Generate the random challenge batch
// 3- Compute one keyed response per challenge over the sampled block
// 4- Compute the Merkle root over the complete payload
// 5- Compose the immutable Proof and derive its content-derived hash
// 6- Append a successful verification record carrying the proof artifacts
//
// Any failure at steps 1-5 appends a failed record with an empty proof hash
// and returns a typed error; no partially-built proof is ever persisted as
// successful. A failure at step 6 is a PersistenceError: the outcome exists
// in memory but durability failed.
func (s *Service) GenerateProof(ctx context.Context, documentID, contentID string, challengeCount int) (*ProofSummary, error) {
	if challengeCount <= 0 {
		challengeCount = DefaultChallengeCount
	}

	fields := logtrace.Fields{
		logtrace.FieldMethod:         "GenerateProof",
		logtrace.FieldDocumentID:     documentID,
		logtrace.FieldContentID:      contentID,
		logtrace.FieldChallengeCount: challengeCount,
	}
	logtrace.Info(ctx, "proof generation started", fields)

	/* 1. Retrieve file bytes + integrity flag ------------------------------------ */
	file, err := s.retriever.Retrieve(ctx, contentID)
	if err != nil {
		// A timeout or transport failure is indistinguishable from missing
		// data for possession purposes: fail closed.
		ierr := &StorageIntegrityError{DocumentID: documentID, ContentID: contentID, Cause: err}
		s.recordFailure(ctx, documentID, ProofTypePDP, ierr.Error())
		return nil, ierr
	}
	if !file.Verified {
		ierr := &StorageIntegrityError{DocumentID: documentID, ContentID: contentID}
		s.recordFailure(ctx, documentID, ProofTypePDP, "retrieval layer reported failed integrity")
		return nil, ierr
	}
	fields[logtrace.FieldFileSize] = len(file.Bytes)
	logtrace.Debug(ctx, "file retrieved", fields)

	/* 2. Generate challenges ------------------------------------------------------ */
	challenges, err := GenerateChallenges(challengeCount)
	if err != nil {
		gerr := &ProofGenerationError{DocumentID: documentID, Message: "generate challenges", Cause: err}
		s.recordFailure(ctx, documentID, ProofTypePDP, gerr.Error())
		return nil, gerr
	}

	/* 3. Keyed response per sampled block ----------------------------------------- */
	responses := make([][]byte, len(challenges))
	for i, c := range challenges {
		responses[i] = ChallengeResponse(c.Nonce, SampleBlock(file.Bytes, c.BlockIndex))
	}

	/* 4. Merkle root over the complete payload ------------------------------------ */
	root := CalculateMerkleRoot(file.Bytes)
	fields[logtrace.FieldMerkleRoot] = hex.EncodeToString(root)

	/* 5. Compose the proof and derive its hash ------------------------------------ */
	proof := Proof{
		Challenges: challenges,
		Responses:  responses,
		MerkleRoot: root,
		Timestamp:  time.Now().UTC(),
	}
	proofHash, err := proof.Hash()
	if err != nil {
		gerr := &ProofGenerationError{DocumentID: documentID, Message: "hash proof", Cause: err}
		s.recordFailure(ctx, documentID, ProofTypePDP, gerr.Error())
		return nil, gerr
	}
	payload, err := EncodeProofPayload(proof)
	if err != nil {
		gerr := &ProofGenerationError{DocumentID: documentID, Message: "encode proof payload", Cause: err}
		s.recordFailure(ctx, documentID, ProofTypePDP, gerr.Error())
		return nil, gerr
	}
	fields[logtrace.FieldProofHash] = proofHash

	/* 6. Append the successful record ---------------------------------------------- */
	rec := VerificationRecord{
		RecordID:           uuid.NewString(),
		DocumentID:         documentID,
		ProofType:          ProofTypePDP,
		ProofHash:          proofHash,
		VerificationResult: true,
		Metadata: RecordMetadata{
			MerkleRoot:     hex.EncodeToString(root),
			ChallengeCount: len(challenges),
			BlockCount:     blockCount(len(file.Bytes)),
			FileSize:       len(file.Bytes),
			ProofPayload:   payload,
		},
		CreatedAt: proof.Timestamp,
	}
	if err := s.records.AppendRecord(ctx, rec); err != nil {
		return nil, &PersistenceError{DocumentID: documentID, Op: "append record", Cause: err}
	}

	logtrace.Info(ctx, "proof generated", fields)
	return &ProofSummary{
		ProofHash:      proofHash,
		MerkleRoot:     hex.EncodeToString(root),
		ChallengeCount: len(challenges),
		BlockCount:     blockCount(len(file.Bytes)),
		Timestamp:      proof.Timestamp,
	}, nil
}

// recordFailure appends a failed verification record with an empty proof
// hash. A failure here must not mask the original error, so it is logged
// and the caller still returns the typed error that triggered it.
func (s *Service) recordFailure(ctx context.Context, documentID string, proofType ProofType, reason string) {
	rec := VerificationRecord{
		RecordID:           uuid.NewString(),
		DocumentID:         documentID,
		ProofType:          proofType,
		ProofHash:          "",
		VerificationResult: false,
		Metadata:           RecordMetadata{Reason: reason},
		CreatedAt:          time.Now().UTC(),
	}
	if err := s.records.AppendRecord(ctx, rec); err != nil {
		logtrace.Error(ctx, "failed to persist failure record", logtrace.Fields{
			logtrace.FieldDocumentID: documentID,
			logtrace.FieldProofType:  string(proofType),
			logtrace.FieldError:      err.Error(),
		})
	}
}
