package pdp

import "fmt"

// The engine's failures form a closed set of three variants. The split that
// matters operationally: StorageIntegrityError and ProofGenerationError mean
// "verification ran and failed", PersistenceError means "the outcome was
// computed but could not be made durable". Upstream layers decide on retry
// or user notification from the variant alone.

// StorageIntegrityError reports that the retrieval layer either flagged the
// content as failing its own integrity check or could not deliver the bytes
// at all (a retrieval timeout is treated identically, failing closed). Always
// fatal for the current call and always recorded as a failed record.
type StorageIntegrityError struct {
	DocumentID string
	ContentID  string
	Cause      error
}

func (e *StorageIntegrityError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("storage integrity failure for document %s (content %s): %v", e.DocumentID, e.ContentID, e.Cause)
	}
	return fmt.Sprintf("storage integrity failure for document %s (content %s)", e.DocumentID, e.ContentID)
}

func (e *StorageIntegrityError) Unwrap() error { return e.Cause }

// ProofGenerationError reports an unexpected failure while sampling, hashing
// or assembling a proof. Fatal for the current call.
type ProofGenerationError struct {
	DocumentID string
	Message    string
	Cause      error
}

func (e *ProofGenerationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("proof generation failed for document %s: %s: %v", e.DocumentID, e.Message, e.Cause)
	}
	return fmt.Sprintf("proof generation failed for document %s: %s", e.DocumentID, e.Message)
}

func (e *ProofGenerationError) Unwrap() error { return e.Cause }

// PersistenceError reports that the record store was unavailable. The
// computed outcome still exists in memory; only durability failed. It must
// never be conflated with a genuine verification failure.
type PersistenceError struct {
	DocumentID string
	Op         string
	Cause      error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure (%s) for document %s: %v", e.Op, e.DocumentID, e.Cause)
}

func (e *PersistenceError) Unwrap() error { return e.Cause }
