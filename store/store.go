// Package store persists verification records in sqlite. Records are
// append-only; the only mutable projection is the per-document aggregate
// status row, which is overwritten by the latest outcome.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	jsoniter "github.com/json-iterator/go"
	_ "github.com/mattn/go-sqlite3"

	"github.com/certivault/pdp-engine/pdp"
)

var jsonCodec = jsoniter.ConfigCompatibleWithStandardLibrary

const createVerificationRecordTable = `
CREATE TABLE IF NOT EXISTS verification_record (
  record_id TEXT PRIMARY KEY,
  document_id TEXT NOT NULL,
  proof_type TEXT NOT NULL,
  proof_hash TEXT NOT NULL,
  verification_result INTEGER NOT NULL,
  metadata_json TEXT NOT NULL,
  created_at_unix_ns INTEGER NOT NULL
);`

const createVerificationRecordIndexes = `
CREATE INDEX IF NOT EXISTS idx_verification_record_document
  ON verification_record (document_id, created_at_unix_ns DESC);
CREATE INDEX IF NOT EXISTS idx_verification_record_proof_hash
  ON verification_record (proof_hash);`

const createDocumentStatusTable = `
CREATE TABLE IF NOT EXISTS document_status (
  document_id TEXT PRIMARY KEY,
  status TEXT NOT NULL,
  updated_at_unix INTEGER NOT NULL
);`

// Store is a sqlite-backed pdp.RecordStore.
type Store struct {
	db *sqlx.DB
}

var _ pdp.RecordStore = (*Store)(nil)

// NewStore opens (creating if needed) the sqlite database at dbPath.
func NewStore(dbPath string) (*Store, error) {
	db, err := sqlx.Connect("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("cannot open verification sqlite database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		fmt.Sprintf("PRAGMA cache_size=-%d;", DBCacheSizeKiB),
		fmt.Sprintf("PRAGMA busy_timeout=%d;", int64(DBBusyTimeout/time.Millisecond)),
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return nil, fmt.Errorf("cannot set sqlite database parameter: %w", err)
		}
	}

	if _, err := db.Exec(createVerificationRecordTable); err != nil {
		return nil, fmt.Errorf("cannot create verification_record table: %w", err)
	}
	if _, err := db.Exec(createVerificationRecordIndexes); err != nil {
		return nil, fmt.Errorf("cannot create verification_record indexes: %w", err)
	}
	if _, err := db.Exec(createDocumentStatusTable); err != nil {
		return nil, fmt.Errorf("cannot create document_status table: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// AppendRecord inserts one verification record. Records are never updated
// or deleted afterwards; a record_id collision is an error, not an upsert.
func (s *Store) AppendRecord(ctx context.Context, rec pdp.VerificationRecord) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("store not initialized")
	}
	if rec.RecordID == "" {
		return fmt.Errorf("record_id is required")
	}
	if rec.DocumentID == "" {
		return fmt.Errorf("document_id is required")
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	metadataJSON, err := jsonCodec.Marshal(rec.Metadata)
	if err != nil {
		return fmt.Errorf("marshal record metadata: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO verification_record (record_id, document_id, proof_type, proof_hash, verification_result, metadata_json, created_at_unix_ns)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.RecordID,
		rec.DocumentID,
		string(rec.ProofType),
		rec.ProofHash,
		rec.VerificationResult,
		string(metadataJSON),
		rec.CreatedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("insert verification_record: %w", err)
	}
	return nil
}

// UpdateDocumentStatus overwrites the document's aggregate status.
// Last write wins.
func (s *Store) UpdateDocumentStatus(ctx context.Context, documentID string, status pdp.DocumentStatus) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("store not initialized")
	}
	if documentID == "" {
		return fmt.Errorf("document_id is required")
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO document_status (document_id, status, updated_at_unix)
		 VALUES (?, ?, ?)
		 ON CONFLICT(document_id) DO UPDATE SET
		   status=excluded.status,
		   updated_at_unix=excluded.updated_at_unix`,
		documentID,
		string(status),
		time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("upsert document_status: %w", err)
	}
	return nil
}

// DocumentStatus returns the aggregate status projection for a document.
func (s *Store) DocumentStatus(ctx context.Context, documentID string) (pdp.DocumentStatus, bool, error) {
	if s == nil || s.db == nil {
		return "", false, fmt.Errorf("store not initialized")
	}

	var status string
	err := s.db.GetContext(ctx, &status, `SELECT status FROM document_status WHERE document_id = ?`, documentID)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", false, nil
		}
		return "", false, fmt.Errorf("query document_status: %w", err)
	}
	return pdp.DocumentStatus(status), true, nil
}

type recordRow struct {
	RecordID           string `db:"record_id"`
	DocumentID         string `db:"document_id"`
	ProofType          string `db:"proof_type"`
	ProofHash          string `db:"proof_hash"`
	VerificationResult bool   `db:"verification_result"`
	MetadataJSON       string `db:"metadata_json"`
	CreatedAtUnixNs    int64  `db:"created_at_unix_ns"`
}

func (r recordRow) toRecord() (pdp.VerificationRecord, error) {
	var meta pdp.RecordMetadata
	if err := jsonCodec.Unmarshal([]byte(r.MetadataJSON), &meta); err != nil {
		return pdp.VerificationRecord{}, fmt.Errorf("unmarshal record metadata: %w", err)
	}
	return pdp.VerificationRecord{
		RecordID:           r.RecordID,
		DocumentID:         r.DocumentID,
		ProofType:          pdp.ProofType(r.ProofType),
		ProofHash:          r.ProofHash,
		VerificationResult: r.VerificationResult,
		Metadata:           meta,
		CreatedAt:          time.Unix(0, r.CreatedAtUnixNs).UTC(),
	}, nil
}

// GenerationRecordByProofHash returns the newest generation record carrying
// the given proof hash, if any. Verification records share the proof hash
// but carry the recomputed root, so they are excluded here.
func (s *Store) GenerationRecordByProofHash(ctx context.Context, proofHash string) (pdp.VerificationRecord, bool, error) {
	if s == nil || s.db == nil {
		return pdp.VerificationRecord{}, false, fmt.Errorf("store not initialized")
	}
	if proofHash == "" {
		return pdp.VerificationRecord{}, false, nil
	}

	var row recordRow
	err := s.db.GetContext(ctx, &row,
		`SELECT record_id, document_id, proof_type, proof_hash, verification_result, metadata_json, created_at_unix_ns
		 FROM verification_record
		 WHERE proof_hash = ? AND proof_type = ?
		 ORDER BY created_at_unix_ns DESC, rowid DESC
		 LIMIT 1`, proofHash, string(pdp.ProofTypePDP))
	if err != nil {
		if err == sql.ErrNoRows {
			return pdp.VerificationRecord{}, false, nil
		}
		return pdp.VerificationRecord{}, false, fmt.Errorf("query verification_record by proof hash: %w", err)
	}

	rec, err := row.toRecord()
	if err != nil {
		return pdp.VerificationRecord{}, false, err
	}
	return rec, true, nil
}

// History returns a document's verification records ordered newest-first.
func (s *Store) History(ctx context.Context, documentID string) ([]pdp.VerificationRecord, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("store not initialized")
	}

	var rows []recordRow
	err := s.db.SelectContext(ctx, &rows,
		`SELECT record_id, document_id, proof_type, proof_hash, verification_result, metadata_json, created_at_unix_ns
		 FROM verification_record
		 WHERE document_id = ?
		 ORDER BY created_at_unix_ns DESC, rowid DESC`, documentID)
	if err != nil {
		return nil, fmt.Errorf("query verification_record history: %w", err)
	}

	records := make([]pdp.VerificationRecord, 0, len(rows))
	for _, row := range rows {
		rec, err := row.toRecord()
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}
