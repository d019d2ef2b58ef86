// Package retrieval provides implementations of the engine's file-retrieval
// collaborator: a content-addressed local store plus caching and timeout
// decorators that compose around any pdp.Retriever.
package retrieval

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/certivault/pdp-engine/pdp"
	"github.com/certivault/pdp-engine/pkg/utils"
)

// LocalStore is a content-addressed file store: content IDs are hex-encoded
// BLAKE3-256 digests and the integrity flag is the result of re-hashing the
// stored bytes on every retrieval.
type LocalStore struct {
	dir string
}

var _ pdp.Retriever = (*LocalStore)(nil)

// NewLocalStore opens (creating if needed) a content store rooted at dir.
func NewLocalStore(dir string) (*LocalStore, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("content store directory is empty")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, errors.Wrap(err, "create content store directory")
	}
	return &LocalStore{dir: dir}, nil
}

// Put stores data under its content ID and returns the ID. Storing the same
// bytes twice is idempotent.
func (s *LocalStore) Put(data []byte) (string, error) {
	contentID := utils.GetHashFromBytes(data)
	if contentID == "" {
		return "", errors.New("hash content")
	}
	path := filepath.Join(s.dir, contentID)
	if _, err := os.Stat(path); err == nil {
		return contentID, nil
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", errors.Wrap(err, "write content file")
	}
	return contentID, nil
}

// Retrieve reads the full payload for contentID and reports whether the
// stored bytes still hash to their content ID.
func (s *LocalStore) Retrieve(ctx context.Context, contentID string) (pdp.RetrievedFile, error) {
	if err := ctx.Err(); err != nil {
		return pdp.RetrievedFile{}, err
	}
	if contentID == "" || contentID != filepath.Base(contentID) {
		return pdp.RetrievedFile{}, errors.Errorf("invalid content id %q", contentID)
	}

	data, err := os.ReadFile(filepath.Join(s.dir, contentID))
	if err != nil {
		return pdp.RetrievedFile{}, errors.Wrapf(err, "read content %s", contentID)
	}
	if err := ctx.Err(); err != nil {
		return pdp.RetrievedFile{}, err
	}

	return pdp.RetrievedFile{
		Bytes:    data,
		Verified: utils.GetHashFromBytes(data) == contentID,
	}, nil
}
