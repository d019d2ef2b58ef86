package pdp

import (
	"crypto/rand"
	"encoding/binary"

	"github.com/certivault/pdp-engine/pkg/errors"
)

const (
	// DefaultChallengeCount is used when a caller does not specify how many
	// blocks to probe in a proof round.
	DefaultChallengeCount = 10

	// ChallengeIndexSpan bounds the block-index domain challenges are drawn
	// from. Indexes past the end of a file are remapped by the sampler, so
	// the span does not need to match any particular file size.
	ChallengeIndexSpan = 1000

	// NonceSize is the length in bytes of every challenge nonce.
	NonceSize = 32
)

// Challenge is a single random probe: a block index to sample and a nonce
// keying that sample's response. Challenges live only for the duration of
// one proof round and are never persisted.
type Challenge struct {
	BlockIndex int    `json:"block_index"`
	Nonce      []byte `json:"nonce"`
}

// GenerateChallenges returns exactly count challenges with block indexes
// uniform in [0, ChallengeIndexSpan) and fresh NonceSize-byte nonces from
// the crypto/rand source. A count <= 0 falls back to DefaultChallengeCount.
func GenerateChallenges(count int) ([]Challenge, error) {
	if count <= 0 {
		count = DefaultChallengeCount
	}

	challenges := make([]Challenge, count)
	for i := range challenges {
		var raw [8]byte
		if _, err := rand.Read(raw[:]); err != nil {
			return nil, errors.Errorf("read random block index: %w", err)
		}
		nonce := make([]byte, NonceSize)
		if _, err := rand.Read(nonce); err != nil {
			return nil, errors.Errorf("read random nonce: %w", err)
		}
		challenges[i] = Challenge{
			BlockIndex: int(binary.BigEndian.Uint64(raw[:]) % ChallengeIndexSpan),
			Nonce:      nonce,
		}
	}
	return challenges, nil
}
