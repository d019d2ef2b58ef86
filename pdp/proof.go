package pdp

import (
	"crypto/hmac"
	"encoding/hex"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/klauspost/compress/zstd"
	"golang.org/x/crypto/sha3"

	"github.com/certivault/pdp-engine/pkg/errors"
	"github.com/certivault/pdp-engine/pkg/utils"
)

var jsonCodec = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	zstdEncoder, _ = zstd.NewWriter(nil)
	zstdDecoder, _ = zstd.NewReader(nil)
)

// Proof is the immutable artifact of one generation round. Challenges and
// responses are ordered 1:1; MerkleRoot covers the whole file independently
// of the challenge set. Once composed a Proof is never mutated.
type Proof struct {
	Challenges []Challenge `json:"challenges"`
	Responses  [][]byte    `json:"responses"`
	MerkleRoot []byte      `json:"merkle_root"`
	Timestamp  time.Time   `json:"timestamp"`
}

// ChallengeResponse computes the keyed digest proving possession of a single
// sampled block: HMAC-SHA3-256 with the challenge nonce as key over the raw
// block bytes. Distinct nonces yield distinct responses even for identical
// blocks.
func ChallengeResponse(nonce, block []byte) []byte {
	mac := hmac.New(sha3.New256, nonce)
	mac.Write(block)
	return mac.Sum(nil)
}

// canonical returns the canonical serialization of the proof: JSON with
// struct-order fields and base64 byte slices. Bit-identical proof fields
// always serialize to identical bytes, which makes Hash reproducible.
func (p Proof) canonical() ([]byte, error) {
	raw, err := jsonCodec.Marshal(p)
	if err != nil {
		return nil, errors.Errorf("marshal proof: %w", err)
	}
	return raw, nil
}

// Hash returns the hex-encoded BLAKE3-256 digest of the proof's canonical
// serialization. It is a pure function of the proof's own fields.
func (p Proof) Hash() (string, error) {
	raw, err := p.canonical()
	if err != nil {
		return "", err
	}
	sum, err := utils.Blake3Hash(raw)
	if err != nil {
		return "", errors.Errorf("hash proof: %w", err)
	}
	return hex.EncodeToString(sum), nil
}

// EncodeProofPayload returns the zstd-compressed canonical serialization of
// the proof, suitable for embedding in verification-record metadata.
func EncodeProofPayload(p Proof) ([]byte, error) {
	raw, err := p.canonical()
	if err != nil {
		return nil, err
	}
	return zstdEncoder.EncodeAll(raw, nil), nil
}

// DecodeProofPayload reverses EncodeProofPayload.
func DecodeProofPayload(payload []byte) (Proof, error) {
	raw, err := zstdDecoder.DecodeAll(payload, nil)
	if err != nil {
		return Proof{}, errors.Errorf("decompress proof payload: %w", err)
	}
	var p Proof
	if err := jsonCodec.Unmarshal(raw, &p); err != nil {
		return Proof{}, errors.Errorf("unmarshal proof payload: %w", err)
	}
	return p, nil
}
