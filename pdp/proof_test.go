package pdp

import (
	"crypto/hmac"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/sha3"
)

func sampleProof(t *testing.T) Proof {
	t.Helper()
	challenges, err := GenerateChallenges(3)
	require.NoError(t, err)

	payload := randomBytes(t, 3*BlockSize)
	responses := make([][]byte, len(challenges))
	for i, c := range challenges {
		responses[i] = ChallengeResponse(c.Nonce, SampleBlock(payload, c.BlockIndex))
	}
	return Proof{
		Challenges: challenges,
		Responses:  responses,
		MerkleRoot: CalculateMerkleRoot(payload),
		Timestamp:  time.Date(2026, 2, 14, 9, 30, 0, 0, time.UTC),
	}
}

func TestChallengeResponse(t *testing.T) {
	t.Parallel()

	nonce := randomBytes(t, NonceSize)
	block := randomBytes(t, BlockSize)

	mac := hmac.New(sha3.New256, nonce)
	mac.Write(block)
	assert.Equal(t, mac.Sum(nil), ChallengeResponse(nonce, block))
}

func TestChallengeResponseDistinctNonces(t *testing.T) {
	t.Parallel()

	// Identical block, different nonces: responses must differ.
	block := randomBytes(t, 100)
	a := ChallengeResponse(randomBytes(t, NonceSize), block)
	b := ChallengeResponse(randomBytes(t, NonceSize), block)
	assert.NotEqual(t, a, b)
}

func TestProofHashReproducible(t *testing.T) {
	t.Parallel()

	proof := sampleProof(t)
	first, err := proof.Hash()
	require.NoError(t, err)
	second, err := proof.Hash()
	require.NoError(t, err)
	assert.Equal(t, first, second, "bit-identical proof fields must hash identically")
	assert.Len(t, first, 64)
}

func TestProofHashSensitivity(t *testing.T) {
	t.Parallel()

	proof := sampleProof(t)
	base, err := proof.Hash()
	require.NoError(t, err)

	shifted := proof
	shifted.Timestamp = proof.Timestamp.Add(time.Second)
	got, err := shifted.Hash()
	require.NoError(t, err)
	assert.NotEqual(t, base, got, "timestamp is part of the canonical serialization")
}

func TestProofPayloadRoundTrip(t *testing.T) {
	t.Parallel()

	proof := sampleProof(t)
	payload, err := EncodeProofPayload(proof)
	require.NoError(t, err)

	decoded, err := DecodeProofPayload(payload)
	require.NoError(t, err)

	assert.Equal(t, proof.MerkleRoot, decoded.MerkleRoot)
	assert.Equal(t, proof.Responses, decoded.Responses)
	require.Len(t, decoded.Challenges, len(proof.Challenges))
	for i := range proof.Challenges {
		assert.Equal(t, proof.Challenges[i].BlockIndex, decoded.Challenges[i].BlockIndex)
		assert.Equal(t, proof.Challenges[i].Nonce, decoded.Challenges[i].Nonce)
	}
	assert.True(t, proof.Timestamp.Equal(decoded.Timestamp))

	// The round-tripped proof must hash to the same value.
	want, err := proof.Hash()
	require.NoError(t, err)
	got, err := decoded.Hash()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
