package pdp

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"lukechampine.com/blake3"
)

func randomBytes(t *testing.T, n int) []byte {
	t.Helper()
	buf := make([]byte, n)
	_, err := rand.Read(buf)
	require.NoError(t, err)
	return buf
}

func TestCalculateMerkleRootDeterministic(t *testing.T) {
	t.Parallel()

	payload := randomBytes(t, 10*BlockSize+123)
	first := CalculateMerkleRoot(payload)
	second := CalculateMerkleRoot(payload)
	assert.Equal(t, first, second, "identical bytes must yield identical roots")
	assert.Len(t, first, 32)
}

func TestCalculateMerkleRootEmptyFile(t *testing.T) {
	t.Parallel()

	want := blake3.Sum256(nil)
	assert.Equal(t, want[:], CalculateMerkleRoot(nil), "zero-block file root must be hash(empty input)")
	assert.Equal(t, want[:], CalculateMerkleRoot([]byte{}))
}

func TestCalculateMerkleRootSingleBlock(t *testing.T) {
	t.Parallel()

	payload := randomBytes(t, 100)
	want := blake3.Sum256(payload)
	assert.Equal(t, want[:], CalculateMerkleRoot(payload), "single leaf is its own root")
}

// Three blocks (1024, 1024, 452): level 1 combines leaf0+leaf1 and pairs
// leaf2 with itself; root = H(node01 || node22).
func TestCalculateMerkleRootOddLeafDuplication(t *testing.T) {
	t.Parallel()

	payload := randomBytes(t, 2500)

	leaf0 := blake3.Sum256(payload[0:1024])
	leaf1 := blake3.Sum256(payload[1024:2048])
	leaf2 := blake3.Sum256(payload[2048:2500])
	require.Len(t, payload[2048:2500], 452)

	node01 := blake3.Sum256(append(append([]byte{}, leaf0[:]...), leaf1[:]...))
	node22 := blake3.Sum256(append(append([]byte{}, leaf2[:]...), leaf2[:]...))
	want := blake3.Sum256(append(append([]byte{}, node01[:]...), node22[:]...))

	assert.Equal(t, want[:], CalculateMerkleRoot(payload))
}

func TestCalculateMerkleRootEvenLeaves(t *testing.T) {
	t.Parallel()

	payload := randomBytes(t, 4*BlockSize)

	leaves := make([][]byte, 4)
	for i := 0; i < 4; i++ {
		sum := blake3.Sum256(payload[i*BlockSize : (i+1)*BlockSize])
		leaves[i] = sum[:]
	}
	node01 := hashChildren(leaves[0], leaves[1])
	node23 := hashChildren(leaves[2], leaves[3])
	want := hashChildren(node01, node23)

	assert.Equal(t, want, CalculateMerkleRoot(payload))
}

func TestCalculateMerkleRootContentSensitivity(t *testing.T) {
	t.Parallel()

	payload := randomBytes(t, 5*BlockSize)
	root := CalculateMerkleRoot(payload)

	mutated := append([]byte{}, payload...)
	mutated[len(mutated)-1] ^= 0x01
	assert.False(t, bytes.Equal(root, CalculateMerkleRoot(mutated)), "a single flipped bit must change the root")
}
