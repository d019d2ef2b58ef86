package pdp

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateChallengesCount(t *testing.T) {
	t.Parallel()

	for _, count := range []int{1, 5, 10, 100} {
		challenges, err := GenerateChallenges(count)
		require.NoError(t, err)
		assert.Len(t, challenges, count)
	}
}

func TestGenerateChallengesDefaultCount(t *testing.T) {
	t.Parallel()

	for _, count := range []int{0, -3} {
		challenges, err := GenerateChallenges(count)
		require.NoError(t, err)
		assert.Len(t, challenges, DefaultChallengeCount)
	}
}

func TestGenerateChallengesDomains(t *testing.T) {
	t.Parallel()

	challenges, err := GenerateChallenges(200)
	require.NoError(t, err)

	for _, c := range challenges {
		assert.GreaterOrEqual(t, c.BlockIndex, 0)
		assert.Less(t, c.BlockIndex, ChallengeIndexSpan)
		assert.Len(t, c.Nonce, NonceSize)
	}
}

func TestGenerateChallengesNoncesDistinct(t *testing.T) {
	t.Parallel()

	challenges, err := GenerateChallenges(100)
	require.NoError(t, err)

	seen := make(map[string]struct{}, len(challenges))
	for _, c := range challenges {
		key := hex.EncodeToString(c.Nonce)
		_, dup := seen[key]
		assert.False(t, dup, "nonces must be distinct within a batch")
		seen[key] = struct{}{}
	}
}
