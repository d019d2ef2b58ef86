package pdp

import (
	"lukechampine.com/blake3"
)

// CalculateMerkleRoot builds a binary BLAKE3-256 hash tree over the
// BlockSize partition of fileBytes and returns its root digest.
//
// The file is split into ceil(len/BlockSize) ordered blocks and
// leaf[i] = H(block[i]). Adjacent pairs combine as parent = H(left || right).
// A level with an odd node count pairs its last node with ITSELF; the node
// is duplicated, never dropped. This duplication rule is a wire-compatibility
// requirement shared with the record history already in production; do not
// replace it with a promote-the-odd-node convention. A zero-block file has
// root = H(empty input).
//
// The root is a pure function of file content alone: the same bytes always
// produce the same root regardless of any challenge set used in the round.
func CalculateMerkleRoot(fileBytes []byte) []byte {
	n := blockCount(len(fileBytes))
	if n == 0 {
		sum := blake3.Sum256(nil)
		return sum[:]
	}

	level := make([][]byte, n)
	for i := 0; i < n; i++ {
		start := i * BlockSize
		end := start + BlockSize
		if end > len(fileBytes) {
			end = len(fileBytes)
		}
		sum := blake3.Sum256(fileBytes[start:end])
		level[i] = sum[:]
	}

	for len(level) > 1 {
		next := make([][]byte, 0, (len(level)+1)/2)
		for i := 0; i < len(level); i += 2 {
			left := level[i]
			right := left // odd count: last node pairs with itself
			if i+1 < len(level) {
				right = level[i+1]
			}
			next = append(next, hashChildren(left, right))
		}
		level = next
	}
	return level[0]
}

func hashChildren(left, right []byte) []byte {
	buf := make([]byte, 0, len(left)+len(right))
	buf = append(buf, left...)
	buf = append(buf, right...)
	sum := blake3.Sum256(buf)
	return sum[:]
}
