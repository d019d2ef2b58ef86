package pdp

// BlockSize is the fixed sampling and Merkle-leaf granularity in bytes.
// Changing it changes every Merkle root and proof hash, so it is a protocol
// constant, not a tunable.
const BlockSize = 1024

// SampleBlock returns the BlockSize byte range of payload addressed by
// blockIndex. An index past the end of the payload deterministically remaps
// to the final block, so any non-negative index resolves to a valid block.
// The final block of a file may be shorter than BlockSize; an empty payload
// yields an empty block. The returned slice aliases payload and must be
// treated as read-only.
func SampleBlock(payload []byte, blockIndex int) []byte {
	length := len(payload)
	if length == 0 {
		return nil
	}

	start := blockIndex * BlockSize
	if start >= length {
		start = length - BlockSize
		if start < 0 {
			start = 0
		}
	}
	end := start + BlockSize
	if end > length {
		end = length
	}
	return payload[start:end]
}

// blockCount returns ceil(length / BlockSize).
func blockCount(length int) int {
	return (length + BlockSize - 1) / BlockSize
}
