package utils

import (
	"encoding/hex"
	"io"
	"os"

	"lukechampine.com/blake3"
)

// DigestSize is the output size in bytes of every digest produced here.
const DigestSize = 32

// chunkSizeFor returns the hashing chunk size based on total input size.
// Larger payloads get larger chunks to keep the hasher's throughput up
// without holding oversized buffers for small files.
func chunkSizeFor(total int64) int64 {
	if total <= 0 {
		return 512 << 10 // 512 KiB default when total size is unknown
	}
	switch {
	case total <= 4<<20:
		return 512 << 10
	case total <= 32<<20:
		return 1 << 20
	case total <= 2<<30:
		return 2 << 20
	default:
		return 4 << 20
	}
}

// Blake3Hash returns the BLAKE3-256 digest of msg, feeding the hasher in
// size-appropriate chunks.
func Blake3Hash(msg []byte) ([]byte, error) {
	h := blake3.New(DigestSize, nil)
	msgLen := int64(len(msg))
	chunk := chunkSizeFor(msgLen)
	for off := int64(0); off < msgLen; off += chunk {
		end := off + chunk
		if end > msgLen {
			end = msgLen
		}
		if _, err := h.Write(msg[off:end]); err != nil {
			return nil, err
		}
	}
	return h.Sum(nil), nil
}

// Blake3HashReader returns the BLAKE3-256 digest of everything read from r.
func Blake3HashReader(r io.Reader, sizeHint int64) ([]byte, error) {
	buf := make([]byte, chunkSizeFor(sizeHint))
	h := blake3.New(DigestSize, nil)
	for {
		n, rerr := r.Read(buf)
		if n > 0 {
			if _, werr := h.Write(buf[:n]); werr != nil {
				return nil, werr
			}
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return nil, rerr
		}
	}
	return h.Sum(nil), nil
}

// Blake3HashFile returns the BLAKE3-256 digest of a file's contents.
func Blake3HashFile(filePath string) ([]byte, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}
	return Blake3HashReader(f, fi.Size())
}

// GetHashFromBytes returns the hex-encoded BLAKE3-256 digest of msg. If an
// error occurs during hashing, an empty string is returned.
func GetHashFromBytes(msg []byte) string {
	sum, err := Blake3Hash(msg)
	if err != nil {
		return ""
	}
	return hex.EncodeToString(sum)
}

// GetHashFromString returns the BLAKE3-256 digest of a string.
func GetHashFromString(s string) []byte {
	sum := blake3.Sum256([]byte(s))
	return sum[:]
}
