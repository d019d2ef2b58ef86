package retrieval

import (
	"context"
	"time"

	ristretto "github.com/dgraph-io/ristretto/v2"

	"github.com/certivault/pdp-engine/pdp"
)

const (
	// cacheKeepAlive bounds how long retrieved payloads are served from
	// memory before the next retrieval goes back to the underlying store.
	cacheKeepAlive = 10 * time.Minute

	cacheBufferItems = 64
)

// CachingRetriever wraps a Retriever with a byte-cost-weighted in-memory
// cache. Only payloads the underlying layer reported as verified are
// cached; a failed integrity verdict is always re-checked at the source.
type CachingRetriever struct {
	next  pdp.Retriever
	cache *ristretto.Cache[string, []byte]
}

var _ pdp.Retriever = (*CachingRetriever)(nil)

// NewCachingRetriever caches up to maxBytes of verified payloads in front
// of next.
func NewCachingRetriever(next pdp.Retriever, maxBytes int64) (*CachingRetriever, error) {
	cache, err := ristretto.NewCache(&ristretto.Config[string, []byte]{
		NumCounters: 10_000,
		MaxCost:     maxBytes,
		BufferItems: cacheBufferItems,
	})
	if err != nil {
		return nil, err
	}
	return &CachingRetriever{next: next, cache: cache}, nil
}

// Retrieve serves from cache when possible. Cached entries are verified by
// construction, so the integrity flag is restored as true on hits. A
// fresh-retrieval context drops the cached copy and reads through, so
// verification rounds always see current storage state.
func (c *CachingRetriever) Retrieve(ctx context.Context, contentID string) (pdp.RetrievedFile, error) {
	if pdp.FreshRetrievalRequested(ctx) {
		c.cache.Del(contentID)
	} else if data, ok := c.cache.Get(contentID); ok {
		return pdp.RetrievedFile{Bytes: data, Verified: true}, nil
	}

	file, err := c.next.Retrieve(ctx, contentID)
	if err != nil {
		return pdp.RetrievedFile{}, err
	}
	if file.Verified {
		c.cache.SetWithTTL(contentID, file.Bytes, int64(len(file.Bytes)), cacheKeepAlive)
	}
	return file, nil
}

// Wait blocks until pending cache writes are applied. Test helper.
func (c *CachingRetriever) Wait() {
	c.cache.Wait()
}

// Close releases the cache's internal goroutines.
func (c *CachingRetriever) Close() {
	c.cache.Close()
}
