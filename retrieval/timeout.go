package retrieval

import (
	"context"
	"time"

	"github.com/certivault/pdp-engine/pdp"
)

// TimeoutRetriever bounds every retrieval with a caller-supplied budget.
// The engine treats an expired deadline like a storage integrity failure,
// so wrapping the retriever is all a deployment needs to fail closed on a
// stalled storage layer.
type TimeoutRetriever struct {
	next    pdp.Retriever
	timeout time.Duration
}

var _ pdp.Retriever = (*TimeoutRetriever)(nil)

// NewTimeoutRetriever applies timeout to each Retrieve call. A zero or
// negative timeout disables the bound.
func NewTimeoutRetriever(next pdp.Retriever, timeout time.Duration) *TimeoutRetriever {
	return &TimeoutRetriever{next: next, timeout: timeout}
}

func (t *TimeoutRetriever) Retrieve(ctx context.Context, contentID string) (pdp.RetrievedFile, error) {
	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}
	return t.next.Retrieve(ctx, contentID)
}
