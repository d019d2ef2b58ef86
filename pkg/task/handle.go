package task

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/certivault/pdp-engine/pkg/logtrace"
)

// ErrAlreadyRunning is returned when a round is already in flight for the
// same (operation, documentID) pair.
var ErrAlreadyRunning = errors.New("round already in flight for document")

// Handle manages a tracked round with an optional watchdog. It ensures
// Start and End are paired, logs start/end, and auto-ends on timeout so a
// crashed round cannot wedge the guard forever.
type Handle struct {
	tr        Tracker
	operation string
	id        string
	stop      chan struct{}
	once      sync.Once
}

// StartUnique starts tracking a round only if none is in flight for the
// same (operation, documentID) pair. It returns ErrAlreadyRunning when the
// guard is held.
func StartUnique(tr Tracker, ctx context.Context, operation, documentID string, timeout time.Duration) (*Handle, error) {
	if tr == nil || operation == "" || documentID == "" {
		return &Handle{}, nil
	}

	if ts, ok := tr.(interface {
		TryStart(operation, documentID string) bool
	}); ok {
		if !ts.TryStart(operation, documentID) {
			return nil, ErrAlreadyRunning
		}
	} else { // fallback: can't enforce uniqueness with unknown Tracker implementations
		tr.Start(operation, documentID)
	}

	logtrace.Info(ctx, "round: started", logtrace.Fields{"operation": operation, logtrace.FieldDocumentID: documentID})
	h := &Handle{tr: tr, operation: operation, id: documentID, stop: make(chan struct{})}
	if timeout > 0 {
		go func() {
			select {
			case <-time.After(timeout):
				h.endWith(ctx, true)
			case <-h.stop:
			}
		}()
	}
	return h, nil
}

// End stops tracking the round. Safe to call multiple times.
func (h *Handle) End(ctx context.Context) {
	h.endWith(ctx, false)
}

func (h *Handle) endWith(ctx context.Context, expired bool) {
	if h == nil || h.operation == "" || h.id == "" {
		return
	}
	h.once.Do(func() {
		close(h.stop)
		h.tr.End(h.operation, h.id)
		if expired {
			logtrace.Warn(ctx, "round: watchdog expired, force-ended", logtrace.Fields{"operation": h.operation, logtrace.FieldDocumentID: h.id})
			return
		}
		logtrace.Info(ctx, "round: ended", logtrace.Fields{"operation": h.operation, logtrace.FieldDocumentID: h.id})
	})
}
