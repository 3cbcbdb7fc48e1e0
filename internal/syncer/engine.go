// Package syncer replays the offline mutation queue against the store.
// One pass walks the queued operations in order, applies each through the
// travel data layer, and dequeues it on success. Failures stay queued in
// position for the next pass.
package syncer

import (
	"sync/atomic"

	"github.com/wayfarer-app/wayfarer/internal/queue"
	"github.com/wayfarer-app/wayfarer/pkg/types"
)

// Result summarizes one sync pass.
type Result struct {
	Success bool // true when every drained operation applied
	Synced  int
	Failed  int
}

// Engine drives sync passes. At most one pass runs at a time; a pass
// started while another is in flight returns a zero Result immediately.
type Engine struct {
	store   types.Store
	queue   *queue.Queue
	syncing atomic.Bool

	// apply is swappable in tests to inject failures.
	apply func(types.QueuedOperation) error
}

// New returns an Engine over the given store and queue.
func New(s types.Store, q *queue.Queue) *Engine {
	e := &Engine{store: s, queue: q}
	e.apply = e.applyOperation
	return e
}

// SyncAllPending drains a snapshot of the queue taken at the start of the
// pass. Operations enqueued mid-pass wait for the next one. A failed
// operation is counted and left queued; the pass keeps going.
func (e *Engine) SyncAllPending() (Result, error) {
	if !e.syncing.CompareAndSwap(false, true) {
		return Result{}, nil
	}
	defer e.syncing.Store(false)

	ops, err := e.queue.DrainAll()
	if err != nil {
		return Result{}, err
	}

	var res Result
	for _, op := range ops {
		if err := e.apply(op); err != nil {
			res.Failed++
			continue
		}
		if err := e.queue.Dequeue(op.ID); err != nil {
			return res, err
		}
		res.Synced++
	}
	res.Success = res.Failed == 0
	return res, nil
}

// InProgress reports whether a pass is currently running.
func (e *Engine) InProgress() bool {
	return e.syncing.Load()
}

// QueueSize returns the number of operations waiting to sync.
func (e *Engine) QueueSize() (int, error) {
	return e.queue.Size()
}

// SubmitWrite applies the operation immediately when the store is
// reachable. When the failure looks like a connectivity problem the
// operation is queued for a later pass instead; the returned bool reports
// whether it was queued.
func (e *Engine) SubmitWrite(op types.QueuedOperation) (bool, error) {
	err := e.apply(op)
	if err == nil {
		return false, nil
	}
	if !IsOffline(err) {
		return false, err
	}
	if _, qerr := e.queue.Enqueue(op); qerr != nil {
		return false, qerr
	}
	return true, nil
}
