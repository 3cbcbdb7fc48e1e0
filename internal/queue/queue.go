// Package queue implements the offline mutation queue: an ordered, durable
// list of pending write operations persisted as one JSON blob in the kv
// store and replayed by the sync engine once connectivity returns.
package queue

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/wayfarer-app/wayfarer/internal/kv"
	"github.com/wayfarer-app/wayfarer/pkg/types"
)

// StorageKey is the kv key holding the serialized queue.
const StorageKey = "sync_queue"

// Queue is a FIFO of queued operations. The persisted blob is loaded
// lazily on first use and cached; every mutating call updates the
// in-memory copy and re-persists the whole queue before returning. If the
// persist step fails the in-memory change is rolled back, so memory and
// disk stay consistent.
type Queue struct {
	mu     sync.Mutex
	kv     *kv.Store
	loaded bool
	ops    []types.QueuedOperation
}

// New returns a Queue backed by the given kv store.
func New(store *kv.Store) *Queue {
	return &Queue{kv: store}
}

// Enqueue appends the operation and persists. When op.ID is empty a UUID
// is assigned; a zero timestamp is filled with the current time. Returns
// the operation id.
func (q *Queue) Enqueue(op types.QueuedOperation) (string, error) {
	if err := op.Validate(); err != nil {
		return "", err
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	if err := q.load(); err != nil {
		return "", err
	}

	if op.ID == "" {
		op.ID = newOperationID()
	}
	if op.Timestamp == 0 {
		op.Timestamp = time.Now().UnixMilli()
	}

	q.ops = append(q.ops, op)
	if err := q.persist(); err != nil {
		q.ops = q.ops[:len(q.ops)-1]
		return "", err
	}
	return op.ID, nil
}

// Dequeue removes the operation with the given id and persists. Removing
// an id that is not queued is a no-op.
func (q *Queue) Dequeue(id string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if err := q.load(); err != nil {
		return err
	}

	idx := -1
	for i, op := range q.ops {
		if op.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}

	prev := q.ops
	next := make([]types.QueuedOperation, 0, len(prev)-1)
	next = append(next, prev[:idx]...)
	next = append(next, prev[idx+1:]...)
	q.ops = next
	if err := q.persist(); err != nil {
		q.ops = prev
		return err
	}
	return nil
}

// DrainAll returns a snapshot copy of the queue in enqueue order without
// mutating it.
func (q *Queue) DrainAll() ([]types.QueuedOperation, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if err := q.load(); err != nil {
		return nil, err
	}
	out := make([]types.QueuedOperation, len(q.ops))
	copy(out, q.ops)
	return out, nil
}

// Clear empties the queue and persists.
func (q *Queue) Clear() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if err := q.load(); err != nil {
		return err
	}
	prev := q.ops
	q.ops = nil
	if err := q.persist(); err != nil {
		q.ops = prev
		return err
	}
	return nil
}

// Size returns the number of queued operations. After the first load this
// is an in-memory read.
func (q *Queue) Size() (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if err := q.load(); err != nil {
		return 0, err
	}
	return len(q.ops), nil
}

// load reads the persisted blob once. A corrupt blob is treated as an
// empty queue rather than blocking all future writes.
func (q *Queue) load() error {
	if q.loaded {
		return nil
	}
	b, ok, err := q.kv.Get(StorageKey)
	if err != nil {
		return fmt.Errorf("loading sync queue: %w", err)
	}
	if ok {
		if err := json.Unmarshal(b, &q.ops); err != nil {
			q.ops = nil
		}
	}
	q.loaded = true
	return nil
}

func (q *Queue) persist() error {
	ops := q.ops
	if ops == nil {
		ops = []types.QueuedOperation{}
	}
	b, err := json.Marshal(ops)
	if err != nil {
		return fmt.Errorf("marshaling sync queue: %w", err)
	}
	if err := q.kv.Set(StorageKey, b); err != nil {
		return fmt.Errorf("persisting sync queue: %w", err)
	}
	return nil
}

func newOperationID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
