// Shared helpers for wayfarer CLI commands.
package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/wayfarer-app/wayfarer/internal/kv"
	"github.com/wayfarer-app/wayfarer/internal/queue"
	"github.com/wayfarer-app/wayfarer/internal/store"
	"github.com/wayfarer-app/wayfarer/internal/syncer"
	"github.com/wayfarer-app/wayfarer/pkg/types"
)

// openStore resolves the data directory and backend, opens the store, and
// bootstraps the schema. The caller must defer Close().
func openStore() (types.Store, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}

	cfg := types.Config{
		Backend: resolveBackend(),
		DataDir: dataDir,
	}

	s, err := store.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return s, nil
}

// openQueue opens the offline mutation queue. Queue state lives in a
// subdirectory of the data directory so the two backends share one queue.
func openQueue() (*queue.Queue, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}

	kvStore, err := kv.Open(filepath.Join(dataDir, "queue"))
	if err != nil {
		return nil, fmt.Errorf("open queue storage: %w", err)
	}
	return queue.New(kvStore), nil
}

// openEngine wires a store and queue into a sync engine. The caller must
// defer Close() on the returned store.
func openEngine() (*syncer.Engine, types.Store, error) {
	s, err := openStore()
	if err != nil {
		return nil, nil, err
	}
	q, err := openQueue()
	if err != nil {
		s.Close()
		return nil, nil, err
	}
	return syncer.New(s, q), s, nil
}

// submitWrite routes a syncable mutation through the sync engine:
// applied directly when the store is reachable, queued for the next
// sync pass when the failure looks like connectivity. The bool reports
// whether the write was queued.
func submitWrite(op types.QueuedOperation) (bool, error) {
	eng, s, err := openEngine()
	if err != nil {
		// The store itself can be unreachable. The queue is plain
		// local files, so the write still has somewhere to land.
		if !syncer.IsOffline(err) {
			return false, err
		}
		q, qerr := openQueue()
		if qerr != nil {
			return false, qerr
		}
		if _, qerr := q.Enqueue(op); qerr != nil {
			return false, qerr
		}
		return true, nil
	}
	defer s.Close()
	return eng.SubmitWrite(op)
}

// newOperation stamps a queued operation for the offline write path.
func newOperation(operation, entity string, data types.Record) types.QueuedOperation {
	return types.QueuedOperation{
		ID:         newID(),
		Operation:  operation,
		EntityType: entity,
		Data:       data,
		Timestamp:  time.Now().UnixMilli(),
	}
}

// queuedNote suffixes write confirmations that were deferred to sync.
func queuedNote(queued bool) string {
	if queued {
		return " (queued for sync)"
	}
	return ""
}

// newID returns a time-ordered unique id, falling back to a random one.
func newID() string {
	if id, err := uuid.NewV7(); err == nil {
		return id.String()
	}
	return uuid.New().String()
}

// printJSON writes the value as indented JSON to stdout.
func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
