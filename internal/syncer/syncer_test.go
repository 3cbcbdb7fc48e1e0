package syncer

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wayfarer-app/wayfarer/internal/kv"
	"github.com/wayfarer-app/wayfarer/internal/queue"
	"github.com/wayfarer-app/wayfarer/internal/store"
	"github.com/wayfarer-app/wayfarer/internal/travel"
	"github.com/wayfarer-app/wayfarer/pkg/types"
)

func newTestEngine(t *testing.T, backend string) (*Engine, types.Store) {
	t.Helper()
	s, err := store.Open(types.Config{Backend: backend, DataDir: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	kvStore, err := kv.Open(t.TempDir())
	require.NoError(t, err)
	return New(s, queue.New(kvStore)), s
}

func tripCreateOp(id, userID, destination string) types.QueuedOperation {
	return types.QueuedOperation{
		Operation:  types.OpCreate,
		EntityType: types.EntityTrip,
		Data: types.Record{
			"id":          id,
			"user_id":     userID,
			"destination": destination,
			"start_date":  "2026-09-01",
			"end_date":    "2026-09-10",
			"description": "",
		},
	}
}

func seedUser(t *testing.T, s types.Store, id string) {
	t.Helper()
	hash, err := travel.HashPassword("secret")
	require.NoError(t, err)
	require.NoError(t, travel.CreateUser(s, id, id+"@example.com", "Traveler", hash))
}

func TestSyncAllPendingReplaysInOrder(t *testing.T) {
	for _, backend := range []string{types.BackendSQLite, types.BackendDocstore} {
		t.Run(backend, func(t *testing.T) {
			e, s := newTestEngine(t, backend)
			seedUser(t, s, "u1")

			_, err := e.queue.Enqueue(tripCreateOp("t1", "u1", "Lisbon"))
			require.NoError(t, err)
			_, err = e.queue.Enqueue(tripCreateOp("t2", "u1", "Kyoto"))
			require.NoError(t, err)

			res, err := e.SyncAllPending()
			require.NoError(t, err)
			assert.Equal(t, Result{Success: true, Synced: 2, Failed: 0}, res)

			for _, id := range []string{"t1", "t2"} {
				trip, err := travel.GetTrip(s, id)
				require.NoError(t, err)
				assert.Equal(t, "u1", trip.UserID)
			}

			size, err := e.QueueSize()
			require.NoError(t, err)
			assert.Zero(t, size)
		})
	}
}

func TestSyncAllPendingKeepsFailedOperationQueued(t *testing.T) {
	e, s := newTestEngine(t, types.BackendDocstore)
	seedUser(t, s, "u1")

	ids := make([]string, 3)
	for i, dest := range []string{"Oslo", "Porto", "Hanoi"} {
		id, err := e.queue.Enqueue(tripCreateOp("t"+dest, "u1", dest))
		require.NoError(t, err)
		ids[i] = id
	}

	realApply := e.apply
	e.apply = func(op types.QueuedOperation) error {
		if op.ID == ids[1] {
			return errors.New("simulated apply failure")
		}
		return realApply(op)
	}

	res, err := e.SyncAllPending()
	require.NoError(t, err)
	assert.Equal(t, Result{Success: false, Synced: 2, Failed: 1}, res)

	remaining, err := e.queue.DrainAll()
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, ids[1], remaining[0].ID)

	// The surviving operation replays on the next pass.
	e.apply = realApply
	res, err = e.SyncAllPending()
	require.NoError(t, err)
	assert.Equal(t, Result{Success: true, Synced: 1, Failed: 0}, res)
}

func TestSyncAllPendingSingleFlight(t *testing.T) {
	e, s := newTestEngine(t, types.BackendDocstore)
	seedUser(t, s, "u1")

	_, err := e.queue.Enqueue(tripCreateOp("t1", "u1", "Lisbon"))
	require.NoError(t, err)

	release := make(chan struct{})
	started := make(chan struct{})
	realApply := e.apply
	e.apply = func(op types.QueuedOperation) error {
		close(started)
		<-release
		return realApply(op)
	}

	var wg sync.WaitGroup
	wg.Add(1)
	var firstRes Result
	go func() {
		defer wg.Done()
		firstRes, _ = e.SyncAllPending()
	}()

	<-started
	assert.True(t, e.InProgress())
	second, err := e.SyncAllPending()
	require.NoError(t, err)
	assert.Equal(t, Result{}, second)

	close(release)
	wg.Wait()
	assert.Equal(t, Result{Success: true, Synced: 1, Failed: 0}, firstRes)
	assert.False(t, e.InProgress())
}

func TestSyncAllPendingReplaysUpdatesAndDeletes(t *testing.T) {
	e, s := newTestEngine(t, types.BackendDocstore)
	seedUser(t, s, "u1")
	require.NoError(t, travel.CreateTrip(s, "t1", "u1", "Lisbon", "2026-09-01", "2026-09-10", ""))
	require.NoError(t, travel.CreateTrip(s, "t2", "u1", "Oslo", "2026-10-01", "2026-10-05", ""))

	_, err := e.queue.Enqueue(types.QueuedOperation{
		Operation:  types.OpUpdate,
		EntityType: types.EntityTrip,
		Data:       types.Record{"id": "t1", "destination": "Porto"},
	})
	require.NoError(t, err)
	_, err = e.queue.Enqueue(types.QueuedOperation{
		Operation:  types.OpDelete,
		EntityType: types.EntityTrip,
		Data:       types.Record{"id": "t2"},
	})
	require.NoError(t, err)

	res, err := e.SyncAllPending()
	require.NoError(t, err)
	assert.True(t, res.Success)

	trip, err := travel.GetTrip(s, "t1")
	require.NoError(t, err)
	assert.Equal(t, "Porto", trip.Destination)
	assert.Equal(t, "2026-09-01", trip.StartDate)

	_, err = travel.GetTrip(s, "t2")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestSyncAllPendingReplaysAllEntityTypes(t *testing.T) {
	e, s := newTestEngine(t, types.BackendSQLite)
	seedUser(t, s, "u1")
	require.NoError(t, travel.CreateTrip(s, "t1", "u1", "Lisbon", "2026-09-01", "2026-09-10", ""))

	enqueue := func(op types.QueuedOperation) {
		t.Helper()
		_, err := e.queue.Enqueue(op)
		require.NoError(t, err)
	}
	enqueue(types.QueuedOperation{
		Operation:  types.OpCreate,
		EntityType: types.EntityExpense,
		Data: types.Record{
			"id": "e1", "trip_id": "t1", "user_id": "u1",
			"title": "Dinner", "amount": 42.5, "category": "food",
			"description": "", "split_among": `["u1"]`,
		},
	})
	enqueue(types.QueuedOperation{
		Operation:  types.OpCreate,
		EntityType: types.EntityItinerary,
		Data: types.Record{
			"id": "i1", "trip_id": "t1", "day": 2,
			"title": "Castle walk", "description": "", "time": "morning", "location": "Alfama",
		},
	})
	enqueue(types.QueuedOperation{
		Operation:  types.OpCreate,
		EntityType: types.EntityJournal,
		Data: types.Record{
			"id": "j1", "trip_id": "t1", "user_id": "u1",
			"title": "Day one", "content": "Arrived late.", "date": "2026-09-01",
			"photos": `[]`, "location": "Lisbon",
		},
	})
	enqueue(types.QueuedOperation{
		Operation:  types.OpCreate,
		EntityType: types.EntityRecommendation,
		Data: types.Record{
			"id": "r1", "trip_id": "t1", "user_id": "u1",
			"title": "Pastel shop", "description": "", "category": "food",
			"location": "Belem", "rating": 4.5,
		},
	})

	res, err := e.SyncAllPending()
	require.NoError(t, err)
	assert.Equal(t, Result{Success: true, Synced: 4, Failed: 0}, res)

	expenses, err := travel.ListExpensesByTrip(s, "t1")
	require.NoError(t, err)
	require.Len(t, expenses, 1)
	assert.Equal(t, 42.5, expenses[0].Amount)
	assert.Equal(t, []string{"u1"}, expenses[0].SplitAmong)

	items, err := travel.ListItineraryByTrip(s, "t1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Day)

	entries, err := travel.ListJournalByTrip(s, "t1")
	require.NoError(t, err)
	require.Len(t, entries, 1)

	recs, err := travel.ListRecommendationsByTrip(s, "t1")
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, 4.5, recs[0].Rating)
}

func TestSubmitWriteQueuesOnOfflineError(t *testing.T) {
	e, _ := newTestEngine(t, types.BackendDocstore)

	e.apply = func(op types.QueuedOperation) error {
		return errors.New("dial tcp: connection refused")
	}
	queued, err := e.SubmitWrite(tripCreateOp("t1", "u1", "Lisbon"))
	require.NoError(t, err)
	assert.True(t, queued)

	size, err := e.QueueSize()
	require.NoError(t, err)
	assert.Equal(t, 1, size)
}

func TestSubmitWriteSurfacesHardErrors(t *testing.T) {
	e, _ := newTestEngine(t, types.BackendDocstore)

	applyErr := errors.New("title must not be empty")
	e.apply = func(op types.QueuedOperation) error { return applyErr }

	queued, err := e.SubmitWrite(tripCreateOp("t1", "u1", "Lisbon"))
	assert.False(t, queued)
	assert.ErrorIs(t, err, applyErr)

	size, err := e.QueueSize()
	require.NoError(t, err)
	assert.Zero(t, size)
}

func TestIsOffline(t *testing.T) {
	assert.False(t, IsOffline(nil))
	assert.False(t, IsOffline(types.ErrConstraint))
	assert.False(t, IsOffline(types.ErrNotFound))
	assert.True(t, IsOffline(types.ErrBackendUnavailable))
	assert.True(t, IsOffline(errors.New("read tcp 10.0.0.2:443: i/o timeout")))
	assert.True(t, IsOffline(errors.New("sqlite: database is locked")))
	assert.False(t, IsOffline(errors.New("syntax error near SELECT")))
}
