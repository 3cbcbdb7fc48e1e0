package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wayfarer-app/wayfarer/internal/kv"
	"github.com/wayfarer-app/wayfarer/pkg/types"
)

func newTestQueue(t *testing.T, dir string) *Queue {
	t.Helper()
	store, err := kv.Open(dir)
	require.NoError(t, err)
	return New(store)
}

func tripOp(city string) types.QueuedOperation {
	return types.QueuedOperation{
		Operation:  types.OpCreate,
		EntityType: types.EntityTrip,
		Data:       types.Record{"destination": city},
	}
}

func TestEnqueueAssignsIDAndTimestamp(t *testing.T) {
	q := newTestQueue(t, t.TempDir())

	id, err := q.Enqueue(tripOp("Lisbon"))
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	ops, err := q.DrainAll()
	require.NoError(t, err)
	require.Len(t, ops, 1)
	assert.Equal(t, id, ops[0].ID)
	assert.NotZero(t, ops[0].Timestamp)
}

func TestEnqueueRejectsInvalidOperation(t *testing.T) {
	q := newTestQueue(t, t.TempDir())

	_, err := q.Enqueue(types.QueuedOperation{Operation: "merge", EntityType: types.EntityTrip})
	assert.ErrorIs(t, err, types.ErrUnknownOperation)

	_, err = q.Enqueue(types.QueuedOperation{Operation: types.OpCreate, EntityType: "hotel"})
	assert.ErrorIs(t, err, types.ErrUnknownEntity)

	size, err := q.Size()
	require.NoError(t, err)
	assert.Zero(t, size)
}

func TestQueueSurvivesRestart(t *testing.T) {
	dir := t.TempDir()

	q := newTestQueue(t, dir)
	id, err := q.Enqueue(tripOp("Kyoto"))
	require.NoError(t, err)

	// Fresh queue over the same directory simulates a process restart.
	q2 := newTestQueue(t, dir)
	ops, err := q2.DrainAll()
	require.NoError(t, err)
	require.Len(t, ops, 1)
	assert.Equal(t, id, ops[0].ID)
	assert.Equal(t, types.OpCreate, ops[0].Operation)
	assert.Equal(t, "Kyoto", types.StringField(ops[0].Data, "destination"))
}

func TestDequeuePreservesOrder(t *testing.T) {
	q := newTestQueue(t, t.TempDir())

	first, err := q.Enqueue(tripOp("Oslo"))
	require.NoError(t, err)
	second, err := q.Enqueue(tripOp("Porto"))
	require.NoError(t, err)
	third, err := q.Enqueue(tripOp("Hanoi"))
	require.NoError(t, err)

	require.NoError(t, q.Dequeue(second))

	ops, err := q.DrainAll()
	require.NoError(t, err)
	require.Len(t, ops, 2)
	assert.Equal(t, first, ops[0].ID)
	assert.Equal(t, third, ops[1].ID)

	// Unknown ids are a no-op.
	require.NoError(t, q.Dequeue("missing"))
	size, err := q.Size()
	require.NoError(t, err)
	assert.Equal(t, 2, size)
}

func TestClear(t *testing.T) {
	dir := t.TempDir()
	q := newTestQueue(t, dir)

	_, err := q.Enqueue(tripOp("Quito"))
	require.NoError(t, err)
	_, err = q.Enqueue(tripOp("Lima"))
	require.NoError(t, err)

	require.NoError(t, q.Clear())

	size, err := q.Size()
	require.NoError(t, err)
	assert.Zero(t, size)

	// Clear is durable.
	q2 := newTestQueue(t, dir)
	size, err = q2.Size()
	require.NoError(t, err)
	assert.Zero(t, size)
}

func TestDrainAllReturnsSnapshot(t *testing.T) {
	q := newTestQueue(t, t.TempDir())

	_, err := q.Enqueue(tripOp("Bergen"))
	require.NoError(t, err)

	ops, err := q.DrainAll()
	require.NoError(t, err)
	require.Len(t, ops, 1)

	// Mutating the snapshot must not touch the queue.
	ops[0].ID = "tampered"
	fresh, err := q.DrainAll()
	require.NoError(t, err)
	assert.NotEqual(t, "tampered", fresh[0].ID)
}
