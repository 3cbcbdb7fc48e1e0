package sqlite

import (
	"errors"
	"testing"

	"github.com/wayfarer-app/wayfarer/pkg/types"
)

func openTestBackend(t *testing.T) *Backend {
	t.Helper()
	b, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { b.Close() })
	if err := b.ExecuteSchema(`CREATE TABLE IF NOT EXISTS trips (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		destination TEXT NOT NULL,
		budget REAL DEFAULT 0
	)`); err != nil {
		t.Fatalf("ExecuteSchema failed: %v", err)
	}
	return b
}

func TestWriteAndQueryOne(t *testing.T) {
	b := openTestBackend(t)

	err := b.ExecuteWrite(
		"INSERT INTO trips (id, user_id, destination, budget) VALUES (?, ?, ?, ?)",
		[]any{"t1", "u1", "Paris", 1200.50})
	if err != nil {
		t.Fatalf("ExecuteWrite failed: %v", err)
	}

	row, err := b.QueryOne("SELECT * FROM trips WHERE id = ?", []any{"t1"})
	if err != nil {
		t.Fatalf("QueryOne failed: %v", err)
	}
	if row == nil {
		t.Fatal("expected a row, got nil")
	}
	if got := types.StringField(row, "destination"); got != "Paris" {
		t.Errorf("destination = %q, want Paris", got)
	}
	if got := types.FloatField(row, "budget"); got != 1200.50 {
		t.Errorf("budget = %v, want 1200.50", got)
	}
}

func TestQueryOneNoMatchReturnsNil(t *testing.T) {
	b := openTestBackend(t)

	row, err := b.QueryOne("SELECT * FROM trips WHERE id = ?", []any{"missing"})
	if err != nil {
		t.Fatalf("QueryOne failed: %v", err)
	}
	if row != nil {
		t.Errorf("expected nil row, got %v", row)
	}
}

func TestQueryAllEmptyIsNotError(t *testing.T) {
	b := openTestBackend(t)

	rows, err := b.QueryAll("SELECT * FROM trips WHERE user_id = ?", []any{"nobody"})
	if err != nil {
		t.Fatalf("QueryAll failed: %v", err)
	}
	if rows == nil || len(rows) != 0 {
		t.Errorf("expected empty slice, got %v", rows)
	}
}

func TestQueryAllOrdering(t *testing.T) {
	b := openTestBackend(t)

	for _, trip := range [][]any{
		{"t1", "u1", "Oslo", 300.0},
		{"t2", "u1", "Rome", 900.0},
		{"t3", "u1", "Lima", 600.0},
	} {
		if err := b.ExecuteWrite(
			"INSERT INTO trips (id, user_id, destination, budget) VALUES (?, ?, ?, ?)", trip); err != nil {
			t.Fatalf("insert failed: %v", err)
		}
	}

	rows, err := b.QueryAll(
		"SELECT * FROM trips WHERE user_id = ? ORDER BY budget DESC", []any{"u1"})
	if err != nil {
		t.Fatalf("QueryAll failed: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	want := []string{"Rome", "Lima", "Oslo"}
	for i, w := range want {
		if got := types.StringField(rows[i], "destination"); got != w {
			t.Errorf("row %d destination = %q, want %q", i, got, w)
		}
	}
}

func TestUniqueViolationMapsToErrConstraint(t *testing.T) {
	b := openTestBackend(t)

	insert := "INSERT INTO trips (id, user_id, destination) VALUES (?, ?, ?)"
	if err := b.ExecuteWrite(insert, []any{"t1", "u1", "Kyoto"}); err != nil {
		t.Fatalf("first insert failed: %v", err)
	}
	err := b.ExecuteWrite(insert, []any{"t1", "u2", "Hanoi"})
	if !errors.Is(err, types.ErrConstraint) {
		t.Errorf("duplicate pk error = %v, want ErrConstraint", err)
	}
}

func TestOperationsAfterClose(t *testing.T) {
	b, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := b.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	// Idempotent.
	if err := b.Close(); err != nil {
		t.Fatalf("second Close failed: %v", err)
	}

	if err := b.ExecuteWrite("DELETE FROM trips", nil); !errors.Is(err, types.ErrStoreClosed) {
		t.Errorf("ExecuteWrite after close = %v, want ErrStoreClosed", err)
	}
	if _, err := b.QueryAll("SELECT 1", nil); !errors.Is(err, types.ErrStoreClosed) {
		t.Errorf("QueryAll after close = %v, want ErrStoreClosed", err)
	}
}

func TestDataSurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	b, err := Open(dir)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := b.ExecuteSchema("CREATE TABLE IF NOT EXISTS trips (id TEXT PRIMARY KEY, destination TEXT)"); err != nil {
		t.Fatalf("schema failed: %v", err)
	}
	if err := b.ExecuteWrite("INSERT INTO trips (id, destination) VALUES (?, ?)", []any{"t1", "Porto"}); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if err := b.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	b2, err := Open(dir)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer b2.Close()
	row, err := b2.QueryOne("SELECT * FROM trips WHERE id = ?", []any{"t1"})
	if err != nil {
		t.Fatalf("QueryOne failed: %v", err)
	}
	if row == nil || types.StringField(row, "destination") != "Porto" {
		t.Errorf("reopened row = %v, want destination Porto", row)
	}
}
