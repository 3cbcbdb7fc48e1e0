package integration

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestVersionCommand(t *testing.T) {
	res := mustRunCLI(t, t.TempDir(), t.TempDir(), "version")
	if !strings.Contains(res.Stdout, "wayfarer v") {
		t.Errorf("version output missing binary name: %q", res.Stdout)
	}
	if !strings.Contains(res.Stdout, "github.com/wayfarer-app/wayfarer") {
		t.Errorf("version output missing module path: %q", res.Stdout)
	}
}

func TestInitCreatesConfigAndData(t *testing.T) {
	configDir := t.TempDir()
	dataDir := filepath.Join(t.TempDir(), "db")

	res := mustRunCLI(t, configDir, dataDir, "init")
	if !strings.Contains(res.Stdout, "initialized successfully") {
		t.Errorf("unexpected init output: %q", res.Stdout)
	}

	if _, err := os.Stat(filepath.Join(configDir, "config.yaml")); err != nil {
		t.Errorf("config.yaml not created: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dataDir, "wayfarer.db")); err != nil {
		t.Errorf("sqlite database not created: %v", err)
	}
}

func TestInitDocstoreBackend(t *testing.T) {
	configDir := t.TempDir()
	dataDir := filepath.Join(t.TempDir(), "db")

	mustRunCLI(t, configDir, dataDir, "--backend", "docstore", "init")

	if _, err := os.Stat(filepath.Join(dataDir, "manifest.json")); err != nil {
		t.Errorf("docstore manifest not created: %v", err)
	}
}

// registerUser registers an account and returns its generated id.
func registerUser(t *testing.T, configDir, dataDir, backend, email, name string) string {
	t.Helper()
	mustRunCLI(t, configDir, dataDir, "--backend", backend,
		"user", "register", email, name, "--password", "opensesame")

	res := mustRunCLI(t, configDir, dataDir, "--backend", backend,
		"--json", "user", "get", email)

	var user struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal([]byte(res.Stdout), &user); err != nil {
		t.Fatalf("parse user JSON: %v\noutput: %s", err, res.Stdout)
	}
	if user.ID == "" {
		t.Fatalf("registered user has empty id: %s", res.Stdout)
	}
	return user.ID
}

func TestUserAndTripFlow(t *testing.T) {
	for _, backend := range []string{"sqlite", "docstore"} {
		t.Run(backend, func(t *testing.T) {
			configDir, dataDir := t.TempDir(), t.TempDir()
			mustRunCLI(t, configDir, dataDir, "--backend", backend, "init")

			userID := registerUser(t, configDir, dataDir, backend, "ana@example.com", "Ana")

			// Duplicate email is a user error.
			dup := runCLI(t, configDir, dataDir, "--backend", backend,
				"user", "register", "ana@example.com", "Another Ana", "--password", "pw")
			if dup.ExitCode == 0 {
				t.Error("duplicate registration should fail")
			}

			// Wrong password is rejected, right one accepted.
			bad := runCLI(t, configDir, dataDir, "--backend", backend,
				"user", "login", "ana@example.com", "--password", "wrong")
			if bad.ExitCode == 0 {
				t.Error("login with wrong password should fail")
			}
			mustRunCLI(t, configDir, dataDir, "--backend", backend,
				"user", "login", "ana@example.com", "--password", "opensesame")

			res := mustRunCLI(t, configDir, dataDir, "--backend", backend,
				"trip", "create", "--user", userID, "--destination", "Lisbon",
				"--start", "2026-09-01", "--end", "2026-09-10")
			fields := strings.Fields(res.Stdout)
			if len(fields) < 3 {
				t.Fatalf("unexpected trip create output: %q", res.Stdout)
			}
			tripID := fields[2]

			list := mustRunCLI(t, configDir, dataDir, "--backend", backend,
				"--json", "trip", "list", "--user", userID)
			var trips []struct {
				ID          string `json:"id"`
				Destination string `json:"destination"`
			}
			if err := json.Unmarshal([]byte(list.Stdout), &trips); err != nil {
				t.Fatalf("parse trip list JSON: %v\noutput: %s", err, list.Stdout)
			}
			if len(trips) != 1 || trips[0].ID != tripID || trips[0].Destination != "Lisbon" {
				t.Errorf("unexpected trip list: %+v", trips)
			}

			mustRunCLI(t, configDir, dataDir, "--backend", backend,
				"expense", "add", "--trip", tripID, "--user", userID,
				"--title", "Dinner", "--amount", "42.50", "--category", "food")
			total := mustRunCLI(t, configDir, dataDir, "--backend", backend,
				"expense", "total", tripID)
			if strings.TrimSpace(total.Stdout) != "42.50" {
				t.Errorf("unexpected expense total: %q", total.Stdout)
			}

			mustRunCLI(t, configDir, dataDir, "--backend", backend,
				"trip", "delete", tripID)
			gone := runCLI(t, configDir, dataDir, "--backend", backend,
				"trip", "get", tripID)
			if gone.ExitCode == 0 {
				t.Error("deleted trip should not be retrievable")
			}
		})
	}
}

func TestBuddyFlow(t *testing.T) {
	configDir, dataDir := t.TempDir(), t.TempDir()
	mustRunCLI(t, configDir, dataDir, "init")

	alice := registerUser(t, configDir, dataDir, "sqlite", "alice@example.com", "Alice")
	bob := registerUser(t, configDir, dataDir, "sqlite", "bob@example.com", "Bob")

	mustRunCLI(t, configDir, dataDir, "buddy", "request", alice, bob)

	res := mustRunCLI(t, configDir, dataDir, "--json",
		"buddy", "list", bob, "--kind", "received")
	var links []struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	if err := json.Unmarshal([]byte(res.Stdout), &links); err != nil {
		t.Fatalf("parse buddy list JSON: %v\noutput: %s", err, res.Stdout)
	}
	if len(links) != 1 || links[0].Status != "pending" {
		t.Fatalf("unexpected buddy list: %+v", links)
	}

	mustRunCLI(t, configDir, dataDir, "buddy", "accept", links[0].ID)

	accepted := mustRunCLI(t, configDir, dataDir, "--json",
		"buddy", "list", alice, "--kind", "accepted")
	if err := json.Unmarshal([]byte(accepted.Stdout), &links); err != nil {
		t.Fatalf("parse accepted list JSON: %v\noutput: %s", err, accepted.Stdout)
	}
	if len(links) != 1 || links[0].Status != "accepted" {
		t.Errorf("unexpected accepted list: %+v", links)
	}
}

func TestChatFlow(t *testing.T) {
	configDir, dataDir := t.TempDir(), t.TempDir()
	mustRunCLI(t, configDir, dataDir, "init")

	alice := registerUser(t, configDir, dataDir, "sqlite", "alice@example.com", "Alice")
	bob := registerUser(t, configDir, dataDir, "sqlite", "bob@example.com", "Bob")

	mustRunCLI(t, configDir, dataDir, "chat", "send", alice, bob, "hello from Lisbon")

	unread := mustRunCLI(t, configDir, dataDir, "chat", "unread", bob)
	if strings.TrimSpace(unread.Stdout) != "1" {
		t.Errorf("expected 1 unread, got %q", unread.Stdout)
	}

	mustRunCLI(t, configDir, dataDir, "chat", "read", alice, bob)
	unread = mustRunCLI(t, configDir, dataDir, "chat", "unread", bob)
	if strings.TrimSpace(unread.Stdout) != "0" {
		t.Errorf("expected 0 unread after read, got %q", unread.Stdout)
	}

	thread := mustRunCLI(t, configDir, dataDir, "chat", "list", alice, bob)
	if !strings.Contains(thread.Stdout, "hello from Lisbon") {
		t.Errorf("thread missing message: %q", thread.Stdout)
	}
}

func TestQueueAndSyncCommands(t *testing.T) {
	configDir, dataDir := t.TempDir(), t.TempDir()
	mustRunCLI(t, configDir, dataDir, "init")

	size := mustRunCLI(t, configDir, dataDir, "queue", "size")
	if strings.TrimSpace(size.Stdout) != "0" {
		t.Errorf("expected empty queue, got %q", size.Stdout)
	}

	res := mustRunCLI(t, configDir, dataDir, "sync")
	if !strings.Contains(res.Stdout, "Synced 0, failed 0") {
		t.Errorf("unexpected sync output: %q", res.Stdout)
	}
}

// seedQueue writes queued operations directly into the queue's storage
// file, standing in for writes made while the store was unreachable.
func seedQueue(t *testing.T, dataDir string, ops []map[string]any) {
	t.Helper()
	queueDir := filepath.Join(dataDir, "queue")
	if err := os.MkdirAll(queueDir, 0o755); err != nil {
		t.Fatalf("create queue dir: %v", err)
	}
	opsJSON, err := json.Marshal(ops)
	if err != nil {
		t.Fatalf("marshal ops: %v", err)
	}
	payload, err := json.Marshal(map[string]json.RawMessage{"sync_queue": opsJSON})
	if err != nil {
		t.Fatalf("marshal queue file: %v", err)
	}
	if err := os.WriteFile(filepath.Join(queueDir, "kv.json"), payload, 0o644); err != nil {
		t.Fatalf("write queue file: %v", err)
	}
}

func TestSyncReplaysQueuedOperations(t *testing.T) {
	configDir, dataDir := t.TempDir(), t.TempDir()
	mustRunCLI(t, configDir, dataDir, "init")
	userID := registerUser(t, configDir, dataDir, "sqlite", "ana@example.com", "Ana")

	seedQueue(t, dataDir, []map[string]any{
		{
			"id":         "op-1",
			"operation":  "create",
			"entityType": "trip",
			"data": map[string]any{
				"id":          "trip-1",
				"user_id":     userID,
				"destination": "Porto",
				"start_date":  "2026-10-01",
				"end_date":    "2026-10-07",
				"description": "",
			},
			"timestamp": 1756600000000,
		},
		{
			"id":         "op-2",
			"operation":  "create",
			"entityType": "expense",
			"data": map[string]any{
				"id":          "exp-1",
				"trip_id":     "trip-1",
				"user_id":     userID,
				"title":       "Tram tickets",
				"amount":      9.5,
				"category":    "transport",
				"description": "",
				"split_among": "[]",
			},
			"timestamp": 1756600000001,
		},
	})

	size := mustRunCLI(t, configDir, dataDir, "queue", "size")
	if strings.TrimSpace(size.Stdout) != "2" {
		t.Fatalf("expected 2 queued operations, got %q", size.Stdout)
	}
	list := mustRunCLI(t, configDir, dataDir, "queue", "list")
	if !strings.Contains(list.Stdout, "create trip") || !strings.Contains(list.Stdout, "create expense") {
		t.Errorf("unexpected queue list output: %q", list.Stdout)
	}

	res := mustRunCLI(t, configDir, dataDir, "sync")
	if !strings.Contains(res.Stdout, "Synced 2, failed 0") {
		t.Errorf("unexpected sync output: %q", res.Stdout)
	}

	// The replayed writes are visible through the normal read commands.
	trip := mustRunCLI(t, configDir, dataDir, "trip", "get", "trip-1")
	if !strings.Contains(trip.Stdout, "Porto") {
		t.Errorf("replayed trip not found: %q", trip.Stdout)
	}
	total := mustRunCLI(t, configDir, dataDir, "expense", "total", "trip-1")
	if strings.TrimSpace(total.Stdout) != "9.50" {
		t.Errorf("replayed expense missing from total: %q", total.Stdout)
	}

	size = mustRunCLI(t, configDir, dataDir, "queue", "size")
	if strings.TrimSpace(size.Stdout) != "0" {
		t.Errorf("queue not drained after sync: %q", size.Stdout)
	}
}

func TestSyncKeepsFailedOperationsQueued(t *testing.T) {
	configDir, dataDir := t.TempDir(), t.TempDir()
	mustRunCLI(t, configDir, dataDir, "init")
	userID := registerUser(t, configDir, dataDir, "sqlite", "ana@example.com", "Ana")

	// The second operation references a trip that does not exist, so the
	// foreign key rejects it and it must stay queued.
	seedQueue(t, dataDir, []map[string]any{
		{
			"id":         "op-1",
			"operation":  "create",
			"entityType": "trip",
			"data": map[string]any{
				"id":          "trip-1",
				"user_id":     userID,
				"destination": "Porto",
				"start_date":  "",
				"end_date":    "",
				"description": "",
			},
			"timestamp": 1756600000000,
		},
		{
			"id":         "op-2",
			"operation":  "create",
			"entityType": "expense",
			"data": map[string]any{
				"id":          "exp-1",
				"trip_id":     "no-such-trip",
				"user_id":     userID,
				"title":       "Orphan",
				"amount":      1.0,
				"category":    "",
				"description": "",
				"split_among": "[]",
			},
			"timestamp": 1756600000001,
		},
	})

	res := mustRunCLI(t, configDir, dataDir, "sync")
	if !strings.Contains(res.Stdout, "Synced 1, failed 1") {
		t.Errorf("unexpected sync output: %q", res.Stdout)
	}

	size := mustRunCLI(t, configDir, dataDir, "queue", "size")
	if strings.TrimSpace(size.Stdout) != "1" {
		t.Errorf("failed operation not kept queued: %q", size.Stdout)
	}
	list := mustRunCLI(t, configDir, dataDir, "queue", "list")
	if !strings.Contains(list.Stdout, "op-2") {
		t.Errorf("surviving operation should be op-2: %q", list.Stdout)
	}
}
