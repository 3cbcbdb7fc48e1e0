// Package docstore implements the structured object storage backend. It
// accepts the same SQL statements as the embedded engine, translates them
// with sqlparse, and executes them against ordered in-memory collections
// persisted as JSONL files. A manifest tracks which collections exist,
// their uniqueness constraints, and a schema version that bumps whenever
// either set grows.
package docstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/wayfarer-app/wayfarer/internal/kv"
	"github.com/wayfarer-app/wayfarer/internal/sqlparse"
	"github.com/wayfarer-app/wayfarer/pkg/types"
)

const manifestFile = "manifest.json"

var (
	createTableRe       = regexp.MustCompile(`(?i)\bCREATE\s+TABLE(?:\s+IF\s+NOT\s+EXISTS)?\s+(\w+)`)
	createUniqueIndexRe = regexp.MustCompile(`(?i)\bCREATE\s+UNIQUE\s+INDEX(?:\s+IF\s+NOT\s+EXISTS)?\s+\w+\s+ON\s+(\w+)\s*\(([^)]+)\)`)
)

type manifest struct {
	Version     int                 `json:"version"`
	Collections []string            `json:"collections"`
	Uniques     map[string][]string `json:"uniques,omitempty"`
}

// Backend keeps every collection fully in memory and rewrites the
// collection's JSONL file after each mutation. Rows keep insertion order.
type Backend struct {
	mu          sync.RWMutex
	dataDir     string
	closed      bool
	manifest    manifest
	collections map[string][]types.Record
}

// Open loads the manifest and every listed collection from dataDir,
// creating the directory on first use. A missing manifest means a fresh
// store.
func Open(dataDir string) (*Backend, error) {
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	b := &Backend{
		dataDir:     dataDir,
		collections: make(map[string][]types.Record),
	}
	if err := b.loadManifest(); err != nil {
		return nil, err
	}
	for _, name := range b.manifest.Collections {
		rows, err := loadJSONL(b.collectionPath(name))
		if err != nil {
			return nil, fmt.Errorf("loading collection %s: %w", name, err)
		}
		b.collections[name] = rows
	}
	return b, nil
}

// ExecuteWrite translates and applies an INSERT, UPDATE, or DELETE.
// Statements that do not translate are silently ignored, as are updates
// and deletes that match no rows.
func (b *Backend) ExecuteWrite(statement string, params []any) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return types.ErrStoreClosed
	}

	stmt := sqlparse.Parse(statement, params)
	if stmt.Collection == "" {
		return nil
	}

	switch stmt.Kind {
	case sqlparse.KindInsert:
		return b.applyInsert(stmt)
	case sqlparse.KindUpdate:
		return b.applyUpdate(stmt)
	case sqlparse.KindDelete:
		return b.applyDelete(stmt)
	}
	return nil
}

// QueryOne returns the first matching row or nil.
func (b *Backend) QueryOne(statement string, params []any) (types.Record, error) {
	rows, err := b.QueryAll(statement, params)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// QueryAll returns every row matching the statement's predicate, ordered
// by its ORDER BY keys, as copies the caller may mutate freely.
func (b *Backend) QueryAll(statement string, params []any) ([]types.Record, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return nil, types.ErrStoreClosed
	}

	stmt := sqlparse.Parse(statement, params)
	if stmt.Collection == "" || stmt.Kind != sqlparse.KindSelect {
		return []types.Record{}, nil
	}

	matched := []types.Record{}
	for _, row := range b.collections[stmt.Collection] {
		if stmt.Where == nil || stmt.Where.Match(row) {
			matched = append(matched, copyRecord(row))
		}
	}
	sortRows(matched, stmt.Order)
	return matched, nil
}

// ExecuteSchema accepts the same DDL the SQL engine gets. CREATE TABLE
// ensures the named collection exists and CREATE UNIQUE INDEX registers a
// uniqueness constraint the insert and update paths enforce; everything
// else (plain indexes, pragmas) has no equivalent here and is ignored.
func (b *Backend) ExecuteSchema(statement string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return types.ErrStoreClosed
	}

	if m := createUniqueIndexRe.FindStringSubmatch(statement); m != nil {
		return b.ensureUnique(m[1], m[2])
	}
	m := createTableRe.FindStringSubmatch(statement)
	if m == nil {
		return nil
	}
	return b.ensureCollection(m[1])
}

// Close marks the store closed. All data is already on disk; Close is
// idempotent.
func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	return nil
}

func (b *Backend) applyInsert(stmt sqlparse.Statement) error {
	if len(stmt.Row) == 0 {
		return nil
	}
	if err := b.ensureCollection(stmt.Collection); err != nil {
		return err
	}

	rows := b.collections[stmt.Collection]
	id := types.StringField(stmt.Row, "id")
	if id != "" {
		for i, existing := range rows {
			if types.StringField(existing, "id") == id {
				if stmt.IgnoreConflict {
					return nil
				}
				if err := b.checkUnique(stmt.Collection, stmt.Row, i); err != nil {
					return err
				}
				// Duplicate id replaces the stored row in place.
				prev := rows[i]
				rows[i] = copyRecord(stmt.Row)
				if err := b.persistCollection(stmt.Collection); err != nil {
					rows[i] = prev
					return err
				}
				return nil
			}
		}
	}

	if err := b.checkUnique(stmt.Collection, stmt.Row, -1); err != nil {
		if stmt.IgnoreConflict {
			return nil
		}
		return err
	}

	b.collections[stmt.Collection] = append(rows, copyRecord(stmt.Row))
	if err := b.persistCollection(stmt.Collection); err != nil {
		b.collections[stmt.Collection] = rows
		return err
	}
	return nil
}

func (b *Backend) applyUpdate(stmt sqlparse.Statement) error {
	rows := b.collections[stmt.Collection]
	changed := false
	updated := make([]types.Record, len(rows))
	for i, row := range rows {
		if stmt.Where == nil || stmt.Where.Match(row) {
			next := copyRecord(row)
			for _, a := range stmt.Assignments {
				next[a.Field] = a.Value
			}
			updated[i] = next
			changed = true
		} else {
			updated[i] = row
		}
	}
	if !changed {
		return nil
	}
	for i, row := range updated {
		if err := checkUniqueAgainst(updated, b.uniqueSets(stmt.Collection), stmt.Collection, row, i); err != nil {
			return err
		}
	}

	b.collections[stmt.Collection] = updated
	if err := b.persistCollection(stmt.Collection); err != nil {
		b.collections[stmt.Collection] = rows
		return err
	}
	return nil
}

func (b *Backend) applyDelete(stmt sqlparse.Statement) error {
	rows := b.collections[stmt.Collection]
	kept := make([]types.Record, 0, len(rows))
	for _, row := range rows {
		if stmt.Where == nil || stmt.Where.Match(row) {
			continue
		}
		kept = append(kept, row)
	}
	if len(kept) == len(rows) {
		return nil
	}

	b.collections[stmt.Collection] = kept
	if err := b.persistCollection(stmt.Collection); err != nil {
		b.collections[stmt.Collection] = rows
		return err
	}
	return nil
}

// ensureCollection registers a collection in the manifest and creates its
// JSONL file. Already-known collections are a no-op, so repeated schema
// bootstraps leave the version untouched.
func (b *Backend) ensureCollection(name string) error {
	for _, existing := range b.manifest.Collections {
		if existing == name {
			return nil
		}
	}

	prev := b.manifest
	b.manifest.Collections = append(append([]string{}, prev.Collections...), name)
	b.manifest.Version = prev.Version + 1
	if err := b.persistManifest(); err != nil {
		b.manifest = prev
		return err
	}

	if _, ok := b.collections[name]; !ok {
		b.collections[name] = []types.Record{}
	}
	if err := b.persistCollection(name); err != nil {
		return err
	}
	return nil
}

// ensureUnique registers a uniqueness constraint parsed from CREATE UNIQUE
// INDEX DDL. Column sets are stored comma-joined in the manifest; an
// already-registered set is a no-op.
func (b *Backend) ensureUnique(collection, columns string) error {
	cols := make([]string, 0, 2)
	for _, c := range strings.Split(columns, ",") {
		cols = append(cols, strings.TrimSpace(c))
	}
	set := strings.Join(cols, ",")

	for _, existing := range b.manifest.Uniques[collection] {
		if existing == set {
			return nil
		}
	}

	prev := b.manifest
	uniques := make(map[string][]string, len(prev.Uniques)+1)
	for k, v := range prev.Uniques {
		uniques[k] = v
	}
	uniques[collection] = append(append([]string{}, prev.Uniques[collection]...), set)
	b.manifest.Uniques = uniques
	b.manifest.Version = prev.Version + 1
	if err := b.persistManifest(); err != nil {
		b.manifest = prev
		return err
	}
	return nil
}

// uniqueSets returns the registered unique column sets for a collection.
func (b *Backend) uniqueSets(collection string) [][]string {
	sets := b.manifest.Uniques[collection]
	if len(sets) == 0 {
		return nil
	}
	out := make([][]string, len(sets))
	for i, set := range sets {
		out[i] = strings.Split(set, ",")
	}
	return out
}

// checkUnique reports a constraint error when row collides with a stored
// row (other than the one at skip) on any registered unique column set.
func (b *Backend) checkUnique(collection string, row types.Record, skip int) error {
	return checkUniqueAgainst(b.collections[collection], b.uniqueSets(collection), collection, row, skip)
}

func checkUniqueAgainst(rows []types.Record, sets [][]string, collection string, row types.Record, skip int) error {
	for _, cols := range sets {
		if !hasAll(row, cols) {
			continue
		}
		for i, existing := range rows {
			if i == skip {
				continue
			}
			if matchesOn(existing, row, cols) {
				return fmt.Errorf("%w: UNIQUE constraint failed: %s(%s)",
					types.ErrConstraint, collection, strings.Join(cols, ", "))
			}
		}
	}
	return nil
}

func hasAll(row types.Record, cols []string) bool {
	for _, col := range cols {
		if v, ok := row[col]; !ok || v == nil {
			return false
		}
	}
	return true
}

func matchesOn(a, b types.Record, cols []string) bool {
	for _, col := range cols {
		if a[col] == nil || sqlparse.CompareValues(a[col], b[col]) != 0 {
			return false
		}
	}
	return true
}

func (b *Backend) loadManifest() error {
	data, err := os.ReadFile(filepath.Join(b.dataDir, manifestFile))
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading manifest: %w", err)
	}
	if err := json.Unmarshal(data, &b.manifest); err != nil {
		return fmt.Errorf("parsing manifest: %w", err)
	}
	return nil
}

func (b *Backend) persistManifest() error {
	data, err := json.MarshalIndent(b.manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}
	if err := kv.WriteFileAtomic(filepath.Join(b.dataDir, manifestFile), data); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	return nil
}

func (b *Backend) persistCollection(name string) error {
	var buf strings.Builder
	for _, row := range b.collections[name] {
		line, err := json.Marshal(row)
		if err != nil {
			return fmt.Errorf("marshaling %s row: %w", name, err)
		}
		buf.Write(line)
		buf.WriteByte('\n')
	}
	if err := kv.WriteFileAtomic(b.collectionPath(name), []byte(buf.String())); err != nil {
		return fmt.Errorf("writing collection %s: %w", name, err)
	}
	return nil
}

func (b *Backend) collectionPath(name string) string {
	return filepath.Join(b.dataDir, name+".jsonl")
}

// loadJSONL reads one record per line. Blank lines are skipped; a missing
// file is an empty collection.
func loadJSONL(path string) ([]types.Record, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return []types.Record{}, nil
	}
	if err != nil {
		return nil, err
	}

	rows := []types.Record{}
	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var row types.Record
		if err := json.Unmarshal([]byte(line), &row); err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func copyRecord(row types.Record) types.Record {
	out := make(types.Record, len(row))
	for k, v := range row {
		out[k] = v
	}
	return out
}

func sortRows(rows []types.Record, keys []sqlparse.OrderKey) {
	if len(keys) == 0 {
		return
	}
	sort.SliceStable(rows, func(i, j int) bool {
		for _, key := range keys {
			c := sqlparse.CompareValues(rows[i][key.Field], rows[j][key.Field])
			if c == 0 {
				continue
			}
			if key.Desc {
				return c > 0
			}
			return c < 0
		}
		return false
	})
}
