// Package store persists named structure snapshots in SQLite. Each
// snapshot is one row in structures plus one nodes row per entry, with
// an explicit position column so the stored child order round-trips
// exactly — sorting only ever happens in the view projection.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/agentic-research/structree/internal/tree"
	_ "modernc.org/sqlite"
)

var ErrNotFound = errors.New("snapshot not found")

const (
	kindFile = 0
	kindDir  = 1
)

// Snapshot describes one saved structure.
type Snapshot struct {
	Name    string
	SavedAt time.Time
}

// Store is a handle on the snapshot database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) a snapshot database.
func Open(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dbPath, err)
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set journal mode: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS structures (
		name TEXT PRIMARY KEY,
		saved_at INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS nodes (
		structure TEXT NOT NULL,
		id TEXT NOT NULL,
		parent_id TEXT NOT NULL,
		name TEXT NOT NULL,
		kind INTEGER NOT NULL,
		position INTEGER NOT NULL,
		PRIMARY KEY (structure, id, kind)
	) WITHOUT ROWID;
	CREATE INDEX IF NOT EXISTS idx_nodes_parent ON nodes(structure, parent_id, kind, position);
	`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Save writes root under name, replacing any previous snapshot of that
// name in a single transaction.
func (s *Store) Save(name string, root *tree.DirectoryNode) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer func() { _ = tx.Rollback() }() // no-op if committed

	if _, err := tx.Exec("DELETE FROM nodes WHERE structure = ?", name); err != nil {
		return fmt.Errorf("clear snapshot %s: %w", name, err)
	}
	if _, err := tx.Exec(
		"INSERT OR REPLACE INTO structures (name, saved_at) VALUES (?, ?)",
		name, time.Now().Unix(),
	); err != nil {
		return fmt.Errorf("record snapshot %s: %w", name, err)
	}

	stmt, err := tx.Prepare(
		"INSERT INTO nodes (structure, id, parent_id, name, kind, position) VALUES (?, ?, ?, ?, ?, ?)",
	)
	if err != nil {
		return fmt.Errorf("prepare node insert: %w", err)
	}
	defer func() { _ = stmt.Close() }() // safe to ignore

	if err := writeNodes(stmt, name, root, ""); err != nil {
		return err
	}
	return tx.Commit()
}

func writeNodes(stmt *sql.Stmt, structure string, dir *tree.DirectoryNode, parentID string) error {
	for pos, f := range dir.Folders {
		id := tree.ChildPath(parentID, f.Name)
		if _, err := stmt.Exec(structure, id, parentID, f.Name, kindDir, pos); err != nil {
			return fmt.Errorf("insert folder %s: %w", id, err)
		}
		if err := writeNodes(stmt, structure, f, id); err != nil {
			return err
		}
	}
	for pos, name := range dir.Files {
		id := tree.ChildPath(parentID, name)
		if _, err := stmt.Exec(structure, id, parentID, name, kindFile, pos); err != nil {
			return fmt.Errorf("insert file %s: %w", id, err)
		}
	}
	return nil
}

// Load reads the snapshot saved under name. Child order comes back
// exactly as stored.
func (s *Store) Load(name string) (*tree.DirectoryNode, error) {
	var savedAt int64
	err := s.db.QueryRow("SELECT saved_at FROM structures WHERE name = ?", name).Scan(&savedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lookup snapshot %s: %w", name, err)
	}

	rows, err := s.db.Query(
		"SELECT parent_id, name, kind FROM nodes WHERE structure = ? ORDER BY parent_id, kind, position",
		name,
	)
	if err != nil {
		return nil, fmt.Errorf("query snapshot %s: %w", name, err)
	}
	defer func() { _ = rows.Close() }() // safe to ignore

	type entry struct {
		name string
		kind int
	}
	children := make(map[string][]entry)
	for rows.Next() {
		var parentID, entryName string
		var kind int
		if err := rows.Scan(&parentID, &entryName, &kind); err != nil {
			return nil, fmt.Errorf("scan node row: %w", err)
		}
		children[parentID] = append(children[parentID], entry{name: entryName, kind: kind})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read snapshot %s: %w", name, err)
	}

	var assemble func(dir *tree.DirectoryNode, id string)
	assemble = func(dir *tree.DirectoryNode, id string) {
		for _, e := range children[id] {
			if e.kind == kindDir {
				child := &tree.DirectoryNode{Name: e.name}
				dir.Folders = append(dir.Folders, child)
				assemble(child, tree.ChildPath(id, e.name))
			} else {
				dir.Files = append(dir.Files, e.name)
			}
		}
	}
	root := &tree.DirectoryNode{}
	assemble(root, "")
	return root, nil
}

// List returns all snapshots, most recent first.
func (s *Store) List() ([]Snapshot, error) {
	rows, err := s.db.Query("SELECT name, saved_at FROM structures ORDER BY saved_at DESC, name")
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer func() { _ = rows.Close() }() // safe to ignore

	var out []Snapshot
	for rows.Next() {
		var name string
		var savedAt int64
		if err := rows.Scan(&name, &savedAt); err != nil {
			return nil, fmt.Errorf("scan snapshot row: %w", err)
		}
		out = append(out, Snapshot{Name: name, SavedAt: time.Unix(savedAt, 0)})
	}
	return out, rows.Err()
}

// Delete removes a snapshot. Missing names report ErrNotFound.
func (s *Store) Delete(name string) error {
	res, err := s.db.Exec("DELETE FROM structures WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("delete snapshot %s: %w", name, err)
	}
	if _, err := s.db.Exec("DELETE FROM nodes WHERE structure = ?", name); err != nil {
		return fmt.Errorf("delete snapshot nodes %s: %w", name, err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
