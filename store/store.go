// Package store keeps named network snapshots in a SQLite database.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	"neuron_lib/nn"
)

// ErrNotFound is returned when no snapshot is stored under a name.
var ErrNotFound = errors.New("snapshot not found")

// Entry describes a stored snapshot without its weights.
type Entry struct {
	Name     string
	Updated  time.Time
	Topology []int
}

// Store is a SQLite-backed snapshot store. It is safe for concurrent use.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	_, err = db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS networks(
			name TEXT PRIMARY KEY,
			updated REAL NOT NULL,
			topology TEXT NOT NULL,
			snapshot TEXT NOT NULL
		)`)
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "creating networks table")
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save stores snap under name, replacing any previous snapshot with that name.
func (s *Store) Save(ctx context.Context, name string, snap nn.Snapshot) error {
	body, err := json.Marshal(snap)
	if err != nil {
		return errors.Wrap(err, "encoding snapshot")
	}
	topo, err := json.Marshal(snap.Sizes())
	if err != nil {
		return errors.Wrap(err, "encoding topology")
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO networks(name, updated, topology, snapshot) VALUES(?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET updated = excluded.updated, topology = excluded.topology, snapshot = excluded.snapshot`,
		name, float64(time.Now().UnixMilli())/1000.0, string(topo), string(body))
	return errors.Wrapf(err, "saving %q", name)
}

// Load returns the snapshot stored under name.
func (s *Store) Load(ctx context.Context, name string) (nn.Snapshot, error) {
	var body string
	err := s.db.QueryRowContext(ctx, `SELECT snapshot FROM networks WHERE name = ?`, name).Scan(&body)
	if err == sql.ErrNoRows {
		return nn.Snapshot{}, errors.Wrapf(ErrNotFound, "%q", name)
	}
	if err != nil {
		return nn.Snapshot{}, errors.Wrapf(err, "loading %q", name)
	}
	var snap nn.Snapshot
	if err := json.Unmarshal([]byte(body), &snap); err != nil {
		return nn.Snapshot{}, errors.Wrapf(err, "decoding %q", name)
	}
	return snap, nil
}

// List returns every stored snapshot ordered by name.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, updated, topology FROM networks ORDER BY name`)
	if err != nil {
		return nil, errors.Wrap(err, "listing snapshots")
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e       Entry
			updated float64
			topo    string
		)
		if err := rows.Scan(&e.Name, &updated, &topo); err != nil {
			return nil, errors.Wrap(err, "scanning snapshot row")
		}
		if err := json.Unmarshal([]byte(topo), &e.Topology); err != nil {
			return nil, errors.Wrapf(err, "decoding topology of %q", e.Name)
		}
		e.Updated = time.UnixMilli(int64(updated * 1000))
		entries = append(entries, e)
	}
	return entries, errors.Wrap(rows.Err(), "listing snapshots")
}

// Delete removes the snapshot stored under name.
func (s *Store) Delete(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM networks WHERE name = ?`, name)
	if err != nil {
		return errors.Wrapf(err, "deleting %q", name)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrapf(err, "deleting %q", name)
	}
	if n == 0 {
		return errors.Wrapf(ErrNotFound, "%q", name)
	}
	return nil
}
