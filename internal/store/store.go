// Package store keeps scene snapshots in a SQLite database.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/Faultbox/cubeforge/internal/logger"
	"github.com/Faultbox/cubeforge/internal/scene"
)

// ErrSceneNotFound is returned when no snapshot matches.
var ErrSceneNotFound = errors.New("scene not found")

// Options configures a store.
type Options struct {
	Compress bool // store bodies as zstd-compressed JSON
	Validate bool // schema-check entity records on load
}

// Snapshot describes one stored scene version.
type Snapshot struct {
	ID        string
	Scene     string
	CreatedAt time.Time
	Entities  int
	Encoding  string
}

// Store is a scene snapshot database.
type Store struct {
	db   *sql.DB
	opts Options
}

// Open opens or creates the database at path.
func Open(ctx context.Context, path string, opts Options) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("empty store path")
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating store dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db, opts: opts}, nil
}

func initPragmas(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA temp_store=MEMORY;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

func initSchema(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS snapshots (
			id TEXT PRIMARY KEY,
			scene TEXT NOT NULL,
			created_unix INTEGER NOT NULL,
			entities INTEGER NOT NULL,
			encoding TEXT NOT NULL,
			body BLOB NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS snapshots_scene_created ON snapshots(scene, created_unix);`,
		`INSERT OR IGNORE INTO meta(key, value) VALUES('schema_version', '1');`,
	}
	for _, s := range stmts {
		if _, err := db.ExecContext(ctx, s); err != nil {
			return fmt.Errorf("initializing schema: %w", err)
		}
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveScene stores a new snapshot of sc.
func (s *Store) SaveScene(ctx context.Context, sc *scene.Scene) (Snapshot, error) {
	format := scene.FormatJSON
	if s.opts.Compress {
		format = scene.FormatJSONZstd
	}
	body, err := scene.Encode(sc, format)
	if err != nil {
		return Snapshot{}, err
	}

	snap := Snapshot{
		ID:        uuid.NewString(),
		Scene:     sc.Name,
		CreatedAt: time.Now().UTC(),
		Entities:  sc.Len(),
		Encoding:  format.String(),
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO snapshots(id, scene, created_unix, entities, encoding, body) VALUES(?, ?, ?, ?, ?, ?)`,
		snap.ID, snap.Scene, snap.CreatedAt.UnixNano(), snap.Entities, snap.Encoding, body)
	if err != nil {
		return Snapshot{}, fmt.Errorf("saving scene %q: %w", sc.Name, err)
	}

	logger.Named("store").Info("scene snapshot saved",
		zap.String("id", snap.ID),
		zap.String("scene", snap.Scene),
		zap.Int("entities", snap.Entities),
		zap.Int("bytes", len(body)))
	return snap, nil
}

// LoadScene loads the snapshot with the given id.
func (s *Store) LoadScene(ctx context.Context, id string) (*scene.Scene, error) {
	row := s.db.QueryRowContext(ctx, `SELECT encoding, body FROM snapshots WHERE id = ?`, id)
	return s.decodeRow(row, id)
}

// Latest loads the newest snapshot of the named scene.
func (s *Store) Latest(ctx context.Context, name string) (*scene.Scene, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT encoding, body FROM snapshots WHERE scene = ? ORDER BY created_unix DESC, rowid DESC LIMIT 1`, name)
	return s.decodeRow(row, name)
}

func (s *Store) decodeRow(row *sql.Row, key string) (*scene.Scene, error) {
	var (
		encoding string
		body     []byte
	)
	if err := row.Scan(&encoding, &body); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrSceneNotFound, key)
		}
		return nil, fmt.Errorf("loading scene %s: %w", key, err)
	}

	format := scene.FormatJSON
	if encoding == scene.FormatJSONZstd.String() {
		format = scene.FormatJSONZstd
	}
	sc, dropped, err := scene.Decode(body, format, s.opts.Validate)
	if err != nil {
		return nil, fmt.Errorf("loading scene %s: %w", key, err)
	}
	if dropped > 0 {
		logger.Named("store").Warn("dropped entity records", zap.String("scene", key), zap.Int("dropped", dropped))
	}
	return sc, nil
}

// List returns snapshot metadata, newest first. An empty name lists all
// scenes.
func (s *Store) List(ctx context.Context, name string) ([]Snapshot, error) {
	query := `SELECT id, scene, created_unix, entities, encoding FROM snapshots`
	var args []any
	if name != "" {
		query += ` WHERE scene = ?`
		args = append(args, name)
	}
	query += ` ORDER BY created_unix DESC, rowid DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing snapshots: %w", err)
	}
	defer rows.Close()

	var out []Snapshot
	for rows.Next() {
		var (
			snap    Snapshot
			created int64
		)
		if err := rows.Scan(&snap.ID, &snap.Scene, &created, &snap.Entities, &snap.Encoding); err != nil {
			return nil, fmt.Errorf("listing snapshots: %w", err)
		}
		snap.CreatedAt = time.Unix(0, created).UTC()
		out = append(out, snap)
	}
	return out, rows.Err()
}

// Delete removes a snapshot.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM snapshots WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting snapshot %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrSceneNotFound, id)
	}
	return nil
}
