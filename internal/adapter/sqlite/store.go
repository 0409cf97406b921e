// Package sqlite stores parsed investigations in a local SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/ewkb"
	_ "modernc.org/sqlite"

	"github.com/couchcryptid/infra-ingest/internal/domain"
)

// ErrNotFound is returned for unknown investigation IDs.
var ErrNotFound = errors.New("investigation not found")

// Store writes investigation events to SQLite.
// It implements pipeline.BatchLoader.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens the database at dsn and configures WAL mode.
func Open(dsn string, logger *slog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("sqlite: exec %s: %w", pragma, err)
		}
	}
	return &Store{db: db, logger: logger}, nil
}

const migration = `
CREATE TABLE IF NOT EXISTS files (
	id        TEXT PRIMARY KEY,
	path      TEXT NOT NULL UNIQUE,
	encoding  TEXT NOT NULL DEFAULT '',
	loaded_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS investigations (
	id           TEXT PRIMARY KEY,
	file_id      TEXT NOT NULL REFERENCES files(id),
	position     INTEGER NOT NULL,
	method       TEXT NOT NULL,
	point_id     TEXT,
	total_depth  REAL,
	srid         INTEGER,
	geom         BLOB,
	payload      TEXT NOT NULL,
	diagnostics  INTEGER NOT NULL DEFAULT 0,
	processed_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS soil_layers (
	investigation_id TEXT NOT NULL REFERENCES investigations(id) ON DELETE CASCADE,
	position         INTEGER NOT NULL,
	soil_type        TEXT NOT NULL,
	thickness        REAL NOT NULL,
	PRIMARY KEY (investigation_id, position)
);

CREATE INDEX IF NOT EXISTS idx_investigations_file_id ON investigations(file_id);
CREATE INDEX IF NOT EXISTS idx_investigations_method ON investigations(method);
`

// Migrate creates the schema if it does not exist.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, migration); err != nil {
		return fmt.Errorf("sqlite: migrate: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// LoadBatch writes events in one transaction. Reloading a file replaces
// every investigation previously stored for its path.
func (s *Store) LoadBatch(ctx context.Context, events []domain.InvestigationEvent) (err error) {
	if len(events) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: begin: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback() //nolint:errcheck
		}
	}()

	fileIDs := make(map[string]string)
	for i := range events {
		ev := &events[i]
		fileID, ok := fileIDs[ev.SourceFile]
		if !ok {
			if fileID, err = upsertFile(ctx, tx, ev); err != nil {
				return err
			}
			fileIDs[ev.SourceFile] = fileID
		}
		if err = insertInvestigation(ctx, tx, fileID, ev); err != nil {
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: commit: %w", err)
	}
	s.logger.Debug("stored investigations", "count", len(events), "files", len(fileIDs))
	return nil
}

func upsertFile(ctx context.Context, tx *sql.Tx, ev *domain.InvestigationEvent) (string, error) {
	loadedAt := ev.ProcessedAt.UTC()
	var id string
	err := tx.QueryRowContext(ctx, `SELECT id FROM files WHERE path = ?`, ev.SourceFile).Scan(&id)
	switch {
	case err == nil:
		_, err = tx.ExecContext(ctx,
			`UPDATE files SET encoding = ?, loaded_at = ? WHERE id = ?`,
			ev.Investigation.Source.Encoding, loadedAt, id,
		)
		if err != nil {
			return "", fmt.Errorf("sqlite: update file %s: %w", ev.SourceFile, err)
		}
		if err := clearFile(ctx, tx, id); err != nil {
			return "", fmt.Errorf("sqlite: clear file %s: %w", ev.SourceFile, err)
		}
		return id, nil
	case errors.Is(err, sql.ErrNoRows):
		id = uuid.New().String()
		_, err = tx.ExecContext(ctx,
			`INSERT INTO files (id, path, encoding, loaded_at) VALUES (?, ?, ?, ?)`,
			id, ev.SourceFile, ev.Investigation.Source.Encoding, loadedAt,
		)
		if err != nil {
			return "", fmt.Errorf("sqlite: insert file %s: %w", ev.SourceFile, err)
		}
		return id, nil
	default:
		return "", fmt.Errorf("sqlite: lookup file %s: %w", ev.SourceFile, err)
	}
}

// clearFile drops the rows of an earlier load. Investigation IDs hash the
// coordinates, so an edited file does not overwrite its old rows by key.
func clearFile(ctx context.Context, tx *sql.Tx, fileID string) error {
	_, err := tx.ExecContext(ctx,
		`DELETE FROM soil_layers WHERE investigation_id IN (SELECT id FROM investigations WHERE file_id = ?)`, fileID)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `DELETE FROM investigations WHERE file_id = ?`, fileID)
	return err
}

func insertInvestigation(ctx context.Context, tx *sql.Tx, fileID string, ev *domain.InvestigationEvent) error {
	inv := &ev.Investigation
	payload, err := json.Marshal(inv)
	if err != nil {
		return fmt.Errorf("sqlite: marshal investigation %s: %w", ev.ID, err)
	}

	var (
		pointID sql.NullString
		depth   sql.NullFloat64
		srid    sql.NullInt64
		blob    []byte
	)
	if v, ok := inv.Coordinates.PointID.Get(); ok {
		pointID = sql.NullString{String: v, Valid: true}
	}
	if v, ok := inv.TotalDepth.Get(); ok {
		depth = sql.NullFloat64{Float64: v, Valid: true}
	}
	if p, perr := inv.Point(); perr == nil {
		if blob, err = inv.EWKB(); err != nil {
			return fmt.Errorf("sqlite: investigation %s: %w", ev.ID, err)
		}
		if p.SRID() != 0 {
			srid = sql.NullInt64{Int64: int64(p.SRID()), Valid: true}
		}
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM soil_layers WHERE investigation_id = ?`, ev.ID); err != nil {
		return fmt.Errorf("sqlite: clear soil layers %s: %w", ev.ID, err)
	}
	_, err = tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO investigations
			(id, file_id, position, method, point_id, total_depth, srid, geom, payload, diagnostics, processed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ev.ID, fileID, ev.Index, ev.Method, pointID, depth, srid, blob,
		string(payload), len(ev.Diagnostics), ev.ProcessedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("sqlite: insert investigation %s: %w", ev.ID, err)
	}

	for i, layer := range inv.SoilLayers {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO soil_layers (investigation_id, position, soil_type, thickness) VALUES (?, ?, ?, ?)`,
			ev.ID, i, layer.SoilType, layer.Thickness,
		)
		if err != nil {
			return fmt.Errorf("sqlite: insert soil layer %s/%d: %w", ev.ID, i, err)
		}
	}
	return nil
}

// CountByMethod returns the number of stored investigations per method code.
func (s *Store) CountByMethod(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT method, COUNT(*) FROM investigations GROUP BY method`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: count by method: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var method string
		var n int
		if err := rows.Scan(&method, &n); err != nil {
			return nil, fmt.Errorf("sqlite: scan count: %w", err)
		}
		counts[method] = n
	}
	return counts, rows.Err()
}

// SoilLayers returns the stored layers of one investigation in depth order.
func (s *Store) SoilLayers(ctx context.Context, id string) ([]domain.SoilLayer, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT soil_type, thickness FROM soil_layers WHERE investigation_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("sqlite: soil layers %s: %w", id, err)
	}
	defer rows.Close()

	var layers []domain.SoilLayer
	for rows.Next() {
		var l domain.SoilLayer
		if err := rows.Scan(&l.SoilType, &l.Thickness); err != nil {
			return nil, fmt.Errorf("sqlite: scan soil layer: %w", err)
		}
		layers = append(layers, l)
	}
	return layers, rows.Err()
}

// Location decodes the stored point of one investigation. It returns
// domain.ErrNoLocation when the investigation had no parsed coordinates.
func (s *Store) Location(ctx context.Context, id string) (*geom.Point, error) {
	var blob []byte
	err := s.db.QueryRowContext(ctx, `SELECT geom FROM investigations WHERE id = ?`, id).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: location %s: %w", id, err)
	}
	if len(blob) == 0 {
		return nil, domain.ErrNoLocation
	}

	g, err := ewkb.Unmarshal(blob)
	if err != nil {
		return nil, fmt.Errorf("sqlite: decode geometry %s: %w", id, err)
	}
	p, ok := g.(*geom.Point)
	if !ok {
		return nil, fmt.Errorf("sqlite: geometry %s is %T, not a point", id, g)
	}
	return p, nil
}

// Payload returns the stored JSON document of one investigation.
func (s *Store) Payload(ctx context.Context, id string) (json.RawMessage, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM investigations WHERE id = ?`, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: payload %s: %w", id, err)
	}
	return json.RawMessage(payload), nil
}
