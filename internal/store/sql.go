package store

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// SQLGateway stores each collection as a single row in the collections
// table, replaced transactionally on save. Every save also appends to the
// event log so an operator can reconstruct what changed when.
type SQLGateway struct {
	db     *sql.DB
	driver string // "sqlite" or "postgres"
}

func NewSQLGateway(db *sql.DB, driver string) *SQLGateway {
	return &SQLGateway{db: db, driver: driver}
}

func (s *SQLGateway) Load(ctx context.Context, collection string) ([]byte, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM collections WHERE name=$1`, collection).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return []byte(data), nil
}

func (s *SQLGateway) Save(ctx context.Context, collection string, data []byte) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now().Unix()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO collections (name, data, updated_at) VALUES ($1,$2,$3)
		 ON CONFLICT (name) DO UPDATE SET data=EXCLUDED.data, updated_at=EXCLUDED.updated_at`,
		collection, string(data), now)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO event_log (typ, key, data, created_at) VALUES ($1,$2,$3,$4)`,
		"CollectionSaved", collection, string(data), now)
	if err != nil {
		return err
	}
	return tx.Commit()
}

// Events returns the most recent event-log entries, newest first.
func (s *SQLGateway) Events(ctx context.Context, limit int) ([]Event, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT "offset", typ, key, created_at FROM event_log ORDER BY "offset" DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.Offset, &e.Type, &e.Key, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

type Event struct {
	Offset    int64  `json:"offset"`
	Type      string `json:"typ"`
	Key       string `json:"key"`
	CreatedAt int64  `json:"created_at"`
}
