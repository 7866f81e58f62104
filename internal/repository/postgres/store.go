package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/qabristan-app/qabristan/internal/errs"
	"github.com/qabristan-app/qabristan/internal/model"
	"github.com/qabristan-app/qabristan/internal/repository"
)

// notifyChannel carries change notifications raised by the table trigger
// created in the migrations.
const notifyChannel = "grave_records_changed"

// Store keeps each record as one jsonb document, ordered by creation time
// descending. It imposes no concurrency control of its own: last writer wins.
type Store struct {
	db     *DB
	pool   *pgxpool.Pool // dedicated LISTEN connection source; nil in tests
	logger *zap.Logger
}

// NewStore constructs a record store. pool may be nil, which disables Watch.
func NewStore(db *DB, pool *pgxpool.Pool, logger *zap.Logger) *Store {
	return &Store{db: db, pool: pool, logger: logger}
}

// Open dials the database and returns a store ready for Watch.
func Open(ctx context.Context, dsn string, logger *zap.Logger) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	return NewStore(&DB{Pool: pool}, pool, logger), nil
}

// List returns the full collection, newest creation first.
func (s *Store) List(ctx context.Context) ([]model.GraveRecord, error) {
	const q = `SELECT doc FROM grave_records ORDER BY created_at DESC`
	rows, err := s.db.Pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.GraveRecord
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		var rec model.GraveRecord
		if err := json.Unmarshal(doc, &rec); err != nil {
			return nil, fmt.Errorf("decode record doc: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Create assigns id and createdAt and inserts the record document. The
// created_at column mirrors the document field for ordering.
func (s *Store) Create(ctx context.Context, fields model.Fields) (model.GraveRecord, error) {
	now := time.Now().UTC()
	rec := model.GraveRecord{
		ID:        model.NewID(),
		CreatedAt: model.Timestamp(now),
		Fields:    fields,
	}
	doc, err := json.Marshal(rec)
	if err != nil {
		return model.GraveRecord{}, err
	}

	const q = `INSERT INTO grave_records (id, doc, created_at) VALUES ($1,$2,$3)`
	if _, err := s.db.Pool.Exec(ctx, q, rec.ID, doc, now); err != nil {
		return model.GraveRecord{}, err
	}
	return rec, nil
}

// Update merges the editable fields over the stored document. The fields
// payload never carries id or createdAt keys, so both survive the merge.
func (s *Store) Update(ctx context.Context, id string, fields model.Fields) error {
	doc, err := json.Marshal(fields)
	if err != nil {
		return err
	}

	const q = `UPDATE grave_records SET doc = doc || $2::jsonb WHERE id = $1`
	tag, err := s.db.Pool.Exec(ctx, q, id, doc)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("record %s: %w", id, errs.ErrNotFound)
	}
	return nil
}

// Watch holds a dedicated LISTEN connection and re-reads the whole collection
// on every notification, including ones caused by this process's own writes.
// The initial snapshot is delivered before Watch returns.
func (s *Store) Watch(ctx context.Context, fn repository.SnapshotFunc) error {
	if s.pool == nil {
		return errors.New("watch requires a live connection pool")
	}
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire listen connection: %w", err)
	}
	if _, err := conn.Exec(ctx, "LISTEN "+notifyChannel); err != nil {
		conn.Release()
		return fmt.Errorf("listen %s: %w", notifyChannel, err)
	}
	if err := s.push(ctx, fn); err != nil {
		conn.Release()
		return err
	}
	go s.listen(ctx, conn, fn)
	return nil
}

// Close closes the underlying pool.
func (s *Store) Close() error {
	s.db.Pool.Close()
	return nil
}

func (s *Store) listen(ctx context.Context, conn *pgxpool.Conn, fn repository.SnapshotFunc) {
	defer conn.Release()
	for {
		if _, err := conn.Conn().WaitForNotification(ctx); err != nil {
			if ctx.Err() != nil {
				return
			}
			s.logger.Warn("record subscription interrupted", zap.Error(err))
			return
		}
		if err := s.push(ctx, fn); err != nil {
			s.logger.Warn("refresh record snapshot", zap.Error(err))
		}
	}
}

func (s *Store) push(ctx context.Context, fn repository.SnapshotFunc) error {
	records, err := s.List(ctx)
	if err != nil {
		return err
	}
	fn(records)
	return nil
}
