// Package localfile implements RecordStore on a single JSON document in the
// data directory: the whole collection is serialized as one array and written
// back after every mutation.
package localfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/qabristan-app/qabristan/internal/errs"
	"github.com/qabristan-app/qabristan/internal/model"
	"github.com/qabristan-app/qabristan/internal/repository"
)

const fileName = "records.json"

// Store keeps the collection in memory and writes it through to disk
// synchronously after each successful create or update.
type Store struct {
	mu       sync.Mutex
	path     string
	records  []model.GraveRecord
	watch    repository.SnapshotFunc
	watchCtx context.Context
}

// Open loads the stored collection from dir, seeding the built-in starter
// set when no file exists yet. A file that exists but does not parse is a
// hard error; nothing repairs or discards stored data.
func Open(dir string) (*Store, error) {
	s := &Store{path: filepath.Join(dir, fileName)}
	b, err := os.ReadFile(s.path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		s.records = model.Seed(time.Now())
	case err != nil:
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	default:
		if err := json.Unmarshal(b, &s.records); err != nil {
			return nil, fmt.Errorf("decode %s: %w", s.path, err)
		}
	}
	return s, nil
}

// List returns a copy of the in-memory snapshot.
func (s *Store) List(ctx context.Context) ([]model.GraveRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot(), nil
}

// Create prepends a new record and persists the whole collection.
func (s *Store) Create(ctx context.Context, fields model.Fields) (model.GraveRecord, error) {
	rec := model.GraveRecord{
		ID:        model.NewID(),
		CreatedAt: model.Timestamp(time.Now()),
		Fields:    fields,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.records
	s.records = append([]model.GraveRecord{rec}, prev...)
	if err := s.persist(); err != nil {
		s.records = prev
		return model.GraveRecord{}, err
	}
	s.notify()
	return rec, nil
}

// Update replaces the editable fields of an existing record in place and
// persists the whole collection. Position, id and createdAt are unchanged.
func (s *Store) Update(ctx context.Context, id string, fields model.Fields) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.records {
		if s.records[i].ID != id {
			continue
		}
		prev := s.records[i].Fields
		s.records[i].Fields = fields
		if err := s.persist(); err != nil {
			s.records[i].Fields = prev
			return err
		}
		s.notify()
		return nil
	}
	return fmt.Errorf("record %s: %w", id, errs.ErrNotFound)
}

// Watch registers the snapshot callback and delivers the current state once.
// Mutations invoke the callback synchronously afterwards until ctx is done.
func (s *Store) Watch(ctx context.Context, fn repository.SnapshotFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watch = fn
	s.watchCtx = ctx
	if fn != nil && ctx.Err() == nil {
		fn(s.snapshot())
	}
	return nil
}

// Close is a no-op; every mutation is already on disk.
func (s *Store) Close() error { return nil }

// persist writes the full collection as one document. Callers hold the lock.
func (s *Store) persist() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	b, err := json.MarshalIndent(s.records, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, b, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return nil
}

func (s *Store) notify() {
	if s.watch == nil || s.watchCtx.Err() != nil {
		return
	}
	s.watch(s.snapshot())
}

func (s *Store) snapshot() []model.GraveRecord {
	return append([]model.GraveRecord(nil), s.records...)
}
