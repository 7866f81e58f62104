package localfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/qabristan-app/qabristan/internal/errs"
	"github.com/qabristan-app/qabristan/internal/model"
)

func TestOpen_SeedsWhenEmpty(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)

	got, err := s.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "101", got[0].GraveNumber)
	require.Equal(t, "102", got[1].GraveNumber)
}

func TestOpen_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, fileName), []byte("{not json"), 0o600))

	_, err := Open(dir)
	require.Error(t, err)
}

func TestCreate_PrependsAndPersists(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s, err := Open(dir)
	require.NoError(t, err)

	rec, err := s.Create(ctx, model.Fields{
		DeceasedFullName: "احمد خان",
		DateOfDeath:      "2025-01-10",
		Gender:           model.Male,
		GraveNumber:      "103",
	})
	require.NoError(t, err)
	require.NotEmpty(t, rec.ID)
	require.NotEmpty(t, rec.CreatedAt)

	got, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.Equal(t, rec.ID, got[0].ID)

	// A reopened store sees the written collection, not the seed.
	reopened, err := Open(dir)
	require.NoError(t, err)
	got, err = reopened.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.Equal(t, "احمد خان", got[0].DeceasedFullName)
}

func TestUpdate_PreservesIdentityAndReplacesFields(t *testing.T) {
	ctx := context.Background()
	s, err := Open(t.TempDir())
	require.NoError(t, err)

	before, err := s.List(ctx)
	require.NoError(t, err)
	target := before[1]

	fields := target.Fields
	fields.DeceasedFullName = "نیا نام"
	fields.Notes = ""
	fields.GraveNumber = "B-9"
	require.NoError(t, s.Update(ctx, target.ID, fields))

	after, err := s.List(ctx)
	require.NoError(t, err)
	require.Equal(t, target.ID, after[1].ID)
	require.Equal(t, target.CreatedAt, after[1].CreatedAt)
	require.Equal(t, "نیا نام", after[1].DeceasedFullName)
	require.Equal(t, "B-9", after[1].GraveNumber)
	require.Empty(t, after[1].Notes)
}

func TestCreate_PersistFailureKeepsCollection(t *testing.T) {
	ctx := context.Background()
	s, err := Open(t.TempDir())
	require.NoError(t, err)

	s.path = t.TempDir() // writing a file over a directory fails

	_, err = s.Create(ctx, model.Fields{DeceasedFullName: "x", DateOfDeath: "2025-01-01", GraveNumber: "103"})
	require.Error(t, err)

	// The unsaved record must not linger in memory.
	got, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
}

func TestUpdate_PersistFailureKeepsFields(t *testing.T) {
	ctx := context.Background()
	s, err := Open(t.TempDir())
	require.NoError(t, err)

	before, err := s.List(ctx)
	require.NoError(t, err)
	target := before[0]

	s.path = t.TempDir()

	fields := target.Fields
	fields.DeceasedFullName = "نیا نام"
	require.Error(t, s.Update(ctx, target.ID, fields))

	after, err := s.List(ctx)
	require.NoError(t, err)
	require.Equal(t, target.Fields, after[0].Fields)
}

func TestUpdate_UnknownID(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)

	err = s.Update(context.Background(), "missing", model.Fields{})
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestWatch_DeliversSnapshots(t *testing.T) {
	ctx := context.Background()
	s, err := Open(t.TempDir())
	require.NoError(t, err)

	var calls [][]model.GraveRecord
	require.NoError(t, s.Watch(ctx, func(records []model.GraveRecord) {
		calls = append(calls, records)
	}))
	require.Len(t, calls, 1) // initial snapshot

	_, err = s.Create(ctx, model.Fields{DeceasedFullName: "x", DateOfDeath: "2025-01-01", GraveNumber: "5"})
	require.NoError(t, err)
	require.Len(t, calls, 2)
	require.Len(t, calls[1], 3)
}

func TestWatch_StopsAfterCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s, err := Open(t.TempDir())
	require.NoError(t, err)

	var calls int
	require.NoError(t, s.Watch(ctx, func([]model.GraveRecord) { calls++ }))
	require.Equal(t, 1, calls)

	cancel()
	_, err = s.Create(context.Background(), model.Fields{DeceasedFullName: "x", DateOfDeath: "2025-01-01", GraveNumber: "5"})
	require.NoError(t, err)
	require.Equal(t, 1, calls)
}
