package postgres

import (
	"context"
	"encoding/json"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/qabristan-app/qabristan/internal/errs"
	"github.com/qabristan-app/qabristan/internal/model"
)

func newStore(t *testing.T) (*Store, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	return NewStore(&DB{Pool: mock}, nil, zap.NewNop()), mock
}

func mustDoc(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

func TestStore_List(t *testing.T) {
	s, mock := newStore(t)
	defer mock.Close()

	first := model.GraveRecord{
		ID:        "aaaaaaaa-0000-0000-0000-000000000001",
		CreatedAt: "2025-02-01T10:00:00Z",
		Fields:    model.Fields{DeceasedFullName: "الینور وینس", DateOfDeath: "2023-11-04", GraveNumber: "101", Gender: model.Female},
	}
	second := model.GraveRecord{
		ID:        "aaaaaaaa-0000-0000-0000-000000000002",
		CreatedAt: "2025-01-01T10:00:00Z",
		Fields:    model.Fields{DeceasedFullName: "ارتھر پنہالیگن", DateOfDeath: "2024-02-15", GraveNumber: "102", Gender: model.Male},
	}

	mock.ExpectQuery(`SELECT doc FROM grave_records ORDER BY created_at DESC`).
		WillReturnRows(pgxmock.NewRows([]string{"doc"}).
			AddRow(mustDoc(t, first)).
			AddRow(mustDoc(t, second)))

	got, err := s.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, first, got[0])
	require.Equal(t, second, got[1])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Create(t *testing.T) {
	s, mock := newStore(t)
	defer mock.Close()

	mock.ExpectExec(`INSERT INTO grave_records \(id, doc, created_at\) VALUES \(\$1,\$2,\$3\)`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	fields := model.Fields{
		DeceasedFullName: "احمد خان",
		DateOfDeath:      "2025-01-10",
		Gender:           model.Male,
		GraveNumber:      "103",
	}
	rec, err := s.Create(context.Background(), fields)
	require.NoError(t, err)
	require.NotEmpty(t, rec.ID)
	require.NotEmpty(t, rec.CreatedAt)
	require.Equal(t, fields, rec.Fields)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Update_OK(t *testing.T) {
	s, mock := newStore(t)
	defer mock.Close()

	id := "aaaaaaaa-0000-0000-0000-000000000001"
	fields := model.Fields{DeceasedFullName: "نیا نام", DateOfDeath: "2024-02-15", GraveNumber: "102", Gender: model.Male}

	mock.ExpectExec(`UPDATE grave_records SET doc = doc \|\| \$2::jsonb WHERE id = \$1`).
		WithArgs(id, mustDoc(t, fields)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, s.Update(context.Background(), id, fields))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Update_NotFound(t *testing.T) {
	s, mock := newStore(t)
	defer mock.Close()

	mock.ExpectExec(`UPDATE grave_records SET doc = doc \|\| \$2::jsonb WHERE id = \$1`).
		WithArgs("missing", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := s.Update(context.Background(), "missing", model.Fields{})
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestStore_Watch_RequiresPool(t *testing.T) {
	s, mock := newStore(t)
	defer mock.Close()

	err := s.Watch(context.Background(), func([]model.GraveRecord) {})
	require.Error(t, err)
}
