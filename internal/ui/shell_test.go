package ui

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/qabristan-app/qabristan/internal/ai"
	"github.com/qabristan-app/qabristan/internal/repository"
	"github.com/qabristan-app/qabristan/internal/repository/localfile"
)

type stubGen struct{ out string }

func (s *stubGen) GenerateText(context.Context, string, float32) (string, error) {
	return s.out, nil
}

func runScript(t *testing.T, store repository.RecordStore, gen ai.TextGenerator, script ...string) string {
	t.Helper()
	var out bytes.Buffer
	sh := New(store, gen, nil, zap.NewNop(), strings.NewReader(strings.Join(script, "\n")+"\n"), &out)
	require.NoError(t, sh.Run(context.Background()))
	return out.String()
}

func seededStore(t *testing.T) *localfile.Store {
	t.Helper()
	s, err := localfile.Open(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestShell_SearchAndLayouts(t *testing.T) {
	store := seededStore(t)

	out := runScript(t, store, nil,
		"records",
		"search کوئی-میل-نہیں",
		"search 102",
		"list",
		"quit",
	)
	require.Contains(t, out, "no records found")
	require.Contains(t, out, "ارتھر پنہالیگن")
	require.Contains(t, out, "GRAVE")
}

func TestShell_CreateRecord(t *testing.T) {
	store := seededStore(t)

	out := runScript(t, store, nil,
		"add",
		"name احمد خان",
		"death 2025-01-10",
		"save",
		"quit",
	)
	require.Contains(t, out, "saved record")

	records, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 3)
	require.Equal(t, "احمد خان", records[0].DeceasedFullName)
	require.Equal(t, "103", records[0].GraveNumber) // suggested next number
}

func TestShell_EditPreservesIdentity(t *testing.T) {
	store := seededStore(t)
	before, err := store.List(context.Background())
	require.NoError(t, err)

	runScript(t, store, nil,
		"records",
		"edit 1",
		"name بدلا ہوا نام",
		"save",
		"quit",
	)

	after, err := store.List(context.Background())
	require.NoError(t, err)
	require.Equal(t, before[0].ID, after[0].ID)
	require.Equal(t, before[0].CreatedAt, after[0].CreatedAt)
	require.Equal(t, "بدلا ہوا نام", after[0].DeceasedFullName)
}

func TestShell_ValidationKeepsFormOpen(t *testing.T) {
	store := seededStore(t)

	out := runScript(t, store, nil,
		"add",
		"name بے تاریخ",
		"save",
		"cancel",
		"quit",
	)
	require.Contains(t, out, "validation: date of death is required")

	records, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2) // nothing was saved
}

func TestShell_Analysis(t *testing.T) {
	store := seededStore(t)

	out := runScript(t, store, &stubGen{out: "رجحانات کا خلاصہ"},
		"analysis",
		"run",
		"quit",
	)
	require.Contains(t, out, "رجحانات کا خلاصہ")
}

func TestShell_AnalysisDisabledWhenEmpty(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "records.json"), []byte("[]"), 0o600))
	store, err := localfile.Open(dir)
	require.NoError(t, err)

	out := runScript(t, store, nil, "analysis", "quit")
	require.Contains(t, out, "analysis is disabled")
}
