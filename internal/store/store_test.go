package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "totals.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open("  ")
	require.Error(t, err)
}

func TestAddAndGet(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Add(ctx, "Math", 120))

	rec, err := s.Get(ctx, "Math")
	require.NoError(t, err)
	assert.Equal(t, "Math", rec.Subject)
	assert.InDelta(t, 120, rec.TotalSeconds, 1e-9)

	t.Run("duplicate subject", func(t *testing.T) {
		err := s.Add(ctx, "Math", 0)
		assert.ErrorIs(t, err, ErrAlreadyExists)
	})

	t.Run("missing subject", func(t *testing.T) {
		_, err := s.Get(ctx, "History")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("empty subject rejected", func(t *testing.T) {
		assert.Error(t, s.Add(ctx, "  ", 0))
	})

	t.Run("negative total rejected", func(t *testing.T) {
		assert.Error(t, s.Add(ctx, "Physics", -1))
	})
}

func TestRecordSessionUpserts(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	// New subject is created with the session total.
	require.NoError(t, s.RecordSession(ctx, "Math", 85))
	rec, err := s.Get(ctx, "Math")
	require.NoError(t, err)
	assert.InDelta(t, 85, rec.TotalSeconds, 1e-9)

	// Existing subject is incremented.
	require.NoError(t, s.RecordSession(ctx, "Math", 15))
	rec, err = s.Get(ctx, "Math")
	require.NoError(t, err)
	assert.InDelta(t, 100, rec.TotalSeconds, 1e-9)
}

func TestSetAndIncrementTotal(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Add(ctx, "Math", 10))

	require.NoError(t, s.SetTotal(ctx, "Math", 50))
	rec, err := s.Get(ctx, "Math")
	require.NoError(t, err)
	assert.InDelta(t, 50, rec.TotalSeconds, 1e-9)

	require.NoError(t, s.IncrementTotal(ctx, "Math", 25))
	rec, err = s.Get(ctx, "Math")
	require.NoError(t, err)
	assert.InDelta(t, 75, rec.TotalSeconds, 1e-9)

	assert.ErrorIs(t, s.SetTotal(ctx, "History", 1), ErrNotFound)
	assert.ErrorIs(t, s.IncrementTotal(ctx, "History", 1), ErrNotFound)
}

func TestRename(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Add(ctx, "Math", 10))
	require.NoError(t, s.Add(ctx, "Physics", 20))

	require.NoError(t, s.Rename(ctx, "Math", "Mathematics"))

	rec, err := s.Get(ctx, "Mathematics")
	require.NoError(t, err)
	assert.InDelta(t, 10, rec.TotalSeconds, 1e-9)
	_, err = s.Get(ctx, "Math")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, s.Rename(ctx, "Mathematics", "Physics"), ErrAlreadyExists)
	assert.ErrorIs(t, s.Rename(ctx, "History", "Geo"), ErrNotFound)
}

func TestListAndDelete(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Add(ctx, "Physics", 20))
	require.NoError(t, s.Add(ctx, "Math", 10))

	records, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Math", records[0].Subject)
	assert.Equal(t, "Physics", records[1].Subject)

	require.NoError(t, s.Delete(ctx, "Math"))
	assert.ErrorIs(t, s.Delete(ctx, "Math"), ErrNotFound)

	require.NoError(t, s.DeleteAll(ctx))
	records, err = s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestOpenIsIdempotentOnExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "totals.db")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Add(context.Background(), "Math", 5))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	rec, err := s.Get(context.Background(), "Math")
	require.NoError(t, err)
	assert.InDelta(t, 5, rec.TotalSeconds, 1e-9)
}
