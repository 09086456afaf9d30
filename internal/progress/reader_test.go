package progress

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amolina-dev/lectio/internal/store"
	"github.com/amolina-dev/lectio/internal/study"
)

func newTestReader(t *testing.T) (*Reader, *store.Store) {
	t.Helper()
	s, err := store.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = s.Close()
	})
	return NewReader(s.DB()), s
}

func TestReader_CompletionCount(t *testing.T) {
	reader, s := newTestReader(t)
	ctx := context.Background()

	count, err := reader.CompletionCount(ctx, "ordinary", study.Day("2026-03-14"))
	require.NoError(t, err)
	assert.Zero(t, count)

	for i := 0; i < 3; i++ {
		_, err := s.DB().Exec(
			"INSERT INTO completions (path, day, unit_index, completed_at) VALUES (?, ?, ?, ?)",
			"ordinary", "2026-03-14", i, time.Now().Unix(),
		)
		require.NoError(t, err)
	}
	// A different day must not leak into the count.
	_, err = s.DB().Exec(
		"INSERT INTO completions (path, day, unit_index, completed_at) VALUES (?, ?, ?, ?)",
		"ordinary", "2026-03-15", 0, time.Now().Unix(),
	)
	require.NoError(t, err)

	count, err = reader.CompletionCount(ctx, "ordinary", study.Day("2026-03-14"))
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestReader_IsPinned(t *testing.T) {
	reader, s := newTestReader(t)
	ctx := context.Background()

	pinned, err := reader.IsPinned(ctx, "ordinary", study.Day("2026-03-14"))
	require.NoError(t, err)
	assert.False(t, pinned)

	_, err = s.DB().Exec(
		"INSERT INTO pins (path, day, created_at) VALUES (?, ?, ?)",
		"ordinary", "2026-03-14", time.Now().Unix(),
	)
	require.NoError(t, err)

	pinned, err = reader.IsPinned(ctx, "ordinary", study.Day("2026-03-14"))
	require.NoError(t, err)
	assert.True(t, pinned)
}

func TestReader_HasBookmark(t *testing.T) {
	reader, s := newTestReader(t)
	ctx := context.Background()

	marked, err := reader.HasBookmark(ctx, "ordinary", study.Day("2026-03-14"))
	require.NoError(t, err)
	assert.False(t, marked)

	_, err = s.DB().Exec(
		"INSERT INTO bookmarks (path, day, unit_index, created_at) VALUES (?, ?, ?, ?)",
		"ordinary", "2026-03-14", 2, time.Now().Unix(),
	)
	require.NoError(t, err)

	marked, err = reader.HasBookmark(ctx, "ordinary", study.Day("2026-03-14"))
	require.NoError(t, err)
	assert.True(t, marked)
}
