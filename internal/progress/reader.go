// Package progress reads the user-data tables owned by the application's
// state layer. The cache core only ever observes this data; it is consulted
// by retention to decide what may be evicted and is never written here.
package progress

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/amolina-dev/lectio/internal/study"
)

// Reader answers completion, pin and bookmark questions for (path, day)
// pairs against the shared database.
type Reader struct {
	db *sqlx.DB
}

func NewReader(db *sqlx.DB) *Reader {
	return &Reader{db: db}
}

// CompletionCount returns how many units the user has completed for the day.
func (r *Reader) CompletionCount(ctx context.Context, path string, day study.Day) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM completions WHERE path = ? AND day = ?", path, string(day))
	if err != nil {
		return 0, fmt.Errorf("db.GetContext > %w", err)
	}
	return count, nil
}

// IsPinned reports whether the user marked the day as never-evict.
func (r *Reader) IsPinned(ctx context.Context, path string, day study.Day) (bool, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM pins WHERE path = ? AND day = ?", path, string(day))
	if err != nil {
		return false, fmt.Errorf("db.GetContext > %w", err)
	}
	return count > 0, nil
}

// HasBookmark reports whether any unit of the day carries a bookmark.
func (r *Reader) HasBookmark(ctx context.Context, path string, day study.Day) (bool, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM bookmarks WHERE path = ? AND day = ?", path, string(day))
	if err != nil {
		return false, fmt.Errorf("db.GetContext > %w", err)
	}
	return count > 0, nil
}
