package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/amolina-dev/lectio/internal/study"
)

type textRow struct {
	Ref           string `db:"ref"`
	Units         string `db:"units"`
	ChapterBreaks string `db:"chapter_breaks"`
	HasPrimary    bool   `db:"has_primary"`
	HasSecondary  bool   `db:"has_secondary"`
	FetchedAt     int64  `db:"fetched_at"`
}

func (r textRow) toEntry() (study.TextEntry, error) {
	entry := study.TextEntry{
		Ref: r.Ref,
		Languages: study.Languages{
			Primary:   r.HasPrimary,
			Secondary: r.HasSecondary,
		},
		FetchedAt: time.Unix(r.FetchedAt, 0),
	}
	if err := json.Unmarshal([]byte(r.Units), &entry.Units); err != nil {
		return study.TextEntry{}, fmt.Errorf("json.Unmarshal units > %w", err)
	}
	if err := json.Unmarshal([]byte(r.ChapterBreaks), &entry.ChapterBreaks); err != nil {
		return study.TextEntry{}, fmt.Errorf("json.Unmarshal chapter breaks > %w", err)
	}
	return entry, nil
}

// GetText returns the cached text entry for ref, or ErrNotFound.
func (s *Store) GetText(ctx context.Context, ref string) (study.TextEntry, error) {
	var row textRow
	err := s.db.GetContext(ctx, &row, "SELECT * FROM texts WHERE ref = ?", ref)
	if errors.Is(err, sql.ErrNoRows) {
		return study.TextEntry{}, ErrNotFound
	}
	if err != nil {
		return study.TextEntry{}, fmt.Errorf("db.GetContext > %w", err)
	}
	return row.toEntry()
}

// PutText upserts a text entry by ref. Last write wins; there is no
// versioning of cached content.
func (s *Store) PutText(ctx context.Context, entry study.TextEntry) error {
	units, err := json.Marshal(entry.Units)
	if err != nil {
		return fmt.Errorf("json.Marshal units > %w", err)
	}
	breaks, err := json.Marshal(entry.ChapterBreaks)
	if err != nil {
		return fmt.Errorf("json.Marshal chapter breaks > %w", err)
	}
	if entry.ChapterBreaks == nil {
		breaks = []byte("[]")
	}

	query := `INSERT INTO texts (ref, units, chapter_breaks, has_primary, has_secondary, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(ref) DO UPDATE SET
			units = excluded.units,
			chapter_breaks = excluded.chapter_breaks,
			has_primary = excluded.has_primary,
			has_secondary = excluded.has_secondary,
			fetched_at = excluded.fetched_at`
	if _, err := s.db.ExecContext(ctx, query,
		entry.Ref, string(units), string(breaks),
		entry.Languages.Primary, entry.Languages.Secondary,
		entry.FetchedAt.Unix(),
	); err != nil {
		return fmt.Errorf("failed to upsert text %s: %w", entry.Ref, err)
	}
	return nil
}

// DeleteText removes the cached text entry for ref, if any.
func (s *Store) DeleteText(ctx context.Context, ref string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM texts WHERE ref = ?", ref); err != nil {
		return fmt.Errorf("failed to delete text %s: %w", ref, err)
	}
	return nil
}

// CountTexts returns the number of cached text entries.
func (s *Store) CountTexts(ctx context.Context) (int, error) {
	var count int
	if err := s.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM texts"); err != nil {
		return 0, fmt.Errorf("db.GetContext > %w", err)
	}
	return count, nil
}

// IterateTexts streams every cached text entry to fn. Intended for
// maintenance sweeps only, never for hot-path reads.
func (s *Store) IterateTexts(ctx context.Context, fn func(study.TextEntry) error) error {
	rows, err := s.db.QueryxContext(ctx, "SELECT * FROM texts ORDER BY ref")
	if err != nil {
		return fmt.Errorf("db.QueryxContext > %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	for rows.Next() {
		var row textRow
		if err := rows.StructScan(&row); err != nil {
			return fmt.Errorf("rows.StructScan > %w", err)
		}
		entry, err := row.toEntry()
		if err != nil {
			return err
		}
		if err := fn(entry); err != nil {
			return err
		}
	}
	return rows.Err()
}
