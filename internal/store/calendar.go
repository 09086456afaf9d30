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

type calendarRow struct {
	Path               string `db:"path"`
	Day                string `db:"day"`
	Title              string `db:"title"`
	TitleSecondary     string `db:"title_secondary"`
	Refs               string `db:"refs"`
	UnitCount          int    `db:"unit_count"`
	DateLabel          string `db:"date_label"`
	DateLabelSecondary string `db:"date_label_secondary"`
	FetchedAt          int64  `db:"fetched_at"`
}

func (r calendarRow) toEntry() (study.CalendarEntry, error) {
	entry := study.CalendarEntry{
		Path:               r.Path,
		Day:                study.Day(r.Day),
		Title:              r.Title,
		TitleSecondary:     r.TitleSecondary,
		UnitCount:          r.UnitCount,
		DateLabel:          r.DateLabel,
		DateLabelSecondary: r.DateLabelSecondary,
		FetchedAt:          time.Unix(r.FetchedAt, 0),
	}
	if err := json.Unmarshal([]byte(r.Refs), &entry.Refs); err != nil {
		return study.CalendarEntry{}, fmt.Errorf("json.Unmarshal refs > %w", err)
	}
	return entry, nil
}

// GetCalendar returns the cached schedule entry for (path, day), or
// ErrNotFound.
func (s *Store) GetCalendar(ctx context.Context, path string, day study.Day) (study.CalendarEntry, error) {
	var row calendarRow
	err := s.db.GetContext(ctx, &row, "SELECT * FROM calendar WHERE path = ? AND day = ?", path, string(day))
	if errors.Is(err, sql.ErrNoRows) {
		return study.CalendarEntry{}, ErrNotFound
	}
	if err != nil {
		return study.CalendarEntry{}, fmt.Errorf("db.GetContext > %w", err)
	}
	return row.toEntry()
}

// PutCalendar upserts a schedule entry by (path, day). The optional localized
// date labels follow the backfill rule: an update only ever moves them from
// empty to populated, never the other way.
func (s *Store) PutCalendar(ctx context.Context, entry study.CalendarEntry) error {
	refs, err := json.Marshal(entry.Refs)
	if err != nil {
		return fmt.Errorf("json.Marshal refs > %w", err)
	}
	if entry.Refs == nil {
		refs = []byte("[]")
	}

	query := `INSERT INTO calendar
			(path, day, title, title_secondary, refs, unit_count, date_label, date_label_secondary, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(path, day) DO UPDATE SET
			title = excluded.title,
			title_secondary = excluded.title_secondary,
			refs = excluded.refs,
			unit_count = excluded.unit_count,
			date_label = CASE WHEN calendar.date_label = '' THEN excluded.date_label ELSE calendar.date_label END,
			date_label_secondary = CASE WHEN calendar.date_label_secondary = '' THEN excluded.date_label_secondary ELSE calendar.date_label_secondary END,
			fetched_at = excluded.fetched_at`
	if _, err := s.db.ExecContext(ctx, query,
		entry.Path, string(entry.Day),
		entry.Title, entry.TitleSecondary,
		string(refs), entry.UnitCount,
		entry.DateLabel, entry.DateLabelSecondary,
		entry.FetchedAt.Unix(),
	); err != nil {
		return fmt.Errorf("failed to upsert calendar %s:%s: %w", entry.Path, entry.Day, err)
	}
	return nil
}

// DeleteCalendar removes the cached schedule entry for (path, day), if any.
func (s *Store) DeleteCalendar(ctx context.Context, path string, day study.Day) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM calendar WHERE path = ? AND day = ?", path, string(day)); err != nil {
		return fmt.Errorf("failed to delete calendar %s:%s: %w", path, day, err)
	}
	return nil
}

// CountCalendar returns the number of cached schedule entries.
func (s *Store) CountCalendar(ctx context.Context) (int, error) {
	var count int
	if err := s.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM calendar"); err != nil {
		return 0, fmt.Errorf("db.GetContext > %w", err)
	}
	return count, nil
}

// IterateCalendar streams every cached schedule entry to fn, oldest day
// first. Intended for maintenance sweeps only.
func (s *Store) IterateCalendar(ctx context.Context, fn func(study.CalendarEntry) error) error {
	rows, err := s.db.QueryxContext(ctx, "SELECT * FROM calendar ORDER BY day, path")
	if err != nil {
		return fmt.Errorf("db.QueryxContext > %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	for rows.Next() {
		var row calendarRow
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
