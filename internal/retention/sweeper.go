// Package retention reclaims cache storage. It deletes cached remote content
// only; user-authored data (completions, bookmarks, pins, notes) is read to
// decide eligibility and never touched.
package retention

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/amolina-dev/lectio/internal/store"
	"github.com/amolina-dev/lectio/internal/study"
)

//go:generate mockgen -source=sweeper.go -destination=../mocks/retention/mock_progress.go -package=mock_retention

// ProgressReader exposes the user-data facts the completed-day sweep needs.
// It is read-only by contract; the sweeper owns no user data.
type ProgressReader interface {
	CompletionCount(ctx context.Context, path string, day study.Day) (int, error)
	IsPinned(ctx context.Context, path string, day study.Day) (bool, error)
	HasBookmark(ctx context.Context, path string, day study.Day) (bool, error)
}

// Sweeper runs the two eviction sweeps. Both are idempotent and safe to
// interrupt; a failed item is logged and skipped, never aborting the sweep.
type Sweeper struct {
	store       *store.Store
	progress    ProgressReader
	activePaths []string
	// maxAge is the hard staleness limit for any cached entry.
	maxAge time.Duration
	// retentionDays is the completed-day window; 0 disables that sweep.
	retentionDays int
	now           func() time.Time
	logger        *slog.Logger
}

func NewSweeper(s *store.Store, progress ProgressReader, activePaths []string, maxAge time.Duration, retentionDays int) *Sweeper {
	return &Sweeper{
		store:         s,
		progress:      progress,
		activePaths:   activePaths,
		maxAge:        maxAge,
		retentionDays: retentionDays,
		now:           time.Now,
		logger:        slog.Default(),
	}
}

// Run executes the staleness sweep followed by the completed-day sweep.
func (s *Sweeper) Run(ctx context.Context) error {
	staleDeleted, err := s.SweepStale(ctx)
	if err != nil {
		return fmt.Errorf("s.SweepStale > %w", err)
	}
	completedDeleted, err := s.SweepCompleted(ctx)
	if err != nil {
		return fmt.Errorf("s.SweepCompleted > %w", err)
	}
	if staleDeleted+completedDeleted > 0 {
		s.logger.Info("retention sweep finished", "stale", staleDeleted, "completedDays", completedDeleted)
	}
	return nil
}

// SweepStale deletes every cached entry older than maxAge, regardless of
// completion state. Returns the number of deleted entries.
func (s *Sweeper) SweepStale(ctx context.Context) (int, error) {
	cutoff := s.now().Add(-s.maxAge)

	var staleRefs []string
	if err := s.store.IterateTexts(ctx, func(entry study.TextEntry) error {
		if entry.FetchedAt.Before(cutoff) {
			staleRefs = append(staleRefs, entry.Ref)
		}
		return nil
	}); err != nil {
		return 0, fmt.Errorf("store.IterateTexts > %w", err)
	}

	type calendarKey struct {
		path string
		day  study.Day
	}
	var staleDays []calendarKey
	if err := s.store.IterateCalendar(ctx, func(entry study.CalendarEntry) error {
		if entry.FetchedAt.Before(cutoff) {
			staleDays = append(staleDays, calendarKey{path: entry.Path, day: entry.Day})
		}
		return nil
	}); err != nil {
		return 0, fmt.Errorf("store.IterateCalendar > %w", err)
	}

	deleted := 0
	for _, ref := range staleRefs {
		if err := s.store.DeleteText(ctx, ref); err != nil {
			s.logger.Warn("failed to delete stale text", "ref", ref, "error", err)
			continue
		}
		deleted++
	}
	for _, key := range staleDays {
		if err := s.store.DeleteCalendar(ctx, key.path, key.day); err != nil {
			s.logger.Warn("failed to delete stale calendar entry", "path", key.path, "day", key.day, "error", err)
			continue
		}
		deleted++
	}
	return deleted, nil
}

// SweepCompleted deletes calendar days (and their texts) on active paths
// that are older than the retention window, fully completed, and neither
// pinned nor bookmarked. A retention window of 0 retains forever.
func (s *Sweeper) SweepCompleted(ctx context.Context) (int, error) {
	if s.retentionDays <= 0 {
		return 0, nil
	}
	cutoff := study.DayOf(s.now()).AddDays(-s.retentionDays)

	var candidates []study.CalendarEntry
	if err := s.store.IterateCalendar(ctx, func(entry study.CalendarEntry) error {
		if !slices.Contains(s.activePaths, entry.Path) {
			return nil
		}
		if !entry.Day.Before(cutoff) {
			return nil
		}
		candidates = append(candidates, entry)
		return nil
	}); err != nil {
		return 0, fmt.Errorf("store.IterateCalendar > %w", err)
	}

	deleted := 0
	for _, entry := range candidates {
		evict, err := s.eligible(ctx, entry)
		if err != nil {
			s.logger.Warn("failed to check eviction eligibility", "path", entry.Path, "day", entry.Day, "error", err)
			continue
		}
		if !evict {
			continue
		}
		if err := s.store.DeleteCalendar(ctx, entry.Path, entry.Day); err != nil {
			s.logger.Warn("failed to delete completed calendar entry", "path", entry.Path, "day", entry.Day, "error", err)
			continue
		}
		for _, ref := range entry.Refs {
			if err := s.store.DeleteText(ctx, ref); err != nil {
				s.logger.Warn("failed to delete completed day text", "ref", ref, "error", err)
			}
		}
		deleted++
	}
	return deleted, nil
}

func (s *Sweeper) eligible(ctx context.Context, entry study.CalendarEntry) (bool, error) {
	pinned, err := s.progress.IsPinned(ctx, entry.Path, entry.Day)
	if err != nil {
		return false, fmt.Errorf("progress.IsPinned > %w", err)
	}
	if pinned {
		return false, nil
	}
	bookmarked, err := s.progress.HasBookmark(ctx, entry.Path, entry.Day)
	if err != nil {
		return false, fmt.Errorf("progress.HasBookmark > %w", err)
	}
	if bookmarked {
		return false, nil
	}
	completions, err := s.progress.CompletionCount(ctx, entry.Path, entry.Day)
	if err != nil {
		return false, fmt.Errorf("progress.CompletionCount > %w", err)
	}
	return completions >= entry.UnitCount, nil
}
