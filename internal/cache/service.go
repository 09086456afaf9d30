// Package cache implements the local-first fetch protocol: serve fresh cache
// without touching the network, refresh stale entries when the provider is
// reachable, and always prefer a stale answer over no answer.
package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/amolina-dev/lectio/internal/store"
	"github.com/amolina-dev/lectio/internal/study"
)

//go:generate mockgen -source=service.go -destination=../mocks/cache/mock_service.go -package=mock_cache

// Fetcher resolves schedules and fetches content from the remote provider.
type Fetcher interface {
	ResolveSchedule(ctx context.Context, day study.Day, path string) (study.CalendarEntry, error)
	FetchContent(ctx context.Context, ref string) (study.TextEntry, error)
	ResolvesLocally(path string) bool
}

// Prober reports whether the provider can actually be reached.
type Prober interface {
	IsReachable(ctx context.Context) bool
}

// Staleness thresholds per entry type. An entry younger than its threshold
// is served without any network activity.
const (
	ContentTTL  = 7 * 24 * time.Hour
	CalendarTTL = 24 * time.Hour
)

// ErrOfflineNoCache is the terminal failure of a read: no usable cached
// entry and the provider cannot be reached.
var ErrOfflineNoCache = errors.New("offline and no cached data")

// Service is the read entry point for UI-facing callers and the sync
// scheduler alike.
type Service struct {
	store   *store.Store // nil when local storage failed to open; reads degrade to network-only
	fetcher Fetcher
	prober  Prober
	now     func() time.Time
	logger  *slog.Logger
}

func NewService(s *store.Store, fetcher Fetcher, prober Prober) *Service {
	return &Service{
		store:   s,
		fetcher: fetcher,
		prober:  prober,
		now:     time.Now,
		logger:  slog.Default(),
	}
}

// Calendar returns the schedule entry for (path, day), consulting the cache
// first. Local-rule paths may resolve even while unreachable.
func (s *Service) Calendar(ctx context.Context, path string, day study.Day) (study.CalendarEntry, error) {
	var (
		cached study.CalendarEntry
		found  bool
	)
	if s.store != nil {
		entry, err := s.store.GetCalendar(ctx, path, day)
		if err == nil {
			cached, found = entry, true
		} else if !errors.Is(err, store.ErrNotFound) {
			s.logger.Warn("calendar cache read failed", "path", path, "day", day, "error", err)
		}
	}

	if found && s.now().Sub(cached.FetchedAt) < CalendarTTL {
		return cached, nil
	}

	if !s.fetcher.ResolvesLocally(path) && !s.prober.IsReachable(ctx) {
		if found {
			return cached, nil
		}
		return study.CalendarEntry{}, fmt.Errorf("calendar %s:%s: %w", path, day, ErrOfflineNoCache)
	}

	entry, err := s.fetcher.ResolveSchedule(ctx, day, path)
	if err != nil {
		if found {
			s.logger.Warn("schedule refresh failed, serving stale entry", "path", path, "day", day, "error", err)
			return cached, nil
		}
		return study.CalendarEntry{}, fmt.Errorf("fetcher.ResolveSchedule > %w", err)
	}

	if s.store != nil {
		if err := s.store.PutCalendar(ctx, entry); err != nil {
			s.logger.Warn("calendar cache write failed", "path", path, "day", day, "error", err)
		}
	}
	return entry, nil
}

// Content returns the text entry for ref, consulting the cache first.
func (s *Service) Content(ctx context.Context, ref string) (study.TextEntry, error) {
	var (
		cached study.TextEntry
		found  bool
	)
	if s.store != nil {
		entry, err := s.store.GetText(ctx, ref)
		if err == nil {
			cached, found = entry, true
		} else if !errors.Is(err, store.ErrNotFound) {
			s.logger.Warn("text cache read failed", "ref", ref, "error", err)
		}
	}

	if found && s.now().Sub(cached.FetchedAt) < ContentTTL {
		return cached, nil
	}

	if !s.prober.IsReachable(ctx) {
		if found {
			return cached, nil
		}
		return study.TextEntry{}, fmt.Errorf("content %s: %w", ref, ErrOfflineNoCache)
	}

	entry, err := s.fetcher.FetchContent(ctx, ref)
	if err != nil {
		if found {
			s.logger.Warn("content refresh failed, serving stale entry", "ref", ref, "error", err)
			return cached, nil
		}
		return study.TextEntry{}, fmt.Errorf("fetcher.FetchContent > %w", err)
	}

	if s.store != nil {
		if err := s.store.PutText(ctx, entry); err != nil {
			s.logger.Warn("text cache write failed", "ref", ref, "error", err)
		}
	}
	return entry, nil
}
