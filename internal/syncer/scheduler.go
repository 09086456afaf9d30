// Package syncer runs background synchronization: a periodic full sync, a
// once-per-day prefetch of upcoming readings, and cache retention. At most
// one sync is ever in flight; extra triggers are silently dropped.
package syncer

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/amolina-dev/lectio/internal/cache"
	"github.com/amolina-dev/lectio/internal/store"
	"github.com/amolina-dev/lectio/internal/study"
)

//go:generate mockgen -source=scheduler.go -destination=../mocks/syncer/mock_deps.go -package=mock_syncer

// CacheReader is the local-first read protocol the prefetch drives.
// Satisfied by cache.Service.
type CacheReader interface {
	Calendar(ctx context.Context, path string, day study.Day) (study.CalendarEntry, error)
	Content(ctx context.Context, ref string) (study.TextEntry, error)
}

// MetaStore persists scheduler metadata and warm calendar refreshes.
// Satisfied by store.Store.
type MetaStore interface {
	GetMeta(ctx context.Context, key string) (string, error)
	PutMeta(ctx context.Context, key, value string) error
	PutCalendar(ctx context.Context, entry study.CalendarEntry) error
}

// Sweeper runs retention after a prefetch pass. Satisfied by
// retention.Sweeper.
type Sweeper interface {
	Run(ctx context.Context) error
}

// Progress is the running total of a daily prefetch pass, published to
// subscribers after every item.
type Progress struct {
	Completed int
	Failed    int
	Total     int
}

type Config struct {
	// Paths are the active study paths to keep warm.
	Paths []string
	// Interval between background sync passes.
	Interval time.Duration
	// LookAheadDays is how many days past today the daily prefetch covers.
	LookAheadDays int
	// WarmDays is how many upcoming days of calendar entries every sync
	// pass silently refreshes.
	WarmDays int
}

// Deps are the scheduler's collaborators. Meta and Sweeper may be nil when
// local storage failed to open; the scheduler then degrades gracefully.
type Deps struct {
	Cache   CacheReader
	Fetcher cache.Fetcher
	Prober  cache.Prober
	Meta    MetaStore
	Sweeper Sweeper
	// Gate reports whether background syncing is currently wanted (the
	// original gates on tab visibility). Nil means always active.
	Gate func() bool
}

// reachabilityPollInterval is how often Run rechecks reachability between
// sync passes, to retrigger promptly when the network comes back.
const reachabilityPollInterval = 30 * time.Second

type Scheduler struct {
	cfg  Config
	deps Deps

	syncing atomic.Bool
	trigger chan struct{}

	mu          sync.Mutex
	subscribers []chan Progress

	// lastPrefetchDay is the in-memory fallback guard when Meta is nil.
	lastPrefetchDay study.Day
	wasReachable    bool

	now    func() time.Time
	logger *slog.Logger
}

func New(cfg Config, deps Deps) *Scheduler {
	return &Scheduler{
		cfg:     cfg,
		deps:    deps,
		trigger: make(chan struct{}, 1),
		now:     time.Now,
		logger:  slog.Default(),
	}
}

// Subscribe returns a channel receiving prefetch progress updates. Slow
// receivers miss intermediate updates rather than blocking the sync.
func (s *Scheduler) Subscribe() <-chan Progress {
	ch := make(chan Progress, 64)
	s.mu.Lock()
	s.subscribers = append(s.subscribers, ch)
	s.mu.Unlock()
	return ch
}

// Unsubscribe removes a subscription and closes its channel.
func (s *Scheduler) Unsubscribe(ch <-chan Progress) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, sub := range s.subscribers {
		if (<-chan Progress)(sub) == ch {
			s.subscribers = append(s.subscribers[:i], s.subscribers[i+1:]...)
			close(sub)
			return
		}
	}
}

func (s *Scheduler) publish(p Progress) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range s.subscribers {
		select {
		case ch <- p:
		default:
		}
	}
}

// Trigger requests a sync outside the regular interval (the app regained
// focus, the user asked, ...). Non-blocking; triggers coalesce.
func (s *Scheduler) Trigger() {
	select {
	case s.trigger <- struct{}{}:
	default:
	}
}

// Run executes a sync shortly after start, then every interval, until ctx is
// cancelled. Between passes it watches for explicit triggers and for the
// network transitioning back to reachable.
func (s *Scheduler) Run(ctx context.Context) error {
	s.Sync(ctx)

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()
	probeTicker := time.NewTicker(reachabilityPollInterval)
	defer probeTicker.Stop()

	s.wasReachable = s.deps.Prober.IsReachable(ctx)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.Sync(ctx)
		case <-s.trigger:
			s.Sync(ctx)
		case <-probeTicker.C:
			reachable := s.deps.Prober.IsReachable(ctx)
			if reachable && !s.wasReachable {
				s.logger.Info("network regained, triggering sync")
				s.Sync(ctx)
			}
			s.wasReachable = reachable
		}
	}
}

// Sync runs one full pass: warm calendar refresh, the daily prefetch if it
// has not run today, and retention after a prefetch. A pass that arrives
// while another is in flight, or while the gate is closed, is a silent
// no-op. There is no mid-flight cancellation; all writes are additive and
// safe to abandon.
func (s *Scheduler) Sync(ctx context.Context) {
	if s.deps.Gate != nil && !s.deps.Gate() {
		return
	}
	if !s.syncing.CompareAndSwap(false, true) {
		return
	}
	defer s.syncing.Store(false)

	today := study.DayOf(s.now())
	s.warmCalendar(ctx, today)

	if !s.prefetchedToday(ctx, today) {
		s.prefetch(ctx, today)
		if s.deps.Sweeper != nil {
			if err := s.deps.Sweeper.Run(ctx); err != nil {
				s.logger.Warn("retention sweep failed", "error", err)
			}
		}
	}
}

// Prefetch forces the daily prefetch pass immediately, regardless of whether
// one already ran today. Used by the CLI.
func (s *Scheduler) Prefetch(ctx context.Context) Progress {
	return s.prefetch(ctx, study.DayOf(s.now()))
}

// warmCalendar silently refreshes the next few days of calendar entries for
// every active path, overwriting cache without progress reporting.
func (s *Scheduler) warmCalendar(ctx context.Context, today study.Day) {
	reachable := s.deps.Prober.IsReachable(ctx)
	for _, path := range s.cfg.Paths {
		if !reachable && !s.deps.Fetcher.ResolvesLocally(path) {
			continue
		}
		for i := 0; i <= s.cfg.WarmDays; i++ {
			day := today.AddDays(i)
			entry, err := s.deps.Fetcher.ResolveSchedule(ctx, day, path)
			if err != nil {
				s.logger.Debug("warm calendar refresh failed", "path", path, "day", day, "error", err)
				continue
			}
			if s.deps.Meta == nil {
				continue
			}
			if err := s.deps.Meta.PutCalendar(ctx, entry); err != nil {
				s.logger.Debug("warm calendar write failed", "path", path, "day", day, "error", err)
			}
		}
	}
}

func (s *Scheduler) prefetchedToday(ctx context.Context, today study.Day) bool {
	if s.deps.Meta == nil {
		return s.lastPrefetchDay == today
	}
	last, err := s.deps.Meta.GetMeta(ctx, store.MetaLastPrefetchDay)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			s.logger.Warn("failed to read prefetch day", "error", err)
		}
		return false
	}
	return study.Day(last) == today
}

// prefetch resolves and fetches every (path, day) item from today through
// the look-ahead window. Item failures are counted, never fatal; the day is
// marked done even after partial failure so a broken item cannot cause a
// retry storm.
func (s *Scheduler) prefetch(ctx context.Context, today study.Day) Progress {
	progress := Progress{Total: len(s.cfg.Paths) * (s.cfg.LookAheadDays + 1)}
	s.logger.Info("daily prefetch starting", "paths", len(s.cfg.Paths), "days", s.cfg.LookAheadDays+1)

	for _, path := range s.cfg.Paths {
		for i := 0; i <= s.cfg.LookAheadDays; i++ {
			day := today.AddDays(i)
			if err := s.prefetchItem(ctx, path, day); err != nil {
				progress.Failed++
				s.logger.Warn("prefetch item failed", "path", path, "day", day, "error", err)
			} else {
				progress.Completed++
			}
			s.publish(progress)
		}
	}

	s.markPrefetched(ctx, today)
	s.logger.Info("daily prefetch finished", "completed", progress.Completed, "failed", progress.Failed)
	return progress
}

func (s *Scheduler) prefetchItem(ctx context.Context, path string, day study.Day) error {
	entry, err := s.deps.Cache.Calendar(ctx, path, day)
	if err != nil {
		return err
	}
	for _, ref := range entry.Refs {
		if _, err := s.deps.Cache.Content(ctx, ref); err != nil {
			return err
		}
	}
	return nil
}

func (s *Scheduler) markPrefetched(ctx context.Context, today study.Day) {
	s.lastPrefetchDay = today
	if s.deps.Meta == nil {
		return
	}
	if err := s.deps.Meta.PutMeta(ctx, store.MetaLastPrefetchDay, string(today)); err != nil {
		s.logger.Warn("failed to record prefetch day", "error", err)
	}
}
