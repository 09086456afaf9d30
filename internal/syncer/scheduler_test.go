package syncer

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	mock_cache "github.com/amolina-dev/lectio/internal/mocks/cache"
	mock_syncer "github.com/amolina-dev/lectio/internal/mocks/syncer"
	"github.com/amolina-dev/lectio/internal/study"
)

type schedulerFixture struct {
	scheduler *Scheduler
	cache     *mock_syncer.MockCacheReader
	meta      *mock_syncer.MockMetaStore
	sweeper   *mock_syncer.MockSweeper
	fetcher   *mock_cache.MockFetcher
	prober    *mock_cache.MockProber
}

func newSchedulerFixture(t *testing.T, cfg Config, withMeta bool) *schedulerFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &schedulerFixture{
		cache:   mock_syncer.NewMockCacheReader(ctrl),
		meta:    mock_syncer.NewMockMetaStore(ctrl),
		sweeper: mock_syncer.NewMockSweeper(ctrl),
		fetcher: mock_cache.NewMockFetcher(ctrl),
		prober:  mock_cache.NewMockProber(ctrl),
	}
	deps := Deps{
		Cache:   f.cache,
		Fetcher: f.fetcher,
		Prober:  f.prober,
	}
	if withMeta {
		deps.Meta = f.meta
		deps.Sweeper = f.sweeper
	}
	f.scheduler = New(cfg, deps)
	f.scheduler.now = func() time.Time {
		return time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	}
	return f
}

func calendarFor(path string, day study.Day) study.CalendarEntry {
	return study.CalendarEntry{
		Path:      path,
		Day:       day,
		Title:     "entry",
		Refs:      []string{path + "/" + string(day)},
		UnitCount: 1,
	}
}

func TestScheduler_Prefetch_CoversLookAheadWindow(t *testing.T) {
	f := newSchedulerFixture(t, Config{
		Paths:         []string{"ordinary", "gospels"},
		LookAheadDays: 3,
	}, true)

	var mu sync.Mutex
	seen := map[string]bool{}
	f.cache.EXPECT().Calendar(gomock.Any(), gomock.Any(), gomock.Any()).Times(8).
		DoAndReturn(func(_ context.Context, path string, day study.Day) (study.CalendarEntry, error) {
			mu.Lock()
			seen[path+":"+string(day)] = true
			mu.Unlock()
			return calendarFor(path, day), nil
		})
	f.cache.EXPECT().Content(gomock.Any(), gomock.Any()).Times(8).Return(study.TextEntry{}, nil)
	f.meta.EXPECT().PutMeta(gomock.Any(), "last_prefetch_day", "2026-03-14").Return(nil)

	progress := f.scheduler.Prefetch(context.Background())
	assert.Equal(t, Progress{Completed: 8, Failed: 0, Total: 8}, progress)

	for _, path := range []string{"ordinary", "gospels"} {
		for _, day := range []string{"2026-03-14", "2026-03-15", "2026-03-16", "2026-03-17"} {
			assert.True(t, seen[path+":"+day], "missing prefetch of %s on %s", path, day)
		}
	}
}

func TestScheduler_Prefetch_CountsItemFailures(t *testing.T) {
	f := newSchedulerFixture(t, Config{
		Paths:         []string{"ordinary", "gospels"},
		LookAheadDays: 0,
	}, true)

	f.cache.EXPECT().Calendar(gomock.Any(), "ordinary", gomock.Any()).
		Return(study.CalendarEntry{}, errors.New("response error 503"))
	f.cache.EXPECT().Calendar(gomock.Any(), "gospels", gomock.Any()).
		Return(calendarFor("gospels", "2026-03-14"), nil)
	f.cache.EXPECT().Content(gomock.Any(), gomock.Any()).Return(study.TextEntry{}, nil)
	// The day is marked done even after partial failure.
	f.meta.EXPECT().PutMeta(gomock.Any(), "last_prefetch_day", "2026-03-14").Return(nil)

	progress := f.scheduler.Prefetch(context.Background())
	assert.Equal(t, Progress{Completed: 1, Failed: 1, Total: 2}, progress)
}

func TestScheduler_Sync_SkipsPrefetchAlreadyDoneToday(t *testing.T) {
	f := newSchedulerFixture(t, Config{
		Paths:         []string{"ordinary"},
		LookAheadDays: 7,
		WarmDays:      0,
	}, true)

	// Offline, remote path: the warm refresh is skipped entirely.
	f.prober.EXPECT().IsReachable(gomock.Any()).Return(false)
	f.fetcher.EXPECT().ResolvesLocally("ordinary").Return(false)
	f.meta.EXPECT().GetMeta(gomock.Any(), "last_prefetch_day").Return("2026-03-14", nil)
	// No Cache and no Sweeper expectations: neither may run.

	f.scheduler.Sync(context.Background())
}

func TestScheduler_Sync_RunsPrefetchAndRetention(t *testing.T) {
	f := newSchedulerFixture(t, Config{
		Paths:         []string{"ordinary"},
		LookAheadDays: 1,
		WarmDays:      1,
	}, true)

	f.prober.EXPECT().IsReachable(gomock.Any()).Return(true)
	f.fetcher.EXPECT().ResolveSchedule(gomock.Any(), gomock.Any(), "ordinary").Times(2).
		DoAndReturn(func(_ context.Context, day study.Day, path string) (study.CalendarEntry, error) {
			return calendarFor(path, day), nil
		})
	f.meta.EXPECT().PutCalendar(gomock.Any(), gomock.Any()).Times(2).Return(nil)

	f.meta.EXPECT().GetMeta(gomock.Any(), "last_prefetch_day").Return("2026-03-13", nil)
	f.cache.EXPECT().Calendar(gomock.Any(), "ordinary", gomock.Any()).Times(2).
		DoAndReturn(func(_ context.Context, path string, day study.Day) (study.CalendarEntry, error) {
			return calendarFor(path, day), nil
		})
	f.cache.EXPECT().Content(gomock.Any(), gomock.Any()).Times(2).Return(study.TextEntry{}, nil)
	f.meta.EXPECT().PutMeta(gomock.Any(), "last_prefetch_day", "2026-03-14").Return(nil)
	f.sweeper.EXPECT().Run(gomock.Any()).Return(nil)

	f.scheduler.Sync(context.Background())
}

func TestScheduler_Sync_GateClosed(t *testing.T) {
	f := newSchedulerFixture(t, Config{Paths: []string{"ordinary"}}, true)
	f.scheduler.deps.Gate = func() bool { return false }

	// No expectations at all: a closed gate short-circuits everything.
	f.scheduler.Sync(context.Background())
}

func TestScheduler_Sync_SingleFlight(t *testing.T) {
	f := newSchedulerFixture(t, Config{
		Paths:         []string{"ordinary"},
		LookAheadDays: 0,
	}, false)

	f.prober.EXPECT().IsReachable(gomock.Any()).AnyTimes().Return(false)
	f.fetcher.EXPECT().ResolvesLocally("ordinary").AnyTimes().Return(false)

	started := make(chan struct{})
	release := make(chan struct{})
	f.cache.EXPECT().Calendar(gomock.Any(), "ordinary", gomock.Any()).Times(1).
		DoAndReturn(func(_ context.Context, path string, day study.Day) (study.CalendarEntry, error) {
			close(started)
			<-release
			return study.CalendarEntry{Path: path, Day: day}, nil
		})

	done := make(chan struct{})
	go func() {
		defer close(done)
		f.scheduler.Sync(context.Background())
	}()

	<-started
	// A concurrent pass while one is in flight is a silent no-op; with
	// Times(1) above a second prefetch would fail the test.
	f.scheduler.Sync(context.Background())

	close(release)
	<-done
}

func TestScheduler_Sync_InMemoryDailyGuard(t *testing.T) {
	f := newSchedulerFixture(t, Config{
		Paths:         []string{"ordinary"},
		LookAheadDays: 0,
	}, false)

	f.prober.EXPECT().IsReachable(gomock.Any()).AnyTimes().Return(false)
	f.fetcher.EXPECT().ResolvesLocally("ordinary").AnyTimes().Return(false)
	f.cache.EXPECT().Calendar(gomock.Any(), "ordinary", gomock.Any()).Times(1).
		Return(calendarFor("ordinary", "2026-03-14"), nil)
	f.cache.EXPECT().Content(gomock.Any(), gomock.Any()).Times(1).Return(study.TextEntry{}, nil)

	// Without a meta store the prefetch day is guarded in memory.
	f.scheduler.Sync(context.Background())
	f.scheduler.Sync(context.Background())
}

func TestScheduler_SubscribeReceivesProgress(t *testing.T) {
	f := newSchedulerFixture(t, Config{
		Paths:         []string{"ordinary"},
		LookAheadDays: 1,
	}, false)

	f.cache.EXPECT().Calendar(gomock.Any(), "ordinary", gomock.Any()).Times(2).
		DoAndReturn(func(_ context.Context, path string, day study.Day) (study.CalendarEntry, error) {
			return calendarFor(path, day), nil
		})
	f.cache.EXPECT().Content(gomock.Any(), gomock.Any()).Times(2).Return(study.TextEntry{}, nil)

	ch := f.scheduler.Subscribe()
	final := f.scheduler.Prefetch(context.Background())

	var updates []Progress
	f.scheduler.Unsubscribe(ch)
	for p := range ch {
		updates = append(updates, p)
	}

	require.Len(t, updates, 2, "one update per item")
	assert.Equal(t, Progress{Completed: 1, Total: 2}, updates[0])
	assert.Equal(t, final, updates[1])
	assert.Equal(t, Progress{Completed: 2, Failed: 0, Total: 2}, final)
}

func TestScheduler_TriggerCoalesces(t *testing.T) {
	f := newSchedulerFixture(t, Config{Paths: nil}, false)

	// Filling the trigger channel twice must not block.
	f.scheduler.Trigger()
	f.scheduler.Trigger()
	f.scheduler.Trigger()

	select {
	case <-f.scheduler.trigger:
	default:
		t.Fatal("expected a pending trigger")
	}
	select {
	case <-f.scheduler.trigger:
		t.Fatal("triggers must coalesce into one")
	default:
	}
}
