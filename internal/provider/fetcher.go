package provider

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"sync"
	"time"

	"github.com/amolina-dev/lectio/internal/config"
	"github.com/amolina-dev/lectio/internal/study"
)

// RemoteAPI is the provider surface the fetcher adapts. Satisfied by Client.
type RemoteAPI interface {
	ResolveDay(ctx context.Context, day study.Day, plan string) (DayEntry, error)
	Text(ctx context.Context, ref, lang string) (TextPayload, error)
}

// Fetcher maps provider responses onto the domain model: schedule resolution
// per (day, path) and bilingual content fetch per reference. It also
// normalizes known schedule irregularities via the correction table.
type Fetcher struct {
	remote      RemoteAPI
	primary     string
	secondary   string
	corrections []config.Correction
	now         func() time.Time
}

func NewFetcher(remote RemoteAPI, languages config.LanguageConfig, corrections []config.Correction) *Fetcher {
	return &Fetcher{
		remote:      remote,
		primary:     languages.Primary,
		secondary:   languages.Secondary,
		corrections: corrections,
		now:         time.Now,
	}
}

// ResolvesLocally reports whether the path's schedule is computed offline,
// with no network round-trip.
func (f *Fetcher) ResolvesLocally(path string) bool {
	return path == study.PathPsalter
}

// ResolveSchedule maps a calendar day and study path to the scheduled
// reading. The psalter path is deterministic and never touches the network.
func (f *Fetcher) ResolveSchedule(ctx context.Context, day study.Day, path string) (study.CalendarEntry, error) {
	if path == study.PathPsalter {
		return f.psalterEntry(day)
	}

	remoteEntry, err := f.remote.ResolveDay(ctx, day, path)
	if err != nil {
		return study.CalendarEntry{}, fmt.Errorf("remote.ResolveDay > %w", err)
	}

	unitCount := remoteEntry.UnitCount
	if unitCount == 0 {
		unitCount = len(remoteEntry.AllRefs())
	}
	return study.CalendarEntry{
		Path:               path,
		Day:                day,
		Title:              remoteEntry.Title,
		TitleSecondary:     remoteEntry.TitleSecondary,
		Refs:               remoteEntry.AllRefs(),
		UnitCount:          unitCount,
		DateLabel:          remoteEntry.DateLabel,
		DateLabelSecondary: remoteEntry.DateLabelSecondary,
		FetchedAt:          f.now(),
	}, nil
}

// psalterEpoch anchors the psalm rotation; any fixed date works as long as
// it never changes.
var psalterEpoch = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

const psalmCount = 150

func (f *Fetcher) psalterEntry(day study.Day) (study.CalendarEntry, error) {
	t, err := day.Time()
	if err != nil {
		return study.CalendarEntry{}, err
	}
	year, month, dayOfMonth := t.Date()
	days := int(time.Date(year, month, dayOfMonth, 0, 0, 0, 0, time.UTC).Sub(psalterEpoch).Hours() / 24)
	psalm := ((days%psalmCount)+psalmCount)%psalmCount + 1

	entry := study.CalendarEntry{
		Path:      study.PathPsalter,
		Day:       day,
		Title:     fmt.Sprintf("Psalm %d", psalm),
		Refs:      []string{fmt.Sprintf("psalms/%d", psalm)},
		UnitCount: 1,
		FetchedAt: f.now(),
	}
	if f.secondary != "" {
		entry.TitleSecondary = fmt.Sprintf("Psalmus %d", psalm)
	}
	return entry, nil
}

// FetchContent fetches both languages of ref concurrently. Both fetches are
// always awaited; one language failing is recorded in the language flags, and
// only when every language fails does the operation fail.
func (f *Fetcher) FetchContent(ctx context.Context, ref string) (study.TextEntry, error) {
	var (
		primaryUnits   []FlatUnit
		secondaryUnits []FlatUnit
		primaryErr     error
		secondaryErr   error
	)

	var wg sync.WaitGroup
	if f.secondary != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			secondaryUnits, secondaryErr = f.fetchLanguage(ctx, ref, f.secondary)
		}()
	}
	primaryUnits, primaryErr = f.fetchLanguage(ctx, ref, f.primary)
	wg.Wait()

	if primaryErr != nil && (f.secondary == "" || secondaryErr != nil) {
		return study.TextEntry{}, fmt.Errorf("fetch %s: %w", ref, errors.Join(ErrBothLanguagesFailed, primaryErr, secondaryErr))
	}
	if primaryErr != nil {
		slog.Default().Warn("primary language failed, keeping secondary only", "ref", ref, "error", primaryErr)
	}
	if secondaryErr != nil {
		slog.Default().Warn("secondary language failed, keeping primary only", "ref", ref, "error", secondaryErr)
	}

	return mergeLanguages(ref, primaryUnits, secondaryUnits, study.Languages{
		Primary:   primaryErr == nil,
		Secondary: f.secondary != "" && secondaryErr == nil,
	}, f.now()), nil
}

// rangeRef matches references of the form section/start-end.
var rangeRef = regexp.MustCompile(`^(.+)/(\d+)-(\d+)$`)

func (f *Fetcher) fetchLanguage(ctx context.Context, ref, lang string) ([]FlatUnit, error) {
	if section, start, end, ok := f.correctedRange(ref); ok {
		// The scheduled range under-counts the provider's content for this
		// section: fetch the whole section and slice to the requested range.
		payload, err := f.remote.Text(ctx, section, lang)
		if err != nil {
			return nil, fmt.Errorf("remote.Text(%s) > %w", section, err)
		}
		units := payload.Text.Flatten(payload.ChapterStart)
		if start < 1 {
			start = 1
		}
		if end > len(units) {
			end = len(units)
		}
		if start > end {
			return nil, fmt.Errorf("corrected range %d-%d out of bounds for %s (%d units)", start, end, section, len(units))
		}
		sliced := make([]FlatUnit, end-start+1)
		copy(sliced, units[start-1:end])
		if len(sliced) > 0 {
			sliced[0].FirstInChapter = true
		}
		return sliced, nil
	}

	payload, err := f.remote.Text(ctx, ref, lang)
	if err != nil {
		return nil, fmt.Errorf("remote.Text(%s) > %w", ref, err)
	}
	return payload.Text.Flatten(payload.ChapterStart), nil
}

// correctedRange reports whether ref is a range reference covered by the
// correction table, and if so the section and the requested sub-range.
func (f *Fetcher) correctedRange(ref string) (section string, start, end int, ok bool) {
	match := rangeRef.FindStringSubmatch(ref)
	if match == nil {
		return "", 0, 0, false
	}
	section = match[1]
	start, _ = strconv.Atoi(match[2])
	end, _ = strconv.Atoi(match[3])
	for _, correction := range f.corrections {
		if correction.Section == section && correction.ReportedEnd == end {
			return section, start, end, true
		}
	}
	return "", 0, 0, false
}

func mergeLanguages(ref string, primary, secondary []FlatUnit, loaded study.Languages, fetchedAt time.Time) study.TextEntry {
	base := primary
	baseIsPrimary := true
	if !loaded.Primary {
		base = secondary
		baseIsPrimary = false
	}

	units := make([]study.ContentUnit, 0, len(base))
	var breaks []int
	for i, unit := range base {
		contentUnit := study.ContentUnit{
			Chapter:        unit.Chapter,
			FirstInChapter: unit.FirstInChapter,
		}
		if baseIsPrimary {
			contentUnit.Primary = unit.Text
			if loaded.Secondary && i < len(secondary) {
				contentUnit.Secondary = secondary[i].Text
			}
		} else {
			contentUnit.Secondary = unit.Text
		}
		if unit.FirstInChapter {
			breaks = append(breaks, i)
		}
		units = append(units, contentUnit)
	}

	return study.TextEntry{
		Ref:           ref,
		Units:         units,
		ChapterBreaks: breaks,
		Languages:     loaded,
		FetchedAt:     fetchedAt,
	}
}
