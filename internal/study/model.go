// Package study defines the domain model shared by the cache, sync and
// retention layers: cached remote text and calendar entries, plus the small
// metadata records the scheduler keeps between runs.
package study

import "time"

// ContentUnit is a single reading unit (typically one verse) in a text entry.
// Primary may be empty when only the secondary language could be fetched.
type ContentUnit struct {
	Primary        string `json:"primary"`
	Secondary      string `json:"secondary,omitempty"`
	Chapter        int    `json:"chapter"`
	FirstInChapter bool   `json:"firstInChapter,omitempty"`
}

// Languages records which of the two configured languages were actually
// obtained when a text entry was fetched.
type Languages struct {
	Primary   bool `json:"primary"`
	Secondary bool `json:"secondary"`
}

// TextEntry is cached remote text content, keyed by its opaque reference.
// Re-fetching the same ref overwrites the entry in place.
type TextEntry struct {
	Ref           string
	Units         []ContentUnit
	ChapterBreaks []int
	Languages     Languages
	FetchedAt     time.Time
}

// CalendarEntry is a cached schedule resolution for one study path on one day.
// DateLabel and DateLabelSecondary are optional and may be backfilled later;
// a backfill only ever moves them from empty to populated.
type CalendarEntry struct {
	Path               string
	Day                Day
	Title              string
	TitleSecondary     string
	Refs               []string
	UnitCount          int
	DateLabel          string
	DateLabelSecondary string
	FetchedAt          time.Time
}

// MetaRecord is an opaque scalar under a string key, e.g. the day of the last
// daily prefetch.
type MetaRecord struct {
	Key   string
	Value string
}
