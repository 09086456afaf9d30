package provider

import "errors"

var (
	// ErrScheduleEntryNotFound means the provider's calendar for the day
	// resolved, but carried no entry for the requested study path. Treated as
	// a hard fetch failure and never retried within the same call.
	ErrScheduleEntryNotFound = errors.New("schedule entry not found")

	// ErrBothLanguagesFailed means neither language of a text could be
	// fetched. A single failed language is recovered locally and never
	// surfaces as an error.
	ErrBothLanguagesFailed = errors.New("both languages failed to fetch")
)
