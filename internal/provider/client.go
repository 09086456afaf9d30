// Package provider talks to the remote content provider: schedule resolution
// by calendar date and text content by reference. It performs no caching;
// that is the fetch protocol's job.
package provider

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/amolina-dev/lectio/internal/study"
	"github.com/avast/retry-go/v4"
	"resty.dev/v3"
)

const DefaultRetryAttempts = 2

// Client is the HTTP client for the provider's two endpoints.
type Client struct {
	httpClient       *resty.Client
	maxRetryAttempts uint
}

func NewClient(baseURL string, retryAttempts uint) *Client {
	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetHeader("Accept", "application/json")

	return &Client{
		httpClient:       client,
		maxRetryAttempts: retryAttempts,
	}
}

func (c *Client) Close() error {
	return c.httpClient.Close()
}

// DayEntry is one plan's scheduled reading in the provider's calendar
// response. Refs holds the multi-unit form; single-unit days use Ref.
type DayEntry struct {
	Plan               string   `json:"plan"`
	Title              string   `json:"title"`
	TitleSecondary     string   `json:"titleSecondary,omitempty"`
	Ref                string   `json:"ref,omitempty"`
	Refs               []string `json:"refs,omitempty"`
	UnitCount          int      `json:"unitCount"`
	DateLabel          string   `json:"dateLabel,omitempty"`
	DateLabelSecondary string   `json:"dateLabelSecondary,omitempty"`
}

// AllRefs returns the entry's references as an ordered list regardless of
// which wire form the provider used.
func (e DayEntry) AllRefs() []string {
	if len(e.Refs) > 0 {
		return e.Refs
	}
	if e.Ref != "" {
		return []string{e.Ref}
	}
	return nil
}

type calendarResponse struct {
	Date    string     `json:"date"`
	Entries []DayEntry `json:"entries"`
}

// ResolveDay fetches the provider calendar for day and selects the entry for
// the named plan. A calendar that resolves without the plan yields
// ErrScheduleEntryNotFound, which is not retried.
func (c *Client) ResolveDay(ctx context.Context, day study.Day, plan string) (DayEntry, error) {
	var result DayEntry
	if err := retry.Do(
		func() error {
			entry, err := c.resolveDay(ctx, day, plan)
			if err != nil {
				if !isRetryableError(err) {
					return retry.Unrecoverable(err)
				}
				return err
			}
			result = entry
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(c.maxRetryAttempts+1),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			return retry.BackOffDelay(n, err, config)
		}),
	); err != nil {
		return DayEntry{}, err
	}
	return result, nil
}

func (c *Client) resolveDay(ctx context.Context, day study.Day, plan string) (DayEntry, error) {
	response, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(&calendarResponse{}).
		Get("/calendar/" + string(day))
	if err != nil {
		return DayEntry{}, fmt.Errorf("httpClient.Get > %w", err)
	}
	if response.IsError() {
		return DayEntry{}, fmt.Errorf("response error %d: %s", response.StatusCode(), response.String())
	}

	responseBody := response.Result().(*calendarResponse)
	if responseBody == nil {
		return DayEntry{}, fmt.Errorf("empty calendar response: %s", response.String())
	}
	for _, entry := range responseBody.Entries {
		if entry.Plan == plan {
			return entry, nil
		}
	}
	return DayEntry{}, fmt.Errorf("plan %s on %s: %w", plan, day, ErrScheduleEntryNotFound)
}

// TextPayload is the decoded response of the text-by-reference endpoint for
// one language.
type TextPayload struct {
	Ref          string `json:"ref"`
	ChapterStart int    `json:"chapterStart"`
	Text         Body   `json:"text"`
}

// Text fetches the content for ref in the given language.
func (c *Client) Text(ctx context.Context, ref, lang string) (TextPayload, error) {
	var result TextPayload
	if err := retry.Do(
		func() error {
			payload, err := c.text(ctx, ref, lang)
			if err != nil {
				if !isRetryableError(err) {
					return retry.Unrecoverable(err)
				}
				return err
			}
			result = payload
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(c.maxRetryAttempts+1),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			return retry.BackOffDelay(n, err, config)
		}),
	); err != nil {
		return TextPayload{}, err
	}
	return result, nil
}

func (c *Client) text(ctx context.Context, ref, lang string) (TextPayload, error) {
	var payload TextPayload
	response, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParam("lang", lang).
		SetResult(&payload).
		Get("/texts/" + ref)
	if err != nil {
		return TextPayload{}, fmt.Errorf("httpClient.Get > %w", err)
	}
	if response.IsError() {
		return TextPayload{}, fmt.Errorf("response error %d: %s", response.StatusCode(), response.String())
	}
	if payload.ChapterStart == 0 {
		payload.ChapterStart = 1
	}
	return payload, nil
}

// isRetryableError determines if an error should trigger a retry
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	errStr := err.Error()

	// Retry on network-related errors
	if strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "i/o timeout") {
		return true
	}

	// Retry on 5xx errors (server errors)
	if strings.Contains(errStr, "response error 5") {
		return true
	}

	// Retry on rate limiting (429)
	if strings.Contains(errStr, "response error 429") {
		return true
	}

	return false
}
