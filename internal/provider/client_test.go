package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amolina-dev/lectio/internal/study"
)

func TestClient_ResolveDay(t *testing.T) {
	var requests atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		assert.Equal(t, "/calendar/2026-03-14", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(calendarResponse{
			Date: "2026-03-14",
			Entries: []DayEntry{
				{Plan: "gospels", Title: "Mark 4", Ref: "mark/4", UnitCount: 41},
				{Plan: "ordinary", Title: "Genesis 12", Refs: []string{"genesis/12", "genesis/13"}, UnitCount: 38},
			},
		}))
	}))
	defer server.Close()

	client := NewClient(server.URL, 1)
	defer func() {
		_ = client.Close()
	}()

	entry, err := client.ResolveDay(context.Background(), study.Day("2026-03-14"), "ordinary")
	require.NoError(t, err)
	assert.Equal(t, "Genesis 12", entry.Title)
	assert.Equal(t, []string{"genesis/12", "genesis/13"}, entry.AllRefs())
	assert.Equal(t, 38, entry.UnitCount)
	assert.EqualValues(t, 1, requests.Load())
}

func TestClient_ResolveDay_PlanNotScheduled(t *testing.T) {
	var requests atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(calendarResponse{Date: "2026-03-14"}))
	}))
	defer server.Close()

	client := NewClient(server.URL, 2)
	defer func() {
		_ = client.Close()
	}()

	_, err := client.ResolveDay(context.Background(), study.Day("2026-03-14"), "ordinary")
	assert.ErrorIs(t, err, ErrScheduleEntryNotFound)
	assert.EqualValues(t, 1, requests.Load(), "a resolved calendar without the plan must not be retried")
}

func TestClient_ResolveDay_ServerErrorIsRetried(t *testing.T) {
	var requests atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, 1)
	defer func() {
		_ = client.Close()
	}()

	_, err := client.ResolveDay(context.Background(), study.Day("2026-03-14"), "ordinary")
	assert.Error(t, err)
	assert.EqualValues(t, 2, requests.Load(), "one retry after the first 5xx")
}

func TestClient_Text(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/texts/genesis/12", r.URL.Path)
		assert.Equal(t, "la", r.URL.Query().Get("lang"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ref": "genesis/12", "text": ["primus", "secundus"]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 1)
	defer func() {
		_ = client.Close()
	}()

	payload, err := client.Text(context.Background(), "genesis/12", "la")
	require.NoError(t, err)
	assert.Equal(t, "genesis/12", payload.Ref)
	assert.Equal(t, 1, payload.ChapterStart, "missing chapterStart defaults to 1")
	assert.Equal(t, Body{Kind: BodyFlat, Flat: []string{"primus", "secundus"}}, payload.Text)
}

func TestClient_Text_NotFound(t *testing.T) {
	var requests atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL, 2)
	defer func() {
		_ = client.Close()
	}()

	_, err := client.Text(context.Background(), "no/such", "en")
	assert.Error(t, err)
	assert.EqualValues(t, 1, requests.Load(), "4xx responses are not retried")
}
