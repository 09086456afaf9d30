package connectivity

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestProber(baseURL string) *Prober {
	p := New(baseURL)
	p.interfacesUp = func() bool { return true }
	return p
}

func TestProber_IsReachable(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		want       bool
	}{
		{
			name:       "successful response",
			statusCode: http.StatusNoContent,
			want:       true,
		},
		{
			name:       "server error still counts as reachable",
			statusCode: http.StatusInternalServerError,
			want:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
			}))
			defer server.Close()

			p := newTestProber(server.URL)
			defer func() {
				_ = p.Close()
			}()

			assert.Equal(t, tt.want, p.IsReachable(context.Background()))
		})
	}
}

func TestProber_IsReachable_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // nothing listens any more

	p := newTestProber(server.URL)
	defer func() {
		_ = p.Close()
	}()

	assert.False(t, p.IsReachable(context.Background()))
}

func TestProber_IsReachable_InterfacesDown(t *testing.T) {
	var probes atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		probes.Add(1)
	}))
	defer server.Close()

	p := New(server.URL)
	p.interfacesUp = func() bool { return false }
	defer func() {
		_ = p.Close()
	}()

	assert.False(t, p.IsReachable(context.Background()))
	assert.Zero(t, probes.Load(), "no network I/O when all interfaces are down")
}

func TestProber_VerdictIsCached(t *testing.T) {
	var probes atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		probes.Add(1)
	}))
	defer server.Close()

	p := newTestProber(server.URL)
	defer func() {
		_ = p.Close()
	}()

	current := time.Now()
	p.now = func() time.Time { return current }

	assert.True(t, p.IsReachable(context.Background()))
	assert.True(t, p.IsReachable(context.Background()))
	assert.EqualValues(t, 1, probes.Load(), "second call within the window reuses the verdict")

	current = current.Add(31 * time.Second)
	assert.True(t, p.IsReachable(context.Background()))
	assert.EqualValues(t, 2, probes.Load(), "expired verdict triggers a fresh probe")
}
