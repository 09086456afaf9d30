// Package connectivity determines real network reachability of the content
// provider. A runtime "online" flag is unreliable on captive portals and
// firewalled networks, so reachability is confirmed with an actual probe
// request whose body is ignored.
package connectivity

import (
	"context"
	"log/slog"
	"net"
	"sync"
	"time"

	"resty.dev/v3"
)

const (
	// probeTimeout hard-aborts the probe request; this is the only explicit
	// timeout in the subsystem.
	probeTimeout = 5 * time.Second
	// verdictTTL is how long a probe result is reused before re-probing.
	verdictTTL = 30 * time.Second
)

// Prober answers "can the provider actually be reached right now". The
// verdict is cached for verdictTTL; concurrent callers inside the window
// share it and never issue duplicate probes.
type Prober struct {
	client       *resty.Client
	interfacesUp func() bool
	now          func() time.Time

	mu        sync.Mutex
	verdict   bool
	checkedAt time.Time
}

func New(baseURL string) *Prober {
	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetTimeout(probeTimeout)

	return &Prober{
		client:       client,
		interfacesUp: anyInterfaceUp,
		now:          time.Now,
	}
}

func (p *Prober) Close() error {
	return p.client.Close()
}

// IsReachable reports whether the provider can be reached. If the local
// network adapters are all down it answers false without any network I/O.
// Any HTTP response, whatever its status, counts as reachable; only a
// timeout or transport error counts as unreachable.
func (p *Prober) IsReachable(ctx context.Context) bool {
	if !p.interfacesUp() {
		return false
	}

	// The probe runs under the lock so overlapping callers wait for one
	// shared verdict instead of each probing.
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.checkedAt.IsZero() && p.now().Sub(p.checkedAt) < verdictTTL {
		return p.verdict
	}

	_, err := p.client.R().SetContext(ctx).Head("/")
	reachable := err == nil
	if err != nil {
		slog.Default().Debug("reachability probe failed", "error", err)
	}

	p.verdict = reachable
	p.checkedAt = p.now()
	return reachable
}

// anyInterfaceUp is the fast local signal: true when at least one
// non-loopback interface is up and running.
func anyInterfaceUp() bool {
	interfaces, err := net.Interfaces()
	if err != nil {
		// Can't tell; let the probe decide.
		return true
	}
	for _, iface := range interfaces {
		if iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		if iface.Flags&net.FlagUp != 0 && iface.Flags&net.FlagRunning != 0 {
			return true
		}
	}
	return false
}
