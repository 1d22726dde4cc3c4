// Package availability gates memory operations on backend reachability.
//
// Probing the backend before every lifecycle hook would add a network
// round-trip per conversational turn, so the gate caches its verdict. The
// cache is an explicit state machine (unknown → reachable/unreachable) with a
// last-checked timestamp rather than a write-once global: when a recheck
// interval is configured the verdict expires and the next check probes again,
// so a backend that comes up mid-process is eventually noticed. With a zero
// interval the first verdict holds for the process lifetime, at the cost of
// staleness until restart.
package availability

import (
	"context"
	"sync"
	"time"
)

// UnavailableMessage is the fixed operator-facing message surfaced when the
// gate reports the backend unreachable. The tool surface and the CLI both
// answer with this instead of an error.
const UnavailableMessage = "Memory backend is unavailable. Start the engram server and try again."

// state is the gate's cached verdict.
type state int

const (
	stateUnknown state = iota
	stateReachable
	stateUnreachable
)

// Prober is the single backend operation the gate depends on.
// memory.Backend satisfies it.
type Prober interface {
	Health(ctx context.Context) bool
}

// Config holds configuration for a Gate.
type Config struct {
	// RecheckInterval is how long a cached verdict stays valid.
	// Zero means the first verdict is cached for the process lifetime.
	RecheckInterval time.Duration
}

// Gate caches backend reachability so higher layers can short-circuit
// without a network round-trip.
type Gate struct {
	config Config
	prober Prober

	mu          sync.Mutex
	state       state
	lastChecked time.Time

	// now is swappable for tests.
	now func() time.Time
}

// NewGate creates a gate around the given prober.
func NewGate(config Config, prober Prober) *Gate {
	return &Gate{
		config: config,
		prober: prober,
		now:    time.Now,
	}
}

// Available reports whether the backend is reachable, probing at most once
// per recheck interval. Concurrent callers during a probe serialize on the
// gate's lock; the probe itself runs under the lock so exactly one network
// call is issued per expiry.
func (g *Gate) Available(ctx context.Context) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != stateUnknown && !g.expired() {
		return g.state == stateReachable
	}

	reachable := g.prober.Health(ctx)
	if reachable {
		g.state = stateReachable
	} else {
		g.state = stateUnreachable
	}
	g.lastChecked = g.now()

	return reachable
}

// Reset discards the cached verdict so the next check probes again.
func (g *Gate) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.state = stateUnknown
}

func (g *Gate) expired() bool {
	if g.config.RecheckInterval <= 0 {
		return false
	}

	return g.now().Sub(g.lastChecked) >= g.config.RecheckInterval
}
