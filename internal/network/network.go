// Package network relays connectivity transitions to interested callers.
//
// The monitor is a pure signal relay: it samples a connectivity probe on an
// interval, answers the synchronous "online now?" query, and invokes
// subscriber callbacks on transitions. It never retries, debounces, or
// touches storage; callers use it only to decide which data to request.
package network

import (
	"net"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/wanderwise/wander/internal/shared"
)

// Probe reports whether the network currently looks reachable.
type Probe func() bool

// DialProbe returns a Probe that attempts a TCP dial to addr within timeout.
func DialProbe(addr string, timeout time.Duration) Probe {
	return func() bool {
		conn, err := net.DialTimeout("tcp", addr, timeout)
		if err != nil {
			return false
		}
		conn.Close()
		return true
	}
}

type subscriber struct {
	onOnline  func()
	onOffline func()
}

// Monitor samples a [Probe] on an interval and fans transition events out to
// subscribers.
type Monitor struct {
	probe    Probe
	interval time.Duration
	logger   *log.Logger

	mu     sync.Mutex
	online bool
	subs   map[int]subscriber
	nextID int
	done   chan struct{}
}

// NewMonitor creates a Monitor over the given probe. The initial state is
// one immediate probe sample.
func NewMonitor(probe Probe, interval time.Duration, logger *log.Logger) *Monitor {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Monitor{
		probe:    probe,
		interval: interval,
		logger:   logger,
		online:   probe(),
		subs:     make(map[int]subscriber),
	}
}

// Online reports the most recently observed connectivity state.
func (m *Monitor) Online() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.online
}

// Subscribe registers a transition-callback pair and returns the function
// that releases the registration. Either callback may be nil.
func (m *Monitor) Subscribe(onOnline, onOffline func()) func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextID
	m.nextID++
	m.subs[id] = subscriber{onOnline: onOnline, onOffline: onOffline}

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.subs, id)
	}
}

// Start begins sampling in a background goroutine. It is a no-op when the
// monitor is already running.
func (m *Monitor) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.done != nil {
		return
	}
	m.done = make(chan struct{})

	go m.run(m.done)
}

// Stop halts sampling. Subscriptions survive a Stop/Start cycle.
func (m *Monitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.done == nil {
		return
	}
	close(m.done)
	m.done = nil
}

func (m *Monitor) run(done chan struct{}) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			m.sample()
		}
	}
}

// sample takes one probe reading and fires callbacks on a transition.
// Callbacks run outside the lock so a subscriber may call back into the
// monitor.
func (m *Monitor) sample() {
	current := m.probe()

	m.mu.Lock()
	previous := m.online
	m.online = current

	var callbacks []func()
	if current != previous {
		for _, sub := range m.subs {
			cb := sub.onOffline
			if current {
				cb = sub.onOnline
			}
			if cb != nil {
				callbacks = append(callbacks, cb)
			}
		}
	}
	m.mu.Unlock()

	if current != previous {
		m.logger.Info("connectivity changed", "online", current)
	}
	for _, cb := range callbacks {
		cb()
	}
}
