package client

import (
	"context"
	"sync"
	"time"

	"saraban/internal/model"
)

// Poller refreshes one category's record list on a fixed interval. It has
// two states: polling (the default) and suspended. Suspension is meant for
// the stretches where the watcher's user is mid-edit and a refresh would
// repaint under them.
type Poller struct {
	client   *Client
	category string
	interval time.Duration

	// OnUpdate receives each successfully fetched list. OnError receives
	// fetch failures; polling continues either way.
	OnUpdate func([]model.Record)
	OnError  func(error)

	mu        sync.Mutex
	suspended bool
	inFlight  bool
}

// NewPoller creates a poller for one category. Callbacks must be set before
// Run is called. A non-positive interval (a zero flag value, say) clamps to
// one second; the ticker panics on anything else.
func NewPoller(c *Client, category string, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = time.Second
	}
	return &Poller{
		client:   c,
		category: category,
		interval: interval,
	}
}

// Suspend stops ticks from fetching until Resume. A fetch already in
// flight finishes and still reports.
func (p *Poller) Suspend() {
	p.mu.Lock()
	p.suspended = true
	p.mu.Unlock()
}

// Resume re-enables fetching and triggers an immediate refresh on the next
// tick.
func (p *Poller) Resume() {
	p.mu.Lock()
	p.suspended = false
	p.mu.Unlock()
}

// Suspended reports whether the poller is currently suspended.
func (p *Poller) Suspended() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.suspended
}

// begin marks a fetch as started. It refuses when suspended or when the
// previous fetch has not returned, so a slow server never stacks requests.
func (p *Poller) begin() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.suspended || p.inFlight {
		return false
	}
	p.inFlight = true
	return true
}

func (p *Poller) end() {
	p.mu.Lock()
	p.inFlight = false
	p.mu.Unlock()
}

func (p *Poller) fetch(ctx context.Context) {
	if !p.begin() {
		return
	}
	defer p.end()

	recs, err := p.client.List(ctx, p.category)
	if err != nil {
		if p.OnError != nil {
			p.OnError(err)
		}
		return
	}
	if p.OnUpdate != nil {
		p.OnUpdate(recs)
	}
}

// Run fetches immediately, then on every tick until the context is
// cancelled.
func (p *Poller) Run(ctx context.Context) error {
	p.fetch(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			p.fetch(ctx)
		}
	}
}
