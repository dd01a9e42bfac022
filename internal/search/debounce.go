// Package search provides the debounced recipe search adapter used by
// the inventory view layer.
package search

import (
	"context"
	"strings"
	"sync"
	"time"

	"fridgely-be/internal/entities"
)

// DefaultDelay is the quiescence period before a lookup is issued.
const DefaultDelay = 500 * time.Millisecond

// SearchFunc performs the actual recipe lookup
type SearchFunc func(ctx context.Context, query string) ([]entities.Recipe, error)

// Debouncer delays lookups until the query has been quiet for the
// configured period. Each new query restarts the timer, so only the last
// query within any window actually fires. Results from a superseded
// query are dropped, though an already-dispatched lookup itself is not
// cancelled.
type Debouncer struct {
	delay     time.Duration
	fetch     SearchFunc
	onResults func(query string, recipes []entities.Recipe)
	onError   func(query string, err error)

	mu        sync.Mutex
	timer     *time.Timer
	gen       uint64 // bumped on every query; stale deliveries are dropped
	lastQuery string
	closed    bool
}

// NewDebouncer creates a debouncer. A non-positive delay falls back to
// DefaultDelay. onError may be nil.
func NewDebouncer(delay time.Duration, fetch SearchFunc, onResults func(string, []entities.Recipe), onError func(string, error)) *Debouncer {
	if delay <= 0 {
		delay = DefaultDelay
	}
	if onError == nil {
		onError = func(string, error) {}
	}
	return &Debouncer{
		delay:     delay,
		fetch:     fetch,
		onResults: onResults,
		onError:   onError,
	}
}

// Query registers a keystroke. An empty or whitespace-only query clears
// the result list immediately without issuing a request.
func (d *Debouncer) Query(query string) {
	query = strings.TrimSpace(query)

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}

	if query == "" {
		d.lastQuery = ""
		d.mu.Unlock()
		d.onResults("", nil)
		return
	}

	d.lastQuery = query
	gen := d.gen
	d.timer = time.AfterFunc(d.delay, func() {
		d.fire(gen, query)
	})
	d.mu.Unlock()
}

// Retry re-issues the last query immediately, skipping the quiescence
// window. It is a no-op when nothing has been searched yet.
func (d *Debouncer) Retry() {
	d.mu.Lock()
	if d.closed || d.lastQuery == "" {
		d.mu.Unlock()
		return
	}
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	gen := d.gen
	query := d.lastQuery
	d.mu.Unlock()

	go d.fire(gen, query)
}

// Close stops any pending timer. In-flight lookups finish but their
// results are dropped.
func (d *Debouncer) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// fire runs the lookup for the given generation and delivers the outcome
// unless a newer query has since been issued
func (d *Debouncer) fire(gen uint64, query string) {
	d.mu.Lock()
	if d.closed || gen != d.gen {
		d.mu.Unlock()
		return
	}
	d.mu.Unlock()

	recipes, err := d.fetch(context.Background(), query)

	// Re-check after the network call: a newer query wins.
	d.mu.Lock()
	stale := d.closed || gen != d.gen
	d.mu.Unlock()
	if stale {
		return
	}

	if err != nil {
		d.onError(query, err)
		return
	}
	d.onResults(query, recipes)
}
