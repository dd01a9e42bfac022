package search

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fridgely-be/internal/entities"
)

// recorder collects delivered results and issued lookups under a lock
type recorder struct {
	mu      sync.Mutex
	queries []string
	results [][]entities.Recipe
	errs    []error
}

func (r *recorder) fetch(_ context.Context, query string) ([]entities.Recipe, error) {
	r.mu.Lock()
	r.queries = append(r.queries, query)
	r.mu.Unlock()
	return []entities.Recipe{{Name: "result for " + query}}, nil
}

func (r *recorder) onResults(_ string, recipes []entities.Recipe) {
	r.mu.Lock()
	r.results = append(r.results, recipes)
	r.mu.Unlock()
}

func (r *recorder) onError(_ string, err error) {
	r.mu.Lock()
	r.errs = append(r.errs, err)
	r.mu.Unlock()
}

func (r *recorder) snapshotQueries() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.queries...)
}

func TestDebounceOnlyLastQueryFires(t *testing.T) {
	rec := &recorder{}
	d := NewDebouncer(50*time.Millisecond, rec.fetch, rec.onResults, rec.onError)
	defer d.Close()

	// Three keystrokes inside one quiescence window.
	d.Query("a")
	time.Sleep(10 * time.Millisecond)
	d.Query("ap")
	time.Sleep(10 * time.Millisecond)
	d.Query("app")

	time.Sleep(150 * time.Millisecond)

	assert.Equal(t, []string{"app"}, rec.snapshotQueries())
}

func TestDebounceEmptyQueryClearsWithoutRequest(t *testing.T) {
	rec := &recorder{}
	d := NewDebouncer(20*time.Millisecond, rec.fetch, rec.onResults, rec.onError)
	defer d.Close()

	d.Query("milk")
	d.Query("   ")

	time.Sleep(80 * time.Millisecond)

	assert.Empty(t, rec.snapshotQueries(), "no lookup should fire")

	rec.mu.Lock()
	defer rec.mu.Unlock()
	require.Len(t, rec.results, 1)
	assert.Nil(t, rec.results[0], "clear delivers an empty result list")
}

func TestDebounceStaleResponseSuppressed(t *testing.T) {
	release := make(chan struct{})
	var delivered [][]entities.Recipe
	var mu sync.Mutex

	slowFetch := func(_ context.Context, query string) ([]entities.Recipe, error) {
		if query == "slow" {
			<-release
		}
		return []entities.Recipe{{Name: query}}, nil
	}
	onResults := func(_ string, recipes []entities.Recipe) {
		mu.Lock()
		delivered = append(delivered, recipes)
		mu.Unlock()
	}

	d := NewDebouncer(10*time.Millisecond, slowFetch, onResults, nil)
	defer d.Close()

	d.Query("slow")
	time.Sleep(30 * time.Millisecond) // let the slow lookup dispatch
	d.Query("fast")
	time.Sleep(50 * time.Millisecond)
	close(release) // slow lookup finishes after being superseded
	time.Sleep(50 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, delivered, 1)
	assert.Equal(t, "fast", delivered[0][0].Name)
}

func TestDebounceCloseStopsPendingTimer(t *testing.T) {
	rec := &recorder{}
	d := NewDebouncer(30*time.Millisecond, rec.fetch, rec.onResults, rec.onError)

	d.Query("pending")
	d.Close()

	time.Sleep(100 * time.Millisecond)

	assert.Empty(t, rec.snapshotQueries())
}

func TestDebounceErrorSurfacedAndRetryReissues(t *testing.T) {
	var mu sync.Mutex
	fail := true
	var calls []string
	var gotErrs []error
	var gotResults int

	fetch := func(_ context.Context, query string) ([]entities.Recipe, error) {
		mu.Lock()
		defer mu.Unlock()
		calls = append(calls, query)
		if fail {
			return nil, errors.New("network down")
		}
		return []entities.Recipe{{Name: query}}, nil
	}
	onResults := func(string, []entities.Recipe) {
		mu.Lock()
		gotResults++
		mu.Unlock()
	}
	onError := func(_ string, err error) {
		mu.Lock()
		gotErrs = append(gotErrs, err)
		mu.Unlock()
	}

	d := NewDebouncer(10*time.Millisecond, fetch, onResults, onError)
	defer d.Close()

	d.Query("pasta")
	time.Sleep(60 * time.Millisecond)

	mu.Lock()
	fail = false
	mu.Unlock()

	d.Retry()
	time.Sleep(60 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"pasta", "pasta"}, calls)
	require.Len(t, gotErrs, 1)
	assert.Equal(t, 1, gotResults)
}
