package exo

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/goleak"
)

// fakeSource is a Source that counts calls and optionally blocks.
type fakeSource struct {
	calls   atomic.Int32
	gate    chan struct{} // if non-nil, Fetch waits for it
	results []FetchResult // returned in order; last one repeats
}

func (s *fakeSource) Fetch(ctx context.Context) FetchResult {
	n := int(s.calls.Add(1)) - 1
	if s.gate != nil {
		select {
		case <-s.gate:
		case <-ctx.Done():
			return FetchResult{Error: &FetchError{URL: "fake", Err: ctx.Err()}}
		}
	}
	if n >= len(s.results) {
		n = len(s.results) - 1
	}
	return s.results[n]
}

func okResult(ids ...string) FetchResult {
	recs := make([]Record, len(ids))
	for i, id := range ids {
		recs[i] = Record{ID: id}
	}
	return FetchResult{Records: recs, FetchedAt: time.Now()}
}

func TestCatalog_CachesFirstSuccess(t *testing.T) {
	src := &fakeSource{results: []FetchResult{okResult("A", "B")}}
	c := NewCatalog(src, nil)

	if _, ok := c.cached(); ok {
		t.Fatal("cache should be empty before Load")
	}

	for i := 0; i < 3; i++ {
		recs, err := c.Load(context.Background())
		if err != nil {
			t.Fatalf("Load #%d: %v", i, err)
		}
		if len(recs) != 2 {
			t.Fatalf("Load #%d returned %d records", i, len(recs))
		}
	}

	if got := src.calls.Load(); got != 1 {
		t.Errorf("source called %d times, want 1", got)
	}
	if c.Requests() != 1 {
		t.Errorf("Requests = %d, want 1", c.Requests())
	}
	if _, ok := c.cached(); !ok || c.FetchedAt().IsZero() {
		t.Error("catalog should report loaded with a fetch time")
	}
}

func TestCatalog_ReturnsCopies(t *testing.T) {
	src := &fakeSource{results: []FetchResult{okResult("A", "B")}}
	c := NewCatalog(src, nil)

	recs, _ := c.Load(context.Background())
	recs[0].ID = "mutated"

	again, _ := c.Load(context.Background())
	if again[0].ID != "A" {
		t.Errorf("cache was mutated through a returned slice: %q", again[0].ID)
	}
}

func TestCatalog_FailureNotCached(t *testing.T) {
	fail := FetchResult{Error: &FetchError{URL: "fake", StatusCode: 500}}
	src := &fakeSource{results: []FetchResult{fail, okResult("A")}}
	c := NewCatalog(src, nil)

	_, err := c.Load(context.Background())
	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FetchError, got %v", err)
	}
	if _, ok := c.cached(); ok {
		t.Error("failed load must not populate the cache")
	}

	recs, err := c.Load(context.Background())
	if err != nil {
		t.Fatalf("second Load: %v", err)
	}
	if len(recs) != 1 {
		t.Errorf("expected 1 record after retry, got %d", len(recs))
	}
	if src.calls.Load() != 2 {
		t.Errorf("source called %d times, want 2", src.calls.Load())
	}
}

func TestCatalog_RefreshReplacesAndKeepsOnFailure(t *testing.T) {
	fail := FetchResult{Error: ErrNoRecords}
	src := &fakeSource{results: []FetchResult{okResult("A"), okResult("A", "B"), fail}}
	c := NewCatalog(src, nil)

	if _, err := c.Load(context.Background()); err != nil {
		t.Fatal(err)
	}

	recs, err := c.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if len(recs) != 2 {
		t.Errorf("Refresh returned %d records, want 2", len(recs))
	}

	if _, err := c.Refresh(context.Background()); !errors.Is(err, ErrNoRecords) {
		t.Errorf("expected ErrNoRecords from failing refresh, got %v", err)
	}
	if recs, _ := c.cached(); len(recs) != 2 {
		t.Errorf("cache after failed refresh has %d records, want 2", len(recs))
	}
}

func TestCatalog_ConcurrentLoadsCoalesce(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	gate := make(chan struct{})
	src := &fakeSource{gate: gate, results: []FetchResult{okResult("A", "B", "C")}}
	c := NewCatalog(src, nil)

	const callers = 8
	var wg sync.WaitGroup
	errs := make(chan error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			recs, err := c.Load(context.Background())
			if err == nil && len(recs) != 3 {
				err = errors.New("wrong record count")
			}
			errs <- err
		}()
	}

	// Wait until the first request is in flight, then let it finish.
	deadline := time.Now().Add(2 * time.Second)
	for src.calls.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	time.Sleep(20 * time.Millisecond)
	close(gate)

	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Errorf("Load: %v", err)
		}
	}

	// Callers that arrived after the request resolved hit the cache, and
	// callers that arrived during it shared it.
	if got := src.calls.Load(); got != 1 {
		t.Errorf("source called %d times, want 1", got)
	}
}

func TestCatalog_CancelledLoad(t *testing.T) {
	gate := make(chan struct{})
	defer close(gate)
	src := &fakeSource{gate: gate, results: []FetchResult{okResult("A")}}
	c := NewCatalog(src, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := c.Load(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
	if _, ok := c.cached(); ok {
		t.Error("cancelled load must not populate the cache")
	}
}

func TestCatalog_CancelledCallerDoesNotFailOthers(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	gate := make(chan struct{})
	src := &fakeSource{gate: gate, results: []FetchResult{okResult("A", "B")}}
	c := NewCatalog(src, nil)

	first, cancelFirst := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := c.Load(first)
		firstErr <- err
	}()

	deadline := time.Now().Add(2 * time.Second)
	for src.calls.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}

	type result struct {
		recs []Record
		err  error
	}
	second := make(chan result, 1)
	go func() {
		recs, err := c.Load(context.Background())
		second <- result{recs, err}
	}()
	time.Sleep(20 * time.Millisecond)

	cancelFirst()
	if err := <-firstErr; !errors.Is(err, context.Canceled) {
		t.Errorf("first caller: expected context.Canceled, got %v", err)
	}

	close(gate)
	res := <-second
	if res.err != nil {
		t.Fatalf("second caller failed with the first caller's cancellation: %v", res.err)
	}
	if len(res.recs) != 2 {
		t.Errorf("second caller got %d records, want 2", len(res.recs))
	}
	if got := src.calls.Load(); got != 1 {
		t.Errorf("source called %d times, want 1", got)
	}
}
