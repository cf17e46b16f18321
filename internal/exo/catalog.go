package exo

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/litescript/ls-exoplanets/internal/logging"
)

// Source produces a fresh copy of the KOI table. *Fetcher implements it.
type Source interface {
	Fetch(ctx context.Context) FetchResult
}

// Catalog is the session's dataset cache. The first successful load is kept
// for the lifetime of the Catalog; there is no TTL. Failed loads are not
// cached, so a later Load tries the network again.
//
// Concurrent loads issued before the first one resolves share a single
// request. The shared request runs on a context of its own: a caller that
// gives up returns its context error without failing the others, and the
// request is cancelled only once every caller waiting on it has gone.
type Catalog struct {
	source Source
	logger *logging.Logger

	group singleflight.Group

	mu        sync.RWMutex
	records   []Record
	fetchedAt time.Time
	requests  int
	flights   map[string]*flight
	gen       int
}

// flight is one shared request and the callers waiting on it.
type flight struct {
	key     string // singleflight key, unique per request
	ctx     context.Context
	cancel  context.CancelFunc
	waiters int
}

// NewCatalog creates an empty catalog backed by source.
func NewCatalog(source Source, logger *logging.Logger) *Catalog {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Catalog{
		source:  source,
		logger:  logger,
		flights: make(map[string]*flight),
	}
}

// Load returns the cached records, fetching them on first use.
func (c *Catalog) Load(ctx context.Context) ([]Record, error) {
	if recs, ok := c.cached(); ok {
		return recs, nil
	}
	return c.fetch(ctx, "load")
}

// Refresh re-fetches the table. On failure the previous cache is kept.
func (c *Catalog) Refresh(ctx context.Context) ([]Record, error) {
	return c.fetch(ctx, "refresh")
}

func (c *Catalog) fetch(ctx context.Context, kind string) ([]Record, error) {
	f := c.join(ctx, kind)
	defer c.leave(kind, f)

	ch := c.group.DoChan(f.key, func() (interface{}, error) {
		return c.do(f.ctx, kind)
	})
	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			c.logger.Debug("Catalog %s shared with a concurrent caller", kind)
		}
		return slices.Clone(res.Val.([]Record)), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// join registers the caller on the in-flight request of this kind,
// starting a new one if none is running.
func (c *Catalog) join(ctx context.Context, kind string) *flight {
	c.mu.Lock()
	defer c.mu.Unlock()
	f := c.flights[kind]
	if f == nil {
		c.gen++
		fctx, cancel := context.WithCancel(context.WithoutCancel(ctx))
		f = &flight{
			key:    fmt.Sprintf("%s#%d", kind, c.gen),
			ctx:    fctx,
			cancel: cancel,
		}
		c.flights[kind] = f
	}
	f.waiters++
	return f
}

// leave drops the caller from f and cancels the request once nobody waits
// on it.
func (c *Catalog) leave(kind string, f *flight) {
	c.mu.Lock()
	defer c.mu.Unlock()
	f.waiters--
	if f.waiters > 0 {
		return
	}
	f.cancel()
	if c.flights[kind] == f {
		delete(c.flights, kind)
	}
}

func (c *Catalog) do(ctx context.Context, kind string) ([]Record, error) {
	// A concurrent caller may have populated the cache while we waited.
	if kind == "load" {
		if recs, ok := c.cached(); ok {
			return recs, nil
		}
	}

	c.mu.Lock()
	c.requests++
	c.mu.Unlock()

	res := c.source.Fetch(ctx)
	if res.Error != nil {
		c.logger.Warn("Catalog %s failed after %v: %v", kind, res.Duration.Round(time.Millisecond), res.Error)
		return nil, res.Error
	}

	c.mu.Lock()
	c.records = res.Records
	c.fetchedAt = res.FetchedAt
	c.mu.Unlock()

	c.logger.Info("Catalog %s: %d records in %v", kind, len(res.Records), res.Duration.Round(time.Millisecond))
	return res.Records, nil
}

func (c *Catalog) cached() ([]Record, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.records == nil {
		return nil, false
	}
	return slices.Clone(c.records), true
}

// FetchedAt returns when the cached records were fetched.
func (c *Catalog) FetchedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.fetchedAt
}

// Requests returns how many network requests the catalog has issued.
func (c *Catalog) Requests() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.requests
}
