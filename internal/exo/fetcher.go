package exo

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/litescript/ls-exoplanets/internal/logging"
	"github.com/litescript/ls-exoplanets/internal/version"
)

const (
	// ArchiveTAPURL is the NASA Exoplanet Archive synchronous TAP service.
	ArchiveTAPURL = "https://exoplanetarchive.ipac.caltech.edu/TAP/sync"

	// KOIQuery selects the columns a Record is built from.
	KOIQuery = "select kepoi_name,kepler_name,koi_period,koi_prad,koi_teq,koi_steff,koi_srad,koi_insol,koi_disposition,ra_str,dec_str from cumulative where koi_disposition != 'FALSE POSITIVE' order by kepoi_name"

	// DefaultTimeout bounds a single archive request. A hung request
	// surfaces as a FetchError instead of an endless loading state.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxPayload caps the response body; the full KOI table is ~2 MB.
	DefaultMaxPayload = 64 << 20
)

// DefaultEndpoint is the fixed, parameterized query URL.
var DefaultEndpoint = ArchiveTAPURL + "?" + url.Values{
	"query":  {KOIQuery},
	"format": {"json"},
}.Encode()

// Fetcher handles HTTP fetching of the KOI table.
type Fetcher struct {
	client  *http.Client
	url     string
	timeout    time.Duration
	maxPayload int64
	logger     *logging.Logger
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithURL sets a custom endpoint URL.
func WithURL(u string) FetcherOption {
	return func(f *Fetcher) {
		f.url = u
	}
}

// WithTimeout sets the HTTP request timeout.
func WithTimeout(d time.Duration) FetcherOption {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithMaxPayload sets the largest response body accepted, in bytes.
func WithMaxPayload(n int64) FetcherOption {
	return func(f *Fetcher) {
		f.maxPayload = n
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) FetcherOption {
	return func(f *Fetcher) {
		f.client = client
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *logging.Logger) FetcherOption {
	return func(f *Fetcher) {
		f.logger = l
	}
}

// NewFetcher creates a new archive fetcher.
func NewFetcher(opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		url:        DefaultEndpoint,
		timeout:    DefaultTimeout,
		maxPayload: DefaultMaxPayload,
	}

	for _, opt := range opts {
		opt(f)
	}

	if f.client == nil {
		f.client = &http.Client{
			Timeout: f.timeout,
		}
	}
	if f.logger == nil {
		f.logger = logging.Discard()
	}
	if f.maxPayload <= 0 {
		f.maxPayload = DefaultMaxPayload
	}

	return f
}

// FetchResult contains the result of a fetch operation.
type FetchResult struct {
	Records   []Record
	Bytes     int
	FetchedAt time.Time
	Duration  time.Duration
	Error     error
}

// Fetch retrieves and parses the KOI table. It makes exactly one request;
// there is no retry.
func (f *Fetcher) Fetch(ctx context.Context) FetchResult {
	start := time.Now()
	result := FetchResult{
		FetchedAt: start,
	}

	raw, err := f.fetchRaw(ctx)
	result.Duration = time.Since(start)
	if err != nil {
		result.Error = err
		return result
	}
	result.Bytes = len(raw)

	records, err := Parse(raw)
	if err != nil {
		result.Error = err
		return result
	}
	if len(records) == 0 {
		result.Error = ErrNoRecords
		return result
	}
	result.Records = records

	f.logger.Debug("Fetched %s records (%s) in %v",
		humanize.Comma(int64(len(records))), humanize.Bytes(uint64(len(raw))), result.Duration.Round(time.Millisecond))

	return result
}

func (f *Fetcher) fetchRaw(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, &FetchError{URL: f.url, Err: fmt.Errorf("create request: %w", err)}
	}

	req.Header.Set("User-Agent", fmt.Sprintf("ls-exoplanets/%s (Exoplanet Browser)", version.Version))
	req.Header.Set("Accept", "application/json")

	f.logger.Debug("GET %s", f.url)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: f.url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &FetchError{URL: f.url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxPayload+1))
	if err != nil {
		return nil, &FetchError{URL: f.url, Err: fmt.Errorf("read response body: %w", err)}
	}
	if int64(len(body)) > f.maxPayload {
		return nil, &FetchError{URL: f.url, Err: fmt.Errorf("payload exceeds %s", humanize.IBytes(uint64(f.maxPayload)))}
	}

	return body, nil
}

// URL returns the configured endpoint URL.
func (f *Fetcher) URL() string {
	return f.url
}
