package cdx

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Default client settings.
const (
	// DefaultBaseURL is the public Wayback Machine CDX endpoint host.
	DefaultBaseURL = "http://web.archive.org"

	// DefaultTimeout bounds the single index request. The CDX API can be
	// slow for domains with large capture counts, but 15 seconds covers
	// the common case without hanging the run indefinitely.
	DefaultTimeout = 15 * time.Second

	// DefaultUserAgent identifies WaybackCrawl in index requests.
	DefaultUserAgent = "WaybackCrawl/1.0 (+https://github.com/waybackcrawl/waybackcrawl)"
)

// Client queries the CDX index for archived URLs.
//
// Design decision: We keep one Client per process rather than one per scan
// because the underlying http.Client pools connections, and all scans share
// the same endpoint and timeout.
type Client struct {
	// httpClient performs the requests. Replaceable for tests.
	httpClient *http.Client

	// baseURL is the index host, without the /cdx/search/cdx path.
	baseURL string

	// userAgent is sent with every request.
	userAgent string
}

// QueryOptions narrows a single fetch. The zero value requests every
// capture the index has for the domain.
type QueryOptions struct {
	// Limit caps the number of rows the index returns. 0 means no cap.
	Limit int

	// From restricts captures to those at or after this timestamp,
	// in CDX timestamp format (yyyyMMddhhmmss, prefixes allowed).
	From string

	// To restricts captures to those at or before this timestamp.
	To string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the index host. Used for tests and mirrors.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithTimeout sets the request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithUserAgent sets the User-Agent header sent with requests.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// NewClient creates a CDX client with default endpoint, timeout, and
// User-Agent, then applies the given options.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		baseURL:    DefaultBaseURL,
		userAgent:  DefaultUserAgent,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// FetchURLs returns the deduplicated archived original URLs for a domain.
//
// The index is asked to collapse captures by canonical URL key, which
// deduplicates near-identical snapshots server-side. Collapsing is not
// guaranteed to be globally unique across snapshot variations, so a
// client-side set is applied on top, preserving first-seen order.
//
// Failures map onto the closed error kinds in errors.go: transport and
// non-2xx statuses become ErrTransport, malformed bodies become ErrDecode,
// and a capture-less domain becomes ErrEmptyResult.
func (c *Client) FetchURLs(ctx context.Context, domain string, opts QueryOptions) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.queryURL(domain, opts), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrTransport, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}

	return parseRows(body)
}

// queryURL builds the CDX query for a domain.
// fl=original asks for just the original URL column and collapse=urlkey
// requests server-side deduplication by canonical URL key.
func (c *Client) queryURL(domain string, opts QueryOptions) string {
	params := url.Values{}
	params.Set("url", domain+"/*")
	params.Set("output", "json")
	params.Set("fl", "original")
	params.Set("collapse", "urlkey")
	if opts.Limit > 0 {
		params.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.From != "" {
		params.Set("from", opts.From)
	}
	if opts.To != "" {
		params.Set("to", opts.To)
	}

	return c.baseURL + "/cdx/search/cdx?" + params.Encode()
}

// parseRows decodes the CDX row set and extracts the URL column.
// The first row is the field-name header and is skipped. Each subsequent
// row is an array whose first element is the original URL.
func parseRows(body []byte) ([]string, error) {
	var rows [][]string
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	// A header-only response means the domain has no captures.
	if len(rows) <= 1 {
		return nil, ErrEmptyResult
	}

	seen := make(map[string]struct{}, len(rows)-1)
	urls := make([]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) == 0 {
			return nil, fmt.Errorf("%w: row with no columns", ErrDecode)
		}
		u := row[0]
		if _, dup := seen[u]; dup {
			continue
		}
		seen[u] = struct{}{}
		urls = append(urls, u)
	}

	return urls, nil
}
