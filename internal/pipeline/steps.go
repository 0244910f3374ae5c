package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/waybackcrawl/waybackcrawl/internal/cdx"
	"github.com/waybackcrawl/waybackcrawl/internal/classifier"
	"github.com/waybackcrawl/waybackcrawl/internal/config"
	"github.com/waybackcrawl/waybackcrawl/internal/model"
)

// FetchStep retrieves archived URLs for the target domain from the
// Wayback Machine CDX index and stores them on the report.
//
// Design decision: Fetching is a separate step because:
// 1. It's the only step that talks to the network
// 2. Its failure aborts the scan; there is nothing to classify without it
// 3. It can be replaced with a fixture source in tests
type FetchStep struct {
	// client queries the CDX index.
	client *cdx.Client

	// opts narrows the query (result limit, date range).
	opts cdx.QueryOptions

	// console receives user-facing progress lines.
	console io.Writer

	// logger for structured logging.
	logger *slog.Logger
}

// FetchStepOption configures a FetchStep.
type FetchStepOption func(*FetchStep)

// WithFetchQueryOptions sets the CDX query options for the fetch.
func WithFetchQueryOptions(opts cdx.QueryOptions) FetchStepOption {
	return func(s *FetchStep) {
		s.opts = opts
	}
}

// WithFetchConsole sets the writer for user-facing progress lines.
func WithFetchConsole(w io.Writer) FetchStepOption {
	return func(s *FetchStep) {
		s.console = w
	}
}

// WithFetchLogger sets a custom logger for the fetch step.
func WithFetchLogger(logger *slog.Logger) FetchStepOption {
	return func(s *FetchStep) {
		s.logger = logger
	}
}

// NewFetchStep creates a new CDX fetch step.
func NewFetchStep(client *cdx.Client, opts ...FetchStepOption) *FetchStep {
	s := &FetchStep{
		client:  client,
		console: io.Discard,
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *FetchStep) Name() string {
	return "fetch"
}

// Do executes the fetch step.
// The returned URLs are already deduplicated in first-seen order.
func (s *FetchStep) Do(ctx context.Context, report *model.ScanReport) error {
	fmt.Fprintf(s.console, "[*] Fetching URLs for %s from the Wayback Machine...\n", report.Domain)

	urls, err := s.client.FetchURLs(ctx, report.Domain, s.opts)
	if err != nil {
		return err
	}

	report.URLs = urls
	report.TotalURLs = len(urls)

	s.logger.Info("fetched archived URLs",
		"domain", report.Domain,
		"count", len(urls),
	)

	return nil
}

// ClassifyStep categorizes the fetched URLs using the rule table.
//
// Classification of each URL is independent, so the step fans out over a
// bounded worker group. Each worker writes its category into a slice slot
// matching the URL's index, and the results are merged sequentially after
// the group finishes. This keeps the output deterministic: URLs land in
// their category buckets in the same order they were fetched, regardless
// of worker scheduling.
type ClassifyStep struct {
	// rules is the compiled classification rule table.
	rules *classifier.RuleTable

	// workers bounds the number of concurrent classification goroutines.
	workers int

	// console receives user-facing progress lines.
	console io.Writer

	// logger for structured logging.
	logger *slog.Logger
}

// ClassifyStepOption configures a ClassifyStep.
type ClassifyStepOption func(*ClassifyStep)

// WithClassifyWorkers sets the worker count for parallel classification.
func WithClassifyWorkers(n int) ClassifyStepOption {
	return func(s *ClassifyStep) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithClassifyConsole sets the writer for user-facing progress lines.
func WithClassifyConsole(w io.Writer) ClassifyStepOption {
	return func(s *ClassifyStep) {
		s.console = w
	}
}

// WithClassifyLogger sets a custom logger for the classify step.
func WithClassifyLogger(logger *slog.Logger) ClassifyStepOption {
	return func(s *ClassifyStep) {
		s.logger = logger
	}
}

// NewClassifyStep creates a new classification step.
func NewClassifyStep(rules *classifier.RuleTable, opts ...ClassifyStepOption) *ClassifyStep {
	s := &ClassifyStep{
		rules:   rules,
		workers: config.DefaultWorkers,
		console: io.Discard,
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *ClassifyStep) Name() string {
	return "classify"
}

// Do executes the classification step.
func (s *ClassifyStep) Do(ctx context.Context, report *model.ScanReport) error {
	fmt.Fprintf(s.console, "[*] Categorizing %d URLs...\n", len(report.URLs))

	// Index-aligned category slots; one writer per slot, no locking needed.
	categories := make([]model.Category, len(report.URLs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for i, rawURL := range report.URLs {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			categories[i] = s.rules.Classify(rawURL)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		report.TimedOut = true
		return err
	}

	// Sequential merge preserves fetch order inside each category bucket.
	for i, rawURL := range report.URLs {
		report.AddURL(categories[i], rawURL)
	}

	report.Summary = model.NewScanSummary(report)

	s.logger.Info("classified URLs",
		"domain", report.Domain,
		"total", len(report.URLs),
	)

	return nil
}

// DefaultPipeline creates a pipeline with the standard fetch and classify
// steps configured from cfg.
//
// Design decision: We provide a default pipeline because:
// 1. Most users want the standard scan flow
// 2. Reduces boilerplate in CLI
// 3. Ensures consistent ordering
//
// The console writer receives user-facing progress lines; pass io.Discard
// to suppress them.
func DefaultPipeline(cfg *config.Config, domain string, console io.Writer, pipelineOpts ...Option) *Pipeline {
	p := New(pipelineOpts...)

	client := cdx.NewClient(
		cdx.WithBaseURL(cfg.CDXBaseURL),
		cdx.WithTimeout(cfg.Timeout),
		cdx.WithUserAgent(cfg.UserAgent),
	)

	var queryOpts cdx.QueryOptions
	if cfg.DomainConfigs != nil {
		dc := cfg.DomainConfigs.GetDomainConfig(domain)
		queryOpts = cdx.QueryOptions{
			Limit: dc.Limit,
			From:  dc.From,
			To:    dc.To,
		}
	}

	p.AddSteps(
		NewFetchStep(client,
			WithFetchQueryOptions(queryOpts),
			WithFetchConsole(console),
			WithFetchLogger(p.logger),
		),
		NewClassifyStep(classifier.DefaultRuleTable(),
			WithClassifyWorkers(cfg.Workers),
			WithClassifyConsole(console),
			WithClassifyLogger(p.logger),
		),
	)

	return p
}
