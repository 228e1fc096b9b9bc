package analyzer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/metascope/backend/stats"
)

const userAgent = "MetaScope/1.0"

// bufferPool recycles read buffers across requests.
var bufferPool = sync.Pool{
	New: func() interface{} {
		return new(bytes.Buffer)
	},
}

// Analyzer fetches pages and produces meta tag analyses. Every analysis is an
// independent unit of work; the Analyzer holds no per-request state.
type Analyzer struct {
	client *http.Client
	usage  *stats.Storage
}

// Option configures the Analyzer.
type Option func(*Analyzer)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(a *Analyzer) {
		a.client = client
	}
}

// WithUsageStorage sets the usage counter storage.
func WithUsageStorage(usage *stats.Storage) Option {
	return func(a *Analyzer) {
		a.usage = usage
	}
}

// New creates a new Analyzer instance.
func New(opts ...Option) *Analyzer {
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}

	a := &Analyzer{
		client: &http.Client{
			Timeout:   15 * time.Second,
			Transport: transport,
		},
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Analyze fetches and analyzes the given URL with a bounded overall timeout.
func (a *Analyzer) Analyze(url string) (*Analysis, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return a.AnalyzeWithContext(ctx, url)
}

// AnalyzeWithContext fetches the URL, extracts its tags, scores them and
// assembles the complete analysis. The fetch is abandoned when ctx is
// cancelled. A fetch failure or non-2xx status is a hard error; no partial
// result is ever returned.
func (a *Analyzer) AnalyzeWithContext(ctx context.Context, url string) (*Analysis, error) {
	doc, err := a.fetch(ctx, url)
	if err != nil {
		a.record(true, 0)
		return nil, err
	}

	ext := Extract(doc)

	// Scoring and suggestion generation are independent reads over the same
	// tag map; run them side by side and join before assembly.
	var (
		wg                       sync.WaitGroup
		score, critical, warning int
		suggestions              []Suggestion
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		score, critical, warning = Score(ext.Tags)
	}()
	go func() {
		defer wg.Done()
		suggestions = Suggest(ext.Tags, url)
	}()
	wg.Wait()

	a.record(false, len(suggestions))

	// totalTags carries a fixed +2 for the title and canonical slots,
	// whether or not the page actually had them.
	const otherTagsCount = 2

	return &Analysis{
		URL:                  url,
		Title:                ext.Title,
		MetaTags:             ext.Tags,
		SEOScore:             score,
		TotalTags:            ext.MetaElements + otherTagsCount,
		MetaTagsCount:        ext.MetaElements,
		OtherTagsCount:       otherTagsCount,
		TotalIssues:          critical + warning,
		CriticalIssues:       critical,
		WarningIssues:        warning,
		TotalSuggestions:     len(suggestions),
		GoogleStructuredData: ext.StructuredData,
		Suggestions:          suggestions,
		AllMetaTags:          ext.Categories,
	}, nil
}

// fetch retrieves the page and parses it into a document.
func (a *Analyzer) fetch(ctx context.Context, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid request for %s: %w", url, err)
	}

	// Some sites block requests without a user agent.
	req.Header.Set("User-Agent", userAgent)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("failed to fetch %s: %s", url, resp.Status)
	}

	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer bufferPool.Put(buf)

	if _, err := io.Copy(buf, resp.Body); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", url, err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", url, err)
	}

	return doc, nil
}

// record updates usage counters when storage is configured.
func (a *Analyzer) record(failed bool, suggestions int) {
	if a.usage != nil {
		a.usage.RecordAnalysis(failed, suggestions)
	}
}

// Shutdown flushes usage counters.
func (a *Analyzer) Shutdown() error {
	if a == nil || a.usage == nil {
		return nil
	}
	if err := a.usage.Shutdown(); err != nil {
		return fmt.Errorf("failed to shutdown usage storage: %w", err)
	}
	return nil
}
