package analyzer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metascope/backend/stats"
)

const optimizedPage = `<!DOCTYPE html>
<html>
<head>
	<title>A well optimized page title under sixty chars</title>
	<meta charset="utf-8">
	<meta name="description" content="A meta description that is well within the recommended range of one hundred and sixty characters for display.">
	<meta property="og:image" content="https://example.com/og.png">
	<meta property="twitter:card" content="summary_large_image">
	<link rel="canonical" href="https://example.com/">
</head>
<body></body>
</html>`

func newOrigin(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestAnalyzeOptimizedPage(t *testing.T) {
	srv := newOrigin(t, http.StatusOK, optimizedPage)

	a := New(WithHTTPClient(srv.Client()))
	analysis, err := a.Analyze(srv.URL)
	require.NoError(t, err)

	assert.Equal(t, srv.URL, analysis.URL)
	assert.Equal(t, "A well optimized page title under sixty chars", analysis.Title)
	assert.Equal(t, 100, analysis.SEOScore)
	assert.Equal(t, 0, analysis.CriticalIssues)
	assert.Equal(t, 0, analysis.WarningIssues)
	assert.Equal(t, 0, analysis.TotalIssues)
	assert.Equal(t, 0, analysis.TotalSuggestions)
	assert.Empty(t, analysis.Suggestions)
	assert.False(t, analysis.GoogleStructuredData)

	// 4 meta elements, plus the fixed +2 for the title and canonical slots.
	assert.Equal(t, 4, analysis.MetaTagsCount)
	assert.Equal(t, 2, analysis.OtherTagsCount)
	assert.Equal(t, 6, analysis.TotalTags)
}

func TestAnalyzeBarePage(t *testing.T) {
	srv := newOrigin(t, http.StatusOK, `<html><head></head><body><p>nothing here</p></body></html>`)

	a := New(WithHTTPClient(srv.Client()))
	analysis, err := a.Analyze(srv.URL)
	require.NoError(t, err)

	assert.Equal(t, 35, analysis.SEOScore)
	assert.Equal(t, 3, analysis.CriticalIssues)
	assert.Equal(t, 2, analysis.WarningIssues)
	assert.Equal(t, 5, analysis.TotalIssues)
	assert.Equal(t, 4, analysis.TotalSuggestions)
	assert.Len(t, analysis.Suggestions, 4)

	// Fixed offset applies even though the page has neither title nor
	// canonical.
	assert.Equal(t, 0, analysis.MetaTagsCount)
	assert.Equal(t, 2, analysis.TotalTags)
}

func TestAnalyzeCountsUnidentifiedMeta(t *testing.T) {
	srv := newOrigin(t, http.StatusOK, `<html><head>
<title>t</title>
<meta content="no identity at all">
<meta name="description" content="d">
</head></html>`)

	a := New(WithHTTPClient(srv.Client()))
	analysis, err := a.Analyze(srv.URL)
	require.NoError(t, err)

	// The identity-less element is counted but appears in no bucket, so the
	// total can exceed the sum of the category buckets.
	assert.Equal(t, 2, analysis.MetaTagsCount)
	assert.Equal(t, 4, analysis.TotalTags)

	categorized := 0
	for _, bucket := range analysis.AllMetaTags {
		categorized += len(bucket)
	}
	assert.Equal(t, 1, categorized)
}

func TestAnalyzeNonSuccessStatus(t *testing.T) {
	srv := newOrigin(t, http.StatusNotFound, "not found")

	a := New(WithHTTPClient(srv.Client()))
	analysis, err := a.Analyze(srv.URL)

	require.Error(t, err)
	assert.Nil(t, analysis, "no partial result on failure")
	assert.Contains(t, err.Error(), srv.URL)
	assert.Contains(t, err.Error(), "404")
}

func TestAnalyzeConnectionRefused(t *testing.T) {
	srv := newOrigin(t, http.StatusOK, optimizedPage)
	url := srv.URL
	srv.Close()

	a := New()
	analysis, err := a.Analyze(url)

	require.Error(t, err)
	assert.Nil(t, analysis)
	assert.Contains(t, err.Error(), url)
}

func TestAnalyzeCancelledContext(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	a := New(WithHTTPClient(srv.Client()))
	_, err := a.AnalyzeWithContext(ctx, srv.URL)

	require.Error(t, err)
}

func TestAnalyzeRecordsUsage(t *testing.T) {
	srv := newOrigin(t, http.StatusOK, `<html><head></head></html>`)

	usage, err := stats.NewStorage(t.TempDir())
	require.NoError(t, err)

	a := New(WithHTTPClient(srv.Client()), WithUsageStorage(usage))

	_, err = a.Analyze(srv.URL)
	require.NoError(t, err)

	_, err = a.Analyze(srv.URL + "/%zz")
	require.Error(t, err)

	current := usage.GetCurrentStats()
	assert.Equal(t, 2, current.Analyses)
	assert.Equal(t, 1, current.Failures)
	assert.Equal(t, 4, current.Suggestions)

	require.NoError(t, a.Shutdown())
}

func TestAnalyzeConcurrentRequests(t *testing.T) {
	srv := newOrigin(t, http.StatusOK, optimizedPage)

	a := New(WithHTTPClient(srv.Client()))

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			analysis, err := a.Analyze(srv.URL)
			if err != nil {
				errs <- err
				return
			}
			if analysis.SEOScore != 100 {
				errs <- assert.AnError
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent analysis error: %v", err)
	}
}

func TestAnalyzeSerializedShape(t *testing.T) {
	srv := newOrigin(t, http.StatusOK, optimizedPage)

	a := New(WithHTTPClient(srv.Client()))
	analysis, err := a.Analyze(srv.URL)
	require.NoError(t, err)

	// All five category buckets are present in the result, even when empty,
	// so consumers can index them unconditionally.
	for _, c := range Categories {
		_, ok := analysis.AllMetaTags[c]
		assert.True(t, ok, "missing bucket %q", c)
	}
	assert.True(t, strings.HasPrefix(analysis.MetaTags["og:image"], "https://"))
}
