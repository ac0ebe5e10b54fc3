package enrich

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/marqlabs/marq/internal/domain"
	"github.com/marqlabs/marq/internal/logger"
)

// mapCache is an in-process PageCache for pipeline tests.
type mapCache struct {
	mu    sync.Mutex
	pages map[string]*domain.PageMeta
	puts  int
}

func newMapCache() *mapCache {
	return &mapCache{pages: make(map[string]*domain.PageMeta)}
}

func (c *mapCache) GetPage(_ context.Context, url string) (*domain.PageMeta, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pages[url], nil
}

func (c *mapCache) PutPage(_ context.Context, url string, meta *domain.PageMeta) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pages[url] = meta
	c.puts++
	return nil
}

func TestEnrichFullPipeline(t *testing.T) {
	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<html><head><title>Example Article</title></head></html>`)
	}))
	t.Cleanup(page.Close)

	reader := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, "Something interesting happened today somewhere.")
	}))
	t.Cleanup(reader.Close)

	cache := newMapCache()
	e := NewEnricher(
		NewMetadataFetcher(2*time.Second),
		NewSummaryFetcher(reader.URL+"/", 2*time.Second),
		cache,
		logger.Nop(),
	)

	result := e.Enrich(context.Background(), page.URL)

	if result.Title != "Example Article" {
		t.Errorf("Title = %q, want Example Article", result.Title)
	}
	if result.Summary != "Something interesting happened today somewhere." {
		t.Errorf("Summary = %q", result.Summary)
	}
	if len(result.Tags) == 0 {
		t.Errorf("no tags generated")
	}
	if cache.puts != 1 {
		t.Errorf("cache writes = %d, want 1", cache.puts)
	}
}

func TestEnrichCacheHitSkipsFetches(t *testing.T) {
	var pageHits int
	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		pageHits++
		fmt.Fprint(w, `<html><head><title>Live Title</title></head></html>`)
	}))
	t.Cleanup(page.Close)

	cache := newMapCache()
	cache.pages[EnsureScheme(page.URL)] = &domain.PageMeta{
		Title:   "Cached Title",
		Favicon: "https://example.com/icon.png",
		Summary: "Cached summary text.",
	}

	e := NewEnricher(
		NewMetadataFetcher(2*time.Second),
		NewSummaryFetcher("http://127.0.0.1:1/", 2*time.Second),
		cache,
		logger.Nop(),
	)

	result := e.Enrich(context.Background(), page.URL)

	if result.Title != "Cached Title" {
		t.Errorf("Title = %q, want Cached Title", result.Title)
	}
	if result.Summary != "Cached summary text." {
		t.Errorf("Summary = %q, want Cached summary text.", result.Summary)
	}
	if pageHits != 0 {
		t.Errorf("page fetched %d times, want 0 on cache hit", pageHits)
	}
	// tags are always recomputed, even from cached fields
	if len(result.Tags) == 0 {
		t.Errorf("no tags generated from cached page")
	}
}

func TestEnrichDegradedNotCached(t *testing.T) {
	// metadata succeeds, summary fails: the result must not be cached
	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<html><head><title>Example Article</title></head></html>`)
	}))
	t.Cleanup(page.Close)

	cache := newMapCache()
	e := NewEnricher(
		NewMetadataFetcher(2*time.Second),
		NewSummaryFetcher("http://127.0.0.1:1/", 500*time.Millisecond),
		cache,
		logger.Nop(),
	)

	result := e.Enrich(context.Background(), page.URL)

	if result.Title != "Example Article" {
		t.Errorf("Title = %q, want Example Article", result.Title)
	}
	if result.Summary != SummaryUnavailable {
		t.Errorf("Summary = %q, want placeholder", result.Summary)
	}
	if cache.puts != 0 {
		t.Errorf("cache writes = %d, want 0 for degraded result", cache.puts)
	}
}

func TestEnrichNilCache(t *testing.T) {
	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<html><head><title>Example Article</title></head></html>`)
	}))
	t.Cleanup(page.Close)

	reader := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, "A plain sentence for the summary.")
	}))
	t.Cleanup(reader.Close)

	e := NewEnricher(
		NewMetadataFetcher(2*time.Second),
		NewSummaryFetcher(reader.URL+"/", 2*time.Second),
		nil,
		logger.Nop(),
	)

	result := e.Enrich(context.Background(), page.URL)
	if result.Title != "Example Article" {
		t.Errorf("Title = %q, want Example Article", result.Title)
	}
}
