package enrich

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/marqlabs/marq/internal/utils"
)

// faviconServiceURL is the by-domain favicon proxy used when a page
// declares no icon of its own.
const faviconServiceURL = "https://www.google.com/s2/favicons?domain=%s&sz=64"

const userAgent = "Mozilla/5.0 (X11; Linux x86_64; rv:124.0) Gecko/20100101 Firefox/124.0"

// Metadata is the title/favicon pair extracted from a page.
type Metadata struct {
	Title   string
	Favicon string
}

// MetadataFetcher retrieves a page and extracts its title and favicon.
type MetadataFetcher struct {
	client *http.Client
}

func NewMetadataFetcher(timeout time.Duration) *MetadataFetcher {
	return &MetadataFetcher{
		client: &http.Client{Timeout: timeout},
	}
}

// Fetch extracts {title, favicon} for rawURL. It always returns a
// usable Metadata: on any fetch or parse failure the title falls back
// to the raw URL and the favicon to the by-domain proxy. The returned
// error is informational only (logging, cache decisions) and must not
// abort bookmark creation.
func (f *MetadataFetcher) Fetch(ctx context.Context, rawURL string) (Metadata, error) {
	target := EnsureScheme(rawURL)

	doc, err := f.fetchDocument(ctx, target)
	if err != nil {
		return Metadata{Title: rawURL, Favicon: FallbackFavicon(rawURL)}, err
	}

	title := extractTitle(doc)
	if title == "" {
		title = rawURL
	}

	favicon := extractFavicon(doc, target)
	if favicon == "" {
		favicon = FallbackFavicon(rawURL)
	}

	return Metadata{Title: title, Favicon: favicon}, nil
}

func (f *MetadataFetcher) fetchDocument(ctx context.Context, target string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch page: %w", err)
	}
	defer utils.Close(resp.Body)

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return doc, nil
}

// extractTitle resolves the page title: <title> text first, then
// og:title, then twitter:title. The result is cleaned; empty means no
// title was found.
func extractTitle(doc *goquery.Document) string {
	title := doc.Find("title").First().Text()
	if title == "" {
		title = doc.Find(`meta[property="og:title"]`).AttrOr("content", "")
	}
	if title == "" {
		title = doc.Find(`meta[name="twitter:title"]`).AttrOr("content", "")
	}
	return cleanTitle(title)
}

// extractFavicon resolves the declared icon link against the page URL.
// Empty when no icon is declared or the href does not resolve.
func extractFavicon(doc *goquery.Document, pageURL string) string {
	href := doc.Find(`link[rel="icon"]`).AttrOr("href", "")
	if href == "" {
		href = doc.Find(`link[rel="shortcut icon"]`).AttrOr("href", "")
	}
	if href == "" {
		return ""
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}

// FallbackFavicon builds the favicon-proxy URL for the hostname of
// rawURL. Empty when the hostname cannot be parsed, so total failure
// yields no icon rather than an error.
func FallbackFavicon(rawURL string) string {
	u, err := url.Parse(EnsureScheme(rawURL))
	if err != nil || u.Hostname() == "" {
		return ""
	}
	return fmt.Sprintf(faviconServiceURL, u.Hostname())
}

var whitespaceRE = regexp.MustCompile(`\s+`)

// cleanTitle collapses runs of whitespace and removes the first
// dash-like separator (-, |, en dash, em dash). Only the first
// occurrence is removed, wherever it appears.
func cleanTitle(title string) string {
	title = whitespaceRE.ReplaceAllString(title, " ")
	if i := strings.IndexAny(title, "-|–—"); i >= 0 {
		_, size := utf8.DecodeRuneInString(title[i:])
		title = title[:i] + title[i+size:]
	}
	return strings.TrimSpace(title)
}
