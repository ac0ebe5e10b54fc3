package enrich

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/marqlabs/marq/internal/utils"
)

// SummaryUnavailable is the fixed placeholder stored when the reader
// service fails or yields no usable sentence.
const SummaryUnavailable = "Summary temporarily unavailable."

// DefaultReaderBaseURL is the reader endpoint that renders a page as
// plain text, keyed by percent-encoded target URL.
const DefaultReaderBaseURL = "https://r.jina.ai/"

// maxSummaryBody caps how much reader output we are willing to read.
const maxSummaryBody = 2 << 20

// SummaryFetcher turns a URL into a short cleaned excerpt via a remote
// reader service.
type SummaryFetcher struct {
	client  *http.Client
	baseURL string
}

func NewSummaryFetcher(baseURL string, timeout time.Duration) *SummaryFetcher {
	if baseURL == "" {
		baseURL = DefaultReaderBaseURL
	}
	return &SummaryFetcher{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

// Fetch returns a cleaned excerpt of at most five sentences. It always
// returns a usable string: any failure degrades to the placeholder.
// The error is informational only.
func (f *SummaryFetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	raw, err := f.fetchReaderText(ctx, rawURL)
	if err != nil {
		return SummaryUnavailable, err
	}
	return condense(raw), nil
}

func (f *SummaryFetcher) fetchReaderText(ctx context.Context, rawURL string) (string, error) {
	endpoint := f.baseURL + url.QueryEscape(rawURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch summary: %w", err)
	}
	defer utils.Close(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("summary service returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxSummaryBody))
	if err != nil {
		return "", fmt.Errorf("read summary body: %w", err)
	}
	return string(body), nil
}

var sentenceRE = regexp.MustCompile(`[.!?]+`)

// condense cleans raw reader output into at most five sentences.
// Heading-like and image-caption lines are dropped before the text is
// re-split into sentences. When nothing survives, the placeholder is
// returned instead of a bare period.
func condense(raw string) string {
	var kept []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || isNoiseLine(line) {
			continue
		}
		kept = append(kept, line)
	}

	sentences := make([]string, 0, 5)
	for _, part := range sentenceRE.Split(strings.Join(kept, " "), -1) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		sentences = append(sentences, part)
		if len(sentences) == 5 {
			break
		}
	}

	if len(sentences) == 0 {
		return SummaryUnavailable
	}
	return strings.Join(sentences, ". ") + "."
}

// isNoiseLine flags stray headings (short all-caps or colon-terminated
// lines) and image-caption text.
func isNoiseLine(line string) bool {
	if len(line) < 50 && (line == strings.ToUpper(line) || strings.HasSuffix(line, ":")) {
		return true
	}
	lower := strings.ToLower(line)
	return strings.Contains(lower, "image") ||
		strings.Contains(lower, "photo") ||
		strings.Contains(lower, "picture")
}
