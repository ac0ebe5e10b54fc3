package enrich

import (
	"context"

	"github.com/marqlabs/marq/internal/domain"
	"github.com/marqlabs/marq/internal/logger"
)

// Result is the full enrichment output for a submitted URL.
type Result struct {
	Title   string
	Favicon string
	Summary string
	Tags    []string
}

// PageCache stores enrichment output per URL so that re-bookmarking a
// known URL skips the remote calls. Implementations are best-effort;
// a nil cache disables caching entirely.
type PageCache interface {
	GetPage(ctx context.Context, url string) (*domain.PageMeta, error)
	PutPage(ctx context.Context, url string, meta *domain.PageMeta) error
}

// Enricher runs the metadata and summary fetchers sequentially and
// derives tags from their output. Enrichment is best-effort by policy:
// Enrich never fails, it only degrades output quality.
type Enricher struct {
	metadata *MetadataFetcher
	summary  *SummaryFetcher
	cache    PageCache
	log      logger.Logger
}

func NewEnricher(metadata *MetadataFetcher, summary *SummaryFetcher, cache PageCache, log logger.Logger) *Enricher {
	return &Enricher{
		metadata: metadata,
		summary:  summary,
		cache:    cache,
		log:      log,
	}
}

// Enrich produces {title, favicon, summary, tags} for rawURL. Both
// remote fetches are always attempted (cache aside), independent of
// each other's outcome.
func (e *Enricher) Enrich(ctx context.Context, rawURL string) Result {
	if page := e.cachedPage(ctx, rawURL); page != nil {
		e.log.Debug("enrichment cache hit", logger.String("url", rawURL))
		return Result{
			Title:   page.Title,
			Favicon: page.Favicon,
			Summary: page.Summary,
			Tags:    GenerateTags(rawURL, page.Title, page.Summary),
		}
	}

	meta, metaErr := e.metadata.Fetch(ctx, rawURL)
	if metaErr != nil {
		e.log.Warn("metadata fetch degraded to fallback",
			logger.String("url", rawURL),
			logger.Error(metaErr))
	}

	summary, sumErr := e.summary.Fetch(ctx, rawURL)
	if sumErr != nil {
		e.log.Warn("summary fetch degraded to placeholder",
			logger.String("url", rawURL),
			logger.Error(sumErr))
	}

	// Only fully successful enrichments are worth caching; fallback
	// titles and placeholder summaries would otherwise stick for the
	// whole TTL.
	if metaErr == nil && sumErr == nil {
		e.storePage(ctx, rawURL, &domain.PageMeta{
			Title:   meta.Title,
			Favicon: meta.Favicon,
			Summary: summary,
		})
	}

	return Result{
		Title:   meta.Title,
		Favicon: meta.Favicon,
		Summary: summary,
		Tags:    GenerateTags(rawURL, meta.Title, summary),
	}
}

func (e *Enricher) cachedPage(ctx context.Context, rawURL string) *domain.PageMeta {
	if e.cache == nil {
		return nil
	}
	page, err := e.cache.GetPage(ctx, EnsureScheme(rawURL))
	if err != nil {
		e.log.Debug("enrichment cache read failed",
			logger.String("url", rawURL),
			logger.Error(err))
		return nil
	}
	return page
}

func (e *Enricher) storePage(ctx context.Context, rawURL string, page *domain.PageMeta) {
	if e.cache == nil {
		return
	}
	if err := e.cache.PutPage(ctx, EnsureScheme(rawURL), page); err != nil {
		e.log.Debug("enrichment cache write failed",
			logger.String("url", rawURL),
			logger.Error(err))
	}
}
