package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/user/catalog-crawler/internal/entity"
	"github.com/user/catalog-crawler/internal/repository"
	"github.com/user/catalog-crawler/pkg/metrics"
	"github.com/user/catalog-crawler/pkg/utils"
)

var (
	// ErrTranslationAnomaly marks a page that advertised a continuation but
	// yielded zero items; looping on such pages would never terminate.
	ErrTranslationAnomaly = errors.New("page has a next cursor but no extractable items")
)

// Crawler defines the interface for the core crawling process.
type Crawler interface {
	// Run walks the listing from the start cursor until a stop condition.
	// It never returns an error: every failure kind is converted into a
	// terminal summary with a cause, so partial progress is always reported.
	Run(ctx context.Context, start *entity.Cursor, maxPages int) *entity.CrawlSummary
	// Progress returns a snapshot of the current run for the ops surface.
	Progress() entity.Progress
}

// Options tunes the crawl loop.
type Options struct {
	// Listing maps cursors to fetch URLs.
	Listing utils.ListingURLBuilder
	// Delay is the mandatory pacing wait after each successful fetch.
	Delay time.Duration
}

type crawlUseCase struct {
	catalogRepo repository.CatalogRepository
	fetcher     repository.PageFetcher
	translator  repository.PageTranslator
	seenCache   repository.SeenCacheRepository    // optional
	failureRepo repository.FetchFailureRepository // optional
	opts        Options

	mu       sync.Mutex
	progress entity.Progress
}

// NewCrawler creates a new instance of the crawl driver use case. The seen
// cache and failure journal may be nil.
func NewCrawler(
	catalogRepo repository.CatalogRepository,
	fetcher repository.PageFetcher,
	translator repository.PageTranslator,
	seenCache repository.SeenCacheRepository,
	failureRepo repository.FetchFailureRepository,
	opts Options,
) Crawler {
	return &crawlUseCase{
		catalogRepo: catalogRepo,
		fetcher:     fetcher,
		translator:  translator,
		seenCache:   seenCache,
		failureRepo: failureRepo,
		opts:        opts,
	}
}

// Run drives the FETCHING → TRANSLATING → COMMITTING → (CONTINUING | STOPPED)
// loop. Exactly one fetch is outstanding at a time; cancellation is honored
// at the top of FETCHING, so whatever has already been committed survives.
// Re-running with the same start cursor is always safe: the catalog's
// insert-if-absent collapses re-covered pages to no-ops.
func (uc *crawlUseCase) Run(ctx context.Context, start *entity.Cursor, maxPages int) *entity.CrawlSummary {
	summary := &entity.CrawlSummary{}

	from := ""
	if start != nil {
		from = start.From
	}
	pageURL := uc.opts.Listing.URLFor(from)

	uc.beginRun()
	defer uc.endRun()

	slog.Info("Starting crawl", "start_url", pageURL, "max_pages", maxPages)

	for {
		// FETCHING: honor an external stop before touching the network.
		if ctx.Err() != nil {
			uc.stop(summary, entity.StopCanceled, ctx.Err())
			break
		}
		if maxPages > 0 && summary.PagesFetched >= maxPages {
			slog.Info("Reached maximum page limit", "max_pages", maxPages)
			uc.stop(summary, entity.StopPageBudget, nil)
			break
		}

		slog.Info("Fetching", "url", pageURL)
		startTime := time.Now()
		htmlContent, err := uc.fetcher.Fetch(ctx, pageURL)
		if err != nil {
			metrics.FetchDuration.WithLabelValues("failure").Observe(time.Since(startTime).Seconds())
			uc.journalFailure(ctx, pageURL, err)
			uc.stop(summary, entity.StopFetchError, err)
			break
		}
		metrics.FetchDuration.WithLabelValues("success").Observe(time.Since(startTime).Seconds())
		summary.PagesFetched++
		metrics.PagesFetchedTotal.Inc()

		// TRANSLATING
		batch, err := uc.translator.Translate(htmlContent)
		if err != nil {
			uc.stop(summary, entity.StopTranslationAnomaly, err)
			break
		}
		if len(batch.Names) == 0 && batch.NextURL != "" {
			slog.Error("Translation anomaly, stopping", "url", pageURL)
			uc.stop(summary, entity.StopTranslationAnomaly, ErrTranslationAnomaly)
			break
		}

		// COMMITTING
		inserted, err := uc.commit(ctx, batch.Names)
		if err != nil {
			uc.stop(summary, entity.StopPersistenceFailure, err)
			break
		}
		summary.ItemsAdded += inserted
		uc.recordPage(inserted, batch.Names)

		total, err := uc.catalogRepo.Count(ctx)
		if err != nil {
			uc.stop(summary, entity.StopPersistenceFailure, err)
			break
		}
		slog.Info("Page completed",
			"page", summary.PagesFetched,
			"extracted", len(batch.Names),
			"new_items", inserted,
			"total_items", total,
		)

		// Mandatory pacing between requests; a scheduling contract, not
		// best-effort, so it is observed even before a natural stop.
		if !uc.pace(ctx) {
			uc.stop(summary, entity.StopCanceled, ctx.Err())
			break
		}

		if batch.NextURL == "" {
			slog.Info("No more pages found, crawl completed")
			uc.stop(summary, entity.StopNaturalEnd, nil)
			break
		}

		// CONTINUING
		pageURL = batch.NextURL
	}

	// The run context may already be canceled here (interrupt stop); the
	// store itself is still healthy, so read the final count on its own
	// short-lived context.
	countCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if count, err := uc.catalogRepo.Count(countCtx); err == nil {
		summary.FinalCount = count
	} else {
		slog.Warn("Could not read final catalog count", "error", err)
	}

	metrics.CrawlStopsTotal.WithLabelValues(string(summary.Cause)).Inc()
	return summary
}

// commit runs insert-if-absent for the batch, short-circuiting names the
// seen cache already knows. The catalog's uniqueness constraint stays the
// authority; cache errors only cost the fast path.
func (uc *crawlUseCase) commit(ctx context.Context, names []string) (int64, error) {
	toInsert := names
	if uc.seenCache != nil {
		unseen, err := uc.seenCache.FilterUnseen(ctx, names)
		if err != nil {
			slog.Warn("Seen cache lookup failed, inserting full batch", "error", err)
		} else {
			toInsert = unseen
		}
	}

	if len(toInsert) == 0 {
		return 0, nil
	}

	inserted, err := uc.catalogRepo.InsertIfAbsent(ctx, toInsert)
	if err != nil {
		return 0, fmt.Errorf("commit batch of %d names: %w", len(toInsert), err)
	}
	metrics.ItemsInsertedTotal.Add(float64(inserted))

	if uc.seenCache != nil {
		if err := uc.seenCache.MarkSeen(ctx, toInsert); err != nil {
			slog.Warn("Seen cache update failed", "error", err)
		}
	}

	return inserted, nil
}

// pace blocks for the configured inter-page delay. Returns false when the
// run was canceled while waiting.
func (uc *crawlUseCase) pace(ctx context.Context) bool {
	if uc.opts.Delay <= 0 {
		return ctx.Err() == nil
	}
	select {
	case <-time.After(uc.opts.Delay):
		return true
	case <-ctx.Done():
		return false
	}
}

func (uc *crawlUseCase) journalFailure(ctx context.Context, url string, cause error) {
	if uc.failureRepo == nil {
		return
	}
	if err := uc.failureRepo.Record(ctx, url, cause.Error()); err != nil {
		slog.Warn("Could not journal fetch failure", "url", url, "error", err)
	}
}

func (uc *crawlUseCase) stop(summary *entity.CrawlSummary, cause entity.StopCause, err error) {
	summary.Cause = cause
	summary.Err = err
	if err != nil {
		slog.Error("Crawl stopped", "cause", cause, "error", err)
	} else {
		slog.Info("Crawl stopped", "cause", cause)
	}
}

// beginRun resets the snapshot so Progress reports the current run only.
func (uc *crawlUseCase) beginRun() {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.progress = entity.Progress{Running: true}
}

func (uc *crawlUseCase) endRun() {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.progress.Running = false
}

func (uc *crawlUseCase) recordPage(inserted int64, names []string) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.progress.PagesFetched++
	uc.progress.ItemsAdded += inserted
	if len(names) > 0 {
		uc.progress.LastName = names[len(names)-1]
	}
}

// Progress returns a snapshot of the current run.
func (uc *crawlUseCase) Progress() entity.Progress {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.progress
}
