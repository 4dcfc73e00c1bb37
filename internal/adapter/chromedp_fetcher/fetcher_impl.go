package chromedp_fetcher

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/user/catalog-crawler/internal/repository"
)

// ChromedpFetcher retrieves listing pages through a headless browser, for
// sources that only render their listing client-side.
type ChromedpFetcher struct {
	allocatorPool *sync.Pool
	timeout       time.Duration
}

// NewChromedpFetcher creates a new fetcher implementation using chromedp.
func NewChromedpFetcher(pageLoadTimeout time.Duration, userAgent string) *ChromedpFetcher {
	pool := &sync.Pool{
		New: func() interface{} {
			opts := append(chromedp.DefaultExecAllocatorOptions[:],
				chromedp.Flag("headless", true),
				chromedp.Flag("disable-gpu", true),
				chromedp.Flag("no-sandbox", true),
				chromedp.Flag("disable-dev-shm-usage", true),
				chromedp.UserAgent(userAgent),
			)
			allocCtx, _ := chromedp.NewExecAllocator(context.Background(), opts...)
			return allocCtx
		},
	}

	// Pre-warm the pool; the crawl driver issues one fetch at a time.
	allocCtx := pool.Get().(context.Context)
	pool.Put(allocCtx)

	return &ChromedpFetcher{
		allocatorPool: pool,
		timeout:       pageLoadTimeout,
	}
}

// Fetch navigates to the URL and returns the rendered document HTML. The
// document response status is captured from network events, so a rendered
// error page still counts as a fetch failure.
func (f *ChromedpFetcher) Fetch(ctx context.Context, url string) (string, error) {
	// Get an allocator context from the pool
	allocCtx := f.allocatorPool.Get().(context.Context)
	defer f.allocatorPool.Put(allocCtx)

	// Create a new browser context from the allocator
	taskCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	// Create a timeout for the entire fetch task
	taskCtx, cancel = context.WithTimeout(taskCtx, f.timeout)
	defer cancel()

	var status documentStatus
	chromedp.ListenTarget(taskCtx, status.record)

	var htmlContent string
	err := chromedp.Run(taskCtx,
		network.Enable(),
		chromedp.Navigate(url),
		chromedp.WaitVisible("body", chromedp.ByQuery),
		chromedp.OuterHTML("html", &htmlContent),
	)
	if err != nil {
		return "", fmt.Errorf("%w: render %s: %v", repository.ErrFetchFailed, url, err)
	}
	if code := status.code(); code >= 400 {
		return "", fmt.Errorf("%w: unexpected status %d for %s", repository.ErrFetchFailed, code, url)
	}

	return htmlContent, nil
}

// documentStatus captures the status of the first document response. record
// runs on the browser event goroutine while code is read on the caller's,
// so the value is atomic.
type documentStatus struct {
	status atomic.Int64
}

func (d *documentStatus) record(ev interface{}) {
	resp, ok := ev.(*network.EventResponseReceived)
	if !ok || resp.Type != network.ResourceTypeDocument {
		return
	}
	d.status.CompareAndSwap(0, resp.Response.Status)
}

func (d *documentStatus) code() int64 {
	return d.status.Load()
}
