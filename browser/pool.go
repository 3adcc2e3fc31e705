// Package browser provides browser automation for scraping sessions.
package browser

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
)

// Pool manages a fixed set of browser contexts for reuse. Scraping runs are
// bounded and interactive, so the pool does not grow under load.
type Pool struct {
	contexts    chan context.Context
	cancelFuncs map[context.Context]context.CancelFunc
	size        int
	mu          sync.Mutex
	initOnce    sync.Once
	allocCtx    context.Context
	allocCancel context.CancelFunc
	initialized bool
	initErr     error
}

// New creates a browser pool with the given size.
func New(size int) *Pool {
	if size <= 0 {
		size = 1
	}
	return &Pool{
		size:        size,
		contexts:    make(chan context.Context, size),
		cancelFuncs: make(map[context.Context]context.CancelFunc),
	}
}

// allocatorOptions are the Chrome flags for headless scraping. Images stay
// disabled: entry extraction only reads text and anchors.
func allocatorOptions() []chromedp.ExecAllocatorOption {
	return append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("blink-settings", "imagesEnabled=false"),
		chromedp.WindowSize(1280, 1080),
		chromedp.UserAgent("Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/135.0.0.0 Safari/537.36"),
	)
}

// Initialize starts the allocator and pre-warms the pool's contexts.
func (pool *Pool) Initialize() error {
	pool.initOnce.Do(func() {
		pool.mu.Lock()
		defer pool.mu.Unlock()

		pool.allocCtx, pool.allocCancel = chromedp.NewExecAllocator(context.Background(), allocatorOptions()...)

		for i := 0; i < pool.size; i++ {
			ctx, cancel := chromedp.NewContext(pool.allocCtx,
				chromedp.WithLogf(func(format string, args ...interface{}) {}))

			if err := chromedp.Run(ctx, chromedp.Navigate("about:blank")); err != nil {
				cancel()
				pool.initErr = fmt.Errorf("failed to initialize browser: %v", err)
				return
			}

			pool.contexts <- ctx
			pool.cancelFuncs[ctx] = cancel
		}
		pool.initialized = true
		fmt.Printf("Browser pool initialized with %d browsers\n", pool.size)
	})
	return pool.initErr
}

// GetContext borrows a browser context from the pool. The returned function
// clears session state and puts the context back.
func (pool *Pool) GetContext(ctx context.Context) (context.Context, func(), error) {
	if err := pool.Initialize(); err != nil {
		return nil, nil, err
	}

	select {
	case browserCtx := <-pool.contexts:
		release := func() {
			refreshCtx, cancel := context.WithTimeout(browserCtx, 3*time.Second)
			defer cancel()
			_ = chromedp.Run(refreshCtx,
				network.ClearBrowserCookies(),
				chromedp.Navigate("about:blank"),
			)
			pool.contexts <- browserCtx
		}
		return browserCtx, release, nil
	case <-ctx.Done():
		return nil, nil, fmt.Errorf("timeout getting browser context from pool: %v", ctx.Err())
	}
}

// FetchHTML navigates to a URL and returns the rendered HTML.
func (pool *Pool) FetchHTML(ctx context.Context, url string, timeout time.Duration) (string, error) {
	browserCtx, release, err := pool.GetContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get browser context: %v", err)
	}
	defer release()

	timeoutCtx, cancel := context.WithTimeout(browserCtx, timeout)
	defer cancel()

	var htmlContent string
	err = chromedp.Run(timeoutCtx,
		chromedp.Navigate(url),
		chromedp.Sleep(1000*time.Millisecond),
		chromedp.OuterHTML(`html`, &htmlContent, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("failed to fetch URL content: %v", err)
	}
	return htmlContent, nil
}

// Shutdown closes all browser instances.
func (pool *Pool) Shutdown() {
	pool.mu.Lock()
	defer pool.mu.Unlock()

	if !pool.initialized {
		return
	}
	for ctx, cancel := range pool.cancelFuncs {
		cancel()
		delete(pool.cancelFuncs, ctx)
	}
	if pool.allocCancel != nil {
		pool.allocCancel()
	}
	for len(pool.contexts) > 0 {
		<-pool.contexts
	}
	pool.initialized = false
	fmt.Println("Browser pool shut down")
}
