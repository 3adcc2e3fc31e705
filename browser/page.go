package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
)

// Entry is the raw material for one directory listing item: its visible
// text plus every anchor inside it. Handles are not exposed; entries are
// re-queried after scrolling since element handles are attempt-specific.
type Entry struct {
	Text    string       `json:"text"`
	Href    string       `json:"href"`
	Anchors []EntryAnchor `json:"anchors"`
}

// EntryAnchor is one link inside an entry element.
type EntryAnchor struct {
	Text string `json:"text"`
	Href string `json:"href"`
}

// DirectoryPage drives one loaded directory page through a chromedp context.
// It implements the scroller's page primitives against a CSS entry selector.
type DirectoryPage struct {
	ctx           context.Context
	entrySelector string
}

// NewDirectoryPage wraps a chromedp context with the entry locator.
func NewDirectoryPage(ctx context.Context, entrySelector string) *DirectoryPage {
	return &DirectoryPage{ctx: ctx, entrySelector: entrySelector}
}

// Navigate loads the directory URL and waits for the first entries.
func (p *DirectoryPage) Navigate(ctx context.Context, url string) error {
	runCtx := p.ctx
	if deadline, ok := ctx.Deadline(); ok {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithDeadline(p.ctx, deadline)
		defer cancel()
	}
	err := chromedp.Run(runCtx,
		chromedp.Navigate(url),
		chromedp.WaitVisible(p.entrySelector, chromedp.ByQuery),
	)
	if err != nil {
		return fmt.Errorf("failed to load directory page %s: %v", url, err)
	}
	return nil
}

// ScrollToBottom jumps straight to the bottom of the document.
func (p *DirectoryPage) ScrollToBottom(ctx context.Context) error {
	return p.evaluate(ctx, `window.scrollTo(0, document.body.scrollHeight)`, nil)
}

// ScrollBy scrolls down by the given pixel delta.
func (p *DirectoryPage) ScrollBy(ctx context.Context, pixels int) error {
	return p.evaluate(ctx, fmt.Sprintf(`window.scrollBy(0, %d)`, pixels), nil)
}

// ScrollLastEntryIntoView scrolls the last known entry into the viewport,
// which nudges intersection-observer loaders that ignore plain scrolls.
func (p *DirectoryPage) ScrollLastEntryIntoView(ctx context.Context) error {
	script := fmt.Sprintf(`(() => {
		const items = document.querySelectorAll(%q);
		if (items.length > 0) items[items.length - 1].scrollIntoView({block: 'end'});
	})()`, p.entrySelector)
	return p.evaluate(ctx, script, nil)
}

// TriggerLoadMore clicks a visible "load more" style control if one exists.
func (p *DirectoryPage) TriggerLoadMore(ctx context.Context) (bool, error) {
	var clicked bool
	script := `(() => {
		const labels = ['load more', 'show more', 'see more'];
		const controls = document.querySelectorAll('button, a[role="button"]');
		for (const el of controls) {
			const text = (el.innerText || '').trim().toLowerCase();
			if (labels.some(l => text.startsWith(l))) { el.click(); return true; }
		}
		return false;
	})()`
	if err := p.evaluate(ctx, script, &clicked); err != nil {
		return false, err
	}
	return clicked, nil
}

// Settle waits out lazy-load side effects without touching the page.
func (p *DirectoryPage) Settle(ctx context.Context, d time.Duration) error {
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-p.ctx.Done():
		return p.ctx.Err()
	}
}

// CountEntries measures how many entry elements the rendered DOM holds.
func (p *DirectoryPage) CountEntries(ctx context.Context) (int, error) {
	var count int
	script := fmt.Sprintf(`document.querySelectorAll(%q).length`, p.entrySelector)
	if err := p.evaluate(ctx, script, &count); err != nil {
		return 0, fmt.Errorf("failed to count entries: %v", err)
	}
	return count, nil
}

// Entries reads the visible text and anchors of every entry element in page
// order. Absolute hrefs come back resolved by the browser.
func (p *DirectoryPage) Entries(ctx context.Context) ([]Entry, error) {
	var entries []Entry
	script := fmt.Sprintf(`Array.from(document.querySelectorAll(%q)).map(el => {
		const anchors = el.matches('a') ? [el] : Array.from(el.querySelectorAll('a'));
		return {
			text: el.innerText || '',
			href: el.matches('a') ? el.href : '',
			anchors: anchors.map(a => ({text: (a.innerText || '').trim(), href: a.href}))
		};
	})`, p.entrySelector)
	if err := p.evaluate(ctx, script, &entries); err != nil {
		return nil, fmt.Errorf("failed to read entries: %v", err)
	}
	return entries, nil
}

// evaluate runs a script against the page, bounded by the caller's deadline
// while keeping the chromedp session's target attachment.
func (p *DirectoryPage) evaluate(ctx context.Context, script string, out interface{}) error {
	runCtx := p.ctx
	if deadline, ok := ctx.Deadline(); ok {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithDeadline(p.ctx, deadline)
		defer cancel()
	}
	if out == nil {
		var discard interface{}
		out = &discard
	}
	return chromedp.Run(runCtx, chromedp.Evaluate(script, out))
}
