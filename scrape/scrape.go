// Package scrape orchestrates a full directory run: load the listing,
// scroll until the entry count converges, parse every entry, dedupe, then
// enrich records from their detail pages in a second pass.
package scrape

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/aviguptakonda/yc-demoday-batch/browser"
	"github.com/aviguptakonda/yc-demoday-batch/company"
	"github.com/aviguptakonda/yc-demoday-batch/config"
	"github.com/aviguptakonda/yc-demoday-batch/fetch"
	"github.com/aviguptakonda/yc-demoday-batch/parse"
	"github.com/aviguptakonda/yc-demoday-batch/scroll"
)

const detailTimeout = 30 * time.Second

// Stats summarizes one session for logging and persistence.
type Stats struct {
	Captured       int           `json:"captured"`
	Deduplicated   int           `json:"deduplicated"`
	Enriched       int           `json:"enriched"`
	EnrichErrors   int           `json:"enrich_errors"`
	ScrollAttempts int           `json:"scroll_attempts"`
	BestCount      int           `json:"best_count"`
	Converged      bool          `json:"converged"`
	// Partial marks a session that returned records despite a failure,
	// e.g. scrolling that never converged or an aborted enrichment pass.
	Partial  bool          `json:"partial"`
	Duration time.Duration `json:"duration"`
}

// Session runs capture and enrichment against one directory URL.
type Session struct {
	cfg      config.Config
	pool     *browser.Pool
	parser   *parse.Parser
	scroller *scroll.Scroller
	limiter  *fetch.HostLimiter
}

// NewSession wires a session from configuration and a warmed browser pool.
func NewSession(cfg config.Config, pool *browser.Pool) *Session {
	parseCfg := parse.DefaultConfig()
	parseCfg.Batch = cfg.Batch
	return &Session{
		cfg:      cfg,
		pool:     pool,
		parser:   parse.New(parseCfg),
		scroller: scroll.New(cfg.ScrollerConfig()),
		limiter:  fetch.NewHostLimiter(cfg.RequestsPerSecond, cfg.Burst),
	}
}

// Run executes the session, retrying whole capture passes up to the
// configured ceiling. A session that captured records but hit a failure
// afterwards returns them with Stats.Partial set rather than discarding
// the work.
func (s *Session) Run(ctx context.Context) ([]company.Company, Stats, error) {
	started := time.Now()

	var lastErr error
	for attempt := 1; attempt <= s.cfg.SessionRetries; attempt++ {
		if attempt > 1 {
			log.Printf("Retrying capture pass (%d/%d) after: %v", attempt, s.cfg.SessionRetries, lastErr)
		}

		records, stats, err := s.capture(ctx)
		if err != nil {
			lastErr = err
			if ctx.Err() != nil {
				break
			}
			continue
		}

		stats.Enriched, stats.EnrichErrors = s.enrich(ctx, records)
		stats.Partial = !stats.Converged || stats.EnrichErrors > 0
		stats.Duration = time.Since(started)
		log.Printf("Session complete: %d companies (%d enriched, %d errors) in %s",
			len(records), stats.Enriched, stats.EnrichErrors, stats.Duration.Round(time.Second))
		return records, stats, nil
	}

	return nil, Stats{Duration: time.Since(started)}, fmt.Errorf("all capture passes failed: %v", lastErr)
}

// capture is the first pass: scroll the directory to completeness and
// parse every entry currently in the DOM.
func (s *Session) capture(ctx context.Context) ([]company.Company, Stats, error) {
	tabCtx, release, err := s.pool.GetContext(ctx)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("failed to get browser context: %v", err)
	}
	defer release()

	page := browser.NewDirectoryPage(tabCtx, s.cfg.EntrySelector)
	if err := page.Navigate(ctx, s.cfg.DirectoryURL); err != nil {
		return nil, Stats{}, fmt.Errorf("failed to open directory: %v", err)
	}

	result, err := s.scroller.Run(ctx, page)
	if err != nil && result.Best.Count == 0 {
		return nil, Stats{}, fmt.Errorf("scrolling failed before any entries loaded: %v", err)
	}
	stats := Stats{
		ScrollAttempts: len(result.Attempts),
		BestCount:      result.Best.Count,
		Converged:      result.Converged,
	}
	if !result.Converged {
		log.Printf("Entry count did not stabilize; proceeding with best count %d", result.Best.Count)
	}

	entries, err := page.Entries(ctx)
	if err != nil {
		return nil, stats, fmt.Errorf("failed to read directory entries: %v", err)
	}

	records := make([]company.Company, 0, len(entries))
	for _, entry := range entries {
		record, err := s.parseEntry(entry)
		if err != nil {
			continue
		}
		records = append(records, record)
	}
	stats.Captured = len(records)

	deduped := company.Dedupe(records)
	stats.Deduplicated = stats.Captured - len(deduped)
	if stats.Deduplicated > 0 {
		log.Printf("Removed %d duplicate entries, %d companies remain", stats.Deduplicated, len(deduped))
	}
	return deduped, stats, nil
}

func (s *Session) parseEntry(entry browser.Entry) (company.Company, error) {
	anchors := make([]parse.Anchor, 0, len(entry.Anchors))
	for _, a := range entry.Anchors {
		anchors = append(anchors, parse.Anchor{Text: a.Text, Href: a.Href})
	}

	record, err := s.parser.ParseEntry(entry.Text, anchors)
	if err != nil {
		return company.Company{}, err
	}
	if resolved := s.resolveURL(entry.Href); resolved != "" {
		record.URL = resolved
	}
	return record, nil
}

// resolveURL makes relative detail links absolute against the directory URL.
func (s *Session) resolveURL(href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	base, err := url.Parse(s.cfg.DirectoryURL)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}

// enrich is the second pass: visit each record's detail page for founders
// and a fuller description. Failures leave the record with its capture-pass
// data, they never remove it.
func (s *Session) enrich(ctx context.Context, records []company.Company) (enriched, errored int) {
	limit := len(records)
	if s.cfg.EnrichLimit > 0 && s.cfg.EnrichLimit < limit {
		limit = s.cfg.EnrichLimit
	}

	for i := 0; i < limit; i++ {
		if ctx.Err() != nil {
			errored += limit - i
			return enriched, errored
		}
		if records[i].URL == "" {
			continue
		}

		updated, err := s.enrichOne(ctx, records[i])
		if err != nil {
			errored++
			log.Printf("Failed to enrich %s: %v", records[i].Name, err)
			continue
		}
		records[i] = updated
		enriched++
	}
	return enriched, errored
}

func (s *Session) enrichOne(ctx context.Context, record company.Company) (company.Company, error) {
	if err := s.limiter.WaitURL(ctx, record.URL); err != nil {
		return record, fmt.Errorf("rate limiter interrupted: %v", err)
	}

	html, err := s.pool.FetchHTML(ctx, record.URL, detailTimeout)
	if err != nil {
		return record, fmt.Errorf("failed to fetch detail page: %v", err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return record, fmt.Errorf("failed to parse detail page: %v", err)
	}

	if founders := s.extractFounders(doc); len(founders) > 0 {
		record = record.WithFounders(founders)
	}
	if record.Description == "" {
		if description := extractDescription(doc); description != "" {
			record = record.WithDescription(description)
		}
	}
	return record, nil
}

// extractFounders collects profile anchors from the detail page and runs
// them through the founder parser.
func (s *Session) extractFounders(doc *goquery.Document) []company.Founder {
	var anchors []parse.Anchor
	doc.Find(`a[href*="linkedin.com"], a[href*="twitter.com"], a[href*="x.com"], a[href*="github.com"]`).
		Each(func(_ int, sel *goquery.Selection) {
			href, ok := sel.Attr("href")
			if !ok {
				return
			}
			text := strings.TrimSpace(sel.Text())
			if text == "" {
				// The name usually sits next to an icon-only link.
				text = strings.TrimSpace(sel.Parent().Text())
			}
			anchors = append(anchors, parse.Anchor{Text: parse.CleanText(text), Href: href})
		})
	return s.parser.ParseFounders(anchors)
}

var descriptionSelectors = []string{
	`meta[name="description"]`,
	".description",
	".about",
	".company-description",
	".tagline",
}

func extractDescription(doc *goquery.Document) string {
	for _, selector := range descriptionSelectors {
		var content string
		if strings.HasPrefix(selector, "meta") {
			content, _ = doc.Find(selector).Attr("content")
		} else {
			content = doc.Find(selector).First().Text()
		}
		content = parse.CleanText(content)
		if len(content) > 20 {
			if len(content) > 500 {
				content = content[:500]
			}
			return parse.EnsureSentenceBoundary(content)
		}
	}
	return ""
}
