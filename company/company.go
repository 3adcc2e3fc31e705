// Package company defines the record types produced by a scraping run.
package company

import (
	"net/url"
	"strings"
	"time"
)

// ProfileType identifies the host a founder profile link points at.
type ProfileType string

const (
	ProfileLinkedIn ProfileType = "linkedin"
	ProfileTwitter  ProfileType = "twitter"
	ProfileGitHub   ProfileType = "github"
	ProfileUnknown  ProfileType = "unknown"
)

// Founder is one person associated with a company record.
type Founder struct {
	Name        string      `json:"name"`
	ProfileURL  string      `json:"profile_url,omitempty"`
	ProfileType ProfileType `json:"profile_type"`
	Title       string      `json:"title,omitempty"`
}

// Company is the immutable unit persisted by a scraping run. Records are
// never mutated after construction; enrichment builds a replacement value.
type Company struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	URL         string    `json:"url,omitempty"`
	Categories  []string  `json:"categories"`
	Founders    []Founder `json:"founders"`
	Batch       string    `json:"batch"`
	ScrapedAt   time.Time `json:"scraped_at"`
}

// New validates and builds a Company. A whitespace-only name is invalid:
// the record would be impossible to deduplicate or report on.
func New(name, description, url string, categories []string, batch string) (Company, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Company{}, false
	}
	if categories == nil {
		categories = []string{}
	}
	return Company{
		Name:        name,
		Description: strings.TrimSpace(description),
		URL:         strings.TrimSpace(url),
		Categories:  categories,
		Founders:    []Founder{},
		Batch:       batch,
		ScrapedAt:   time.Now(),
	}, true
}

// WithFounders returns a copy of the record carrying the given founders.
func (c Company) WithFounders(founders []Founder) Company {
	out := c
	out.Founders = append([]Founder(nil), founders...)
	return out
}

// WithDescription returns a copy of the record with the description replaced.
func (c Company) WithDescription(description string) Company {
	out := c
	out.Description = strings.TrimSpace(description)
	return out
}

// Dedupe removes records whose name matches an earlier record
// case-insensitively. First seen wins; page discovery order is preserved.
func Dedupe(records []Company) []Company {
	seen := make(map[string]bool, len(records))
	out := make([]Company, 0, len(records))
	for _, r := range records {
		key := strings.ToLower(strings.TrimSpace(r.Name))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, r)
	}
	return out
}

// ClassifyProfileURL maps a profile link host to a ProfileType.
func ClassifyProfileURL(rawURL string) ProfileType {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return ProfileUnknown
	}
	host := strings.ToLower(parsed.Hostname())
	switch {
	case host == "linkedin.com" || strings.HasSuffix(host, ".linkedin.com"):
		return ProfileLinkedIn
	case host == "twitter.com" || strings.HasSuffix(host, ".twitter.com"),
		host == "x.com" || strings.HasSuffix(host, ".x.com"):
		return ProfileTwitter
	case host == "github.com" || strings.HasSuffix(host, ".github.com"):
		return ProfileGitHub
	default:
		return ProfileUnknown
	}
}
