// Package parse turns the raw text and anchor sub-elements of one directory
// entry into a structured company record.
package parse

import (
	"errors"
	"regexp"
	"strings"

	"github.com/aviguptakonda/yc-demoday-batch/company"
)

// ErrNoName is returned when no usable company name can be identified in the
// entry text. Callers skip the entry and count it as a data-quality defect.
var ErrNoName = errors.New("no company name in entry text")

// Anchor is one link sub-element of a directory entry.
type Anchor struct {
	Text string
	Href string
}

// Config holds the segmentation thresholds and vocabularies. These are
// tuned to the directory page's current markup, not normative grammar, so
// they stay configurable.
type Config struct {
	// MaxCategoryLen is the longest segment still considered a category tag.
	MaxCategoryLen int
	// CategoryVocabulary lists tags accepted regardless of shape.
	CategoryVocabulary []string
	// BoilerplatePatterns are dropped before segmentation.
	BoilerplatePatterns []string
	// RoleVocabulary recognizes founder titles in anchor text.
	RoleVocabulary []string
	// Batch labels every record produced by this parser.
	Batch string
}

// DefaultConfig returns the thresholds observed to work on the YC directory.
func DefaultConfig() Config {
	return Config{
		MaxCategoryLen: 28,
		CategoryVocabulary: []string{
			"B2B", "B2C", "Consumer", "Healthcare", "Industrials", "Fintech",
			"Education", "Real Estate", "Infrastructure", "Productivity",
			"Engineering", "Operations", "Security", "Marketing",
			"Human Resources", "Legal", "Retail", "Sales", "Supply Chain",
			"Automotive", "Drones", "Robotics", "Manufacturing",
			"Drug Discovery", "Healthcare IT", "Social",
			"Recruiting and Talent", "Finance and Accounting", "Construction",
			"AI", "SaaS", "Analytics", "DevOps", "Gaming",
		},
		BoilerplatePatterns: []string{
			"home >", "companies >", "company >", "> batch", "back to companies",
			"view profile", "founder directory", "load more", "next page",
			"previous page", "see all",
		},
		RoleVocabulary: []string{
			"Co-Founder", "Co-founder", "Cofounder", "Founder", "CEO", "CTO",
			"COO", "CPO", "President",
		},
		Batch: "Summer 2025",
	}
}

// Parser segments entry text into name, categories and description, and
// classifies founder profile anchors.
type Parser struct {
	config Config
}

// New creates a parser with the given configuration.
func New(config Config) *Parser {
	return &Parser{config: config}
}

var breadcrumbRe = regexp.MustCompile(`(?i)^\s*(home|companies)(\s*>\s*[^>]*)+>?\s*`)

// ParseEntry converts one entry's visible text and anchors into a record.
func (p *Parser) ParseEntry(text string, anchors []Anchor) (company.Company, error) {
	segments := p.segment(text)
	if len(segments) == 0 {
		return company.Company{}, ErrNoName
	}

	name := segments[0]
	rest := segments[1:]

	// Leading short tag-shaped segments are categories; everything after the
	// first segment that does not look like a tag belongs to the description.
	// Ambiguity resolves toward the description: a truncated description is
	// worse downstream than a missed category tag.
	var categories []string
	descStart := 0
	for i, seg := range rest {
		if !p.isCategory(seg) {
			descStart = i
			break
		}
		categories = append(categories, seg)
		descStart = i + 1
	}
	categories = dedupeStrings(categories)

	description := EnsureSentenceBoundary(strings.Join(rest[descStart:], " "))

	detailURL := ""
	for _, a := range anchors {
		if company.ClassifyProfileURL(a.Href) == company.ProfileUnknown && a.Href != "" {
			detailURL = a.Href
			break
		}
	}

	record, ok := company.New(name, description, detailURL, categories, p.config.Batch)
	if !ok {
		return company.Company{}, ErrNoName
	}
	return record.WithFounders(p.ParseFounders(anchors)), nil
}

// ParseFounders classifies profile anchors and splits their visible text
// into a person name and an optional role title.
func (p *Parser) ParseFounders(anchors []Anchor) []company.Founder {
	var founders []company.Founder
	seen := make(map[string]bool)

	for _, a := range anchors {
		profileType := company.ClassifyProfileURL(a.Href)
		if profileType == company.ProfileUnknown {
			continue
		}
		if profileType == company.ProfileLinkedIn &&
			!strings.Contains(a.Href, "/in/") && !strings.Contains(a.Href, "/pub/") {
			// Company pages and share links are not people.
			continue
		}

		name, title := p.splitNameTitle(a.Text)
		if name == "" || strings.HasPrefix(strings.ToLower(name), "linkedin") {
			continue
		}

		key := strings.ToLower(name) + "|" + a.Href
		if seen[key] {
			continue
		}
		seen[key] = true

		founders = append(founders, company.Founder{
			Name:        name,
			ProfileURL:  a.Href,
			ProfileType: profileType,
			Title:       title,
		})
	}
	return founders
}

// splitNameTitle parses anchor text such as "Jane Doe, CEO" or
// "Jane Doe - Co-Founder" into name and role.
func (p *Parser) splitNameTitle(text string) (string, string) {
	text = CleanText(text)
	if text == "" {
		return "", ""
	}

	for _, sep := range []string{",", " - ", " – ", "|"} {
		if idx := strings.Index(text, sep); idx > 0 {
			candidate := CleanText(text[idx+len(sep):])
			if role, ok := p.matchRole(candidate); ok {
				return CleanText(text[:idx]), role
			}
		}
	}

	// A trailing role word with no separator ("Jane Doe CEO").
	fields := strings.Fields(text)
	if len(fields) >= 2 {
		if role, ok := p.matchRole(fields[len(fields)-1]); ok {
			return strings.Join(fields[:len(fields)-1], " "), role
		}
	}
	return text, ""
}

func (p *Parser) matchRole(candidate string) (string, bool) {
	for _, role := range p.config.RoleVocabulary {
		if strings.EqualFold(candidate, role) {
			return role, true
		}
	}
	return "", false
}

// segment splits entry text into trimmed lines with boilerplate removed.
func (p *Parser) segment(text string) []string {
	text = strings.ReplaceAll(text, " ", " ")
	var segments []string
	for _, line := range strings.Split(text, "\n") {
		line = breadcrumbRe.ReplaceAllString(line, "")
		line = CleanText(line)
		if line == "" || p.isBoilerplate(line) {
			continue
		}
		segments = append(segments, line)
	}
	return segments
}

func (p *Parser) isBoilerplate(line string) bool {
	lower := strings.ToLower(line)
	for _, pattern := range p.config.BoilerplatePatterns {
		if strings.Contains(lower, pattern) {
			return true
		}
	}
	// Bare pagination markers.
	if lower == ">" || lower == "·" || lower == "..." {
		return true
	}
	return false
}

// isCategory reports whether a segment has the shape of a short tag: listed
// in the vocabulary, or short with no terminal punctuation and no verb-like
// lowercase sentence structure.
func (p *Parser) isCategory(segment string) bool {
	for _, tag := range p.config.CategoryVocabulary {
		if strings.EqualFold(segment, tag) {
			return true
		}
	}
	if len(segment) > p.config.MaxCategoryLen {
		return false
	}
	if strings.ContainsAny(segment, ".!?") {
		return false
	}
	// Tags are at most a few words.
	return len(strings.Fields(segment)) <= 3
}

// CleanText collapses whitespace runs into single spaces.
func CleanText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

func dedupeStrings(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		key := strings.ToLower(s)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	return out
}
