// Package analyze computes aggregate analytics over one run's records.
package analyze

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/aviguptakonda/yc-demoday-batch/company"
	"github.com/aviguptakonda/yc-demoday-batch/parse"
)

// Count pairs a label with how often it occurred.
type Count struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// CategoryAnalysis summarizes the category tags across all records.
type CategoryAnalysis struct {
	TotalCategories int            `json:"total_categories"`
	MostCommon      []Count        `json:"most_common_categories"`
	Distribution    map[string]int `json:"category_distribution"`
}

// DescriptionStats summarizes description lengths and vocabulary.
type DescriptionStats struct {
	AvgLength      float64 `json:"avg_description_length"`
	MedianLength   float64 `json:"median_description_length"`
	MinLength      int     `json:"min_description_length"`
	MaxLength      int     `json:"max_description_length"`
	AvgSentences   float64 `json:"avg_sentences_per_description"`
	CommonKeywords []Count `json:"common_keywords"`
}

// FounderStats summarizes founder coverage and profile hosts.
type FounderStats struct {
	TotalFounders        int            `json:"total_founders"`
	CompaniesWithFounder int            `json:"companies_with_founders"`
	ProfileTypes         map[string]int `json:"profile_type_distribution"`
	LinkedInProfiles     int            `json:"linkedin_profiles_count"`
	AvgPerCompany        float64        `json:"avg_founders_per_company"`
	MaxPerCompany        int            `json:"max_founders_per_company"`
}

// DataQuality counts the fields left empty by the scrape.
type DataQuality struct {
	MissingDescriptions int `json:"missing_descriptions"`
	MissingURLs         int `json:"missing_urls"`
	MissingFounders     int `json:"missing_founders"`
}

// Report is the full analysis of one run.
type Report struct {
	TotalCompanies int              `json:"total_companies"`
	BatchCounts    map[string]int   `json:"batch_info"`
	Categories     CategoryAnalysis `json:"categories"`
	Descriptions   DescriptionStats `json:"descriptions"`
	Founders       FounderStats     `json:"founders"`
	DataQuality    DataQuality      `json:"data_quality"`
	GeneratedAt    time.Time        `json:"generated_at"`
}

var wordRe = regexp.MustCompile(`[A-Za-z][A-Za-z0-9'-]*`)

var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true, "but": true,
	"in": true, "on": true, "at": true, "to": true, "for": true, "of": true,
	"with": true, "by": true, "is": true, "are": true, "was": true,
	"were": true, "be": true, "been": true, "have": true, "has": true,
	"had": true, "do": true, "does": true, "did": true, "will": true,
	"would": true, "could": true, "should": true, "can": true, "this": true,
	"that": true, "these": true, "those": true, "it": true, "its": true,
	"we": true, "our": true, "they": true, "their": true, "your": true,
	"you": true, "from": true, "into": true, "more": true, "than": true,
}

// Analyze builds the report for one run's records.
func Analyze(records []company.Company) Report {
	report := Report{
		TotalCompanies: len(records),
		BatchCounts:    map[string]int{},
		GeneratedAt:    time.Now(),
	}

	for _, r := range records {
		if r.Batch != "" {
			report.BatchCounts[r.Batch]++
		}
	}

	report.Categories = analyzeCategories(records)
	report.Descriptions = analyzeDescriptions(records)
	report.Founders = analyzeFounders(records)
	report.DataQuality = analyzeQuality(records)
	return report
}

func analyzeCategories(records []company.Company) CategoryAnalysis {
	dist := map[string]int{}
	for _, r := range records {
		for _, cat := range r.Categories {
			dist[cat]++
		}
	}
	return CategoryAnalysis{
		TotalCategories: len(dist),
		MostCommon:      topCounts(dist, 10),
		Distribution:    dist,
	}
}

func analyzeDescriptions(records []company.Company) DescriptionStats {
	var lengths []int
	sentences := 0
	words := map[string]int{}

	for _, r := range records {
		if r.Description == "" {
			continue
		}
		lengths = append(lengths, len(r.Description))
		sentences += len(parse.SplitSentences(r.Description))
		for _, w := range wordRe.FindAllString(strings.ToLower(r.Description), -1) {
			if len(w) <= 3 || stopWords[w] {
				continue
			}
			words[w]++
		}
	}

	stats := DescriptionStats{CommonKeywords: topCounts(words, 20)}
	if len(lengths) == 0 {
		return stats
	}
	stats.AvgSentences = float64(sentences) / float64(len(lengths))

	sort.Ints(lengths)
	total := 0
	for _, l := range lengths {
		total += l
	}
	stats.AvgLength = float64(total) / float64(len(lengths))
	stats.MinLength = lengths[0]
	stats.MaxLength = lengths[len(lengths)-1]
	mid := len(lengths) / 2
	if len(lengths)%2 == 1 {
		stats.MedianLength = float64(lengths[mid])
	} else {
		stats.MedianLength = float64(lengths[mid-1]+lengths[mid]) / 2
	}
	return stats
}

func analyzeFounders(records []company.Company) FounderStats {
	stats := FounderStats{ProfileTypes: map[string]int{}}
	for _, r := range records {
		if len(r.Founders) > 0 {
			stats.CompaniesWithFounder++
		}
		if len(r.Founders) > stats.MaxPerCompany {
			stats.MaxPerCompany = len(r.Founders)
		}
		for _, f := range r.Founders {
			stats.TotalFounders++
			stats.ProfileTypes[string(f.ProfileType)]++
			if f.ProfileType == company.ProfileLinkedIn {
				stats.LinkedInProfiles++
			}
		}
	}
	if len(records) > 0 {
		stats.AvgPerCompany = float64(stats.TotalFounders) / float64(len(records))
	}
	return stats
}

func analyzeQuality(records []company.Company) DataQuality {
	var q DataQuality
	for _, r := range records {
		if r.Description == "" {
			q.MissingDescriptions++
		}
		if r.URL == "" {
			q.MissingURLs++
		}
		if len(r.Founders) == 0 {
			q.MissingFounders++
		}
	}
	return q
}

// topCounts orders a count map descending, label ascending on ties.
func topCounts(m map[string]int, n int) []Count {
	labels := maps.Keys(m)
	slices.SortFunc(labels, func(a, b string) int {
		if m[a] != m[b] {
			return m[b] - m[a]
		}
		return strings.Compare(a, b)
	})
	if len(labels) > n {
		labels = labels[:n]
	}
	out := make([]Count, 0, len(labels))
	for _, l := range labels {
		out = append(out, Count{Label: l, Count: m[l]})
	}
	return out
}

// Summary renders the report for console output.
func Summary(r Report) string {
	var b strings.Builder
	line := strings.Repeat("=", 50)

	fmt.Fprintf(&b, "%s\nYC COMPANIES ANALYSIS SUMMARY\n%s\n", line, line)
	fmt.Fprintf(&b, "\nTotal Companies: %d\n", r.TotalCompanies)

	if len(r.BatchCounts) > 0 {
		fmt.Fprintf(&b, "\nBatch Distribution:\n")
		for _, c := range topCounts(r.BatchCounts, len(r.BatchCounts)) {
			fmt.Fprintf(&b, "  %s: %d companies\n", c.Label, c.Count)
		}
	}
	if len(r.Categories.MostCommon) > 0 {
		fmt.Fprintf(&b, "\nTop Categories:\n")
		for i, c := range r.Categories.MostCommon {
			if i >= 5 {
				break
			}
			fmt.Fprintf(&b, "  %s: %d companies\n", c.Label, c.Count)
		}
	}
	fmt.Fprintf(&b, "\nDescription Statistics:\n")
	fmt.Fprintf(&b, "  Average length: %.1f characters\n", r.Descriptions.AvgLength)
	fmt.Fprintf(&b, "  Median length: %.1f characters\n", r.Descriptions.MedianLength)
	fmt.Fprintf(&b, "  Average sentences: %.1f\n", r.Descriptions.AvgSentences)

	fmt.Fprintf(&b, "\nFounders Statistics:\n")
	fmt.Fprintf(&b, "  Total founders: %d\n", r.Founders.TotalFounders)
	fmt.Fprintf(&b, "  Companies with founders: %d\n", r.Founders.CompaniesWithFounder)
	fmt.Fprintf(&b, "  LinkedIn profiles: %d\n", r.Founders.LinkedInProfiles)
	fmt.Fprintf(&b, "  Average founders per company: %.1f\n", r.Founders.AvgPerCompany)

	fmt.Fprintf(&b, "\nData Quality:\n")
	fmt.Fprintf(&b, "  Missing descriptions: %d\n", r.DataQuality.MissingDescriptions)
	fmt.Fprintf(&b, "  Missing urls: %d\n", r.DataQuality.MissingURLs)
	fmt.Fprintf(&b, "  Missing founders: %d\n", r.DataQuality.MissingFounders)

	fmt.Fprintf(&b, "\n%s\n", line)
	return b.String()
}
