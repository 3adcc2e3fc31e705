// Package compare checks a scraped batch against an external company list,
// either a plain list of names or an HTML table export.
package compare

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/aviguptakonda/yc-demoday-batch/company"
)

// Diff is the result of comparing two company name sets.
type Diff struct {
	TotalScraped   int       `json:"total_scraped"`
	TotalExternal  int       `json:"total_external"`
	Common         []string  `json:"common_companies"`
	MissingOutside []string  `json:"missing_in_external"`
	MissingScraped []string  `json:"missing_in_scraped"`
	GeneratedAt    time.Time `json:"generated_at"`
}

// Normalize strips spacing and punctuation for name comparison.
func Normalize(name string) string {
	lower := strings.ToLower(strings.TrimSpace(name))
	replacer := strings.NewReplacer(" ", "", "-", "", ".", "", "'", "", "&", "and")
	return replacer.Replace(lower)
}

// Match reports whether two company names refer to the same company:
// exact, containment, or normalized containment.
func Match(a, b string) bool {
	la, lb := strings.ToLower(strings.TrimSpace(a)), strings.ToLower(strings.TrimSpace(b))
	if la == "" || lb == "" {
		return false
	}
	if la == lb || strings.Contains(la, lb) || strings.Contains(lb, la) {
		return true
	}
	na, nb := Normalize(a), Normalize(b)
	return na == nb || strings.Contains(na, nb) || strings.Contains(nb, na)
}

// Compare diffs the scraped records against an external list of names.
func Compare(records []company.Company, external []string) Diff {
	scraped := make([]string, 0, len(records))
	for _, r := range records {
		if strings.TrimSpace(r.Name) != "" {
			scraped = append(scraped, strings.TrimSpace(r.Name))
		}
	}
	external = cleanNames(external)

	diff := Diff{
		TotalScraped:  len(scraped),
		TotalExternal: len(external),
		GeneratedAt:   time.Now(),
	}

	matchedExternal := make([]bool, len(external))
	for _, name := range scraped {
		found := false
		for i, ext := range external {
			if Match(name, ext) {
				matchedExternal[i] = true
				found = true
			}
		}
		if found {
			diff.Common = append(diff.Common, name)
		} else {
			diff.MissingOutside = append(diff.MissingOutside, name)
		}
	}
	for i, ext := range external {
		if !matchedExternal[i] {
			diff.MissingScraped = append(diff.MissingScraped, ext)
		}
	}

	sort.Strings(diff.Common)
	sort.Strings(diff.MissingOutside)
	sort.Strings(diff.MissingScraped)
	return diff
}

// headerNames are the column headings recognized as the company column.
var headerNames = map[string]bool{
	"company": true, "company name": true, "name": true,
	"startup": true, "startup name": true,
}

// ParseHTMLCompanies extracts company names from an HTML table export. It
// looks for a header-labelled company column first and falls back to cells
// with a company-name class.
func ParseHTMLCompanies(r io.Reader) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %v", err)
	}

	var names []string
	seen := map[string]bool{}
	add := func(raw string) {
		name := strings.TrimSpace(raw)
		if name == "" || headerNames[strings.ToLower(name)] {
			return
		}
		key := Normalize(name)
		if key == "" || seen[key] {
			return
		}
		seen[key] = true
		names = append(names, name)
	}

	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		rows := table.Find("tr")
		if rows.Length() == 0 {
			return true
		}

		// Locate the company column from the header row.
		companyCol := -1
		rows.First().Find("th, td").Each(func(i int, cell *goquery.Selection) {
			if headerNames[strings.ToLower(strings.TrimSpace(cell.Text()))] && companyCol < 0 {
				companyCol = i
			}
		})
		if companyCol < 0 {
			return true
		}

		rows.Slice(1, rows.Length()).Each(func(_ int, row *goquery.Selection) {
			cells := row.Find("td, th")
			if cells.Length() > companyCol {
				add(cells.Eq(companyCol).Text())
			}
		})
		return len(names) == 0
	})

	if len(names) == 0 {
		doc.Find("td.company-name").Each(func(_ int, cell *goquery.Selection) {
			add(cell.Text())
		})
	}
	return names, nil
}

func cleanNames(in []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		key := Normalize(s)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	return out
}
