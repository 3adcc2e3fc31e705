package research

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// WikipediaSummary is the lead section of a company's Wikipedia article.
type WikipediaSummary struct {
	Title      string `json:"title"`
	Extract    string `json:"extract"`
	ArticleURL string `json:"article_url"`
}

const maxExtractParagraphs = 3

// researchWikipedia fetches the company's Wikipedia article, when one
// exists under the company name, and extracts its lead paragraphs.
func (r *Researcher) researchWikipedia(ctx context.Context, companyName string) (WikipediaSummary, error) {
	title := strings.ReplaceAll(strings.TrimSpace(companyName), " ", "_")
	articleURL := "https://en.wikipedia.org/wiki/" + url.PathEscape(title)

	body, err := r.fetcher.Get(ctx, articleURL)
	if err != nil {
		return WikipediaSummary{}, fmt.Errorf("no wikipedia article for %s: %v", companyName, err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		return WikipediaSummary{}, fmt.Errorf("failed to parse wikipedia article: %v", err)
	}
	return extractWikipediaLead(doc, articleURL, companyName)
}

// extractWikipediaLead pulls the heading and intro paragraphs out of an
// article document. An article whose heading does not mention the company
// is a name collision, not a match.
func extractWikipediaLead(doc *goquery.Document, articleURL, companyName string) (WikipediaSummary, error) {
	heading := strings.TrimSpace(doc.Find("#firstHeading").Text())
	if heading == "" {
		return WikipediaSummary{}, fmt.Errorf("not a wikipedia article page")
	}
	if !strings.Contains(strings.ToLower(heading), strings.ToLower(companyName)) {
		return WikipediaSummary{}, fmt.Errorf("article %q does not match company %s", heading, companyName)
	}

	var paragraphs []string
	doc.Find("#mw-content-text .mw-parser-output > p").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := strings.Join(strings.Fields(s.Text()), " ")
		if text == "" {
			return true
		}
		paragraphs = append(paragraphs, text)
		return len(paragraphs) < maxExtractParagraphs
	})
	if len(paragraphs) == 0 {
		return WikipediaSummary{}, fmt.Errorf("article %q has no lead paragraphs", heading)
	}

	return WikipediaSummary{
		Title:      heading,
		Extract:    strings.Join(paragraphs, "\n\n"),
		ArticleURL: articleURL,
	}, nil
}
