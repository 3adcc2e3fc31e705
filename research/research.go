// Package research enriches a company with presence data from public
// sources: its website, GitHub organization, news coverage, and social
// profiles. Results are memoized in Redis since companies rarely change
// between runs.
package research

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/aviguptakonda/yc-demoday-batch/cache"
	"github.com/aviguptakonda/yc-demoday-batch/fetch"
)

const cacheTTL = 24 * time.Hour

// Repository is one public repository of a company's GitHub org.
type Repository struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Stars       int    `json:"stars"`
	Forks       int    `json:"forks"`
	Language    string `json:"language"`
	URL         string `json:"url"`
}

// GitHubPresence summarizes a company's GitHub organization.
type GitHubPresence struct {
	OrganizationFound bool         `json:"organization_found"`
	OrganizationURL   string       `json:"organization_url,omitempty"`
	PublicRepos       int          `json:"public_repos"`
	TotalStars        int          `json:"total_stars"`
	TopRepositories   []Repository `json:"top_repositories,omitempty"`
	PrimaryLanguages  []string     `json:"primary_languages,omitempty"`
}

// WebPresence is what we could verify about the company's own website.
type WebPresence struct {
	Website     string            `json:"website,omitempty"`
	Title       string            `json:"title,omitempty"`
	Description string            `json:"description,omitempty"`
	SocialLinks map[string]string `json:"social_links,omitempty"`
}

// Article is a single news mention.
type Article struct {
	Title  string `json:"title"`
	URL    string `json:"url"`
	Source string `json:"source"`
}

// Profile aggregates everything the researcher found for one company.
type Profile struct {
	CompanyName  string            `json:"company_name"`
	Web          WebPresence       `json:"web_presence"`
	GitHub       GitHubPresence    `json:"github"`
	Wikipedia    *WikipediaSummary `json:"wikipedia,omitempty"`
	News         []Article         `json:"news,omitempty"`
	SocialMedia  map[string]string `json:"social_media,omitempty"`
	SourceErrors map[string]string `json:"source_errors,omitempty"`
	ResearchedAt time.Time         `json:"researched_at"`
}

// Researcher looks companies up across the public sources.
type Researcher struct {
	fetcher *fetch.Client
	cache   *cache.Client
}

// New builds a researcher. A nil cache disables memoization.
func New(fetcher *fetch.Client, c *cache.Client) *Researcher {
	return &Researcher{fetcher: fetcher, cache: c}
}

// Research looks up a company across all sources concurrently. A source
// that fails is recorded in SourceErrors and does not abort the others.
// companyURL, when known from scraping, skips the domain guessing.
func (r *Researcher) Research(ctx context.Context, companyName, companyURL string) (Profile, error) {
	if strings.TrimSpace(companyName) == "" {
		return Profile{}, fmt.Errorf("company name is empty")
	}

	key := "research:" + strings.ToLower(strings.TrimSpace(companyName))
	return cache.Memoize(ctx, r.cache, key, cacheTTL, func() (Profile, error) {
		return r.researchAll(ctx, companyName, companyURL)
	})
}

func (r *Researcher) researchAll(ctx context.Context, companyName, companyURL string) (Profile, error) {
	log.Printf("Researching %s across public sources", companyName)

	profile := Profile{
		CompanyName:  companyName,
		SourceErrors: make(map[string]string),
		ResearchedAt: time.Now(),
	}

	var mu sync.Mutex
	var wg sync.WaitGroup
	run := func(source string, fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				mu.Lock()
				profile.SourceErrors[source] = err.Error()
				mu.Unlock()
			}
		}()
	}

	run("web_presence", func() error {
		web, err := r.researchWeb(ctx, companyName, companyURL)
		if err != nil {
			return err
		}
		mu.Lock()
		profile.Web = web
		mu.Unlock()
		return nil
	})
	run("github", func() error {
		gh, err := r.researchGitHub(ctx, companyName)
		if err != nil {
			return err
		}
		mu.Lock()
		profile.GitHub = gh
		mu.Unlock()
		return nil
	})
	run("wikipedia", func() error {
		summary, err := r.researchWikipedia(ctx, companyName)
		if err != nil {
			return err
		}
		mu.Lock()
		profile.Wikipedia = &summary
		mu.Unlock()
		return nil
	})
	run("news", func() error {
		articles, err := r.researchNews(ctx, companyName)
		if err != nil {
			return err
		}
		mu.Lock()
		profile.News = articles
		mu.Unlock()
		return nil
	})
	run("social_media", func() error {
		social := r.researchSocial(ctx, companyName)
		mu.Lock()
		profile.SocialMedia = social
		mu.Unlock()
		return nil
	})

	wg.Wait()
	if len(profile.SourceErrors) == 0 {
		profile.SourceErrors = nil
	}
	return profile, nil
}

// HandleCandidates returns the username variants checked against GitHub
// and social platforms, in probe order.
func HandleCandidates(companyName string) []string {
	name := strings.ToLower(strings.TrimSpace(companyName))
	candidates := []string{
		strings.ReplaceAll(name, " ", ""),
		strings.ReplaceAll(name, " ", "-"),
		strings.ReplaceAll(name, " ", "_"),
	}
	words := strings.Fields(name)
	if len(words) > 1 {
		var acronym strings.Builder
		for _, w := range words {
			acronym.WriteByte(w[0])
		}
		candidates = append(candidates, acronym.String())
	}

	seen := make(map[string]bool, len(candidates))
	out := candidates[:0]
	for _, c := range candidates {
		if c != "" && !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}

// DomainCandidates returns the website URLs probed when no URL is known
// from scraping.
func DomainCandidates(companyName string) []string {
	name := strings.ToLower(strings.TrimSpace(companyName))
	joined := strings.ReplaceAll(name, " ", "")
	hyphened := strings.ReplaceAll(name, " ", "-")

	domains := []string{
		"https://" + joined + ".com",
		"https://" + joined + ".ai",
		"https://" + joined + ".io",
	}
	if hyphened != joined {
		domains = append(domains,
			"https://"+hyphened+".com",
			"https://"+hyphened+".ai",
			"https://"+hyphened+".io",
		)
	}
	domains = append(domains, "https://www."+joined+".com")
	return domains
}

func (r *Researcher) researchWeb(ctx context.Context, companyName, companyURL string) (WebPresence, error) {
	candidates := DomainCandidates(companyName)
	if companyURL != "" {
		candidates = append([]string{companyURL}, candidates...)
	}
	return r.probeWebsites(ctx, companyName, candidates)
}

func (r *Researcher) probeWebsites(ctx context.Context, companyName string, candidates []string) (WebPresence, error) {
	for _, candidate := range candidates {
		body, err := r.fetcher.Get(ctx, candidate)
		if err != nil {
			continue
		}
		// A page that never mentions the company and is tiny is most
		// likely a parked domain for some other party.
		lower := strings.ToLower(string(body))
		if !strings.Contains(lower, strings.ToLower(companyName)) && len(body) < 5000 {
			continue
		}

		web := WebPresence{Website: candidate}
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
		if err != nil {
			return web, nil
		}
		web.Title = strings.TrimSpace(doc.Find("title").First().Text())
		if desc, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok {
			web.Description = truncate(strings.TrimSpace(desc), 200)
		}
		web.SocialLinks = extractSocialLinks(doc)
		return web, nil
	}
	return WebPresence{}, fmt.Errorf("no reachable website found for %s", companyName)
}

func extractSocialLinks(doc *goquery.Document) map[string]string {
	platforms := map[string]string{
		"linkedin.com": "linkedin",
		"twitter.com":  "twitter",
		"x.com":        "twitter",
		"github.com":   "github",
		"youtube.com":  "youtube",
	}

	links := make(map[string]string)
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		u, err := url.Parse(href)
		if err != nil || u.Host == "" {
			return
		}
		host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")
		if platform, ok := platforms[host]; ok {
			if _, exists := links[platform]; !exists {
				links[platform] = href
			}
		}
	})
	if len(links) == 0 {
		return nil
	}
	return links
}

type githubOrg struct {
	PublicRepos int `json:"public_repos"`
}

type githubRepo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Stars       int    `json:"stargazers_count"`
	Forks       int    `json:"forks_count"`
	Language    string `json:"language"`
	HTMLURL     string `json:"html_url"`
}

func (r *Researcher) researchGitHub(ctx context.Context, companyName string) (GitHubPresence, error) {
	for _, username := range HandleCandidates(companyName) {
		body, err := r.fetcher.Get(ctx, "https://api.github.com/orgs/"+username)
		if err != nil {
			continue
		}
		var org githubOrg
		if err := json.Unmarshal(body, &org); err != nil {
			continue
		}

		gh := GitHubPresence{
			OrganizationFound: true,
			OrganizationURL:   "https://github.com/" + username,
			PublicRepos:       org.PublicRepos,
		}

		reposURL := fmt.Sprintf("https://api.github.com/orgs/%s/repos?sort=stars&direction=desc&per_page=10", username)
		reposBody, err := r.fetcher.Get(ctx, reposURL)
		if err != nil {
			return gh, nil
		}
		var repos []githubRepo
		if err := json.Unmarshal(reposBody, &repos); err != nil {
			return gh, nil
		}

		languages := make(map[string]int)
		for _, repo := range repos {
			gh.TotalStars += repo.Stars
			if repo.Language != "" {
				languages[repo.Language]++
			}
			if repo.Stars > 5 {
				gh.TopRepositories = append(gh.TopRepositories, Repository{
					Name:        repo.Name,
					Description: repo.Description,
					Stars:       repo.Stars,
					Forks:       repo.Forks,
					Language:    repo.Language,
					URL:         repo.HTMLURL,
				})
			}
		}
		gh.PrimaryLanguages = topLanguages(languages, 5)
		return gh, nil
	}
	return GitHubPresence{}, fmt.Errorf("no GitHub organization found for %s", companyName)
}

func topLanguages(counts map[string]int, limit int) []string {
	type langCount struct {
		lang  string
		count int
	}
	sorted := make([]langCount, 0, len(counts))
	for lang, count := range counts {
		sorted = append(sorted, langCount{lang, count})
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].count != sorted[j].count {
			return sorted[i].count > sorted[j].count
		}
		return sorted[i].lang < sorted[j].lang
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	langs := make([]string, len(sorted))
	for i, lc := range sorted {
		langs[i] = lc.lang
	}
	return langs
}

type techcrunchPost struct {
	Title struct {
		Rendered string `json:"rendered"`
	} `json:"title"`
	Link string `json:"link"`
}

func (r *Researcher) researchNews(ctx context.Context, companyName string) ([]Article, error) {
	searchURL := "https://techcrunch.com/wp-json/wp/v2/posts?per_page=5&search=" + url.QueryEscape(companyName)
	body, err := r.fetcher.Get(ctx, searchURL)
	if err != nil {
		return nil, fmt.Errorf("techcrunch search failed: %v", err)
	}

	var posts []techcrunchPost
	if err := json.Unmarshal(body, &posts); err != nil {
		return nil, fmt.Errorf("failed to decode techcrunch response: %v", err)
	}

	var articles []Article
	for _, post := range posts {
		// The search endpoint matches body text too; keep only posts that
		// actually name the company in the headline.
		if post.Title.Rendered == "" || post.Link == "" {
			continue
		}
		if !strings.Contains(strings.ToLower(post.Title.Rendered), strings.ToLower(companyName)) {
			continue
		}
		articles = append(articles, Article{
			Title:  post.Title.Rendered,
			URL:    post.Link,
			Source: "TechCrunch",
		})
		if len(articles) == 3 {
			break
		}
	}
	return articles, nil
}

func (r *Researcher) researchSocial(ctx context.Context, companyName string) map[string]string {
	platforms := []struct {
		name     string
		template string
	}{
		{"linkedin", "https://www.linkedin.com/company/%s"},
		{"twitter", "https://x.com/%s"},
	}

	profiles := make(map[string]string)
	for _, platform := range platforms {
		for _, handle := range HandleCandidates(companyName) {
			profileURL := fmt.Sprintf(platform.template, handle)
			body, err := r.fetcher.Get(ctx, profileURL)
			if err != nil {
				continue
			}
			lower := strings.ToLower(string(body))
			if strings.Contains(lower, strings.ToLower(companyName)) || len(body) > 10000 {
				profiles[platform.name] = profileURL
				break
			}
		}
	}
	if len(profiles) == 0 {
		return nil
	}
	return profiles
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
