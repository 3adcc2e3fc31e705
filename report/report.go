// Package report renders the static HTML output: the companies table, the
// analysis report with its category chart, and the comparison diff.
package report

import (
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/aviguptakonda/yc-demoday-batch/analyze"
	"github.com/aviguptakonda/yc-demoday-batch/company"
	"github.com/aviguptakonda/yc-demoday-batch/compare"
)

const styles = `
body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', system-ui, sans-serif;
       line-height: 1.6; color: #333; max-width: 1200px; margin: 0 auto;
       padding: 20px; background: #f8f9fa; }
.header { background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); color: white;
          padding: 30px; border-radius: 15px; margin-bottom: 30px; text-align: center; }
table { width: 100%; border-collapse: collapse; background: white;
        box-shadow: 0 2px 10px rgba(0,0,0,0.1); }
th, td { padding: 10px 14px; border-bottom: 1px solid #eee; text-align: left; }
th { background: #667eea; color: white; }
.tag { display: inline-block; background: #eef; border-radius: 4px;
       padding: 1px 7px; margin: 1px; font-size: 0.85em; }
.bar-row { display: flex; align-items: center; margin: 4px 0; }
.bar-label { width: 220px; }
.bar { background: #667eea; height: 18px; border-radius: 3px; }
.section { background: white; padding: 25px; border-radius: 10px;
           box-shadow: 0 2px 10px rgba(0,0,0,0.1); margin-bottom: 20px; }
.company-item { background: #f8f9fa; padding: 8px 14px; border-radius: 5px;
                border-left: 4px solid #667eea; margin: 4px 0; }
`

var funcs = template.FuncMap{
	"joinTags": func(tags []string) string { return strings.Join(tags, ", ") },
	"barWidth": func(count, max int) int {
		if max <= 0 {
			return 0
		}
		return 40 + count*600/max
	},
}

var companiesTmpl = template.Must(template.New("companies").Funcs(funcs).Parse(`<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"><title>{{.Title}}</title><style>` + styles + `</style></head>
<body>
<div class="header"><h1>{{.Title}}</h1><p>{{.Generated}} &middot; {{len .Records}} companies</p></div>
<table>
<tr><th>Company</th><th>Categories</th><th>Description</th><th>Founders</th></tr>
{{range .Records}}<tr>
<td>{{if .URL}}<a href="{{.URL}}">{{.Name}}</a>{{else}}{{.Name}}{{end}}</td>
<td>{{range .Categories}}<span class="tag">{{.}}</span>{{end}}</td>
<td>{{.Description}}</td>
<td>{{range .Founders}}<div>{{.Name}}{{if .Title}} ({{.Title}}){{end}}</div>{{end}}</td>
</tr>{{end}}
</table>
</body></html>
`))

var analysisTmpl = template.Must(template.New("analysis").Funcs(funcs).Parse(`<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"><title>{{.Title}}</title><style>` + styles + `</style></head>
<body>
<div class="header"><h1>{{.Title}}</h1><p>{{.Generated}}</p></div>
<div class="section"><h2>Overview</h2>
<p>{{.Report.TotalCompanies}} companies, {{.Report.Categories.TotalCategories}} distinct categories,
{{.Report.Founders.TotalFounders}} founders ({{.Report.Founders.LinkedInProfiles}} with LinkedIn profiles).</p>
</div>
<div class="section"><h2>Top Categories</h2>
{{$max := .MaxCategory}}
{{range .Report.Categories.MostCommon}}<div class="bar-row">
<span class="bar-label">{{.Label}} ({{.Count}})</span>
<div class="bar" style="width: {{barWidth .Count $max}}px"></div>
</div>{{end}}
</div>
<div class="section"><h2>Descriptions</h2>
<p>Average {{printf "%.1f" .Report.Descriptions.AvgLength}} characters,
median {{printf "%.1f" .Report.Descriptions.MedianLength}}.</p>
<p>{{range $i, $k := .Report.Descriptions.CommonKeywords}}{{if $i}}, {{end}}{{$k.Label}} ({{$k.Count}}){{end}}</p>
</div>
<div class="section"><h2>Data Quality</h2>
<p>Missing descriptions: {{.Report.DataQuality.MissingDescriptions}},
missing URLs: {{.Report.DataQuality.MissingURLs}},
missing founders: {{.Report.DataQuality.MissingFounders}}.</p>
</div>
</body></html>
`))

var diffTmpl = template.Must(template.New("diff").Funcs(funcs).Parse(`<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"><title>Company List Comparison</title><style>` + styles + `</style></head>
<body>
<div class="header"><h1>Company List Comparison</h1><p>{{.Generated}}</p></div>
<div class="section"><h2>Summary</h2>
<p>{{.Diff.TotalScraped}} scraped, {{.Diff.TotalExternal}} in external list,
{{len .Diff.Common}} common.</p>
</div>
<div class="section"><h2>Scraped but missing from external list ({{len .Diff.MissingOutside}})</h2>
{{range .Diff.MissingOutside}}<div class="company-item">{{.}}</div>{{end}}
</div>
<div class="section"><h2>In external list but not scraped ({{len .Diff.MissingScraped}})</h2>
{{range .Diff.MissingScraped}}<div class="company-item">{{.}}</div>{{end}}
</div>
</body></html>
`))

// WriteCompanies renders the companies table.
func WriteCompanies(w io.Writer, title string, records []company.Company) error {
	data := struct {
		Title     string
		Generated string
		Records   []company.Company
	}{title, timestamp(), records}
	if err := companiesTmpl.Execute(w, data); err != nil {
		return fmt.Errorf("failed to render companies report: %v", err)
	}
	return nil
}

// WriteAnalysis renders the analysis report with its category bar chart.
func WriteAnalysis(w io.Writer, title string, r analyze.Report) error {
	maxCategory := 0
	for _, c := range r.Categories.MostCommon {
		if c.Count > maxCategory {
			maxCategory = c.Count
		}
	}
	data := struct {
		Title       string
		Generated   string
		Report      analyze.Report
		MaxCategory int
	}{title, timestamp(), r, maxCategory}
	if err := analysisTmpl.Execute(w, data); err != nil {
		return fmt.Errorf("failed to render analysis report: %v", err)
	}
	return nil
}

// WriteDiff renders the list-comparison report.
func WriteDiff(w io.Writer, d compare.Diff) error {
	data := struct {
		Generated string
		Diff      compare.Diff
	}{timestamp(), d}
	if err := diffTmpl.Execute(w, data); err != nil {
		return fmt.Errorf("failed to render diff report: %v", err)
	}
	return nil
}

func timestamp() string {
	return time.Now().Format("January 2, 2006 at 15:04")
}
