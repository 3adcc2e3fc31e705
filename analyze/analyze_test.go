package analyze

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aviguptakonda/yc-demoday-batch/company"
	"github.com/aviguptakonda/yc-demoday-batch/sample"
)

func mustCompany(t *testing.T, name, description string, categories []string, founders []company.Founder) company.Company {
	t.Helper()
	c, ok := company.New(name, description, "https://"+strings.ToLower(name)+".com", categories, "Summer 2025")
	require.True(t, ok)
	return c.WithFounders(founders)
}

func TestAnalyzeCountsCategoriesAndFounders(t *testing.T) {
	records := []company.Company{
		mustCompany(t, "Acme", "Builds warehouse robots.", []string{"Robotics", "B2B"}, []company.Founder{
			{Name: "Jane Doe", ProfileType: company.ProfileLinkedIn},
			{Name: "John Roe", ProfileType: company.ProfileGitHub},
		}),
		mustCompany(t, "Beta", "Payment routing for robots.", []string{"Fintech", "B2B"}, []company.Founder{
			{Name: "Sam Poe", ProfileType: company.ProfileLinkedIn},
		}),
		mustCompany(t, "Gamma", "", []string{"B2B"}, nil),
	}

	report := Analyze(records)

	assert.Equal(t, 3, report.TotalCompanies)
	assert.Equal(t, map[string]int{"Summer 2025": 3}, report.BatchCounts)

	assert.Equal(t, 3, report.Categories.TotalCategories)
	require.NotEmpty(t, report.Categories.MostCommon)
	assert.Equal(t, Count{Label: "B2B", Count: 3}, report.Categories.MostCommon[0])

	assert.Equal(t, 3, report.Founders.TotalFounders)
	assert.Equal(t, 2, report.Founders.CompaniesWithFounder)
	assert.Equal(t, 2, report.Founders.LinkedInProfiles)
	assert.Equal(t, 2, report.Founders.MaxPerCompany)
	assert.InDelta(t, 1.0, report.Founders.AvgPerCompany, 0.001)

	assert.Equal(t, 1, report.DataQuality.MissingDescriptions)
	assert.Equal(t, 1, report.DataQuality.MissingFounders)
	assert.Equal(t, 0, report.DataQuality.MissingURLs)
}

func TestAnalyzeDescriptionStats(t *testing.T) {
	records := []company.Company{
		mustCompany(t, "A", "Robots robots robots everywhere.", nil, nil), // 32 chars
		mustCompany(t, "B", "Tiny robots.", nil, nil),                     // 12 chars
		mustCompany(t, "C", "", nil, nil),                                 // skipped
	}

	report := Analyze(records)

	assert.Equal(t, 12, report.Descriptions.MinLength)
	assert.Equal(t, 32, report.Descriptions.MaxLength)
	assert.InDelta(t, 22.0, report.Descriptions.AvgLength, 0.001)
	assert.InDelta(t, 22.0, report.Descriptions.MedianLength, 0.001)

	require.NotEmpty(t, report.Descriptions.CommonKeywords)
	assert.Equal(t, Count{Label: "robots", Count: 4}, report.Descriptions.CommonKeywords[0])
}

func TestAnalyzeCountsSentences(t *testing.T) {
	records := []company.Company{
		mustCompany(t, "A", "Builds robots. Ships them worldwide. Profitably!", nil, nil),
		mustCompany(t, "B", "Payment routing for Acme Inc. customers.", nil, nil),
		mustCompany(t, "C", "", nil, nil),
	}

	report := Analyze(records)

	// 3 sentences + 1 sentence over 2 non-empty descriptions; the
	// abbreviation period in "Acme Inc." is not a boundary.
	assert.InDelta(t, 2.0, report.Descriptions.AvgSentences, 0.001)

	out := Summary(report)
	assert.Contains(t, out, "Average sentences: 2.0")
}

func TestAnalyzeEmptyInput(t *testing.T) {
	report := Analyze(nil)
	assert.Equal(t, 0, report.TotalCompanies)
	assert.Empty(t, report.Categories.MostCommon)
	assert.Zero(t, report.Descriptions.AvgLength)
	assert.Zero(t, report.Founders.AvgPerCompany)
}

func TestTopCountsOrdersByCountThenLabel(t *testing.T) {
	got := topCounts(map[string]int{"b": 2, "a": 2, "c": 5, "d": 1}, 3)
	assert.Equal(t, []Count{{"c", 5}, {"a", 2}, {"b", 2}}, got)
}

func TestSummaryOnSampleDataset(t *testing.T) {
	records := sample.Companies("Summer 2025")
	report := Analyze(records)

	out := Summary(report)
	assert.Contains(t, out, "YC COMPANIES ANALYSIS SUMMARY")
	assert.Contains(t, out, "Total Companies: 10")
	assert.Contains(t, out, "AI/ML")
	assert.Contains(t, out, "Missing descriptions: 0")
}
