package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aviguptakonda/yc-demoday-batch/analyze"
	"github.com/aviguptakonda/yc-demoday-batch/compare"
	"github.com/aviguptakonda/yc-demoday-batch/sample"
)

func TestWriteCompanies(t *testing.T) {
	var buf bytes.Buffer
	records := sample.Companies("Summer 2025")

	require.NoError(t, WriteCompanies(&buf, "Summer 2025 Companies", records))
	html := buf.String()

	assert.Contains(t, html, "<title>Summer 2025 Companies</title>")
	assert.Contains(t, html, "TechFlow AI")
	assert.Contains(t, html, `href="https://techflow.ai"`)
	assert.Contains(t, html, "Sarah Chen")
	assert.Contains(t, html, "10 companies")
}

func TestWriteCompaniesEscapesUntrustedText(t *testing.T) {
	var buf bytes.Buffer
	records := sample.Companies("Summer 2025")
	records[0] = records[0].WithDescription(`<script>alert("x")</script>`)

	require.NoError(t, WriteCompanies(&buf, "Companies", records))
	assert.NotContains(t, buf.String(), "<script>alert")
}

func TestWriteAnalysis(t *testing.T) {
	var buf bytes.Buffer
	records := sample.Companies("Summer 2025")

	require.NoError(t, WriteAnalysis(&buf, "Summer 2025 Analysis", analyze.Analyze(records)))
	html := buf.String()

	assert.Contains(t, html, "Top Categories")
	assert.Contains(t, html, "AI/ML")
	assert.Contains(t, html, "Data Quality")
	assert.Contains(t, html, `class="bar"`)
}

func TestWriteDiff(t *testing.T) {
	var buf bytes.Buffer
	diff := compare.Diff{
		TotalScraped:   2,
		TotalExternal:  2,
		Common:         []string{"Acme"},
		MissingOutside: []string{"Beta"},
		MissingScraped: []string{"Gamma"},
	}

	require.NoError(t, WriteDiff(&buf, diff))
	html := buf.String()

	assert.Contains(t, html, "Company List Comparison")
	assert.Contains(t, html, "Beta")
	assert.Contains(t, html, "Gamma")
	assert.Contains(t, html, "missing from external list (1)")
}
