package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aviguptakonda/yc-demoday-batch/company"
	"github.com/aviguptakonda/yc-demoday-batch/config"
	"github.com/aviguptakonda/yc-demoday-batch/sample"
	"github.com/aviguptakonda/yc-demoday-batch/store"
)

func testServer(t *testing.T) (*Server, *store.DB) {
	t.Helper()
	db, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewServer(config.Default(), db, nil, nil), db
}

func saveSampleRun(t *testing.T, db *store.DB) {
	t.Helper()
	now := time.Now()
	_, err := db.SaveRun(context.Background(), store.Run{
		Batch:      "Summer 2025",
		StartedAt:  now,
		FinishedAt: now,
		Converged:  true,
	}, sample.Companies("Summer 2025"))
	require.NoError(t, err)
}

func TestCompaniesHandlerEmptyDatabase(t *testing.T) {
	server, _ := testServer(t)

	rec := httptest.NewRecorder()
	server.Routes().ServeHTTP(rec, httptest.NewRequest("GET", "/companies", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCompaniesHandlerReturnsLatestRun(t *testing.T) {
	server, db := testServer(t)
	saveSampleRun(t, db)

	rec := httptest.NewRecorder()
	server.Routes().ServeHTTP(rec, httptest.NewRequest("GET", "/companies", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var records []company.Company
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &records))
	require.Len(t, records, 10)
	assert.Equal(t, "TechFlow AI", records[0].Name)
}

func TestCompaniesReportHandler(t *testing.T) {
	server, db := testServer(t)
	saveSampleRun(t, db)

	rec := httptest.NewRecorder()
	server.Routes().ServeHTTP(rec, httptest.NewRequest("GET", "/companies.html", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "TechFlow AI")
}

func TestAnalysisHandler(t *testing.T) {
	server, db := testServer(t)
	saveSampleRun(t, db)

	rec := httptest.NewRecorder()
	server.Routes().ServeHTTP(rec, httptest.NewRequest("GET", "/analysis", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var report struct {
		TotalCompanies int `json:"total_companies"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, 10, report.TotalCompanies)
}

func TestScrapeHandlerRequiresPOST(t *testing.T) {
	server, _ := testServer(t)

	rec := httptest.NewRecorder()
	server.Routes().ServeHTTP(rec, httptest.NewRequest("GET", "/scrape", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestResearchHandlerRejectsEmptyName(t *testing.T) {
	server, _ := testServer(t)

	rec := httptest.NewRecorder()
	server.Routes().ServeHTTP(rec, httptest.NewRequest("GET", "/research/", nil))

	// mux treats the empty path segment as a non-match.
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCompareHandler(t *testing.T) {
	server, db := testServer(t)
	saveSampleRun(t, db)

	body := strings.NewReader(`<table>
		<tr><th>Company</th></tr>
		<tr><td>TechFlow AI</td></tr>
		<tr><td>Unknown Startup</td></tr>
	</table>`)

	rec := httptest.NewRecorder()
	server.Routes().ServeHTTP(rec, httptest.NewRequest("POST", "/compare", body))

	require.Equal(t, http.StatusOK, rec.Code)

	var diff struct {
		Common         []string `json:"common_companies"`
		MissingScraped []string `json:"missing_in_scraped"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &diff))
	assert.Contains(t, diff.Common, "TechFlow AI")
	assert.Equal(t, []string{"Unknown Startup"}, diff.MissingScraped)
}

func TestCompareHandlerRejectsEmptyTable(t *testing.T) {
	server, db := testServer(t)
	saveSampleRun(t, db)

	rec := httptest.NewRecorder()
	server.Routes().ServeHTTP(rec,
		httptest.NewRequest("POST", "/compare", strings.NewReader("<p>no table</p>")))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
