// Package web exposes the scraped data and the scraper itself over HTTP.
package web

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"github.com/aviguptakonda/yc-demoday-batch/analyze"
	"github.com/aviguptakonda/yc-demoday-batch/company"
	"github.com/aviguptakonda/yc-demoday-batch/compare"
	"github.com/aviguptakonda/yc-demoday-batch/config"
	"github.com/aviguptakonda/yc-demoday-batch/report"
	"github.com/aviguptakonda/yc-demoday-batch/research"
	"github.com/aviguptakonda/yc-demoday-batch/scrape"
	"github.com/aviguptakonda/yc-demoday-batch/store"
)

// Server holds the wired dependencies behind the HTTP handlers.
type Server struct {
	cfg        config.Config
	db         *store.DB
	researcher *research.Researcher
	session    *scrape.Session

	// One scrape at a time; the browser pool is not sized for more.
	scrapeMu sync.Mutex
}

// NewServer wires the HTTP surface.
func NewServer(cfg config.Config, db *store.DB, researcher *research.Researcher, session *scrape.Session) *Server {
	return &Server{cfg: cfg, db: db, researcher: researcher, session: session}
}

// Routes registers all endpoints on a fresh router.
func (s *Server) Routes() *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/companies", s.CompaniesHandler).Methods("GET")
	router.HandleFunc("/companies.html", s.CompaniesReportHandler).Methods("GET")
	router.HandleFunc("/analysis", s.AnalysisHandler).Methods("GET")
	router.HandleFunc("/analysis.html", s.AnalysisReportHandler).Methods("GET")
	router.HandleFunc("/research/{name}", s.ResearchHandler).Methods("GET")
	router.HandleFunc("/compare", s.CompareHandler).Methods("POST")
	router.HandleFunc("/scrape", s.ScrapeHandler).Methods("POST")
	return router
}

func (s *Server) latestCompanies(r *http.Request) ([]company.Company, error) {
	run, err := s.db.LatestRun(r.Context())
	if err != nil {
		return nil, err
	}
	return s.db.CompaniesForRun(r.Context(), run.ID)
}

// CompaniesHandler returns the most recent run's companies as JSON.
func (s *Server) CompaniesHandler(w http.ResponseWriter, r *http.Request) {
	records, err := s.latestCompanies(r)
	if err != nil {
		http.Error(w, "No completed runs found", http.StatusNotFound)
		return
	}
	writeJSON(w, records)
}

// CompaniesReportHandler renders the most recent run as an HTML table.
func (s *Server) CompaniesReportHandler(w http.ResponseWriter, r *http.Request) {
	records, err := s.latestCompanies(r)
	if err != nil {
		http.Error(w, "No completed runs found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := report.WriteCompanies(w, s.cfg.Batch+" Companies", records); err != nil {
		log.Printf("Failed to render companies report: %v", err)
	}
}

// AnalysisHandler returns the analysis of the most recent run as JSON.
func (s *Server) AnalysisHandler(w http.ResponseWriter, r *http.Request) {
	records, err := s.latestCompanies(r)
	if err != nil {
		http.Error(w, "No completed runs found", http.StatusNotFound)
		return
	}
	writeJSON(w, analyze.Analyze(records))
}

// AnalysisReportHandler renders the analysis of the most recent run as HTML.
func (s *Server) AnalysisReportHandler(w http.ResponseWriter, r *http.Request) {
	records, err := s.latestCompanies(r)
	if err != nil {
		http.Error(w, "No completed runs found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := report.WriteAnalysis(w, s.cfg.Batch+" Analysis", analyze.Analyze(records)); err != nil {
		log.Printf("Failed to render analysis report: %v", err)
	}
}

// ResearchHandler looks one company up across the public research sources.
func (s *Server) ResearchHandler(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	if name == "" {
		http.Error(w, "Company name is required", http.StatusBadRequest)
		return
	}

	companyURL := r.URL.Query().Get("url")
	profile, err := s.researcher.Research(r.Context(), name, companyURL)
	if err != nil {
		http.Error(w, "Research failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, profile)
}

// CompareHandler diffs the latest run against an external company list
// posted as an HTML table export. With ?format=html the diff renders as a
// report instead of JSON.
func (s *Server) CompareHandler(w http.ResponseWriter, r *http.Request) {
	records, err := s.latestCompanies(r)
	if err != nil {
		http.Error(w, "No completed runs found", http.StatusNotFound)
		return
	}

	external, err := compare.ParseHTMLCompanies(r.Body)
	if err != nil {
		http.Error(w, "Failed to parse uploaded table", http.StatusBadRequest)
		return
	}
	if len(external) == 0 {
		http.Error(w, "No company names found in uploaded table", http.StatusBadRequest)
		return
	}

	diff := compare.Compare(records, external)
	if r.URL.Query().Get("format") == "html" {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := report.WriteDiff(w, diff); err != nil {
			log.Printf("Failed to render diff report: %v", err)
		}
		return
	}
	writeJSON(w, diff)
}

// ScrapeHandler runs a full scrape session and persists the results.
func (s *Server) ScrapeHandler(w http.ResponseWriter, r *http.Request) {
	if !s.scrapeMu.TryLock() {
		http.Error(w, "A scrape is already running", http.StatusConflict)
		return
	}
	defer s.scrapeMu.Unlock()

	records, stats, err := s.session.Run(r.Context())
	if err != nil {
		log.Printf("Scrape session failed: %v", err)
		http.Error(w, "Scrape session failed", http.StatusInternalServerError)
		return
	}

	finished := time.Now()
	runID, err := s.db.SaveRun(r.Context(), store.Run{
		Batch:      s.cfg.Batch,
		StartedAt:  finished.Add(-stats.Duration),
		FinishedAt: finished,
		Total:      len(records),
		Converged:  stats.Converged,
	}, records)
	if err != nil {
		log.Printf("Failed to persist run: %v", err)
		http.Error(w, "Failed to persist run", http.StatusInternalServerError)
		return
	}

	writeJSON(w, struct {
		RunID int64        `json:"run_id"`
		Stats scrape.Stats `json:"stats"`
	}{runID, stats})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	jsonData, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		http.Error(w, "Error marshaling to JSON", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(jsonData)
}
