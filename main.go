package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gorilla/handlers"

	"github.com/aviguptakonda/yc-demoday-batch/analyze"
	"github.com/aviguptakonda/yc-demoday-batch/browser"
	"github.com/aviguptakonda/yc-demoday-batch/cache"
	"github.com/aviguptakonda/yc-demoday-batch/company"
	"github.com/aviguptakonda/yc-demoday-batch/config"
	"github.com/aviguptakonda/yc-demoday-batch/fetch"
	"github.com/aviguptakonda/yc-demoday-batch/report"
	"github.com/aviguptakonda/yc-demoday-batch/research"
	"github.com/aviguptakonda/yc-demoday-batch/sample"
	"github.com/aviguptakonda/yc-demoday-batch/scrape"
	"github.com/aviguptakonda/yc-demoday-batch/store"
	"github.com/aviguptakonda/yc-demoday-batch/web"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	once := flag.Bool("once", false, "run one scrape, write output files, and exit")
	useSample := flag.Bool("sample", false, "with -once: write the sample dataset instead of scraping")
	input := flag.String("input", "", "re-analyze a previous run's JSON output file and exit")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}

	if *input != "" {
		analysis, err := reanalyze(*input)
		if err != nil {
			log.Fatalf("Analysis failed: %v", err)
		}
		fmt.Print(analyze.Summary(analysis))
		return
	}

	if *once {
		if err := runOnce(cfg, *useSample); err != nil {
			log.Fatalf("Run failed: %v", err)
		}
		return
	}

	pool := browser.New(cfg.PoolSize)
	if err := pool.Initialize(); err != nil {
		log.Fatalf("Failed to initialize browser pool: %v", err)
	}
	defer pool.Shutdown()

	db, err := store.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	limiter := fetch.NewHostLimiter(cfg.RequestsPerSecond, cfg.Burst)
	fetcher := fetch.NewClient(30*time.Second, limiter)
	researcher := research.New(fetcher, cache.New(cfg.RedisAddr))
	session := scrape.NewSession(cfg, pool)

	server := web.NewServer(cfg, db, researcher, session)
	router := server.Routes()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000" // fallback for local development
	}

	fmt.Printf("Server is running on port %s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, handlers.LoggingHandler(os.Stdout, router)))
}

// reanalyze rebuilds the analysis from a previous run's JSON output file.
func reanalyze(path string) (analyze.Report, error) {
	records, err := store.ReadJSON(path)
	if err != nil {
		return analyze.Report{}, err
	}
	log.Printf("Loaded %d companies from %s", len(records), path)
	return analyze.Analyze(records), nil
}

// runOnce scrapes (or loads the sample dataset), writes the CSV/JSON data
// files and the HTML reports, and records the run in the database.
func runOnce(cfg config.Config, useSample bool) error {
	ctx := context.Background()

	var records []company.Company
	var stats scrape.Stats

	if useSample {
		records = sample.Companies(cfg.Batch)
		stats = scrape.Stats{Captured: len(records), Converged: true}
		log.Printf("Loaded %d sample companies", len(records))
	} else {
		pool := browser.New(cfg.PoolSize)
		if err := pool.Initialize(); err != nil {
			return fmt.Errorf("failed to initialize browser pool: %v", err)
		}
		defer pool.Shutdown()

		var err error
		records, stats, err = scrape.NewSession(cfg, pool).Run(ctx)
		if err != nil {
			return err
		}
	}

	writer := store.NewWriter(cfg.OutputDir)
	csvPath, err := writer.WriteCSV(records)
	if err != nil {
		return err
	}
	jsonPath, err := writer.WriteJSON(records)
	if err != nil {
		return err
	}
	log.Printf("Wrote %s and %s", csvPath, jsonPath)

	analysis := analyze.Analyze(records)
	fmt.Print(analyze.Summary(analysis))
	if err := writeReports(writer.OutputDir(), cfg.Batch, records, analysis); err != nil {
		return err
	}

	db, err := store.Open(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	finished := time.Now()
	run := store.Run{
		Batch:      cfg.Batch,
		StartedAt:  finished.Add(-stats.Duration),
		FinishedAt: finished,
		Total:      len(records),
		Converged:  stats.Converged,
	}
	if _, err := db.SaveRun(ctx, run, records); err != nil {
		return err
	}
	return nil
}

func writeReports(outputDir, batch string, records []company.Company, analysis analyze.Report) error {
	dir := filepath.Join(outputDir, "reports")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create reports directory: %v", err)
	}

	companiesFile, err := os.Create(filepath.Join(dir, "companies.html"))
	if err != nil {
		return fmt.Errorf("failed to create companies report: %v", err)
	}
	defer companiesFile.Close()
	if err := report.WriteCompanies(companiesFile, batch+" Companies", records); err != nil {
		return err
	}

	analysisFile, err := os.Create(filepath.Join(dir, "analysis.html"))
	if err != nil {
		return fmt.Errorf("failed to create analysis report: %v", err)
	}
	defer analysisFile.Close()
	return report.WriteAnalysis(analysisFile, batch+" Analysis", analysis)
}
