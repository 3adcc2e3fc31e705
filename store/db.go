package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/aviguptakonda/yc-demoday-batch/company"
)

// DB is the SQLite run-history store.
type DB struct {
	pool *sql.DB
}

// Run is one recorded scraping run.
type Run struct {
	ID         int64     `json:"id"`
	Batch      string    `json:"batch"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Total      int       `json:"total"`
	Converged  bool      `json:"converged"`
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	batch TEXT NOT NULL,
	started_at TEXT NOT NULL,
	finished_at TEXT NOT NULL,
	total INTEGER NOT NULL,
	converged INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS companies (
	run_id INTEGER NOT NULL REFERENCES runs(id),
	position INTEGER NOT NULL,
	name TEXT NOT NULL,
	description TEXT NOT NULL,
	url TEXT NOT NULL,
	categories TEXT NOT NULL,
	founders TEXT NOT NULL,
	batch TEXT NOT NULL,
	scraped_at TEXT NOT NULL,
	PRIMARY KEY (run_id, position)
);`

// Open opens (and if needed creates) the run-history database.
func Open(path string) (*DB, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", path)
	pool, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}
	pool.SetMaxOpenConns(1) // sqlite wants a single writer
	pool.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := pool.PingContext(ctx); err != nil {
		_ = pool.Close()
		return nil, fmt.Errorf("failed to ping database: %v", err)
	}
	if _, err := pool.ExecContext(ctx, schema); err != nil {
		_ = pool.Close()
		return nil, fmt.Errorf("failed to apply schema: %v", err)
	}
	return &DB{pool: pool}, nil
}

// Close releases the connection pool.
func (d *DB) Close() error {
	if d == nil || d.pool == nil {
		return nil
	}
	return d.pool.Close()
}

// SaveRun records one run and its records in a single transaction.
func (d *DB) SaveRun(ctx context.Context, run Run, records []company.Company) (int64, error) {
	tx, err := d.pool.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (batch, started_at, finished_at, total, converged) VALUES (?, ?, ?, ?, ?)`,
		run.Batch,
		run.StartedAt.Format(time.RFC3339),
		run.FinishedAt.Format(time.RFC3339),
		len(records),
		boolToInt(run.Converged),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %v", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read run id: %v", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO companies (run_id, position, name, description, url, categories, founders, batch, scraped_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %v", err)
	}
	defer stmt.Close()

	for i, r := range records {
		categories, err := json.Marshal(r.Categories)
		if err != nil {
			return 0, fmt.Errorf("failed to encode categories for %s: %v", r.Name, err)
		}
		founders, err := json.Marshal(r.Founders)
		if err != nil {
			return 0, fmt.Errorf("failed to encode founders for %s: %v", r.Name, err)
		}
		if _, err := stmt.ExecContext(ctx, runID, i, r.Name, r.Description, r.URL,
			string(categories), string(founders), r.Batch, r.ScrapedAt.Format(time.RFC3339)); err != nil {
			return 0, fmt.Errorf("failed to insert company %s: %v", r.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %v", err)
	}
	return runID, nil
}

// LatestRun returns the most recent run, or sql.ErrNoRows when none exist.
func (d *DB) LatestRun(ctx context.Context) (Run, error) {
	var run Run
	var started, finished string
	var converged int
	err := d.pool.QueryRowContext(ctx,
		`SELECT id, batch, started_at, finished_at, total, converged FROM runs ORDER BY id DESC LIMIT 1`,
	).Scan(&run.ID, &run.Batch, &started, &finished, &run.Total, &converged)
	if err != nil {
		return Run{}, err
	}
	run.StartedAt, _ = time.Parse(time.RFC3339, started)
	run.FinishedAt, _ = time.Parse(time.RFC3339, finished)
	run.Converged = converged != 0
	return run, nil
}

// CompaniesForRun loads a run's records in discovery order.
func (d *DB) CompaniesForRun(ctx context.Context, runID int64) ([]company.Company, error) {
	rows, err := d.pool.QueryContext(ctx,
		`SELECT name, description, url, categories, founders, batch, scraped_at
		 FROM companies WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query companies: %v", err)
	}
	defer rows.Close()

	var records []company.Company
	for rows.Next() {
		var r company.Company
		var categories, founders, scrapedAt string
		if err := rows.Scan(&r.Name, &r.Description, &r.URL, &categories, &founders, &r.Batch, &scrapedAt); err != nil {
			return nil, fmt.Errorf("failed to scan company row: %v", err)
		}
		if err := json.Unmarshal([]byte(categories), &r.Categories); err != nil {
			return nil, fmt.Errorf("failed to decode categories: %v", err)
		}
		if err := json.Unmarshal([]byte(founders), &r.Founders); err != nil {
			return nil, fmt.Errorf("failed to decode founders: %v", err)
		}
		r.ScrapedAt, _ = time.Parse(time.RFC3339, scrapedAt)
		records = append(records, r)
	}
	return records, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
