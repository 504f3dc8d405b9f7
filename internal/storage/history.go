package storage

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"time"

	"github.com/go-sql-driver/mysql"

	"goldrun/internal/config"
	"goldrun/internal/domain"
)

// Schema creates the run history tables.
var Schema = []string{
	`CREATE TABLE IF NOT EXISTS goldrun_runs (
	run_id CHAR(36) NOT NULL,
	suite VARCHAR(32) NOT NULL,
	total INT NOT NULL,
	passed INT NOT NULL,
	failed INT NOT NULL,
	jobs INT NOT NULL,
	duration_ms BIGINT NOT NULL,
	run_at DATETIME NOT NULL,
	PRIMARY KEY (run_id, suite)
)`,
	`CREATE TABLE IF NOT EXISTS goldrun_case_results (
	run_id CHAR(36) NOT NULL,
	suite VARCHAR(32) NOT NULL,
	case_id INT NOT NULL,
	verdict VARCHAR(8) NOT NULL,
	reason VARCHAR(32) NOT NULL DEFAULT '',
	changes INT NOT NULL DEFAULT 0,
	duration_ms BIGINT NOT NULL,
	run_at DATETIME NOT NULL,
	PRIMARY KEY (run_id, suite, case_id),
	KEY idx_suite_case (suite, case_id)
)`,
}

// MySQLConfig builds the driver config for the history database. An explicit DSN wins over the individual settings.
func MySQLConfig(h config.History) (*mysql.Config, error) {
	if h.DSN != "" {
		cfg, err := mysql.ParseDSN(h.DSN)
		if err != nil {
			return nil, fmt.Errorf("invalid history DSN: %w", err)
		}
		cfg.ParseTime = true
		return cfg, nil
	}

	host := h.Host
	if host == "" {
		host = "127.0.0.1"
	}
	port := h.Port
	if port == "" {
		port = "3306"
	}
	user := h.User
	if user == "" {
		user = "root"
	}

	cfg := mysql.NewConfig()
	cfg.User = user
	cfg.Passwd = h.Password
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(host, port)
	cfg.DBName = h.Database
	cfg.ParseTime = true
	return cfg, nil
}

// HistoryStore records suite verdicts in MySQL
type HistoryStore struct {
	db *sql.DB
}

// OpenHistory connects to the history database and checks the connection.
func OpenHistory(ctx context.Context, h config.History) (*HistoryStore, error) {
	cfg, err := MySQLConfig(h)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open("mysql", cfg.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to history database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping history database: %w", err)
	}
	return &HistoryStore{db: db}, nil
}

// Close closes the database handle.
func (s *HistoryStore) Close() error {
	return s.db.Close()
}

// EnsureSchema creates the history tables when missing.
func (s *HistoryStore) EnsureSchema(ctx context.Context) error {
	for _, stmt := range Schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create history schema: %w", err)
		}
	}
	return nil
}

// Record stores one finished suite and its case verdicts in a single transaction.
func (s *HistoryStore) Record(ctx context.Context, runID string, v *domain.SuiteVerdict, jobs int) error {
	now := time.Now().UTC()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin history transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO goldrun_runs (run_id, suite, total, passed, failed, jobs, duration_ms, run_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		runID, v.Suite, v.Total(), v.Passed, v.Failed, jobs, v.Duration.Milliseconds(), now)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, rec := range HistoryRecords(runID, v, now) {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO goldrun_case_results (run_id, suite, case_id, verdict, reason, changes, duration_ms, run_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
			rec.RunID, rec.Suite, rec.CaseID, string(rec.Verdict), string(rec.Reason), rec.Changes, rec.Duration.Milliseconds(), rec.RunAt)
		if err != nil {
			return fmt.Errorf("insert case %02d: %w", rec.CaseID, err)
		}
	}
	return tx.Commit()
}

// LastVerdicts returns the most recent recorded verdict per case of a suite.
func (s *HistoryStore) LastVerdicts(ctx context.Context, suite string) (map[int]domain.Verdict, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT r.case_id, r.verdict FROM goldrun_case_results r
JOIN (SELECT case_id, MAX(run_at) AS run_at FROM goldrun_case_results WHERE suite = ? GROUP BY case_id) latest
ON r.case_id = latest.case_id AND r.run_at = latest.run_at
WHERE r.suite = ?`, suite, suite)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	verdicts := make(map[int]domain.Verdict)
	for rows.Next() {
		var id int
		var verdict string
		if err := rows.Scan(&id, &verdict); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		verdicts[id] = domain.Verdict(verdict)
	}
	return verdicts, rows.Err()
}

// HistoryRecords converts a suite verdict into one row per case.
func HistoryRecords(runID string, v *domain.SuiteVerdict, at time.Time) []domain.HistoryRecord {
	records := make([]domain.HistoryRecord, 0, len(v.Results))
	for _, r := range v.Results {
		rec := domain.HistoryRecord{
			RunID:    runID,
			Suite:    v.Suite,
			CaseID:   r.Case.ID,
			Verdict:  r.Verdict,
			Reason:   r.Reason,
			Duration: r.Duration,
			RunAt:    at,
		}
		if r.Diff != nil {
			rec.Changes = r.Diff.Changes()
		}
		records = append(records, rec)
	}
	return records
}
