package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"regexp"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"

	"kevlar/internal/domain"
)

const defaultTablePrefix = "kevlar"

var tablePrefixPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]{0,47}$`)

// MySQLStorage archives run summaries in a MySQL database.
// Runs go to "<prefix>_runs", their events to "<prefix>_events".
type MySQLStorage struct {
	db     *sql.DB
	prefix string
}

// DSNFromEnv builds a MySQL DSN from DB_HOST, DB_PORT, DB_USERNAME,
// DB_PASSWORD and DB_DATABASE, after loading envFile if it exists.
func DSNFromEnv(envFile string) (string, error) {
	if envFile != "" {
		// .env file might not exist, that's okay - use environment variables
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return "", fmt.Errorf("error reading env file '%s': %w", envFile, err)
		}
	}

	dbName := os.Getenv("DB_DATABASE")
	if dbName == "" {
		return "", fmt.Errorf("DB_DATABASE is not set")
	}

	dbHost := os.Getenv("DB_HOST")
	if dbHost == "" {
		dbHost = "127.0.0.1"
	}
	dbPort := os.Getenv("DB_PORT")
	if dbPort == "" {
		dbPort = "3306"
	}
	dbUser := os.Getenv("DB_USERNAME")
	if dbUser == "" {
		dbUser = "root"
	}

	cfg := mysql.NewConfig()
	cfg.User = dbUser
	cfg.Passwd = os.Getenv("DB_PASSWORD")
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(dbHost, dbPort)
	cfg.DBName = dbName
	cfg.ParseTime = true
	return cfg.FormatDSN(), nil
}

// NewMySQLStorage connects to the database and creates the tables if needed
func NewMySQLStorage(dsn, prefix string) (*MySQLStorage, error) {
	if prefix == "" {
		prefix = defaultTablePrefix
	}
	if !tablePrefixPattern.MatchString(prefix) {
		return nil, fmt.Errorf("invalid table prefix: %s", prefix)
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database server: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database server: %w", err)
	}

	s := &MySQLStorage{db: db, prefix: prefix}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database connection
func (s *MySQLStorage) Close() error {
	return s.db.Close()
}

func (s *MySQLStorage) runsTable() string   { return s.prefix + "_runs" }
func (s *MySQLStorage) eventsTable() string { return s.prefix + "_events" }

func (s *MySQLStorage) ensureSchema() error {
	statements := []string{
		fmt.Sprintf("CREATE TABLE IF NOT EXISTS `%s` ("+
			"run_id CHAR(36) NOT NULL PRIMARY KEY, "+
			"name VARCHAR(255) NOT NULL, "+
			"status VARCHAR(16) NOT NULL, "+
			"workspace TEXT, "+
			"started_at DATETIME(3) NOT NULL, "+
			"finished_at DATETIME(3) NULL)", s.runsTable()),
		fmt.Sprintf("CREATE TABLE IF NOT EXISTS `%s` ("+
			"run_id CHAR(36) NOT NULL, "+
			"seq INT NOT NULL, "+
			"status VARCHAR(16) NOT NULL, "+
			"description TEXT, "+
			"artifacts JSON, "+
			"PRIMARY KEY (run_id, seq))", s.eventsTable()),
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create results tables: %w", err)
		}
	}
	return nil
}

// Save inserts the run and its events in one transaction
func (s *MySQLStorage) Save(summary *domain.RecordSummary) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	var finished interface{}
	if !summary.FinishedAt.IsZero() {
		finished = summary.FinishedAt
	}

	_, err = tx.Exec(
		fmt.Sprintf("INSERT INTO `%s` (run_id, name, status, workspace, started_at, finished_at) VALUES (?, ?, ?, ?, ?, ?)", s.runsTable()),
		summary.RunID, summary.Name, summary.Status.String(), summary.Workspace, summary.StartedAt, finished,
	)
	if err != nil {
		return fmt.Errorf("insert run %s: %w", summary.RunID, err)
	}

	for i, event := range summary.History {
		artifacts, err := json.Marshal(event.Artifacts)
		if err != nil {
			return fmt.Errorf("marshal artifacts: %w", err)
		}
		_, err = tx.Exec(
			fmt.Sprintf("INSERT INTO `%s` (run_id, seq, status, description, artifacts) VALUES (?, ?, ?, ?, ?)", s.eventsTable()),
			summary.RunID, i, event.Status.String(), event.Description, string(artifacts),
		)
		if err != nil {
			return fmt.Errorf("insert event %d of run %s: %w", i, summary.RunID, err)
		}
	}

	return tx.Commit()
}

// Load reads a run and its events by run id
func (s *MySQLStorage) Load(runID string) (*domain.RecordSummary, error) {
	var (
		summary  domain.RecordSummary
		status   string
		finished sql.NullTime
		started  time.Time
	)
	row := s.db.QueryRow(
		fmt.Sprintf("SELECT run_id, name, status, workspace, started_at, finished_at FROM `%s` WHERE run_id = ?", s.runsTable()),
		runID,
	)
	if err := row.Scan(&summary.RunID, &summary.Name, &status, &summary.Workspace, &started, &finished); err != nil {
		return nil, fmt.Errorf("load run %s: %w", runID, err)
	}
	if err := summary.Status.UnmarshalText([]byte(status)); err != nil {
		return nil, err
	}
	summary.StartedAt = started
	if finished.Valid {
		summary.FinishedAt = finished.Time
	}

	rows, err := s.db.Query(
		fmt.Sprintf("SELECT status, description, artifacts FROM `%s` WHERE run_id = ? ORDER BY seq", s.eventsTable()),
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("load events of run %s: %w", runID, err)
	}
	defer rows.Close()

	summary.History = []domain.Event{}
	for rows.Next() {
		var (
			event     domain.Event
			evStatus  string
			artifacts []byte
		)
		if err := rows.Scan(&evStatus, &event.Description, &artifacts); err != nil {
			return nil, err
		}
		if err := event.Status.UnmarshalText([]byte(evStatus)); err != nil {
			return nil, err
		}
		if len(artifacts) > 0 {
			if err := json.Unmarshal(artifacts, &event.Artifacts); err != nil {
				return nil, fmt.Errorf("parse artifacts: %w", err)
			}
		}
		summary.History = append(summary.History, event)
	}
	return &summary, rows.Err()
}
