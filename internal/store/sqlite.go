// Package store provides storage backends for PobutBot.
//
// This file implements the SQLite-backed store.
package store

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "embed"

	"github.com/pobut/PobutBot/internal/models"
	"github.com/shopspring/decimal"

	_ "github.com/mattn/go-sqlite3"
)

// DefaultDirPermissions defines the default permissions for database directories.
const DefaultDirPermissions = 0755

//go:embed migrations_sqlite.sql
var sqliteMigrations string

type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite store with the given DSN.
// The DSN is a file path to the SQLite database file; the containing
// directory is created if missing.
func NewSQLiteStore(opts ...Option) (*SQLiteStore, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	slog.Debug("NewSQLiteStore invoked", "DSN_set", cfg.DSN != "")

	dsn := cfg.DSN
	if dsn == "" {
		slog.Error("SQLiteStore DSN not set")
		return nil, fmt.Errorf("database DSN not set")
	}

	dir := filepath.Dir(dsn)
	if err := os.MkdirAll(dir, DefaultDirPermissions); err != nil {
		slog.Error("Failed to create database directory", "error", err, "dir", dir)
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		slog.Error("Failed to open SQLite connection", "error", err)
		return nil, err
	}

	if err := db.Ping(); err != nil {
		slog.Error("SQLite ping failed", "error", err)
		return nil, err
	}

	if _, err := db.Exec(sqliteMigrations); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Debug("SQLite migrations applied successfully")

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) AddMood(date string, value int) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO mood (date, value) VALUES (?, ?)`, date, value)
	if err != nil {
		slog.Error("SQLiteStore AddMood failed", "error", err, "date", date)
		return fmt.Errorf("failed to insert mood for %s: %w", date, err)
	}
	slog.Debug("SQLiteStore AddMood succeeded", "date", date, "value", value)
	return nil
}

func (s *SQLiteStore) AddMileage(date string, value float64) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO mileage (date, value) VALUES (?, ?)`, date, value)
	if err != nil {
		slog.Error("SQLiteStore AddMileage failed", "error", err, "date", date)
		return fmt.Errorf("failed to insert mileage for %s: %w", date, err)
	}
	slog.Debug("SQLiteStore AddMileage succeeded", "date", date, "value", value)
	return nil
}

func (s *SQLiteStore) AddExpense(date, category string, amount decimal.Decimal) error {
	_, err := s.db.Exec(`INSERT INTO expenses (date, category, amount) VALUES (?, ?, ?)`, date, category, amount.String())
	if err != nil {
		slog.Error("SQLiteStore AddExpense failed", "error", err, "date", date, "category", category)
		return fmt.Errorf("failed to insert expense for %s: %w", date, err)
	}
	slog.Debug("SQLiteStore AddExpense succeeded", "date", date, "category", category, "amount", amount.String())
	return nil
}

func (s *SQLiteStore) AddSalary(date string, amount decimal.Decimal) error {
	_, err := s.db.Exec(`INSERT INTO salary (date, amount) VALUES (?, ?)`, date, amount.String())
	if err != nil {
		slog.Error("SQLiteStore AddSalary failed", "error", err, "date", date)
		return fmt.Errorf("failed to insert salary for %s: %w", date, err)
	}
	slog.Debug("SQLiteStore AddSalary succeeded", "date", date, "amount", amount.String())
	return nil
}

func (s *SQLiteStore) GetWeeklyStats(startDate, endDate string) (models.WeeklyStats, error) {
	var stats models.WeeklyStats

	expenses, err := sumAmounts(s.db, `SELECT amount FROM expenses WHERE date BETWEEN ? AND ?`, startDate, endDate)
	if err != nil {
		slog.Error("SQLiteStore GetWeeklyStats expenses failed", "error", err)
		return stats, fmt.Errorf("failed to sum expenses: %w", err)
	}
	stats.Expenses = expenses

	salary, err := sumAmounts(s.db, `SELECT amount FROM salary WHERE date BETWEEN ? AND ?`, startDate, endDate)
	if err != nil {
		slog.Error("SQLiteStore GetWeeklyStats salary failed", "error", err)
		return stats, fmt.Errorf("failed to sum salary: %w", err)
	}
	stats.Salary = salary

	var avgMood sql.NullFloat64
	if err := s.db.QueryRow(`SELECT AVG(value) FROM mood WHERE date BETWEEN ? AND ?`, startDate, endDate).Scan(&avgMood); err != nil {
		slog.Error("SQLiteStore GetWeeklyStats mood failed", "error", err)
		return stats, fmt.Errorf("failed to average mood: %w", err)
	}
	if avgMood.Valid {
		stats.AvgMood = &avgMood.Float64
	}

	if err := s.db.QueryRow(`SELECT COALESCE(SUM(value), 0) FROM mileage WHERE date BETWEEN ? AND ?`, startDate, endDate).Scan(&stats.Mileage); err != nil {
		slog.Error("SQLiteStore GetWeeklyStats mileage failed", "error", err)
		return stats, fmt.Errorf("failed to sum mileage: %w", err)
	}

	slog.Debug("SQLiteStore GetWeeklyStats succeeded", "start", startDate, "end", endDate)
	return stats, nil
}

func (s *SQLiteStore) GetLastRecords() (models.LastRecords, error) {
	var last models.LastRecords

	mood, err := scanLastMood(s.db.QueryRow(`SELECT date, value FROM mood ORDER BY date DESC LIMIT 1`))
	if err != nil {
		slog.Error("SQLiteStore GetLastRecords mood failed", "error", err)
		return last, fmt.Errorf("failed to query last mood: %w", err)
	}
	last.Mood = mood

	mileage, err := scanLastMileage(s.db.QueryRow(`SELECT date, value FROM mileage ORDER BY date DESC LIMIT 1`))
	if err != nil {
		slog.Error("SQLiteStore GetLastRecords mileage failed", "error", err)
		return last, fmt.Errorf("failed to query last mileage: %w", err)
	}
	last.Mileage = mileage

	rows, err := s.db.Query(`SELECT date, category, amount FROM expenses ORDER BY date DESC, id DESC LIMIT 3`)
	if err != nil {
		slog.Error("SQLiteStore GetLastRecords expenses failed", "error", err)
		return last, fmt.Errorf("failed to query last expenses: %w", err)
	}
	defer rows.Close()
	last.Expenses, err = scanExpenses(rows)
	if err != nil {
		slog.Error("SQLiteStore GetLastRecords expense scan failed", "error", err)
		return last, err
	}

	slog.Debug("SQLiteStore GetLastRecords succeeded", "expense_count", len(last.Expenses))
	return last, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
