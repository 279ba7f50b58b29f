// Package store provides storage backends for PobutBot.
//
// This file implements the PostgreSQL-backed store.
package store

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "embed"

	"github.com/pobut/PobutBot/internal/models"
	"github.com/shopspring/decimal"

	_ "github.com/lib/pq"
)

// Database connection pool configuration constants.
const (
	// DefaultMaxOpenConns is the default maximum number of open connections to the database.
	DefaultMaxOpenConns = 25
	// DefaultMaxIdleConns is the default maximum number of idle connections in the pool.
	DefaultMaxIdleConns = 25
	// DefaultConnMaxLifetime is the default maximum amount of time a connection may be reused.
	DefaultConnMaxLifetime = 5 * time.Minute
)

//go:embed migrations_postgres.sql
var postgresMigrations string

type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a new Postgres store based on provided options.
func NewPostgresStore(opts ...Option) (*PostgresStore, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	slog.Debug("NewPostgresStore invoked", "DSN_set", cfg.DSN != "")

	dsn := cfg.DSN
	if dsn == "" {
		slog.Error("PostgresStore DSN not set")
		return nil, fmt.Errorf("database DSN not set")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		slog.Error("Failed to open Postgres connection", "error", err)
		return nil, err
	}

	db.SetMaxOpenConns(DefaultMaxOpenConns)
	db.SetMaxIdleConns(DefaultMaxIdleConns)
	db.SetConnMaxLifetime(DefaultConnMaxLifetime)

	if err := db.Ping(); err != nil {
		slog.Error("Postgres ping failed", "error", err)
		return nil, err
	}

	if _, err := db.Exec(postgresMigrations); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Debug("Postgres migrations applied successfully")

	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) AddMood(date string, value int) error {
	_, err := s.db.Exec(`INSERT INTO mood (date, value) VALUES ($1, $2) ON CONFLICT (date) DO UPDATE SET value = EXCLUDED.value`, date, value)
	if err != nil {
		slog.Error("PostgresStore AddMood failed", "error", err, "date", date)
		return fmt.Errorf("failed to insert mood for %s: %w", date, err)
	}
	slog.Debug("PostgresStore AddMood succeeded", "date", date, "value", value)
	return nil
}

func (s *PostgresStore) AddMileage(date string, value float64) error {
	_, err := s.db.Exec(`INSERT INTO mileage (date, value) VALUES ($1, $2) ON CONFLICT (date) DO UPDATE SET value = EXCLUDED.value`, date, value)
	if err != nil {
		slog.Error("PostgresStore AddMileage failed", "error", err, "date", date)
		return fmt.Errorf("failed to insert mileage for %s: %w", date, err)
	}
	slog.Debug("PostgresStore AddMileage succeeded", "date", date, "value", value)
	return nil
}

func (s *PostgresStore) AddExpense(date, category string, amount decimal.Decimal) error {
	_, err := s.db.Exec(`INSERT INTO expenses (date, category, amount) VALUES ($1, $2, $3)`, date, category, amount.String())
	if err != nil {
		slog.Error("PostgresStore AddExpense failed", "error", err, "date", date, "category", category)
		return fmt.Errorf("failed to insert expense for %s: %w", date, err)
	}
	slog.Debug("PostgresStore AddExpense succeeded", "date", date, "category", category, "amount", amount.String())
	return nil
}

func (s *PostgresStore) AddSalary(date string, amount decimal.Decimal) error {
	_, err := s.db.Exec(`INSERT INTO salary (date, amount) VALUES ($1, $2)`, date, amount.String())
	if err != nil {
		slog.Error("PostgresStore AddSalary failed", "error", err, "date", date)
		return fmt.Errorf("failed to insert salary for %s: %w", date, err)
	}
	slog.Debug("PostgresStore AddSalary succeeded", "date", date, "amount", amount.String())
	return nil
}

func (s *PostgresStore) GetWeeklyStats(startDate, endDate string) (models.WeeklyStats, error) {
	var stats models.WeeklyStats

	expenses, err := sumAmounts(s.db, `SELECT amount FROM expenses WHERE date BETWEEN $1 AND $2`, startDate, endDate)
	if err != nil {
		slog.Error("PostgresStore GetWeeklyStats expenses failed", "error", err)
		return stats, fmt.Errorf("failed to sum expenses: %w", err)
	}
	stats.Expenses = expenses

	salary, err := sumAmounts(s.db, `SELECT amount FROM salary WHERE date BETWEEN $1 AND $2`, startDate, endDate)
	if err != nil {
		slog.Error("PostgresStore GetWeeklyStats salary failed", "error", err)
		return stats, fmt.Errorf("failed to sum salary: %w", err)
	}
	stats.Salary = salary

	var avgMood sql.NullFloat64
	if err := s.db.QueryRow(`SELECT AVG(value) FROM mood WHERE date BETWEEN $1 AND $2`, startDate, endDate).Scan(&avgMood); err != nil {
		slog.Error("PostgresStore GetWeeklyStats mood failed", "error", err)
		return stats, fmt.Errorf("failed to average mood: %w", err)
	}
	if avgMood.Valid {
		stats.AvgMood = &avgMood.Float64
	}

	if err := s.db.QueryRow(`SELECT COALESCE(SUM(value), 0) FROM mileage WHERE date BETWEEN $1 AND $2`, startDate, endDate).Scan(&stats.Mileage); err != nil {
		slog.Error("PostgresStore GetWeeklyStats mileage failed", "error", err)
		return stats, fmt.Errorf("failed to sum mileage: %w", err)
	}

	slog.Debug("PostgresStore GetWeeklyStats succeeded", "start", startDate, "end", endDate)
	return stats, nil
}

func (s *PostgresStore) GetLastRecords() (models.LastRecords, error) {
	var last models.LastRecords

	mood, err := scanLastMood(s.db.QueryRow(`SELECT date, value FROM mood ORDER BY date DESC LIMIT 1`))
	if err != nil {
		slog.Error("PostgresStore GetLastRecords mood failed", "error", err)
		return last, fmt.Errorf("failed to query last mood: %w", err)
	}
	last.Mood = mood

	mileage, err := scanLastMileage(s.db.QueryRow(`SELECT date, value FROM mileage ORDER BY date DESC LIMIT 1`))
	if err != nil {
		slog.Error("PostgresStore GetLastRecords mileage failed", "error", err)
		return last, fmt.Errorf("failed to query last mileage: %w", err)
	}
	last.Mileage = mileage

	rows, err := s.db.Query(`SELECT date, category, amount FROM expenses ORDER BY date DESC, id DESC LIMIT 3`)
	if err != nil {
		slog.Error("PostgresStore GetLastRecords expenses failed", "error", err)
		return last, fmt.Errorf("failed to query last expenses: %w", err)
	}
	defer rows.Close()
	last.Expenses, err = scanExpenses(rows)
	if err != nil {
		slog.Error("PostgresStore GetLastRecords expense scan failed", "error", err)
		return last, err
	}

	slog.Debug("PostgresStore GetLastRecords succeeded", "expense_count", len(last.Expenses))
	return last, nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
