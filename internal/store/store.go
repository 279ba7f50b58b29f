// Package store provides storage backends for PobutBot.
//
// It implements the persistence facade for the four tracked record kinds
// (mood, mileage, expense, salary) and the two read aggregations (weekly
// stats, last records). Backends: SQLite, PostgreSQL, and an in-memory store
// used for tests and DSN-less runs.
package store

import (
	"sort"
	"strings"
	"sync"

	"github.com/pobut/PobutBot/internal/models"
	"github.com/shopspring/decimal"
)

// Store is the persistence facade consumed by the conversation engine and
// the scheduler bridge.
type Store interface {
	// AddMood records the mood for a date, replacing any prior same-day value.
	AddMood(date string, value int) error

	// AddMileage records the mileage for a date, replacing any prior same-day value.
	AddMileage(date string, value float64) error

	// AddExpense appends an expense. Multiple records per day are allowed.
	AddExpense(date, category string, amount decimal.Decimal) error

	// AddSalary appends a salary payment.
	AddSalary(date string, amount decimal.Decimal) error

	// GetWeeklyStats aggregates records with startDate <= date <= endDate.
	GetWeeklyStats(startDate, endDate string) (models.WeeklyStats, error)

	// GetLastRecords returns the latest mood and mileage rows and the last
	// three expenses.
	GetLastRecords() (models.LastRecords, error)

	// Close releases the underlying resources.
	Close() error
}

// Opts holds configuration options for store implementations.
type Opts struct {
	// DSN is the database connection string (file path for SQLite).
	DSN string
}

// Option configures store creation.
type Option func(*Opts)

// WithSQLiteDSN sets the SQLite database file path.
func WithSQLiteDSN(dsn string) Option {
	return func(o *Opts) { o.DSN = dsn }
}

// WithPostgresDSN sets the PostgreSQL connection string.
func WithPostgresDSN(dsn string) Option {
	return func(o *Opts) { o.DSN = dsn }
}

// DetectDSNType classifies a DSN as "postgres" or "sqlite". Postgres DSNs
// use URL or key=value form; everything else is treated as a SQLite path.
func DetectDSNType(dsn string) string {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") || strings.Contains(dsn, "host=") {
		return "postgres"
	}
	return "sqlite"
}

// InMemoryStore is a simple in-memory store used in tests and when no
// database DSN is configured.
type InMemoryStore struct {
	mu       sync.Mutex
	mood     map[string]int
	mileage  map[string]float64
	expenses []models.ExpenseRecord
	salaries []models.SalaryRecord
}

// NewInMemoryStore creates an empty in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		mood:    make(map[string]int),
		mileage: make(map[string]float64),
	}
}

func (s *InMemoryStore) AddMood(date string, value int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mood[date] = value
	return nil
}

func (s *InMemoryStore) AddMileage(date string, value float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mileage[date] = value
	return nil
}

func (s *InMemoryStore) AddExpense(date, category string, amount decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expenses = append(s.expenses, models.ExpenseRecord{Date: date, Category: category, Amount: amount})
	return nil
}

func (s *InMemoryStore) AddSalary(date string, amount decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.salaries = append(s.salaries, models.SalaryRecord{Date: date, Amount: amount})
	return nil
}

func (s *InMemoryStore) GetWeeklyStats(startDate, endDate string) (models.WeeklyStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	inRange := func(date string) bool {
		return date >= startDate && date <= endDate
	}

	stats := models.WeeklyStats{Expenses: decimal.Zero, Salary: decimal.Zero}
	for _, e := range s.expenses {
		if inRange(e.Date) {
			stats.Expenses = stats.Expenses.Add(e.Amount)
		}
	}
	for _, sal := range s.salaries {
		if inRange(sal.Date) {
			stats.Salary = stats.Salary.Add(sal.Amount)
		}
	}
	var moodSum, moodCount float64
	for date, v := range s.mood {
		if inRange(date) {
			moodSum += float64(v)
			moodCount++
		}
	}
	if moodCount > 0 {
		avg := moodSum / moodCount
		stats.AvgMood = &avg
	}
	for date, v := range s.mileage {
		if inRange(date) {
			stats.Mileage += v
		}
	}
	return stats, nil
}

func (s *InMemoryStore) GetLastRecords() (models.LastRecords, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var last models.LastRecords
	for date, v := range s.mood {
		if last.Mood == nil || date > last.Mood.Date {
			last.Mood = &models.MoodRecord{Date: date, Value: v}
		}
	}
	for date, v := range s.mileage {
		if last.Mileage == nil || date > last.Mileage.Date {
			last.Mileage = &models.MileageRecord{Date: date, Value: v}
		}
	}
	expenses := make([]models.ExpenseRecord, len(s.expenses))
	copy(expenses, s.expenses)
	sort.SliceStable(expenses, func(i, j int) bool { return expenses[i].Date > expenses[j].Date })
	if len(expenses) > 3 {
		expenses = expenses[:3]
	}
	last.Expenses = expenses
	return last, nil
}

func (s *InMemoryStore) Close() error {
	return nil
}
