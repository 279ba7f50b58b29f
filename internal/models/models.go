// Package models defines the core data structures for PobutBot.
//
// It includes the tracked record types, read aggregations, keyboard
// identifiers, and error types shared across modules.
package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// DateFormat is the calendar-date layout used as the natural key of all
// tracked records (deployment-local timezone).
const DateFormat = "2006-01-02"

// MoodRecord is a daily mood entry. Value is 0 (bad) or 1 (good); at most
// one record per date, later writes replace earlier ones.
type MoodRecord struct {
	Date  string `json:"date"`
	Value int    `json:"value"`
}

// MileageRecord is a daily mileage entry in kilometers. Same-day writes
// replace earlier ones.
type MileageRecord struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// ExpenseRecord is a single expense. Append-only, multiple per day.
type ExpenseRecord struct {
	Date     string          `json:"date"`
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// SalaryRecord is a salary payment. Append-only.
type SalaryRecord struct {
	Date   string          `json:"date"`
	Amount decimal.Decimal `json:"amount"`
}

// WeeklyStats aggregates tracked records over a date window.
// AvgMood is nil when the window contains no mood rows.
type WeeklyStats struct {
	Expenses decimal.Decimal `json:"expenses"`
	Salary   decimal.Decimal `json:"salary"`
	AvgMood  *float64        `json:"avg_mood,omitempty"`
	Mileage  float64         `json:"mileage"`
}

// LastRecords holds the most recent entries for the quick overview.
type LastRecords struct {
	Mood     *MoodRecord     `json:"mood,omitempty"`
	Mileage  *MileageRecord  `json:"mileage,omitempty"`
	Expenses []ExpenseRecord `json:"expenses,omitempty"`
}

// Keyboard identifies one of the fixed keyboard layouts the transport can
// attach to an outbound message. The set is closed; the transport maps each
// identifier to its concrete markup.
type Keyboard string

const (
	// KeyboardNone attaches no markup.
	KeyboardNone Keyboard = ""
	// KeyboardMainMenu is the persistent reply menu.
	KeyboardMainMenu Keyboard = "main_menu"
	// KeyboardExpenseCategories is the one-time expense category menu.
	KeyboardExpenseCategories Keyboard = "expense_categories"
	// KeyboardMood is the inline good/bad mood choice.
	KeyboardMood Keyboard = "mood"
	// KeyboardSalary is the inline "enter salary" action button.
	KeyboardSalary Keyboard = "salary"
	// KeyboardRemove removes the current reply keyboard.
	KeyboardRemove Keyboard = "remove"
)

// Action IDs carried by UserAction events (inline button payloads).
const (
	ActionMoodGood  = "mood_1"
	ActionMoodBad   = "mood_0"
	ActionAddSalary = "add_salary"
)

// StorageError wraps a persistence failure. The engine returns it to the
// caller without clearing conversation state, so the event can be retried.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s failed: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
