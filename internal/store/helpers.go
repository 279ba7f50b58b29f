package store

import (
	"database/sql"
	"fmt"

	"github.com/pobut/PobutBot/internal/models"
	"github.com/shopspring/decimal"
)

// sumAmounts sums a single decimal-string column selected by query. Amounts
// are stored as exact decimal strings and summed in Go so money arithmetic
// never goes through floating point.
func sumAmounts(db *sql.DB, query string, args ...interface{}) (decimal.Decimal, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return decimal.Zero, err
	}
	defer rows.Close()

	sum := decimal.Zero
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return decimal.Zero, fmt.Errorf("scan amount failed: %w", err)
		}
		amount, err := decimal.NewFromString(raw)
		if err != nil {
			return decimal.Zero, fmt.Errorf("stored amount %q is not a decimal: %w", raw, err)
		}
		sum = sum.Add(amount)
	}
	if err := rows.Err(); err != nil {
		return decimal.Zero, err
	}
	return sum, nil
}

// scanLastMood scans the latest mood row, returning nil when the table is empty.
func scanLastMood(row *sql.Row) (*models.MoodRecord, error) {
	var r models.MoodRecord
	err := row.Scan(&r.Date, &r.Value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// scanLastMileage scans the latest mileage row, returning nil when the table is empty.
func scanLastMileage(row *sql.Row) (*models.MileageRecord, error) {
	var r models.MileageRecord
	err := row.Scan(&r.Date, &r.Value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// scanExpenses scans expense rows with decimal-string amounts.
func scanExpenses(rows *sql.Rows) ([]models.ExpenseRecord, error) {
	var expenses []models.ExpenseRecord
	for rows.Next() {
		var e models.ExpenseRecord
		var raw string
		if err := rows.Scan(&e.Date, &e.Category, &raw); err != nil {
			return nil, fmt.Errorf("scan expense failed: %w", err)
		}
		amount, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("stored amount %q is not a decimal: %w", raw, err)
		}
		e.Amount = amount
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return expenses, nil
}
