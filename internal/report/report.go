// Package report renders stored aggregations into user-facing text.
//
// Pure formatting, no I/O: the engine and the scheduler bridge feed it data
// from the store.
package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pobut/PobutBot/internal/models"
)

// Weekly renders the weekly summary message. The balance is computed with
// exact decimal subtraction; the mood percentage falls back to 0 when the
// window holds no mood entries.
func Weekly(stats models.WeeklyStats) string {
	moodPercent := 0
	if stats.AvgMood != nil {
		moodPercent = int(*stats.AvgMood * 100)
	}
	balance := stats.Salary.Sub(stats.Expenses)
	return fmt.Sprintf(
		"Тижневий звіт:\n"+
			"— Витрачено: %s €\n"+
			"— Зарплата: %s €\n"+
			"— Залишок: %s €\n"+
			"— Середній настрій: %d%%\n"+
			"— Пробіг за тиждень: %s км",
		stats.Expenses.String(),
		stats.Salary.String(),
		balance.String(),
		moodPercent,
		formatKm(stats.Mileage),
	)
}

// Last renders the latest-entries overview.
func Last(last models.LastRecords) string {
	if last.Mood == nil && last.Mileage == nil && len(last.Expenses) == 0 {
		return "Записів поки немає."
	}

	var b strings.Builder
	b.WriteString("Останні записи:")
	if last.Mood != nil {
		mood := "Не дуже 😞"
		if last.Mood.Value == 1 {
			mood = "Норм 😊"
		}
		fmt.Fprintf(&b, "\n— Настрій (%s): %s", last.Mood.Date, mood)
	}
	if last.Mileage != nil {
		fmt.Fprintf(&b, "\n— Пробіг (%s): %s км", last.Mileage.Date, formatKm(last.Mileage.Value))
	}
	if len(last.Expenses) > 0 {
		b.WriteString("\n— Витрати:")
		for _, e := range last.Expenses {
			fmt.Fprintf(&b, "\n   %s: %s — %s€", e.Date, e.Category, e.Amount.String())
		}
	}
	return b.String()
}

func formatKm(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
