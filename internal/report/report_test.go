package report

import (
	"strings"
	"testing"

	"github.com/pobut/PobutBot/internal/models"
	"github.com/shopspring/decimal"
)

func TestWeekly(t *testing.T) {
	avg := 0.75
	stats := models.WeeklyStats{
		Expenses: decimal.RequireFromString("120.50"),
		Salary:   decimal.RequireFromString("1000"),
		AvgMood:  &avg,
		Mileage:  230.5,
	}

	got := Weekly(stats)
	for _, want := range []string{
		"Тижневий звіт:",
		"Витрачено: 120.5 €",
		"Зарплата: 1000 €",
		"Залишок: 879.5 €",
		"Середній настрій: 75%",
		"Пробіг за тиждень: 230.5 км",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Weekly() missing %q in:\n%s", want, got)
		}
	}
}

func TestWeeklyNoMoodEntries(t *testing.T) {
	stats := models.WeeklyStats{
		Expenses: decimal.Zero,
		Salary:   decimal.Zero,
	}

	got := Weekly(stats)
	if !strings.Contains(got, "Середній настрій: 0%") {
		t.Errorf("expected 0%% mood for empty window, got:\n%s", got)
	}
	if !strings.Contains(got, "Залишок: 0 €") {
		t.Errorf("expected zero balance, got:\n%s", got)
	}
}

func TestWeeklyNegativeBalance(t *testing.T) {
	stats := models.WeeklyStats{
		Expenses: decimal.RequireFromString("150"),
		Salary:   decimal.RequireFromString("100"),
	}

	if got := Weekly(stats); !strings.Contains(got, "Залишок: -50 €") {
		t.Errorf("expected negative balance, got:\n%s", got)
	}
}

func TestLastEmpty(t *testing.T) {
	if got := Last(models.LastRecords{}); got != "Записів поки немає." {
		t.Errorf("unexpected empty-records message: %q", got)
	}
}

func TestLast(t *testing.T) {
	last := models.LastRecords{
		Mood:    &models.MoodRecord{Date: "2026-08-25", Value: 1},
		Mileage: &models.MileageRecord{Date: "2026-08-24", Value: 80},
		Expenses: []models.ExpenseRecord{
			{Date: "2026-08-25", Category: "Їжа", Amount: decimal.RequireFromString("12.5")},
			{Date: "2026-08-24", Category: "Паливо", Amount: decimal.RequireFromString("40")},
		},
	}

	got := Last(last)
	for _, want := range []string{
		"Останні записи:",
		"Настрій (2026-08-25): Норм 😊",
		"Пробіг (2026-08-24): 80 км",
		"2026-08-25: Їжа — 12.5€",
		"2026-08-24: Паливо — 40€",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Last() missing %q in:\n%s", want, got)
		}
	}
}

func TestLastBadMood(t *testing.T) {
	last := models.LastRecords{
		Mood: &models.MoodRecord{Date: "2026-08-25", Value: 0},
	}
	if got := Last(last); !strings.Contains(got, "Не дуже 😞") {
		t.Errorf("expected bad-mood label, got:\n%s", got)
	}
}

func TestLastMileageOnly(t *testing.T) {
	last := models.LastRecords{
		Mileage: &models.MileageRecord{Date: "2026-08-23", Value: 105.5},
	}
	got := Last(last)
	if strings.Contains(got, "Настрій") || strings.Contains(got, "Витрати") {
		t.Errorf("unexpected sections in:\n%s", got)
	}
	if !strings.Contains(got, "105.5 км") {
		t.Errorf("expected mileage line, got:\n%s", got)
	}
}
