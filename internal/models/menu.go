// Package models defines the fixed menu vocabulary of the bot.
package models

// Reply-menu button texts. These arrive back as plain message text, so the
// engine matches them as state-independent intents.
const (
	MenuAddExpense  = "Додати витрату 🛒"
	MenuWeeklyStats = "Показати статистику за тиждень"
	MenuLastData    = "Останні дані"
)

// ExpenseCategories is the one-time category keyboard layout, row by row.
var ExpenseCategories = [][]string{
	{"Їжа", "Паливо"},
	{"Розваги", "Інше"},
}
