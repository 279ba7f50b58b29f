package messaging

import (
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pobut/PobutBot/internal/models"
)

func TestNewTelegramServiceRequiresToken(t *testing.T) {
	if _, err := NewTelegramService(WithAdminChatID(42)); err == nil {
		t.Error("expected error for missing token")
	}
}

func TestNewTelegramServiceRequiresAdminChatID(t *testing.T) {
	if _, err := NewTelegramService(WithToken("123:abc")); err == nil {
		t.Error("expected error for missing admin chat ID")
	}
}

func TestKeyboardMarkupNone(t *testing.T) {
	if markup := keyboardMarkup(models.KeyboardNone); markup != nil {
		t.Errorf("expected nil markup, got %T", markup)
	}
}

func TestKeyboardMarkupMainMenu(t *testing.T) {
	markup, ok := keyboardMarkup(models.KeyboardMainMenu).(tgbotapi.ReplyKeyboardMarkup)
	if !ok {
		t.Fatalf("expected reply keyboard, got %T", keyboardMarkup(models.KeyboardMainMenu))
	}
	if len(markup.Keyboard) != 3 {
		t.Fatalf("expected 3 menu rows, got %d", len(markup.Keyboard))
	}
	if markup.Keyboard[0][0].Text != models.MenuAddExpense {
		t.Errorf("unexpected first menu button: %q", markup.Keyboard[0][0].Text)
	}
}

func TestKeyboardMarkupExpenseCategories(t *testing.T) {
	markup, ok := keyboardMarkup(models.KeyboardExpenseCategories).(tgbotapi.ReplyKeyboardMarkup)
	if !ok {
		t.Fatalf("expected reply keyboard, got %T", keyboardMarkup(models.KeyboardExpenseCategories))
	}
	if !markup.OneTimeKeyboard {
		t.Error("category keyboard should be one-time")
	}
	if len(markup.Keyboard) != len(models.ExpenseCategories) {
		t.Fatalf("expected %d rows, got %d", len(models.ExpenseCategories), len(markup.Keyboard))
	}
	for i, row := range models.ExpenseCategories {
		for j, label := range row {
			if markup.Keyboard[i][j].Text != label {
				t.Errorf("row %d button %d: got %q, want %q", i, j, markup.Keyboard[i][j].Text, label)
			}
		}
	}
}

func TestKeyboardMarkupMood(t *testing.T) {
	markup, ok := keyboardMarkup(models.KeyboardMood).(tgbotapi.InlineKeyboardMarkup)
	if !ok {
		t.Fatalf("expected inline keyboard, got %T", keyboardMarkup(models.KeyboardMood))
	}
	if len(markup.InlineKeyboard) != 2 {
		t.Fatalf("expected 2 mood rows, got %d", len(markup.InlineKeyboard))
	}
	good := markup.InlineKeyboard[0][0]
	bad := markup.InlineKeyboard[1][0]
	if good.CallbackData == nil || *good.CallbackData != models.ActionMoodGood {
		t.Errorf("unexpected good-mood callback: %v", good.CallbackData)
	}
	if bad.CallbackData == nil || *bad.CallbackData != models.ActionMoodBad {
		t.Errorf("unexpected bad-mood callback: %v", bad.CallbackData)
	}
}

func TestKeyboardMarkupSalary(t *testing.T) {
	markup, ok := keyboardMarkup(models.KeyboardSalary).(tgbotapi.InlineKeyboardMarkup)
	if !ok {
		t.Fatalf("expected inline keyboard, got %T", keyboardMarkup(models.KeyboardSalary))
	}
	button := markup.InlineKeyboard[0][0]
	if button.CallbackData == nil || *button.CallbackData != models.ActionAddSalary {
		t.Errorf("unexpected salary callback: %v", button.CallbackData)
	}
}

func TestKeyboardMarkupRemove(t *testing.T) {
	markup, ok := keyboardMarkup(models.KeyboardRemove).(tgbotapi.ReplyKeyboardRemove)
	if !ok {
		t.Fatalf("expected remove keyboard, got %T", keyboardMarkup(models.KeyboardRemove))
	}
	if !markup.RemoveKeyboard {
		t.Error("RemoveKeyboard flag not set")
	}
}
