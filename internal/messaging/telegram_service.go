package messaging

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pobut/PobutBot/internal/models"
)

// updateTimeoutSeconds is the long-polling timeout passed to Telegram.
const updateTimeoutSeconds = 30

// Opts holds Telegram service configuration options.
type Opts struct {
	Token          string
	AdminChatID    int64
	RequestTimeout time.Duration
}

// Option configures Telegram service creation.
type Option func(*Opts)

// WithToken sets the bot API token.
func WithToken(token string) Option {
	return func(o *Opts) { o.Token = token }
}

// WithAdminChatID sets the sole chat the bot talks to. Events from any other
// chat are dropped.
func WithAdminChatID(id int64) Option {
	return func(o *Opts) { o.AdminChatID = id }
}

// WithRequestTimeout bounds outbound Bot API calls.
func WithRequestTimeout(d time.Duration) Option {
	return func(o *Opts) { o.RequestTimeout = d }
}

// TelegramService implements Service using the Telegram Bot API with long
// polling. The service serves exactly one admin identity.
type TelegramService struct {
	bot         *tgbotapi.BotAPI
	adminChatID int64
	events      chan models.Event
	done        chan struct{}
}

// NewTelegramService creates a TelegramService and verifies the token
// against the Bot API.
func NewTelegramService(opts ...Option) (*TelegramService, error) {
	cfg := Opts{RequestTimeout: DefaultRequestTimeout}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Token == "" {
		slog.Error("TelegramService token not set")
		return nil, fmt.Errorf("bot token not set")
	}
	if cfg.AdminChatID == 0 {
		slog.Error("TelegramService admin chat ID not set")
		return nil, fmt.Errorf("admin chat ID not set")
	}

	client := &http.Client{Timeout: cfg.RequestTimeout}
	bot, err := tgbotapi.NewBotAPIWithClient(cfg.Token, tgbotapi.APIEndpoint, client)
	if err != nil {
		slog.Error("TelegramService failed to create bot client", "error", err)
		return nil, fmt.Errorf("failed to create bot client: %w", err)
	}
	slog.Info("TelegramService authorized", "username", bot.Self.UserName)

	return &TelegramService{
		bot:         bot,
		adminChatID: cfg.AdminChatID,
		events:      make(chan models.Event, DefaultChannelBufferSize),
		done:        make(chan struct{}),
	}, nil
}

// Start begins long polling for updates.
func (s *TelegramService) Start(ctx context.Context) error {
	slog.Debug("TelegramService Start invoked")
	go s.poll(ctx)
	return nil
}

// Stop stops polling and closes the event channel.
func (s *TelegramService) Stop() error {
	slog.Info("TelegramService Stop invoked")
	close(s.done)
	s.bot.StopReceivingUpdates()
	close(s.events)
	return nil
}

// SendMessage sends a plain text message to the admin chat.
func (s *TelegramService) SendMessage(ctx context.Context, text string) error {
	return s.SendMessageWithKeyboard(ctx, text, models.KeyboardNone)
}

// SendMessageWithKeyboard sends a message with a fixed keyboard layout.
func (s *TelegramService) SendMessageWithKeyboard(ctx context.Context, text string, keyboard models.Keyboard) error {
	slog.Debug("TelegramService SendMessage invoked", "body_length", len(text), "keyboard", keyboard)
	msg := tgbotapi.NewMessage(s.adminChatID, text)
	if markup := keyboardMarkup(keyboard); markup != nil {
		msg.ReplyMarkup = markup
	}
	if _, err := s.bot.Send(msg); err != nil {
		slog.Error("TelegramService SendMessage error", "error", err)
		return fmt.Errorf("failed to send telegram message: %w", err)
	}
	slog.Info("TelegramService message sent", "keyboard", keyboard)
	return nil
}

// Events returns the channel of inbound user events.
func (s *TelegramService) Events() <-chan models.Event {
	return s.events
}

// poll consumes Telegram updates until the context is cancelled or the
// service is stopped.
func (s *TelegramService) poll(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = updateTimeoutSeconds
	updates := s.bot.GetUpdatesChan(u)
	slog.Debug("TelegramService polling started")

	for {
		select {
		case <-ctx.Done():
			slog.Debug("TelegramService polling stopping due to context cancellation")
			return
		case <-s.done:
			slog.Debug("TelegramService polling stopping")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			s.handleUpdate(update)
		}
	}
}

// handleUpdate converts a Telegram update into an engine event. Updates from
// chats other than the admin chat are dropped.
func (s *TelegramService) handleUpdate(update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		cq := update.CallbackQuery
		if cq.Message == nil || cq.Message.Chat.ID != s.adminChatID {
			slog.Debug("TelegramService dropping callback from non-admin chat")
			return
		}
		// Acknowledge the button press so the client stops the spinner.
		if _, err := s.bot.Request(tgbotapi.NewCallback(cq.ID, "")); err != nil {
			slog.Error("TelegramService callback answer failed", "error", err)
		}
		s.emit(models.UserAction{ActionID: cq.Data})
	case update.Message != nil:
		msg := update.Message
		if msg.Chat.ID != s.adminChatID {
			slog.Debug("TelegramService dropping message from non-admin chat", "chat_id", msg.Chat.ID)
			return
		}
		s.emit(models.UserText{Text: msg.Text})
	default:
		slog.Debug("TelegramService ignoring update type")
	}
}

// emit delivers an event without blocking the poller; overflow is dropped
// and logged.
func (s *TelegramService) emit(ev models.Event) {
	select {
	case s.events <- ev:
		slog.Debug("TelegramService event emitted", "event", fmt.Sprintf("%T", ev))
	default:
		slog.Warn("TelegramService event channel full, dropping event", "event", fmt.Sprintf("%T", ev))
	}
}

// keyboardMarkup maps a keyboard identifier to its Telegram markup. Returns
// nil for KeyboardNone.
func keyboardMarkup(keyboard models.Keyboard) interface{} {
	switch keyboard {
	case models.KeyboardMainMenu:
		return tgbotapi.NewReplyKeyboard(
			tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(models.MenuAddExpense)),
			tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(models.MenuWeeklyStats)),
			tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(models.MenuLastData)),
		)
	case models.KeyboardExpenseCategories:
		var rows [][]tgbotapi.KeyboardButton
		for _, row := range models.ExpenseCategories {
			var buttons []tgbotapi.KeyboardButton
			for _, label := range row {
				buttons = append(buttons, tgbotapi.NewKeyboardButton(label))
			}
			rows = append(rows, buttons)
		}
		markup := tgbotapi.NewReplyKeyboard(rows...)
		markup.OneTimeKeyboard = true
		return markup
	case models.KeyboardMood:
		return tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("Норм 😊", models.ActionMoodGood)),
			tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("Не дуже 😞", models.ActionMoodBad)),
		)
	case models.KeyboardSalary:
		return tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("💰 Ввести зарплату", models.ActionAddSalary)),
		)
	case models.KeyboardRemove:
		return tgbotapi.NewRemoveKeyboard(false)
	default:
		return nil
	}
}
