package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pobut/PobutBot/internal/models"
	"github.com/pobut/PobutBot/internal/report"
	"github.com/pobut/PobutBot/internal/store"
)

// Cron expressions for the registered triggers (5-field, deployment timezone).
const (
	cronMorning      = "30 5 * * *"
	cronWedReminder  = "30 5 * * 3"
	cronFriSalary    = "30 5 * * 5"
	cronEveningCast  = "0 20 * * *"
	cronWeeklyReport = "0 20 * * 0"
	cronHourlyRates  = "0 * * * *"
)

// jobTimeout bounds every scheduler-initiated operation so a stuck provider
// or transport call cannot pile up cron goroutines.
const jobTimeout = 30 * time.Second

const msgSalaryTomorrow = "Завтра зарплата! Плани на фінанси? 💸"

// Dispatcher accepts engine events. Satisfied by *flow.Engine.
type Dispatcher interface {
	Dispatch(ctx context.Context, ev models.Event) error
}

// Broadcaster sends stateless outbound messages with no follow-up expected.
type Broadcaster interface {
	SendMessage(ctx context.Context, text string) error
	SendMessageWithKeyboard(ctx context.Context, text string, keyboard models.Keyboard) error
}

// WeatherProvider supplies ready-to-send weather texts.
type WeatherProvider interface {
	Current(ctx context.Context) string
	Forecast(ctx context.Context) string
}

// RatesProvider supplies the ready-to-send exchange-rates text.
type RatesProvider interface {
	Rates(ctx context.Context) string
}

// BridgeOpts holds bridge configuration.
type BridgeOpts struct {
	RatesBroadcast bool
	Location       *time.Location
	Now            func() time.Time
}

// BridgeOption configures bridge creation.
type BridgeOption func(*BridgeOpts)

// WithRatesBroadcast enables the hourly exchange-rates broadcast.
func WithRatesBroadcast(enabled bool) BridgeOption {
	return func(o *BridgeOpts) { o.RatesBroadcast = enabled }
}

// WithBridgeLocation sets the timezone used for report date windows.
func WithBridgeLocation(loc *time.Location) BridgeOption {
	return func(o *BridgeOpts) { o.Location = loc }
}

// WithBridgeClock overrides the time source (tests).
func WithBridgeClock(now func() time.Time) BridgeOption {
	return func(o *BridgeOpts) { o.Now = now }
}

// Bridge translates calendar-time firings into SchedulerStart events for the
// conversation engine and into direct stateless broadcasts. It emits events
// onto the same dispatch entry point the transport uses, so time-based
// triggering stays decoupled from the transport lifecycle.
type Bridge struct {
	sched      *Scheduler
	dispatcher Dispatcher
	broadcast  Broadcaster
	store      store.Store
	weather    WeatherProvider
	rates      RatesProvider
	opts       BridgeOpts
}

// NewBridge creates a scheduler-to-engine bridge.
func NewBridge(sched *Scheduler, dispatcher Dispatcher, broadcast Broadcaster, st store.Store, weather WeatherProvider, rates RatesProvider, opts ...BridgeOption) *Bridge {
	cfg := BridgeOpts{
		Location: time.Local,
		Now:      time.Now,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Bridge{
		sched:      sched,
		dispatcher: dispatcher,
		broadcast:  broadcast,
		store:      st,
		weather:    weather,
		rates:      rates,
		opts:       cfg,
	}
}

// RegisterTriggers registers all recurring triggers. Each fires at most once
// per occurrence; occurrences missed while the process is down are skipped.
func (b *Bridge) RegisterTriggers() error {
	jobs := []struct {
		name string
		expr string
		task func()
	}{
		{"morning_checkin", cronMorning, b.morningCheckin},
		{"wed_salary_reminder", cronWedReminder, b.salaryReminder},
		{"fri_salary_entry", cronFriSalary, b.salaryEntry},
		{"evening_forecast", cronEveningCast, b.eveningForecast},
		{"weekly_report", cronWeeklyReport, b.weeklyReport},
	}
	if b.opts.RatesBroadcast {
		jobs = append(jobs, struct {
			name string
			expr string
			task func()
		}{"hourly_rates", cronHourlyRates, b.hourlyRates})
	}

	for _, job := range jobs {
		if err := b.sched.AddJob(job.expr, job.task); err != nil {
			slog.Error("Bridge failed to register trigger", "error", err, "job", job.name, "expr", job.expr)
			return fmt.Errorf("failed to register trigger %s: %w", job.name, err)
		}
		slog.Info("Bridge trigger registered", "job", job.name, "expr", job.expr)
	}
	return nil
}

// morningCheckin starts the daily check-in flow and, independently,
// broadcasts the current weather.
func (b *Bridge) morningCheckin() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if err := b.dispatcher.Dispatch(ctx, models.SchedulerStart{Flow: models.FlowDailyCheckin}); err != nil {
		slog.Error("Bridge morning check-in dispatch failed", "error", err)
	}
	if err := b.broadcast.SendMessage(ctx, b.weather.Current(ctx)); err != nil {
		slog.Error("Bridge weather broadcast failed", "error", err)
	}
}

// salaryReminder is the Wednesday heads-up; no flow is started, but the
// inline button lets the user open the salary entry early.
func (b *Bridge) salaryReminder() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if err := b.broadcast.SendMessageWithKeyboard(ctx, msgSalaryTomorrow, models.KeyboardSalary); err != nil {
		slog.Error("Bridge salary reminder failed", "error", err)
	}
}

// salaryEntry starts the Friday salary-entry flow, overriding any flow in
// progress.
func (b *Bridge) salaryEntry() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if err := b.dispatcher.Dispatch(ctx, models.SchedulerStart{Flow: models.FlowSalaryEntry}); err != nil {
		slog.Error("Bridge salary entry dispatch failed", "error", err)
	}
}

func (b *Bridge) eveningForecast() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if err := b.broadcast.SendMessage(ctx, b.weather.Forecast(ctx)); err != nil {
		slog.Error("Bridge forecast broadcast failed", "error", err)
	}
}

// weeklyReport aggregates the trailing 7-day window [today-6, today].
func (b *Bridge) weeklyReport() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	end := b.opts.Now().In(b.opts.Location)
	start := end.AddDate(0, 0, -6)
	stats, err := b.store.GetWeeklyStats(start.Format(models.DateFormat), end.Format(models.DateFormat))
	if err != nil {
		slog.Error("Bridge weekly report aggregation failed", "error", err)
		return
	}
	if err := b.broadcast.SendMessage(ctx, report.Weekly(stats)); err != nil {
		slog.Error("Bridge weekly report broadcast failed", "error", err)
	}
}

func (b *Bridge) hourlyRates() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if err := b.broadcast.SendMessage(ctx, b.rates.Rates(ctx)); err != nil {
		slog.Error("Bridge rates broadcast failed", "error", err)
	}
}
