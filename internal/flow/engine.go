package flow

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/pobut/PobutBot/internal/models"
	"github.com/pobut/PobutBot/internal/report"
	"github.com/pobut/PobutBot/internal/store"
)

// Sender is the narrow outbound-message contract the engine needs from the
// transport adapter.
type Sender interface {
	SendMessage(ctx context.Context, text string) error
	SendMessageWithKeyboard(ctx context.Context, text string, keyboard models.Keyboard) error
}

// DefaultIdleTimeout clears a flow abandoned mid-entry after this long.
const DefaultIdleTimeout = 6 * time.Hour

// AdvisoryMileageKm is the daily mileage above which the maintenance
// reminder is appended.
const AdvisoryMileageKm = 200.0

// EngineOpts holds engine configuration.
type EngineOpts struct {
	IdleTimeout time.Duration
	Location    *time.Location
	Now         func() time.Time
}

// EngineOption configures engine creation.
type EngineOption func(*EngineOpts)

// WithIdleTimeout sets how long an untouched flow survives before being
// treated as abandoned. Zero disables the timeout.
func WithIdleTimeout(d time.Duration) EngineOption {
	return func(o *EngineOpts) { o.IdleTimeout = d }
}

// WithLocation sets the timezone used to derive record dates.
func WithLocation(loc *time.Location) EngineOption {
	return func(o *EngineOpts) { o.Location = loc }
}

// WithClock overrides the time source (tests).
func WithClock(now func() time.Time) EngineOption {
	return func(o *EngineOpts) { o.Now = now }
}

// Engine is the single authority interpreting inbound events against the
// current ConversationState. It is the only writer of the state store and
// the only issuer of flow-relevant persistence calls.
type Engine struct {
	mu          sync.Mutex
	states      *StateStore
	store       store.Store
	sender      Sender
	idleTimeout time.Duration
	loc         *time.Location
	now         func() time.Time
}

// NewEngine creates a conversation engine.
func NewEngine(states *StateStore, st store.Store, sender Sender, opts ...EngineOption) *Engine {
	cfg := EngineOpts{
		IdleTimeout: DefaultIdleTimeout,
		Location:    time.Local,
		Now:         time.Now,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	slog.Debug("Creating Engine", "idle_timeout", cfg.IdleTimeout, "location", cfg.Location.String())
	return &Engine{
		states:      states,
		store:       st,
		sender:      sender,
		idleTimeout: cfg.IdleTimeout,
		loc:         cfg.Location,
		now:         cfg.Now,
	}
}

// Dispatch interprets one inbound event. The whole read-transition-write
// sequence runs under the engine mutex so a user event and a scheduler event
// can never interleave on the shared state.
//
// Invalid user input is recoverable and handled internally (corrective
// prompt, state unchanged). A persistence failure is returned as
// *models.StorageError with state unchanged so the event can be retried.
func (e *Engine) Dispatch(ctx context.Context, ev models.Event) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	state := e.states.Get()
	if !state.Empty() && e.idleTimeout > 0 && e.now().Sub(state.UpdatedAt) > e.idleTimeout {
		slog.Info("Engine clearing idle flow", "flow", state.Flow, "step", state.Step, "updated_at", state.UpdatedAt)
		e.states.Clear()
		state = e.states.Get()
	}

	switch v := ev.(type) {
	case models.SchedulerStart:
		return e.startFlow(ctx, state, v.Flow, "scheduler")
	case models.UserAction:
		return e.handleAction(ctx, state, v)
	case models.UserText:
		return e.handleText(ctx, state, v)
	default:
		slog.Error("Engine received unknown event type", "event", fmt.Sprintf("%T", ev))
		return fmt.Errorf("unknown event type %T", ev)
	}
}

// startFlow overwrites the current state with the initial step of the given
// flow and sends its opening prompt. A live flow is silently abandoned; the
// override is logged, not treated as an error.
func (e *Engine) startFlow(ctx context.Context, state models.ConversationState, flowType models.FlowType, origin string) error {
	step := models.InitialStep(flowType)
	if step == models.StepNone {
		slog.Error("Engine cannot start flow", "flow", flowType, "origin", origin)
		return fmt.Errorf("cannot start flow %q", flowType)
	}

	if !state.Empty() {
		slog.Info("Engine overriding in-progress flow",
			"old_flow", state.Flow, "old_step", state.Step, "new_flow", flowType, "origin", origin)
	}

	e.states.Set(models.ConversationState{
		Flow:      flowType,
		Step:      step,
		Scratch:   make(map[models.DataKey]string),
		UpdatedAt: e.now(),
	})

	switch flowType {
	case models.FlowDailyCheckin:
		return e.send(ctx, msgMoodPrompt, models.KeyboardMood)
	case models.FlowExpenseEntry:
		return e.send(ctx, msgCategoryPrompt, models.KeyboardExpenseCategories)
	case models.FlowSalaryEntry:
		return e.send(ctx, msgSalaryPrompt, models.KeyboardNone)
	}
	return nil
}

// handleAction processes inline button presses.
func (e *Engine) handleAction(ctx context.Context, state models.ConversationState, action models.UserAction) error {
	switch action.ActionID {
	case models.ActionAddSalary:
		// Recognized independent of state.
		return e.startFlow(ctx, state, models.FlowSalaryEntry, "user")
	case models.ActionMoodGood, models.ActionMoodBad:
		if state.Flow != models.FlowDailyCheckin || state.Step != models.StepDailyMood {
			slog.Debug("Engine mood action outside daily check-in", "flow", state.Flow, "step", state.Step)
			return e.send(ctx, msgNotExpected, models.KeyboardMainMenu)
		}
		value := 0
		if action.ActionID == models.ActionMoodGood {
			value = 1
		}
		if err := e.store.AddMood(e.today(), value); err != nil {
			return &models.StorageError{Op: "add_mood", Err: err}
		}
		state.Step = models.StepDailyMileage
		state.UpdatedAt = e.now()
		e.states.Set(state)
		if err := e.send(ctx, msgMoodSaved, models.KeyboardNone); err != nil {
			return err
		}
		return e.send(ctx, msgMileagePrompt, models.KeyboardNone)
	default:
		slog.Debug("Engine unrecognized action", "action", action.ActionID)
		return e.send(ctx, msgNotExpected, models.KeyboardMainMenu)
	}
}

// handleText processes free-form replies: menu intents first, then strict
// (flow, step) dispatch.
func (e *Engine) handleText(ctx context.Context, state models.ConversationState, text models.UserText) error {
	switch text.Text {
	case "/start":
		return e.send(ctx, msgGreeting, models.KeyboardMainMenu)
	case models.MenuAddExpense:
		return e.startFlow(ctx, state, models.FlowExpenseEntry, "user")
	case models.MenuWeeklyStats:
		return e.sendWeeklyStats(ctx)
	case models.MenuLastData:
		return e.sendLastRecords(ctx)
	}

	switch {
	case state.Flow == models.FlowExpenseEntry && state.Step == models.StepExpenseCategory:
		return e.expenseCategory(ctx, state, text.Text)
	case state.Flow == models.FlowExpenseEntry && state.Step == models.StepExpenseAmount:
		return e.expenseAmount(ctx, state, text.Text)
	case state.Flow == models.FlowSalaryEntry && state.Step == models.StepSalaryAmount:
		return e.salaryAmount(ctx, text.Text)
	case state.Flow == models.FlowDailyCheckin && state.Step == models.StepDailyMood:
		// Mood is answered with a button, not text.
		return e.send(ctx, msgMoodUseButton, models.KeyboardMood)
	case state.Flow == models.FlowDailyCheckin && state.Step == models.StepDailyMileage:
		return e.dailyMileage(ctx, text.Text)
	default:
		slog.Debug("Engine text outside any flow", "text_length", len(text.Text))
		return e.send(ctx, msgNotExpected, models.KeyboardMainMenu)
	}
}

func (e *Engine) expenseCategory(ctx context.Context, state models.ConversationState, category string) error {
	if state.Scratch == nil {
		state.Scratch = make(map[models.DataKey]string)
	}
	state.Scratch[models.DataKeyCategory] = category
	state.Step = models.StepExpenseAmount
	state.UpdatedAt = e.now()
	e.states.Set(state)
	slog.Debug("Engine expense category stored", "category", category)
	return e.send(ctx, msgAmountPrompt, models.KeyboardRemove)
}

func (e *Engine) expenseAmount(ctx context.Context, state models.ConversationState, text string) error {
	amount, err := ParseAmount(text)
	if err != nil || !amount.IsPositive() {
		slog.Debug("Engine invalid expense amount", "error", err)
		return e.send(ctx, msgInvalidAmount, models.KeyboardNone)
	}
	category := state.Scratch[models.DataKeyCategory]
	if err := e.store.AddExpense(e.today(), category, amount); err != nil {
		return &models.StorageError{Op: "add_expense", Err: err}
	}
	e.states.Clear()
	slog.Info("Engine expense recorded", "category", category, "amount", amount.String())
	return e.send(ctx, fmt.Sprintf("✅ Записано: %s - %s€", category, amount.String()), models.KeyboardMainMenu)
}

func (e *Engine) salaryAmount(ctx context.Context, text string) error {
	amount, err := ParseAmount(text)
	if err != nil || amount.IsNegative() {
		slog.Debug("Engine invalid salary amount", "error", err)
		return e.send(ctx, msgSalaryInvalidAmount, models.KeyboardNone)
	}
	if err := e.store.AddSalary(e.today(), amount); err != nil {
		return &models.StorageError{Op: "add_salary", Err: err}
	}
	e.states.Clear()
	slog.Info("Engine salary recorded", "amount", amount.String())
	return e.send(ctx, fmt.Sprintf("Зарплату %s€ записано. 💰", amount.String()), models.KeyboardMainMenu)
}

func (e *Engine) dailyMileage(ctx context.Context, text string) error {
	value, err := ParseFloat(text)
	if err != nil {
		slog.Debug("Engine invalid mileage", "error", err)
		return e.send(ctx, msgEnterNumber, models.KeyboardNone)
	}
	if value < 0 {
		return e.send(ctx, msgMileageNegative, models.KeyboardNone)
	}
	if value == 0 {
		// Zero means "skip": nothing is recorded, the flow ends.
		e.states.Clear()
		return e.send(ctx, msgMileageSkipped, models.KeyboardMainMenu)
	}
	if err := e.store.AddMileage(e.today(), value); err != nil {
		return &models.StorageError{Op: "add_mileage", Err: err}
	}
	e.states.Clear()
	msg := fmt.Sprintf("Пробіг %s км записано.", strconv.FormatFloat(value, 'f', -1, 64))
	if value > AdvisoryMileageKm {
		msg += msgOilAdvisory
	}
	slog.Info("Engine mileage recorded", "value", value)
	return e.send(ctx, msg, models.KeyboardMainMenu)
}

// sendWeeklyStats renders the trailing-week report on demand.
func (e *Engine) sendWeeklyStats(ctx context.Context) error {
	end := e.now().In(e.loc)
	start := end.AddDate(0, 0, -6)
	stats, err := e.store.GetWeeklyStats(start.Format(models.DateFormat), end.Format(models.DateFormat))
	if err != nil {
		return &models.StorageError{Op: "get_weekly_stats", Err: err}
	}
	return e.send(ctx, report.Weekly(stats), models.KeyboardMainMenu)
}

// sendLastRecords renders the quick overview of latest entries.
func (e *Engine) sendLastRecords(ctx context.Context) error {
	last, err := e.store.GetLastRecords()
	if err != nil {
		return &models.StorageError{Op: "get_last_records", Err: err}
	}
	return e.send(ctx, report.Last(last), models.KeyboardMainMenu)
}

func (e *Engine) today() string {
	return e.now().In(e.loc).Format(models.DateFormat)
}

func (e *Engine) send(ctx context.Context, text string, keyboard models.Keyboard) error {
	var err error
	if keyboard == models.KeyboardNone {
		err = e.sender.SendMessage(ctx, text)
	} else {
		err = e.sender.SendMessageWithKeyboard(ctx, text, keyboard)
	}
	if err != nil {
		slog.Error("Engine send failed", "error", err, "keyboard", keyboard)
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}
