// Package engine implements the reminder engine: a polling loop that
// evaluates due reminders, delivers at most one notification per
// occurrence, advances recurrence state, and sends the daily motivational
// message.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MatheusRocha-X/GymFlow-sub000/internal/models"
	"github.com/MatheusRocha-X/GymFlow-sub000/internal/recurrence"
)

// ErrNotConfigured is returned when Telegram delivery is disabled or
// missing a chat id or bot token. It is a precondition, not a failure.
var ErrNotConfigured = errors.New("engine: telegram is not configured")

// State of the engine lifecycle.
type State int32

const (
	StateStopped State = iota
	StateRunning
	StatePaused
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	default:
		return "stopped"
	}
}

const (
	checkInterval      = 30 * time.Second
	motivationInterval = time.Hour
	triggerWindow      = 60 * time.Second
	maxDeliveredKeys   = 100
)

// ReminderStore is the slice of the store the engine reads and advances.
// Updates against ids deleted mid-cycle must be silent no-ops.
type ReminderStore interface {
	ListEnabled(ctx context.Context) ([]*models.Reminder, error)
	SetNextTrigger(ctx context.Context, reminderID int, next time.Time) error
	SetEnabled(ctx context.Context, reminderID int, enabled bool) error
}

// SettingsStore provides the Telegram relay configuration.
type SettingsStore interface {
	GetOrCreate(ctx context.Context) (*models.TelegramSettings, error)
	SetLastMotivationalMessage(ctx context.Context, sentAt time.Time) error
}

// Sender is the notification transport. Sends have no timeout; a slow
// delivery blocks the remainder of the cycle (accepted trade-off).
type Sender interface {
	Send(chatID int64, text string, markdown bool) error
}

// SenderFactory builds a Sender for a bot token. The engine rebuilds its
// transport whenever the stored token changes.
type SenderFactory func(token string) (Sender, error)

// MessageSource produces the daily motivational message body.
type MessageSource interface {
	DailyMessage(ctx context.Context, now time.Time) string
}

// Engine owns the polling loop. Construct once at startup and share the
// handle; all methods are safe for concurrent use.
type Engine struct {
	reminders ReminderStore
	settings  SettingsStore
	newSender SenderFactory
	motivator MessageSource

	// fallbackToken is used when the stored settings carry no bot token.
	fallbackToken string

	mu     sync.Mutex
	state  atomic.Int32
	cancel context.CancelFunc
	done   chan struct{}

	notifyCh   chan struct{}
	isChecking atomic.Bool

	transportMu sync.Mutex
	sender      Sender
	senderToken string

	// delivered tracks (id, nextTrigger) occurrences already sent in this
	// engine session, bounded FIFO to the most recent entries.
	delMu          sync.Mutex
	delivered      map[string]struct{}
	deliveredOrder []string
}

// New creates an engine. fallbackToken may be empty.
func New(reminders ReminderStore, settings SettingsStore, newSender SenderFactory, motivator MessageSource, fallbackToken string) *Engine {
	return &Engine{
		reminders:     reminders,
		settings:      settings,
		newSender:     newSender,
		motivator:     motivator,
		fallbackToken: fallbackToken,
		notifyCh:      make(chan struct{}, 1),
		delivered:     make(map[string]struct{}),
	}
}

// State returns the current lifecycle state.
func (e *Engine) State() State {
	return State(e.state.Load())
}

// Start transitions Stopped -> Running and arms the polling loop. It is a
// no-op when already running or paused, and refuses to start (without
// error in the ErrNotConfigured sense) while Telegram is unconfigured.
func (e *Engine) Start(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.State() != StateStopped {
		return nil
	}

	if _, err := e.ensureTransport(ctx); err != nil {
		if errors.Is(err, ErrNotConfigured) {
			log.Println("Reminder engine not started: telegram is not configured")
			return nil
		}
		return err
	}

	e.clearDelivered()

	runCtx, cancel := context.WithCancel(context.Background())
	e.cancel = cancel
	e.done = make(chan struct{})
	e.state.Store(int32(StateRunning))

	go e.run(runCtx)
	log.Println("Reminder engine started")
	return nil
}

// Stop cancels the polling loop and clears the delivered set. Safe to call
// repeatedly.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.State() == StateStopped {
		return
	}

	e.cancel()
	<-e.done
	e.cancel = nil
	e.done = nil
	e.state.Store(int32(StateStopped))
	e.clearDelivered()
	log.Println("Reminder engine stopped")
}

// Pause suppresses delivery while keeping trigger progression: due
// reminders are advanced (or disabled, for one-shots) without sending.
func (e *Engine) Pause() {
	e.state.CompareAndSwap(int32(StateRunning), int32(StatePaused))
}

// Resume re-enables delivery after Pause.
func (e *Engine) Resume() {
	e.state.CompareAndSwap(int32(StatePaused), int32(StateRunning))
}

// Notify triggers an immediate reminder check. Non-blocking if a check is
// already pending.
func (e *Engine) Notify() {
	select {
	case e.notifyCh <- struct{}{}:
	default:
	}
}

func (e *Engine) run(ctx context.Context) {
	defer close(e.done)

	reminderTicker := time.NewTicker(checkInterval)
	defer reminderTicker.Stop()
	motivationTicker := time.NewTicker(motivationInterval)
	defer motivationTicker.Stop()

	// Check immediately so a reminder due at startup fires promptly
	// instead of waiting out the first interval.
	e.checkReminders(ctx, time.Now())
	e.checkMotivation(ctx, time.Now())

	for {
		select {
		case <-ctx.Done():
			return
		case <-reminderTicker.C:
			e.checkReminders(ctx, time.Now())
		case <-motivationTicker.C:
			e.checkMotivation(ctx, time.Now())
		case <-e.notifyCh:
			e.checkReminders(ctx, time.Now())
		}
	}
}

func (e *Engine) checkReminders(ctx context.Context, now time.Time) {
	if err := e.CheckReminders(ctx, now); err != nil && !errors.Is(err, ErrNotConfigured) {
		log.Printf("Reminder check failed: %v", err)
	}
}

func (e *Engine) checkMotivation(ctx context.Context, now time.Time) {
	if err := e.CheckMotivation(ctx, now); err != nil && !errors.Is(err, ErrNotConfigured) {
		log.Printf("Motivation check failed: %v", err)
	}
}

// CheckReminders runs one evaluation cycle against the given instant. It
// is the entry point for both the polling loop and the cron relay.
func (e *Engine) CheckReminders(ctx context.Context, now time.Time) error {
	// Re-entrancy guard: a cycle stalled on store I/O or a slow send must
	// not be overlapped by the next tick.
	if !e.isChecking.CompareAndSwap(false, true) {
		return nil
	}
	defer e.isChecking.Store(false)

	settings, err := e.ensureTransport(ctx)
	if err != nil {
		return err
	}

	reminders, err := e.reminders.ListEnabled(ctx)
	if err != nil {
		return fmt.Errorf("failed to list reminders: %w", err)
	}

	paused := e.State() == StatePaused

	for _, reminder := range reminders {
		due := now.Sub(reminder.NextTrigger)

		switch {
		case due < 0:
			// Not yet due.
			continue

		case due > triggerWindow:
			// Missed the window: advance silently rather than deliver a
			// burst of stale notifications.
			e.advance(ctx, reminder, now)
			continue
		}

		// Weekly reminders fire only on listed weekdays. No advancement:
		// the occurrence stays armed for a matching day.
		if !reminder.FiresOn(now.Weekday()) {
			continue
		}

		if paused {
			e.advance(ctx, reminder, now)
			continue
		}

		key := occurrenceKey(reminder.ReminderID, reminder.NextTrigger)
		if e.wasDelivered(key) {
			continue
		}
		// Record before sending so a failure mid-send cannot double-fire
		// on the next cycle.
		e.markDelivered(key)

		e.advance(ctx, reminder, now)

		if err := e.transport().Send(settings.ChatID, reminderText(reminder), true); err != nil {
			log.Printf("Failed to send reminder %d: %v", reminder.ReminderID, err)
			continue
		}
		log.Printf("Sent reminder %d (%s)", reminder.ReminderID, reminder.Title)
	}

	return nil
}

// advance moves a reminder past its current occurrence: recurring
// reminders get the next trigger strictly after now, one-shots are
// disabled for good.
func (e *Engine) advance(ctx context.Context, reminder *models.Reminder, now time.Time) {
	if !reminder.IsRecurring() {
		if err := e.reminders.SetEnabled(ctx, reminder.ReminderID, false); err != nil {
			log.Printf("Failed to disable reminder %d: %v", reminder.ReminderID, err)
		}
		return
	}

	next, err := recurrence.Next(reminder, now)
	if err != nil {
		// A reminder whose rule cannot produce an occurrence would stay
		// due forever; disable it instead of spinning.
		log.Printf("Failed to compute next trigger for reminder %d, disabling: %v", reminder.ReminderID, err)
		if err := e.reminders.SetEnabled(ctx, reminder.ReminderID, false); err != nil {
			log.Printf("Failed to disable reminder %d: %v", reminder.ReminderID, err)
		}
		return
	}

	if err := e.reminders.SetNextTrigger(ctx, reminder.ReminderID, next); err != nil {
		log.Printf("Failed to advance reminder %d: %v", reminder.ReminderID, err)
	}
}

// CheckMotivation sends the daily motivational message at most once per
// calendar day, once the configured hour has been reached.
func (e *Engine) CheckMotivation(ctx context.Context, now time.Time) error {
	settings, err := e.ensureTransport(ctx)
	if err != nil {
		return err
	}

	if e.State() == StatePaused {
		return nil
	}
	if !settings.MotivationDue(now) {
		return nil
	}

	msg := e.motivator.DailyMessage(ctx, now)
	if err := e.transport().Send(settings.ChatID, "💪 **Daily motivation**\n\n"+msg, true); err != nil {
		log.Printf("Failed to send motivational message: %v", err)
		return nil
	}

	if err := e.settings.SetLastMotivationalMessage(ctx, now); err != nil {
		log.Printf("Failed to record motivational message time: %v", err)
	}
	log.Println("Sent daily motivational message")
	return nil
}

// ensureTransport loads the relay settings and (re)builds the sender when
// the effective bot token changed. Settings are re-read every cycle so the
// engine never holds a stale copy across edits.
func (e *Engine) ensureTransport(ctx context.Context) (*models.TelegramSettings, error) {
	settings, err := e.settings.GetOrCreate(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load telegram settings: %w", err)
	}
	if !settings.Configured() {
		return nil, ErrNotConfigured
	}

	token := settings.BotToken
	if token == "" {
		token = e.fallbackToken
	}
	if token == "" {
		return nil, ErrNotConfigured
	}

	e.transportMu.Lock()
	defer e.transportMu.Unlock()
	if e.sender == nil || token != e.senderToken {
		sender, err := e.newSender(token)
		if err != nil {
			return nil, fmt.Errorf("failed to create sender: %w", err)
		}
		e.sender = sender
		e.senderToken = token
	}

	return settings, nil
}

func (e *Engine) transport() Sender {
	e.transportMu.Lock()
	defer e.transportMu.Unlock()
	return e.sender
}

func occurrenceKey(reminderID int, trigger time.Time) string {
	return fmt.Sprintf("%d|%d", reminderID, trigger.Unix())
}

func (e *Engine) wasDelivered(key string) bool {
	e.delMu.Lock()
	defer e.delMu.Unlock()
	_, ok := e.delivered[key]
	return ok
}

func (e *Engine) markDelivered(key string) {
	e.delMu.Lock()
	defer e.delMu.Unlock()
	if _, ok := e.delivered[key]; ok {
		return
	}
	e.delivered[key] = struct{}{}
	e.deliveredOrder = append(e.deliveredOrder, key)
	for len(e.deliveredOrder) > maxDeliveredKeys {
		oldest := e.deliveredOrder[0]
		e.deliveredOrder = e.deliveredOrder[1:]
		delete(e.delivered, oldest)
	}
}

func (e *Engine) clearDelivered() {
	e.delMu.Lock()
	defer e.delMu.Unlock()
	e.delivered = make(map[string]struct{})
	e.deliveredOrder = nil
}

var typeIcons = map[string]string{
	models.ReminderHydration:  "💧",
	models.ReminderWorkout:    "🏋️",
	models.ReminderSupplement: "💊",
	models.ReminderStretching: "🧘",
	models.ReminderCustom:     "⏰",
}

func reminderText(reminder *models.Reminder) string {
	icon, ok := typeIcons[reminder.Type]
	if !ok {
		icon = typeIcons[models.ReminderCustom]
	}
	text := icon + " **" + reminder.Title + "**"
	if reminder.Message != "" {
		text += "\n\n" + reminder.Message
	}
	return text
}
