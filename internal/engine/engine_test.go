package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/MatheusRocha-X/GymFlow-sub000/internal/models"
)

type fakeReminderStore struct {
	mu        sync.Mutex
	reminders []*models.Reminder
	advanced  map[int]time.Time
	disabled  map[int]bool
	listErr   error
}

func newFakeReminderStore(reminders ...*models.Reminder) *fakeReminderStore {
	return &fakeReminderStore{
		reminders: reminders,
		advanced:  make(map[int]time.Time),
		disabled:  make(map[int]bool),
	}
}

func (f *fakeReminderStore) ListEnabled(ctx context.Context) ([]*models.Reminder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []*models.Reminder
	for _, r := range f.reminders {
		if r.Enabled && !f.disabled[r.ReminderID] {
			copied := *r
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeReminderStore) SetNextTrigger(ctx context.Context, reminderID int, next time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.advanced[reminderID] = next
	for _, r := range f.reminders {
		if r.ReminderID == reminderID {
			r.NextTrigger = next
		}
	}
	return nil
}

func (f *fakeReminderStore) SetEnabled(ctx context.Context, reminderID int, enabled bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.disabled[reminderID] = !enabled
	return nil
}

type fakeSettingsStore struct {
	mu       sync.Mutex
	settings models.TelegramSettings
	getErr   error
}

func (f *fakeSettingsStore) GetOrCreate(ctx context.Context) (*models.TelegramSettings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	copied := f.settings
	return &copied, nil
}

func (f *fakeSettingsStore) SetLastMotivationalMessage(ctx context.Context, sentAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.settings.LastMotivationalMessage = &sentAt
	return nil
}

func (f *fakeSettingsStore) setToken(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.settings.BotToken = token
}

type sentMessage struct {
	chatID int64
	text   string
}

type fakeSender struct {
	mu      sync.Mutex
	sent    []sentMessage
	sendErr error
}

func (f *fakeSender) Send(chatID int64, text string, markdown bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, sentMessage{chatID: chatID, text: text})
	return nil
}

func (f *fakeSender) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

type staticSource struct{ message string }

func (s staticSource) DailyMessage(ctx context.Context, now time.Time) string {
	return s.message
}

func configuredSettings() *fakeSettingsStore {
	return &fakeSettingsStore{settings: models.TelegramSettings{
		Enabled:  true,
		ChatID:   42,
		BotToken: "token-a",
	}}
}

func newTestEngine(reminders *fakeReminderStore, settings *fakeSettingsStore) (*Engine, *fakeSender) {
	sender := &fakeSender{}
	factory := func(token string) (Sender, error) { return sender, nil }
	return New(reminders, settings, factory, staticSource{message: "keep going"}, ""), sender
}

func TestCheckRemindersNotConfigured(t *testing.T) {
	store := newFakeReminderStore()
	settings := &fakeSettingsStore{settings: models.TelegramSettings{Enabled: false}}
	eng, _ := newTestEngine(store, settings)

	if err := eng.CheckReminders(context.Background(), time.Now()); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestCheckRemindersTriggerWindow(t *testing.T) {
	now := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		trigger      time.Time
		wantSent     bool
		wantAdvanced bool
	}{
		{"exactly due", now, true, true},
		{"one second early", now.Add(time.Second), false, false},
		{"thirty seconds late", now.Add(-30 * time.Second), true, true},
		{"at window edge", now.Add(-60 * time.Second), true, true},
		{"past the window", now.Add(-61 * time.Second), false, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := newFakeReminderStore(&models.Reminder{
				ReminderID:  1,
				Type:        models.ReminderWorkout,
				Title:       "Leg day",
				Time:        tc.trigger,
				Recurrence:  models.RecurrenceDaily,
				Enabled:     true,
				NextTrigger: tc.trigger,
			})
			eng, sender := newTestEngine(store, configuredSettings())

			if err := eng.CheckReminders(context.Background(), now); err != nil {
				t.Fatalf("CheckReminders: %v", err)
			}

			if got := sender.count() > 0; got != tc.wantSent {
				t.Errorf("sent = %v, want %v", got, tc.wantSent)
			}
			_, advanced := store.advanced[1]
			if advanced != tc.wantAdvanced {
				t.Errorf("advanced = %v, want %v", advanced, tc.wantAdvanced)
			}
		})
	}
}

func TestCheckRemindersAdvancesStrictlyAfterNow(t *testing.T) {
	now := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	store := newFakeReminderStore(&models.Reminder{
		ReminderID:  1,
		Title:       "Morning stretch",
		Time:        now,
		Recurrence:  models.RecurrenceDaily,
		Enabled:     true,
		NextTrigger: now,
	})
	eng, _ := newTestEngine(store, configuredSettings())

	if err := eng.CheckReminders(context.Background(), now); err != nil {
		t.Fatalf("CheckReminders: %v", err)
	}

	next, ok := store.advanced[1]
	if !ok {
		t.Fatal("reminder was not advanced")
	}
	if !next.After(now) {
		t.Errorf("next trigger %s is not after %s", next, now)
	}
	want := time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Errorf("next trigger = %s, want %s", next, want)
	}
}

func TestCheckRemindersDedup(t *testing.T) {
	now := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	reminder := &models.Reminder{
		ReminderID:  7,
		Title:       "Creatine",
		Type:        models.ReminderSupplement,
		Time:        now,
		Recurrence:  models.RecurrenceNone,
		Enabled:     true,
		NextTrigger: now,
	}
	store := newFakeReminderStore(reminder)
	eng, sender := newTestEngine(store, configuredSettings())

	if err := eng.CheckReminders(context.Background(), now); err != nil {
		t.Fatalf("first check: %v", err)
	}
	// Simulate the store lagging behind the disable write: the same
	// occurrence comes back on the next cycle.
	store.mu.Lock()
	store.disabled[7] = false
	store.mu.Unlock()

	if err := eng.CheckReminders(context.Background(), now.Add(10*time.Second)); err != nil {
		t.Fatalf("second check: %v", err)
	}

	if got := sender.count(); got != 1 {
		t.Errorf("sent %d messages for one occurrence, want 1", got)
	}
}

func TestCheckRemindersOneShotDisabled(t *testing.T) {
	now := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	store := newFakeReminderStore(&models.Reminder{
		ReminderID:  3,
		Title:       "Sign up for the gym",
		Time:        now,
		Recurrence:  models.RecurrenceNone,
		Enabled:     true,
		NextTrigger: now,
	})
	eng, sender := newTestEngine(store, configuredSettings())

	if err := eng.CheckReminders(context.Background(), now); err != nil {
		t.Fatalf("CheckReminders: %v", err)
	}

	if sender.count() != 1 {
		t.Fatalf("sent %d messages, want 1", sender.count())
	}
	if !store.disabled[3] {
		t.Error("one-shot reminder was not disabled after firing")
	}
	if _, advanced := store.advanced[3]; advanced {
		t.Error("one-shot reminder should not get a new trigger")
	}
}

func TestCheckRemindersWeeklyDayFilter(t *testing.T) {
	// 2024-01-01 is a Monday.
	monday := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	store := newFakeReminderStore(&models.Reminder{
		ReminderID:  5,
		Title:       "Upper body",
		Time:        monday,
		Recurrence:  models.RecurrenceWeekly,
		DaysOfWeek:  []int{3, 5}, // Wednesday, Friday
		Enabled:     true,
		NextTrigger: monday,
	})
	eng, sender := newTestEngine(store, configuredSettings())

	if err := eng.CheckReminders(context.Background(), monday); err != nil {
		t.Fatalf("CheckReminders: %v", err)
	}

	if sender.count() != 0 {
		t.Error("weekly reminder fired on a weekday it is not scheduled for")
	}
	if _, advanced := store.advanced[5]; advanced {
		t.Error("reminder on a non-matching day must stay armed, not advance")
	}
}

func TestCheckRemindersPausedAdvancesWithoutSending(t *testing.T) {
	now := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	store := newFakeReminderStore(&models.Reminder{
		ReminderID:  9,
		Title:       "Hydrate",
		Type:        models.ReminderHydration,
		Time:        now,
		Recurrence:  models.RecurrenceDaily,
		Enabled:     true,
		NextTrigger: now,
	})
	eng, sender := newTestEngine(store, configuredSettings())
	eng.state.Store(int32(StatePaused))

	if err := eng.CheckReminders(context.Background(), now); err != nil {
		t.Fatalf("CheckReminders: %v", err)
	}

	if sender.count() != 0 {
		t.Error("paused engine must not deliver")
	}
	if _, advanced := store.advanced[9]; !advanced {
		t.Error("paused engine must still advance due reminders")
	}
}

func TestCheckRemindersSendFailureStillAdvances(t *testing.T) {
	now := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	store := newFakeReminderStore(&models.Reminder{
		ReminderID:  4,
		Title:       "Cardio",
		Time:        now,
		Recurrence:  models.RecurrenceDaily,
		Enabled:     true,
		NextTrigger: now,
	})
	eng, sender := newTestEngine(store, configuredSettings())
	sender.sendErr = errors.New("telegram unreachable")

	if err := eng.CheckReminders(context.Background(), now); err != nil {
		t.Fatalf("CheckReminders should not surface per-send failures: %v", err)
	}
	if _, advanced := store.advanced[4]; !advanced {
		t.Error("send failure must not block advancement")
	}
}

func TestDeliveredSetBounded(t *testing.T) {
	eng, _ := newTestEngine(newFakeReminderStore(), configuredSettings())

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < maxDeliveredKeys+50; i++ {
		eng.markDelivered(occurrenceKey(i, base))
	}

	eng.delMu.Lock()
	defer eng.delMu.Unlock()
	if len(eng.delivered) != maxDeliveredKeys {
		t.Fatalf("delivered set holds %d keys, want %d", len(eng.delivered), maxDeliveredKeys)
	}
	if _, ok := eng.delivered[occurrenceKey(0, base)]; ok {
		t.Error("oldest key should have been evicted")
	}
	if _, ok := eng.delivered[occurrenceKey(maxDeliveredKeys+49, base)]; !ok {
		t.Error("newest key should be retained")
	}
}

func TestCheckMotivationOncePerDay(t *testing.T) {
	settings := configuredSettings()
	settings.settings.DailyMotivationEnabled = true
	settings.settings.DailyMotivationTime = "08:00"
	eng, sender := newTestEngine(newFakeReminderStore(), settings)

	now := time.Date(2024, 1, 1, 8, 30, 0, 0, time.UTC)
	if err := eng.CheckMotivation(context.Background(), now); err != nil {
		t.Fatalf("first check: %v", err)
	}
	if sender.count() != 1 {
		t.Fatalf("sent %d motivational messages, want 1", sender.count())
	}
	if !strings.Contains(sender.sent[0].text, "keep going") {
		t.Errorf("message %q does not contain the generated body", sender.sent[0].text)
	}

	if err := eng.CheckMotivation(context.Background(), now.Add(2*time.Hour)); err != nil {
		t.Fatalf("second check: %v", err)
	}
	if sender.count() != 1 {
		t.Error("motivational message sent twice on the same day")
	}

	// The next calendar day it is due again.
	if err := eng.CheckMotivation(context.Background(), now.AddDate(0, 0, 1)); err != nil {
		t.Fatalf("next day check: %v", err)
	}
	if sender.count() != 2 {
		t.Error("motivational message not sent on the following day")
	}
}

func TestCheckMotivationBeforeConfiguredHour(t *testing.T) {
	settings := configuredSettings()
	settings.settings.DailyMotivationEnabled = true
	settings.settings.DailyMotivationTime = "08:00"
	eng, sender := newTestEngine(newFakeReminderStore(), settings)

	now := time.Date(2024, 1, 1, 7, 59, 0, 0, time.UTC)
	if err := eng.CheckMotivation(context.Background(), now); err != nil {
		t.Fatalf("CheckMotivation: %v", err)
	}
	if sender.count() != 0 {
		t.Error("motivational message sent before the configured hour")
	}
}

func TestEnsureTransportRebuildsOnTokenChange(t *testing.T) {
	settings := configuredSettings()
	store := newFakeReminderStore()

	var built []string
	factory := func(token string) (Sender, error) {
		built = append(built, token)
		return &fakeSender{}, nil
	}
	eng := New(store, settings, factory, staticSource{}, "")

	if err := eng.CheckReminders(context.Background(), time.Now()); err != nil {
		t.Fatalf("first check: %v", err)
	}
	if err := eng.CheckReminders(context.Background(), time.Now()); err != nil {
		t.Fatalf("second check: %v", err)
	}
	settings.setToken("token-b")
	if err := eng.CheckReminders(context.Background(), time.Now()); err != nil {
		t.Fatalf("third check: %v", err)
	}

	if len(built) != 2 {
		t.Fatalf("factory called %d times, want 2 (initial + token change): %v", len(built), built)
	}
	if built[0] != "token-a" || built[1] != "token-b" {
		t.Errorf("factory tokens = %v", built)
	}
}

func TestStartRefusedWhileUnconfigured(t *testing.T) {
	settings := &fakeSettingsStore{settings: models.TelegramSettings{}}
	eng, _ := newTestEngine(newFakeReminderStore(), settings)

	if err := eng.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if got := eng.State(); got != StateStopped {
		t.Errorf("state = %s, want stopped", got)
	}
}

func TestLifecycle(t *testing.T) {
	eng, _ := newTestEngine(newFakeReminderStore(), configuredSettings())

	if err := eng.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if got := eng.State(); got != StateRunning {
		t.Fatalf("state after Start = %s, want running", got)
	}

	// Idempotent.
	if err := eng.Start(context.Background()); err != nil {
		t.Fatalf("second Start: %v", err)
	}

	eng.Pause()
	if got := eng.State(); got != StatePaused {
		t.Errorf("state after Pause = %s, want paused", got)
	}
	eng.Resume()
	if got := eng.State(); got != StateRunning {
		t.Errorf("state after Resume = %s, want running", got)
	}

	eng.Stop()
	if got := eng.State(); got != StateStopped {
		t.Errorf("state after Stop = %s, want stopped", got)
	}
	eng.Stop() // must not panic or block
}

func TestOccurrenceKeyDistinguishesOccurrences(t *testing.T) {
	at := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	if occurrenceKey(1, at) == occurrenceKey(2, at) {
		t.Error("different reminders at the same instant must get distinct keys")
	}
	if occurrenceKey(1, at) == occurrenceKey(1, at.Add(time.Minute)) {
		t.Error("the same reminder at different instants must get distinct keys")
	}
	want := fmt.Sprintf("1|%d", at.Unix())
	if got := occurrenceKey(1, at); got != want {
		t.Errorf("occurrenceKey = %q, want %q", got, want)
	}
}
