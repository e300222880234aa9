package motivation

import (
	"context"
	"testing"
	"time"
)

func TestQuoteDeterministicPerDay(t *testing.T) {
	day := time.Date(2024, 5, 10, 6, 0, 0, 0, time.UTC)
	first := Quote(day)
	if first == "" {
		t.Fatal("empty quote")
	}
	if again := Quote(day.Add(10 * time.Hour)); again != first {
		t.Error("quote changed within the same day")
	}
	if tomorrow := Quote(day.AddDate(0, 0, 1)); tomorrow == first {
		t.Error("quote did not rotate to the next day")
	}
}

func TestDailyMessageWithoutAPIKey(t *testing.T) {
	g := New("", "", "")
	now := time.Date(2024, 5, 10, 6, 0, 0, 0, time.UTC)
	if got := g.DailyMessage(context.Background(), now); got != Quote(now) {
		t.Errorf("DailyMessage = %q, want the pool quote %q", got, Quote(now))
	}
}
