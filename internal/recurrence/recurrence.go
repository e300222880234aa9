// Package recurrence maps reminder repetition policies onto RFC 5545
// recurrence rules and computes next trigger times.
package recurrence

import (
	"errors"
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/MatheusRocha-X/GymFlow-sub000/internal/models"
)

// ErrNotRecurring is returned when asked to advance a one-shot reminder.
var ErrNotRecurring = errors.New("reminder is not recurring")

// weekdays maps weekday indices (0 = Sunday) to RRULE weekdays.
var weekdays = [7]rrule.Weekday{
	rrule.SU, rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR, rrule.SA,
}

// Rule builds the recurrence rule for a reminder. The anchor supplies the
// hour/minute of every occurrence; for monthly recurrence it also supplies
// the day of month.
func Rule(recurrence string, anchor time.Time, daysOfWeek []int) (*rrule.RRule, error) {
	opt := rrule.ROption{Dtstart: anchor}

	switch recurrence {
	case models.RecurrenceDaily:
		opt.Freq = rrule.DAILY
	case models.RecurrenceWeekly:
		opt.Freq = rrule.WEEKLY
		for _, d := range daysOfWeek {
			if d < 0 || d > 6 {
				return nil, fmt.Errorf("invalid weekday index %d", d)
			}
			opt.Byweekday = append(opt.Byweekday, weekdays[d])
		}
		if len(opt.Byweekday) == 0 {
			return nil, errors.New("weekly recurrence requires days of week")
		}
	case models.RecurrenceMonthly:
		opt.Freq = rrule.MONTHLY
		opt.Bymonthday = []int{anchor.Day()}
	default:
		return nil, ErrNotRecurring
	}

	return rrule.NewRRule(opt)
}

// Next returns the next occurrence of a reminder strictly after the given
// instant. The result always satisfies next.After(after), so a freshly
// advanced trigger can never re-fire in the same cycle.
func Next(reminder *models.Reminder, after time.Time) (time.Time, error) {
	rule, err := Rule(reminder.Recurrence, reminder.Time, reminder.DaysOfWeek)
	if err != nil {
		return time.Time{}, err
	}

	// After(t, false) should already exclude t, but step defensively in
	// case the rule yields an occurrence equal to the probe instant.
	probe := after
	for i := 0; i < 4; i++ {
		next := rule.After(probe, false)
		if next.IsZero() {
			return time.Time{}, fmt.Errorf("no occurrence after %s", after)
		}
		if next.After(after) {
			return next, nil
		}
		probe = next.Add(time.Second)
	}
	return time.Time{}, fmt.Errorf("no occurrence after %s", after)
}
