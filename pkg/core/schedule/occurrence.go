// Package schedule turns a ministry's recurrence descriptor into
// concrete occurrence times using RRULE expansion.
package schedule

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/lucasmdrs/escala/pkg/core/model"
)

// rruleWeekdays maps time.Weekday (Sunday = 0) onto rrule weekdays
var rruleWeekdays = [7]rrule.Weekday{
	rrule.SU, rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR, rrule.SA,
}

// NextOccurrence returns the first occurrence strictly after the given
// time, preserving after's time of day.
func NextOccurrence(rec model.Recurrence, after time.Time) (time.Time, error) {
	switch rec.Kind {
	case model.RecurrenceWeekly:
		return nextWeekly(rec, after, 1)
	case model.RecurrenceBiweekly:
		return nextWeekly(rec, after, 2)
	case model.RecurrenceMonthly:
		return nextMonthly(rec, after)
	default:
		return time.Time{}, model.NewValidationError("unknown recurrence kind %q", rec.Kind)
	}
}

func nextWeekly(rec model.Recurrence, after time.Time, interval int) (time.Time, error) {
	r, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.WEEKLY,
		Interval:  interval,
		Byweekday: []rrule.Weekday{rruleWeekdays[rec.Weekday]},
		Dtstart:   after,
	})
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to build recurrence rule: %w", err)
	}

	next := r.After(after, false)
	if next.IsZero() {
		return time.Time{}, fmt.Errorf("no occurrence after %s", after.Format(time.RFC3339))
	}
	return next, nil
}

// nextMonthly avoids RRULE BYMONTHDAY skipping short months entirely:
// day 31 in February clamps to the last day instead of jumping to March.
func nextMonthly(rec model.Recurrence, after time.Time) (time.Time, error) {
	if rec.MonthDay < 1 || rec.MonthDay > 31 {
		return time.Time{}, model.NewValidationError("monthly recurrence needs a day of month between 1 and 31, got %d", rec.MonthDay)
	}

	year, month := after.Year(), after.Month()
	for i := 0; i < 13; i++ {
		day := rec.MonthDay
		if last := daysIn(year, month); day > last {
			day = last
		}
		candidate := time.Date(year, month, day,
			after.Hour(), after.Minute(), after.Second(), 0, after.Location())
		if candidate.After(after) {
			return candidate, nil
		}
		month++
		if month > time.December {
			month = time.January
			year++
		}
	}
	return time.Time{}, fmt.Errorf("no monthly occurrence found after %s", after.Format(time.RFC3339))
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
