package sleep

import (
	"time"

	"github.com/sleepyhq/sleepy/internal/model"
)

// Countdown computes the remaining time until the schedule's sleep start,
// relative to now. A start that already passed today targets the same clock
// time tomorrow; exactly one day of rollover is applied. The second return is
// false when no countdown can be produced — a negative remainder is never
// emitted.
func Countdown(schedule model.SleepSchedule, now time.Time) (model.Countdown, bool) {
	day, err := time.Parse("2006-01-02", schedule.Date)
	if err != nil {
		return model.Countdown{}, false
	}
	h, m, err := parseClock(schedule.SleepStart)
	if err != nil {
		return model.Countdown{}, false
	}

	target := time.Date(day.Year(), day.Month(), day.Day(), h, m, 0, 0, now.Location())
	if !target.After(now) {
		target = target.AddDate(0, 0, 1)
	}

	delta := target.Sub(now)
	if delta < 0 {
		return model.Countdown{}, false
	}

	hours := int(delta.Hours())
	minutes := int(delta.Minutes()) % 60
	return model.Countdown{
		Hours:    hours,
		Minutes:  minutes,
		HasHours: hours > 0,
	}, true
}
