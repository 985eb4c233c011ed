// Package sleep derives the nightly sleep window from a buffered prayer
// timetable and computes the countdown to it.
package sleep

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/sleepyhq/sleepy/internal/model"
)

// Outcome annotations carried on the schedule.
const (
	AnnotationPivotWake   = "pivot-wake"
	AnnotationCappedMax   = "capped-max"
	AnnotationWakeAtFajr  = "wake-at-fajr"
	AnnotationShortWindow = "short-window"
	AnnotationFallback    = "default-fallback"
)

// Config is the fixed sleep window policy.
type Config struct {
	MinHours          float64
	MaxHours          float64
	TargetHours       float64
	PivotHour         int
	IshaBufferMinutes int
}

// Outcome says whether the schedule was optimized from real prayer times or
// substituted because the input was unusable.
type Outcome int

const (
	OutcomeOptimized Outcome = iota
	OutcomeFallback
)

// Result is a computed schedule plus how it was obtained. A fallback result
// carries the reason the optimizer could not use the input.
type Result struct {
	Schedule model.SleepSchedule
	Outcome  Outcome
	Reason   string
}

type Optimizer struct {
	cfg Config
}

func NewOptimizer(cfg Config) *Optimizer {
	return &Optimizer{cfg: cfg}
}

// Schedule computes the sleep window for the night of pt.Date.
//
// Sleep starts at buffered isha plus the isha buffer. Fajr is always read on
// the following calendar day. The wake instant is then picked in three steps:
// more slack than the maximum prefers the pivot hour when that lands inside
// [min, max] and otherwise caps at the maximum; a window inside the bounds
// wakes at fajr; a window below the minimum still wakes at fajr but flags a
// warning. The reported duration is clamped to [min, max] even in the warning
// branch, so there it intentionally disagrees with the sleep_start→sleep_end
// gap.
func (o *Optimizer) Schedule(pt *model.PrayerTimes) Result {
	day, err := time.Parse("2006-01-02", pt.Date)
	if err != nil {
		return o.fallback(pt, fmt.Sprintf("invalid date %q", pt.Date))
	}
	ishaH, ishaM, err := parseClock(pt.Isha)
	if err != nil {
		return o.fallback(pt, fmt.Sprintf("invalid isha time %q", pt.Isha))
	}
	fajrH, fajrM, err := parseClock(pt.Fajr)
	if err != nil {
		return o.fallback(pt, fmt.Sprintf("invalid fajr time %q", pt.Fajr))
	}

	sleepStart := time.Date(day.Year(), day.Month(), day.Day(), ishaH, ishaM, 0, 0, time.UTC).
		Add(time.Duration(o.cfg.IshaBufferMinutes) * time.Minute)

	nextDay := day.AddDate(0, 0, 1)
	fajrInstant := time.Date(nextDay.Year(), nextDay.Month(), nextDay.Day(), fajrH, fajrM, 0, 0, time.UTC)
	pivotInstant := time.Date(nextDay.Year(), nextDay.Month(), nextDay.Day(), o.cfg.PivotHour, 0, 0, 0, time.UTC)

	availableHours := fajrInstant.Sub(sleepStart).Hours()

	var wake time.Time
	var annotation, notes string

	switch {
	case availableHours > o.cfg.MaxHours:
		pivotHours := pivotInstant.Sub(sleepStart).Hours()
		if pivotHours >= o.cfg.MinHours && pivotHours <= o.cfg.MaxHours {
			wake = pivotInstant
			annotation = AnnotationPivotWake
			notes = fmt.Sprintf("Wake at %02d:00 for productive time before Fajr", o.cfg.PivotHour)
		} else {
			wake = sleepStart.Add(hoursDuration(o.cfg.MaxHours))
			annotation = AnnotationCappedMax
			notes = fmt.Sprintf("Capped at maximum %.1f hours", o.cfg.MaxHours)
		}

	case availableHours >= o.cfg.MinHours:
		wake = fajrInstant
		annotation = AnnotationWakeAtFajr
		notes = "Wake at Fajr"
		if wake.Sub(sleepStart).Hours() > o.cfg.MaxHours {
			wake = sleepStart.Add(hoursDuration(o.cfg.MaxHours))
			annotation = AnnotationCappedMax
			notes = fmt.Sprintf("Capped at maximum %.1f hours", o.cfg.MaxHours)
		}

	default:
		// No synthetic stretching: wake stays at fajr even though the window
		// is short. The clamped duration below will overstate the real gap.
		wake = fajrInstant
		annotation = AnnotationShortWindow
		notes = "Warning: available sleep window is below the minimum duration"
	}

	duration := clamp(wake.Sub(sleepStart).Hours(), o.cfg.MinHours, o.cfg.MaxHours)

	return Result{
		Outcome: OutcomeOptimized,
		Schedule: model.SleepSchedule{
			Date:          pt.Date,
			SleepStart:    sleepStart.Format("15:04"),
			SleepEnd:      wake.Format("15:04"),
			DurationHours: round2(duration),
			IshaTime:      pt.Isha,
			FajrTime:      pt.Fajr,
			Annotation:    annotation,
			Notes:         notes,
		},
	}
}

// fallback substitutes a fixed, labeled schedule so callers always have
// something displayable. Original isha/fajr fields are preserved when present.
func (o *Optimizer) fallback(pt *model.PrayerTimes, reason string) Result {
	return Result{
		Outcome: OutcomeFallback,
		Reason:  reason,
		Schedule: model.SleepSchedule{
			Date:          pt.Date,
			SleepStart:    "22:00",
			SleepEnd:      "05:00",
			DurationHours: o.cfg.TargetHours,
			IshaTime:      pt.Isha,
			FajrTime:      pt.Fajr,
			Annotation:    AnnotationFallback,
			Notes:         "Default schedule substituted: " + reason,
		},
	}
}

func hoursDuration(h float64) time.Duration {
	return time.Duration(h * float64(time.Hour))
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

// round2 rounds half up to two decimals.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// parseClock accepts "HH:MM" and tolerates a trailing ":SS".
func parseClock(value string) (hour, minute int, err error) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) < 2 {
		return 0, 0, fmt.Errorf("invalid clock value %q", value)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid hour in %q", value)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid minute in %q", value)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("clock value out of range %q", value)
	}
	return hour, minute, nil
}
