package athan

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sleepyhq/sleepy/internal/model"
)

// BufferPolicy applies the asymmetric safety adjustment: every prayer shifts
// later by PrayerMinutes so a boundary is never assumed passed too early,
// while sunrise shifts earlier by SunriseMinutes so it is never assumed still
// pending. Magnitudes are fixed configuration.
type BufferPolicy struct {
	PrayerMinutes  int
	SunriseMinutes int
}

// Apply returns a buffered copy of the timetable. The input is not mutated.
func (p BufferPolicy) Apply(pt *model.PrayerTimes) (*model.PrayerTimes, error) {
	out := *pt

	shift := func(field *string, minutes int) error {
		v, err := shiftClock(*field, minutes)
		if err != nil {
			return err
		}
		*field = v
		return nil
	}

	for _, f := range []*string{&out.Fajr, &out.Dhuhr, &out.Asr, &out.Maghrib, &out.Isha} {
		if err := shift(f, p.PrayerMinutes); err != nil {
			return nil, fmt.Errorf("buffer: %w: %v", ErrParse, err)
		}
	}
	if err := shift(&out.Sunrise, -p.SunriseMinutes); err != nil {
		return nil, fmt.Errorf("buffer: %w: %v", ErrParse, err)
	}
	return &out, nil
}

// shiftClock moves an HH:MM value by the given minutes, wrapping at midnight.
func shiftClock(value string, minutes int) (string, error) {
	h, m, err := parseClock(value)
	if err != nil {
		return "", err
	}
	total := h*60 + m + minutes
	const day = 24 * 60
	total = ((total % day) + day) % day
	return fmt.Sprintf("%02d:%02d", total/60, total%60), nil
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
