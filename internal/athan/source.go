// Package athan acquires daily prayer timetables from upstream providers,
// applies the safety-buffer policy, and keeps a (city, date)-keyed cache so
// the rest of the pipeline works offline.
package athan

import (
	"context"
	"errors"
	"time"

	"github.com/sleepyhq/sleepy/internal/model"
)

// Failure taxonomy for the acquisition stage. A cache miss is not an error.
var (
	// ErrNetwork covers unreachable upstreams, timeouts and non-success statuses.
	ErrNetwork = errors.New("prayer time source unreachable")
	// ErrParse covers malformed or incomplete upstream responses.
	ErrParse = errors.New("prayer time response malformed")
	// ErrUnsupportedLocation means the source cannot serve this location or date.
	ErrUnsupportedLocation = errors.New("location not covered by source")
)

// Source fetches the raw (unbuffered) timetable for one location and day.
// Implementations must apply a bounded request timeout and return an error
// wrapping one of the taxonomy values above.
type Source interface {
	Name() string
	Fetch(ctx context.Context, loc model.Location, day time.Time) (*model.PrayerTimes, error)
}
