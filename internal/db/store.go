// exposes a Store interface that is passed to API calls w/ param requirements
package db

import (
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/sleepyhq/sleepy/internal/model"
)

type Store interface {
	// prayer times cache, keyed by (city, date)
	GetPrayerTimes(city, date string) (*model.PrayerTimes, error)
	UpsertPrayerTimes(pt *model.PrayerTimes) error
	EvictPrayerTimesBefore(cutoff time.Time) (int64, error)
	CountPrayerTimes() (int, error)

	// sleep schedule history, one row per date
	UpsertScheduleHistory(s *model.SleepSchedule) error
	ListScheduleHistory(from, to string) ([]model.SleepSchedule, error)
}

type pgStore struct {
	db *sqlx.DB
}

// compile-time check that pgStore implements Store
// required so linter doesn't complain
var _ Store = (*pgStore)(nil)

func NewStore(conn *sqlx.DB) Store {
	return &pgStore{db: conn}
}
