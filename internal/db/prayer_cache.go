package db

import (
	"database/sql"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/sleepyhq/sleepy/internal/model"
)

const dateLayout = "2006-01-02"

type prayerRow struct {
	Date      time.Time `db:"date"`
	City      string    `db:"city"`
	Country   string    `db:"country"`
	Latitude  float64   `db:"latitude"`
	Longitude float64   `db:"longitude"`
	Fajr      string    `db:"fajr"`
	Sunrise   string    `db:"sunrise"`
	Dhuhr     string    `db:"dhuhr"`
	Asr       string    `db:"asr"`
	Maghrib   string    `db:"maghrib"`
	Isha      string    `db:"isha"`
	CreatedAt time.Time `db:"created_at"`
}

func (r prayerRow) toModel() *model.PrayerTimes {
	return &model.PrayerTimes{
		Date:      r.Date.Format(dateLayout),
		Fajr:      r.Fajr,
		Sunrise:   r.Sunrise,
		Dhuhr:     r.Dhuhr,
		Asr:       r.Asr,
		Maghrib:   r.Maghrib,
		Isha:      r.Isha,
		City:      r.City,
		Country:   r.Country,
		Latitude:  r.Latitude,
		Longitude: r.Longitude,
	}
}

// GetPrayerTimes looks up the cached timetable for (city, date).
// A miss returns (nil, nil); it is a normal negative result, not an error.
func (s *pgStore) GetPrayerTimes(city, date string) (*model.PrayerTimes, error) {
	var r prayerRow
	const q = `
	SELECT date, city, country, latitude, longitude,
	       fajr, sunrise, dhuhr, asr, maghrib, isha, created_at
	  FROM prayer_times_cache
	 WHERE city = $1 AND date = $2;`
	if err := s.db.Get(&r, q, city, date); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		log.Error().Err(err).Str("city", city).Str("date", date).Msg("GetPrayerTimes failed")
		return nil, err
	}
	return r.toModel(), nil
}

// UpsertPrayerTimes writes a timetable row, replacing any previous row for the
// same (city, date). The upsert is atomic, so concurrent writers to the same
// key cannot interleave partial rows.
func (s *pgStore) UpsertPrayerTimes(pt *model.PrayerTimes) error {
	const q = `
	INSERT INTO prayer_times_cache
	  (date, city, country, latitude, longitude, fajr, sunrise, dhuhr, asr, maghrib, isha, created_at)
	VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11, now())
	ON CONFLICT (city, date) DO UPDATE SET
	  country    = EXCLUDED.country,
	  latitude   = EXCLUDED.latitude,
	  longitude  = EXCLUDED.longitude,
	  fajr       = EXCLUDED.fajr,
	  sunrise    = EXCLUDED.sunrise,
	  dhuhr      = EXCLUDED.dhuhr,
	  asr        = EXCLUDED.asr,
	  maghrib    = EXCLUDED.maghrib,
	  isha       = EXCLUDED.isha,
	  created_at = now();`
	_, err := s.db.Exec(q, pt.Date, pt.City, pt.Country, pt.Latitude, pt.Longitude,
		pt.Fajr, pt.Sunrise, pt.Dhuhr, pt.Asr, pt.Maghrib, pt.Isha)
	if err != nil {
		log.Error().Err(err).Str("city", pt.City).Str("date", pt.Date).Msg("UpsertPrayerTimes failed")
	}
	return err
}

// EvictPrayerTimesBefore deletes rows dated strictly before the cutoff day.
// Safe to run concurrently with reads: it never touches rows at or past cutoff.
func (s *pgStore) EvictPrayerTimesBefore(cutoff time.Time) (int64, error) {
	res, err := s.db.Exec(`DELETE FROM prayer_times_cache WHERE date < $1;`, cutoff.Format(dateLayout))
	if err != nil {
		log.Error().Err(err).Msg("EvictPrayerTimesBefore failed")
		return 0, err
	}
	n, _ := res.RowsAffected()
	return n, nil
}

func (s *pgStore) CountPrayerTimes() (int, error) {
	var n int
	if err := s.db.Get(&n, `SELECT count(*) FROM prayer_times_cache;`); err != nil {
		log.Error().Err(err).Msg("CountPrayerTimes failed")
		return 0, err
	}
	return n, nil
}
