package db

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/sleepyhq/sleepy/internal/model"
)

type historyRow struct {
	Date          time.Time `db:"date"`
	SleepStart    string    `db:"sleep_start"`
	SleepEnd      string    `db:"sleep_end"`
	DurationHours float64   `db:"duration_hours"`
	IshaTime      string    `db:"isha_time"`
	FajrTime      string    `db:"fajr_time"`
	Annotation    string    `db:"annotation"`
	Notes         string    `db:"notes"`
}

// UpsertScheduleHistory records the schedule computed for a night; recomputing
// the same date replaces the previous row.
func (s *pgStore) UpsertScheduleHistory(sched *model.SleepSchedule) error {
	const q = `
	INSERT INTO sleep_schedule_history
	  (date, sleep_start, sleep_end, duration_hours, isha_time, fajr_time, annotation, notes, created_at)
	VALUES ($1,$2,$3,$4,$5,$6,$7,$8, now())
	ON CONFLICT (date) DO UPDATE SET
	  sleep_start    = EXCLUDED.sleep_start,
	  sleep_end      = EXCLUDED.sleep_end,
	  duration_hours = EXCLUDED.duration_hours,
	  isha_time      = EXCLUDED.isha_time,
	  fajr_time      = EXCLUDED.fajr_time,
	  annotation     = EXCLUDED.annotation,
	  notes          = EXCLUDED.notes,
	  created_at     = now();`
	_, err := s.db.Exec(q, sched.Date, sched.SleepStart, sched.SleepEnd, sched.DurationHours,
		sched.IshaTime, sched.FajrTime, sched.Annotation, sched.Notes)
	if err != nil {
		log.Error().Err(err).Str("date", sched.Date).Msg("UpsertScheduleHistory failed")
	}
	return err
}

func (s *pgStore) ListScheduleHistory(from, to string) ([]model.SleepSchedule, error) {
	var rows []historyRow
	const q = `
	SELECT date, sleep_start, sleep_end, duration_hours, isha_time, fajr_time, annotation, notes
	  FROM sleep_schedule_history
	 WHERE date >= $1 AND date <= $2
	 ORDER BY date;`
	if err := s.db.Select(&rows, q, from, to); err != nil {
		log.Error().Err(err).Msg("ListScheduleHistory failed")
		return nil, err
	}
	out := make([]model.SleepSchedule, 0, len(rows))
	for _, r := range rows {
		out = append(out, model.SleepSchedule{
			Date:          r.Date.Format(dateLayout),
			SleepStart:    r.SleepStart,
			SleepEnd:      r.SleepEnd,
			DurationHours: r.DurationHours,
			IshaTime:      r.IshaTime,
			FajrTime:      r.FajrTime,
			Annotation:    r.Annotation,
			Notes:         r.Notes,
		})
	}
	return out, nil
}
