package db

import (
	"errors"
	"sync"
	"time"

	"github.com/sleepyhq/sleepy/internal/model"
)

// MemStore is an in-memory Store used by tests; it mirrors the Postgres
// semantics (exact-key lookup, upsert-replace, date-based eviction).
type MemStore struct {
	mu      sync.RWMutex
	prayers map[string]model.PrayerTimes
	history map[string]model.SleepSchedule

	// FailGets makes the next N GetPrayerTimes calls return an error,
	// for exercising degraded-read paths.
	FailGets int
	// EvictCutoffs records each eviction sweep's cutoff.
	EvictCutoffs []time.Time
}

var _ Store = (*MemStore)(nil)

func NewMemStore() *MemStore {
	return &MemStore{
		prayers: make(map[string]model.PrayerTimes),
		history: make(map[string]model.SleepSchedule),
	}
}

func prayerKey(city, date string) string { return city + "|" + date }

func (m *MemStore) GetPrayerTimes(city, date string) (*model.PrayerTimes, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailGets > 0 {
		m.FailGets--
		return nil, errors.New("simulated store read failure")
	}
	pt, ok := m.prayers[prayerKey(city, date)]
	if !ok {
		return nil, nil
	}
	out := pt
	return &out, nil
}

func (m *MemStore) UpsertPrayerTimes(pt *model.PrayerTimes) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prayers[prayerKey(pt.City, pt.Date)] = *pt
	return nil
}

func (m *MemStore) EvictPrayerTimesBefore(cutoff time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.EvictCutoffs = append(m.EvictCutoffs, cutoff)
	var n int64
	for k, pt := range m.prayers {
		day, err := time.Parse("2006-01-02", pt.Date)
		if err != nil {
			continue
		}
		if day.Before(time.Date(cutoff.Year(), cutoff.Month(), cutoff.Day(), 0, 0, 0, 0, time.UTC)) {
			delete(m.prayers, k)
			n++
		}
	}
	return n, nil
}

func (m *MemStore) CountPrayerTimes() (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.prayers), nil
}

func (m *MemStore) UpsertScheduleHistory(s *model.SleepSchedule) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.history[s.Date] = *s
	return nil
}

func (m *MemStore) ListScheduleHistory(from, to string) ([]model.SleepSchedule, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []model.SleepSchedule
	for date, s := range m.history {
		if date >= from && date <= to {
			out = append(out, s)
		}
	}
	return out, nil
}
