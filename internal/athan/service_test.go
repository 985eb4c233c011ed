package athan_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sleepyhq/sleepy/internal/athan"
	"github.com/sleepyhq/sleepy/internal/db"
	"github.com/sleepyhq/sleepy/internal/location"
	"github.com/sleepyhq/sleepy/internal/model"
)

type stubSource struct {
	name  string
	pt    *model.PrayerTimes
	err   error
	calls int
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Fetch(ctx context.Context, loc model.Location, day time.Time) (*model.PrayerTimes, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	out := *s.pt
	out.City = loc.City
	out.Date = day.Format("2006-01-02")
	return &out, nil
}

var testDay = time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

// serviceDay is today: the eviction sweep cuts relative to the wall clock, so
// persistence tests must use dates the sweep will keep.
var serviceDay = time.Now().UTC()

func testRegistry() *location.Registry {
	return location.NewRegistry([]location.Region{
		{Name: "Tashkent", Slug: "toshkent", Aliases: []string{"Toshkent"}, Latitude: 41.2995, Longitude: 69.2401},
	})
}

func fetched() *model.PrayerTimes {
	return &model.PrayerTimes{
		Fajr:    "05:30",
		Sunrise: "07:00",
		Dhuhr:   "12:15",
		Asr:     "15:00",
		Maghrib: "17:30",
		Isha:    "19:00",
	}
}

func newService(store db.Store, regional, general athan.Source) *athan.Service {
	return athan.NewService(store, regional, general, testRegistry(),
		athan.BufferPolicy{PrayerMinutes: 15, SunriseMinutes: 15}, 30)
}

func tashkent() model.Location {
	return model.Location{City: "Tashkent", Country: "Uzbekistan", Regional: true}
}

func TestGetPrayerTimes_CacheHitSkipsSources(t *testing.T) {
	store := db.NewMemStore()
	cached := fetched()
	cached.City = "Tashkent"
	cached.Date = serviceDay.Format("2006-01-02")
	require.NoError(t, store.UpsertPrayerTimes(cached))

	regional := &stubSource{name: "regional", pt: fetched()}
	general := &stubSource{name: "general", pt: fetched()}
	svc := newService(store, regional, general)

	pt, err := svc.GetPrayerTimes(context.Background(), tashkent(), serviceDay)
	require.NoError(t, err)

	assert.Equal(t, cached, pt)
	assert.Zero(t, regional.calls)
	assert.Zero(t, general.calls)
}

func TestGetPrayerTimes_RegionalPreferredAndBuffered(t *testing.T) {
	store := db.NewMemStore()
	regional := &stubSource{name: "regional", pt: fetched()}
	general := &stubSource{name: "general", pt: fetched()}
	svc := newService(store, regional, general)

	pt, err := svc.GetPrayerTimes(context.Background(), tashkent(), serviceDay)
	require.NoError(t, err)

	assert.Equal(t, 1, regional.calls)
	assert.Zero(t, general.calls)

	// the returned (and cached) timetable carries the safety buffer
	assert.Equal(t, "19:15", pt.Isha)
	assert.Equal(t, "05:45", pt.Fajr)
	assert.Equal(t, "06:45", pt.Sunrise)

	cached, err := store.GetPrayerTimes("Tashkent", serviceDay.Format("2006-01-02"))
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Equal(t, pt, cached)
}

func TestGetPrayerTimes_RegionalFailureFallsBackExactlyOnce(t *testing.T) {
	store := db.NewMemStore()
	regional := &stubSource{name: "regional", err: athan.ErrNetwork}
	general := &stubSource{name: "general", pt: fetched()}
	svc := newService(store, regional, general)

	_, err := svc.GetPrayerTimes(context.Background(), tashkent(), testDay)
	require.NoError(t, err)

	assert.Equal(t, 1, regional.calls)
	assert.Equal(t, 1, general.calls)
}

func TestGetPrayerTimes_NonRegionalGoesStraightToGeneral(t *testing.T) {
	store := db.NewMemStore()
	regional := &stubSource{name: "regional", pt: fetched()}
	general := &stubSource{name: "general", pt: fetched()}
	svc := newService(store, regional, general)

	loc := model.Location{City: "Istanbul", Country: "Turkey"}
	_, err := svc.GetPrayerTimes(context.Background(), loc, testDay)
	require.NoError(t, err)

	assert.Zero(t, regional.calls)
	assert.Equal(t, 1, general.calls)
}

func TestGetPrayerTimes_BothSourcesFailWithoutCacheIsAnError(t *testing.T) {
	store := db.NewMemStore()
	regional := &stubSource{name: "regional", err: athan.ErrNetwork}
	general := &stubSource{name: "general", err: athan.ErrNetwork}
	svc := newService(store, regional, general)

	_, err := svc.GetPrayerTimes(context.Background(), tashkent(), testDay)
	require.Error(t, err)
	assert.ErrorIs(t, err, athan.ErrNetwork)
	assert.Equal(t, 1, regional.calls)
	assert.Equal(t, 1, general.calls)
}

func TestGetPrayerTimes_DegradesToCachedEntryWhenFetchFails(t *testing.T) {
	store := db.NewMemStore()
	stale := fetched()
	stale.City = "Tashkent"
	stale.Date = "2025-01-15"
	require.NoError(t, store.UpsertPrayerTimes(stale))
	// first read misses (transient store failure), fetch fails too; the
	// degraded re-read must still serve the cached row
	store.FailGets = 1

	regional := &stubSource{name: "regional", err: athan.ErrNetwork}
	general := &stubSource{name: "general", err: athan.ErrNetwork}
	svc := newService(store, regional, general)

	pt, err := svc.GetPrayerTimes(context.Background(), tashkent(), testDay)
	require.NoError(t, err)
	assert.Equal(t, stale, pt)
}

func TestGetPrayerTimes_SweepsExpiredEntriesAfterFreshFetch(t *testing.T) {
	store := db.NewMemStore()
	old := fetched()
	old.City = "Tashkent"
	old.Date = serviceDay.AddDate(0, 0, -40).Format("2006-01-02")
	require.NoError(t, store.UpsertPrayerTimes(old))

	general := &stubSource{name: "general", pt: fetched()}
	svc := newService(store, &stubSource{name: "regional", err: athan.ErrNetwork}, general)

	_, err := svc.GetPrayerTimes(context.Background(), tashkent(), serviceDay)
	require.NoError(t, err)

	require.Len(t, store.EvictCutoffs, 1)
	n, err := store.CountPrayerTimes()
	require.NoError(t, err)
	assert.Equal(t, 1, n, "expired row should be gone, fresh row kept")
}
