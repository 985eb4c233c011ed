package endpoints_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sleepyhq/sleepy/internal/athan"
	"github.com/sleepyhq/sleepy/internal/db"
	"github.com/sleepyhq/sleepy/internal/http/api"
	"github.com/sleepyhq/sleepy/internal/http/api/sleep/endpoints"
	"github.com/sleepyhq/sleepy/internal/location"
	"github.com/sleepyhq/sleepy/internal/model"
	"github.com/sleepyhq/sleepy/internal/sleep"
)

type fixedSource struct {
	pt  *model.PrayerTimes
	err error
}

func (f *fixedSource) Name() string { return "fixed" }

func (f *fixedSource) Fetch(ctx context.Context, loc model.Location, day time.Time) (*model.PrayerTimes, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := *f.pt
	out.City = loc.City
	out.Date = day.Format("2006-01-02")
	return &out, nil
}

var optimizerConfig = sleep.Config{
	MinHours:          6.0,
	MaxHours:          7.5,
	TargetHours:       7.0,
	PivotHour:         4,
	IshaBufferMinutes: 30,
}

func newRouter(t *testing.T, store *db.MemStore, source athan.Source) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	registry := location.DefaultRegistry()
	svc := athan.NewService(store, source, source, registry,
		athan.BufferPolicy{PrayerMinutes: 15, SunriseMinutes: 15}, 30)
	optimizer := sleep.NewOptimizer(optimizerConfig)

	r := gin.New()
	api.MountGroup(r, api.GroupConfig{Prefix: "/api"},
		endpoints.LocationModule(registry, nil),
		endpoints.ScheduleModule(store, svc, optimizer, registry, nil),
		endpoints.QuotesModule(),
	)
	return r
}

func doRequest(r *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func upstream() *model.PrayerTimes {
	return &model.PrayerTimes{
		Fajr:    "05:30",
		Sunrise: "07:00",
		Dhuhr:   "12:15",
		Asr:     "15:00",
		Maghrib: "17:30",
		Isha:    "19:00",
	}
}

func TestSleepSchedule_ReturnsOptimizedSchedule(t *testing.T) {
	r := newRouter(t, db.NewMemStore(), &fixedSource{pt: upstream()})

	w := doRequest(r, http.MethodPost, "/api/sleep-schedule", `{
		"date": "2025-01-15",
		"fajr": "05:45",
		"isha": "19:15",
		"city": "Tashkent"
	}`)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Schedule model.SleepSchedule `json:"schedule"`
		Fallback bool                `json:"fallback"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Fallback)
	assert.Equal(t, "19:45", resp.Schedule.SleepStart)
	assert.Equal(t, 7.5, resp.Schedule.DurationHours)
}

func TestSleepSchedule_MalformedTimesYieldLabeledFallback(t *testing.T) {
	r := newRouter(t, db.NewMemStore(), &fixedSource{pt: upstream()})

	w := doRequest(r, http.MethodPost, "/api/sleep-schedule", `{
		"date": "2025-01-15",
		"fajr": "05:45",
		"isha": "nope"
	}`)

	// malformed input is absorbed, not surfaced as an HTTP error
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Schedule model.SleepSchedule `json:"schedule"`
		Fallback bool                `json:"fallback"`
		Reason   string              `json:"reason"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Fallback)
	assert.NotEmpty(t, resp.Reason)
	assert.Equal(t, "22:00", resp.Schedule.SleepStart)
	assert.Equal(t, "05:00", resp.Schedule.SleepEnd)
}

func TestSleepSchedule_MissingRequiredFieldsIsBadRequest(t *testing.T) {
	r := newRouter(t, db.NewMemStore(), &fixedSource{pt: upstream()})

	w := doRequest(r, http.MethodPost, "/api/sleep-schedule", `{"date": "2025-01-15"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPrayerTimes_FetchesAndBuffers(t *testing.T) {
	store := db.NewMemStore()
	r := newRouter(t, store, &fixedSource{pt: upstream()})

	// today's date: the post-fetch eviction sweep cuts relative to the wall
	// clock and must not remove the row we are about to assert on
	date := time.Now().Format("2006-01-02")
	w := doRequest(r, http.MethodPost, "/api/prayer-times?date="+date, `{"city": "Tashkent"}`)

	require.Equal(t, http.StatusOK, w.Code)

	var pt model.PrayerTimes
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pt))
	assert.Equal(t, "19:15", pt.Isha)
	assert.Equal(t, "06:45", pt.Sunrise)

	cached, err := store.GetPrayerTimes("Tashkent", date)
	require.NoError(t, err)
	assert.NotNil(t, cached)
}

func TestPrayerTimes_UpstreamFailureIsBadGateway(t *testing.T) {
	r := newRouter(t, db.NewMemStore(), &fixedSource{err: errors.New("offline")})

	w := doRequest(r, http.MethodPost, "/api/prayer-times?date=2025-01-15", `{"city": "Tashkent"}`)

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestFullSchedule_RunsPipelineAndRecordsHistory(t *testing.T) {
	store := db.NewMemStore()
	r := newRouter(t, store, &fixedSource{pt: upstream()})

	w := doRequest(r, http.MethodGet,
		"/api/sleep-schedule/full?latitude=41.3&longitude=69.3&date=2025-01-15", "")

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Location model.Location      `json:"location"`
		Schedule model.SleepSchedule `json:"sleep_schedule"`
		Fallback bool                `json:"fallback"`
		Quote    string              `json:"quote"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Tashkent", resp.Location.City)
	assert.False(t, resp.Fallback)
	assert.Equal(t, "19:45", resp.Schedule.SleepStart)
	assert.NotEmpty(t, resp.Quote)

	history, err := store.ListScheduleHistory("2025-01-15", "2025-01-15")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, resp.Schedule.SleepStart, history[0].SleepStart)
}

func TestFullSchedule_InvalidCoordinatesIsBadRequest(t *testing.T) {
	r := newRouter(t, db.NewMemStore(), &fixedSource{pt: upstream()})

	w := doRequest(r, http.MethodGet, "/api/sleep-schedule/full?latitude=north&longitude=69.3", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTimeUntilSleep_MalformedInputsReturnNullCountdown(t *testing.T) {
	r := newRouter(t, db.NewMemStore(), &fixedSource{pt: upstream()})

	w := doRequest(r, http.MethodPost, "/api/time-until-sleep", `{
		"date": "2025-01-15",
		"sleep_start": "late"
	}`)

	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Nil(t, resp["time_until_sleep"])
	assert.Equal(t, "late", resp["sleep_time"])
}

func TestTimeUntilSleep_ValidInput(t *testing.T) {
	r := newRouter(t, db.NewMemStore(), &fixedSource{pt: upstream()})

	// tomorrow's date keeps the target in the future regardless of wall clock
	body := `{"date": "` + time.Now().AddDate(0, 0, 1).Format("2006-01-02") + `", "sleep_start": "23:59"}`
	w := doRequest(r, http.MethodPost, "/api/time-until-sleep", body)

	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotNil(t, resp["time_until_sleep"])
}

func TestHistory_RequiresRange(t *testing.T) {
	r := newRouter(t, db.NewMemStore(), &fixedSource{pt: upstream()})

	w := doRequest(r, http.MethodGet, "/api/history", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(r, http.MethodGet, "/api/history?from=yesterday&to=2025-01-15", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCacheStats_CountsRows(t *testing.T) {
	store := db.NewMemStore()
	require.NoError(t, store.UpsertPrayerTimes(&model.PrayerTimes{City: "Tashkent", Date: "2025-01-15"}))
	require.NoError(t, store.UpsertPrayerTimes(&model.PrayerTimes{City: "Tashkent", Date: "2025-01-16"}))
	r := newRouter(t, store, &fixedSource{pt: upstream()})

	w := doRequest(r, http.MethodGet, "/api/cache/stats", "")

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Entries int `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Entries)
}

func TestLocationByCity(t *testing.T) {
	r := newRouter(t, db.NewMemStore(), &fixedSource{pt: upstream()})

	w := doRequest(r, http.MethodGet, "/api/location/city/samarqand", "")
	require.Equal(t, http.StatusOK, w.Code)

	var loc model.Location
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &loc))
	assert.Equal(t, "Samarkand", loc.City)
	assert.True(t, loc.Regional)

	w = doRequest(r, http.MethodGet, "/api/location/city/Atlantis", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLocationFromGPS(t *testing.T) {
	r := newRouter(t, db.NewMemStore(), &fixedSource{pt: upstream()})

	w := doRequest(r, http.MethodGet, "/api/location/gps?latitude=41.3&longitude=69.3", "")
	require.Equal(t, http.StatusOK, w.Code)

	var loc model.Location
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &loc))
	assert.Equal(t, "Tashkent", loc.City)

	w = doRequest(r, http.MethodGet, "/api/location/gps?latitude=abc&longitude=69.3", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLocationLast_WithoutRedisIsNotFound(t *testing.T) {
	r := newRouter(t, db.NewMemStore(), &fixedSource{pt: upstream()})

	w := doRequest(r, http.MethodGet, "/api/location/last", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestQuotes(t *testing.T) {
	r := newRouter(t, db.NewMemStore(), &fixedSource{pt: upstream()})

	for _, path := range []string{"/api/quotes/random", "/api/quotes/supportive", "/api/quotes/urgent"} {
		w := doRequest(r, http.MethodGet, path, "")
		require.Equal(t, http.StatusOK, w.Code, path)

		var resp struct {
			Quote string `json:"quote"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Quote, path)
	}
}
