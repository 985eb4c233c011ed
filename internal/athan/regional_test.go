package athan_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sleepyhq/sleepy/internal/athan"
)

const regionalWeekBody = `{
	"region": "toshkent",
	"days": [
		{"date": "2025-01-14", "fajr": "05:28", "sunrise": "06:58", "dhuhr": "12:14", "asr": "14:59", "maghrib": "17:29", "isha": "18:59"},
		{"date": "2025-01-15", "fajr": "05:30", "sunrise": "07:00", "dhuhr": "12:15", "asr": "15:00", "maghrib": "17:30", "isha": "19:00"},
		{"date": "2025-01-16", "fajr": "05:31", "sunrise": "07:01", "dhuhr": "12:16", "asr": "15:01", "maghrib": "17:31", "isha": "19:01"}
	]
}`

func TestRegionalSource_PicksRequestedDayFromWeeklyBatch(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(regionalWeekBody))
	}))
	defer srv.Close()

	src := athan.NewRegionalSource(srv.URL, 15*time.Second, testRegistry())
	pt, err := src.Fetch(context.Background(), tashkent(), testDay)
	require.NoError(t, err)

	assert.Equal(t, "/week/toshkent", gotPath)
	assert.Equal(t, "2025-01-15", pt.Date)
	assert.Equal(t, "05:30", pt.Fajr)
	assert.Equal(t, "19:00", pt.Isha)
	assert.Equal(t, "Tashkent", pt.City)
}

func TestRegionalSource_AliasResolvesToSameSlug(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(regionalWeekBody))
	}))
	defer srv.Close()

	src := athan.NewRegionalSource(srv.URL, 15*time.Second, testRegistry())
	loc := tashkent()
	loc.City = "toshkent"
	_, err := src.Fetch(context.Background(), loc, testDay)
	require.NoError(t, err)
	assert.Equal(t, "/week/toshkent", gotPath)
}

func TestRegionalSource_UnknownCitySkipsNetwork(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	src := athan.NewRegionalSource(srv.URL, 15*time.Second, testRegistry())
	loc := tashkent()
	loc.City = "Istanbul"
	_, err := src.Fetch(context.Background(), loc, testDay)
	require.Error(t, err)
	assert.ErrorIs(t, err, athan.ErrUnsupportedLocation)
	assert.False(t, called)
}

func TestRegionalSource_DayOutsideBatchIsUnsupported(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(regionalWeekBody))
	}))
	defer srv.Close()

	src := athan.NewRegionalSource(srv.URL, 15*time.Second, testRegistry())
	_, err := src.Fetch(context.Background(), tashkent(), testDay.AddDate(0, 0, 10))
	require.Error(t, err)
	assert.ErrorIs(t, err, athan.ErrUnsupportedLocation)
}

func TestRegionalSource_ServerErrorIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	src := athan.NewRegionalSource(srv.URL, 15*time.Second, testRegistry())
	_, err := src.Fetch(context.Background(), tashkent(), testDay)
	require.Error(t, err)
	assert.ErrorIs(t, err, athan.ErrNetwork)
}

func TestRegionalSource_IncompleteDayIsParseError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"region": "toshkent", "days": [{"date": "2025-01-15", "fajr": "05:30"}]}`))
	}))
	defer srv.Close()

	src := athan.NewRegionalSource(srv.URL, 15*time.Second, testRegistry())
	_, err := src.Fetch(context.Background(), tashkent(), testDay)
	require.Error(t, err)
	assert.ErrorIs(t, err, athan.ErrParse)
}
