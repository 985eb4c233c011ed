package athan

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sleepyhq/sleepy/internal/location"
	"github.com/sleepyhq/sleepy/internal/model"
)

// regionalWeek is the weekly batch the regional provider returns for one region.
type regionalWeek struct {
	Region string        `json:"region"`
	Days   []regionalDay `json:"days"`
}

type regionalDay struct {
	Date    string `json:"date"` // YYYY-MM-DD
	Fajr    string `json:"fajr"`
	Sunrise string `json:"sunrise"`
	Dhuhr   string `json:"dhuhr"`
	Asr     string `json:"asr"`
	Maghrib string `json:"maghrib"`
	Isha    string `json:"isha"`
}

// RegionalSource serves the fixed set of regions the weekly timetable covers.
// It fetches the current week's batch and picks the requested day out of it.
type RegionalSource struct {
	baseURL string
	client  *http.Client
	regions *location.Registry
}

func NewRegionalSource(baseURL string, timeout time.Duration, regions *location.Registry) *RegionalSource {
	return &RegionalSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		regions: regions,
	}
}

func (r *RegionalSource) Name() string { return "regional" }

func (r *RegionalSource) Fetch(ctx context.Context, loc model.Location, day time.Time) (*model.PrayerTimes, error) {
	region, ok := r.regions.Match(loc.City)
	if !ok {
		return nil, fmt.Errorf("regional fetch: %w: %q", ErrUnsupportedLocation, loc.City)
	}

	endpoint := fmt.Sprintf("%s/week/%s", r.baseURL, region.Slug)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("regional request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("regional fetch: %w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("regional fetch: %w: status %d", ErrNetwork, resp.StatusCode)
	}

	var week regionalWeek
	if err := json.NewDecoder(resp.Body).Decode(&week); err != nil {
		return nil, fmt.Errorf("regional decode: %w: %v", ErrParse, err)
	}

	want := day.Format("2006-01-02")
	for _, d := range week.Days {
		if d.Date != want {
			continue
		}
		if d.Fajr == "" || d.Isha == "" {
			return nil, fmt.Errorf("regional decode: %w: incomplete day %s", ErrParse, want)
		}
		return &model.PrayerTimes{
			Date:      want,
			Fajr:      d.Fajr,
			Sunrise:   d.Sunrise,
			Dhuhr:     d.Dhuhr,
			Asr:       d.Asr,
			Maghrib:   d.Maghrib,
			Isha:      d.Isha,
			City:      loc.City,
			Country:   loc.Country,
			Latitude:  loc.Latitude,
			Longitude: loc.Longitude,
		}, nil
	}

	// The batch not covering the requested day is treated like an unmapped
	// region: the caller falls through to the general source.
	return nil, fmt.Errorf("regional fetch: %w: no entry for %s", ErrUnsupportedLocation, want)
}
