package athan

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sleepyhq/sleepy/internal/model"
)

// aladhanResponse is the subset of the Aladhan timings payload we consume.
type aladhanResponse struct {
	Code   int    `json:"code"`
	Status string `json:"status"`
	Data   struct {
		Timings aladhanTimings `json:"timings"`
	} `json:"data"`
}

type aladhanTimings struct {
	Fajr    string `json:"Fajr"`
	Sunrise string `json:"Sunrise"`
	Dhuhr   string `json:"Dhuhr"`
	Asr     string `json:"Asr"`
	Maghrib string `json:"Maghrib"`
	Isha    string `json:"Isha"`
}

// GeneralSource fetches timetables for arbitrary coordinates from the Aladhan
// API, pinned to a fixed calculation method, jurisprudence school and
// midnight mode.
type GeneralSource struct {
	baseURL      string
	client       *http.Client
	method       int
	school       int
	midnightMode int
}

func NewGeneralSource(baseURL string, timeout time.Duration, method, school, midnightMode int) *GeneralSource {
	return &GeneralSource{
		baseURL:      strings.TrimRight(baseURL, "/"),
		client:       &http.Client{Timeout: timeout},
		method:       method,
		school:       school,
		midnightMode: midnightMode,
	}
}

func (g *GeneralSource) Name() string { return "aladhan" }

func (g *GeneralSource) Fetch(ctx context.Context, loc model.Location, day time.Time) (*model.PrayerTimes, error) {
	// Aladhan wants DD-MM-YYYY in the path.
	endpoint := fmt.Sprintf("%s/timings/%s", g.baseURL, day.Format("02-01-2006"))

	params := url.Values{}
	params.Set("latitude", fmt.Sprintf("%f", loc.Latitude))
	params.Set("longitude", fmt.Sprintf("%f", loc.Longitude))
	params.Set("method", fmt.Sprintf("%d", g.method))
	params.Set("school", fmt.Sprintf("%d", g.school))
	params.Set("midnightMode", fmt.Sprintf("%d", g.midnightMode))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("aladhan request: %w", err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("aladhan fetch: %w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("aladhan fetch: %w: status %d", ErrNetwork, resp.StatusCode)
	}

	var payload aladhanResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("aladhan decode: %w: %v", ErrParse, err)
	}
	if payload.Code != http.StatusOK {
		return nil, fmt.Errorf("aladhan decode: %w: api code %d", ErrParse, payload.Code)
	}

	t := payload.Data.Timings
	pt := &model.PrayerTimes{
		Date:      day.Format("2006-01-02"),
		Fajr:      stripSuffix(t.Fajr),
		Sunrise:   stripSuffix(t.Sunrise),
		Dhuhr:     stripSuffix(t.Dhuhr),
		Asr:       stripSuffix(t.Asr),
		Maghrib:   stripSuffix(t.Maghrib),
		Isha:      stripSuffix(t.Isha),
		City:      loc.City,
		Country:   loc.Country,
		Latitude:  loc.Latitude,
		Longitude: loc.Longitude,
	}
	if pt.Fajr == "" || pt.Isha == "" {
		return nil, fmt.Errorf("aladhan decode: %w: missing timings", ErrParse)
	}
	return pt, nil
}

// stripSuffix drops the timezone tail Aladhan sometimes appends ("05:12 (UTC)").
func stripSuffix(raw string) string {
	s := strings.TrimSpace(raw)
	if idx := strings.Index(s, " "); idx != -1 {
		s = s[:idx]
	}
	return s
}
