package packets

import "github.com/sleepyhq/sleepy/internal/model"

type CountdownResponse struct {
	Hours    int  `json:"hours"`
	Minutes  int  `json:"minutes"`
	HasHours bool `json:"has_hours"`
}

// ScheduleResponse is a computed schedule plus whether it came from real
// prayer times or the labeled default.
type ScheduleResponse struct {
	Schedule model.SleepSchedule `json:"schedule"`
	Fallback bool                `json:"fallback"`
	Reason   string              `json:"reason,omitempty"`
}

// FullScheduleResponse bundles everything the mobile client renders.
type FullScheduleResponse struct {
	Location       model.Location      `json:"location"`
	PrayerTimes    model.PrayerTimes   `json:"prayer_times"`
	Schedule       model.SleepSchedule `json:"sleep_schedule"`
	Fallback       bool                `json:"fallback"`
	Reason         string              `json:"reason,omitempty"`
	TimeUntilSleep *CountdownResponse  `json:"time_until_sleep,omitempty"`
	Quote          string              `json:"quote"`
}

type CacheStatsResponse struct {
	Entries int `json:"entries"`
}

type QuoteResponse struct {
	Quote string `json:"quote"`
}
