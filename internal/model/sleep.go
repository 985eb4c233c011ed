package model

// SleepSchedule is the computed sleep window for one night. SleepStart and
// SleepEnd are HH:MM; SleepEnd falls on the morning after Date.
type SleepSchedule struct {
	Date          string  `db:"date"           json:"date"`
	SleepStart    string  `db:"sleep_start"    json:"sleep_start"`
	SleepEnd      string  `db:"sleep_end"      json:"sleep_end"`
	DurationHours float64 `db:"duration_hours" json:"duration_hours"`
	IshaTime      string  `db:"isha_time"      json:"isha_time"`
	FajrTime      string  `db:"fajr_time"      json:"fajr_time"`
	Annotation    string  `db:"annotation"     json:"annotation"`
	Notes         string  `db:"notes"          json:"notes"`
}

// Countdown is the remaining time until a schedule's sleep start. HasHours
// lets the presentation layer pick an hour-less format without re-deriving it.
type Countdown struct {
	Hours    int  `json:"hours"`
	Minutes  int  `json:"minutes"`
	HasHours bool `json:"has_hours"`
}
