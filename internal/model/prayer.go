package model

// PrayerTimes holds one day's prayer timetable for a location.
// All time values are HH:MM local civil time; Date is YYYY-MM-DD.
type PrayerTimes struct {
	Date      string  `db:"date"      json:"date"`
	Fajr      string  `db:"fajr"      json:"fajr"`
	Sunrise   string  `db:"sunrise"   json:"sunrise"`
	Dhuhr     string  `db:"dhuhr"     json:"dhuhr"`
	Asr       string  `db:"asr"       json:"asr"`
	Maghrib   string  `db:"maghrib"   json:"maghrib"`
	Isha      string  `db:"isha"      json:"isha"`
	City      string  `db:"city"      json:"city"`
	Country   string  `db:"country"   json:"country"`
	Latitude  float64 `db:"latitude"  json:"latitude"`
	Longitude float64 `db:"longitude" json:"longitude"`
}
