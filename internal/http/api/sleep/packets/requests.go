package packets

// LocationRequest is the caller-supplied location for a prayer times lookup.
type LocationRequest struct {
	City      string  `json:"city" binding:"required"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`
}

// PrayerTimesRequest carries an already-buffered timetable into the optimizer.
type PrayerTimesRequest struct {
	Date      string  `json:"date" binding:"required"`
	Fajr      string  `json:"fajr" binding:"required"`
	Sunrise   string  `json:"sunrise"`
	Dhuhr     string  `json:"dhuhr"`
	Asr       string  `json:"asr"`
	Maghrib   string  `json:"maghrib"`
	Isha      string  `json:"isha" binding:"required"`
	City      string  `json:"city"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// CountdownRequest asks how long remains until a schedule's sleep start.
type CountdownRequest struct {
	Date       string `json:"date" binding:"required"`
	SleepStart string `json:"sleep_start" binding:"required"`
}
