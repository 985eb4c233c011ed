package model

// Location is a resolved place a schedule is computed for. It is supplied by
// the location layer and never mutated afterwards.
type Location struct {
	City      string  `db:"city"      json:"city"`
	Country   string  `db:"country"   json:"country"`
	Latitude  float64 `db:"latitude"  json:"latitude"`
	Longitude float64 `db:"longitude" json:"longitude"`
	Timezone  string  `db:"timezone"  json:"timezone"`
	// Regional marks locations served by the weekly regional timetable.
	Regional bool `json:"regional"`
}
