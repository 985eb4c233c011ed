package location

import (
	"math"
	"strings"

	"github.com/sleepyhq/sleepy/internal/model"
)

const (
	regionalCountry  = "Uzbekistan"
	regionalTimezone = "Asia/Tashkent"
)

// Approximate bounding box of Uzbekistan; GPS fixes inside it are snapped to
// the nearest known city.
const (
	boxLatMin = 37.0
	boxLatMax = 45.5
	boxLonMin = 55.5
	boxLonMax = 73.2
)

// Region is one entry of the regional timetable coverage. Slug is the path
// segment the weekly endpoint expects.
type Region struct {
	Name      string
	Slug      string
	Aliases   []string
	Latitude  float64
	Longitude float64
}

// Registry answers whether a city is served by the regional source and
// resolves city names and coordinates against the known-region table. It
// replaces free-text city matching with a fixed configuration table.
type Registry struct {
	regions []Region
	index   map[string]*Region
}

func NewRegistry(regions []Region) *Registry {
	r := &Registry{regions: regions, index: make(map[string]*Region)}
	for i := range r.regions {
		reg := &r.regions[i]
		r.index[strings.ToLower(reg.Name)] = reg
		for _, a := range reg.Aliases {
			r.index[strings.ToLower(a)] = reg
		}
	}
	return r
}

// DefaultRegistry covers the major Uzbekistan cities the regional provider
// publishes timetables for.
func DefaultRegistry() *Registry {
	return NewRegistry([]Region{
		{Name: "Tashkent", Slug: "toshkent", Aliases: []string{"Toshkent"}, Latitude: 41.2995, Longitude: 69.2401},
		{Name: "Samarkand", Slug: "samarqand", Aliases: []string{"Samarqand"}, Latitude: 39.6542, Longitude: 66.9597},
		{Name: "Bukhara", Slug: "buxoro", Aliases: []string{"Buxoro"}, Latitude: 39.7681, Longitude: 64.4549},
		{Name: "Andijan", Slug: "andijon", Aliases: []string{"Andijon"}, Latitude: 40.7821, Longitude: 72.3442},
		{Name: "Namangan", Slug: "namangan", Latitude: 40.9983, Longitude: 71.6726},
		{Name: "Fergana", Slug: "fargona", Aliases: []string{"Farg'ona", "Fargona"}, Latitude: 40.3864, Longitude: 71.7864},
		{Name: "Nukus", Slug: "nukus", Latitude: 42.4531, Longitude: 59.6103},
		{Name: "Karshi", Slug: "qarshi", Aliases: []string{"Qarshi"}, Latitude: 38.8606, Longitude: 65.7975},
		{Name: "Termez", Slug: "termiz", Aliases: []string{"Termiz"}, Latitude: 37.2242, Longitude: 67.2783},
		{Name: "Urgench", Slug: "urganch", Aliases: []string{"Urganch"}, Latitude: 41.5500, Longitude: 60.6333},
		{Name: "Khiva", Slug: "xiva", Aliases: []string{"Xiva"}, Latitude: 41.3775, Longitude: 60.3639},
		{Name: "Jizzakh", Slug: "jizzax", Aliases: []string{"Jizzax"}, Latitude: 40.1158, Longitude: 67.8422},
		{Name: "Guliston", Slug: "guliston", Latitude: 40.4897, Longitude: 68.7842},
		{Name: "Margilan", Slug: "margilon", Aliases: []string{"Margilon"}, Latitude: 40.4708, Longitude: 71.7247},
	})
}

// Match resolves a city name to a known region, case-insensitively.
func (r *Registry) Match(city string) (*Region, bool) {
	reg, ok := r.index[strings.ToLower(strings.TrimSpace(city))]
	return reg, ok
}

// Eligible reports whether the regional source can serve this location.
func (r *Registry) Eligible(loc model.Location) bool {
	_, ok := r.Match(loc.City)
	return ok
}

// Nearest returns the region closest to the coordinates. Euclidean distance
// on raw degrees is good enough at this scale.
func (r *Registry) Nearest(lat, lon float64) *Region {
	var best *Region
	bestDist := math.Inf(1)
	for i := range r.regions {
		reg := &r.regions[i]
		d := math.Hypot(lat-reg.Latitude, lon-reg.Longitude)
		if d < bestDist {
			bestDist = d
			best = reg
		}
	}
	return best
}

// FromGPS resolves raw coordinates into a Location. Inside the regional
// bounding box the fix snaps to the nearest known city; elsewhere the caller
// gets a generic location (reverse geocoding is out of scope here).
func (r *Registry) FromGPS(lat, lon float64) model.Location {
	inBox := lat >= boxLatMin && lat <= boxLatMax && lon >= boxLonMin && lon <= boxLonMax
	if inBox {
		if reg := r.Nearest(lat, lon); reg != nil {
			return model.Location{
				City:      reg.Name,
				Country:   regionalCountry,
				Latitude:  lat,
				Longitude: lon,
				Timezone:  regionalTimezone,
				Regional:  true,
			}
		}
	}
	return model.Location{
		City:      "Unknown",
		Country:   "Unknown",
		Latitude:  lat,
		Longitude: lon,
		Timezone:  regionalTimezone,
	}
}

// ByName resolves a known city name into a Location.
func (r *Registry) ByName(city string) (model.Location, bool) {
	reg, ok := r.Match(city)
	if !ok {
		return model.Location{}, false
	}
	return model.Location{
		City:      reg.Name,
		Country:   regionalCountry,
		Latitude:  reg.Latitude,
		Longitude: reg.Longitude,
		Timezone:  regionalTimezone,
		Regional:  true,
	}, true
}
