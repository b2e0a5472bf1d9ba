package timings

import (
	"strings"

	"github.com/verte-zerg/salat/internal/config"
	"github.com/verte-zerg/salat/internal/model"
	"github.com/verte-zerg/salat/internal/qibla"
)

// Arabic names for the fallback city.
const (
	DefaultCityArabic    = "مكة المكرمة"
	DefaultCountryArabic = "السعودية"
)

// ResolveLocation picks the lookup location. Manual mode uses the configured
// city. Auto mode prefers configured coordinates, then the last resolved
// city, then Makkah.
func ResolveLocation(cfg config.Location, last model.Location) model.Location {
	loc := model.Location{Method: cfg.Method}
	if cfg.HasPoint() {
		loc.Point = &qibla.GeoPoint{Lat: *cfg.Latitude, Lng: *cfg.Longitude}
	}

	if cfg.Mode == "manual" {
		loc.City = strings.TrimSpace(cfg.City)
		loc.Country = strings.TrimSpace(cfg.Country)
		loc.CityArabic = loc.City
		loc.CountryArabic = loc.Country
		return loc
	}

	if loc.Point != nil {
		loc.City = last.City
		loc.Country = last.Country
		loc.CityArabic = last.CityArabic
		loc.CountryArabic = last.CountryArabic
		return loc
	}

	if strings.TrimSpace(last.City) != "" && strings.TrimSpace(last.Country) != "" {
		loc.City = last.City
		loc.Country = last.Country
		loc.CityArabic = firstNonBlank(last.CityArabic, last.City)
		loc.CountryArabic = firstNonBlank(last.CountryArabic, last.Country)
		return loc
	}

	loc.City = config.DefaultCity
	loc.Country = config.DefaultCountry
	loc.CityArabic = DefaultCityArabic
	loc.CountryArabic = DefaultCountryArabic
	return loc
}

// Status is the one-line location description shown to the user.
func Status(loc model.Location) string {
	switch {
	case loc.City != "" && loc.Country != "":
		return "Location: " + loc.City + ", " + loc.Country
	case loc.Point != nil:
		return "Location: coordinates"
	default:
		return "Location not set yet; configure [location] or run `salat config`"
	}
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
