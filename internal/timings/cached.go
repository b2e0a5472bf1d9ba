package timings

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/verte-zerg/salat/internal/model"
)

// DayCache persists fetched days.
type DayCache interface {
	SaveDay(ctx context.Context, day model.DayTimings) error
	LoadDay(ctx context.Context, date time.Time, city, country string) (model.DayTimings, bool, error)
}

// Fetcher resolves a location into one day's timings, falling back to the
// cache when the source fails.
type Fetcher struct {
	Source Source
	Cache  DayCache
}

// Day fetches timings for loc on date. Stale is true when the result came
// from the cache after a failed fetch.
func (f Fetcher) Day(ctx context.Context, loc model.Location, date time.Time) (day model.DayTimings, stale bool, err error) {
	if !loc.Known() {
		return model.DayTimings{}, false, fmt.Errorf("%w: location is not set", ErrNotFound)
	}
	city, country := cacheKey(loc)
	if loc.Point != nil {
		day, err = f.Source.ByCoordinates(ctx, *loc.Point, date)
		if err == nil && day.City == "" {
			day.City, day.Country = city, country
		}
	} else {
		day, err = f.Source.ByCity(ctx, loc.City, loc.Country, date)
	}
	if err == nil {
		if f.Cache != nil {
			if cerr := f.Cache.SaveDay(ctx, day); cerr != nil {
				log.Warn().Err(cerr).Msg("failed to cache day")
			}
		}
		return day, false, nil
	}

	log.Warn().Err(err).Str("city", city).Msg("timings fetch failed")
	if f.Cache == nil {
		return model.DayTimings{}, false, fmt.Errorf("failed to load prayer times: %w", err)
	}
	cached, ok, cerr := f.Cache.LoadDay(ctx, date, city, country)
	if cerr != nil || !ok {
		return model.DayTimings{}, false, fmt.Errorf("failed to load prayer times: %w", err)
	}
	return cached, true, nil
}

// cacheKey names the place a day is cached under. Coordinates without a
// city are keyed by their rounded latitude and longitude.
func cacheKey(loc model.Location) (city, country string) {
	if loc.City != "" || loc.Point == nil {
		return loc.City, loc.Country
	}
	return fmt.Sprintf("%.4f", loc.Point.Lat), fmt.Sprintf("%.4f", loc.Point.Lng)
}
