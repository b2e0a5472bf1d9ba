// Package timings fetches daily prayer times from the Al Adhan API.
package timings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/verte-zerg/salat/internal/model"
	"github.com/verte-zerg/salat/internal/qibla"
)

// DefaultBaseURL is the public Al Adhan endpoint.
const DefaultBaseURL = "https://api.aladhan.com/v1"

const requestDateLayout = "02-01-2006"

// ErrNotFound reports a lookup the API could not resolve.
var ErrNotFound = errors.New("timings not found")

// Source provides prayer timings for a day or a month.
type Source interface {
	ByCity(ctx context.Context, city, country string, date time.Time) (model.DayTimings, error)
	ByCoordinates(ctx context.Context, point qibla.GeoPoint, date time.Time) (model.DayTimings, error)
	Calendar(ctx context.Context, city, country string, year int, month time.Month) ([]model.DayTimings, error)
}

// Client talks to the Al Adhan HTTP API.
type Client struct {
	BaseURL string
	Method  int
	HTTP    *http.Client
}

// NewClient builds a client for the given calculation method.
func NewClient(method int) *Client {
	return &Client{
		BaseURL: DefaultBaseURL,
		Method:  method,
		HTTP:    &http.Client{Timeout: 20 * time.Second},
	}
}

// ByCity fetches a day's timings for a city and country.
func (c *Client) ByCity(ctx context.Context, city, country string, date time.Time) (model.DayTimings, error) {
	query := url.Values{}
	query.Set("city", city)
	query.Set("country", country)
	var resp response
	if err := c.get(ctx, "/timingsByCity/"+date.Format(requestDateLayout), query, &resp); err != nil {
		return model.DayTimings{}, err
	}
	if err := checkCode(resp.Code, resp.Status); err != nil {
		return model.DayTimings{}, err
	}
	day := toDay(resp.Data, date)
	day.City = city
	day.Country = country
	return day, nil
}

// ByCoordinates fetches a day's timings for a point.
func (c *Client) ByCoordinates(ctx context.Context, point qibla.GeoPoint, date time.Time) (model.DayTimings, error) {
	query := url.Values{}
	query.Set("latitude", strconv.FormatFloat(point.Lat, 'f', 6, 64))
	query.Set("longitude", strconv.FormatFloat(point.Lng, 'f', 6, 64))
	var resp response
	if err := c.get(ctx, "/timings/"+date.Format(requestDateLayout), query, &resp); err != nil {
		return model.DayTimings{}, err
	}
	if err := checkCode(resp.Code, resp.Status); err != nil {
		return model.DayTimings{}, err
	}
	return toDay(resp.Data, date), nil
}

// Calendar fetches every day of a month for a city and country.
func (c *Client) Calendar(ctx context.Context, city, country string, year int, month time.Month) ([]model.DayTimings, error) {
	query := url.Values{}
	query.Set("city", city)
	query.Set("country", country)
	var resp calendarResponse
	path := fmt.Sprintf("/calendarByCity/%d/%d", year, int(month))
	if err := c.get(ctx, path, query, &resp); err != nil {
		return nil, err
	}
	if err := checkCode(resp.Code, resp.Status); err != nil {
		return nil, err
	}
	days := make([]model.DayTimings, 0, len(resp.Data))
	for i, entry := range resp.Data {
		fallback := time.Date(year, month, i+1, 0, 0, 0, 0, time.Local)
		day := toDay(entry, fallback)
		day.City = city
		day.Country = country
		days = append(days, day)
	}
	return days, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	if c.Method > 0 {
		query.Set("method", strconv.Itoa(c.Method))
	}
	endpoint := strings.TrimRight(c.BaseURL, "/") + path + "?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	client := c.HTTP
	if client == nil {
		client = http.DefaultClient
	}
	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	log.Debug().Str("path", path).Int("status", resp.StatusCode).Dur("took", time.Since(start)).Msg("timings request")

	switch {
	case resp.StatusCode == http.StatusNotFound, resp.StatusCode == http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrNotFound, resp.Status)
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("unexpected timings status: %s", resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode timings response: %w", err)
	}
	return nil
}

func checkCode(code int, status string) error {
	if code == http.StatusOK {
		return nil
	}
	if code == http.StatusNotFound || code == http.StatusBadRequest {
		return fmt.Errorf("%w: %s", ErrNotFound, status)
	}
	return fmt.Errorf("unexpected timings code %d: %s", code, status)
}

func toDay(d data, fallback time.Time) model.DayTimings {
	date := fallback
	if parsed, err := time.ParseInLocation(requestDateLayout, d.Date.Gregorian.Date, time.Local); err == nil {
		date = parsed
	}
	return model.DayTimings{
		Date:      time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.Local),
		Gregorian: d.Date.Gregorian.Date,
		Hijri:     d.Date.Hijri.Date,
		HijriText: d.Date.Hijri.text(),
		Fajr:      stripZone(d.Timings.Fajr),
		Sunrise:   stripZone(d.Timings.Sunrise),
		Dhuhr:     stripZone(d.Timings.Dhuhr),
		Asr:       stripZone(d.Timings.Asr),
		Maghrib:   stripZone(d.Timings.Maghrib),
		Isha:      stripZone(d.Timings.Isha),
		Latitude:  d.Meta.Latitude,
		Longitude: d.Meta.Longitude,
		Timezone:  d.Meta.Timezone,
		Method:    d.Meta.Method.Name,
	}
}

// stripZone drops a trailing " (XXX)" zone label.
func stripZone(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, ' '); i >= 0 {
		return s[:i]
	}
	return s
}
