// Package server exposes a read-only JSON API for wall displays.
package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/verte-zerg/salat/internal/model"
	"github.com/verte-zerg/salat/internal/prayer"
	"github.com/verte-zerg/salat/internal/qibla"
)

// DayProvider returns the schedule for today.
type DayProvider interface {
	Today(ctx context.Context) (day model.DayTimings, stale bool, err error)
}

// Tally reads tasbeeh counts.
type Tally interface {
	Count(ctx context.Context) (int, error)
	Stats(ctx context.Context) (model.TallyStats, error)
}

type apiError struct {
	Code    int
	Message string
}

type handlerFunc func(c *gin.Context) (any, *apiError)

func resolve(h handlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, apiErr := h(c)
		if apiErr != nil {
			c.JSON(apiErr.Code, gin.H{"error": apiErr.Message})
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// Server serves the display API.
type Server struct {
	days   DayProvider
	tally  Tally
	now    func() time.Time
	engine *gin.Engine
}

// New builds the router. now may be nil.
func New(days DayProvider, tally Tally, now func() time.Time) *Server {
	if now == nil {
		now = time.Now
	}
	gin.SetMode(gin.ReleaseMode)
	s := &Server{days: days, tally: tally, now: now, engine: gin.New()}
	s.engine.Use(gin.Recovery(), displayCORS(), requestLogger())

	api := s.engine.Group("/api")
	api.GET("/health", resolve(s.health))
	api.GET("/day", resolve(s.day))
	api.GET("/next", resolve(s.next))
	api.GET("/qibla", resolve(s.qibla))
	api.GET("/tasbeeh", resolve(s.tasbeeh))
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run listens on addr until ctx is done.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("display API listening")
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// displayCORS lets browser-based displays on any origin read the API.
func displayCORS() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOriginFunc: func(string) bool { return true },
		AllowMethods:    []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowHeaders:    []string{"Origin", "Accept", "If-None-Match"},
		ExposeHeaders:   []string{"Content-Length"},
		MaxAge:          12 * time.Hour,
	})
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("took", time.Since(start)).
			Msg("request")
	}
}

// GET /api/health
func (s *Server) health(*gin.Context) (any, *apiError) {
	return gin.H{"status": "ok"}, nil
}

type dayResponse struct {
	Date     string `json:"date"`
	Hijri    string `json:"hijri"`
	City     string `json:"city"`
	Country  string `json:"country"`
	Timezone string `json:"timezone,omitempty"`
	Fajr     string `json:"fajr"`
	Sunrise  string `json:"sunrise"`
	Dhuhr    string `json:"dhuhr"`
	Asr      string `json:"asr"`
	Maghrib  string `json:"maghrib"`
	Isha     string `json:"isha"`
	Stale    bool   `json:"stale"`
}

// GET /api/day
func (s *Server) day(c *gin.Context) (any, *apiError) {
	day, stale, apiErr := s.loadDay(c)
	if apiErr != nil {
		return nil, apiErr
	}
	return dayResponse{
		Date:     day.Gregorian,
		Hijri:    day.HijriText,
		City:     day.City,
		Country:  day.Country,
		Timezone: day.Timezone,
		Fajr:     day.Fajr,
		Sunrise:  day.Sunrise,
		Dhuhr:    day.Dhuhr,
		Asr:      day.Asr,
		Maghrib:  day.Maghrib,
		Isha:     day.Isha,
		Stale:    stale,
	}, nil
}

type nextResponse struct {
	Prayer      string `json:"prayer"`
	Arabic      string `json:"arabic"`
	Time        string `json:"time"`
	DiffSeconds int    `json:"diff_seconds"`
	DiffMinutes int    `json:"diff_minutes"`
	Countdown   string `json:"countdown"`
}

// GET /api/next
func (s *Server) next(c *gin.Context) (any, *apiError) {
	day, _, apiErr := s.loadDay(c)
	if apiErr != nil {
		return nil, apiErr
	}
	next, ok := prayer.ComputeNext(day.Schedule(), prayer.At(s.now()))
	if !ok {
		return nil, &apiError{Code: http.StatusNotFound, Message: "no parseable prayer times"}
	}
	return nextResponse{
		Prayer:      next.Name(),
		Arabic:      next.Prayer.Arabic(),
		Time:        next.Time,
		DiffSeconds: next.DiffSeconds,
		DiffMinutes: next.DiffMinutes,
		Countdown:   next.Countdown,
	}, nil
}

type qiblaResponse struct {
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	BearingDeg float64 `json:"bearing_deg"`
	Cardinal   string  `json:"cardinal"`
	DistanceKm float64 `json:"distance_km"`
}

// GET /api/qibla?lat=&lng=
// Without coordinates the point reported with today's timings is used.
func (s *Server) qibla(c *gin.Context) (any, *apiError) {
	var point qibla.GeoPoint
	latRaw, lngRaw := c.Query("lat"), c.Query("lng")
	if latRaw != "" || lngRaw != "" {
		lat, err := strconv.ParseFloat(latRaw, 64)
		if err != nil || lat < -90 || lat > 90 {
			return nil, &apiError{Code: http.StatusBadRequest, Message: "lat must be a number between -90 and 90"}
		}
		lng, err := strconv.ParseFloat(lngRaw, 64)
		if err != nil || lng < -180 || lng > 180 {
			return nil, &apiError{Code: http.StatusBadRequest, Message: "lng must be a number between -180 and 180"}
		}
		point = qibla.GeoPoint{Lat: lat, Lng: lng}
	} else {
		day, _, apiErr := s.loadDay(c)
		if apiErr != nil {
			return nil, apiErr
		}
		p, ok := day.Point()
		if !ok {
			return nil, &apiError{Code: http.StatusNotFound, Message: "location coordinates unknown"}
		}
		point = p
	}
	res := qibla.BearingAndDistance(point)
	return qiblaResponse{
		Latitude:   point.Lat,
		Longitude:  point.Lng,
		BearingDeg: res.BearingDeg,
		Cardinal:   qibla.Cardinal(res.BearingDeg),
		DistanceKm: res.DistanceKm,
	}, nil
}

type tasbeehResponse struct {
	Count int `json:"count"`
	Today int `json:"today"`
	Week  int `json:"week"`
	Month int `json:"month"`
}

// GET /api/tasbeeh
func (s *Server) tasbeeh(c *gin.Context) (any, *apiError) {
	ctx := c.Request.Context()
	count, err := s.tally.Count(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to read tasbeeh count")
		return nil, &apiError{Code: http.StatusInternalServerError, Message: "could not read tasbeeh"}
	}
	stats, err := s.tally.Stats(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to read tasbeeh stats")
		return nil, &apiError{Code: http.StatusInternalServerError, Message: "could not read tasbeeh"}
	}
	return tasbeehResponse{Count: count, Today: stats.Today, Week: stats.Week, Month: stats.Month}, nil
}

func (s *Server) loadDay(c *gin.Context) (model.DayTimings, bool, *apiError) {
	day, stale, err := s.days.Today(c.Request.Context())
	if err != nil {
		log.Warn().Err(err).Msg("failed to load today's timings")
		return model.DayTimings{}, false, &apiError{Code: http.StatusServiceUnavailable, Message: "prayer times unavailable"}
	}
	return day, stale, nil
}
