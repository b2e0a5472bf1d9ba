package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/salat/internal/model"
	"github.com/verte-zerg/salat/internal/prayer"
	"github.com/verte-zerg/salat/internal/qibla"
	"github.com/verte-zerg/salat/internal/report"
	"github.com/verte-zerg/salat/internal/settings"
	"github.com/verte-zerg/salat/internal/timings"
)

const (
	dateLayout  = "2006-01-02"
	monthLayout = "2006-01"
)

var (
	timesDate string

	nextWatch bool

	qiblaLat float64
	qiblaLng float64

	timetableMonth string
	timetableOut   string
)

func newTimesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "times",
		Short: "Print the prayer times of a day",
		Args:  cobra.NoArgs,
		RunE:  runTimesCmd,
	}
	cmd.Flags().StringVar(&timesDate, "date", "", "date (YYYY-MM-DD, default: today)")
	return cmd
}

func runTimesCmd(cmd *cobra.Command, _ []string) error {
	date := time.Now()
	if timesDate != "" {
		parsed, err := time.ParseInLocation(dateLayout, timesDate, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --date value: %w", err)
		}
		date = parsed
	}

	a, err := openApp(cmd, true)
	if err != nil {
		return err
	}
	defer a.Close()

	day, err := loadDay(cmd.Context(), a, date)
	if err != nil {
		return err
	}
	return report.RenderDay(cmd.OutOrStdout(), day, time.Now())
}

// loadDay fetches the timings of date for the resolved location.
func loadDay(ctx context.Context, a *app, date time.Time) (model.DayTimings, error) {
	loc, err := a.location(ctx)
	if err != nil {
		return model.DayTimings{}, err
	}
	day, stale, err := a.fetcher().Day(ctx, loc, date)
	if err != nil {
		return model.DayTimings{}, fmt.Errorf("failed to load prayer times for %s: %w", timings.Status(loc), err)
	}
	if stale {
		logErrln("Offline: showing cached prayer times")
	}
	return day, nil
}

func newNextCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "next",
		Short: "Print the next prayer and the time left",
		Args:  cobra.NoArgs,
		RunE:  runNextCmd,
	}
	cmd.Flags().BoolVarP(&nextWatch, "watch", "w", false, "keep counting down until interrupted")
	return cmd
}

func runNextCmd(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd, true)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	day, err := loadDay(ctx, a, time.Now())
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if !nextWatch {
		next, ok := prayer.ComputeNext(day.Schedule(), prayer.At(time.Now()))
		if !ok {
			return errors.New("no prayer time could be read from today's schedule")
		}
		_, err := fmt.Fprintln(out, formatNext(next))
		return err
	}

	ticker := prayer.NewTicker(day.Schedule(), func(next prayer.Result, ok bool) {
		line := "no prayer time could be read from today's schedule"
		if ok {
			line = formatNext(next)
		}
		if _, err := fmt.Fprintf(out, "\r%s\033[K", line); err != nil {
			_ = err
		}
	})
	go func() {
		// Pick up the new day's schedule after midnight.
		loaded := time.Now().Format(dateLayout)
		t := time.NewTicker(time.Minute)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-t.C:
				if now.Format(dateLayout) == loaded {
					continue
				}
				fresh, err := loadDay(ctx, a, now)
				if err != nil {
					continue
				}
				loaded = now.Format(dateLayout)
				ticker.Reset(fresh.Schedule())
			}
		}
	}()
	err = ticker.Run(ctx)
	logErrln()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func formatNext(next prayer.Result) string {
	return fmt.Sprintf("%s (%s) at %s, in %s", next.Prayer.Title(), next.Prayer.Arabic(), next.Time, next.Countdown)
}

func newQiblaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "qibla",
		Short: "Print the qibla bearing and distance to the Kaaba",
		Args:  cobra.NoArgs,
		RunE:  runQiblaCmd,
	}
	cmd.Flags().Float64Var(&qiblaLat, "lat", 0, "latitude (default: config or today's timings)")
	cmd.Flags().Float64Var(&qiblaLng, "lng", 0, "longitude (default: config or today's timings)")
	return cmd
}

func runQiblaCmd(cmd *cobra.Command, _ []string) error {
	latSet, lngSet := cmd.Flags().Changed("lat"), cmd.Flags().Changed("lng")
	if latSet != lngSet {
		return errors.New("--lat and --lng must be given together")
	}
	if latSet && (qiblaLat < -90 || qiblaLat > 90 || qiblaLng < -180 || qiblaLng > 180) {
		return errors.New("--lat must be within [-90, 90] and --lng within [-180, 180]")
	}

	a, err := openApp(cmd, true)
	if err != nil {
		return err
	}
	defer a.Close()

	point, err := qiblaPoint(cmd.Context(), a, latSet)
	if err != nil {
		return err
	}
	return report.RenderQibla(cmd.OutOrStdout(), point, qibla.BearingAndDistance(point))
}

func qiblaPoint(ctx context.Context, a *app, fromFlags bool) (qibla.GeoPoint, error) {
	if fromFlags {
		return qibla.GeoPoint{Lat: qiblaLat, Lng: qiblaLng}, nil
	}
	if a.cfg.Location.HasPoint() {
		return qibla.GeoPoint{Lat: *a.cfg.Location.Latitude, Lng: *a.cfg.Location.Longitude}, nil
	}
	day, err := loadDay(ctx, a, time.Now())
	if err != nil {
		return qibla.GeoPoint{}, err
	}
	point, ok := day.Point()
	if !ok {
		return qibla.GeoPoint{}, errors.New("location coordinates unknown; pass --lat and --lng")
	}
	return point, nil
}

func newTimetableCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timetable",
		Short: "Write a month of prayer times to a PDF",
		Args:  cobra.NoArgs,
		RunE:  runTimetableCmd,
	}
	cmd.Flags().StringVar(&timetableMonth, "month", "", "month (YYYY-MM, default: current)")
	cmd.Flags().StringVarP(&timetableOut, "out", "o", "", "output path (default: salat-YYYY-MM.pdf)")
	return cmd
}

func runTimetableCmd(cmd *cobra.Command, _ []string) error {
	month := time.Now()
	if timetableMonth != "" {
		parsed, err := time.ParseInLocation(monthLayout, timetableMonth, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --month value: %w", err)
		}
		month = parsed
	}
	out := timetableOut
	if out == "" {
		out = "salat-" + month.Format(monthLayout) + ".pdf"
	}

	a, err := openApp(cmd, true)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	loc, err := a.location(ctx)
	if err != nil {
		return err
	}
	if strings.TrimSpace(loc.City) == "" || strings.TrimSpace(loc.Country) == "" {
		return errors.New("a timetable needs a city; run: salat location <city> <country>")
	}
	client := timings.NewClient(a.cfg.Location.Method)
	days, err := client.Calendar(ctx, loc.City, loc.Country, month.Year(), month.Month())
	if err != nil {
		return fmt.Errorf("failed to load the %s calendar: %w", month.Format(monthLayout), err)
	}
	title := fmt.Sprintf("Prayer times %s, %s - %s", loc.City, loc.Country, month.Format("January 2006"))
	if err := report.WriteTimetablePDF(out, title, days); err != nil {
		return fmt.Errorf("failed to write timetable: %w", err)
	}
	logErrf("Wrote %s\n", out)
	return nil
}

func newLocationCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "location [city country]",
		Short: "Show the location, or pin a city for manual mode",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != 2 {
				return errors.New("expected no arguments or <city> <country>")
			}
			return nil
		},
		RunE: runLocationCmd,
	}
}

func runLocationCmd(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd, true)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	if len(args) == 2 {
		loc := model.Location{
			City:    strings.TrimSpace(args[0]),
			Country: strings.TrimSpace(args[1]),
		}
		if loc.City == "" || loc.Country == "" {
			return errors.New("city and country must not be empty")
		}
		loc.CityArabic, loc.CountryArabic = loc.City, loc.Country
		if err := settings.SaveLocation(ctx, a.kv, loc); err != nil {
			return err
		}
		if err := settings.SetString(ctx, a.kv, settings.KeyCityMode, "manual"); err != nil {
			return err
		}
	}
	loc, err := a.location(ctx)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), timings.Status(loc))
	return err
}
