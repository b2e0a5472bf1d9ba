package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/salat/internal/alarm"
	"github.com/verte-zerg/salat/internal/model"
	"github.com/verte-zerg/salat/internal/notify"
	"github.com/verte-zerg/salat/internal/prayer"
	"github.com/verte-zerg/salat/internal/report"
	"github.com/verte-zerg/salat/internal/server"
	"github.com/verte-zerg/salat/internal/settings"
)

const (
	defaultFireLimit = 20

	// cachedDaysKept bounds the offline day cache.
	cachedDaysKept = 62

	fireClockLayout = "2006-01-02 15:04"
)

var (
	alarmsFireLimit int

	daemonInexact bool
	planNext      bool

	serveAddr string
)

func newSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change stored settings",
		Args:  cobra.NoArgs,
		RunE:  runSettingsListCmd,
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List every setting",
		Args:  cobra.NoArgs,
		RunE:  runSettingsListCmd,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "get <key>",
		Short: "Print one setting",
		Args:  cobra.ExactArgs(1),
		RunE:  runSettingsGetCmd,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change one setting",
		Args:  cobra.ExactArgs(2),
		RunE:  runSettingsSetCmd,
	})
	return cmd
}

func runSettingsListCmd(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd, true)
	if err != nil {
		return err
	}
	defer a.Close()

	defs := settings.Definitions()
	rows := make([][]string, 0, len(defs))
	for _, def := range defs {
		value, err := settings.Get(cmd.Context(), a.kv, def.Key)
		if err != nil {
			return err
		}
		rows = append(rows, []string{def.Key, value, def.Kind.String()})
	}
	return report.RenderSettings(cmd.OutOrStdout(), rows)
}

func runSettingsGetCmd(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd, true)
	if err != nil {
		return err
	}
	defer a.Close()

	value, err := settings.Get(cmd.Context(), a.kv, args[0])
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), value)
	return err
}

func runSettingsSetCmd(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd, true)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := settings.Set(cmd.Context(), a.kv, args[0], args[1]); err != nil {
		return err
	}
	logErrf("Set %s\n", args[0])
	return nil
}

func newAlarmsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alarms",
		Short: "Inspect and plan reminders",
		Args:  cobra.NoArgs,
		RunE:  runAlarmsListCmd,
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List registered alarms",
		Args:  cobra.NoArgs,
		RunE:  runAlarmsListCmd,
	})
	fires := &cobra.Command{
		Use:   "fires",
		Short: "Show recently fired alarms",
		Args:  cobra.NoArgs,
		RunE:  runAlarmsFiresCmd,
	}
	fires.Flags().IntVar(&alarmsFireLimit, "limit", defaultFireLimit, "number of records")
	cmd.AddCommand(fires)
	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove every registered alarm",
		Args:  cobra.NoArgs,
		RunE:  runAlarmsClearCmd,
	})
	plan := &cobra.Command{
		Use:   "plan",
		Short: "Register today's adhans and azkar reminders",
		Args:  cobra.NoArgs,
		RunE:  runAlarmsPlanCmd,
	}
	plan.Flags().BoolVar(&daemonInexact, "inexact", false, "register inexact alarms only")
	plan.Flags().BoolVar(&planNext, "next", false, "register only the upcoming adhan instead of the day")
	cmd.AddCommand(plan)
	return cmd
}

func runAlarmsListCmd(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd, true)
	if err != nil {
		return err
	}
	defer a.Close()

	tasks, err := a.db.ListAlarms(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list alarms: %w", err)
	}
	return report.RenderAlarms(cmd.OutOrStdout(), tasks)
}

func runAlarmsFiresCmd(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd, true)
	if err != nil {
		return err
	}
	defer a.Close()

	fires, err := a.db.ListFires(cmd.Context(), alarmsFireLimit)
	if err != nil {
		return fmt.Errorf("failed to list alarm fires: %w", err)
	}
	return report.RenderFires(cmd.OutOrStdout(), fires)
}

func runAlarmsClearCmd(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd, true)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.db.ClearAlarms(cmd.Context()); err != nil {
		return fmt.Errorf("failed to clear alarms: %w", err)
	}
	logErrln("Alarms cleared")
	return nil
}

func runAlarmsPlanCmd(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd, true)
	if err != nil {
		return err
	}
	defer a.Close()

	planner, err := a.planner()
	if err != nil {
		return err
	}
	if planNext {
		err = planNextAdhan(cmd.Context(), a, planner)
	} else {
		err = replan(cmd.Context(), a, planner)
	}
	if err != nil {
		return err
	}
	tasks, err := a.db.ListAlarms(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list alarms: %w", err)
	}
	return report.RenderAlarms(cmd.OutOrStdout(), tasks)
}

func (a *app) planner() (alarm.Planner, error) {
	sleepAt, ok := prayer.ParseClock(a.cfg.Alarms.SleepReminder)
	if !ok {
		return alarm.Planner{}, fmt.Errorf("invalid sleep reminder %q, expected HH:MM", a.cfg.Alarms.SleepReminder)
	}
	return alarm.Planner{
		Scheduler: alarm.Local{Store: a.db, Exact: !daemonInexact},
		Settings:  a.kv,
		SleepAt:   sleepAt,
	}, nil
}

// replan registers the reminders of today's schedule.
func replan(ctx context.Context, a *app, planner alarm.Planner) error {
	day, err := plannedDay(ctx, a)
	if err != nil {
		return err
	}
	now := time.Now()
	if err := planDay(ctx, planner, day, now); err != nil {
		return err
	}
	if n, err := a.db.PruneDays(ctx, now.AddDate(0, 0, -cachedDaysKept)); err != nil {
		log.Warn().Err(err).Msg("failed to prune cached days")
	} else if n > 0 {
		log.Debug().Int64("days", n).Msg("pruned cached days")
	}
	return nil
}

// planNextAdhan registers only the upcoming adhan at the next-adhan code.
func planNextAdhan(ctx context.Context, a *app, planner alarm.Planner) error {
	day, err := plannedDay(ctx, a)
	if err != nil {
		return err
	}
	task, ok, err := planner.PlanNextOnly(ctx, day, time.Now())
	if err != nil {
		return fmt.Errorf("failed to plan next adhan: %w", err)
	}
	if ok {
		logErrf("Next adhan at %s\n", task.FireAt.Format(fireClockLayout))
	}
	return nil
}

func plannedDay(ctx context.Context, a *app) (model.DayTimings, error) {
	day, stale, err := a.today().Today(ctx)
	if err != nil {
		return model.DayTimings{}, fmt.Errorf("failed to load prayer times: %w", err)
	}
	if stale {
		log.Warn().Msg("planning from cached prayer times")
	}
	if day.Schedule().Empty() {
		return model.DayTimings{}, fmt.Errorf("no prayer time could be read for %s", day.Date.Format(dateLayout))
	}
	return day, nil
}

// planDay registers the daily adhans, early reminders and azkar. The
// next-adhan task stays out since it would repeat one of the adhans.
func planDay(ctx context.Context, planner alarm.Planner, day model.DayTimings, now time.Time) error {
	if err := planner.Plan(ctx, day, now); err != nil {
		return fmt.Errorf("failed to plan alarms: %w", err)
	}
	return nil
}

func newDaemonCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "daemon",
		Short: "Run the reminder daemon in the foreground",
		Args:  cobra.NoArgs,
		RunE:  runDaemonCmd,
	}
	cmd.Flags().BoolVar(&daemonInexact, "inexact", false, "register inexact alarms only")
	return cmd
}

func runDaemonCmd(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd, true)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	planner, err := a.planner()
	if err != nil {
		return err
	}
	s := a.notifiers()
	adhan := alarm.AdhanHandler{Settings: a.kv, Notifier: s.notifier, Audio: s.audio, Buzzer: s.buzzer}
	azkarHandler := alarm.AzkarHandler{Settings: a.kv, Notifier: s.notifier}

	// planned is the date of the last successful plan; the minute loop
	// retries until it matches today.
	var mu sync.Mutex
	planned := ""
	plan := func(ctx context.Context) {
		mu.Lock()
		defer mu.Unlock()
		if err := replan(ctx, a, planner); err != nil {
			log.Warn().Err(err).Msg("re-plan failed")
			return
		}
		planned = time.Now().Format(dateLayout)
	}
	plan(ctx)

	go func() {
		t := time.NewTicker(time.Minute)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-t.C:
				mu.Lock()
				due := planned != now.Format(dateLayout)
				mu.Unlock()
				if due {
					plan(ctx)
				}
			}
		}
	}()

	runner := &alarm.Runner{
		Queue: a.db,
		Handlers: map[model.AlarmKind]alarm.Handler{
			model.AlarmAdhan: adhan,
			model.AlarmAzkar: azkarHandler,
		},
		OnFired: func(ctx context.Context, fire model.AlarmFire) {
			ev := log.Info()
			if fire.Err != "" {
				ev = log.Warn().Str("error", fire.Err)
			}
			ev.Int("code", fire.Code).Str("kind", string(fire.Kind)).Dur("late", fire.Late).Msg("alarm fired")
			plan(ctx)
		},
	}
	log.Info().Bool("exact", !daemonInexact).Msg("daemon started")
	if err := runner.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info().Msg("daemon stopped")
	return nil
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the read-only JSON API for displays",
		Args:  cobra.NoArgs,
		RunE:  runServeCmd,
	}
	cmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")
	return cmd
}

func runServeCmd(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd, true)
	if err != nil {
		return err
	}
	defer a.Close()

	applyStringConfig(cmd, "addr", &serveAddr, &a.cfg.Server.Addr)
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(a.today(), a.counter(), nil)
	if err := srv.Run(ctx, serveAddr); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("display API failed: %w", err)
	}
	return nil
}

func newNotifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "notify-test",
		Short: "Send a test reminder through every configured sink",
		Args:  cobra.NoArgs,
		RunE:  runNotifyTestCmd,
	}
}

func runNotifyTestCmd(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd, true)
	if err != nil {
		return err
	}
	defer a.Close()

	s := a.notifiers()
	msg := notify.Message{
		Kind:    notify.KindTest,
		Title:   "salat",
		Body:    "Notifications are working",
		At:      time.Now(),
		Vibrate: 600 * time.Millisecond,
	}
	if err := s.notifier.Notify(cmd.Context(), msg); err != nil {
		return fmt.Errorf("some sinks failed: %w", err)
	}
	return nil
}
