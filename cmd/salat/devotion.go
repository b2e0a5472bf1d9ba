package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/salat/internal/azkar"
	"github.com/verte-zerg/salat/internal/config"
	"github.com/verte-zerg/salat/internal/names"
	"github.com/verte-zerg/salat/internal/quran"
	"github.com/verte-zerg/salat/internal/report"
	"github.com/verte-zerg/salat/internal/settings"
)

const defaultTallyDays = 30

var (
	tasbeehDays int

	azkarAll bool

	quranContinue bool
	quranReverse  bool
)

func newTasbeehCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasbeeh",
		Short: "Tasbeeh counter",
		Args:  cobra.NoArgs,
		RunE:  runTasbeehStatsCmd,
	}
	cmd.Flags().IntVar(&tasbeehDays, "days", defaultTallyDays, "days of history to chart")

	cmd.AddCommand(&cobra.Command{
		Use:   "inc [n]",
		Short: "Add n to the counter (default 1)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runTasbeehIncCmd,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Reset the counter and today's total",
		Args:  cobra.NoArgs,
		RunE:  runTasbeehResetCmd,
	})
	stats := &cobra.Command{
		Use:   "stats",
		Short: "Show totals and daily history",
		Args:  cobra.NoArgs,
		RunE:  runTasbeehStatsCmd,
	}
	stats.Flags().IntVar(&tasbeehDays, "days", defaultTallyDays, "days of history to chart")
	cmd.AddCommand(stats)
	return cmd
}

func runTasbeehIncCmd(cmd *cobra.Command, args []string) error {
	n := 1
	if len(args) == 1 {
		parsed, err := strconv.Atoi(args[0])
		if err != nil || parsed <= 0 {
			return fmt.Errorf("n must be a positive number, got %q", args[0])
		}
		n = parsed
	}

	a, err := openApp(cmd, true)
	if err != nil {
		return err
	}
	defer a.Close()

	counter := a.counter()
	count := 0
	for i := 0; i < n; i++ {
		if count, err = counter.Increment(cmd.Context()); err != nil {
			return fmt.Errorf("failed to save tasbeeh: %w", err)
		}
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), count)
	return err
}

func runTasbeehResetCmd(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd, true)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.counter().ResetToday(cmd.Context()); err != nil {
		return fmt.Errorf("failed to reset tasbeeh: %w", err)
	}
	logErrln("Counter reset")
	return nil
}

func runTasbeehStatsCmd(cmd *cobra.Command, _ []string) error {
	if tasbeehDays < 0 {
		return errors.New("--days must be >= 0")
	}
	a, err := openApp(cmd, true)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	counter := a.counter()
	count, err := counter.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to load tasbeeh: %w", err)
	}
	stats, err := counter.Stats(ctx)
	if err != nil {
		return fmt.Errorf("failed to load tasbeeh: %w", err)
	}
	var since time.Time
	if tasbeehDays > 0 {
		now := time.Now()
		since = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local).AddDate(0, 0, -(tasbeehDays - 1))
	}
	history, err := a.db.ListTally(ctx, since)
	if err != nil {
		return fmt.Errorf("failed to load tasbeeh history: %w", err)
	}
	if tasbeehDays == 0 {
		history = nil
	}

	out := cmd.OutOrStdout()
	if _, err := fmt.Fprintf(out, "Counter  %d\n\n", count); err != nil {
		return err
	}
	return report.RenderTally(out, stats, history, report.TerminalWidth())
}

func newAzkarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "azkar [morning|evening|sleep]",
		Short: "Read the azkar lists",
		Long:  "Print the current dhikr of a list. Custom entries are read from <config dir>/azkar/<type>.txt as \"text|count\" lines.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runAzkarShowCmd,
	}
	cmd.Flags().BoolVar(&azkarAll, "all", false, "print the whole list")
	cmd.AddCommand(&cobra.Command{
		Use:   "next [type]",
		Short: "Advance to the next dhikr",
		Args:  cobra.MaximumNArgs(1),
		RunE:  func(cmd *cobra.Command, args []string) error { return runAzkarStepCmd(cmd, args, 1) },
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "prev [type]",
		Short: "Go back to the previous dhikr",
		Args:  cobra.MaximumNArgs(1),
		RunE:  func(cmd *cobra.Command, args []string) error { return runAzkarStepCmd(cmd, args, -1) },
	})
	return cmd
}

func azkarTypeArg(args []string) (azkar.Type, error) {
	if len(args) == 0 {
		return azkar.TypeAt(time.Now()), nil
	}
	return azkar.ParseType(args[0])
}

func runAzkarShowCmd(cmd *cobra.Command, args []string) error {
	t, err := azkarTypeArg(args)
	if err != nil {
		return err
	}
	list, err := azkar.List(t, config.DefaultAzkarDir())
	if err != nil {
		return fmt.Errorf("failed to load azkar: %w", err)
	}
	out := cmd.OutOrStdout()
	if azkarAll {
		if _, err := fmt.Fprintf(out, "%s  %s\n\n", t.Arabic(), t.Title()); err != nil {
			return err
		}
		for i, d := range list {
			if _, err := fmt.Fprintf(out, "%d. %s  (x%d)\n\n", i+1, d.Text, d.Count); err != nil {
				return err
			}
		}
		return nil
	}

	a, err := openApp(cmd, true)
	if err != nil {
		return err
	}
	defer a.Close()
	idx, err := azkar.NewProgress(a.kv).Index(cmd.Context(), t, len(list))
	if err != nil {
		return err
	}
	return printDhikr(cmd, t, list, idx)
}

func runAzkarStepCmd(cmd *cobra.Command, args []string, delta int) error {
	t, err := azkarTypeArg(args)
	if err != nil {
		return err
	}
	list, err := azkar.List(t, config.DefaultAzkarDir())
	if err != nil {
		return fmt.Errorf("failed to load azkar: %w", err)
	}

	a, err := openApp(cmd, true)
	if err != nil {
		return err
	}
	defer a.Close()
	progress := azkar.NewProgress(a.kv)
	var idx int
	if delta > 0 {
		idx, err = progress.Next(cmd.Context(), t, len(list))
	} else {
		idx, err = progress.Prev(cmd.Context(), t, len(list))
	}
	if err != nil {
		return fmt.Errorf("failed to save azkar progress: %w", err)
	}
	return printDhikr(cmd, t, list, idx)
}

func printDhikr(cmd *cobra.Command, t azkar.Type, list []azkar.Dhikr, idx int) error {
	if len(list) == 0 {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), "This list is empty.")
		return err
	}
	d := list[idx]
	_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s  %d/%d\n\n%s\n\nx%d\n", t.Arabic(), idx+1, len(list), d.Text, d.Count)
	return err
}

func newNamesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "names [query]",
		Short: "List the ninety-nine names, optionally filtered",
		Args:  cobra.ArbitraryArgs,
		RunE:  runNamesCmd,
	}
}

func runNamesCmd(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	list := names.Search(query)
	if len(list) == 0 {
		return fmt.Errorf("no name matches %q", query)
	}
	out := cmd.OutOrStdout()
	for _, n := range list {
		if _, err := fmt.Fprintf(out, "%2d  %s  %s\n", n.Number, n.Arabic, n.Meaning); err != nil {
			return err
		}
	}
	return nil
}

func newQuranCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quran",
		Short: "List surahs or play a recitation",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the surahs",
		Args:  cobra.NoArgs,
		RunE:  runQuranListCmd,
	})
	play := &cobra.Command{
		Use:   "play <surah>",
		Short: "Play a surah with the configured player",
		Args:  cobra.ExactArgs(1),
		RunE:  runQuranPlayCmd,
	}
	play.Flags().BoolVarP(&quranContinue, "continue", "c", false, "keep playing the following surahs")
	play.Flags().BoolVar(&quranReverse, "reverse", false, "with --continue, play the preceding surahs instead")
	cmd.AddCommand(play)
	return cmd
}

func runQuranListCmd(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	for _, s := range quran.All() {
		if _, err := fmt.Fprintf(out, "%3d  %s  %s\n", s.Number, s.Arabic, s.English); err != nil {
			return err
		}
	}
	return nil
}

func runQuranPlayCmd(cmd *cobra.Command, args []string) error {
	number, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("surah must be a number, got %q", args[0])
	}

	a, err := openApp(cmd, true)
	if err != nil {
		return err
	}
	defer a.Close()

	snap, err := settings.Load(cmd.Context(), a.kv)
	if err != nil {
		return err
	}
	if _, err := quran.TrackURL(snap.ReciterServer, number); err != nil {
		return err
	}
	reciter := snap.ReciterName
	if reciter == "" {
		reciter = "reciter"
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	player := &quran.Player{Command: a.cfg.Quran.Player}
	go func() {
		<-ctx.Done()
		player.Stop()
	}()

	step := quran.Next
	if quranReverse {
		step = quran.Prev
	}
	for {
		url, err := quran.TrackURL(snap.ReciterServer, number)
		if err != nil {
			return err
		}
		if err := player.Play(ctx, number, url); err != nil {
			return err
		}
		s := quran.Get(number)
		logErrf("Playing %d. %s (%s) by %s\n", s.Number, s.English, s.Arabic, reciter)
		if err := player.Wait(); err != nil && ctx.Err() == nil {
			return fmt.Errorf("player failed: %w", err)
		}
		if ctx.Err() != nil || !quranContinue {
			return nil
		}
		number = step(number)
	}
}
