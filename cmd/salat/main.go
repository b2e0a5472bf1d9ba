// Package main provides the CLI entrypoint for salat.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/salat/internal/azkar"
	"github.com/verte-zerg/salat/internal/config"
	"github.com/verte-zerg/salat/internal/settings"
	"github.com/verte-zerg/salat/internal/tui"
)

var (
	rootTheme   string
	rootCity    string
	rootCountry string
	rootMethod  int
	rootVerbose bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "salat",
		Short:         "Prayer times, qibla, tasbeeh and azkar in the terminal",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runDashboardCmd,
	}

	rootCmd.PersistentFlags().StringVar(&rootCity, "city", "", "city for a manual location")
	rootCmd.PersistentFlags().StringVar(&rootCountry, "country", "", "country for a manual location")
	rootCmd.PersistentFlags().IntVar(&rootMethod, "method", config.DefaultMethod, "Al Adhan calculation method")
	rootCmd.PersistentFlags().BoolVarP(&rootVerbose, "verbose", "v", false, "debug logging")
	rootCmd.Flags().StringVar(&rootTheme, "theme", config.DefaultTheme, "dashboard theme")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newTimesCmd())
	rootCmd.AddCommand(newNextCmd())
	rootCmd.AddCommand(newQiblaCmd())
	rootCmd.AddCommand(newTimetableCmd())
	rootCmd.AddCommand(newLocationCmd())
	rootCmd.AddCommand(newTasbeehCmd())
	rootCmd.AddCommand(newAzkarCmd())
	rootCmd.AddCommand(newNamesCmd())
	rootCmd.AddCommand(newQuranCmd())
	rootCmd.AddCommand(newSettingsCmd())
	rootCmd.AddCommand(newAlarmsCmd())
	rootCmd.AddCommand(newDaemonCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newNotifyCmd())

	return rootCmd
}

func runDashboardCmd(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd, false)
	if err != nil {
		return err
	}
	defer a.Close()

	// The stored theme is seeded from the file and may be changed with
	// `salat settings set theme_name`.
	snap, err := settings.Load(cmd.Context(), a.kv)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	applyStringConfig(cmd, "theme", &rootTheme, &snap.ThemeName)
	if !validTheme(rootTheme) {
		return fmt.Errorf("--theme must be one of %s", strings.Join(config.Themes, ", "))
	}

	loc, err := a.location(cmd.Context())
	if err != nil {
		return err
	}
	model := tui.NewModel(tui.Options{
		Days:     a.today(),
		Tasbeeh:  a.counter(),
		Progress: azkar.NewProgress(a.kv),
		AzkarDir: config.DefaultAzkarDir(),
		Location: loc,
		Theme:    rootTheme,
	})
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(config.Template()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func validTheme(name string) bool {
	for _, t := range config.Themes {
		if t == name {
			return true
		}
	}
	return false
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
