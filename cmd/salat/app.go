package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/salat/internal/config"
	"github.com/verte-zerg/salat/internal/kv"
	"github.com/verte-zerg/salat/internal/logging"
	"github.com/verte-zerg/salat/internal/model"
	"github.com/verte-zerg/salat/internal/notify"
	"github.com/verte-zerg/salat/internal/settings"
	"github.com/verte-zerg/salat/internal/store"
	"github.com/verte-zerg/salat/internal/tasbeeh"
	"github.com/verte-zerg/salat/internal/timings"
)

const (
	connectTimeout = 10 * time.Second
	commandTimeout = 30 * time.Second
	adhanTimeout   = 10 * time.Minute
)

// app holds the resources shared by subcommands.
type app struct {
	cfg config.Config
	db  *store.Store
	kv  kv.Store
	// cityFlag is set when --city overrides the stored location.
	cityFlag bool
	days     *timings.Today

	closers []io.Closer
	logs    io.Closer
}

func openApp(cmd *cobra.Command, console bool) (*app, error) {
	cfg, err := config.Load(config.DefaultConfigPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg = applyRootFlags(cmd, cfg)
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	logs, err := logging.Setup(logging.Options{
		Path:    config.DefaultLogPath(),
		Level:   cfg.LogLevel,
		Console: console,
		Verbose: rootVerbose,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to set up logging: %w", err)
	}

	a := &app{cfg: cfg, logs: logs, cityFlag: cmd.Flags().Changed("city")}
	db, err := store.Open(cfg.Store.Path)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	a.db = db
	a.kv = db

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	switch cfg.Store.Backend {
	case "memory":
		a.kv = kv.NewMemory()
	case "redis":
		cctx, cancel := context.WithTimeout(ctx, connectTimeout)
		defer cancel()
		rdb, err := kv.NewRedis(cctx, kv.RedisOptions{
			Addr:     cfg.Store.RedisAddr,
			Password: cfg.Store.RedisPassword,
			DB:       cfg.Store.RedisDB,
		})
		if err != nil {
			a.Close()
			return nil, err
		}
		a.kv = rdb
		a.closers = append(a.closers, rdb)
	}

	if err := settings.ApplyConfig(ctx, a.kv, cfg); err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to apply config: %w", err)
	}
	log.Debug().Str("backend", cfg.Store.Backend).Str("db", cfg.Store.Path).Msg("store ready")
	return a, nil
}

// applyRootFlags lets --city, --country and --method win over the file.
func applyRootFlags(cmd *cobra.Command, cfg config.Config) config.Config {
	applyIntConfig(cmd, "method", &rootMethod, &cfg.Location.Method)
	cfg.Location.Method = rootMethod
	if cmd.Flags().Changed("city") {
		cfg.Location.Mode = "manual"
		cfg.Location.City = rootCity
		if cmd.Flags().Changed("country") {
			cfg.Location.Country = rootCountry
		}
	}
	return cfg
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			logErrf("failed to close: %v\n", err)
		}
	}
	a.closers = nil
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			logErrf("failed to close db: %v\n", err)
		}
		a.db = nil
	}
	if a.logs != nil {
		if err := a.logs.Close(); err != nil {
			logErrf("failed to close log: %v\n", err)
		}
		a.logs = nil
	}
}

// location resolves where timings are looked up. The stored city mode and
// city win over the file unless --city was given.
func (a *app) location(ctx context.Context) (model.Location, error) {
	snap, err := settings.Load(ctx, a.kv)
	if err != nil {
		return model.Location{}, fmt.Errorf("failed to load settings: %w", err)
	}
	cfg := a.cfg.Location
	if !a.cityFlag {
		if snap.CityMode != "" {
			cfg.Mode = snap.CityMode
		}
		if cfg.Mode == "manual" && snap.CityEn != "" {
			cfg.City = snap.CityEn
			cfg.Country = snap.CountryEn
		}
	}
	return timings.ResolveLocation(cfg, snap.LastLocation()), nil
}

func (a *app) fetcher() timings.Fetcher {
	return timings.Fetcher{
		Source: timings.NewClient(a.cfg.Location.Method),
		Cache:  a.db,
	}
}

func (a *app) today() *timings.Today {
	if a.days == nil {
		a.days = &timings.Today{
			Fetcher: a.fetcher(),
			Locate:  a.location,
		}
	}
	return a.days
}

func (a *app) counter() *tasbeeh.Counter {
	return tasbeeh.New(a.kv, a.db)
}

// sinks groups the notification outputs of the daemon.
type sinks struct {
	notifier notify.Multi
	audio    notify.Notifier
	buzzer   notify.Notifier
}

// notifiers builds the configured sinks. An unreachable MQTT broker is
// logged and skipped.
func (a *app) notifiers() sinks {
	var s sinks
	s.notifier = append(s.notifier, notify.Terminal{Out: os.Stderr})
	if a.cfg.Notify.Bell {
		bell := notify.Bell{Out: os.Stderr}
		s.notifier = append(s.notifier, bell)
		s.buzzer = bell
	}
	if a.cfg.Notify.Command != "" {
		s.notifier = append(s.notifier, notify.Command{
			Line:        a.cfg.Notify.Command,
			WithMessage: true,
			Timeout:     commandTimeout,
		})
	}
	if a.cfg.Notify.MQTTBroker != "" {
		m, err := notify.NewMQTT(notify.MQTTOptions{
			Broker:   a.cfg.Notify.MQTTBroker,
			ClientID: a.cfg.Notify.MQTTClientID,
			Username: a.cfg.Notify.MQTTUsername,
			Password: a.cfg.Notify.MQTTPassword,
			Topic:    a.cfg.Notify.MQTTTopic,
		})
		if err != nil {
			log.Warn().Err(err).Msg("MQTT sink disabled")
		} else {
			s.notifier = append(s.notifier, m)
			a.closers = append(a.closers, closerFunc(m.Close))
		}
	}
	if a.cfg.Alarms.AdhanCommand != "" {
		s.audio = notify.Command{
			Line:    a.cfg.Alarms.AdhanCommand,
			Kinds:   []string{notify.KindAdhan},
			Timeout: adhanTimeout,
		}
	}
	return s
}

type closerFunc func()

func (f closerFunc) Close() error {
	f()
	return nil
}
