package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/verte-zerg/salat/internal/prayer"
)

// Defaults.
const (
	DefaultCity          = "Makkah"
	DefaultCountry       = "Saudi Arabia"
	DefaultMethod        = 4
	DefaultTheme         = "emerald"
	DefaultServerAddr    = "127.0.0.1:8787"
	DefaultMQTTTopic     = "salat"
	DefaultMQTTClientID  = "salat-daemon"
	DefaultPlayer        = "mpv --no-video --really-quiet"
	DefaultReciterServer = "https://server7.mp3quran.net/basit"
	DefaultReciterName   = "Abdulbasit Abdulsamad"
	DefaultSleepReminder = "22:00"
)

// Themes lists the accepted theme names.
var Themes = []string{"emerald", "midnight", "sand", "rose", "ocean"}

// Config is the resolved runtime configuration.
type Config struct {
	Location Location
	Alarms   Alarms
	Notify   Notify
	Store    Store
	Server   Server
	Quran    Quran
	Theme    string `validate:"oneof=emerald midnight sand rose ocean"`
	LogLevel string `validate:"omitempty,oneof=trace debug info warn error disabled"`
}

// Location selects where prayer times are computed for.
type Location struct {
	Mode      string   `validate:"oneof=auto manual"`
	City      string   `validate:"required_if=Mode manual"`
	Country   string   `validate:"required_if=Mode manual"`
	Latitude  *float64 `validate:"omitempty,min=-90,max=90"`
	Longitude *float64 `validate:"omitempty,min=-180,max=180"`
	Method    int      `validate:"min=0,max=23"`
}

// HasPoint reports whether both coordinates are configured.
func (l Location) HasPoint() bool {
	return l.Latitude != nil && l.Longitude != nil
}

// Alarms holds alarm toggles.
type Alarms struct {
	Adhan           bool
	Vibrate         bool
	PrayerNotify    bool
	AzkarNotify     bool
	PreAdhanMinutes int    `validate:"oneof=0 5 10 15"`
	SleepReminder   string `validate:"len=5"`
	AdhanCommand    string
}

// Notify holds notification sink settings.
type Notify struct {
	Bell         bool
	Command      string
	MQTTBroker   string `validate:"omitempty,url"`
	MQTTTopic    string `validate:"required"`
	MQTTClientID string `validate:"required"`
	MQTTUsername string
	MQTTPassword string
}

// Store selects the settings backend.
type Store struct {
	Backend       string `validate:"oneof=sqlite redis memory"`
	Path          string `validate:"required"`
	RedisAddr     string `validate:"required_if=Backend redis"`
	RedisPassword string
	RedisDB       int `validate:"min=0"`
}

// Server holds the display API listen address.
type Server struct {
	Addr string `validate:"required,hostname_port"`
}

// Quran holds audio playback settings.
type Quran struct {
	Player        string `validate:"required"`
	ReciterServer string `validate:"omitempty,url"`
	ReciterName   string
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Location: Location{
			Mode:    "auto",
			City:    DefaultCity,
			Country: DefaultCountry,
			Method:  DefaultMethod,
		},
		Alarms: Alarms{
			Adhan:         true,
			Vibrate:       true,
			PrayerNotify:  true,
			AzkarNotify:   true,
			SleepReminder: DefaultSleepReminder,
		},
		Notify: Notify{
			Bell:         true,
			MQTTTopic:    DefaultMQTTTopic,
			MQTTClientID: DefaultMQTTClientID,
		},
		Store: Store{
			Backend: "sqlite",
			Path:    DefaultDBPath(),
		},
		Server: Server{Addr: DefaultServerAddr},
		Quran: Quran{
			Player:        DefaultPlayer,
			ReciterServer: DefaultReciterServer,
			ReciterName:   DefaultReciterName,
		},
		Theme: DefaultTheme,
	}
}

// Merge applies values present in the file on top of cfg.
func Merge(cfg Config, file FileConfig) Config {
	setString(&cfg.Location.Mode, file.Location.Mode)
	setString(&cfg.Location.City, file.Location.City)
	setString(&cfg.Location.Country, file.Location.Country)
	if file.Location.Latitude != nil {
		v := *file.Location.Latitude
		cfg.Location.Latitude = &v
	}
	if file.Location.Longitude != nil {
		v := *file.Location.Longitude
		cfg.Location.Longitude = &v
	}
	setInt(&cfg.Location.Method, file.Location.Method)

	setBool(&cfg.Alarms.Adhan, file.Alarms.Adhan)
	setBool(&cfg.Alarms.Vibrate, file.Alarms.Vibrate)
	setBool(&cfg.Alarms.PrayerNotify, file.Alarms.PrayerNotify)
	setBool(&cfg.Alarms.AzkarNotify, file.Alarms.AzkarNotify)
	setInt(&cfg.Alarms.PreAdhanMinutes, file.Alarms.PreAdhanMinutes)
	setString(&cfg.Alarms.SleepReminder, file.Alarms.SleepReminder)
	setString(&cfg.Alarms.AdhanCommand, file.Alarms.AdhanCommand)

	setBool(&cfg.Notify.Bell, file.Notify.Bell)
	setString(&cfg.Notify.Command, file.Notify.Command)
	setString(&cfg.Notify.MQTTBroker, file.Notify.MQTTBroker)
	setString(&cfg.Notify.MQTTTopic, file.Notify.MQTTTopic)
	setString(&cfg.Notify.MQTTClientID, file.Notify.MQTTClientID)

	setString(&cfg.Store.Backend, file.Store.Backend)
	setString(&cfg.Store.Path, file.Store.Path)
	setString(&cfg.Store.RedisAddr, file.Store.RedisAddr)
	setString(&cfg.Store.RedisPassword, file.Store.RedisPassword)
	setInt(&cfg.Store.RedisDB, file.Store.RedisDB)

	setString(&cfg.Server.Addr, file.Server.Addr)

	setString(&cfg.Quran.Player, file.Quran.Player)
	setString(&cfg.Quran.ReciterServer, file.Quran.ReciterServer)
	setString(&cfg.Quran.ReciterName, file.Quran.ReciterName)

	setString(&cfg.Theme, file.UI.Theme)
	return cfg
}

// Validate checks the resolved configuration.
func Validate(cfg Config) error {
	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, describe(fe))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, ok := prayer.ParseClock(cfg.Alarms.SleepReminder); !ok {
		return fmt.Errorf("invalid config: alarms.sleep-reminder must be HH:MM")
	}
	return nil
}

func describe(fe validator.FieldError) string {
	field := strings.ToLower(strings.TrimPrefix(fe.Namespace(), "Config."))
	switch fe.Tag() {
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	case "required", "required_if":
		return fmt.Sprintf("%s is required", field)
	case "min", "max":
		return fmt.Sprintf("%s is out of range (%s %s)", field, fe.Tag(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s", field, fe.Tag())
	}
}

func setString(target, value *string) {
	if value != nil {
		*target = *value
	}
}

func setInt(target, value *int) {
	if value != nil {
		*target = *value
	}
}

func setBool(target, value *bool) {
	if value != nil {
		*target = *value
	}
}
