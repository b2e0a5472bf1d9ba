// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Location LocationConfig `toml:"location"`
	Alarms   AlarmsConfig   `toml:"alarms"`
	Notify   NotifyConfig   `toml:"notify"`
	Store    StoreConfig    `toml:"store"`
	Server   ServerConfig   `toml:"server"`
	Quran    QuranConfig    `toml:"quran"`
	UI       UIConfig       `toml:"ui"`
}

// LocationConfig maps location-related settings.
type LocationConfig struct {
	Mode      *string  `toml:"mode"`
	City      *string  `toml:"city"`
	Country   *string  `toml:"country"`
	Latitude  *float64 `toml:"latitude"`
	Longitude *float64 `toml:"longitude"`
	Method    *int     `toml:"method"`
}

// AlarmsConfig maps alarm toggles.
type AlarmsConfig struct {
	Adhan           *bool   `toml:"adhan"`
	Vibrate         *bool   `toml:"vibrate"`
	PrayerNotify    *bool   `toml:"prayer-notify"`
	AzkarNotify     *bool   `toml:"azkar-notify"`
	PreAdhanMinutes *int    `toml:"pre-adhan-minutes"`
	SleepReminder   *string `toml:"sleep-reminder"`
	AdhanCommand    *string `toml:"adhan-command"`
}

// NotifyConfig maps notification sinks.
type NotifyConfig struct {
	Bell         *bool   `toml:"bell"`
	Command      *string `toml:"command"`
	MQTTBroker   *string `toml:"mqtt-broker"`
	MQTTTopic    *string `toml:"mqtt-topic"`
	MQTTClientID *string `toml:"mqtt-client-id"`
}

// StoreConfig maps the settings backend.
type StoreConfig struct {
	Backend       *string `toml:"backend"`
	Path          *string `toml:"path"`
	RedisAddr     *string `toml:"redis-addr"`
	RedisPassword *string `toml:"redis-password"`
	RedisDB       *int    `toml:"redis-db"`
}

// ServerConfig maps the display API.
type ServerConfig struct {
	Addr *string `toml:"addr"`
}

// QuranConfig maps audio playback.
type QuranConfig struct {
	Player        *string `toml:"player"`
	ReciterServer *string `toml:"reciter-server"`
	ReciterName   *string `toml:"reciter-name"`
}

// UIConfig maps dashboard appearance.
type UIConfig struct {
	Theme *string `toml:"theme"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}
