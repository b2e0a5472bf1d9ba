package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables read on top of the file config.
const (
	EnvRedisPassword = "SALAT_REDIS_PASSWORD"
	EnvMQTTUsername  = "SALAT_MQTT_USERNAME"
	EnvMQTTPassword  = "SALAT_MQTT_PASSWORD"
	EnvLogLevel      = "SALAT_LOG_LEVEL"
)

// LoadDotEnv loads .env files from the working directory and the config
// directory. Variables already set in the environment win.
func LoadDotEnv() error {
	paths := []string{".env", filepath.Join(DefaultConfigDir(), ".env")}
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return fmt.Errorf("failed to stat %s: %w", path, err)
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
	}
	return nil
}

// ApplyEnv overlays secrets and the log level from the environment.
func ApplyEnv(cfg Config, getenv func(string) string) Config {
	if getenv == nil {
		getenv = os.Getenv
	}
	if v := getenv(EnvRedisPassword); v != "" {
		cfg.Store.RedisPassword = v
	}
	if v := getenv(EnvMQTTUsername); v != "" {
		cfg.Notify.MQTTUsername = v
	}
	if v := getenv(EnvMQTTPassword); v != "" {
		cfg.Notify.MQTTPassword = v
	}
	if v := strings.TrimSpace(getenv(EnvLogLevel)); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	return cfg
}

// Load resolves defaults, the TOML file at path and the environment.
func Load(path string) (Config, error) {
	if err := LoadDotEnv(); err != nil {
		return Config{}, err
	}
	file, err := LoadConfig(path)
	if err != nil {
		return Config{}, err
	}
	return ApplyEnv(Merge(Default(), file), nil), nil
}
