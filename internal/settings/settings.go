// Package settings exposes the persisted user settings as a typed snapshot.
package settings

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/verte-zerg/salat/internal/config"
	"github.com/verte-zerg/salat/internal/kv"
	"github.com/verte-zerg/salat/internal/model"
)

// Setting keys.
const (
	KeyEnableAdhan       = "enable_adhan"
	KeyEnableVibrate     = "enable_vibrate"
	KeyEnablePrayerNotif = "enable_prayer_notif"
	KeyEnableAzkarNotif  = "enable_azkar_notif"
	KeyPreAdhanMin       = "pre_adhan_min"
	KeyCityMode          = "city_mode"
	KeyCityEn            = "city_en"
	KeyCountryEn         = "country_en"
	KeyCityAr            = "city_ar"
	KeyCountryAr         = "country_ar"
	KeyThemeName         = "theme_name"
	KeyDarkMode          = "dark_mode"
	KeyFontScale         = "font_scale"
	KeyLanguage          = "language"
	KeyReciterID         = "reciter_id"
	KeyReciterServer     = "reciter_server"
	KeyReciterName       = "reciter_name"
)

// Kind is the value type of a setting.
type Kind int

// Value kinds.
const (
	KindBool Kind = iota
	KindInt
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	default:
		return "string"
	}
}

// Definition describes one setting.
type Definition struct {
	Key     string
	Kind    Kind
	Default string
	Allowed []string
	Min     int
	Max     int
}

var definitions = []Definition{
	{Key: KeyEnableAdhan, Kind: KindBool, Default: "true"},
	{Key: KeyEnableVibrate, Kind: KindBool, Default: "true"},
	{Key: KeyEnablePrayerNotif, Kind: KindBool, Default: "true"},
	{Key: KeyEnableAzkarNotif, Kind: KindBool, Default: "true"},
	{Key: KeyPreAdhanMin, Kind: KindInt, Default: "0", Allowed: []string{"0", "5", "10", "15"}},
	{Key: KeyCityMode, Kind: KindString, Default: "auto", Allowed: []string{"auto", "manual"}},
	{Key: KeyCityEn, Kind: KindString},
	{Key: KeyCountryEn, Kind: KindString},
	{Key: KeyCityAr, Kind: KindString},
	{Key: KeyCountryAr, Kind: KindString},
	{Key: KeyThemeName, Kind: KindString, Default: config.DefaultTheme, Allowed: config.Themes},
	{Key: KeyDarkMode, Kind: KindString, Default: "system", Allowed: []string{"system", "dark", "light"}},
	{Key: KeyFontScale, Kind: KindInt, Default: "100", Min: 90, Max: 130},
	{Key: KeyLanguage, Kind: KindString, Default: "ar"},
	{Key: KeyReciterID, Kind: KindInt, Default: "0", Min: 0, Max: 1 << 20},
	{Key: KeyReciterServer, Kind: KindString},
	{Key: KeyReciterName, Kind: KindString},
}

// ErrUnknownKey is returned for keys outside the settings table.
var ErrUnknownKey = errors.New("unknown setting")

// Definitions returns every setting sorted by key.
func Definitions() []Definition {
	out := append([]Definition(nil), definitions...)
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Lookup finds a setting definition.
func Lookup(key string) (Definition, bool) {
	for _, d := range definitions {
		if d.Key == key {
			return d, true
		}
	}
	return Definition{}, false
}

// Snapshot is a consistent read of every setting.
type Snapshot struct {
	EnableAdhan       bool   `json:"enable_adhan"`
	EnableVibrate     bool   `json:"enable_vibrate"`
	EnablePrayerNotif bool   `json:"enable_prayer_notif"`
	EnableAzkarNotif  bool   `json:"enable_azkar_notif"`
	PreAdhanMin       int    `json:"pre_adhan_min"`
	CityMode          string `json:"city_mode"`
	CityEn            string `json:"city_en"`
	CountryEn         string `json:"country_en"`
	CityAr            string `json:"city_ar"`
	CountryAr         string `json:"country_ar"`
	ThemeName         string `json:"theme_name"`
	DarkMode          string `json:"dark_mode"`
	FontScale         int    `json:"font_scale"`
	Language          string `json:"language"`
	ReciterID         int    `json:"reciter_id"`
	ReciterServer     string `json:"reciter_server"`
	ReciterName       string `json:"reciter_name"`
}

// Defaults returns the snapshot of an empty store.
func Defaults() Snapshot {
	return Snapshot{
		EnableAdhan:       true,
		EnableVibrate:     true,
		EnablePrayerNotif: true,
		EnableAzkarNotif:  true,
		CityMode:          "auto",
		ThemeName:         config.DefaultTheme,
		DarkMode:          "system",
		FontScale:         100,
		Language:          "ar",
	}
}

// Load reads a snapshot, using defaults for absent or malformed values.
func Load(ctx context.Context, st kv.Store) (Snapshot, error) {
	s := Defaults()
	var err error
	bools := []struct {
		key    string
		target *bool
	}{
		{KeyEnableAdhan, &s.EnableAdhan},
		{KeyEnableVibrate, &s.EnableVibrate},
		{KeyEnablePrayerNotif, &s.EnablePrayerNotif},
		{KeyEnableAzkarNotif, &s.EnableAzkarNotif},
	}
	for _, b := range bools {
		if *b.target, err = kv.Bool(ctx, st, b.key, *b.target); err != nil {
			return Snapshot{}, fmt.Errorf("failed to read %s: %w", b.key, err)
		}
	}
	ints := []struct {
		key    string
		target *int
	}{
		{KeyPreAdhanMin, &s.PreAdhanMin},
		{KeyFontScale, &s.FontScale},
		{KeyReciterID, &s.ReciterID},
	}
	for _, i := range ints {
		if *i.target, err = kv.Int(ctx, st, i.key, *i.target); err != nil {
			return Snapshot{}, fmt.Errorf("failed to read %s: %w", i.key, err)
		}
	}
	strs := []struct {
		key    string
		target *string
	}{
		{KeyCityMode, &s.CityMode},
		{KeyCityEn, &s.CityEn},
		{KeyCountryEn, &s.CountryEn},
		{KeyCityAr, &s.CityAr},
		{KeyCountryAr, &s.CountryAr},
		{KeyThemeName, &s.ThemeName},
		{KeyDarkMode, &s.DarkMode},
		{KeyLanguage, &s.Language},
		{KeyReciterServer, &s.ReciterServer},
		{KeyReciterName, &s.ReciterName},
	}
	for _, str := range strs {
		if *str.target, err = kv.String(ctx, st, str.key, *str.target); err != nil {
			return Snapshot{}, fmt.Errorf("failed to read %s: %w", str.key, err)
		}
	}
	return s, nil
}

// LastLocation returns the last resolved city stored in settings.
func (s Snapshot) LastLocation() model.Location {
	return model.Location{
		City:          s.CityEn,
		Country:       s.CountryEn,
		CityArabic:    s.CityAr,
		CountryArabic: s.CountryAr,
	}
}

// Get returns the raw stored value of a known key, or its default.
func Get(ctx context.Context, st kv.Store, key string) (string, error) {
	def, ok := Lookup(key)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return kv.String(ctx, st, key, def.Default)
}

// Set validates raw against the key's definition and stores it.
func Set(ctx context.Context, st kv.Store, key, raw string) error {
	def, ok := Lookup(key)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	value, err := normalize(def, raw)
	if err != nil {
		return err
	}
	return st.Set(ctx, key, value)
}

// SetBool stores a boolean setting.
func SetBool(ctx context.Context, st kv.Store, key string, value bool) error {
	return Set(ctx, st, key, strconv.FormatBool(value))
}

// SetInt stores an integer setting.
func SetInt(ctx context.Context, st kv.Store, key string, value int) error {
	return Set(ctx, st, key, strconv.Itoa(value))
}

// SetString stores a string setting.
func SetString(ctx context.Context, st kv.Store, key, value string) error {
	return Set(ctx, st, key, value)
}

// SaveLocation remembers the resolved city for auto mode.
func SaveLocation(ctx context.Context, st kv.Store, loc model.Location) error {
	pairs := [][2]string{
		{KeyCityEn, loc.City},
		{KeyCountryEn, loc.Country},
		{KeyCityAr, loc.CityArabic},
		{KeyCountryAr, loc.CountryArabic},
	}
	for _, p := range pairs {
		if p[1] == "" {
			continue
		}
		if err := st.Set(ctx, p[0], p[1]); err != nil {
			return fmt.Errorf("failed to save %s: %w", p[0], err)
		}
	}
	return nil
}

// ApplyConfig seeds settings from the config file. Keys already present in
// the store are left alone so `salat settings set` sticks.
func ApplyConfig(ctx context.Context, st kv.Store, cfg config.Config) error {
	seeds := map[string]string{
		KeyEnableAdhan:       strconv.FormatBool(cfg.Alarms.Adhan),
		KeyEnableVibrate:     strconv.FormatBool(cfg.Alarms.Vibrate),
		KeyEnablePrayerNotif: strconv.FormatBool(cfg.Alarms.PrayerNotify),
		KeyEnableAzkarNotif:  strconv.FormatBool(cfg.Alarms.AzkarNotify),
		KeyPreAdhanMin:       strconv.Itoa(cfg.Alarms.PreAdhanMinutes),
		KeyCityMode:          cfg.Location.Mode,
		KeyThemeName:         cfg.Theme,
		KeyReciterServer:     cfg.Quran.ReciterServer,
		KeyReciterName:       cfg.Quran.ReciterName,
	}
	if cfg.Location.Mode == "manual" {
		seeds[KeyCityEn] = cfg.Location.City
		seeds[KeyCountryEn] = cfg.Location.Country
	}
	keys := make([]string, 0, len(seeds))
	for k := range seeds {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, key := range keys {
		value := seeds[key]
		if value == "" {
			continue
		}
		if _, err := st.Get(ctx, key); err == nil {
			continue
		} else if !errors.Is(err, kv.ErrNotFound) {
			return fmt.Errorf("failed to read %s: %w", key, err)
		}
		if err := Set(ctx, st, key, value); err != nil {
			return fmt.Errorf("failed to seed %s: %w", key, err)
		}
	}
	return nil
}

func normalize(def Definition, raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	switch def.Kind {
	case KindBool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return "", fmt.Errorf("%s expects a boolean, got %q", def.Key, raw)
		}
		return strconv.FormatBool(b), nil
	case KindInt:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return "", fmt.Errorf("%s expects an integer, got %q", def.Key, raw)
		}
		if def.Max > def.Min && (n < def.Min || n > def.Max) {
			return "", fmt.Errorf("%s must be between %d and %d", def.Key, def.Min, def.Max)
		}
		raw = strconv.Itoa(n)
	}
	if len(def.Allowed) > 0 && !contains(def.Allowed, raw) {
		return "", fmt.Errorf("%s must be one of %s", def.Key, strings.Join(def.Allowed, ", "))
	}
	return raw, nil
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
