package config

import "fmt"

// Template returns the commented config file written by `salat config`.
func Template() string {
	return fmt.Sprintf(`# salat configuration
# Uncomment a value to enable it. CLI flags override config values.
# Secrets can also come from .env: %s, %s, %s.

[location]
# mode = "auto"               # auto | manual
# city = %q
# country = %q
# latitude = 21.4225          # Used for the qibla and coordinate lookups
# longitude = 39.8262
# method = %d                  # Al Adhan calculation method id

[alarms]
# adhan = true
# vibrate = true              # Terminal bell on adhan and azkar reminders
# prayer-notify = true
# azkar-notify = true
# pre-adhan-minutes = 0       # 0, 5, 10 or 15
# sleep-reminder = %q
# adhan-command = ""          # Command run with the adhan audio, e.g. "mpv ~/adhan.mp3"

[notify]
# bell = true
# command = ""                # Receives title and body as arguments
# mqtt-broker = ""            # e.g. "tcp://127.0.0.1:1883"
# mqtt-topic = %q
# mqtt-client-id = %q

[store]
# backend = "sqlite"          # sqlite | redis | memory (settings only)
# path = %q
# redis-addr = "127.0.0.1:6379"
# redis-db = 0

[server]
# addr = %q

[quran]
# player = %q
# reciter-server = %q
# reciter-name = %q

[ui]
# theme = %q                  # emerald | midnight | sand | rose | ocean
`,
		EnvRedisPassword,
		EnvMQTTUsername,
		EnvMQTTPassword,
		DefaultCity,
		DefaultCountry,
		DefaultMethod,
		DefaultSleepReminder,
		DefaultMQTTTopic,
		DefaultMQTTClientID,
		DefaultDBPath(),
		DefaultServerAddr,
		DefaultPlayer,
		DefaultReciterServer,
		DefaultReciterName,
		DefaultTheme,
	)
}
