// Package config loads the focusboard settings document and resolves the
// locations of the vault documents it reads.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// MaxCalendars caps how many Google calendars are queried.
	MaxCalendars = 5

	DefaultCalendarTTL = 5 * time.Minute
	DefaultWeatherTTL  = 10 * time.Minute

	defaultZip          = "34465"
	defaultCountry      = "US"
	defaultReminderList = "Reminders"
	defaultSyncDest     = "focusboard/dashboard/state.json"
	defaultCalendarID   = "primary"
	defaultCalendarHue  = "#4285f4"

	// SyncHostEnv supplies the display host when the settings omit it.
	SyncHostEnv = "FOCUSBOARD_HOST"
)

// Values that mean "not configured yet".
var placeholders = map[string]bool{
	"":                         true,
	"FROM_ZSHRC":               true,
	"SIGNUP_AT_OPENWEATHERMAP": true,
}

// IsPlaceholder reports whether v is empty or a known placeholder.
func IsPlaceholder(v string) bool {
	return placeholders[v]
}

// Calendar is one Google calendar shown on the board.
type Calendar struct {
	ID    string `yaml:"id" json:"id"`
	Label string `yaml:"label" json:"label"`
	Color string `yaml:"color" json:"color"`
}

// GoogleCalendar holds OAuth2 client credentials and the calendars to fetch.
type GoogleCalendar struct {
	ClientID     string     `yaml:"client_id"`
	ClientSecret string     `yaml:"client_secret"`
	RefreshToken string     `yaml:"refresh_token"`
	Calendars    []Calendar `yaml:"calendars"`
}

// Weather configures the OpenWeatherMap lookup.
type Weather struct {
	APIKey  string `yaml:"api_key"`
	Zip     string `yaml:"zip"`
	Country string `yaml:"country"`
}

// Reminders lists the Apple Reminders lists to read.
type Reminders struct {
	Lists []string `yaml:"lists"`
}

// Sync names the display host the snapshot is copied to.
type Sync struct {
	Host string `yaml:"host"`
	Dest string `yaml:"dest"`
}

// TTL is a cache freshness window. It accepts a duration string ("5m") or
// a number of seconds. A value that is neither is logged and left unset so
// the default applies.
type TTL time.Duration

func (t *TTL) UnmarshalYAML(node *yaml.Node) error {
	var secs float64
	if tag := node.ShortTag(); tag == "!!int" || tag == "!!float" {
		if err := node.Decode(&secs); err == nil {
			*t = TTL(secs * float64(time.Second))
			return nil
		}
	}
	d, err := time.ParseDuration(node.Value)
	if err != nil {
		slog.Warn("ignoring cache ttl", "line", node.Line, "value", node.Value, "err", err)
		*t = 0
		return nil
	}
	*t = TTL(d)
	return nil
}

// Duration returns t as a time.Duration.
func (t TTL) Duration() time.Duration {
	return time.Duration(t)
}

// Cache sets per-source freshness windows.
type Cache struct {
	CalendarTTL TTL `yaml:"calendar_ttl"`
	WeatherTTL  TTL `yaml:"weather_ttl"`
}

// Settings models focusboard-config.json.
type Settings struct {
	GoogleCalendar GoogleCalendar `yaml:"google_calendar"`
	Weather        Weather        `yaml:"weather"`
	Reminders      Reminders      `yaml:"reminders"`
	Sync           Sync           `yaml:"sync"`
	Cache          Cache          `yaml:"cache"`
	Paths          PathOverrides  `yaml:"paths"`
}

// Default returns settings with every optional value filled in and all
// credentialed sources unconfigured.
func Default() *Settings {
	s := &Settings{}
	s.applyDefaults()
	return s
}

// Load reads the settings document at path. JSON is accepted since it is
// valid YAML. A missing file yields defaults; a malformed one yields
// defaults and the parse error.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Default(), fmt.Errorf("reading config: %w", err)
	}

	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Default(), fmt.Errorf("parsing config %s: %w", path, err)
	}
	s.applyDefaults()
	return &s, nil
}

func (s *Settings) applyDefaults() {
	if s.Weather.Zip == "" {
		s.Weather.Zip = defaultZip
	}
	if s.Weather.Country == "" {
		s.Weather.Country = defaultCountry
	}
	if len(s.Reminders.Lists) == 0 {
		s.Reminders.Lists = []string{defaultReminderList}
	}
	if s.Sync.Host == "" {
		s.Sync.Host = os.Getenv(SyncHostEnv)
	}
	if s.Sync.Dest == "" {
		s.Sync.Dest = defaultSyncDest
	}
	if s.Cache.CalendarTTL <= 0 {
		s.Cache.CalendarTTL = TTL(DefaultCalendarTTL)
	}
	if s.Cache.WeatherTTL <= 0 {
		s.Cache.WeatherTTL = TTL(DefaultWeatherTTL)
	}

	if len(s.GoogleCalendar.Calendars) > MaxCalendars {
		s.GoogleCalendar.Calendars = s.GoogleCalendar.Calendars[:MaxCalendars]
	}
	for i := range s.GoogleCalendar.Calendars {
		c := &s.GoogleCalendar.Calendars[i]
		if c.ID == "" {
			c.ID = defaultCalendarID
		}
		if c.Label == "" {
			c.Label = c.ID
		}
		if c.Color == "" {
			c.Color = defaultCalendarHue
		}
	}
}

// CalendarEnabled reports whether all OAuth2 credentials are set.
func (s *Settings) CalendarEnabled() bool {
	g := s.GoogleCalendar
	return !IsPlaceholder(g.ClientID) && !IsPlaceholder(g.ClientSecret) && !IsPlaceholder(g.RefreshToken)
}

// Calendars returns the configured calendars, or the primary calendar when
// none are listed.
func (s *Settings) Calendars() []Calendar {
	if len(s.GoogleCalendar.Calendars) == 0 {
		return []Calendar{{ID: defaultCalendarID, Label: "Calendar", Color: defaultCalendarHue}}
	}
	return append([]Calendar(nil), s.GoogleCalendar.Calendars...)
}

// WeatherEnabled reports whether an API key is set.
func (s *Settings) WeatherEnabled() bool {
	return !IsPlaceholder(s.Weather.APIKey)
}

// SyncEnabled reports whether a display host is known.
func (s *Settings) SyncEnabled() bool {
	return s.Sync.Host != ""
}

// Missing lists the credential fields that are empty or placeholders.
func (s *Settings) Missing() []string {
	checks := []struct {
		field string
		value string
	}{
		{"google_calendar.client_id", s.GoogleCalendar.ClientID},
		{"google_calendar.client_secret", s.GoogleCalendar.ClientSecret},
		{"google_calendar.refresh_token", s.GoogleCalendar.RefreshToken},
		{"weather.api_key", s.Weather.APIKey},
	}
	var missing []string
	for _, c := range checks {
		if IsPlaceholder(c.value) {
			missing = append(missing, c.field)
		}
	}
	return missing
}

// LogMissing writes one warning per unconfigured credential.
func (s *Settings) LogMissing() {
	for _, field := range s.Missing() {
		slog.Warn("config missing or placeholder", "field", field)
	}
}
