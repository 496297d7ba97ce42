package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "focusboard-config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr bool
		check   func(t *testing.T, s *Settings)
	}{
		{
			name: "json document",
			content: `{
  "google_calendar": {
    "client_id": "id.apps.googleusercontent.com",
    "client_secret": "secret",
    "refresh_token": "1//token",
    "calendars": [
      {"id": "primary", "label": "Me", "color": "#e84393"},
      {"id": "family@group.calendar.google.com", "label": "Family"}
    ]
  },
  "weather": {"api_key": "abc123", "zip": "10001"},
  "reminders": {"lists": ["Groceries", "To-Do"]}
}`,
			check: func(t *testing.T, s *Settings) {
				assert.True(t, s.CalendarEnabled())
				assert.True(t, s.WeatherEnabled())
				assert.Equal(t, "10001", s.Weather.Zip)
				assert.Equal(t, "US", s.Weather.Country)
				assert.Equal(t, []string{"Groceries", "To-Do"}, s.Reminders.Lists)

				cals := s.Calendars()
				require.Len(t, cals, 2)
				assert.Equal(t, Calendar{ID: "primary", Label: "Me", Color: "#e84393"}, cals[0])
				assert.Equal(t, "#4285f4", cals[1].Color)
				assert.Empty(t, s.Missing())
			},
		},
		{
			name: "yaml with placeholders and durations",
			content: `google_calendar:
  client_id: FROM_ZSHRC
  client_secret: FROM_ZSHRC
  refresh_token: FROM_ZSHRC
weather:
  api_key: SIGNUP_AT_OPENWEATHERMAP
cache:
  calendar_ttl: 2m
  weather_ttl: 30m
sync:
  host: pi@display.local
`,
			check: func(t *testing.T, s *Settings) {
				assert.False(t, s.CalendarEnabled())
				assert.False(t, s.WeatherEnabled())
				assert.Equal(t, 2*time.Minute, s.Cache.CalendarTTL.Duration())
				assert.Equal(t, 30*time.Minute, s.Cache.WeatherTTL.Duration())
				assert.True(t, s.SyncEnabled())
				assert.Equal(t, "focusboard/dashboard/state.json", s.Sync.Dest)
				assert.Equal(t, []string{
					"google_calendar.client_id",
					"google_calendar.client_secret",
					"google_calendar.refresh_token",
					"weather.api_key",
				}, s.Missing())
			},
		},
		{
			name: "calendars capped",
			content: `google_calendar:
  calendars:
    - id: a
    - id: b
    - id: c
    - id: d
    - id: e
    - id: f
`,
			check: func(t *testing.T, s *Settings) {
				assert.Len(t, s.Calendars(), MaxCalendars)
				assert.Equal(t, "a", s.Calendars()[0].Label)
			},
		},
		{
			name:    "ttl in seconds keeps the rest of the document",
			content: `{"weather": {"api_key": "abc"}, "cache": {"calendar_ttl": 300, "weather_ttl": 90.5}}`,
			check: func(t *testing.T, s *Settings) {
				assert.True(t, s.WeatherEnabled())
				assert.Equal(t, "abc", s.Weather.APIKey)
				assert.Equal(t, 5*time.Minute, s.Cache.CalendarTTL.Duration())
				assert.Equal(t, 90500*time.Millisecond, s.Cache.WeatherTTL.Duration())
			},
		},
		{
			name:    "unparseable ttl falls back to the default",
			content: `{"weather": {"api_key": "abc"}, "cache": {"calendar_ttl": "soon", "weather_ttl": "15m"}}`,
			check: func(t *testing.T, s *Settings) {
				assert.True(t, s.WeatherEnabled())
				assert.Equal(t, DefaultCalendarTTL, s.Cache.CalendarTTL.Duration())
				assert.Equal(t, 15*time.Minute, s.Cache.WeatherTTL.Duration())
			},
		},
		{
			name:    "malformed",
			content: `{"weather": {"api_key": `,
			wantErr: true,
			check: func(t *testing.T, s *Settings) {
				assert.Equal(t, DefaultWeatherTTL, s.Cache.WeatherTTL.Duration())
				assert.False(t, s.WeatherEnabled())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(SyncHostEnv, "")
			s, err := Load(writeConfig(t, tt.content))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			require.NotNil(t, s)
			tt.check(t, s)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv(SyncHostEnv, "pi@env.local")
	s, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)

	assert.Equal(t, DefaultCalendarTTL, s.Cache.CalendarTTL.Duration())
	assert.Equal(t, []string{"Reminders"}, s.Reminders.Lists)
	assert.Equal(t, "pi@env.local", s.Sync.Host)
	assert.Equal(t, []Calendar{{ID: "primary", Label: "Calendar", Color: "#4285f4"}}, s.Calendars())
}

func TestIsPlaceholder(t *testing.T) {
	assert.True(t, IsPlaceholder(""))
	assert.True(t, IsPlaceholder("FROM_ZSHRC"))
	assert.True(t, IsPlaceholder("SIGNUP_AT_OPENWEATHERMAP"))
	assert.False(t, IsPlaceholder("real-key"))
}
