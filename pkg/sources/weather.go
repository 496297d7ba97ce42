package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/stefanpenner/focusboard/pkg/config"
	"github.com/stefanpenner/focusboard/pkg/store"
)

const openWeatherBase = "https://api.openweathermap.org/data/2.5"

// Weather is the current conditions panel.
type Weather struct {
	Temp        int    `json:"temp"`
	FeelsLike   int    `json:"feels_like"`
	High        int    `json:"high"`
	Low         int    `json:"low"`
	Condition   string `json:"condition"`
	Description string `json:"description"`
	IconChar    string `json:"icon_char"`
	Humidity    int    `json:"humidity"`
}

// OpenWeatherMap icon code -> glyph.
var weatherIcons = map[string]string{
	"01d": "☀", "01n": "☾",
	"02d": "⛅", "02n": "☁",
	"03d": "☁", "03n": "☁",
	"04d": "☁", "04n": "☁",
	"09d": "🌧", "09n": "🌧",
	"10d": "🌦", "10n": "🌧",
	"11d": "⛈", "11n": "⛈",
	"13d": "❄", "13n": "❄",
	"50d": "🌫", "50n": "🌫",
}

const defaultWeatherIcon = "☀"

// WeatherIcon maps an OpenWeatherMap icon code to a glyph.
func WeatherIcon(code string) string {
	if g, ok := weatherIcons[code]; ok {
		return g
	}
	return defaultWeatherIcon
}

// OpenWeather fetches current conditions by zip code in imperial units.
type OpenWeather struct {
	APIKey  string
	Zip     string
	Country string

	BaseURL string
	HTTP    *http.Client
	Timeout time.Duration

	Store *store.Store
	TTL   time.Duration
	Now   func() time.Time
}

// NewOpenWeather builds the weather source from settings.
func NewOpenWeather(s *config.Settings, st *store.Store) *OpenWeather {
	return &OpenWeather{
		APIKey:  s.Weather.APIKey,
		Zip:     s.Weather.Zip,
		Country: s.Weather.Country,
		BaseURL: openWeatherBase,
		HTTP:    http.DefaultClient,
		Timeout: DefaultTimeout,
		Store:   st,
		TTL:     s.Cache.WeatherTTL.Duration(),
		Now:     time.Now,
	}
}

type owmResponse struct {
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		TempMin   float64 `json:"temp_min"`
		TempMax   float64 `json:"temp_max"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
}

func (w *OpenWeather) Fetch(ctx context.Context) Result[Weather] {
	if config.IsPlaceholder(w.APIKey) {
		return Disabled(Weather{})
	}

	now := time.Now()
	if w.Now != nil {
		now = w.Now()
	}
	return withCache(w.Store, "weather", w.TTL, now, func() Result[Weather] {
		v, err := w.fetch(ctx)
		if err != nil {
			return Failed(Weather{}, err)
		}
		return OK(v)
	})
}

func (w *OpenWeather) fetch(ctx context.Context) (Weather, error) {
	timeout := w.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	q := url.Values{}
	q.Set("zip", w.Zip+","+w.Country)
	q.Set("units", "imperial")
	q.Set("appid", w.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, w.BaseURL+"/weather?"+q.Encode(), nil)
	if err != nil {
		return Weather{}, fmt.Errorf("building weather request: %w", err)
	}
	client := w.HTTP
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return Weather{}, fmt.Errorf("fetching weather: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Weather{}, fmt.Errorf("fetching weather: unexpected status %s", resp.Status)
	}

	var body owmResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Weather{}, fmt.Errorf("decoding weather: %w", err)
	}

	v := Weather{
		Temp:      round(body.Main.Temp),
		FeelsLike: round(body.Main.FeelsLike),
		High:      round(body.Main.TempMax),
		Low:       round(body.Main.TempMin),
		Humidity:  body.Main.Humidity,
		IconChar:  defaultWeatherIcon,
	}
	if len(body.Weather) > 0 {
		cond := body.Weather[0]
		v.Condition = cond.Main
		v.Description = cond.Description
		v.IconChar = WeatherIcon(cond.Icon)
	}
	return v, nil
}

func round(f float64) int {
	return int(math.Round(f))
}
