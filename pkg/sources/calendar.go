package sources

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"golang.org/x/oauth2"

	"github.com/stefanpenner/focusboard/pkg/config"
	"github.com/stefanpenner/focusboard/pkg/store"
)

const (
	googleTokenURL     = "https://oauth2.googleapis.com/token"
	googleCalendarBase = "https://www.googleapis.com/calendar/v3"

	maxEventsPerCalendar = 20
	noTitle              = "(No title)"
)

// Event is one upcoming calendar entry.
type Event struct {
	Title    string `json:"title"`
	Start    string `json:"start"`
	End      string `json:"end"`
	AllDay   bool   `json:"all_day"`
	Location string `json:"location"`
	Calendar string `json:"calendar"`
	Color    string `json:"color"`
}

// LegendEntry names a calendar and its color on the board.
type LegendEntry struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

// Calendar fetches upcoming events from the Google Calendar v3 API using a
// stored OAuth2 refresh token.
type Calendar struct {
	Enabled      bool
	ClientID     string
	ClientSecret string
	RefreshToken string
	Calendars    []config.Calendar

	TokenURL string
	BaseURL  string
	HTTP     *http.Client
	Timeout  time.Duration

	Store *store.Store
	TTL   time.Duration
	Now   func() time.Time
}

// NewCalendar builds a Calendar from settings. Credentials that are empty or
// placeholders leave the source disabled.
func NewCalendar(s *config.Settings, st *store.Store) *Calendar {
	g := s.GoogleCalendar
	return &Calendar{
		Enabled:      s.CalendarEnabled(),
		ClientID:     g.ClientID,
		ClientSecret: g.ClientSecret,
		RefreshToken: g.RefreshToken,
		Calendars:    s.Calendars(),
		TokenURL:     googleTokenURL,
		BaseURL:      googleCalendarBase,
		HTTP:         http.DefaultClient,
		Timeout:      DefaultTimeout,
		Store:        st,
		TTL:          s.Cache.CalendarTTL.Duration(),
		Now:          time.Now,
	}
}

// Legend returns the configured calendars. It does not depend on a fetch.
func (c *Calendar) Legend() []LegendEntry {
	legend := make([]LegendEntry, 0, len(c.Calendars))
	for _, cal := range c.Calendars {
		legend = append(legend, LegendEntry{Label: cal.Label, Color: cal.Color})
	}
	return legend
}

// Fetch returns events from now through the end of tomorrow across every
// configured calendar, sorted by start. A calendar that fails is logged and
// skipped; the result fails only when every calendar does.
func (c *Calendar) Fetch(ctx context.Context) Result[[]Event] {
	empty := []Event{}
	if !c.Enabled {
		return Disabled(empty)
	}

	now := c.now()
	return withCache(c.Store, "calendar", c.TTL, now, func() Result[[]Event] {
		timeout := c.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		httpClient := c.HTTP
		if httpClient == nil {
			httpClient = http.DefaultClient
		}
		cfg := &oauth2.Config{
			ClientID:     c.ClientID,
			ClientSecret: c.ClientSecret,
			Endpoint:     oauth2.Endpoint{TokenURL: c.TokenURL, AuthStyle: oauth2.AuthStyleInParams},
		}
		ctx = context.WithValue(ctx, oauth2.HTTPClient, httpClient)
		client := cfg.Client(ctx, &oauth2.Token{RefreshToken: c.RefreshToken})

		end := endOfTomorrow(now)
		events := []Event{}
		var errs []error
		for _, cal := range c.Calendars {
			got, err := c.fetchCalendar(ctx, client, cal, now, end)
			if err != nil {
				slog.Warn("calendar fetch failed", "calendar", cal.Label, "err", err)
				errs = append(errs, err)
				continue
			}
			events = append(events, got...)
		}
		if len(c.Calendars) > 0 && len(errs) == len(c.Calendars) {
			return Failed(empty, errors.Join(errs...))
		}

		sortEvents(events, now.Location())
		return OK(events)
	})
}

type eventTime struct {
	DateTime string `json:"dateTime"`
	Date     string `json:"date"`
}

type eventList struct {
	Items []struct {
		Summary  string    `json:"summary"`
		Location string    `json:"location"`
		Start    eventTime `json:"start"`
		End      eventTime `json:"end"`
	} `json:"items"`
}

func (c *Calendar) fetchCalendar(ctx context.Context, client *http.Client, cal config.Calendar, from, to time.Time) ([]Event, error) {
	q := url.Values{}
	q.Set("timeMin", from.Format(time.RFC3339))
	q.Set("timeMax", to.Format(time.RFC3339))
	q.Set("singleEvents", "true")
	q.Set("orderBy", "startTime")
	q.Set("maxResults", strconv.Itoa(maxEventsPerCalendar))
	u := fmt.Sprintf("%s/calendars/%s/events?%s", c.BaseURL, url.PathEscape(cal.ID), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", cal.ID, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: unexpected status %s", cal.ID, resp.Status)
	}

	var list eventList
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("decoding %s events: %w", cal.ID, err)
	}

	events := make([]Event, 0, len(list.Items))
	for _, item := range list.Items {
		title := item.Summary
		if title == "" {
			title = noTitle
		}
		events = append(events, Event{
			Title:    title,
			Start:    firstNonEmpty(item.Start.DateTime, item.Start.Date),
			End:      firstNonEmpty(item.End.DateTime, item.End.Date),
			AllDay:   item.Start.DateTime == "" && item.Start.Date != "",
			Location: item.Location,
			Calendar: cal.Label,
			Color:    cal.Color,
		})
		if len(events) == maxEventsPerCalendar {
			break
		}
	}
	return events, nil
}

// endOfTomorrow is midnight at the start of the day after tomorrow.
func endOfTomorrow(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d+2, 0, 0, 0, 0, now.Location())
}

func sortEvents(events []Event, loc *time.Location) {
	sort.SliceStable(events, func(i, j int) bool {
		return eventStart(events[i].Start, loc).Before(eventStart(events[j].Start, loc))
	})
}

func eventStart(s string, loc *time.Location) time.Time {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	if t, err := time.ParseInLocation("2006-01-02", s, loc); err == nil {
		return t
	}
	return time.Time{}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func (c *Calendar) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}
