// Package google is a Google Calendar v3 client over plain REST.
package google

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"assistant/internal/adapter/restclient"
	"assistant/internal/app/ports"
	"assistant/internal/domain/schedule"
)

const DefaultBaseURL = "https://www.googleapis.com/calendar/v3"

type Client struct {
	rest    *restclient.Client
	baseURL string
	token   string
}

func New(rest *restclient.Client, baseURL, token string) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{rest: rest, baseURL: baseURL, token: token}
}

type eventTime struct {
	DateTime string `json:"dateTime,omitempty"`
	Date     string `json:"date,omitempty"`
	TimeZone string `json:"timeZone,omitempty"`
}

type event struct {
	ID          string    `json:"id,omitempty"`
	Summary     string    `json:"summary"`
	Description string    `json:"description,omitempty"`
	Start       eventTime `json:"start"`
	End         eventTime `json:"end"`
	HTMLLink    string    `json:"htmlLink,omitempty"`
}

type eventList struct {
	Items         []event `json:"items"`
	NextPageToken string  `json:"nextPageToken"`
}

func (c *Client) InsertEvent(ctx context.Context, calendarID string, e schedule.Event) (schedule.Event, error) {
	body := event{
		Summary:     e.Title,
		Description: e.Description,
		Start:       eventTime{DateTime: e.Start.Format(schedule.LocalLayout), TimeZone: e.TimeZone},
		End:         eventTime{DateTime: e.End.Format(schedule.LocalLayout), TimeZone: e.TimeZone},
	}
	var created event
	endpoint := fmt.Sprintf("%s/calendars/%s/events", c.baseURL, url.PathEscape(calendarID))
	if err := c.rest.DoJSON(ctx, http.MethodPost, endpoint, c.headers(), body, &created); err != nil {
		return schedule.Event{}, fmt.Errorf("insert calendar event: %w", err)
	}
	out, err := fromWire(created, e.TimeZone)
	if err != nil {
		return schedule.Event{}, err
	}
	return out, nil
}

func (c *Client) ListEvents(ctx context.Context, calendarID string, timeMin, timeMax time.Time) ([]schedule.Event, error) {
	var out []schedule.Event
	pageToken := ""
	for {
		q := url.Values{}
		q.Set("timeMin", timeMin.Format(time.RFC3339))
		q.Set("timeMax", timeMax.Format(time.RFC3339))
		q.Set("singleEvents", "true")
		q.Set("orderBy", "startTime")
		if pageToken != "" {
			q.Set("pageToken", pageToken)
		}
		endpoint := fmt.Sprintf("%s/calendars/%s/events?%s", c.baseURL, url.PathEscape(calendarID), q.Encode())
		var page eventList
		if err := c.rest.DoJSON(ctx, http.MethodGet, endpoint, c.headers(), nil, &page); err != nil {
			return nil, fmt.Errorf("list calendar events: %w", err)
		}
		for _, item := range page.Items {
			e, err := fromWire(item, "")
			if err != nil {
				return nil, err
			}
			out = append(out, e)
		}
		if page.NextPageToken == "" {
			return out, nil
		}
		pageToken = page.NextPageToken
	}
}

func (c *Client) headers() map[string]string {
	if c.token == "" {
		return nil
	}
	return map[string]string{"Authorization": "Bearer " + c.token}
}

func fromWire(w event, fallbackZone string) (schedule.Event, error) {
	zone := w.Start.TimeZone
	if zone == "" {
		zone = fallbackZone
	}
	start, err := parseEventTime(w.Start, zone)
	if err != nil {
		return schedule.Event{}, fmt.Errorf("event %s start: %w", w.ID, err)
	}
	end, err := parseEventTime(w.End, zone)
	if err != nil {
		return schedule.Event{}, fmt.Errorf("event %s end: %w", w.ID, err)
	}
	return schedule.Event{
		ID:          w.ID,
		Title:       w.Summary,
		Description: w.Description,
		Start:       start,
		End:         end,
		TimeZone:    zone,
		Link:        w.HTMLLink,
	}, nil
}

// parseEventTime reads dateTime values, and the date of all-day events.
func parseEventTime(t eventTime, zone string) (time.Time, error) {
	if t.DateTime != "" {
		return schedule.ParseLocal(t.DateTime, zone)
	}
	if t.Date != "" {
		return schedule.ParseLocal(t.Date+"T00:00:00", zone)
	}
	return time.Time{}, schedule.ErrInvalidTime
}

var _ ports.Calendar = (*Client)(nil)
