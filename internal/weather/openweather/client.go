// Package openweather is the OpenWeather current-weather provider.
package openweather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/jask/flipclock/internal/weather"
)

/*
	OpenWeather response codes seen in practice
	200  success
	400  bad request (e.g. empty q)
	401  invalid API key
	404  city not found
	429  rate limited
*/

const DefaultBaseURL = "https://api.openweathermap.org"

// currentResponse is the subset of /data/2.5/weather we consume.
type currentResponse struct {
	Name string `json:"name"`
	Sys  struct {
		Country string `json:"country"`
	} `json:"sys"`
	Main *struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Main string `json:"main"`
		Icon string `json:"icon"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}

// Client issues one GET per Current call.
type Client struct {
	apiKey  string
	baseURL string
	units   string
	http    *http.Client
	logger  *slog.Logger
	now     func() time.Time
}

type Option func(*Client)

func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = u
		}
	}
}

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

func WithUnits(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.units = u
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		units:   "metric",
		http:    http.DefaultClient,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ weather.Provider = (*Client)(nil)

func (c *Client) Current(ctx context.Context, src weather.Source) (weather.Snapshot, error) {
	endpoint, err := c.buildURL(src)
	if err != nil {
		return weather.Snapshot{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return weather.Snapshot{}, fmt.Errorf("build request: %w", err)
	}
	c.logger.Debug("weather request", "source", src.String())

	resp, err := c.http.Do(req)
	if err != nil {
		return weather.Snapshot{}, fmt.Errorf("failed to fetch weather: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return weather.Snapshot{}, fmt.Errorf("failed to read weather response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return weather.Snapshot{}, &weather.APIError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(body),
		}
	}
	return c.parse(body)
}

func (c *Client) parse(body []byte) (weather.Snapshot, error) {
	var data currentResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return weather.Snapshot{}, &weather.ParseError{Err: err}
	}
	if data.Main == nil {
		return weather.Snapshot{}, &weather.ParseError{Err: errors.New("missing main block")}
	}
	if len(data.Weather) == 0 {
		return weather.Snapshot{}, &weather.ParseError{Err: errors.New("no weather conditions")}
	}
	location := data.Name
	if data.Sys.Country != "" {
		location = fmt.Sprintf("%s, %s", data.Name, data.Sys.Country)
	}
	return weather.Snapshot{
		Location:     location,
		TemperatureC: roundHalfUp(data.Main.Temp),
		Condition:    data.Weather[0].Main,
		HumidityPct:  data.Main.Humidity,
		WindSpeed:    roundHalfUp(data.Wind.Speed),
		IconID:       data.Weather[0].Icon,
		FetchedAt:    c.now(),
	}, nil
}

func (c *Client) buildURL(src weather.Source) (string, error) {
	q := url.Values{}
	switch src.Kind {
	case weather.SourceCity:
		if src.City == "" {
			return "", weather.ErrNoLocation
		}
		q.Set("q", src.City)
	case weather.SourceCoords:
		q.Set("lat", strconv.FormatFloat(src.Lat, 'f', -1, 64))
		q.Set("lon", strconv.FormatFloat(src.Lon, 'f', -1, 64))
	default:
		return "", weather.ErrNoLocation
	}
	q.Set("appid", c.apiKey)
	q.Set("units", c.units)
	return c.baseURL + "/data/2.5/weather?" + q.Encode(), nil
}

// roundHalfUp rounds .5 towards positive infinity.
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
