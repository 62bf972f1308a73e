package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
)

// Locator resolves the device position. Implementations return
// ErrLocationDenied when geolocation is not permitted.
type Locator interface {
	Locate(ctx context.Context) (lat, lon float64, err error)
}

// NoLocator is geolocation switched off.
type NoLocator struct{}

func (NoLocator) Locate(context.Context) (float64, float64, error) {
	return 0, 0, ErrLocationDenied
}

// StaticLocator always reports the same coordinates.
type StaticLocator struct {
	Lat, Lon float64
}

func (s StaticLocator) Locate(context.Context) (float64, float64, error) {
	return s.Lat, s.Lon, nil
}

// DefaultIPLocateURL answers with {"lat":..,"lon":..,"status":"success"}.
const DefaultIPLocateURL = "http://ip-api.com/json/?fields=status,message,lat,lon"

// IPLocator approximates the position from the public IP address.
type IPLocator struct {
	URL    string
	Client *http.Client
}

type ipLocateResponse struct {
	Status  string  `json:"status"`
	Message string  `json:"message"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

func (l IPLocator) Locate(ctx context.Context) (float64, float64, error) {
	url := l.URL
	if url == "" {
		url = DefaultIPLocateURL
	}
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("geolocate request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrLocationDenied, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: read: %v", ErrLocationDenied, err)
	}
	if resp.StatusCode != http.StatusOK {
		return 0, 0, fmt.Errorf("%w: %s", ErrLocationDenied, resp.Status)
	}
	var out ipLocateResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return 0, 0, fmt.Errorf("%w: decode: %v", ErrLocationDenied, err)
	}
	if out.Status != "" && !strings.EqualFold(out.Status, "success") {
		return 0, 0, fmt.Errorf("%w: %s", ErrLocationDenied, out.Message)
	}
	return out.Lat, out.Lon, nil
}

// Resolve picks the lookup source. An explicit query wins; otherwise the
// locator is tried and, on denial or failure, the fallback city is used.
// SourceNone is returned only when all three are empty.
func Resolve(ctx context.Context, query string, loc Locator, fallback string, logger *slog.Logger) Source {
	if q := strings.TrimSpace(query); q != "" {
		return City(q)
	}
	if loc != nil {
		lat, lon, err := loc.Locate(ctx)
		if err == nil {
			return Coords(lat, lon)
		}
		if logger != nil {
			level := slog.LevelWarn
			if errors.Is(err, ErrLocationDenied) {
				level = slog.LevelDebug
			}
			logger.Log(ctx, level, "geolocation failed, using fallback", "fallback", fallback, "err", err)
		}
	}
	if f := strings.TrimSpace(fallback); f != "" {
		return City(f)
	}
	return Source{}
}
