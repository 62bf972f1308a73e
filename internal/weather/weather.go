// Package weather defines the current-conditions snapshot, the location
// sources a lookup can use and the errors a lookup can end in.
package weather

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Snapshot is one successful current-weather lookup.
type Snapshot struct {
	Location     string
	TemperatureC int
	Condition    string
	HumidityPct  int
	WindSpeed    int
	IconID       string
	FetchedAt    time.Time
}

// SourceKind says how a lookup is located.
type SourceKind int

const (
	SourceNone SourceKind = iota
	SourceCity
	SourceCoords
)

// Source is where to look up weather: a city name, a coordinate pair or
// nothing at all.
type Source struct {
	Kind SourceKind
	City string
	Lat  float64
	Lon  float64
}

func City(name string) Source { return Source{Kind: SourceCity, City: strings.TrimSpace(name)} }

func Coords(lat, lon float64) Source { return Source{Kind: SourceCoords, Lat: lat, Lon: lon} }

func (s Source) String() string {
	switch s.Kind {
	case SourceCity:
		return s.City
	case SourceCoords:
		return fmt.Sprintf("%.4f,%.4f", s.Lat, s.Lon)
	}
	return "none"
}

// Provider performs exactly one outbound request per call.
type Provider interface {
	Current(ctx context.Context, src Source) (Snapshot, error)
}

var (
	// ErrNoLocation means there was no query, no geolocation and no
	// fallback city.
	ErrNoLocation = errors.New("no location provided")
	// ErrLocationDenied means geolocation is disabled or unavailable.
	ErrLocationDenied = errors.New("geolocation unavailable")
)

// APIError is a non-success HTTP response.
type APIError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *APIError) Error() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("failed to fetch weather: %s", e.Status)
	}
	return fmt.Sprintf("failed to fetch weather: %s - %s", e.Status, body)
}

// NotFound reports whether the service did not recognise the location.
func (e *APIError) NotFound() bool {
	return e.StatusCode == 404
}

// ParseError is a response that could not be turned into a Snapshot.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse weather response: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Message renders err for the error panel. Network and parse failures look
// the same to the user.
func Message(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrNoLocation) {
		return "No location provided"
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "Failed to fetch weather data: request timed out"
	}
	return err.Error()
}

// Glyph maps an OpenWeather icon id (e.g. "01d") to a terminal glyph. The
// condition is used when the icon id is empty.
func Glyph(iconID, condition string) string {
	code := iconID
	if len(code) >= 2 {
		code = code[:2]
	}
	switch code {
	case "01":
		if strings.HasSuffix(iconID, "n") {
			return "☾"
		}
		return "☀"
	case "02", "03", "04":
		return "☁"
	case "09", "10":
		return "☂"
	case "11":
		return "⚡"
	case "13":
		return "❄"
	case "50":
		return "≋"
	}
	switch strings.ToLower(condition) {
	case "sunny", "clear":
		return "☀"
	case "rainy", "rain", "drizzle":
		return "☂"
	case "snowy", "snow":
		return "❄"
	}
	return "☁"
}
