package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"nordcast/internal/forecast"
)

type AppConfig struct {
	// UserAgent identifies this deployment to the origin API. The origin
	// requires it, so there is no default.
	UserAgent string

	// Locations to track.
	Locations []forecast.Location

	// RefreshInterval controls how often the scheduler re-checks each
	// location. The origin's Expires header still governs whether any
	// network traffic happens.
	RefreshInterval time.Duration

	HTTPTimeout time.Duration

	// Outbound traffic limits applied around the client.
	RateLimitRPS float64
	MaxInFlight  int64

	// DisplayTimezone is the timezone days are grouped in.
	DisplayTimezone *time.Location

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.UserAgent = os.Getenv("NORDCAST_USER_AGENT")
	if cfg.UserAgent == "" {
		return nil, fmt.Errorf("NORDCAST_USER_AGENT is required (application name and contact, e.g. \"nordcast/1.0 ops@example.com\")")
	}

	locs, err := parseLocations(os.Getenv("NORDCAST_LOCATIONS"))
	if err != nil {
		return nil, err
	}
	cfg.Locations = locs

	interval, err := time.ParseDuration(getenvDefault("REFRESH_INTERVAL", "10m"))
	if err != nil {
		return nil, fmt.Errorf("invalid REFRESH_INTERVAL: %w", err)
	}
	cfg.RefreshInterval = interval

	timeout, err := time.ParseDuration(getenvDefault("HTTP_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	rps, err := strconv.ParseFloat(getenvDefault("RATE_LIMIT_RPS", "10"), 64)
	if err != nil || rps <= 0 {
		return nil, fmt.Errorf("invalid RATE_LIMIT_RPS: %q", getenvDefault("RATE_LIMIT_RPS", "10"))
	}
	cfg.RateLimitRPS = rps

	cfg.MaxInFlight = int64(getenvInt("MAX_IN_FLIGHT", 4))
	if cfg.MaxInFlight <= 0 {
		return nil, fmt.Errorf("MAX_IN_FLIGHT must be positive")
	}

	tz, err := time.LoadLocation(getenvDefault("DISPLAY_TIMEZONE", "UTC"))
	if err != nil {
		return nil, fmt.Errorf("invalid DISPLAY_TIMEZONE: %w", err)
	}
	cfg.DisplayTimezone = tz

	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

// parseLocations parses a comma-separated list of Name:lat:lon or
// Name:lat:lon:alt entries, e.g. "Oslo:59.9139:10.7522,Praha:50.088:14.4207:202".
func parseLocations(raw string) ([]forecast.Location, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("NORDCAST_LOCATIONS is required (comma-separated Name:lat:lon[:alt] entries)")
	}

	var locs []forecast.Location
	for _, item := range strings.Split(raw, ",") {
		parts := strings.Split(strings.TrimSpace(item), ":")
		if len(parts) != 3 && len(parts) != 4 {
			return nil, fmt.Errorf("invalid location entry %q: want Name:lat:lon[:alt]", item)
		}

		name := strings.TrimSpace(parts[0])
		if name == "" {
			return nil, fmt.Errorf("invalid location entry %q: empty name", item)
		}

		lat, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid latitude in location entry %q: %w", item, err)
		}
		lon, err := strconv.ParseFloat(parts[2], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid longitude in location entry %q: %w", item, err)
		}

		loc := forecast.Location{Name: name, Lat: lat, Lon: lon}
		if len(parts) == 4 {
			alt, err := strconv.Atoi(parts[3])
			if err != nil {
				return nil, fmt.Errorf("invalid altitude in location entry %q: %w", item, err)
			}
			loc.Alt = &alt
		}

		locs = append(locs, loc)
	}

	return locs, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}
