package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	Stations       []string
	UpdateInterval time.Duration
	IncludeTAF     bool
	StationDelay   time.Duration
	LocalTZ        string

	APIBaseURL string
	APITimeout time.Duration

	KafkaBrokers   []string
	KafkaSinkTopic string

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	StoreSize int

	// Home Assistant Supervisor publishing.
	SupervisorToken string
	HassAPIURL      string
	HassEnabled     bool
	HassTimeout     time.Duration
	SensorStation   string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	updateInterval, err := parseDurationEnv("UPDATE_INTERVAL", "30m")
	if err != nil {
		return nil, err
	}

	stationDelay, err := parseDurationEnv("STATION_DELAY", "700ms")
	if err != nil {
		return nil, err
	}

	apiTimeout, err := parseDurationEnv("API_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	shutdownTimeout, err := parseDurationEnv("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	hassTimeout, err := parseDurationEnv("HASS_TIMEOUT", "5s")
	if err != nil {
		return nil, err
	}

	storeSize, err := parsePositiveIntEnv("STORE_SIZE", 100)
	if err != nil {
		return nil, err
	}

	supervisorToken := os.Getenv("SUPERVISOR_TOKEN")
	hassEnabled := supervisorToken != ""
	if v := os.Getenv("HASS_ENABLED"); v != "" {
		hassEnabled = v == "true"
	}

	stations := splitList(os.Getenv("STATIONS"))

	cfg := &Config{
		Stations:       stations,
		UpdateInterval: updateInterval,
		IncludeTAF:     envOrDefault("INCLUDE_TAF", "true") == "true",
		StationDelay:   stationDelay,
		LocalTZ:        os.Getenv("LOCAL_TZ"),

		APIBaseURL: envOrDefault("API_BASE_URL", "https://aviationweather.gov/api/data"),
		APITimeout: apiTimeout,

		KafkaBrokers:   splitList(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSinkTopic: envOrDefault("KAFKA_SINK_TOPIC", "enriched-aviation-weather"),

		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8099"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		StoreSize: storeSize,

		SupervisorToken: supervisorToken,
		HassAPIURL:      envOrDefault("HASS_API_URL", "http://supervisor/core/api"),
		HassEnabled:     hassEnabled,
		HassTimeout:     hassTimeout,
		SensorStation:   os.Getenv("SENSOR_STATION"),
	}

	if len(cfg.Stations) == 0 {
		return nil, errors.New("STATIONS is required")
	}
	if len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_BROKERS is required")
	}
	if cfg.KafkaSinkTopic == "" {
		return nil, errors.New("KAFKA_SINK_TOPIC is required")
	}
	if cfg.HassEnabled && cfg.SupervisorToken == "" {
		return nil, errors.New("HASS_ENABLED is true but SUPERVISOR_TOKEN is not set")
	}
	if cfg.SensorStation == "" {
		cfg.SensorStation = cfg.Stations[0]
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// splitList parses a comma-separated list, trimming whitespace and
// dropping empty entries.
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func parseDurationEnv(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, def))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parsePositiveIntEnv(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return n, nil
}
