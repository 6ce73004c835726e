package hass

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/hangarline/avwx-etl/internal/domain"
	"github.com/hangarline/avwx-etl/internal/store"
)

// maxForecastPeriods caps the forecast attribute on the weather entity;
// Home Assistant cards rarely render more.
const maxForecastPeriods = 8

// Client pushes entity states to the Home Assistant Supervisor REST
// API. It implements pipeline.StatePublisher.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a Supervisor states client. baseURL is the API
// root, e.g. http://supervisor/core/api.
func NewClient(baseURL, token string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// entityState is the Supervisor states API request body.
type entityState struct {
	State      string         `json:"state"`
	Attributes map[string]any `json:"attributes,omitempty"`
}

// PublishStates pushes the station's sensor and weather entities. Every
// entity is attempted; failures are joined into one error.
func (c *Client) PublishStates(ctx context.Context, rec store.Record) error {
	obs := rec.Observation
	if obs == nil {
		return nil
	}

	prefix := "aviation_weather_" + strings.ToLower(obs.StationID)

	var errs []error
	for entity, state := range sensorEntities(prefix, obs) {
		if err := c.setState(ctx, entity, state); err != nil {
			errs = append(errs, err)
		}
	}
	if err := c.setState(ctx, "weather."+prefix, weatherEntity(obs, rec.Forecast)); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (c *Client) setState(ctx context.Context, entity string, state entityState) error {
	body, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("serialize %s: %w", entity, err)
	}

	u := fmt.Sprintf("%s/states/%s", c.baseURL, entity)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request for %s: %w", entity, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("post %s: %w", entity, err)
	}
	defer resp.Body.Close()

	// 200 updates an existing entity, 201 creates it.
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		msg, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("supervisor API error for %s: status %d: %s", entity, resp.StatusCode, msg)
	}

	c.logger.Debug("entity state published", "entity", entity, "status", resp.StatusCode)
	return nil
}

func sensorEntities(prefix string, obs *domain.EnrichedObservation) map[string]entityState {
	station := obs.StationID
	entities := map[string]entityState{
		"sensor." + prefix + "_temperature": {
			State: floatState(obs.TempC),
			Attributes: map[string]any{
				"unit_of_measurement": "°C",
				"device_class":        "temperature",
				"friendly_name":       station + " Temperature",
			},
		},
		"sensor." + prefix + "_dewpoint": {
			State: floatState(obs.DewpointC),
			Attributes: map[string]any{
				"unit_of_measurement": "°C",
				"device_class":        "temperature",
				"friendly_name":       station + " Dewpoint",
			},
		},
		"sensor." + prefix + "_humidity": {
			State: floatState(obs.HumidityPct),
			Attributes: map[string]any{
				"unit_of_measurement": "%",
				"device_class":        "humidity",
				"friendly_name":       station + " Humidity",
			},
		},
		"sensor." + prefix + "_wind_speed": {
			State: floatState(obs.WindSpeedKt),
			Attributes: map[string]any{
				"unit_of_measurement": "kt",
				"friendly_name":       station + " Wind Speed",
				"wind_variable":       obs.WindVariable,
			},
		},
		"sensor." + prefix + "_pressure": {
			State: floatState(obs.AltimeterInHg),
			Attributes: map[string]any{
				"unit_of_measurement": "inHg",
				"device_class":        "pressure",
				"friendly_name":       station + " Altimeter",
			},
		},
		"sensor." + prefix + "_visibility": {
			State: floatState(obs.VisibilitySM),
			Attributes: map[string]any{
				"unit_of_measurement": "SM",
				"friendly_name":       station + " Visibility",
			},
		},
	}

	category := entityState{
		State: "unknown",
		Attributes: map[string]any{
			"friendly_name": station + " Flight Category",
			"raw_metar":     obs.RawText,
		},
	}
	if obs.FlightCategory != nil {
		category.State = *obs.FlightCategory
	}
	if obs.CeilingFeet != nil {
		category.Attributes["ceiling_ft"] = *obs.CeilingFeet
	}
	if obs.WxDecoded != nil {
		category.Attributes["weather"] = *obs.WxDecoded
	}
	entities["sensor."+prefix+"_flight_category"] = category

	return entities
}

func weatherEntity(obs *domain.EnrichedObservation, fc *domain.EnrichedForecast) entityState {
	attrs := map[string]any{
		"friendly_name": obs.StationID + " Aviation Weather",
		"attribution":   "Data provided by the NOAA Aviation Weather Center",
	}
	if obs.TempC != nil {
		attrs["temperature"] = *obs.TempC
	}
	if obs.HumidityPct != nil {
		attrs["humidity"] = *obs.HumidityPct
	}
	if obs.PressureHPa != nil {
		attrs["pressure"] = *obs.PressureHPa
	}
	if obs.WindSpeedKt != nil {
		attrs["wind_speed"] = *obs.WindSpeedKt
	}
	if obs.WindDirDeg != nil && !obs.WindVariable {
		attrs["wind_bearing"] = *obs.WindDirDeg
	}
	if obs.VisibilitySM != nil {
		attrs["visibility"] = *obs.VisibilitySM
	}
	if obs.CloudCoveragePct != nil {
		attrs["cloud_coverage"] = *obs.CloudCoveragePct
	}

	if fc != nil && len(fc.Periods) > 0 {
		periods := fc.Periods
		if len(periods) > maxForecastPeriods {
			periods = periods[:maxForecastPeriods]
		}
		entries := make([]map[string]any, 0, len(periods))
		for _, p := range periods {
			entry := map[string]any{
				"type":    p.Type,
				"summary": p.Summary,
			}
			if p.ValidFrom != nil {
				entry["datetime"] = p.ValidFrom.ISO
			}
			if p.FlightCategory != nil {
				entry["flight_category"] = *p.FlightCategory
			}
			entries = append(entries, entry)
		}
		attrs["forecast"] = entries
	}

	state := obs.Condition
	if state == "" {
		state = "unknown"
	}
	return entityState{State: state, Attributes: attrs}
}

func floatState(v *float64) string {
	if v == nil {
		return "unknown"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
