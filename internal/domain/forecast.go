package domain

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// RawForecastPeriod is one TAF change group as returned by the feed.
// The validity window arrives under either of two field-name pairs;
// the Unix-timestamp pair (timeFrom/timeTo) is preferred.
type RawForecastPeriod struct {
	TimeFrom      Scalar     `json:"timeFrom,omitempty"`
	TimeTo        Scalar     `json:"timeTo,omitempty"`
	ValidTimeFrom Scalar     `json:"validTimeFrom,omitempty"`
	ValidTimeTo   Scalar     `json:"validTimeTo,omitempty"`
	FcstChange    string     `json:"fcstChange,omitempty"`
	FcstType      string     `json:"fcstType,omitempty"`
	Probability   *int       `json:"probability,omitempty"`
	WindDir       Scalar     `json:"wdir,omitempty"`
	WindSpeed     *float64   `json:"wspd,omitempty"`
	WindGust      *float64   `json:"wgst,omitempty"`
	Visibility    Scalar     `json:"visib,omitempty"`
	WxString      string     `json:"wxString,omitempty"`
	Clouds        []RawCloud `json:"clouds,omitempty"`
	FlightCat     string     `json:"fltCat,omitempty"`
	RawText       string     `json:"raw,omitempty"`
}

// RawTAF is one forecast record as returned by the weather provider.
type RawTAF struct {
	StationID     string              `json:"icaoId"`
	IssueTime     Scalar              `json:"issueTime,omitempty"`
	ValidTimeFrom Scalar              `json:"validTimeFrom,omitempty"`
	ValidTimeTo   Scalar              `json:"validTimeTo,omitempty"`
	Fcsts         []RawForecastPeriod `json:"fcsts,omitempty"`
	Forecast      []RawForecastPeriod `json:"forecast,omitempty"`
	RawText       string              `json:"rawTAF,omitempty"`
}

// Periods returns the forecast-period array under whichever field name
// the feed used, preferring "fcsts" (the current API spelling).
func (t RawTAF) Periods() []RawForecastPeriod {
	if len(t.Fcsts) > 0 {
		return t.Fcsts
	}
	return t.Forecast
}

// ForecastPeriod is one decoded TAF change group. Order follows the
// source record; the provider does not guarantee chronological order.
type ForecastPeriod struct {
	RawText        string       `json:"raw,omitempty"`
	Type           string       `json:"type"`
	Probability    *int         `json:"probability,omitempty"`
	ValidFrom      *LocalTimes  `json:"valid_from,omitempty"`
	ValidTo        *LocalTimes  `json:"valid_to,omitempty"`
	Wind           *string      `json:"wind,omitempty"`
	WindCardinal   *string      `json:"wind_cardinal,omitempty"`
	Visibility     *string      `json:"visibility,omitempty"`
	Weather        *string      `json:"weather,omitempty"`
	WeatherRaw     string       `json:"weather_raw,omitempty"`
	Clouds         []CloudLayer `json:"clouds,omitempty"`
	FlightCategory *string      `json:"flight_category,omitempty"`
	Summary        string       `json:"summary,omitempty"`
}

// EnrichedForecast is the normalized output record for one TAF.
type EnrichedForecast struct {
	StationID   string           `json:"station_id"`
	RawText     string           `json:"raw_text,omitempty"`
	IssuedAt    *LocalTimes      `json:"issued_at,omitempty"`
	ValidFrom   *LocalTimes      `json:"valid_from,omitempty"`
	ValidTo     *LocalTimes      `json:"valid_to,omitempty"`
	Periods     []ForecastPeriod `json:"periods"`
	ProcessedAt time.Time        `json:"processed_at"`
}

var cardinals = [16]string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// Cardinal maps degrees true to one of 16 compass sectors of 22.5°
// each, with conventional half-sector rounding (360° wraps to N).
func Cardinal(deg float64) string {
	ix := int(math.Mod(deg, 360)/22.5+0.5) % 16
	if ix < 0 {
		ix += 16
	}
	return cardinals[ix]
}

// decodePeriod expands one raw TAF period. Each field degrades
// independently; a value that fails to decode is absent, never an
// abort of the rest of the period.
func (e *Enricher) decodePeriod(p RawForecastPeriod) ForecastPeriod {
	out := ForecastPeriod{
		RawText:     p.RawText,
		Type:        periodType(p),
		Probability: p.Probability,
	}

	if p.TimeFrom.Present() {
		out.ValidFrom = LocalizeTime(p.TimeFrom, e.loc)
	} else if p.ValidTimeFrom.Present() {
		out.ValidFrom = LocalizeTime(p.ValidTimeFrom, e.loc)
	}
	if p.TimeTo.Present() {
		out.ValidTo = LocalizeTime(p.TimeTo, e.loc)
	} else if p.ValidTimeTo.Present() {
		out.ValidTo = LocalizeTime(p.ValidTimeTo, e.loc)
	}

	out.Wind, out.WindCardinal = describeWind(p.WindDir, p.WindSpeed, p.WindGust)

	if vis := strings.TrimSpace(p.Visibility.Text()); vis != "" {
		out.Visibility = ptrString(vis + " SM")
	}

	if p.WxString != "" {
		out.Weather = ptrString(DecodeWeather(p.WxString))
		out.WeatherRaw = p.WxString
	}

	if len(p.Clouds) > 0 {
		out.Clouds = DecodeCloudLayers(p.Clouds, "", nil)
	}

	if p.FlightCat != "" {
		out.FlightCategory = ptrString(p.FlightCat)
	}

	out.Summary = summarizePeriod(out)
	return out
}

// periodType resolves the change-group label, falling back to "Base"
// for the leading unmarked group.
func periodType(p RawForecastPeriod) string {
	if p.FcstChange != "" {
		return p.FcstChange
	}
	if p.FcstType != "" {
		return p.FcstType
	}
	return "Base"
}

// describeWind renders a wind phrase and cardinal. A direction that is
// absent or exactly 0 means variable wind and is rendered as
// "variable at N kt" — 0° must never read as "North". The cardinal is
// reported for any numeric direction, including 0.
func describeWind(dir Scalar, speed, gust *float64) (*string, *string) {
	var cardinal *string
	if d, ok := dir.Float(); ok {
		cardinal = ptrString(Cardinal(d))
	}

	if speed == nil {
		return nil, cardinal
	}

	var phrase string
	d, ok := dir.Float()
	if !ok || d == 0 {
		phrase = fmt.Sprintf("variable at %s kt", formatKt(*speed))
	} else {
		phrase = fmt.Sprintf("%.0f° (%s) at %s kt", d, Cardinal(d), formatKt(*speed))
	}
	if gust != nil && *gust != 0 {
		phrase += fmt.Sprintf(" gusting %s kt", formatKt(*gust))
	}
	return &phrase, cardinal
}

func formatKt(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.1f", v)
}

// summarizePeriod synthesizes the single-line human summary: window,
// type, wind, visibility, weather, then at most two cloud layers,
// joined with "; ". Absent fields are skipped.
func summarizePeriod(p ForecastPeriod) string {
	var parts []string

	if p.ValidFrom != nil && p.ValidTo != nil {
		parts = append(parts, p.ValidFrom.LocalShort+"–"+p.ValidTo.LocalShort)
	}
	if p.Type != "" {
		parts = append(parts, p.Type)
	}
	if p.Wind != nil {
		parts = append(parts, "Wind "+*p.Wind)
	}
	if p.Visibility != nil {
		parts = append(parts, "Vis "+*p.Visibility)
	}
	if p.Weather != nil {
		parts = append(parts, *p.Weather)
	}
	if len(p.Clouds) > 0 {
		summaries := make([]string, 0, 2)
		for _, cl := range p.Clouds[:min(2, len(p.Clouds))] {
			text := cl.CoverText
			if text == "" {
				text = cl.Cover
			}
			if cl.BaseText != nil {
				text += " @ " + *cl.BaseText
			}
			if cl.TypeText != nil {
				text += " (" + *cl.TypeText + ")"
			}
			summaries = append(summaries, text)
		}
		parts = append(parts, "Clouds: "+strings.Join(summaries, ", "))
	}

	return strings.Join(parts, "; ")
}
