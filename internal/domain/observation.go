package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Scalar is a JSON value that may arrive as a number or a string,
// depending on the feed backend. Absent and null both decode to an
// unset Scalar so downstream code can distinguish "not reported" from
// any legal value (including 0).
type Scalar struct {
	num   float64
	str   string
	isNum bool
	set   bool
}

// NumberScalar returns a Scalar holding a numeric value. Used by tests
// and fixtures.
func NumberScalar(v float64) Scalar {
	return Scalar{num: v, isNum: true, set: true}
}

// StringScalar returns a Scalar holding a string value.
func StringScalar(s string) Scalar {
	return Scalar{str: s, set: true}
}

func (s *Scalar) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*s = Scalar{}
		return nil
	}
	var n float64
	if err := json.Unmarshal(b, &n); err == nil {
		*s = Scalar{num: n, isNum: true, set: true}
		return nil
	}
	var str string
	if err := json.Unmarshal(b, &str); err == nil {
		*s = Scalar{str: str, set: true}
		return nil
	}
	// Booleans, objects and arrays never legally occupy these fields;
	// keep the raw text so it can pass through as-is.
	*s = Scalar{str: string(b), set: true}
	return nil
}

func (s Scalar) MarshalJSON() ([]byte, error) {
	switch {
	case !s.set:
		return []byte("null"), nil
	case s.isNum:
		return json.Marshal(s.num)
	default:
		return json.Marshal(s.str)
	}
}

// Present reports whether the field was set in the source record.
func (s Scalar) Present() bool { return s.set }

// Float returns the value as a float64, parsing numeric strings.
func (s Scalar) Float() (float64, bool) {
	if !s.set {
		return 0, false
	}
	if s.isNum {
		return s.num, true
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s.str), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Text returns the value in string form: the string itself, or a
// number formatted without a trailing ".0" for whole values.
func (s Scalar) Text() string {
	if !s.set {
		return ""
	}
	if s.isNum {
		return strconv.FormatFloat(s.num, 'f', -1, 64)
	}
	return strings.TrimSpace(s.str)
}

// RawCloud is one sky-condition layer as reported by the feed.
type RawCloud struct {
	Cover string   `json:"cover"`
	Base  *float64 `json:"base"`
	Type  string   `json:"type,omitempty"`
}

// RawMETAR is one observation record as returned by the weather
// provider. Immutable input: enrichment only reads it. Field presence
// is optional and independently absent.
type RawMETAR struct {
	StationID   string     `json:"icaoId"`
	StationName string     `json:"name,omitempty"`
	Latitude    *float64   `json:"lat,omitempty"`
	Longitude   *float64   `json:"lon,omitempty"`
	ObsTime     Scalar     `json:"obsTime,omitempty"`
	Temp        *float64   `json:"temp,omitempty"`
	Dewpoint    *float64   `json:"dewp,omitempty"`
	WindDir     Scalar     `json:"wdir,omitempty"`
	WindSpeed   *float64   `json:"wspd,omitempty"`
	WindGust    *float64   `json:"wgst,omitempty"`
	Visibility  Scalar     `json:"visib,omitempty"`
	Altimeter   Scalar     `json:"altim,omitempty"`
	Pressure    Scalar     `json:"slp,omitempty"`
	WxString    string     `json:"wxString,omitempty"`
	Cover       string     `json:"cover,omitempty"`
	Clouds      []RawCloud `json:"clouds,omitempty"`
	Ceiling     *float64   `json:"ceil,omitempty"`
	FlightCat   string     `json:"fltCat,omitempty"`
	RawText     string     `json:"rawOb,omitempty"`
}

// CloudLayer is a decoded sky-condition layer. CoverageOktas is
// present iff the cover code is in the known coverage table; unknown
// codes pass through verbatim as both code and text.
type CloudLayer struct {
	Cover         string  `json:"cover"`
	CoverText     string  `json:"cover_text"`
	CoverageOktas *string `json:"coverage_detail,omitempty"`
	BaseFeetAGL   *int    `json:"base_ft_agl,omitempty"`
	BaseText      *string `json:"base_text,omitempty"`
	TypeCode      *string `json:"cloud_type_code,omitempty"`
	TypeText      *string `json:"cloud_type,omitempty"`
}

// LocalTimes is one timestamp rendered for both machine and human
// consumption. When the source value could not be interpreted, all
// string slots carry the original input unchanged and Parsed is zero.
type LocalTimes struct {
	UTC        string    `json:"utc"`
	Local      string    `json:"local"`
	LocalShort string    `json:"local_short"`
	ISO        string    `json:"iso,omitempty"`
	Parsed     time.Time `json:"-"`
}

// EnrichedObservation is the normalized output record for one METAR.
// Created once per fetch cycle and never mutated afterwards; ownership
// transfers to the publish/store sinks. Optional fields are nil when
// the source lacked the underlying signal.
type EnrichedObservation struct {
	StationID   string `json:"station_id"`
	StationName string `json:"station_name,omitempty"`
	RawText     string `json:"raw_text,omitempty"`

	TempC       *float64 `json:"temp_c,omitempty"`
	DewpointC   *float64 `json:"dewpoint_c,omitempty"`
	HumidityPct *float64 `json:"humidity_pct,omitempty"`

	// WindDirDeg keeps 0 distinct from absent: 0 with WindVariable set
	// means the feed reported a variable direction, not north.
	WindDirDeg   *int     `json:"wind_dir_deg,omitempty"`
	WindVariable bool     `json:"wind_variable,omitempty"`
	WindSpeedKt  *float64 `json:"wind_speed_kt,omitempty"`
	WindGustKt   *float64 `json:"wind_gust_kt,omitempty"`

	VisibilitySM  *float64 `json:"visibility_sm,omitempty"`
	AltimeterInHg *float64 `json:"altimeter_inhg,omitempty"`
	PressureHPa   *float64 `json:"pressure_hpa,omitempty"`

	WxString  string  `json:"wx_string,omitempty"`
	WxDecoded *string `json:"wx_decoded,omitempty"`

	CloudLayers      []CloudLayer `json:"cloud_layers,omitempty"`
	CeilingFeet      *int         `json:"ceiling_ft,omitempty"`
	FlightCategory   *string      `json:"flight_category,omitempty"`
	Condition        string       `json:"condition,omitempty"`
	CloudCoveragePct *int         `json:"cloud_coverage_pct,omitempty"`

	ObservedAt  *LocalTimes `json:"observed_at,omitempty"`
	ProcessedAt time.Time   `json:"processed_at"`
}
