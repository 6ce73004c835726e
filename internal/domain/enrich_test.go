package domain

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/utils/ptr"
)

func TestEnrichObservation(t *testing.T) {
	frozen := time.Date(2024, 4, 26, 16, 0, 0, 0, time.UTC)
	SetClock(clockwork.NewFakeClockAt(frozen))
	defer SetClock(nil)

	e := NewEnricher(time.UTC, nil)

	t.Run("rainy overcast observation", func(t *testing.T) {
		raw := RawMETAR{
			StationID:  "KBOS",
			ObsTime:    NumberScalar(1714144200), // 2024-04-26 15:10 UTC
			Temp:       ptr.To(22.0),
			Dewpoint:   ptr.To(15.0),
			WindDir:    NumberScalar(0),
			WindSpeed:  ptr.To(5.0),
			Visibility: StringScalar("10"),
			Altimeter:  NumberScalar(1013.2),
			WxString:   "-RA",
			Cover:      "OVC",
			Clouds:     []RawCloud{{Cover: "OVC", Base: ptr.To(800.0)}},
			RawText:    "KBOS 261510Z 00005KT 10SM -RA OVC008 22/15 A2992",
		}

		obs := e.EnrichObservation(raw)

		assert.Equal(t, "KBOS", obs.StationID)
		assert.Equal(t, raw.RawText, obs.RawText)

		require.NotNil(t, obs.WxDecoded)
		assert.Equal(t, "Light Rain", *obs.WxDecoded)

		require.Len(t, obs.CloudLayers, 1)
		assert.Equal(t, "Overcast", obs.CloudLayers[0].CoverText)

		require.NotNil(t, obs.CeilingFeet)
		assert.Equal(t, 800, *obs.CeilingFeet)

		// Direction 0 reads as variable, never as a north bearing.
		require.NotNil(t, obs.WindDirDeg)
		assert.Equal(t, 0, *obs.WindDirDeg)
		assert.True(t, obs.WindVariable)

		require.NotNil(t, obs.VisibilitySM)
		assert.Equal(t, 10.0, *obs.VisibilitySM)

		require.NotNil(t, obs.FlightCategory)
		assert.Equal(t, CategoryIFR, *obs.FlightCategory)

		require.NotNil(t, obs.ObservedAt)
		assert.Equal(t, "2024-04-26 15:10 UTC", obs.ObservedAt.UTC)

		require.NotNil(t, obs.AltimeterInHg)
		assert.InDelta(t, 29.92, *obs.AltimeterInHg, 0.001)
		require.NotNil(t, obs.PressureHPa)
		assert.Equal(t, 1013.2, *obs.PressureHPa)

		require.NotNil(t, obs.HumidityPct)
		assert.InDelta(t, 64.5, *obs.HumidityPct, 0.1)

		assert.Equal(t, "rainy", obs.Condition)
		require.NotNil(t, obs.CloudCoveragePct)
		assert.Equal(t, 100, *obs.CloudCoveragePct)

		assert.Equal(t, frozen, obs.ProcessedAt)
	})

	t.Run("provider flight category passes through", func(t *testing.T) {
		obs := e.EnrichObservation(RawMETAR{
			StationID:  "KJFK",
			Visibility: NumberScalar(10),
			FlightCat:  "LIFR",
		})
		require.NotNil(t, obs.FlightCategory)
		assert.Equal(t, "LIFR", *obs.FlightCategory)
	})

	t.Run("VRB wind has no bearing", func(t *testing.T) {
		obs := e.EnrichObservation(RawMETAR{
			StationID: "KJFK",
			WindDir:   StringScalar("VRB"),
			WindSpeed: ptr.To(3.0),
		})
		assert.Nil(t, obs.WindDirDeg)
		assert.True(t, obs.WindVariable)
	})

	t.Run("ceil field backstops missing layer bases", func(t *testing.T) {
		obs := e.EnrichObservation(RawMETAR{
			StationID: "KJFK",
			Clouds:    []RawCloud{{Cover: "BKN"}},
			Ceiling:   ptr.To(1200.0),
		})
		require.NotNil(t, obs.CeilingFeet)
		assert.Equal(t, 1200, *obs.CeilingFeet)
	})

	t.Run("empty record stays empty", func(t *testing.T) {
		obs := e.EnrichObservation(RawMETAR{StationID: "KJFK"})
		assert.Nil(t, obs.TempC)
		assert.Nil(t, obs.HumidityPct)
		assert.Nil(t, obs.WindDirDeg)
		assert.False(t, obs.WindVariable)
		assert.Nil(t, obs.VisibilitySM)
		assert.Nil(t, obs.FlightCategory)
		assert.Nil(t, obs.ObservedAt)
		assert.Nil(t, obs.AltimeterInHg)
		assert.Empty(t, obs.CloudLayers)
		assert.Equal(t, "sunny", obs.Condition)
		assert.Nil(t, obs.CloudCoveragePct)
	})
}

func TestEnrichForecast(t *testing.T) {
	frozen := time.Date(2024, 4, 26, 16, 0, 0, 0, time.UTC)
	SetClock(clockwork.NewFakeClockAt(frozen))
	defer SetClock(nil)

	e := NewEnricher(time.UTC, nil)

	t.Run("two change groups", func(t *testing.T) {
		fc := e.EnrichForecast(RawTAF{
			StationID:     "KBOS",
			IssueTime:     NumberScalar(1714140000),
			ValidTimeFrom: NumberScalar(1714143600),
			ValidTimeTo:   NumberScalar(1714230000),
			Fcsts: []RawForecastPeriod{
				{
					TimeFrom:  NumberScalar(1714143600),
					TimeTo:    NumberScalar(1714165200),
					WindDir:   NumberScalar(180),
					WindSpeed: ptr.To(10.0),
				},
				{
					TimeFrom:   NumberScalar(1714165200),
					TimeTo:     NumberScalar(1714230000),
					FcstChange: "TEMPO",
					WxString:   "TSRA",
				},
			},
			RawText: "TAF KBOS ...",
		})

		assert.Equal(t, "KBOS", fc.StationID)
		require.NotNil(t, fc.IssuedAt)
		require.Len(t, fc.Periods, 2)
		assert.Equal(t, "Base", fc.Periods[0].Type)
		require.NotNil(t, fc.Periods[0].Wind)
		assert.Equal(t, "180° (S) at 10 kt", *fc.Periods[0].Wind)
		assert.Equal(t, "TEMPO", fc.Periods[1].Type)
		require.NotNil(t, fc.Periods[1].Weather)
		assert.Equal(t, "Thunderstorm Rain", *fc.Periods[1].Weather)
		assert.Equal(t, frozen, fc.ProcessedAt)
	})

	t.Run("legacy forecast field name", func(t *testing.T) {
		fc := e.EnrichForecast(RawTAF{
			StationID: "KBOS",
			Forecast:  []RawForecastPeriod{{FcstChange: "FM"}},
		})
		require.Len(t, fc.Periods, 1)
		assert.Equal(t, "FM", fc.Periods[0].Type)
	})

	t.Run("no periods", func(t *testing.T) {
		fc := e.EnrichForecast(RawTAF{StationID: "KBOS"})
		assert.Empty(t, fc.Periods)
	})
}

func TestRelativeHumidity(t *testing.T) {
	tests := []struct {
		name     string
		temp     float64
		dewpoint float64
		expected float64
	}{
		{"saturated", 15, 15, 100},
		{"typical", 22, 15, 64.5},
		{"dry", 30, 2, 16.7},
		{"below freezing", -5, -10, 68.0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.expected, RelativeHumidity(tc.temp, tc.dewpoint), 0.1)
		})
	}
}

func TestConditionFor(t *testing.T) {
	tests := []struct {
		wx       string
		category string
		expected string
	}{
		{"TSRA", "", "lightning-rainy"},
		{"TS", "", "lightning"},
		{"-SN", "", "snowy"},
		{"RASN", "", "snowy-rainy"},
		{"GR", "", "hail"},
		{"+RA", "", "pouring"},
		{"SHRA", "", "pouring"},
		{"-RA", "IFR", "rainy"},
		{"DZ", "", "rainy"},
		{"FG", "", "fog"},
		{"BR", "", "fog"},
		{"HZ", "VFR", "sunny"},
		{"", "MVFR", "partlycloudy"},
		{"", "IFR", "cloudy"},
		{"", "LIFR", "cloudy"},
		{"", "VFR", "sunny"},
		{"", "", "sunny"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.expected, ConditionFor(tc.wx, tc.category),
			"wx=%q category=%q", tc.wx, tc.category)
	}
}
