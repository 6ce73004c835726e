package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hangarline/avwx-etl/internal/domain"
)

func obsFor(station string) domain.EnrichedObservation {
	return domain.EnrichedObservation{StationID: station}
}

func TestStore_PutAndGet(t *testing.T) {
	s := New(10)

	s.PutObservation(obsFor("KBOS"))

	rec, ok := s.Get("KBOS")
	require.True(t, ok)
	require.NotNil(t, rec.Observation)
	assert.Equal(t, "KBOS", rec.Observation.StationID)
	assert.Nil(t, rec.Forecast)

	_, ok = s.Get("KJFK")
	assert.False(t, ok)
}

func TestStore_ForecastJoinsObservation(t *testing.T) {
	s := New(10)

	s.PutObservation(obsFor("KBOS"))
	s.PutForecast(domain.EnrichedForecast{StationID: "KBOS"})

	rec, ok := s.Get("KBOS")
	require.True(t, ok)
	assert.NotNil(t, rec.Observation)
	assert.NotNil(t, rec.Forecast)
}

func TestStore_UpdateReplacesObservation(t *testing.T) {
	s := New(10)

	first := obsFor("KBOS")
	first.Condition = "sunny"
	second := obsFor("KBOS")
	second.Condition = "rainy"

	s.PutObservation(first)
	s.PutObservation(second)

	rec, ok := s.Get("KBOS")
	require.True(t, ok)
	assert.Equal(t, "rainy", rec.Observation.Condition)
	assert.Equal(t, 1, s.Len())
}

func TestStore_Eviction(t *testing.T) {
	s := New(2)

	s.PutObservation(obsFor("KBOS"))
	s.PutObservation(obsFor("KJFK"))
	s.PutObservation(obsFor("EGLL")) // evicts KBOS

	_, ok := s.Get("KBOS")
	assert.False(t, ok, "KBOS should have been evicted")
	_, ok = s.Get("KJFK")
	assert.True(t, ok)
	_, ok = s.Get("EGLL")
	assert.True(t, ok)
}

func TestStore_AccessPromotesEntry(t *testing.T) {
	s := New(2)

	s.PutObservation(obsFor("KBOS"))
	s.PutObservation(obsFor("KJFK"))

	// Access KBOS to promote it.
	s.Get("KBOS")

	s.PutObservation(obsFor("EGLL")) // evicts KJFK, not KBOS

	_, ok := s.Get("KBOS")
	assert.True(t, ok, "KBOS was accessed recently, should not be evicted")
	_, ok = s.Get("KJFK")
	assert.False(t, ok, "KJFK should have been evicted")
}

func TestStore_StationsSorted(t *testing.T) {
	s := New(10)

	s.PutObservation(obsFor("KJFK"))
	s.PutObservation(obsFor("EGLL"))
	s.PutObservation(obsFor("KBOS"))

	assert.Equal(t, []string{"EGLL", "KBOS", "KJFK"}, s.Stations())
}
