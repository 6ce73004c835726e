package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePressure(t *testing.T) {
	t.Run("altimeter in hPa converts to inHg", func(t *testing.T) {
		inHg, hPa := NormalizePressure(NumberScalar(1013.2), Scalar{})
		require.NotNil(t, inHg)
		require.NotNil(t, hPa)
		assert.InDelta(t, 29.92, *inHg, 0.001)
		assert.Equal(t, 1013.2, *hPa)
	})

	t.Run("altimeter in inHg converts to hPa", func(t *testing.T) {
		inHg, hPa := NormalizePressure(NumberScalar(29.92), Scalar{})
		require.NotNil(t, inHg)
		require.NotNil(t, hPa)
		assert.Equal(t, 29.92, *inHg)
		assert.Equal(t, 1013.0, *hPa)
	})

	t.Run("threshold value 60 treated as inHg", func(t *testing.T) {
		inHg, hPa := NormalizePressure(NumberScalar(60), Scalar{})
		require.NotNil(t, inHg)
		require.NotNil(t, hPa)
		assert.Equal(t, 60.0, *inHg)
		assert.Equal(t, 2032.0, *hPa)
	})

	t.Run("numeric string altimeter", func(t *testing.T) {
		inHg, hPa := NormalizePressure(StringScalar("1020"), Scalar{})
		require.NotNil(t, inHg)
		assert.InDelta(t, 30.12, *inHg, 0.001)
		assert.Equal(t, 1020.0, *hPa)
	})

	t.Run("falls back to separate pressure field as hPa", func(t *testing.T) {
		inHg, hPa := NormalizePressure(Scalar{}, NumberScalar(1008.5))
		require.NotNil(t, inHg)
		require.NotNil(t, hPa)
		assert.InDelta(t, 29.78, *inHg, 0.001)
		assert.Equal(t, 1008.5, *hPa)
	})

	t.Run("altimeter wins over pressure field", func(t *testing.T) {
		inHg, hPa := NormalizePressure(NumberScalar(30.01), NumberScalar(990))
		require.NotNil(t, inHg)
		assert.Equal(t, 30.01, *inHg)
		assert.Equal(t, 1016.0, *hPa)
	})

	t.Run("neither field present", func(t *testing.T) {
		inHg, hPa := NormalizePressure(Scalar{}, Scalar{})
		assert.Nil(t, inHg)
		assert.Nil(t, hPa)
	})

	t.Run("garbage altimeter string ignored", func(t *testing.T) {
		inHg, hPa := NormalizePressure(StringScalar("unknown"), Scalar{})
		assert.Nil(t, inHg)
		assert.Nil(t, hPa)
	})
}

func TestParseVisibility(t *testing.T) {
	tests := []struct {
		name     string
		raw      Scalar
		expected *float64
	}{
		{"plain number", NumberScalar(10), ptrFloat(10)},
		{"numeric string", StringScalar("10"), ptrFloat(10)},
		{"trailing plus", StringScalar("10+"), ptrFloat(10)},
		{"prevailing encoding", StringScalar("P6SM"), ptrFloat(6)},
		{"bare SM suffix", StringScalar("6SM"), ptrFloat(6)},
		{"fractional value", StringScalar("0.5"), ptrFloat(0.5)},
		{"garbage", StringScalar("////"), nil},
		{"empty string", StringScalar(""), nil},
		{"absent", Scalar{}, nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseVisibility(tc.raw)
			if tc.expected == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tc.expected, *got)
		})
	}
}
