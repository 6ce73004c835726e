package domain

import "math"

// Magnus formula coefficients, valid for -45°C to +60°C over water.
const (
	magnusA = 17.625
	magnusB = 243.04
)

// RelativeHumidity derives relative humidity (percent, one decimal)
// from air temperature and dewpoint in °C using the Magnus
// approximation. The result is clamped to [0, 100]; a dewpoint above
// the temperature is a feed artifact, not supersaturation worth
// reporting.
func RelativeHumidity(tempC, dewpointC float64) float64 {
	rh := 100 * math.Exp(magnusA*dewpointC/(magnusB+dewpointC)) /
		math.Exp(magnusA*tempC/(magnusB+tempC))
	rh = math.Round(rh*10) / 10
	return math.Min(100, math.Max(0, rh))
}
