package domain

import (
	"math"
	"strconv"
	"strings"
)

// inHgPerHPa converts hectopascals to inches of mercury.
const inHgPerHPa = 0.02953

// NormalizePressure reconciles the feed's unlabeled pressure fields
// into both inches of mercury and hectopascals.
//
// The altimeter field is disambiguated by magnitude: plausible inHg
// readings sit around 27-31 while hPa readings sit around 980-1040, so
// values above 60 are treated as hPa. When no altimeter is reported
// the separate pressure field (always hPa) is used instead. With
// neither, both outputs are absent.
func NormalizePressure(altim, press Scalar) (inHg, hPa *float64) {
	if a, ok := altim.Float(); ok {
		if a > 60 {
			return ptrFloat(round2(a * inHgPerHPa)), ptrFloat(a)
		}
		return ptrFloat(round2(a)), ptrFloat(math.Round(a / inHgPerHPa))
	}
	if p, ok := press.Float(); ok {
		return ptrFloat(round2(p * inHgPerHPa)), ptrFloat(p)
	}
	return nil, nil
}

// ParseVisibility extracts a statute-mile distance from the feed's
// visibility encodings: a plain number, a trailing "+" ("10+"), a
// "P<n>SM" prevailing value, or a bare "<n>SM". Unparseable input
// yields nil, never zero.
func ParseVisibility(raw Scalar) *float64 {
	if v, ok := raw.Float(); ok {
		return ptrFloat(v)
	}
	s := raw.Text()
	if s == "" {
		return nil
	}
	s = strings.TrimSuffix(s, "+")
	if strings.HasSuffix(s, "SM") {
		s = strings.TrimSuffix(s, "SM")
		s = strings.TrimPrefix(s, "P")
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil
	}
	return ptrFloat(v)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func ptrFloat(v float64) *float64 { return &v }

func ptrInt(v int) *int { return &v }

func ptrString(s string) *string { return &s }
