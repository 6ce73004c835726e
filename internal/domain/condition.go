package domain

import "strings"

// cloudCoverPercent maps overall cover codes to a 0-100 coverage
// figure for home-automation consumers.
var cloudCoverPercent = map[string]int{
	"SKC":   0,
	"CLR":   0,
	"NSC":   0,
	"CAVOK": 0,
	"FEW":   25,
	"SCT":   50,
	"BKN":   75,
	"OVC":   100,
	"VV":    100,
}

// CloudCoveragePercent returns the coverage figure for an overall
// cover code, or nil for unknown/absent codes.
func CloudCoveragePercent(cover string) *int {
	if pct, ok := cloudCoverPercent[cover]; ok {
		return ptrInt(pct)
	}
	return nil
}

// ConditionFor maps a coded present-weather string and flight category
// to a home-automation condition token. With no weather string the
// flight category stands in: VFR reads as clear, MVFR as partly
// cloudy, IFR/LIFR as cloudy. Checks run most-severe first so compound
// codes ("TSRA") land on the severe condition.
func ConditionFor(wxString, flightCategory string) string {
	if wxString == "" {
		return categoryCondition(flightCategory)
	}

	wx := strings.ToLower(wxString)

	if strings.Contains(wx, "ts") {
		if strings.Contains(wx, "ra") {
			return "lightning-rainy"
		}
		return "lightning"
	}
	if strings.Contains(wx, "sn") || strings.Contains(wx, "sg") || strings.Contains(wx, "ic") {
		if strings.Contains(wx, "ra") {
			return "snowy-rainy"
		}
		return "snowy"
	}
	if strings.Contains(wx, "pl") || strings.Contains(wx, "gr") || strings.Contains(wx, "gs") {
		return "hail"
	}
	if strings.Contains(wx, "+ra") || strings.Contains(wx, "shra") {
		return "pouring"
	}
	if strings.Contains(wx, "ra") || strings.Contains(wx, "dz") {
		return "rainy"
	}
	if strings.Contains(wx, "fg") || strings.Contains(wx, "br") {
		return "fog"
	}

	return categoryCondition(flightCategory)
}

func categoryCondition(flightCategory string) string {
	switch flightCategory {
	case CategoryMVFR:
		return "partlycloudy"
	case CategoryIFR, CategoryLIFR:
		return "cloudy"
	default:
		return "sunny"
	}
}
