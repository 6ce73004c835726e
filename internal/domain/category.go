package domain

// Flight categories per FAA visibility/ceiling classification.
const (
	CategoryVFR  = "VFR"
	CategoryMVFR = "MVFR"
	CategoryIFR  = "IFR"
	CategoryLIFR = "LIFR"
)

// ceilingCovers are the cover codes whose base constitutes a ceiling.
var ceilingCovers = map[string]bool{
	"BKN": true,
	"OVC": true,
	"VV":  true,
}

// ExtractCeiling scans layers in source order and returns the base of
// the first broken/overcast/obscured layer. No such layer means open
// sky: nil, not zero.
func ExtractCeiling(layers []CloudLayer) *int {
	for _, l := range layers {
		if ceilingCovers[l.Cover] && l.BaseFeetAGL != nil {
			base := *l.BaseFeetAGL
			return &base
		}
	}
	return nil
}

// DeriveFlightCategory classifies visibility (statute miles) and
// ceiling (feet AGL) into VFR/MVFR/IFR/LIFR. Rules are evaluated in
// fixed priority order and the first match wins; the MVFR boundaries
// are inclusive, so ceiling 3000 ft or visibility 5 SM is MVFR, not
// VFR. With neither signal present there is no basis to classify and
// the result is nil.
func DeriveFlightCategory(visibilitySM *float64, ceilingFt *int) *string {
	if visibilitySM == nil && ceilingFt == nil {
		return nil
	}

	switch {
	case visibilitySM != nil && *visibilitySM > 5 && (ceilingFt == nil || *ceilingFt > 3000):
		return ptrString(CategoryVFR)
	case (visibilitySM != nil && *visibilitySM < 1) || (ceilingFt != nil && *ceilingFt < 500):
		return ptrString(CategoryLIFR)
	case (visibilitySM != nil && *visibilitySM < 3) || (ceilingFt != nil && *ceilingFt < 1000):
		return ptrString(CategoryIFR)
	case (visibilitySM != nil && *visibilitySM <= 5) || (ceilingFt != nil && *ceilingFt <= 3000):
		return ptrString(CategoryMVFR)
	default:
		return ptrString(CategoryVFR)
	}
}
