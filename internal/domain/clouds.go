package domain

import (
	"strconv"
	"strings"
)

var cloudCoverText = map[string]string{
	"SKC": "Sky Clear",
	"CLR": "Clear",
	"NSC": "No Significant Clouds",
	"FEW": "Few",
	"SCT": "Scattered",
	"BKN": "Broken",
	"OVC": "Overcast",
	"VV":  "Vertical Visibility",
}

// cloudCoverOktas maps cover codes to eighths-of-sky coverage.
// SCT deliberately has no entry; that layer renders without a
// coverage figure.
var cloudCoverOktas = map[string]string{
	"SKC": "0/8 (0%)",
	"CLR": "0/8 (0%)",
	"NSC": "0/8 (0%)",
	"FEW": "1-2/8 (12-25%)",
	"BKN": "5-7/8 (62-87%)",
	"OVC": "8/8 (100%)",
	"VV":  "Sky Obscured",
}

var cloudTypeText = map[string]string{
	"CB":  "Cumulonimbus",
	"TCU": "Towering Cumulus",
	"CI":  "Cirrus",
	"CC":  "Cirrocumulus",
	"CS":  "Cirrostratus",
	"AC":  "Altocumulus",
	"AS":  "Altostratus",
	"NS":  "Nimbostratus",
	"SC":  "Stratocumulus",
	"ST":  "Stratus",
	"CU":  "Cumulus",
}

// DecodeCloudLayers expands sky-condition data into decoded layers.
// Exactly one of three fallback tiers is used, in priority order:
// the per-layer array, the single overall cover code, or a bare
// ceiling value rendered as one synthetic "Ceiling" layer.
func DecodeCloudLayers(clouds []RawCloud, cover string, ceiling *float64) []CloudLayer {
	if len(clouds) > 0 {
		layers := make([]CloudLayer, 0, len(clouds))
		for _, c := range clouds {
			layers = append(layers, decodeLayer(c))
		}
		return layers
	}

	if cover != "" {
		// Unknown overall covers are dropped rather than passed
		// through: with no base and no known coverage the code alone
		// carries nothing a reader could use.
		if text, ok := cloudCoverText[cover]; ok {
			layer := CloudLayer{Cover: cover, CoverText: text}
			if oktas, ok := cloudCoverOktas[cover]; ok {
				layer.CoverageOktas = ptrString(oktas)
			}
			return []CloudLayer{layer}
		}
		return nil
	}

	if ceiling != nil {
		base := int(*ceiling)
		return []CloudLayer{{
			Cover:       "Ceiling",
			CoverText:   "Ceiling",
			BaseFeetAGL: ptrInt(base),
			BaseText:    ptrString(formatFeetAGL(base)),
		}}
	}

	return nil
}

func decodeLayer(c RawCloud) CloudLayer {
	layer := CloudLayer{Cover: c.Cover, CoverText: c.Cover}
	if text, ok := cloudCoverText[c.Cover]; ok {
		layer.CoverText = text
	}
	if oktas, ok := cloudCoverOktas[c.Cover]; ok {
		layer.CoverageOktas = ptrString(oktas)
	}
	if c.Base != nil {
		base := int(*c.Base)
		layer.BaseFeetAGL = ptrInt(base)
		layer.BaseText = ptrString(formatFeetAGL(base))
	}
	if c.Type != "" {
		layer.TypeCode = ptrString(c.Type)
		if text, ok := cloudTypeText[c.Type]; ok {
			layer.TypeText = ptrString(text)
		} else {
			layer.TypeText = ptrString(c.Type)
		}
	}
	return layer
}

// formatFeetAGL renders a base altitude as "2,400 ft AGL".
func formatFeetAGL(feet int) string {
	return groupThousands(feet) + " ft AGL"
}

func groupThousands(n int) string {
	s := strconv.Itoa(n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	if neg {
		s = "-" + s
	}
	return s
}
