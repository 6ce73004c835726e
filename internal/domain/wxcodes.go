package domain

import "strings"

// wxEntry is one coded-abbreviation/text pair. Tables are ordered
// slices, not maps: prefix matching must scan in a fixed order.
type wxEntry struct {
	code string
	text string
}

// wxDescriptors qualify a phenomenon; at most one is consumed per
// token, always before the phenomenon codes.
var wxDescriptors = []wxEntry{
	{"MI", "Shallow"},
	{"PR", "Partial"},
	{"BC", "Patches"},
	{"DR", "Low Drifting"},
	{"BL", "Blowing"},
	{"SH", "Shower(s)"},
	{"TS", "Thunderstorm"},
	{"FZ", "Freezing"},
}

var wxPhenomena = []wxEntry{
	{"DZ", "Drizzle"},
	{"RA", "Rain"},
	{"SN", "Snow"},
	{"SG", "Snow Grains"},
	{"IC", "Ice Crystals"},
	{"PL", "Ice Pellets"},
	{"GR", "Hail"},
	{"GS", "Small Hail"},
	{"UP", "Unknown Precipitation"},
	{"BR", "Mist"},
	{"FG", "Fog"},
	{"FU", "Smoke"},
	{"VA", "Volcanic Ash"},
	{"DU", "Dust"},
	{"SA", "Sand"},
	{"HZ", "Haze"},
	{"PY", "Spray"},
	{"PO", "Dust Whirls"},
	{"SQ", "Squalls"},
	{"FC", "Funnel Cloud"},
	{"SS", "Sandstorm"},
	{"DS", "Duststorm"},
}

// DecodeWeather expands a coded present-weather token string into a
// readable phrase: intensity marker, at most one descriptor, then
// repeated phenomenon codes. Unmatched trailing characters stop the
// scan silently; if nothing decodes, the original code is returned
// unchanged.
func DecodeWeather(wx string) string {
	if wx == "" {
		return ""
	}

	rest := wx
	var b strings.Builder

	switch {
	case strings.HasPrefix(rest, "-"):
		b.WriteString("Light ")
		rest = rest[1:]
	case strings.HasPrefix(rest, "+"):
		b.WriteString("Heavy ")
		rest = rest[1:]
	}

	for _, d := range wxDescriptors {
		if strings.HasPrefix(rest, d.code) {
			b.WriteString(d.text)
			b.WriteString(" ")
			rest = rest[len(d.code):]
			break
		}
	}

	for rest != "" {
		matched := false
		for _, p := range wxPhenomena {
			if strings.HasPrefix(rest, p.code) {
				b.WriteString(p.text)
				b.WriteString(" ")
				rest = rest[len(p.code):]
				matched = true
				break
			}
		}
		if !matched {
			break
		}
	}

	decoded := strings.TrimSpace(b.String())
	if decoded == "" {
		return wx
	}
	return decoded
}
