// Package domain models aviation weather observations (METAR) and
// forecasts (TAF) and enriches them into a normalized form.
//
// # Data Source
//
// Records originate from the Aviation Weather Center data API at
// https://aviationweather.gov/api/data (endpoints /metar and /taf,
// format=json). The fetch adapter retrieves one JSON record per
// station; this package never performs I/O itself. Enrichment is a
// pure transform: raw record in, enriched record out.
//
// # Feed Conventions
//
// Field encodings in the feed are loose and vary between backend
// versions, so several raw fields are modeled as [Scalar] (number or
// string):
//
//	obsTime:  Unix epoch seconds as a number or numeric string, an
//	          ISO-8601 string with optional "Z", or the legacy
//	          "YYYY-MM-DD HH:MM:SS" pattern (interpreted as UTC).
//	wdir:     degrees true as a number, or the literal "VRB" for
//	          variable wind. A direction of exactly 0 also means
//	          variable in forecast periods and must never be rendered
//	          as "North".
//	visib:    statute miles as a number, or a string with a trailing
//	          "+" ("10+"), a "P<n>SM" prevailing encoding, or a bare
//	          "<n>SM".
//	altim:    inches of mercury (~27-31) or hectopascals (~980-1040),
//	          unlabeled. Values above 60 are treated as hPa; see
//	          [NormalizePressure].
//
// Present weather arrives as coded token strings ("+TSRA", "-SHRA",
// "BR") decoded by [DecodeWeather]: optional intensity prefix, at most
// one descriptor, then repeated phenomenon codes. Unknown codes pass
// through verbatim so no information is dropped.
//
// Sky condition arrives as a per-layer array (preferred), a single
// overall cover code, or only a bare ceiling value; [DecodeCloudLayers]
// uses exactly one of those tiers, in that order.
//
// # Derived Values
//
// When the feed omits them, enrichment computes:
//
//	flight category:  FAA VFR/MVFR/IFR/LIFR from visibility and
//	                  ceiling, first-match thresholds in
//	                  [DeriveFlightCategory]. The MVFR boundaries are
//	                  inclusive (ceiling 3000 ft / visibility 5 SM is
//	                  MVFR), matching the upstream feed rather than the
//	                  boundary-exclusive textbook definition.
//	ceiling:          base of the first BKN/OVC/VV layer in source
//	                  order; no such layer means open sky, not zero.
//	humidity:         Magnus-formula relative humidity from
//	                  temperature and dewpoint.
//
// # Error Policy
//
// Every function is total over its input: a value that cannot be
// parsed becomes an explicit absence (nil), never a zero sentinel and
// never an error. Diagnostics go to the enricher's logger and do not
// interrupt enrichment of sibling fields.
package domain
