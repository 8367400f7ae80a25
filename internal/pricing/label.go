package pricing

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	oneWayLabelPattern    = regexp.MustCompile(`(?i)one\s*way[^0-9]*([0-9]+(?:\.\d+)?)`)
	roundTripLabelPattern = regexp.MustCompile(`(?i)round\s*trip[^0-9]*([0-9]+(?:\.\d+)?)`)
	numberPattern         = regexp.MustCompile(`[0-9]+(?:\.\d+)?`)
)

// ParsePriceLabel extracts one-way and round-trip prices from a legacy
// free-text label such as "One way: 1,200 EGP / Round trip: 2,000 EGP".
// When a marker is missing, bare numbers are used in order: the first for
// one way, the second (or the first again) for round trip.
func ParsePriceLabel(label string) (oneWay, roundTrip *float64) {
	if strings.TrimSpace(label) == "" {
		return nil, nil
	}
	normalized := strings.ReplaceAll(label, ",", "")

	oneWay = matchNumber(oneWayLabelPattern, normalized)
	roundTrip = matchNumber(roundTripLabelPattern, normalized)
	if oneWay != nil && roundTrip != nil {
		return oneWay, roundTrip
	}

	var values []float64
	for _, tok := range numberPattern.FindAllString(normalized, -1) {
		if v, err := strconv.ParseFloat(tok, 64); err == nil {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return oneWay, roundTrip
	}

	if oneWay == nil {
		oneWay = &values[0]
	}
	if roundTrip == nil {
		if len(values) > 1 {
			roundTrip = &values[1]
		} else {
			roundTrip = &values[0]
		}
	}
	return oneWay, roundTrip
}

func matchNumber(re *regexp.Regexp, s string) *float64 {
	m := re.FindStringSubmatch(s)
	if len(m) < 2 {
		return nil
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return nil
	}
	return &v
}
