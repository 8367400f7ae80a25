package pricing

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const missingAmount = "—"

// FormatAmount renders "<amount> <currency>" with grouped thousands and at
// most two fraction digits, or a dash placeholder when ok is false.
func FormatAmount(value float64, ok bool, currency string) string {
	if !ok {
		return missingAmount + " " + currency
	}
	p := message.NewPrinter(language.English)
	return p.Sprintf("%v", number.Decimal(value, number.MaxFractionDigits(2))) + " " + currency
}

// SeatLabels builds the display pair for one seat. A seat without its own
// price shows the trip's explicit price for that type, then the flat base
// price.
func SeatLabels(seat *Seat, trip *Trip, currency string) SeatLabel {
	label := SeatLabel{}
	if seat != nil {
		label.SeatID = seat.ID
		label.SeatNumber = seat.SeatNumber
	}

	price := func(tt TripType) (float64, bool) {
		if p, ok := ResolvePrice(seat, tt); ok {
			return p, true
		}
		if trip == nil {
			return 0, false
		}
		if p, ok := usable(trip.explicitPrice(tt)); ok {
			return p, true
		}
		return usable(trip.BasePrice)
	}

	oneWay, ok := price(OneWay)
	label.OneWay = FormatAmount(oneWay, ok, currency)
	roundTrip, ok := price(RoundTrip)
	label.RoundTrip = FormatAmount(roundTrip, ok, currency)
	return label
}
