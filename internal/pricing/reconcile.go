package pricing

// CorrectTripType returns the trip type that should be active. When the
// selected type has no price and the other does, the other is returned with
// switched set. When neither is priced nothing changes.
func CorrectTripType(selected TripType, oneWayPriced, roundTripPriced bool) (TripType, bool) {
	priced := map[TripType]bool{OneWay: oneWayPriced, RoundTrip: roundTripPriced}
	if !priced[selected] && priced[selected.Opposite()] {
		return selected.Opposite(), true
	}
	return selected, false
}

// Reconcile computes the full Quote for in. It has no side effects and
// returns equal quotes for equal inputs.
func Reconcile(in Input) Quote {
	currency := in.Currency
	if currency == "" {
		currency = DefaultCurrency
	}
	requested := in.TripType
	if !requested.Valid() {
		requested = OneWay
	}

	oneWay, oneWayOK := ResolveTripPrice(&in.Trip, in.Seats, OneWay)
	roundTrip, roundTripOK := ResolveTripPrice(&in.Trip, in.Seats, RoundTrip)

	active, switched := CorrectTripType(requested, oneWayOK, roundTripOK)

	unit, unitOK := oneWay, oneWayOK
	if active == RoundTrip {
		unit, unitOK = roundTrip, roundTripOK
	}
	fallback := FallbackUnitPrice(unit, unitOK)

	seatTotal := ComputeSeatTotal(in.SelectedSeatIDs, in.Seats, active, fallback, in.Adults)
	_, missing := summarizeSeats(in.SelectedSeatIDs, in.Seats, active)

	infantUnit, _ := usable(in.Trip.InfantPrice)
	total := ComputeTotalAmount(seatTotal, infantUnit, in.Infants)

	labels := make([]SeatLabel, 0, len(in.Seats))
	for i := range in.Seats {
		labels = append(labels, SeatLabels(&in.Seats[i], &in.Trip, currency))
	}

	return Quote{
		TripType:          active,
		RequestedTripType: requested,
		TripTypeSwitched:  switched,
		PriceUnavailable:  !oneWayOK && !roundTripOK,
		OneWayPrice:       optional(oneWay, oneWayOK),
		RoundTripPrice:    optional(roundTrip, roundTripOK),
		UnitPrice:         optional(unit, unitOK),
		UnitPriceLabel:    FormatAmount(unit, unitOK, currency),
		SeatTotal:         seatTotal,
		MissingPriceSeats: missing,
		InfantTotal:       ComputeTotalAmount(0, infantUnit, in.Infants),
		TotalAmount:       total,
		FormattedTotal:    FormatAmount(total, true, currency),
		Currency:          currency,
		SeatLabels:        labels,
		Validity:          Validate(in.SelectedSeatIDs, in.Adults, unitOK),
	}
}
