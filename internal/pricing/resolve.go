package pricing

import "math"

// usable reports a price that can be charged: present, finite and not negative.
func usable(p *float64) (float64, bool) {
	if p == nil || math.IsNaN(*p) || math.IsInf(*p, 0) || *p < 0 {
		return 0, false
	}
	return *p, true
}

// SeatResolver is one step of the per-seat fallback cascade.
type SeatResolver func(seat *Seat, tt TripType) (float64, bool)

// TripResolver is one step of the trip-level fallback cascade.
type TripResolver func(trip *Trip, tt TripType) (float64, bool)

// SeatResolvers is the per-seat cascade, highest priority first.
//
// The last step charges the opposite trip type's price for this seat. It is
// kept for compatibility with existing bookings; a round-trip seat priced only
// for one way is quoted at its one-way price.
var SeatResolvers = []SeatResolver{
	seatTripTypePrice,
	seatEffectivePrice,
	seatGenericPrice,
	seatCrossTripTypePrice,
}

// TripResolvers is the trip-level cascade, highest priority first.
var TripResolvers = []TripResolver{
	tripSeatMapPrice,
	tripExplicitPrice,
	tripLabelPrice,
	tripBasePrice,
}

func seatTripTypePrice(seat *Seat, tt TripType) (float64, bool) {
	return usable(seat.BasePrice(tt))
}

func seatEffectivePrice(seat *Seat, _ TripType) (float64, bool) {
	return usable(seat.EffectivePrice)
}

func seatGenericPrice(seat *Seat, _ TripType) (float64, bool) {
	return usable(seat.SeatPrice)
}

func seatCrossTripTypePrice(seat *Seat, tt TripType) (float64, bool) {
	return usable(seat.BasePrice(tt.Opposite()))
}

func tripSeatMapPrice(trip *Trip, tt TripType) (float64, bool) {
	for i := range trip.SeatMap {
		if p, ok := ResolvePrice(&trip.SeatMap[i], tt); ok {
			return p, true
		}
	}
	return 0, false
}

func tripExplicitPrice(trip *Trip, tt TripType) (float64, bool) {
	return usable(trip.explicitPrice(tt))
}

func tripLabelPrice(trip *Trip, tt TripType) (float64, bool) {
	oneWay, roundTrip := ParsePriceLabel(trip.PriceLabel)
	if tt == RoundTrip {
		return usable(roundTrip)
	}
	return usable(oneWay)
}

func tripBasePrice(trip *Trip, _ TripType) (float64, bool) {
	return usable(trip.BasePrice)
}

// ResolvePrice returns the price of seat for tt, walking SeatResolvers in
// order. ok is false when nothing resolves; that is not the same as a zero
// price.
func ResolvePrice(seat *Seat, tt TripType) (float64, bool) {
	if seat == nil {
		return 0, false
	}
	for _, resolve := range SeatResolvers {
		if p, ok := resolve(seat, tt); ok {
			return p, true
		}
	}
	return 0, false
}

// ResolveTripLevelFallback prices tt from the trip record alone, for when no
// loaded seat carries a price.
func ResolveTripLevelFallback(trip *Trip, tt TripType) (float64, bool) {
	if trip == nil {
		return 0, false
	}
	for _, resolve := range TripResolvers {
		if p, ok := resolve(trip, tt); ok {
			return p, true
		}
	}
	return 0, false
}

// ResolveTripPrice is the price shown for tt: the first loaded seat that
// resolves, then the trip-level cascade.
func ResolveTripPrice(trip *Trip, seats []Seat, tt TripType) (float64, bool) {
	for i := range seats {
		if p, ok := ResolvePrice(&seats[i], tt); ok {
			return p, true
		}
	}
	return ResolveTripLevelFallback(trip, tt)
}
