package pricing

import "math"

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// FallbackUnitPrice is the per-seat amount used for seats that cannot be
// priced individually and for the provisional total. It is zero only when the
// trip-type price did not resolve at all.
func FallbackUnitPrice(price float64, ok bool) float64 {
	if !ok {
		return 0
	}
	return price
}

func summarizeSeats(selectedSeatIDs []string, seats []Seat, tt TripType) (total float64, missing int) {
	byID := make(map[string]*Seat, len(seats))
	for i := range seats {
		byID[seats[i].ID] = &seats[i]
	}

	for _, id := range selectedSeatIDs {
		seat, found := byID[id]
		if !found {
			missing++
			continue
		}
		price, ok := ResolvePrice(seat, tt)
		if !ok {
			missing++
			continue
		}
		total += price
	}
	return total, missing
}

// ComputeSeatTotal sums the selected seats at their tt price. Seats that are
// not loaded or cannot be priced are charged fallbackUnitPrice. With nothing
// selected it returns a provisional fallbackUnitPrice per adult.
func ComputeSeatTotal(selectedSeatIDs []string, seats []Seat, tt TripType, fallbackUnitPrice float64, adultCount int) float64 {
	if len(selectedSeatIDs) == 0 {
		return finite(fallbackUnitPrice * float64(max(adultCount, 1)))
	}

	total, missing := summarizeSeats(selectedSeatIDs, seats, tt)
	return finite(total + float64(missing)*fallbackUnitPrice)
}

// ComputeTotalAmount adds the flat infant charge to the seat total. Infants
// do not occupy seats.
func ComputeTotalAmount(seatTotal, infantUnitPrice float64, infantCount int) float64 {
	infants := 0.0
	if infantCount > 0 && infantUnitPrice > 0 {
		infants = infantUnitPrice * float64(infantCount)
	}
	return finite(seatTotal + infants)
}
