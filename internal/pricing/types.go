package pricing

import (
	"fmt"
	"strings"
)

type TripType string

const (
	OneWay    TripType = "ONE_WAY"
	RoundTrip TripType = "ROUND_TRIP"
)

// DefaultCurrency is the display currency when none is configured.
const DefaultCurrency = "EGP"

func ParseTripType(s string) (TripType, error) {
	switch TripType(strings.ToUpper(strings.TrimSpace(s))) {
	case OneWay:
		return OneWay, nil
	case RoundTrip:
		return RoundTrip, nil
	}
	return "", fmt.Errorf("unknown trip type %q", s)
}

func (t TripType) Valid() bool {
	return t == OneWay || t == RoundTrip
}

// Opposite returns the other trip type.
func (t TripType) Opposite() TripType {
	if t == RoundTrip {
		return OneWay
	}
	return RoundTrip
}

// Seat is one bookable unit of a trip. Price fields are nil when the upstream
// record does not carry them.
type Seat struct {
	ID                 string   `json:"id"`
	SeatNumber         string   `json:"seatNumber,omitempty"`
	IsAvailable        bool     `json:"isAvailable"`
	OneWayBasePrice    *float64 `json:"oneWayBasePrice,omitempty"`
	RoundTripBasePrice *float64 `json:"roundTripBasePrice,omitempty"`
	EffectivePrice     *float64 `json:"effectivePrice,omitempty"`
	SeatPrice          *float64 `json:"seatPrice,omitempty"`
}

// BasePrice returns the explicit price for tt.
func (s *Seat) BasePrice(tt TripType) *float64 {
	if tt == RoundTrip {
		return s.RoundTripBasePrice
	}
	return s.OneWayBasePrice
}

// Trip holds the pricing-relevant part of a trip record. SeatMap is the seat
// list the caller supplied with the trip, which may differ from the seats
// loaded for a session.
type Trip struct {
	ID                 string   `json:"id"`
	BasePrice          *float64 `json:"basePrice,omitempty"`
	OneWayBasePrice    *float64 `json:"oneWayBasePrice,omitempty"`
	RoundTripBasePrice *float64 `json:"roundTripBasePrice,omitempty"`
	InfantPrice        *float64 `json:"infantPrice,omitempty"`
	SeatMap            []Seat   `json:"seatMap,omitempty"`
	PriceLabel         string   `json:"priceLabel,omitempty"`
}

func (t *Trip) explicitPrice(tt TripType) *float64 {
	if tt == RoundTrip {
		return t.RoundTripBasePrice
	}
	return t.OneWayBasePrice
}

// Input is everything the reconciler needs to produce a Quote.
type Input struct {
	Trip            Trip     `json:"trip"`
	Seats           []Seat   `json:"seats"`
	TripType        TripType `json:"tripType"`
	SelectedSeatIDs []string `json:"selectedSeatIds"`
	Adults          int      `json:"adults"`
	Infants         int      `json:"infants"`
	Currency        string   `json:"currency,omitempty"`
}

// SeatLabel is the per-seat display pair.
type SeatLabel struct {
	SeatID     string `json:"seatId"`
	SeatNumber string `json:"seatNumber,omitempty"`
	OneWay     string `json:"oneWay"`
	RoundTrip  string `json:"roundTrip"`
}

// Quote is the reconciled pricing view of one booking state.
type Quote struct {
	TripType          TripType    `json:"tripType"`
	RequestedTripType TripType    `json:"requestedTripType"`
	TripTypeSwitched  bool        `json:"tripTypeSwitched"`
	PriceUnavailable  bool        `json:"priceUnavailable"`
	OneWayPrice       *float64    `json:"oneWayPrice"`
	RoundTripPrice    *float64    `json:"roundTripPrice"`
	UnitPrice         *float64    `json:"unitPrice"`
	UnitPriceLabel    string      `json:"unitPriceLabel"`
	SeatTotal         float64     `json:"seatTotal"`
	MissingPriceSeats int         `json:"missingPriceSeats"`
	InfantTotal       float64     `json:"infantTotal"`
	TotalAmount       float64     `json:"totalAmount"`
	FormattedTotal    string      `json:"formattedTotal"`
	Currency          string      `json:"currency"`
	SeatLabels        []SeatLabel `json:"seatLabels"`
	Validity          Validity    `json:"validity"`
}

func optional(v float64, ok bool) *float64 {
	if !ok {
		return nil
	}
	return &v
}
