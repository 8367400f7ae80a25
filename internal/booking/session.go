package booking

import (
	"slices"
	"time"
	"tripbook/internal/pricing"
)

// BookingRef is the booking created upstream from this session.
type BookingRef struct {
	ID         string      `json:"id"`
	Status     string      `json:"status"`
	Booker     Contact     `json:"booker"`
	Passengers []Passenger `json:"passengers"`
}

// Session is one customer's booking in progress. All methods are pure state
// transitions; I/O lives in Service.
type Session struct {
	ID              string           `json:"id"`
	Trip            pricing.Trip     `json:"trip"`
	From            string           `json:"from,omitempty"`
	To              string           `json:"to,omitempty"`
	Departure       string           `json:"departure,omitempty"`
	FlightNumber    string           `json:"flightNumber,omitempty"`
	Seats           []pricing.Seat   `json:"seats"`
	SeatsLoading    bool             `json:"seatsLoading"`
	SeatError       string           `json:"seatError,omitempty"`
	SelectedSeatIDs []string         `json:"selectedSeatIds"`
	Adults          int              `json:"adults"`
	Infants         int              `json:"infants"`
	TripType        pricing.TripType `json:"tripType"`
	TotalAmount     float64          `json:"totalAmount"`
	Booking         *BookingRef      `json:"booking,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

// bookingPending reports whether an unpaid booking pins the selection. The
// booking upstream carries the seats and total it was created with, so the
// session may not change until that booking is cancelled or paid.
func (s *Session) bookingPending() bool {
	return s.Booking != nil && !paymentSettled(s.Booking.Status)
}

func validCounts(adults, infants int) bool {
	return adults >= 1 && infants >= 0
}

// NewSession starts a session for trip. restored is a selection carried over
// from an earlier session; it is kept until the seat map arrives and then
// pruned like any other selection.
func NewSession(id string, trip pricing.Trip, adults, infants int, tt pricing.TripType, restored []string) (*Session, error) {
	if trip.ID == "" {
		return nil, ErrTripRequired
	}
	if !validCounts(adults, infants) {
		return nil, ErrInvalidPassengerCount
	}
	if !tt.Valid() {
		tt = pricing.OneWay
	}

	s := &Session{
		ID:           id,
		Trip:         trip,
		SeatsLoading: true,
		Adults:       adults,
		Infants:      infants,
		TripType:     tt,
	}
	for _, seatID := range restored {
		if !slices.Contains(s.SelectedSeatIDs, seatID) && len(s.SelectedSeatIDs) < adults {
			s.SelectedSeatIDs = append(s.SelectedSeatIDs, seatID)
		}
	}
	return s, nil
}

func (s *Session) findSeat(id string) *pricing.Seat {
	for i := range s.Seats {
		if s.Seats[i].ID == id {
			return &s.Seats[i]
		}
	}
	return nil
}

// pruneSelection drops ids that are no longer loaded or no longer available.
func (s *Session) pruneSelection() {
	kept := s.SelectedSeatIDs[:0:0]
	for _, id := range s.SelectedSeatIDs {
		seat := s.findSeat(id)
		if seat == nil || !seat.IsAvailable || slices.Contains(kept, id) {
			continue
		}
		kept = append(kept, id)
	}
	s.SelectedSeatIDs = kept
}

// ApplySeats installs a freshly loaded seat map. A load for a trip the
// session no longer points at is ignored and false is returned.
func (s *Session) ApplySeats(tripID string, seats []pricing.Seat) bool {
	if tripID != s.Trip.ID {
		return false
	}

	loaded := make([]pricing.Seat, 0, len(seats))
	for _, seat := range seats {
		if pricing.IsValidSeatID(seat.ID) {
			loaded = append(loaded, seat)
		}
	}

	s.Seats = loaded
	s.SeatsLoading = false
	s.SeatError = ""
	if len(loaded) == 0 {
		s.SeatError = ErrSeatMapUnavailable.Error()
		s.SelectedSeatIDs = nil
		return true
	}

	s.pruneSelection()
	return true
}

// FailSeatLoad records a failed load. The selection is cleared because it may
// point at seats that no longer exist.
func (s *Session) FailSeatLoad(tripID string, err error) bool {
	if tripID != s.Trip.ID {
		return false
	}
	s.Seats = nil
	s.SeatsLoading = false
	s.SeatError = err.Error()
	s.SelectedSeatIDs = nil
	return true
}

// ToggleSeat selects or deselects a seat. Selection stops at one seat per
// adult; infants share.
func (s *Session) ToggleSeat(seatID string) error {
	if s.bookingPending() {
		return ErrBookingPending
	}
	seat := s.findSeat(seatID)
	if seat == nil {
		return ErrSeatNotFound
	}
	if !seat.IsAvailable {
		return ErrSeatUnavailable
	}
	if !pricing.IsValidSeatID(seatID) {
		return ErrInvalidSeatID
	}

	if i := slices.Index(s.SelectedSeatIDs, seatID); i >= 0 {
		s.SelectedSeatIDs = slices.Delete(s.SelectedSeatIDs, i, i+1)
		return nil
	}
	if len(s.SelectedSeatIDs) >= s.Adults {
		return ErrSeatLimitReached
	}
	s.SelectedSeatIDs = append(s.SelectedSeatIDs, seatID)
	return nil
}

// SetPassengers changes the party size. A selection larger than the new adult
// count keeps its first adults entries.
func (s *Session) SetPassengers(adults, infants int) error {
	if s.bookingPending() {
		return ErrBookingPending
	}
	if !validCounts(adults, infants) {
		return ErrInvalidPassengerCount
	}
	s.Adults = adults
	s.Infants = infants
	if len(s.SelectedSeatIDs) > adults {
		s.SelectedSeatIDs = slices.Clone(s.SelectedSeatIDs[:adults])
	}
	return nil
}

// SetTripType switches trip type. Only a type with a resolvable price can be
// chosen.
func (s *Session) SetTripType(tt pricing.TripType) error {
	if s.bookingPending() {
		return ErrBookingPending
	}
	if !tt.Valid() {
		return ErrTripTypeUnpriced
	}
	if _, ok := pricing.ResolveTripPrice(&s.Trip, s.Seats, tt); !ok {
		return ErrTripTypeUnpriced
	}
	s.TripType = tt
	return nil
}

// ChangeTrip points the session at another trip. Seats and selection belong
// to the old trip and are dropped.
func (s *Session) ChangeTrip(trip pricing.Trip) error {
	if s.bookingPending() {
		return ErrBookingPending
	}
	if trip.ID == "" {
		return ErrTripRequired
	}
	s.Trip = trip
	s.Seats = nil
	s.SeatsLoading = true
	s.SeatError = ""
	s.SelectedSeatIDs = nil
	return nil
}

// Reset returns the session to the state of a freshly opened booking.
func (s *Session) Reset() {
	s.SelectedSeatIDs = nil
	s.TripType = pricing.OneWay
	s.TotalAmount = 0
	s.SeatError = ""
	s.Booking = nil
}

func (s *Session) input(currency string) pricing.Input {
	return pricing.Input{
		Trip:            s.Trip,
		Seats:           s.Seats,
		TripType:        s.TripType,
		SelectedSeatIDs: s.SelectedSeatIDs,
		Adults:          s.Adults,
		Infants:         s.Infants,
		Currency:        currency,
	}
}

// Quote reconciles the current state. A forced trip-type switch is applied to
// the session. While seats are still loading for an existing selection the
// previously shown total is kept and retained is true.
func (s *Session) Quote(currency string) (q pricing.Quote, retained bool) {
	q = pricing.Reconcile(s.input(currency))
	if q.TripTypeSwitched {
		s.TripType = q.TripType
	}

	if len(s.SelectedSeatIDs) > 0 && len(s.Seats) == 0 {
		q.TotalAmount = s.TotalAmount
		q.FormattedTotal = pricing.FormatAmount(s.TotalAmount, true, q.Currency)
		return q, true
	}

	s.TotalAmount = q.TotalAmount
	return q, false
}
