package booking

import (
	"bytes"
	"context"
	"fmt"
	"time"
	"tripbook/internal/pricing"
	"tripbook/pkg/bookingclient"
	"tripbook/pkg/idgen"
	"tripbook/pkg/invoice"
	"tripbook/pkg/logger"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"golang.org/x/sync/singleflight"
)

const meterName = "tripbook/internal/booking"

// BookingAPI is the part of the booking backend the service talks to.
type BookingAPI interface {
	GetTrip(ctx context.Context, tripID string) (*pricing.Trip, error)
	CreateBooking(ctx context.Context, token string, req bookingclient.CreateBookingRequest) (*bookingclient.Booking, error)
	CreatePaymentIntent(ctx context.Context, token, bookingID string, req bookingclient.PaymentIntentRequest) (*bookingclient.PaymentIntent, error)
	GetBooking(ctx context.Context, token, bookingID string) (*bookingclient.Booking, error)
	CancelBooking(ctx context.Context, token, bookingID string) error
}

// SessionView is a session together with its reconciled quote.
type SessionView struct {
	*Session
	Quote         pricing.Quote `json:"quote"`
	TotalRetained bool          `json:"totalRetained"`
}

type OpenRequest struct {
	Trip            pricing.Trip
	Adults          int
	Infants         int
	TripType        pricing.TripType
	SelectedSeatIDs []string
	From            string
	To              string
	Departure       string
	FlightNumber    string
}

type Service struct {
	api      BookingAPI
	store    SessionStore
	ids      idgen.Generator
	currency string
	logger   logger.Logger
	now      func() time.Time

	tripLoads singleflight.Group
	locks     *sessionLocks

	sessionsOpened   metric.Int64Counter
	tripTypeSwitches metric.Int64Counter
}

func NewService(api BookingAPI, store SessionStore, ids idgen.Generator, currency string, log logger.Logger) *Service {
	if currency == "" {
		currency = pricing.DefaultCurrency
	}

	meter := otel.Meter(meterName)
	opened, err := meter.Int64Counter("booking.sessions.opened",
		metric.WithDescription("Booking sessions opened"))
	if err != nil {
		log.Warn("Failed to create sessions counter", logger.Err(err))
		opened = noop.Int64Counter{}
	}
	switches, err := meter.Int64Counter("booking.trip_type.switches",
		metric.WithDescription("Trip type changes forced because the selected type had no price"))
	if err != nil {
		log.Warn("Failed to create trip type counter", logger.Err(err))
		switches = noop.Int64Counter{}
	}

	return &Service{
		api:              api,
		store:            store,
		ids:              ids,
		currency:         currency,
		logger:           log,
		now:              time.Now,
		locks:            newSessionLocks(),
		sessionsOpened:   opened,
		tripTypeSwitches: switches,
	}
}

func (s *Service) lock(id string) func() {
	return s.locks.lock(id)
}

func (s *Service) view(ctx context.Context, sess *Session) *SessionView {
	requested := sess.TripType
	q, retained := sess.Quote(s.currency)
	if q.TripTypeSwitched && requested != sess.TripType {
		s.tripTypeSwitches.Add(ctx, 1, metric.WithAttributes(attribute.String("trip_type", string(sess.TripType))))
		s.logger.Info("Trip type switched to the priced option",
			logger.Field{Key: "session_id", Value: sess.ID},
			logger.Field{Key: "from", Value: string(requested)},
			logger.Field{Key: "to", Value: string(sess.TripType)},
		)
	}
	return &SessionView{Session: sess, Quote: q, TotalRetained: retained}
}

func (s *Service) save(ctx context.Context, sess *Session) (*SessionView, error) {
	v := s.view(ctx, sess)
	sess.UpdatedAt = s.now()
	if err := s.store.Save(ctx, sess); err != nil {
		return nil, err
	}
	return v, nil
}

// loadSeats fills the session's seat map. A seat map supplied with the trip
// is used as is unless remote is set. Concurrent fetches of one trip share a
// single upstream call, which is detached from the caller's cancellation so
// one departing caller does not fail the others.
func (s *Service) loadSeats(ctx context.Context, sess *Session, remote bool) {
	tripID := sess.Trip.ID
	sess.SeatsLoading = true

	if !remote && len(sess.Trip.SeatMap) > 0 {
		sess.ApplySeats(tripID, sess.Trip.SeatMap)
		return
	}

	v, err, shared := s.tripLoads.Do(tripID, func() (any, error) {
		return s.api.GetTrip(context.WithoutCancel(ctx), tripID)
	})
	if err != nil {
		s.logger.Error("Failed to load seat map",
			logger.Field{Key: "trip_id", Value: tripID},
			logger.Err(err),
		)
		sess.FailSeatLoad(tripID, ErrSeatLoadFailed)
		return
	}

	trip := v.(*pricing.Trip)
	s.logger.Debug("Seat map loaded",
		logger.Field{Key: "trip_id", Value: tripID},
		logger.Field{Key: "seats", Value: len(trip.SeatMap)},
		logger.Field{Key: "shared", Value: shared},
	)
	sess.ApplySeats(tripID, trip.SeatMap)
}

// update loads a session, applies fn and saves it. Nothing is saved when fn
// fails.
func (s *Service) update(ctx context.Context, id string, fn func(*Session) error) (*SessionView, error) {
	unlock := s.lock(id)
	defer unlock()

	sess, err := s.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(sess); err != nil {
		return nil, err
	}
	return s.save(ctx, sess)
}

// Quote reconciles a stateless booking state.
func (s *Service) Quote(in pricing.Input) pricing.Quote {
	if in.Currency == "" {
		in.Currency = s.currency
	}
	return pricing.Reconcile(in)
}

func (s *Service) Open(ctx context.Context, req OpenRequest) (*SessionView, error) {
	adults := req.Adults
	if adults == 0 {
		adults = 1
	}

	sess, err := NewSession(s.ids.NewSessionID(), req.Trip, adults, req.Infants, req.TripType, req.SelectedSeatIDs)
	if err != nil {
		return nil, err
	}
	sess.From = req.From
	sess.To = req.To
	sess.Departure = req.Departure
	sess.FlightNumber = req.FlightNumber
	sess.CreatedAt = s.now()

	unlock := s.lock(sess.ID)
	defer unlock()

	s.loadSeats(ctx, sess, false)
	v, err := s.save(ctx, sess)
	if err != nil {
		return nil, err
	}

	s.sessionsOpened.Add(ctx, 1)
	s.logger.Info("Booking session opened",
		logger.Field{Key: "session_id", Value: sess.ID},
		logger.Field{Key: "trip_id", Value: sess.Trip.ID},
		logger.Field{Key: "seats", Value: len(sess.Seats)},
	)
	return v, nil
}

func (s *Service) Get(ctx context.Context, id string) (*SessionView, error) {
	return s.update(ctx, id, func(*Session) error { return nil })
}

// ReloadSeats refetches the seat map from the backend.
func (s *Service) ReloadSeats(ctx context.Context, id string) (*SessionView, error) {
	return s.update(ctx, id, func(sess *Session) error {
		if sess.bookingPending() {
			return ErrBookingPending
		}
		s.loadSeats(ctx, sess, true)
		return nil
	})
}

func (s *Service) ToggleSeat(ctx context.Context, id, seatID string) (*SessionView, error) {
	return s.update(ctx, id, func(sess *Session) error {
		return sess.ToggleSeat(seatID)
	})
}

func (s *Service) SetPassengers(ctx context.Context, id string, adults, infants int) (*SessionView, error) {
	return s.update(ctx, id, func(sess *Session) error {
		return sess.SetPassengers(adults, infants)
	})
}

func (s *Service) SetTripType(ctx context.Context, id string, tt pricing.TripType) (*SessionView, error) {
	return s.update(ctx, id, func(sess *Session) error {
		return sess.SetTripType(tt)
	})
}

func (s *Service) ChangeTrip(ctx context.Context, id string, trip pricing.Trip) (*SessionView, error) {
	return s.update(ctx, id, func(sess *Session) error {
		if err := sess.ChangeTrip(trip); err != nil {
			return err
		}
		s.loadSeats(ctx, sess, false)
		return nil
	})
}

func (s *Service) seatNumbers(sess *Session) []string {
	numbers := make([]string, 0, len(sess.SelectedSeatIDs))
	for _, id := range sess.SelectedSeatIDs {
		label := id
		if seat := sess.findSeat(id); seat != nil && seat.SeatNumber != "" {
			label = seat.SeatNumber
		}
		numbers = append(numbers, label)
	}
	return numbers
}

// Submit validates the session and the traveller details, creates the
// booking and opens a payment intent for it. Nothing is sent upstream when
// local validation fails. A session that already holds an unpaid booking
// retries the payment intent for that booking instead of booking again.
func (s *Service) Submit(ctx context.Context, id, token string, req SubmitRequest) (*SubmitResult, error) {
	if token == "" {
		return nil, ErrLoginRequired
	}

	unlock := s.lock(id)
	defer unlock()

	sess, err := s.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}

	q, _ := sess.Quote(s.currency)
	var problems []string
	if len(sess.Seats) == 0 || sess.SeatError != "" {
		problems = append(problems, ErrSeatMapUnavailable.Error())
	}
	problems = append(problems, q.Validity.Problems...)
	problems = append(problems, validateContact(req.Booker)...)
	problems = append(problems, validatePassengers(req.Passengers, sess.Adults, sess.Infants)...)
	if len(problems) > 0 {
		return nil, &pricing.ValidationError{Problems: problems}
	}

	if sess.Booking == nil || paymentSettled(sess.Booking.Status) {
		booking, err := s.api.CreateBooking(ctx, token, bookingclient.CreateBookingRequest{
			TripID:        sess.Trip.ID,
			TravelerName:  req.Booker.Name,
			TravelerEmail: req.Booker.Email,
			TravelerPhone: req.Booker.Phone,
			SeatIDs:       sess.SelectedSeatIDs,
			TripType:      string(q.TripType),
			TotalAmount:   q.TotalAmount,
			Passengers:    toClientPassengers(req.Passengers),
		})
		if err != nil {
			return nil, fmt.Errorf("create booking: %w", err)
		}

		sess.Booking = &BookingRef{
			ID:         booking.ID,
			Status:     booking.Status,
			Booker:     req.Booker,
			Passengers: req.Passengers,
		}
		if _, err := s.save(ctx, sess); err != nil {
			return nil, err
		}
		s.logger.Info("Booking created",
			logger.Field{Key: "session_id", Value: sess.ID},
			logger.Field{Key: "booking_id", Value: booking.ID},
			logger.Field{Key: "status", Value: booking.Status},
		)
	}

	intent, err := s.api.CreatePaymentIntent(ctx, token, sess.Booking.ID, paymentRequest(req))
	if err != nil {
		return nil, fmt.Errorf("create payment intent: %w", err)
	}

	return &SubmitResult{
		BookingID:      sess.Booking.ID,
		Status:         sess.Booking.Status,
		RedirectURL:    intent.RedirectURL,
		TotalAmount:    q.TotalAmount,
		FormattedTotal: q.FormattedTotal,
	}, nil
}

// CancelBooking cancels the session's unpaid booking so the selection can be
// edited again. Unlike Close, a failed cancellation is returned and the
// booking is kept.
func (s *Service) CancelBooking(ctx context.Context, id, token string) (*SessionView, error) {
	if token == "" {
		return nil, ErrLoginRequired
	}
	return s.update(ctx, id, func(sess *Session) error {
		if !sess.bookingPending() {
			return ErrNoBooking
		}
		if err := s.api.CancelBooking(ctx, token, sess.Booking.ID); err != nil {
			return fmt.Errorf("cancel booking: %w", err)
		}
		s.logger.Info("Pending booking cancelled",
			logger.Field{Key: "session_id", Value: sess.ID},
			logger.Field{Key: "booking_id", Value: sess.Booking.ID},
		)
		sess.Booking = nil
		return nil
	})
}

// Close ends a session. An unpaid booking is cancelled first; a failed
// cancellation is logged and does not keep the session alive.
func (s *Service) Close(ctx context.Context, id, token string) error {
	unlock := s.lock(id)
	defer unlock()

	sess, err := s.store.Load(ctx, id)
	if err != nil {
		return err
	}

	if sess.Booking != nil && !paymentSettled(sess.Booking.Status) {
		if token == "" {
			s.logger.Warn("Pending booking left open, no token to cancel it",
				logger.Field{Key: "booking_id", Value: sess.Booking.ID})
		} else if err := s.api.CancelBooking(ctx, token, sess.Booking.ID); err != nil {
			s.logger.Error("Failed to cancel pending booking",
				logger.Field{Key: "booking_id", Value: sess.Booking.ID},
				logger.Err(err),
			)
		} else {
			s.logger.Info("Pending booking cancelled",
				logger.Field{Key: "booking_id", Value: sess.Booking.ID})
		}
	}

	sess.Reset()
	return s.store.Delete(ctx, id)
}

// Invoice renders the PDF invoice for the session's booking once payment is
// complete.
func (s *Service) Invoice(ctx context.Context, id, token string) ([]byte, error) {
	if token == "" {
		return nil, ErrLoginRequired
	}

	unlock := s.lock(id)
	defer unlock()

	sess, err := s.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess.Booking == nil {
		return nil, ErrNoBooking
	}

	booking, err := s.api.GetBooking(ctx, token, sess.Booking.ID)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	if !paymentComplete(booking.Status) {
		return nil, ErrPaymentIncomplete
	}

	q, _ := sess.Quote(s.currency)
	total := q.FormattedTotal
	if booking.TotalAmount != nil {
		total = pricing.FormatAmount(*booking.TotalAmount, true, q.Currency)
	}

	passengers := make([]invoice.Passenger, 0, len(sess.Booking.Passengers))
	for _, p := range sess.Booking.Passengers {
		passengers = append(passengers, invoice.Passenger{Type: p.Type, Name: p.Name})
	}

	bookingDate := booking.CreatedAt
	if bookingDate == "" {
		bookingDate = s.now().Format("2006-01-02")
	}

	var buf bytes.Buffer
	err = invoice.Render(&buf, invoice.Invoice{
		BookingID:      sess.Booking.ID,
		TripID:         sess.Trip.ID,
		From:           sess.From,
		To:             sess.To,
		Departure:      sess.Departure,
		FlightNumber:   sess.FlightNumber,
		TripType:       string(q.TripType),
		Seats:          s.seatNumbers(sess),
		Passengers:     passengers,
		BookerName:     sess.Booking.Booker.Name,
		BookerEmail:    sess.Booking.Booker.Email,
		BookerPhone:    sess.Booking.Booker.Phone,
		FormattedTotal: total,
		BookingDate:    bookingDate,
		PaymentStatus:  booking.Status,
	})
	if err != nil {
		return nil, fmt.Errorf("render invoice: %w", err)
	}

	sess.Booking.Status = booking.Status
	if _, err := s.save(ctx, sess); err != nil {
		s.logger.Warn("Failed to save booking status", logger.Err(err))
	}
	return buf.Bytes(), nil
}
