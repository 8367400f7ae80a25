package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"
)

type Passenger struct {
	Type                     string `json:"type"`
	Name                     string `json:"name"`
	PassportNumberOrIDNumber string `json:"passportNumberOrIdNumber"`
}

type CreateBookingRequest struct {
	TripID        string      `json:"tripId"`
	TravelerName  string      `json:"travelerName"`
	TravelerEmail string      `json:"travelerEmail"`
	TravelerPhone string      `json:"travelerPhone"`
	SeatIDs       []string    `json:"seatIds"`
	TripType      string      `json:"tripType"`
	TotalAmount   float64     `json:"totalAmount"`
	Passengers    []Passenger `json:"passengers"`
}

type Booking struct {
	ID          string   `json:"id"`
	TripID      string   `json:"tripId"`
	Status      string   `json:"status"`
	SeatIDs     []string `json:"seatIds"`
	TotalAmount float64  `json:"totalAmount"`
	CreatedAt   string   `json:"createdAt"`
}

// BookingStore keeps bookings in memory for the life of the process.
type BookingStore struct {
	mu       sync.Mutex
	seq      int
	bookings map[string]*Booking
}

func NewBookingStore() *BookingStore {
	return &BookingStore{bookings: make(map[string]*Booking)}
}

func authorized(w http.ResponseWriter, r *http.Request) bool {
	if !strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ") {
		http.Error(w, `{"message":"unauthorized"}`, http.StatusUnauthorized)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (s *BookingStore) find(w http.ResponseWriter, r *http.Request) (*Booking, bool) {
	b, ok := s.bookings[r.PathValue("id")]
	if !ok {
		http.Error(w, `{"message":"booking not found"}`, http.StatusNotFound)
	}
	return b, ok
}

func (s *BookingStore) CreateHandler(w http.ResponseWriter, r *http.Request) {
	if !authorized(w, r) {
		return
	}

	var req CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"message":"invalid body"}`, http.StatusBadRequest)
		return
	}
	if req.TripID == "" || len(req.SeatIDs) == 0 {
		http.Error(w, `{"message":"tripId and seatIds are required"}`, http.StatusUnprocessableEntity)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	b := &Booking{
		ID:          fmt.Sprintf("bk-%04d", s.seq),
		TripID:      req.TripID,
		Status:      "PENDING_PAYMENT",
		SeatIDs:     req.SeatIDs,
		TotalAmount: req.TotalAmount,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	s.bookings[b.ID] = b

	writeJSON(w, http.StatusCreated, b)
}

func (s *BookingStore) GetHandler(w http.ResponseWriter, r *http.Request) {
	if !authorized(w, r) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if b, ok := s.find(w, r); ok {
		writeJSON(w, http.StatusOK, b)
	}
}

func (s *BookingStore) CancelHandler(w http.ResponseWriter, r *http.Request) {
	if !authorized(w, r) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.find(w, r)
	if !ok {
		return
	}
	if b.Status == "PAID" {
		http.Error(w, `{"message":"paid bookings cannot be cancelled"}`, http.StatusConflict)
		return
	}
	b.Status = "CANCELLED"
	writeJSON(w, http.StatusOK, b)
}

func (s *BookingStore) PaymentIntentHandler(w http.ResponseWriter, r *http.Request) {
	if !authorized(w, r) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.find(w, r)
	if !ok {
		return
	}
	if b.Status == "CANCELLED" {
		http.Error(w, `{"message":"booking is cancelled"}`, http.StatusConflict)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"redirectUrl": fmt.Sprintf("http://%s/bookings/%s/payments/confirm", r.Host, b.ID),
	})
}

// ConfirmPaymentHandler stands in for the payment gateway callback.
func (s *BookingStore) ConfirmPaymentHandler(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.find(w, r)
	if !ok {
		return
	}
	b.Status = "PAID"
	writeJSON(w, http.StatusOK, b)
}
