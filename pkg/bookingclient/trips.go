package bookingclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"tripbook/internal/pricing"
)

// flexPrice accepts a JSON number, a numeric string or null. Anything it
// cannot read as a finite number is treated as absent.
type flexPrice struct {
	value *float64
}

func (f *flexPrice) UnmarshalJSON(b []byte) error {
	f.value = nil
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}

	var v float64
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return nil
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil
		}
		v = parsed
	} else if err := json.Unmarshal(b, &v); err != nil {
		return nil
	}

	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	f.value = &v
	return nil
}

type seatPayload struct {
	ID                 string    `json:"id"`
	SeatNumber         string    `json:"seatNumber"`
	IsAvailable        *bool     `json:"isAvailable"`
	OneWayBasePrice    flexPrice `json:"oneWayBasePrice"`
	RoundTripBasePrice flexPrice `json:"roundTripBasePrice"`
	EffectivePrice     flexPrice `json:"effectivePrice"`
	SeatPrice          flexPrice `json:"seatPrice"`
}

type tripPayload struct {
	ID                 string        `json:"id"`
	BasePrice          flexPrice     `json:"basePrice"`
	OneWayBasePrice    flexPrice     `json:"oneWayBasePrice"`
	RoundTripBasePrice flexPrice     `json:"roundTripBasePrice"`
	InfantPrice        flexPrice     `json:"infantPrice"`
	SeatMap            []seatPayload `json:"seatMap"`
	Data               *tripPayload  `json:"data"`
}

func firstPrice(prices ...flexPrice) *float64 {
	for _, p := range prices {
		if p.value != nil {
			return p.value
		}
	}
	return nil
}

func mapSeats(payload []seatPayload) []pricing.Seat {
	seats := make([]pricing.Seat, 0, len(payload))
	for _, s := range payload {
		available := true
		if s.IsAvailable != nil {
			available = *s.IsAvailable
		}
		seats = append(seats, pricing.Seat{
			ID:                 s.ID,
			SeatNumber:         s.SeatNumber,
			IsAvailable:        available,
			OneWayBasePrice:    s.OneWayBasePrice.value,
			RoundTripBasePrice: s.RoundTripBasePrice.value,
			EffectivePrice:     s.EffectivePrice.value,
			SeatPrice:          s.SeatPrice.value,
		})
	}
	return seats
}

// toTrip maps both the flat and the {"data": {...}} envelope shapes.
func (p *tripPayload) toTrip() pricing.Trip {
	inner := p.Data
	if inner == nil {
		inner = &tripPayload{}
	}

	seatMap := p.SeatMap
	if len(seatMap) == 0 {
		seatMap = inner.SeatMap
	}
	id := p.ID
	if id == "" {
		id = inner.ID
	}

	return pricing.Trip{
		ID:                 id,
		BasePrice:          firstPrice(p.BasePrice, inner.BasePrice),
		OneWayBasePrice:    firstPrice(p.OneWayBasePrice, inner.OneWayBasePrice),
		RoundTripBasePrice: firstPrice(p.RoundTripBasePrice, inner.RoundTripBasePrice),
		InfantPrice:        firstPrice(p.InfantPrice, inner.InfantPrice),
		SeatMap:            mapSeats(seatMap),
	}
}

// GetTrip fetches a trip and its seat map.
func (c *Client) GetTrip(ctx context.Context, tripID string) (*pricing.Trip, error) {
	var payload tripPayload
	path := "/trips/" + url.PathEscape(tripID)
	if err := c.do(ctx, "GetTrip", http.MethodGet, path, "", nil, &payload); err != nil {
		return nil, err
	}

	trip := payload.toTrip()
	if trip.ID == "" {
		trip.ID = tripID
	}
	return &trip, nil
}

// DecodeTrip reads a trip record supplied by a caller in any of the shapes
// the booking API returns.
func DecodeTrip(raw []byte) (pricing.Trip, error) {
	var payload tripPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return pricing.Trip{}, fmt.Errorf("decode trip: %w", err)
	}
	return payload.toTrip(), nil
}

// DecodeSeats reads a seat list with the same lenient price handling as
// DecodeTrip.
func DecodeSeats(raw []byte) ([]pricing.Seat, error) {
	var payload []seatPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("decode seats: %w", err)
	}
	return mapSeats(payload), nil
}
