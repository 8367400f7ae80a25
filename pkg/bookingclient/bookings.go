package bookingclient

import (
	"context"
	"net/http"
	"net/url"
)

type PassengerFile struct {
	Type             string `json:"type"`
	OriginalFilename string `json:"originalFilename"`
	MimeType         string `json:"mimeType"`
	Base64Content    string `json:"base64Content"`
}

type Passenger struct {
	Type                     string          `json:"type"`
	Name                     string          `json:"name"`
	PassportNumberOrIDNumber string          `json:"passportNumberOrIdNumber"`
	Files                    []PassengerFile `json:"files"`
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
	TotalAmount *float64 `json:"totalAmount,omitempty"`
	CreatedAt   string   `json:"createdAt,omitempty"`
}

type PaymentIntentRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	City      string `json:"city"`
	Country   string `json:"country"`
}

type PaymentIntent struct {
	RedirectURL string `json:"redirectUrl"`
}

func bookingPath(bookingID string) string {
	return "/bookings/" + url.PathEscape(bookingID)
}

func (c *Client) CreateBooking(ctx context.Context, token string, req CreateBookingRequest) (*Booking, error) {
	var booking Booking
	if err := c.do(ctx, "CreateBooking", http.MethodPost, "/bookings", token, req, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (c *Client) CreatePaymentIntent(ctx context.Context, token, bookingID string, req PaymentIntentRequest) (*PaymentIntent, error) {
	var intent PaymentIntent
	path := bookingPath(bookingID) + "/payments/intent"
	if err := c.do(ctx, "CreatePaymentIntent", http.MethodPost, path, token, req, &intent); err != nil {
		return nil, err
	}
	return &intent, nil
}

func (c *Client) GetBooking(ctx context.Context, token, bookingID string) (*Booking, error) {
	var booking Booking
	if err := c.do(ctx, "GetBooking", http.MethodGet, bookingPath(bookingID), token, nil, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (c *Client) CancelBooking(ctx context.Context, token, bookingID string) error {
	return c.do(ctx, "CancelBooking", http.MethodPatch, bookingPath(bookingID)+"/cancel", token, nil, nil)
}
