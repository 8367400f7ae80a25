package booking

import (
	"fmt"
	"net/mail"
	"strings"
	"tripbook/pkg/bookingclient"
)

const (
	PassengerAdult  = "ADULT"
	PassengerInfant = "INFANT"

	minPhoneLength = 10
	minIDLength    = 3

	defaultPaymentCity    = "Cairo"
	defaultPaymentCountry = "EG"
)

// Contact is the person the booking and its payment are made out to.
type Contact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type Passenger struct {
	Type                     string                        `json:"type"`
	Name                     string                        `json:"name"`
	PassportNumberOrIDNumber string                        `json:"passportNumberOrIdNumber"`
	Files                    []bookingclient.PassengerFile `json:"files,omitempty"`
}

type SubmitRequest struct {
	Booker     Contact     `json:"booker"`
	Passengers []Passenger `json:"passengers"`
	City       string      `json:"city,omitempty"`
	Country    string      `json:"country,omitempty"`
}

type SubmitResult struct {
	BookingID      string  `json:"bookingId"`
	Status         string  `json:"status"`
	RedirectURL    string  `json:"redirectUrl"`
	TotalAmount    float64 `json:"totalAmount"`
	FormattedTotal string  `json:"formattedTotal"`
}

func validateContact(c Contact) []string {
	var problems []string
	if strings.TrimSpace(c.Name) == "" {
		problems = append(problems, "name is required")
	}
	if !validEmail(c.Email) {
		problems = append(problems, "a valid email is required")
	}
	if len(strings.TrimSpace(c.Phone)) < minPhoneLength {
		problems = append(problems, "a valid phone number is required")
	}
	return problems
}

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(strings.TrimSpace(email))
	if err != nil || addr.Name != "" {
		return false
	}
	_, domain, _ := strings.Cut(addr.Address, "@")
	return strings.Contains(domain, ".") && !strings.HasSuffix(domain, ".")
}

// validatePassengers expects one entry per traveller. Adults need a name and
// an id document; an infant id is optional but must look real when given.
func validatePassengers(passengers []Passenger, adults, infants int) []string {
	var problems []string
	var gotAdults, gotInfants int

	for i, p := range passengers {
		n := i + 1
		switch strings.ToUpper(strings.TrimSpace(p.Type)) {
		case PassengerAdult:
			gotAdults++
			if strings.TrimSpace(p.Name) == "" {
				problems = append(problems, fmt.Sprintf("passenger %d: name is required", n))
			}
			if len(strings.TrimSpace(p.PassportNumberOrIDNumber)) < minIDLength {
				problems = append(problems, fmt.Sprintf("passenger %d: a valid ID or passport number is required", n))
			}
		case PassengerInfant:
			gotInfants++
			if strings.TrimSpace(p.Name) == "" {
				problems = append(problems, fmt.Sprintf("passenger %d: name is required", n))
			}
			if id := strings.TrimSpace(p.PassportNumberOrIDNumber); id != "" && len(id) < minIDLength {
				problems = append(problems, fmt.Sprintf("passenger %d: infant ID must be at least %d characters", n, minIDLength))
			}
		default:
			problems = append(problems, fmt.Sprintf("passenger %d: type must be %s or %s", n, PassengerAdult, PassengerInfant))
		}
	}

	if gotAdults != adults || gotInfants != infants {
		problems = append(problems, fmt.Sprintf("expected %d adult(s) and %d infant(s), got %d and %d", adults, infants, gotAdults, gotInfants))
	}
	return problems
}

// splitName splits a full name at the first space.
func splitName(full string) (first, last string) {
	full = strings.TrimSpace(full)
	first, last, _ = strings.Cut(full, " ")
	return first, strings.TrimSpace(last)
}

func toClientPassengers(passengers []Passenger) []bookingclient.Passenger {
	out := make([]bookingclient.Passenger, 0, len(passengers))
	for _, p := range passengers {
		files := p.Files
		if files == nil {
			files = []bookingclient.PassengerFile{}
		}
		out = append(out, bookingclient.Passenger{
			Type:                     strings.ToUpper(strings.TrimSpace(p.Type)),
			Name:                     strings.TrimSpace(p.Name),
			PassportNumberOrIDNumber: strings.TrimSpace(p.PassportNumberOrIDNumber),
			Files:                    files,
		})
	}
	return out
}

func paymentRequest(req SubmitRequest) bookingclient.PaymentIntentRequest {
	first, last := splitName(req.Booker.Name)
	city, country := req.City, req.Country
	if city == "" {
		city = defaultPaymentCity
	}
	if country == "" {
		country = defaultPaymentCountry
	}
	return bookingclient.PaymentIntentRequest{
		FirstName: first,
		LastName:  last,
		Email:     strings.TrimSpace(req.Booker.Email),
		Phone:     strings.TrimSpace(req.Booker.Phone),
		City:      city,
		Country:   country,
	}
}

// paymentComplete lists the statuses an invoice can be issued for.
// PENDING_PAYMENT is included because the gateway confirms asynchronously.
func paymentComplete(status string) bool {
	switch strings.ToUpper(status) {
	case "CONFIRMED", "COMPLETED", "PAID", "SUCCESS", "PENDING_PAYMENT":
		return true
	}
	return false
}

// paymentSettled reports whether money has been taken; a booking in any other
// state is cancelled when its session closes.
func paymentSettled(status string) bool {
	switch strings.ToUpper(status) {
	case "CONFIRMED", "COMPLETED", "PAID", "SUCCESS":
		return true
	}
	return false
}
