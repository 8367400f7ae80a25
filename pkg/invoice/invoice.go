package invoice

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/phpdave11/gofpdf"
)

var ErrMissingBookingID = errors.New("invoice: booking id is required")

type Passenger struct {
	Type string
	Name string
}

// Invoice is everything printed on a booking invoice.
type Invoice struct {
	BookingID      string
	TripID         string
	From           string
	To             string
	Departure      string
	FlightNumber   string
	TripType       string
	Seats          []string
	Passengers     []Passenger
	BookerName     string
	BookerEmail    string
	BookerPhone    string
	FormattedTotal string
	BookingDate    string
	PaymentStatus  string
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

// Render writes inv as an A4 PDF to w.
func Render(w io.Writer, inv Invoice) error {
	if strings.TrimSpace(inv.BookingID) == "" {
		return ErrMissingBookingID
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Invoice "+inv.BookingID, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, "Booking Invoice", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	row := func(label, value string) {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(50, 8, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 8, tr(orNA(value)), "", 1, "L", false, 0, "")
	}

	row("Booking ID", inv.BookingID)
	row("Booking date", inv.BookingDate)
	row("Payment status", inv.PaymentStatus)
	row("Trip", inv.TripID)
	row("Route", fmt.Sprintf("%s - %s", orNA(inv.From), orNA(inv.To)))
	row("Departure", inv.Departure)
	row("Flight number", inv.FlightNumber)
	row("Trip type", inv.TripType)
	row("Seats", strings.Join(inv.Seats, ", "))
	pdf.Ln(4)

	row("Booked by", inv.BookerName)
	row("Email", inv.BookerEmail)
	row("Phone", inv.BookerPhone)
	pdf.Ln(4)

	if len(inv.Passengers) > 0 {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(15, 8, "#", "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 8, "Type", "1", 0, "L", false, 0, "")
		pdf.CellFormat(0, 8, "Name", "1", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		for i, p := range inv.Passengers {
			pdf.CellFormat(15, 8, fmt.Sprintf("%d", i+1), "1", 0, "C", false, 0, "")
			pdf.CellFormat(35, 8, tr(p.Type), "1", 0, "L", false, 0, "")
			pdf.CellFormat(0, 8, tr(p.Name), "1", 1, "L", false, 0, "")
		}
		pdf.Ln(4)
	}

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(50, 10, "Total", "T", 0, "L", false, 0, "")
	pdf.CellFormat(0, 10, tr(orNA(inv.FormattedTotal)), "T", 1, "R", false, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("invoice: failed to render pdf: %w", err)
	}
	return nil
}
