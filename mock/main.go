package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
)

func main() {
	// Default port
	port := "8081"

	// Check if port is provided as command line argument
	if len(os.Args) > 1 {
		port = os.Args[1]
	}

	bookings := NewBookingStore()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /trips/{id}", TripHandler)
	mux.HandleFunc("POST /bookings", bookings.CreateHandler)
	mux.HandleFunc("GET /bookings/{id}", bookings.GetHandler)
	mux.HandleFunc("PATCH /bookings/{id}/cancel", bookings.CancelHandler)
	mux.HandleFunc("POST /bookings/{id}/payments/intent", bookings.PaymentIntentHandler)
	mux.HandleFunc("POST /bookings/{id}/payments/confirm", bookings.ConfirmPaymentHandler)

	addr := fmt.Sprintf(":%s", port)
	fmt.Printf("Go Mock Booking API running on port %s...\n", port)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatal(err)
	}
}
