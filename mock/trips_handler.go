package main

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"os"
	"time"
)

// Trip records are served exactly as stored. The fixture mixes the flat and
// the {"data": ...} envelope shapes, and numeric and string prices, the way
// the real backend does depending on the endpoint version.
func TripHandler(w http.ResponseWriter, r *http.Request) {
	data, err := os.ReadFile("mock/files/trips.json")
	if err != nil {
		http.Error(w, "Failed to read trip data: "+err.Error(), http.StatusInternalServerError)
		return
	}

	var trips map[string]json.RawMessage
	if err := json.Unmarshal(data, &trips); err != nil {
		http.Error(w, "Failed to parse trip data: "+err.Error(), http.StatusInternalServerError)
		return
	}

	trip, ok := trips[r.PathValue("id")]
	if !ok {
		http.Error(w, `{"message":"trip not found"}`, http.StatusNotFound)
		return
	}

	delay := 50 + rand.Intn(51) // 50 to 100ms
	time.Sleep(time.Duration(delay) * time.Millisecond)

	w.Header().Set("Content-Type", "application/json")
	w.Write(trip)
}
