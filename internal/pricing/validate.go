package pricing

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// IsValidSeatID accepts only the canonical 36-character UUID form with an
// RFC 4122 variant and version 1 to 5.
func IsValidSeatID(id string) bool {
	if len(id) != 36 {
		return false
	}
	u, err := uuid.Parse(id)
	if err != nil {
		return false
	}
	v := u.Version()
	return v >= 1 && v <= 5 && u.Variant() == uuid.RFC4122
}

// ValidationError is a local rejection of a booking submission. It is never
// the result of a network call.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "booking is not valid: " + strings.Join(e.Problems, "; ")
}

// Validity tells the caller whether the current selection may be submitted.
type Validity struct {
	SeatCountMatches bool     `json:"seatCountMatches"`
	SeatIDsValid     bool     `json:"seatIdsValid"`
	PriceAvailable   bool     `json:"priceAvailable"`
	Submittable      bool     `json:"submittable"`
	Problems         []string `json:"problems,omitempty"`
}

// Err returns a *ValidationError listing the problems, or nil.
func (v Validity) Err() error {
	if v.Submittable {
		return nil
	}
	return &ValidationError{Problems: v.Problems}
}

// Validate checks the submission contract: exactly one seat per adult, every
// id well formed, and a resolvable price for the active trip type.
func Validate(selectedSeatIDs []string, adults int, priceAvailable bool) Validity {
	v := Validity{
		SeatCountMatches: adults >= 1 && len(selectedSeatIDs) == adults,
		SeatIDsValid:     true,
		PriceAvailable:   priceAvailable,
	}

	for _, id := range selectedSeatIDs {
		if !IsValidSeatID(id) {
			v.SeatIDsValid = false
			break
		}
	}

	switch n := len(selectedSeatIDs); {
	case adults < 1:
		v.Problems = append(v.Problems, "at least one adult is required")
	case n == 0:
		v.Problems = append(v.Problems, fmt.Sprintf("select %d seat(s) for adults", adults))
	case n < adults:
		v.Problems = append(v.Problems, fmt.Sprintf("select %d seat(s), %d selected", adults, n))
	case n > adults:
		v.Problems = append(v.Problems, fmt.Sprintf("%d seats selected for %d adult(s)", n, adults))
	}
	if !v.SeatIDsValid {
		v.Problems = append(v.Problems, "some selected seats are invalid, reselect your seats")
	}
	if !priceAvailable {
		v.Problems = append(v.Problems, "price information is not available for this trip")
	}

	v.Submittable = v.SeatCountMatches && v.SeatIDsValid && v.PriceAvailable && len(v.Problems) == 0
	return v
}
