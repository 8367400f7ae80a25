package invoice

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	var buf bytes.Buffer

	err := Render(&buf, Invoice{
		BookingID:      "bk-1",
		TripID:         "trip-1",
		From:           "Cairo",
		To:             "Aswan",
		TripType:       "ROUND_TRIP",
		Seats:          []string{"1A", "1B"},
		Passengers:     []Passenger{{Type: "ADULT", Name: "Mona Adel"}, {Type: "INFANT", Name: "Omar"}},
		BookerName:     "Mona Adel",
		FormattedTotal: "1,850 EGP",
		PaymentStatus:  "PAID",
	})

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Contains(t, buf.String(), "%%EOF")
}

func TestRender_RequiresBookingID(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, Invoice{})
	assert.ErrorIs(t, err, ErrMissingBookingID)
	assert.Zero(t, buf.Len())
}
