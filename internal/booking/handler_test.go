package booking

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"tripbook/internal/pricing"
	"tripbook/pkg/bookingclient"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(api BookingAPI) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewBookingHandler(newTestService(api)).RegisterRoutes(r)
	return r
}

func doRequest(r http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

const openBody = `{
	"trip": {"data": {"id": "trip-1", "infantPrice": "50", "seatMap": [
		{"id": "` + seatA + `", "seatNumber": "1A", "oneWayBasePrice": "100", "roundTripBasePrice": 180},
		{"id": "` + seatB + `", "seatNumber": "1B", "oneWayBasePrice": 120},
		{"id": "` + seatC + `", "seatNumber": "1C", "isAvailable": false}
	]}},
	"adults": 1,
	"infants": 1,
	"from": "CAI",
	"to": "HRG"
}`

func openViaHTTP(t *testing.T, r http.Handler) string {
	t.Helper()
	w := doRequest(r, http.MethodPost, "/v1/sessions", openBody, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var view struct {
		ID    string        `json:"id"`
		Seats []any `json:"seats"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	require.Len(t, view.Seats, 3)
	return view.ID
}

func TestQuoteHandler(t *testing.T) {
	r := newTestRouter(new(mockBookingAPI))

	body := fmt.Sprintf(`{
		"trip": {"id": "trip-1", "infantPrice": 40},
		"seats": [{"id": %q, "oneWayBasePrice": "1200.5"}],
		"selectedSeatIds": [%q],
		"adults": 1,
		"infants": 2
	}`, seatA, seatA)
	w := doRequest(r, http.MethodPost, "/v1/quotes", body, "")

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var q pricing.Quote
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &q))
	assert.Equal(t, 1280.5, q.TotalAmount)
	assert.Equal(t, "1,280.5 EGP", q.FormattedTotal)
	assert.Equal(t, pricing.OneWay, q.TripType)
}

func TestQuoteHandler_BadInput(t *testing.T) {
	r := newTestRouter(new(mockBookingAPI))

	w := doRequest(r, http.MethodPost, "/v1/quotes", `{"adults": 1}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(r, http.MethodPost, "/v1/quotes", `{"trip": {"id": "t"}, "tripType": "MULTI_CITY"}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestQuoteHandler_NoAdults(t *testing.T) {
	r := newTestRouter(new(mockBookingAPI))

	w := doRequest(r, http.MethodPost, "/v1/quotes", `{"trip": {"id": "t", "basePrice": 300}, "adults": 0}`, "")

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var q pricing.Quote
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &q))
	assert.False(t, q.Validity.Submittable)
	assert.False(t, q.Validity.SeatCountMatches)
	assert.Equal(t, []string{"at least one adult is required"}, q.Validity.Problems)
}

func TestSessionHandlers_SeatFlow(t *testing.T) {
	r := newTestRouter(new(mockBookingAPI))
	id := openViaHTTP(t, r)
	base := "/v1/sessions/" + id

	w := doRequest(r, http.MethodPost, base+"/seats/"+seatA+"/toggle", "", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"totalAmount":150`)

	w = doRequest(r, http.MethodPost, base+"/seats/"+seatB+"/toggle", "", "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), string(ErrorCodeConflict))

	w = doRequest(r, http.MethodPost, base+"/seats/"+seatC+"/toggle", "", "")
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doRequest(r, http.MethodPost, base+"/seats/unknown/toggle", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(r, http.MethodPut, base+"/trip-type", `{"tripType": "round_trip"}`, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"tripType":"ROUND_TRIP"`)

	w = doRequest(r, http.MethodPut, base+"/trip-type", `{"tripType": "BOTH"}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(r, http.MethodPut, base+"/passengers", `{"adults": 0, "infants": 0}`, "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = doRequest(r, http.MethodGet, base, "", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(r, http.MethodDelete, base, "", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(r, http.MethodGet, base, "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSubmitHandler(t *testing.T) {
	r := newTestRouter(new(mockBookingAPI))
	id := openViaHTTP(t, r)
	path := "/v1/sessions/" + id + "/submit"

	body, err := json.Marshal(validSubmit())
	require.NoError(t, err)

	w := doRequest(r, http.MethodPost, path, string(body), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// no seat selected yet
	w = doRequest(r, http.MethodPost, path, string(body), "tok")
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var appErr AppError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &appErr))
	assert.Equal(t, ErrorCodeValidation, appErr.Code)
	assert.Contains(t, appErr.Details, "select 1 seat(s) for adults")
}

func TestInvoiceHandler_NoBooking(t *testing.T) {
	r := newTestRouter(new(mockBookingAPI))
	id := openViaHTTP(t, r)

	w := doRequest(r, http.MethodGet, "/v1/sessions/"+id+"/invoice", "", "tok")
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCancelBookingHandler(t *testing.T) {
	r := newTestRouter(new(mockBookingAPI))
	id := openViaHTTP(t, r)
	path := "/v1/sessions/" + id + "/booking"

	w := doRequest(r, http.MethodDelete, path, "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(r, http.MethodDelete, path, "", "tok")
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestBearerToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tests := map[string]string{
		"Bearer abc":   "abc",
		"bearer  abc ": "abc",
		"Basic abc":    "",
		"abc":          "",
		"":             "",
	}
	for header, want := range tests {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		c.Request.Header.Set("Authorization", header)
		assert.Equal(t, want, bearerToken(c), header)
	}
}

func TestToAppError(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   ErrorCode
	}{
		{ErrSessionNotFound, http.StatusNotFound, ErrorCodeNotFound},
		{ErrTripRequired, http.StatusBadRequest, ErrorCodeValidation},
		{ErrTripTypeUnpriced, http.StatusUnprocessableEntity, ErrorCodeValidation},
		{ErrSeatLimitReached, http.StatusConflict, ErrorCodeConflict},
		{ErrBookingPending, http.StatusConflict, ErrorCodeConflict},
		{ErrLoginRequired, http.StatusUnauthorized, ErrorCodeUnauthorized},
		{fmt.Errorf("create booking: %w", bookingclient.ErrUnauthorized), http.StatusUnauthorized, ErrorCodeUnauthorized},
		{&pricing.ValidationError{Problems: []string{"x"}}, http.StatusUnprocessableEntity, ErrorCodeValidation},
		{&bookingclient.APIError{StatusCode: 500}, http.StatusBadGateway, ErrorCodeUpstream},
		{errors.New("boom"), http.StatusInternalServerError, ErrorCodeInternalFailure},
	}

	for _, tt := range tests {
		got := toAppError(tt.err)
		assert.Equal(t, tt.status, got.Status, tt.err.Error())
		assert.Equal(t, tt.code, got.Code, tt.err.Error())
	}
}
