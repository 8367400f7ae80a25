package booking

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"tripbook/internal/pricing"
	"tripbook/pkg/bookingclient"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service *Service
}

func NewBookingHandler(s *Service) *BookingHandler {
	return &BookingHandler{
		service: s,
	}
}

func (h *BookingHandler) RegisterRoutes(router *gin.Engine) {
	v1 := router.Group("/v1")
	v1.POST("/quotes", h.QuoteHandler)

	sessions := v1.Group("/sessions")
	sessions.POST("", h.OpenSessionHandler)
	sessions.GET("/:id", h.GetSessionHandler)
	sessions.DELETE("/:id", h.CloseSessionHandler)
	sessions.POST("/:id/seats/reload", h.ReloadSeatsHandler)
	sessions.POST("/:id/seats/:seatId/toggle", h.ToggleSeatHandler)
	sessions.PUT("/:id/passengers", h.SetPassengersHandler)
	sessions.PUT("/:id/trip-type", h.SetTripTypeHandler)
	sessions.PUT("/:id/trip", h.ChangeTripHandler)
	sessions.POST("/:id/submit", h.SubmitHandler)
	sessions.DELETE("/:id/booking", h.CancelBookingHandler)
	sessions.GET("/:id/invoice", h.InvoiceHandler)
}

type QuoteRequest struct {
	Trip            json.RawMessage `json:"trip" binding:"required" swaggertype:"object"`
	PriceLabel      string          `json:"priceLabel"`
	Seats           json.RawMessage `json:"seats" swaggertype:"array,object"`
	TripType        string          `json:"tripType"`
	SelectedSeatIDs []string        `json:"selectedSeatIds"`
	Adults          int             `json:"adults"`
	Infants         int             `json:"infants"`
	Currency        string          `json:"currency"`
}

type OpenSessionRequest struct {
	Trip            json.RawMessage `json:"trip" binding:"required" swaggertype:"object"`
	PriceLabel      string          `json:"priceLabel"`
	Adults          int             `json:"adults"`
	Infants         int             `json:"infants"`
	TripType        string          `json:"tripType"`
	SelectedSeatIDs []string        `json:"selectedSeatIds"`
	From            string          `json:"from"`
	To              string          `json:"to"`
	Departure       string          `json:"departure"`
	FlightNumber    string          `json:"flightNumber"`
}

type PassengersRequest struct {
	Adults  int `json:"adults"`
	Infants int `json:"infants"`
}

type TripTypeRequest struct {
	TripType string `json:"tripType" binding:"required"`
}

type ChangeTripRequest struct {
	Trip       json.RawMessage `json:"trip" binding:"required" swaggertype:"object"`
	PriceLabel string          `json:"priceLabel"`
}

func bindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error": fmt.Sprintf("Invalid request format: %v", err),
		"code":  ErrorCodeValidation,
	})
}

func sendError(c *gin.Context, err error) {
	appErr := toAppError(err)
	c.JSON(appErr.Status, appErr)
}

// bearerToken returns the token of an "Authorization: Bearer" header.
func bearerToken(c *gin.Context) string {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func decodeTrip(raw json.RawMessage, label string) (pricing.Trip, error) {
	trip, err := bookingclient.DecodeTrip(raw)
	if err != nil {
		return pricing.Trip{}, err
	}
	trip.PriceLabel = label
	return trip, nil
}

func parseTripType(s string) (pricing.TripType, error) {
	if strings.TrimSpace(s) == "" {
		return pricing.OneWay, nil
	}
	return pricing.ParseTripType(s)
}

// QuoteHandler godoc
// @Summary      Price a booking state
// @Description  Reconciles trip type, unit price, seat and infant totals without opening a session
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Param        request body QuoteRequest true "Booking state"
// @Success      200 {object} pricing.Quote
// @Failure      400 {object} AppError
// @Router       /v1/quotes [post]
func (h *BookingHandler) QuoteHandler(c *gin.Context) {
	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	trip, err := decodeTrip(req.Trip, req.PriceLabel)
	if err != nil {
		bindError(c, err)
		return
	}
	seats := trip.SeatMap
	if len(req.Seats) > 0 {
		if seats, err = bookingclient.DecodeSeats(req.Seats); err != nil {
			bindError(c, err)
			return
		}
	}
	tt, err := parseTripType(req.TripType)
	if err != nil {
		bindError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.service.Quote(pricing.Input{
		Trip:            trip,
		Seats:           seats,
		TripType:        tt,
		SelectedSeatIDs: req.SelectedSeatIDs,
		Adults:          req.Adults,
		Infants:         req.Infants,
		Currency:        req.Currency,
	}))
}

// OpenSessionHandler godoc
// @Summary      Open a booking session
// @Description  Starts a booking for a trip and loads its seat map
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        request body OpenSessionRequest true "Trip and party"
// @Success      201 {object} SessionView
// @Failure      400 {object} AppError
// @Failure      422 {object} AppError
// @Router       /v1/sessions [post]
func (h *BookingHandler) OpenSessionHandler(c *gin.Context) {
	var req OpenSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	trip, err := decodeTrip(req.Trip, req.PriceLabel)
	if err != nil {
		bindError(c, err)
		return
	}
	tt, err := parseTripType(req.TripType)
	if err != nil {
		bindError(c, err)
		return
	}

	view, err := h.service.Open(c.Request.Context(), OpenRequest{
		Trip:            trip,
		Adults:          req.Adults,
		Infants:         req.Infants,
		TripType:        tt,
		SelectedSeatIDs: req.SelectedSeatIDs,
		From:            req.From,
		To:              req.To,
		Departure:       req.Departure,
		FlightNumber:    req.FlightNumber,
	})
	if err != nil {
		sendError(c, err)
		return
	}

	c.JSON(http.StatusCreated, view)
}

func (h *BookingHandler) GetSessionHandler(c *gin.Context) {
	view, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// CloseSessionHandler godoc
// @Summary      Close a booking session
// @Description  Cancels an unpaid booking and discards the session
// @Tags         sessions
// @Param        id path string true "Session ID"
// @Success      204
// @Failure      404 {object} AppError
// @Router       /v1/sessions/{id} [delete]
func (h *BookingHandler) CloseSessionHandler(c *gin.Context) {
	if err := h.service.Close(c.Request.Context(), c.Param("id"), bearerToken(c)); err != nil {
		sendError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *BookingHandler) ReloadSeatsHandler(c *gin.Context) {
	view, err := h.service.ReloadSeats(c.Request.Context(), c.Param("id"))
	if err != nil {
		sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// ToggleSeatHandler godoc
// @Summary      Select or deselect a seat
// @Tags         sessions
// @Produce      json
// @Param        id path string true "Session ID"
// @Param        seatId path string true "Seat ID"
// @Success      200 {object} SessionView
// @Failure      404 {object} AppError
// @Failure      409 {object} AppError
// @Router       /v1/sessions/{id}/seats/{seatId}/toggle [post]
func (h *BookingHandler) ToggleSeatHandler(c *gin.Context) {
	view, err := h.service.ToggleSeat(c.Request.Context(), c.Param("id"), c.Param("seatId"))
	if err != nil {
		sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *BookingHandler) SetPassengersHandler(c *gin.Context) {
	var req PassengersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	view, err := h.service.SetPassengers(c.Request.Context(), c.Param("id"), req.Adults, req.Infants)
	if err != nil {
		sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *BookingHandler) SetTripTypeHandler(c *gin.Context) {
	var req TripTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	tt, err := pricing.ParseTripType(req.TripType)
	if err != nil {
		bindError(c, err)
		return
	}

	view, err := h.service.SetTripType(c.Request.Context(), c.Param("id"), tt)
	if err != nil {
		sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *BookingHandler) ChangeTripHandler(c *gin.Context) {
	var req ChangeTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	trip, err := decodeTrip(req.Trip, req.PriceLabel)
	if err != nil {
		bindError(c, err)
		return
	}

	view, err := h.service.ChangeTrip(c.Request.Context(), c.Param("id"), trip)
	if err != nil {
		sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// SubmitHandler godoc
// @Summary      Submit the booking
// @Description  Validates the session, creates the booking and returns the payment redirect
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Session ID"
// @Param        request body SubmitRequest true "Booker and passengers"
// @Success      201 {object} SubmitResult
// @Failure      401 {object} AppError
// @Failure      422 {object} AppError
// @Failure      502 {object} AppError
// @Router       /v1/sessions/{id}/submit [post]
func (h *BookingHandler) SubmitHandler(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.service.Submit(c.Request.Context(), c.Param("id"), bearerToken(c), req)
	if err != nil {
		sendError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// CancelBookingHandler godoc
// @Summary      Cancel the unpaid booking
// @Description  Cancels the pending booking so the selection can be edited again
// @Tags         sessions
// @Produce      json
// @Param        id path string true "Session ID"
// @Success      200 {object} SessionView
// @Failure      401 {object} AppError
// @Failure      409 {object} AppError
// @Failure      502 {object} AppError
// @Router       /v1/sessions/{id}/booking [delete]
func (h *BookingHandler) CancelBookingHandler(c *gin.Context) {
	view, err := h.service.CancelBooking(c.Request.Context(), c.Param("id"), bearerToken(c))
	if err != nil {
		sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// InvoiceHandler godoc
// @Summary      Download the booking invoice
// @Tags         sessions
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id path string true "Session ID"
// @Success      200 {file} file
// @Failure      409 {object} AppError
// @Router       /v1/sessions/{id}/invoice [get]
func (h *BookingHandler) InvoiceHandler(c *gin.Context) {
	id := c.Param("id")
	pdf, err := h.service.Invoice(c.Request.Context(), id, bearerToken(c))
	if err != nil {
		sendError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="invoice-%s.pdf"`, id))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
