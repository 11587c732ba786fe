package httpx

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/freshflower/storefront/internal/booking"
)

// BookingService adalah kontrak lifecycle manager yang dipakai handler.
type BookingService interface {
	CreateBooking(ctx context.Context, in booking.CreateBookingInput) (*booking.Booking, error)
	TransitionStatus(ctx context.Context, id string, st booking.Status) (*booking.Booking, error)
	GetBooking(ctx context.Context, id string) (*booking.Booking, error)
	ListBookings(ctx context.Context) ([]booking.Booking, error)
	ListGuests(ctx context.Context) ([]booking.GuestWithBookings, error)
}

type BookingsHandler struct {
	Service BookingService
	Log     *logrus.Logger
}

func (h *BookingsHandler) Register(r chi.Router, requireAdmin func(http.Handler) http.Handler) {
	r.Post("/bookings", h.create)
	r.Group(func(r chi.Router) {
		r.Use(requireAdmin)
		r.Get("/bookings", h.list)
		r.Get("/bookings/{id}", h.get)
		r.Patch("/bookings/{id}", h.transition)
		r.Get("/admin/guests", h.listGuests)
	})
}

func (h *BookingsHandler) create(w http.ResponseWriter, r *http.Request) {
	var in booking.CreateBookingInput
	if !decodeJSON(w, r, &in) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	b, err := h.Service.CreateBooking(ctx, in)
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrValidation):
			writeError(w, http.StatusBadRequest, "Missing required fields")
		case errors.Is(err, booking.ErrProductNotFound):
			writeError(w, http.StatusNotFound, "Product not found")
		case errors.Is(err, booking.ErrInsufficientStock):
			writeError(w, http.StatusConflict, "Not enough stock available")
		default:
			h.Log.WithError(err).Error("create booking failed")
			writeError(w, http.StatusInternalServerError, "Failed to create booking")
		}
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

type transitionReq struct {
	Status string `json:"status"`
}

func (h *BookingsHandler) transition(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req transitionReq
	if !decodeJSON(w, r, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	b, err := h.Service.TransitionStatus(ctx, id, booking.Status(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrValidation):
			writeError(w, http.StatusBadRequest, "Status is required")
		case errors.Is(err, booking.ErrInvalidStatus):
			writeError(w, http.StatusBadRequest, "Invalid status. Valid values: Booking, Confirmed, Done Order, Canceled")
		case errors.Is(err, booking.ErrBookingNotFound):
			writeError(w, http.StatusNotFound, "Booking not found")
		default:
			h.Log.WithError(err).WithField("booking_id", id).Error("update booking failed")
			writeJSON(w, http.StatusInternalServerError, apiError{
				Error:   "Failed to update booking",
				Message: err.Error(),
			})
		}
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *BookingsHandler) get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	b, err := h.Service.GetBooking(ctx, chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, booking.ErrBookingNotFound) {
			writeError(w, http.StatusNotFound, "Booking not found")
			return
		}
		h.Log.WithError(err).Error("get booking failed")
		writeError(w, http.StatusInternalServerError, "Failed to fetch booking")
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *BookingsHandler) list(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	bs, err := h.Service.ListBookings(ctx)
	if err != nil {
		h.Log.WithError(err).Error("list bookings failed")
		writeError(w, http.StatusInternalServerError, "Failed to fetch bookings")
		return
	}
	if bs == nil {
		bs = []booking.Booking{}
	}
	writeJSON(w, http.StatusOK, bs)
}

func (h *BookingsHandler) listGuests(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	gs, err := h.Service.ListGuests(ctx)
	if err != nil {
		h.Log.WithError(err).Error("list guests failed")
		writeError(w, http.StatusInternalServerError, "Failed to fetch guests")
		return
	}
	if gs == nil {
		gs = []booking.GuestWithBookings{}
	}
	writeJSON(w, http.StatusOK, gs)
}
