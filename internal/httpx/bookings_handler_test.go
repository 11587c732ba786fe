package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freshflower/storefront/internal/booking"
)

type mockBookingService struct {
	createFn     func(ctx context.Context, in booking.CreateBookingInput) (*booking.Booking, error)
	transitionFn func(ctx context.Context, id string, st booking.Status) (*booking.Booking, error)
	getFn        func(ctx context.Context, id string) (*booking.Booking, error)
	listFn       func(ctx context.Context) ([]booking.Booking, error)
	listGuestsFn func(ctx context.Context) ([]booking.GuestWithBookings, error)
}

func (m *mockBookingService) CreateBooking(ctx context.Context, in booking.CreateBookingInput) (*booking.Booking, error) {
	return m.createFn(ctx, in)
}

func (m *mockBookingService) TransitionStatus(ctx context.Context, id string, st booking.Status) (*booking.Booking, error) {
	return m.transitionFn(ctx, id, st)
}

func (m *mockBookingService) GetBooking(ctx context.Context, id string) (*booking.Booking, error) {
	return m.getFn(ctx, id)
}

func (m *mockBookingService) ListBookings(ctx context.Context) ([]booking.Booking, error) {
	return m.listFn(ctx)
}

func (m *mockBookingService) ListGuests(ctx context.Context) ([]booking.GuestWithBookings, error) {
	return m.listGuestsFn(ctx)
}

// fakeSessions menerima hanya token "valid-token".
type fakeSessions struct{}

func (fakeSessions) Create(context.Context) (string, error)   { return "valid-token", nil }
func (fakeSessions) Destroy(context.Context, string) error    { return nil }
func (fakeSessions) Validate(_ context.Context, token string) (bool, error) {
	return token == "valid-token", nil
}

func quietLog() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func newBookingsServer(svc BookingService) http.Handler {
	r := NewRouter()
	h := &BookingsHandler{Service: svc, Log: quietLog()}
	h.Register(r, RequireAdmin(fakeSessions{}))
	return r
}

func adminCookie() *http.Cookie {
	return &http.Cookie{Name: sessionCookie, Value: "valid-token"}
}

const createBody = `{
	"productId": "3e7c2f9a-1111-2222-3333-444455556666",
	"guestData": {"name":"Ayu","email":"a@x.com","phone":"0812000111","deliveryType":"pickup"},
	"quantity": 3,
	"pickupDate": "2026-09-01T10:00:00Z"
}`

func TestCreateBookingHandler(t *testing.T) {
	var gotInput booking.CreateBookingInput
	svc := &mockBookingService{
		createFn: func(_ context.Context, in booking.CreateBookingInput) (*booking.Booking, error) {
			gotInput = in
			return &booking.Booking{ID: "b1", Quantity: in.Quantity, Status: booking.StatusBooking, TotalCost: 300000}, nil
		},
	}
	srv := newBookingsServer(svc)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/bookings", bytes.NewBufferString(createBody))
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "3e7c2f9a-1111-2222-3333-444455556666", gotInput.ProductID)
	assert.Equal(t, 3, gotInput.Quantity)
	assert.Equal(t, "a@x.com", gotInput.Guest.Email)

	var resp booking.Booking
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "b1", resp.ID)
	assert.Equal(t, 300000.0, resp.TotalCost)
}

func TestCreateBookingHandlerBadBody(t *testing.T) {
	svc := &mockBookingService{
		createFn: func(context.Context, booking.CreateBookingInput) (*booking.Booking, error) {
			t.Fatal("service should not be called")
			return nil, nil
		},
	}
	srv := newBookingsServer(svc)

	for name, body := range map[string]string{
		"invalid json":  `{not json`,
		"unknown field": `{"productId":"x","bogus":true}`,
	} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/bookings", bytes.NewBufferString(body))
		srv.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code, name)
	}
}

func TestCreateBookingHandlerErrorMapping(t *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{fmt.Errorf("%w: quantity", booking.ErrValidation), http.StatusBadRequest},
		{booking.ErrProductNotFound, http.StatusNotFound},
		{booking.ErrInsufficientStock, http.StatusConflict},
		{fmt.Errorf("pg: connection refused"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		svc := &mockBookingService{
			createFn: func(context.Context, booking.CreateBookingInput) (*booking.Booking, error) {
				return nil, tt.err
			},
		}
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/bookings", bytes.NewBufferString(createBody))
		newBookingsServer(svc).ServeHTTP(rec, req)

		assert.Equal(t, tt.code, rec.Code, "error %v", tt.err)
		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.NotEmpty(t, body["error"])
	}
}

func TestTransitionHandler(t *testing.T) {
	svc := &mockBookingService{
		transitionFn: func(_ context.Context, id string, st booking.Status) (*booking.Booking, error) {
			return &booking.Booking{ID: id, Status: st}, nil
		},
	}
	srv := newBookingsServer(svc)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/bookings/b1", bytes.NewBufferString(`{"status":"Canceled"}`))
	req.AddCookie(adminCookie())
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp booking.Booking
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, booking.StatusCanceled, resp.Status)
}

func TestTransitionHandlerErrorMapping(t *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{fmt.Errorf("%w: status is required", booking.ErrValidation), http.StatusBadRequest},
		{fmt.Errorf("%w: %q", booking.ErrInvalidStatus, "Nope"), http.StatusBadRequest},
		{booking.ErrBookingNotFound, http.StatusNotFound},
		{fmt.Errorf("pg: broken"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		svc := &mockBookingService{
			transitionFn: func(context.Context, string, booking.Status) (*booking.Booking, error) {
				return nil, tt.err
			},
		}
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPatch, "/bookings/b1", bytes.NewBufferString(`{"status":"Whatever"}`))
		req.AddCookie(adminCookie())
		newBookingsServer(svc).ServeHTTP(rec, req)

		assert.Equal(t, tt.code, rec.Code, "error %v", tt.err)
	}
}

func TestTransitionHandler500IncludesMessage(t *testing.T) {
	svc := &mockBookingService{
		transitionFn: func(context.Context, string, booking.Status) (*booking.Booking, error) {
			return nil, fmt.Errorf("update booking status b1: timeout")
		},
	}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/bookings/b1", bytes.NewBufferString(`{"status":"Confirmed"}`))
	req.AddCookie(adminCookie())
	newBookingsServer(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Failed to update booking", body["error"])
	assert.Contains(t, body["message"], "timeout")
}

func TestBookingAdminRoutesRequireSession(t *testing.T) {
	svc := &mockBookingService{
		listFn: func(context.Context) ([]booking.Booking, error) { return nil, nil },
	}
	srv := newBookingsServer(svc)

	// tanpa cookie
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/bookings", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// token salah
	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/bookings/b1", bytes.NewBufferString(`{"status":"Confirmed"}`))
	req.AddCookie(&http.Cookie{Name: sessionCookie, Value: "stale"})
	srv.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// token valid
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/bookings", nil)
	req.AddCookie(adminCookie())
	srv.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestListHandlersEmptyBodyIsArray(t *testing.T) {
	// store kosong: repo mengembalikan slice nil, body tetap harus [] bukan null
	svc := &mockBookingService{
		listFn:       func(context.Context) ([]booking.Booking, error) { return nil, nil },
		listGuestsFn: func(context.Context) ([]booking.GuestWithBookings, error) { return nil, nil },
	}
	srv := newBookingsServer(svc)

	for _, path := range []string{"/bookings", "/admin/guests"} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.AddCookie(adminCookie())
		srv.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.JSONEq(t, `[]`, rec.Body.String(), path)
	}
}

func TestTransitionWrongVerbIs405(t *testing.T) {
	svc := &mockBookingService{}
	srv := newBookingsServer(svc)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/bookings/b1", bytes.NewBufferString(`{"status":"Confirmed"}`))
	req.AddCookie(adminCookie())
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
