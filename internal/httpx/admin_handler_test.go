package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freshflower/storefront/internal/admin"
)

type fakeDashboard struct{}

func (fakeDashboard) Metrics(context.Context) (*admin.Metrics, error) {
	return &admin.Metrics{TotalProducts: 8, AvailableProducts: 76, SoldProducts: 3, MonthlyRevenue: 550000}, nil
}

func newAdminServer() http.Handler {
	r := NewRouter()
	h := &AdminHandler{
		Verifier:  admin.Verifier{Username: "freshflower", Password: "admin123"},
		Sessions:  fakeSessions{},
		Dashboard: fakeDashboard{},
		Log:       quietLog(),
	}
	h.Register(r, RequireAdmin(fakeSessions{}))
	return r
}

func TestAdminLogin(t *testing.T) {
	srv := newAdminServer()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/login",
		bytes.NewBufferString(`{"username":"freshflower","password":"admin123"}`))
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, sessionCookie, cookies[0].Name)
	assert.Equal(t, "valid-token", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
}

func TestAdminLoginInvalidCredentials(t *testing.T) {
	srv := newAdminServer()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/login",
		bytes.NewBufferString(`{"username":"freshflower","password":"wrong"}`))
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["success"])
	assert.Empty(t, rec.Result().Cookies())
}

func TestAdminCheck(t *testing.T) {
	srv := newAdminServer()

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/check", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"authenticated":false}`, rec.Body.String())

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/check", nil)
	req.AddCookie(adminCookie())
	srv.ServeHTTP(rec, req)
	assert.JSONEq(t, `{"authenticated":true}`, rec.Body.String())
}

func TestAdminDashboard(t *testing.T) {
	srv := newAdminServer()

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	req.AddCookie(adminCookie())
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var m admin.Metrics
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	assert.Equal(t, 8, m.TotalProducts)
	assert.Equal(t, 550000.0, m.MonthlyRevenue)
}
