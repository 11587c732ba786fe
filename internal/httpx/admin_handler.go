package httpx

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/freshflower/storefront/internal/admin"
)

type DashboardService interface {
	Metrics(ctx context.Context) (*admin.Metrics, error)
}

type AdminHandler struct {
	Verifier  admin.Verifier
	Sessions  admin.SessionStore
	Dashboard DashboardService
	Log       *logrus.Logger
}

func (h *AdminHandler) Register(r chi.Router, requireAdmin func(http.Handler) http.Handler) {
	r.Post("/admin/login", h.login)
	r.Post("/admin/logout", h.logout)
	r.Get("/admin/check", h.check)
	r.Group(func(r chi.Router) {
		r.Use(requireAdmin)
		r.Get("/admin/dashboard", h.dashboard)
	})
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResp struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (h *AdminHandler) login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if !decodeJSON(w, r, &req) {
		return
	}

	if !h.Verifier.Verify(req.Username, req.Password) {
		writeJSON(w, http.StatusUnauthorized, loginResp{Success: false, Message: "Invalid credentials"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	token, err := h.Sessions.Create(ctx)
	if err != nil {
		h.Log.WithError(err).Error("create admin session failed")
		writeJSON(w, http.StatusInternalServerError, loginResp{Success: false, Message: "Login failed"})
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   60 * 60 * 24,
	})
	writeJSON(w, http.StatusOK, loginResp{Success: true, Message: "Login successful"})
}

func (h *AdminHandler) logout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(sessionCookie); err == nil {
		if err := h.Sessions.Destroy(r.Context(), c.Value); err != nil {
			h.Log.WithError(err).Warn("destroy admin session failed")
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *AdminHandler) check(w http.ResponseWriter, r *http.Request) {
	authenticated := false
	if c, err := r.Cookie(sessionCookie); err == nil {
		ok, err := h.Sessions.Validate(r.Context(), c.Value)
		authenticated = err == nil && ok
	}
	writeJSON(w, http.StatusOK, map[string]bool{"authenticated": authenticated})
}

func (h *AdminHandler) dashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	m, err := h.Dashboard.Metrics(ctx)
	if err != nil {
		h.Log.WithError(err).Error("dashboard metrics failed")
		writeError(w, http.StatusInternalServerError, "Failed to fetch dashboard metrics")
		return
	}
	writeJSON(w, http.StatusOK, m)
}
